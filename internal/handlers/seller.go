// internal/handlers/seller.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/tokenmart/ledger-backend/internal/services"
	"github.com/tokenmart/ledger-backend/internal/utils"
)

type SellerHandler struct {
	sellerService *services.SellerService
}

func NewSellerHandler(sellerService *services.SellerService) *SellerHandler {
	return &SellerHandler{sellerService: sellerService}
}

// GET /sellers/me
func (h *SellerHandler) GetSummary(c *gin.Context) {
	account, exists := utils.GetAccountFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return
	}

	summary, err := h.sellerService.GetSummary(c.Request.Context(), account)
	if err != nil {
		utils.InternalErrorResponse(c, "")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"seller": summary,
	})
}

// POST /sellers/me/withdraw
func (h *SellerHandler) Withdraw(c *gin.Context) {
	account, exists := utils.GetAccountFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return
	}

	amount, err := h.sellerService.Withdraw(c.Request.Context(), account)
	if err != nil {
		respondLedgerError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"seller": account,
		"amount": amount,
	})
}
