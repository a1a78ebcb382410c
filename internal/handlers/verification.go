// internal/handlers/verification.go
package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/tokenmart/ledger-backend/internal/services"
	"github.com/tokenmart/ledger-backend/internal/utils"
)

// VerificationHandler serves the decryption oracle and external indexers.
// The verify route deliberately exposes one boolean and nothing else about
// the ledger.
type VerificationHandler struct {
	accessService *services.AccessService
}

func NewVerificationHandler(accessService *services.AccessService) *VerificationHandler {
	return &VerificationHandler{accessService: accessService}
}

// GET /verify/:account/:productId
func (h *VerificationHandler) HasPurchased(c *gin.Context) {
	account := c.Param("account")
	if !utils.ValidAccount(account) {
		utils.BadRequestResponse(c, "Invalid account", nil)
		return
	}

	productID, err := strconv.ParseUint(c.Param("productId"), 10, 64)
	if err != nil {
		utils.BadRequestResponse(c, "Invalid product ID", nil)
		return
	}

	authorized, err := h.accessService.HasPurchased(c.Request.Context(), account, productID)
	if err != nil {
		utils.InternalErrorResponse(c, "")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"authorized": authorized,
	})
}

// GET /events
func (h *VerificationHandler) GetEvents(c *gin.Context) {
	afterSeq, _ := strconv.ParseUint(c.DefaultQuery("after", "0"), 10, 64)
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))

	events, err := h.accessService.ListEvents(c.Request.Context(), afterSeq, limit)
	if err != nil {
		utils.InternalErrorResponse(c, "")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"events": events,
	})
}
