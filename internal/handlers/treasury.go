// internal/handlers/treasury.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/tokenmart/ledger-backend/internal/services"
	"github.com/tokenmart/ledger-backend/internal/utils"
)

type TreasuryHandler struct {
	treasuryService *services.TreasuryService
}

func NewTreasuryHandler(treasuryService *services.TreasuryService) *TreasuryHandler {
	return &TreasuryHandler{treasuryService: treasuryService}
}

// GET /treasury
func (h *TreasuryHandler) GetState(c *gin.Context) {
	state, err := h.treasuryService.GetState(c.Request.Context())
	if err != nil {
		utils.InternalErrorResponse(c, "")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"fee_rate_bps":     state.FeeRateBps,
		"accumulated_fees": state.AccumulatedFees,
	})
}

// POST /treasury/withdraw
func (h *TreasuryHandler) WithdrawFees(c *gin.Context) {
	caller, exists := utils.GetAccountFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return
	}

	amount, err := h.treasuryService.WithdrawFees(c.Request.Context(), caller)
	if err != nil {
		respondLedgerError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"amount": amount,
	})
}

// PUT /treasury/fee-rate
func (h *TreasuryHandler) SetFeeRate(c *gin.Context) {
	caller, exists := utils.GetAccountFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return
	}

	var req services.SetFeeRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid input", err.Error())
		return
	}

	if err := h.treasuryService.SetFeeRate(c.Request.Context(), caller, req.RateBps); err != nil {
		respondLedgerError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"fee_rate_bps": req.RateBps,
	})
}
