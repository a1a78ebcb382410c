// internal/handlers/errors.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tokenmart/ledger-backend/internal/errs"
	"github.com/tokenmart/ledger-backend/internal/utils"
)

// respondLedgerError maps sentinel error kinds to distinct HTTP statuses and
// machine-readable codes so UX layers can tell, say, "already own this" from
// "insufficient funds" without parsing messages.
func respondLedgerError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, errs.ErrInvalidContentPointer):
		utils.ErrorResponse(c, http.StatusBadRequest, "INVALID_CONTENT_POINTER", err.Error(), nil)
	case errors.Is(err, errs.ErrInvalidPrice):
		utils.ErrorResponse(c, http.StatusBadRequest, "INVALID_PRICE", err.Error(), nil)
	case errors.Is(err, errs.ErrInvalidDisplayName):
		utils.ErrorResponse(c, http.StatusBadRequest, "INVALID_DISPLAY_NAME", err.Error(), nil)
	case errors.Is(err, errs.ErrFeeTooHigh):
		utils.ErrorResponse(c, http.StatusBadRequest, "FEE_TOO_HIGH", err.Error(), nil)
	case errors.Is(err, errs.ErrProductNotFound):
		utils.NotFoundResponse(c, "Product not found")
	case errors.Is(err, errs.ErrNotOwner):
		utils.ForbiddenResponse(c, err.Error())
	case errors.Is(err, errs.ErrNotPlatformOwner):
		utils.ForbiddenResponse(c, err.Error())
	case errors.Is(err, errs.ErrNoStateChange):
		utils.ConflictResponse(c, "NO_STATE_CHANGE", err.Error())
	case errors.Is(err, errs.ErrProductInactive):
		utils.ConflictResponse(c, "PRODUCT_INACTIVE", err.Error())
	case errors.Is(err, errs.ErrSelfPurchase):
		utils.ConflictResponse(c, "SELF_PURCHASE", err.Error())
	case errors.Is(err, errs.ErrAlreadyOwned):
		utils.ConflictResponse(c, "ALREADY_OWNED", err.Error())
	case errors.Is(err, errs.ErrNothingToWithdraw):
		utils.ConflictResponse(c, "NOTHING_TO_WITHDRAW", err.Error())
	case errors.Is(err, errs.ErrPaymentFailed):
		utils.ErrorResponse(c, http.StatusPaymentRequired, "PAYMENT_FAILED", err.Error(), nil)
	default:
		utils.InternalErrorResponse(c, "")
	}
}
