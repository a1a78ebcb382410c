// internal/services/treasury_service.go
package services

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/tokenmart/ledger-backend/internal/config"
	"github.com/tokenmart/ledger-backend/internal/errs"
	"github.com/tokenmart/ledger-backend/internal/metrics"
	"github.com/tokenmart/ledger-backend/internal/models"
	"github.com/tokenmart/ledger-backend/internal/store"
	"github.com/tokenmart/ledger-backend/internal/token"
)

// TreasuryService owns accumulated platform fees and the fee rate. Both are
// guarded by the configured owner account; fee withdrawals always pay the
// fixed treasury recipient, never a caller-supplied address.
type TreasuryService struct {
	store  store.Store
	token  token.Ledger
	ledger config.LedgerConfig
	events EventSink
}

type SetFeeRateRequest struct {
	RateBps uint64 `json:"rate_bps" validate:"max=2000"`
}

func NewTreasuryService(store store.Store, tok token.Ledger, ledger config.LedgerConfig, events EventSink) *TreasuryService {
	return &TreasuryService{
		store:  store,
		token:  tok,
		ledger: ledger,
		events: events,
	}
}

// WithdrawFees moves the accumulated fees to the treasury recipient, with
// the same zero-before-transfer discipline as seller withdrawals.
func (s *TreasuryService) WithdrawFees(ctx context.Context, caller string) (uint64, error) {
	if caller != s.ledger.OwnerAccount {
		return 0, errs.ErrNotPlatformOwner
	}

	var amount uint64
	var event *models.LedgerEvent

	err := s.store.Atomically(ctx, func(tx store.Tx) error {
		platform, err := tx.GetPlatformForUpdate(ctx)
		if err != nil {
			return err
		}
		if platform.AccumulatedFees == 0 {
			return errs.ErrNothingToWithdraw
		}

		amount = platform.AccumulatedFees
		platform.AccumulatedFees = 0
		if err := tx.SavePlatform(ctx, platform); err != nil {
			return err
		}

		event = models.NewLedgerEvent(models.EventPlatformWithdrawal, models.JSONB{
			"amount": amount,
		})
		if err := tx.AppendEvent(ctx, event); err != nil {
			return err
		}

		return s.token.Transfer(ctx, s.ledger.TreasuryAccount, amount)
	})
	if err != nil {
		return 0, err
	}

	metrics.WithdrawalsTotal.WithLabelValues("platform").Inc()
	publishEvents(ctx, s.events, event)

	logrus.WithFields(logrus.Fields{
		"recipient": s.ledger.TreasuryAccount,
		"amount":    amount,
	}).Info("Platform fee withdrawal completed")

	return amount, nil
}

// SetFeeRate changes the rate applied to subsequent purchases. Settled
// purchases keep the fee they were charged.
func (s *TreasuryService) SetFeeRate(ctx context.Context, caller string, rateBps uint64) error {
	if caller != s.ledger.OwnerAccount {
		return errs.ErrNotPlatformOwner
	}
	if rateBps > models.MaxFeeRateBps {
		return errs.ErrFeeTooHigh
	}

	return s.store.Atomically(ctx, func(tx store.Tx) error {
		platform, err := tx.GetPlatformForUpdate(ctx)
		if err != nil {
			return err
		}
		platform.FeeRateBps = rateBps
		return tx.SavePlatform(ctx, platform)
	})
}

// GetState returns the current fee rate and accumulated fees.
func (s *TreasuryService) GetState(ctx context.Context) (*models.Platform, error) {
	return s.store.GetPlatform(ctx)
}
