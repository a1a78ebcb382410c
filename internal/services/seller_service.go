// internal/services/seller_service.go
package services

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/tokenmart/ledger-backend/internal/errs"
	"github.com/tokenmart/ledger-backend/internal/metrics"
	"github.com/tokenmart/ledger-backend/internal/models"
	"github.com/tokenmart/ledger-backend/internal/store"
	"github.com/tokenmart/ledger-backend/internal/token"
)

type SellerService struct {
	store  store.Store
	token  token.Ledger
	events EventSink
}

func NewSellerService(store store.Store, tok token.Ledger, events EventSink) *SellerService {
	return &SellerService{
		store:  store,
		token:  tok,
		events: events,
	}
}

// Withdraw pays out the seller's full withdrawable balance. The balance is
// zeroed before the outbound transfer; if the transfer fails the whole
// transaction rolls back and the seller keeps the claim.
func (s *SellerService) Withdraw(ctx context.Context, account string) (uint64, error) {
	var amount uint64
	var event *models.LedgerEvent

	err := s.store.Atomically(ctx, func(tx store.Tx) error {
		seller, err := tx.GetOrCreateSeller(ctx, account)
		if err != nil {
			return err
		}
		if seller.WithdrawableBalance == 0 {
			return errs.ErrNothingToWithdraw
		}

		amount = seller.WithdrawableBalance
		seller.WithdrawableBalance = 0
		if err := tx.SaveSeller(ctx, seller); err != nil {
			return err
		}

		event = models.NewLedgerEvent(models.EventSellerWithdrawal, models.JSONB{
			"seller": account,
			"amount": amount,
		})
		if err := tx.AppendEvent(ctx, event); err != nil {
			return err
		}

		// Outbound transfer last: the zero balance is already written, so a
		// reentrant caller observes nothing left to withdraw.
		return s.token.Transfer(ctx, account, amount)
	})
	if err != nil {
		return 0, err
	}

	metrics.WithdrawalsTotal.WithLabelValues("seller").Inc()
	publishEvents(ctx, s.events, event)

	logrus.WithFields(logrus.Fields{
		"seller": account,
		"amount": amount,
	}).Info("Seller withdrawal completed")

	return amount, nil
}

// GetSummary returns the seller's ledger view; unknown accounts get the
// zero-valued summary rather than an error.
func (s *SellerService) GetSummary(ctx context.Context, account string) (*models.Seller, error) {
	seller, err := s.store.GetSeller(ctx, account)
	if errors.Is(err, errs.ErrSellerNotFound) {
		return &models.Seller{Account: account}, nil
	}
	if err != nil {
		return nil, err
	}
	return seller, nil
}
