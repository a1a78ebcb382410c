// internal/services/settlement_service.go
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/tokenmart/ledger-backend/internal/cache"
	"github.com/tokenmart/ledger-backend/internal/errs"
	"github.com/tokenmart/ledger-backend/internal/metrics"
	"github.com/tokenmart/ledger-backend/internal/models"
	"github.com/tokenmart/ledger-backend/internal/store"
	"github.com/tokenmart/ledger-backend/internal/token"
)

// SettlementService is the only writer of seller earnings, purchase facts,
// and treasury fees. Each purchase settles as one store transaction: the
// token pull, the fee split, and every counter update commit together or not
// at all.
type SettlementService struct {
	store   store.Store
	token   token.Ledger
	custody string
	events  EventSink
	owned   *cache.PurchaseCache
}

func NewSettlementService(store store.Store, tok token.Ledger, custody string, events EventSink, owned *cache.PurchaseCache) *SettlementService {
	return &SettlementService{
		store:   store,
		token:   tok,
		custody: custody,
		events:  events,
		owned:   owned,
	}
}

// splitPrice computes the platform fee, floor(price * rateBps / 10000), and
// the seller remainder. price is decomposed first so the product never
// overflows uint64 while the result stays exact.
func splitPrice(price, rateBps uint64) (fee, sellerAmount uint64) {
	q := price / models.FeeDenominator
	r := price % models.FeeDenominator
	fee = q*rateBps + r*rateBps/models.FeeDenominator
	return fee, price - fee
}

// Purchase settles one sale of productID to buyer. Repeat purchases are
// rejected with ErrAlreadyOwned rather than absorbed, so callers can tell
// "already own it" apart from "just bought it".
func (s *SettlementService) Purchase(ctx context.Context, buyer string, productID uint64) (*models.Purchase, error) {
	var purchase *models.Purchase
	var event *models.LedgerEvent
	var paid uint64

	err := s.store.Atomically(ctx, func(tx store.Tx) error {
		product, err := tx.GetProductForUpdate(ctx, productID)
		if err != nil {
			return err
		}
		if !product.Active {
			return errs.ErrProductInactive
		}
		if buyer == product.Seller {
			return errs.ErrSelfPurchase
		}

		owned, err := tx.HasPurchase(ctx, buyer, productID)
		if err != nil {
			return err
		}
		if owned {
			return errs.ErrAlreadyOwned
		}

		platform, err := tx.GetPlatformForUpdate(ctx)
		if err != nil {
			return err
		}
		fee, sellerAmount := splitPrice(product.Price, platform.FeeRateBps)

		// Pull the full price into custody. A failed pull aborts the whole
		// settlement with no state written.
		if err := s.token.TransferFrom(ctx, buyer, s.custody, product.Price); err != nil {
			return fmt.Errorf("%w: %v", errs.ErrPaymentFailed, err)
		}
		paid = product.Price

		seller, err := tx.GetOrCreateSeller(ctx, product.Seller)
		if err != nil {
			return err
		}
		seller.WithdrawableBalance += sellerAmount
		seller.TotalEarnings += sellerAmount
		seller.TotalSales++
		if err := tx.SaveSeller(ctx, seller); err != nil {
			return err
		}

		platform.AccumulatedFees += fee
		if err := tx.SavePlatform(ctx, platform); err != nil {
			return err
		}

		purchase = &models.Purchase{
			ProductID: productID,
			Buyer:     buyer,
			Price:     product.Price,
			Fee:       fee,
		}
		if err := tx.CreatePurchase(ctx, purchase); err != nil {
			return err
		}

		product.SalesCount++
		if err := tx.SaveProduct(ctx, product); err != nil {
			return err
		}

		event = models.NewLedgerEvent(models.EventProductPurchased, models.JSONB{
			"product_id": productID,
			"buyer":      buyer,
			"seller":     product.Seller,
			"price":      product.Price,
			"fee":        fee,
		})
		return tx.AppendEvent(ctx, event)
	})
	if err != nil {
		s.recordFailure(err)
		if paid > 0 {
			s.refund(ctx, buyer, paid)
		}
		return nil, err
	}

	metrics.PurchasesTotal.Inc()
	metrics.PurchaseVolume.Add(float64(purchase.Price))
	metrics.FeesCollected.Add(float64(purchase.Fee))
	s.owned.MarkOwned(ctx, buyer, productID)
	publishEvents(ctx, s.events, event)

	logrus.WithFields(logrus.Fields{
		"product_id": productID,
		"buyer":      buyer,
		"price":      purchase.Price,
		"fee":        purchase.Fee,
	}).Info("Purchase settled")

	return purchase, nil
}

// refund compensates the buyer when the token pull succeeded but the ledger
// write failed afterwards. Store failures past the pull are infrastructure
// errors; the refund keeps the money conserved.
func (s *SettlementService) refund(ctx context.Context, buyer string, amount uint64) {
	if amount == 0 {
		return
	}
	if err := s.token.Transfer(ctx, buyer, amount); err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"buyer":  buyer,
			"amount": amount,
		}).Error("Compensating refund failed; manual reconciliation required")
	}
}

func (s *SettlementService) recordFailure(err error) {
	reason := "internal"
	switch {
	case errors.Is(err, errs.ErrProductNotFound):
		reason = "not_found"
	case errors.Is(err, errs.ErrProductInactive):
		reason = "inactive"
	case errors.Is(err, errs.ErrSelfPurchase):
		reason = "self_purchase"
	case errors.Is(err, errs.ErrAlreadyOwned):
		reason = "already_owned"
	case errors.Is(err, errs.ErrPaymentFailed):
		reason = "payment_failed"
	}
	metrics.FailedSettlements.WithLabelValues(reason).Inc()
}
