// internal/services/access_service.go
package services

import (
	"context"

	"github.com/tokenmart/ledger-backend/internal/cache"
	"github.com/tokenmart/ledger-backend/internal/models"
	"github.com/tokenmart/ledger-backend/internal/store"
)

// AccessService is the read-only query surface the external decryption
// oracle depends on. Access is gated exclusively by the boolean purchase
// fact; the oracle never sees prices, balances, or content pointers.
type AccessService struct {
	store store.Store
	owned *cache.PurchaseCache
}

func NewAccessService(store store.Store, owned *cache.PurchaseCache) *AccessService {
	return &AccessService{
		store: store,
		owned: owned,
	}
}

// HasPurchased reports whether account holds the permanent purchase fact for
// productID. Unknown pairs are false, never an error. Facts only transition
// to true, so cached positives stay valid forever.
func (s *AccessService) HasPurchased(ctx context.Context, account string, productID uint64) (bool, error) {
	if s.owned.IsOwned(ctx, account, productID) {
		return true, nil
	}

	purchased, err := s.store.HasPurchase(ctx, account, productID)
	if err != nil {
		return false, err
	}
	if purchased {
		s.owned.MarkOwned(ctx, account, productID)
	}
	return purchased, nil
}

// ListEvents exposes the append-only event stream for indexers reconciling
// ledger state.
func (s *AccessService) ListEvents(ctx context.Context, afterSeq uint64, limit int) ([]models.LedgerEvent, error) {
	if limit < 1 || limit > 500 {
		limit = 100
	}
	return s.store.ListEvents(ctx, afterSeq, limit)
}
