// internal/store/memory/memory_test.go
package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tokenmart/ledger-backend/internal/errs"
	"github.com/tokenmart/ledger-backend/internal/models"
	"github.com/tokenmart/ledger-backend/internal/store"
)

func TestAtomicallyRollsBackOnError(t *testing.T) {
	ctx := context.Background()
	m := New(250)
	boom := errors.New("boom")

	err := m.Atomically(ctx, func(tx store.Tx) error {
		if err := tx.CreateProduct(ctx, &models.Product{Seller: "s", Price: 100, Active: true}); err != nil {
			return err
		}
		seller, err := tx.GetOrCreateSeller(ctx, "s")
		if err != nil {
			return err
		}
		seller.WithdrawableBalance = 500
		if err := tx.SaveSeller(ctx, seller); err != nil {
			return err
		}
		platform, err := tx.GetPlatformForUpdate(ctx)
		if err != nil {
			return err
		}
		platform.AccumulatedFees = 42
		if err := tx.SavePlatform(ctx, platform); err != nil {
			return err
		}
		if err := tx.AppendEvent(ctx, models.NewLedgerEvent(models.EventProductListed, nil)); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	_, err = m.GetProduct(ctx, 1)
	assert.ErrorIs(t, err, errs.ErrProductNotFound)
	_, err = m.GetSeller(ctx, "s")
	assert.ErrorIs(t, err, errs.ErrSellerNotFound)

	platform, _ := m.GetPlatform(ctx)
	assert.Equal(t, uint64(0), platform.AccumulatedFees)

	events, _ := m.ListEvents(ctx, 0, 10)
	assert.Empty(t, events)

	// Aborted transactions release their ids too.
	err = m.Atomically(ctx, func(tx store.Tx) error {
		return tx.CreateProduct(ctx, &models.Product{Seller: "s", Price: 100})
	})
	require.NoError(t, err)
	p, err := m.GetProduct(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), p.ID)
}

func TestSequentialIDsAndSeqs(t *testing.T) {
	ctx := context.Background()
	m := New(250)

	for i := 0; i < 3; i++ {
		err := m.Atomically(ctx, func(tx store.Tx) error {
			if err := tx.CreateProduct(ctx, &models.Product{Seller: "s", Price: 1, Active: true}); err != nil {
				return err
			}
			return tx.AppendEvent(ctx, models.NewLedgerEvent(models.EventProductListed, nil))
		})
		require.NoError(t, err)
	}

	products, total, err := m.ListProducts(ctx, store.ProductFilter{Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	for i, p := range products {
		assert.Equal(t, uint64(i+1), p.ID)
	}

	events, err := m.ListEvents(ctx, 0, 10)
	require.NoError(t, err)
	for i, e := range events {
		assert.Equal(t, uint64(i+1), e.Seq)
	}
}

func TestListProductsPagination(t *testing.T) {
	ctx := context.Background()
	m := New(250)
	for i := 0; i < 5; i++ {
		require.NoError(t, m.Atomically(ctx, func(tx store.Tx) error {
			return tx.CreateProduct(ctx, &models.Product{Seller: "s", Price: 1, Active: true})
		}))
	}

	page, total, err := m.ListProducts(ctx, store.ProductFilter{Offset: 2, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	require.Len(t, page, 2)
	assert.Equal(t, uint64(3), page[0].ID)
	assert.Equal(t, uint64(4), page[1].ID)

	past, total, err := m.ListProducts(ctx, store.ProductFilter{Offset: 10, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	assert.Empty(t, past)
}

func TestSellerCopySemantics(t *testing.T) {
	ctx := context.Background()
	m := New(250)

	require.NoError(t, m.Atomically(ctx, func(tx store.Tx) error {
		seller, err := tx.GetOrCreateSeller(ctx, "s")
		if err != nil {
			return err
		}
		seller.ProductIDs = append(seller.ProductIDs, 1)
		return tx.SaveSeller(ctx, seller)
	}))

	got, err := m.GetSeller(ctx, "s")
	require.NoError(t, err)

	// Mutating the returned slice must not leak into the store.
	got.ProductIDs[0] = 99
	fresh, err := m.GetSeller(ctx, "s")
	require.NoError(t, err)
	assert.Equal(t, int64(1), fresh.ProductIDs[0])
}

func TestHasPurchaseKeyedByBuyerAndProduct(t *testing.T) {
	ctx := context.Background()
	m := New(250)

	require.NoError(t, m.Atomically(ctx, func(tx store.Tx) error {
		return tx.CreatePurchase(ctx, &models.Purchase{ProductID: 1, Buyer: "b", Price: 100})
	}))

	owned, err := m.HasPurchase(ctx, "b", 1)
	require.NoError(t, err)
	assert.True(t, owned)

	owned, _ = m.HasPurchase(ctx, "b", 2)
	assert.False(t, owned)
	owned, _ = m.HasPurchase(ctx, "c", 1)
	assert.False(t, owned)
}
