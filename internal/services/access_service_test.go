// internal/services/access_service_test.go
package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tokenmart/ledger-backend/internal/models"
)

func TestHasPurchasedLifecycle(t *testing.T) {
	ctx := context.Background()
	f := newFixture(1000)
	product := f.listProduct(sellerAccount, 1000)
	f.fund(buyerAccount, 1000)

	// Unknown pairs are false, not errors.
	owned, err := f.access.HasPurchased(ctx, buyerAccount, product.ID)
	require.NoError(t, err)
	assert.False(t, owned)

	owned, err = f.access.HasPurchased(ctx, "acct:nobody", 999)
	require.NoError(t, err)
	assert.False(t, owned)

	_, err = f.settlement.Purchase(ctx, buyerAccount, product.ID)
	require.NoError(t, err)

	owned, err = f.access.HasPurchased(ctx, buyerAccount, product.ID)
	require.NoError(t, err)
	assert.True(t, owned)

	// The fact survives deactivation and withdrawal; it never reverts.
	_, err = f.products.SetActive(ctx, product.ID, sellerAccount, false)
	require.NoError(t, err)
	_, err = f.sellers.Withdraw(ctx, sellerAccount)
	require.NoError(t, err)

	owned, err = f.access.HasPurchased(ctx, buyerAccount, product.ID)
	require.NoError(t, err)
	assert.True(t, owned)

	// Ownership is per-account, not per-product.
	owned, err = f.access.HasPurchased(ctx, "acct:other", product.ID)
	require.NoError(t, err)
	assert.False(t, owned)
}

func TestListEventsOrderedFeed(t *testing.T) {
	ctx := context.Background()
	f := newFixture(1000)
	product := f.listProduct(sellerAccount, 1000)
	f.fund(buyerAccount, 1000)
	_, err := f.settlement.Purchase(ctx, buyerAccount, product.ID)
	require.NoError(t, err)
	_, err = f.sellers.Withdraw(ctx, sellerAccount)
	require.NoError(t, err)

	events, err := f.access.ListEvents(ctx, 0, 100)
	require.NoError(t, err)
	require.Len(t, events, 3)
	assert.Equal(t, models.EventProductListed, events[0].Type)
	assert.Equal(t, models.EventProductPurchased, events[1].Type)
	assert.Equal(t, models.EventSellerWithdrawal, events[2].Type)
	for i, e := range events {
		assert.Equal(t, uint64(i+1), e.Seq, "sequence numbers are dense from 1")
		assert.NotEqual(t, "", e.ID.String())
	}

	// Cursor pagination resumes after the given sequence number.
	tail, err := f.access.ListEvents(ctx, events[1].Seq, 100)
	require.NoError(t, err)
	require.Len(t, tail, 1)
	assert.Equal(t, models.EventSellerWithdrawal, tail[0].Type)

	// Out-of-range limits fall back to the default.
	all, err := f.access.ListEvents(ctx, 0, -5)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}
