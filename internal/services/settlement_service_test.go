// internal/services/settlement_service_test.go
package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tokenmart/ledger-backend/internal/errs"
	"github.com/tokenmart/ledger-backend/internal/models"
)

func TestSplitPrice(t *testing.T) {
	tests := []struct {
		name       string
		price      uint64
		rateBps    uint64
		wantFee    uint64
		wantSeller uint64
	}{
		{"ten percent", 1000, 1000, 100, 900},
		{"default rate", 1000, 250, 25, 975},
		{"floor rounds down", 999, 250, 24, 975},
		{"zero rate", 1000, 0, 0, 1000},
		{"max rate", 1000, 2000, 200, 800},
		{"tiny price floors to zero fee", 3, 250, 0, 3},
		{"one token", 1, 10000, 1, 0},
		{"large price no overflow", 1 << 62, 2000, (1 << 62) / 5, (1 << 62) - (1<<62)/5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fee, sellerAmount := splitPrice(tt.price, tt.rateBps)
			assert.Equal(t, tt.wantFee, fee)
			assert.Equal(t, tt.wantSeller, sellerAmount)
			assert.Equal(t, tt.price, fee+sellerAmount, "split must conserve the price")
		})
	}
}

func TestPurchaseSettlesFeeSplit(t *testing.T) {
	ctx := context.Background()
	f := newFixture(1000) // 10%
	product := f.listProduct(sellerAccount, 1000)
	f.fund(buyerAccount, 5000)

	purchase, err := f.settlement.Purchase(ctx, buyerAccount, product.ID)
	require.NoError(t, err)
	require.NotNil(t, purchase)

	assert.Equal(t, uint64(1000), purchase.Price)
	assert.Equal(t, uint64(100), purchase.Fee)

	seller, err := f.store.GetSeller(ctx, sellerAccount)
	require.NoError(t, err)
	assert.Equal(t, uint64(900), seller.WithdrawableBalance)
	assert.Equal(t, uint64(900), seller.TotalEarnings)
	assert.Equal(t, uint64(1), seller.TotalSales)

	platform, err := f.store.GetPlatform(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(100), platform.AccumulatedFees)

	updated, err := f.store.GetProduct(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), updated.SalesCount)

	assert.Equal(t, uint64(4000), f.balance(buyerAccount))
	assert.Equal(t, uint64(1000), f.balance(custodyAccount))

	owned, err := f.access.HasPurchased(ctx, buyerAccount, product.ID)
	require.NoError(t, err)
	assert.True(t, owned)

	assert.Equal(t, models.EventProductPurchased, f.sink.lastType())
}

func TestPurchaseRepeatRejected(t *testing.T) {
	ctx := context.Background()
	f := newFixture(1000)
	product := f.listProduct(sellerAccount, 1000)
	f.fund(buyerAccount, 5000)

	_, err := f.settlement.Purchase(ctx, buyerAccount, product.ID)
	require.NoError(t, err)

	sellerBefore, _ := f.store.GetSeller(ctx, sellerAccount)
	platformBefore, _ := f.store.GetPlatform(ctx)
	buyerBefore := f.balance(buyerAccount)

	_, err = f.settlement.Purchase(ctx, buyerAccount, product.ID)
	assert.ErrorIs(t, err, errs.ErrAlreadyOwned)

	// The denied repeat must be a pure no-op.
	sellerAfter, _ := f.store.GetSeller(ctx, sellerAccount)
	platformAfter, _ := f.store.GetPlatform(ctx)
	assert.Equal(t, sellerBefore.WithdrawableBalance, sellerAfter.WithdrawableBalance)
	assert.Equal(t, sellerBefore.TotalSales, sellerAfter.TotalSales)
	assert.Equal(t, platformBefore.AccumulatedFees, platformAfter.AccumulatedFees)
	assert.Equal(t, buyerBefore, f.balance(buyerAccount))

	updated, _ := f.store.GetProduct(ctx, product.ID)
	assert.Equal(t, uint64(1), updated.SalesCount)
}

func TestPurchaseRejections(t *testing.T) {
	ctx := context.Background()

	t.Run("self purchase", func(t *testing.T) {
		f := newFixture(250)
		product := f.listProduct(sellerAccount, 1000)
		f.fund(sellerAccount, 5000)

		_, err := f.settlement.Purchase(ctx, sellerAccount, product.ID)
		assert.ErrorIs(t, err, errs.ErrSelfPurchase)
		assert.Equal(t, uint64(5000), f.balance(sellerAccount))
	})

	t.Run("inactive product", func(t *testing.T) {
		f := newFixture(250)
		product := f.listProduct(sellerAccount, 1000)
		_, err := f.products.SetActive(ctx, product.ID, sellerAccount, false)
		require.NoError(t, err)
		f.fund(buyerAccount, 5000)

		_, err = f.settlement.Purchase(ctx, buyerAccount, product.ID)
		assert.ErrorIs(t, err, errs.ErrProductInactive)
		assert.Equal(t, uint64(5000), f.balance(buyerAccount))
	})

	t.Run("nonexistent product", func(t *testing.T) {
		f := newFixture(250)
		f.fund(buyerAccount, 5000)

		_, err := f.settlement.Purchase(ctx, buyerAccount, 42)
		assert.ErrorIs(t, err, errs.ErrProductNotFound)
		assert.Equal(t, uint64(5000), f.balance(buyerAccount))
	})
}

func TestPurchasePaymentFailureLeavesStateUntouched(t *testing.T) {
	ctx := context.Background()
	f := newFixture(1000)
	product := f.listProduct(sellerAccount, 1000)
	// Funded but custody never approved, so the pull fails.
	f.bank.Mint(buyerAccount, 5000)

	_, err := f.settlement.Purchase(ctx, buyerAccount, product.ID)
	assert.ErrorIs(t, err, errs.ErrPaymentFailed)

	seller, _ := f.store.GetSeller(ctx, sellerAccount)
	platform, _ := f.store.GetPlatform(ctx)
	updated, _ := f.store.GetProduct(ctx, product.ID)
	assert.Equal(t, uint64(0), seller.WithdrawableBalance)
	assert.Equal(t, uint64(0), platform.AccumulatedFees)
	assert.Equal(t, uint64(0), updated.SalesCount)
	assert.Equal(t, uint64(5000), f.balance(buyerAccount))

	owned, err := f.access.HasPurchased(ctx, buyerAccount, product.ID)
	require.NoError(t, err)
	assert.False(t, owned)
}

func TestPurchaseFeeRateSnapshot(t *testing.T) {
	ctx := context.Background()
	f := newFixture(250)
	product := f.listProduct(sellerAccount, 1000)
	f.fund(buyerAccount, 1000)

	_, err := f.settlement.Purchase(ctx, buyerAccount, product.ID)
	require.NoError(t, err)

	// Raising the rate afterwards must not touch the settled purchase.
	require.NoError(t, f.treasury.SetFeeRate(ctx, ownerAccount, 2000))

	purchasers, err := f.products.GetPurchasers(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{buyerAccount}, purchasers)

	platform, _ := f.store.GetPlatform(ctx)
	assert.Equal(t, uint64(25), platform.AccumulatedFees)
}

func TestPurchaseMultipleBuyers(t *testing.T) {
	ctx := context.Background()
	f := newFixture(1000)
	product := f.listProduct(sellerAccount, 500)

	buyers := []string{"acct:b1", "acct:b2", "acct:b3"}
	for _, b := range buyers {
		f.fund(b, 500)
		_, err := f.settlement.Purchase(ctx, b, product.ID)
		require.NoError(t, err)
	}

	purchasers, err := f.products.GetPurchasers(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, buyers, purchasers, "purchasers keep settlement order")

	seller, _ := f.store.GetSeller(ctx, sellerAccount)
	platform, _ := f.store.GetPlatform(ctx)
	assert.Equal(t, uint64(3*450), seller.WithdrawableBalance)
	assert.Equal(t, uint64(3*50), platform.AccumulatedFees)
	assert.Equal(t, uint64(3*500), f.balance(custodyAccount))
}
