// internal/token/bank_test.go
package token

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBankTransferFrom(t *testing.T) {
	ctx := context.Background()
	b := NewBank("custody")
	b.Mint("alice", 1000)
	b.Approve("alice", "custody", 600)

	require.NoError(t, b.TransferFrom(ctx, "alice", "custody", 400))

	balance, _ := b.BalanceOf(ctx, "alice")
	assert.Equal(t, uint64(600), balance)
	balance, _ = b.BalanceOf(ctx, "custody")
	assert.Equal(t, uint64(400), balance)

	// The pull consumes allowance.
	allowance, _ := b.Allowance(ctx, "alice", "custody")
	assert.Equal(t, uint64(200), allowance)

	err := b.TransferFrom(ctx, "alice", "custody", 300)
	assert.ErrorIs(t, err, ErrInsufficientAllowance)
}

func TestBankTransferFromInsufficientBalance(t *testing.T) {
	ctx := context.Background()
	b := NewBank("custody")
	b.Mint("alice", 100)
	b.Approve("alice", "custody", 500)

	err := b.TransferFrom(ctx, "alice", "custody", 200)
	assert.ErrorIs(t, err, ErrInsufficientBalance)

	// Failed pulls leave balances and allowance untouched.
	balance, _ := b.BalanceOf(ctx, "alice")
	assert.Equal(t, uint64(100), balance)
	allowance, _ := b.Allowance(ctx, "alice", "custody")
	assert.Equal(t, uint64(500), allowance)
}

func TestBankTransfer(t *testing.T) {
	ctx := context.Background()
	b := NewBank("custody")
	b.Mint("custody", 500)

	require.NoError(t, b.Transfer(ctx, "bob", 300))
	balance, _ := b.BalanceOf(ctx, "bob")
	assert.Equal(t, uint64(300), balance)

	err := b.Transfer(ctx, "bob", 300)
	assert.ErrorIs(t, err, ErrInsufficientBalance)
}

func TestBankUnknownAccountsAreZero(t *testing.T) {
	ctx := context.Background()
	b := NewBank("custody")

	balance, err := b.BalanceOf(ctx, "ghost")
	require.NoError(t, err)
	assert.Equal(t, uint64(0), balance)

	allowance, err := b.Allowance(ctx, "ghost", "custody")
	require.NoError(t, err)
	assert.Equal(t, uint64(0), allowance)
}
