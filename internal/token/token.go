// internal/token/token.go

// Package token defines the fungible-token interface the ledger settles
// against. The ledger only ever moves tokens through this interface; it does
// not implement the asset itself.
package token

import (
	"context"
	"errors"
)

var (
	ErrInsufficientBalance   = errors.New("insufficient token balance")
	ErrInsufficientAllowance = errors.New("insufficient token allowance")
)

// Ledger is a transferable-balance asset with an allowance model. Every
// method is fallible; callers must treat any error as a failed transfer and
// abort the surrounding operation.
type Ledger interface {
	// TransferFrom pulls amount from the balance of from into to, consuming
	// allowance granted by from to the caller's custody account.
	TransferFrom(ctx context.Context, from, to string, amount uint64) error

	// Transfer moves amount out of the custody account into to.
	Transfer(ctx context.Context, to string, amount uint64) error

	BalanceOf(ctx context.Context, account string) (uint64, error)
	Allowance(ctx context.Context, owner, spender string) (uint64, error)
}
