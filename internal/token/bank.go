// internal/token/bank.go
package token

import (
	"context"
	"fmt"
	"sync"
)

// Bank is an in-process token ledger implementing the same balance/allowance
// semantics as the on-chain asset. It backs development and test
// deployments; production wires a chain bridge behind the Ledger interface
// instead.
type Bank struct {
	mtx        sync.Mutex
	custody    string
	balances   map[string]uint64
	allowances map[string]map[string]uint64 // owner -> spender -> amount
}

func NewBank(custody string) *Bank {
	return &Bank{
		custody:    custody,
		balances:   make(map[string]uint64),
		allowances: make(map[string]map[string]uint64),
	}
}

// Mint credits amount to account. Test and development helper; the real
// asset mints elsewhere.
func (b *Bank) Mint(account string, amount uint64) {
	b.mtx.Lock()
	defer b.mtx.Unlock()
	b.balances[account] += amount
}

// Approve grants spender the right to pull up to amount from owner.
func (b *Bank) Approve(owner, spender string, amount uint64) {
	b.mtx.Lock()
	defer b.mtx.Unlock()
	if b.allowances[owner] == nil {
		b.allowances[owner] = make(map[string]uint64)
	}
	b.allowances[owner][spender] = amount
}

func (b *Bank) TransferFrom(ctx context.Context, from, to string, amount uint64) error {
	b.mtx.Lock()
	defer b.mtx.Unlock()

	allowed := b.allowances[from][b.custody]
	if allowed < amount {
		return fmt.Errorf("%w: %s allowed %d, need %d", ErrInsufficientAllowance, from, allowed, amount)
	}
	if b.balances[from] < amount {
		return fmt.Errorf("%w: %s has %d, need %d", ErrInsufficientBalance, from, b.balances[from], amount)
	}

	b.allowances[from][b.custody] = allowed - amount
	b.balances[from] -= amount
	b.balances[to] += amount
	return nil
}

func (b *Bank) Transfer(ctx context.Context, to string, amount uint64) error {
	b.mtx.Lock()
	defer b.mtx.Unlock()

	if b.balances[b.custody] < amount {
		return fmt.Errorf("%w: custody has %d, need %d", ErrInsufficientBalance, b.balances[b.custody], amount)
	}

	b.balances[b.custody] -= amount
	b.balances[to] += amount
	return nil
}

func (b *Bank) BalanceOf(ctx context.Context, account string) (uint64, error) {
	b.mtx.Lock()
	defer b.mtx.Unlock()
	return b.balances[account], nil
}

func (b *Bank) Allowance(ctx context.Context, owner, spender string) (uint64, error) {
	b.mtx.Lock()
	defer b.mtx.Unlock()
	return b.allowances[owner][spender], nil
}
