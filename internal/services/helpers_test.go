// internal/services/helpers_test.go
package services

import (
	"context"
	"errors"

	"github.com/tokenmart/ledger-backend/internal/config"
	"github.com/tokenmart/ledger-backend/internal/models"
	"github.com/tokenmart/ledger-backend/internal/store/memory"
	"github.com/tokenmart/ledger-backend/internal/token"
)

const (
	custodyAccount  = "ledger-custody"
	ownerAccount    = "acct:owner"
	treasuryAccount = "acct:treasury"
	sellerAccount   = "acct:alice"
	buyerAccount    = "acct:bob"
)

// fixture wires the full service stack against a fresh in-memory store and
// token bank, so every test starts from a clean ledger.
type fixture struct {
	store      *memory.Memory
	bank       *token.Bank
	products   *ProductService
	settlement *SettlementService
	sellers    *SellerService
	treasury   *TreasuryService
	access     *AccessService
	sink       *captureSink
}

func newFixture(feeRateBps uint64) *fixture {
	st := memory.New(feeRateBps)
	bank := token.NewBank(custodyAccount)
	sink := &captureSink{}

	ledgerCfg := config.LedgerConfig{
		OwnerAccount:    ownerAccount,
		CustodyAccount:  custodyAccount,
		TreasuryAccount: treasuryAccount,
	}

	return &fixture{
		store:      st,
		bank:       bank,
		products:   NewProductService(st, sink),
		settlement: NewSettlementService(st, bank, custodyAccount, sink, nil),
		sellers:    NewSellerService(st, bank, sink),
		treasury:   NewTreasuryService(st, bank, ledgerCfg, sink),
		access:     NewAccessService(st, nil),
		sink:       sink,
	}
}

// fund gives the account a balance and approves custody to pull it.
func (f *fixture) fund(account string, amount uint64) {
	f.bank.Mint(account, amount)
	f.bank.Approve(account, custodyAccount, amount)
}

func (f *fixture) listProduct(seller string, price uint64) *models.Product {
	product, err := f.products.List(context.Background(), seller, &ListProductRequest{
		ContentCID: "bafybeigdyrzt5example",
		Title:      "Sample Pack Vol. 1",
		Price:      price,
	})
	if err != nil {
		panic(err)
	}
	return product
}

func (f *fixture) balance(account string) uint64 {
	b, _ := f.bank.BalanceOf(context.Background(), account)
	return b
}

// captureSink records published events for assertions.
type captureSink struct {
	events []*models.LedgerEvent
}

func (c *captureSink) Publish(ctx context.Context, event *models.LedgerEvent) error {
	c.events = append(c.events, event)
	return nil
}

func (c *captureSink) lastType() models.EventType {
	if len(c.events) == 0 {
		return ""
	}
	return c.events[len(c.events)-1].Type
}

// brokenToken fails outbound transfers, for exercising withdrawal rollback.
type brokenToken struct {
	token.Ledger
}

var errTransferRefused = errors.New("transfer refused")

func (brokenToken) Transfer(ctx context.Context, to string, amount uint64) error {
	return errTransferRefused
}
