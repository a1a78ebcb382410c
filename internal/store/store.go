// internal/store/store.go

// Package store abstracts ledger persistence behind an injected interface.
// Services receive a Store handle instead of a database connection, so tests
// run against a fresh in-memory store and production runs against Postgres
// with identical transaction semantics.
package store

import (
	"context"

	"github.com/tokenmart/ledger-backend/internal/models"
)

// Tx is the mutating surface available inside one atomic ledger transaction.
// Every write either commits with the whole transaction or is discarded.
type Tx interface {
	CreateProduct(ctx context.Context, product *models.Product) error
	GetProductForUpdate(ctx context.Context, id uint64) (*models.Product, error)
	SaveProduct(ctx context.Context, product *models.Product) error

	// GetOrCreateSeller returns the seller row, creating the zero-valued row
	// on first touch. Seller records are never deleted.
	GetOrCreateSeller(ctx context.Context, account string) (*models.Seller, error)
	SaveSeller(ctx context.Context, seller *models.Seller) error

	HasPurchase(ctx context.Context, buyer string, productID uint64) (bool, error)
	CreatePurchase(ctx context.Context, purchase *models.Purchase) error

	GetPlatformForUpdate(ctx context.Context) (*models.Platform, error)
	SavePlatform(ctx context.Context, platform *models.Platform) error

	AppendEvent(ctx context.Context, event *models.LedgerEvent) error
}

// ProductFilter narrows catalog listings.
type ProductFilter struct {
	Seller     string
	ActiveOnly bool
	Offset     int
	Limit      int
}

// Store is the ledger state handle. Atomically serializes mutating
// operations: fn either fully commits or leaves all state unchanged.
type Store interface {
	Atomically(ctx context.Context, fn func(tx Tx) error) error

	GetProduct(ctx context.Context, id uint64) (*models.Product, error)
	ListProducts(ctx context.Context, filter ProductFilter) ([]models.Product, int64, error)
	GetSeller(ctx context.Context, account string) (*models.Seller, error)
	HasPurchase(ctx context.Context, buyer string, productID uint64) (bool, error)
	ListPurchasers(ctx context.Context, productID uint64) ([]string, error)
	GetPlatform(ctx context.Context) (*models.Platform, error)
	ListEvents(ctx context.Context, afterSeq uint64, limit int) ([]models.LedgerEvent, error)
}
