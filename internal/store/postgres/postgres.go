// internal/store/postgres/postgres.go

// Package postgres implements the ledger store on GORM/PostgreSQL. Mutating
// operations run inside a database transaction with row-level locks on the
// touched product, seller, and platform rows, which serializes settlements
// that contend on the same entities.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tokenmart/ledger-backend/internal/errs"
	"github.com/tokenmart/ledger-backend/internal/models"
	"github.com/tokenmart/ledger-backend/internal/store"
)

type Postgres struct {
	db *gorm.DB
}

var _ store.Store = (*Postgres)(nil)

func New(db *gorm.DB) *Postgres {
	return &Postgres{db: db}
}

// Seed ensures the single platform row exists, initialising the fee rate on
// first boot. An existing row wins over the configured default.
func (p *Postgres) Seed(ctx context.Context, feeRateBps uint64) error {
	platform := models.Platform{
		ID:         models.PlatformStateID,
		FeeRateBps: feeRateBps,
	}
	return p.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&platform).Error
}

func (p *Postgres) Atomically(ctx context.Context, fn func(tx store.Tx) error) error {
	return p.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&pgTx{db: tx})
	})
}

type pgTx struct {
	db *gorm.DB
}

func (t *pgTx) CreateProduct(ctx context.Context, product *models.Product) error {
	if err := t.db.WithContext(ctx).Create(product).Error; err != nil {
		return fmt.Errorf("create product: %w", err)
	}
	return nil
}

func (t *pgTx) GetProductForUpdate(ctx context.Context, id uint64) (*models.Product, error) {
	var product models.Product
	err := t.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&product, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("lock product: %w", err)
	}
	return &product, nil
}

func (t *pgTx) SaveProduct(ctx context.Context, product *models.Product) error {
	if err := t.db.WithContext(ctx).Save(product).Error; err != nil {
		return fmt.Errorf("save product: %w", err)
	}
	return nil
}

func (t *pgTx) GetOrCreateSeller(ctx context.Context, account string) (*models.Seller, error) {
	seller := models.Seller{Account: account}
	if err := t.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&seller).Error; err != nil {
		return nil, fmt.Errorf("ensure seller: %w", err)
	}
	err := t.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&seller, "account = ?", account).Error
	if err != nil {
		return nil, fmt.Errorf("lock seller: %w", err)
	}
	return &seller, nil
}

func (t *pgTx) SaveSeller(ctx context.Context, seller *models.Seller) error {
	if err := t.db.WithContext(ctx).Save(seller).Error; err != nil {
		return fmt.Errorf("save seller: %w", err)
	}
	return nil
}

func (t *pgTx) HasPurchase(ctx context.Context, buyer string, productID uint64) (bool, error) {
	var count int64
	err := t.db.WithContext(ctx).Model(&models.Purchase{}).
		Where("buyer = ? AND product_id = ?", buyer, productID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("check purchase: %w", err)
	}
	return count > 0, nil
}

func (t *pgTx) CreatePurchase(ctx context.Context, purchase *models.Purchase) error {
	if err := t.db.WithContext(ctx).Create(purchase).Error; err != nil {
		return fmt.Errorf("create purchase: %w", err)
	}
	return nil
}

func (t *pgTx) GetPlatformForUpdate(ctx context.Context) (*models.Platform, error) {
	var platform models.Platform
	err := t.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&platform, models.PlatformStateID).Error
	if err != nil {
		return nil, fmt.Errorf("lock platform state: %w", err)
	}
	return &platform, nil
}

func (t *pgTx) SavePlatform(ctx context.Context, platform *models.Platform) error {
	if err := t.db.WithContext(ctx).Save(platform).Error; err != nil {
		return fmt.Errorf("save platform state: %w", err)
	}
	return nil
}

func (t *pgTx) AppendEvent(ctx context.Context, event *models.LedgerEvent) error {
	if err := t.db.WithContext(ctx).Create(event).Error; err != nil {
		return fmt.Errorf("append event: %w", err)
	}
	return nil
}

func (p *Postgres) GetProduct(ctx context.Context, id uint64) (*models.Product, error) {
	var product models.Product
	err := p.db.WithContext(ctx).First(&product, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &product, nil
}

func (p *Postgres) ListProducts(ctx context.Context, filter store.ProductFilter) ([]models.Product, int64, error) {
	query := p.db.WithContext(ctx).Model(&models.Product{})
	if filter.Seller != "" {
		query = query.Where("seller = ?", filter.Seller)
	}
	if filter.ActiveOnly {
		query = query.Where("active = ?", true)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count products: %w", err)
	}

	var products []models.Product
	if err := query.Order("id").Offset(filter.Offset).Limit(filter.Limit).
		Find(&products).Error; err != nil {
		return nil, 0, fmt.Errorf("list products: %w", err)
	}
	return products, total, nil
}

func (p *Postgres) GetSeller(ctx context.Context, account string) (*models.Seller, error) {
	var seller models.Seller
	err := p.db.WithContext(ctx).First(&seller, "account = ?", account).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.ErrSellerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get seller: %w", err)
	}
	return &seller, nil
}

func (p *Postgres) HasPurchase(ctx context.Context, buyer string, productID uint64) (bool, error) {
	var count int64
	err := p.db.WithContext(ctx).Model(&models.Purchase{}).
		Where("buyer = ? AND product_id = ?", buyer, productID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("check purchase: %w", err)
	}
	return count > 0, nil
}

func (p *Postgres) ListPurchasers(ctx context.Context, productID uint64) ([]string, error) {
	var buyers []string
	err := p.db.WithContext(ctx).Model(&models.Purchase{}).
		Where("product_id = ?", productID).
		Order("id").
		Pluck("buyer", &buyers).Error
	if err != nil {
		return nil, fmt.Errorf("list purchasers: %w", err)
	}
	return buyers, nil
}

func (p *Postgres) GetPlatform(ctx context.Context) (*models.Platform, error) {
	var platform models.Platform
	if err := p.db.WithContext(ctx).First(&platform, models.PlatformStateID).Error; err != nil {
		return nil, fmt.Errorf("get platform state: %w", err)
	}
	return &platform, nil
}

func (p *Postgres) ListEvents(ctx context.Context, afterSeq uint64, limit int) ([]models.LedgerEvent, error) {
	var events []models.LedgerEvent
	err := p.db.WithContext(ctx).
		Where("seq > ?", afterSeq).
		Order("seq").
		Limit(limit).
		Find(&events).Error
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return events, nil
}
