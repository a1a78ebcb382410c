// internal/store/memory/memory.go

// Package memory provides an in-process Store used by tests and single-node
// development runs. Mutating operations are serialized behind one mutex and
// roll back via a full-state snapshot, matching the all-or-nothing semantics
// of the Postgres implementation.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/tokenmart/ledger-backend/internal/errs"
	"github.com/tokenmart/ledger-backend/internal/models"
	"github.com/tokenmart/ledger-backend/internal/store"
)

type purchaseKey struct {
	buyer     string
	productID uint64
}

type Memory struct {
	mtx sync.RWMutex

	products  map[uint64]models.Product
	sellers   map[string]models.Seller
	purchases map[purchaseKey]models.Purchase
	platform  models.Platform
	events    []models.LedgerEvent

	nextProductID  uint64
	nextPurchaseID uint64
	nextEventSeq   uint64
}

var _ store.Store = (*Memory)(nil)

func New(feeRateBps uint64) *Memory {
	return &Memory{
		products:  make(map[uint64]models.Product),
		sellers:   make(map[string]models.Seller),
		purchases: make(map[purchaseKey]models.Purchase),
		platform: models.Platform{
			ID:         models.PlatformStateID,
			FeeRateBps: feeRateBps,
		},
		nextProductID:  1,
		nextPurchaseID: 1,
		nextEventSeq:   1,
	}
}

type snapshot struct {
	products       map[uint64]models.Product
	sellers        map[string]models.Seller
	purchases      map[purchaseKey]models.Purchase
	platform       models.Platform
	eventsLen      int
	nextProductID  uint64
	nextPurchaseID uint64
	nextEventSeq   uint64
}

func (m *Memory) snapshot() snapshot {
	s := snapshot{
		products:       make(map[uint64]models.Product, len(m.products)),
		sellers:        make(map[string]models.Seller, len(m.sellers)),
		purchases:      make(map[purchaseKey]models.Purchase, len(m.purchases)),
		platform:       m.platform,
		eventsLen:      len(m.events),
		nextProductID:  m.nextProductID,
		nextPurchaseID: m.nextPurchaseID,
		nextEventSeq:   m.nextEventSeq,
	}
	for id, p := range m.products {
		s.products[id] = p
	}
	for acct, sl := range m.sellers {
		sl.ProductIDs = append(sl.ProductIDs[:0:0], sl.ProductIDs...)
		s.sellers[acct] = sl
	}
	for k, p := range m.purchases {
		s.purchases[k] = p
	}
	return s
}

func (m *Memory) restore(s snapshot) {
	m.products = s.products
	m.sellers = s.sellers
	m.purchases = s.purchases
	m.platform = s.platform
	m.events = m.events[:s.eventsLen]
	m.nextProductID = s.nextProductID
	m.nextPurchaseID = s.nextPurchaseID
	m.nextEventSeq = s.nextEventSeq
}

// Atomically runs fn under the store lock. On error the pre-transaction
// snapshot is restored, so a failed operation leaves no trace.
func (m *Memory) Atomically(ctx context.Context, fn func(tx store.Tx) error) error {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	snap := m.snapshot()
	if err := fn(&memTx{m: m}); err != nil {
		m.restore(snap)
		return err
	}
	return nil
}

type memTx struct {
	m *Memory
}

func (t *memTx) CreateProduct(ctx context.Context, product *models.Product) error {
	product.ID = t.m.nextProductID
	t.m.nextProductID++
	t.m.products[product.ID] = *product
	return nil
}

func (t *memTx) GetProductForUpdate(ctx context.Context, id uint64) (*models.Product, error) {
	p, ok := t.m.products[id]
	if !ok {
		return nil, errs.ErrProductNotFound
	}
	return &p, nil
}

func (t *memTx) SaveProduct(ctx context.Context, product *models.Product) error {
	t.m.products[product.ID] = *product
	return nil
}

func (t *memTx) GetOrCreateSeller(ctx context.Context, account string) (*models.Seller, error) {
	s, ok := t.m.sellers[account]
	if !ok {
		s = models.Seller{Account: account}
		t.m.sellers[account] = s
	}
	s.ProductIDs = append(s.ProductIDs[:0:0], s.ProductIDs...)
	return &s, nil
}

func (t *memTx) SaveSeller(ctx context.Context, seller *models.Seller) error {
	s := *seller
	s.ProductIDs = append(s.ProductIDs[:0:0], s.ProductIDs...)
	t.m.sellers[s.Account] = s
	return nil
}

func (t *memTx) HasPurchase(ctx context.Context, buyer string, productID uint64) (bool, error) {
	_, ok := t.m.purchases[purchaseKey{buyer: buyer, productID: productID}]
	return ok, nil
}

func (t *memTx) CreatePurchase(ctx context.Context, purchase *models.Purchase) error {
	purchase.ID = t.m.nextPurchaseID
	t.m.nextPurchaseID++
	t.m.purchases[purchaseKey{buyer: purchase.Buyer, productID: purchase.ProductID}] = *purchase
	return nil
}

func (t *memTx) GetPlatformForUpdate(ctx context.Context) (*models.Platform, error) {
	p := t.m.platform
	return &p, nil
}

func (t *memTx) SavePlatform(ctx context.Context, platform *models.Platform) error {
	t.m.platform = *platform
	return nil
}

func (t *memTx) AppendEvent(ctx context.Context, event *models.LedgerEvent) error {
	event.Seq = t.m.nextEventSeq
	t.m.nextEventSeq++
	t.m.events = append(t.m.events, *event)
	return nil
}

func (m *Memory) GetProduct(ctx context.Context, id uint64) (*models.Product, error) {
	m.mtx.RLock()
	defer m.mtx.RUnlock()

	p, ok := m.products[id]
	if !ok {
		return nil, errs.ErrProductNotFound
	}
	return &p, nil
}

func (m *Memory) ListProducts(ctx context.Context, filter store.ProductFilter) ([]models.Product, int64, error) {
	m.mtx.RLock()
	defer m.mtx.RUnlock()

	var matched []models.Product
	for _, p := range m.products {
		if filter.Seller != "" && p.Seller != filter.Seller {
			continue
		}
		if filter.ActiveOnly && !p.Active {
			continue
		}
		matched = append(matched, p)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })

	total := int64(len(matched))
	if filter.Offset > 0 {
		if filter.Offset >= len(matched) {
			matched = nil
		} else {
			matched = matched[filter.Offset:]
		}
	}
	if filter.Limit > 0 && len(matched) > filter.Limit {
		matched = matched[:filter.Limit]
	}
	return matched, total, nil
}

func (m *Memory) GetSeller(ctx context.Context, account string) (*models.Seller, error) {
	m.mtx.RLock()
	defer m.mtx.RUnlock()

	s, ok := m.sellers[account]
	if !ok {
		return nil, errs.ErrSellerNotFound
	}
	s.ProductIDs = append(s.ProductIDs[:0:0], s.ProductIDs...)
	return &s, nil
}

func (m *Memory) HasPurchase(ctx context.Context, buyer string, productID uint64) (bool, error) {
	m.mtx.RLock()
	defer m.mtx.RUnlock()

	_, ok := m.purchases[purchaseKey{buyer: buyer, productID: productID}]
	return ok, nil
}

func (m *Memory) ListPurchasers(ctx context.Context, productID uint64) ([]string, error) {
	m.mtx.RLock()
	defer m.mtx.RUnlock()

	var rows []models.Purchase
	for _, p := range m.purchases {
		if p.ProductID == productID {
			rows = append(rows, p)
		}
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].ID < rows[j].ID })

	buyers := make([]string, 0, len(rows))
	for _, p := range rows {
		buyers = append(buyers, p.Buyer)
	}
	return buyers, nil
}

func (m *Memory) GetPlatform(ctx context.Context) (*models.Platform, error) {
	m.mtx.RLock()
	defer m.mtx.RUnlock()

	p := m.platform
	return &p, nil
}

func (m *Memory) ListEvents(ctx context.Context, afterSeq uint64, limit int) ([]models.LedgerEvent, error) {
	m.mtx.RLock()
	defer m.mtx.RUnlock()

	var out []models.LedgerEvent
	for _, e := range m.events {
		if e.Seq <= afterSeq {
			continue
		}
		out = append(out, e)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}
