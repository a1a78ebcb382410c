// internal/services/product_service.go
package services

import (
	"context"

	"github.com/tokenmart/ledger-backend/internal/errs"
	"github.com/tokenmart/ledger-backend/internal/models"
	"github.com/tokenmart/ledger-backend/internal/store"
)

// ProductService owns the catalog: listing, activation, and pricing.
// Balance effects belong to the settlement engine, never here.
type ProductService struct {
	store  store.Store
	events EventSink
}

type ListProductRequest struct {
	ContentCID string `json:"content_cid" validate:"required"`
	Title      string `json:"title" validate:"required,max=255"`
	Price      uint64 `json:"price" validate:"required,min=1"`
}

type SetPriceRequest struct {
	Price uint64 `json:"price" validate:"required,min=1"`
}

func NewProductService(store store.Store, events EventSink) *ProductService {
	return &ProductService{
		store:  store,
		events: events,
	}
}

// List creates a new catalog entry owned by seller and returns it. The id is
// assigned sequentially and the product starts active.
func (s *ProductService) List(ctx context.Context, seller string, req *ListProductRequest) (*models.Product, error) {
	if req.ContentCID == "" {
		return nil, errs.ErrInvalidContentPointer
	}
	if req.Price == 0 {
		return nil, errs.ErrInvalidPrice
	}
	if req.Title == "" {
		return nil, errs.ErrInvalidDisplayName
	}

	product := &models.Product{
		Seller:     seller,
		ContentCID: req.ContentCID,
		Title:      req.Title,
		Price:      req.Price,
		Active:     true,
	}

	var event *models.LedgerEvent
	err := s.store.Atomically(ctx, func(tx store.Tx) error {
		if err := tx.CreateProduct(ctx, product); err != nil {
			return err
		}

		owner, err := tx.GetOrCreateSeller(ctx, seller)
		if err != nil {
			return err
		}
		owner.ProductIDs = append(owner.ProductIDs, int64(product.ID))
		if err := tx.SaveSeller(ctx, owner); err != nil {
			return err
		}

		event = models.NewLedgerEvent(models.EventProductListed, models.JSONB{
			"product_id":  product.ID,
			"seller":      seller,
			"content_cid": product.ContentCID,
			"price":       product.Price,
		})
		return tx.AppendEvent(ctx, event)
	})
	if err != nil {
		return nil, err
	}

	publishEvents(ctx, s.events, event)
	return product, nil
}

// SetActive flips the listing state. Requesting the current state is
// rejected so callers can tell a no-op from a transition.
func (s *ProductService) SetActive(ctx context.Context, productID uint64, caller string, active bool) (*models.Product, error) {
	var product *models.Product
	var event *models.LedgerEvent

	err := s.store.Atomically(ctx, func(tx store.Tx) error {
		var err error
		product, err = tx.GetProductForUpdate(ctx, productID)
		if err != nil {
			return err
		}
		if product.Seller != caller {
			return errs.ErrNotOwner
		}
		if product.Active == active {
			return errs.ErrNoStateChange
		}

		product.Active = active
		if err := tx.SaveProduct(ctx, product); err != nil {
			return err
		}

		eventType := models.EventProductDeactivated
		if active {
			eventType = models.EventProductActivated
		}
		event = models.NewLedgerEvent(eventType, models.JSONB{
			"product_id": product.ID,
		})
		return tx.AppendEvent(ctx, event)
	})
	if err != nil {
		return nil, err
	}

	publishEvents(ctx, s.events, event)
	return product, nil
}

// SetPrice updates the listing price for subsequent purchases. Settled
// purchases are unaffected.
func (s *ProductService) SetPrice(ctx context.Context, productID uint64, caller string, newPrice uint64) (*models.Product, error) {
	if newPrice == 0 {
		return nil, errs.ErrInvalidPrice
	}

	var product *models.Product
	var event *models.LedgerEvent

	err := s.store.Atomically(ctx, func(tx store.Tx) error {
		var err error
		product, err = tx.GetProductForUpdate(ctx, productID)
		if err != nil {
			return err
		}
		if product.Seller != caller {
			return errs.ErrNotOwner
		}

		product.Price = newPrice
		if err := tx.SaveProduct(ctx, product); err != nil {
			return err
		}

		event = models.NewLedgerEvent(models.EventProductPriceUpdate, models.JSONB{
			"product_id": product.ID,
			"new_price":  newPrice,
		})
		return tx.AppendEvent(ctx, event)
	})
	if err != nil {
		return nil, err
	}

	publishEvents(ctx, s.events, event)
	return product, nil
}

func (s *ProductService) GetProduct(ctx context.Context, productID uint64) (*models.Product, error) {
	return s.store.GetProduct(ctx, productID)
}

func (s *ProductService) ListProducts(ctx context.Context, filter store.ProductFilter) ([]models.Product, int64, error) {
	return s.store.ListProducts(ctx, filter)
}

// GetPurchasers returns the ordered purchase history of a product.
func (s *ProductService) GetPurchasers(ctx context.Context, productID uint64) ([]string, error) {
	if _, err := s.store.GetProduct(ctx, productID); err != nil {
		return nil, err
	}
	return s.store.ListPurchasers(ctx, productID)
}
