// internal/models/product.go
package models

import "time"

// Product is a catalog entry. IDs are assigned sequentially starting at 1;
// 0 is the "does not exist" sentinel. Products are never deleted, only
// deactivated, so the catalog stays append-only for audit purposes.
type Product struct {
	ID         uint64    `json:"id" gorm:"primaryKey;autoIncrement"`
	Seller     string    `json:"seller" gorm:"size:128;not null;index"`
	ContentCID string    `json:"content_cid" gorm:"size:255;not null"`
	Title      string    `json:"title" gorm:"size:255;not null"`
	Price      uint64    `json:"price" gorm:"not null"`
	Active     bool      `json:"active" gorm:"not null;default:true;index"`
	SalesCount uint64    `json:"sales_count" gorm:"not null;default:0"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
