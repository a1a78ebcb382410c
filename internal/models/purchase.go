// internal/models/purchase.go
package models

import "time"

// Purchase is the permanent ownership fact for one (buyer, product) pair.
// Rows are never updated or deleted; the sequential ID doubles as the
// per-product purchase ordering. Price and Fee are captured at settlement
// time so later repricing never rewrites history.
type Purchase struct {
	ID        uint64    `json:"id" gorm:"primaryKey;autoIncrement"`
	ProductID uint64    `json:"product_id" gorm:"not null;uniqueIndex:idx_purchases_product_buyer;index"`
	Buyer     string    `json:"buyer" gorm:"size:128;not null;uniqueIndex:idx_purchases_product_buyer;index"`
	Price     uint64    `json:"price" gorm:"not null"`
	Fee       uint64    `json:"fee" gorm:"not null"`
	CreatedAt time.Time `json:"created_at"`
}
