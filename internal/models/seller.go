// internal/models/seller.go
package models

import (
	"time"

	"github.com/lib/pq"
)

// Seller is keyed by account and created lazily on first listing.
// TotalEarnings is lifetime revenue and never decreases; WithdrawableBalance
// is the portion not yet paid out and drops to exactly zero on withdrawal.
type Seller struct {
	Account             string        `json:"account" gorm:"primaryKey;size:128"`
	ProductIDs          pq.Int64Array `json:"product_ids" gorm:"type:bigint[]"`
	TotalSales          uint64        `json:"total_sales" gorm:"not null;default:0"`
	WithdrawableBalance uint64        `json:"withdrawable_balance" gorm:"not null;default:0"`
	TotalEarnings       uint64        `json:"total_earnings" gorm:"not null;default:0"`
	CreatedAt           time.Time     `json:"created_at"`
	UpdatedAt           time.Time     `json:"updated_at"`
}
