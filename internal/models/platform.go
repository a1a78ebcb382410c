// internal/models/platform.go
package models

import "time"

// PlatformStateID is the fixed key of the single platform row.
const PlatformStateID uint64 = 1

// Platform holds the single-row treasury and fee configuration.
// AccumulatedFees increases on every settled purchase and drops to exactly
// zero on a treasury withdrawal. FeeRateBps is bounded [0, MaxFeeRateBps]
// and only ever changed by the platform owner.
type Platform struct {
	ID              uint64    `json:"id" gorm:"primaryKey"`
	FeeRateBps      uint64    `json:"fee_rate_bps" gorm:"not null"`
	AccumulatedFees uint64    `json:"accumulated_fees" gorm:"not null;default:0"`
	UpdatedAt       time.Time `json:"updated_at"`
}
