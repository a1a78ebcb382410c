// internal/models/common.go
package models

import (
	"database/sql/driver"
	"encoding/json"
)

// JSONB type for PostgreSQL
type JSONB map[string]interface{}

func (j JSONB) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	return json.Marshal(j)
}

func (j *JSONB) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return nil
	}

	return json.Unmarshal(bytes, j)
}

// Enums
type EventType string

const (
	EventProductListed      EventType = "product_listed"
	EventProductActivated   EventType = "product_activated"
	EventProductDeactivated EventType = "product_deactivated"
	EventProductPriceUpdate EventType = "product_price_updated"
	EventProductPurchased   EventType = "product_purchased"
	EventSellerWithdrawal   EventType = "seller_withdrawal"
	EventPlatformWithdrawal EventType = "platform_withdrawal"
)

type Role string

const (
	RoleTrader Role = "trader"
	RoleOwner  Role = "owner"
)

// MaxFeeRateBps caps the platform fee at 20%.
const MaxFeeRateBps uint64 = 2000

// FeeDenominator is the basis-point scale: 100 bps = 1%.
const FeeDenominator uint64 = 10000
