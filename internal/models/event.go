// internal/models/event.go
package models

import (
	"time"

	"github.com/google/uuid"
)

// LedgerEvent is one entry of the append-only observation log. The payload
// carries every field an external indexer needs to reconstruct state from
// the stream alone, without reading ledger internals.
type LedgerEvent struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Seq       uint64    `json:"seq" gorm:"autoIncrement;uniqueIndex"`
	Type      EventType `json:"type" gorm:"type:varchar(32);not null;index"`
	Payload   JSONB     `json:"payload" gorm:"type:jsonb"`
	CreatedAt time.Time `json:"created_at" gorm:"index"`
}

func NewLedgerEvent(eventType EventType, payload JSONB) *LedgerEvent {
	return &LedgerEvent{
		ID:      uuid.New(),
		Type:    eventType,
		Payload: payload,
	}
}
