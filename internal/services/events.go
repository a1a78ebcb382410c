// internal/services/events.go
package services

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/tokenmart/ledger-backend/internal/models"
)

// EventSink receives ledger events after their transaction has committed.
// The event row in the store is the durable record; sinks are a push-side
// convenience for indexers and may drop events.
type EventSink interface {
	Publish(ctx context.Context, event *models.LedgerEvent) error
}

func publishEvents(ctx context.Context, sink EventSink, events ...*models.LedgerEvent) {
	if sink == nil {
		return
	}
	for _, event := range events {
		if err := sink.Publish(ctx, event); err != nil {
			logrus.WithError(err).WithField("type", event.Type).
				Warn("Failed to publish ledger event")
		}
	}
}
