// internal/broker/kafka.go

// Package broker pushes committed ledger events to Kafka for external
// indexers and the access-control oracle. The database event table is the
// source of truth; this feed is best-effort and consumers reconcile through
// the events query endpoint.
package broker

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"

	"github.com/tokenmart/ledger-backend/internal/models"
)

type Producer struct {
	writer *kafka.Writer
}

func NewProducer(brokers []string, topic string) *Producer {
	return &Producer{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.LeastBytes{},
			WriteTimeout: 10 * time.Second,
			RequiredAcks: kafka.RequireOne,
		},
	}
}

func (p *Producer) Close() error {
	return p.writer.Close()
}

// Publish sends one ledger event keyed by type so per-type ordering is
// preserved across partitions.
func (p *Producer) Publish(ctx context.Context, event *models.LedgerEvent) error {
	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(fmt.Sprintf("%s-%d", event.Type, event.Seq)),
		Value: value,
		Time:  event.CreatedAt,
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("write event %s: %w", event.ID, err)
	}

	logrus.WithFields(logrus.Fields{
		"event_id": event.ID,
		"type":     event.Type,
		"seq":      event.Seq,
	}).Debug("Ledger event published")

	return nil
}
