package services

import (
	"context"
	"log/slog"
)

// EventPublisher is satisfied by the AMQP client. It stays an interface
// so services run without a broker in development and tests.
type EventPublisher interface {
	PublishLedgerEvent(ctx context.Context, kind string, id int64, op string) error
}

// LedgerEvents publishes change notifications after ledger writes.
// Publishing is best-effort: a broker outage never fails the request,
// since the database write already succeeded.
type LedgerEvents struct {
	publisher EventPublisher
}

func NewLedgerEvents(publisher EventPublisher) *LedgerEvents {
	return &LedgerEvents{publisher: publisher}
}

func (e *LedgerEvents) Publish(ctx context.Context, kind string, id int64, op string) {
	if e == nil || e.publisher == nil {
		return
	}
	if err := e.publisher.PublishLedgerEvent(ctx, kind, id, op); err != nil {
		slog.ErrorContext(ctx, "Failed to publish ledger event",
			"kind", kind, "id", id, "op", op, "error", err)
	}
}
