package events

import (
	"context"
	"log/slog"
)

// Routing keys for reservation lifecycle events.
const (
	ReservationCreated = "reservation.created"
	ReservationUpdated = "reservation.updated"
	ReservationDeleted = "reservation.deleted"
)

// Publisher sends a JSON-encodable payload under a routing key.
type Publisher interface {
	PublishJSON(ctx context.Context, key string, v any) error
	Close() error
}

// LogPublisher writes events to the log instead of a broker. It is used
// when no AMQP_URL is configured.
type LogPublisher struct {
	log *slog.Logger
}

func NewLogPublisher(log *slog.Logger) *LogPublisher {
	return &LogPublisher{log: log}
}

func (p *LogPublisher) PublishJSON(ctx context.Context, key string, v any) error {
	p.log.DebugContext(ctx, "event", "key", key, "payload", v)
	return nil
}

func (p *LogPublisher) Close() error { return nil }
