package service

import (
	"context"
	"time"

	"github.com/earthly-glitch/fraudX-location-prototype/internal/location/model"
)

// RecencyCache holds the last reported position per device. Implementations
// must be safe for concurrent use.
type RecencyCache interface {
	Get(ctx context.Context, deviceID string) (*model.RecencyRecord, error)
	Set(ctx context.Context, deviceID string, rec model.RecencyRecord, ttl time.Duration) error
	Delete(ctx context.Context, deviceID string) error
}

// LogStore is the append-only audit log. Records are never mutated.
type LogStore interface {
	Append(ctx context.Context, rec model.LogRecord) (string, error)
	LatestDeliveryPoint(ctx context.Context, deviceID string) (*model.LogRecord, error)
	Recent(ctx context.Context, limit int) ([]model.LogRecord, error)
}

// EventBus fans classification and simulation events out to subscribers.
// Publish is fire-and-forget and must not block.
type EventBus interface {
	Publish(topic string, payload any)
}
