package handler

import (
	"context"

	"github.com/earthly-glitch/fraudX-location-prototype/internal/location/model"
)

type LocationService interface {
	Classify(ctx context.Context, ping model.PingRequest) (model.ClassificationResult, error)
	RegisterDeliveryPoint(ctx context.Context, deviceID string, coord model.Coordinate, city string) (string, error)
	LatestDeliveryPoint(ctx context.Context, deviceID string) (*model.LogRecord, error)
	RecentLogs(ctx context.Context, limit int) ([]model.LogRecord, error)
	CheckFraud(ctx context.Context, deviceID string, coord model.Coordinate, ipCity string) (model.FraudCheck, error)
	ForgetDevice(ctx context.Context, deviceID string) error
}
