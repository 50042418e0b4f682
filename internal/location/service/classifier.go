package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/earthly-glitch/fraudX-location-prototype/internal/common/bus"
	"github.com/earthly-glitch/fraudX-location-prototype/internal/common/logger"
	"github.com/earthly-glitch/fraudX-location-prototype/internal/location/fraud"
	"github.com/earthly-glitch/fraudX-location-prototype/internal/location/geo"
	"github.com/earthly-glitch/fraudX-location-prototype/internal/location/model"
)

// RecencyTTL is how long a device's last position stays usable for the
// impossible-jump check.
const RecencyTTL = 24 * time.Hour

type Classifier struct {
	cache  RecencyCache
	store  LogStore
	events EventBus
	cities *CityMapper
}

func NewClassifier(cache RecencyCache, store LogStore, events EventBus, cities *CityMapper) *Classifier {
	return &Classifier{cache: cache, store: store, events: events, cities: cities}
}

// Classify runs both fraud heuristics against one ping, updates the recency
// cache, appends the audit record and broadcasts the result.
func (c *Classifier) Classify(ctx context.Context, ping model.PingRequest) (model.ClassificationResult, error) {
	if err := validatePing(ping); err != nil {
		return model.ClassificationResult{}, err
	}

	prev, err := c.cache.Get(ctx, ping.DeviceID)
	if err != nil {
		// A broken cache downgrades to a first-ping classification.
		logger.Warn("recency_get_failed", "Failed to read recency cache, treating as miss", "", ping.DeviceID, err.Error())
		prev = nil
	}

	var fraudTypes []model.FraudKind
	riskScore := 0.0

	geoCheck := fraud.CheckGeoMismatch(ping.DeliveryCoords, ping.UserCoords)
	if geoCheck.Flagged {
		fraudTypes = append(fraudTypes, model.FraudGeoMismatch)
		riskScore = max(riskScore, fraud.GeoMismatchRisk)
		logger.Info("geo_mismatch_detected",
			fmt.Sprintf("Ping %.2f km from delivery point", *geoCheck.DistanceKm), "", ping.DeviceID)
	}

	jumpCheck := fraud.CheckImpossibleJump(prev, ping.UserCoords, ping.TimestampMillis)
	if jumpCheck.Flagged {
		fraudTypes = append(fraudTypes, model.FraudImpossibleJump)
		riskScore = max(riskScore, fraud.ImpossibleJumpRisk)
		logger.Info("impossible_jump_detected",
			fmt.Sprintf("Implied speed %.1f km/h", *jumpCheck.SpeedKmh), "", ping.DeviceID)
	}

	// The cache always reflects the latest reported position, trusted or not.
	rec := model.RecencyRecord{
		Lat:             ping.UserCoords.Lat,
		Lon:             ping.UserCoords.Lon,
		TimestampMillis: ping.TimestampMillis,
	}
	if err := c.cache.Set(ctx, ping.DeviceID, rec, RecencyTTL); err != nil {
		// The cache is an optimization, the log store is the source of truth.
		logger.Warn("recency_set_failed", "Failed to write recency cache, continuing", "", ping.DeviceID, err.Error())
	}

	record := model.LogRecord{
		DeviceID:        ping.DeviceID,
		Lat:             ping.UserCoords.Lat,
		Lon:             ping.UserCoords.Lon,
		TimestampMillis: ping.TimestampMillis,
		FraudFlag:       joinFraudTypes(fraudTypes),
		RiskScore:       riskScore,
	}
	if _, err := c.store.Append(ctx, record); err != nil {
		return model.ClassificationResult{}, fmt.Errorf("failed to append location log: %w", err)
	}

	names := fraudTypeNames(fraudTypes)
	c.events.Publish(bus.TopicLocationUpdate, model.LocationUpdateEvent{
		DeviceID:   ping.DeviceID,
		Lat:        ping.UserCoords.Lat,
		Lon:        ping.UserCoords.Lon,
		FraudTypes: names,
		RiskScore:  riskScore,
		SpeedKmh:   jumpCheck.SpeedKmh,
		Timestamp:  ping.TimestampMillis,
	})
	if len(fraudTypes) > 0 {
		c.events.Publish(bus.TopicFraudAlert, model.FraudAlertEvent{
			DeviceID:   ping.DeviceID,
			FraudTypes: names,
			RiskScore:  riskScore,
			SpeedKmh:   jumpCheck.SpeedKmh,
			Lat:        ping.UserCoords.Lat,
			Lon:        ping.UserCoords.Lon,
			Timestamp:  ping.TimestampMillis,
		})
	}

	return model.ClassificationResult{
		DeviceID:   ping.DeviceID,
		FraudTypes: fraudTypes,
		RiskScore:  riskScore,
		SpeedKmh:   jumpCheck.SpeedKmh,
	}, nil
}

// RegisterDeliveryPoint stores a delivery reference coordinate as a flagged
// log record, independent of the ping pipeline.
func (c *Classifier) RegisterDeliveryPoint(ctx context.Context, deviceID string, coord model.Coordinate, city string) (string, error) {
	if strings.TrimSpace(deviceID) == "" {
		return "", ErrDeviceIDRequired
	}
	if !coord.Valid() {
		return "", ErrCoordsOutOfRange
	}

	flag := model.DeliveryPointFlag
	id, err := c.store.Append(ctx, model.LogRecord{
		DeviceID:        deviceID,
		Lat:             coord.Lat,
		Lon:             coord.Lon,
		TimestampMillis: time.Now().UnixMilli(),
		GPSCity:         city,
		FraudFlag:       &flag,
	})
	if err != nil {
		return "", fmt.Errorf("failed to store delivery point: %w", err)
	}

	logger.Info("delivery_point_saved", fmt.Sprintf("Delivery point registered at %s", city), "", deviceID)
	return id, nil
}

// ForgetDevice drops a device's cached position so its next ping classifies
// as a first ping. The audit log is untouched.
func (c *Classifier) ForgetDevice(ctx context.Context, deviceID string) error {
	if strings.TrimSpace(deviceID) == "" {
		return ErrDeviceIDRequired
	}
	if err := c.cache.Delete(ctx, deviceID); err != nil {
		return fmt.Errorf("failed to drop recency record: %w", err)
	}
	logger.Info("recency_dropped", "Recency record removed", "", deviceID)
	return nil
}

func (c *Classifier) LatestDeliveryPoint(ctx context.Context, deviceID string) (*model.LogRecord, error) {
	return c.store.LatestDeliveryPoint(ctx, deviceID)
}

func (c *Classifier) RecentLogs(ctx context.Context, limit int) ([]model.LogRecord, error) {
	return c.store.Recent(ctx, limit)
}

// CheckFraud is the on-demand check: resolves the GPS city, compares it to
// the city derived from the caller's IP, and measures the distance to the
// latest registered delivery point.
func (c *Classifier) CheckFraud(ctx context.Context, deviceID string, coord model.Coordinate, ipCity string) (model.FraudCheck, error) {
	if strings.TrimSpace(deviceID) == "" {
		return model.FraudCheck{}, ErrDeviceIDRequired
	}
	if !coord.Valid() {
		return model.FraudCheck{}, ErrCoordsOutOfRange
	}

	gpsCity := c.cities.Resolve(coord.Lat, coord.Lon)
	check := model.FraudCheck{
		GPSCity:     gpsCity,
		RegionFraud: ipCity != gpsCity,
	}

	delivery, err := c.store.LatestDeliveryPoint(ctx, deviceID)
	if err != nil {
		return model.FraudCheck{}, err
	}
	if delivery != nil {
		distance := geo.DistanceKm(coord, model.Coordinate{Lat: delivery.Lat, Lon: delivery.Lon})
		check.DistanceKm = &distance
		check.GeoFraud = distance > fraud.GeoMismatchThresholdKm
	}

	return check, nil
}

func validatePing(ping model.PingRequest) error {
	if strings.TrimSpace(ping.DeviceID) == "" {
		return ErrDeviceIDRequired
	}
	if !ping.UserCoords.Valid() {
		return ErrCoordsOutOfRange
	}
	if ping.DeliveryCoords != nil && !ping.DeliveryCoords.Valid() {
		return ErrCoordsOutOfRange
	}
	if ping.TimestampMillis <= 0 {
		return ErrTimestampRequired
	}
	return nil
}

func joinFraudTypes(kinds []model.FraudKind) *string {
	if len(kinds) == 0 {
		return nil
	}
	joined := strings.Join(fraudTypeNames(kinds), ", ")
	return &joined
}

func fraudTypeNames(kinds []model.FraudKind) []string {
	if len(kinds) == 0 {
		return nil
	}
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = string(k)
	}
	return names
}
