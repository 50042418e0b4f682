package fraud

import (
	"github.com/earthly-glitch/fraudX-location-prototype/internal/location/geo"
	"github.com/earthly-glitch/fraudX-location-prototype/internal/location/model"
)

const (
	// GeoMismatchThresholdKm is the delivery-radius tolerance (500 m).
	GeoMismatchThresholdKm = 0.5
	// MaxPlausibleSpeedKmh is the highest speed legitimate urban delivery
	// movement should reach between two consecutive pings.
	MaxPlausibleSpeedKmh = 100.0

	GeoMismatchRisk    = 0.8
	ImpossibleJumpRisk = 0.9
)

type GeoMismatchResult struct {
	Flagged    bool
	DistanceKm *float64
}

// CheckGeoMismatch flags a ping reported too far from the registered delivery
// point. With no delivery point there is nothing to compare against.
func CheckGeoMismatch(delivery *model.Coordinate, user model.Coordinate) GeoMismatchResult {
	if delivery == nil {
		return GeoMismatchResult{}
	}

	distance := geo.DistanceKm(*delivery, user)
	return GeoMismatchResult{
		Flagged:    distance > GeoMismatchThresholdKm,
		DistanceKm: &distance,
	}
}

type JumpResult struct {
	Flagged    bool
	SpeedKmh   *float64
	DistanceKm *float64
}

// CheckImpossibleJump flags travel speed between the previous and current ping
// above MaxPlausibleSpeedKmh. The first ping of a device never flags. A
// non-increasing timestamp (duplicate or out-of-order ping) is treated as a
// benign no-op: speed 0, distance still reported for diagnostics.
func CheckImpossibleJump(prev *model.RecencyRecord, curr model.Coordinate, currMillis int64) JumpResult {
	if prev == nil {
		return JumpResult{}
	}

	distance := geo.DistanceKm(model.Coordinate{Lat: prev.Lat, Lon: prev.Lon}, curr)
	hours := float64(currMillis-prev.TimestampMillis) / 3_600_000

	if hours <= 0 {
		zero := 0.0
		return JumpResult{SpeedKmh: &zero, DistanceKm: &distance}
	}

	speed := distance / hours
	return JumpResult{
		Flagged:    speed > MaxPlausibleSpeedKmh,
		SpeedKmh:   &speed,
		DistanceKm: &distance,
	}
}
