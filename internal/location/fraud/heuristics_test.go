package fraud

import (
	"testing"

	"github.com/earthly-glitch/fraudX-location-prototype/internal/location/model"
)

func TestCheckGeoMismatch_NoDeliveryPoint(t *testing.T) {
	res := CheckGeoMismatch(nil, model.Coordinate{Lat: 18.5204, Lon: 73.8567})

	if res.Flagged {
		t.Error("expected no flag without a delivery point")
	}
	if res.DistanceKm != nil {
		t.Errorf("expected nil distance, got %v", *res.DistanceKm)
	}
}

func TestCheckGeoMismatch_WithinTolerance(t *testing.T) {
	delivery := &model.Coordinate{Lat: 18.5204, Lon: 73.8567}
	// ~150 m away, inside the 500 m radius
	res := CheckGeoMismatch(delivery, model.Coordinate{Lat: 18.5214, Lon: 73.8575})

	if res.Flagged {
		t.Errorf("expected no flag at %.3f km", *res.DistanceKm)
	}
	if res.DistanceKm == nil {
		t.Fatal("expected distance to be reported")
	}
}

func TestCheckGeoMismatch_FarFromDelivery(t *testing.T) {
	delivery := &model.Coordinate{Lat: 12.9716, Lon: 77.5946}
	res := CheckGeoMismatch(delivery, model.Coordinate{Lat: 12.2958, Lon: 76.6394})

	if !res.Flagged {
		t.Error("expected flag ~128 km from delivery point")
	}
	if res.DistanceKm == nil || *res.DistanceKm < 100 {
		t.Errorf("expected distance > 100 km, got %v", res.DistanceKm)
	}
}

func TestCheckImpossibleJump_FirstPing(t *testing.T) {
	res := CheckImpossibleJump(nil, model.Coordinate{Lat: 18.52, Lon: 73.86}, 1700000000000)

	if res.Flagged {
		t.Error("first ping for a device must never flag")
	}
	if res.SpeedKmh != nil || res.DistanceKm != nil {
		t.Error("expected nil speed and distance without a previous record")
	}
}

func TestCheckImpossibleJump_HighwaySpeedJump(t *testing.T) {
	t0 := int64(1700000000000)
	prev := &model.RecencyRecord{Lat: 18.52, Lon: 73.86, TimestampMillis: t0}

	// ~120 km in exactly one hour
	res := CheckImpossibleJump(prev, model.Coordinate{Lat: 19.08, Lon: 72.88}, t0+3_600_000)

	if !res.Flagged {
		t.Fatal("expected ImpossibleJump at ~120 km/h")
	}
	if res.SpeedKmh == nil {
		t.Fatal("expected speed to be reported")
	}
	if *res.SpeedKmh <= MaxPlausibleSpeedKmh || *res.SpeedKmh > 140 {
		t.Errorf("speed = %.1f km/h, expected just above %v", *res.SpeedKmh, MaxPlausibleSpeedKmh)
	}
}

func TestCheckImpossibleJump_SlowMovement(t *testing.T) {
	t0 := int64(1700000000000)
	prev := &model.RecencyRecord{Lat: 18.5204, Lon: 73.8567, TimestampMillis: t0}

	// next waypoint ~190 m away, 10 seconds later => ~70 km/h ceiling not reached
	res := CheckImpossibleJump(prev, model.Coordinate{Lat: 18.5218, Lon: 73.8577}, t0+10_000)

	if res.Flagged {
		t.Errorf("expected no flag at %.1f km/h", *res.SpeedKmh)
	}
}

func TestCheckImpossibleJump_NonIncreasingTimestamp(t *testing.T) {
	t0 := int64(1700000000000)
	prev := &model.RecencyRecord{Lat: 18.52, Lon: 73.86, TimestampMillis: t0}
	curr := model.Coordinate{Lat: 19.08, Lon: 72.88}

	for _, ts := range []int64{t0, t0 - 5_000} {
		res := CheckImpossibleJump(prev, curr, ts)

		if res.Flagged {
			t.Errorf("timestamp diff %d must not flag", ts-t0)
		}
		if res.SpeedKmh == nil || *res.SpeedKmh != 0 {
			t.Errorf("expected speed 0 for non-positive diff, got %v", res.SpeedKmh)
		}
		if res.DistanceKm == nil || *res.DistanceKm < 100 {
			t.Errorf("distance should still be surfaced for diagnostics, got %v", res.DistanceKm)
		}
	}
}
