package geo

import (
	"math"
	"testing"

	"github.com/earthly-glitch/fraudX-location-prototype/internal/location/model"
)

func TestDistanceKm_Identity(t *testing.T) {
	points := []model.Coordinate{
		{Lat: 0, Lon: 0},
		{Lat: 18.5204, Lon: 73.8567},
		{Lat: -33.8688, Lon: 151.2093},
		{Lat: 90, Lon: 0},
	}

	for _, p := range points {
		if d := DistanceKm(p, p); math.Abs(d) > 1e-9 {
			t.Errorf("DistanceKm(%v, %v) = %v, expected 0", p, p, d)
		}
	}
}

func TestDistanceKm_Symmetry(t *testing.T) {
	pairs := [][2]model.Coordinate{
		{{Lat: 18.5204, Lon: 73.8567}, {Lat: 19.0760, Lon: 72.8777}},
		{{Lat: 12.9716, Lon: 77.5946}, {Lat: 28.7041, Lon: 77.1025}},
		{{Lat: -45.0, Lon: -170.0}, {Lat: 60.0, Lon: 170.0}},
		{{Lat: 0, Lon: 0}, {Lat: 0.001, Lon: 0.001}},
	}

	for _, pair := range pairs {
		ab := DistanceKm(pair[0], pair[1])
		ba := DistanceKm(pair[1], pair[0])
		if math.Abs(ab-ba) > 1e-9 {
			t.Errorf("DistanceKm not symmetric for %v: %v vs %v", pair, ab, ba)
		}
	}
}

func TestDistanceKm_KnownDistances(t *testing.T) {
	tests := []struct {
		name   string
		a, b   model.Coordinate
		wantKm float64
		within float64
	}{
		{
			name:   "Pune to Mumbai",
			a:      model.Coordinate{Lat: 18.5204, Lon: 73.8567},
			b:      model.Coordinate{Lat: 19.0760, Lon: 72.8777},
			wantKm: 120,
			within: 10,
		},
		{
			name:   "Bangalore to Mysore",
			a:      model.Coordinate{Lat: 12.9716, Lon: 77.5946},
			b:      model.Coordinate{Lat: 12.2958, Lon: 76.6394},
			wantKm: 128,
			within: 10,
		},
		{
			name:   "adjacent waypoints stay short",
			a:      model.Coordinate{Lat: 18.5204, Lon: 73.8567},
			b:      model.Coordinate{Lat: 18.5218, Lon: 73.8577},
			wantKm: 0.19,
			within: 0.1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DistanceKm(tt.a, tt.b)
			if math.Abs(got-tt.wantKm) > tt.within {
				t.Errorf("DistanceKm = %.3f km, expected %.1f±%.1f km", got, tt.wantKm, tt.within)
			}
		})
	}
}
