package geo

import (
	"math"

	"github.com/earthly-glitch/fraudX-location-prototype/internal/location/model"
)

const earthRadiusKm = 6371

// DistanceKm returns the great-circle distance between two coordinates using
// the haversine formula. Callers validate coordinate ranges beforehand.
func DistanceKm(a, b model.Coordinate) float64 {
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLon := (b.Lon - a.Lon) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(a.Lat*math.Pi/180)*math.Cos(b.Lat*math.Pi/180)*
			math.Sin(dLon/2)*math.Sin(dLon/2)

	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
	return earthRadiusKm * c
}
