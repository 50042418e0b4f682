package model

import "time"

type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Valid reports whether the coordinate is inside the WGS84 degree ranges.
func (c Coordinate) Valid() bool {
	return c.Lat >= -90 && c.Lat <= 90 && c.Lon >= -180 && c.Lon <= 180
}

type FraudKind string

const (
	FraudGeoMismatch    FraudKind = "GeoMismatch"
	FraudImpossibleJump FraudKind = "ImpossibleJump"
)

// DeliveryPointFlag marks a log record that is a registered delivery
// reference point rather than a device ping.
const DeliveryPointFlag = "DeliveryPoint"

type PingRequest struct {
	DeviceID        string
	UserCoords      Coordinate
	DeliveryCoords  *Coordinate
	TimestampMillis int64
}

// RecencyRecord is the last known position of a device, kept in the cache
// for 24 hours and overwritten on every ping.
type RecencyRecord struct {
	Lat             float64 `json:"lat"`
	Lon             float64 `json:"lon"`
	TimestampMillis int64   `json:"timestamp"`
}

type ClassificationResult struct {
	DeviceID   string      `json:"deviceId"`
	FraudTypes []FraudKind `json:"fraudTypes"`
	RiskScore  float64     `json:"riskScore"`
	SpeedKmh   *float64    `json:"speedKmh"`
}

// LogRecord is an immutable append-only audit entry. One per ping plus one
// per delivery-point registration.
type LogRecord struct {
	ID              string
	DeviceID        string
	Lat             float64
	Lon             float64
	TimestampMillis int64
	IPCity          string
	GPSCity         string
	FraudFlag       *string
	RiskScore       float64
	CreatedAt       time.Time
}

type FraudCheck struct {
	GPSCity     string
	RegionFraud bool
	GeoFraud    bool
	DistanceKm  *float64
}
