package model

// LocationUpdateEvent is broadcast for every classified ping. Field names and
// order are fixed, existing dashboard subscribers depend on them.
type LocationUpdateEvent struct {
	DeviceID   string   `json:"deviceId"`
	Lat        float64  `json:"lat"`
	Lon        float64  `json:"lon"`
	FraudTypes []string `json:"fraudTypes"`
	RiskScore  float64  `json:"riskScore"`
	SpeedKmh   *float64 `json:"speedKmh"`
	Timestamp  int64    `json:"timestamp"`
}

// FraudAlertEvent is broadcast only when at least one heuristic fired.
type FraudAlertEvent struct {
	DeviceID   string   `json:"deviceId"`
	FraudTypes []string `json:"fraudTypes"`
	RiskScore  float64  `json:"riskScore"`
	SpeedKmh   *float64 `json:"speedKmh"`
	Lat        float64  `json:"lat"`
	Lon        float64  `json:"lon"`
	Timestamp  int64    `json:"timestamp"`
}
