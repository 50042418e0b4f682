package dto

type Coords struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

type PingRequest struct {
	DeviceID       string  `json:"deviceId"`
	UserCoords     *Coords `json:"userCoords"`
	DeliveryCoords *Coords `json:"deliveryCoords,omitempty"`
	Timestamp      int64   `json:"timestamp"`
}

type PingResponse struct {
	OK         bool     `json:"ok"`
	DeviceID   string   `json:"deviceId"`
	FraudTypes []string `json:"fraudTypes"`
	RiskScore  float64  `json:"riskScore"`
	SpeedKmh   *float64 `json:"speedKmh"`
}

type ErrorResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
}

type MessageResponse struct {
	OK      bool   `json:"ok"`
	Message string `json:"message"`
}

type SetDeliveryRequest struct {
	DeviceID string  `json:"deviceId"`
	Lat      float64 `json:"lat"`
	Lon      float64 `json:"lon"`
	City     string  `json:"city"`
}

type SetDeliveryResponse struct {
	OK       bool   `json:"ok"`
	StoredID string `json:"storedId"`
}

type CheckFraudRequest struct {
	DeviceID string  `json:"deviceId"`
	Lat      float64 `json:"lat"`
	Lon      float64 `json:"lon"`
	IPCity   string  `json:"ipCity"`
}

type CheckFraudResponse struct {
	OK          bool     `json:"ok"`
	GPSCity     string   `json:"gpsCity"`
	RegionFraud bool     `json:"regionFraud"`
	GeoFraud    bool     `json:"geoFraud"`
	DistanceKm  *float64 `json:"distance"`
}

type LogRecordResponse struct {
	ID        string  `json:"id"`
	DeviceID  string  `json:"deviceId"`
	Lat       float64 `json:"lat"`
	Lon       float64 `json:"lon"`
	Timestamp int64   `json:"timestamp"`
	IPCity    string  `json:"ipCity,omitempty"`
	GPSCity   string  `json:"gpsCity,omitempty"`
	FraudFlag *string `json:"fraudFlag"`
	RiskScore float64 `json:"riskScore"`
	CreatedAt string  `json:"createdAt"`
}
