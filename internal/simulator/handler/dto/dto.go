package dto

type StartRequest struct {
	DeviceID string `json:"deviceId"`
	Mode     string `json:"mode"`
	Interval int    `json:"interval"`
}

type StartResponse struct {
	OK         bool           `json:"ok"`
	Message    string         `json:"message"`
	Simulation SimulationInfo `json:"simulation"`
}

type SimulationInfo struct {
	DeviceID    string `json:"deviceId"`
	Mode        string `json:"mode"`
	Interval    int    `json:"interval"`
	RouteLength int    `json:"routeLength"`
}

type StopRequest struct {
	DeviceID string `json:"deviceId"`
}

type MessageResponse struct {
	OK      bool   `json:"ok"`
	Message string `json:"message"`
}

type ErrorResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
}
