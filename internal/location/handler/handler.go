package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/earthly-glitch/fraudX-location-prototype/internal/common/logger"
	"github.com/earthly-glitch/fraudX-location-prototype/internal/location/handler/dto"
	"github.com/earthly-glitch/fraudX-location-prototype/internal/location/model"
	"github.com/earthly-glitch/fraudX-location-prototype/internal/location/service"
)

const recentLogsLimit = 100

type LocationHandler struct {
	service LocationService
}

func NewHandler(s LocationService) *LocationHandler {
	return &LocationHandler{service: s}
}

func (h *LocationHandler) Health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("Location Logging Service is up and running!"))
}

func (h *LocationHandler) Ping(w http.ResponseWriter, r *http.Request) {
	requestID := r.Header.Get("X-Request-ID")

	var req dto.PingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("ping_decode_failed", "Invalid request body", requestID, "", err.Error())
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.DeviceID == "" {
		writeError(w, http.StatusBadRequest, "deviceId is required")
		return
	}
	if req.UserCoords == nil || req.Timestamp == 0 {
		writeError(w, http.StatusBadRequest, "userCoords and timestamp are required")
		return
	}

	ping := model.PingRequest{
		DeviceID:        req.DeviceID,
		UserCoords:      model.Coordinate{Lat: req.UserCoords.Lat, Lon: req.UserCoords.Lon},
		TimestampMillis: req.Timestamp,
	}
	if req.DeliveryCoords != nil {
		ping.DeliveryCoords = &model.Coordinate{Lat: req.DeliveryCoords.Lat, Lon: req.DeliveryCoords.Lon}
	}

	logger.Info("ping_received", "Incoming ping", requestID, req.DeviceID)

	result, err := h.service.Classify(r.Context(), ping)
	if err != nil {
		if service.IsValidationError(err) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		logger.Error("ping_classify_failed", "Classification failed", requestID, req.DeviceID, err.Error())
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	var fraudTypes []string
	for _, k := range result.FraudTypes {
		fraudTypes = append(fraudTypes, string(k))
	}

	writeJSON(w, http.StatusOK, dto.PingResponse{
		OK:         true,
		DeviceID:   result.DeviceID,
		FraudTypes: fraudTypes,
		RiskScore:  result.RiskScore,
		SpeedKmh:   result.SpeedKmh,
	})
}

func (h *LocationHandler) Logs(w http.ResponseWriter, r *http.Request) {
	requestID := r.Header.Get("X-Request-ID")

	records, err := h.service.RecentLogs(r.Context(), recentLogsLimit)
	if err != nil {
		logger.Error("logs_query_failed", "Failed to fetch recent logs", requestID, "", err.Error())
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	resp := make([]dto.LogRecordResponse, 0, len(records))
	for _, rec := range records {
		resp = append(resp, toLogRecordResponse(rec))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *LocationHandler) SetDelivery(w http.ResponseWriter, r *http.Request) {
	requestID := r.Header.Get("X-Request-ID")

	var req dto.SetDeliveryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	id, err := h.service.RegisterDeliveryPoint(r.Context(), req.DeviceID,
		model.Coordinate{Lat: req.Lat, Lon: req.Lon}, req.City)
	if err != nil {
		if service.IsValidationError(err) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		logger.Error("set_delivery_failed", "Failed to register delivery point", requestID, req.DeviceID, err.Error())
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, dto.SetDeliveryResponse{OK: true, StoredID: id})
}

func (h *LocationHandler) CheckFraud(w http.ResponseWriter, r *http.Request) {
	requestID := r.Header.Get("X-Request-ID")

	var req dto.CheckFraudRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.DeviceID == "" || req.IPCity == "" {
		writeError(w, http.StatusBadRequest, "deviceId, lat, lon and ipCity are required")
		return
	}

	check, err := h.service.CheckFraud(r.Context(), req.DeviceID,
		model.Coordinate{Lat: req.Lat, Lon: req.Lon}, req.IPCity)
	if err != nil {
		if service.IsValidationError(err) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		logger.Error("check_fraud_failed", "On-demand fraud check failed", requestID, req.DeviceID, err.Error())
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, dto.CheckFraudResponse{
		OK:          true,
		GPSCity:     check.GPSCity,
		RegionFraud: check.RegionFraud,
		GeoFraud:    check.GeoFraud,
		DistanceKm:  check.DistanceKm,
	})
}

// ForgetRecency drops a device's cached last position, operator-only cleanup.
func (h *LocationHandler) ForgetRecency(w http.ResponseWriter, r *http.Request) {
	requestID := r.Header.Get("X-Request-ID")
	deviceID := r.PathValue("device_id")

	if err := h.service.ForgetDevice(r.Context(), deviceID); err != nil {
		if service.IsValidationError(err) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		logger.Error("forget_recency_failed", "Failed to drop recency record", requestID, deviceID, err.Error())
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, dto.MessageResponse{
		OK:      true,
		Message: "Recency record removed for " + deviceID,
	})
}

func (h *LocationHandler) Delivery(w http.ResponseWriter, r *http.Request) {
	requestID := r.Header.Get("X-Request-ID")
	deviceID := r.PathValue("device_id")

	rec, err := h.service.LatestDeliveryPoint(r.Context(), deviceID)
	if err != nil {
		logger.Error("delivery_query_failed", "Failed to fetch delivery point", requestID, deviceID, err.Error())
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if rec == nil {
		writeError(w, http.StatusNotFound, "no delivery point registered")
		return
	}

	writeJSON(w, http.StatusOK, toLogRecordResponse(*rec))
}

func toLogRecordResponse(rec model.LogRecord) dto.LogRecordResponse {
	return dto.LogRecordResponse{
		ID:        rec.ID,
		DeviceID:  rec.DeviceID,
		Lat:       rec.Lat,
		Lon:       rec.Lon,
		Timestamp: rec.TimestampMillis,
		IPCity:    rec.IPCity,
		GPSCity:   rec.GPSCity,
		FraudFlag: rec.FraudFlag,
		RiskScore: rec.RiskScore,
		CreatedAt: rec.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("response_encode_failed", "Failed to encode response", "", "", err.Error())
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, dto.ErrorResponse{OK: false, Error: msg})
}
