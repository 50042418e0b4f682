package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/earthly-glitch/fraudX-location-prototype/internal/common/auth"
	"github.com/earthly-glitch/fraudX-location-prototype/internal/common/logger"
	"github.com/earthly-glitch/fraudX-location-prototype/internal/simulator/handler/dto"
	"github.com/earthly-glitch/fraudX-location-prototype/internal/simulator/service"
)

const (
	defaultMode     = service.ModeNormal
	defaultInterval = 10
)

type SimulatorHandler struct {
	registry *service.Registry
}

func NewHandler(registry *service.Registry) *SimulatorHandler {
	return &SimulatorHandler{registry: registry}
}

func (h *SimulatorHandler) Start(w http.ResponseWriter, r *http.Request) {
	requestID := r.Header.Get("X-Request-ID")

	var req dto.StartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Mode == "" {
		req.Mode = defaultMode
	}
	if req.Interval == 0 {
		req.Interval = defaultInterval
	}

	logger.Info("sim_start_requested",
		fmt.Sprintf("Start requested by %s", operatorID(r)), requestID, req.DeviceID)

	snapshot, err := h.registry.Start(req.DeviceID, req.Mode, req.Interval)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAlreadyRunning):
			writeError(w, http.StatusConflict, err.Error())
		case errors.Is(err, service.ErrInvalidMode),
			errors.Is(err, service.ErrInvalidInterval),
			errors.Is(err, service.ErrDeviceIDRequired):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			logger.Error("sim_start_failed", "Failed to start simulation", requestID, req.DeviceID, err.Error())
			writeError(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	writeJSON(w, http.StatusOK, dto.StartResponse{
		OK:      true,
		Message: fmt.Sprintf("Simulation started for %s", req.DeviceID),
		Simulation: dto.SimulationInfo{
			DeviceID:    snapshot.DeviceID,
			Mode:        snapshot.Mode,
			Interval:    req.Interval,
			RouteLength: routeLength(snapshot.Mode),
		},
	})
}

func (h *SimulatorHandler) Stop(w http.ResponseWriter, r *http.Request) {
	var req dto.StopRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.DeviceID == "" {
		writeError(w, http.StatusBadRequest, "deviceId is required")
		return
	}

	logger.Info("sim_stop_requested",
		fmt.Sprintf("Stop requested by %s", operatorID(r)), r.Header.Get("X-Request-ID"), req.DeviceID)

	if !h.registry.Stop(req.DeviceID) {
		writeError(w, http.StatusNotFound, "No active simulation found")
		return
	}

	writeJSON(w, http.StatusOK, dto.MessageResponse{
		OK:      true,
		Message: fmt.Sprintf("Simulation stopped for %s", req.DeviceID),
	})
}

func (h *SimulatorHandler) StopAll(w http.ResponseWriter, r *http.Request) {
	count := h.registry.StopAll()
	logger.Info("sim_stop_all",
		fmt.Sprintf("Stopped %d simulations, requested by %s", count, operatorID(r)),
		r.Header.Get("X-Request-ID"), "")
	writeJSON(w, http.StatusOK, dto.MessageResponse{
		OK:      true,
		Message: fmt.Sprintf("Stopped %d simulations", count),
	})
}

func (h *SimulatorHandler) Status(w http.ResponseWriter, r *http.Request) {
	snapshots := h.registry.StatusAll()
	writeJSON(w, http.StatusOK, map[string]any{
		"ok":                true,
		"activeSimulations": snapshots,
		"count":             len(snapshots),
	})
}

func (h *SimulatorHandler) StatusByDevice(w http.ResponseWriter, r *http.Request) {
	deviceID := r.PathValue("device_id")

	snapshot, ok := h.registry.Status(deviceID)
	if !ok {
		writeError(w, http.StatusNotFound, "Simulation not found")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"ok":         true,
		"simulation": snapshot,
	})
}

// operatorID resolves the authenticated operator from the request context.
func operatorID(r *http.Request) string {
	if claims := auth.FromContext(r); claims != nil {
		return claims.UserID
	}
	return "unknown"
}

func routeLength(mode string) int {
	route, _ := service.Route(mode)
	return len(route)
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
