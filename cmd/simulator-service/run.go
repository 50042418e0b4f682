package simulator_service

import (
	"net/http"

	"github.com/earthly-glitch/fraudX-location-prototype/internal/common/auth"
	"github.com/earthly-glitch/fraudX-location-prototype/internal/common/config"
	"github.com/earthly-glitch/fraudX-location-prototype/internal/simulator/handler"
	"github.com/earthly-glitch/fraudX-location-prototype/internal/simulator/service"
)

// Run builds the simulation registry and mounts its control endpoints.
// Mutating endpoints require an operator token.
func Run(cfg *config.Config, sink service.PingSink, events service.EventBus, mux *http.ServeMux) *service.Registry {
	registry := service.NewRegistry(sink, events,
		cfg.Simulator.MinIntervalSeconds, cfg.Simulator.MaxIntervalSeconds)
	h := handler.NewHandler(registry)

	mux.HandleFunc("POST /api/simulator/start", auth.RequireRole(auth.RoleOperator, h.Start))
	mux.HandleFunc("POST /api/simulator/stop", auth.RequireRole(auth.RoleOperator, h.Stop))
	mux.HandleFunc("POST /api/simulator/stop-all", auth.RequireRole(auth.RoleOperator, h.StopAll))
	mux.HandleFunc("GET /api/simulator/status", h.Status)
	mux.HandleFunc("GET /api/simulator/status/{device_id}", h.StatusByDevice)

	return registry
}
