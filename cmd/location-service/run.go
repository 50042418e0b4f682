package location_service

import (
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/earthly-glitch/fraudX-location-prototype/internal/common/auth"
	"github.com/earthly-glitch/fraudX-location-prototype/internal/location/handler"
	"github.com/earthly-glitch/fraudX-location-prototype/internal/location/repository"
	"github.com/earthly-glitch/fraudX-location-prototype/internal/location/service"
)

// Run wires the classification pipeline onto the mux and returns the
// in-process ping sink for the simulator.
func Run(pool *pgxpool.Pool, cache service.RecencyCache, events service.EventBus, mux *http.ServeMux) *service.Sink {
	repo := repository.NewLocationRepository(pool)
	svc := service.NewClassifier(cache, repo, events, service.NewCityMapper())
	h := handler.NewHandler(svc)

	mux.HandleFunc("GET /api/location", h.Health)
	mux.HandleFunc("POST /api/location/ping", h.Ping)
	mux.HandleFunc("GET /api/location/logs", h.Logs)
	mux.HandleFunc("POST /api/location/set-delivery", h.SetDelivery)
	mux.HandleFunc("POST /api/location/check-fraud", h.CheckFraud)
	mux.HandleFunc("GET /api/location/delivery/{device_id}", h.Delivery)
	mux.HandleFunc("DELETE /api/location/recency/{device_id}", auth.RequireRole(auth.RoleOperator, h.ForgetRecency))

	return service.NewSink(svc)
}
