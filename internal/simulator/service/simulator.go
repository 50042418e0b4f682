package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/earthly-glitch/fraudX-location-prototype/internal/common/bus"
	"github.com/earthly-glitch/fraudX-location-prototype/internal/common/logger"
	"github.com/earthly-glitch/fraudX-location-prototype/internal/location/geo"
	"github.com/earthly-glitch/fraudX-location-prototype/internal/location/model"
)

const submitTimeout = 10 * time.Second

// PingSink is the ingestion path a simulated device submits through, the
// same path a real device reaches over HTTP.
type PingSink interface {
	Submit(ctx context.Context, ping model.PingRequest) (model.ClassificationResult, error)
}

type EventBus interface {
	Publish(topic string, payload any)
}

type Stats struct {
	FraudsDetected int     `json:"fraudsDetected"`
	LastFraudType  string  `json:"lastFraudType,omitempty"`
	MaxSpeedKmh    float64 `json:"maxSpeedKmh"`
}

type Snapshot struct {
	DeviceID        string   `json:"deviceId"`
	Mode            string   `json:"mode"`
	Running         bool     `json:"isRunning"`
	PingCount       int      `json:"pingCount"`
	CurrentLocation Waypoint `json:"currentLocation"`
	Progress        string   `json:"progress"`
	TotalDistanceKm float64  `json:"totalDistanceKm"`
	Stats           Stats    `json:"stats"`
}

type simulation struct {
	deviceID string
	mode     string
	interval time.Duration
	route    []Waypoint

	mu              sync.Mutex
	pos             int
	pingCount       int
	totalDistanceKm float64
	stats           Stats

	startedAt time.Time
	quit      chan struct{}
	done      chan struct{}

	sink PingSink
	bus  EventBus
}

// Registry owns every live simulation. At most one simulation per device.
type Registry struct {
	mu   sync.Mutex
	sims map[string]*simulation

	sink        PingSink
	bus         EventBus
	minInterval int
	maxInterval int
}

func NewRegistry(sink PingSink, events EventBus, minIntervalSeconds, maxIntervalSeconds int) *Registry {
	return &Registry{
		sims:        make(map[string]*simulation),
		sink:        sink,
		bus:         events,
		minInterval: minIntervalSeconds,
		maxInterval: maxIntervalSeconds,
	}
}

// Start validates the request, registers the simulation and fires the first
// ping immediately. A second Start for the same device is rejected.
func (r *Registry) Start(deviceID, mode string, intervalSeconds int) (Snapshot, error) {
	if strings.TrimSpace(deviceID) == "" {
		return Snapshot{}, ErrDeviceIDRequired
	}

	route, ok := Route(mode)
	if !ok {
		return Snapshot{}, fmt.Errorf("%w: %q", ErrInvalidMode, mode)
	}
	if intervalSeconds < r.minInterval || intervalSeconds > r.maxInterval {
		return Snapshot{}, fmt.Errorf("%w: %d not in [%d, %d]",
			ErrInvalidInterval, intervalSeconds, r.minInterval, r.maxInterval)
	}

	sim := &simulation{
		deviceID:  deviceID,
		mode:      mode,
		interval:  time.Duration(intervalSeconds) * time.Second,
		route:     route,
		startedAt: time.Now(),
		quit:      make(chan struct{}),
		done:      make(chan struct{}),
		sink:      r.sink,
		bus:       r.bus,
	}

	r.mu.Lock()
	if _, exists := r.sims[deviceID]; exists {
		r.mu.Unlock()
		return Snapshot{}, fmt.Errorf("%w: %s", ErrAlreadyRunning, deviceID)
	}
	r.sims[deviceID] = sim
	r.mu.Unlock()

	go sim.run()

	logger.Info("simulation_started", fmt.Sprintf("Simulation started in %s mode", mode), "", deviceID)
	r.bus.Publish(bus.TopicSimulationStarted, simulationStartedEvent{
		DeviceID:        deviceID,
		Mode:            mode,
		IntervalSeconds: intervalSeconds,
	})

	return sim.snapshot(), nil
}

// Stop cancels the timer and removes the simulation. When it returns, no
// further tick will fire. Returns false when no simulation was found.
func (r *Registry) Stop(deviceID string) bool {
	r.mu.Lock()
	sim, ok := r.sims[deviceID]
	if !ok {
		r.mu.Unlock()
		return false
	}
	delete(r.sims, deviceID)
	r.mu.Unlock()

	close(sim.quit)
	<-sim.done

	sim.mu.Lock()
	totalPings := sim.pingCount
	sim.mu.Unlock()

	logger.Info("simulation_stopped", fmt.Sprintf("Simulation stopped after %d pings", totalPings), "", deviceID)
	r.bus.Publish(bus.TopicSimulationStopped, simulationStoppedEvent{
		DeviceID:   deviceID,
		TotalPings: totalPings,
		DurationMs: time.Since(sim.startedAt).Milliseconds(),
	})

	return true
}

// StopAll stops every active simulation and returns how many were stopped.
// Safe to call repeatedly, including with zero active simulations.
func (r *Registry) StopAll() int {
	r.mu.Lock()
	ids := make([]string, 0, len(r.sims))
	for id := range r.sims {
		ids = append(ids, id)
	}
	r.mu.Unlock()

	count := 0
	for _, id := range ids {
		if r.Stop(id) {
			count++
		}
	}
	return count
}

func (r *Registry) Status(deviceID string) (Snapshot, bool) {
	r.mu.Lock()
	sim, ok := r.sims[deviceID]
	r.mu.Unlock()
	if !ok {
		return Snapshot{}, false
	}
	return sim.snapshot(), true
}

func (r *Registry) StatusAll() []Snapshot {
	r.mu.Lock()
	sims := make([]*simulation, 0, len(r.sims))
	for _, sim := range r.sims {
		sims = append(sims, sim)
	}
	r.mu.Unlock()

	snapshots := make([]Snapshot, 0, len(sims))
	for _, sim := range sims {
		snapshots = append(snapshots, sim.snapshot())
	}
	return snapshots
}

func (r *Registry) ActiveCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sims)
}

func (s *simulation) run() {
	defer close(s.done)

	// Tick 0 is not deferred.
	s.tick()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.quit:
			return
		case <-ticker.C:
			s.tick()
		}
	}
}

func (s *simulation) tick() {
	s.mu.Lock()
	wp := s.route[s.pos]
	if s.pos > 0 {
		prev := s.route[s.pos-1]
		s.totalDistanceKm += geo.DistanceKm(
			model.Coordinate{Lat: prev.Lat, Lon: prev.Lon},
			model.Coordinate{Lat: wp.Lat, Lon: wp.Lon},
		)
	}
	s.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), submitTimeout)
	result, err := s.sink.Submit(ctx, model.PingRequest{
		DeviceID:        s.deviceID,
		UserCoords:      model.Coordinate{Lat: wp.Lat, Lon: wp.Lon},
		TimestampMillis: time.Now().UnixMilli(),
	})
	cancel()

	if err != nil {
		// Transient by assumption, the same waypoint is retried next tick.
		logger.Warn("sim_ping_failed", "Ping submission failed", "", s.deviceID, err.Error())
		s.bus.Publish(bus.TopicPingError, pingErrorEvent{DeviceID: s.deviceID, Error: err.Error()})
		return
	}

	s.mu.Lock()
	s.pingCount++
	if len(result.FraudTypes) > 0 {
		s.stats.FraudsDetected++
		names := make([]string, len(result.FraudTypes))
		for i, k := range result.FraudTypes {
			names[i] = string(k)
		}
		s.stats.LastFraudType = strings.Join(names, ", ")
	}
	if result.SpeedKmh != nil && *result.SpeedKmh > s.stats.MaxSpeedKmh {
		s.stats.MaxSpeedKmh = *result.SpeedKmh
	}

	pingNumber := s.pingCount
	stats := s.stats
	totalDistance := s.totalDistanceKm

	s.pos++
	completed := false
	if s.pos >= len(s.route) {
		s.pos = 0
		s.totalDistanceKm = 0
		completed = true
	}
	s.mu.Unlock()

	s.bus.Publish(bus.TopicPingSent, pingSentEvent{
		DeviceID:   s.deviceID,
		Location:   wp,
		PingNumber: pingNumber,
		Result:     result,
		Stats: tickStats{
			TotalDistanceKm: totalDistance,
			FraudsDetected:  stats.FraudsDetected,
			LastFraudType:   stats.LastFraudType,
			MaxSpeedKmh:     stats.MaxSpeedKmh,
		},
	})

	if completed {
		s.bus.Publish(bus.TopicRouteCompleted, routeCompletedEvent{DeviceID: s.deviceID})
	}
}

func (s *simulation) snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		DeviceID:        s.deviceID,
		Mode:            s.mode,
		Running:         true,
		PingCount:       s.pingCount,
		CurrentLocation: s.route[s.pos],
		Progress:        fmt.Sprintf("%d/%d", s.pos, len(s.route)),
		TotalDistanceKm: s.totalDistanceKm,
		Stats:           s.stats,
	}
}

type simulationStartedEvent struct {
	DeviceID        string `json:"deviceId"`
	Mode            string `json:"mode"`
	IntervalSeconds int    `json:"interval"`
}

type simulationStoppedEvent struct {
	DeviceID   string `json:"deviceId"`
	TotalPings int    `json:"totalPings"`
	DurationMs int64  `json:"durationMs"`
}

type pingSentEvent struct {
	DeviceID   string                     `json:"deviceId"`
	Location   Waypoint                   `json:"location"`
	PingNumber int                        `json:"pingNumber"`
	Result     model.ClassificationResult `json:"result"`
	Stats      tickStats                  `json:"stats"`
}

type tickStats struct {
	TotalDistanceKm float64 `json:"totalDistanceKm"`
	FraudsDetected  int     `json:"fraudsDetected"`
	LastFraudType   string  `json:"lastFraudType,omitempty"`
	MaxSpeedKmh     float64 `json:"maxSpeedKmh"`
}

type routeCompletedEvent struct {
	DeviceID string `json:"deviceId"`
}

type pingErrorEvent struct {
	DeviceID string `json:"deviceId"`
	Error    string `json:"error"`
}
