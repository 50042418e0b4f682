package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/earthly-glitch/fraudX-location-prototype/internal/common/bus"
	"github.com/earthly-glitch/fraudX-location-prototype/internal/location/geo"
	"github.com/earthly-glitch/fraudX-location-prototype/internal/location/model"
)

// fakeSink mimics the classifier's jump heuristic on distance alone: in-test
// ticks land on near-identical timestamps, so time-based speed is useless.
type fakeSink struct {
	mu      sync.Mutex
	pings   []model.PingRequest
	err     error
	prev    map[string]model.Coordinate
	flagKmh float64
}

func newFakeSink() *fakeSink {
	return &fakeSink{prev: make(map[string]model.Coordinate)}
}

func (f *fakeSink) Submit(ctx context.Context, ping model.PingRequest) (model.ClassificationResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.err != nil {
		return model.ClassificationResult{}, f.err
	}
	f.pings = append(f.pings, ping)

	result := model.ClassificationResult{DeviceID: ping.DeviceID}
	if prev, ok := f.prev[ping.DeviceID]; ok {
		distance := geo.DistanceKm(prev, ping.UserCoords)
		speed := distance * 60 // pretend one-minute spacing
		result.SpeedKmh = &speed
		if distance > 50 {
			result.FraudTypes = []model.FraudKind{model.FraudImpossibleJump}
			result.RiskScore = 0.9
		}
	}
	f.prev[ping.DeviceID] = ping.UserCoords
	return result, nil
}

func (f *fakeSink) submitted() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.pings)
}

type recordedEvent struct {
	topic   string
	payload any
}

type fakeBus struct {
	mu     sync.Mutex
	events []recordedEvent
}

func (f *fakeBus) Publish(topic string, payload any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, recordedEvent{topic: topic, payload: payload})
}

func (f *fakeBus) count(topic string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, e := range f.events {
		if e.topic == topic {
			n++
		}
	}
	return n
}

func newTestRegistry() (*Registry, *fakeSink, *fakeBus) {
	sink := newFakeSink()
	events := &fakeBus{}
	return NewRegistry(sink, events, 5, 60), sink, events
}

func newTestSimulation(mode string, sink PingSink, events EventBus) *simulation {
	route, _ := Route(mode)
	return &simulation{
		deviceID:  "sim-device",
		mode:      mode,
		interval:  time.Minute,
		route:     route,
		startedAt: time.Now(),
		quit:      make(chan struct{}),
		done:      make(chan struct{}),
		sink:      sink,
		bus:       events,
	}
}

func TestStart_DuplicateRejected(t *testing.T) {
	r, _, _ := newTestRegistry()
	defer r.StopAll()

	if _, err := r.Start("device-1", ModeNormal, 10); err != nil {
		t.Fatalf("first Start failed: %v", err)
	}
	if _, err := r.Start("device-1", ModeFast, 10); !errors.Is(err, ErrAlreadyRunning) {
		t.Errorf("second Start error = %v, expected ErrAlreadyRunning", err)
	}
}

func TestStart_InvalidMode(t *testing.T) {
	r, _, _ := newTestRegistry()

	if _, err := r.Start("device-1", "warp", 10); !errors.Is(err, ErrInvalidMode) {
		t.Errorf("error = %v, expected ErrInvalidMode", err)
	}
	if r.ActiveCount() != 0 {
		t.Error("failed Start must not register a simulation")
	}
}

func TestStart_IntervalBounds(t *testing.T) {
	r, _, _ := newTestRegistry()

	for _, interval := range []int{0, 4, 61, -1} {
		if _, err := r.Start("device-1", ModeNormal, interval); !errors.Is(err, ErrInvalidInterval) {
			t.Errorf("interval %d: error = %v, expected ErrInvalidInterval", interval, err)
		}
	}
}

func TestStart_RequiresDeviceID(t *testing.T) {
	r, _, _ := newTestRegistry()

	if _, err := r.Start("  ", ModeNormal, 10); !errors.Is(err, ErrDeviceIDRequired) {
		t.Errorf("error = %v, expected ErrDeviceIDRequired", err)
	}
}

func TestStart_EmitsStartedAndFirstPing(t *testing.T) {
	r, sink, events := newTestRegistry()
	defer r.StopAll()

	if _, err := r.Start("device-1", ModeNormal, 10); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for sink.submitted() == 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}

	if sink.submitted() != 1 {
		t.Errorf("submitted = %d, expected the immediate tick 0", sink.submitted())
	}
	if events.count(bus.TopicSimulationStarted) != 1 {
		t.Errorf("simulation-started events = %d, expected 1", events.count(bus.TopicSimulationStarted))
	}
}

func TestStop_UnknownDeviceReturnsNotFound(t *testing.T) {
	r, _, _ := newTestRegistry()

	if r.Stop("ghost") {
		t.Error("Stop on unknown device returned true")
	}
}

func TestStop_NoTickAfterReturn(t *testing.T) {
	r, sink, events := newTestRegistry()

	if _, err := r.Start("device-1", ModeNormal, 5); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	if !r.Stop("device-1") {
		t.Fatal("Stop returned false for a running simulation")
	}

	frozen := sink.submitted()
	time.Sleep(50 * time.Millisecond)
	if sink.submitted() != frozen {
		t.Errorf("ticks continued after Stop: %d -> %d", frozen, sink.submitted())
	}
	if events.count(bus.TopicSimulationStopped) != 1 {
		t.Errorf("simulation-stopped events = %d, expected 1", events.count(bus.TopicSimulationStopped))
	}
	if r.ActiveCount() != 0 {
		t.Errorf("active simulations = %d after Stop", r.ActiveCount())
	}
}

func TestStopAll_Idempotent(t *testing.T) {
	r, _, _ := newTestRegistry()

	if n := r.StopAll(); n != 0 {
		t.Errorf("StopAll with no simulations = %d, expected 0", n)
	}

	if _, err := r.Start("device-1", ModeNormal, 10); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if _, err := r.Start("device-2", ModeTeleport, 10); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	if n := r.StopAll(); n != 2 {
		t.Errorf("StopAll = %d, expected 2", n)
	}
	if n := r.StopAll(); n != 0 {
		t.Errorf("repeated StopAll = %d, expected 0", n)
	}
}

func TestTick_TeleportRouteFraudsAndCompletion(t *testing.T) {
	sink := newFakeSink()
	events := &fakeBus{}
	sim := newTestSimulation(ModeTeleport, sink, events)
	routeLen := len(sim.route)

	// First full cycle: every hop after the first is a cross-country jump.
	for i := 0; i < routeLen; i++ {
		sim.tick()
	}
	if sim.stats.FraudsDetected != routeLen-1 {
		t.Errorf("frauds after one cycle = %d, expected %d", sim.stats.FraudsDetected, routeLen-1)
	}
	if events.count(bus.TopicRouteCompleted) != 1 {
		t.Errorf("route-completed after one cycle = %d, expected 1", events.count(bus.TopicRouteCompleted))
	}
	if sim.totalDistanceKm != 0 {
		t.Errorf("totalDistanceKm = %v, expected reset on wraparound", sim.totalDistanceKm)
	}

	// Second cycle: the wrap from the last city back to the first also jumps.
	for i := 0; i < routeLen; i++ {
		sim.tick()
	}
	if sim.stats.FraudsDetected != 2*routeLen-1 {
		t.Errorf("frauds after two cycles = %d, expected %d", sim.stats.FraudsDetected, 2*routeLen-1)
	}
	if events.count(bus.TopicRouteCompleted) != 2 {
		t.Errorf("route-completed after two cycles = %d, expected 2", events.count(bus.TopicRouteCompleted))
	}
	if sim.pingCount != 2*routeLen {
		t.Errorf("pingCount = %d, expected %d", sim.pingCount, 2*routeLen)
	}
	if events.count(bus.TopicPingSent) != 2*routeLen {
		t.Errorf("ping-sent events = %d, expected %d", events.count(bus.TopicPingSent), 2*routeLen)
	}
}

func TestTick_AccumulatesDistanceAndStats(t *testing.T) {
	sink := newFakeSink()
	events := &fakeBus{}
	sim := newTestSimulation(ModeFast, sink, events)

	sim.tick()
	sim.tick()

	if sim.pingCount != 2 {
		t.Errorf("pingCount = %d, expected 2", sim.pingCount)
	}
	if sim.totalDistanceKm <= 0 {
		t.Errorf("totalDistanceKm = %v, expected accumulation after second waypoint", sim.totalDistanceKm)
	}
	if sim.stats.MaxSpeedKmh <= 0 {
		t.Errorf("maxSpeedKmh = %v, expected updated from result", sim.stats.MaxSpeedKmh)
	}
}

func TestTick_SubmitFailureKeepsSimulationAlive(t *testing.T) {
	sink := newFakeSink()
	sink.err = errors.New("core unreachable")
	events := &fakeBus{}
	sim := newTestSimulation(ModeNormal, sink, events)

	sim.tick()

	if sim.pingCount != 0 {
		t.Errorf("pingCount = %d, expected 0 after failed submission", sim.pingCount)
	}
	if sim.pos != 0 {
		t.Errorf("pos advanced to %d on failure, expected retry of the same waypoint", sim.pos)
	}
	if events.count(bus.TopicPingError) != 1 {
		t.Errorf("ping-error events = %d, expected 1", events.count(bus.TopicPingError))
	}

	// Recovery on the next tick.
	sink.err = nil
	sim.tick()
	if sim.pingCount != 1 {
		t.Errorf("pingCount = %d after recovery, expected 1", sim.pingCount)
	}
	if events.count(bus.TopicPingSent) != 1 {
		t.Errorf("ping-sent events = %d after recovery, expected 1", events.count(bus.TopicPingSent))
	}
}

func TestStatus(t *testing.T) {
	r, _, _ := newTestRegistry()
	defer r.StopAll()

	if _, ok := r.Status("device-1"); ok {
		t.Error("Status for unknown device returned ok")
	}

	if _, err := r.Start("device-1", ModeTeleport, 10); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	snapshot, ok := r.Status("device-1")
	if !ok {
		t.Fatal("Status returned not found for a running simulation")
	}
	if snapshot.Mode != ModeTeleport || !snapshot.Running {
		t.Errorf("snapshot = %+v", snapshot)
	}

	all := r.StatusAll()
	if len(all) != 1 {
		t.Errorf("StatusAll = %d entries, expected 1", len(all))
	}
}
