package bus

import (
	"context"
	"encoding/json"
	"time"

	"github.com/earthly-glitch/fraudX-location-prototype/internal/common/logger"
	"github.com/earthly-glitch/fraudX-location-prototype/internal/common/websocket"
)

// Topics published by the classifier and the simulator.
const (
	TopicLocationUpdate    = "location_update"
	TopicFraudAlert        = "fraud_alert"
	TopicSimulationStarted = "simulation-started"
	TopicSimulationStopped = "simulation-stopped"
	TopicPingSent          = "ping-sent"
	TopicPingError         = "ping-error"
	TopicRouteCompleted    = "route-completed"
)

type Envelope struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

// BrokerPublisher forwards selected topics to RabbitMQ for other services.
type BrokerPublisher interface {
	Publish(ctx context.Context, topic string, body []byte) error
}

// FanoutBus pushes every event to connected dashboard viewers and mirrors
// location/fraud topics to the broker. Publish never blocks the caller.
type FanoutBus struct {
	hub    *websocket.Hub
	broker BrokerPublisher
}

func NewFanoutBus(hub *websocket.Hub, broker BrokerPublisher) *FanoutBus {
	return &FanoutBus{hub: hub, broker: broker}
}

func (b *FanoutBus) Publish(topic string, payload any) {
	body, err := json.Marshal(Envelope{Event: topic, Data: payload})
	if err != nil {
		logger.Error("bus_marshal_failed", "Failed to marshal event payload", "", "", err.Error())
		return
	}

	if b.hub != nil {
		b.hub.Broadcast(body)
	}

	if b.broker == nil {
		return
	}
	if topic != TopicLocationUpdate && topic != TopicFraudAlert {
		return
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		logger.Error("bus_marshal_failed", "Failed to marshal broker payload", "", "", err.Error())
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := b.broker.Publish(ctx, topic, raw); err != nil {
			logger.Warn("bus_broker_publish_failed", "Broker publish failed", "", "", err.Error())
		}
	}()
}
