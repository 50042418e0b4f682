package rmq

import (
	"context"
	"fmt"

	"github.com/earthly-glitch/fraudX-location-prototype/internal/common/bus"
	"github.com/earthly-glitch/fraudX-location-prototype/internal/common/logger"
	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	locationExchange = "location_fanout"
	fraudExchange    = "fraud_topic"
	fraudRoutingKey  = "fraud.alert"
)

type Publisher struct {
	channel *amqp.Channel
}

// NewPublisher declares the exchanges other services consume from.
func NewPublisher(ch *amqp.Channel) (*Publisher, error) {
	if err := ch.ExchangeDeclare(
		locationExchange,
		"fanout",
		true,  // durable
		false, // auto-delete
		false, // internal
		false, // no-wait
		nil,
	); err != nil {
		return nil, fmt.Errorf("failed to declare %s exchange: %w", locationExchange, err)
	}

	if err := ch.ExchangeDeclare(
		fraudExchange,
		"topic",
		true,
		false,
		false,
		false,
		nil,
	); err != nil {
		return nil, fmt.Errorf("failed to declare %s exchange: %w", fraudExchange, err)
	}

	return &Publisher{channel: ch}, nil
}

// Publish forwards a classified event to the exchange matching its topic.
func (p *Publisher) Publish(ctx context.Context, topic string, body []byte) error {
	exchange := locationExchange
	routingKey := ""
	if topic == bus.TopicFraudAlert {
		exchange = fraudExchange
		routingKey = fraudRoutingKey
	}

	if err := p.channel.PublishWithContext(
		ctx,
		exchange,
		routingKey,
		false,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	); err != nil {
		logger.Error("rmq_publish_failed", fmt.Sprintf("Failed to publish %s", topic), "", "", err.Error())
		return err
	}

	return nil
}
