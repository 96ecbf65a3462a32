package service

import (
	"context"
	"encoding/json"

	"milk-platform-be/internal/pkg/logger"
	"milk-platform-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
)

// BroadcastAudience reaches every connected client.
const BroadcastAudience = "*"

func SellerAudience(id uuid.UUID) string {
	return "seller_" + id.String()
}

func CustomerAudience(id uuid.UUID) string {
	return "customer_" + id.String()
}

// Notifier emits real-time events. Delivery is best effort and never fails the caller.
type Notifier interface {
	Notify(ctx context.Context, audience, event string, payload interface{})
}

type notificationEnvelope struct {
	Audience string          `json:"audience"`
	Event    string          `json:"event"`
	Payload  json.RawMessage `json:"payload"`
}

type eventNotifier struct {
	publisher message.Publisher
	topic     string
	logger    logger.ILogger
}

func NewEventNotifier(publisher message.Publisher, topic string, log logger.ILogger) Notifier {
	return &eventNotifier{
		publisher: publisher,
		topic:     topic,
		logger:    log,
	}
}

func (n *eventNotifier) Notify(ctx context.Context, audience, event string, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		n.logger.Warn("Notifier", "Failed to encode notification payload", map[string]interface{}{"event": event, "error": err.Error()})
		return
	}
	body, err := json.Marshal(notificationEnvelope{Audience: audience, Event: event, Payload: data})
	if err != nil {
		return
	}

	msg := message.NewMessage(watermill.NewUUID(), body)
	msg.SetContext(context.WithoutCancel(ctx))
	if err := n.publisher.Publish(n.topic, msg); err != nil {
		n.logger.Warn("Notifier", "Failed to publish notification", map[string]interface{}{"event": event, "audience": audience, "error": err.Error()})
	}
}

// FrameDelivery pushes an encoded frame to the sockets of a room. Implemented by the websocket hub.
type FrameDelivery interface {
	Deliver(room string, frame []byte)
}

// EventForwarder republishes notifications on the integration bus.
type EventForwarder interface {
	Publish(ctx context.Context, event events.Event) error
}

type INotificationConsumer interface {
	Consume(ctx context.Context) error
}

type notificationConsumer struct {
	subscriber message.Subscriber
	topic      string
	delivery   FrameDelivery
	forwarder  EventForwarder
	logger     logger.ILogger
}

// NewNotificationConsumer wires the in-process topic to the socket hub. forwarder may be nil.
func NewNotificationConsumer(subscriber message.Subscriber, topic string, delivery FrameDelivery, forwarder EventForwarder, log logger.ILogger) INotificationConsumer {
	return &notificationConsumer{
		subscriber: subscriber,
		topic:      topic,
		delivery:   delivery,
		forwarder:  forwarder,
		logger:     log,
	}
}

func (c *notificationConsumer) Consume(ctx context.Context) error {
	messages, err := c.subscriber.Subscribe(ctx, c.topic)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			c.process(ctx, msg)
		}
	}()
	return nil
}

func (c *notificationConsumer) process(ctx context.Context, msg *message.Message) {
	defer msg.Ack()

	var env notificationEnvelope
	if err := json.Unmarshal(msg.Payload, &env); err != nil {
		c.logger.Warn("NotificationConsumer", "Dropping malformed notification", map[string]interface{}{"error": err.Error()})
		return
	}

	frame, err := json.Marshal(map[string]interface{}{
		"event": env.Event,
		"data":  env.Payload,
	})
	if err != nil {
		return
	}
	c.delivery.Deliver(env.Audience, frame)

	if c.forwarder == nil {
		return
	}
	var data interface{}
	_ = json.Unmarshal(env.Payload, &data)
	evt := events.NewEvent(env.Event, map[string]interface{}{
		"audience": env.Audience,
		"data":     data,
	})
	if err := c.forwarder.Publish(ctx, evt); err != nil {
		c.logger.Warn("NotificationConsumer", "Failed to forward event", map[string]interface{}{"event": env.Event, "error": err.Error()})
	}
}
