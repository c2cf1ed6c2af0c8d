package consumer

import (
	"encoding/json"
	"log/slog"

	"github.com/chrisng16/waitlist/internal/models"
	amqp "github.com/rabbitmq/amqp091-go"
)

// Broadcaster is satisfied by realtime.Hub.
type Broadcaster interface {
	Broadcast(ev models.ChangeEvent) int
}

type ChangeConsumer struct {
	hub Broadcaster
}

func NewChangeConsumer(hub Broadcaster) *ChangeConsumer {
	return &ChangeConsumer{hub: hub}
}

// Start drains broker deliveries and fans each change out to local streams.
func (cc *ChangeConsumer) Start(msgs <-chan amqp.Delivery) {
	go func() {
		for msg := range msgs {
			cc.handleMessage(msg)
		}
		slog.Info("change consumer stopped, delivery channel closed")
	}()
}

// Deliver hands an already decoded change to the hub. Used by the redis bus.
func (cc *ChangeConsumer) Deliver(ev models.ChangeEvent) {
	n := cc.hub.Broadcast(ev)
	slog.Debug("change delivered", "type", ev.Type, "store_id", ev.StoreID, "entry_id", ev.EntryID, "subscribers", n)
}

func (cc *ChangeConsumer) handleMessage(msg amqp.Delivery) {
	var ev models.ChangeEvent
	if err := json.Unmarshal(msg.Body, &ev); err != nil {
		slog.Warn("change consumer: unmarshal failed", "routing_key", msg.RoutingKey, "error", err)
		_ = msg.Nack(false, false)
		return
	}
	if ev.StoreID == "" {
		slog.Warn("change consumer: event without store", "routing_key", msg.RoutingKey)
		_ = msg.Nack(false, false)
		return
	}

	cc.Deliver(ev)
	_ = msg.Ack(false)
}
