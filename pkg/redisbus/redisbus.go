// Package redisbus carries waitlist changes between replicas over redis pub/sub.
package redisbus

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/chrisng16/waitlist/internal/models"
	"github.com/redis/go-redis/v9"
)

// Channel is the pub/sub channel every replica publishes to and listens on.
const Channel = "waitlist.changes"

type Config struct {
	Addr     string
	Password string
	DB       int
}

type Bus struct {
	client *redis.Client
}

// NewBus connects and pings the server before returning.
func NewBus(cfg Config) (*Bus, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return &Bus{client: rdb}, nil
}

func (b *Bus) PublishChange(ctx context.Context, ev models.ChangeEvent) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal change: %w", err)
	}
	if err := b.client.Publish(ctx, Channel, body).Err(); err != nil {
		return fmt.Errorf("redis publish to %s: %w", Channel, err)
	}
	return nil
}

// Listen blocks, calling fn for every change received, until ctx is done.
func (b *Bus) Listen(ctx context.Context, fn func(models.ChangeEvent)) error {
	sub := b.client.Subscribe(ctx, Channel)
	defer sub.Close()

	if _, err := sub.Receive(ctx); err != nil {
		return fmt.Errorf("redis subscribe to %s: %w", Channel, err)
	}
	slog.Info("redis listening", "channel", Channel)

	msgs := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-msgs:
			if !ok {
				return nil
			}
			ev, err := decode(msg.Payload)
			if err != nil {
				slog.Warn("redis bus: dropping message", "error", err)
				continue
			}
			fn(ev)
		}
	}
}

func (b *Bus) Close() error {
	return b.client.Close()
}

func decode(payload string) (models.ChangeEvent, error) {
	var ev models.ChangeEvent
	if err := json.Unmarshal([]byte(payload), &ev); err != nil {
		return ev, fmt.Errorf("unmarshal change: %w", err)
	}
	if ev.StoreID == "" {
		return ev, fmt.Errorf("change without store id")
	}
	return ev, nil
}
