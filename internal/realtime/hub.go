// Package realtime fans change events out to the subscribers of each store.
package realtime

import (
	"context"
	"log/slog"
	"sync"

	"github.com/chrisng16/waitlist/internal/metrics"
	"github.com/chrisng16/waitlist/internal/models"
)

const subscriberBuffer = 16

type subscriber struct {
	ch chan models.ChangeEvent
}

type Hub struct {
	mu      sync.RWMutex
	stores  map[string]map[*subscriber]struct{}
	metrics *metrics.Metrics
}

func NewHub(m *metrics.Metrics) *Hub {
	return &Hub{
		stores:  make(map[string]map[*subscriber]struct{}),
		metrics: m,
	}
}

// Subscribe registers interest in a store's changes. The returned cancel func
// unregisters and closes the channel; it is safe to call more than once.
func (h *Hub) Subscribe(storeID string) (<-chan models.ChangeEvent, func()) {
	sub := &subscriber{ch: make(chan models.ChangeEvent, subscriberBuffer)}

	h.mu.Lock()
	subs, ok := h.stores[storeID]
	if !ok {
		subs = make(map[*subscriber]struct{})
		h.stores[storeID] = subs
	}
	subs[sub] = struct{}{}
	h.mu.Unlock()
	h.metrics.StreamOpened()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.stores[storeID], sub)
			if len(h.stores[storeID]) == 0 {
				delete(h.stores, storeID)
			}
			close(sub.ch)
			h.mu.Unlock()
			h.metrics.StreamClosed()
		})
	}
	return sub.ch, cancel
}

// Broadcast delivers ev to every subscriber of ev.StoreID without blocking.
// A subscriber whose buffer is full already has a refetch pending, so the
// event is dropped for it.
func (h *Hub) Broadcast(ev models.ChangeEvent) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	delivered := 0
	for sub := range h.stores[ev.StoreID] {
		select {
		case sub.ch <- ev:
			delivered++
		default:
			slog.Debug("subscriber buffer full, dropping change", "component", "hub", "store_id", ev.StoreID)
		}
	}
	h.metrics.ChangeDelivered(string(ev.Type))
	return delivered
}

// PublishChange lets the hub act as the in-process notifier when no broker is configured.
func (h *Hub) PublishChange(_ context.Context, ev models.ChangeEvent) error {
	h.Broadcast(ev)
	return nil
}

func (h *Hub) Subscribers(storeID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.stores[storeID])
}
