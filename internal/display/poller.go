package display

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/chrisng16/waitlist/internal/dto"
)

const DefaultPollInterval = 30 * time.Second

// StorePoller refreshes the store row on a fixed interval and exposes whether
// its waitlist is accepting entries.
type StorePoller struct {
	api      API
	storeID  string
	interval time.Duration

	active atomic.Bool
	mu     sync.RWMutex
	store  *dto.StoreResponse
}

func NewStorePoller(api API, storeID string, interval time.Duration) *StorePoller {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &StorePoller{api: api, storeID: storeID, interval: interval}
}

// Run fetches once immediately and then on every tick until ctx is done.
// Failed fetches keep the last known value.
func (p *StorePoller) Run(ctx context.Context) error {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.refresh(ctx)
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			p.refresh(ctx)
		}
	}
}

func (p *StorePoller) refresh(ctx context.Context) {
	store, err := p.api.GetStore(ctx, p.storeID)
	if err != nil {
		if ctx.Err() == nil {
			slog.Warn("store poll failed", "component", "poller", "store_id", p.storeID, "error", err)
		}
		return
	}

	p.mu.Lock()
	p.store = store
	p.mu.Unlock()

	if p.active.Swap(store.IsWaitlistActive) != store.IsWaitlistActive {
		slog.Info("waitlist availability changed", "component", "poller",
			"store_id", p.storeID, "active", store.IsWaitlistActive)
	}
}

// Active reports the last fetched value; false until the first fetch lands.
func (p *StorePoller) Active() bool {
	return p.active.Load()
}

func (p *StorePoller) Store() *dto.StoreResponse {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.store
}
