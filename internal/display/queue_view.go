package display

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/chrisng16/waitlist/internal/dto"
	"github.com/chrisng16/waitlist/internal/models"
)

// QueueView holds the visible queue for one store and keeps it current by
// refetching after every change notification.
type QueueView struct {
	api     API
	storeID string

	mu       sync.RWMutex
	entries  []dto.QueueEntryResponse
	onUpdate func([]dto.QueueEntryResponse)

	trigger chan struct{}
}

func NewQueueView(api API, storeID string) *QueueView {
	return &QueueView{
		api:     api,
		storeID: storeID,
		trigger: make(chan struct{}, 1),
	}
}

// OnUpdate registers fn to be called with every newly fetched queue.
func (q *QueueView) OnUpdate(fn func([]dto.QueueEntryResponse)) {
	q.mu.Lock()
	q.onUpdate = fn
	q.mu.Unlock()
}

// Run fetches the queue, subscribes to the store's changes and refetches
// until ctx is done. Fetches never overlap; notifications that arrive during
// a fetch collapse into a single follow-up fetch. Losing the change stream
// only stops live updates: Refresh and the staff actions keep working.
func (q *QueueView) Run(ctx context.Context) error {
	log := slog.With("component", "queue", "store_id", q.storeID)

	q.fetch(ctx)

	events, err := q.api.Subscribe(ctx, q.storeID)
	if err != nil {
		log.Warn("live updates unavailable", "error", err)
		events = nil
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				if ctx.Err() == nil {
					log.Warn("change stream lost, live updates stopped")
				}
				events = nil
				continue
			}
			log.Debug("queue change", "type", ev.Type, "entry_id", ev.EntryID)
			q.Refresh()
		case <-q.trigger:
			q.fetch(ctx)
		}
	}
}

// Refresh schedules a refetch. It never blocks.
func (q *QueueView) Refresh() {
	select {
	case q.trigger <- struct{}{}:
	default:
	}
}

func (q *QueueView) fetch(ctx context.Context) {
	entries, err := q.api.ListQueue(ctx, q.storeID)
	if err != nil {
		if ctx.Err() == nil {
			slog.Warn("queue fetch failed", "component", "queue", "store_id", q.storeID, "error", err)
		}
		return
	}

	q.mu.Lock()
	q.entries = entries
	fn := q.onUpdate
	q.mu.Unlock()

	if fn != nil {
		fn(entries)
	}
}

// Entries returns a copy of the current queue.
func (q *QueueView) Entries() []dto.QueueEntryResponse {
	q.mu.RLock()
	defer q.mu.RUnlock()
	out := make([]dto.QueueEntryResponse, len(q.entries))
	copy(out, q.entries)
	return out
}

func (q *QueueView) Seat(ctx context.Context, entryID string) error {
	return q.transition(ctx, entryID, models.StatusSeated, "")
}

// Hold moves an entry to pending.
func (q *QueueView) Hold(ctx context.Context, entryID string) error {
	return q.transition(ctx, entryID, models.StatusPending, "")
}

// Resume moves a held entry back to waiting.
func (q *QueueView) Resume(ctx context.Context, entryID string) error {
	return q.transition(ctx, entryID, models.StatusWaiting, "")
}

// Cancel removes an entry once the caller confirms the last four digits of
// the phone number on file.
func (q *QueueView) Cancel(ctx context.Context, entryID, phoneLast4 string) error {
	return q.transition(ctx, entryID, models.StatusCancelled, phoneLast4)
}

func (q *QueueView) transition(ctx context.Context, entryID string, status models.EntryStatus, phoneLast4 string) error {
	if _, err := q.api.UpdateStatus(ctx, entryID, status, phoneLast4); err != nil {
		return fmt.Errorf("set entry %s to %s: %w", entryID, status, err)
	}
	q.Refresh()
	return nil
}
