package display

import (
	"context"
	"errors"
	"time"

	"golang.org/x/sync/errgroup"
)

// Shell bundles the background tasks and views of one signed-in store.
type Shell struct {
	StoreID string
	Poller  *StorePoller
	Queue   *QueueView
	Intake  *IntakeForm

	cancel context.CancelFunc
	group  *errgroup.Group
}

func NewShell(api API, storeID string, pollInterval time.Duration) *Shell {
	poller := NewStorePoller(api, storeID, pollInterval)
	return &Shell{
		StoreID: storeID,
		Poller:  poller,
		Queue:   NewQueueView(api, storeID),
		Intake:  NewIntakeForm(api, storeID, poller.Active),
	}
}

// Mount starts the poller and the queue watcher. They run independently and
// stop only when Unmount is called or parent is cancelled.
func (s *Shell) Mount(parent context.Context) {
	ctx, cancel := context.WithCancel(parent)
	g := new(errgroup.Group)
	g.Go(func() error { return s.Poller.Run(ctx) })
	g.Go(func() error { return s.Queue.Run(ctx) })

	s.cancel = cancel
	s.group = g
}

// Unmount stops both tasks and waits for them to return.
func (s *Shell) Unmount() error {
	if s.cancel == nil {
		return nil
	}
	s.cancel()
	err := s.group.Wait()
	s.cancel = nil
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
