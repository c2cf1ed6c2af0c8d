package display

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/chrisng16/waitlist/internal/dto"
	"github.com/stretchr/testify/assert"
)

func TestStorePoller_FetchesImmediatelyAndOnTick(t *testing.T) {
	api := &fakeAPI{getStoreFn: activeStore("s1")}
	p := NewStorePoller(api, "s1", 20*time.Millisecond)
	assert.False(t, p.Active())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- p.Run(ctx) }()

	assert.Eventually(t, p.Active, time.Second, 5*time.Millisecond)
	assert.Eventually(t, func() bool { return api.getStoreCalls.Load() >= 3 }, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("poller did not stop")
	}
}

func TestStorePoller_KeepsLastValueOnError(t *testing.T) {
	var calls atomic.Int32
	api := &fakeAPI{getStoreFn: func(ctx context.Context, id string) (*dto.StoreResponse, error) {
		if calls.Add(1) == 1 {
			return &dto.StoreResponse{ID: id, IsWaitlistActive: true}, nil
		}
		return nil, errors.New("network down")
	}}
	p := NewStorePoller(api, "s1", 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go p.Run(ctx)

	assert.Eventually(t, func() bool { return calls.Load() >= 3 }, time.Second, 5*time.Millisecond)
	assert.True(t, p.Active())
	assert.Equal(t, "s1", p.Store().ID)
}

func TestStorePoller_TracksDeactivation(t *testing.T) {
	var active atomic.Bool
	active.Store(true)
	api := &fakeAPI{getStoreFn: func(ctx context.Context, id string) (*dto.StoreResponse, error) {
		return &dto.StoreResponse{ID: id, IsWaitlistActive: active.Load()}, nil
	}}
	p := NewStorePoller(api, "s1", 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go p.Run(ctx)

	assert.Eventually(t, p.Active, time.Second, 5*time.Millisecond)
	active.Store(false)
	assert.Eventually(t, func() bool { return !p.Active() }, time.Second, 5*time.Millisecond)
}

func TestNewStorePoller_DefaultInterval(t *testing.T) {
	p := NewStorePoller(&fakeAPI{}, "s1", 0)
	assert.Equal(t, DefaultPollInterval, p.interval)
}
