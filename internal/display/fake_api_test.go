package display

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/chrisng16/waitlist/internal/dto"
	"github.com/chrisng16/waitlist/internal/models"
)

var errUnexpected = errors.New("unexpected call")

type fakeAPI struct {
	getStoreFn  func(ctx context.Context, id string) (*dto.StoreResponse, error)
	byLoginFn   func(ctx context.Context, loginID string) (*dto.StoreResponse, error)
	listQueueFn func(ctx context.Context, storeID string) ([]dto.QueueEntryResponse, error)
	joinFn      func(ctx context.Context, storeID string, req dto.JoinWaitlistRequest) (*dto.EntryResponse, error)
	updateFn    func(ctx context.Context, entryID string, status models.EntryStatus, phoneLast4 string) (*dto.EntryResponse, error)
	verifyFn    func(ctx context.Context, loginID, passcode string) (bool, error)

	events chan models.ChangeEvent
	// dropStream, when closed, ends every open stream as a lost connection would.
	dropStream   chan struct{}
	subscribeErr error

	getStoreCalls  atomic.Int32
	listQueueCalls atomic.Int32
	joinCalls      atomic.Int32

	mu          sync.Mutex
	subscribers int
}

func (f *fakeAPI) GetStore(ctx context.Context, id string) (*dto.StoreResponse, error) {
	f.getStoreCalls.Add(1)
	if f.getStoreFn == nil {
		return nil, errUnexpected
	}
	return f.getStoreFn(ctx, id)
}

func (f *fakeAPI) GetStoreByLoginID(ctx context.Context, loginID string) (*dto.StoreResponse, error) {
	if f.byLoginFn == nil {
		return nil, errUnexpected
	}
	return f.byLoginFn(ctx, loginID)
}

func (f *fakeAPI) ListQueue(ctx context.Context, storeID string) ([]dto.QueueEntryResponse, error) {
	f.listQueueCalls.Add(1)
	if f.listQueueFn == nil {
		return nil, nil
	}
	return f.listQueueFn(ctx, storeID)
}

func (f *fakeAPI) JoinWaitlist(ctx context.Context, storeID string, req dto.JoinWaitlistRequest) (*dto.EntryResponse, error) {
	f.joinCalls.Add(1)
	if f.joinFn == nil {
		return nil, errUnexpected
	}
	return f.joinFn(ctx, storeID, req)
}

func (f *fakeAPI) UpdateStatus(ctx context.Context, entryID string, status models.EntryStatus, phoneLast4 string) (*dto.EntryResponse, error) {
	if f.updateFn == nil {
		return nil, errUnexpected
	}
	return f.updateFn(ctx, entryID, status, phoneLast4)
}

func (f *fakeAPI) VerifyPasscode(ctx context.Context, loginID, passcode string) (bool, error) {
	if f.verifyFn == nil {
		return false, errUnexpected
	}
	return f.verifyFn(ctx, loginID, passcode)
}

// Subscribe forwards f.events until ctx is done or dropStream is closed.
func (f *fakeAPI) Subscribe(ctx context.Context, storeID string) (<-chan models.ChangeEvent, error) {
	if f.subscribeErr != nil {
		return nil, f.subscribeErr
	}
	f.mu.Lock()
	f.subscribers++
	f.mu.Unlock()

	out := make(chan models.ChangeEvent)
	go func() {
		defer func() {
			f.mu.Lock()
			f.subscribers--
			f.mu.Unlock()
			close(out)
		}()
		for {
			select {
			case <-ctx.Done():
				return
			case <-f.dropStream:
				return
			case ev := <-f.events:
				select {
				case out <- ev:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, nil
}

func (f *fakeAPI) activeSubscribers() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.subscribers
}

func activeStore(id string) func(context.Context, string) (*dto.StoreResponse, error) {
	return func(ctx context.Context, _ string) (*dto.StoreResponse, error) {
		return &dto.StoreResponse{ID: id, LoginID: "store-2", IsWaitlistActive: true}, nil
	}
}
