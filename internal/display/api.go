// Package display runs the store-side display: it polls the store, keeps a
// live copy of the queue, gates intake and guards sign-out with the passcode.
package display

import (
	"context"

	"github.com/chrisng16/waitlist/internal/dto"
	"github.com/chrisng16/waitlist/internal/models"
)

// API is the subset of the waitlist service the display needs. It is
// satisfied by *client.Client.
type API interface {
	GetStore(ctx context.Context, id string) (*dto.StoreResponse, error)
	GetStoreByLoginID(ctx context.Context, loginID string) (*dto.StoreResponse, error)
	ListQueue(ctx context.Context, storeID string) ([]dto.QueueEntryResponse, error)
	JoinWaitlist(ctx context.Context, storeID string, req dto.JoinWaitlistRequest) (*dto.EntryResponse, error)
	UpdateStatus(ctx context.Context, entryID string, status models.EntryStatus, phoneLast4 string) (*dto.EntryResponse, error)
	VerifyPasscode(ctx context.Context, loginID, passcode string) (bool, error)
	Subscribe(ctx context.Context, storeID string) (<-chan models.ChangeEvent, error)
}
