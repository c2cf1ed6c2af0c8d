package handler

import (
	"context"

	"github.com/chrisng16/waitlist/internal/form"
	"github.com/chrisng16/waitlist/internal/models"
	"github.com/chrisng16/waitlist/internal/queue"
)

// --- Mock WaitlistService ---

type mockWaitlistService struct {
	joinFn   func(ctx context.Context, storeID string, f form.JoinWaitlist) (*models.WaitlistEntry, error)
	getFn    func(ctx context.Context, id string) (*models.WaitlistEntry, error)
	listFn   func(ctx context.Context, storeID string, status *models.EntryStatus) ([]models.WaitlistEntry, error)
	queueFn  func(ctx context.Context, storeID string) ([]queue.Position, error)
	updateFn func(ctx context.Context, entryID string, status models.EntryStatus, phoneLast4 string) (*models.WaitlistEntry, error)
}

func (m *mockWaitlistService) Join(ctx context.Context, storeID string, f form.JoinWaitlist) (*models.WaitlistEntry, error) {
	return m.joinFn(ctx, storeID, f)
}
func (m *mockWaitlistService) GetEntry(ctx context.Context, id string) (*models.WaitlistEntry, error) {
	return m.getFn(ctx, id)
}
func (m *mockWaitlistService) ListEntries(ctx context.Context, storeID string, status *models.EntryStatus) ([]models.WaitlistEntry, error) {
	return m.listFn(ctx, storeID, status)
}
func (m *mockWaitlistService) ListQueue(ctx context.Context, storeID string) ([]queue.Position, error) {
	return m.queueFn(ctx, storeID)
}
func (m *mockWaitlistService) UpdateStatus(ctx context.Context, entryID string, status models.EntryStatus, phoneLast4 string) (*models.WaitlistEntry, error) {
	return m.updateFn(ctx, entryID, status, phoneLast4)
}

// --- Mock StoreService ---

type mockStoreService struct {
	getFn    func(ctx context.Context, id string) (*models.Store, error)
	byLogin  func(ctx context.Context, loginID string) (*models.Store, error)
	verifyFn func(ctx context.Context, loginID, passcode string) (bool, error)
}

func (m *mockStoreService) GetStore(ctx context.Context, id string) (*models.Store, error) {
	return m.getFn(ctx, id)
}
func (m *mockStoreService) GetStoreByLoginID(ctx context.Context, loginID string) (*models.Store, error) {
	return m.byLogin(ctx, loginID)
}
func (m *mockStoreService) VerifyPasscode(ctx context.Context, loginID, passcode string) (bool, error) {
	return m.verifyFn(ctx, loginID, passcode)
}
func (m *mockStoreService) CreateStore(ctx context.Context, loginID, name, description, passcode string) (*models.Store, error) {
	return nil, nil
}
func (m *mockStoreService) SetWaitlistActive(ctx context.Context, loginID string, active bool) (*models.Store, error) {
	return nil, nil
}
