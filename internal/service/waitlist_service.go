package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/chrisng16/waitlist/internal/form"
	"github.com/chrisng16/waitlist/internal/metrics"
	"github.com/chrisng16/waitlist/internal/models"
	"github.com/chrisng16/waitlist/internal/phone"
	"github.com/chrisng16/waitlist/internal/queue"
	"github.com/chrisng16/waitlist/internal/repository"
	"gorm.io/gorm"
)

// ChangePublisher announces committed waitlist writes to other instances and displays.
type ChangePublisher interface {
	PublishChange(ctx context.Context, ev models.ChangeEvent) error
}

type WaitlistService interface {
	Join(ctx context.Context, storeID string, f form.JoinWaitlist) (*models.WaitlistEntry, error)
	GetEntry(ctx context.Context, id string) (*models.WaitlistEntry, error)
	ListEntries(ctx context.Context, storeID string, status *models.EntryStatus) ([]models.WaitlistEntry, error)
	ListQueue(ctx context.Context, storeID string) ([]queue.Position, error)
	UpdateStatus(ctx context.Context, entryID string, status models.EntryStatus, phoneLast4 string) (*models.WaitlistEntry, error)
}

type waitlistService struct {
	waitlistRepo repository.WaitlistRepository
	storeRepo    repository.StoreRepository
	publisher    ChangePublisher
	metrics      *metrics.Metrics
	now          func() time.Time
}

func NewWaitlistService(waitlistRepo repository.WaitlistRepository, storeRepo repository.StoreRepository, publisher ChangePublisher, m *metrics.Metrics) WaitlistService {
	return &waitlistService{
		waitlistRepo: waitlistRepo,
		storeRepo:    storeRepo,
		publisher:    publisher,
		metrics:      m,
		now:          time.Now,
	}
}

func (s *waitlistService) Join(ctx context.Context, storeID string, f form.JoinWaitlist) (*models.WaitlistEntry, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}

	store, err := s.storeRepo.FindByID(ctx, storeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStoreNotFound
		}
		return nil, fmt.Errorf("find store: %w", err)
	}
	if !store.IsWaitlistActive {
		return nil, ErrWaitlistClosed
	}

	entry := models.NewWaitlistEntry(store.ID, f.Name, f.Phone, f.Email, f.PartySize)
	if err := s.waitlistRepo.Create(ctx, entry); err != nil {
		return nil, fmt.Errorf("create entry: %w", err)
	}

	s.metrics.EntryJoined()
	s.publish(ctx, models.ChangeInsert, entry)
	return entry, nil
}

func (s *waitlistService) GetEntry(ctx context.Context, id string) (*models.WaitlistEntry, error) {
	entry, err := s.waitlistRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEntryNotFound
		}
		return nil, err
	}
	return entry, nil
}

func (s *waitlistService) ListEntries(ctx context.Context, storeID string, status *models.EntryStatus) ([]models.WaitlistEntry, error) {
	return s.waitlistRepo.FindByStoreID(ctx, storeID, status)
}

func (s *waitlistService) ListQueue(ctx context.Context, storeID string) ([]queue.Position, error) {
	entries, err := s.waitlistRepo.FindByStoreID(ctx, storeID, nil)
	if err != nil {
		return nil, fmt.Errorf("list waitlist: %w", err)
	}
	return queue.Visible(entries), nil
}

// UpdateStatus moves an entry to status. Any transition is allowed; only
// cancellation is confirmed, by the last four characters of the stored phone.
func (s *waitlistService) UpdateStatus(ctx context.Context, entryID string, status models.EntryStatus, phoneLast4 string) (*models.WaitlistEntry, error) {
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}

	entry, err := s.GetEntry(ctx, entryID)
	if err != nil {
		return nil, err
	}

	if status == models.StatusCancelled && phoneLast4 != phone.LastFour(entry.Phone) {
		return nil, ErrPhoneMismatch
	}

	if err := s.waitlistRepo.UpdateStatus(ctx, entry.ID, status); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEntryNotFound
		}
		return nil, fmt.Errorf("update status: %w", err)
	}
	entry.Status = status

	s.metrics.StatusChanged(string(status))
	s.publish(ctx, models.ChangeUpdate, entry)
	return entry, nil
}

// publish is best effort: the write is already committed and subscribers
// resynchronise on their next change anyway.
func (s *waitlistService) publish(ctx context.Context, t models.ChangeType, entry *models.WaitlistEntry) {
	if s.publisher == nil {
		return
	}
	ev := models.ChangeEvent{
		Type:    t,
		StoreID: entry.StoreID,
		EntryID: entry.ID,
		Status:  entry.Status,
		At:      s.now(),
	}
	if err := s.publisher.PublishChange(ctx, ev); err != nil {
		slog.Warn("failed to publish waitlist change", "component", "waitlist-service", "entry_id", entry.ID, "error", err)
	}
}
