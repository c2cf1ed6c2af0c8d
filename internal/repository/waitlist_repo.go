package repository

import (
	"context"

	"github.com/chrisng16/waitlist/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// isUUID guards lookups against ids a uuid column would reject with a
// syntax error instead of an empty result.
func isUUID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

type WaitlistRepository interface {
	Create(ctx context.Context, entry *models.WaitlistEntry) error
	FindByID(ctx context.Context, id string) (*models.WaitlistEntry, error)
	FindByStoreID(ctx context.Context, storeID string, status *models.EntryStatus) ([]models.WaitlistEntry, error)
	UpdateStatus(ctx context.Context, id string, status models.EntryStatus) error
}

type waitlistRepository struct {
	db *gorm.DB
}

func NewWaitlistRepository(db *gorm.DB) WaitlistRepository {
	return &waitlistRepository{db: db}
}

func (r *waitlistRepository) Create(ctx context.Context, entry *models.WaitlistEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *waitlistRepository) FindByID(ctx context.Context, id string) (*models.WaitlistEntry, error) {
	if !isUUID(id) {
		return nil, gorm.ErrRecordNotFound
	}
	var entry models.WaitlistEntry
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&entry).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

// FindByStoreID returns a store's entries oldest first, optionally narrowed to one status.
func (r *waitlistRepository) FindByStoreID(ctx context.Context, storeID string, status *models.EntryStatus) ([]models.WaitlistEntry, error) {
	var entries []models.WaitlistEntry
	if !isUUID(storeID) {
		return entries, nil
	}
	q := r.db.WithContext(ctx).Where("store_id = ?", storeID)
	if status != nil {
		q = q.Where("status = ?", *status)
	}
	if err := q.Order("created_at ASC").Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// UpdateStatus is a single-row point update; it returns gorm.ErrRecordNotFound
// when no row has the given id.
func (r *waitlistRepository) UpdateStatus(ctx context.Context, id string, status models.EntryStatus) error {
	if !isUUID(id) {
		return gorm.ErrRecordNotFound
	}
	res := r.db.WithContext(ctx).
		Model(&models.WaitlistEntry{}).
		Where("id = ?", id).
		Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
