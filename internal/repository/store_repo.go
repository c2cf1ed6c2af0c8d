package repository

import (
	"context"

	"github.com/chrisng16/waitlist/internal/models"
	"gorm.io/gorm"
)

type StoreRepository interface {
	FindByID(ctx context.Context, id string) (*models.Store, error)
	FindByLoginID(ctx context.Context, loginID string) (*models.Store, error)
	Create(ctx context.Context, store *models.Store) error
	SetWaitlistActive(ctx context.Context, id string, active bool) error
}

type storeRepository struct {
	db *gorm.DB
}

func NewStoreRepository(db *gorm.DB) StoreRepository {
	return &storeRepository{db: db}
}

func (r *storeRepository) FindByID(ctx context.Context, id string) (*models.Store, error) {
	if !isUUID(id) {
		return nil, gorm.ErrRecordNotFound
	}
	var store models.Store
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&store).Error; err != nil {
		return nil, err
	}
	return &store, nil
}

func (r *storeRepository) FindByLoginID(ctx context.Context, loginID string) (*models.Store, error) {
	var store models.Store
	if err := r.db.WithContext(ctx).Where("store_login_id = ?", loginID).First(&store).Error; err != nil {
		return nil, err
	}
	return &store, nil
}

func (r *storeRepository) Create(ctx context.Context, store *models.Store) error {
	return r.db.WithContext(ctx).Create(store).Error
}

func (r *storeRepository) SetWaitlistActive(ctx context.Context, id string, active bool) error {
	if !isUUID(id) {
		return gorm.ErrRecordNotFound
	}
	result := r.db.WithContext(ctx).
		Model(&models.Store{}).
		Where("id = ?", id).
		Update("is_waitlist_active", active)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
