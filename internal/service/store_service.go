package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/chrisng16/waitlist/internal/models"
	"github.com/chrisng16/waitlist/internal/repository"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type StoreService interface {
	GetStore(ctx context.Context, id string) (*models.Store, error)
	GetStoreByLoginID(ctx context.Context, loginID string) (*models.Store, error)
	VerifyPasscode(ctx context.Context, loginID, passcode string) (bool, error)
	CreateStore(ctx context.Context, loginID, name, description, passcode string) (*models.Store, error)
	SetWaitlistActive(ctx context.Context, loginID string, active bool) (*models.Store, error)
}

type storeService struct {
	repo repository.StoreRepository
}

func NewStoreService(repo repository.StoreRepository) StoreService {
	return &storeService{repo: repo}
}

func (s *storeService) GetStore(ctx context.Context, id string) (*models.Store, error) {
	return s.find(s.repo.FindByID(ctx, id))
}

func (s *storeService) GetStoreByLoginID(ctx context.Context, loginID string) (*models.Store, error) {
	return s.find(s.repo.FindByLoginID(ctx, loginID))
}

func (s *storeService) find(store *models.Store, err error) (*models.Store, error) {
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStoreNotFound
		}
		return nil, err
	}
	return store, nil
}

// VerifyPasscode reports whether passcode matches the store's passcode hash.
// Unknown stores and stores without a passcode never verify.
func (s *storeService) VerifyPasscode(ctx context.Context, loginID, passcode string) (bool, error) {
	if loginID == "" || passcode == "" {
		return false, nil
	}
	store, err := s.GetStoreByLoginID(ctx, loginID)
	if err != nil {
		if errors.Is(err, ErrStoreNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("find store: %w", err)
	}
	if store.PasscodeHash == "" {
		return false, nil
	}
	return bcrypt.CompareHashAndPassword([]byte(store.PasscodeHash), []byte(passcode)) == nil, nil
}

// CreateStore registers a store with its waitlist closed.
func (s *storeService) CreateStore(ctx context.Context, loginID, name, description, passcode string) (*models.Store, error) {
	if loginID == "" || name == "" || passcode == "" {
		return nil, ErrInvalidStore
	}
	hash, err := HashPasscode(passcode)
	if err != nil {
		return nil, fmt.Errorf("hash passcode: %w", err)
	}
	store := &models.Store{
		LoginID:      loginID,
		Name:         name,
		Description:  description,
		PasscodeHash: hash,
	}
	if err := s.repo.Create(ctx, store); err != nil {
		return nil, fmt.Errorf("create store: %w", err)
	}
	return store, nil
}

func (s *storeService) SetWaitlistActive(ctx context.Context, loginID string, active bool) (*models.Store, error) {
	store, err := s.GetStoreByLoginID(ctx, loginID)
	if err != nil {
		return nil, err
	}
	if err := s.repo.SetWaitlistActive(ctx, store.ID, active); err != nil {
		return nil, fmt.Errorf("update store: %w", err)
	}
	store.IsWaitlistActive = active
	return store, nil
}

// HashPasscode produces the value stored in stores.passcode_hash.
func HashPasscode(passcode string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(passcode), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
