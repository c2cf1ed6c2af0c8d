package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Store struct {
	ID               string    `gorm:"type:uuid;primaryKey" json:"id"`
	LoginID          string    `gorm:"column:store_login_id;uniqueIndex;not null" json:"store_login_id"`
	Name             string    `gorm:"column:store_name;not null" json:"store_name"`
	Description      string    `gorm:"column:store_desc" json:"store_desc"`
	IsWaitlistActive bool      `gorm:"not null;default:false" json:"is_waitlist_active"`
	PasscodeHash     string    `json:"-"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func (s *Store) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}
