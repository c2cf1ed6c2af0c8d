package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type EntryStatus string

const (
	StatusWaiting   EntryStatus = "waiting"
	StatusPending   EntryStatus = "pending"
	StatusSeated    EntryStatus = "seated"
	StatusCancelled EntryStatus = "cancelled"
)

// Valid reports whether s is one of the known entry statuses.
func (s EntryStatus) Valid() bool {
	switch s {
	case StatusWaiting, StatusPending, StatusSeated, StatusCancelled:
		return true
	}
	return false
}

// Visible reports whether an entry with this status is still awaiting seating.
func (s EntryStatus) Visible() bool {
	return s != StatusSeated && s != StatusCancelled
}

type WaitlistEntry struct {
	ID        string      `gorm:"type:uuid;primaryKey" json:"id"`
	StoreID   string      `gorm:"type:uuid;not null;index:idx_waitlist_store_created,priority:1" json:"store_id"`
	Name      string      `gorm:"not null" json:"name"`
	Phone     string      `gorm:"type:varchar(14);not null" json:"phone"`
	Email     string      `gorm:"not null" json:"email"`
	PartySize int         `gorm:"not null" json:"party_size"`
	Status    EntryStatus `gorm:"type:varchar(20);not null;default:'waiting'" json:"status"`
	CreatedAt time.Time   `gorm:"index:idx_waitlist_store_created,priority:2" json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`

	Store *Store `gorm:"foreignKey:StoreID" json:"store,omitempty"`
}

func (WaitlistEntry) TableName() string {
	return "waitlist"
}

// NewWaitlistEntry builds an entry in the initial waiting state.
func NewWaitlistEntry(storeID, name, phone, email string, partySize int) *WaitlistEntry {
	return &WaitlistEntry{
		StoreID:   storeID,
		Name:      name,
		Phone:     phone,
		Email:     email,
		PartySize: partySize,
		Status:    StatusWaiting,
	}
}

func (e *WaitlistEntry) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	return nil
}
