package dto

import (
	"time"

	"github.com/chrisng16/waitlist/internal/models"
	"github.com/chrisng16/waitlist/internal/queue"
)

type StoreResponse struct {
	ID               string `json:"id"`
	LoginID          string `json:"store_login_id"`
	Name             string `json:"store_name"`
	Description      string `json:"store_desc"`
	IsWaitlistActive bool   `json:"is_waitlist_active"`
}

type EntryResponse struct {
	ID        string             `json:"id"`
	StoreID   string             `json:"store_id"`
	Name      string             `json:"name"`
	Phone     string             `json:"phone"`
	Email     string             `json:"email"`
	PartySize int                `json:"party_size"`
	Status    models.EntryStatus `json:"status"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
}

// QueueEntryResponse is one row of the visible queue. Contact details are
// left out since the queue is shown on a shared display.
type QueueEntryResponse struct {
	Place     int                `json:"place"`
	ID        string             `json:"id"`
	Name      string             `json:"name"`
	PartySize int                `json:"party_size"`
	Status    models.EntryStatus `json:"status"`
	CreatedAt time.Time          `json:"created_at"`
}

type VerifyPasscodeResponse struct {
	Success bool `json:"success"`
}

type ErrorResponse struct {
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

func ToStoreResponse(s *models.Store) StoreResponse {
	return StoreResponse{
		ID:               s.ID,
		LoginID:          s.LoginID,
		Name:             s.Name,
		Description:      s.Description,
		IsWaitlistActive: s.IsWaitlistActive,
	}
}

func ToEntryResponse(e *models.WaitlistEntry) EntryResponse {
	return EntryResponse{
		ID:        e.ID,
		StoreID:   e.StoreID,
		Name:      e.Name,
		Phone:     e.Phone,
		Email:     e.Email,
		PartySize: e.PartySize,
		Status:    e.Status,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

func ToQueueResponse(positions []queue.Position) []QueueEntryResponse {
	resp := make([]QueueEntryResponse, len(positions))
	for i, p := range positions {
		resp[i] = QueueEntryResponse{
			Place:     p.Place,
			ID:        p.Entry.ID,
			Name:      p.Entry.Name,
			PartySize: p.Entry.PartySize,
			Status:    p.Entry.Status,
			CreatedAt: p.Entry.CreatedAt,
		}
	}
	return resp
}
