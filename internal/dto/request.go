package dto

import "github.com/chrisng16/waitlist/internal/models"

type JoinWaitlistRequest struct {
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
	PartySize int    `json:"party_size"`
}

type UpdateStatusRequest struct {
	Status     models.EntryStatus `json:"status"`
	PhoneLast4 string             `json:"phone_last4,omitempty"`
}

type VerifyPasscodeRequest struct {
	StoreLoginID string `json:"store_login_id"`
	Passcode     string `json:"passcode"`
}
