package service

import "errors"

var (
	ErrStoreNotFound  = errors.New("store not found")
	ErrEntryNotFound  = errors.New("waitlist entry not found")
	ErrWaitlistClosed = errors.New("the waitlist is currently closed")
	ErrInvalidStatus  = errors.New("invalid status")
	ErrPhoneMismatch  = errors.New("invalid phone number")
	ErrInvalidStore   = errors.New("store login id, name and passcode are required")
)
