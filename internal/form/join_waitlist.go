package form

import (
	"regexp"
	"strings"

	v "github.com/go-ozzo/ozzo-validation/v4"
)

const (
	MinPartySize = 1
	MaxPartySize = 12
)

var (
	phonePattern = regexp.MustCompile(`^(1-)?\d{3}-\d{3}-\d{4}$`)
	emailPattern = regexp.MustCompile(`(?i)^[A-Z0-9._%+-]+@[A-Z0-9.-]+\.[A-Z]{2,}$`)
)

// JoinWaitlist is the intake form a customer fills in to join a store's waitlist.
type JoinWaitlist struct {
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
	PartySize int    `json:"party_size"`
}

func (f *JoinWaitlist) Validate() error {
	f.Name = strings.TrimSpace(f.Name)
	f.Email = strings.TrimSpace(f.Email)

	return ValidateStruct(f,
		v.Field(&f.Name, v.Required.Error("name is required")),
		v.Field(&f.Phone,
			v.Required.Error("phone is required"),
			v.Match(phonePattern).Error("invalid phone number (10 digits)"),
		),
		v.Field(&f.Email,
			v.Required.Error("email is required"),
			v.Match(emailPattern).Error("invalid email address"),
		),
		v.Field(&f.PartySize,
			v.Required.Error("number of people is required"),
			v.Min(MinPartySize).Error("at least 1 person required"),
			v.Max(MaxPartySize).Error("at most 12 people per party"),
		),
	)
}
