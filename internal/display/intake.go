package display

import (
	"context"
	"sync"

	"github.com/chrisng16/waitlist/internal/dto"
	"github.com/chrisng16/waitlist/internal/form"
	"github.com/chrisng16/waitlist/internal/phone"
)

type OutcomeStatus string

const (
	OutcomeSuccess OutcomeStatus = "success"
	OutcomeError   OutcomeStatus = "error"
	OutcomeClosed  OutcomeStatus = "closed"
	OutcomeInvalid OutcomeStatus = "invalid"
	OutcomeBusy    OutcomeStatus = "busy"
)

const (
	MsgJoined = "You have been added to the waitlist"
	MsgClosed = "The waitlist is currently closed"
)

// Outcome describes what happened to one Submit call.
type Outcome struct {
	Status      OutcomeStatus
	Message     string
	FieldErrors map[string]string
	// Dismissed is true once an attempt reached the service, whatever its result.
	Dismissed bool
}

// IntakeForm is the customer-facing join form. It only accepts input while
// active reports true.
type IntakeForm struct {
	api     API
	storeID string
	active  func() bool

	mu         sync.Mutex
	fields     form.JoinWaitlist
	submitting bool
}

func NewIntakeForm(api API, storeID string, active func() bool) *IntakeForm {
	return &IntakeForm{api: api, storeID: storeID, active: active}
}

func (f *IntakeForm) SetName(name string) {
	f.set(func(j *form.JoinWaitlist) { j.Name = name })
}

// SetPhone stores the reformatted input.
func (f *IntakeForm) SetPhone(input string) {
	f.set(func(j *form.JoinWaitlist) { j.Phone = phone.Format(input) })
}

func (f *IntakeForm) SetEmail(email string) {
	f.set(func(j *form.JoinWaitlist) { j.Email = email })
}

func (f *IntakeForm) SetPartySize(n int) {
	f.set(func(j *form.JoinWaitlist) { j.PartySize = n })
}

func (f *IntakeForm) set(apply func(*form.JoinWaitlist)) {
	if !f.active() {
		return
	}
	f.mu.Lock()
	apply(&f.fields)
	f.mu.Unlock()
}

// Fields returns the current input.
func (f *IntakeForm) Fields() form.JoinWaitlist {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fields
}

func (f *IntakeForm) Reset() {
	f.mu.Lock()
	f.fields = form.JoinWaitlist{}
	f.mu.Unlock()
}

func (f *IntakeForm) Submit(ctx context.Context) Outcome {
	if !f.active() {
		return Outcome{Status: OutcomeClosed, Message: MsgClosed}
	}

	f.mu.Lock()
	if f.submitting {
		f.mu.Unlock()
		return Outcome{Status: OutcomeBusy}
	}
	fields := f.fields
	if err := fields.Validate(); err != nil {
		f.mu.Unlock()
		return Outcome{Status: OutcomeInvalid, Message: err.Error(), FieldErrors: form.FieldMessages(err)}
	}
	f.submitting = true
	f.mu.Unlock()

	defer func() {
		f.mu.Lock()
		f.submitting = false
		f.mu.Unlock()
	}()

	_, err := f.api.JoinWaitlist(ctx, f.storeID, dto.JoinWaitlistRequest{
		Name:      fields.Name,
		Phone:     fields.Phone,
		Email:     fields.Email,
		PartySize: fields.PartySize,
	})
	if err != nil {
		return Outcome{Status: OutcomeError, Message: err.Error(), Dismissed: true}
	}

	f.Reset()
	return Outcome{Status: OutcomeSuccess, Message: MsgJoined, Dismissed: true}
}
