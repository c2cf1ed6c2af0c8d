package display

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/chrisng16/waitlist/internal/dto"
)

var (
	ErrIncorrectPasscode = errors.New("incorrect passcode")
	ErrNotSignedIn       = errors.New("not signed in")
	ErrAlreadySignedIn   = errors.New("already signed in")
)

// Gate checks store passcodes. Any failure counts as a rejection.
type Gate struct {
	api API
}

func NewGate(api API) *Gate {
	return &Gate{api: api}
}

func (g *Gate) Verify(ctx context.Context, loginID, passcode string) bool {
	ok, err := g.api.VerifyPasscode(ctx, loginID, passcode)
	if err != nil {
		slog.Warn("passcode verification failed", "component", "gate", "store_login_id", loginID, "error", err)
		return false
	}
	return ok
}

// Session owns at most one mounted shell at a time.
type Session struct {
	api          API
	gate         *Gate
	pollInterval time.Duration
	onQueue      func([]dto.QueueEntryResponse)

	mu      sync.Mutex
	loginID string
	shell   *Shell
}

func NewSession(api API, pollInterval time.Duration) *Session {
	return &Session{api: api, gate: NewGate(api), pollInterval: pollInterval}
}

// OnQueueUpdate sets the callback every shell mounted by Login reports
// fetched queues to, starting with the first snapshot.
func (s *Session) OnQueueUpdate(fn func([]dto.QueueEntryResponse)) {
	s.mu.Lock()
	s.onQueue = fn
	s.mu.Unlock()
}

// Login verifies the passcode, resolves the store and mounts its shell.
func (s *Session) Login(ctx context.Context, loginID, passcode string) (*Shell, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.shell != nil {
		return nil, ErrAlreadySignedIn
	}
	if !s.gate.Verify(ctx, loginID, passcode) {
		return nil, ErrIncorrectPasscode
	}

	store, err := s.api.GetStoreByLoginID(ctx, loginID)
	if err != nil {
		return nil, fmt.Errorf("load store %s: %w", loginID, err)
	}

	shell := NewShell(s.api, store.ID, s.pollInterval)
	if s.onQueue != nil {
		shell.Queue.OnUpdate(s.onQueue)
	}
	shell.Mount(ctx)

	s.loginID = loginID
	s.shell = shell
	slog.Info("signed in", "component", "session", "store_login_id", loginID, "store_id", store.ID)
	return shell, nil
}

// SignOut requires the store passcode again. On a wrong passcode the session
// stays signed in.
func (s *Session) SignOut(ctx context.Context, passcode string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.shell == nil {
		return ErrNotSignedIn
	}
	if !s.gate.Verify(ctx, s.loginID, passcode) {
		return ErrIncorrectPasscode
	}

	err := s.shell.Unmount()
	slog.Info("signed out", "component", "session", "store_login_id", s.loginID)
	s.shell = nil
	s.loginID = ""
	return err
}

func (s *Session) Shell() *Shell {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.shell
}
