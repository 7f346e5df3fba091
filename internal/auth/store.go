// Package auth owns the session: the current user, the bearer token, and
// their durable copies in the local state file. The store is the single
// writer of the token; the API client reads it through the TokenSource
// interface, so there is no second in-memory copy to drift.
package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/Hirosolo/train-diary-cli/internal/api"
	"github.com/Hirosolo/train-diary-cli/internal/db"
	"github.com/Hirosolo/train-diary-cli/internal/model"
)

type State int

const (
	StateUnauthenticated State = iota
	StateAuthenticating
	StateAuthenticated
)

func (s State) String() string {
	switch s {
	case StateAuthenticating:
		return "authenticating"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "unauthenticated"
	}
}

// Storage is the durable key/value store behind the session.
type Storage interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Delete(key string) error
}

// Gateway is the slice of the API client the store needs.
type Gateway interface {
	Login(ctx context.Context, req api.LoginRequest) (api.LoginResponse, error)
	Register(ctx context.Context, req api.RegisterRequest) (api.MessageResponse, error)
}

type Store struct {
	mu      sync.Mutex
	storage Storage
	state   State
	user    *model.User
	token   string
	// epoch stamps each login attempt; a logout bumps it so a login
	// response that lands afterwards is discarded instead of resurrecting
	// the session.
	epoch uint64
}

func NewStore(storage Storage) *Store {
	return &Store{storage: storage}
}

// Token implements api.TokenSource.
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// CurrentUser returns the authenticated user, or false when there is none.
func (s *Store) CurrentUser() (model.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return model.User{}, false
	}
	return *s.user, true
}

// Bootstrap restores the session from durable storage. A stored value that is
// missing, not valid JSON, or structurally incomplete (no user_id or email)
// clears the partial state instead of failing: corrupt storage is treated as
// absent.
func (s *Store) Bootstrap() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	token, hasToken, err := s.storage.Get(db.StateToken)
	if err != nil {
		return fmt.Errorf("read stored token: %w", err)
	}
	rawUser, hasUser, err := s.storage.Get(db.StateUser)
	if err != nil {
		return fmt.Errorf("read stored user: %w", err)
	}

	if !hasToken || !hasUser || strings.TrimSpace(token) == "" {
		return s.clearLocked()
	}

	var user model.User
	if err := json.Unmarshal([]byte(rawUser), &user); err != nil {
		return s.clearLocked()
	}
	if user.UserID <= 0 || user.Email == "" {
		return s.clearLocked()
	}

	s.token = token
	s.user = &user
	s.state = StateAuthenticated
	return nil
}

// Login authenticates against the backend and, on a response carrying a
// token, persists the session. The raw response is returned either way so the
// caller can surface the backend's message.
func (s *Store) Login(ctx context.Context, gw Gateway, email, password string) (api.LoginResponse, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return api.LoginResponse{}, fmt.Errorf("email and password are required")
	}

	s.mu.Lock()
	s.state = StateAuthenticating
	s.epoch++
	attempt := s.epoch
	s.mu.Unlock()

	resp, err := gw.Login(ctx, api.LoginRequest{Email: email, Password: password})

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.epoch != attempt {
		// A logout (or newer login) won the race; drop this response.
		return resp, err
	}
	if err != nil || resp.Token == "" {
		s.state = StateUnauthenticated
		return resp, err
	}

	s.token = resp.Token
	user := resp.User
	s.user = &user
	s.state = StateAuthenticated

	if err := s.persistLocked(); err != nil {
		return resp, err
	}
	return resp, nil
}

// Register is a pass-through; it never mutates session state.
func (s *Store) Register(ctx context.Context, gw Gateway, username, email, password string) (api.MessageResponse, error) {
	if strings.TrimSpace(username) == "" || strings.TrimSpace(email) == "" || password == "" {
		return api.MessageResponse{}, fmt.Errorf("username, email and password are required")
	}
	return gw.Register(ctx, api.RegisterRequest{Username: username, Email: email, Password: password})
}

// Logout clears the in-memory session and its durable copies.
func (s *Store) Logout() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.epoch++
	return s.clearLocked()
}

func (s *Store) persistLocked() error {
	if err := s.storage.Set(db.StateToken, s.token); err != nil {
		return fmt.Errorf("persist token: %w", err)
	}
	raw, err := json.Marshal(s.user)
	if err != nil {
		return fmt.Errorf("serialize user: %w", err)
	}
	if err := s.storage.Set(db.StateUser, string(raw)); err != nil {
		return fmt.Errorf("persist user: %w", err)
	}
	return nil
}

func (s *Store) clearLocked() error {
	s.user = nil
	s.token = ""
	s.state = StateUnauthenticated
	if err := s.storage.Delete(db.StateToken); err != nil {
		return fmt.Errorf("clear stored token: %w", err)
	}
	if err := s.storage.Delete(db.StateUser); err != nil {
		return fmt.Errorf("clear stored user: %w", err)
	}
	return nil
}
