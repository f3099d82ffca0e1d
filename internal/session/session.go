// Package session keeps the authenticated professional's identity between
// runs, backed by the local key/value store.
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lfreitas/divan/internal/store"
)

// ErrNotLoggedIn is returned when an operation requires an authenticated
// session and none exists.
var ErrNotLoggedIn = errors.New("not logged in, run 'divan login' first")

// Session is the persisted login state. It implements api.TokenSource so the
// HTTP client can attach the bearer token without knowing about storage.
type Session struct {
	kv             *store.SQLite
	token          string
	professionalID string
}

// Load reads any persisted session from the store. A store without a session
// yields a logged-out Session, not an error.
func Load(ctx context.Context, kv *store.SQLite) (*Session, error) {
	s := &Session{kv: kv}

	token, err := kv.Get(ctx, store.KeyToken)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("loading session token: %w", err)
	}
	id, err := kv.Get(ctx, store.KeyProfessionalID)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("loading professional id: %w", err)
	}

	// A token without an identity (or the reverse) is a half-written session;
	// treat it as logged out.
	if token != "" && id != "" {
		s.token = token
		s.professionalID = id
	}
	return s, nil
}

// LoggedIn reports whether a complete session is present.
func (s *Session) LoggedIn() bool {
	return s.token != "" && s.professionalID != ""
}

// Token returns the current bearer token, or "" when logged out.
func (s *Session) Token() string {
	return s.token
}

// ProfessionalID returns the authenticated professional's id. Returns
// ErrNotLoggedIn when no session exists.
func (s *Session) ProfessionalID() (string, error) {
	if !s.LoggedIn() {
		return "", ErrNotLoggedIn
	}
	return s.professionalID, nil
}

// Login persists a new session for the given professional. The token is an
// opaque client-side marker derived from the identity and login instant; the
// server trusts the professional id on authenticated routes.
func (s *Session) Login(ctx context.Context, professionalID string) error {
	if professionalID == "" {
		return errors.New("login returned an empty professional id")
	}

	token := fmt.Sprintf("%s-%d", professionalID, time.Now().Unix())
	if err := s.kv.Put(ctx, store.KeyToken, token); err != nil {
		return fmt.Errorf("storing session token: %w", err)
	}
	if err := s.kv.Put(ctx, store.KeyProfessionalID, professionalID); err != nil {
		return fmt.Errorf("storing professional id: %w", err)
	}

	s.token = token
	s.professionalID = professionalID
	return nil
}

// Logout removes the persisted session. Both keys go in one transaction so a
// partial logout cannot leave a half-written session behind.
func (s *Session) Logout(ctx context.Context) error {
	if err := s.kv.Delete(ctx, store.KeyToken, store.KeyProfessionalID); err != nil {
		return fmt.Errorf("clearing session: %w", err)
	}
	s.token = ""
	s.professionalID = ""
	return nil
}
