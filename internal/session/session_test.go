package session

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lfreitas/divan/internal/store"
)

func newTestKV(t *testing.T) *store.SQLite {
	t.Helper()
	kv, err := store.Open(filepath.Join(t.TempDir(), "divan.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { _ = kv.Close() })
	return kv
}

func TestLoadWithoutSession(t *testing.T) {
	kv := newTestKV(t)

	s, err := Load(context.Background(), kv)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if s.LoggedIn() {
		t.Error("fresh store reports a logged-in session")
	}
	if s.Token() != "" {
		t.Errorf("Token = %q, want empty", s.Token())
	}
	if _, err := s.ProfessionalID(); !errors.Is(err, ErrNotLoggedIn) {
		t.Errorf("ProfessionalID error = %v, want ErrNotLoggedIn", err)
	}
}

func TestLoginPersists(t *testing.T) {
	kv := newTestKV(t)
	ctx := context.Background()

	s, err := Load(ctx, kv)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if err := s.Login(ctx, "prof-42"); err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	if !s.LoggedIn() {
		t.Fatal("LoggedIn = false after Login")
	}
	if !strings.HasPrefix(s.Token(), "prof-42-") {
		t.Errorf("Token = %q, want prof-42-<unix> shape", s.Token())
	}

	// A new Session over the same store sees the persisted login.
	reloaded, err := Load(ctx, kv)
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if !reloaded.LoggedIn() {
		t.Error("session did not survive reload")
	}
	id, err := reloaded.ProfessionalID()
	if err != nil {
		t.Fatalf("ProfessionalID failed: %v", err)
	}
	if id != "prof-42" {
		t.Errorf("ProfessionalID = %q, want prof-42", id)
	}
}

func TestLoginRejectsEmptyID(t *testing.T) {
	kv := newTestKV(t)
	ctx := context.Background()

	s, err := Load(ctx, kv)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if err := s.Login(ctx, ""); err == nil {
		t.Error("Login with empty id succeeded, want error")
	}
}

func TestLogoutClearsBothKeys(t *testing.T) {
	kv := newTestKV(t)
	ctx := context.Background()

	s, err := Load(ctx, kv)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if err := s.Login(ctx, "prof-42"); err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if err := s.Logout(ctx); err != nil {
		t.Fatalf("Logout failed: %v", err)
	}

	if s.LoggedIn() {
		t.Error("LoggedIn = true after Logout")
	}
	if _, err := kv.Get(ctx, store.KeyToken); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("token key survived logout: %v", err)
	}
	if _, err := kv.Get(ctx, store.KeyProfessionalID); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("professional id key survived logout: %v", err)
	}
}

func TestHalfWrittenSessionIsLoggedOut(t *testing.T) {
	kv := newTestKV(t)
	ctx := context.Background()

	if err := kv.Put(ctx, store.KeyToken, "orphan-token"); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	s, err := Load(ctx, kv)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if s.LoggedIn() {
		t.Error("token without professional id reports logged in")
	}
}
