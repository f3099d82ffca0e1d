package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/lfreitas/divan/internal/appointment"
)

func newTestStore(t *testing.T) *SQLite {
	t.Helper()
	kv, err := Open(filepath.Join(t.TempDir(), "divan.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { _ = kv.Close() })
	return kv
}

func TestPutGet(t *testing.T) {
	kv := newTestStore(t)
	ctx := context.Background()

	if err := kv.Put(ctx, KeyToken, "tok-123"); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	got, err := kv.Get(ctx, KeyToken)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got != "tok-123" {
		t.Errorf("Get = %q, want tok-123", got)
	}
}

func TestPutReplaces(t *testing.T) {
	kv := newTestStore(t)
	ctx := context.Background()

	if err := kv.Put(ctx, KeyProfessionalID, "old"); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if err := kv.Put(ctx, KeyProfessionalID, "new"); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	got, err := kv.Get(ctx, KeyProfessionalID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got != "new" {
		t.Errorf("Get = %q, want new", got)
	}
}

func TestGetMissingKey(t *testing.T) {
	kv := newTestStore(t)

	_, err := kv.Get(context.Background(), "nonexistent")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Get on missing key: error = %v, want ErrNotFound", err)
	}
}

func TestDeleteMultipleKeys(t *testing.T) {
	kv := newTestStore(t)
	ctx := context.Background()

	if err := kv.Put(ctx, KeyToken, "tok"); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if err := kv.Put(ctx, KeyProfessionalID, "prof-1"); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	if err := kv.Delete(ctx, KeyToken, KeyProfessionalID, "never-existed"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	if _, err := kv.Get(ctx, KeyToken); !errors.Is(err, ErrNotFound) {
		t.Errorf("token survived delete: %v", err)
	}
	if _, err := kv.Get(ctx, KeyProfessionalID); !errors.Is(err, ErrNotFound) {
		t.Errorf("professional id survived delete: %v", err)
	}
}

func TestConfirmationStoreRoundTrip(t *testing.T) {
	kv := newTestStore(t)
	cs := NewConfirmationStore(kv)
	ctx := context.Background()

	records := map[string]appointment.ConfirmationRecord{
		"a1": {ID: "a1", Action: appointment.ActionConfirmed, Timestamp: time.Now().Truncate(time.Second)},
		"a2": {ID: "a2", Action: appointment.ActionNoShow, Timestamp: time.Now().Truncate(time.Second)},
	}

	if err := cs.Save(ctx, records); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := cs.Load(ctx)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(loaded) != 2 {
		t.Fatalf("loaded %d records, want 2", len(loaded))
	}
	if loaded["a1"].Action != appointment.ActionConfirmed {
		t.Errorf("a1 action = %q, want confirmed", loaded["a1"].Action)
	}
	if loaded["a2"].Action != appointment.ActionNoShow {
		t.Errorf("a2 action = %q, want no-show", loaded["a2"].Action)
	}
}

func TestConfirmationStoreEmpty(t *testing.T) {
	kv := newTestStore(t)
	cs := NewConfirmationStore(kv)

	loaded, err := cs.Load(context.Background())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded == nil || len(loaded) != 0 {
		t.Errorf("Load on empty store = %v, want empty map", loaded)
	}
}

func TestConfirmationStoreCorruptPayload(t *testing.T) {
	kv := newTestStore(t)
	cs := NewConfirmationStore(kv)
	ctx := context.Background()

	if err := kv.Put(ctx, KeyConfirmations, "{not json"); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	loaded, err := cs.Load(ctx)
	if err != nil {
		t.Fatalf("Load on corrupt payload returned error: %v", err)
	}
	if len(loaded) != 0 {
		t.Errorf("Load on corrupt payload = %v, want empty map", loaded)
	}
}
