// Package store provides the local SQLite-backed key/value storage the
// dashboard uses for session data and confirmation records.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // SQLite driver
)

// Storage keys. These names are stable across releases: data written by one
// version must be readable by the next.
const (
	KeyConfirmations  = "confirmed-appointments"
	KeyToken          = "auth-token"
	KeyProfessionalID = "professional-id"
)

// ErrNotFound is returned by Get when the key has no stored value.
var ErrNotFound = errors.New("key not found")

// SQLite is a key/value store backed by a single SQLite table.
type SQLite struct {
	db *sql.DB
}

// Open creates the parent directory if needed, opens the database and runs
// migrations.
func Open(path string) (*SQLite, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating storage directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	s := &SQLite{db: db}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Get returns the value stored under key. Returns ErrNotFound when absent.
func (s *SQLite) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM storage WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("querying key %q: %w", key, err)
	}
	return value, nil
}

// Put stores value under key, replacing any previous value.
func (s *SQLite) Put(ctx context.Context, key, value string) error {
	query := `
		INSERT INTO storage (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`
	if _, err := s.db.ExecContext(ctx, query, key, value); err != nil {
		return fmt.Errorf("storing key %q: %w", key, err)
	}
	return nil
}

// Delete removes the given keys in a single transaction. Missing keys are not
// an error.
func (s *SQLite) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `DELETE FROM storage WHERE key = ?`)
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, key := range keys {
		if _, err := stmt.ExecContext(ctx, key); err != nil {
			return fmt.Errorf("deleting key %q: %w", key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	return nil
}

// Close releases database resources.
func (s *SQLite) Close() error {
	return s.db.Close()
}
