package store

import "fmt"

// migrate runs database migrations.
func (s *SQLite) migrate() error {
	query := `
		CREATE TABLE IF NOT EXISTS storage (
			key   TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
	`

	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("creating storage table: %w", err)
	}

	return nil
}
