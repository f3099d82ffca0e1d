package store

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/lfreitas/divan/internal/appointment"
)

// ConfirmationStore persists confirmation records as a JSON array under
// KeyConfirmations. It implements appointment.RecordStore.
type ConfirmationStore struct {
	kv *SQLite
}

// NewConfirmationStore wraps a key/value store.
func NewConfirmationStore(kv *SQLite) *ConfirmationStore {
	return &ConfirmationStore{kv: kv}
}

// Load reads the stored records. A missing key or unreadable payload yields an
// empty map so a corrupt entry never blocks startup; the next Save repairs it.
func (c *ConfirmationStore) Load(ctx context.Context) (map[string]appointment.ConfirmationRecord, error) {
	records := make(map[string]appointment.ConfirmationRecord)

	raw, err := c.kv.Get(ctx, KeyConfirmations)
	if errors.Is(err, ErrNotFound) {
		return records, nil
	}
	if err != nil {
		return nil, err
	}

	var list []appointment.ConfirmationRecord
	if err := json.Unmarshal([]byte(raw), &list); err != nil {
		return records, nil
	}
	for _, r := range list {
		records[r.ID] = r
	}
	return records, nil
}

// Save replaces the stored records with the given map.
func (c *ConfirmationStore) Save(ctx context.Context, records map[string]appointment.ConfirmationRecord) error {
	list := make([]appointment.ConfirmationRecord, 0, len(records))
	for _, r := range records {
		list = append(list, r)
	}

	raw, err := json.Marshal(list)
	if err != nil {
		return err
	}
	return c.kv.Put(ctx, KeyConfirmations, string(raw))
}
