package appointment

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"
)

// Tracker thresholds. These are behavioral invariants of the dashboard, not
// configuration: an appointment becomes pending PendingAfterMinutes past its
// slot, and the confirmation modal escalates at EscalationThreshold pending
// items. PollInterval is how often callers are expected to call Refresh.
const (
	PendingAfterMinutes = 5
	EscalationThreshold = 3
	PollInterval        = 30 * time.Second
)

// ErrNotPending is returned when acting on an appointment the tracker has
// never classified: neither pending now nor decided before.
var ErrNotPending = errors.New("appointment is not pending confirmation")

// RecordStore persists the confirmation record map durably.
type RecordStore interface {
	// Load returns the stored records. Corrupt or missing data yields an empty
	// map, never an error that would block startup.
	Load(ctx context.Context) (map[string]ConfirmationRecord, error)

	// Save replaces the stored records.
	Save(ctx context.Context, records map[string]ConfirmationRecord) error
}

// Notifier reports a handled appointment to the remote service. Confirm and
// no-show share the same remote call; only the local record tells them apart.
type Notifier interface {
	ConfirmAttendance(ctx context.Context, schedulingID string) error
}

// BulkResult summarizes a bulk confirmation: how many items succeeded and
// which ids failed (and therefore stayed pending).
type BulkResult struct {
	Confirmed int
	Failed    []string
}

// Tracker classifies fetched appointments as pending confirmation and applies
// the professional's confirm/no-show decisions, persisting each one locally
// and notifying the remote service.
//
// The tracker is safe for concurrent use; TUI commands run in their own
// goroutines.
type Tracker struct {
	mu      sync.Mutex
	store   RecordStore
	remote  Notifier
	records map[string]ConfirmationRecord
	pending []Appointment
	// escalated stays true from modal auto-open until the pending set empties,
	// so a dismissed modal does not reopen on every poll tick.
	escalated bool
}

// NewTracker creates a Tracker and rehydrates the persisted records.
func NewTracker(ctx context.Context, store RecordStore, remote Notifier) (*Tracker, error) {
	records, err := store.Load(ctx)
	if err != nil {
		return nil, err
	}
	if records == nil {
		records = make(map[string]ConfirmationRecord)
	}
	return &Tracker{store: store, remote: remote, records: records}, nil
}

// Refresh recomputes the pending set from the full appointment list. It is
// called on every poll tick and after every fetch; the result depends only on
// the inputs, so repeated calls are idempotent.
//
// An appointment is pending when its status is scheduled, it has a patient,
// no confirmation record exists for it, and its slot time is at least
// PendingAfterMinutes in the past.
func (t *Tracker) Refresh(now time.Time, appointments []Appointment) {
	t.mu.Lock()
	defer t.mu.Unlock()

	var pending []Appointment
	for _, a := range appointments {
		if a.Status != StatusScheduled || a.PatientID == "" {
			continue
		}
		if _, decided := t.records[a.ID]; decided {
			continue
		}
		if a.MinutesPassed(now) >= PendingAfterMinutes {
			pending = append(pending, a)
		}
	}
	sort.Slice(pending, func(i, j int) bool {
		return pending[i].SlotTime().Before(pending[j].SlotTime())
	})

	t.pending = pending
	if len(pending) == 0 {
		t.escalated = false
	}
}

// Pending returns a copy of the current pending set, oldest slot first.
func (t *Tracker) Pending() []Appointment {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]Appointment, len(t.pending))
	copy(out, t.pending)
	return out
}

// NeedsEscalation reports whether the confirmation modal should auto-open:
// the pending set reached the threshold and no modal was opened since the set
// last emptied.
func (t *Tracker) NeedsEscalation() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.pending) >= EscalationThreshold && !t.escalated
}

// MarkEscalated records that the modal was opened. Dismissing the modal does
// not clear the flag; only an emptied pending set does (see Refresh).
func (t *Tracker) MarkEscalated() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.escalated = true
}

// Record returns the confirmation record for an appointment id, if any.
func (t *Tracker) Record(id string) (ConfirmationRecord, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	r, ok := t.records[id]
	return r, ok
}

// Confirm marks a pending appointment as attended. The remote call happens
// first: on failure the appointment stays pending and the error is returned
// so the caller can retry. An already decided appointment may be confirmed
// again; the new record overwrites the old one.
func (t *Tracker) Confirm(ctx context.Context, id string) error {
	return t.decide(ctx, id, ActionConfirmed)
}

// NoShow marks a pending appointment as missed, or revises an earlier
// decision (last write wins). Only available per-item; the bulk path confirms.
func (t *Tracker) NoShow(ctx context.Context, id string) error {
	return t.decide(ctx, id, ActionNoShow)
}

func (t *Tracker) decide(ctx context.Context, id string, action Action) error {
	t.mu.Lock()
	_, decided := t.records[id]
	if !t.isPendingLocked(id) && !decided {
		t.mu.Unlock()
		return ErrNotPending
	}
	t.mu.Unlock()

	if err := t.remote.ConfirmAttendance(ctx, id); err != nil {
		return err
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.writeRecordLocked(ctx, id, action)
	return nil
}

// ConfirmAll confirms every pending appointment with independent per-item
// remote calls: one failure never blocks or rolls back the others. Failed
// items remain pending.
func (t *Tracker) ConfirmAll(ctx context.Context) BulkResult {
	pending := t.Pending()

	type outcome struct {
		id  string
		err error
	}
	results := make(chan outcome, len(pending))
	var wg sync.WaitGroup
	for _, a := range pending {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			results <- outcome{id: id, err: t.remote.ConfirmAttendance(ctx, id)}
		}(a.ID)
	}
	wg.Wait()
	close(results)

	var res BulkResult
	t.mu.Lock()
	defer t.mu.Unlock()
	for r := range results {
		if r.err != nil {
			res.Failed = append(res.Failed, r.id)
			continue
		}
		t.writeRecordLocked(ctx, r.id, ActionConfirmed)
		res.Confirmed++
	}
	sort.Strings(res.Failed)
	return res
}

// ClearRecords drops every stored confirmation record.
func (t *Tracker) ClearRecords(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.records = make(map[string]ConfirmationRecord)
	return t.store.Save(ctx, t.records)
}

// isPendingLocked reports whether id is in the pending set. Caller holds mu.
func (t *Tracker) isPendingLocked(id string) bool {
	for _, a := range t.pending {
		if a.ID == id {
			return true
		}
	}
	return false
}

// writeRecordLocked stores the decision (last write wins), persists the map,
// and removes the appointment from the pending set. Caller holds mu.
func (t *Tracker) writeRecordLocked(ctx context.Context, id string, action Action) {
	t.records[id] = ConfirmationRecord{ID: id, Action: action, Timestamp: time.Now()}
	_ = t.store.Save(ctx, t.records)

	kept := t.pending[:0]
	for _, a := range t.pending {
		if a.ID != id {
			kept = append(kept, a)
		}
	}
	t.pending = kept
	if len(t.pending) == 0 {
		t.escalated = false
	}
}
