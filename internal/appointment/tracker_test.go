package appointment

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

// memStore is an in-memory RecordStore for tests.
type memStore struct {
	mu      sync.Mutex
	records map[string]ConfirmationRecord
	saves   int
}

func (m *memStore) Load(_ context.Context) (map[string]ConfirmationRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]ConfirmationRecord, len(m.records))
	for k, v := range m.records {
		out[k] = v
	}
	return out, nil
}

func (m *memStore) Save(_ context.Context, records map[string]ConfirmationRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = make(map[string]ConfirmationRecord, len(records))
	for k, v := range records {
		m.records[k] = v
	}
	m.saves++
	return nil
}

// fakeRemote records calls and fails the ids in failing.
type fakeRemote struct {
	mu      sync.Mutex
	calls   []string
	failing map[string]error
}

func (f *fakeRemote) ConfirmAttendance(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, id)
	if err, ok := f.failing[id]; ok {
		return err
	}
	return nil
}

func pastAppointment(id, hour string, now time.Time) Appointment {
	return Appointment{
		ID:        id,
		Date:      time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local),
		Hour:      hour,
		PatientID: "p-" + id,
		Status:    StatusScheduled,
	}
}

func newTestTracker(t *testing.T) (*Tracker, *memStore, *fakeRemote) {
	t.Helper()
	store := &memStore{}
	remote := &fakeRemote{failing: map[string]error{}}
	tr, err := NewTracker(context.Background(), store, remote)
	if err != nil {
		t.Fatalf("NewTracker returned error: %v", err)
	}
	return tr, store, remote
}

func TestRefreshClassifiesPending(t *testing.T) {
	tr, _, _ := newTestTracker(t)
	now := time.Date(2025, 4, 10, 12, 0, 0, 0, time.Local)

	appts := []Appointment{
		pastAppointment("due", "11:00", now),   // 60 min past
		pastAppointment("fresh", "11:57", now), // 3 min past, below threshold
		pastAppointment("future", "14:00", now),
		{ID: "no-patient", Date: now, Hour: "10:00", Status: StatusScheduled},
		{ID: "cancelled", Date: now, Hour: "10:00", PatientID: "p", Status: StatusCancelled},
	}

	tr.Refresh(now, appts)
	pending := tr.Pending()
	if len(pending) != 1 || pending[0].ID != "due" {
		t.Errorf("pending = %v, want only 'due'", pending)
	}
}

func TestRefreshExcludesDecidedAppointments(t *testing.T) {
	tr, _, _ := newTestTracker(t)
	now := time.Date(2025, 4, 10, 12, 0, 0, 0, time.Local)

	tr.Refresh(now, []Appointment{pastAppointment("a1", "11:00", now)})
	if err := tr.Confirm(context.Background(), "a1"); err != nil {
		t.Fatalf("Confirm returned error: %v", err)
	}

	// A later tick with the same inputs must not resurrect the appointment.
	tr.Refresh(now, []Appointment{pastAppointment("a1", "11:00", now)})
	if len(tr.Pending()) != 0 {
		t.Errorf("decided appointment re-entered the pending set")
	}
}

func TestLastWriteWins(t *testing.T) {
	tr, store, _ := newTestTracker(t)
	now := time.Date(2025, 4, 10, 12, 0, 0, 0, time.Local)
	ctx := context.Background()

	tr.Refresh(now, []Appointment{pastAppointment("a1", "11:00", now)})
	if err := tr.Confirm(ctx, "a1"); err != nil {
		t.Fatalf("Confirm returned error: %v", err)
	}

	// Revising the decision the other way overwrites the stored record.
	if err := tr.NoShow(ctx, "a1"); err != nil {
		t.Fatalf("NoShow after Confirm returned error: %v", err)
	}

	records, _ := store.Load(ctx)
	if len(records) != 1 {
		t.Fatalf("stored records = %d, want exactly 1", len(records))
	}
	if records["a1"].Action != ActionNoShow {
		t.Errorf("record action = %q, want no-show (last write wins)", records["a1"].Action)
	}
	if len(tr.Pending()) != 0 {
		t.Errorf("appointment still pending after decision")
	}

	// The reverse order holds too: the latest decision always wins.
	if err := tr.Confirm(ctx, "a1"); err != nil {
		t.Fatalf("Confirm after NoShow returned error: %v", err)
	}
	records, _ = store.Load(ctx)
	if records["a1"].Action != ActionConfirmed {
		t.Errorf("record action = %q, want confirmed after revision", records["a1"].Action)
	}
}

func TestEscalationThreshold(t *testing.T) {
	tr, _, _ := newTestTracker(t)
	now := time.Date(2025, 4, 10, 12, 0, 0, 0, time.Local)
	ctx := context.Background()

	two := []Appointment{
		pastAppointment("a1", "10:00", now),
		pastAppointment("a2", "10:30", now),
	}
	tr.Refresh(now, two)
	if tr.NeedsEscalation() {
		t.Error("2 pending: NeedsEscalation = true, want false")
	}

	three := append(two, pastAppointment("a3", "11:00", now))
	tr.Refresh(now, three)
	if !tr.NeedsEscalation() {
		t.Error("3 pending: NeedsEscalation = false, want true")
	}

	tr.MarkEscalated()
	if tr.NeedsEscalation() {
		t.Error("modal already opened: NeedsEscalation = true, want false")
	}

	// Still >= 3 pending on the next tick; the dismissed modal stays closed.
	tr.Refresh(now, three)
	if tr.NeedsEscalation() {
		t.Error("dismissed modal reopened on poll tick")
	}

	res := tr.ConfirmAll(ctx)
	if res.Confirmed != 3 {
		t.Fatalf("ConfirmAll confirmed %d, want 3", res.Confirmed)
	}
	if len(tr.Pending()) != 0 {
		t.Fatal("pending set not emptied by ConfirmAll")
	}
	if tr.NeedsEscalation() {
		t.Error("empty pending set: NeedsEscalation = true, want false")
	}

	// New pending wave after the set emptied may escalate again.
	tr.mu.Lock()
	tr.records = map[string]ConfirmationRecord{}
	tr.mu.Unlock()
	tr.Refresh(now, three)
	if !tr.NeedsEscalation() {
		t.Error("new wave after empty set: NeedsEscalation = false, want true")
	}
}

func TestBulkConfirmationIsolation(t *testing.T) {
	tr, store, remote := newTestTracker(t)
	now := time.Date(2025, 4, 10, 12, 0, 0, 0, time.Local)
	ctx := context.Background()
	remote.failing["a2"] = errors.New("boom")

	tr.Refresh(now, []Appointment{
		pastAppointment("a1", "10:00", now),
		pastAppointment("a2", "10:30", now),
		pastAppointment("a3", "11:00", now),
	})

	res := tr.ConfirmAll(ctx)
	if res.Confirmed != 2 {
		t.Errorf("Confirmed = %d, want 2", res.Confirmed)
	}
	if len(res.Failed) != 1 || res.Failed[0] != "a2" {
		t.Errorf("Failed = %v, want [a2]", res.Failed)
	}

	pending := tr.Pending()
	if len(pending) != 1 || pending[0].ID != "a2" {
		t.Errorf("pending after bulk = %v, want only a2", pending)
	}

	records, _ := store.Load(ctx)
	if _, ok := records["a2"]; ok {
		t.Error("failed item got a record (optimistic write)")
	}
	if records["a1"].Action != ActionConfirmed || records["a3"].Action != ActionConfirmed {
		t.Errorf("successful items not recorded: %v", records)
	}
}

func TestRemoteFailureLeavesPending(t *testing.T) {
	tr, store, remote := newTestTracker(t)
	now := time.Date(2025, 4, 10, 12, 0, 0, 0, time.Local)
	ctx := context.Background()
	remote.failing["a1"] = errors.New("timeout")

	tr.Refresh(now, []Appointment{pastAppointment("a1", "10:00", now)})
	if err := tr.Confirm(ctx, "a1"); err == nil {
		t.Fatal("Confirm with failing remote succeeded, want error")
	}
	if len(tr.Pending()) != 1 {
		t.Error("failed confirm removed the appointment from pending")
	}
	records, _ := store.Load(ctx)
	if len(records) != 0 {
		t.Error("failed confirm wrote a local record")
	}

	// Retry after the remote recovers.
	delete(remote.failing, "a1")
	if err := tr.Confirm(ctx, "a1"); err != nil {
		t.Fatalf("retry returned error: %v", err)
	}
	if len(tr.Pending()) != 0 {
		t.Error("appointment still pending after successful retry")
	}
}

func TestConfirmRejectsUnknownAppointment(t *testing.T) {
	tr, _, _ := newTestTracker(t)
	if err := tr.Confirm(context.Background(), "ghost"); !errors.Is(err, ErrNotPending) {
		t.Errorf("Confirm on unknown id: error = %v, want ErrNotPending", err)
	}
}

func TestRehydratedRecordsSuppressPending(t *testing.T) {
	store := &memStore{records: map[string]ConfirmationRecord{
		"a1": {ID: "a1", Action: ActionConfirmed, Timestamp: time.Now()},
	}}
	tr, err := NewTracker(context.Background(), store, &fakeRemote{})
	if err != nil {
		t.Fatalf("NewTracker returned error: %v", err)
	}

	now := time.Date(2025, 4, 10, 12, 0, 0, 0, time.Local)
	tr.Refresh(now, []Appointment{pastAppointment("a1", "10:00", now)})
	if len(tr.Pending()) != 0 {
		t.Error("appointment with rehydrated record entered the pending set")
	}
}
