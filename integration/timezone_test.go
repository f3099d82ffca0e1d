package integration

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/lfreitas/divan/internal/api"
	"github.com/lfreitas/divan/internal/schedule"
	"github.com/lfreitas/divan/internal/timeutil"
)

// The wire contract is naive local time: the literal wall-clock values the
// professional picked, with no zone suffix and no UTC conversion. These tests
// pin the payload bytes, not just the parsed values.

func TestScheduleTimestampsAreNaiveLocal(t *testing.T) {
	var body []byte
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusCreated)
	}))
	t.Cleanup(ts.Close)

	remote := api.New(ts.URL, time.Second, nil)

	form := schedule.Form{
		Dates:           []time.Time{time.Date(2099, 4, 10, 0, 0, 0, 0, time.Local)},
		Start:           "08:00",
		End:             "18:00",
		Controlled:      true,
		IntervalMinutes: 50,
	}
	result, err := schedule.BuildCreateRecords(form, time.Now())
	if err != nil {
		t.Fatalf("building records: %v", err)
	}
	if err := remote.CreateSchedules(context.Background(), result.Records); err != nil {
		t.Fatalf("creating schedules: %v", err)
	}

	var payload []map[string]any
	if err := json.Unmarshal(body, &payload); err != nil {
		t.Fatalf("request body is not a JSON array: %v", err)
	}
	if len(payload) != 1 {
		t.Fatalf("payload records = %d, want 1", len(payload))
	}

	initial, _ := payload[0]["initialTime"].(string)
	if initial != "2099-04-10T08:00:00" {
		t.Errorf("initialTime = %q, want literal wall-clock value", initial)
	}
	if strings.ContainsAny(initial, "Z+") {
		t.Errorf("initialTime %q carries a zone marker", initial)
	}
	if end, _ := payload[0]["endTime"].(string); end != "2099-04-10T18:00:00" {
		t.Errorf("endTime = %q, want 2099-04-10T18:00:00", end)
	}
}

func TestBookingRangeQueryIsNaiveLocal(t *testing.T) {
	var rawQuery string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rawQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte("[]"))
	}))
	t.Cleanup(ts.Close)

	remote := api.New(ts.URL, time.Second, nil)

	day := time.Date(2025, 4, 10, 0, 0, 0, 0, time.Local)
	from := timeutil.NewNaiveLocal(day, "00:00")
	to := timeutil.NewNaiveLocal(day, "23:59")
	if _, err := remote.ListBookings(context.Background(), "s1", from, to); err != nil {
		t.Fatalf("listing bookings: %v", err)
	}

	if !strings.Contains(rawQuery, "initialDate=2025-04-10T00:00:00") {
		t.Errorf("query %q missing naive initialDate", rawQuery)
	}
	if !strings.Contains(rawQuery, "endDate=2025-04-10T23:59:00") {
		t.Errorf("query %q missing naive endDate", rawQuery)
	}
}

func TestRecordRoundTripKeepsWallClock(t *testing.T) {
	record := api.ScheduleRecord{
		InitialTime: timeutil.NewNaiveLocal(time.Date(2025, 4, 10, 0, 0, 0, 0, time.Local), "08:00"),
		EndTime:     timeutil.NewNaiveLocal(time.Date(2025, 4, 10, 0, 0, 0, 0, time.Local), "18:00"),
		Interval:    50,
	}

	data, err := json.Marshal(record)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var parsed api.ScheduleRecord
	if err := json.Unmarshal(data, &parsed); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	s := schedule.FromRecord(parsed)
	if s.Start != "08:00" || s.End != "18:00" {
		t.Errorf("round trip changed the wall clock: %s-%s", s.Start, s.End)
	}
	if !s.Date.Equal(time.Date(2025, 4, 10, 0, 0, 0, 0, time.Local)) {
		t.Errorf("round trip changed the date: %v", s.Date)
	}
}
