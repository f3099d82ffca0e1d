package report

import (
	"context"
	"testing"
	"time"

	"github.com/lfreitas/divan/internal/api"
	"github.com/lfreitas/divan/internal/appointment"
	"github.com/lfreitas/divan/internal/timeutil"
)

func wednesday() time.Time {
	return time.Date(2025, 1, 15, 0, 0, 0, 0, time.Local)
}

func booked(id, scheduleID string, date time.Time) appointment.Appointment {
	return appointment.Appointment{
		ID:         id,
		ScheduleID: scheduleID,
		Date:       date,
		Hour:       "09:00",
		PatientID:  "p-" + id,
		Status:     appointment.StatusScheduled,
	}
}

func TestSummarize(t *testing.T) {
	day := wednesday()
	appointments := []appointment.Appointment{
		booked("a1", "s1", day),
		booked("a2", "s1", day),
		booked("a3", "s2", day.AddDate(0, 0, 1)),
		{ID: "a4", ScheduleID: "s1", Date: day, Hour: "14:00", PatientID: "p4", Status: appointment.StatusCancelled},
		{ID: "free", ScheduleID: "s1", Date: day, Hour: "15:00", Status: appointment.StatusAvailable},
		booked("outside", "s1", day.AddDate(0, 0, 10)),
	}
	records := map[string]appointment.ConfirmationRecord{
		"a1": {ID: "a1", Action: appointment.ActionConfirmed},
		"a2": {ID: "a2", Action: appointment.ActionNoShow},
	}
	prices := map[string]float64{"s1": 180.0, "s2": 150.0}

	r := Summarize(day, appointments, records, prices)

	if r.Total != 3 {
		t.Errorf("Total = %d, want 3", r.Total)
	}
	if r.Confirmed != 1 {
		t.Errorf("Confirmed = %d, want 1", r.Confirmed)
	}
	if r.NoShows != 1 {
		t.Errorf("NoShows = %d, want 1", r.NoShows)
	}
	if r.Unconfirmed != 1 {
		t.Errorf("Unconfirmed = %d, want 1", r.Unconfirmed)
	}
	if r.Cancelled != 1 {
		t.Errorf("Cancelled = %d, want 1", r.Cancelled)
	}
	if r.Revenue != 180.0 {
		t.Errorf("Revenue = %.2f, want 180.00", r.Revenue)
	}
}

func TestSummarizeWeekBounds(t *testing.T) {
	r := Summarize(wednesday(), nil, nil, nil)

	if r.Start.Weekday() != time.Monday {
		t.Errorf("week start = %v, want Monday", r.Start.Weekday())
	}
	if got := r.End.Sub(r.Start); got != 6*24*time.Hour {
		t.Errorf("week span = %v, want 6 days", got)
	}
}

func TestSummarizeUnpricedSchedule(t *testing.T) {
	day := wednesday()
	appointments := []appointment.Appointment{booked("a1", "s1", day)}
	records := map[string]appointment.ConfirmationRecord{
		"a1": {ID: "a1", Action: appointment.ActionConfirmed},
	}

	r := Summarize(day, appointments, records, nil)
	if r.Revenue != 0 {
		t.Errorf("Revenue = %.2f, want 0 for unpriced schedule", r.Revenue)
	}
	if r.Confirmed != 1 {
		t.Errorf("Confirmed = %d, want 1", r.Confirmed)
	}
}

type fakeFetcher struct {
	schedules []api.ScheduleRecord
	bookings  map[string][]api.Booking
}

func (f *fakeFetcher) ListSchedules(_ context.Context, _ string) ([]api.ScheduleRecord, error) {
	return f.schedules, nil
}

func (f *fakeFetcher) ListBookings(_ context.Context, scheduleID string, _, _ timeutil.NaiveLocal) ([]api.Booking, error) {
	return f.bookings[scheduleID], nil
}

type mapRecordStore map[string]appointment.ConfirmationRecord

func (m mapRecordStore) Load(_ context.Context) (map[string]appointment.ConfirmationRecord, error) {
	return m, nil
}

func (m mapRecordStore) Save(_ context.Context, _ map[string]appointment.ConfirmationRecord) error {
	return nil
}

func TestBuildWeekReport(t *testing.T) {
	day := wednesday()
	price := 200.0
	fetcher := &fakeFetcher{
		schedules: []api.ScheduleRecord{
			{ID: "s1", InitialTime: timeutil.NewNaiveLocal(day, "08:00"), EndTime: timeutil.NewNaiveLocal(day, "18:00"), AverageValue: &price},
			{ID: "old", InitialTime: timeutil.NewNaiveLocal(day.AddDate(0, -1, 0), "08:00")},
		},
		bookings: map[string][]api.Booking{
			"s1": {
				{SchedulingID: "a1", PatientID: "p1", Hour: "09:00", Status: "scheduled"},
				{SchedulingID: "a2", PatientID: "p2", Hour: "10:00", Status: "scheduled"},
			},
			"old": {{SchedulingID: "stale", PatientID: "p9", Hour: "09:00", Status: "scheduled"}},
		},
	}
	records := mapRecordStore{
		"a1": {ID: "a1", Action: appointment.ActionConfirmed},
	}

	r, err := BuildWeekReport(context.Background(), fetcher, records, "prof-1", Options{WeekOf: day})
	if err != nil {
		t.Fatalf("BuildWeekReport failed: %v", err)
	}

	if r.Total != 2 {
		t.Errorf("Total = %d, want 2 (out-of-week schedule excluded)", r.Total)
	}
	if r.Confirmed != 1 || r.Unconfirmed != 1 {
		t.Errorf("Confirmed/Unconfirmed = %d/%d, want 1/1", r.Confirmed, r.Unconfirmed)
	}
	if r.Revenue != 200.0 {
		t.Errorf("Revenue = %.2f, want 200.00", r.Revenue)
	}
	if r.Insight != "" {
		t.Errorf("Insight = %q, want empty without provider", r.Insight)
	}
}
