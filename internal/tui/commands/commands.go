// Package commands provides TUI command constructors and message types.
package commands

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/lfreitas/divan/internal/api"
	"github.com/lfreitas/divan/internal/appointment"
	"github.com/lfreitas/divan/internal/timeutil"
)

// AppointmentsLoadedMsg is sent when a day's appointments are loaded. Date
// identifies which day the fetch was for so stale responses can be dropped.
type AppointmentsLoadedMsg struct {
	Date         time.Time
	Appointments []appointment.Appointment
}

// TickMsg drives the periodic pending-confirmation check.
type TickMsg time.Time

// DecisionDoneMsg is sent when a single confirm/no-show call completes.
type DecisionDoneMsg struct {
	ID     string
	Action appointment.Action
	Err    error
}

// BulkDoneMsg is sent when a confirm-all completes.
type BulkDoneMsg struct {
	Result appointment.BulkResult
}

// ErrMsg is sent when an error occurs.
type ErrMsg struct {
	Err error
}

// ClearStatusMsg is sent to clear the status message.
type ClearStatusMsg struct{}

// Fetcher is the remote surface the TUI loads data from.
type Fetcher interface {
	ListSchedules(ctx context.Context, professionalID string) ([]api.ScheduleRecord, error)
	ListBookings(ctx context.Context, scheduleID string, from, to timeutil.NaiveLocal) ([]api.Booking, error)
}

// LoadAppointments fetches every booking for the given day.
func LoadAppointments(remote Fetcher, professionalID string, date time.Time) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		date := timeutil.TruncateToDay(date)

		schedules, err := remote.ListSchedules(ctx, professionalID)
		if err != nil {
			return ErrMsg{Err: err}
		}

		from := timeutil.NewNaiveLocal(date, "00:00")
		to := timeutil.NewNaiveLocal(date, "23:59")

		var appointments []appointment.Appointment
		for _, s := range schedules {
			if !s.InitialTime.Date().Equal(date) {
				continue
			}
			bookings, err := remote.ListBookings(ctx, s.ID, from, to)
			if err != nil {
				return ErrMsg{Err: err}
			}
			for _, b := range bookings {
				appointments = append(appointments, appointment.FromBooking(b, s.ID, date))
			}
		}

		return AppointmentsLoadedMsg{Date: date, Appointments: appointments}
	}
}

// Tick schedules the next pending-confirmation poll.
func Tick() tea.Cmd {
	return tea.Tick(appointment.PollInterval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// Confirm marks one pending appointment as attended.
func Confirm(tracker *appointment.Tracker, id string) tea.Cmd {
	return func() tea.Msg {
		err := tracker.Confirm(context.Background(), id)
		return DecisionDoneMsg{ID: id, Action: appointment.ActionConfirmed, Err: err}
	}
}

// NoShow marks one pending appointment as missed.
func NoShow(tracker *appointment.Tracker, id string) tea.Cmd {
	return func() tea.Msg {
		err := tracker.NoShow(context.Background(), id)
		return DecisionDoneMsg{ID: id, Action: appointment.ActionNoShow, Err: err}
	}
}

// ConfirmAll confirms every pending appointment.
func ConfirmAll(tracker *appointment.Tracker) tea.Cmd {
	return func() tea.Msg {
		return BulkDoneMsg{Result: tracker.ConfirmAll(context.Background())}
	}
}

// ClearStatusAfter clears the status line after the given delay.
func ClearStatusAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return ClearStatusMsg{}
	})
}
