package ui

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/lfreitas/divan/internal/appointment"
	"github.com/lfreitas/divan/internal/timeutil"
)

func (a *App) appointmentsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "appointments [date]",
		Short: "List a day's appointments",
		Long: `List the appointments booked for a day (default: today).

Appointments past their time without a decision are marked as pending.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			day := time.Now()
			if len(args) == 1 {
				parsed, err := timeutil.ParseDate(args[0])
				if err != nil {
					return fmt.Errorf("data inválida %q: %w", args[0], err)
				}
				day = parsed
			}

			appointments, tracker, err := a.loadDay(context.Background(), day)
			if err != nil {
				return err
			}
			if len(appointments) == 0 {
				fmt.Println("Nenhuma consulta neste dia.")
				return nil
			}

			now := time.Now()
			pendingIDs := make(map[string]bool)
			for _, p := range tracker.Pending() {
				pendingIDs[p.ID] = true
			}

			fmt.Printf("=== %s ===\n", timeutil.TruncateToDay(day).Format("02/01/2006"))
			for _, appt := range appointments {
				printAppointmentRow(appt, tracker, pendingIDs[appt.ID], now)
			}
			return nil
		},
	}
}

// loadDay fetches the day's appointments and a tracker refreshed against them.
func (a *App) loadDay(ctx context.Context, day time.Time) ([]appointment.Appointment, *appointment.Tracker, error) {
	professionalID, err := a.requireLogin()
	if err != nil {
		return nil, nil, err
	}
	tracker, err := a.newTracker(ctx)
	if err != nil {
		return nil, nil, err
	}

	date := timeutil.TruncateToDay(day)
	schedules, err := a.remote.ListSchedules(ctx, professionalID)
	if err != nil {
		return nil, nil, fmt.Errorf("listing schedules: %w", err)
	}

	from := timeutil.NewNaiveLocal(date, "00:00")
	to := timeutil.NewNaiveLocal(date, "23:59")

	var appointments []appointment.Appointment
	for _, s := range schedules {
		if !s.InitialTime.Date().Equal(date) {
			continue
		}
		bookings, err := a.remote.ListBookings(ctx, s.ID, from, to)
		if err != nil {
			return nil, nil, fmt.Errorf("listing bookings: %w", err)
		}
		for _, b := range bookings {
			appointments = append(appointments, appointment.FromBooking(b, s.ID, date))
		}
	}

	sort.Slice(appointments, func(i, j int) bool {
		return timeutil.TimeToMinutes(appointments[i].Hour) < timeutil.TimeToMinutes(appointments[j].Hour)
	})
	tracker.Refresh(time.Now(), appointments)
	return appointments, tracker, nil
}

func printAppointmentRow(appt appointment.Appointment, tracker *appointment.Tracker, pending bool, now time.Time) {
	name := appt.PatientName
	if name == "" {
		name = appt.PatientID
	}

	var status string
	switch {
	case pending:
		passed := appointment.FormatTimePassed(appt.MinutesPassed(now))
		status = formatPending(fmt.Sprintf("pendente há %s", passed))
	case appt.Status == appointment.StatusCancelled:
		status = formatMuted("cancelada")
	default:
		if rec, ok := tracker.Record(appt.ID); ok {
			if rec.Action == appointment.ActionNoShow {
				status = formatNoShow("falta")
			} else {
				status = formatConfirmed("confirmada")
			}
		} else {
			status = "agendada"
		}
	}

	fmt.Printf("  %s  %-24s %s  %s\n", appt.Hour, name, formatMuted(appt.ID), status)
}
