// Package report aggregates a week of appointments into attendance totals.
package report

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/lfreitas/divan/internal/api"
	"github.com/lfreitas/divan/internal/appointment"
	"github.com/lfreitas/divan/internal/llm"
	"github.com/lfreitas/divan/internal/timeutil"
)

// WeekReport holds aggregated week data and optional insight.
type WeekReport struct {
	Start       time.Time
	End         time.Time
	Total       int // booked slots in the week
	Confirmed   int
	NoShows     int
	Unconfirmed int
	Cancelled   int
	Revenue     float64
	Insight     string
}

// Fetcher is the remote surface the report needs. *api.Client satisfies it.
type Fetcher interface {
	ListSchedules(ctx context.Context, professionalID string) ([]api.ScheduleRecord, error)
	ListBookings(ctx context.Context, scheduleID string, from, to timeutil.NaiveLocal) ([]api.Booking, error)
}

// Options configures the remote-backed report builder.
type Options struct {
	WeekOf         time.Time
	IncludeInsight bool
	Provider       string
	Model          string
	BaseURL        string
}

// Summarize aggregates appointments against their confirmation records.
// Revenue counts the schedule's average value once per confirmed appointment;
// schedules without a price contribute nothing.
func Summarize(weekOf time.Time, appointments []appointment.Appointment, records map[string]appointment.ConfirmationRecord, prices map[string]float64) *WeekReport {
	start, end := timeutil.WeekRange(weekOf)
	r := &WeekReport{Start: start, End: end}

	for _, a := range appointments {
		if a.Date.Before(start) || a.Date.After(end) {
			continue
		}
		if a.Status == appointment.StatusCancelled {
			r.Cancelled++
			continue
		}
		if a.Status != appointment.StatusScheduled || a.PatientID == "" {
			continue
		}

		r.Total++
		rec, decided := records[a.ID]
		switch {
		case !decided:
			r.Unconfirmed++
		case rec.Action == appointment.ActionConfirmed:
			r.Confirmed++
			r.Revenue += prices[a.ScheduleID]
		case rec.Action == appointment.ActionNoShow:
			r.NoShows++
		}
	}

	return r
}

// BuildWeekReport fetches the week's bookings for every schedule and
// optionally adds an LLM-generated insight.
func BuildWeekReport(ctx context.Context, remote Fetcher, store appointment.RecordStore, professionalID string, opts Options) (*WeekReport, error) {
	weekOf := opts.WeekOf
	if weekOf.IsZero() {
		weekOf = time.Now()
	}
	start, end := timeutil.WeekRange(weekOf)

	schedules, err := remote.ListSchedules(ctx, professionalID)
	if err != nil {
		return nil, fmt.Errorf("fetching schedules: %w", err)
	}

	from := timeutil.NewNaiveLocal(start, "00:00")
	to := timeutil.NewNaiveLocal(end, "23:59")

	var appointments []appointment.Appointment
	prices := make(map[string]float64)
	for _, s := range schedules {
		date := s.InitialTime.Date()
		if date.Before(start) || date.After(end) {
			continue
		}
		if s.AverageValue != nil {
			prices[s.ID] = *s.AverageValue
		}

		bookings, err := remote.ListBookings(ctx, s.ID, from, to)
		if err != nil {
			return nil, fmt.Errorf("fetching bookings for %s: %w", s.ID, err)
		}
		for _, b := range bookings {
			appointments = append(appointments, appointment.FromBooking(b, s.ID, date))
		}
	}

	records, err := store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading confirmation records: %w", err)
	}

	r := Summarize(weekOf, appointments, records, prices)

	if opts.IncludeInsight && r.Total > 0 {
		client, err := llm.NewClient(opts.Provider, opts.Model, opts.BaseURL)
		if err != nil {
			return nil, fmt.Errorf("creating LLM client: %w", err)
		}
		if client != nil {
			insight, err := generateInsight(ctx, client, r)
			if err != nil {
				return nil, fmt.Errorf("generating insight: %w", err)
			}
			r.Insight = insight
		}
	}

	return r, nil
}

// generateInsight asks the LLM for a short commentary on the week's numbers.
func generateInsight(ctx context.Context, client llm.Client, r *WeekReport) (string, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "Semana de %s a %s.\n", r.Start.Format("02/01/2006"), r.End.Format("02/01/2006"))
	fmt.Fprintf(&b, "Consultas agendadas: %d\n", r.Total)
	fmt.Fprintf(&b, "Comparecimentos: %d\n", r.Confirmed)
	fmt.Fprintf(&b, "Faltas: %d\n", r.NoShows)
	fmt.Fprintf(&b, "Sem confirmação: %d\n", r.Unconfirmed)
	fmt.Fprintf(&b, "Cancelamentos: %d\n", r.Cancelled)
	fmt.Fprintf(&b, "Receita estimada: R$ %.2f\n", r.Revenue)

	messages := []llm.Message{
		{Role: "system", Content: "Você é um assistente de um profissional de saúde mental. Analise os números da semana e escreva no máximo três frases com observações úteis, em português. Não invente dados."},
		{Role: "user", Content: b.String()},
	}
	return client.Chat(ctx, messages)
}
