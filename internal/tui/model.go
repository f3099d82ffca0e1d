// Package tui implements the scheduling dashboard: a month calendar, the
// selected day's appointments, and the pending-confirmation modal.
package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/lfreitas/divan/internal/appointment"
	"github.com/lfreitas/divan/internal/config"
	"github.com/lfreitas/divan/internal/timeutil"
	"github.com/lfreitas/divan/internal/tui/commands"
	"github.com/lfreitas/divan/internal/tui/theme"
)

// Mode is the top-level input mode of the dashboard.
type Mode int

const (
	ModeNormal Mode = iota
	ModeModal
)

// Model is the bubbletea model for the dashboard.
type Model struct {
	remote         commands.Fetcher
	tracker        *appointment.Tracker
	cfg            *config.Config
	professionalID string

	selected     time.Time // midnight of the day being shown
	cursor       int
	appointments []appointment.Appointment
	loading      bool
	spin         spinner.Model

	mode        Mode
	modalCursor int

	width  int
	height int

	statusMsg   string
	statusIsErr bool

	styles *Styles
	now    func() time.Time
}

// ModelOption customizes a Model at construction time.
type ModelOption func(*Model)

// WithNow overrides the clock, for tests.
func WithNow(now func() time.Time) ModelOption {
	return func(m *Model) { m.now = now }
}

// WithSelectedDate opens the dashboard on a specific day.
func WithSelectedDate(d time.Time) ModelOption {
	return func(m *Model) { m.selected = timeutil.TruncateToDay(d) }
}

// New builds the dashboard model. The tracker must already be rehydrated.
func New(remote commands.Fetcher, tracker *appointment.Tracker, cfg *config.Config, professionalID string, opts ...ModelOption) *Model {
	th, _ := theme.Load(cfg.UI.Theme)
	styles := NewStyles(th)

	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	sp.Style = styles.Spinner

	m := &Model{
		remote:         remote,
		tracker:        tracker,
		cfg:            cfg,
		professionalID: professionalID,
		spin:           sp,
		loading:        true,
		styles:         styles,
		now:            time.Now,
	}
	m.selected = timeutil.TruncateToDay(m.now())

	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Init starts the first load and the confirmation poll loop.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		m.spin.Tick,
		commands.LoadAppointments(m.remote, m.professionalID, m.selected),
		commands.Tick(),
	)
}

// pendingItems returns the tracker's pending set for the modal.
func (m *Model) pendingItems() []appointment.Appointment {
	return m.tracker.Pending()
}

// selectedAppointment returns the appointment under the list cursor.
func (m *Model) selectedAppointment() (appointment.Appointment, bool) {
	if m.cursor < 0 || m.cursor >= len(m.appointments) {
		return appointment.Appointment{}, false
	}
	return m.appointments[m.cursor], true
}

func (m *Model) clampCursor() {
	if m.cursor >= len(m.appointments) {
		m.cursor = len(m.appointments) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *Model) clampModalCursor() {
	n := len(m.pendingItems())
	if m.modalCursor >= n {
		m.modalCursor = n - 1
	}
	if m.modalCursor < 0 {
		m.modalCursor = 0
	}
}

// gotoDay moves the selection and triggers a fresh load.
func (m *Model) gotoDay(d time.Time) tea.Cmd {
	m.selected = timeutil.TruncateToDay(d)
	m.cursor = 0
	m.loading = true
	return tea.Batch(m.spin.Tick, commands.LoadAppointments(m.remote, m.professionalID, m.selected))
}

func (m *Model) setStatus(msg string, isErr bool) tea.Cmd {
	m.statusMsg = msg
	m.statusIsErr = isErr
	return commands.ClearStatusAfter(5 * time.Second)
}
