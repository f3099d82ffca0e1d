package tui

import (
	"errors"
	"fmt"
	"sort"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/lfreitas/divan/internal/api"
	"github.com/lfreitas/divan/internal/appointment"
	"github.com/lfreitas/divan/internal/logging"
	"github.com/lfreitas/divan/internal/timeutil"
	"github.com/lfreitas/divan/internal/tui/commands"
)

// Update is the bubbletea update loop.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case commands.AppointmentsLoadedMsg:
		return m.handleAppointmentsLoaded(msg)

	case commands.TickMsg:
		// Reload so the pending classification tracks the clock even when
		// nothing changed remotely.
		return m, tea.Batch(
			commands.LoadAppointments(m.remote, m.professionalID, m.selected),
			commands.Tick(),
		)

	case commands.DecisionDoneMsg:
		return m.handleDecisionDone(msg)

	case commands.BulkDoneMsg:
		return m.handleBulkDone(msg)

	case commands.ErrMsg:
		m.loading = false
		logging.L().Error().Err(msg.Err).Msg("dashboard load failed")
		return m, m.setStatus(friendlyError(msg.Err), true)

	case commands.ClearStatusMsg:
		m.statusMsg = ""
		m.statusIsErr = false
		return m, nil
	}

	return m, nil
}

func (m *Model) handleAppointmentsLoaded(msg commands.AppointmentsLoadedMsg) (tea.Model, tea.Cmd) {
	// A slow response for a day the user already navigated away from must
	// not overwrite the current view.
	if !msg.Date.Equal(m.selected) {
		return m, nil
	}

	appts := msg.Appointments
	sort.Slice(appts, func(i, j int) bool {
		return timeutil.TimeToMinutes(appts[i].Hour) < timeutil.TimeToMinutes(appts[j].Hour)
	})

	m.appointments = appts
	m.loading = false
	m.clampCursor()

	m.tracker.Refresh(m.now(), appts)
	if m.mode == ModeNormal && m.tracker.NeedsEscalation() {
		m.tracker.MarkEscalated()
		m.mode = ModeModal
		m.modalCursor = 0
	}
	m.clampModalCursor()
	return m, nil
}

func (m *Model) handleDecisionDone(msg commands.DecisionDoneMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		logging.L().Error().Err(msg.Err).Str("id", msg.ID).Msg("decision failed")
		return m, m.setStatus(friendlyError(msg.Err), true)
	}

	status := "Presença confirmada."
	if msg.Action == appointment.ActionNoShow {
		status = "Falta registrada."
	}

	m.clampModalCursor()
	if m.mode == ModeModal && len(m.pendingItems()) == 0 {
		m.mode = ModeNormal
	}
	return m, tea.Batch(
		m.setStatus(status, false),
		commands.LoadAppointments(m.remote, m.professionalID, m.selected),
	)
}

func (m *Model) handleBulkDone(msg commands.BulkDoneMsg) (tea.Model, tea.Cmd) {
	res := msg.Result

	var cmd tea.Cmd
	if len(res.Failed) > 0 {
		cmd = m.setStatus(fmt.Sprintf("%d confirmadas, %d falharam e continuam pendentes.", res.Confirmed, len(res.Failed)), true)
	} else {
		cmd = m.setStatus(fmt.Sprintf("%d consultas confirmadas.", res.Confirmed), false)
	}

	m.clampModalCursor()
	if m.mode == ModeModal && len(m.pendingItems()) == 0 {
		m.mode = ModeNormal
	}
	return m, tea.Batch(cmd, commands.LoadAppointments(m.remote, m.professionalID, m.selected))
}

// friendlyError translates the client error taxonomy into the messages shown
// on the status line.
func friendlyError(err error) string {
	var apiErr *api.Error
	switch {
	case errors.Is(err, api.ErrTimeout):
		return "O servidor demorou a responder. Tente novamente."
	case errors.Is(err, api.ErrConnection):
		return "Sem conexão com o servidor. Verifique sua rede."
	case errors.As(err, &apiErr):
		return fmt.Sprintf("Erro do servidor (%d): %s", apiErr.Status, apiErr.Message)
	default:
		return fmt.Sprintf("Erro: %v", err)
	}
}
