package tui

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/lfreitas/divan/internal/tui/commands"
)

func (m *Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	switch m.mode {
	case ModeModal:
		return m.handleModalKey(msg)
	default:
		return m.handleNormalKey(msg)
	}
}

func (m *Model) handleNormalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit

	case "h", "left":
		return m, m.gotoDay(m.selected.AddDate(0, 0, -1))
	case "l", "right":
		return m, m.gotoDay(m.selected.AddDate(0, 0, 1))
	case "H", "shift+left":
		return m, m.gotoDay(m.selected.AddDate(0, 0, -7))
	case "L", "shift+right":
		return m, m.gotoDay(m.selected.AddDate(0, 0, 7))
	case "t":
		return m, m.gotoDay(m.now())

	case "j", "down":
		if m.cursor < len(m.appointments)-1 {
			m.cursor++
		}
		return m, nil
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case "r":
		return m, m.gotoDay(m.selected)

	case "p":
		if len(m.pendingItems()) == 0 {
			return m, m.setStatus("Nenhuma consulta pendente de confirmação.", false)
		}
		m.mode = ModeModal
		m.modalCursor = 0
		return m, nil

	case "y":
		return m, m.copyDayToClipboard()
	}

	return m, nil
}

func (m *Model) handleModalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	pending := m.pendingItems()

	switch msg.String() {
	case "esc", "q":
		m.mode = ModeNormal
		return m, nil

	case "j", "down":
		if m.modalCursor < len(pending)-1 {
			m.modalCursor++
		}
		return m, nil
	case "k", "up":
		if m.modalCursor > 0 {
			m.modalCursor--
		}
		return m, nil

	case "c", "enter":
		if m.modalCursor < len(pending) {
			return m, commands.Confirm(m.tracker, pending[m.modalCursor].ID)
		}
		return m, nil

	case "x":
		if m.modalCursor < len(pending) {
			return m, commands.NoShow(m.tracker, pending[m.modalCursor].ID)
		}
		return m, nil

	case "a":
		if len(pending) > 0 {
			return m, commands.ConfirmAll(m.tracker)
		}
		return m, nil
	}

	return m, nil
}

// copyDayToClipboard copies the selected day's appointment list as plain text.
func (m *Model) copyDayToClipboard() tea.Cmd {
	if len(m.appointments) == 0 {
		return m.setStatus("Nada para copiar.", false)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Consultas de %s\n", m.selected.Format("02/01/2006"))
	for _, a := range m.appointments {
		fmt.Fprintf(&b, "%s  %s (%s)\n", a.Hour, a.PatientName, a.Status)
	}

	if err := clipboard.WriteAll(b.String()); err != nil {
		return m.setStatus("Não foi possível copiar para a área de transferência.", true)
	}
	return m.setStatus("Agenda copiada.", false)
}
