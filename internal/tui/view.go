package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/lfreitas/divan/internal/appointment"
	"github.com/lfreitas/divan/internal/tui/view"
)

// View renders the dashboard.
func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")

	body := lipgloss.JoinHorizontal(
		lipgloss.Top,
		m.renderCalendar(),
		"   ",
		m.renderDayList(),
	)
	b.WriteString(body)
	b.WriteString("\n\n")
	b.WriteString(m.renderStatusLine())
	b.WriteString("\n")
	b.WriteString(m.renderHelp())

	base := b.String()
	if m.mode == ModeModal {
		modal := m.renderPendingModal()
		w, h := m.width, m.height
		if w <= 0 {
			w = lipgloss.Width(base)
		}
		if h <= 0 {
			h = lipgloss.Height(base)
		}
		return view.RenderModalOverlay(base, modal, w, h, m.styles.palette.Modal.Bg)
	}
	return base
}

func (m *Model) renderHeader() string {
	title := m.styles.Title.Render(" Divan ")
	date := m.styles.Subtitle.Render(m.selected.Format("02/01/2006"))
	if m.loading {
		return lipgloss.JoinHorizontal(lipgloss.Center, title, " ", date, " ", m.spin.View())
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, title, " ", date)
}

func (m *Model) renderCalendar() string {
	var b strings.Builder

	b.WriteString(m.styles.CalHeader.Render(monthTitle(m.selected)))
	b.WriteString("\n")
	labels := make([]string, len(weekdayLabels))
	for i, l := range weekdayLabels {
		labels[i] = m.styles.CalWeekday.Render(l)
	}
	b.WriteString(strings.Join(labels, " "))
	b.WriteString("\n")

	today := m.now()
	for _, week := range monthGrid(m.selected) {
		cells := make([]string, 0, 7)
		for _, day := range week {
			label := fmt.Sprintf("%3d", day.Day())
			style := m.styles.CalDay
			switch {
			case sameDay(day, m.selected):
				style = m.styles.CalSelected
			case sameDay(day, today):
				style = m.styles.CalToday
			case day.Month() != m.selected.Month():
				style = m.styles.CalDayMuted
			}
			cells = append(cells, style.Render(label))
		}
		b.WriteString(strings.Join(cells, " "))
		b.WriteString("\n")
	}

	return b.String()
}

func (m *Model) renderDayList() string {
	if m.loading && len(m.appointments) == 0 {
		return m.styles.Subtitle.Render("Carregando consultas...")
	}
	if len(m.appointments) == 0 {
		return m.styles.Subtitle.Render("Nenhuma consulta neste dia.")
	}

	pendingIDs := make(map[string]bool)
	for _, p := range m.pendingItems() {
		pendingIDs[p.ID] = true
	}

	var b strings.Builder
	for i, a := range m.appointments {
		b.WriteString(m.renderAppointmentRow(a, i == m.cursor, pendingIDs[a.ID]))
		b.WriteString("\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func (m *Model) renderAppointmentRow(a appointment.Appointment, selected, pending bool) string {
	name := a.PatientName
	if name == "" {
		name = a.PatientID
	}
	line := fmt.Sprintf(" %s  %-24s ", a.Hour, name)

	rowStyle := m.styles.Row
	var badge string
	switch {
	case pending:
		rowStyle = m.styles.RowPending
		passed := a.MinutesPassed(m.now())
		badge = m.styles.BadgePending.Render("Pendente") + " " +
			m.styles.TimePassed.Render("há "+appointment.FormatTimePassed(passed))
	case a.Status == appointment.StatusCancelled:
		rowStyle = m.styles.CalDayMuted
		badge = m.styles.Subtitle.Render("Cancelada")
	default:
		if rec, ok := m.tracker.Record(a.ID); ok {
			if rec.Action == appointment.ActionNoShow {
				rowStyle = m.styles.RowNoShow
				badge = m.styles.BadgeNoShow.Render("Falta")
			} else {
				rowStyle = m.styles.RowConfirmed
				badge = m.styles.BadgeConfirmed.Render("Confirmada")
			}
		} else {
			badge = m.styles.BadgeBooked.Render("Agendada")
		}
	}

	if selected {
		rowStyle = m.styles.RowSelected
	}
	return rowStyle.Render(line) + " " + badge
}

func (m *Model) renderStatusLine() string {
	if m.statusMsg == "" {
		return ""
	}
	if m.statusIsErr {
		return m.styles.StatusError.Render(m.statusMsg)
	}
	return m.styles.StatusInfo.Render(m.statusMsg)
}

func (m *Model) renderHelp() string {
	if m.mode == ModeModal {
		return ""
	}
	pending := len(m.pendingItems())
	help := "h/l dia • H/L semana • t hoje • j/k navegar • p pendentes • r atualizar • y copiar • q sair"
	if pending > 0 {
		help = fmt.Sprintf("%s  •  %d pendente(s)", help, pending)
	}
	return m.styles.Help.Render(help)
}

func (m *Model) renderPendingModal() string {
	pending := m.pendingItems()

	var body strings.Builder
	for i, a := range pending {
		name := a.PatientName
		if name == "" {
			name = a.PatientID
		}
		passed := appointment.FormatTimePassed(a.MinutesPassed(m.now()))
		line := fmt.Sprintf("%s  %-20s há %s", a.Hour, name, passed)
		style := m.styles.ModalRow
		prefix := "  "
		if i == m.modalCursor {
			style = m.styles.ModalRowSelected
			prefix = "> "
		}
		body.WriteString(style.Render(prefix + line))
		body.WriteString("\n")
	}
	body.WriteString("\n")
	body.WriteString(view.RenderModalButtons(m.styles.Modal, -1, "c confirmar", "x falta", "a todas"))

	title := fmt.Sprintf("Consultas aguardando confirmação (%d)", len(pending))
	return view.RenderModalFrame(title, strings.TrimSuffix(body.String(), "\n"), "esc fechar", m.styles.Modal)
}
