package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/lfreitas/divan/internal/tui/theme"
	"github.com/lfreitas/divan/internal/tui/view"
)

// Styles holds every lipgloss style the dashboard renders with, derived once
// from the active theme.
type Styles struct {
	Title    lipgloss.Style
	Subtitle lipgloss.Style

	CalHeader   lipgloss.Style
	CalWeekday  lipgloss.Style
	CalDay      lipgloss.Style
	CalDayMuted lipgloss.Style
	CalToday    lipgloss.Style
	CalSelected lipgloss.Style

	Row          lipgloss.Style
	RowSelected  lipgloss.Style
	RowPending   lipgloss.Style
	RowConfirmed lipgloss.Style
	RowNoShow    lipgloss.Style

	BadgeConfirmed lipgloss.Style
	BadgeNoShow    lipgloss.Style
	BadgePending   lipgloss.Style
	BadgeBooked    lipgloss.Style

	TimePassed lipgloss.Style

	StatusInfo  lipgloss.Style
	StatusError lipgloss.Style
	Help        lipgloss.Style
	Spinner     lipgloss.Style

	Modal view.ModalStyles

	ModalRow         lipgloss.Style
	ModalRowSelected lipgloss.Style

	palette *theme.Palette
}

// NewStyles derives the style set from a theme. A nil theme falls back to the
// default palette.
func NewStyles(t *theme.Theme) *Styles {
	p := theme.NewPalette(t)

	badge := func(c lipgloss.Color) lipgloss.Style {
		return lipgloss.NewStyle().Foreground(p.Bg).Background(c).Padding(0, 1).Bold(true)
	}

	return &Styles{
		Title:    lipgloss.NewStyle().Foreground(p.TextOnAccent).Background(p.Accent).Padding(0, 1).Bold(true),
		Subtitle: lipgloss.NewStyle().Foreground(p.FgMuted),

		CalHeader:   lipgloss.NewStyle().Foreground(p.Accent).Bold(true),
		CalWeekday:  lipgloss.NewStyle().Foreground(p.FgMuted),
		CalDay:      lipgloss.NewStyle().Foreground(p.Fg),
		CalDayMuted: lipgloss.NewStyle().Foreground(p.FgMuted).Faint(true),
		CalToday:    lipgloss.NewStyle().Foreground(p.Accent).Bold(true).Underline(true),
		CalSelected: lipgloss.NewStyle().Foreground(p.TextOnAccent).Background(p.Accent).Bold(true),

		Row:          lipgloss.NewStyle().Foreground(p.Fg),
		RowSelected:  lipgloss.NewStyle().Foreground(p.Fg).Background(p.BgSelection).Bold(true),
		RowPending:   lipgloss.NewStyle().Foreground(p.Fg).Background(p.PendingBg),
		RowConfirmed: lipgloss.NewStyle().Foreground(p.FgMuted).Background(p.ConfirmedBg),
		RowNoShow:    lipgloss.NewStyle().Foreground(p.FgMuted).Background(p.NoShowBg).Strikethrough(true),

		BadgeConfirmed: badge(p.Confirmed),
		BadgeNoShow:    badge(p.NoShow),
		BadgePending:   badge(p.Pending),
		BadgeBooked:    badge(p.Booked),

		TimePassed: lipgloss.NewStyle().Foreground(p.Warning).Italic(true),

		StatusInfo:  lipgloss.NewStyle().Foreground(p.Confirmed),
		StatusError: lipgloss.NewStyle().Foreground(p.NoShow).Bold(true),
		Help:        lipgloss.NewStyle().Foreground(p.FgMuted),
		Spinner:     lipgloss.NewStyle().Foreground(p.Accent),

		Modal: view.ModalStyles{
			Frame: lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(p.Modal.Border).
				Background(p.Modal.Bg).
				Padding(1, 2),
			Header:       lipgloss.NewStyle().Background(p.Modal.Bg),
			Title:        lipgloss.NewStyle().Foreground(p.Modal.Highlight).Background(p.Modal.Bg).Bold(true),
			Body:         lipgloss.NewStyle().Foreground(p.Modal.Text).Background(p.Modal.Bg),
			Footer:       lipgloss.NewStyle().Foreground(p.Modal.Muted).Background(p.Modal.Bg),
			Button:       lipgloss.NewStyle().Foreground(p.Modal.Text).Background(p.Modal.Bg).Padding(0, 2),
			ButtonActive: lipgloss.NewStyle().Foreground(p.TextOnAccent).Background(p.Accent).Padding(0, 2).Bold(true),
		},

		ModalRow:         lipgloss.NewStyle().Foreground(p.Modal.Text).Background(p.Modal.Bg),
		ModalRowSelected: lipgloss.NewStyle().Foreground(p.Modal.Highlight).Background(p.Modal.Bg).Bold(true),

		palette: p,
	}
}
