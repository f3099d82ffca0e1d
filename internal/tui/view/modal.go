// Package view provides rendering helpers for the TUI.
package view

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ModalStyles groups the styles needed to render modal frames and buttons.
type ModalStyles struct {
	Frame        lipgloss.Style
	Header       lipgloss.Style
	Title        lipgloss.Style
	Body         lipgloss.Style
	Footer       lipgloss.Style
	Button       lipgloss.Style
	ButtonActive lipgloss.Style
}

// RenderModalFrame renders a modal with the provided title, body, and footer.
func RenderModalFrame(title, body, footer string, styles ModalStyles) string {
	var b strings.Builder

	b.WriteString(styles.Header.Render(styles.Title.Render(title)))
	if body != "" {
		b.WriteString("\n\n")
		b.WriteString(body)
	}
	if footer != "" {
		b.WriteString("\n\n")
		b.WriteString(styles.Footer.Render(footer))
	}

	return styles.Frame.Render(b.String())
}

// RenderModalButtons renders a row of modal buttons with the button at
// active highlighted. A negative active highlights nothing.
func RenderModalButtons(styles ModalStyles, active int, labels ...string) string {
	parts := make([]string, 0, len(labels))
	for i, label := range labels {
		style := styles.Button
		if i == active {
			style = styles.ButtonActive
		}
		parts = append(parts, style.Render(label))
	}
	sep := styles.Body.Render(" ")
	return strings.Join(parts, sep)
}
