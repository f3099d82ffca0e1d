package view

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// PadLinesWithBackground pads content to width/height with a background color.
func PadLinesWithBackground(content string, width, height int, bg lipgloss.Color) string {
	if width <= 0 || height <= 0 {
		return content
	}
	lines := strings.Split(content, "\n")
	pad := lipgloss.NewStyle().Background(bg)
	for len(lines) < height {
		lines = append(lines, "")
	}
	for i := 0; i < height; i++ {
		line := lines[i]
		w := lipgloss.Width(line)
		if w >= width {
			continue
		}
		lines[i] = line + pad.Render(strings.Repeat(" ", width-w))
	}
	if len(lines) > height {
		lines = lines[:height]
	}
	return strings.Join(lines, "\n")
}

// RenderModalOverlay centers modalContent and splices it over the base
// content. Base lines are cut with ANSI awareness so styled text on either
// side of the modal keeps its colors.
func RenderModalOverlay(baseContent, modalContent string, width, height int, modalBg lipgloss.Color) string {
	modalLines := strings.Split(modalContent, "\n")
	if len(modalLines) == 0 {
		return baseContent
	}

	modalWidth := 0
	for _, line := range modalLines {
		if w := lipgloss.Width(line); w > modalWidth {
			modalWidth = w
		}
	}
	if modalWidth == 0 {
		return baseContent
	}
	if modalWidth > width {
		modalWidth = width
	}
	modalHeight := len(modalLines)

	top := (height - modalHeight) / 2
	left := (width - modalWidth) / 2
	if top < 0 {
		top = 0
	}
	if left < 0 {
		left = 0
	}

	pad := lipgloss.NewStyle().Background(modalBg)
	for i, line := range modalLines {
		w := lipgloss.Width(line)
		if w > modalWidth {
			line = ansi.Cut(line, 0, modalWidth)
		}
		if w < modalWidth {
			line += pad.Render(strings.Repeat(" ", modalWidth-w))
		}
		modalLines[i] = ApplyModalBackgroundResets(line, modalBg) + ansi.ResetStyle
	}

	baseLines := strings.Split(PadLinesWithBackground(baseContent, width, height, lipgloss.Color("")), "\n")
	for len(baseLines) < height {
		baseLines = append(baseLines, "")
	}

	out := make([]string, 0, height)
	for row := 0; row < height; row++ {
		if row < top || row >= top+modalHeight {
			out = append(out, baseLines[row])
			continue
		}
		base := baseLines[row]
		leftSlice := ansi.Cut(base, 0, left)
		rightSlice := ansi.Cut(base, left+modalWidth, width)
		out = append(out, leftSlice+modalLines[row-top]+rightSlice)
	}

	return strings.Join(out, "\n")
}

// ApplyModalBackgroundResets reapplies the modal background after ANSI resets
// so inner styles cannot punch holes through the modal.
func ApplyModalBackgroundResets(line string, modalBg lipgloss.Color) string {
	bgSeq := ModalBackgroundSeq(modalBg)
	if bgSeq == "" {
		return line
	}
	line = strings.ReplaceAll(line, ansi.ResetStyle, ansi.ResetStyle+bgSeq)
	line = strings.ReplaceAll(line, "\x1b[0m", "\x1b[0m"+bgSeq)
	line = strings.ReplaceAll(line, "\x1b[49m", "\x1b[49m"+bgSeq)
	return line
}

// ModalBackgroundSeq returns the background escape sequence for the modal color.
func ModalBackgroundSeq(modalBg lipgloss.Color) string {
	if modalBg == "" {
		return ""
	}
	return ansi.Style{}.BackgroundColor(ansi.HexColor(string(modalBg))).String()
}
