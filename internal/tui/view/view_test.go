package view

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

func TestMain(m *testing.M) {
	lipgloss.SetColorProfile(termenv.Ascii)
	m.Run()
}

func TestPadLinesWithBackground(t *testing.T) {
	got := PadLinesWithBackground("ab\nc", 4, 3, lipgloss.Color(""))
	lines := strings.Split(got, "\n")
	if len(lines) != 3 {
		t.Fatalf("lines = %d, want 3", len(lines))
	}
	for i, line := range lines {
		if w := lipgloss.Width(line); w != 4 {
			t.Errorf("line %d width = %d, want 4", i, w)
		}
	}
}

func TestPadLinesTruncatesExtraHeight(t *testing.T) {
	got := PadLinesWithBackground("a\nb\nc\nd", 2, 2, lipgloss.Color(""))
	if lines := strings.Split(got, "\n"); len(lines) != 2 {
		t.Fatalf("lines = %d, want 2", len(lines))
	}
}

func TestRenderModalFrame(t *testing.T) {
	styles := ModalStyles{
		Frame:  lipgloss.NewStyle().Padding(1, 2),
		Header: lipgloss.NewStyle(),
		Title:  lipgloss.NewStyle().Bold(true),
		Footer: lipgloss.NewStyle(),
	}

	got := RenderModalFrame("Pendentes", "corpo", "esc fecha", styles)
	for _, want := range []string{"Pendentes", "corpo", "esc fecha"} {
		if !strings.Contains(got, want) {
			t.Errorf("frame missing %q:\n%s", want, got)
		}
	}
}

func TestRenderModalOverlayCentersModal(t *testing.T) {
	base := strings.TrimSuffix(strings.Repeat("..........\n", 9), "\n")
	modal := "XX\nXX"

	got := RenderModalOverlay(base, modal, 10, 9, lipgloss.Color(""))
	lines := strings.Split(got, "\n")
	if len(lines) != 9 {
		t.Fatalf("lines = %d, want 9", len(lines))
	}
	if !strings.Contains(lines[3], "XX") {
		t.Errorf("row 3 missing modal content: %q", lines[3])
	}
	if strings.Contains(lines[0], "XX") {
		t.Errorf("row 0 unexpectedly contains modal content: %q", lines[0])
	}
}
