package ui

import (
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// Color definitions for consistent styling across the UI.
var (
	colorConfirmed = color.New(color.FgGreen)
	colorNoShow    = color.New(color.FgRed, color.Bold)
	colorPending   = color.New(color.FgYellow)
	colorInsight   = color.New(color.FgYellow)
	colorHeader    = color.New(color.Bold)
	colorMuted     = color.New(color.FgWhite, color.Faint)
)

// termWidth returns the terminal width, or a default if detection fails.
func termWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80
	}
	return width
}

// DisableColor disables all color output.
func DisableColor() {
	color.NoColor = true
}

// EnableColor enables color output (if terminal supports it).
func EnableColor() {
	color.NoColor = false
}

func formatConfirmed(s string) string {
	return colorConfirmed.Sprint(s)
}

func formatNoShow(s string) string {
	return colorNoShow.Sprint(s)
}

func formatPending(s string) string {
	return colorPending.Sprint(s)
}

func formatHeader(s string) string {
	return colorHeader.Sprint(s)
}

func formatMuted(s string) string {
	return colorMuted.Sprint(s)
}

func formatInsight(s string) string {
	return colorInsight.Sprint(s)
}
