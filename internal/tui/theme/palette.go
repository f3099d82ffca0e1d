// Package theme provides color themes for the TUI.
package theme

import (
	"math"

	"github.com/charmbracelet/lipgloss"
)

// Palette holds precomputed colors derived from a Theme.
type Palette struct {
	Bg          lipgloss.Color
	BgHighlight lipgloss.Color
	BgSelection lipgloss.Color
	Fg          lipgloss.Color
	FgMuted     lipgloss.Color
	Accent      lipgloss.Color
	Confirmed   lipgloss.Color
	NoShow      lipgloss.Color
	Pending     lipgloss.Color
	Booked      lipgloss.Color
	Warning     lipgloss.Color

	// Subdued backgrounds for appointment rows.
	PendingBg   lipgloss.Color
	ConfirmedBg lipgloss.Color
	NoShowBg    lipgloss.Color

	TextOnAccent  lipgloss.Color
	TextOnPending lipgloss.Color
	TextOnWarning lipgloss.Color

	Modal ModalColors
}

// ModalColors holds modal-specific colors derived from a Theme.
type ModalColors struct {
	Bg        lipgloss.Color
	Border    lipgloss.Color
	Text      lipgloss.Color
	Muted     lipgloss.Color
	Highlight lipgloss.Color
}

// NewPalette derives a Palette from the provided Theme.
func NewPalette(t *Theme) *Palette {
	if t == nil {
		t, _ = Load("mocha")
	}

	light := isLightTheme(t.Bg)
	modal := t.Modal()

	return &Palette{
		Bg:          lipgloss.Color(t.Bg),
		BgHighlight: lipgloss.Color(t.BgHighlight),
		BgSelection: lipgloss.Color(t.BgSelection),
		Fg:          lipgloss.Color(t.Fg),
		FgMuted:     lipgloss.Color(t.FgMuted),
		Accent:      lipgloss.Color(t.Accent),
		Confirmed:   lipgloss.Color(t.Confirmed),
		NoShow:      lipgloss.Color(t.NoShow),
		Pending:     lipgloss.Color(t.Pending),
		Booked:      lipgloss.Color(t.Booked),
		Warning:     lipgloss.Color(t.Warning),

		PendingBg:   lipgloss.Color(rowBg(t.Pending, t.Bg, light)),
		ConfirmedBg: lipgloss.Color(rowBg(t.Confirmed, t.Bg, light)),
		NoShowBg:    lipgloss.Color(rowBg(t.NoShow, t.Bg, light)),

		TextOnAccent:  lipgloss.Color(chooseTextColor(t.Accent, t.Bg, t.Fg)),
		TextOnPending: lipgloss.Color(chooseTextColor(t.Pending, t.Bg, t.Fg)),
		TextOnWarning: lipgloss.Color(chooseTextColor(t.Warning, t.Bg, t.Fg)),

		Modal: ModalColors{
			Bg:        lipgloss.Color(modal.BaseBg),
			Border:    lipgloss.Color(modal.ModalBorder),
			Text:      lipgloss.Color(modal.TextPrimary),
			Muted:     lipgloss.Color(modal.TextMuted),
			Highlight: lipgloss.Color(modal.Highlight),
		},
	}
}

func isLightTheme(bg string) bool {
	return relativeLuminance(bg) > 0.55
}

// rowBg blends an accent towards the background so a full row can carry the
// status color without overpowering the text.
func rowBg(accent, bg string, light bool) string {
	if light {
		return blendColors(accent, bg, 0.80)
	}
	return blendColors(accent, bg, 0.70)
}

func chooseTextColor(bg, lightText, darkText string) string {
	if contrastRatio(bg, lightText) >= contrastRatio(bg, darkText) {
		return lightText
	}
	return darkText
}

func contrastRatio(a, b string) float64 {
	l1 := relativeLuminance(a)
	l2 := relativeLuminance(b)
	if l1 < l2 {
		l1, l2 = l2, l1
	}
	return (l1 + 0.05) / (l2 + 0.05)
}

func relativeLuminance(hex string) float64 {
	if len(hex) != 7 || hex[0] != '#' {
		return 0
	}
	var r, g, b int
	parseHex(hex[1:3], &r)
	parseHex(hex[3:5], &g)
	parseHex(hex[5:7], &b)
	return 0.2126*srgbToLinear(r) + 0.7152*srgbToLinear(g) + 0.0722*srgbToLinear(b)
}

func srgbToLinear(c int) float64 {
	v := float64(c) / 255.0
	if v <= 0.04045 {
		return v / 12.92
	}
	return math.Pow((v+0.055)/1.055, 2.4)
}

func blendColors(a, b string, ratio float64) string {
	if len(a) != 7 || a[0] != '#' || len(b) != 7 || b[0] != '#' {
		return a
	}
	if ratio < 0 {
		ratio = 0
	}
	if ratio > 1 {
		ratio = 1
	}

	var ar, ag, ab int
	var br, bg, bb int
	parseHex(a[1:3], &ar)
	parseHex(a[3:5], &ag)
	parseHex(a[5:7], &ab)
	parseHex(b[1:3], &br)
	parseHex(b[3:5], &bg)
	parseHex(b[5:7], &bb)

	r := int(float64(ar)*(1-ratio) + float64(br)*ratio)
	g := int(float64(ag)*(1-ratio) + float64(bg)*ratio)
	bv := int(float64(ab)*(1-ratio) + float64(bb)*ratio)

	return formatHexColor(r, g, bv)
}

// parseHex parses a 2-character hex string into an integer.
func parseHex(s string, v *int) {
	var val int
	for i := 0; i < len(s); i++ {
		val *= 16
		c := s[i]
		switch {
		case c >= '0' && c <= '9':
			val += int(c - '0')
		case c >= 'a' && c <= 'f':
			val += int(c - 'a' + 10)
		case c >= 'A' && c <= 'F':
			val += int(c - 'A' + 10)
		}
	}
	*v = val
}

// formatHexColor formats RGB values as a hex color string.
func formatHexColor(r, g, b int) string {
	const hex = "0123456789abcdef"
	result := make([]byte, 7)
	result[0] = '#'
	result[1] = hex[r>>4]
	result[2] = hex[r&0xf]
	result[3] = hex[g>>4]
	result[4] = hex[g&0xf]
	result[5] = hex[b>>4]
	result[6] = hex[b&0xf]
	return string(result)
}
