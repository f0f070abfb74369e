package ui

import (
	"fmt"
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/rivo/uniseg"

	"github.com/zhubert/kavosh/internal/theme"
)

// HealthState is the backend status shown in the header
type HealthState int

const (
	HealthUnknown HealthState = iota
	HealthUp
	HealthDown
)

// headerTitle is rendered bold at the left edge
const headerTitle = " kavosh · کاوش"

// Header represents the top header bar
type Header struct {
	width  int
	health HealthState
	mode   theme.Mode
}

// NewHeader creates a new header
func NewHeader() *Header {
	return &Header{mode: theme.ModeLight}
}

// SetWidth sets the header width
func (h *Header) SetWidth(width int) {
	h.width = width
}

// SetHealth sets the backend status indicator
func (h *Header) SetHealth(state HealthState) {
	h.health = state
}

// Health returns the backend status indicator
func (h *Header) Health() HealthState {
	return h.health
}

// SetMode sets the theme mode indicator
func (h *Header) SetMode(mode theme.Mode) {
	h.mode = mode
}

// segment is a run of header text sharing one foreground color
type segment struct {
	text string
	fg   color.Color
	bold bool
}

// View renders the header
func (h *Header) View() string {
	th := CurrentTheme()
	text := lipgloss.Color(th.Text)

	dot, dotColor := "○", lipgloss.Color(th.TextMuted)
	switch h.health {
	case HealthUp:
		dot, dotColor = "●", lipgloss.Color(th.Success)
	case HealthDown:
		dot, dotColor = "●", lipgloss.Color(th.Error)
	}

	modeIcon := "☀"
	if h.mode == theme.ModeDark {
		modeIcon = "☾"
	}

	left := []segment{{text: headerTitle, fg: text, bold: true}}
	right := []segment{
		{text: dot, fg: dotColor},
		{text: " backend  ", fg: text},
		{text: modeIcon + " " + h.mode.String() + " ", fg: text},
	}

	// Width is measured in grapheme clusters so Persian text pads correctly
	used := 0
	for _, s := range append(append([]segment{}, left...), right...) {
		used += uniseg.StringWidth(s.text)
	}
	padding := h.width - used
	if padding < 0 {
		padding = 0
	}

	segments := append(left, segment{text: strings.Repeat(" ", padding), fg: text})
	segments = append(segments, right...)
	return h.renderGradient(segments)
}

// parseHexColor parses a hex color string (e.g., "#7C3AED") into RGB components
func parseHexColor(hex string) (r, g, b int) {
	if len(hex) == 7 && hex[0] == '#' {
		fmt.Sscanf(hex[1:], "%02x%02x%02x", &r, &g, &b)
	}
	return
}

// renderGradient renders the segments over a theme-aware gradient background,
// one grapheme cluster at a time
func (h *Header) renderGradient(segments []segment) string {
	total := 0
	for _, s := range segments {
		total += uniseg.GraphemeClusterCount(s.text)
	}
	if total == 0 {
		return ""
	}

	th := CurrentTheme()
	startR, startG, startB := parseHexColor(th.Primary)
	// End color: fade to the main background
	endR, endG, endB := parseHexColor(th.Bg)

	var result strings.Builder
	i := 0
	for _, s := range segments {
		g := uniseg.NewGraphemes(s.text)
		for g.Next() {
			// Calculate interpolation factor (0.0 to 1.0)
			t := float64(i) / float64(total)

			cr := int(float64(startR)*(1-t) + float64(endR)*t)
			cg := int(float64(startG)*(1-t) + float64(endG)*t)
			cb := int(float64(startB)*(1-t) + float64(endB)*t)

			style := lipgloss.NewStyle().
				Background(lipgloss.Color(fmt.Sprintf("#%02X%02X%02X", cr, cg, cb))).
				Foreground(s.fg).
				Bold(s.bold)

			result.WriteString(style.Render(g.Str()))
			i++
		}
	}

	return result.String()
}
