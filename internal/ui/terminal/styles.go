package terminal

import (
	"github.com/charmbracelet/lipgloss"

	"droplet/internal/core/timer"
	"droplet/internal/ui/theme"
)

// styles is the lipgloss rendering of one palette and phase.
type styles struct {
	frame  lipgloss.Style
	phase  lipgloss.Style
	clock  lipgloss.Style
	dimmed lipgloss.Style
	banner lipgloss.Style
	muted  lipgloss.Style

	accentHex string
	textHex   string
}

func newStyles(palette theme.Palette, phase timer.Phase, glow bool) styles {
	accentHex := theme.HexColor(palette.Accent(phase))
	textHex := theme.HexColor(palette.Text)
	accent := lipgloss.Color(accentHex)
	text := lipgloss.Color(textHex)

	border := text
	if glow {
		border = accent
	}

	return styles{
		frame: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(border).
			Padding(1, 3),
		phase: lipgloss.NewStyle().
			Bold(true).
			Foreground(accent),
		clock: lipgloss.NewStyle().
			Bold(true).
			Foreground(text),
		dimmed: lipgloss.NewStyle().
			Faint(true).
			Foreground(text),
		banner: lipgloss.NewStyle().
			Bold(true).
			Foreground(accent),
		muted: lipgloss.NewStyle().
			Faint(true).
			Foreground(text),

		accentHex: accentHex,
		textHex:   textHex,
	}
}
