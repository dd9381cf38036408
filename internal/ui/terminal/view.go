package terminal

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"droplet/internal/core/model"
	"droplet/internal/core/timer"
	"droplet/internal/ui/theme"
)

// renderView renders the entire view.
func (m Model) renderView(settings model.Settings) string {
	palette := theme.Parse(settings.Theme)
	st := newStyles(palette, m.snapshot.Phase, settings.EnableGlow)

	var b strings.Builder

	b.WriteString(st.phase.Render(strings.ToUpper(m.snapshot.Phase.Label())))
	if caption := statusCaption(m.snapshot.Status); caption != "" {
		b.WriteString(st.muted.Render("  " + caption))
	}
	b.WriteString("\n\n")

	clock := st.clock
	if m.dim {
		clock = st.dimmed
	}
	b.WriteString(clock.Render(m.snapshot.FormattedTime()))
	b.WriteString("\n\n")

	bar := m.progress
	bar.FullColor = st.accentHex
	bar.EmptyColor = st.textHex
	b.WriteString(bar.ViewAs(m.snapshot.Progress()))
	b.WriteString("\n\n")

	b.WriteString(renderDots(theme.Dots(m.snapshot, settings.WorkflowCount), st))

	if m.banner != nil {
		b.WriteString("\n\n")
		b.WriteString(st.banner.Render(m.banner.Title))
		b.WriteString("\n")
		b.WriteString(st.muted.Render(m.banner.Body))
	}

	body := st.frame.Render(b.String())
	return lipgloss.JoinVertical(lipgloss.Left, body, m.help.View(m.keys))
}

func renderDots(states []theme.DotState, st styles) string {
	dots := make([]string, 0, len(states))
	for _, state := range states {
		switch state {
		case theme.DotDone:
			dots = append(dots, st.phase.Render("●"))
		case theme.DotCurrent:
			dots = append(dots, st.phase.Render("◉"))
		default:
			dots = append(dots, st.muted.Render("○"))
		}
	}
	return strings.Join(dots, " ")
}

func statusCaption(status timer.Status) string {
	switch status {
	case timer.StatusPaused:
		return "paused"
	case timer.StatusAwaitingConfirm:
		return "press space to continue"
	case timer.StatusIdle:
		return "ready"
	default:
		return ""
	}
}
