package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

var (
	colorAccent     = lipgloss.AdaptiveColor{Light: "27", Dark: "39"}
	colorMuted      = lipgloss.AdaptiveColor{Light: "245", Dark: "243"}
	colorError      = lipgloss.AdaptiveColor{Light: "160", Dark: "203"}
	colorSelectedBg = lipgloss.AdaptiveColor{Light: "254", Dark: "236"}
	colorSelectedFg = lipgloss.AdaptiveColor{Light: "0", Dark: "255"}
	colorControlBg  = lipgloss.AdaptiveColor{Light: "253", Dark: "238"}
)

func styleTitle() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
}

func styleHeader() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true)
}

func styleSelected() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(colorSelectedFg).Background(colorSelectedBg).Bold(true)
}

func styleMuted() lipgloss.Style {
	return faintIfDark(lipgloss.NewStyle().Foreground(colorMuted))
}

func styleError() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(colorError)
}

func styleLabel() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true)
}

// faintIfDark keeps muted text readable on dark backgrounds where some
// palettes render grey-on-grey too low-contrast without the faint attribute.
func faintIfDark(s lipgloss.Style) lipgloss.Style {
	if termenv.HasDarkBackground() {
		return s.Faint(true)
	}
	return s
}
