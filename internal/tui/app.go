package tui

import (
	"stockpile/internal/photo"
	"stockpile/internal/store"

	tea "github.com/charmbracelet/bubbletea"
)

// Run starts the interactive UI over an already-hydrated store. It returns
// when the user quits; the caller flushes the store afterwards.
func Run(st *store.Store, photos photo.Capability) error {
	m := newAppModel(st, photos)
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
