package tui

import (
	"fmt"
	"time"

	"stockpile/internal/model"
	"stockpile/internal/photo"
	"stockpile/internal/store"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type screen int

const (
	screenList screen = iota
	screenForm
)

// Search keystrokes commit to the store only after a quiet period; every new
// keystroke supersedes the pending commit (seq guard).
const searchDebounce = 500 * time.Millisecond

const flashTimeout = 3 * time.Second

type searchDebounceMsg struct{ seq int }

type flashDoneMsg struct{ seq int }

type photoDoneMsg struct{ advisory string }

type confirmFocus int

const (
	confirmFocusConfirm confirmFocus = iota
	confirmFocusCancel
)

type appModel struct {
	st     *store.Store
	photos photo.Capability

	width  int
	height int

	screen screen

	// List screen.
	rows        []model.Item
	cursor      int
	searchInput textinput.Model
	searching   bool
	searchSeq   int

	// Form screen.
	form *formModel

	// Delete confirmation modal.
	confirming   bool
	confirmItem  model.Item
	confirmFocus confirmFocus

	flash    string
	flashSeq int
}

func newAppModel(st *store.Store, photos photo.Capability) appModel {
	si := textinput.New()
	si.Prompt = "/ "
	si.Placeholder = "Search by name"
	si.CharLimit = 120
	si.SetValue(st.Search())

	m := appModel{st: st, photos: photos, searchInput: si}
	m.refreshRows()
	return m
}

func (m appModel) Init() tea.Cmd { return nil }

func (m *appModel) refreshRows() {
	m.rows = m.st.View()
	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *appModel) showFlash(text string) tea.Cmd {
	m.flash = text
	m.flashSeq++
	seq := m.flashSeq
	return tea.Tick(flashTimeout, func(time.Time) tea.Msg { return flashDoneMsg{seq: seq} })
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.searchInput.Width = max(16, msg.Width-8)
		if m.form != nil {
			m.form.resize(msg.Width)
		}
		return m, nil

	case searchDebounceMsg:
		// Only the tick that survived the quiet window commits.
		if msg.seq == m.searchSeq {
			m.st.SetSearch(m.searchInput.Value())
			m.refreshRows()
		}
		return m, nil

	case flashDoneMsg:
		if msg.seq == m.flashSeq {
			m.flash = ""
		}
		return m, nil

	case photoDoneMsg:
		if m.form != nil {
			m.form.applyPhotoResult(msg)
		}
		return m, nil

	case tea.KeyMsg:
		if m.screen == screenForm {
			return m.updateForm(msg)
		}
		if m.confirming {
			return m.updateConfirm(msg)
		}
		if m.searching {
			return m.updateSearch(msg)
		}
		return m.updateList(msg)
	}

	return m, nil
}

func (m appModel) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.rows)-1 {
			m.cursor++
		}

	case "/":
		m.searching = true
		m.searchInput.Focus()
		return m, textinput.Blink

	case "n":
		m.st.SetSort(model.SortByName)
		m.refreshRows()
	case "u":
		m.st.SetSort(model.SortByUpdatedAt)
		m.refreshRows()

	case "a":
		f := newFormModel(m.st, m.photos, nil)
		f.resize(m.width)
		m.form = &f
		m.screen = screenForm
		return m, textinput.Blink

	case "enter":
		if len(m.rows) == 0 {
			return m, nil
		}
		it := m.rows[m.cursor]
		f := newFormModel(m.st, m.photos, &it)
		f.resize(m.width)
		m.form = &f
		m.screen = screenForm
		return m, textinput.Blink

	case "d":
		if len(m.rows) == 0 {
			return m, nil
		}
		m.confirming = true
		m.confirmItem = m.rows[m.cursor]
		m.confirmFocus = confirmFocusCancel
	}

	return m, nil
}

func (m appModel) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "enter":
		m.searching = false
		m.searchInput.Blur()
		// Commit immediately; no reason to wait once the user is done typing.
		m.searchSeq++
		m.st.SetSearch(m.searchInput.Value())
		m.refreshRows()
		return m, nil
	case "ctrl+c":
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	m.searchSeq++
	seq := m.searchSeq
	debounce := tea.Tick(searchDebounce, func(time.Time) tea.Msg { return searchDebounceMsg{seq: seq} })
	return m, tea.Batch(cmd, debounce)
}

func (m appModel) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "tab", "left", "right":
		if m.confirmFocus == confirmFocusConfirm {
			m.confirmFocus = confirmFocusCancel
		} else {
			m.confirmFocus = confirmFocusConfirm
		}
	case "enter":
		confirmed := m.confirmFocus == confirmFocusConfirm
		m.confirming = false
		if confirmed {
			name := m.confirmItem.Name
			m.st.Remove(m.confirmItem.ID)
			m.refreshRows()
			return m, m.showFlash(fmt.Sprintf("Deleted %q", name))
		}
	case "esc", "ctrl+g":
		m.confirming = false
	case "ctrl+c":
		return m, tea.Quit
	}
	return m, nil
}

func (m appModel) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	done, cmd := m.form.update(msg)
	if done.quit {
		return m, tea.Quit
	}
	if done.submitted {
		m.screen = screenList
		m.form = nil
		m.refreshRows()
		return m, m.showFlash("Saved")
	}
	if done.cancelled {
		m.screen = screenList
		m.form = nil
		return m, nil
	}
	return m, cmd
}

func (m appModel) View() string {
	if m.screen == screenForm && m.form != nil {
		return m.form.view()
	}

	body := m.listView()
	if m.confirming {
		modal := renderConfirmModal(
			m.width,
			"Delete Item",
			fmt.Sprintf("Are you sure you want to delete %q? This action cannot be undone.", m.confirmItem.Name),
			"Delete", "Cancel",
			m.confirmFocus,
		)
		return lipgloss.Place(max(m.width, lipgloss.Width(modal)), max(m.height, lipgloss.Height(modal)),
			lipgloss.Center, lipgloss.Center, modal)
	}
	return body
}
