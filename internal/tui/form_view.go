package tui

import (
	"context"
	"strings"

	"stockpile/internal/form"
	"stockpile/internal/model"
	"stockpile/internal/photo"
	"stockpile/internal/store"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type formField int

const (
	fieldName formField = iota
	fieldQuantity
	fieldCategory
	fieldNotes
	fieldCount
)

type formResult struct {
	submitted bool
	cancelled bool
	quit      bool
}

// formModel is the create/edit screen. All state decisions (validation,
// busy, photo outcomes) live in the form controller; this model only binds
// keystrokes to it and renders the result.
type formModel struct {
	ctrl *form.Controller

	inputs  [3]textinput.Model // name, quantity, category
	notes   textarea.Model
	focus   formField
	touched [fieldCount]bool

	// advisory blocks the form until dismissed (capability denial/failure).
	advisory string

	width int
}

func newFormModel(st *store.Store, photos photo.Capability, it *model.Item) formModel {
	var ctrl *form.Controller
	if it == nil {
		ctrl = form.NewCreate(st, photos)
	} else {
		ctrl = form.NewEdit(st, photos, *it)
	}
	raw := ctrl.Raw()

	f := formModel{ctrl: ctrl}

	mk := func(placeholder, value string) textinput.Model {
		ti := textinput.New()
		ti.Placeholder = placeholder
		ti.CharLimit = 200
		ti.SetValue(value)
		return ti
	}
	f.inputs[fieldName] = mk("Item name", raw.Name)
	f.inputs[fieldQuantity] = mk("0", raw.Quantity)
	f.inputs[fieldCategory] = mk("e.g. Groceries", raw.Category)

	f.notes = textarea.New()
	f.notes.Placeholder = "Optional notes"
	f.notes.SetHeight(4)
	f.notes.SetValue(raw.Notes)

	f.inputs[fieldName].Focus()
	return f
}

func (f *formModel) resize(w int) {
	f.width = w
	inputW := max(24, min(w-8, 60))
	for i := range f.inputs {
		f.inputs[i].Width = inputW
	}
	f.notes.SetWidth(inputW)
}

func (f *formModel) setFocus(field formField) {
	f.focus = field
	for i := range f.inputs {
		f.inputs[i].Blur()
	}
	f.notes.Blur()
	if field == fieldNotes {
		f.notes.Focus()
		return
	}
	f.inputs[field].Focus()
}

func (f *formModel) syncController() {
	f.ctrl.SetName(f.inputs[fieldName].Value())
	f.ctrl.SetQuantity(f.inputs[fieldQuantity].Value())
	f.ctrl.SetCategory(f.inputs[fieldCategory].Value())
	f.ctrl.SetNotes(f.notes.Value())
}

func (f *formModel) acquireCmd(src form.PhotoSource) tea.Cmd {
	ctrl := f.ctrl
	return func() tea.Msg {
		return photoDoneMsg{advisory: ctrl.AcquirePhoto(context.Background(), src)}
	}
}

func (f *formModel) applyPhotoResult(msg photoDoneMsg) {
	if msg.advisory != "" {
		f.advisory = msg.advisory
	}
}

func (f *formModel) update(msg tea.KeyMsg) (formResult, tea.Cmd) {
	// A pending advisory blocks everything; any key dismisses it.
	if f.advisory != "" {
		if msg.String() == "ctrl+c" {
			return formResult{quit: true}, nil
		}
		f.advisory = ""
		return formResult{}, nil
	}

	if f.ctrl.Busy() {
		if msg.String() == "ctrl+c" {
			return formResult{quit: true}, nil
		}
		return formResult{}, nil
	}

	switch msg.String() {
	case "ctrl+c":
		return formResult{quit: true}, nil

	case "esc":
		return formResult{cancelled: true}, nil

	case "tab", "down":
		f.setFocus((f.focus + 1) % fieldCount)
		return formResult{}, textinput.Blink

	case "shift+tab", "up":
		f.setFocus((f.focus + fieldCount - 1) % fieldCount)
		return formResult{}, textinput.Blink

	case "ctrl+p":
		return formResult{}, f.acquireCmd(form.PhotoFromLibrary)

	case "ctrl+t":
		return formResult{}, f.acquireCmd(form.PhotoFromCamera)

	case "ctrl+x":
		f.ctrl.ClearPhoto()
		return formResult{}, nil

	case "ctrl+s":
		return f.trySubmit(), nil

	case "enter":
		// Enter inside the notes textarea inserts a newline; everywhere else
		// it submits.
		if f.focus != fieldNotes {
			return f.trySubmit(), nil
		}
	}

	f.touched[f.focus] = true
	var cmd tea.Cmd
	if f.focus == fieldNotes {
		f.notes, cmd = f.notes.Update(msg)
	} else {
		f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	}
	f.syncController()
	return formResult{}, cmd
}

func (f *formModel) trySubmit() formResult {
	// Mark everything touched so remaining errors become visible.
	for i := range f.touched {
		f.touched[i] = true
	}
	if !f.ctrl.CanSubmit() {
		return formResult{}
	}
	return formResult{submitted: f.ctrl.Submit()}
}

func (f *formModel) view() string {
	var b strings.Builder

	title := "Add Item"
	submitLabel := "create"
	if f.ctrl.Editing() {
		title = "Edit Item"
		submitLabel = "save"
	}
	b.WriteString(styleTitle().Render(title) + "\n\n")

	writeField := func(label string, field formField, view string, errKey string) {
		b.WriteString(styleLabel().Render(label) + "\n")
		b.WriteString(view + "\n")
		if msg := f.ctrl.FieldError(errKey); msg != "" && f.touched[field] {
			b.WriteString(styleError().Render(msg) + "\n")
		}
		b.WriteString("\n")
	}

	writeField("Name *", fieldName, f.inputs[fieldName].View(), form.FieldName)
	writeField("Quantity *", fieldQuantity, f.inputs[fieldQuantity].View(), form.FieldQuantity)
	writeField("Category", fieldCategory, f.inputs[fieldCategory].View(), form.FieldCategory)
	writeField("Notes", fieldNotes, f.notes.View(), form.FieldNotes)

	b.WriteString(styleLabel().Render("Photo") + "\n")
	if uri := f.ctrl.Raw().PhotoURI; uri != "" {
		b.WriteString(uri + "\n")
	} else {
		b.WriteString(styleMuted().Render("No photo") + "\n")
	}
	b.WriteString(styleMuted().Render("ctrl+t: take   ctrl+p: pick   ctrl+x: remove") + "\n\n")

	switch {
	case f.ctrl.Busy():
		b.WriteString(styleMuted().Render("Saving…"))
	case f.ctrl.CanSubmit():
		b.WriteString(styleMuted().Render("enter/ctrl+s: " + submitLabel + "   esc: cancel"))
	default:
		b.WriteString(styleMuted().Render("fix the highlighted fields to " + submitLabel + "   esc: cancel"))
	}

	body := lipgloss.NewStyle().Padding(1, 2).Render(b.String())
	if f.advisory != "" {
		modal := renderAdvisoryModal(f.width, f.advisory)
		return lipgloss.Place(max(f.width, lipgloss.Width(modal)), lipgloss.Height(body),
			lipgloss.Center, lipgloss.Center, modal)
	}
	return body
}

func renderAdvisoryModal(width int, body string) string {
	bodyW := modalBodyWidth(width)
	content := lipgloss.NewStyle().Width(bodyW).Render(body) + "\n\n" +
		styleMuted().Width(bodyW).Render("press any key to dismiss")
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorError).
		Padding(1, 2)
	return box.Render(styleTitle().Render("Notice") + "\n\n" + content)
}
