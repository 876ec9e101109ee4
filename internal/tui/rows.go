package tui

import (
	"fmt"
	"strings"

	"stockpile/internal/model"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

const (
	qtyColWidth     = 5
	updatedColWidth = 10
	picColWidth     = 4
)

type columnWidths struct {
	name     int
	category int
}

func (m appModel) columns() columnWidths {
	w := m.width
	if w < 40 {
		w = 40
	}
	flexible := w - qtyColWidth - updatedColWidth - picColWidth - 4
	name := flexible * 3 / 5
	return columnWidths{name: name, category: flexible - name}
}

func (m appModel) listView() string {
	cols := m.columns()
	sortBy, sortDir := m.st.SortState()

	var b strings.Builder

	title := styleTitle().Render("Inventory")
	count := styleMuted().Render(fmt.Sprintf(" %d items", len(m.rows)))
	b.WriteString(title + count + "\n\n")

	b.WriteString(m.searchInput.View() + "\n\n")

	header := padCell(sortLabel("Name", model.SortByName, sortBy, sortDir), cols.name) + " " +
		padCell("Category", cols.category) + " " +
		padCell("Qty", qtyColWidth) + " " +
		padCell(sortLabel("Updated", model.SortByUpdatedAt, sortBy, sortDir), updatedColWidth) + " " +
		padCell("Pic", picColWidth)
	b.WriteString(styleHeader().Render(header) + "\n")

	if len(m.rows) == 0 {
		b.WriteString(styleMuted().Render("No items") + "\n")
	}
	for i, it := range m.rows {
		line := renderRow(it, cols)
		if i == m.cursor {
			line = styleSelected().Render(line)
		}
		b.WriteString(line + "\n")
	}

	b.WriteString("\n")
	if m.flash != "" {
		b.WriteString(m.flash + "\n")
	}
	b.WriteString(styleMuted().Render("enter: edit   a: add   d: delete   /: search   n/u: sort   q: quit"))

	return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
}

func renderRow(it model.Item, cols columnWidths) string {
	pic := ""
	if it.PhotoURI != "" {
		pic = "✓"
	}
	return padCell(it.Name, cols.name) + " " +
		padCell(it.Category, cols.category) + " " +
		padCell(formatQuantity(it.Quantity), qtyColWidth) + " " +
		padCell(formatUpdated(it.UpdatedAt), updatedColWidth) + " " +
		padCell(pic, picColWidth)
}

func sortLabel(label string, col, active model.SortBy, dir model.SortDir) string {
	if col != active {
		return label
	}
	if dir == model.SortAsc {
		return label + " ▲"
	}
	return label + " ▼"
}

func padCell(s string, w int) string {
	lw := xansi.StringWidth(s)
	if lw > w {
		return xansi.Cut(s, 0, w)
	}
	return s + strings.Repeat(" ", w-lw)
}
