package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/hwgcc/mutasi-flow/internal/form"
	"github.com/hwgcc/mutasi-flow/internal/model"
	"github.com/hwgcc/mutasi-flow/internal/tui/themes"
)

// ProductChosenMsg announces that a row's product combobox confirmed a
// selection. The row state was already updated by the engine callback; this
// message lets the host move focus to the quantity column.
type ProductChosenMsg struct {
	Handle  string
	Product model.Product
}

// RowColumn identifies the editable column inside a row.
type RowColumn int

const (
	// ColumnProduct is the product typeahead input.
	ColumnProduct RowColumn = iota
	// ColumnQty is the quantity input.
	ColumnQty
)

// RowEditor pairs one form row with its input widgets. The row itself lives
// in the form.RowList; the editor owns only the text inputs.
type RowEditor struct {
	Product Combobox[model.Product]
	Qty     textinput.Model
	Handle  string
}

// RowListEditor renders and edits the line-item rows of a transfer form.
type RowListEditor struct {
	rows    *form.RowList
	editors []RowEditor
	theme   themes.Theme
}

// NewRowListEditor creates an editor over rows, building widgets for every
// row already present.
func NewRowListEditor(rows *form.RowList, theme themes.Theme) RowListEditor {
	e := RowListEditor{rows: rows, theme: theme}
	for _, row := range rows.Rows() {
		e.editors = append(e.editors, e.newEditor(row))
	}
	return e
}

func (e RowListEditor) newEditor(row *form.Row) RowEditor {
	handle := row.Handle
	product := NewCombobox(ComboboxConfig[model.Product]{
		Engine:      row.Suggest,
		Owner:       handle,
		Placeholder: "Ketik nama atau kode item",
		Theme:       e.theme,
		Label: func(p model.Product) string {
			return fmt.Sprintf("%s  [%s]  %s", p.Name, p.DefaultCode, p.UomName)
		},
		Fill: func(p model.Product) string { return p.Name },
		Selected: func(p model.Product) tea.Msg {
			return ProductChosenMsg{Handle: handle, Product: p}
		},
	})

	qty := textinput.New()
	qty.Placeholder = "0"
	qty.Prompt = ""
	qty.CharLimit = 12
	qty.Width = 10

	return RowEditor{Product: product, Qty: qty, Handle: handle}
}

// Len returns the number of rows.
func (e RowListEditor) Len() int { return len(e.editors) }

// HandleAt returns the handle of the row at index i.
func (e RowListEditor) HandleAt(i int) string { return e.editors[i].Handle }

// IndexOf returns the index of the row with the given handle, -1 if absent.
func (e RowListEditor) IndexOf(handle string) int {
	for i, ed := range e.editors {
		if ed.Handle == handle {
			return i
		}
	}
	return -1
}

// AddRow appends a fresh empty row and its widgets.
func (e RowListEditor) AddRow() RowListEditor {
	row := e.rows.CreateRow()
	e.editors = append(e.editors, e.newEditor(row))
	return e
}

// RemoveRow deletes the row with the given handle. The sole remaining row is
// cleared in place instead, mirroring the row list's floor of one.
func (e RowListEditor) RemoveRow(handle string) RowListEditor {
	idx := e.IndexOf(handle)
	if idx < 0 {
		return e
	}
	if e.rows.RemoveRow(handle) {
		e.editors = append(e.editors[:idx], e.editors[idx+1:]...)
		return e
	}
	e.editors[idx].Product = e.editors[idx].Product.SetValue("")
	e.editors[idx].Qty.SetValue("")
	return e
}

// SyncCatalog clears every editor's inputs after a catalog swap. The rows
// themselves were already cleared by form.RowList.ApplyCatalog.
func (e RowListEditor) SyncCatalog() RowListEditor {
	for i := range e.editors {
		e.editors[i].Product = e.editors[i].Product.SetValue("")
		e.editors[i].Qty.SetValue("")
	}
	return e
}

// Reset shrinks the editor back to a single empty row.
func (e RowListEditor) Reset() RowListEditor {
	e.rows.Reset()
	e.editors = nil
	for _, row := range e.rows.Rows() {
		e.editors = append(e.editors, e.newEditor(row))
	}
	return e
}

// Restore fills the widgets from previously loaded row state, for resuming a
// draft.
func (e RowListEditor) Restore() RowListEditor {
	for i, row := range e.rows.Rows() {
		if i >= len(e.editors) {
			e.editors = append(e.editors, e.newEditor(row))
		}
		e.editors[i].Handle = row.Handle
		e.editors[i].Product = e.editors[i].Product.SetValue(row.ProductName)
		e.editors[i].Qty.SetValue(row.Quantity)
	}
	return e
}

// Focus gives focus to one column of row i.
func (e RowListEditor) Focus(i int, col RowColumn) (RowListEditor, tea.Cmd) {
	if i < 0 || i >= len(e.editors) {
		return e, nil
	}
	var cmd tea.Cmd
	switch col {
	case ColumnProduct:
		e.editors[i].Product, cmd = e.editors[i].Product.Focus()
	case ColumnQty:
		cmd = e.editors[i].Qty.Focus()
	}
	return e, cmd
}

// Blur drops focus from one column of row i. Blurring the product column
// schedules the grace-period close of its suggestion list.
func (e RowListEditor) Blur(i int, col RowColumn) (RowListEditor, tea.Cmd) {
	if i < 0 || i >= len(e.editors) {
		return e, nil
	}
	var cmd tea.Cmd
	switch col {
	case ColumnProduct:
		e.editors[i].Product, cmd = e.editors[i].Product.Blur()
	case ColumnQty:
		e.editors[i].Qty.Blur()
	}
	return e, cmd
}

// Update routes a message to the focused column of row i. Quantity text is
// mirrored into the row state on every edit.
func (e RowListEditor) Update(msg tea.Msg, i int, col RowColumn) (RowListEditor, tea.Cmd) {
	if i < 0 || i >= len(e.editors) {
		return e, nil
	}
	var cmd tea.Cmd
	switch col {
	case ColumnProduct:
		e.editors[i].Product, cmd = e.editors[i].Product.Update(msg)
		if row, ok := e.rows.Row(e.editors[i].Handle); ok {
			// Editing the text after a selection invalidates it; the typed
			// text stays as the pending query.
			if row.ProductName != "" && strings.TrimSpace(e.editors[i].Product.Value()) != row.ProductName {
				row.ProductName = ""
				row.KodeItem = ""
				row.Uom = ""
				row.Harga = 0
			}
		}
	case ColumnQty:
		e.editors[i].Qty, cmd = e.editors[i].Qty.Update(msg)
		if row, ok := e.rows.Row(e.editors[i].Handle); ok {
			row.Quantity = e.editors[i].Qty.Value()
		}
	}
	return e, cmd
}

// ResolveTimer delivers a grace-period close tick to the combobox that owns
// it.
func (e RowListEditor) ResolveTimer(msg CloseTimerMsg) RowListEditor {
	if idx := e.IndexOf(msg.Owner); idx >= 0 {
		e.editors[idx].Product, _ = e.editors[idx].Product.Update(msg)
	}
	return e
}

// View renders the row table. Suggestion lists render inline below their
// row.
func (e RowListEditor) View(width int) string {
	var b strings.Builder
	header := fmt.Sprintf("  %-3s %-34s %-12s %-8s %-10s %s", "No", "Nama Item", "Kode", "UOM", "Qty", "Harga")
	b.WriteString(e.theme.Label.Render(header))

	for i, ed := range e.editors {
		row, ok := e.rows.Row(ed.Handle)
		if !ok {
			continue
		}

		productView := ed.Product.View(width - 10)
		lines := strings.SplitN(productView, "\n", 2)
		inputLine := lines[0]

		b.WriteString("\n")
		b.WriteString(fmt.Sprintf("  %-3d %-34s %-12s %-8s %-10s %s",
			i+1,
			inputLine,
			truncateLine(row.KodeItem, 12),
			truncateLine(row.Uom, 8),
			ed.Qty.View(),
			formatHarga(row.Harga),
		))
		if len(lines) > 1 {
			for _, sug := range strings.Split(lines[1], "\n") {
				b.WriteString("\n      ")
				b.WriteString(sug)
			}
		}
	}
	return b.String()
}

func formatHarga(h float64) string {
	if h == 0 {
		return "-"
	}
	return fmt.Sprintf("%.0f", h)
}
