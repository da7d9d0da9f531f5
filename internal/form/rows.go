// Package form owns the editable state of one transfer document: the
// ordered line-item rows and the assembly/validation of the submission
// payload. The UI renders this state but never stores any of it.
package form

import (
	"github.com/google/uuid"

	"github.com/hwgcc/mutasi-flow/internal/model"
	"github.com/hwgcc/mutasi-flow/internal/suggest"
)

// ProductSuggestLimit caps the product suggestion list per row.
const ProductSuggestLimit = 40

// Row is the state of one line item, keyed by an opaque handle. Quantity is
// kept as raw text and parsed at serialization time.
type Row struct {
	Suggest     *suggest.Engine[model.Product]
	Handle      string
	ProductName string
	KodeItem    string
	Uom         string
	Quantity    string
	Harga       float64
}

// Item converts the row to its wire shape.
func (r *Row) Item() model.LineItem {
	return model.LineItem{
		ProductName: r.ProductName,
		KodeItem:    r.KodeItem,
		Uom:         r.Uom,
		Qty:         model.ParseDecimal(r.Quantity),
		Harga:       r.Harga,
	}
}

func (r *Row) clear() {
	r.ProductName = ""
	r.KodeItem = ""
	r.Uom = ""
	r.Harga = 0
	r.Quantity = ""
	r.Suggest.Close()
}

// RowList manages the ordered line-item rows. The list never drops below
// one row.
type RowList struct {
	rows     []*Row
	products []model.Product
}

// NewRowList creates a list holding a single empty row.
func NewRowList() *RowList {
	l := &RowList{}
	l.CreateRow()
	return l
}

// CreateRow appends a new empty row bound to a fresh suggestion engine over
// the currently active product catalog.
func (l *RowList) CreateRow() *Row {
	handle := uuid.NewString()
	row := &Row{Handle: handle}
	row.Suggest = suggest.New(suggest.Config[model.Product]{
		Fields: model.Product.SearchFields,
		Limit:  ProductSuggestLimit,
		OnSelect: func(p model.Product) {
			l.ApplySelection(handle, p)
		},
	})
	row.Suggest.SetCandidates(l.products)
	l.rows = append(l.rows, row)
	return row
}

// RemoveRow deletes the row with the given handle. Removing the sole
// remaining row clears its fields instead; the returned bool reports whether
// the row was actually deleted.
func (l *RowList) RemoveRow(handle string) bool {
	idx := l.index(handle)
	if idx < 0 {
		return false
	}
	if len(l.rows) == 1 {
		l.rows[0].clear()
		return false
	}
	l.rows = append(l.rows[:idx], l.rows[idx+1:]...)
	return true
}

// ApplySelection copies the chosen product into the row and closes its
// suggestion list.
func (l *RowList) ApplySelection(handle string, p model.Product) bool {
	row, ok := l.Row(handle)
	if !ok {
		return false
	}
	row.ProductName = p.Name
	row.KodeItem = p.DefaultCode
	row.Uom = p.UomName
	row.Harga = p.Harga
	row.Suggest.Close()
	return true
}

// ClearRow resets the row's fields and closes any open suggestion list.
func (l *RowList) ClearRow(handle string) bool {
	row, ok := l.Row(handle)
	if !ok {
		return false
	}
	row.clear()
	return true
}

// ApplyCatalog swaps in a freshly resolved product catalog. Stale row
// selections are meaningless against the new catalog, so every row is
// cleared.
func (l *RowList) ApplyCatalog(products []model.Product) {
	l.products = products
	for _, row := range l.rows {
		row.clear()
		row.Suggest.SetCandidates(products)
	}
}

// Reset shrinks the list back to a single empty row.
func (l *RowList) Reset() {
	l.rows = nil
	l.CreateRow()
}

// Rows returns the rows in order.
func (l *RowList) Rows() []*Row { return l.rows }

// Len returns the number of rows.
func (l *RowList) Len() int { return len(l.rows) }

// Row looks up a row by handle.
func (l *RowList) Row(handle string) (*Row, bool) {
	if idx := l.index(handle); idx >= 0 {
		return l.rows[idx], true
	}
	return nil, false
}

// IsLast reports whether handle identifies the final row. Only the final row
// offers the "add another row" affordance, so this must be re-consulted
// after every structural change.
func (l *RowList) IsLast(handle string) bool {
	return len(l.rows) > 0 && l.rows[len(l.rows)-1].Handle == handle
}

// Serialize produces the ordered item list for the items_json field.
func (l *RowList) Serialize() []model.LineItem {
	items := make([]model.LineItem, 0, len(l.rows))
	for _, row := range l.rows {
		items = append(items, row.Item())
	}
	return items
}

func (l *RowList) index(handle string) int {
	for i, row := range l.rows {
		if row.Handle == handle {
			return i
		}
	}
	return -1
}
