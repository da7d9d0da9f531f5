package form

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hwgcc/mutasi-flow/internal/model"
)

func testProducts() []model.Product {
	return []model.Product{
		{Name: "Gula Pasir", DefaultCode: "GP-01", UomName: "kg", Harga: 15000},
		{Name: "Minyak Goreng", DefaultCode: "MG-03", UomName: "liter", Harga: 32000},
	}
}

func TestRowList_StartsWithOneRow(t *testing.T) {
	l := NewRowList()
	assert.Equal(t, 1, l.Len())
}

func TestRowList_RemovingSoleRowClearsInstead(t *testing.T) {
	l := NewRowList()
	l.ApplyCatalog(testProducts())
	row := l.Rows()[0]
	l.ApplySelection(row.Handle, testProducts()[0])
	row.Quantity = "3"

	removed := l.RemoveRow(row.Handle)

	assert.False(t, removed)
	require.Equal(t, 1, l.Len())
	assert.Empty(t, row.ProductName)
	assert.Empty(t, row.KodeItem)
	assert.Empty(t, row.Quantity)
	assert.Zero(t, row.Harga)
}

func TestRowList_RemoveMiddleRow(t *testing.T) {
	l := NewRowList()
	second := l.CreateRow()
	l.CreateRow()

	removed := l.RemoveRow(second.Handle)

	assert.True(t, removed)
	assert.Equal(t, 2, l.Len())
	_, ok := l.Row(second.Handle)
	assert.False(t, ok)
}

func TestRowList_ApplySelectionCopiesCatalogFields(t *testing.T) {
	l := NewRowList()
	l.ApplyCatalog(testProducts())
	row := l.Rows()[0]

	ok := l.ApplySelection(row.Handle, testProducts()[1])

	require.True(t, ok)
	assert.Equal(t, "Minyak Goreng", row.ProductName)
	assert.Equal(t, "MG-03", row.KodeItem)
	assert.Equal(t, "liter", row.Uom)
	assert.InDelta(t, 32000, row.Harga, 1e-9)
	assert.False(t, row.Suggest.IsOpen())
}

func TestRowList_SuggestionConfirmFlowsIntoRow(t *testing.T) {
	l := NewRowList()
	l.ApplyCatalog(testProducts())
	row := l.Rows()[0]

	row.Suggest.Open("minyak")
	_, ok := row.Suggest.Confirm()

	require.True(t, ok)
	assert.Equal(t, "Minyak Goreng", row.ProductName)
}

func TestRowList_ApplyCatalogClearsAllRows(t *testing.T) {
	l := NewRowList()
	l.ApplyCatalog(testProducts())
	row := l.Rows()[0]
	l.ApplySelection(row.Handle, testProducts()[0])
	second := l.CreateRow()
	l.ApplySelection(second.Handle, testProducts()[1])

	l.ApplyCatalog([]model.Product{{Name: "Beras", DefaultCode: "BR-05", UomName: "kg"}})

	assert.Equal(t, 2, l.Len(), "row count survives a catalog swap")
	for _, r := range l.Rows() {
		assert.Empty(t, r.ProductName)
		assert.Empty(t, r.Quantity)
	}

	// New catalog backs the suggestion engines.
	row.Suggest.Open("beras")
	assert.Len(t, row.Suggest.Matches(), 1)
}

func TestRowList_IsLastTracksStructuralChanges(t *testing.T) {
	l := NewRowList()
	first := l.Rows()[0]
	assert.True(t, l.IsLast(first.Handle))

	second := l.CreateRow()
	assert.False(t, l.IsLast(first.Handle))
	assert.True(t, l.IsLast(second.Handle))

	l.RemoveRow(second.Handle)
	assert.True(t, l.IsLast(first.Handle))
}

func TestRowList_SerializeParsesQuantities(t *testing.T) {
	l := NewRowList()
	l.ApplyCatalog(testProducts())
	row := l.Rows()[0]
	l.ApplySelection(row.Handle, testProducts()[0])
	row.Quantity = "2,5"

	second := l.CreateRow()
	second.Quantity = "abc" // unparsable defaults to 0

	items := l.Serialize()

	require.Len(t, items, 2)
	assert.Equal(t, "Gula Pasir", items[0].ProductName)
	assert.InDelta(t, 2.5, items[0].Qty, 1e-9)
	assert.InDelta(t, 15000, items[0].Harga, 1e-9)
	assert.Zero(t, items[1].Qty)
}

func TestRowList_ResetShrinksToOneEmptyRow(t *testing.T) {
	l := NewRowList()
	l.CreateRow()
	l.CreateRow()

	l.Reset()

	assert.Equal(t, 1, l.Len())
	assert.Empty(t, l.Rows()[0].ProductName)
}
