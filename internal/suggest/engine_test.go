package suggest

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hwgcc/mutasi-flow/internal/model"
)

func productEngine(products []model.Product, onSelect func(model.Product)) *Engine[model.Product] {
	e := New(Config[model.Product]{
		Fields:   model.Product.SearchFields,
		OnSelect: onSelect,
		Limit:    40,
	})
	e.SetCandidates(products)
	return e
}

func outletEngine(outlets []model.Outlet) *Engine[model.Outlet] {
	e := New(Config[model.Outlet]{
		Fields:          model.Outlet.SearchFields,
		Limit:           50,
		MatchAllOnEmpty: true,
	})
	e.SetCandidates(outlets)
	return e
}

func sampleProducts() []model.Product {
	return []model.Product{
		{Name: "Gula Pasir", DefaultCode: "GP-01", UomName: "kg"},
		{Name: "Garam Halus", DefaultCode: "GH-02", UomName: "kg"},
		{Name: "Minyak Goreng", DefaultCode: "MG-03", UomName: "liter"},
		{Name: "Gula Aren", DefaultCode: "GA-04", UomName: "kg"},
	}
}

func TestEngine_OpenMatchesSubstringCaseInsensitive(t *testing.T) {
	e := productEngine(sampleProducts(), nil)

	e.Open("gula")

	require.Len(t, e.Matches(), 2)
	assert.Equal(t, "Gula Pasir", e.Matches()[0].Name)
	assert.Equal(t, "Gula Aren", e.Matches()[1].Name)
	assert.Equal(t, StateFiltering, e.State())
}

func TestEngine_OpenMatchesAcrossFields(t *testing.T) {
	e := productEngine(sampleProducts(), nil)

	// "mg-03" only appears in the item code field.
	e.Open("mg-03")

	require.Len(t, e.Matches(), 1)
	assert.Equal(t, "Minyak Goreng", e.Matches()[0].Name)
}

func TestEngine_OpenPreservesCatalogOrderAndCap(t *testing.T) {
	var products []model.Product
	for i := 0; i < 60; i++ {
		products = append(products, model.Product{Name: fmt.Sprintf("Item %03d", i)})
	}
	e := productEngine(products, nil)

	e.Open("item")

	require.Len(t, e.Matches(), 40)
	for i, p := range e.Matches() {
		assert.Equal(t, fmt.Sprintf("Item %03d", i), p.Name)
	}
}

func TestEngine_EmptyQueryClosesProductSearch(t *testing.T) {
	e := productEngine(sampleProducts(), nil)

	e.Open("gula")
	require.True(t, e.IsOpen())

	e.Open("")
	assert.False(t, e.IsOpen())
	assert.Empty(t, e.Matches())
	assert.Equal(t, StateClosed, e.State())
}

func TestEngine_EmptyQueryMatchesEverythingForOutlets(t *testing.T) {
	outlets := []model.Outlet{
		{ID: "1", Name: "Gudang Pusat"},
		{ID: "2", Name: "Outlet Senayan"},
	}
	e := outletEngine(outlets)

	e.Open("")

	assert.True(t, e.IsOpen())
	assert.Len(t, e.Matches(), 2)
}

func TestEngine_NavigateWrapsBothDirections(t *testing.T) {
	e := productEngine(sampleProducts(), nil)
	e.Open("a") // matches all four sample products

	require.Len(t, e.Matches(), 4)

	e.Navigate(1)
	assert.Equal(t, 0, e.ActiveIndex())
	assert.Equal(t, StateNavigating, e.State())

	e.Navigate(1)
	e.Navigate(1)
	e.Navigate(1)
	assert.Equal(t, 3, e.ActiveIndex())

	e.Navigate(1)
	assert.Equal(t, 0, e.ActiveIndex(), "past the last match wraps to the first")

	e.Navigate(-1)
	assert.Equal(t, 3, e.ActiveIndex(), "before the first match wraps to the last")
}

func TestEngine_NavigateEmptyListIsNoOp(t *testing.T) {
	e := productEngine(sampleProducts(), nil)
	e.Open("zzzz")

	e.Navigate(1)
	assert.Equal(t, -1, e.ActiveIndex())
}

func TestEngine_ConfirmDefaultsToFirstMatch(t *testing.T) {
	var selected model.Product
	e := productEngine(sampleProducts(), func(p model.Product) { selected = p })
	e.Open("gula")

	entry, ok := e.Confirm()

	require.True(t, ok)
	assert.Equal(t, "Gula Pasir", entry.Name)
	assert.Equal(t, "Gula Pasir", selected.Name)
	assert.False(t, e.IsOpen(), "confirm closes the list")
}

func TestEngine_ConfirmUsesActiveIndex(t *testing.T) {
	var selected model.Product
	e := productEngine(sampleProducts(), func(p model.Product) { selected = p })
	e.Open("gula")
	e.Navigate(1)
	e.Navigate(1)

	entry, ok := e.Confirm()

	require.True(t, ok)
	assert.Equal(t, "Gula Aren", entry.Name)
	assert.Equal(t, "Gula Aren", selected.Name)
}

func TestEngine_ConfirmOnEmptyListFails(t *testing.T) {
	e := productEngine(sampleProducts(), nil)
	e.Open("zzzz")

	_, ok := e.Confirm()
	assert.False(t, ok)
}

func TestEngine_SelectDirectlyInvokesCallbackAndCloses(t *testing.T) {
	var selected model.Product
	e := productEngine(sampleProducts(), func(p model.Product) { selected = p })
	e.Open("gula")

	e.SelectDirectly(e.Matches()[1])

	assert.Equal(t, "Gula Aren", selected.Name)
	assert.False(t, e.IsOpen())
}

func TestEngine_ScheduledCloseAppliesWhenUncontested(t *testing.T) {
	e := productEngine(sampleProducts(), nil)
	e.Open("gula")

	token := e.ScheduleClose()

	assert.True(t, e.ResolveClose(token))
	assert.False(t, e.IsOpen())
}

func TestEngine_SelectionCancelsScheduledClose(t *testing.T) {
	selections := 0
	e := productEngine(sampleProducts(), func(model.Product) { selections++ })
	e.Open("gula")

	token := e.ScheduleClose()
	e.SelectDirectly(e.Matches()[0])

	assert.False(t, e.ResolveClose(token), "stale close token must not apply")
	assert.Equal(t, 1, selections)
}

func TestEngine_ReopenCancelsScheduledClose(t *testing.T) {
	e := productEngine(sampleProducts(), nil)
	e.Open("gula")

	token := e.ScheduleClose()
	e.Open("garam")

	assert.False(t, e.ResolveClose(token))
	assert.True(t, e.IsOpen())
}

func TestEngine_SetCandidatesClosesList(t *testing.T) {
	e := productEngine(sampleProducts(), nil)
	e.Open("gula")

	e.SetCandidates(nil)

	assert.False(t, e.IsOpen())
	e.Open("gula")
	assert.Empty(t, e.Matches())
}
