package form

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hwgcc/mutasi-flow/internal/model"
	"github.com/hwgcc/mutasi-flow/internal/tags"
)

func collectorWith(names ...string) *tags.Collector {
	c := tags.NewCollector()
	for _, n := range names {
		c.Add(n)
	}
	return c
}

func validInput(t *testing.T) Input {
	t.Helper()

	rows := NewRowList()
	rows.ApplyCatalog(testProducts())
	row := rows.Rows()[0]
	rows.ApplySelection(row.Handle, testProducts()[0])
	row.Quantity = "2"

	return Input{
		NoForm:     "001598",
		Tanggal:    "2025-06-01",
		SourceID:   "12",
		SourceName: "Gudang Pusat",
		DestID:     "7",
		DestName:   "Outlet Senayan",
		Dibuat:     collectorWith("Darius"),
		Disetujui:  collectorWith("Samuel"),
		Diterima:   collectorWith("Putri"),
		Rows:       rows,
	}
}

func categoriesOf(errs []ValidationError) map[ErrorCategory]int {
	out := map[ErrorCategory]int{}
	for _, e := range errs {
		out[e.Category]++
	}
	return out
}

func TestAssembler_ValidInputHasNoErrors(t *testing.T) {
	a := NewAssembler(0)
	assert.Empty(t, a.Validate(validInput(t)))
}

func TestAssembler_EmptyFormCollectsAllCategories(t *testing.T) {
	a := NewAssembler(0)

	errs := a.Validate(Input{Rows: NewRowList(), Dibuat: tags.NewCollector(), Diterima: tags.NewCollector()})

	cats := categoriesOf(errs)
	assert.NotZero(t, cats[CategoryRequired], "missing source and destination are required-field errors")
	assert.NotZero(t, cats[CategoryItems], "zero complete rows is an item error")
	assert.Zero(t, cats[CategoryOutletConflict], "no conflict when nothing is selected")
}

func TestAssembler_SameOutletYieldsExactlyOneConflict(t *testing.T) {
	a := NewAssembler(0)
	in := validInput(t)
	in.DestID = in.SourceID
	in.DestName = in.SourceName

	errs := a.Validate(in)

	require.Len(t, errs, 1)
	assert.Equal(t, CategoryOutletConflict, errs[0].Category)
	assert.Contains(t, errs[0].Message, "Gudang Pusat")
}

func TestAssembler_ConflictIndependentOfOtherFields(t *testing.T) {
	a := NewAssembler(0)
	in := Input{
		SourceID: "12", SourceName: "Gudang Pusat",
		DestID: "12", DestName: "Gudang Pusat",
		Dibuat: tags.NewCollector(), Diterima: tags.NewCollector(),
		Rows: NewRowList(),
	}

	errs := a.Validate(in)

	assert.Equal(t, 1, categoriesOf(errs)[CategoryOutletConflict])
}

func TestAssembler_HalfFilledRowIsAnError(t *testing.T) {
	a := NewAssembler(0)
	in := validInput(t)
	extra := in.Rows.CreateRow()
	extra.Quantity = "4" // quantity without a product

	errs := a.Validate(in)

	require.Len(t, errs, 1)
	assert.Equal(t, CategoryItems, errs[0].Category)
	assert.Contains(t, errs[0].Message, "Baris item 2")
}

func TestAssembler_BlankTrailingRowTolerated(t *testing.T) {
	a := NewAssembler(0)
	in := validInput(t)
	in.Rows.CreateRow()

	assert.Empty(t, a.Validate(in))
}

func TestAssembler_OversizedAttachment(t *testing.T) {
	a := NewAssembler(200)
	in := validInput(t)
	in.AttachmentPath = "/tmp/scan.pdf"
	in.AttachmentSize = 201 * 1024 * 1024

	errs := a.Validate(in)

	require.Len(t, errs, 1)
	assert.Equal(t, CategoryAttachment, errs[0].Category)
	assert.Contains(t, errs[0].Message, "200 MB")
}

func TestAssembler_AttachmentWithinLimit(t *testing.T) {
	a := NewAssembler(200)
	in := validInput(t)
	in.AttachmentPath = "/tmp/scan.pdf"
	in.AttachmentSize = 199 * 1024 * 1024

	assert.Empty(t, a.Validate(in))
}

func TestAssembler_AssembleBlockedOnErrors(t *testing.T) {
	a := NewAssembler(0)

	payload, errs := a.Assemble(Input{Rows: NewRowList(), Dibuat: tags.NewCollector(), Diterima: tags.NewCollector()})

	assert.NotEmpty(t, errs)
	assert.Equal(t, Payload{}, payload, "no partial payload on validation failure")
}

func TestAssembler_AssembleSerializesCompleteRowsOnly(t *testing.T) {
	a := NewAssembler(0)
	in := validInput(t)
	in.Rows.CreateRow() // blank trailing row should not be serialized

	payload, errs := a.Assemble(in)

	require.Empty(t, errs)
	assert.Equal(t, "001598", payload.NoForm)
	assert.Equal(t, "12", payload.OutletPengirimID)
	assert.Equal(t, "7", payload.OutletPenerimaID)
	assert.Equal(t, "Darius", payload.DibuatOleh)
	assert.Equal(t, "Samuel", payload.DisetujuiOleh)
	assert.Equal(t, "Putri", payload.DiterimaOleh)

	var items []model.LineItem
	require.NoError(t, json.Unmarshal([]byte(payload.ItemsJSON), &items))
	require.Len(t, items, 1)
	assert.Equal(t, "Gula Pasir", items[0].ProductName)
	assert.InDelta(t, 2, items[0].Qty, 1e-9)
}

func TestAggregateMessage(t *testing.T) {
	errs := []ValidationError{
		{Category: CategoryRequired, Message: "No Form wajib diisi"},
		{Category: CategoryItems, Message: "Minimal satu baris item harus diisi"},
	}

	assert.Equal(t, "No Form wajib diisi; Minimal satu baris item harus diisi", AggregateMessage(errs))
}

func TestPayloadFromDraft(t *testing.T) {
	d := model.Draft{
		NoForm:           "001598",
		Tanggal:          "2025-06-01",
		OutletPengirimID: "12",
		OutletPenerimaID: "7",
		DibuatOleh:       "Darius",
		DiterimaOleh:     "Putri",
		ItemsJSON:        "[]",
	}

	p := PayloadFromDraft(d)

	assert.Equal(t, "001598", p.NoForm)
	assert.Equal(t, "12", p.OutletPengirimID)
	assert.Equal(t, "[]", p.ItemsJSON)
}
