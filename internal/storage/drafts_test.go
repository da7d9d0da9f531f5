package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hwgcc/mutasi-flow/internal/model"
)

func testStore(t *testing.T) *DraftStore {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "drafts.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func sampleDraft() model.Draft {
	return model.Draft{
		NoForm:           "001598",
		Tanggal:          "2025-06-01",
		OutletPengirimID: "12",
		OutletPengirim:   "Gudang Pusat",
		OutletPenerimaID: "7",
		OutletPenerima:   "Outlet Senayan",
		DibuatOleh:       "Darius",
		DisetujuiOleh:    "Samuel",
		DiterimaOleh:     "Putri",
		ItemsJSON:        `[{"product_name":"Gula Pasir","kode_item":"GP-01","uom":"kg","qty":2,"harga":15000}]`,
	}
}

func TestDraftStore_SaveAssignsIDAndRoundTrips(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	id, err := s.Save(ctx, sampleDraft())
	require.NoError(t, err)
	require.NotEmpty(t, id)

	got, err := s.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "001598", got.NoForm)
	assert.Equal(t, "Gudang Pusat", got.OutletPengirim)
	assert.Equal(t, sampleDraft().ItemsJSON, got.ItemsJSON)
	assert.False(t, got.UpdatedAt.IsZero())
}

func TestDraftStore_SaveUpdatesExisting(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	id, err := s.Save(ctx, sampleDraft())
	require.NoError(t, err)

	updated := sampleDraft()
	updated.ID = id
	updated.NoForm = "001599"
	_, err = s.Save(ctx, updated)
	require.NoError(t, err)

	got, err := s.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "001599", got.NoForm)

	drafts, err := s.List(ctx)
	require.NoError(t, err)
	assert.Len(t, drafts, 1)
}

func TestDraftStore_GetMissing(t *testing.T) {
	s := testStore(t)

	_, err := s.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrDraftNotFound)
}

func TestDraftStore_LatestOrdersByUpdate(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	first := sampleDraft()
	_, err := s.Save(ctx, first)
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)

	second := sampleDraft()
	second.NoForm = "001600"
	_, err = s.Save(ctx, second)
	require.NoError(t, err)

	latest, err := s.Latest(ctx)
	require.NoError(t, err)
	assert.Equal(t, "001600", latest.NoForm)
}

func TestDraftStore_LatestEmpty(t *testing.T) {
	s := testStore(t)

	_, err := s.Latest(context.Background())
	assert.ErrorIs(t, err, ErrDraftNotFound)
}

func TestDraftStore_Delete(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	id, err := s.Save(ctx, sampleDraft())
	require.NoError(t, err)

	require.NoError(t, s.Delete(ctx, id))
	assert.ErrorIs(t, s.Delete(ctx, id), ErrDraftNotFound)

	_, err = s.Get(ctx, id)
	assert.ErrorIs(t, err, ErrDraftNotFound)
}
