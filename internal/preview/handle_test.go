package preview

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandle_BytesWhileLive(t *testing.T) {
	h := newHandle([]byte("%PDF-1.4"), "Form-Mutasi-001598.pdf")

	data, err := h.Bytes()

	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-1.4"), data)
	assert.Equal(t, "Form-Mutasi-001598.pdf", h.FileName())
	assert.True(t, h.Live())
}

func TestHandle_RevokeReleasesBuffer(t *testing.T) {
	h := newHandle([]byte("%PDF-1.4"), "x.pdf")

	h.Revoke()

	assert.False(t, h.Live())
	_, err := h.Bytes()
	assert.ErrorIs(t, err, ErrHandleRevoked)
}

func TestHandle_RevokeIsIdempotent(t *testing.T) {
	h := newHandle([]byte("x"), "x.pdf")

	h.Revoke()
	h.Revoke() // second revoke is a no-op

	assert.False(t, h.Live())
}

func TestHandle_NilIsSafe(t *testing.T) {
	var h *Handle

	h.Revoke()
	assert.False(t, h.Live())
	_, err := h.Bytes()
	assert.ErrorIs(t, err, ErrHandleRevoked)
}

func TestHandle_SaveTo(t *testing.T) {
	h := newHandle([]byte("%PDF-1.4"), "x.pdf")
	path := filepath.Join(t.TempDir(), "out.pdf")

	require.NoError(t, h.SaveTo(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-1.4"), data)
}

func TestHandle_SaveToAfterRevoke(t *testing.T) {
	h := newHandle([]byte("x"), "x.pdf")
	h.Revoke()

	err := h.SaveTo(filepath.Join(t.TempDir(), "out.pdf"))
	assert.ErrorIs(t, err, ErrHandleRevoked)
}
