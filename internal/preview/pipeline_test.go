package preview

import (
	"encoding/base64"
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPipeline_SuccessCycle(t *testing.T) {
	p := NewPipeline()
	assert.Equal(t, StateIdle, p.State())

	require.NoError(t, p.Trigger(true))
	assert.Equal(t, StateRequesting, p.State())
	assert.NotEmpty(t, p.Status())

	h := p.AcceptArtifact(Artifact{Data: []byte("%PDF-1.4"), FileName: "x.pdf"})
	assert.Equal(t, StateRendering, p.State())
	assert.True(t, h.Live())

	p.AcceptRaster(image.NewRGBA(image.Rect(0, 0, 2, 2)))
	assert.Equal(t, StateReady, p.State())
	assert.NotNil(t, p.Raster())
	assert.Empty(t, p.Status())
}

func TestPipeline_TriggerWithoutPayload(t *testing.T) {
	p := NewPipeline()

	err := p.Trigger(false)

	assert.ErrorIs(t, err, ErrNoPayload)
	assert.Equal(t, StateIdle, p.State(), "no modal state change without a payload")
}

func TestPipeline_RetriggerRevokesPreviousHandle(t *testing.T) {
	p := NewPipeline()
	require.NoError(t, p.Trigger(true))
	first := p.AcceptArtifact(Artifact{Data: []byte("one"), FileName: "a.pdf"})
	p.AcceptRaster(image.NewRGBA(image.Rect(0, 0, 1, 1)))

	require.NoError(t, p.Trigger(true))
	second := p.AcceptArtifact(Artifact{Data: []byte("two"), FileName: "b.pdf"})

	assert.False(t, first.Live(), "old handle revoked before the new one is usable")
	assert.True(t, second.Live())
	assert.Same(t, second, p.Handle())
}

func TestPipeline_FailKeepsModalOpenWithMessage(t *testing.T) {
	p := NewPipeline()
	require.NoError(t, p.Trigger(true))

	p.Fail("server menolak permintaan (500): database unavailable")

	assert.Equal(t, StateFailed, p.State())
	assert.Contains(t, p.Status(), "database unavailable")
}

func TestPipeline_FailDefaultMessage(t *testing.T) {
	p := NewPipeline()
	require.NoError(t, p.Trigger(true))

	p.Fail("")

	assert.Equal(t, "Gagal memuat pratinjau PDF.", p.Status())
}

func TestPipeline_CloseRevokesAndClears(t *testing.T) {
	p := NewPipeline()
	require.NoError(t, p.Trigger(true))
	h := p.AcceptArtifact(Artifact{Data: []byte("x"), FileName: "x.pdf"})
	p.AcceptRaster(image.NewRGBA(image.Rect(0, 0, 1, 1)))

	p.Close()

	assert.Equal(t, StateClosed, p.State())
	assert.False(t, h.Live())
	assert.Nil(t, p.Handle())
	assert.Nil(t, p.Raster())
	assert.Empty(t, p.Status())
}

func TestPipeline_CloseTwiceIsSafe(t *testing.T) {
	p := NewPipeline()
	require.NoError(t, p.Trigger(true))
	p.AcceptArtifact(Artifact{Data: []byte("x")})

	p.Close()
	p.Close()

	assert.Equal(t, StateClosed, p.State())
}

func TestDecodeArtifact(t *testing.T) {
	encoded := base64.StdEncoding.EncodeToString([]byte("%PDF-1.4"))

	a, err := DecodeArtifact(encoded, "Form-Mutasi-001598.pdf", "001598")

	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-1.4"), a.Data)
	assert.Equal(t, "Form-Mutasi-001598.pdf", a.FileName)
}

func TestDecodeArtifact_DerivesFileName(t *testing.T) {
	encoded := base64.StdEncoding.EncodeToString([]byte("x"))

	a, err := DecodeArtifact(encoded, "", "BA/2025 001")

	require.NoError(t, err)
	assert.Equal(t, "Form-Mutasi-BA_2025_001.pdf", a.FileName)
}

func TestDecodeArtifact_InvalidEncoding(t *testing.T) {
	_, err := DecodeArtifact("not base64!!!", "", "")
	assert.Error(t, err)
}

func TestFileName(t *testing.T) {
	tests := []struct {
		name   string
		noForm string
		want   string
	}{
		{name: "plain", noForm: "001598", want: "Form-Mutasi-001598.pdf"},
		{name: "unsafe characters collapse", noForm: "BA/2025 001", want: "Form-Mutasi-BA_2025_001.pdf"},
		{name: "empty falls back to draft", noForm: "", want: "Form-Mutasi-draft.pdf"},
		{name: "only unsafe falls back to draft", noForm: "///", want: "Form-Mutasi-draft.pdf"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FileName(tt.noForm))
		})
	}
}

func TestFitScale(t *testing.T) {
	tests := []struct {
		name      string
		natural   float64
		container float64
		want      float64
	}{
		{name: "exact fit", natural: 600, container: 600, want: 1},
		{name: "scales up within clamp", natural: 600, container: 720, want: 1.2},
		{name: "clamped high", natural: 600, container: 1200, want: 1.4},
		{name: "clamped low", natural: 600, container: 120, want: 0.6},
		{name: "zero natural width", natural: 0, container: 600, want: 1},
		{name: "zero container width", natural: 600, container: 0, want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, FitScale(tt.natural, tt.container), 1e-9)
		})
	}
}
