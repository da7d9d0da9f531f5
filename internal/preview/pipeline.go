// Package preview turns a server-rendered PDF artifact into a raster of its
// first page and owns the lifecycle of the decoded document bytes.
package preview

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"regexp"
	"strings"
)

// State is the pipeline's position in its lifecycle.
type State int

const (
	// StateIdle means no preview has been requested yet.
	StateIdle State = iota
	// StateRequesting means the artifact request is in flight.
	StateRequesting
	// StateRendering means the artifact arrived and page 1 is rasterizing.
	StateRendering
	// StateReady means the raster is on screen.
	StateReady
	// StateFailed means a step failed; the modal stays open with the message.
	StateFailed
	// StateClosed means the modal was dismissed and resources released.
	StateClosed
)

// String returns a string representation of the state.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateRequesting:
		return "Requesting"
	case StateRendering:
		return "Rendering"
	case StateReady:
		return "Ready"
	case StateFailed:
		return "Failed"
	case StateClosed:
		return "Closed"
	default:
		return "Unknown"
	}
}

// Renderer rasterizes pages of a PDF document.
type Renderer interface {
	RenderPage(ctx context.Context, pdf []byte, page int, scale float64) (image.Image, error)
	// PageWidth reports the page's natural width in pixels, used to pick the
	// fit scale.
	PageWidth(pdf []byte, page int) (float64, error)
}

// Artifact is the decoded preview document.
type Artifact struct {
	FileName string
	Data     []byte
}

// DecodeArtifact decodes the transport-encoded document. fileName falls
// back to a name derived from the form number when the server omits one.
func DecodeArtifact(pdfBase64, fileName, noForm string) (Artifact, error) {
	data, err := base64.StdEncoding.DecodeString(pdfBase64)
	if err != nil {
		return Artifact{}, fmt.Errorf("gagal membaca dokumen pratinjau: %w", err)
	}
	if fileName == "" {
		fileName = FileName(noForm)
	}
	return Artifact{Data: data, FileName: fileName}, nil
}

var unsafeName = regexp.MustCompile(`[^A-Za-z0-9_-]+`)

// FileName derives the download name from the form number, collapsing
// anything unsafe to underscores.
func FileName(noForm string) string {
	safe := unsafeName.ReplaceAllString(strings.TrimSpace(noForm), "_")
	safe = strings.Trim(safe, "_")
	if safe == "" {
		safe = "draft"
	}
	return "Form-Mutasi-" + safe + ".pdf"
}

const (
	minScale = 0.6
	maxScale = 1.4
)

// FitScale picks the raster scale so the page width fills the container,
// clamped to [0.6, 1.4] of natural scale.
func FitScale(naturalWidth, containerWidth float64) float64 {
	if naturalWidth <= 0 || containerWidth <= 0 {
		return 1
	}
	scale := containerWidth / naturalWidth
	if scale < minScale {
		return minScale
	}
	if scale > maxScale {
		return maxScale
	}
	return scale
}

// Pipeline is the preview state machine. It is event-driven: the host runs
// the asynchronous steps (request, decode, rasterize) and feeds outcomes
// back through the Accept/Fail methods; the pipeline owns state transitions
// and the single live handle.
type Pipeline struct {
	raster image.Image
	handle *Handle
	status string
	state  State
}

// NewPipeline creates an idle pipeline.
func NewPipeline() *Pipeline {
	return &Pipeline{state: StateIdle}
}

// ErrNoPayload is returned by Trigger when the assembler produced nothing.
var ErrNoPayload = errors.New("tidak ada data form untuk dipratinjau")

// Trigger starts a preview cycle: the modal opens in Requesting. A previous
// cycle's handle stays live until its replacement arrives or the modal
// closes; re-triggering from any state is allowed.
func (p *Pipeline) Trigger(payloadPresent bool) error {
	if !payloadPresent {
		return ErrNoPayload
	}
	p.state = StateRequesting
	p.status = "Meminta dokumen pratinjau..."
	p.raster = nil
	return nil
}

// AcceptArtifact installs the fetched document and moves to Rendering. The
// previous handle, if any, is revoked before the new one is created, so at
// most one handle is ever live.
func (p *Pipeline) AcceptArtifact(a Artifact) *Handle {
	p.handle.Revoke()
	p.handle = newHandle(a.Data, a.FileName)
	p.state = StateRendering
	p.status = "Merender halaman pertama..."
	return p.handle
}

// AcceptRaster installs the rasterized first page and moves to Ready.
func (p *Pipeline) AcceptRaster(img image.Image) {
	p.raster = img
	p.state = StateReady
	p.status = ""
}

// Fail records a step failure. The modal is not closed so the user can read
// the message; the handle (if one was created) stays managed and will be
// revoked on Close or on the next successful artifact.
func (p *Pipeline) Fail(message string) {
	if message == "" {
		message = "Gagal memuat pratinjau PDF."
	}
	p.state = StateFailed
	p.status = message
}

// Close dismisses the modal: the live handle is revoked, the raster surface
// and download wiring cleared.
func (p *Pipeline) Close() {
	p.handle.Revoke()
	p.handle = nil
	p.raster = nil
	p.status = ""
	p.state = StateClosed
}

// Handle returns the current document handle, nil when none is live.
func (p *Pipeline) Handle() *Handle {
	if p.handle == nil || !p.handle.Live() {
		return nil
	}
	return p.handle
}

// Raster returns the rendered first page, nil before Ready.
func (p *Pipeline) Raster() image.Image { return p.raster }

// State returns the current lifecycle state.
func (p *Pipeline) State() State { return p.state }

// Status returns the user-facing status line for the modal.
func (p *Pipeline) Status() string { return p.status }
