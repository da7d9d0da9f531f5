package tui

import (
	"image"

	"github.com/hwgcc/mutasi-flow/internal/api"
	"github.com/hwgcc/mutasi-flow/internal/catalog"
	"github.com/hwgcc/mutasi-flow/internal/model"
)

// Data loading messages.
type outletsLoadedMsg struct {
	err     error
	outlets []model.Outlet
}

type catalogResolvedMsg struct {
	res catalog.Resolution
}

// UI interaction messages.
type outletChosenMsg struct {
	outlet model.Outlet
	dest   bool
}

// Async operation messages.
type previewArtifactMsg struct {
	err    error
	noForm string
	resp   api.PreviewResponse
}

type previewRasterMsg struct {
	err error
	img image.Image
}

type submitDoneMsg struct {
	err error
}

type draftSavedMsg struct {
	err  error
	id   string
	quit bool
}

type draftClearedMsg struct {
	err error
}
