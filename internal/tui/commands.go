package tui

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/hwgcc/mutasi-flow/internal/catalog"
	"github.com/hwgcc/mutasi-flow/internal/form"
	"github.com/hwgcc/mutasi-flow/internal/model"
	"github.com/hwgcc/mutasi-flow/internal/preview"
)

// rasterCellPx approximates the pixel width of one terminal cell, used to
// translate the modal's column count into a raster container width.
const rasterCellPx = 8

// loadOutlets fetches the outlet master catalog.
func (m Model) loadOutlets() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		outlets, err := client.Outlets(context.Background())
		return outletsLoadedMsg{outlets: outlets, err: err}
	}
}

// fetchCatalog runs the fetch a catalog ticket demands and hands the
// resolution back for commit on the update loop.
func (m Model) fetchCatalog(t catalog.Ticket) tea.Cmd {
	cache := m.cache
	return func() tea.Msg {
		return catalogResolvedMsg{res: cache.Fetch(context.Background(), t)}
	}
}

// requestPreview asks the server to render the assembled form as a PDF.
func (m Model) requestPreview(p form.Payload) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		resp, err := client.Preview(context.Background(), p)
		return previewArtifactMsg{resp: resp, err: err, noForm: p.NoForm}
	}
}

// rasterize renders the first page of the live preview document at a scale
// fitted to the modal width.
func (m Model) rasterize(h *preview.Handle) tea.Cmd {
	renderer := m.renderer
	cols := m.previewCols()
	return func() tea.Msg {
		data, err := h.Bytes()
		if err != nil {
			return previewRasterMsg{err: err}
		}
		natural, err := renderer.PageWidth(data, 0)
		if err != nil {
			return previewRasterMsg{err: err}
		}
		scale := preview.FitScale(natural, float64(cols*rasterCellPx))
		img, err := renderer.RenderPage(context.Background(), data, 0, scale)
		if err != nil {
			return previewRasterMsg{err: err}
		}
		return previewRasterMsg{img: img}
	}
}

// previewCols is how many terminal columns the rasterized page may use.
func (m Model) previewCols() int {
	cols := m.width - 10
	if cols < 40 {
		cols = 40
	}
	if cols > 100 {
		cols = 100
	}
	return cols
}

// submitForm uploads the assembled form.
func (m Model) submitForm(p form.Payload) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		return submitDoneMsg{err: client.Submit(context.Background(), p, nil)}
	}
}

// saveDraft persists the current form state. quit is carried through so the
// program can exit once the save lands.
func (m Model) saveDraft(quit bool) tea.Cmd {
	drafts := m.drafts
	d := m.snapshotDraft()
	return func() tea.Msg {
		id, err := drafts.Save(context.Background(), d)
		return draftSavedMsg{id: id, err: err, quit: quit}
	}
}

// clearDraft deletes the draft backing a successfully submitted form.
func (m Model) clearDraft(id string) tea.Cmd {
	drafts := m.drafts
	return func() tea.Msg {
		return draftClearedMsg{err: drafts.Delete(context.Background(), id)}
	}
}

// snapshotDraft captures the form state as a storable draft.
func (m Model) snapshotDraft() model.Draft {
	items := m.rows.Serialize()
	itemsJSON, _ := model.MarshalItems(items)
	return model.Draft{
		ID:               m.draftID,
		NoForm:           strings.TrimSpace(m.noForm.Value()),
		Tanggal:          strings.TrimSpace(m.tanggal.Value()),
		OutletPengirimID: m.sourceID,
		OutletPengirim:   m.sourceName,
		OutletPenerimaID: m.destID,
		OutletPenerima:   m.destName,
		DibuatOleh:       m.dibuatTags.Serialize(),
		DisetujuiOleh:    m.disetujuiTags.Serialize(),
		DiterimaOleh:     m.diterimaTags.Serialize(),
		ItemsJSON:        itemsJSON,
		AttachmentPath:   strings.TrimSpace(m.attachment.Value()),
	}
}
