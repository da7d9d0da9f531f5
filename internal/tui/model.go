package tui

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/hwgcc/mutasi-flow/internal/api"
	"github.com/hwgcc/mutasi-flow/internal/catalog"
	"github.com/hwgcc/mutasi-flow/internal/common"
	"github.com/hwgcc/mutasi-flow/internal/form"
	"github.com/hwgcc/mutasi-flow/internal/model"
	"github.com/hwgcc/mutasi-flow/internal/preview"
	"github.com/hwgcc/mutasi-flow/internal/storage"
	"github.com/hwgcc/mutasi-flow/internal/suggest"
	"github.com/hwgcc/mutasi-flow/internal/tags"
	"github.com/hwgcc/mutasi-flow/internal/tui/components"
	"github.com/hwgcc/mutasi-flow/internal/tui/themes"
)

// State represents the current state of the TUI.
type State int

const (
	// StateLoading is the initial outlet-catalog load.
	StateLoading State = iota
	// StateForm is the editable form.
	StateForm
	// StatePreview shows the PDF preview modal.
	StatePreview
	// StateConfirmReset asks before clearing the form.
	StateConfirmReset
	// StateAuthExpired means the session died mid-flight.
	StateAuthExpired
)

// fieldKind identifies a focusable form field.
type fieldKind int

const (
	fieldNoForm fieldKind = iota
	fieldTanggal
	fieldSource
	fieldDest
	fieldRowProduct
	fieldRowQty
	fieldDibuat
	fieldDisetujui
	fieldDiterima
	fieldAttachment
)

// fieldRef addresses one focusable field; row is only meaningful for the
// row columns.
type fieldRef struct {
	kind fieldKind
	row  int
}

type statusKind int

const (
	statusNone statusKind = iota
	statusInfo
	statusPending
	statusSuccess
	statusError
)

// Model holds the main TUI state.
type Model struct {
	client   *api.Client
	cache    *catalog.Cache
	drafts   *storage.DraftStore
	renderer preview.Renderer
	pipeline *preview.Pipeline
	rows     *form.RowList

	sourceEngine *suggest.Engine[model.Outlet]
	destEngine   *suggest.Engine[model.Outlet]

	dibuatTags    *tags.Collector
	disetujuiTags *tags.Collector
	diterimaTags  *tags.Collector

	noForm     textinput.Model
	tanggal    textinput.Model
	attachment textinput.Model
	source     components.Combobox[model.Outlet]
	dest       components.Combobox[model.Outlet]
	rowEditor  components.RowListEditor
	dibuat     components.TagField
	disetujui  components.TagField
	diterima   components.TagField
	modal      components.PreviewModal

	assembler form.Assembler
	config    Config
	keymap    KeyMap
	theme     themes.Theme

	sourceID   string
	sourceName string
	destID     string
	destName   string
	draftID    string
	status     string
	statusKind statusKind

	fields []fieldRef
	focus  int

	width          int
	height         int
	state          State
	catalogLoading bool
	submitting     bool
	quitting       bool
}

// newModel creates a new model with the given configuration.
func newModel(cfg Config) Model {
	m := Model{
		client:   cfg.Client,
		drafts:   cfg.Drafts,
		renderer: cfg.Renderer,
		pipeline: preview.NewPipeline(),
		rows:     form.NewRowList(),

		dibuatTags:    tags.NewCollector(),
		disetujuiTags: tags.NewCollector(),
		diterimaTags:  tags.NewCollector(),

		assembler: form.NewAssembler(cfg.MaxUploadMB),
		config:    cfg,
		keymap:    DefaultKeyMap(),
		theme:     cfg.Theme,
		width:     cfg.Width,
		height:    cfg.Height,
		state:     StateLoading,
	}

	m.cache = catalog.New(cfg.Client)

	m.noForm = textinput.New()
	m.noForm.Prompt = ""
	m.noForm.Placeholder = "cth: BA-001/VIII/2026"
	m.noForm.CharLimit = 64

	m.tanggal = textinput.New()
	m.tanggal.Prompt = ""
	m.tanggal.Placeholder = "YYYY-MM-DD"
	m.tanggal.CharLimit = 10
	m.tanggal.SetValue(time.Now().Format("2006-01-02"))

	m.sourceEngine = suggest.New(suggest.Config[model.Outlet]{
		Fields:          model.Outlet.SearchFields,
		Limit:           50,
		MatchAllOnEmpty: true,
	})
	m.destEngine = suggest.New(suggest.Config[model.Outlet]{
		Fields:          model.Outlet.SearchFields,
		Limit:           50,
		MatchAllOnEmpty: true,
	})

	outletLabel := func(o model.Outlet) string { return o.Name }
	m.source = components.NewCombobox(components.ComboboxConfig[model.Outlet]{
		Engine:      m.sourceEngine,
		Owner:       "outlet-pengirim",
		Placeholder: "Pilih outlet pengirim",
		Theme:       cfg.Theme,
		Label:       outletLabel,
		Selected:    func(o model.Outlet) tea.Msg { return outletChosenMsg{outlet: o} },
	})
	m.dest = components.NewCombobox(components.ComboboxConfig[model.Outlet]{
		Engine:      m.destEngine,
		Owner:       "outlet-penerima",
		Placeholder: "Pilih outlet penerima",
		Theme:       cfg.Theme,
		Label:       outletLabel,
		Selected:    func(o model.Outlet) tea.Msg { return outletChosenMsg{outlet: o, dest: true} },
	})

	m.rowEditor = components.NewRowListEditor(m.rows, cfg.Theme)

	m.dibuat = components.NewTagField("Dibuat oleh", "nama, pisahkan dengan koma", m.dibuatTags, cfg.Theme)
	m.disetujui = components.NewTagField("Disetujui oleh", "opsional", m.disetujuiTags, cfg.Theme)
	m.diterima = components.NewTagField("Diterima oleh", "nama, pisahkan dengan koma", m.diterimaTags, cfg.Theme)

	m.attachment = textinput.New()
	m.attachment.Prompt = ""
	m.attachment.Placeholder = "path file lampiran (opsional)"

	m.modal = components.NewPreviewModal(cfg.Theme)

	if cfg.Resume != nil {
		m.restoreDraft(*cfg.Resume)
	}

	m.rebuildFields()
	return m
}

// restoreDraft fills the form from a saved draft. The product catalog is not
// re-fetched here: picking the source outlet again reloads it, which clears
// the rows like any other catalog swap.
func (m *Model) restoreDraft(d model.Draft) {
	m.draftID = d.ID
	m.noForm.SetValue(d.NoForm)
	if d.Tanggal != "" {
		m.tanggal.SetValue(d.Tanggal)
	}
	m.sourceID = d.OutletPengirimID
	m.sourceName = d.OutletPengirim
	m.source = m.source.SetValue(d.OutletPengirim)
	m.destID = d.OutletPenerimaID
	m.destName = d.OutletPenerima
	m.dest = m.dest.SetValue(d.OutletPenerima)

	if d.DibuatOleh != "" {
		m.dibuatTags.Add(d.DibuatOleh)
	}
	if d.DisetujuiOleh != "" {
		m.disetujuiTags.Add(d.DisetujuiOleh)
	}
	if d.DiterimaOleh != "" {
		m.diterimaTags.Add(d.DiterimaOleh)
	}

	items, err := model.UnmarshalItems(d.ItemsJSON)
	if err != nil {
		common.LogError(err, "failed to restore draft items", common.Fields{"draft_id": d.ID})
	}
	for i, it := range items {
		var row *form.Row
		if i < m.rows.Len() {
			row = m.rows.Rows()[i]
		} else {
			row = m.rows.CreateRow()
		}
		row.ProductName = it.ProductName
		row.KodeItem = it.KodeItem
		row.Uom = it.Uom
		row.Harga = it.Harga
		if it.Qty != 0 {
			row.Quantity = strconv.FormatFloat(it.Qty, 'f', -1, 64)
		}
	}
	m.rowEditor = components.NewRowListEditor(m.rows, m.theme).Restore()

	m.attachment.SetValue(d.AttachmentPath)
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.loadOutlets())
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKeys(msg)

	case components.CloseTimerMsg:
		m.source, _ = m.source.Update(msg)
		m.dest, _ = m.dest.Update(msg)
		m.rowEditor = m.rowEditor.ResolveTimer(msg)
		return m, nil

	case outletsLoadedMsg:
		m.state = StateForm
		if msg.err != nil {
			m.setStatus(statusError, "Gagal memuat daftar outlet: "+msg.err.Error())
		} else {
			m.sourceEngine.SetCandidates(msg.outlets)
			m.destEngine.SetCandidates(msg.outlets)
			m.setStatus(statusInfo, fmt.Sprintf("%d outlet dimuat", len(msg.outlets)))
		}
		m.rebuildFields()
		return m.setFocus(0)

	case outletChosenMsg:
		if msg.dest {
			m.destID = msg.outlet.ID
			m.destName = msg.outlet.Name
			return m, nil
		}
		m.sourceID = msg.outlet.ID
		m.sourceName = msg.outlet.Name
		return m, m.loadCatalog(msg.outlet.ID)

	case catalogResolvedMsg:
		products, applied := m.cache.Commit(msg.res)
		if !applied {
			return m, nil
		}
		m.catalogLoading = false
		if msg.res.Err != nil {
			// The old product context is gone either way; stale row
			// selections must not survive a failed swap.
			m.rows.ApplyCatalog(nil)
			m.rowEditor = m.rowEditor.SyncCatalog()
			m.setStatus(statusError, "Gagal memuat daftar item: "+msg.res.Err.Error())
			return m, nil
		}
		m.rows.ApplyCatalog(products)
		m.rowEditor = m.rowEditor.SyncCatalog()
		common.LogDebug("catalog loaded", common.Fields{"outlet_id": msg.res.Key, "items": len(products)})
		m.setStatus(statusInfo, fmt.Sprintf("%d item dimuat untuk %s", len(products), m.sourceName))
		return m, nil

	case components.ProductChosenMsg:
		// The engine callback already copied the product into the row.
		if idx := m.rowEditor.IndexOf(msg.Handle); idx >= 0 {
			return m.focusField(fieldRef{kind: fieldRowQty, row: idx})
		}
		return m, nil

	case previewArtifactMsg:
		return m.handlePreviewArtifact(msg)

	case previewRasterMsg:
		if m.state != StatePreview {
			return m, nil
		}
		if msg.err != nil {
			m.pipeline.Fail("Gagal merender halaman pertama: " + msg.err.Error())
			return m, nil
		}
		m.pipeline.AcceptRaster(msg.img)
		m.modal = m.modal.SetRaster(preview.RasterCells(msg.img, m.previewCols()))
		return m, nil

	case submitDoneMsg:
		return m.handleSubmitDone(msg)

	case draftSavedMsg:
		if msg.quit {
			m.quitting = true
			return m, tea.Quit
		}
		if msg.err != nil {
			m.setStatus(statusError, "Gagal menyimpan draf: "+msg.err.Error())
		} else {
			m.draftID = msg.id
			m.setStatus(statusSuccess, "Draf disimpan")
		}
		return m, nil

	case draftClearedMsg:
		if msg.err != nil && !errors.Is(msg.err, storage.ErrDraftNotFound) {
			common.LogError(msg.err, "failed to clear submitted draft", nil)
		}
		return m, nil
	}

	// Everything else (cursor blinks, spinner ticks) flows to the active
	// widgets.
	if m.state == StatePreview {
		var cmd tea.Cmd
		m.modal, cmd = m.modal.Update(msg)
		return m, cmd
	}
	return m.updateFocused(msg)
}

func (m Model) handlePreviewArtifact(msg previewArtifactMsg) (tea.Model, tea.Cmd) {
	if m.state != StatePreview {
		// The modal was dismissed while the request was in flight; the
		// artifact has no surface left to land on.
		return m, nil
	}
	if msg.err != nil {
		if errors.Is(msg.err, api.ErrAuthExpired) {
			m.pipeline.Close()
			m.state = StateAuthExpired
			return m, nil
		}
		m.pipeline.Fail(msg.err.Error())
		return m, nil
	}

	artifact, err := preview.DecodeArtifact(msg.resp.PDFBase64, msg.resp.PDFFileName, msg.noForm)
	if err != nil {
		m.pipeline.Fail(err.Error())
		return m, nil
	}
	handle := m.pipeline.AcceptArtifact(artifact)
	return m, m.rasterize(handle)
}

func (m Model) handleSubmitDone(msg submitDoneMsg) (tea.Model, tea.Cmd) {
	m.submitting = false
	if msg.err != nil {
		if errors.Is(msg.err, api.ErrAuthExpired) {
			m.state = StateAuthExpired
			return m, nil
		}
		m.setStatus(statusError, msg.err.Error())
		return m, nil
	}

	m.setStatus(statusSuccess, "Form mutasi berhasil dikirim. Kosongkan form? (y/n)")
	m.state = StateConfirmReset
	if m.drafts != nil && m.draftID != "" {
		id := m.draftID
		m.draftID = ""
		return m, m.clearDraft(id)
	}
	return m, nil
}

// handleKeys routes key presses per state.
func (m Model) handleKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.state {
	case StateLoading:
		if key.Matches(msg, m.keymap.Quit) {
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil

	case StateAuthExpired:
		m.quitting = true
		return m, tea.Quit

	case StateConfirmReset:
		switch msg.String() {
		case "y", "Y":
			return m.resetForm()
		case "n", "N", "esc", "enter":
			m.state = StateForm
			return m, nil
		}
		if key.Matches(msg, m.keymap.Quit) {
			return m.requestQuit()
		}
		return m, nil

	case StatePreview:
		switch {
		case msg.String() == "esc":
			m.pipeline.Close()
			m.state = StateForm
			return m, nil
		case msg.String() == "s":
			return m.savePDF()
		case key.Matches(msg, m.keymap.Quit):
			m.pipeline.Close()
			return m.requestQuit()
		}
		return m, nil
	}

	// StateForm
	switch {
	case key.Matches(msg, m.keymap.Quit):
		return m.requestQuit()
	case key.Matches(msg, m.keymap.ClearScreen):
		return m, tea.ClearScreen
	case key.Matches(msg, m.keymap.Next):
		return m.moveFocus(1)
	case key.Matches(msg, m.keymap.Prev):
		return m.moveFocus(-1)
	case key.Matches(msg, m.keymap.AddRow):
		m.rowEditor = m.rowEditor.AddRow()
		m.rebuildFields()
		return m.focusField(fieldRef{kind: fieldRowProduct, row: m.rowEditor.Len() - 1})
	case key.Matches(msg, m.keymap.RemoveRow):
		return m.removeFocusedRow()
	case key.Matches(msg, m.keymap.Preview):
		return m.openPreview()
	case key.Matches(msg, m.keymap.Submit):
		return m.startSubmit()
	case key.Matches(msg, m.keymap.Reset):
		m.state = StateConfirmReset
		m.setStatus(statusInfo, "Kosongkan seluruh isian form? (y/n)")
		return m, nil
	case key.Matches(msg, m.keymap.SaveDraft):
		if m.drafts == nil {
			m.setStatus(statusError, "Penyimpanan draf tidak aktif")
			return m, nil
		}
		return m, m.saveDraft(false)
	}

	return m.updateFocused(msg)
}

func (m Model) removeFocusedRow() (tea.Model, tea.Cmd) {
	ref := m.fields[m.focus]
	if ref.kind != fieldRowProduct && ref.kind != fieldRowQty {
		return m, nil
	}
	m.rowEditor = m.rowEditor.RemoveRow(m.rowEditor.HandleAt(ref.row))
	m.rebuildFields()
	row := ref.row
	if row >= m.rowEditor.Len() {
		row = m.rowEditor.Len() - 1
	}
	return m.focusField(fieldRef{kind: fieldRowProduct, row: row})
}

func (m Model) openPreview() (tea.Model, tea.Cmd) {
	payload, errs := m.assemble()
	if len(errs) > 0 {
		m.setStatus(statusError, form.AggregateMessage(errs))
		return m, nil
	}
	if err := m.pipeline.Trigger(true); err != nil {
		m.setStatus(statusError, err.Error())
		return m, nil
	}
	m.state = StatePreview
	m.modal = m.modal.SetRaster("")
	return m, tea.Batch(m.modal.Tick(), m.requestPreview(payload))
}

func (m Model) startSubmit() (tea.Model, tea.Cmd) {
	if m.submitting {
		return m, nil
	}
	payload, errs := m.assemble()
	if len(errs) > 0 {
		m.setStatus(statusError, form.AggregateMessage(errs))
		return m, nil
	}
	m.submitting = true
	m.setStatus(statusPending, "Mengirim form mutasi...")
	return m, m.submitForm(payload)
}

func (m Model) savePDF() (tea.Model, tea.Cmd) {
	h := m.pipeline.Handle()
	if h == nil {
		return m, nil
	}
	if err := h.SaveTo(h.FileName()); err != nil {
		m.setStatus(statusError, "Gagal menyimpan PDF: "+err.Error())
	} else {
		m.setStatus(statusSuccess, "PDF disimpan ke "+h.FileName())
	}
	return m, nil
}

func (m Model) resetForm() (tea.Model, tea.Cmd) {
	m.noForm.SetValue("")
	m.tanggal.SetValue(time.Now().Format("2006-01-02"))
	m.source = m.source.SetValue("")
	m.sourceID = ""
	m.sourceName = ""
	m.dest = m.dest.SetValue("")
	m.destID = ""
	m.destName = ""
	m.dibuatTags.Reset()
	m.disetujuiTags.Reset()
	m.diterimaTags.Reset()
	m.dibuat.Input.SetValue("")
	m.disetujui.Input.SetValue("")
	m.diterima.Input.SetValue("")
	m.attachment.SetValue("")
	m.rowEditor = m.rowEditor.Reset()
	cmd := m.loadCatalog("")

	m.state = StateForm
	m.setStatus(statusInfo, "Form dikosongkan")
	m.rebuildFields()
	mm, focusCmd := m.setFocus(0)
	return mm, tea.Batch(cmd, focusCmd)
}

func (m Model) requestQuit() (tea.Model, tea.Cmd) {
	if m.drafts != nil && !m.formEmpty() {
		return m, m.saveDraft(true)
	}
	m.quitting = true
	return m, tea.Quit
}

func (m Model) formEmpty() bool {
	if strings.TrimSpace(m.noForm.Value()) != "" || m.sourceID != "" || m.destID != "" {
		return false
	}
	if m.dibuatTags.Len() > 0 || m.disetujuiTags.Len() > 0 || m.diterimaTags.Len() > 0 {
		return false
	}
	if strings.TrimSpace(m.attachment.Value()) != "" {
		return false
	}
	for _, it := range m.rows.Serialize() {
		if !it.IsEmpty() {
			return false
		}
	}
	return true
}

// loadCatalog issues a catalog load for the given outlet and applies any
// synchronous resolution.
func (m *Model) loadCatalog(key string) tea.Cmd {
	t := m.cache.Load(key)
	switch t.State {
	case catalog.TicketCleared:
		m.catalogLoading = false
		m.rows.ApplyCatalog(nil)
		m.rowEditor = m.rowEditor.SyncCatalog()
		m.setStatus(statusInfo, "Pilih outlet pengirim untuk memuat daftar item")
		return nil
	case catalog.TicketCached:
		m.catalogLoading = false
		m.rows.ApplyCatalog(t.Products)
		m.rowEditor = m.rowEditor.SyncCatalog()
		m.setStatus(statusInfo, fmt.Sprintf("%d item dimuat untuk %s", len(t.Products), m.sourceName))
		return nil
	case catalog.TicketShared:
		m.catalogLoading = true
		m.setStatus(statusPending, "Memuat daftar item...")
		return nil
	default: // catalog.TicketFetch
		m.catalogLoading = true
		m.setStatus(statusPending, "Memuat daftar item...")
		return m.fetchCatalog(t)
	}
}

// assemble validates and serializes the form, committing pending tag text
// first.
func (m *Model) assemble() (form.Payload, []form.ValidationError) {
	m.dibuat = m.dibuat.Commit()
	m.disetujui = m.disetujui.Commit()
	m.diterima = m.diterima.Commit()

	in := form.Input{
		NoForm:         m.noForm.Value(),
		Tanggal:        m.tanggal.Value(),
		SourceID:       m.sourceID,
		SourceName:     m.sourceName,
		DestID:         m.destID,
		DestName:       m.destName,
		Dibuat:         m.dibuatTags,
		Disetujui:      m.disetujuiTags,
		Diterima:       m.diterimaTags,
		Rows:           m.rows,
		AttachmentPath: strings.TrimSpace(m.attachment.Value()),
	}
	if in.AttachmentPath != "" {
		fi, err := os.Stat(in.AttachmentPath)
		if err != nil {
			return form.Payload{}, []form.ValidationError{{
				Category: form.CategoryAttachment,
				Message:  "File lampiran tidak ditemukan: " + in.AttachmentPath,
			}}
		}
		in.AttachmentSize = fi.Size()
	}
	return m.assembler.Assemble(in)
}

func (m *Model) setStatus(kind statusKind, text string) {
	m.statusKind = kind
	m.status = text
}

// rebuildFields recomputes the focus order after any structural change.
func (m *Model) rebuildFields() {
	fields := []fieldRef{
		{kind: fieldNoForm},
		{kind: fieldTanggal},
		{kind: fieldSource},
		{kind: fieldDest},
	}
	for i := 0; i < m.rowEditor.Len(); i++ {
		fields = append(fields,
			fieldRef{kind: fieldRowProduct, row: i},
			fieldRef{kind: fieldRowQty, row: i},
		)
	}
	fields = append(fields,
		fieldRef{kind: fieldDibuat},
		fieldRef{kind: fieldDisetujui},
		fieldRef{kind: fieldDiterima},
		fieldRef{kind: fieldAttachment},
	)
	m.fields = fields
	if m.focus >= len(fields) {
		m.focus = len(fields) - 1
	}
}

func (m Model) moveFocus(delta int) (tea.Model, tea.Cmd) {
	n := len(m.fields)
	if n == 0 {
		return m, nil
	}
	return m.setFocus(((m.focus+delta)%n + n) % n)
}

func (m Model) focusField(ref fieldRef) (tea.Model, tea.Cmd) {
	for i, f := range m.fields {
		if f == ref {
			return m.setFocus(i)
		}
	}
	return m, nil
}

func (m Model) setFocus(idx int) (tea.Model, tea.Cmd) {
	if idx < 0 || idx >= len(m.fields) {
		return m, nil
	}
	var cmds []tea.Cmd
	if m.focus < len(m.fields) {
		cmds = append(cmds, m.applyBlur(m.fields[m.focus]))
	}
	m.focus = idx
	cmds = append(cmds, m.applyFocus(m.fields[idx]))
	return m, tea.Batch(cmds...)
}

func (m *Model) applyBlur(ref fieldRef) tea.Cmd {
	switch ref.kind {
	case fieldNoForm:
		m.noForm.Blur()
	case fieldTanggal:
		m.tanggal.Blur()
	case fieldSource:
		var cmd tea.Cmd
		m.source, cmd = m.source.Blur()
		// Editing the text after a selection invalidates it; a cleared
		// selection also clears the active catalog.
		if m.sourceID != "" && strings.TrimSpace(m.source.Value()) != m.sourceName {
			m.sourceID = ""
			m.sourceName = ""
			return tea.Batch(cmd, m.loadCatalog(""))
		}
		return cmd
	case fieldDest:
		var cmd tea.Cmd
		m.dest, cmd = m.dest.Blur()
		if m.destID != "" && strings.TrimSpace(m.dest.Value()) != m.destName {
			m.destID = ""
			m.destName = ""
		}
		return cmd
	case fieldRowProduct:
		var cmd tea.Cmd
		m.rowEditor, cmd = m.rowEditor.Blur(ref.row, components.ColumnProduct)
		return cmd
	case fieldRowQty:
		var cmd tea.Cmd
		m.rowEditor, cmd = m.rowEditor.Blur(ref.row, components.ColumnQty)
		return cmd
	case fieldDibuat:
		m.dibuat = m.dibuat.Blur()
	case fieldDisetujui:
		m.disetujui = m.disetujui.Blur()
	case fieldDiterima:
		m.diterima = m.diterima.Blur()
	case fieldAttachment:
		m.attachment.Blur()
	}
	return nil
}

func (m *Model) applyFocus(ref fieldRef) tea.Cmd {
	switch ref.kind {
	case fieldNoForm:
		return m.noForm.Focus()
	case fieldTanggal:
		return m.tanggal.Focus()
	case fieldSource:
		var cmd tea.Cmd
		m.source, cmd = m.source.Focus()
		return cmd
	case fieldDest:
		var cmd tea.Cmd
		m.dest, cmd = m.dest.Focus()
		return cmd
	case fieldRowProduct:
		var cmd tea.Cmd
		m.rowEditor, cmd = m.rowEditor.Focus(ref.row, components.ColumnProduct)
		return cmd
	case fieldRowQty:
		var cmd tea.Cmd
		m.rowEditor, cmd = m.rowEditor.Focus(ref.row, components.ColumnQty)
		return cmd
	case fieldDibuat:
		var cmd tea.Cmd
		m.dibuat, cmd = m.dibuat.Focus()
		return cmd
	case fieldDisetujui:
		var cmd tea.Cmd
		m.disetujui, cmd = m.disetujui.Focus()
		return cmd
	case fieldDiterima:
		var cmd tea.Cmd
		m.diterima, cmd = m.diterima.Focus()
		return cmd
	case fieldAttachment:
		return m.attachment.Focus()
	}
	return nil
}

func (m Model) updateFocused(msg tea.Msg) (tea.Model, tea.Cmd) {
	if len(m.fields) == 0 {
		return m, nil
	}
	ref := m.fields[m.focus]
	var cmd tea.Cmd
	switch ref.kind {
	case fieldNoForm:
		m.noForm, cmd = m.noForm.Update(msg)
	case fieldTanggal:
		m.tanggal, cmd = m.tanggal.Update(msg)
	case fieldSource:
		m.source, cmd = m.source.Update(msg)
	case fieldDest:
		m.dest, cmd = m.dest.Update(msg)
	case fieldRowProduct:
		m.rowEditor, cmd = m.rowEditor.Update(msg, ref.row, components.ColumnProduct)
	case fieldRowQty:
		m.rowEditor, cmd = m.rowEditor.Update(msg, ref.row, components.ColumnQty)
	case fieldDibuat:
		m.dibuat, cmd = m.dibuat.Update(msg)
	case fieldDisetujui:
		m.disetujui, cmd = m.disetujui.Update(msg)
	case fieldDiterima:
		m.diterima, cmd = m.diterima.Update(msg)
	case fieldAttachment:
		m.attachment, cmd = m.attachment.Update(msg)
	}
	return m, cmd
}
