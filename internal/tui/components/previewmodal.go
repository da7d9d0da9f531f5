package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hwgcc/mutasi-flow/internal/preview"
	"github.com/hwgcc/mutasi-flow/internal/tui/themes"
)

// PreviewModal renders the PDF preview pipeline: a spinner while the
// document is requested and rendered, the rasterized first page when ready,
// and the failure message otherwise.
type PreviewModal struct {
	spinner spinner.Model
	theme   themes.Theme
	raster  string
}

// NewPreviewModal creates a modal with its spinner styled from theme.
func NewPreviewModal(theme themes.Theme) PreviewModal {
	sp := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(theme.Primary)),
	)
	return PreviewModal{spinner: sp, theme: theme}
}

// Tick starts the spinner.
func (m PreviewModal) Tick() tea.Cmd { return m.spinner.Tick }

// SetRaster installs the pre-rendered raster text for the Ready state.
func (m PreviewModal) SetRaster(raster string) PreviewModal {
	m.raster = raster
	return m
}

// Update advances the spinner.
func (m PreviewModal) Update(msg tea.Msg) (PreviewModal, tea.Cmd) {
	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)
	return m, cmd
}

// View renders the modal for the pipeline's current state.
func (m PreviewModal) View(p *preview.Pipeline, width int) string {
	var b strings.Builder
	b.WriteString(m.theme.Title.Render("Pratinjau PDF"))
	b.WriteString("\n")

	switch p.State() {
	case preview.StateRequesting, preview.StateRendering:
		b.WriteString(m.spinner.View())
		b.WriteString(" ")
		b.WriteString(m.theme.StatusPending.Render(p.Status()))

	case preview.StateReady:
		b.WriteString(m.raster)
		if h := p.Handle(); h != nil {
			b.WriteString("\n")
			b.WriteString(m.theme.Subtitle.Render(h.FileName()))
		}

	case preview.StateFailed:
		b.WriteString(m.theme.StatusError.Render(p.Status()))

	default:
		return ""
	}

	b.WriteString("\n\n")
	b.WriteString(m.theme.StatusPending.Render("s: simpan PDF   esc: tutup"))

	return m.theme.RoundedBox.Width(width).Render(b.String())
}
