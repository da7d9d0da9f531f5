package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"
)

// View renders the UI.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	switch m.state {
	case StateLoading:
		return m.theme.Box.Render(m.theme.StatusPending.Render("Memuat daftar outlet..."))
	case StateAuthExpired:
		return m.renderAuthExpired()
	case StatePreview:
		return m.renderPreview()
	case StateConfirmReset:
		return m.renderConfirmReset()
	default:
		return m.renderForm()
	}
}

func (m Model) renderForm() string {
	var b strings.Builder

	b.WriteString(m.theme.Title.Render("Form Berita Acara Mutasi"))
	b.WriteString("\n")

	b.WriteString(m.fieldLabel("No Form", fieldRef{kind: fieldNoForm}))
	b.WriteString(m.noForm.View())
	b.WriteString("\n")

	b.WriteString(m.fieldLabel("Tanggal Kirim", fieldRef{kind: fieldTanggal}))
	b.WriteString(m.tanggal.View())
	b.WriteString("\n")

	b.WriteString(m.fieldLabel("Outlet Pengirim", fieldRef{kind: fieldSource}))
	b.WriteString(m.source.View(m.width - 20))
	b.WriteString("\n")

	b.WriteString(m.fieldLabel("Outlet Penerima", fieldRef{kind: fieldDest}))
	b.WriteString(m.dest.View(m.width - 20))
	b.WriteString("\n\n")

	b.WriteString(m.theme.Subtitle.Render("Detail Item"))
	b.WriteString("\n")
	if m.catalogLoading {
		b.WriteString(m.theme.StatusPending.Render("Memuat daftar item..."))
		b.WriteString("\n")
	}
	b.WriteString(m.rowEditor.View(m.width - 4))
	b.WriteString("\n\n")

	b.WriteString(m.fieldLabel(m.dibuat.Label(), fieldRef{kind: fieldDibuat}))
	b.WriteString(m.dibuat.View())
	b.WriteString("\n")

	b.WriteString(m.fieldLabel(m.disetujui.Label(), fieldRef{kind: fieldDisetujui}))
	b.WriteString(m.disetujui.View())
	b.WriteString("\n")

	b.WriteString(m.fieldLabel(m.diterima.Label(), fieldRef{kind: fieldDiterima}))
	b.WriteString(m.diterima.View())
	b.WriteString("\n")

	b.WriteString(m.fieldLabel("Lampiran", fieldRef{kind: fieldAttachment}))
	b.WriteString(m.attachment.View())
	b.WriteString("\n\n")

	if line := m.statusLine(); line != "" {
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString(m.helpLine())
	return m.theme.Box.Render(b.String())
}

func (m Model) renderPreview() string {
	var b strings.Builder
	b.WriteString(m.modal.View(m.pipeline, m.previewCols()+4))
	if line := m.statusLine(); line != "" {
		b.WriteString("\n")
		b.WriteString(line)
	}
	return m.theme.Box.Render(b.String())
}

func (m Model) renderConfirmReset() string {
	var b strings.Builder
	if line := m.statusLine(); line != "" {
		b.WriteString(line)
		b.WriteString("\n\n")
	}
	b.WriteString(m.theme.Bold.Render("Kosongkan seluruh isian form?"))
	b.WriteString("\n")
	b.WriteString(m.theme.StatusPending.Render("y: ya   n: tidak"))
	return m.theme.Box.Render(m.theme.RoundedBox.Render(b.String()))
}

func (m Model) renderAuthExpired() string {
	var b strings.Builder
	b.WriteString(m.theme.StatusError.Render("Sesi berakhir, silakan login ulang."))
	b.WriteString("\n\n")
	b.WriteString(m.theme.Normal.Render("Jalankan '" + m.config.LoginHint + "' lalu buka form kembali."))
	b.WriteString("\n")
	b.WriteString(m.theme.StatusPending.Render("tekan tombol apa saja untuk keluar"))
	return m.theme.Box.Render(m.theme.RoundedBox.Render(b.String()))
}

// fieldLabel renders a field label, highlighted when the field has focus.
func (m Model) fieldLabel(label string, ref fieldRef) string {
	style := m.theme.Label
	marker := "  "
	if len(m.fields) > 0 && m.fields[m.focus] == ref {
		style = lipgloss.NewStyle().Foreground(m.theme.Primary).Bold(true)
		marker = "> "
	}
	return style.Render(marker+label+":") + " "
}

func (m Model) statusLine() string {
	if m.status == "" {
		return ""
	}
	switch m.statusKind {
	case statusError:
		return m.theme.StatusError.Render(m.status)
	case statusSuccess:
		return m.theme.StatusSuccess.Render(m.status)
	case statusPending:
		return m.theme.StatusPending.Render(m.status)
	default:
		return m.theme.StatusInfo.Render(m.status)
	}
}

func (m Model) helpLine() string {
	h := help.New()
	h.Width = m.width
	return h.View(m.keymap)
}
