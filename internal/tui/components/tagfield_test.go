package components

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"

	"github.com/hwgcc/mutasi-flow/internal/tags"
	"github.com/hwgcc/mutasi-flow/internal/tui/themes"
)

func newTestTagField() (TagField, *tags.Collector) {
	collector := tags.NewCollector()
	f := NewTagField("Dibuat oleh", "nama", collector, themes.Default)
	f, _ = f.Focus()
	return f, collector
}

func typeTag(f TagField, s string) TagField {
	for _, r := range s {
		f, _ = f.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return f
}

func TestTagField_EnterCommitsTag(t *testing.T) {
	f, collector := newTestTagField()

	f = typeTag(f, "Budi")
	f, _ = f.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, []string{"Budi"}, collector.Tags())
	assert.Empty(t, f.Input.Value())
}

func TestTagField_CommaSeparatedInputSplits(t *testing.T) {
	f, collector := newTestTagField()

	f = typeTag(f, "Budi, Sari, budi")
	f, _ = f.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, []string{"Budi", "Sari"}, collector.Tags())
	assert.Empty(t, f.Input.Value())
}

func TestTagField_CommaCommitsImmediately(t *testing.T) {
	f, collector := newTestTagField()

	f = typeTag(f, "Budi,")

	assert.Equal(t, []string{"Budi"}, collector.Tags())
	assert.Empty(t, f.Input.Value())

	// With nothing pending, backspace right after the comma pops the chip
	// instead of editing text.
	f, _ = f.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	assert.Empty(t, collector.Tags())
}

func TestTagField_BackspaceOnEmptyPopsLastTag(t *testing.T) {
	f, collector := newTestTagField()
	collector.Add("Budi, Sari")

	f, _ = f.Update(tea.KeyMsg{Type: tea.KeyBackspace})

	assert.Equal(t, []string{"Budi"}, collector.Tags())
}

func TestTagField_BackspaceWithTextEditsText(t *testing.T) {
	f, collector := newTestTagField()
	collector.Add("Budi")
	f = typeTag(f, "Sa")

	f, _ = f.Update(tea.KeyMsg{Type: tea.KeyBackspace})

	assert.Equal(t, []string{"Budi"}, collector.Tags())
	assert.Equal(t, "S", f.Input.Value())
}

func TestTagField_BlurCommitsPendingText(t *testing.T) {
	f, collector := newTestTagField()
	f = typeTag(f, "Sari")

	f = f.Blur()

	assert.Equal(t, []string{"Sari"}, collector.Tags())
	assert.Empty(t, f.Input.Value())
	assert.False(t, f.Focused())
}

func TestTagField_ViewShowsChips(t *testing.T) {
	f, collector := newTestTagField()
	collector.Add("Budi, Sari")

	view := f.View()
	assert.Contains(t, view, "Budi")
	assert.Contains(t, view, "Sari")
}
