package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/hwgcc/mutasi-flow/internal/tags"
	"github.com/hwgcc/mutasi-flow/internal/tui/themes"
)

// TagField is a chip-style input over a tags.Collector: committed names
// render as chips before a free-text input for the next one.
type TagField struct {
	collector *tags.Collector
	Input     textinput.Model
	label     string
	theme     themes.Theme
}

// NewTagField creates a tag field bound to collector.
func NewTagField(label, placeholder string, collector *tags.Collector, theme themes.Theme) TagField {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = ""
	return TagField{
		collector: collector,
		Input:     ti,
		label:     label,
		theme:     theme,
	}
}

// Label returns the field's display label.
func (f TagField) Label() string { return f.label }

// Focused reports whether the input has focus.
func (f TagField) Focused() bool { return f.Input.Focused() }

// Focus gives the input focus.
func (f TagField) Focus() (TagField, tea.Cmd) {
	cmd := f.Input.Focus()
	return f, cmd
}

// Blur drops focus, committing any pending text first so nothing typed is
// silently lost.
func (f TagField) Blur() TagField {
	f = f.Commit()
	f.Input.Blur()
	return f
}

// Commit adds the pending input text to the collector and clears the input.
// The collector handles comma splitting, trimming, and dedup.
func (f TagField) Commit() TagField {
	if strings.TrimSpace(f.Input.Value()) != "" {
		f.collector.Add(f.Input.Value())
		f.Input.SetValue("")
	}
	return f
}

// Update handles key messages. Enter and comma commit the pending text;
// backspace on an empty input removes the most recent chip.
func (f TagField) Update(msg tea.Msg) (TagField, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && f.Input.Focused() {
		switch key.String() {
		case "enter", ",":
			return f.Commit(), nil
		case "backspace":
			if f.Input.Value() == "" {
				f.collector.Pop()
				return f, nil
			}
		}
	}

	var cmd tea.Cmd
	f.Input, cmd = f.Input.Update(msg)
	return f, cmd
}

// View renders the chips followed by the input.
func (f TagField) View() string {
	var parts []string
	for _, tag := range f.collector.Tags() {
		parts = append(parts, f.theme.Tag.Render(tag))
	}
	parts = append(parts, f.Input.View())
	return strings.Join(parts, " ")
}
