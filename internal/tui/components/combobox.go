// Package components holds the reusable form widgets: the typeahead
// combobox, the line-item row editor, the tag chip field, and the preview
// modal.
package components

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/hwgcc/mutasi-flow/internal/suggest"
	"github.com/hwgcc/mutasi-flow/internal/tui/themes"
)

// BlurGrace is how long a combobox keeps its suggestion list open after
// losing focus, so a selection landing at the same instant is not preempted.
const BlurGrace = 120 * time.Millisecond

// CloseTimerMsg fires when a combobox's blur grace period elapses. Tokens
// that were superseded in the meantime are ignored by the engine.
type CloseTimerMsg struct {
	Owner string
	Token int
}

// Combobox is a text input with a typeahead suggestion list driven by a
// suggest.Engine. The engine owns the matching and selection state; the
// combobox owns only the text input and the presentation.
type Combobox[E any] struct {
	engine   *suggest.Engine[E]
	selected func(E) tea.Msg
	label    func(E) string
	fill     func(E) string
	Input    textinput.Model
	owner    string
	theme    themes.Theme
	maxShown int
}

// ComboboxConfig parameterizes a combobox instance.
type ComboboxConfig[E any] struct {
	// Engine backs the suggestion list. Required.
	Engine *suggest.Engine[E]
	// Label renders a candidate as one suggestion line.
	Label func(E) string
	// Fill produces the input text after a selection. Defaults to Label.
	Fill func(E) string
	// Selected builds the message emitted after a selection, nil for none.
	Selected func(E) tea.Msg
	// Owner disambiguates timer messages between combobox instances.
	Owner       string
	Placeholder string
	Theme       themes.Theme
}

// NewCombobox creates a combobox from its configuration.
func NewCombobox[E any](cfg ComboboxConfig[E]) Combobox[E] {
	ti := textinput.New()
	ti.Placeholder = cfg.Placeholder
	ti.Prompt = ""
	fill := cfg.Fill
	if fill == nil {
		fill = cfg.Label
	}
	return Combobox[E]{
		engine:   cfg.Engine,
		selected: cfg.Selected,
		label:    cfg.Label,
		fill:     fill,
		Input:    ti,
		owner:    cfg.Owner,
		theme:    cfg.Theme,
		maxShown: 8,
	}
}

// Owner returns the combobox's timer identity.
func (c Combobox[E]) Owner() string { return c.owner }

// Value returns the current input text.
func (c Combobox[E]) Value() string { return c.Input.Value() }

// SetValue replaces the input text without opening the suggestion list.
func (c Combobox[E]) SetValue(v string) Combobox[E] {
	c.Input.SetValue(v)
	c.Input.CursorEnd()
	return c
}

// Focused reports whether the input has focus.
func (c Combobox[E]) Focused() bool { return c.Input.Focused() }

// Focus gives the input focus.
func (c Combobox[E]) Focus() (Combobox[E], tea.Cmd) {
	cmd := c.Input.Focus()
	return c, cmd
}

// Blur drops focus. An open suggestion list is not closed outright: a close
// is scheduled after the grace period so a selection already in flight still
// lands, and the engine drops the close if anything supersedes it.
func (c Combobox[E]) Blur() (Combobox[E], tea.Cmd) {
	c.Input.Blur()
	if !c.engine.IsOpen() {
		return c, nil
	}
	token := c.engine.ScheduleClose()
	owner := c.owner
	return c, tea.Tick(BlurGrace, func(time.Time) tea.Msg {
		return CloseTimerMsg{Owner: owner, Token: token}
	})
}

// IsOpen reports whether the suggestion list is showing.
func (c Combobox[E]) IsOpen() bool { return c.engine.IsOpen() }

// Update handles key and timer messages.
func (c Combobox[E]) Update(msg tea.Msg) (Combobox[E], tea.Cmd) {
	switch msg := msg.(type) {
	case CloseTimerMsg:
		if msg.Owner == c.owner {
			c.engine.ResolveClose(msg.Token)
		}
		return c, nil

	case tea.KeyMsg:
		if !c.Input.Focused() {
			return c, nil
		}
		switch msg.String() {
		case "down":
			if c.engine.IsOpen() {
				c.engine.Navigate(1)
			} else {
				c.engine.Open(c.Input.Value())
			}
			return c, nil
		case "up":
			c.engine.Navigate(-1)
			return c, nil
		case "enter":
			entry, ok := c.engine.Confirm()
			if !ok {
				return c, nil
			}
			c.Input.SetValue(c.fill(entry))
			c.Input.CursorEnd()
			if c.selected == nil {
				return c, nil
			}
			emit := c.selected
			return c, func() tea.Msg { return emit(entry) }
		case "esc":
			c.engine.Close()
			return c, nil
		}
	}

	var cmd tea.Cmd
	before := c.Input.Value()
	c.Input, cmd = c.Input.Update(msg)
	if v := c.Input.Value(); v != before {
		c.engine.Open(v)
	}
	return c, cmd
}

// View renders the input and, when open, the suggestion list beneath it.
func (c Combobox[E]) View(width int) string {
	var b strings.Builder
	b.WriteString(c.Input.View())

	if !c.engine.IsOpen() {
		return b.String()
	}

	matches := c.engine.Matches()
	shown := len(matches)
	if shown > c.maxShown {
		shown = c.maxShown
	}
	for i := 0; i < shown; i++ {
		b.WriteString("\n")
		line := truncateLine(c.label(matches[i]), width-2)
		if i == c.engine.ActiveIndex() {
			b.WriteString(c.theme.Selected.Render("> " + line))
		} else {
			b.WriteString(c.theme.Normal.Render("  " + line))
		}
	}
	if rest := len(matches) - shown; rest > 0 {
		b.WriteString("\n")
		b.WriteString(c.theme.StatusPending.Render("  ..."))
	}
	return b.String()
}

func truncateLine(s string, max int) string {
	if max <= 0 {
		return s
	}
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-1]) + "…"
}
