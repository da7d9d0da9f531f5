// Package suggest implements the typeahead state machine shared by the
// outlet pickers and the per-row product pickers. The engine is headless:
// it owns query matching, keyboard navigation, and selection state, while
// the TUI layer owns rendering and timers.
package suggest

import "strings"

// State describes where the engine is in its open/filter/navigate cycle.
type State int

const (
	// StateClosed means no suggestion list is showing.
	StateClosed State = iota
	// StateFiltering means the list is open with no active row yet.
	StateFiltering
	// StateNavigating means the list is open and a row is keyboard-active.
	StateNavigating
)

// String returns a string representation of the state.
func (s State) String() string {
	switch s {
	case StateClosed:
		return "Closed"
	case StateFiltering:
		return "Filtering"
	case StateNavigating:
		return "Navigating"
	default:
		return "Unknown"
	}
}

// Config parameterizes an engine instance.
type Config[E any] struct {
	// Fields extracts the searchable strings of a candidate.
	Fields func(E) []string
	// OnSelect is invoked with the chosen entry on confirm or direct select.
	OnSelect func(E)
	// Limit caps the match list. Zero means unlimited.
	Limit int
	// MatchAllOnEmpty opens the full candidate list for an empty query.
	// When false an empty query always closes the list instead.
	MatchAllOnEmpty bool
}

// Engine is a typeahead over a fixed candidate list. One engine instance
// backs exactly one input; its state dies with that input.
type Engine[E any] struct {
	cfg        Config[E]
	candidates []E
	matches    []E
	active     int
	closeToken int
	open       bool
}

// New creates an engine with the given configuration.
func New[E any](cfg Config[E]) *Engine[E] {
	return &Engine[E]{cfg: cfg, active: -1}
}

// SetCandidates replaces the candidate list and closes any open suggestions.
func (e *Engine[E]) SetCandidates(candidates []E) {
	e.candidates = candidates
	e.Close()
}

// Open filters the candidates against query and opens the list. Matching is
// a case-insensitive substring test, OR-ed across the configured fields,
// preserving candidate order, truncated at the configured limit.
func (e *Engine[E]) Open(query string) {
	e.closeToken++

	if strings.TrimSpace(query) == "" && !e.cfg.MatchAllOnEmpty {
		e.Close()
		return
	}

	needle := strings.ToLower(strings.TrimSpace(query))
	matches := make([]E, 0, len(e.candidates))
	for _, c := range e.candidates {
		if needle == "" || e.matchesQuery(c, needle) {
			matches = append(matches, c)
			if e.cfg.Limit > 0 && len(matches) >= e.cfg.Limit {
				break
			}
		}
	}

	e.matches = matches
	e.active = -1
	e.open = true
}

func (e *Engine[E]) matchesQuery(candidate E, needle string) bool {
	for _, field := range e.cfg.Fields(candidate) {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}

// Navigate moves the active row by delta, wrapping at both ends. Navigating
// an empty list is a no-op.
func (e *Engine[E]) Navigate(delta int) {
	if !e.open || len(e.matches) == 0 {
		return
	}

	n := len(e.matches)
	if e.active < 0 {
		if delta >= 0 {
			e.active = 0
		} else {
			e.active = n - 1
		}
		return
	}

	e.active = ((e.active+delta)%n + n) % n
}

// Confirm selects the active match, defaulting to the first when no row was
// navigated to. Returns false when the list is closed or empty.
func (e *Engine[E]) Confirm() (E, bool) {
	var zero E
	if !e.open || len(e.matches) == 0 {
		return zero, false
	}

	idx := e.active
	if idx < 0 {
		idx = 0
	}
	entry := e.matches[idx]
	e.choose(entry)
	return entry, true
}

// SelectDirectly selects an entry bypassing keyboard state, the pointer
// equivalent of Confirm.
func (e *Engine[E]) SelectDirectly(entry E) {
	e.choose(entry)
}

func (e *Engine[E]) choose(entry E) {
	e.closeToken++
	if e.cfg.OnSelect != nil {
		e.cfg.OnSelect(entry)
	}
	e.Close()
}

// Close clears the match list and resets navigation.
func (e *Engine[E]) Close() {
	e.closeToken++
	e.matches = nil
	e.active = -1
	e.open = false
}

// ScheduleClose registers an intent to close after a grace period and
// returns its token. The caller runs the timer; when it fires it offers the
// token back through ResolveClose. Any selection, re-open, or close in the
// meantime invalidates the token, so a pointer selection landing just before
// focus loss is not preempted.
func (e *Engine[E]) ScheduleClose() int {
	e.closeToken++
	return e.closeToken
}

// ResolveClose closes the list if token is still the engine's newest close
// intent. Reports whether the close was applied.
func (e *Engine[E]) ResolveClose(token int) bool {
	if token != e.closeToken || !e.open {
		return false
	}
	e.Close()
	return true
}

// Matches returns the current match list.
func (e *Engine[E]) Matches() []E { return e.matches }

// ActiveIndex returns the keyboard-active row, -1 when none.
func (e *Engine[E]) ActiveIndex() int { return e.active }

// IsOpen reports whether the suggestion list is showing.
func (e *Engine[E]) IsOpen() bool { return e.open }

// State derives the engine's position in the state machine.
func (e *Engine[E]) State() State {
	switch {
	case !e.open:
		return StateClosed
	case e.active >= 0:
		return StateNavigating
	default:
		return StateFiltering
	}
}
