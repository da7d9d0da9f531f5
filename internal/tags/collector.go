// Package tags implements the chip-based name collectors ("Dibuat Oleh",
// "Disetujui Oleh", "Diterima Oleh"). Tags are order-preserving and unique
// without regard to case.
package tags

import "strings"

// Collector accumulates tags for one input field.
type Collector struct {
	tags []string
}

// NewCollector creates an empty collector.
func NewCollector() *Collector {
	return &Collector{}
}

// Add splits rawText on commas, trims each candidate, and appends the ones
// not already present (case-insensitively) in first-seen order. Empty
// candidates are dropped silently. Returns the accepted tags.
func (c *Collector) Add(rawText string) []string {
	var accepted []string
	for _, candidate := range strings.Split(rawText, ",") {
		candidate = strings.TrimSpace(candidate)
		if candidate == "" || c.contains(candidate) {
			continue
		}
		c.tags = append(c.tags, candidate)
		accepted = append(accepted, candidate)
	}
	return accepted
}

// Remove drops the tag matching case-insensitively, preserving the order of
// the remaining tags.
func (c *Collector) Remove(tag string) {
	kept := c.tags[:0]
	for _, existing := range c.tags {
		if !strings.EqualFold(existing, tag) {
			kept = append(kept, existing)
		}
	}
	c.tags = kept
}

// Pop removes and returns the most recently added tag. Used by the
// Backspace-on-empty-input affordance.
func (c *Collector) Pop() (string, bool) {
	if len(c.tags) == 0 {
		return "", false
	}
	last := c.tags[len(c.tags)-1]
	c.tags = c.tags[:len(c.tags)-1]
	return last, true
}

// Tags returns the current tags in insertion order.
func (c *Collector) Tags() []string {
	out := make([]string, len(c.tags))
	copy(out, c.tags)
	return out
}

// Len returns the number of tags.
func (c *Collector) Len() int { return len(c.tags) }

// Serialize joins the tags with ", " for the form payload.
func (c *Collector) Serialize() string {
	return strings.Join(c.tags, ", ")
}

// Reset clears all tags.
func (c *Collector) Reset() {
	c.tags = nil
}

func (c *Collector) contains(tag string) bool {
	for _, existing := range c.tags {
		if strings.EqualFold(existing, tag) {
			return true
		}
	}
	return false
}
