package tags

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollector_AddSplitsAndTrims(t *testing.T) {
	c := NewCollector()

	accepted := c.Add("Darius, Samuel ,  Putri")

	assert.Equal(t, []string{"Darius", "Samuel", "Putri"}, accepted)
	assert.Equal(t, []string{"Darius", "Samuel", "Putri"}, c.Tags())
}

func TestCollector_CaseInsensitiveDedup(t *testing.T) {
	c := NewCollector()

	c.Add("Jakarta")
	accepted := c.Add("jakarta")

	assert.Empty(t, accepted)
	assert.Equal(t, []string{"Jakarta"}, c.Tags(), "first-seen casing wins")
}

func TestCollector_EmptyCandidatesRejectedSilently(t *testing.T) {
	c := NewCollector()

	accepted := c.Add(" , ,, ")

	assert.Empty(t, accepted)
	assert.Zero(t, c.Len())
}

func TestCollector_RemoveIsCaseInsensitive(t *testing.T) {
	c := NewCollector()
	c.Add("Darius, Samuel, Putri")

	c.Remove("SAMUEL")

	assert.Equal(t, []string{"Darius", "Putri"}, c.Tags())
}

func TestCollector_PopReturnsMostRecent(t *testing.T) {
	c := NewCollector()
	c.Add("Darius, Samuel")

	last, ok := c.Pop()

	require.True(t, ok)
	assert.Equal(t, "Samuel", last)
	assert.Equal(t, []string{"Darius"}, c.Tags())
}

func TestCollector_PopEmpty(t *testing.T) {
	c := NewCollector()

	_, ok := c.Pop()
	assert.False(t, ok)
}

func TestCollector_Serialize(t *testing.T) {
	c := NewCollector()
	c.Add("Darius, Samuel")

	assert.Equal(t, "Darius, Samuel", c.Serialize())
}

func TestCollector_Reset(t *testing.T) {
	c := NewCollector()
	c.Add("Darius")

	c.Reset()

	assert.Zero(t, c.Len())
	assert.Equal(t, "", c.Serialize())
}
