package tui

import (
	"github.com/hwgcc/mutasi-flow/internal/api"
	"github.com/hwgcc/mutasi-flow/internal/form"
	"github.com/hwgcc/mutasi-flow/internal/model"
	"github.com/hwgcc/mutasi-flow/internal/preview"
	"github.com/hwgcc/mutasi-flow/internal/storage"
	"github.com/hwgcc/mutasi-flow/internal/tui/themes"
)

// Config holds TUI configuration.
type Config struct {
	Client      *api.Client
	Drafts      *storage.DraftStore
	Renderer    preview.Renderer
	Resume      *model.Draft
	Theme       themes.Theme
	LoginHint   string
	MaxUploadMB int64
	Width       int
	Height      int
}

// Option is a functional option for configuring the TUI.
type Option func(*Config)

// defaultConfig returns the default configuration.
func defaultConfig() Config {
	return Config{
		Theme:       themes.Default,
		MaxUploadMB: form.DefaultMaxUploadMB,
		LoginHint:   "mutasi login",
		Width:       80,
		Height:      24,
	}
}

// WithClient sets the API client.
func WithClient(client *api.Client) Option {
	return func(c *Config) {
		c.Client = client
	}
}

// WithDrafts sets the draft store used for autosave and resume.
func WithDrafts(drafts *storage.DraftStore) Option {
	return func(c *Config) {
		c.Drafts = drafts
	}
}

// WithRenderer sets the PDF page renderer.
func WithRenderer(r preview.Renderer) Option {
	return func(c *Config) {
		c.Renderer = r
	}
}

// WithResume preloads the form from a saved draft.
func WithResume(d *model.Draft) Option {
	return func(c *Config) {
		c.Resume = d
	}
}

// WithTheme sets the visual theme.
func WithTheme(theme themes.Theme) Option {
	return func(c *Config) {
		c.Theme = theme
	}
}

// WithMaxUpload sets the attachment size ceiling in megabytes.
func WithMaxUpload(mb int64) Option {
	return func(c *Config) {
		c.MaxUploadMB = mb
	}
}

// WithSize sets the initial terminal size.
func WithSize(width, height int) Option {
	return func(c *Config) {
		c.Width = width
		c.Height = height
	}
}
