package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/hwgcc/mutasi-flow/internal/api"
	"github.com/hwgcc/mutasi-flow/internal/auth"
	"github.com/hwgcc/mutasi-flow/internal/storage"
)

// newAuthStore opens the session store at its default location.
func newAuthStore() (*auth.Store, error) {
	path, err := auth.DefaultPath()
	if err != nil {
		return nil, fmt.Errorf("failed to locate session store: %w", err)
	}
	return auth.NewStore(path), nil
}

// newAPIClient builds the server client from configuration, wired to the
// saved session token.
func newAPIClient() (*api.Client, error) {
	baseURL := viper.GetString("server.url")
	if baseURL == "" {
		return nil, fmt.Errorf("server belum diatur: gunakan --server, MUTASI_SERVER_URL, atau server.url di config")
	}

	store, err := newAuthStore()
	if err != nil {
		return nil, err
	}
	return api.NewClient(baseURL, store.Token), nil
}

// openDraftStore opens the local draft database, creating it on first use.
func openDraftStore() (*storage.DraftStore, error) {
	dbPath := viper.GetString("drafts.path")
	if dbPath == "" {
		dir, err := dataDir()
		if err != nil {
			return nil, err
		}
		dbPath = filepath.Join(dir, "drafts.db")
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o700); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return storage.Open(dbPath)
}

func dataDir() (string, error) {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "mutasi"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".local", "share", "mutasi"), nil
}
