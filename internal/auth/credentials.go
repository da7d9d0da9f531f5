// Package auth stores the session token obtained from the login endpoint.
package auth

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// ErrNotLoggedIn is returned when no saved session exists.
var ErrNotLoggedIn = errors.New("belum login, jalankan 'mutasi login' terlebih dahulu")

// Credentials is the saved session state.
type Credentials struct {
	SavedAt     time.Time `json:"saved_at"`
	Email       string    `json:"email"`
	AccessToken string    `json:"access_token"`
}

// Store reads and writes credentials at a fixed path.
type Store struct {
	path string
}

// NewStore creates a store rooted at path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// DefaultPath returns the credentials file under the user's data dir,
// honoring XDG_DATA_HOME.
func DefaultPath() (string, error) {
	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataDir, "mutasi", "session.json"), nil
}

// Load reads the saved credentials. A missing file means ErrNotLoggedIn.
func (s *Store) Load() (*Credentials, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotLoggedIn
		}
		return nil, fmt.Errorf("failed to read credentials: %w", err)
	}

	var creds Credentials
	if err := json.Unmarshal(data, &creds); err != nil {
		return nil, fmt.Errorf("failed to parse credentials: %w", err)
	}
	if creds.AccessToken == "" {
		return nil, ErrNotLoggedIn
	}
	return &creds, nil
}

// Token returns the saved access token, or empty when not logged in. Used as
// the api.Client token source.
func (s *Store) Token() string {
	creds, err := s.Load()
	if err != nil {
		return ""
	}
	return creds.AccessToken
}

// Save writes the credentials with restrictive permissions.
func (s *Store) Save(creds Credentials) error {
	creds.SavedAt = time.Now()

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("failed to create credentials directory: %w", err)
	}

	data, err := json.MarshalIndent(creds, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode credentials: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write credentials: %w", err)
	}
	return nil
}

// Clear removes the saved credentials. Clearing an absent file is a no-op.
func (s *Store) Clear() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove credentials: %w", err)
	}
	return nil
}
