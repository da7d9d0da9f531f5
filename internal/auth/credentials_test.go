package auth

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session.json")
	s := NewStore(path)

	require.NoError(t, s.Save(Credentials{Email: "user@hwg.co.id", AccessToken: "token-123"}))

	creds, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, "user@hwg.co.id", creds.Email)
	assert.Equal(t, "token-123", creds.AccessToken)
	assert.False(t, creds.SavedAt.IsZero())

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestStore_LoadMissingFile(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "absent.json"))

	_, err := s.Load()
	assert.ErrorIs(t, err, ErrNotLoggedIn)
	assert.Empty(t, s.Token())
}

func TestStore_EmptyTokenMeansNotLoggedIn(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"access_token":""}`), 0o600))

	_, err := NewStore(path).Load()
	assert.ErrorIs(t, err, ErrNotLoggedIn)
}

func TestStore_ClearIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	s := NewStore(path)
	require.NoError(t, s.Save(Credentials{AccessToken: "x"}))

	require.NoError(t, s.Clear())
	require.NoError(t, s.Clear())

	_, err := s.Load()
	assert.ErrorIs(t, err, ErrNotLoggedIn)
}
