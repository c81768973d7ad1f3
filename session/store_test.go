package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tempStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(filepath.Join(t.TempDir(), "nested", "session.json"))
}

func TestStoreRoundTrip(t *testing.T) {
	s := tempStore(t)

	token, err := s.Load()
	require.NoError(t, err)
	assert.Empty(t, token, "fresh store has no token")

	require.NoError(t, s.Save("tok-123"))
	token, err = s.Load()
	require.NoError(t, err)
	assert.Equal(t, "tok-123", token)

	require.NoError(t, s.Clear())
	token, err = s.Load()
	require.NoError(t, err)
	assert.Empty(t, token)
}

func TestStoreClearMissingFile(t *testing.T) {
	s := tempStore(t)
	assert.NoError(t, s.Clear())
}

func TestStoreCorruptFileIsNoSession(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0o600))

	token, err := NewStore(path).Load()
	require.NoError(t, err)
	assert.Empty(t, token)
}

func TestStoreFilePermissions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, NewStore(path).Save("tok"))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}
