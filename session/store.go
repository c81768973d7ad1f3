// Package session owns the persisted bearer token and the authentication
// state machine. The Manager is the single source of truth for who is
// logged in; everything else asks it instead of reading shared state.
package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Store persists the bearer token across runs as a small JSON file, the
// console's equivalent of the browser's single localStorage key.
type Store struct {
	path string
}

// NewStore creates a store writing to path. The directory is created on
// first save.
func NewStore(path string) *Store {
	return &Store{path: path}
}

type storedSession struct {
	AccessToken string `json:"access_token"`
}

// Load returns the stored token, or "" when none is stored.
func (s *Store) Load() (string, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read session file: %w", err)
	}
	var stored storedSession
	if err := json.Unmarshal(data, &stored); err != nil {
		// A corrupt session file is treated as no session.
		return "", nil
	}
	return stored.AccessToken, nil
}

// Save writes the token, replacing any previous one. The file is private
// to the user.
func (s *Store) Save(token string) error {
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("create session dir: %w", err)
		}
	}
	data, err := json.Marshal(storedSession{AccessToken: token})
	if err != nil {
		return err
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("write session file: %w", err)
	}
	return nil
}

// Clear removes the stored token. Missing file is not an error.
func (s *Store) Clear() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove session file: %w", err)
	}
	return nil
}
