package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// sessionStore persists the API access token between CLI invocations.
type sessionStore struct {
	path string
}

type storedSession struct {
	AccessToken string `json:"access_token"`
}

// defaultSessionStore places the session file under ~/.vibeswipe/.
func defaultSessionStore() *sessionStore {
	home, err := os.UserHomeDir()
	if err != nil {
		return &sessionStore{path: ".vibeswipe-session.json"}
	}
	return &sessionStore{path: filepath.Join(home, ".vibeswipe", "session.json")}
}

// Load reads the stored access token. A missing file is not an error.
func (s *sessionStore) Load() (string, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("reading session file: %w", err)
	}

	var stored storedSession
	if err := json.Unmarshal(data, &stored); err != nil {
		return "", fmt.Errorf("parsing session file: %w", err)
	}
	return stored.AccessToken, nil
}

// Save writes the access token, creating the directory if needed. The file
// is user-readable only.
func (s *sessionStore) Save(token string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("creating session directory: %w", err)
	}

	data, err := json.Marshal(storedSession{AccessToken: token})
	if err != nil {
		return fmt.Errorf("encoding session: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("writing session file: %w", err)
	}
	return nil
}

// Clear removes the session file. A missing file is not an error.
func (s *sessionStore) Clear() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("removing session file: %w", err)
	}
	return nil
}
