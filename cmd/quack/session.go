package main

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// sessionStore keeps the login cookie between invocations.
type sessionStore struct {
	path string
}

func newSessionStore() (*sessionStore, error) {
	if p := os.Getenv("QUACK_SESSION_FILE"); p != "" {
		return &sessionStore{path: p}, nil
	}

	dir, err := os.UserConfigDir()
	if err != nil {
		return nil, err
	}
	return &sessionStore{path: filepath.Join(dir, "quack", "session")}, nil
}

// Load returns the saved token, or "" when nobody is logged in.
func (s *sessionStore) Load() (string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil
		}
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

func (s *sessionStore) Save(token string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(s.path, []byte(token), 0o600)
}

func (s *sessionStore) Clear() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}
