// Package session persists the logged-in user between runs.
package session

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"

	"hunterprice/internal/domain"
)

// file is the on-disk form of a session
type file struct {
	UserID   string    `toml:"user_id"`
	Name     string    `toml:"name"`
	Token    string    `toml:"token"`
	LoggedIn time.Time `toml:"logged_in"`
}

// Store reads and writes the session file
type Store struct {
	path string
}

// NewStore returns a store backed by the file at path
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the session file location
func (s *Store) Path() string {
	return s.path
}

// Load returns the saved user, or nil when nobody is logged in
func (s *Store) Load() (*domain.CurrentUser, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read session: %w", err)
	}

	var f file
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse session: %w", err)
	}
	if f.UserID == "" || f.Token == "" {
		return nil, nil
	}
	return &domain.CurrentUser{ID: f.UserID, Name: f.Name, Token: f.Token}, nil
}

// Save writes the user to the session file, readable only by the owner
func (s *Store) Save(user *domain.CurrentUser) error {
	if user == nil {
		return s.Clear()
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("failed to create session directory: %w", err)
	}

	data, err := toml.Marshal(file{
		UserID:   user.ID,
		Name:     user.Name,
		Token:    user.Token,
		LoggedIn: time.Now().UTC().Truncate(time.Second),
	})
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write session: %w", err)
	}
	// WriteFile keeps the mode of an existing file
	return os.Chmod(s.path, 0o600)
}

// Clear removes the session file. Clearing an absent session is not an error.
func (s *Store) Clear() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove session: %w", err)
	}
	return nil
}
