// Package token persists the six-cities auth token between runs.
package token

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/five82/roost/internal/config"
)

// StorageKey is the fixed key the token is stored under.
const StorageKey = "six-cities-token"

const defaultTokenPath = "~/.config/roost/token.toml"

type file struct {
	Token string `toml:"six-cities-token"`
}

// Store keeps the token in a TOML file. It is safe for concurrent use.
type Store struct {
	mu    sync.Mutex
	path  string
	token string
}

// DefaultPath returns the default token file path.
func DefaultPath() string {
	return defaultTokenPath
}

// Open loads the token file at path. A missing file yields an empty token.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		path = defaultTokenPath
	}
	resolved, err := config.ExpandPath(path)
	if err != nil {
		return nil, fmt.Errorf("resolve token path: %w", err)
	}

	s := &Store{path: resolved}
	bytes, err := os.ReadFile(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return s, nil
		}
		return nil, fmt.Errorf("read token: %w", err)
	}
	var f file
	if err := toml.Unmarshal(bytes, &f); err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}
	s.token = strings.TrimSpace(f.Token)
	return s, nil
}

// Path returns the resolved token file path.
func (s *Store) Path() string {
	return s.path
}

// Token returns the current token, or "" when signed out.
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// Save replaces the token and writes it to disk.
func (s *Store) Save(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create token dir: %w", err)
	}
	bytes, err := toml.Marshal(file{Token: token})
	if err != nil {
		return fmt.Errorf("marshal token: %w", err)
	}
	if err := os.WriteFile(s.path, bytes, 0o600); err != nil {
		return fmt.Errorf("write token: %w", err)
	}
	s.token = token
	return nil
}

// Drop forgets the token and removes the file.
func (s *Store) Drop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = ""
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove token: %w", err)
	}
	return nil
}

// Memory is an in-process token holder.
type Memory struct {
	mu    sync.Mutex
	token string
}

// Token returns the held token.
func (m *Memory) Token() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token
}

// Save replaces the held token.
func (m *Memory) Save(token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = token
	return nil
}

// Drop clears the held token.
func (m *Memory) Drop() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = ""
	return nil
}
