// Package prefs handles roost user preferences persistence.
// Preferences are stored in ~/.config/roost/prefs.toml.
package prefs

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/five82/roost/internal/config"
	"github.com/five82/roost/internal/domain"
)

// Prefs holds user preferences for roost.
type Prefs struct {
	Theme string `toml:"theme"`
	Sort  string `toml:"sort"`
	City  string `toml:"city"`
}

const (
	defaultPrefsPath = "~/.config/roost/prefs.toml"
	defaultTheme     = "Dracula"
)

// DefaultPath returns the default preferences file path.
func DefaultPath() string {
	return defaultPrefsPath
}

// SortKind returns the stored sort order.
func (p Prefs) SortKind() domain.SortKind {
	return domain.ParseSortKind(p.Sort)
}

func defaults() Prefs {
	return Prefs{Theme: defaultTheme, Sort: domain.SortPopular.String()}
}

// Load reads preferences from the given path, falling back to defaults if the
// file is missing or unreadable.
func Load(path string) (Prefs, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return defaults(), nil
	}

	bytes, err := os.ReadFile(resolved)
	if err != nil {
		return defaults(), nil // Graceful degradation
	}

	prefs := defaults()
	if err := toml.Unmarshal(bytes, &prefs); err != nil {
		return defaults(), nil // Graceful degradation
	}

	if strings.TrimSpace(prefs.Theme) == "" {
		prefs.Theme = defaultTheme
	}
	prefs.Sort = prefs.SortKind().String()
	if city, ok := domain.FindCity(prefs.City); ok {
		prefs.City = city.Name
	} else {
		prefs.City = ""
	}

	return prefs, nil
}

// Save writes preferences to the given path, creating directories as needed.
func Save(path string, p Prefs) error {
	resolved, err := resolvePath(path)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	dir := filepath.Dir(resolved)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create prefs dir: %w", err)
	}

	bytes, err := toml.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal prefs: %w", err)
	}

	if err := os.WriteFile(resolved, bytes, 0o644); err != nil {
		return fmt.Errorf("write prefs: %w", err)
	}

	return nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return config.ExpandPath(defaultPrefsPath)
	}
	return config.ExpandPath(path)
}
