// Package prefs persists client preferences between sessions.
package prefs

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Theme is the colour scheme of the client.
type Theme string

const (
	ThemeDark  Theme = "dark"
	ThemeLight Theme = "light"
)

// Toggle returns the other theme.
func (t Theme) Toggle() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

// Valid reports whether t is a known theme.
func (t Theme) Valid() bool {
	return t == ThemeDark || t == ThemeLight
}

// Prefs is the persisted preference document.
type Prefs struct {
	Theme     Theme     `json:"theme"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Defaults returns the preferences used before anything has been saved.
func Defaults() Prefs {
	return Prefs{Theme: ThemeDark}
}

// Storage reads and writes the preference file.
type Storage struct {
	path string
}

// NewStorage creates a storage backed by the file at path.
func NewStorage(path string) *Storage {
	return &Storage{path: path}
}

// Path returns the preference file location.
func (s *Storage) Path() string {
	return s.path
}

// Load returns the saved preferences, or Defaults when none exist yet.
// Unknown themes fall back to the default.
func (s *Storage) Load() (Prefs, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return Defaults(), nil
	}
	if err != nil {
		return Defaults(), fmt.Errorf("failed to read prefs: %w", err)
	}

	var p Prefs
	if err := json.Unmarshal(data, &p); err != nil {
		return Defaults(), fmt.Errorf("failed to parse prefs: %w", err)
	}
	if !p.Theme.Valid() {
		p.Theme = Defaults().Theme
	}
	return p, nil
}

// Save persists p with an atomic write.
func (s *Storage) Save(p Prefs) error {
	p.UpdatedAt = time.Now()

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("failed to create prefs directory: %w", err)
	}

	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal prefs: %w", err)
	}

	// Atomic write: write to temp file then rename
	tmpFile := s.path + ".tmp"
	if err := os.WriteFile(tmpFile, data, 0644); err != nil {
		return fmt.Errorf("failed to write prefs temp file: %w", err)
	}
	if err := os.Rename(tmpFile, s.path); err != nil {
		os.Remove(tmpFile)
		return fmt.Errorf("failed to rename prefs temp file: %w", err)
	}
	return nil
}

// LoadTheme returns the saved theme.
func (s *Storage) LoadTheme() (Theme, error) {
	p, err := s.Load()
	return p.Theme, err
}

// SaveTheme updates only the theme.
func (s *Storage) SaveTheme(t Theme) error {
	p, err := s.Load()
	if err != nil {
		p = Defaults()
	}
	p.Theme = t
	return s.Save(p)
}
