// Package prefs persists small per-user settings between runs, such as the
// display unit picked with toggle-unit.
package prefs

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"pcb-transition/internal/units"
)

const prefsFile = "preferences.json"

// Keys.
const (
	KeyUnit      = "unit"
	KeyLastBoard = "last_board"
)

// Prefs stores preferences as a key-value map backed by a JSON file.
type Prefs struct {
	mu     sync.RWMutex
	values map[string]any
	path   string
}

// DefaultPath returns ~/.config/pcb-transition/preferences.json.
func DefaultPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir = filepath.Join(os.Getenv("HOME"), ".config")
	}
	return filepath.Join(configDir, "pcb-transition", prefsFile)
}

// LoadFrom reads preferences from path. A missing file yields empty
// preferences; a corrupt one is an error.
func LoadFrom(path string) (*Prefs, error) {
	p := &Prefs{values: make(map[string]any), path: path}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return p, nil
	}
	if err != nil {
		return p, fmt.Errorf("read preferences: %w", err)
	}
	if err := json.Unmarshal(data, &p.values); err != nil {
		p.values = make(map[string]any)
		return p, fmt.Errorf("parse preferences %s: %w", path, err)
	}
	return p, nil
}

// Save writes preferences to disk.
func (p *Prefs) Save() error {
	p.mu.RLock()
	data, err := json.MarshalIndent(p.values, "", "  ")
	p.mu.RUnlock()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(p.path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(p.path, data, 0o644)
}

// String returns a string preference, or "" if not set.
func (p *Prefs) String(key string) string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if s, ok := p.values[key].(string); ok {
		return s
	}
	return ""
}

// SetString stores a string preference.
func (p *Prefs) SetString(key, val string) {
	p.mu.Lock()
	p.values[key] = val
	p.mu.Unlock()
}

// Unit returns the stored display unit, or fallback when none is stored or
// the stored value is not a known unit.
func (p *Prefs) Unit(fallback units.Unit) units.Unit {
	u, err := units.Parse(p.String(KeyUnit))
	if err != nil {
		return fallback
	}
	return u
}

// SetUnit stores the display unit.
func (p *Prefs) SetUnit(u units.Unit) {
	p.SetString(KeyUnit, u.String())
}
