package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

const settingsFile = "settings.json"

// Settings are the player preferences that survive restarts.
type Settings struct {
	Volume int `json:"volume"`
}

// DefaultSettings returns the out-of-the-box preferences.
func DefaultSettings() Settings {
	return Settings{Volume: 100}
}

func (v Settings) clamped() Settings {
	if v.Volume < 0 {
		v.Volume = 0
	}
	if v.Volume > 100 {
		v.Volume = 100
	}
	return v
}

// LoadSettings returns the stored preferences, or defaults when none
// are stored. Corrupt settings are reported but never fatal: defaults
// come back alongside the error so the player still starts.
func (s *Store) LoadSettings() (Settings, error) {
	blob, err := os.ReadFile(s.path(settingsFile))
	if errors.Is(err, os.ErrNotExist) {
		return DefaultSettings(), nil
	}
	if err != nil {
		return DefaultSettings(), fmt.Errorf("store: read settings: %w", err)
	}
	out := DefaultSettings()
	if err := json.Unmarshal(blob, &out); err != nil {
		return DefaultSettings(), fmt.Errorf("store: decode settings: %w", err)
	}
	return out.clamped(), nil
}

// SaveSettings writes the preferences to disk.
func (s *Store) SaveSettings(v Settings) error {
	blob, err := json.MarshalIndent(v.clamped(), "", "  ")
	if err != nil {
		return fmt.Errorf("store: encode settings: %w", err)
	}
	if err := os.WriteFile(s.path(settingsFile), blob, 0o600); err != nil {
		return fmt.Errorf("store: write settings: %w", err)
	}
	return nil
}
