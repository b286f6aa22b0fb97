// Package config manages user settings persisted under ~/.velo.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

// Settings holds all user-configurable application settings organized by category.
type Settings struct {
	General GeneralSettings `json:"general"`
	Probe   ProbeSettings   `json:"probe"`
	History HistorySettings `json:"history"`
}

// GeneralSettings contains application behavior settings.
type GeneralSettings struct {
	UserAgent           string `json:"user_agent"`
	ProxyURL            string `json:"proxy_url"`
	SkipTLSVerification bool   `json:"skip_tls_verification"`
	DisableProgress     bool   `json:"disable_progress"`
}

// ProbeSettings contains the per-target measurement parameters.
type ProbeSettings struct {
	ConnectTimeout   time.Duration `json:"connect_timeout"`
	TransferDeadline time.Duration `json:"transfer_deadline"`
}

// HistorySettings controls the local result database.
type HistorySettings struct {
	Enabled        bool `json:"enabled"`
	RetentionCount int  `json:"retention_count"`
}

// DefaultSettings returns a new Settings instance with sensible defaults.
func DefaultSettings() *Settings {
	return &Settings{
		General: GeneralSettings{
			UserAgent: "", // Empty means use default UA
		},
		Probe: ProbeSettings{
			ConnectTimeout:   10 * time.Second,
			TransferDeadline: 60 * time.Second,
		},
		History: HistorySettings{
			Enabled:        true,
			RetentionCount: 500,
		},
	}
}

// GetVeloDir returns the application state directory (~/.velo).
func GetVeloDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".velo"
	}
	return filepath.Join(homeDir, ".velo")
}

// EnsureDirs creates the application state directory if missing.
func EnsureDirs() error {
	return os.MkdirAll(GetVeloDir(), 0755)
}

// GetSettingsPath returns the path to the settings JSON file.
func GetSettingsPath() string {
	return filepath.Join(GetVeloDir(), "settings.json")
}

// GetHistoryPath returns the path to the sqlite history database.
func GetHistoryPath() string {
	return filepath.Join(GetVeloDir(), "history.db")
}

// LoadSettings loads settings from disk. Returns defaults if file doesn't exist.
func LoadSettings() (*Settings, error) {
	path := GetSettingsPath()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultSettings(), nil
		}
		return nil, err
	}

	settings := DefaultSettings() // Start with defaults to fill any missing fields
	if err := json.Unmarshal(data, settings); err != nil {
		return nil, err
	}

	return settings, nil
}

// SaveSettings saves settings to disk atomically.
func SaveSettings(s *Settings) error {
	path := GetSettingsPath()

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}

	// Atomic write: write to temp file, then rename
	tempPath := path + ".tmp"
	if err := os.WriteFile(tempPath, data, 0644); err != nil {
		return err
	}

	return os.Rename(tempPath, path)
}
