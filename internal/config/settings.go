package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// BlobSettings configures the S3-compatible attachment store
type BlobSettings struct {
	AccessKey string `json:"access_key,omitempty"`
	Bucket    string `json:"bucket,omitempty"`
	Endpoint  string `json:"endpoint,omitempty"`
	SecretKey string `json:"secret_key,omitempty"`
	UseSSL    *bool  `json:"use_ssl,omitempty"`
}

// ScheduleSettings mirrors domain.FocusSchedule for the settings file
type ScheduleSettings struct {
	Enabled *bool  `json:"enabled,omitempty"`
	End     string `json:"end,omitempty"`
	Start   string `json:"start,omitempty"`
}

// Settings represents the structure of ~/.focuswork/settings.json
type Settings struct {
	BackupDelaySeconds      *int              `json:"backup_delay_seconds,omitempty"`
	BackupIntervalMinutes   *int              `json:"backup_interval_minutes,omitempty"`
	BackupKeep              *int              `json:"backup_keep,omitempty"`
	Blob                    *BlobSettings     `json:"blob,omitempty"`
	DatabaseURL             string            `json:"database_url,omitempty"`
	Debug                   *bool             `json:"debug,omitempty"`
	FocusSchedule           *ScheduleSettings `json:"focus_schedule,omitempty"`
	MaxLogFiles             *int              `json:"max_log_files,omitempty"`
	MeiliAPIKey             string            `json:"meili_api_key,omitempty"`
	MeiliURL                string            `json:"meili_url,omitempty"`
	Offline                 *bool             `json:"offline,omitempty"`
	PollIntervalSeconds     *int              `json:"poll_interval_seconds,omitempty"`
	ReconnectBackoffSeconds *int              `json:"reconnect_backoff_seconds,omitempty"`
	RedisURL                string            `json:"redis_url,omitempty"`
	SelfSaveWindowMs        *int              `json:"self_save_window_ms,omitempty"`
	TypingCooldownMs        *int              `json:"typing_cooldown_ms,omitempty"`
}

// LoadSettings loads settings from $FOCUSWORK_HOME/settings.json.
// Returns empty Settings if file doesn't exist (not an error)
func LoadSettings() (*Settings, error) {
	return LoadSettingsFrom(GetSettingsPath())
}

// LoadSettingsFrom loads settings from an explicit path
func LoadSettingsFrom(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Settings{}, nil
		}
		return nil, fmt.Errorf("failed to read settings file: %w", err)
	}

	var settings Settings
	if err := json.Unmarshal(data, &settings); err != nil {
		return nil, fmt.Errorf("invalid settings.json: %w", err)
	}

	return &settings, nil
}

// SaveSettings saves settings to $FOCUSWORK_HOME/settings.json
func SaveSettings(settings *Settings) error {
	return SaveSettingsTo(GetSettingsPath(), settings)
}

// SaveSettingsTo saves settings to an explicit path, creating its directory
func SaveSettingsTo(path string, settings *Settings) error {
	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create settings directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write settings file: %w", err)
	}

	return nil
}
