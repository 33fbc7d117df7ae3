package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int    { return &v }
func boolPtr(v bool) *bool { return &v }

func TestResolve_Defaults(t *testing.T) {
	t.Setenv("FOCUSWORK_HOME", t.TempDir())
	t.Setenv("FOCUSWORK_DATABASE_URL", "")
	t.Setenv("FOCUSWORK_OFFLINE", "")

	rt := Resolve(nil)

	assert.Equal(t, DefaultPollInterval, rt.PollInterval)
	assert.Equal(t, DefaultSelfSaveWindow, rt.SelfSaveWindow)
	assert.Equal(t, DefaultTypingCooldown, rt.TypingCooldown)
	assert.Equal(t, DefaultReconnectBackoff, rt.ReconnectBackoff)
	assert.Equal(t, DefaultBackupDelay, rt.BackupDelay)
	assert.Equal(t, DefaultBackupInterval, rt.BackupInterval)
	assert.True(t, rt.Offline, "no database url means offline")
	assert.False(t, rt.FocusSchedule.Enabled)
}

func TestResolve_EnvOverridesSettings(t *testing.T) {
	t.Setenv("FOCUSWORK_HOME", t.TempDir())
	t.Setenv("FOCUSWORK_DATABASE_URL", "postgres://env")
	t.Setenv("FOCUSWORK_OFFLINE", "")

	rt := Resolve(&Settings{
		DatabaseURL:         "postgres://file",
		PollIntervalSeconds: intPtr(7),
		TypingCooldownMs:    intPtr(900),
		FocusSchedule:       &ScheduleSettings{Enabled: boolPtr(true), Start: "08:30"},
	})

	assert.Equal(t, "postgres://env", rt.DatabaseURL)
	assert.False(t, rt.Offline)
	assert.Equal(t, 7*time.Second, rt.PollInterval)
	assert.Equal(t, 900*time.Millisecond, rt.TypingCooldown)
	assert.True(t, rt.FocusSchedule.Enabled)
	assert.Equal(t, "08:30", rt.FocusSchedule.Start)
	assert.Equal(t, "17:00", rt.FocusSchedule.End)
}

func TestResolve_OfflineFlag(t *testing.T) {
	t.Setenv("FOCUSWORK_HOME", t.TempDir())
	t.Setenv("FOCUSWORK_DATABASE_URL", "postgres://env")
	t.Setenv("FOCUSWORK_OFFLINE", "true")

	assert.True(t, Resolve(&Settings{}).Offline)
}

func TestSettings_RoundTripOnDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "settings.json")

	missing, err := LoadSettingsFrom(path)
	require.NoError(t, err)
	assert.Equal(t, &Settings{}, missing)

	require.NoError(t, SaveSettingsTo(path, &Settings{Offline: boolPtr(true), RedisURL: "redis://x"}))

	loaded, err := LoadSettingsFrom(path)
	require.NoError(t, err)
	require.NotNil(t, loaded.Offline)
	assert.True(t, *loaded.Offline)
	assert.Equal(t, "redis://x", loaded.RedisURL)
}

func TestGetSettingsExample_CoversNestedBlocks(t *testing.T) {
	example := GetSettingsExample()

	assert.Contains(t, example, "database_url")
	blob, ok := example["blob"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "localhost:9000", blob["endpoint"])
	schedule, ok := example["focus_schedule"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "09:00", schedule["start"])
}

func TestExpandPath(t *testing.T) {
	assert.Equal(t, "/abs/path", ExpandPath("/abs/path"))
	assert.NotEqual(t, "~/x", ExpandPath("~/x"))
}
