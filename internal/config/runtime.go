package config

import (
	"os"
	"strconv"
	"time"

	"focuswork/internal/domain"
)

// Defaults for the sync and backup timings
const (
	DefaultBackupDelay      = 5 * time.Second
	DefaultBackupInterval   = 10 * time.Minute
	DefaultBackupKeep       = 20
	DefaultMaxLogFiles      = 1000
	DefaultPollInterval     = 3 * time.Second
	DefaultReconnectBackoff = 5 * time.Second
	DefaultSelfSaveWindow   = 2 * time.Second
	DefaultTypingCooldown   = 1500 * time.Millisecond
)

// Runtime is the resolved configuration used to build the container.
// Precedence: CLI flags > env > settings.json > defaults (flags are applied by the caller).
type Runtime struct {
	BackupDelay      time.Duration
	BackupInterval   time.Duration
	BackupKeep       int
	BlobAccessKey    string
	BlobBucket       string
	BlobEndpoint     string
	BlobSecretKey    string
	BlobUseSSL       bool
	DatabaseURL      string
	DBPath           string
	Debug            bool
	FocusSchedule    domain.FocusSchedule
	LockPath         string
	MaxLogFiles      int
	MeiliAPIKey      string
	MeiliURL         string
	Offline          bool
	PollInterval     time.Duration
	ReconnectBackoff time.Duration
	RedisURL         string
	SelfSaveWindow   time.Duration
	SessionPath      string
	SettingsPath     string
	TypingCooldown   time.Duration
}

// Resolve merges settings with environment overrides and defaults
func Resolve(settings *Settings) Runtime {
	if settings == nil {
		settings = &Settings{}
	}

	rt := Runtime{
		BackupDelay:      seconds(settings.BackupDelaySeconds, DefaultBackupDelay),
		BackupInterval:   minutes(settings.BackupIntervalMinutes, DefaultBackupInterval),
		BackupKeep:       intOr(settings.BackupKeep, DefaultBackupKeep),
		DatabaseURL:      settings.DatabaseURL,
		DBPath:           GetDBPath(),
		Debug:            settings.Debug != nil && *settings.Debug,
		LockPath:         GetLockPath(),
		MaxLogFiles:      intOr(settings.MaxLogFiles, DefaultMaxLogFiles),
		MeiliAPIKey:      settings.MeiliAPIKey,
		MeiliURL:         settings.MeiliURL,
		Offline:          settings.Offline != nil && *settings.Offline,
		PollInterval:     seconds(settings.PollIntervalSeconds, DefaultPollInterval),
		ReconnectBackoff: seconds(settings.ReconnectBackoffSeconds, DefaultReconnectBackoff),
		RedisURL:         settings.RedisURL,
		SelfSaveWindow:   millis(settings.SelfSaveWindowMs, DefaultSelfSaveWindow),
		SessionPath:      GetSessionPath(),
		SettingsPath:     GetSettingsPath(),
		TypingCooldown:   millis(settings.TypingCooldownMs, DefaultTypingCooldown),
	}

	rt.FocusSchedule = domain.DefaultFocusSchedule()
	if fs := settings.FocusSchedule; fs != nil {
		rt.FocusSchedule.Enabled = fs.Enabled != nil && *fs.Enabled
		if fs.Start != "" {
			rt.FocusSchedule.Start = fs.Start
		}
		if fs.End != "" {
			rt.FocusSchedule.End = fs.End
		}
	}

	if b := settings.Blob; b != nil {
		rt.BlobAccessKey = b.AccessKey
		rt.BlobBucket = b.Bucket
		rt.BlobEndpoint = b.Endpoint
		rt.BlobSecretKey = b.SecretKey
		rt.BlobUseSSL = b.UseSSL != nil && *b.UseSSL
	}

	envString(&rt.DatabaseURL, "FOCUSWORK_DATABASE_URL")
	envString(&rt.RedisURL, "FOCUSWORK_REDIS_URL")
	envString(&rt.MeiliURL, "FOCUSWORK_MEILI_URL")
	envString(&rt.MeiliAPIKey, "FOCUSWORK_MEILI_API_KEY")
	envString(&rt.BlobEndpoint, "FOCUSWORK_BLOB_ENDPOINT")
	envString(&rt.BlobAccessKey, "FOCUSWORK_BLOB_ACCESS_KEY")
	envString(&rt.BlobSecretKey, "FOCUSWORK_BLOB_SECRET_KEY")
	envString(&rt.BlobBucket, "FOCUSWORK_BLOB_BUCKET")
	if v := os.Getenv("FOCUSWORK_OFFLINE"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			rt.Offline = b
		}
	}

	// no backend configured means offline
	if rt.DatabaseURL == "" {
		rt.Offline = true
	}

	return rt
}

// BlobConfigured reports whether attachment uploads can be attempted
func (r Runtime) BlobConfigured() bool {
	return r.BlobEndpoint != "" && r.BlobBucket != ""
}

func envString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func intOr(v *int, def int) int {
	if v == nil || *v <= 0 {
		return def
	}
	return *v
}

func seconds(v *int, def time.Duration) time.Duration {
	if v == nil || *v <= 0 {
		return def
	}
	return time.Duration(*v) * time.Second
}

func minutes(v *int, def time.Duration) time.Duration {
	if v == nil || *v <= 0 {
		return def
	}
	return time.Duration(*v) * time.Minute
}

func millis(v *int, def time.Duration) time.Duration {
	if v == nil || *v <= 0 {
		return def
	}
	return time.Duration(*v) * time.Millisecond
}
