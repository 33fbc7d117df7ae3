package cmd

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"focuswork/internal/adapters/blob"
	"focuswork/internal/adapters/lock"
	"focuswork/internal/adapters/remote"
	"focuswork/internal/adapters/search"
	"focuswork/internal/adapters/session"
	"focuswork/internal/adapters/storage"
	"focuswork/internal/config"
	"focuswork/internal/logging"
	"focuswork/internal/ports"
	"focuswork/internal/services"
)

const shutdownTimeout = 10 * time.Second

// Container holds all dependencies for the application
type Container struct {
	// Services
	Auth       *services.AuthService
	Backups    *services.BackupService
	Clients    *services.ClientService
	Offline    *services.OfflineController
	Reconciler *services.Reconciler
	Remote     *services.SwitchableRemote
	Search     *services.SearchService
	Tracker    *services.Tracker
	Transfer   *services.TransferService

	Runtime config.Runtime

	// Internal - for cleanup and admin commands
	authenticator *remote.Authenticator
	db            *sql.DB
	meili         *search.Meili
	redis         *session.RedisStore
	scheduler     *services.BackupScheduler
	store         ports.LocalStore
}

// NewContainer creates a new Container with all dependencies wired. Backend
// services that cannot be reached are logged and left out; the local store is
// always wired so commands keep working offline.
func NewContainer(ctx context.Context, rt config.Runtime) (*Container, error) {
	c := &Container{Runtime: rt}

	c.store = storage.Open(rt.DBPath)
	if u, ok := c.store.(*storage.Unavailable); ok {
		logging.Logger.Error("Local store unavailable, running read-only", "path", rt.DBPath, "error", u.Cause())
	}

	var online ports.Remote
	var authenticator ports.Authenticator
	if rt.DatabaseURL != "" {
		if err := c.connectRemote(ctx); err != nil {
			logging.Logger.Warn("Remote database unavailable", "error", err)
		} else {
			online = remote.NewPostgresStore(c.db, rt.DatabaseURL)
			authenticator = c.authenticator
		}
	}
	c.Remote = services.NewSwitchableRemote(online, remote.Offline{}, rt.Offline)
	c.Auth = services.NewAuthService(authenticator, rt.SessionPath)

	var primary ports.SearchIndex
	if rt.MeiliURL != "" {
		c.meili = search.NewMeili(rt.MeiliURL, rt.MeiliAPIKey)
		primary = c.meili
	}
	c.Search = services.NewSearchService(c.store, primary, search.NewLocal())

	opts := []services.ClientServiceOption{services.WithSearchIndex(c.Search)}
	if rt.BlobConfigured() {
		store, err := blob.NewMinioStore(ctx, blob.Config{
			AccessKey: rt.BlobAccessKey,
			Bucket:    rt.BlobBucket,
			Endpoint:  rt.BlobEndpoint,
			SecretKey: rt.BlobSecretKey,
			UseSSL:    rt.BlobUseSSL,
		})
		if err != nil {
			logging.Logger.Warn("Blob store unavailable, attachments stay local", "error", err)
		} else {
			opts = append(opts, services.WithBlobStore(store))
		}
	}

	// the scheduler is created before the backup service it runs
	var backups *services.BackupService
	c.scheduler = services.NewBackupScheduler(rt.BackupDelay, rt.BackupInterval, func(ctx context.Context) error {
		_, err := backups.Create(ctx, services.BackupReasonAuto)
		return err
	})
	opts = append(opts, services.WithChangeNotifier(c.scheduler))

	stamp := services.NewSaveStamp()
	c.Clients = services.NewClientService(c.store, c.Remote, stamp, c.Auth.OwnerID, opts...)
	backups = services.NewBackupService(c.store, c.Clients, rt.BackupKeep)
	c.Backups = backups
	c.Transfer = services.NewTransferService(c.store, c.Clients, c.Backups)

	c.Tracker = services.NewTracker(c.store, c.Clients, services.WithDefaultSchedule(rt.FocusSchedule))
	if err := c.Tracker.Load(ctx); err != nil {
		_ = c.Close()
		return nil, err
	}

	c.Reconciler = services.NewReconciler(services.ReconcilerConfig{
		PollInterval:     rt.PollInterval,
		ReconnectBackoff: rt.ReconnectBackoff,
		SelfSaveWindow:   rt.SelfSaveWindow,
		TypingCooldown:   rt.TypingCooldown,
	}, c.Remote, c.Clients, stamp, c.Tracker.ViewedClientID)
	c.Offline = services.NewOfflineController(c.Remote, c.Reconciler, c.Auth, c.persistOffline)

	return c, nil
}

func (c *Container) connectRemote(ctx context.Context) error {
	db, err := remote.Open(ctx, c.Runtime.DatabaseURL)
	if err != nil {
		return err
	}
	c.db = db

	var sessions ports.SessionStore
	if c.Runtime.RedisURL != "" {
		rs, err := session.NewRedisStore(c.Runtime.RedisURL)
		if err != nil {
			logging.Logger.Warn("Redis unavailable, storing sessions in Postgres", "error", err)
		} else {
			c.redis = rs
			sessions = rs
		}
	}
	if sessions == nil {
		sessions = session.NewPostgresStore(db)
	}
	c.authenticator = remote.NewAuthenticator(remote.NewPostgresStore(db, c.Runtime.DatabaseURL), sessions)
	return nil
}

// RequireDB returns the remote database handle for admin commands
func (c *Container) RequireDB() (*sql.DB, error) {
	if c.db == nil {
		if c.Runtime.DatabaseURL == "" {
			return nil, errors.New("no database configured (set database_url or FOCUSWORK_DATABASE_URL)")
		}
		return nil, fmt.Errorf("database %s is unreachable", redactURL(c.Runtime.DatabaseURL))
	}
	return c.db, nil
}

// AcquireLock takes the device lock that keeps one writer per local store
func (c *Container) AcquireLock() (*lock.DeviceLock, error) {
	return lock.Acquire(c.Runtime.LockPath)
}

// StoreAvailable reports whether the local store accepts writes
func (c *Container) StoreAvailable() bool {
	return c.store.Available()
}

func (c *Container) persistOffline(offline bool) error {
	settings, err := config.LoadSettingsFrom(c.Runtime.SettingsPath)
	if err != nil {
		return err
	}
	settings.Offline = &offline
	return config.SaveSettingsTo(c.Runtime.SettingsPath, settings)
}

// Close stops background work and closes all resources held by the container.
// A pending auto-backup is written before the store closes.
func (c *Container) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	var errs []error
	if c.Reconciler != nil {
		c.Reconciler.Stop()
	}
	if c.scheduler != nil {
		if err := c.scheduler.Stop(ctx); err != nil {
			errs = append(errs, fmt.Errorf("failed to write pending backup: %w", err))
		}
	}
	if c.meili != nil {
		c.meili.Close()
	}
	if c.redis != nil {
		errs = append(errs, c.redis.Close())
	}
	if c.db != nil {
		errs = append(errs, c.db.Close())
	}
	if c.store != nil {
		errs = append(errs, c.store.Close())
	}
	return errors.Join(errs...)
}
