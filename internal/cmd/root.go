package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/alecthomas/kong"
	tea "github.com/charmbracelet/bubbletea"

	"focuswork/internal/config"
	"focuswork/internal/domain"
	"focuswork/internal/logging"
	"focuswork/internal/ui"
)

// CLI represents the command-line interface structure
type CLI struct {
	Version     kong.VersionFlag `help:"Show version information"`
	Debug       bool             `help:"Enable debug logging to file" short:"d"`
	DebugFile   string           `help:"Custom path for debug log file (disables automatic cleanup)"`
	MaxLogFiles int              `help:"Maximum number of log files to keep (0 = unlimited)" default:"1000"`
	Offline     bool             `help:"Do not contact the remote backend for this command"`

	Track       TrackCmd    `cmd:"track" help:"Start the interactive tracker (default)" default:"withargs"`
	Clients     ClientsCmd  `cmd:"clients" help:"Manage clients"`
	Extra       ExtraCmd    `cmd:"extra" help:"Add or remove manual extra hours"`
	Attach      AttachCmd   `cmd:"attach" help:"Manage client photos and files"`
	Schedule    ScheduleCmd `cmd:"schedule" help:"Configure the billable focus window"`
	Status      StatusCmd   `cmd:"status" help:"Show tracker state, store health and connectivity"`
	Sync        SyncCmd     `cmd:"sync" help:"Pull every client from the remote backend once"`
	Backup      BackupCmd   `cmd:"backup" help:"Create, list, restore and prune local backups"`
	Doctor      DoctorCmd   `cmd:"doctor" help:"Check the local store and remove orphaned attachment objects"`
	Export      ExportCmd   `cmd:"export" help:"Export one client or everything as JSON"`
	Import      ImportCmd   `cmd:"import" help:"Import a JSON export"`
	Login       LoginCmd    `cmd:"login" help:"Sign in to the remote backend"`
	Logout      LogoutCmd   `cmd:"logout" help:"Sign out and forget the local session"`
	Whoami      WhoamiCmd   `cmd:"whoami" help:"Show the signed-in user"`
	OfflineMode OfflineCmd  `cmd:"offline" help:"Switch offline mode on or off"`
	Remote      RemoteCmd   `cmd:"remote" help:"Administer the remote database"`
	Settings    SettingsCmd `cmd:"settings" help:"Manage settings (meta)"`

	// Internal fields (not flags)
	Container *Container       `kong:"-"`
	settings  *config.Settings `kong:"-"`
}

// SetSettings sets the settings on the CLI struct
func (c *CLI) SetSettings(settings *config.Settings) {
	c.settings = settings
}

// AfterApply initializes logging after CLI parsing and builds the container.
// Precedence: CLI flags > env vars > settings.json > defaults.
func (c *CLI) AfterApply() error {
	if c.settings != nil {
		if c.MaxLogFiles == config.DefaultMaxLogFiles {
			if _, hasEnv := os.LookupEnv("FOCUSWORK_MAX_LOG_FILES"); !hasEnv && c.settings.MaxLogFiles != nil {
				c.MaxLogFiles = *c.settings.MaxLogFiles
			}
		}
		if !c.Debug {
			if _, hasEnv := os.LookupEnv("FOCUSWORK_DEBUG"); !hasEnv && c.settings.Debug != nil && *c.settings.Debug {
				c.Debug = true
			}
		}
	}
	if v := os.Getenv("FOCUSWORK_DEBUG"); v != "" && !c.Debug {
		c.Debug, _ = strconv.ParseBool(v)
	}

	if _, err := logging.Initialize(c.Debug, c.DebugFile, c.MaxLogFiles); err != nil {
		return err
	}

	rt := config.Resolve(c.settings)
	rt.Debug = c.Debug
	rt.MaxLogFiles = c.MaxLogFiles
	if c.Offline {
		rt.Offline = true
	}

	// the container is created after logging so gorm's logger has a target
	container, err := NewContainer(context.Background(), rt)
	if err != nil {
		return fmt.Errorf("failed to initialize container: %w", err)
	}
	c.Container = container
	return nil
}

// Close closes all resources held by the CLI
func (c *CLI) Close() error {
	if c.Container != nil {
		return c.Container.Close()
	}
	return nil
}

// TrackCmd starts the TUI, the accrual loop and the sync reconciler
type TrackCmd struct {
	Activity string `help:"Activity to track when a client is given" short:"a" default:"work" enum:"work,calls,meetings,travel,admin"`
	Client   string `arg:"" optional:"" help:"Client to start tracking (id, name or id prefix)"`
	Dev      bool   `help:"Enable development mode (shows version info in the header)"`
	NoSync   bool   `help:"Do not start the sync reconciler"`
}

// Run executes the TUI
func (t *TrackCmd) Run(cli *CLI) error {
	c := cli.Container
	devLock, err := c.AcquireLock()
	if err != nil {
		return err
	}
	defer func() {
		if err := devLock.Release(); err != nil {
			logging.Logger.Warn("Failed to release device lock", "error", err)
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if t.Client != "" {
		client, err := c.Clients.Resolve(ctx, t.Client)
		if err != nil {
			return err
		}
		if err := c.Tracker.Select(ctx, client.ID, domain.ParseActivity(t.Activity)); err != nil {
			return err
		}
	}

	if !t.NoSync {
		t.startSync(ctx, c)
	}

	runDone := make(chan struct{})
	go func() {
		defer close(runDone)
		if err := c.Tracker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logging.Logger.Error("Tracker loop stopped", "error", err)
		}
	}()

	model := ui.NewModel(ctx, ui.Deps{
		Clients:    c.Clients,
		DevMode:    t.Dev,
		Offline:    c.Offline.IsOffline,
		Reconciler: c.Reconciler,
		Tracker:    c.Tracker,
	})
	defer model.Close()

	logging.Logger.Info("Starting TUI program")
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	_, runErr := p.Run()

	cancel()
	<-runDone
	c.Reconciler.Stop()

	if runErr != nil && !errors.Is(runErr, tea.ErrProgramKilled) {
		logging.Logger.Error("TUI program error", "error", runErr)
		return fmt.Errorf("error running program: %w", runErr)
	}
	logging.Logger.Info("TUI program exited normally")
	return nil
}

func (t *TrackCmd) startSync(ctx context.Context, c *Container) {
	if c.Offline.IsOffline() {
		logging.Logger.Info("Offline, sync disabled")
		return
	}
	owner := c.Auth.OwnerID()
	if owner == "" {
		logging.Logger.Info("No session, sync disabled")
		return
	}
	if _, err := c.Reconciler.PullAll(ctx, owner); err != nil {
		logging.Logger.Warn("Initial sync failed", "error", err)
	}
	if err := c.Reconciler.Start(ctx, owner); err != nil {
		logging.Logger.Warn("Failed to start sync", "error", err)
	}
}
