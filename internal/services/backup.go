package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"focuswork/internal/domain"
	"focuswork/internal/logging"
	"focuswork/internal/ports"
)

// Backup reasons
const (
	BackupReasonAuto       = "auto"
	BackupReasonManual     = "manual"
	BackupReasonPreImport  = "pre-import"
	BackupReasonPreRestore = "pre-restore"
)

// ErrBackupNotFound is returned when restoring an unknown backup id
var ErrBackupNotFound = errors.New("backup not found")

// BackupService snapshots every client and the tracking state
type BackupService struct {
	backups ports.BackupStore
	clients *ClientService
	keep    int
	now     func() time.Time
	state   ports.StateStore
}

// NewBackupService creates the service. keep <= 0 disables pruning.
func NewBackupService(store ports.LocalStore, clients *ClientService, keep int) *BackupService {
	return &BackupService{
		backups: store,
		clients: clients,
		keep:    keep,
		now:     time.Now,
		state:   store,
	}
}

// Create writes a snapshot with attachment payloads included, then prunes
func (s *BackupService) Create(ctx context.Context, reason string) (domain.Backup, error) {
	clients, err := s.snapshotClients(ctx)
	if err != nil {
		return domain.Backup{}, err
	}
	state, err := s.state.GetState(ctx)
	if err != nil {
		return domain.Backup{}, fmt.Errorf("failed to read tracker state: %w", err)
	}
	if state == nil {
		fresh := domain.NewAppState()
		state = &fresh
	}

	backup := domain.NewBackup(reason, clients, *state, s.now())
	if err := s.backups.PutBackup(ctx, backup); err != nil {
		return domain.Backup{}, fmt.Errorf("failed to store backup: %w", err)
	}
	logging.Logger.Info("Backup created", "id", backup.ID, "reason", reason, "clients", len(clients))

	if _, err := s.Prune(ctx); err != nil {
		logging.Logger.Warn("Failed to prune backups", "error", err)
	}
	return backup, nil
}

// List returns backups newest first
func (s *BackupService) List(ctx context.Context) ([]domain.Backup, error) {
	return s.backups.ListBackups(ctx)
}

// Restore writes every client and the tracking state of a backup. A pre-restore
// snapshot is taken first. Clients created after the backup are kept.
func (s *BackupService) Restore(ctx context.Context, id string) (domain.Backup, error) {
	backup, err := s.backups.GetBackup(ctx, id)
	if err != nil {
		return domain.Backup{}, fmt.Errorf("failed to load backup: %w", err)
	}
	if backup == nil {
		return domain.Backup{}, fmt.Errorf("%w: %s", ErrBackupNotFound, id)
	}

	if _, err := s.Create(ctx, BackupReasonPreRestore); err != nil {
		return domain.Backup{}, fmt.Errorf("failed to snapshot before restore: %w", err)
	}
	for _, c := range backup.Clients {
		if err := s.clients.Restore(ctx, c.Clone()); err != nil {
			return domain.Backup{}, err
		}
	}
	state := backup.State.Clone()
	state.Normalize()
	if err := s.state.PutState(ctx, state); err != nil {
		return domain.Backup{}, fmt.Errorf("failed to restore tracker state: %w", err)
	}

	logging.Logger.Info("Backup restored", "id", id, "clients", len(backup.Clients))
	return *backup, nil
}

// Prune deletes the oldest backups beyond the retention count
func (s *BackupService) Prune(ctx context.Context) (int, error) {
	if s.keep <= 0 {
		return 0, nil
	}
	backups, err := s.backups.ListBackups(ctx)
	if err != nil {
		return 0, err
	}
	removed := 0
	for i := s.keep; i < len(backups); i++ {
		if err := s.backups.DeleteBackup(ctx, backups[i].ID); err != nil {
			return removed, fmt.Errorf("failed to delete backup %s: %w", backups[i].ID, err)
		}
		removed++
	}
	return removed, nil
}

func (s *BackupService) snapshotClients(ctx context.Context) ([]domain.Client, error) {
	listed, err := s.clients.List(ctx)
	if err != nil {
		return nil, err
	}
	clients := make([]domain.Client, 0, len(listed))
	for _, c := range listed {
		hydrated, err := s.clients.hydrate(ctx, c)
		if err != nil {
			return nil, err
		}
		clients = append(clients, hydrated)
	}
	return clients, nil
}

// BackupScheduler runs auto-backups on the trailing edge of a burst of saves:
// delay after the last Notify, and never more often than once per interval.
type BackupScheduler struct {
	delay    time.Duration
	interval time.Duration
	lastRun  time.Time
	mu       sync.Mutex
	now      func() time.Time
	pending  bool
	run      func(ctx context.Context) error
	running  bool
	stopped  bool
	timer    *time.Timer
}

// NewBackupScheduler creates a scheduler that calls run
func NewBackupScheduler(delay, interval time.Duration, run func(ctx context.Context) error) *BackupScheduler {
	return &BackupScheduler{
		delay:    delay,
		interval: interval,
		now:      time.Now,
		run:      run,
	}
}

// Notify records a change and (re)arms the timer
func (b *BackupScheduler) Notify() {
	if b == nil {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.stopped {
		return
	}
	b.pending = true
	wait := b.waitLocked()
	if b.timer == nil {
		b.timer = time.AfterFunc(wait, b.onTimer)
		return
	}
	b.timer.Reset(wait)
}

// Stop disarms the timer and runs a pending backup synchronously
func (b *BackupScheduler) Stop(ctx context.Context) error {
	if b == nil {
		return nil
	}

	b.mu.Lock()
	b.stopped = true
	if b.timer != nil {
		b.timer.Stop()
	}
	pending := b.pending && !b.running
	b.pending = false
	b.mu.Unlock()

	if !pending {
		return nil
	}
	return b.run(ctx)
}

func (b *BackupScheduler) waitLocked() time.Duration {
	wait := b.delay
	if b.lastRun.IsZero() {
		return wait
	}
	if next := b.lastRun.Add(b.interval).Sub(b.now()); next > wait {
		wait = next
	}
	return wait
}

func (b *BackupScheduler) onTimer() {
	b.mu.Lock()
	if b.running {
		if b.timer != nil {
			b.timer.Reset(b.delay)
		}
		b.mu.Unlock()
		return
	}
	if !b.pending || b.stopped {
		b.mu.Unlock()
		return
	}
	b.pending = false
	b.running = true
	b.mu.Unlock()

	if err := b.run(context.Background()); err != nil {
		logging.Logger.Warn("Auto-backup failed", "error", err)
	}

	b.mu.Lock()
	b.running = false
	b.lastRun = b.now()
	if b.pending && !b.stopped && b.timer != nil {
		b.timer.Reset(b.waitLocked())
	}
	b.mu.Unlock()
}
