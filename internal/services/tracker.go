package services

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
	"sync"
	"time"

	"focuswork/internal/domain"
	"focuswork/internal/logging"
	"focuswork/internal/ports"
)

// TickInterval is how often Run samples the clock
const TickInterval = 250 * time.Millisecond

// TrackerSnapshot is a read-only view of the tracker for renderers
type TrackerSnapshot struct {
	Activity       domain.ActivityKind
	Billable       int64
	ClientID       string
	ClientName     string
	ClientTotal    int64
	Day            string
	Focus          map[domain.ActivityKind]int64
	Mode           domain.TrackerMode
	Schedule       domain.FocusSchedule
	SessionElapsed int64
	ViewedClientID string
}

// Tracker is the time accounting engine. Every operation runs under one mutex,
// so accrual never interleaves with a switch, close or delete.
type Tracker struct {
	clients         *ClientService
	defaultSchedule domain.FocusSchedule
	listeners       []func(TrackerSnapshot)
	mu              sync.Mutex
	now             func() time.Time
	state           domain.AppState
	store           ports.StateStore
}

// TrackerOption configures a Tracker
type TrackerOption func(*Tracker)

// WithDefaultSchedule sets the billable window used when no state has been saved yet
func WithDefaultSchedule(schedule domain.FocusSchedule) TrackerOption {
	return func(t *Tracker) {
		t.defaultSchedule = schedule
	}
}

// NewTracker creates a tracker. Call Load before use.
func NewTracker(store ports.StateStore, clients *ClientService, opts ...TrackerOption) *Tracker {
	t := &Tracker{
		clients:         clients,
		defaultSchedule: domain.DefaultFocusSchedule(),
		now:             time.Now,
		state:           domain.NewAppState(),
		store:           store,
	}
	for _, opt := range opts {
		opt(t)
	}
	clients.OnClientRemoved(t.Detach)
	return t
}

// Load restores the persisted state. Time spent RUNNING while no process was
// attached is accrued on the first tick.
func (t *Tracker) Load(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	saved, err := t.store.GetState(ctx)
	if err != nil {
		return fmt.Errorf("failed to load tracker state: %w", err)
	}
	if saved != nil {
		t.state = saved.Clone()
		t.state.Normalize()
	} else {
		now := t.now()
		t.state = domain.NewAppState()
		t.state.Day = domain.DayKey(now)
		t.state.FocusSchedule = t.defaultSchedule
		t.state.LastTick = now
	}

	logging.Logger.Info("Tracker state loaded",
		"mode", t.state.Mode(),
		"client", t.state.CurrentClientID,
		"day", t.state.Day)
	return nil
}

// OnTick registers a listener notified after every accruing tick and transition
func (t *Tracker) OnTick(fn func(TrackerSnapshot)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.listeners = append(t.listeners, fn)
}

// Snapshot returns the current view
func (t *Tracker) Snapshot(ctx context.Context) TrackerSnapshot {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.snapshotLocked(ctx)
}

// State returns a copy of the raw tracking state
func (t *Tracker) State() domain.AppState {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state.Clone()
}

// Select starts tracking clientID under activity, flushing the previous client first
func (t *Tracker) Select(ctx context.Context, clientID string, activity domain.ActivityKind) error {
	if !activity.IsValid() {
		activity = domain.ActivityWork
	}
	return t.transition(ctx, func(now time.Time) ([]string, error) {
		c, err := t.clients.load(ctx, clientID)
		if err != nil {
			return nil, err
		}
		if !c.Active {
			return nil, fmt.Errorf("%w: %s", domain.ErrClientClosed, c.Name)
		}

		var push []string
		if prev := t.state.CurrentClientID; prev != "" && prev != clientID {
			push = append(push, prev)
		}
		t.state.CurrentActivity = activity
		t.state.CurrentClientID = clientID
		t.state.LastTick = now
		t.state.SessionElapsed = 0
		t.state.ViewedClientID = clientID
		return append(push, clientID), nil
	})
}

// Pause keeps the client selected but stops accrual
func (t *Tracker) Pause(ctx context.Context) error {
	return t.transition(ctx, func(now time.Time) ([]string, error) {
		if t.state.CurrentClientID == "" {
			return nil, errors.New("no client selected")
		}
		t.state.CurrentActivity = ""
		t.state.LastTick = now
		return []string{t.state.CurrentClientID}, nil
	})
}

// Resume restarts accrual on the selected client
func (t *Tracker) Resume(ctx context.Context, activity domain.ActivityKind) error {
	if !activity.IsValid() {
		activity = domain.ActivityWork
	}
	return t.SwitchActivity(ctx, activity)
}

// SwitchActivity changes the activity that receives accrual
func (t *Tracker) SwitchActivity(ctx context.Context, activity domain.ActivityKind) error {
	if !activity.IsValid() {
		return fmt.Errorf("invalid activity %q", activity)
	}
	return t.transition(ctx, func(now time.Time) ([]string, error) {
		if t.state.CurrentClientID == "" {
			return nil, errors.New("no client selected")
		}
		if t.state.CurrentActivity == "" {
			t.state.LastTick = now
		}
		t.state.CurrentActivity = activity
		return []string{t.state.CurrentClientID}, nil
	})
}

// Stop returns to IDLE
func (t *Tracker) Stop(ctx context.Context) error {
	return t.transition(ctx, func(now time.Time) ([]string, error) {
		prev := t.state.CurrentClientID
		t.state.CurrentActivity = ""
		t.state.CurrentClientID = ""
		t.state.LastTick = now
		t.state.SessionElapsed = 0
		if prev == "" {
			return nil, nil
		}
		return []string{prev}, nil
	})
}

// Detach drops clientID from the tracker without accruing. ClientService calls it
// after a client is closed or deleted.
func (t *Tracker) Detach(clientID string) {
	t.mu.Lock()
	changed := false
	if t.state.CurrentClientID == clientID {
		t.state.CurrentActivity = ""
		t.state.CurrentClientID = ""
		t.state.LastTick = t.now()
		t.state.SessionElapsed = 0
		changed = true
	}
	if t.state.ViewedClientID == clientID {
		t.state.ViewedClientID = ""
		changed = true
	}
	if !changed {
		t.mu.Unlock()
		return
	}
	ctx := context.Background()
	if err := t.store.PutState(ctx, t.state); err != nil {
		logging.Logger.Warn("Failed to persist tracker state", "error", err)
	}
	snap := t.snapshotLocked(ctx)
	listeners := slices.Clone(t.listeners)
	t.mu.Unlock()

	logging.Logger.Info("Tracker detached from client", "client", clientID)
	for _, fn := range listeners {
		fn(snap)
	}
}

// SetSchedule replaces the billable window. Time already tracked keeps the
// classification it had.
func (t *Tracker) SetSchedule(ctx context.Context, schedule domain.FocusSchedule) error {
	if schedule.Enabled {
		if err := schedule.Validate(); err != nil {
			return err
		}
	}
	return t.transition(ctx, func(time.Time) ([]string, error) {
		t.state.FocusSchedule = schedule
		return nil, nil
	})
}

// SetViewed records which client the user is looking at; the poll channel watches it
func (t *Tracker) SetViewed(ctx context.Context, clientID string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state.ViewedClientID == clientID {
		return nil
	}
	t.state.ViewedClientID = clientID
	return t.store.PutState(ctx, t.state)
}

// ViewedClientID returns the client on screen, falling back to the tracked one
func (t *Tracker) ViewedClientID() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state.ViewedClientID != "" {
		return t.state.ViewedClientID
	}
	return t.state.CurrentClientID
}

// Tick accrues whole seconds elapsed since the last tick. It reports whether
// anything was accrued.
func (t *Tracker) Tick(ctx context.Context, now time.Time) (bool, error) {
	t.mu.Lock()
	accrued, err := t.tickLocked(ctx, now)
	if !accrued {
		t.mu.Unlock()
		return false, err
	}
	snap := t.snapshotLocked(ctx)
	listeners := slices.Clone(t.listeners)
	t.mu.Unlock()

	for _, fn := range listeners {
		fn(snap)
	}
	return true, err
}

// Run drives Tick at a fixed rate until ctx is done. The reference point only
// advances by whole seconds so the sub-second remainder is never lost.
func (t *Tracker) Run(ctx context.Context) error {
	ticker := time.NewTicker(TickInterval)
	defer ticker.Stop()

	ref := t.now()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			now := t.now()
			elapsed := now.Sub(ref)
			if elapsed < time.Second {
				continue
			}
			ref = now.Add(-(elapsed % time.Second))
			if _, err := t.Tick(ctx, now); err != nil {
				logging.Logger.Warn("Tracker tick failed", "error", err)
			}
		}
	}
}

// transition flushes pending accrual, applies fn and persists. fn returns the
// clients whose remote copy should be refreshed.
func (t *Tracker) transition(ctx context.Context, fn func(now time.Time) ([]string, error)) error {
	t.mu.Lock()
	now := t.now()
	if _, err := t.tickLocked(ctx, now); err != nil {
		logging.Logger.Warn("Failed to flush accrual before transition", "error", err)
	}

	before := t.state.Clone()
	push, err := fn(now)
	if err != nil {
		t.state = before
		t.mu.Unlock()
		return err
	}
	if err := t.store.PutState(ctx, t.state); err != nil {
		t.mu.Unlock()
		return fmt.Errorf("failed to persist tracker state: %w", err)
	}
	snap := t.snapshotLocked(ctx)
	listeners := slices.Clone(t.listeners)
	t.mu.Unlock()

	logging.Logger.Info("Tracker transition",
		"mode", snap.Mode,
		"client", snap.ClientID,
		"activity", snap.Activity)

	for _, id := range push {
		if err := t.clients.Push(ctx, id); err != nil {
			logging.Logger.Debug("Skipped remote push", "client", id, "error", err)
		}
	}
	for _, fn := range listeners {
		fn(snap)
	}
	return nil
}

// tickLocked is the accounting step. Caller holds t.mu.
func (t *Tracker) tickLocked(ctx context.Context, now time.Time) (bool, error) {
	s := &t.state
	rolled := false
	if day := domain.DayKey(now); day != s.Day {
		s.Day = day
		s.Focus = make(map[domain.ActivityKind]int64)
		rolled = true
	}

	if s.Mode() != domain.ModeRunning || s.LastTick.IsZero() || now.Before(s.LastTick) {
		s.LastTick = now
		return false, t.persistRollover(ctx, rolled)
	}

	delta := int64(now.Sub(s.LastTick) / time.Second)
	if delta <= 0 {
		return false, t.persistRollover(ctx, rolled)
	}

	start := s.LastTick
	activity := s.CurrentActivity
	billable := s.FocusSchedule.BillableSeconds(start, delta)
	_, err := t.clients.UpdateLocal(ctx, s.CurrentClientID, func(c *domain.Client) error {
		if !c.Active {
			return domain.ErrClientClosed
		}
		c.Activities[activity] += delta
		c.BillableTime += billable
		c.Total += delta
		c.UpdatedAt = now.UTC()
		return nil
	})
	if errors.Is(err, domain.ErrClientClosed) || errors.Is(err, domain.ErrClientNotFound) {
		s.LastTick = now
		return false, t.persistRollover(ctx, rolled)
	}
	if err != nil {
		// keep LastTick so the interval is retried on the next tick
		return false, err
	}

	focus := delta
	if rolled {
		focus = postMidnightSeconds(start, delta, now)
	}
	s.Focus[activity] += focus
	s.SessionElapsed += delta
	s.LastTick = start.Add(time.Duration(delta) * time.Second)

	if err := t.store.PutState(ctx, *s); err != nil {
		return true, fmt.Errorf("failed to persist tracker state: %w", err)
	}
	return true, nil
}

func (t *Tracker) persistRollover(ctx context.Context, rolled bool) error {
	if !rolled {
		return nil
	}
	return t.store.PutState(ctx, t.state)
}

func (t *Tracker) snapshotLocked(ctx context.Context) TrackerSnapshot {
	s := t.state
	snap := TrackerSnapshot{
		Activity:       s.CurrentActivity,
		ClientID:       s.CurrentClientID,
		Day:            s.Day,
		Focus:          maps.Clone(s.Focus),
		Mode:           s.Mode(),
		Schedule:       s.FocusSchedule,
		SessionElapsed: s.SessionElapsed,
		ViewedClientID: s.ViewedClientID,
	}
	if s.CurrentClientID != "" {
		if c, err := t.clients.load(ctx, s.CurrentClientID); err == nil {
			snap.Billable = c.BillableTime
			snap.ClientName = c.Name
			snap.ClientTotal = c.Total
		}
	}
	return snap
}

// postMidnightSeconds returns the part of [start, start+delta) that falls on now's day
func postMidnightSeconds(start time.Time, delta int64, now time.Time) int64 {
	y, m, d := now.Date()
	midnight := time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	end := start.Add(time.Duration(delta) * time.Second)
	if !start.Before(midnight) {
		return delta
	}
	if !end.After(midnight) {
		return 0
	}
	return int64(end.Sub(midnight) / time.Second)
}
