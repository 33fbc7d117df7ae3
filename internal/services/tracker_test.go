package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"focuswork/internal/domain"
)

func newTestTracker(t *testing.T, f *serviceFixture) *Tracker {
	t.Helper()
	tracker := NewTracker(f.store, f.clients)
	tracker.now = f.clock.Now
	require.NoError(t, tracker.Load(context.Background()))
	return tracker
}

func TestTracker_MonotonicUnderJitter(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, "")
	tracker := newTestTracker(t, f)
	c := f.createClient(t, "Acme")

	start := f.clock.Now()
	require.NoError(t, tracker.Select(ctx, c.ID, domain.ActivityWork))

	offsets := []time.Duration{
		1100 * time.Millisecond,
		2050 * time.Millisecond,
		1900 * time.Millisecond, // clock jitters backwards
		2950 * time.Millisecond,
		4300 * time.Millisecond,
		5 * time.Second,
		5999 * time.Millisecond,
		7200 * time.Millisecond,
	}
	var last int64
	for _, off := range offsets {
		_, err := tracker.Tick(ctx, start.Add(off))
		require.NoError(t, err)
		total := f.reload(t, c.ID).Total
		assert.GreaterOrEqual(t, total, last, "total went backwards at %v", off)
		last = total
	}

	snap := tracker.Snapshot(ctx)
	assert.Equal(t, snap.SessionElapsed, f.reload(t, c.ID).Total)
	assert.LessOrEqual(t, last, int64(7))
}

func TestTracker_NoDriftAcrossSubSecondTicks(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, "")
	tracker := newTestTracker(t, f)
	c := f.createClient(t, "Acme")

	start := f.clock.Now()
	require.NoError(t, tracker.Select(ctx, c.ID, domain.ActivityWork))

	for i := 1; i <= 40; i++ {
		_, err := tracker.Tick(ctx, start.Add(time.Duration(i)*250*time.Millisecond))
		require.NoError(t, err)
	}

	reloaded := f.reload(t, c.ID)
	assert.Equal(t, int64(10), reloaded.Total)
	assert.Equal(t, int64(10), reloaded.Activities[domain.ActivityWork])
}

func TestTracker_BillableSplitAtWindowStart(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, "")
	f.clock.Set(time.Date(2026, time.March, 10, 8, 59, 58, 0, time.UTC))
	tracker := newTestTracker(t, f)
	c := f.createClient(t, "Acme")

	require.NoError(t, tracker.SetSchedule(ctx, domain.FocusSchedule{Enabled: true, Start: "09:00", End: "17:00"}))
	require.NoError(t, tracker.Select(ctx, c.ID, domain.ActivityWork))

	accrued, err := tracker.Tick(ctx, time.Date(2026, time.March, 10, 9, 0, 3, 0, time.UTC))
	require.NoError(t, err)
	require.True(t, accrued)

	reloaded := f.reload(t, c.ID)
	assert.Equal(t, int64(5), reloaded.Total)
	assert.Equal(t, int64(3), reloaded.BillableTime)
}

func TestTracker_NoSchedulePassesThrough(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, "")
	f.clock.Set(time.Date(2026, time.March, 10, 3, 0, 0, 0, time.UTC))
	tracker := newTestTracker(t, f)
	c := f.createClient(t, "Acme")

	require.NoError(t, tracker.Select(ctx, c.ID, domain.ActivityCalls))
	_, err := tracker.Tick(ctx, f.clock.Now().Add(90*time.Second))
	require.NoError(t, err)

	reloaded := f.reload(t, c.ID)
	assert.Equal(t, int64(90), reloaded.Total)
	assert.Equal(t, int64(90), reloaded.BillableTime)
	assert.Equal(t, int64(90), reloaded.Activities[domain.ActivityCalls])
}

func TestTracker_DayRolloverResetsFocus(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, "")
	f.clock.Set(time.Date(2026, time.March, 10, 23, 59, 58, 0, time.UTC))
	tracker := newTestTracker(t, f)
	c := f.createClient(t, "Acme")

	require.NoError(t, tracker.Select(ctx, c.ID, domain.ActivityWork))
	_, err := tracker.Tick(ctx, time.Date(2026, time.March, 10, 23, 59, 59, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, int64(1), tracker.State().Focus[domain.ActivityWork])

	_, err = tracker.Tick(ctx, time.Date(2026, time.March, 11, 0, 0, 3, 0, time.UTC))
	require.NoError(t, err)

	state := tracker.State()
	assert.Equal(t, "2026-03-11", state.Day)
	assert.Equal(t, int64(3), state.Focus[domain.ActivityWork], "only the post-midnight part counts for the new day")
	assert.Equal(t, int64(5), f.reload(t, c.ID).Total, "the client keeps every second")
}

func TestTracker_SelectRefusesClosedClient(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, "")
	tracker := newTestTracker(t, f)
	c := f.createClient(t, "Acme")
	_, err := f.clients.Close(ctx, c.ID)
	require.NoError(t, err)

	err = tracker.Select(ctx, c.ID, domain.ActivityWork)

	require.ErrorIs(t, err, domain.ErrClientClosed)
	assert.Equal(t, domain.ModeIdle, tracker.State().Mode())
}

func TestTracker_CloseDetachesAndStopsAccrual(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, "")
	tracker := newTestTracker(t, f)
	c := f.createClient(t, "Acme")
	start := f.clock.Now()

	require.NoError(t, tracker.Select(ctx, c.ID, domain.ActivityWork))
	_, err := tracker.Tick(ctx, start.Add(10*time.Second))
	require.NoError(t, err)

	f.clock.Set(start.Add(10 * time.Second))
	_, err = f.clients.Close(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ModeIdle, tracker.State().Mode())

	_, err = tracker.Tick(ctx, start.Add(time.Minute))
	require.NoError(t, err)
	assert.Equal(t, int64(10), f.reload(t, c.ID).Total)
}

func TestTracker_DeleteDetaches(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, "")
	tracker := newTestTracker(t, f)
	c := f.createClient(t, "Acme")

	require.NoError(t, tracker.Select(ctx, c.ID, domain.ActivityWork))
	require.NoError(t, f.clients.Delete(ctx, c.ID))

	state := tracker.State()
	assert.Equal(t, domain.ModeIdle, state.Mode())
	assert.Empty(t, state.ViewedClientID)
}

func TestTracker_PauseStopsAccrual(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, "")
	tracker := newTestTracker(t, f)
	c := f.createClient(t, "Acme")
	start := f.clock.Now()

	require.NoError(t, tracker.Select(ctx, c.ID, domain.ActivityWork))
	f.clock.Set(start.Add(4 * time.Second))
	require.NoError(t, tracker.Pause(ctx))
	assert.Equal(t, domain.ModePaused, tracker.State().Mode())

	_, err := tracker.Tick(ctx, start.Add(time.Minute))
	require.NoError(t, err)
	assert.Equal(t, int64(4), f.reload(t, c.ID).Total)

	f.clock.Set(start.Add(time.Minute))
	require.NoError(t, tracker.Resume(ctx, domain.ActivityMeetings))
	_, err = tracker.Tick(ctx, start.Add(time.Minute+2*time.Second))
	require.NoError(t, err)

	reloaded := f.reload(t, c.ID)
	assert.Equal(t, int64(6), reloaded.Total)
	assert.Equal(t, int64(2), reloaded.Activities[domain.ActivityMeetings])
}

func TestTracker_SelectFlushesPreviousClient(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, "")
	tracker := newTestTracker(t, f)
	first := f.createClient(t, "First")
	second := f.createClient(t, "Second")
	start := f.clock.Now()

	require.NoError(t, tracker.Select(ctx, first.ID, domain.ActivityWork))
	f.clock.Set(start.Add(3 * time.Second))
	require.NoError(t, tracker.Select(ctx, second.ID, domain.ActivityWork))

	assert.Equal(t, int64(3), f.reload(t, first.ID).Total)
	snap := tracker.Snapshot(ctx)
	assert.Equal(t, second.ID, snap.ClientID)
	assert.Equal(t, int64(0), snap.SessionElapsed)
}

func TestTracker_LoadRestoresRunningState(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, "")
	tracker := newTestTracker(t, f)
	c := f.createClient(t, "Acme")
	start := f.clock.Now()
	require.NoError(t, tracker.Select(ctx, c.ID, domain.ActivityWork))

	restarted := newTestTracker(t, f)
	assert.Equal(t, domain.ModeRunning, restarted.State().Mode())

	_, err := restarted.Tick(ctx, start.Add(30*time.Second))
	require.NoError(t, err)
	assert.Equal(t, int64(30), f.reload(t, c.ID).Total)
}

func TestTracker_InvalidScheduleRejected(t *testing.T) {
	f := newFixture(t, "")
	tracker := newTestTracker(t, f)

	err := tracker.SetSchedule(context.Background(), domain.FocusSchedule{Enabled: true, Start: "9am", End: "17:00"})

	require.ErrorIs(t, err, domain.ErrInvalidSchedule)
}

func TestTracker_OnTickReceivesSnapshot(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, "")
	tracker := newTestTracker(t, f)
	c := f.createClient(t, "Acme")

	var snaps []TrackerSnapshot
	tracker.OnTick(func(s TrackerSnapshot) { snaps = append(snaps, s) })

	require.NoError(t, tracker.Select(ctx, c.ID, domain.ActivityWork))
	_, err := tracker.Tick(ctx, f.clock.Now().Add(2*time.Second))
	require.NoError(t, err)

	require.Len(t, snaps, 2)
	assert.Equal(t, "Acme", snaps[1].ClientName)
	assert.Equal(t, int64(2), snaps[1].ClientTotal)
	assert.Equal(t, domain.ModeRunning, snaps[1].Mode)
}

func TestTracker_DefaultScheduleSeedsFreshStateOnly(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, "")
	seed := domain.FocusSchedule{Enabled: true, Start: "08:00", End: "12:00"}

	tracker := NewTracker(f.store, f.clients, WithDefaultSchedule(seed))
	tracker.now = f.clock.Now
	require.NoError(t, tracker.Load(ctx))
	assert.Equal(t, seed, tracker.State().FocusSchedule)

	saved := domain.FocusSchedule{Enabled: true, Start: "10:00", End: "18:00"}
	require.NoError(t, tracker.SetSchedule(ctx, saved))

	restarted := NewTracker(f.store, f.clients, WithDefaultSchedule(seed))
	require.NoError(t, restarted.Load(ctx))
	assert.Equal(t, saved, restarted.State().FocusSchedule)
}
