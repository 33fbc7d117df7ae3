package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"focuswork/internal/domain"
)

var testSyncConfig = ReconcilerConfig{
	PollInterval:     10 * time.Millisecond,
	ReconnectBackoff: 10 * time.Millisecond,
	SelfSaveWindow:   2 * time.Second,
	TypingCooldown:   1500 * time.Millisecond,
}

func newTestReconciler(f *serviceFixture, viewed string) (*Reconciler, *[]SyncEvent) {
	r := NewReconciler(testSyncConfig, f.remote, f.clients, f.stamp, func() string { return viewed })
	r.typing.now = f.clock.Now
	var events []SyncEvent
	r.OnSync(func(ev SyncEvent) { events = append(events, ev) })
	return r, &events
}

// seedLocal creates a client without touching the remote mock or the save stamp
func seedLocal(t *testing.T, f *serviceFixture, name string) domain.Client {
	t.Helper()
	c := domain.NewClient(name, f.clock.Now())
	require.NoError(t, f.store.PutClient(context.Background(), c))
	return c
}

func TestReconciler_DropsSelfEcho(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, "")
	c := f.createClient(t, "Acme") // marks the save stamp
	r, events := newTestReconciler(f, c.ID)

	f.clock.Advance(500 * time.Millisecond)
	r.handleEvent(ctx, "user-1", domain.ChangeEvent{
		ID:     c.ID,
		Type:   domain.ChangeUpdate,
		Record: &domain.RemoteClient{ID: c.ID, Name: "Echo"},
	})

	assert.Equal(t, "Acme", f.reload(t, c.ID).Name)
	assert.Empty(t, *events)
}

func TestReconciler_AppliesForeignChangeAfterWindow(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, "")
	c := f.createClient(t, "Acme")
	r, events := newTestReconciler(f, c.ID)

	f.clock.Advance(3 * time.Second)
	r.handleEvent(ctx, "user-1", domain.ChangeEvent{
		ID:     c.ID,
		Type:   domain.ChangeUpdate,
		Record: &domain.RemoteClient{ID: c.ID, Name: "Acme Ltd", Notes: "from phone"},
	})

	reloaded := f.reload(t, c.ID)
	assert.Equal(t, "Acme Ltd", reloaded.Name)
	assert.Equal(t, "from phone", reloaded.Notes)
	require.Len(t, *events, 1)
	assert.Equal(t, SyncEvent{ClientID: c.ID, ResetEditors: true}, (*events)[0])
}

func TestReconciler_FetchesRowWhenRecordMissing(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, "")
	c := seedLocal(t, f, "Acme")
	r, events := newTestReconciler(f, "other")
	f.remote.EXPECT().FetchClient(mock.Anything, "user-1", c.ID).
		Return(&domain.RemoteClient{ID: c.ID, Name: "Fetched"}, nil).Once()

	r.handleEvent(ctx, "user-1", domain.ChangeEvent{ID: c.ID, Type: domain.ChangeUpdate})

	assert.Equal(t, "Fetched", f.reload(t, c.ID).Name)
	require.Len(t, *events, 1)
	assert.False(t, (*events)[0].ResetEditors)
}

func TestReconciler_AppliesRemoteDelete(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, "")
	c := seedLocal(t, f, "Acme")
	r, events := newTestReconciler(f, c.ID)

	r.handleEvent(ctx, "user-1", domain.ChangeEvent{ID: c.ID, Type: domain.ChangeDelete})

	got, err := f.store.GetClient(ctx, c.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
	require.Len(t, *events, 1)
	assert.True(t, (*events)[0].Deleted)
}

func TestReconciler_PollTakesBaselineThenApplies(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, "")
	c := seedLocal(t, f, "Acme")
	r, events := newTestReconciler(f, c.ID)

	base := domain.Fingerprint{ID: c.ID, Name: "Acme", Revision: 1}
	changed := base
	changed.Revision = 2
	changed.NotesLen = 11

	f.remote.EXPECT().FetchFingerprint(mock.Anything, "user-1", c.ID).Return(&base, nil).Twice()
	r.pollOnce(ctx, "user-1")
	r.pollOnce(ctx, "user-1")
	assert.Empty(t, *events, "first observation and an unchanged fingerprint apply nothing")

	f.remote.EXPECT().FetchFingerprint(mock.Anything, "user-1", c.ID).Return(&changed, nil).Once()
	f.remote.EXPECT().FetchClient(mock.Anything, "user-1", c.ID).
		Return(&domain.RemoteClient{ID: c.ID, Notes: "hello world"}, nil).Once()
	r.pollOnce(ctx, "user-1")

	assert.Equal(t, "hello world", f.reload(t, c.ID).Notes)
	require.Len(t, *events, 1)
	assert.True(t, (*events)[0].ResetEditors)
}

func TestReconciler_PollSkipsWhileTyping(t *testing.T) {
	f := newFixture(t, "")
	c := seedLocal(t, f, "Acme")
	r, _ := newTestReconciler(f, c.ID)

	r.MarkTyping()
	f.clock.Advance(time.Second)
	r.pollOnce(context.Background(), "user-1")
	// no remote expectation: any call would fail the test
}

func TestReconciler_PollIgnoresSelfSave(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, "")
	c := seedLocal(t, f, "Acme")
	r, events := newTestReconciler(f, c.ID)

	base := domain.Fingerprint{ID: c.ID, Revision: 1}
	next := domain.Fingerprint{ID: c.ID, Revision: 2}
	f.remote.EXPECT().FetchFingerprint(mock.Anything, "user-1", c.ID).Return(&base, nil).Once()
	r.pollOnce(ctx, "user-1")

	f.stamp.Mark()
	f.remote.EXPECT().FetchFingerprint(mock.Anything, "user-1", c.ID).Return(&next, nil).Once()
	r.pollOnce(ctx, "user-1")

	assert.Empty(t, *events)
}

func TestReconciler_PullAll(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, "")
	shared := seedLocal(t, f, "Shared")
	localOnly := seedLocal(t, f, "Local only")
	r, _ := newTestReconciler(f, "")

	f.remote.EXPECT().FetchClients(mock.Anything, "user-1").Return([]domain.RemoteClient{
		{ID: shared.ID, Name: "Shared (renamed)"},
		{ID: "remote-only", Name: "Remote only", CreatedAt: f.clock.Now()},
	}, nil).Once()
	f.remote.EXPECT().UpsertClient(mock.Anything, mock.MatchedBy(func(rc domain.RemoteClient) bool {
		return rc.ID == localOnly.ID && rc.OwnerID == "user-1"
	})).Return(nil).Once()

	report, err := r.PullAll(ctx, "user-1")

	require.NoError(t, err)
	assert.Equal(t, SyncReport{Pulled: 2, Pushed: 1}, report)
	assert.Equal(t, "Shared (renamed)", f.reload(t, shared.ID).Name)
	assert.Equal(t, "Remote only", f.reload(t, "remote-only").Name)
}

func TestReconciler_PullAllRequiresSession(t *testing.T) {
	f := newFixture(t, "")
	r, _ := newTestReconciler(f, "")

	_, err := r.PullAll(context.Background(), "")

	require.ErrorIs(t, err, domain.ErrNoSession)
}

func TestReconciler_StartStopResubscribes(t *testing.T) {
	f := newFixture(t, "")
	r, _ := newTestReconciler(f, "")

	subscribed := make(chan struct{}, 8)
	f.remote.EXPECT().Subscribe(mock.Anything, "user-1", mock.Anything).
		RunAndReturn(func(ctx context.Context, _ string, _ func(domain.ChangeEvent)) error {
			select {
			case subscribed <- struct{}{}:
			default:
			}
			return errors.New("connection reset")
		})

	require.NoError(t, r.Start(context.Background(), "user-1"))
	assert.True(t, r.Running())

	for range 2 {
		select {
		case <-subscribed:
		case <-time.After(2 * time.Second):
			t.Fatal("change feed was not resubscribed")
		}
	}

	r.Stop()
	assert.False(t, r.Running())
}
