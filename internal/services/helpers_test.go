package services

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"focuswork/internal/adapters/storage"
	"focuswork/internal/domain"
	"focuswork/internal/ports"
	portsmocks "focuswork/internal/ports/mocks"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock(t time.Time) *fakeClock {
	return &fakeClock{now: t}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Set(t time.Time) {
	c.mu.Lock()
	c.now = t
	c.mu.Unlock()
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func newTestStore(t *testing.T) ports.LocalStore {
	t.Helper()
	store, err := storage.NewSQLiteStore(filepath.Join(t.TempDir(), "state.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

type serviceFixture struct {
	clients *ClientService
	clock   *fakeClock
	remote  *portsmocks.MockRemote
	stamp   *SaveStamp
	store   ports.LocalStore
}

// newFixture wires a client service over a real SQLite store. owner is the
// signed-in user; "" keeps the remote mock untouched.
func newFixture(t *testing.T, owner string, opts ...ClientServiceOption) *serviceFixture {
	t.Helper()
	clock := newFakeClock(time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC))
	store := newTestStore(t)
	remote := portsmocks.NewMockRemote(t)
	stamp := NewSaveStamp()
	stamp.now = clock.Now

	opts = append([]ClientServiceOption{WithClock(clock.Now)}, opts...)
	clients := NewClientService(store, remote, stamp, func() string { return owner }, opts...)
	return &serviceFixture{
		clients: clients,
		clock:   clock,
		remote:  remote,
		stamp:   stamp,
		store:   store,
	}
}

func (f *serviceFixture) createClient(t *testing.T, name string) domain.Client {
	t.Helper()
	c, err := f.clients.Create(context.Background(), name)
	require.NoError(t, err)
	return c
}

func (f *serviceFixture) reload(t *testing.T, id string) domain.Client {
	t.Helper()
	c, err := f.store.GetClient(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, c)
	return *c
}
