package remote

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"focuswork/internal/domain"
)

func openIntegrationStore(t *testing.T) *PostgresStore {
	t.Helper()
	dsn := os.Getenv("FOCUSWORK_TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("FOCUSWORK_TEST_DATABASE_URL not set")
	}
	ctx := context.Background()
	db, err := Open(ctx, dsn)
	require.NoError(t, err)
	_, err = ApplyMigrations(ctx, db)
	require.NoError(t, err)
	store := NewPostgresStore(db, dsn)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestPostgresStore_UpsertFetchDelete(t *testing.T) {
	store := openIntegrationStore(t)
	ctx := context.Background()
	owner := uuid.New().String()

	c := domain.NewClient("Integration", time.Now())
	c.Notes = "first"
	require.NoError(t, store.UpsertClient(ctx, c.ToRemote(owner)))

	fp1, err := store.FetchFingerprint(ctx, owner, c.ID)
	require.NoError(t, err)
	require.NotNil(t, fp1)
	assert.Equal(t, 5, fp1.NotesLen)

	c.Notes = "second!"
	require.NoError(t, store.UpsertClient(ctx, c.ToRemote(owner)))

	fp2, err := store.FetchFingerprint(ctx, owner, c.ID)
	require.NoError(t, err)
	assert.Greater(t, fp2.Revision, fp1.Revision)
	assert.False(t, fp1.Equal(*fp2))

	got, err := store.FetchClient(ctx, owner, c.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "second!", got.Notes)

	other, err := store.FetchClient(ctx, uuid.New().String(), c.ID)
	require.NoError(t, err)
	assert.Nil(t, other, "rows are scoped to their owner")

	require.NoError(t, store.DeleteClient(ctx, owner, c.ID))
	got, err = store.FetchClient(ctx, owner, c.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestPostgresStore_SubscribeDeliversOwnedChanges(t *testing.T) {
	store := openIntegrationStore(t)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	owner := uuid.New().String()

	events := make(chan domain.ChangeEvent, 4)
	done := make(chan error, 1)
	go func() {
		done <- store.Subscribe(ctx, owner, func(ev domain.ChangeEvent) { events <- ev })
	}()
	time.Sleep(300 * time.Millisecond)

	c := domain.NewClient("Pushed", time.Now())
	require.NoError(t, store.UpsertClient(ctx, c.ToRemote(uuid.New().String())), "another owner's row is filtered out")
	c2 := domain.NewClient("Mine", time.Now())
	require.NoError(t, store.UpsertClient(ctx, c2.ToRemote(owner)))

	select {
	case ev := <-events:
		assert.Equal(t, c2.ID, ev.ID)
		assert.Equal(t, domain.ChangeInsert, ev.Type)
		require.NotNil(t, ev.Record)
		assert.Equal(t, "Mine", ev.Record.Name)
	case <-ctx.Done():
		t.Fatal("no event received")
	}

	cancel()
	assert.NoError(t, <-done)
}
