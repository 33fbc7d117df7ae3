package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"focuswork/internal/domain"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "state.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSQLiteStore_MissingKeysReturnNil(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	state, err := store.GetState(ctx)
	require.NoError(t, err)
	assert.Nil(t, state)

	client, err := store.GetClient(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, client)

	att, err := store.GetAttachment(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, att)

	backup, err := store.GetBackup(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, backup)
}

func TestSQLiteStore_StateUpsert(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	state := domain.NewAppState()
	state.CurrentClientID = "c1"
	state.CurrentActivity = domain.ActivityWork
	state.Focus[domain.ActivityWork] = 42
	require.NoError(t, store.PutState(ctx, state))

	state.Focus[domain.ActivityWork] = 43
	require.NoError(t, store.PutState(ctx, state))

	got, err := store.GetState(ctx)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "c1", got.CurrentClientID)
	assert.Equal(t, int64(43), got.Focus[domain.ActivityWork])
	assert.Equal(t, domain.ModeRunning, got.Mode())
}

func TestSQLiteStore_ClientRoundTripStripsPayloads(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	c := domain.NewClient("Acme", now)
	c.Total = 120
	c.Activities[domain.ActivityCalls] = 60
	photo := domain.NewAttachment(c.ID, domain.AttachmentPhoto, "p.png", "image/png", "aGVsbG8=", now)
	c.Photos = append(c.Photos, photo)
	require.NoError(t, store.PutClient(ctx, c))

	got, err := store.GetClient(ctx, c.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Acme", got.Name)
	assert.Equal(t, int64(120), got.Total)
	assert.Equal(t, int64(60), got.Activities[domain.ActivityCalls])
	require.Len(t, got.Photos, 1)
	assert.Equal(t, photo.ID, got.Photos[0].ID)
	assert.Empty(t, got.Photos[0].Data, "payload lives in the attachments table")
	assert.Equal(t, "aGVsbG8=", c.Photos[0].Data, "input is not mutated")
}

func TestSQLiteStore_ClosedClientKeepsInactiveFlag(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	now := time.Now()

	c := domain.NewClient("Closed Co", now)
	c.SetStatus(domain.StatusClosed, now)
	require.NoError(t, store.PutClient(ctx, c))

	var model ClientModel
	require.NoError(t, store.db.Where("id = ?", c.ID).First(&model).Error)
	assert.False(t, model.Active)
	assert.Equal(t, "closed", model.Status)
}

func TestSQLiteStore_DeleteClientCascadesAttachments(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	now := time.Now()

	c := domain.NewClient("Acme", now)
	other := domain.NewClient("Other", now)
	require.NoError(t, store.PutClient(ctx, c))
	require.NoError(t, store.PutClient(ctx, other))

	a1 := domain.NewAttachment(c.ID, domain.AttachmentFile, "a.pdf", "application/pdf", "AAAA", now)
	a2 := domain.NewAttachment(other.ID, domain.AttachmentFile, "b.pdf", "application/pdf", "BBBB", now)
	require.NoError(t, store.PutAttachment(ctx, a1))
	require.NoError(t, store.PutAttachment(ctx, a2))

	list, err := store.ListAttachmentsByClient(ctx, c.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "AAAA", list[0].Data)

	require.NoError(t, store.DeleteClient(ctx, c.ID))
	require.NoError(t, store.DeleteClient(ctx, c.ID), "delete is idempotent")

	got, err := store.GetClient(ctx, c.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	list, err = store.ListAttachmentsByClient(ctx, c.ID)
	require.NoError(t, err)
	assert.Empty(t, list)

	kept, err := store.GetAttachment(ctx, a2.ID)
	require.NoError(t, err)
	require.NotNil(t, kept)
}

func TestSQLiteStore_BackupsNewestFirst(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	older := domain.NewBackup("auto", nil, domain.NewAppState(), base)
	newer := domain.NewBackup("manual", []domain.Client{domain.NewClient("X", base)}, domain.NewAppState(), base.Add(time.Hour))
	require.NoError(t, store.PutBackup(ctx, older))
	require.NoError(t, store.PutBackup(ctx, newer))

	list, err := store.ListBackups(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, newer.ID, list[0].ID)
	assert.Len(t, list[0].Clients, 1)

	require.NoError(t, store.DeleteBackup(ctx, older.ID))
	list, err = store.ListBackups(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestSQLiteStore_ReopenIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.db")
	ctx := context.Background()

	first, err := NewSQLiteStore(path)
	require.NoError(t, err)
	c := domain.NewClient("Persisted", time.Now())
	require.NoError(t, first.PutClient(ctx, c))
	require.NoError(t, first.Close())

	second, err := NewSQLiteStore(path)
	require.NoError(t, err)
	defer second.Close()

	version, err := second.SchemaVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, latestSchemaVersion(), version)

	got, err := second.GetClient(ctx, c.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Persisted", got.Name)
}

func TestSQLiteStore_ToleratesOlderPayloads(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	legacy := ClientModel{ID: "old-1", Name: "Legacy", Payload: `{"id":"old-1","name":"Legacy","active":true,"total":5,"someFutureField":1}`}
	require.NoError(t, store.db.Create(&legacy).Error)

	got, err := store.GetClient(ctx, "old-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, domain.StatusActive, got.Status)
	assert.NotNil(t, got.Activities)
	assert.NotNil(t, got.ExtraHours)
	assert.Equal(t, int64(5), got.Total)
}

func TestOpen_DegradesWhenPathUnusable(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

	store := Open(filepath.Join(blocker, "nested", "state.db"))
	defer store.Close()

	assert.False(t, store.Available())
	assert.ErrorIs(t, store.PutClient(context.Background(), domain.NewClient("x", time.Now())), domain.ErrWriteRejected)

	clients, err := store.ListClients(context.Background())
	require.NoError(t, err)
	assert.Empty(t, clients)
}
