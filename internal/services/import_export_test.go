package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"focuswork/internal/domain"
)

func newTransfer(f *serviceFixture) *TransferService {
	backups := NewBackupService(f.store, f.clients, 0)
	s := NewTransferService(f.store, f.clients, backups)
	s.now = f.clock.Now
	return s
}

func TestTransfer_ExportImportClient(t *testing.T) {
	ctx := context.Background()
	src := newFixture(t, "")
	c := src.createClient(t, "Acme")
	_, err := src.clients.AddAttachment(ctx, c.ID, AttachmentInput{Data: []byte("doc"), Name: "brief.txt"})
	require.NoError(t, err)
	_, err = src.clients.AddExtraHours(ctx, c.ID, 1, "", "setup")
	require.NoError(t, err)

	doc, err := newTransfer(src).ExportClient(ctx, c.ID)
	require.NoError(t, err)
	data, err := Encode(doc)
	require.NoError(t, err)

	dst := newFixture(t, "")
	report, err := newTransfer(dst).Import(ctx, data)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Clients)
	assert.Equal(t, domain.ExportWork, report.Type)
	assert.NotEmpty(t, report.BackupID)

	imported := dst.reload(t, c.ID)
	assert.Equal(t, "Acme", imported.Name)
	assert.Equal(t, int64(3600), imported.BillableTime)
	payload, err := dst.clients.AttachmentData(ctx, imported.Files[0].ID)
	require.NoError(t, err)
	assert.Equal(t, []byte("doc"), payload)
}

func TestTransfer_ExportAllCarriesState(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, "")
	f.createClient(t, "Acme")
	f.createClient(t, "Globex")

	doc, err := newTransfer(f).ExportAll(ctx)

	require.NoError(t, err)
	assert.Equal(t, domain.ExportBackup, doc.Type)
	assert.Equal(t, domain.ExportVersion, doc.Version)
	assert.Len(t, doc.Clients, 2)
	require.NoError(t, doc.Validate())
}

func TestTransfer_InvalidImportWritesNothing(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		field   string
	}{
		{"not json", `{"version":`, ""},
		{"missing version", `{"type":"work","client":{"id":"a","name":"A"}}`, "version"},
		{"future version", `{"version":99,"type":"work","client":{"id":"a","name":"A"}}`, "version"},
		{"unknown type", `{"version":1,"type":"archive"}`, "type"},
		{"work without client", `{"version":1,"type":"work"}`, "client"},
		{"client without name", `{"version":1,"type":"work","client":{"id":"a"}}`, "client.name"},
		{"backup second client broken", `{"version":1,"type":"backup","clients":[{"id":"a","name":"A"},{"id":"","name":"B"}]}`, "clients[1].id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			f := newFixture(t, "")

			_, err := newTransfer(f).Import(ctx, []byte(tt.payload))

			require.ErrorIs(t, err, domain.ErrInvalidImport)
			var importErr *domain.ImportError
			require.ErrorAs(t, err, &importErr)
			assert.Equal(t, tt.field, importErr.Field)

			clients, err := f.store.ListClients(ctx)
			require.NoError(t, err)
			assert.Empty(t, clients)
			backups, err := f.store.ListBackups(ctx)
			require.NoError(t, err)
			assert.Empty(t, backups, "no snapshot is taken for a rejected document")
		})
	}
}
