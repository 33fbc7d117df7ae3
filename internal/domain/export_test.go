package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportDocumentValidate(t *testing.T) {
	good := NewClient("Acme", testNow)

	tests := []struct {
		name  string
		doc   ExportDocument
		field string
	}{
		{"missing version", ExportDocument{Type: ExportWork, Client: &good}, "version"},
		{"future version", ExportDocument{Version: 99, Type: ExportWork, Client: &good}, "version"},
		{"missing type", ExportDocument{Version: 1, Client: &good}, "type"},
		{"unknown type", ExportDocument{Version: 1, Type: "zip", Client: &good}, "type"},
		{"work without client", ExportDocument{Version: 1, Type: ExportWork}, "client"},
		{"client without name", ExportDocument{Version: 1, Type: ExportWork, Client: &Client{ID: "x"}}, "client.name"},
		{"backup without clients", ExportDocument{Version: 1, Type: ExportBackup}, "clients"},
		{"backup with duplicate ids", ExportDocument{Version: 1, Type: ExportBackup, Clients: []Client{good, good}}, "clients[1].id"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.doc.Validate()
			require.ErrorIs(t, err, ErrInvalidImport)
			var importErr *ImportError
			require.ErrorAs(t, err, &importErr)
			assert.Equal(t, tt.field, importErr.Field)
		})
	}
}

func TestExportDocumentValidate_Accepts(t *testing.T) {
	c := NewClient("Acme", testNow)

	work := ExportDocument{Version: 1, Type: ExportWork, Client: &c}
	require.NoError(t, work.Validate())
	assert.Len(t, work.ImportedClients(), 1)

	backup := ExportDocument{Version: 1, Type: ExportBackup, Clients: []Client{}}
	require.NoError(t, backup.Validate())
	assert.Empty(t, backup.ImportedClients())
}
