package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"focuswork/internal/domain"
	"focuswork/internal/logging"
	"focuswork/internal/ports"
)

// ImportReport summarizes an applied import
type ImportReport struct {
	BackupID string
	Clients  int
	Type     domain.ExportType
}

// TransferService moves clients between devices as JSON documents
type TransferService struct {
	backups *BackupService
	clients *ClientService
	now     func() time.Time
	state   ports.StateStore
}

// NewTransferService creates the service
func NewTransferService(state ports.StateStore, clients *ClientService, backups *BackupService) *TransferService {
	return &TransferService{
		backups: backups,
		clients: clients,
		now:     time.Now,
		state:   state,
	}
}

// ExportClient builds a "work" document for one client, payloads included
func (s *TransferService) ExportClient(ctx context.Context, id string) (domain.ExportDocument, error) {
	c, err := s.clients.Get(ctx, id)
	if err != nil {
		return domain.ExportDocument{}, err
	}
	return domain.ExportDocument{
		Client:     &c,
		ExportedAt: s.now().UTC(),
		Type:       domain.ExportWork,
		Version:    domain.ExportVersion,
	}, nil
}

// ExportAll builds a "backup" document with every client and the tracking state
func (s *TransferService) ExportAll(ctx context.Context) (domain.ExportDocument, error) {
	clients, err := s.backups.snapshotClients(ctx)
	if err != nil {
		return domain.ExportDocument{}, err
	}
	state, err := s.state.GetState(ctx)
	if err != nil {
		return domain.ExportDocument{}, fmt.Errorf("failed to read tracker state: %w", err)
	}
	return domain.ExportDocument{
		Clients:    clients,
		ExportedAt: s.now().UTC(),
		State:      state,
		Type:       domain.ExportBackup,
		Version:    domain.ExportVersion,
	}, nil
}

// Encode renders a document as indented JSON
func Encode(doc domain.ExportDocument) ([]byte, error) {
	return json.MarshalIndent(doc, "", "  ")
}

// Import validates the whole document before writing anything. A snapshot of the
// current data is taken first so the import can be rolled back with a restore.
func (s *TransferService) Import(ctx context.Context, data []byte) (ImportReport, error) {
	var doc domain.ExportDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return ImportReport{}, &domain.ImportError{Reason: err.Error()}
	}
	if err := doc.Validate(); err != nil {
		return ImportReport{}, err
	}

	backup, err := s.backups.Create(ctx, BackupReasonPreImport)
	if err != nil {
		return ImportReport{}, fmt.Errorf("failed to snapshot before import: %w", err)
	}

	clients := doc.ImportedClients()
	for _, c := range clients {
		if err := s.clients.Restore(ctx, c); err != nil {
			return ImportReport{}, err
		}
	}
	if doc.Type == domain.ExportBackup && doc.State != nil {
		state := doc.State.Clone()
		state.Normalize()
		if err := s.state.PutState(ctx, state); err != nil {
			return ImportReport{}, fmt.Errorf("failed to import tracker state: %w", err)
		}
	}

	logging.Logger.Info("Import applied", "type", doc.Type, "clients", len(clients), "backup", backup.ID)
	return ImportReport{BackupID: backup.ID, Clients: len(clients), Type: doc.Type}, nil
}
