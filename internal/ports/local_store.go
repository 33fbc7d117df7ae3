package ports

import (
	"context"

	"focuswork/internal/domain"
)

// StateStore persists the singleton tracking state.
// GetState returns (nil, nil) when nothing was saved yet.
type StateStore interface {
	GetState(ctx context.Context) (*domain.AppState, error)
	PutState(ctx context.Context, state domain.AppState) error
}

// ClientStore persists client records keyed by id.
// GetClient returns (nil, nil) for a missing id.
type ClientStore interface {
	DeleteClient(ctx context.Context, id string) error
	GetClient(ctx context.Context, id string) (*domain.Client, error)
	ListClients(ctx context.Context) ([]domain.Client, error)
	PutClient(ctx context.Context, client domain.Client) error
}

// AttachmentStore persists attachment payloads, indexed by owning client
type AttachmentStore interface {
	DeleteAttachment(ctx context.Context, id string) error
	GetAttachment(ctx context.Context, id string) (*domain.Attachment, error)
	ListAttachmentsByClient(ctx context.Context, clientID string) ([]domain.Attachment, error)
	PutAttachment(ctx context.Context, attachment domain.Attachment) error
}

// BackupStore persists backup snapshots
type BackupStore interface {
	DeleteBackup(ctx context.Context, id string) error
	GetBackup(ctx context.Context, id string) (*domain.Backup, error)
	ListBackups(ctx context.Context) ([]domain.Backup, error)
	PutBackup(ctx context.Context, backup domain.Backup) error
}

// LocalStore is the composite durable per-device store
type LocalStore interface {
	StateStore
	ClientStore
	AttachmentStore
	BackupStore
	// Available reports whether the store initialized; when false reads are empty
	// and writes return domain.ErrWriteRejected.
	Available() bool
	Close() error
}
