package storage

import (
	"context"

	"focuswork/internal/domain"
	"focuswork/internal/ports"
)

// Unavailable is the degraded store used when SQLite could not be opened.
// Reads return empty results and writes return domain.ErrWriteRejected, so the
// process keeps running and reports the condition instead of crashing.
type Unavailable struct {
	cause error
}

var _ ports.LocalStore = (*Unavailable)(nil)

// NewUnavailable wraps the error that prevented opening the real store
func NewUnavailable(cause error) *Unavailable {
	return &Unavailable{cause: cause}
}

// Cause returns the original open error
func (u *Unavailable) Cause() error { return u.cause }

func (u *Unavailable) Available() bool { return false }
func (u *Unavailable) Close() error    { return nil }

func (u *Unavailable) GetState(context.Context) (*domain.AppState, error) { return nil, nil }
func (u *Unavailable) PutState(context.Context, domain.AppState) error   { return domain.ErrWriteRejected }

func (u *Unavailable) GetClient(context.Context, string) (*domain.Client, error) { return nil, nil }
func (u *Unavailable) ListClients(context.Context) ([]domain.Client, error)      { return nil, nil }
func (u *Unavailable) PutClient(context.Context, domain.Client) error            { return domain.ErrWriteRejected }
func (u *Unavailable) DeleteClient(context.Context, string) error                { return domain.ErrWriteRejected }

func (u *Unavailable) GetAttachment(context.Context, string) (*domain.Attachment, error) {
	return nil, nil
}
func (u *Unavailable) ListAttachmentsByClient(context.Context, string) ([]domain.Attachment, error) {
	return nil, nil
}
func (u *Unavailable) PutAttachment(context.Context, domain.Attachment) error {
	return domain.ErrWriteRejected
}
func (u *Unavailable) DeleteAttachment(context.Context, string) error {
	return domain.ErrWriteRejected
}

func (u *Unavailable) GetBackup(context.Context, string) (*domain.Backup, error) { return nil, nil }
func (u *Unavailable) ListBackups(context.Context) ([]domain.Backup, error)      { return nil, nil }
func (u *Unavailable) PutBackup(context.Context, domain.Backup) error            { return domain.ErrWriteRejected }
func (u *Unavailable) DeleteBackup(context.Context, string) error                { return domain.ErrWriteRejected }
