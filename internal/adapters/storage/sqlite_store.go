package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/mattn/go-sqlite3"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"focuswork/internal/config"
	"focuswork/internal/domain"
	"focuswork/internal/logging"
	"focuswork/internal/ports"
)

const retries = 3

// SQLiteStore implements ports.LocalStore using GORM
type SQLiteStore struct {
	db *gorm.DB
}

// Verify interface compliance at compile time
var _ ports.LocalStore = (*SQLiteStore)(nil)

// Open returns a usable local store. It never fails: when the database cannot be
// opened the returned store is Unavailable and the cause is logged.
func Open(dbPath string) ports.LocalStore {
	store, err := NewSQLiteStore(dbPath)
	if err != nil {
		logging.Logger.Error("Local store unavailable, running degraded", "path", dbPath, "error", err)
		return NewUnavailable(err)
	}
	return store
}

// NewSQLiteStore opens (creating if needed) the database at dbPath and migrates it
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	dbPath = config.ExpandPath(dbPath)

	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		PrepareStmt: false,
		NowFunc:     func() time.Time { return time.Now().UTC() },
		Logger:      newGormLogger(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// WAL lets the tracker write while CLI commands read
	db.Exec("PRAGMA journal_mode=WAL")
	db.Exec("PRAGMA busy_timeout=5000")
	db.Exec("PRAGMA synchronous=NORMAL")

	if err := withRetry(func() error { return migrate(db) }, retries); err != nil {
		if sqlDB, dbErr := db.DB(); dbErr == nil {
			sqlDB.Close()
		}
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(0)

	return &SQLiteStore{db: db}, nil
}

// Available always reports true for an opened store
func (s *SQLiteStore) Available() bool { return true }

// Close closes the database connection
func (s *SQLiteStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// SchemaVersion returns the migration level recorded in store_meta
func (s *SQLiteStore) SchemaVersion(ctx context.Context) (int, error) {
	return readSchemaVersion(s.db.WithContext(ctx))
}

// GetState implements StateStore.GetState
func (s *SQLiteStore) GetState(ctx context.Context) (*domain.AppState, error) {
	var model AppStateModel
	found, err := s.first(ctx, &model, "id = ?", 1)
	if err != nil || !found {
		return nil, err
	}
	state, err := stateModelToDomain(model)
	if err != nil {
		return nil, err
	}
	return &state, nil
}

// PutState implements StateStore.PutState
func (s *SQLiteStore) PutState(ctx context.Context, state domain.AppState) error {
	model, err := stateToModel(state)
	if err != nil {
		return err
	}
	return s.upsert(ctx, &model)
}

// GetClient implements ClientStore.GetClient
func (s *SQLiteStore) GetClient(ctx context.Context, id string) (*domain.Client, error) {
	var model ClientModel
	found, err := s.first(ctx, &model, "id = ?", id)
	if err != nil || !found {
		return nil, err
	}
	client, err := clientModelToDomain(model)
	if err != nil {
		return nil, err
	}
	return &client, nil
}

// ListClients implements ClientStore.ListClients
func (s *SQLiteStore) ListClients(ctx context.Context) ([]domain.Client, error) {
	var models []ClientModel
	err := withRetry(func() error {
		return s.db.WithContext(ctx).Find(&models).Error
	}, retries)
	if err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}

	result := make([]domain.Client, 0, len(models))
	for _, m := range models {
		c, err := clientModelToDomain(m)
		if err != nil {
			logging.Logger.Warn("Skipping unreadable client record", "id", m.ID, "error", err)
			continue
		}
		result = append(result, c)
	}
	return result, nil
}

// PutClient implements ClientStore.PutClient
func (s *SQLiteStore) PutClient(ctx context.Context, client domain.Client) error {
	model, err := clientToModel(client)
	if err != nil {
		return err
	}
	return s.upsert(ctx, &model)
}

// DeleteClient removes the client and every attachment payload it owns
func (s *SQLiteStore) DeleteClient(ctx context.Context, id string) error {
	return withRetry(func() error {
		return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("client_id = ?", id).Delete(&AttachmentModel{}).Error; err != nil {
				return fmt.Errorf("failed to delete attachments of %s: %w", id, err)
			}
			if err := tx.Where("id = ?", id).Delete(&ClientModel{}).Error; err != nil {
				return fmt.Errorf("failed to delete client %s: %w", id, err)
			}
			return nil
		})
	}, retries)
}

// GetAttachment implements AttachmentStore.GetAttachment
func (s *SQLiteStore) GetAttachment(ctx context.Context, id string) (*domain.Attachment, error) {
	var model AttachmentModel
	found, err := s.first(ctx, &model, "id = ?", id)
	if err != nil || !found {
		return nil, err
	}
	a, err := attachmentModelToDomain(model)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// ListAttachmentsByClient implements AttachmentStore.ListAttachmentsByClient
func (s *SQLiteStore) ListAttachmentsByClient(ctx context.Context, clientID string) ([]domain.Attachment, error) {
	var models []AttachmentModel
	err := withRetry(func() error {
		return s.db.WithContext(ctx).Where("client_id = ?", clientID).Find(&models).Error
	}, retries)
	if err != nil {
		return nil, fmt.Errorf("failed to list attachments: %w", err)
	}

	result := make([]domain.Attachment, 0, len(models))
	for _, m := range models {
		a, err := attachmentModelToDomain(m)
		if err != nil {
			logging.Logger.Warn("Skipping unreadable attachment", "id", m.ID, "error", err)
			continue
		}
		result = append(result, a)
	}
	return result, nil
}

// PutAttachment implements AttachmentStore.PutAttachment
func (s *SQLiteStore) PutAttachment(ctx context.Context, attachment domain.Attachment) error {
	model, err := attachmentToModel(attachment)
	if err != nil {
		return err
	}
	return s.upsert(ctx, &model)
}

// DeleteAttachment implements AttachmentStore.DeleteAttachment
func (s *SQLiteStore) DeleteAttachment(ctx context.Context, id string) error {
	return withRetry(func() error {
		return s.db.WithContext(ctx).Where("id = ?", id).Delete(&AttachmentModel{}).Error
	}, retries)
}

// GetBackup implements BackupStore.GetBackup
func (s *SQLiteStore) GetBackup(ctx context.Context, id string) (*domain.Backup, error) {
	var model BackupModel
	found, err := s.first(ctx, &model, "id = ?", id)
	if err != nil || !found {
		return nil, err
	}
	b, err := backupModelToDomain(model)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// ListBackups returns every backup, newest first
func (s *SQLiteStore) ListBackups(ctx context.Context) ([]domain.Backup, error) {
	var models []BackupModel
	err := withRetry(func() error {
		return s.db.WithContext(ctx).Order("created_at DESC").Find(&models).Error
	}, retries)
	if err != nil {
		return nil, fmt.Errorf("failed to list backups: %w", err)
	}

	result := make([]domain.Backup, 0, len(models))
	for _, m := range models {
		b, err := backupModelToDomain(m)
		if err != nil {
			logging.Logger.Warn("Skipping unreadable backup", "id", m.ID, "error", err)
			continue
		}
		result = append(result, b)
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

// PutBackup implements BackupStore.PutBackup
func (s *SQLiteStore) PutBackup(ctx context.Context, backup domain.Backup) error {
	model, err := backupToModel(backup)
	if err != nil {
		return err
	}
	return s.upsert(ctx, &model)
}

// DeleteBackup implements BackupStore.DeleteBackup
func (s *SQLiteStore) DeleteBackup(ctx context.Context, id string) error {
	return withRetry(func() error {
		return s.db.WithContext(ctx).Where("id = ?", id).Delete(&BackupModel{}).Error
	}, retries)
}

// first loads one row; a missing row is reported as found=false without error
func (s *SQLiteStore) first(ctx context.Context, dest any, query string, args ...any) (bool, error) {
	err := withRetry(func() error {
		return s.db.WithContext(ctx).Where(query, args...).First(dest).Error
	}, retries)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// upsert inserts or replaces a row in a single transaction
func (s *SQLiteStore) upsert(ctx context.Context, model any) error {
	return withRetry(func() error {
		return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			return tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(model).Error
		})
	}, retries)
}

// withRetry retries fn on SQLITE_BUSY / SQLITE_LOCKED with linear backoff
func withRetry(fn func() error, maxRetries int) error {
	var lastErr error
	for i := 0; i < maxRetries; i++ {
		err := fn()
		if err == nil {
			return nil
		}

		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && (sqliteErr.Code == sqlite3.ErrBusy || sqliteErr.Code == sqlite3.ErrLocked) {
			lastErr = err
			time.Sleep(time.Millisecond * time.Duration(50*(i+1)))
			continue
		}

		return err
	}
	return fmt.Errorf("operation failed after %d retries: %w", maxRetries, lastErr)
}
