package storage

import (
	"errors"
	"fmt"
	"strconv"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"focuswork/internal/logging"
)

const schemaVersionKey = "schema_version"

type migration struct {
	name    string
	up      func(tx *gorm.DB) error
	version int
}

// migrations run in order; a store only applies the steps above its stored version
var migrations = []migration{
	{
		version: 1,
		name:    "clients and app state",
		up: func(tx *gorm.DB) error {
			return tx.AutoMigrate(&AppStateModel{}, &ClientModel{})
		},
	},
	{
		version: 2,
		name:    "attachments and backups",
		up: func(tx *gorm.DB) error {
			return tx.AutoMigrate(&AttachmentModel{}, &BackupModel{})
		},
	},
}

// latestSchemaVersion is the version a fully migrated store reports
func latestSchemaVersion() int {
	return migrations[len(migrations)-1].version
}

// migrate brings the schema up to date. It is idempotent: calling it on a
// current store does nothing.
func migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&StoreMetaModel{}); err != nil {
		return fmt.Errorf("failed to create store_meta: %w", err)
	}

	current, err := readSchemaVersion(db)
	if err != nil {
		return err
	}

	for _, m := range migrations {
		if m.version <= current {
			continue
		}
		logging.Logger.Info("Applying local store migration", "version", m.version, "name", m.name)
		err := db.Transaction(func(tx *gorm.DB) error {
			if err := m.up(tx); err != nil {
				return err
			}
			return tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(&StoreMetaModel{
				Key:   schemaVersionKey,
				Value: strconv.Itoa(m.version),
			}).Error
		})
		if err != nil {
			return fmt.Errorf("migration %d (%s) failed: %w", m.version, m.name, err)
		}
	}

	return nil
}

func readSchemaVersion(db *gorm.DB) (int, error) {
	var meta StoreMetaModel
	err := db.Where(&StoreMetaModel{Key: schemaVersionKey}).First(&meta).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read schema version: %w", err)
	}
	v, err := strconv.Atoi(meta.Value)
	if err != nil {
		return 0, fmt.Errorf("corrupt schema version %q: %w", meta.Value, err)
	}
	return v, nil
}
