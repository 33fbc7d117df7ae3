package storage

import "time"

// StoreMetaModel holds key/value bookkeeping such as the schema version
type StoreMetaModel struct {
	Key   string `gorm:"primaryKey"`
	Value string `gorm:"not null;default:''"`
}

// TableName specifies the table name for GORM
func (StoreMetaModel) TableName() string { return "store_meta" }

// AppStateModel is the singleton tracking state row (ID is always 1)
type AppStateModel struct {
	ID        int    `gorm:"primaryKey;autoIncrement:false"`
	Payload   string `gorm:"not null"`
	UpdatedAt time.Time
}

// TableName specifies the table name for GORM
func (AppStateModel) TableName() string { return "app_state" }

// ClientModel is the GORM model for the clients table. The full record lives in
// Payload; the other columns are indexed projections.
type ClientModel struct {
	Active    bool   `gorm:"not null;index:idx_clients_active"`
	CreatedAt time.Time
	ID        string `gorm:"primaryKey"`
	Name      string `gorm:"not null;default:'';index:idx_clients_name"`
	Payload   string `gorm:"not null"`
	Status    string `gorm:"not null;default:'active'"`
	UpdatedAt time.Time
}

// TableName specifies the table name for GORM
func (ClientModel) TableName() string { return "clients" }

// AttachmentModel is the GORM model for attachment payloads
type AttachmentModel struct {
	ClientID  string `gorm:"not null;index:idx_attachments_client"`
	CreatedAt time.Time
	ID        string `gorm:"primaryKey"`
	Kind      string `gorm:"not null;default:'file'"`
	Payload   string `gorm:"not null"`
}

// TableName specifies the table name for GORM
func (AttachmentModel) TableName() string { return "attachments" }

// BackupModel is the GORM model for backup snapshots
type BackupModel struct {
	CreatedAt time.Time `gorm:"index:idx_backups_created"`
	ID        string    `gorm:"primaryKey"`
	Payload   string    `gorm:"not null"`
	Reason    string    `gorm:"not null;default:''"`
}

// TableName specifies the table name for GORM
func (BackupModel) TableName() string { return "backups" }
