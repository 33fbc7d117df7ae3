package remote

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"focuswork/internal/domain"
	"focuswork/internal/ports"
)

// PostgresStore is the hosted client table plus its LISTEN/NOTIFY change feed
type PostgresStore struct {
	db          *sql.DB
	databaseURL string
}

var _ ports.Remote = (*PostgresStore)(nil)

// NewPostgresStore wraps an open pool; databaseURL is used for dedicated LISTEN connections
func NewPostgresStore(db *sql.DB, databaseURL string) *PostgresStore {
	return &PostgresStore{db: db, databaseURL: databaseURL}
}

// DB exposes the pool for migrations and the auth adapter
func (s *PostgresStore) DB() *sql.DB { return s.db }

// Close closes the pool
func (s *PostgresStore) Close() error { return s.db.Close() }

const clientColumns = `id, owner_id, name, email, phone, company, notes, status,
	activities, tags, photos, files, created_at, updated_at, revision`

// UpsertClient inserts or replaces the row. A row owned by someone else is left untouched.
func (s *PostgresStore) UpsertClient(ctx context.Context, c domain.RemoteClient) error {
	activities, err := encodeJSON(c.Activities)
	if err != nil {
		return fmt.Errorf("encode activities: %w", err)
	}
	tags, err := encodeJSON(c.Tags)
	if err != nil {
		return fmt.Errorf("encode tags: %w", err)
	}
	photos, err := encodeJSON(c.Photos)
	if err != nil {
		return fmt.Errorf("encode photos: %w", err)
	}
	files, err := encodeJSON(c.Files)
	if err != nil {
		return fmt.Errorf("encode files: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO clients (id, owner_id, name, email, phone, company, notes, status,
			activities, tags, photos, files, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			email = EXCLUDED.email,
			phone = EXCLUDED.phone,
			company = EXCLUDED.company,
			notes = EXCLUDED.notes,
			status = EXCLUDED.status,
			activities = EXCLUDED.activities,
			tags = EXCLUDED.tags,
			photos = EXCLUDED.photos,
			files = EXCLUDED.files,
			updated_at = EXCLUDED.updated_at
		WHERE clients.owner_id = EXCLUDED.owner_id`,
		c.ID, c.OwnerID, c.Name, c.Email, c.Phone, c.Company, c.Notes, string(c.Status),
		activities, tags, photos, files, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert client %s: %w", c.ID, err)
	}
	return nil
}

// DeleteClient removes the row; deleting a missing row is not an error
func (s *PostgresStore) DeleteClient(ctx context.Context, ownerID, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM clients WHERE owner_id=$1 AND id=$2`, ownerID, id); err != nil {
		return fmt.Errorf("delete client %s: %w", id, err)
	}
	return nil
}

// FetchClient returns (nil, nil) when the row does not exist
func (s *PostgresStore) FetchClient(ctx context.Context, ownerID, id string) (*domain.RemoteClient, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+clientColumns+` FROM clients WHERE owner_id=$1 AND id=$2`, ownerID, id)
	c, err := scanClient(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("fetch client %s: %w", id, err)
	}
	return &c, nil
}

// FetchClients returns every row of the owner ordered by creation
func (s *PostgresStore) FetchClients(ctx context.Context, ownerID string) ([]domain.RemoteClient, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+clientColumns+` FROM clients WHERE owner_id=$1 ORDER BY created_at, id`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("fetch clients: %w", err)
	}
	defer rows.Close()

	var out []domain.RemoteClient
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, fmt.Errorf("scan client: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate clients: %w", err)
	}
	return out, nil
}

// FetchFingerprint returns the cheap change probe, (nil, nil) when missing
func (s *PostgresStore) FetchFingerprint(ctx context.Context, ownerID, id string) (*domain.Fingerprint, error) {
	var fp domain.Fingerprint
	var status string
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, status, char_length(notes), revision, updated_at
		FROM clients WHERE owner_id=$1 AND id=$2`, ownerID, id,
	).Scan(&fp.ID, &fp.Name, &status, &fp.NotesLen, &fp.Revision, &fp.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("fetch fingerprint %s: %w", id, err)
	}
	fp.Status = domain.ClientStatus(status)
	return &fp, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanClient(row rowScanner) (domain.RemoteClient, error) {
	var c domain.RemoteClient
	var status string
	var activities, tags, photos, files []byte
	err := row.Scan(&c.ID, &c.OwnerID, &c.Name, &c.Email, &c.Phone, &c.Company, &c.Notes, &status,
		&activities, &tags, &photos, &files, &c.CreatedAt, &c.UpdatedAt, &c.Revision)
	if err != nil {
		return c, err
	}
	c.Status = domain.ClientStatus(status)
	if err := decodeJSON(activities, &c.Activities); err != nil {
		return c, fmt.Errorf("decode activities: %w", err)
	}
	if err := decodeJSON(tags, &c.Tags); err != nil {
		return c, fmt.Errorf("decode tags: %w", err)
	}
	if err := decodeJSON(photos, &c.Photos); err != nil {
		return c, fmt.Errorf("decode photos: %w", err)
	}
	if err := decodeJSON(files, &c.Files); err != nil {
		return c, fmt.Errorf("decode files: %w", err)
	}
	return c, nil
}

// encodeJSON maps a nil collection to SQL NULL so "absent" survives the round trip
func encodeJSON[T any](v T) (any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	if string(data) == "null" {
		return nil, nil
	}
	return string(data), nil
}

func decodeJSON(data []byte, dest any) error {
	if len(data) == 0 || string(data) == "null" {
		return nil
	}
	return json.Unmarshal(data, dest)
}
