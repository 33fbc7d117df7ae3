package storage

import (
	"encoding/json"
	"fmt"

	"focuswork/internal/domain"
)

// clientToModel serializes a client. Attachment payloads are stripped: they live in
// the attachments table.
func clientToModel(c domain.Client) (ClientModel, error) {
	stored := c.Clone()
	for i := range stored.Photos {
		stored.Photos[i] = stored.Photos[i].Descriptor()
	}
	for i := range stored.Files {
		stored.Files[i] = stored.Files[i].Descriptor()
	}
	payload, err := json.Marshal(stored)
	if err != nil {
		return ClientModel{}, fmt.Errorf("failed to encode client %s: %w", c.ID, err)
	}
	return ClientModel{
		Active:    c.Active,
		CreatedAt: c.CreatedAt,
		ID:        c.ID,
		Name:      c.Name,
		Payload:   string(payload),
		Status:    string(c.Status),
		UpdatedAt: c.UpdatedAt,
	}, nil
}

// clientModelToDomain decodes a stored client, tolerating older payloads
func clientModelToDomain(m ClientModel) (domain.Client, error) {
	var c domain.Client
	if err := json.Unmarshal([]byte(m.Payload), &c); err != nil {
		return domain.Client{}, fmt.Errorf("failed to decode client %s: %w", m.ID, err)
	}
	if c.ID == "" {
		c.ID = m.ID
	}
	c.Normalize()
	return c, nil
}

func stateToModel(s domain.AppState) (AppStateModel, error) {
	payload, err := json.Marshal(s)
	if err != nil {
		return AppStateModel{}, fmt.Errorf("failed to encode app state: %w", err)
	}
	return AppStateModel{ID: 1, Payload: string(payload)}, nil
}

func stateModelToDomain(m AppStateModel) (domain.AppState, error) {
	var s domain.AppState
	if err := json.Unmarshal([]byte(m.Payload), &s); err != nil {
		return domain.AppState{}, fmt.Errorf("failed to decode app state: %w", err)
	}
	s.Normalize()
	return s, nil
}

func attachmentToModel(a domain.Attachment) (AttachmentModel, error) {
	payload, err := json.Marshal(a)
	if err != nil {
		return AttachmentModel{}, fmt.Errorf("failed to encode attachment %s: %w", a.ID, err)
	}
	return AttachmentModel{
		ClientID:  a.ClientID,
		CreatedAt: a.Date,
		ID:        a.ID,
		Kind:      string(a.Kind),
		Payload:   string(payload),
	}, nil
}

func attachmentModelToDomain(m AttachmentModel) (domain.Attachment, error) {
	var a domain.Attachment
	if err := json.Unmarshal([]byte(m.Payload), &a); err != nil {
		return domain.Attachment{}, fmt.Errorf("failed to decode attachment %s: %w", m.ID, err)
	}
	return a, nil
}

func backupToModel(b domain.Backup) (BackupModel, error) {
	payload, err := json.Marshal(b)
	if err != nil {
		return BackupModel{}, fmt.Errorf("failed to encode backup %s: %w", b.ID, err)
	}
	return BackupModel{
		CreatedAt: b.CreatedAt,
		ID:        b.ID,
		Payload:   string(payload),
		Reason:    b.Reason,
	}, nil
}

func backupModelToDomain(m BackupModel) (domain.Backup, error) {
	var b domain.Backup
	if err := json.Unmarshal([]byte(m.Payload), &b); err != nil {
		return domain.Backup{}, fmt.Errorf("failed to decode backup %s: %w", m.ID, err)
	}
	for i := range b.Clients {
		b.Clients[i].Normalize()
	}
	b.State.Normalize()
	return b, nil
}
