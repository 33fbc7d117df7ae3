package domain

import (
	"path"
	"time"

	"github.com/google/uuid"
)

// AttachmentKind distinguishes photos from other files
type AttachmentKind string

const (
	AttachmentFile  AttachmentKind = "file"
	AttachmentPhoto AttachmentKind = "photo"
)

// Attachment describes a photo or file. URL points at a remotely stored binary,
// Data carries the device-local base64 fallback. Both may be set.
type Attachment struct {
	ClientID    string         `json:"clientId"`
	Comment     string         `json:"comment,omitempty"`
	ContentType string         `json:"contentType,omitempty"`
	Data        string         `json:"data,omitempty"`
	Date        time.Time      `json:"date"`
	ID          string         `json:"id"`
	Kind        AttachmentKind `json:"kind"`
	Name        string         `json:"name,omitempty"`
	URL         string         `json:"url,omitempty"`
}

// NewAttachment creates a descriptor carrying a local payload
func NewAttachment(clientID string, kind AttachmentKind, name, contentType, data string, now time.Time) Attachment {
	return Attachment{
		ClientID:    clientID,
		ContentType: contentType,
		Data:        data,
		Date:        now.UTC(),
		ID:          uuid.New().String(),
		Kind:        kind,
		Name:        name,
	}
}

// HasPayload reports whether the binary is reachable from this descriptor
func (a Attachment) HasPayload() bool {
	return a.Data != "" || a.URL != ""
}

// Descriptor strips the local payload, as stored on the client record and remotely
func (a Attachment) Descriptor() Attachment {
	a.Data = ""
	return a
}

// ObjectKey is where the binary lives in the owner's bucket namespace
func (a Attachment) ObjectKey(ownerID string) string {
	return path.Join(ownerID, a.ClientID, a.ID)
}
