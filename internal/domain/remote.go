package domain

import "time"

// RemoteClient is a client row as modelled by the remote store. Nil collections mean
// the remote has no opinion about that field.
type RemoteClient struct {
	Activities map[ActivityKind]int64 `json:"activities"`
	Company    string                 `json:"company"`
	CreatedAt  time.Time              `json:"created_at"`
	Email      string                 `json:"email"`
	Files      []Attachment           `json:"files"`
	ID         string                 `json:"id"`
	Name       string                 `json:"name"`
	Notes      string                 `json:"notes"`
	OwnerID    string                 `json:"owner_id"`
	Phone      string                 `json:"phone"`
	Photos     []Attachment           `json:"photos"`
	Revision   int64                  `json:"revision"`
	Status     ClientStatus           `json:"status"`
	Tags       []string               `json:"tags"`
	UpdatedAt  time.Time              `json:"updated_at"`
}

// Fingerprint is the cheap probe the poll channel compares between checks
type Fingerprint struct {
	ID        string
	Name      string
	NotesLen  int
	Revision  int64
	Status    ClientStatus
	UpdatedAt time.Time
}

// Equal compares every probed field
func (f Fingerprint) Equal(other Fingerprint) bool {
	return f.ID == other.ID &&
		f.Name == other.Name &&
		f.NotesLen == other.NotesLen &&
		f.Revision == other.Revision &&
		f.Status == other.Status &&
		f.UpdatedAt.Equal(other.UpdatedAt)
}

// ChangeType is the kind of row change pushed by the change feed
type ChangeType string

const (
	ChangeDelete ChangeType = "delete"
	ChangeInsert ChangeType = "insert"
	ChangeUpdate ChangeType = "update"
)

// ChangeEvent is one pushed change of a remote client row
type ChangeEvent struct {
	ID      string
	OwnerID string
	Record  *RemoteClient
	Type    ChangeType
}

// ToRemote projects the fields the remote store models. Attachment descriptors
// are sent without their local payload.
func (c Client) ToRemote(ownerID string) RemoteClient {
	r := RemoteClient{
		Activities: make(map[ActivityKind]int64, len(c.Activities)),
		Company:    c.Company,
		CreatedAt:  c.CreatedAt,
		Email:      c.Email,
		ID:         c.ID,
		Name:       c.Name,
		Notes:      c.Notes,
		OwnerID:    ownerID,
		Phone:      c.Phone,
		Status:     c.Status,
		Tags:       append([]string{}, c.Tags...),
		UpdatedAt:  c.UpdatedAt,
	}
	for k, v := range c.Activities {
		r.Activities[k] = v
	}
	r.Photos = descriptors(c.Photos)
	r.Files = descriptors(c.Files)
	return r
}

func descriptors(in []Attachment) []Attachment {
	out := make([]Attachment, 0, len(in))
	for _, a := range in {
		out = append(out, a.Descriptor())
	}
	return out
}
