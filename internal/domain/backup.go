package domain

import (
	"time"

	"github.com/google/uuid"
)

// Backup is a point-in-time snapshot of every client and the tracking state
type Backup struct {
	Clients   []Client  `json:"clients"`
	CreatedAt time.Time `json:"createdAt"`
	ID        string    `json:"id"`
	Reason    string    `json:"reason"`
	State     AppState  `json:"state"`
}

// NewBackup snapshots the given records
func NewBackup(reason string, clients []Client, state AppState, now time.Time) Backup {
	return Backup{
		Clients:   clients,
		CreatedAt: now.UTC(),
		ID:        uuid.New().String(),
		Reason:    reason,
		State:     state,
	}
}
