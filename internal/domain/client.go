package domain

import (
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ClientStatus is the workflow state of a client engagement
type ClientStatus string

const (
	StatusActive  ClientStatus = "active"
	StatusClosed  ClientStatus = "closed"
	StatusPaused  ClientStatus = "paused"
	StatusWaiting ClientStatus = "waiting"
)

// ValidStatuses lists the accepted workflow states
var ValidStatuses = []ClientStatus{StatusActive, StatusPaused, StatusWaiting, StatusClosed}

// ParseStatus validates a workflow state name
func ParseStatus(s string) (ClientStatus, bool) {
	st := ClientStatus(strings.ToLower(strings.TrimSpace(s)))
	return st, slices.Contains(ValidStatuses, st)
}

// Tasks holds the three free-text task slots of a client
type Tasks struct {
	Important string `json:"important"`
	Later     string `json:"later"`
	Urgent    string `json:"urgent"`
}

// StateTransition is one entry of the append-only workflow log
type StateTransition struct {
	At   time.Time    `json:"at"`
	From ClientStatus `json:"from"`
	To   ClientStatus `json:"to"`
}

// Client is one tracked engagement (domain entity)
type Client struct {
	Active       bool                   `json:"active"`
	Activities   map[ActivityKind]int64 `json:"activities"`
	BillableTime int64                  `json:"billableTime"`
	Company      string                 `json:"company,omitempty"`
	CreatedAt    time.Time              `json:"createdAt"`
	DeliveryDate string                 `json:"deliveryDate,omitempty"`
	Email        string                 `json:"email,omitempty"`
	ExtraHours   []ExtraHoursEntry      `json:"extraHours"`
	Files        []Attachment           `json:"files"`
	ID           string                 `json:"id"`
	Name         string                 `json:"name"`
	Notes        string                 `json:"notes"`
	Phone        string                 `json:"phone,omitempty"`
	Photos       []Attachment           `json:"photos"`
	StateHistory []StateTransition      `json:"stateHistory"`
	Status       ClientStatus           `json:"status"`
	Tags         []string               `json:"tags,omitempty"`
	Tasks        Tasks                  `json:"tasks"`
	Total        int64                  `json:"total"`
	UpdatedAt    time.Time              `json:"updatedAt"`
}

// NewClient creates an active client with every collection initialized
func NewClient(name string, now time.Time) Client {
	c := Client{
		Active:    true,
		CreatedAt: now.UTC(),
		ID:        uuid.New().String(),
		Name:      strings.TrimSpace(name),
		Status:    StatusActive,
		UpdatedAt: now.UTC(),
	}
	c.Normalize()
	return c
}

// Normalize fills missing collections so records written by older versions behave
// like freshly created ones.
func (c *Client) Normalize() {
	if c.Activities == nil {
		c.Activities = make(map[ActivityKind]int64)
	}
	if c.ExtraHours == nil {
		c.ExtraHours = []ExtraHoursEntry{}
	}
	if c.Files == nil {
		c.Files = []Attachment{}
	}
	if c.Photos == nil {
		c.Photos = []Attachment{}
	}
	if c.StateHistory == nil {
		c.StateHistory = []StateTransition{}
	}
	if c.Status == "" {
		if c.Active {
			c.Status = StatusActive
		} else {
			c.Status = StatusClosed
		}
	}
}

// Clone returns a deep copy
func (c Client) Clone() Client {
	out := c
	out.Activities = maps.Clone(c.Activities)
	out.ExtraHours = slices.Clone(c.ExtraHours)
	out.Files = slices.Clone(c.Files)
	out.Photos = slices.Clone(c.Photos)
	out.StateHistory = slices.Clone(c.StateHistory)
	out.Tags = slices.Clone(c.Tags)
	return out
}

// SetStatus moves the client to a new workflow state and records the transition.
// Closing also clears the active flag; any other state reopens it.
func (c *Client) SetStatus(to ClientStatus, now time.Time) bool {
	if c.Status == to {
		return false
	}
	c.StateHistory = append(c.StateHistory, StateTransition{
		At:   now.UTC(),
		From: c.Status,
		To:   to,
	})
	c.Status = to
	c.Active = to != StatusClosed
	c.UpdatedAt = now.UTC()
	return true
}

// AddExtraHours appends a manual adjustment and folds it into the billable time
func (c *Client) AddExtraHours(entry ExtraHoursEntry) {
	c.ExtraHours = append(c.ExtraHours, entry)
	c.BillableTime += entry.Seconds
}

// RemoveExtraHours deletes an adjustment and subtracts exactly what it added
func (c *Client) RemoveExtraHours(id string) (ExtraHoursEntry, error) {
	idx := slices.IndexFunc(c.ExtraHours, func(e ExtraHoursEntry) bool { return e.ID == id })
	if idx < 0 {
		return ExtraHoursEntry{}, ErrExtraHoursNotFound
	}
	entry := c.ExtraHours[idx]
	c.ExtraHours = slices.Delete(c.ExtraHours, idx, idx+1)
	c.BillableTime -= entry.Seconds
	if c.BillableTime < 0 {
		c.BillableTime = 0
	}
	return entry, nil
}

// Attachments returns photos and files together
func (c Client) Attachments() []Attachment {
	out := make([]Attachment, 0, len(c.Photos)+len(c.Files))
	out = append(out, c.Photos...)
	return append(out, c.Files...)
}
