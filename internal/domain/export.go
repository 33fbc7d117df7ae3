package domain

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// ExportVersion is the current export document version
const ExportVersion = 1

// ExportType discriminates single work items from full backups
type ExportType string

const (
	ExportBackup ExportType = "backup"
	ExportWork   ExportType = "work"
)

// ExportDocument is the JSON exchange format for moving clients between devices
type ExportDocument struct {
	Client     *Client         `json:"client,omitempty"`
	Clients    []Client        `json:"clients,omitempty"`
	ExportedAt time.Time       `json:"exportedAt"`
	License    json.RawMessage `json:"license,omitempty"`
	State      *AppState       `json:"state,omitempty"`
	Type       ExportType      `json:"type"`
	Version    int             `json:"version"`
}

// Validate checks every required field before any state is mutated
func (d *ExportDocument) Validate() error {
	if d.Version < 1 {
		return &ImportError{Field: "version", Reason: "missing or not positive"}
	}
	if d.Version > ExportVersion {
		return &ImportError{Field: "version", Reason: fmt.Sprintf("unsupported version %d", d.Version)}
	}
	switch d.Type {
	case ExportWork:
		if d.Client == nil {
			return &ImportError{Field: "client", Reason: "required for type work"}
		}
		return validateImportedClient("client", *d.Client)
	case ExportBackup:
		if d.Clients == nil {
			return &ImportError{Field: "clients", Reason: "required for type backup"}
		}
		seen := make(map[string]bool, len(d.Clients))
		for i, c := range d.Clients {
			field := fmt.Sprintf("clients[%d]", i)
			if err := validateImportedClient(field, c); err != nil {
				return err
			}
			if seen[c.ID] {
				return &ImportError{Field: field + ".id", Reason: "duplicate id " + c.ID}
			}
			seen[c.ID] = true
		}
		return nil
	case "":
		return &ImportError{Field: "type", Reason: "missing"}
	default:
		return &ImportError{Field: "type", Reason: fmt.Sprintf("unknown type %q", d.Type)}
	}
}

func validateImportedClient(field string, c Client) error {
	if strings.TrimSpace(c.ID) == "" {
		return &ImportError{Field: field + ".id", Reason: "missing"}
	}
	if strings.TrimSpace(c.Name) == "" {
		return &ImportError{Field: field + ".name", Reason: "missing"}
	}
	if c.DeliveryDate != "" {
		if _, err := ParseDeliveryDate(c.DeliveryDate); err != nil {
			return &ImportError{Field: field + ".deliveryDate", Reason: err.Error()}
		}
	}
	return nil
}

// ImportedClients returns the clients carried by a validated document, normalized
func (d *ExportDocument) ImportedClients() []Client {
	var out []Client
	if d.Type == ExportWork && d.Client != nil {
		out = append(out, d.Client.Clone())
	} else {
		for _, c := range d.Clients {
			out = append(out, c.Clone())
		}
	}
	for i := range out {
		out[i].Normalize()
	}
	return out
}
