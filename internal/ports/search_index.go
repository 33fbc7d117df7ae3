package ports

import "focuswork/internal/domain"

// SearchIndex is an optional full-text index of clients
type SearchIndex interface {
	DeleteClient(id string) error
	Healthy() bool
	IndexClients(clients []domain.Client) error
	Search(query string, limit int) ([]string, error)
}
