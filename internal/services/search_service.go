package services

import (
	"context"
	"fmt"

	"focuswork/internal/domain"
	"focuswork/internal/logging"
	"focuswork/internal/ports"
)

// DefaultSearchLimit caps the number of results
const DefaultSearchLimit = 20

// SearchService answers client searches from the remote index when it is healthy
// and from the local fallback index otherwise. It also implements
// ports.SearchIndex so ClientService keeps the remote index current.
type SearchService struct {
	fallback ports.SearchIndex
	primary  ports.SearchIndex
	store    ports.ClientStore
}

var _ ports.SearchIndex = (*SearchService)(nil)

// NewSearchService creates the service. primary may be nil.
func NewSearchService(store ports.ClientStore, primary, fallback ports.SearchIndex) *SearchService {
	return &SearchService{
		fallback: fallback,
		primary:  primary,
		store:    store,
	}
}

// Backend names the index currently answering queries
func (s *SearchService) Backend() string {
	if s.usePrimary() {
		return "meilisearch"
	}
	return "local"
}

// Find returns the clients matching query, best match first
func (s *SearchService) Find(ctx context.Context, query string, limit int) ([]domain.Client, error) {
	if limit <= 0 {
		limit = DefaultSearchLimit
	}

	var ids []string
	var err error
	if s.usePrimary() {
		ids, err = s.primary.Search(query, limit)
		if err != nil {
			logging.Logger.Warn("Search index query failed, using local index", "error", err)
		}
	}
	if !s.usePrimary() || err != nil {
		ids, err = s.searchLocal(ctx, query, limit)
		if err != nil {
			return nil, err
		}
	}

	out := make([]domain.Client, 0, len(ids))
	for _, id := range ids {
		c, err := s.store.GetClient(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("failed to load client %s: %w", id, err)
		}
		// the remote index may lag behind deletes
		if c != nil {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (s *SearchService) searchLocal(ctx context.Context, query string, limit int) ([]string, error) {
	clients, err := s.store.ListClients(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}
	if err := s.fallback.IndexClients(clients); err != nil {
		return nil, err
	}
	return s.fallback.Search(query, limit)
}

func (s *SearchService) usePrimary() bool {
	return s.primary != nil && s.primary.Healthy()
}

func (s *SearchService) DeleteClient(id string) error {
	if err := s.fallback.DeleteClient(id); err != nil {
		return err
	}
	if s.usePrimary() {
		return s.primary.DeleteClient(id)
	}
	return nil
}

func (s *SearchService) Healthy() bool {
	return s.usePrimary()
}

func (s *SearchService) IndexClients(clients []domain.Client) error {
	if err := s.fallback.IndexClients(clients); err != nil {
		return err
	}
	if s.usePrimary() {
		return s.primary.IndexClients(clients)
	}
	return nil
}

func (s *SearchService) Search(query string, limit int) ([]string, error) {
	if s.usePrimary() {
		return s.primary.Search(query, limit)
	}
	return s.fallback.Search(query, limit)
}
