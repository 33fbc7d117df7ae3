// Package search keeps a Meilisearch index of clients.
package search

import (
	"encoding/json"
	"fmt"
	"sync/atomic"
	"time"

	meili "github.com/meilisearch/meilisearch-go"

	"focuswork/internal/domain"
	"focuswork/internal/logging"
	"focuswork/internal/ports"
)

const idxClients = "focuswork_clients"

// clientDocument is the indexed projection of a client
type clientDocument struct {
	Company string   `json:"company"`
	Email   string   `json:"email"`
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Notes   string   `json:"notes"`
	Status  string   `json:"status"`
	Tags    []string `json:"tags"`
	Tasks   string   `json:"tasks"`
}

// Meili implements ports.SearchIndex via Meilisearch
type Meili struct {
	client  meili.ServiceManager
	done    chan struct{}
	healthy atomic.Bool
}

var _ ports.SearchIndex = (*Meili)(nil)

// NewMeili creates a Meilisearch client and configures the index. An unreachable
// server is not an error: the index reports unhealthy and callers fall back.
func NewMeili(url, apiKey string) *Meili {
	client := meili.New(url, meili.WithAPIKey(apiKey))

	m := &Meili{
		client: client,
		done:   make(chan struct{}),
	}

	if _, err := client.Health(); err != nil {
		logging.Logger.Warn("Meilisearch unavailable", "url", url, "error", err)
		m.healthy.Store(false)
	} else {
		m.healthy.Store(true)
		m.configureIndex()
	}

	go m.healthLoop()
	return m
}

func (m *Meili) configureIndex() {
	if _, err := m.client.CreateIndex(&meili.IndexConfig{
		Uid:        idxClients,
		PrimaryKey: "id",
	}); err != nil {
		logging.Logger.Debug("Create index (may already exist)", "index", idxClients, "error", err)
	}

	searchable := []string{"name", "company", "email", "notes", "tasks", "tags"}
	if _, err := m.client.Index(idxClients).UpdateSearchableAttributes(&searchable); err != nil {
		logging.Logger.Warn("Update searchable attributes failed", "index", idxClients, "error", err)
	}
}

func (m *Meili) healthLoop() {
	ticker := time.NewTicker(10 * time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-m.done:
			return
		case <-ticker.C:
			_, err := m.client.Health()
			wasHealthy := m.healthy.Load()
			m.healthy.Store(err == nil)
			if err == nil && !wasHealthy {
				logging.Logger.Info("Meilisearch recovered, reconfiguring index")
				m.configureIndex()
			}
		}
	}
}

// Close stops the background health monitor
func (m *Meili) Close() {
	close(m.done)
}

// Healthy reports whether Meilisearch is reachable
func (m *Meili) Healthy() bool {
	return m.healthy.Load()
}

// IndexClients adds or replaces the given clients
func (m *Meili) IndexClients(clients []domain.Client) error {
	if !m.healthy.Load() {
		return fmt.Errorf("meilisearch unhealthy")
	}
	if len(clients) == 0 {
		return nil
	}
	docs := make([]clientDocument, 0, len(clients))
	for _, c := range clients {
		docs = append(docs, toDocument(c))
	}
	if _, err := m.client.Index(idxClients).AddDocuments(docs, nil); err != nil {
		m.healthy.Store(false)
		return fmt.Errorf("meilisearch add documents: %w", err)
	}
	return nil
}

// DeleteClient removes a client document
func (m *Meili) DeleteClient(id string) error {
	if !m.healthy.Load() {
		return fmt.Errorf("meilisearch unhealthy")
	}
	if _, err := m.client.Index(idxClients).DeleteDocument(id, nil); err != nil {
		return fmt.Errorf("meilisearch delete document: %w", err)
	}
	return nil
}

// Search returns matching client ids in relevance order
func (m *Meili) Search(query string, limit int) ([]string, error) {
	if !m.healthy.Load() {
		return nil, fmt.Errorf("meilisearch unhealthy")
	}
	if limit <= 0 {
		limit = 20
	}

	resp, err := m.client.Index(idxClients).Search(query, &meili.SearchRequest{
		Limit:                int64(limit),
		AttributesToRetrieve: []string{"id"},
	})
	if err != nil {
		m.healthy.Store(false)
		return nil, fmt.Errorf("meilisearch search: %w", err)
	}

	ids := make([]string, 0, len(resp.Hits))
	for _, hit := range resp.Hits {
		if id := decodeString(hit, "id"); id != "" {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func toDocument(c domain.Client) clientDocument {
	return clientDocument{
		Company: c.Company,
		Email:   c.Email,
		ID:      c.ID,
		Name:    c.Name,
		Notes:   c.Notes,
		Status:  string(c.Status),
		Tags:    c.Tags,
		Tasks:   c.Tasks.Urgent + "\n" + c.Tasks.Important + "\n" + c.Tasks.Later,
	}
}

func decodeString(hit meili.Hit, key string) string {
	raw, ok := hit[key]
	if !ok {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return ""
}
