package search

import (
	"sort"
	"strings"
	"sync"

	"focuswork/internal/domain"
	"focuswork/internal/ports"
)

// Local is the in-process substring index used when Meilisearch is not configured
type Local struct {
	docs map[string]clientDocument
	mu   sync.RWMutex
}

var _ ports.SearchIndex = (*Local)(nil)

// NewLocal creates an empty index
func NewLocal() *Local {
	return &Local{docs: make(map[string]clientDocument)}
}

// Healthy is always true
func (l *Local) Healthy() bool { return true }

// IndexClients adds or replaces the given clients
func (l *Local) IndexClients(clients []domain.Client) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, c := range clients {
		l.docs[c.ID] = toDocument(c)
	}
	return nil
}

// DeleteClient removes a client
func (l *Local) DeleteClient(id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.docs, id)
	return nil
}

// Search matches every whitespace separated term case-insensitively. Name matches
// rank before matches in other fields.
func (l *Local) Search(query string, limit int) ([]string, error) {
	terms := strings.Fields(strings.ToLower(query))
	if len(terms) == 0 {
		return nil, nil
	}
	if limit <= 0 {
		limit = 20
	}

	l.mu.RLock()
	type hit struct {
		id    string
		name  string
		score int
	}
	var hits []hit
	for _, d := range l.docs {
		name := strings.ToLower(d.Name)
		haystack := strings.ToLower(strings.Join([]string{
			d.Name, d.Company, d.Email, d.Notes, d.Tasks, strings.Join(d.Tags, " "),
		}, "\n"))
		score, matched := 0, true
		for _, term := range terms {
			if !strings.Contains(haystack, term) {
				matched = false
				break
			}
			if strings.Contains(name, term) {
				score++
			}
		}
		if matched {
			hits = append(hits, hit{id: d.ID, name: name, score: score})
		}
	}
	l.mu.RUnlock()

	sort.Slice(hits, func(i, j int) bool {
		if hits[i].score != hits[j].score {
			return hits[i].score > hits[j].score
		}
		return hits[i].name < hits[j].name
	})

	ids := make([]string, 0, min(limit, len(hits)))
	for i := 0; i < len(hits) && i < limit; i++ {
		ids = append(ids, hits[i].id)
	}
	return ids, nil
}
