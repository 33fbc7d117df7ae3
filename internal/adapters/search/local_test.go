package search

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"focuswork/internal/domain"
)

func TestLocal_SearchRanksNameMatchesFirst(t *testing.T) {
	idx := NewLocal()
	now := time.Now()

	acme := domain.NewClient("Acme Studio", now)
	other := domain.NewClient("Bolt", now)
	other.Notes = "referred by acme"
	none := domain.NewClient("Zeta", now)
	require.NoError(t, idx.IndexClients([]domain.Client{acme, other, none}))

	ids, err := idx.Search("ACME", 10)
	require.NoError(t, err)
	assert.Equal(t, []string{acme.ID, other.ID}, ids)

	ids, err = idx.Search("acme studio", 10)
	require.NoError(t, err)
	assert.Equal(t, []string{acme.ID}, ids)
}

func TestLocal_DeleteAndLimit(t *testing.T) {
	idx := NewLocal()
	now := time.Now()
	a := domain.NewClient("alpha one", now)
	b := domain.NewClient("alpha two", now)
	require.NoError(t, idx.IndexClients([]domain.Client{a, b}))

	ids, err := idx.Search("alpha", 1)
	require.NoError(t, err)
	assert.Len(t, ids, 1)

	require.NoError(t, idx.DeleteClient(a.ID))
	ids, err = idx.Search("alpha", 10)
	require.NoError(t, err)
	assert.Equal(t, []string{b.ID}, ids)

	ids, err = idx.Search("   ", 10)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestToDocument_FlattensTasks(t *testing.T) {
	c := domain.NewClient("T", time.Now())
	c.Tasks = domain.Tasks{Urgent: "call", Important: "invoice", Later: "tidy"}

	doc := toDocument(c)

	assert.Contains(t, doc.Tasks, "invoice")
	assert.Equal(t, "active", doc.Status)
}
