package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"focuswork/internal/adapters/search"
	portsmocks "focuswork/internal/ports/mocks"
)

func TestSearchService_LocalFallback(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, "")
	acme := f.createClient(t, "Acme Roofing")
	f.createClient(t, "Globex")
	_, err := f.clients.SetNotes(ctx, acme.ID, "needs a quote for the roof")
	require.NoError(t, err)

	svc := NewSearchService(f.store, nil, search.NewLocal())

	found, err := svc.Find(ctx, "roof", 0)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, acme.ID, found[0].ID)
	assert.Equal(t, "local", svc.Backend())
}

func TestSearchService_PrefersHealthyPrimary(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, "")
	acme := f.createClient(t, "Acme")
	primary := portsmocks.NewMockSearchIndex(t)
	primary.EXPECT().Healthy().Return(true)
	primary.EXPECT().Search("acme", DefaultSearchLimit).Return([]string{acme.ID, "deleted-elsewhere"}, nil).Once()

	svc := NewSearchService(f.store, primary, search.NewLocal())

	found, err := svc.Find(ctx, "acme", 0)
	require.NoError(t, err)
	require.Len(t, found, 1, "ids unknown locally are skipped")
	assert.Equal(t, "meilisearch", svc.Backend())
}

func TestSearchService_PrimaryErrorFallsBack(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, "")
	f.createClient(t, "Acme")
	primary := portsmocks.NewMockSearchIndex(t)
	primary.EXPECT().Healthy().Return(true)
	primary.EXPECT().Search(mock.Anything, mock.Anything).Return(nil, errors.New("index missing"))

	svc := NewSearchService(f.store, primary, search.NewLocal())

	found, err := svc.Find(ctx, "acme", 5)
	require.NoError(t, err)
	assert.Len(t, found, 1)
}

func TestSearchService_IndexesThroughClientService(t *testing.T) {
	ctx := context.Background()
	primary := portsmocks.NewMockSearchIndex(t)
	primary.EXPECT().Healthy().Return(true)
	primary.EXPECT().IndexClients(mock.Anything).Return(nil).Once()
	primary.EXPECT().DeleteClient(mock.Anything).Return(nil).Once()

	f := newFixture(t, "")
	svc := NewSearchService(f.store, primary, search.NewLocal())
	f.clients.search = svc

	c := f.createClient(t, "Acme")
	require.NoError(t, f.clients.Delete(ctx, c.ID))
}
