package services

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"focuswork/internal/domain"
	portsmocks "focuswork/internal/ports/mocks"
)

func TestSwitchableRemote_Routes(t *testing.T) {
	ctx := context.Background()
	online := portsmocks.NewMockRemote(t)
	offline := portsmocks.NewMockRemote(t)

	s := NewSwitchableRemote(online, offline, false)
	assert.False(t, s.IsOffline())
	online.EXPECT().FetchClients(mock.Anything, "user-1").Return([]domain.RemoteClient{{ID: "a"}}, nil).Once()
	got, err := s.FetchClients(ctx, "user-1")
	require.NoError(t, err)
	assert.Len(t, got, 1)

	require.NoError(t, s.Use(true))
	assert.True(t, s.IsOffline())
	offline.EXPECT().FetchClients(mock.Anything, "user-1").Return(nil, nil).Once()
	got, err = s.FetchClients(ctx, "user-1")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSwitchableRemote_NoBackend(t *testing.T) {
	s := NewSwitchableRemote(nil, portsmocks.NewMockRemote(t), false)

	assert.True(t, s.IsOffline())
	require.ErrorIs(t, s.Use(false), domain.ErrOffline)
}

type offlineFixture struct {
	auth       *portsmocks.MockAuthenticator
	controller *OfflineController
	flags      []bool
	online     *portsmocks.MockRemote
	remote     *SwitchableRemote
}

func newOfflineFixture(t *testing.T) *offlineFixture {
	f := newFixture(t, "")
	of := &offlineFixture{
		auth:   portsmocks.NewMockAuthenticator(t),
		online: portsmocks.NewMockRemote(t),
	}
	of.remote = NewSwitchableRemote(of.online, portsmocks.NewMockRemote(t), true)
	reconciler := NewReconciler(testSyncConfig, of.remote, f.clients, f.stamp, func() string { return "" })
	authService := NewAuthService(of.auth, filepath.Join(t.TempDir(), "session.json"))
	of.controller = NewOfflineController(of.remote, reconciler, authService, func(offline bool) error {
		of.flags = append(of.flags, offline)
		return nil
	})
	return of
}

func TestOfflineController_GoOnlineRequiresSession(t *testing.T) {
	of := newOfflineFixture(t)

	_, err := of.controller.GoOnline(context.Background(), false)

	require.ErrorIs(t, err, domain.ErrNoSession)
	assert.True(t, of.controller.IsOffline())
	assert.Empty(t, of.flags)
}

func TestOfflineController_RoundTrip(t *testing.T) {
	ctx := context.Background()
	of := newOfflineFixture(t)
	session := &domain.Session{Token: "tok", UserID: "user-1", ExpiresAt: time.Now().Add(time.Hour)}
	of.auth.EXPECT().SignIn(mock.Anything, mock.Anything, mock.Anything).Return(session, nil)
	of.auth.EXPECT().CurrentUser(mock.Anything, "tok").Return(session, nil)
	_, err := of.controller.auth.Login(ctx, "dana@example.test", "pw")
	require.NoError(t, err)

	got, err := of.controller.GoOnline(ctx, false)
	require.NoError(t, err)
	assert.Equal(t, "user-1", got.UserID)
	assert.False(t, of.controller.IsOffline())

	require.NoError(t, of.controller.EnableOffline(ctx))
	assert.True(t, of.controller.IsOffline())
	assert.Equal(t, []bool{false, true}, of.flags)
}
