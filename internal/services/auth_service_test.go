package services

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"focuswork/internal/domain"
	portsmocks "focuswork/internal/ports/mocks"
)

func testSession(expires time.Time) *domain.Session {
	return &domain.Session{
		Email:     "dana@example.test",
		ExpiresAt: expires,
		Token:     "tok-123",
		UserID:    "user-1",
	}
}

func TestAuthService_LoginPersistsSession(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "session.json")
	auth := portsmocks.NewMockAuthenticator(t)
	auth.EXPECT().SignIn(mock.Anything, "dana@example.test", "hunter22").
		Return(testSession(time.Now().Add(time.Hour)), nil).Once()

	svc := NewAuthService(auth, path)
	session, err := svc.Login(ctx, " dana@example.test ", "hunter22")
	require.NoError(t, err)
	assert.Equal(t, "user-1", session.UserID)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	reopened := NewAuthService(auth, path)
	assert.Equal(t, "user-1", reopened.OwnerID())
}

func TestAuthService_LoginRejected(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	auth := portsmocks.NewMockAuthenticator(t)
	auth.EXPECT().SignIn(mock.Anything, "dana@example.test", "wrong").
		Return(nil, domain.ErrInvalidCredentials)

	svc := NewAuthService(auth, path)
	_, err := svc.Login(context.Background(), "dana@example.test", "wrong")

	require.ErrorIs(t, err, domain.ErrInvalidCredentials)
	assert.NoFileExists(t, path)
	assert.Empty(t, svc.OwnerID())
}

func TestAuthService_ExpiredSessionIsIgnored(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	auth := portsmocks.NewMockAuthenticator(t)
	auth.EXPECT().SignIn(mock.Anything, mock.Anything, mock.Anything).
		Return(testSession(time.Now().Add(-time.Minute)), nil)

	svc := NewAuthService(auth, path)
	_, err := svc.Login(context.Background(), "dana@example.test", "pw")
	require.NoError(t, err)

	assert.Nil(t, svc.Cached())
	_, err = svc.Current(context.Background())
	require.ErrorIs(t, err, domain.ErrNoSession)
}

func TestAuthService_CurrentAsksBackend(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "session.json")
	auth := portsmocks.NewMockAuthenticator(t)
	session := testSession(time.Now().Add(time.Hour))
	auth.EXPECT().SignIn(mock.Anything, mock.Anything, mock.Anything).Return(session, nil)
	auth.EXPECT().CurrentUser(mock.Anything, "tok-123").Return(nil, domain.ErrNoSession).Once()

	svc := NewAuthService(auth, path)
	_, err := svc.Login(ctx, "dana@example.test", "pw")
	require.NoError(t, err)

	_, err = svc.Current(ctx)
	require.ErrorIs(t, err, domain.ErrNoSession, "a revoked token is not resurrected by the local file")
}

func TestAuthService_LogoutRevokesAndForgets(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "session.json")
	auth := portsmocks.NewMockAuthenticator(t)
	auth.EXPECT().SignIn(mock.Anything, mock.Anything, mock.Anything).
		Return(testSession(time.Now().Add(time.Hour)), nil)
	auth.EXPECT().SignOut(mock.Anything, "tok-123").Return(errors.New("backend down")).Once()

	svc := NewAuthService(auth, path)
	_, err := svc.Login(ctx, "dana@example.test", "pw")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx))
	assert.NoFileExists(t, path)
	assert.Nil(t, svc.Cached())
	require.NoError(t, svc.Logout(ctx), "logout is idempotent")
}

func TestAuthService_NoBackendConfigured(t *testing.T) {
	svc := NewAuthService(nil, filepath.Join(t.TempDir(), "session.json"))

	_, err := svc.Login(context.Background(), "dana@example.test", "pw")
	require.ErrorIs(t, err, domain.ErrOffline)

	_, err = svc.Current(context.Background())
	require.ErrorIs(t, err, domain.ErrNoSession)
}

func TestAuthService_CorruptFileIgnored(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0600))

	svc := NewAuthService(nil, path)

	assert.Nil(t, svc.Cached())
}
