package remote

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"focuswork/internal/adapters/session"
	"focuswork/internal/domain"
)

type memoryUsers struct {
	mu    sync.Mutex
	users map[string]User
}

func newMemoryUsers() *memoryUsers {
	return &memoryUsers{users: make(map[string]User)}
}

func (m *memoryUsers) CreateUser(_ context.Context, u User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[u.ID] = u
	return nil
}

func (m *memoryUsers) UserByEmail(_ context.Context, email string) (User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == normalizeEmail(email) {
			return u, nil
		}
	}
	return User{}, ErrUserNotFound
}

func (m *memoryUsers) UserByID(_ context.Context, id string) (User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return User{}, ErrUserNotFound
	}
	return u, nil
}

func newTestAuthenticator(t *testing.T) (*Authenticator, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewAuthenticator(newMemoryUsers(), session.NewRedisStoreWithClient(client)), mr
}

func TestAuthenticator_SignInAndResolve(t *testing.T) {
	auth, _ := newTestAuthenticator(t)
	ctx := context.Background()

	user, err := auth.Register(ctx, "Ana@Example.com", "correct horse")
	require.NoError(t, err)

	sess, err := auth.SignIn(ctx, "ana@example.com", "correct horse")
	require.NoError(t, err)
	assert.Equal(t, user.ID, sess.UserID)
	assert.Equal(t, "ana@example.com", sess.Email)
	assert.True(t, sess.Valid(time.Now()))

	current, err := auth.CurrentUser(ctx, sess.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, current.UserID)

	require.NoError(t, auth.SignOut(ctx, sess.Token))
	_, err = auth.CurrentUser(ctx, sess.Token)
	assert.ErrorIs(t, err, domain.ErrNoSession)
}

func TestAuthenticator_WrongPassword(t *testing.T) {
	auth, _ := newTestAuthenticator(t)
	ctx := context.Background()

	_, err := auth.Register(ctx, "bo@example.com", "longenough")
	require.NoError(t, err)

	_, err = auth.SignIn(ctx, "bo@example.com", "wrong-password")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = auth.SignIn(ctx, "nobody@example.com", "longenough")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestAuthenticator_ExpiredSession(t *testing.T) {
	auth, _ := newTestAuthenticator(t)
	ctx := context.Background()

	_, err := auth.Register(ctx, "cy@example.com", "longenough")
	require.NoError(t, err)
	sess, err := auth.SignIn(ctx, "cy@example.com", "longenough")
	require.NoError(t, err)

	auth.now = func() time.Time { return time.Now().Add(DefaultSessionTTL + time.Hour) }

	_, err = auth.CurrentUser(ctx, sess.Token)
	assert.ErrorIs(t, err, domain.ErrNoSession)
}

func TestAuthenticator_RegisterRejectsDuplicates(t *testing.T) {
	auth, _ := newTestAuthenticator(t)
	ctx := context.Background()

	_, err := auth.Register(ctx, "dup@example.com", "longenough")
	require.NoError(t, err)
	_, err = auth.Register(ctx, "DUP@example.com", "longenough")
	assert.Error(t, err)

	_, err = auth.Register(ctx, "short@example.com", "short")
	assert.Error(t, err)
}

func TestHashToken_IsStable(t *testing.T) {
	assert.Equal(t, HashToken("abc"), HashToken("abc"))
	assert.NotEqual(t, HashToken("abc"), HashToken("abd"))
	assert.Len(t, HashToken("abc"), 64)
}
