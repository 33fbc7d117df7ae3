package ports

import (
	"context"

	"focuswork/internal/domain"
)

// RemoteStore reads and writes client rows in the hosted backend.
// FetchClient and FetchFingerprint return (nil, nil) for a missing row.
type RemoteStore interface {
	DeleteClient(ctx context.Context, ownerID, id string) error
	FetchClient(ctx context.Context, ownerID, id string) (*domain.RemoteClient, error)
	FetchClients(ctx context.Context, ownerID string) ([]domain.RemoteClient, error)
	FetchFingerprint(ctx context.Context, ownerID, id string) (*domain.Fingerprint, error)
	UpsertClient(ctx context.Context, client domain.RemoteClient) error
}

// ChangeFeed pushes row changes scoped to one owner. Subscribe blocks, calling
// handler for every event, until ctx is done (returns nil) or the feed fails.
type ChangeFeed interface {
	Subscribe(ctx context.Context, ownerID string, handler func(domain.ChangeEvent)) error
}

// Authenticator verifies credentials and resolves session tokens
type Authenticator interface {
	CurrentUser(ctx context.Context, token string) (*domain.Session, error)
	SignIn(ctx context.Context, email, password string) (*domain.Session, error)
	SignOut(ctx context.Context, token string) error
}

// Remote bundles everything the offline controller swaps as a unit
type Remote interface {
	RemoteStore
	ChangeFeed
}
