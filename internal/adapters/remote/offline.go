package remote

import (
	"context"

	"focuswork/internal/domain"
	"focuswork/internal/ports"
)

// Offline is the no-op remote used in offline mode. Every call succeeds with an
// empty result so callers need no special casing.
type Offline struct{}

var _ ports.Remote = Offline{}

func (Offline) UpsertClient(context.Context, domain.RemoteClient) error { return nil }
func (Offline) DeleteClient(context.Context, string, string) error      { return nil }

func (Offline) FetchClient(context.Context, string, string) (*domain.RemoteClient, error) {
	return nil, nil
}

func (Offline) FetchClients(context.Context, string) ([]domain.RemoteClient, error) {
	return nil, nil
}

func (Offline) FetchFingerprint(context.Context, string, string) (*domain.Fingerprint, error) {
	return nil, nil
}

// Subscribe blocks until ctx is done; nothing is ever pushed
func (Offline) Subscribe(ctx context.Context, _ string, _ func(domain.ChangeEvent)) error {
	<-ctx.Done()
	return nil
}
