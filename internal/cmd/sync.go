package cmd

import (
	"context"
	"fmt"

	"focuswork/internal/domain"
)

// SyncCmd performs a one-shot full pull and pushes local-only clients
type SyncCmd struct{}

// Run executes the sync command
func (s *SyncCmd) Run(cli *CLI) error {
	c := cli.Container
	if c.Offline.IsOffline() {
		return fmt.Errorf("%w: run 'focuswork offline off' first", domain.ErrOffline)
	}
	owner := c.Auth.OwnerID()
	if owner == "" {
		return fmt.Errorf("%w: run 'focuswork login' first", domain.ErrNoSession)
	}

	ctx := context.Background()
	report, err := c.Reconciler.PullAll(ctx, owner)
	if err != nil {
		return err
	}
	if err := c.Clients.Reindex(ctx); err != nil {
		return err
	}
	fmt.Printf("Pulled %d client(s), pushed %d local-only client(s)\n", report.Pulled, report.Pushed)
	return nil
}
