package cmd

import (
	"context"
	"fmt"

	"focuswork/internal/domain"
)

// DoctorCmd checks the local store and cleans up remote leftovers
type DoctorCmd struct{}

// Run executes the doctor command
func (d *DoctorCmd) Run(cli *CLI) error {
	ctx := context.Background()
	c := cli.Container

	if !c.StoreAvailable() {
		fmt.Printf("Local store:    unavailable (%s)\n", c.Runtime.DBPath)
		return domain.ErrStorageUnavailable
	}
	fmt.Println("Local store:    ok")

	if err := c.Clients.Reindex(ctx); err != nil {
		fmt.Printf("Search index:   %v\n", err)
	} else {
		fmt.Printf("Search index:   rebuilt (%s)\n", c.Search.Backend())
	}

	if c.Offline.IsOffline() {
		fmt.Println("Attachments:    skipped (offline)")
		return nil
	}
	removed, err := c.Clients.SweepOrphanBlobs(ctx)
	if err != nil {
		return fmt.Errorf("failed to sweep attachment objects: %w", err)
	}
	fmt.Printf("Attachments:    %d orphan object(s) removed\n", removed)
	return nil
}
