package cmd

import (
	"context"
	"fmt"
)

// OfflineCmd toggles offline mode
type OfflineCmd struct {
	Off OfflineOffCmd `cmd:"off" help:"Reconnect to the remote backend (requires a valid session)"`
	On  OfflineOnCmd  `cmd:"on" help:"Work locally only"`
}

// OfflineOnCmd enables offline mode
type OfflineOnCmd struct{}

// Run executes the on command
func (o *OfflineOnCmd) Run(cli *CLI) error {
	if err := cli.Container.Offline.EnableOffline(context.Background()); err != nil {
		return err
	}
	fmt.Println("Offline mode on")
	return nil
}

// OfflineOffCmd leaves offline mode
type OfflineOffCmd struct{}

// Run executes the off command
func (o *OfflineOffCmd) Run(cli *CLI) error {
	session, err := cli.Container.Offline.GoOnline(context.Background(), false)
	if err != nil {
		return err
	}
	fmt.Printf("Online as %s\n", session.Email)
	return nil
}
