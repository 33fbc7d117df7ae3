package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/charmbracelet/huh"

	"focuswork/internal/adapters/remote"
)

// RemoteCmd administers the remote database
type RemoteCmd struct {
	AddUser RemoteAddUserCmd `cmd:"add-user" help:"Create an account"`
	Migrate RemoteMigrateCmd `cmd:"migrate" help:"Apply the remote schema migrations"`
}

// RemoteMigrateCmd applies embedded migrations
type RemoteMigrateCmd struct{}

// Run executes the migrate command
func (m *RemoteMigrateCmd) Run(cli *CLI) error {
	db, err := cli.Container.RequireDB()
	if err != nil {
		return err
	}
	applied, err := remote.ApplyMigrations(context.Background(), db)
	if err != nil {
		return err
	}
	if len(applied) == 0 {
		fmt.Println("Schema is up to date")
		return nil
	}
	for _, v := range applied {
		fmt.Printf("Applied %s\n", v)
	}
	return nil
}

// RemoteAddUserCmd registers an account
type RemoteAddUserCmd struct {
	Email    string `arg:"" help:"Account email"`
	Password string `help:"Account password (prompted when empty)" env:"FOCUSWORK_PASSWORD"`
}

// Run executes the add-user command
func (a *RemoteAddUserCmd) Run(cli *CLI) error {
	if _, err := cli.Container.RequireDB(); err != nil {
		return err
	}
	password := a.Password
	if password == "" {
		err := huh.NewInput().
			Title("Password for " + a.Email).
			EchoMode(huh.EchoModePassword).
			Validate(func(s string) error {
				if len(s) < 8 {
					return errors.New("use at least 8 characters")
				}
				return nil
			}).
			Value(&password).
			Run()
		if err != nil {
			return err
		}
	}

	user, err := cli.Container.authenticator.Register(context.Background(), a.Email, password)
	if err != nil {
		return err
	}
	fmt.Printf("Created user %s (%s)\n", user.Email, user.ID)
	return nil
}

// redactURL hides the password of a connection string
func redactURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return "(invalid url)"
	}
	return u.Redacted()
}
