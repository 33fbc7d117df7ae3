package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"

	"focuswork/internal/domain"
	"focuswork/internal/logging"
)

// LoginCmd signs in and starts syncing on the next tracker run
type LoginCmd struct {
	Email    string `help:"Account email (prompted when empty)"`
	Password string `help:"Account password (prompted when empty)" env:"FOCUSWORK_PASSWORD"`
}

// Run executes the login command
func (l *LoginCmd) Run(cli *CLI) error {
	email, password := l.Email, l.Password
	if email == "" || password == "" {
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("Email").
					Value(&email).
					Validate(func(s string) error {
						if !strings.Contains(s, "@") {
							return errors.New("enter a valid email")
						}
						return nil
					}),
				huh.NewInput().
					Title("Password").
					EchoMode(huh.EchoModePassword).
					Value(&password),
			),
		)
		if err := form.Run(); err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				fmt.Println("Cancelled")
				return nil
			}
			return fmt.Errorf("login form failed: %w", err)
		}
	}

	ctx := context.Background()
	session, err := cli.Container.Auth.Login(ctx, email, password)
	if err != nil {
		return err
	}
	fmt.Printf("Signed in as %s\n", session.Email)

	if cli.Container.Offline.IsOffline() {
		fmt.Println("Offline mode is on; run 'focuswork offline off' to sync")
		return nil
	}
	report, err := cli.Container.Reconciler.PullAll(ctx, session.UserID)
	if err != nil {
		logging.Logger.Warn("Initial sync after login failed", "error", err)
		fmt.Println("Initial sync failed; run 'focuswork sync' to retry")
		return nil
	}
	fmt.Printf("Pulled %d client(s), pushed %d\n", report.Pulled, report.Pushed)
	return nil
}

// LogoutCmd revokes the session
type LogoutCmd struct{}

// Run executes the logout command
func (l *LogoutCmd) Run(cli *CLI) error {
	if err := cli.Container.Auth.Logout(context.Background()); err != nil {
		return err
	}
	fmt.Println("Signed out")
	return nil
}

// WhoamiCmd prints the signed-in user
type WhoamiCmd struct {
	Local bool `help:"Only read the local session file, do not ask the backend"`
}

// Run executes the whoami command
func (w *WhoamiCmd) Run(cli *CLI) error {
	auth := cli.Container.Auth
	if w.Local || cli.Container.Offline.IsOffline() {
		session := auth.Cached()
		if session == nil {
			return domain.ErrNoSession
		}
		fmt.Printf("%s (%s), session expires %s\n", session.Email, session.UserID, session.ExpiresAt.Local().Format("2006-01-02 15:04"))
		return nil
	}

	session, err := auth.Current(context.Background())
	if err != nil {
		return err
	}
	fmt.Printf("%s (%s), session expires %s\n", session.Email, session.UserID, session.ExpiresAt.Local().Format("2006-01-02 15:04"))
	return nil
}
