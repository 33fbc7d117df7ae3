package cmd

import (
	"context"
	"fmt"
	"time"

	"focuswork/internal/ui"
)

// ExtraCmd manages manual extra hours
type ExtraCmd struct {
	Add ExtraAddCmd `cmd:"add" help:"Add extra billable hours"`
	Del ExtraDelCmd `cmd:"del" aliases:"rm" help:"Remove an extra hours entry"`
}

// ExtraAddCmd adds an entry
type ExtraAddCmd struct {
	Client      string  `arg:"" help:"Client id, name or id prefix"`
	Date        string  `help:"Date of the work (YYYY-MM-DD, default today)"`
	Description string  `help:"What the hours were for" short:"m"`
	Hours       float64 `arg:"" help:"Hours to add, e.g. 2.5"`
}

// Run executes the add command
func (a *ExtraAddCmd) Run(cli *CLI) error {
	ctx := context.Background()
	c, err := resolveClient(ctx, cli, a.Client)
	if err != nil {
		return err
	}
	date := a.Date
	if date == "" {
		date = time.Now().Format(time.DateOnly)
	}
	entry, err := cli.Container.Clients.AddExtraHours(ctx, c.ID, a.Hours, date, a.Description)
	if err != nil {
		return err
	}
	fmt.Printf("Added %s to '%s' (entry %s)\n", ui.FormatHours(entry.Seconds), c.Name, shortID(entry.ID))
	return nil
}

// ExtraDelCmd removes an entry
type ExtraDelCmd struct {
	Client string `arg:"" help:"Client id, name or id prefix"`
	Entry  string `arg:"" help:"Entry id or id prefix"`
}

// Run executes the del command
func (d *ExtraDelCmd) Run(cli *CLI) error {
	ctx := context.Background()
	c, err := resolveClient(ctx, cli, d.Client)
	if err != nil {
		return err
	}
	ids := make([]string, len(c.ExtraHours))
	for i, e := range c.ExtraHours {
		ids[i] = e.ID
	}
	entry, err := cli.Container.Clients.RemoveExtraHours(ctx, c.ID, expandID(ids, d.Entry))
	if err != nil {
		return err
	}
	fmt.Printf("Removed %s from '%s'\n", ui.FormatHours(entry.Seconds), c.Name)
	return nil
}
