package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/glamour"

	"focuswork/internal/adapters/editor"
	"focuswork/internal/domain"
	"focuswork/internal/logging"
	"focuswork/internal/ports"
	"focuswork/internal/services"
	"focuswork/internal/ui"
)

// ClientsCmd manages clients
type ClientsCmd struct {
	Add      ClientsAddCmd      `cmd:"add" help:"Add a new client"`
	Close    ClientsCloseCmd    `cmd:"close" help:"Close a client (stops tracking it)"`
	Contact  ClientsContactCmd  `cmd:"contact" help:"Set company, email, phone or tags"`
	Del      ClientsDelCmd      `cmd:"del" aliases:"rm" help:"Delete a client everywhere"`
	Delivery ClientsDeliveryCmd `cmd:"delivery" help:"Set or clear the delivery date"`
	List     ClientsListCmd     `cmd:"list" aliases:"ls" help:"List clients" default:"1"`
	Notes    ClientsNotesCmd    `cmd:"notes" help:"Show or replace client notes"`
	Rename   ClientsRenameCmd   `cmd:"rename" help:"Rename a client"`
	Reopen   ClientsReopenCmd   `cmd:"reopen" help:"Reopen a closed client"`
	Search   ClientsSearchCmd   `cmd:"search" help:"Search clients by name, company, tags and notes"`
	Show     ClientsShowCmd     `cmd:"show" aliases:"view" help:"Show a client"`
	Status   ClientsStatusCmd   `cmd:"status" help:"Change the workflow status"`
	Tasks    ClientsTasksCmd    `cmd:"tasks" help:"Set urgent, important and later tasks"`
}

// ClientsAddCmd creates a client
type ClientsAddCmd struct {
	Company string   `help:"Company name"`
	Email   string   `help:"Contact email"`
	Name    string   `arg:"" help:"Client name"`
	Phone   string   `help:"Contact phone"`
	Tags    []string `help:"Tags (comma separated)"`
}

// Run executes the add command
func (a *ClientsAddCmd) Run(cli *CLI) error {
	ctx := context.Background()
	clients := cli.Container.Clients

	c, err := clients.Create(ctx, a.Name)
	if err != nil {
		return err
	}
	if a.Company != "" || a.Email != "" || a.Phone != "" || len(a.Tags) > 0 {
		details := services.ContactDetails{Tags: a.Tags}
		if a.Company != "" {
			details.Company = &a.Company
		}
		if a.Email != "" {
			details.Email = &a.Email
		}
		if a.Phone != "" {
			details.Phone = &a.Phone
		}
		if c, err = clients.SetContact(ctx, c.ID, details); err != nil {
			return err
		}
	}

	fmt.Printf("Created client '%s' (%s)\n", c.Name, c.ID)
	return nil
}

// ClientsListCmd lists clients
type ClientsListCmd struct {
	All    bool   `help:"Include closed clients" short:"a"`
	Format string `help:"Output format: table or json" enum:"table,json" default:"table"`
}

// Run executes the list command
func (l *ClientsListCmd) Run(cli *CLI) error {
	ctx := context.Background()
	clients, err := cli.Container.Clients.List(ctx)
	if err != nil {
		return err
	}
	if !l.All {
		clients = activeOnly(clients)
	}
	if l.Format == "json" {
		return printJSON(clients)
	}
	printClientTable(clients, cli.Container.Tracker.State().CurrentClientID)
	return nil
}

func activeOnly(clients []domain.Client) []domain.Client {
	out := clients[:0]
	for _, c := range clients {
		if c.Active {
			out = append(out, c)
		}
	}
	return out
}

func printClientTable(clients []domain.Client, trackedID string) {
	if len(clients) == 0 {
		fmt.Println("No clients")
		return
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "\tID\tNAME\tSTATUS\tTOTAL\tBILLABLE\tCOMPANY")
	for _, c := range clients {
		marker := ""
		if c.ID == trackedID {
			marker = "*"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			marker, shortID(c.ID), c.Name, c.Status,
			ui.FormatDuration(c.Total), ui.FormatDuration(c.BillableTime), c.Company)
	}
	w.Flush()
}

// ClientsShowCmd prints one client with its notes rendered as markdown
type ClientsShowCmd struct {
	Client string `arg:"" help:"Client id, name or id prefix"`
	Format string `help:"Output format: text or json" enum:"text,json" default:"text"`
}

// Run executes the show command
func (s *ClientsShowCmd) Run(cli *CLI) error {
	ctx := context.Background()
	c, err := resolveClient(ctx, cli, s.Client)
	if err != nil {
		return err
	}
	if s.Format == "json" {
		return printJSON(c)
	}

	fmt.Printf("%s  [%s]\n", c.Name, c.Status)
	fmt.Printf("ID:        %s\n", c.ID)
	if c.Company != "" {
		fmt.Printf("Company:   %s\n", c.Company)
	}
	if c.Email != "" {
		fmt.Printf("Email:     %s\n", c.Email)
	}
	if c.Phone != "" {
		fmt.Printf("Phone:     %s\n", c.Phone)
	}
	if len(c.Tags) > 0 {
		fmt.Printf("Tags:      %s\n", strings.Join(c.Tags, ", "))
	}
	if c.DeliveryDate != "" {
		fmt.Printf("Delivery:  %s\n", c.DeliveryDate)
	}
	fmt.Printf("Total:     %s\n", ui.FormatDuration(c.Total))
	fmt.Printf("Billable:  %s\n", ui.FormatDuration(c.BillableTime))
	for _, kind := range domain.KnownActivities {
		if secs := c.Activities[kind]; secs > 0 {
			fmt.Printf("  %-9s %s\n", kind, ui.FormatDuration(secs))
		}
	}
	for _, e := range c.ExtraHours {
		fmt.Printf("Extra:     %s  %s  %s  (%s)\n", e.Date, ui.FormatHours(e.Seconds), e.Description, shortID(e.ID))
	}
	if t := c.Tasks; t.Urgent != "" || t.Important != "" || t.Later != "" {
		fmt.Println()
		fmt.Printf("Urgent:    %s\n", t.Urgent)
		fmt.Printf("Important: %s\n", t.Important)
		fmt.Printf("Later:     %s\n", t.Later)
	}
	if n := len(c.Photos) + len(c.Files); n > 0 {
		fmt.Printf("Attachments: %d photo(s), %d file(s)\n", len(c.Photos), len(c.Files))
	}

	if strings.TrimSpace(c.Notes) != "" {
		fmt.Println()
		fmt.Print(renderMarkdown(c.Notes))
	}
	return nil
}

// renderMarkdown renders notes for the terminal, falling back to plain text
func renderMarkdown(text string) string {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		logging.Logger.Debug("Markdown renderer unavailable", "error", err)
		return text + "\n"
	}
	out, err := renderer.Render(text)
	if err != nil {
		logging.Logger.Debug("Failed to render markdown", "error", err)
		return text + "\n"
	}
	return out
}

// ClientsRenameCmd renames a client
type ClientsRenameCmd struct {
	Client string `arg:"" help:"Client id, name or id prefix"`
	Name   string `arg:"" help:"New name"`
}

// Run executes the rename command
func (r *ClientsRenameCmd) Run(cli *CLI) error {
	ctx := context.Background()
	c, err := resolveClient(ctx, cli, r.Client)
	if err != nil {
		return err
	}
	if _, err := cli.Container.Clients.Rename(ctx, c.ID, r.Name); err != nil {
		return err
	}
	fmt.Printf("Renamed '%s' to '%s'\n", c.Name, strings.TrimSpace(r.Name))
	return nil
}

// ClientsCloseCmd closes a client
type ClientsCloseCmd struct {
	Client string `arg:"" help:"Client id, name or id prefix"`
}

// Run executes the close command
func (cl *ClientsCloseCmd) Run(cli *CLI) error {
	ctx := context.Background()
	c, err := resolveClient(ctx, cli, cl.Client)
	if err != nil {
		return err
	}
	if _, err := cli.Container.Clients.Close(ctx, c.ID); err != nil {
		return err
	}
	fmt.Printf("Closed '%s'\n", c.Name)
	return nil
}

// ClientsReopenCmd reopens a closed client
type ClientsReopenCmd struct {
	Client string `arg:"" help:"Client id, name or id prefix"`
}

// Run executes the reopen command
func (r *ClientsReopenCmd) Run(cli *CLI) error {
	ctx := context.Background()
	c, err := resolveClient(ctx, cli, r.Client)
	if err != nil {
		return err
	}
	if _, err := cli.Container.Clients.Reopen(ctx, c.ID); err != nil {
		return err
	}
	fmt.Printf("Reopened '%s'\n", c.Name)
	return nil
}

// ClientsDelCmd deletes a client locally and remotely
type ClientsDelCmd struct {
	Client string `arg:"" help:"Client id, name or id prefix"`
	Force  bool   `help:"Delete without confirmation" short:"f"`
}

// Run executes the del command
func (d *ClientsDelCmd) Run(cli *CLI) error {
	ctx := context.Background()
	c, err := resolveClient(ctx, cli, d.Client)
	if err != nil {
		return err
	}

	if !d.Force {
		fmt.Printf("WARNING: This will delete client '%s' with %s tracked and %d attachment(s)\n",
			c.Name, ui.FormatDuration(c.Total), len(c.Photos)+len(c.Files))
		fmt.Print("\nContinue? (y/N): ")
		var response string
		fmt.Scanln(&response)
		if response != "y" && response != "Y" {
			logging.Logger.Info("User cancelled client deletion", "client", c.ID)
			fmt.Println("Cancelled")
			return nil
		}
	}

	if err := cli.Container.Clients.Delete(ctx, c.ID); err != nil {
		return err
	}
	fmt.Printf("Deleted '%s'\n", c.Name)
	return nil
}

// ClientsNotesCmd prints or replaces notes
type ClientsNotesCmd struct {
	Client string `arg:"" help:"Client id, name or id prefix"`
	Edit   bool   `help:"Edit the notes in an external editor" short:"e"`
	Editor string `help:"Editor command (default: $FOCUSWORK_EDITOR, $VISUAL or $EDITOR)"`
	File   string `help:"Read the new notes from a file" type:"existingfile" short:"f"`
	Notes  string `arg:"" optional:"" help:"New notes text"`
}

// Run executes the notes command
func (n *ClientsNotesCmd) Run(cli *CLI) error {
	ctx := context.Background()
	c, err := resolveClient(ctx, cli, n.Client)
	if err != nil {
		return err
	}

	notes := n.Notes
	if n.Edit {
		var textEditor ports.TextEditor = editor.NewEditor(n.Editor)
		edited, err := textEditor.Edit(ctx, c.Name, c.Notes)
		if err != nil {
			return err
		}
		if edited == c.Notes {
			fmt.Println("Notes unchanged")
			return nil
		}
		notes = edited
	}
	if n.File != "" {
		data, err := os.ReadFile(n.File)
		if err != nil {
			return fmt.Errorf("failed to read notes file: %w", err)
		}
		notes = string(data)
	}
	if notes == "" && n.File == "" && !n.Edit {
		fmt.Print(renderMarkdown(c.Notes))
		return nil
	}

	if _, err := cli.Container.Clients.SetNotes(ctx, c.ID, notes); err != nil {
		return err
	}
	fmt.Printf("Notes updated for '%s'\n", c.Name)
	return nil
}

// ClientsTasksCmd sets the three task lists
type ClientsTasksCmd struct {
	Client    string  `arg:"" help:"Client id, name or id prefix"`
	Important *string `help:"Important tasks"`
	Later     *string `help:"Tasks for later"`
	Urgent    *string `help:"Urgent tasks"`
}

// Run executes the tasks command
func (t *ClientsTasksCmd) Run(cli *CLI) error {
	ctx := context.Background()
	c, err := resolveClient(ctx, cli, t.Client)
	if err != nil {
		return err
	}

	tasks := c.Tasks
	if t.Important != nil {
		tasks.Important = *t.Important
	}
	if t.Later != nil {
		tasks.Later = *t.Later
	}
	if t.Urgent != nil {
		tasks.Urgent = *t.Urgent
	}
	if _, err := cli.Container.Clients.SetTasks(ctx, c.ID, tasks); err != nil {
		return err
	}
	fmt.Printf("Tasks updated for '%s'\n", c.Name)
	return nil
}

// ClientsDeliveryCmd sets the delivery date
type ClientsDeliveryCmd struct {
	Client string `arg:"" help:"Client id, name or id prefix"`
	Date   string `arg:"" optional:"" help:"Delivery date (YYYY-MM-DD); omit to clear"`
}

// Run executes the delivery command
func (d *ClientsDeliveryCmd) Run(cli *CLI) error {
	ctx := context.Background()
	c, err := resolveClient(ctx, cli, d.Client)
	if err != nil {
		return err
	}
	if _, err := cli.Container.Clients.SetDeliveryDate(ctx, c.ID, d.Date); err != nil {
		return err
	}
	if d.Date == "" {
		fmt.Printf("Delivery date cleared for '%s'\n", c.Name)
		return nil
	}
	fmt.Printf("Delivery date for '%s' set to %s\n", c.Name, d.Date)
	return nil
}

// ClientsStatusCmd changes the workflow status
type ClientsStatusCmd struct {
	Client string `arg:"" help:"Client id, name or id prefix"`
	Status string `arg:"" help:"New status" enum:"active,paused,waiting,closed"`
}

// Run executes the status command
func (s *ClientsStatusCmd) Run(cli *CLI) error {
	ctx := context.Background()
	c, err := resolveClient(ctx, cli, s.Client)
	if err != nil {
		return err
	}
	status, ok := domain.ParseStatus(s.Status)
	if !ok {
		return fmt.Errorf("unknown status %q", s.Status)
	}
	updated, err := cli.Container.Clients.SetStatus(ctx, c.ID, status)
	if err != nil {
		return err
	}
	fmt.Printf("'%s' is now %s\n", updated.Name, updated.Status)
	for _, h := range updated.StateHistory {
		fmt.Printf("  %s  %s -> %s\n", h.At.Local().Format("2006-01-02 15:04"), h.From, h.To)
	}
	return nil
}

// ClientsContactCmd updates the contact details
type ClientsContactCmd struct {
	Client  string   `arg:"" help:"Client id, name or id prefix"`
	Company *string  `help:"Company name"`
	Email   *string  `help:"Contact email"`
	Phone   *string  `help:"Contact phone"`
	Tags    []string `help:"Replace tags (comma separated)"`
}

// Run executes the contact command
func (cc *ClientsContactCmd) Run(cli *CLI) error {
	ctx := context.Background()
	c, err := resolveClient(ctx, cli, cc.Client)
	if err != nil {
		return err
	}
	_, err = cli.Container.Clients.SetContact(ctx, c.ID, services.ContactDetails{
		Company: cc.Company,
		Email:   cc.Email,
		Phone:   cc.Phone,
		Tags:    cc.Tags,
	})
	if err != nil {
		return err
	}
	fmt.Printf("Contact updated for '%s'\n", c.Name)
	return nil
}

// ClientsSearchCmd searches clients
type ClientsSearchCmd struct {
	Format string `help:"Output format: table or json" enum:"table,json" default:"table"`
	Limit  int    `help:"Maximum results" default:"20" short:"n"`
	Query  string `arg:"" help:"Search text"`
}

// Run executes the search command
func (s *ClientsSearchCmd) Run(cli *CLI) error {
	ctx := context.Background()
	results, err := cli.Container.Search.Find(ctx, s.Query, s.Limit)
	if err != nil {
		return err
	}
	logging.Logger.Debug("Search finished", "backend", cli.Container.Search.Backend(), "results", len(results))
	if s.Format == "json" {
		return printJSON(results)
	}
	printClientTable(results, cli.Container.Tracker.State().CurrentClientID)
	return nil
}

func resolveClient(ctx context.Context, cli *CLI, ref string) (domain.Client, error) {
	c, err := cli.Container.Clients.Resolve(ctx, ref)
	if err != nil {
		return domain.Client{}, err
	}
	return cli.Container.Clients.Get(ctx, c.ID)
}

func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// expandID returns the single id starting with ref, or ref itself when it is
// ambiguous or unknown
func expandID(ids []string, ref string) string {
	match := ""
	for _, id := range ids {
		if id == ref {
			return id
		}
		if strings.HasPrefix(id, ref) {
			if match != "" {
				return ref
			}
			match = id
		}
	}
	if match == "" {
		return ref
	}
	return match
}
