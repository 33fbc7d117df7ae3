package cmd

import (
	"context"
	"fmt"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"focuswork/internal/domain"
	"focuswork/internal/services"
)

// AttachCmd manages photos and files
type AttachCmd struct {
	Add  AttachAddCmd  `cmd:"add" help:"Attach a photo or file"`
	Del  AttachDelCmd  `cmd:"del" aliases:"rm" help:"Remove an attachment"`
	List AttachListCmd `cmd:"list" aliases:"ls" help:"List attachments" default:"withargs"`
	Save AttachSaveCmd `cmd:"save" help:"Write an attachment's local copy to disk"`
}

// AttachAddCmd attaches a file from disk
type AttachAddCmd struct {
	Client  string `arg:"" help:"Client id, name or id prefix"`
	Comment string `help:"Comment shown with the attachment" short:"m"`
	Path    string `arg:"" type:"existingfile" help:"File to attach"`
}

// Run executes the add command
func (a *AttachAddCmd) Run(cli *CLI) error {
	ctx := context.Background()
	c, err := resolveClient(ctx, cli, a.Client)
	if err != nil {
		return err
	}
	data, err := os.ReadFile(a.Path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", a.Path, err)
	}

	att, err := cli.Container.Clients.AddAttachment(ctx, c.ID, services.AttachmentInput{
		Comment:     a.Comment,
		ContentType: contentType(a.Path, data),
		Data:        data,
		Name:        filepath.Base(a.Path),
	})
	if err != nil {
		return err
	}
	where := "stored locally"
	if att.URL != "" {
		where = "uploaded to " + att.URL
	}
	fmt.Printf("Attached %s '%s' to '%s' (%s)\n", att.Kind, att.Name, c.Name, where)
	return nil
}

// contentType prefers the extension and falls back to sniffing the payload
func contentType(path string, data []byte) string {
	if ct := mime.TypeByExtension(strings.ToLower(filepath.Ext(path))); ct != "" {
		return ct
	}
	return http.DetectContentType(data)
}

// AttachListCmd lists attachments
type AttachListCmd struct {
	Client string `arg:"" help:"Client id, name or id prefix"`
}

// Run executes the list command
func (l *AttachListCmd) Run(cli *CLI) error {
	ctx := context.Background()
	c, err := resolveClient(ctx, cli, l.Client)
	if err != nil {
		return err
	}
	atts, err := cli.Container.Clients.Attachments(ctx, c.ID)
	if err != nil {
		return err
	}
	if len(atts) == 0 {
		fmt.Println("No attachments")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tKIND\tNAME\tDATE\tURL\tCOMMENT")
	for _, a := range atts {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			shortID(a.ID), a.Kind, a.Name, a.Date.Local().Format("2006-01-02 15:04"), a.URL, a.Comment)
	}
	w.Flush()
	return nil
}

// AttachDelCmd removes an attachment
type AttachDelCmd struct {
	Client     string `arg:"" help:"Client id, name or id prefix"`
	Attachment string `arg:"" help:"Attachment id or id prefix"`
}

// Run executes the del command
func (d *AttachDelCmd) Run(cli *CLI) error {
	ctx := context.Background()
	c, err := resolveClient(ctx, cli, d.Client)
	if err != nil {
		return err
	}
	id := matchAttachment(c.Attachments(), d.Attachment)
	if err := cli.Container.Clients.RemoveAttachment(ctx, c.ID, id); err != nil {
		return err
	}
	fmt.Printf("Removed attachment %s from '%s'\n", shortID(id), c.Name)
	return nil
}

// AttachSaveCmd writes the local payload to a file
type AttachSaveCmd struct {
	Client     string `arg:"" help:"Client id, name or id prefix"`
	Attachment string `arg:"" help:"Attachment id or id prefix"`
	Output     string `help:"Destination path (default: attachment name)" short:"o"`
}

// Run executes the save command
func (s *AttachSaveCmd) Run(cli *CLI) error {
	ctx := context.Background()
	c, err := resolveClient(ctx, cli, s.Client)
	if err != nil {
		return err
	}
	atts := c.Attachments()
	id := matchAttachment(atts, s.Attachment)
	data, err := cli.Container.Clients.AttachmentData(ctx, id)
	if err != nil {
		return err
	}

	out := s.Output
	if out == "" {
		for _, a := range atts {
			if a.ID == id {
				out = filepath.Base(a.Name)
			}
		}
	}
	if out == "" {
		out = id
	}
	if err := os.WriteFile(out, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", out, err)
	}
	fmt.Printf("Saved %d bytes to %s\n", len(data), out)
	return nil
}

// matchAttachment expands an id prefix; unknown refs are passed through
func matchAttachment(atts []domain.Attachment, ref string) string {
	ids := make([]string, len(atts))
	for i, a := range atts {
		ids[i] = a.ID
	}
	return expandID(ids, ref)
}
