package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"focuswork/internal/domain"
	"focuswork/internal/services"
)

// ExportCmd writes a JSON export
type ExportCmd struct {
	Client string `arg:"" optional:"" help:"Export only this client (id, name or id prefix)"`
	Output string `help:"Destination file (default: stdout)" short:"o"`
}

// Run executes the export command
func (e *ExportCmd) Run(cli *CLI) error {
	ctx := context.Background()
	transfer := cli.Container.Transfer

	var doc domain.ExportDocument
	var err error
	if e.Client != "" {
		c, rerr := cli.Container.Clients.Resolve(ctx, e.Client)
		if rerr != nil {
			return rerr
		}
		doc, err = transfer.ExportClient(ctx, c.ID)
	} else {
		doc, err = transfer.ExportAll(ctx)
	}
	if err != nil {
		return err
	}

	data, err := services.Encode(doc)
	if err != nil {
		return fmt.Errorf("failed to encode export: %w", err)
	}
	if e.Output == "" {
		_, err = os.Stdout.Write(append(data, '\n'))
		return err
	}
	if err := os.WriteFile(e.Output, data, 0600); err != nil {
		return fmt.Errorf("failed to write %s: %w", e.Output, err)
	}
	fmt.Fprintf(os.Stderr, "Exported %s document to %s\n", doc.Type, e.Output)
	return nil
}

// ImportCmd applies a JSON export
type ImportCmd struct {
	Path string `arg:"" help:"Export file ('-' for stdin)"`
}

// Run executes the import command
func (i *ImportCmd) Run(cli *CLI) error {
	devLock, err := cli.Container.AcquireLock()
	if err != nil {
		return err
	}
	defer devLock.Release()

	var data []byte
	if i.Path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(i.Path)
	}
	if err != nil {
		return fmt.Errorf("failed to read import: %w", err)
	}

	report, err := cli.Container.Transfer.Import(context.Background(), data)
	if err != nil {
		return err
	}
	fmt.Printf("Imported %d client(s) from %s document (undo with 'focuswork backup restore %s')\n",
		report.Clients, report.Type, report.BackupID)
	return nil
}
