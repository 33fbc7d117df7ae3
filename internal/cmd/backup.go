package cmd

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"focuswork/internal/logging"
	"focuswork/internal/services"
)

// BackupCmd manages local backups
type BackupCmd struct {
	Create  BackupCreateCmd  `cmd:"create" help:"Snapshot every client and the tracker state"`
	List    BackupListCmd    `cmd:"list" aliases:"ls" help:"List backups, newest first" default:"1"`
	Prune   BackupPruneCmd   `cmd:"prune" help:"Delete backups beyond the retention count"`
	Restore BackupRestoreCmd `cmd:"restore" help:"Restore a backup"`
}

// BackupCreateCmd creates a manual backup
type BackupCreateCmd struct{}

// Run executes the create command
func (b *BackupCreateCmd) Run(cli *CLI) error {
	backup, err := cli.Container.Backups.Create(context.Background(), services.BackupReasonManual)
	if err != nil {
		return err
	}
	fmt.Printf("Backup %s created with %d client(s)\n", backup.ID, len(backup.Clients))
	return nil
}

// BackupListCmd lists backups
type BackupListCmd struct{}

// Run executes the list command
func (b *BackupListCmd) Run(cli *CLI) error {
	backups, err := cli.Container.Backups.List(context.Background())
	if err != nil {
		return err
	}
	if len(backups) == 0 {
		fmt.Println("No backups")
		return nil
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tCREATED\tREASON\tCLIENTS")
	for _, bk := range backups {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\n", bk.ID, bk.CreatedAt.Local().Format("2006-01-02 15:04:05"), bk.Reason, len(bk.Clients))
	}
	w.Flush()
	return nil
}

// BackupRestoreCmd restores a backup while holding the device lock
type BackupRestoreCmd struct {
	Force bool   `help:"Restore without confirmation" short:"f"`
	ID    string `arg:"" help:"Backup id"`
}

// Run executes the restore command
func (b *BackupRestoreCmd) Run(cli *CLI) error {
	devLock, err := cli.Container.AcquireLock()
	if err != nil {
		return err
	}
	defer devLock.Release()

	if !b.Force {
		fmt.Printf("WARNING: This will overwrite clients and tracker state with backup '%s'\n", b.ID)
		fmt.Print("\nContinue? (y/N): ")
		var response string
		fmt.Scanln(&response)
		if response != "y" && response != "Y" {
			logging.Logger.Info("User cancelled restore", "backup", b.ID)
			fmt.Println("Cancelled")
			return nil
		}
	}

	backup, err := cli.Container.Backups.Restore(context.Background(), b.ID)
	if err != nil {
		return err
	}
	fmt.Printf("Restored %d client(s) from backup %s\n", len(backup.Clients), backup.ID)
	return nil
}

// BackupPruneCmd applies the retention count
type BackupPruneCmd struct{}

// Run executes the prune command
func (b *BackupPruneCmd) Run(cli *CLI) error {
	removed, err := cli.Container.Backups.Prune(context.Background())
	if err != nil {
		return err
	}
	fmt.Printf("Removed %d backup(s)\n", removed)
	return nil
}
