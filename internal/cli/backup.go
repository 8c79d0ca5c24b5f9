package cli

import (
	"fmt"
	"path/filepath"

	"github.com/julianstephens/garden/internal/backup"
)

type BackupCmd struct {
	Create  BackupCreateCmd  `cmd:"" help:"Create a backup of the local store." default:"1"`
	List    BackupListCmd    `cmd:"" help:"List available backups."`
	Restore BackupRestoreCmd `cmd:"" help:"Restore the local store from a backup."`
}

// localManager builds a backup manager for the configured store, rejecting
// remote backends whose backups live with the database host.
func localManager(ctx *Context) (*backup.Manager, error) {
	path := ctx.Store.GetConfigPath()
	if path == "postgresql" {
		return nil, fmt.Errorf("backups are only supported for local storage; back up PostgreSQL with pg_dump")
	}
	return backup.NewManager(path), nil
}

type BackupCreateCmd struct{}

func (c *BackupCreateCmd) Run(ctx *Context) error {
	mgr, err := localManager(ctx)
	if err != nil {
		return err
	}

	path, err := mgr.Create()
	if err != nil {
		return err
	}

	fmt.Printf("Created backup: %s\n", filepath.Base(path))
	return nil
}

type BackupListCmd struct{}

func (c *BackupListCmd) Run(ctx *Context) error {
	mgr, err := localManager(ctx)
	if err != nil {
		return err
	}

	backups, err := mgr.List()
	if err != nil {
		return err
	}
	if len(backups) == 0 {
		fmt.Println("No backups found.")
		return nil
	}

	fmt.Printf("Backups in %s:\n", mgr.BackupDir())
	for _, b := range backups {
		fmt.Printf("  %s  %s  %d bytes\n",
			filepath.Base(b.Path), b.Timestamp.Format("2006-01-02 15:04"), b.Size)
	}
	return nil
}

type BackupRestoreCmd struct {
	Name string `arg:"" help:"Backup filename (see 'garden backup list')."`
}

func (c *BackupRestoreCmd) Run(ctx *Context) error {
	mgr, err := localManager(ctx)
	if err != nil {
		return err
	}

	// The store holds an open handle to the file being replaced
	if err := ctx.Store.Close(); err != nil {
		return fmt.Errorf("failed to close store before restore: %w", err)
	}

	if err := mgr.Restore(filepath.Join(mgr.BackupDir(), c.Name)); err != nil {
		return err
	}

	fmt.Printf("Restored store from %s\n", c.Name)
	return nil
}
