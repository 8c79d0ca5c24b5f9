package system

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/julianstephens/garden/internal/cli"
)

type InitCmd struct {
	Force bool `help:"Force reset by deleting the existing local database before initialization."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if c.Force {
		dbPath := ctx.Store.GetConfigPath()
		if dbPath == "postgresql" {
			return fmt.Errorf("--force is only supported for local storage")
		}
		if abs, err := filepath.Abs(dbPath); err == nil {
			dbPath = abs
		}
		if _, err := os.Stat(dbPath); err == nil {
			if err := ctx.Store.Close(); err != nil {
				return fmt.Errorf("failed to close existing database: %w", err)
			}
			if err := os.Remove(dbPath); err != nil {
				return fmt.Errorf("failed to delete existing database: %w", err)
			}
			fmt.Printf("Deleted existing database at: %s\n", dbPath)
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("failed to access existing database: %w", err)
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	fmt.Printf("Initialized garden storage at: %s\n", ctx.Store.GetConfigPath())
	return nil
}
