package system

import (
	"fmt"

	"github.com/julianstephens/garden/internal/cli"
	"github.com/julianstephens/garden/internal/storage/postgres"
	"github.com/julianstephens/garden/internal/storage/sqlite"
)

type MigrateCmd struct{}

func (c *MigrateCmd) Run(ctx *cli.Context) error {
	var (
		count int
		err   error
	)
	logFn := func(msg string) { fmt.Println(msg) }

	switch store := ctx.Store.(type) {
	case *sqlite.Store:
		count, err = store.Migrate(logFn)
	case *postgres.Store:
		count, err = store.Migrate(logFn)
	default:
		return fmt.Errorf("migrate is only supported for SQLite and PostgreSQL storage")
	}
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	if count == 0 {
		fmt.Println("No migrations to apply. Database is up to date.")
	} else {
		fmt.Printf("\nSuccessfully applied %d migration(s).\n", count)
	}
	return nil
}
