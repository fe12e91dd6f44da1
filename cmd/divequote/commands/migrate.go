package commands

import (
	"context"

	"divequote/internal/storage"

	"github.com/spf13/cobra"
)

func migrateCmd(app *appContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the services schema in PostgreSQL",
	}

	run := func(fn func(*storage.PostgresStorage, context.Context) error) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) error {
			pg, err := storage.NewPostgresStorage(cmd.Context(), app.cfg.Database, app.logger)
			if err != nil {
				return err
			}
			defer pg.Close()
			return fn(pg, cmd.Context())
		}
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all pending migrations",
			RunE:  run((*storage.PostgresStorage).RunMigrations),
		},
		&cobra.Command{
			Use:   "down",
			Short: "Roll back the last migration",
			RunE:  run((*storage.PostgresStorage).RollbackMigration),
		},
		&cobra.Command{
			Use:   "status",
			Short: "Print migration status",
			RunE:  run((*storage.PostgresStorage).MigrationStatus),
		},
	)
	return cmd
}
