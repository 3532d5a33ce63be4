package cmd

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	"github.com/templui/goaltrack/internal/config"
	"github.com/templui/goaltrack/internal/db"
)

func MigrateCmd() *cobra.Command {
	migrate := &cobra.Command{
		Use:   "migrate",
		Short: "Manage database migrations",
	}

	migrate.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDB(cmd.Context(), func(cfg *config.Config, database *sqlx.DB) error {
				err := db.RunMigrations(cmd.Context(), database.DB, cfg.DBDriver)
				if err != nil {
					return err
				}
				fmt.Println("Migrations applied")
				return nil
			})
		},
	})

	migrate.AddCommand(&cobra.Command{
		Use:   "down",
		Short: "Roll back the most recent migration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDB(cmd.Context(), func(cfg *config.Config, database *sqlx.DB) error {
				err := db.MigrateDown(cmd.Context(), database.DB, cfg.DBDriver)
				if err != nil {
					return err
				}
				fmt.Println("Rolled back one migration")
				return nil
			})
		},
	})

	migrate.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show applied and pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDB(cmd.Context(), func(cfg *config.Config, database *sqlx.DB) error {
				statuses, err := db.Status(cmd.Context(), database.DB, cfg.DBDriver)
				if err != nil {
					return err
				}

				w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
				fmt.Fprintln(w, "VERSION\tSTATE\tFILE")
				for _, s := range statuses {
					state := "pending"
					if s.Applied {
						state = "applied"
					}
					fmt.Fprintf(w, "%d\t%s\t%s\n", s.Version, state, s.Path)
				}
				return w.Flush()
			})
		},
	})

	return migrate
}

// withDB loads the config and opens the configured database for fn.
func withDB(ctx context.Context, fn func(cfg *config.Config, database *sqlx.DB) error) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg := config.Load()

	database, err := db.Init(ctx, cfg.DBDriver, cfg.DBConnection)
	if err != nil {
		return err
	}
	defer db.Close(database)

	return fn(cfg, database)
}
