package db

import (
	"context"
	"fmt"
	"os"
	"time"

	cfgpkg "github.com/flarebyte/chatterbox/internal/config"
	pgdao "github.com/flarebyte/chatterbox/internal/dao/postgres"
	"github.com/spf13/cobra"
)

var flagInitSkipMigrate bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the required tables, then apply pending column migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := cfgpkg.Load()
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		fmt.Fprintln(os.Stderr, "db:init - connecting to Postgres...")
		pool, err := pgdao.OpenApp(ctx, cfg)
		if err != nil {
			return err
		}
		defer pool.Close()

		mgr := pgdao.NewSchemaManager(pool)
		fmt.Fprintln(os.Stderr, "db:init - ensuring tables...")
		// A broken base schema makes the application unusable, so this
		// failure aborts startup.
		if err := mgr.EnsureSchema(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "db:init - schema creation failed: %v\n", err)
			return err
		}

		if !flagInitSkipMigrate {
			fmt.Fprintln(os.Stderr, "db:init - applying column migrations...")
			rep := mgr.AddMissingColumns(ctx)
			printMigrationReport(rep)
		}

		fmt.Fprintln(os.Stderr, "db:init - done")
		return nil
	},
}

func init() {
	initCmd.Flags().BoolVar(&flagInitSkipMigrate, "skip-migrate", false, "Only create tables; skip column migrations")
}

func printMigrationReport(rep pgdao.MigrationReport) {
	for _, c := range rep.AddedColumns {
		fmt.Fprintf(os.Stderr, "db:migrate - added column %s\n", c)
	}
	for _, t := range rep.CreatedTables {
		fmt.Fprintf(os.Stderr, "db:migrate - created table %s\n", t)
	}
	for _, tr := range rep.Triggers {
		fmt.Fprintf(os.Stderr, "db:migrate - installed trigger %s\n", tr)
	}
	if !rep.Changed() && rep.OK() {
		fmt.Fprintln(os.Stderr, "db:migrate - schema already up to date")
	}
	// Migration failures are reported but deliberately non-fatal: a missing
	// optional column should not block boot.
	for _, e := range rep.Errors {
		fmt.Fprintf(os.Stderr, "db:migrate - warning: %v\n", e)
	}
}
