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

var flagMigrateStrict bool

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Add any missing columns and reinstall the updated_at trigger",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := cfgpkg.Load()
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		pool, err := pgdao.OpenApp(ctx, cfg)
		if err != nil {
			return err
		}
		defer pool.Close()

		rep := pgdao.NewSchemaManager(pool).AddMissingColumns(ctx)
		printMigrationReport(rep)
		if flagMigrateStrict && !rep.OK() {
			return fmt.Errorf("migration finished with %d error(s)", len(rep.Errors))
		}
		if !rep.OK() {
			fmt.Fprintln(os.Stderr, "db:migrate - finished with warnings (see above)")
		}
		return nil
	},
}

func init() {
	migrateCmd.Flags().BoolVar(&flagMigrateStrict, "strict", false, "Exit non-zero when any migration step fails")
}
