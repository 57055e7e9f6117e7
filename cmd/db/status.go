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

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show database connectivity and table status",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := cfgpkg.Load()
		if err != nil {
			return err
		}
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		fmt.Fprintln(os.Stderr, "db:status - checking Postgres...")
		pool, err := pgdao.OpenApp(ctx, cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "postgres: error: %v\n", err)
			return err
		}
		defer pool.Close()
		var dbname, user string
		_ = pool.QueryRow(ctx, "select current_database(), current_user").Scan(&dbname, &user)
		fmt.Fprintf(os.Stderr, "postgres: ok db=%s user=%s\n", dbname, user)

		missing := 0
		for _, ts := range pgdao.NewSchemaManager(pool).InspectSchema(ctx) {
			switch {
			case ts.Err != nil:
				fmt.Fprintf(os.Stderr, "table %q: error: %v\n", ts.Table, ts.Err)
				missing++
			case len(ts.Columns) == 0:
				fmt.Fprintf(os.Stderr, "table %q: missing (run 'cbx db init')\n", ts.Table)
				missing++
			default:
				fmt.Fprintf(os.Stderr, "table %q: ok (%d columns)\n", ts.Table, len(ts.Columns))
			}
		}
		if missing > 0 {
			return fmt.Errorf("%d table(s) missing or unreadable", missing)
		}
		return nil
	},
}
