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

var flagScaffoldAppPassword string

var scaffoldCmd = &cobra.Command{
	Use:   "scaffold",
	Short: "Create the application role and database (admin credentials required)",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := cfgpkg.Load()
		if err != nil {
			return err
		}
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		fmt.Fprintln(os.Stderr, "db:scaffold - connecting to system database...")
		sysdb, err := pgdao.OpenAdminWithDB(ctx, cfg, "postgres")
		if err != nil {
			return err
		}
		defer sysdb.Close()

		appUser := cfg.Postgres.App.User
		appPass := flagScaffoldAppPassword
		if appPass == "" {
			appPass = cfg.Postgres.App.Password
		}
		fmt.Fprintf(os.Stderr, "db:scaffold - ensuring role %q...\n", appUser)
		if err := pgdao.EnsureRole(ctx, sysdb, appUser, appPass); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "db:scaffold - ensuring database %q...\n", cfg.Postgres.DBName)
		if err := pgdao.EnsureDatabase(ctx, sysdb, cfg.Postgres.DBName, appUser); err != nil {
			return err
		}
		if err := pgdao.GrantConnect(ctx, sysdb, cfg.Postgres.DBName, appUser); err != nil {
			return err
		}

		fmt.Fprintln(os.Stderr, "db:scaffold - granting runtime privileges...")
		appdb, err := pgdao.OpenAdminWithDB(ctx, cfg, cfg.Postgres.DBName)
		if err != nil {
			return err
		}
		defer appdb.Close()
		if err := pgdao.GrantRuntimePrivileges(ctx, appdb, appUser); err != nil {
			return err
		}

		fmt.Fprintln(os.Stderr, "db:scaffold - done")
		return nil
	},
}

func init() {
	scaffoldCmd.Flags().StringVar(&flagScaffoldAppPassword, "app-password", "", "Password to set on the app role (defaults to configured password)")
}
