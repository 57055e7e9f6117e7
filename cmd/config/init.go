package configcmd

import (
	"fmt"
	"os"

	cfgpkg "github.com/flarebyte/chatterbox/internal/config"
	"github.com/flarebyte/chatterbox/internal/paths"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	flagOverwrite bool
	flagDryRun    bool
	// Postgres base
	flagPGHost    string
	flagPGPort    int
	flagPGDBName  string
	flagPGSSLMode string
	// Postgres app creds
	flagPGAppUser     string
	flagPGAppPassword string
	// Postgres admin creds
	flagPGAdminUser     string
	flagPGAdminPassword string
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create or update the global config.yaml",
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := paths.EnsureHome(); err != nil {
			return err
		}
		path := cfgpkg.Path()
		if !flagOverwrite && !flagDryRun {
			if _, err := os.Stat(path); err == nil {
				return fmt.Errorf("config already exists at %s (use --overwrite to replace)", path)
			}
		}

		// Start from existing config (or defaults if missing) to preserve secrets
		cfg, _ := cfgpkg.Load()

		if cmd.Flags().Changed("pg-host") {
			cfg.Postgres.Host = flagPGHost
		}
		if cmd.Flags().Changed("pg-port") {
			cfg.Postgres.Port = flagPGPort
		}
		if cmd.Flags().Changed("pg-dbname") {
			cfg.Postgres.DBName = flagPGDBName
		}
		if cmd.Flags().Changed("pg-sslmode") {
			cfg.Postgres.SSLMode = flagPGSSLMode
		}
		if cmd.Flags().Changed("pg-app-user") {
			cfg.Postgres.App.User = flagPGAppUser
		}
		if cmd.Flags().Changed("pg-app-password") {
			cfg.Postgres.App.Password = flagPGAppPassword
		}
		if cmd.Flags().Changed("pg-admin-user") {
			cfg.Postgres.Admin.User = flagPGAdminUser
		}
		if cmd.Flags().Changed("pg-admin-password") {
			cfg.Postgres.Admin.Password = flagPGAdminPassword
		}

		b, err := yaml.Marshal(cfg)
		if err != nil {
			return err
		}
		if flagDryRun {
			os.Stdout.Write(b)
			return nil
		}
		if err := os.WriteFile(path, b, 0o600); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "config written to %s\n", path)
		return nil
	},
}

func init() {
	initCmd.Flags().BoolVar(&flagOverwrite, "overwrite", false, "Replace an existing config.yaml")
	initCmd.Flags().BoolVar(&flagDryRun, "dry-run", false, "Print the resulting config instead of writing it")
	initCmd.Flags().StringVar(&flagPGHost, "pg-host", "", "Postgres host")
	initCmd.Flags().IntVar(&flagPGPort, "pg-port", 0, "Postgres port")
	initCmd.Flags().StringVar(&flagPGDBName, "pg-dbname", "", "Postgres database name")
	initCmd.Flags().StringVar(&flagPGSSLMode, "pg-sslmode", "", "Postgres sslmode")
	initCmd.Flags().StringVar(&flagPGAppUser, "pg-app-user", "", "App role user")
	initCmd.Flags().StringVar(&flagPGAppPassword, "pg-app-password", "", "App role password")
	initCmd.Flags().StringVar(&flagPGAdminUser, "pg-admin-user", "", "Admin role user")
	initCmd.Flags().StringVar(&flagPGAdminPassword, "pg-admin-password", "", "Admin role password")
}
