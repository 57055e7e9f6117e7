package configcmd

import (
	"fmt"
	"os"

	cfgpkg "github.com/flarebyte/chatterbox/internal/config"
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate the merged configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := cfgpkg.Load()
		if err != nil {
			return err
		}
		problems := []string{}
		if cfg.Postgres.Host == "" {
			problems = append(problems, "postgres.host is empty")
		}
		if cfg.Postgres.Port <= 0 || cfg.Postgres.Port > 65535 {
			problems = append(problems, fmt.Sprintf("postgres.port %d out of range", cfg.Postgres.Port))
		}
		if cfg.Postgres.DBName == "" {
			problems = append(problems, "postgres.dbname is empty")
		}
		switch cfg.Postgres.SSLMode {
		case "disable", "allow", "prefer", "require", "verify-ca", "verify-full":
		default:
			problems = append(problems, fmt.Sprintf("postgres.sslmode %q not recognised", cfg.Postgres.SSLMode))
		}
		if cfg.Postgres.App.User == "" && cfg.Postgres.Admin.User == "" {
			problems = append(problems, "no app or admin role configured")
		}
		if len(problems) > 0 {
			for _, p := range problems {
				fmt.Fprintf(os.Stderr, "config: %s\n", p)
			}
			return fmt.Errorf("%d problem(s) found", len(problems))
		}
		fmt.Fprintln(os.Stderr, "config: ok")
		return nil
	},
}
