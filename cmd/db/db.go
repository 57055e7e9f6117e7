package db

import (
	"github.com/spf13/cobra"
)

var DBCmd = &cobra.Command{
	Use:   "db",
	Short: "Initialize, migrate and inspect the Postgres schema",
}

func init() {
	DBCmd.AddCommand(initCmd)
	DBCmd.AddCommand(migrateCmd)
	DBCmd.AddCommand(showCmd)
	DBCmd.AddCommand(statusCmd)
	DBCmd.AddCommand(scaffoldCmd)
}
