package user

import (
	"context"
	"fmt"
	"os"
	"time"

	cfgpkg "github.com/flarebyte/chatterbox/internal/config"
	pgdao "github.com/flarebyte/chatterbox/internal/dao/postgres"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

var flagListLimit int

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List users",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := cfgpkg.Load()
		if err != nil {
			return err
		}
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		pool, err := pgdao.OpenApp(ctx, cfg)
		if err != nil {
			return err
		}
		defer pool.Close()
		users, err := pgdao.ListUsers(ctx, pool, flagListLimit)
		if err != nil {
			return err
		}
		table := tablewriter.NewWriter(os.Stdout)
		table.SetHeader([]string{"ID", "USERNAME", "EMAIL", "MOBILE"})
		for _, u := range users {
			mobile := ""
			if u.Mobile.Valid {
				mobile = u.Mobile.String
			}
			table.Append([]string{fmt.Sprintf("%d", u.ID), u.Username, u.Email, mobile})
		}
		table.Render()
		return nil
	},
}

func init() {
	listCmd.Flags().IntVar(&flagListLimit, "limit", 100, "Maximum number of users to list")
}
