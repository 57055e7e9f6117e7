package friendship

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	cfgpkg "github.com/flarebyte/chatterbox/internal/config"
	pgdao "github.com/flarebyte/chatterbox/internal/dao/postgres"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list <user-id>",
	Short: "List friendships involving a user",
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) != 1 {
			return errors.New("expected exactly one user id")
		}
		userID, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid user id %q", args[0])
		}
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
		friendships, err := pgdao.ListFriendshipsFor(ctx, pool, userID)
		if err != nil {
			return err
		}
		table := tablewriter.NewWriter(os.Stdout)
		table.SetHeader([]string{"ID", "FROM", "TO", "STATUS"})
		for _, f := range friendships {
			table.Append([]string{
				fmt.Sprintf("%d", f.ID),
				fmt.Sprintf("%d", f.User1ID),
				fmt.Sprintf("%d", f.User2ID),
				f.Status,
			})
		}
		table.Render()
		return nil
	},
}
