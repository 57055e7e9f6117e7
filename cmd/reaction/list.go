package reaction

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
	Use:   "list <message-id>",
	Short: "List reactions on a message",
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) != 1 {
			return errors.New("expected exactly one message id")
		}
		messageID, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid message id %q", args[0])
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
		reactions, err := pgdao.ListReactions(ctx, pool, messageID)
		if err != nil {
			return err
		}
		table := tablewriter.NewWriter(os.Stdout)
		table.SetHeader([]string{"ID", "USER", "EMOJI", "NAME"})
		for _, r := range reactions {
			name := ""
			if r.EmojiName.Valid {
				name = r.EmojiName.String
			}
			table.Append([]string{
				fmt.Sprintf("%d", r.ID),
				fmt.Sprintf("%d", r.UserID),
				r.Emoji,
				name,
			})
		}
		table.Render()
		return nil
	},
}
