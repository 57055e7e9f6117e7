package message

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	cfgpkg "github.com/flarebyte/chatterbox/internal/config"
	pgdao "github.com/flarebyte/chatterbox/internal/dao/postgres"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

var (
	flagUserA     int
	flagUserB     int
	flagListLimit int
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the conversation between two users, oldest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		if flagUserA == 0 || flagUserB == 0 {
			return errors.New("--between and --and user ids are required")
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
		msgs, err := pgdao.ListMessagesBetween(ctx, pool, flagUserA, flagUserB, flagListLimit)
		if err != nil {
			return err
		}
		table := tablewriter.NewWriter(os.Stdout)
		table.SetHeader([]string{"ID", "FROM", "TO", "READ", "REPLY", "CONTENT"})
		for _, m := range msgs {
			read := ""
			if m.Read {
				read = "yes"
			}
			reply := ""
			if m.ReplyToID.Valid {
				reply = fmt.Sprintf("%d", m.ReplyToID.Int64)
			}
			table.Append([]string{
				fmt.Sprintf("%d", m.ID),
				fmt.Sprintf("%d", m.SenderID),
				fmt.Sprintf("%d", m.ReceiverID),
				read,
				reply,
				m.Content,
			})
		}
		table.Render()
		return nil
	},
}

func init() {
	listCmd.Flags().IntVar(&flagUserA, "between", 0, "First user id")
	listCmd.Flags().IntVar(&flagUserB, "and", 0, "Second user id")
	listCmd.Flags().IntVar(&flagListLimit, "limit", 100, "Maximum number of messages")
}
