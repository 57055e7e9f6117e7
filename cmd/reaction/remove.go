package reaction

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	cfgpkg "github.com/flarebyte/chatterbox/internal/config"
	pgdao "github.com/flarebyte/chatterbox/internal/dao/postgres"
	"github.com/spf13/cobra"
)

var removeCmd = &cobra.Command{
	Use:   "remove",
	Short: "Remove a user's emoji reaction from a message",
	RunE: func(cmd *cobra.Command, args []string) error {
		if flagMessage == 0 || flagUser == 0 || flagEmoji == "" {
			return errors.New("--message, --user and --emoji are required")
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
		n, err := pgdao.RemoveReaction(ctx, pool, flagMessage, flagUser, flagEmoji)
		if err != nil {
			return err
		}
		if n == 0 {
			return errors.New("reaction not found")
		}
		fmt.Fprintf(os.Stderr, "removed %s from message %d\n", flagEmoji, flagMessage)
		return nil
	},
}

func init() {
	removeCmd.Flags().IntVar(&flagMessage, "message", 0, "Message id")
	removeCmd.Flags().IntVar(&flagUser, "user", 0, "Reacting user id")
	removeCmd.Flags().StringVar(&flagEmoji, "emoji", "", "Emoji token")
}
