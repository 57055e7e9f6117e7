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

var (
	flagMessage   int
	flagUser      int
	flagEmoji     string
	flagEmojiName string
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "React to a message with an emoji",
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
		id, err := pgdao.AddReaction(ctx, pool, flagMessage, flagUser, flagEmoji, flagEmojiName)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "%d\n", id)
		return nil
	},
}

func init() {
	addCmd.Flags().IntVar(&flagMessage, "message", 0, "Message id")
	addCmd.Flags().IntVar(&flagUser, "user", 0, "Reacting user id")
	addCmd.Flags().StringVar(&flagEmoji, "emoji", "", "Emoji token")
	addCmd.Flags().StringVar(&flagEmojiName, "emoji-name", "", "Optional display name")
}
