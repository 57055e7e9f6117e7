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
	"github.com/spf13/cobra"
)

var flagStatus string

var statusCmd = &cobra.Command{
	Use:   "status <id>",
	Short: "Set the status of a friendship (pending, accepted, rejected)",
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) != 1 {
			return errors.New("expected exactly one friendship id")
		}
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid friendship id %q", args[0])
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
		n, err := pgdao.SetFriendshipStatus(ctx, pool, id, flagStatus)
		if err != nil {
			return err
		}
		if n == 0 {
			return fmt.Errorf("friendship %d not found", id)
		}
		fmt.Fprintf(os.Stderr, "friendship %d set to %s\n", id, flagStatus)
		return nil
	},
}

func init() {
	statusCmd.Flags().StringVar(&flagStatus, "set", pgdao.FriendshipAccepted, "New status")
}
