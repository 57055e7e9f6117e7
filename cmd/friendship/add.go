package friendship

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
	flagFrom int
	flagTo   int
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Create a pending friendship request",
	RunE: func(cmd *cobra.Command, args []string) error {
		if flagFrom == 0 || flagTo == 0 {
			return errors.New("--from and --to user ids are required")
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
		f, err := pgdao.CreateFriendship(ctx, pool, flagFrom, flagTo)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "%d\n", f.ID)
		fmt.Fprintf(os.Stderr, "friendship %d: %d -> %d (%s)\n", f.ID, f.User1ID, f.User2ID, f.Status)
		return nil
	},
}

func init() {
	addCmd.Flags().IntVar(&flagFrom, "from", 0, "Requesting user id")
	addCmd.Flags().IntVar(&flagTo, "to", 0, "Requested user id")
}
