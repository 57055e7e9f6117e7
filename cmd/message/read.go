package message

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

var readCmd = &cobra.Command{
	Use:   "read <id>",
	Short: "Mark a message as read",
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) != 1 {
			return errors.New("expected exactly one message id")
		}
		id, err := strconv.Atoi(args[0])
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
		n, err := pgdao.MarkMessageRead(ctx, pool, id)
		if err != nil {
			return err
		}
		if n == 0 {
			return fmt.Errorf("message %d not found", id)
		}
		fmt.Fprintf(os.Stderr, "message %d marked read\n", id)
		return nil
	},
}
