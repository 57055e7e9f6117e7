package user

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"time"

	cfgpkg "github.com/flarebyte/chatterbox/internal/config"
	pgdao "github.com/flarebyte/chatterbox/internal/dao/postgres"
	"github.com/spf13/cobra"
)

var getCmd = &cobra.Command{
	Use:   "get <username>",
	Short: "Get a user by username (JSON on stdout)",
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) != 1 {
			return errors.New("expected exactly one username")
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
		u, err := pgdao.GetUserByUsername(ctx, pool, args[0])
		if err != nil {
			return err
		}
		out := map[string]any{
			"id":       u.ID,
			"username": u.Username,
			"email":    u.Email,
		}
		if u.Mobile.Valid {
			out["mobile"] = u.Mobile.String
		}
		if u.Created.Valid {
			out["created_at"] = u.Created.Time
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	},
}
