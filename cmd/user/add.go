package user

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
	flagUsername string
	flagEmail    string
	flagPassword string
	flagMobile   string
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Create a user",
	RunE: func(cmd *cobra.Command, args []string) error {
		if flagUsername == "" || flagEmail == "" || flagPassword == "" {
			return errors.New("--username, --email and --password are required")
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
		id, err := pgdao.CreateUser(ctx, pool, flagUsername, flagEmail, flagPassword, flagMobile)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "%d\n", id)
		return nil
	},
}

func init() {
	addCmd.Flags().StringVar(&flagUsername, "username", "", "Unique username")
	addCmd.Flags().StringVar(&flagEmail, "email", "", "Unique email")
	addCmd.Flags().StringVar(&flagPassword, "password", "", "Password (stored as given)")
	addCmd.Flags().StringVar(&flagMobile, "mobile", "", "Optional mobile number")
}
