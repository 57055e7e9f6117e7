package cmd

import (
	configcmd "github.com/flarebyte/chatterbox/cmd/config"
	dbcmd "github.com/flarebyte/chatterbox/cmd/db"
	friendcmd "github.com/flarebyte/chatterbox/cmd/friendship"
	"github.com/flarebyte/chatterbox/cmd/message"
	reactcmd "github.com/flarebyte/chatterbox/cmd/reaction"
	usercmd "github.com/flarebyte/chatterbox/cmd/user"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "cbx",
	Short: "Administer the chatterbox messaging database",
	Long:  "cbx manages the Postgres schema backing chatterbox (users, friendships, messages, reactions) and offers small record-level helpers for operators.",
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(configcmd.ConfigCmd)
	rootCmd.AddCommand(dbcmd.DBCmd)
	rootCmd.AddCommand(usercmd.UserCmd)
	rootCmd.AddCommand(friendcmd.FriendshipCmd)
	rootCmd.AddCommand(message.MessageCmd)
	rootCmd.AddCommand(reactcmd.ReactionCmd)
}
