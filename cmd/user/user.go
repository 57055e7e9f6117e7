package user

import (
	"github.com/spf13/cobra"
)

var UserCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage user records",
}

func init() {
	UserCmd.AddCommand(addCmd)
	UserCmd.AddCommand(getCmd)
	UserCmd.AddCommand(listCmd)
	UserCmd.AddCommand(deleteCmd)
}
