package friendship

import (
	"github.com/spf13/cobra"
)

var FriendshipCmd = &cobra.Command{
	Use:   "friendship",
	Short: "Manage friendship records",
}

func init() {
	FriendshipCmd.AddCommand(addCmd)
	FriendshipCmd.AddCommand(statusCmd)
	FriendshipCmd.AddCommand(listCmd)
}
