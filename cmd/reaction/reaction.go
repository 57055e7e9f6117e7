package reaction

import (
	"github.com/spf13/cobra"
)

var ReactionCmd = &cobra.Command{
	Use:   "reaction",
	Short: "Manage message reactions",
}

func init() {
	ReactionCmd.AddCommand(addCmd)
	ReactionCmd.AddCommand(removeCmd)
	ReactionCmd.AddCommand(listCmd)
}
