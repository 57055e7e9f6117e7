package message

import (
	"github.com/spf13/cobra"
)

var MessageCmd = &cobra.Command{
	Use:   "message",
	Short: "Manage message records",
}

func init() {
	MessageCmd.AddCommand(sendCmd)
	MessageCmd.AddCommand(listCmd)
	MessageCmd.AddCommand(readCmd)
}
