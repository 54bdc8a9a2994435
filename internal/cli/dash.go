package cli

import (
	"github.com/spf13/cobra"
)

var dashCmd = &cobra.Command{
	Use:   "dash",
	Short: "Run the interactive dashboard",
	RunE: func(cmd *cobra.Command, args []string) error {
		return getApp().Dash()
	},
}
