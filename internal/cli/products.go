package cli

import (
	"github.com/spf13/cobra"
)

var productsQuery string

var productsCmd = &cobra.Command{
	Use:   "products",
	Short: "List tracked products",
	RunE: func(cmd *cobra.Command, args []string) error {
		return getApp().Products(cmd.Context(), productsQuery)
	},
}

func init() {
	productsCmd.Flags().StringVarP(&productsQuery, "query", "q", "", "Filter products by name")
}
