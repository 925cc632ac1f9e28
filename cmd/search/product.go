package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newProductCmd(root *rootOptions) *cobra.Command {
	var country string

	cmd := &cobra.Command{
		Use:   "product <id>",
		Short: "Show reviews and sellers for one product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			details, err := root.client().Product(cmd.Context(), args[0], country)
			if err != nil {
				return fmt.Errorf("fetch product details: %w", err)
			}
			renderProduct(cmd.OutOrStdout(), details)
			return nil
		},
	}

	cmd.Flags().StringVarP(&country, "country", "c", "", "two-letter market code (proxy default when empty)")
	return cmd
}
