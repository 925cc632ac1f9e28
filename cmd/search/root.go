package main

import (
	"os"

	"github.com/spf13/cobra"

	"product-search-api/internal/apiclient"
)

const defaultAPIURL = "http://localhost:8085"

type rootOptions struct {
	apiURL string
}

func (o *rootOptions) client() *apiclient.Client {
	return apiclient.New(o.apiURL)
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "search",
		Short:         "Search products across vendors",
		Long:          `Search products across vendors through the product search proxy and compare prices, ratings and sellers.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	apiURL := os.Getenv("PROXY_URL")
	if apiURL == "" {
		apiURL = defaultAPIURL
	}
	cmd.PersistentFlags().StringVar(&opts.apiURL, "api", apiURL, "base URL of the product search proxy")

	cmd.AddCommand(newSearchCmd(opts))
	cmd.AddCommand(newProductCmd(opts))
	return cmd
}
