package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"product-search-api/internal/browse"
	"product-search-api/internal/models"
)

type searchOptions struct {
	country   string
	minPrice  float64
	maxPrice  float64
	minRating int
	sources   []string
	sortBy    string
}

func newSearchCmd(root *rootOptions) *cobra.Command {
	opts := &searchOptions{}

	cmd := &cobra.Command{
		Use:   "search <query...>",
		Short: "Search products and show a filtered, sorted comparison",
		Long: `Search products and show a filtered, sorted comparison.

Examples:
  # Cheapest first
  search search iPhone 15 --sort price-low

  # Only well rated offers from two vendors between $500 and $800
  search search iPhone 15 --min-rating 4 --sources Amazon,Walmart --min-price 500 --max-price 800
`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filters, err := opts.filters()
			if err != nil {
				return err
			}

			ctrl := browse.NewController(root.client())
			ctrl.SetFilters(filters)

			view, err := ctrl.Search(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				if errors.Is(err, browse.ErrEmptyQuery) {
					return err
				}
				return fmt.Errorf("search failed: %w", err)
			}

			renderSearchView(cmd.OutOrStdout(), view)
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.country, "country", "c", models.DefaultCountry, "two-letter market code")
	cmd.Flags().Float64Var(&opts.minPrice, "min-price", 0, "minimum price (0 means no minimum)")
	cmd.Flags().Float64Var(&opts.maxPrice, "max-price", 0, "maximum price (0 means no maximum)")
	cmd.Flags().IntVar(&opts.minRating, "min-rating", 0, "minimum star rating, 1-5")
	cmd.Flags().StringSliceVar(&opts.sources, "sources", nil, "only show these vendors")
	cmd.Flags().StringVarP(&opts.sortBy, "sort", "s", string(models.SortPosition), "price-low, price-high, rating or position")

	return cmd
}

func (o *searchOptions) filters() (models.SearchFilters, error) {
	filters := models.SearchFilters{
		Country: strings.ToLower(strings.TrimSpace(o.country)),
		Sources: o.sources,
		SortBy:  models.SortBy(o.sortBy),
	}

	switch filters.SortBy {
	case models.SortPriceLow, models.SortPriceHigh, models.SortRating, models.SortPosition:
	default:
		return filters, fmt.Errorf("invalid --sort %q", o.sortBy)
	}

	if o.minPrice < 0 || o.maxPrice < 0 {
		return filters, errors.New("price bounds must not be negative")
	}
	if o.minPrice > 0 && o.maxPrice > 0 && o.maxPrice < o.minPrice {
		return filters, errors.New("--max-price cannot be less than --min-price")
	}
	if o.minPrice > 0 {
		filters.MinPrice = &o.minPrice
	}
	if o.maxPrice > 0 {
		filters.MaxPrice = &o.maxPrice
	}

	if o.minRating != 0 {
		if o.minRating < 1 || o.minRating > 5 {
			return filters, fmt.Errorf("invalid --min-rating %d: must be between 1 and 5", o.minRating)
		}
		filters.MinRating = &o.minRating
	}

	return filters, nil
}
