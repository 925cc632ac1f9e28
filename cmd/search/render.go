package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"product-search-api/internal/browse"
	"product-search-api/internal/models"
	"product-search-api/internal/shaping"
)

const (
	maxTitleWidth = 60
	topAspects    = 6
)

func newTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	return t
}

func renderSearchView(w io.Writer, view browse.View) {
	if view.Total == 0 {
		fmt.Fprintf(w, "No products found for %q\n", view.Query)
		return
	}

	if view.Filtered {
		fmt.Fprintf(w, "Showing %d of %d products for %q\n", len(view.Products), view.Total, view.Query)
	} else {
		fmt.Fprintf(w, "%d products for %q\n", view.Total, view.Query)
	}

	if len(view.Products) == 0 {
		fmt.Fprintln(w, "No products match the current filters")
	} else {
		t := newTable(w)
		t.AppendHeader(table.Row{"#", "Title", "Source", "Price", "Rating", "Product ID"})
		t.SetColumnConfigs([]table.ColumnConfig{
			{Number: 2, WidthMax: maxTitleWidth},
			{Number: 4, Align: text.AlignRight},
		})
		for _, p := range view.Products {
			t.AppendRow(table.Row{p.Position, p.Title, p.Source, p.Price, formatRating(p), p.ProductID})
		}
		t.Render()
	}

	renderStats(w, view.Stats, view.AvailableSources)
}

func renderStats(w io.Writer, stats *models.Stats, sources []string) {
	if stats == nil {
		return
	}
	t := newTable(w)
	t.SetTitle("Summary")
	t.AppendRows([]table.Row{
		{"Products", stats.TotalProducts},
		{"Sources", stats.UniqueSources},
		{"Average price", withDollar(stats.AvgPrice)},
		{"Price range", orDash(stats.PriceRange)},
		{"Average rating", orDash(stats.AvgRating)},
	})
	if len(sources) > 0 {
		t.AppendRow(table.Row{"Vendors", strings.Join(sources, ", ")})
	}
	t.Render()
}

func renderProduct(w io.Writer, d *models.ProductDetails) {
	fmt.Fprintln(w, d.Title)
	if d.Reviews.OverallRating > 0 {
		fmt.Fprintf(w, "Rating: %.1f (%s reviews)\n", d.Reviews.OverallRating, orDash(d.Reviews.TotalReviews))
	}

	stars := newTable(w)
	stars.SetTitle("Ratings")
	stars.AppendHeader(table.Row{"Stars", "Reviews", "Share"})
	for _, s := range shaping.StarBreakdown(d.Reviews) {
		stars.AppendRow(table.Row{strconv.Itoa(s.Stars) + "★", s.Count, fmt.Sprintf("%.0f%%", s.Percent)})
	}
	stars.Render()

	if aspects := shaping.TopAspects(d.Reviews.Aspects, topAspects); len(aspects) > 0 {
		t := newTable(w)
		t.SetTitle("What people mention")
		t.AppendHeader(table.Row{"Aspect", "Mentions", "Sentiment"})
		for _, a := range aspects {
			t.AppendRow(table.Row{a.Aspect, a.MentionCount, fmt.Sprintf("%.0f%% %s", a.SentimentPercentage, a.Sentiment)})
		}
		t.Render()
	}

	if len(d.BuyingOptions.Sellers) == 0 {
		fmt.Fprintln(w, "No sellers listed")
		return
	}
	sellers := newTable(w)
	sellers.SetTitle("Sellers")
	sellers.AppendHeader(table.Row{"Seller", "Item price", "Total", "Condition", "Shipping"})
	for _, s := range d.BuyingOptions.Sellers {
		sellers.AppendRow(table.Row{s.SellerName, orDash(s.ItemPrice), orDash(s.TotalPrice), derefOrDash(s.Condition), derefOrDash(s.Shipping)})
	}
	sellers.Render()
}

func formatRating(p models.Product) string {
	if p.Rating == nil {
		return "-"
	}
	if p.RatingCount == nil {
		return fmt.Sprintf("%.1f", *p.Rating)
	}
	return fmt.Sprintf("%.1f (%d)", *p.Rating, *p.RatingCount)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func withDollar(amount string) string {
	if amount == "" {
		return "-"
	}
	return "$" + amount
}

func derefOrDash(s *string) string {
	if s == nil {
		return "-"
	}
	return orDash(*s)
}
