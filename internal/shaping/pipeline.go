// Package shaping turns a raw search result set into the filtered, sorted and
// summarized view shown to the user. Everything here is a pure function of its input.
package shaping

import (
	"math"
	"sort"

	"product-search-api/internal/models"
	"product-search-api/pkg/utils"
)

type ranked struct {
	product models.Product
	price   float64
	priced  bool
}

// Apply filters and sorts products according to filters. The input slice is not modified.
func Apply(products []models.Product, filters models.SearchFilters) []models.Product {
	sources := make(map[string]struct{}, len(filters.Sources))
	for _, s := range filters.Sources {
		sources[s] = struct{}{}
	}
	minPrice, maxPrice, priceFilter := priceBounds(filters)

	kept := make([]ranked, 0, len(products))
	for _, product := range products {
		// Rating filter
		if minRating := filters.MinRating; minRating != nil && *minRating > 0 {
			if product.Rating == nil || *product.Rating < float64(*minRating) {
				continue
			}
		}

		// Source filter
		if len(sources) > 0 {
			if _, ok := sources[product.Source]; !ok {
				continue
			}
		}

		price, priced := utils.ParsePrice(product.Price)

		// Price filter
		if priceFilter {
			if !priced || price < minPrice || price > maxPrice {
				continue
			}
		}

		kept = append(kept, ranked{product: product, price: price, priced: priced})
	}

	applySorting(kept, filters.SortBy)

	result := make([]models.Product, len(kept))
	for i, r := range kept {
		result[i] = r.product
	}
	return result
}

// priceBounds mirrors the UI semantics: a zero bound is the same as no bound.
func priceBounds(filters models.SearchFilters) (float64, float64, bool) {
	minPrice, maxPrice := 0.0, math.Inf(1)
	active := false
	if filters.MinPrice != nil && *filters.MinPrice > 0 {
		minPrice = *filters.MinPrice
		active = true
	}
	if filters.MaxPrice != nil && *filters.MaxPrice > 0 {
		maxPrice = *filters.MaxPrice
		active = true
	}
	return minPrice, maxPrice, active
}

func applySorting(products []ranked, sortBy models.SortBy) {
	sort.SliceStable(products, func(i, j int) bool {
		a, b := products[i], products[j]
		switch sortBy {
		case models.SortPriceLow:
			return lessPrice(a, b, false)
		case models.SortPriceHigh:
			return lessPrice(a, b, true)
		case models.SortRating:
			return ratingOrZero(a.product) > ratingOrZero(b.product)
		default:
			return a.product.Position < b.product.Position
		}
	})
}

// lessPrice orders by parsed price; products without a parseable price always go last.
func lessPrice(a, b ranked, descending bool) bool {
	if a.priced != b.priced {
		return a.priced
	}
	if !a.priced {
		return false
	}
	if descending {
		return a.price > b.price
	}
	return a.price < b.price
}

func ratingOrZero(p models.Product) float64 {
	if p.Rating == nil {
		return 0
	}
	return *p.Rating
}

// AvailableSources lists the distinct vendor names in first-seen order.
func AvailableSources(products []models.Product) []string {
	seen := make(map[string]struct{}, len(products))
	sources := make([]string, 0)
	for _, p := range products {
		if _, ok := seen[p.Source]; ok {
			continue
		}
		seen[p.Source] = struct{}{}
		sources = append(sources, p.Source)
	}
	return sources
}
