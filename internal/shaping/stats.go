package shaping

import (
	"math"
	"strconv"

	"product-search-api/internal/models"
	"product-search-api/pkg/utils"
)

// Summarize computes the result summary over the full, unfiltered result set.
// It returns nil for an empty set.
func Summarize(products []models.Product) *models.Stats {
	if len(products) == 0 {
		return nil
	}

	stats := &models.Stats{
		TotalProducts: len(products),
		UniqueSources: len(AvailableSources(products)),
	}

	var priceSum float64
	var priced int
	minPrice, maxPrice := math.Inf(1), math.Inf(-1)
	var ratingSum float64
	var rated int

	for _, p := range products {
		if price, ok := utils.ParsePrice(p.Price); ok {
			priceSum += price
			priced++
			minPrice = math.Min(minPrice, price)
			maxPrice = math.Max(maxPrice, price)
		}
		if p.Rating != nil && *p.Rating != 0 {
			ratingSum += *p.Rating
			rated++
		}
	}

	if priced > 0 {
		stats.AvgPrice = strconv.FormatFloat(priceSum/float64(priced), 'f', 2, 64)
		stats.PriceRange = utils.FormatPrice(minPrice) + " - " + utils.FormatPrice(maxPrice)
	}
	if rated > 0 {
		stats.AvgRating = strconv.FormatFloat(ratingSum/float64(rated), 'f', 1, 64)
	}

	return stats
}
