package shaping

import (
	"product-search-api/internal/models"
	"product-search-api/pkg/utils"
)

// StarShare is one row of a review star histogram.
type StarShare struct {
	Stars   int
	Count   int
	Percent float64
}

// StarBreakdown converts the provider's 5-to-1 star count strings into counts and
// percentages of the total review count. An unusable total yields 0% everywhere.
func StarBreakdown(reviews models.Reviews) []StarShare {
	dist := reviews.StarDistribution
	raw := []string{dist.FiveStar, dist.FourStar, dist.ThreeStar, dist.TwoStar, dist.OneStar}
	total, ok := utils.ParseCount(reviews.TotalReviews)
	if !ok {
		total = 0
	}

	shares := make([]StarShare, 0, len(raw))
	for i, s := range raw {
		count, _ := utils.ParseCount(s)
		share := StarShare{Stars: 5 - i, Count: count}
		if total > 0 {
			share.Percent = float64(count) / float64(total) * 100
		}
		shares = append(shares, share)
	}
	return shares
}

// TopAspects returns at most n review aspects in provider order.
func TopAspects(aspects []models.ReviewAspect, n int) []models.ReviewAspect {
	if n < 0 {
		n = 0
	}
	if len(aspects) > n {
		return aspects[:n:n]
	}
	return aspects
}
