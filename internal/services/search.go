package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"

	"product-search-api/internal/models"
	"product-search-api/internal/shaping"
	"product-search-api/internal/upstream"
)

// ErrInvalidParams is returned for filter combinations that can never match.
var ErrInvalidParams = errors.New("invalid search parameters")

// Upstream is the provider client the service delegates to.
type Upstream interface {
	Search(ctx context.Context, query, country string) (json.RawMessage, error)
	Product(ctx context.Context, productID, country string) (json.RawMessage, error)
}

type SearchService struct {
	upstream Upstream
	log      logrus.FieldLogger
}

func NewSearchService(up Upstream, log logrus.FieldLogger) *SearchService {
	return &SearchService{upstream: up, log: log}
}

// SearchProducts forwards a search and returns the provider payload untouched.
func (s *SearchService) SearchProducts(ctx context.Context, query, country string) (json.RawMessage, error) {
	startTime := time.Now()

	body, err := s.upstream.Search(ctx, query, country)
	if err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"query":    query,
		"country":  country,
		"products": gjson.GetBytes(body, "products.#").Int(),
		"duration": time.Since(startTime).String(),
	}).Info("Search completed")

	return body, nil
}

// ProductDetails forwards a detail lookup and returns the provider payload untouched.
func (s *SearchService) ProductDetails(ctx context.Context, productID, country string) (json.RawMessage, error) {
	startTime := time.Now()

	body, err := s.upstream.Product(ctx, productID, country)
	if err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"product_id": productID,
		"duration":   time.Since(startTime).String(),
	}).Info("Product details fetched")

	return body, nil
}

// ShapedSearch runs a search and applies the filter/sort pipeline server-side.
// Stats and available sources always describe the unfiltered result set.
func (s *SearchService) ShapedSearch(ctx context.Context, query string, filters models.SearchFilters) (*models.ShapedSearchResponse, error) {
	if err := validateFilters(filters); err != nil {
		return nil, err
	}

	country := upstream.NormalizeCountry(filters.Country)

	body, err := s.SearchProducts(ctx, query, country)
	if err != nil {
		return nil, err
	}

	var raw models.SearchResponse
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("%w: decode products: %v", upstream.ErrUpstream, err)
	}

	products := shaping.Apply(raw.Products, filters)

	return &models.ShapedSearchResponse{
		Query:            strings.TrimSpace(query),
		Country:          country,
		Products:         products,
		Total:            len(raw.Products),
		Filtered:         len(products) != len(raw.Products),
		AvailableSources: shaping.AvailableSources(raw.Products),
		Stats:            shaping.Summarize(raw.Products),
	}, nil
}

func validateFilters(filters models.SearchFilters) error {
	if filters.MinPrice != nil && *filters.MinPrice < 0 {
		return fmt.Errorf("%w: minimum price cannot be negative", ErrInvalidParams)
	}
	if filters.MaxPrice != nil && *filters.MaxPrice < 0 {
		return fmt.Errorf("%w: maximum price cannot be negative", ErrInvalidParams)
	}
	if filters.MinPrice != nil && filters.MaxPrice != nil && *filters.MaxPrice < *filters.MinPrice {
		return fmt.Errorf("%w: maximum price cannot be less than minimum price", ErrInvalidParams)
	}
	if filters.MinRating != nil && (*filters.MinRating < 1 || *filters.MinRating > 5) {
		return fmt.Errorf("%w: minimum rating must be between 1 and 5", ErrInvalidParams)
	}
	switch filters.SortBy {
	case "", models.SortPosition, models.SortPriceLow, models.SortPriceHigh, models.SortRating:
	default:
		return fmt.Errorf("%w: invalid sort: %s", ErrInvalidParams, filters.SortBy)
	}
	return nil
}
