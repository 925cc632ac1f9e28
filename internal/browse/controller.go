// Package browse holds the state of one search session: query, filters, the last
// result set and the selected product. Views are derived from that state on demand.
package browse

import (
	"context"
	"errors"
	"strings"
	"sync"

	"product-search-api/internal/models"
	"product-search-api/internal/shaping"
)

var (
	ErrEmptyQuery     = errors.New("please enter a search term")
	ErrStaleResponse  = errors.New("search superseded by a newer search")
	ErrUnknownProduct = errors.New("product not in current results")
)

type Searcher interface {
	Search(ctx context.Context, query, country string) (*models.SearchResponse, error)
}

// View is what a front end renders for the current state.
type View struct {
	Query            string
	HasSearched      bool
	Products         []models.Product
	Total            int
	Filtered         bool
	AvailableSources []string
	Stats            *models.Stats
	Selected         *models.Product
}

type Controller struct {
	searcher Searcher

	mu          sync.Mutex
	seq         uint64
	query       string
	filters     models.SearchFilters
	products    []models.Product
	selected    *models.Product
	hasSearched bool
}

func NewController(searcher Searcher) *Controller {
	return &Controller{
		searcher: searcher,
		filters:  defaultFilters(),
	}
}

func defaultFilters() models.SearchFilters {
	return models.SearchFilters{Country: models.DefaultCountry}
}

// Search runs a new search with the current country filter. Each call takes the next
// sequence number; a response that arrives after a newer search started is dropped
// and ErrStaleResponse is returned.
func (c *Controller) Search(ctx context.Context, query string) (View, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return c.View(), ErrEmptyQuery
	}

	c.mu.Lock()
	c.seq++
	seq := c.seq
	c.query = query
	c.hasSearched = true
	c.selected = nil
	country := c.filters.Country
	c.mu.Unlock()

	resp, err := c.searcher.Search(ctx, query, country)

	c.mu.Lock()
	if seq != c.seq {
		c.mu.Unlock()
		return c.View(), ErrStaleResponse
	}
	if err != nil {
		c.products = nil
	} else {
		c.products = resp.Products
	}
	c.mu.Unlock()

	return c.View(), err
}

// SetFilters replaces the filter configuration. An empty country means the default.
func (c *Controller) SetFilters(filters models.SearchFilters) {
	if filters.Country == "" {
		filters.Country = models.DefaultCountry
	}
	c.mu.Lock()
	c.filters = filters
	c.mu.Unlock()
}

func (c *Controller) ClearFilters() {
	c.SetFilters(defaultFilters())
}

func (c *Controller) Filters() models.SearchFilters {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.filters
}

// Select marks a product of the current result set as selected.
func (c *Controller) Select(productID string) (models.Product, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.products {
		if c.products[i].ProductID == productID {
			p := c.products[i]
			c.selected = &p
			return p, nil
		}
	}
	return models.Product{}, ErrUnknownProduct
}

func (c *Controller) ClearSelection() {
	c.mu.Lock()
	c.selected = nil
	c.mu.Unlock()
}

// View derives the rendered state. Stats and sources always describe the full result set.
func (c *Controller) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()

	shaped := shaping.Apply(c.products, c.filters)
	return View{
		Query:            c.query,
		HasSearched:      c.hasSearched,
		Products:         shaped,
		Total:            len(c.products),
		Filtered:         len(shaped) != len(c.products),
		AvailableSources: shaping.AvailableSources(c.products),
		Stats:            shaping.Summarize(c.products),
		Selected:         c.selected,
	}
}
