package models

// Product is one entry of the upstream shopping search result.
type Product struct {
	Title       string   `json:"title"`
	Source      string   `json:"source"`
	Link        string   `json:"link"`
	Price       string   `json:"price"`
	ImageURL    string   `json:"imageUrl"`
	Rating      *float64 `json:"rating,omitempty"`
	RatingCount *int     `json:"ratingCount,omitempty"`
	ProductID   string   `json:"productId"`
	Position    int      `json:"position"` // 1-based relevance rank
}

type SearchResponse struct {
	Products []Product `json:"products"`
}

type SortBy string

const (
	SortPriceLow  SortBy = "price-low"
	SortPriceHigh SortBy = "price-high"
	SortRating    SortBy = "rating"
	SortPosition  SortBy = "position"
)

const DefaultCountry = "us"

// SearchFilters configures the result-shaping pipeline. Zero values mean "not set".
type SearchFilters struct {
	MinPrice  *float64 `json:"minPrice,omitempty"`
	MaxPrice  *float64 `json:"maxPrice,omitempty"`
	MinRating *int     `json:"minRating,omitempty"`
	Sources   []string `json:"sources,omitempty"`
	SortBy    SortBy   `json:"sortBy,omitempty"`
	Country   string   `json:"country,omitempty"`
}

// Stats summarizes a full, unfiltered result set.
type Stats struct {
	TotalProducts int    `json:"totalProducts"`
	UniqueSources int    `json:"uniqueSources"`
	AvgPrice      string `json:"avgPrice"`
	PriceRange    string `json:"priceRange"`
	AvgRating     string `json:"avgRating"`
}

// ShapedSearchResponse is a search result after filtering and sorting on the server.
type ShapedSearchResponse struct {
	Query            string    `json:"query"`
	Country          string    `json:"country"`
	Products         []Product `json:"products"`
	Total            int       `json:"total"`
	Filtered         bool      `json:"filtered"`
	AvailableSources []string  `json:"availableSources"`
	Stats            *Stats    `json:"stats,omitempty"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
