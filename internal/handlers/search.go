package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"product-search-api/internal/middleware"
	"product-search-api/internal/models"
	"product-search-api/internal/services"
	"product-search-api/internal/upstream"
)

const (
	msgQueryRequired     = "Query parameter is required"
	msgSearchFailed      = "Failed to search products"
	msgProductIDRequired = "Product ID is required"
	msgProductFailed     = "Failed to fetch product details"
	msgInvalidFilters    = "Invalid filter parameters"
)

type SearchHandler struct {
	searchService *services.SearchService
	log           logrus.FieldLogger
}

func NewSearchHandler(searchService *services.SearchService, log logrus.FieldLogger) *SearchHandler {
	return &SearchHandler{searchService: searchService, log: log}
}

// shapedSearchRequest binds the query string of GET /api/search/view.
type shapedSearchRequest struct {
	Query     string   `form:"query"`
	Country   string   `form:"country"`
	MinPrice  *float64 `form:"minPrice" binding:"omitempty,gte=0"`
	MaxPrice  *float64 `form:"maxPrice" binding:"omitempty,gte=0"`
	MinRating *int     `form:"minRating" binding:"omitempty,min=1,max=5"`
	SortBy    string   `form:"sortBy" binding:"omitempty,oneof=price-low price-high rating position"`
}

// Search proxies GET /api/search to the provider and returns its JSON unmodified.
func (h *SearchHandler) Search(c *gin.Context) {
	query := c.Query("query")
	if strings.TrimSpace(query) == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: msgQueryRequired})
		return
	}
	country := c.Query("country")

	body, err := h.searchService.SearchProducts(c.Request.Context(), query, country)
	if err != nil {
		h.fail(c, err, msgQueryRequired, msgSearchFailed, logrus.Fields{"query": query, "country": country})
		return
	}

	c.Data(http.StatusOK, gin.MIMEJSON+"; charset=utf-8", body)
}

// ShapedSearch runs a search and returns the filtered, sorted view with summary stats.
func (h *SearchHandler) ShapedSearch(c *gin.Context) {
	var req shapedSearchRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: bindingMessage(err)})
		return
	}
	if strings.TrimSpace(req.Query) == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: msgQueryRequired})
		return
	}

	filters := models.SearchFilters{
		MinPrice:  req.MinPrice,
		MaxPrice:  req.MaxPrice,
		MinRating: req.MinRating,
		Sources:   parseSources(c.QueryArray("sources")),
		SortBy:    models.SortBy(req.SortBy),
		Country:   req.Country,
	}

	resp, err := h.searchService.ShapedSearch(c.Request.Context(), req.Query, filters)
	if err != nil {
		if errors.Is(err, services.ErrInvalidParams) {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
			return
		}
		h.fail(c, err, msgQueryRequired, msgSearchFailed, logrus.Fields{"query": req.Query, "country": req.Country})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// fail maps service errors onto the public error contract. Upstream details stay in the log.
func (h *SearchHandler) fail(c *gin.Context, err error, inputMsg, upstreamMsg string, fields logrus.Fields) {
	if errors.Is(err, upstream.ErrInvalidInput) {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: inputMsg})
		return
	}

	h.log.WithFields(fields).
		WithField("request_id", middleware.GetRequestID(c)).
		WithError(err).
		Error(upstreamMsg)
	c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: upstreamMsg})
}

// parseSources accepts both repeated (?sources=a&sources=b) and comma-separated values.
func parseSources(values []string) []string {
	var sources []string
	for _, v := range values {
		for _, s := range strings.Split(v, ",") {
			if s = strings.TrimSpace(s); s != "" {
				sources = append(sources, s)
			}
		}
	}
	return sources
}

func bindingMessage(err error) string {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) || len(validationErrs) == 0 {
		return msgInvalidFilters
	}

	e := validationErrs[0]
	field := lowerFirst(e.Field())
	switch e.Tag() {
	case "gte":
		return field + " must be greater than or equal to " + e.Param()
	case "min":
		return field + " must be at least " + e.Param()
	case "max":
		return field + " must be at most " + e.Param()
	case "oneof":
		return field + " must be one of: " + e.Param()
	default:
		return field + " is invalid"
	}
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
