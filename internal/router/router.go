package router

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"product-search-api/internal/config"
	"product-search-api/internal/handlers"
	"product-search-api/internal/metrics"
	"product-search-api/internal/middleware"
	"product-search-api/internal/services"
)

const (
	serviceName = "product-search-api"
	version     = "1.0.0"
)

// Initialize wires middleware and routes onto a new gin engine.
func Initialize(cfg *config.Config, searchService *services.SearchService, m *metrics.Metrics, limiter *middleware.RateLimiter, log logrus.FieldLogger) *gin.Engine {
	if limiter == nil {
		limiter = middleware.NewRateLimiter(rate.Limit(cfg.RateLimit.RequestsPerSecond), cfg.RateLimit.Burst)
	}
	searchHandler := handlers.NewSearchHandler(searchService, log)

	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.Metrics(m))
	r.Use(cors.New(corsConfig(cfg.Server.AllowedOrigins)))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": serviceName,
			"version": version,
		})
	})
	r.GET("/metrics", gin.WrapH(m.Handler()))

	api := r.Group("/api")
	api.Use(limiter.Middleware())
	{
		api.GET("/info", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"name":        "Product Search API",
				"version":     version,
				"description": "Proxy for multi-vendor product search with filtering and sorting",
				"endpoints": map[string]string{
					"GET /api/search":      "Search products (provider JSON, unmodified)",
					"GET /api/search/view": "Search products with filtering, sorting and summary stats",
					"GET /api/product/:id": "Product details (provider JSON, unmodified)",
					"GET /health":          "Health check",
					"GET /metrics":         "Prometheus metrics",
				},
				"sort_options": []string{"position", "price-low", "price-high", "rating"},
			})
		})
		api.GET("/search", searchHandler.Search)
		api.GET("/search/view", searchHandler.ShapedSearch)
		api.GET("/product/:id", searchHandler.ProductDetails)
	}

	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", middleware.RequestIDHeader},
		ExposeHeaders: []string{middleware.RequestIDHeader},
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}
