package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"product-search-api/internal/models"
)

// ProductDetails proxies GET /api/product/:id to the provider and returns its JSON unmodified.
func (h *SearchHandler) ProductDetails(c *gin.Context) {
	productID := strings.TrimSpace(c.Param("id"))
	if productID == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: msgProductIDRequired})
		return
	}
	country := c.Query("country")

	body, err := h.searchService.ProductDetails(c.Request.Context(), productID, country)
	if err != nil {
		h.fail(c, err, msgProductIDRequired, msgProductFailed, logrus.Fields{"product_id": productID})
		return
	}

	c.Data(http.StatusOK, gin.MIMEJSON+"; charset=utf-8", body)
}
