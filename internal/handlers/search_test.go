package handlers_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"product-search-api/internal/handlers"
	"product-search-api/internal/models"
	"product-search-api/internal/services"
	"product-search-api/internal/upstream"
)

const searchFixture = `{"products":[
	{"title":"iPhone 15 128GB","source":"Apple","link":"https://apple.example/p1","price":"$799.00","imageUrl":"https://img.example/1.jpg","rating":4.8,"ratingCount":1200,"productId":"p1","position":1},
	{"title":"iPhone 15 Refurb","source":"eBay","link":"https://ebay.example/p2","price":"$549.99","imageUrl":"https://img.example/2.jpg","rating":3.2,"ratingCount":40,"productId":"p2","position":2},
	{"title":"iPhone 15 Case Bundle","source":"Best Buy","link":"https://bestbuy.example/p3","price":"$829.00","imageUrl":"https://img.example/3.jpg","rating":4.5,"ratingCount":310,"productId":"p3","position":3},
	{"title":"iPhone 15 Unlocked","source":"Walmart","link":"https://walmart.example/p4","price":"$779.00","imageUrl":"https://img.example/4.jpg","productId":"p4","position":4}
]}`

const detailFixture = `{"id":"p1","country":"us","title":"iPhone 15 128GB","description":"Latest iPhone",
	"reviews":{"overall_rating":4.7,"total_reviews":"1,200","star_distribution":{"5_star":"900","4_star":"200","3_star":"50","2_star":"20","1_star":"30"},
		"aspects":[{"aspect":"Battery","mention_count":120,"sentiment_percentage":85,"sentiment":"positive"}],
		"sample_reviews":[{"text":"Great","full_text":"Great phone","rating":5,"date":"2024-01-02","reviewer":"Sam","source":"Apple"}]},
	"buying_options":{"sellers":[{"seller_name":"Apple","seller_url":"https://apple.example","details":"","item_price":"$799.00","total_price":"$851.00","condition":null,"shipping":"Free"}]},
	"images":{"main_images":[{"url":"https://img.example/1.jpg","type":"main","image_number":1}],"thumbnails":[],
		"product_info":{"overlay_title":"iPhone 15","overlay_price":"$799","overlay_merchant":"Apple","overlay_rating":4.7,"overlay_review_count":"1.2K"}}}`

type providerCall struct {
	method, path, country, query string
}

type SearchHandlerTestSuite struct {
	suite.Suite
	provider *httptest.Server
	router   *gin.Engine
	logHook  *test.Hook

	mu       sync.Mutex
	calls    []providerCall
	status   int
	response string
}

func (s *SearchHandlerTestSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)
}

func (s *SearchHandlerTestSuite) SetupTest() {
	s.calls = nil
	s.status = http.StatusOK
	s.response = searchFixture

	s.provider = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		defer s.mu.Unlock()

		call := providerCall{method: r.Method, path: r.URL.Path, country: r.URL.Query().Get("country")}
		if r.Method == http.MethodPost {
			raw, _ := io.ReadAll(r.Body)
			form, _ := url.ParseQuery(string(raw))
			call.query, call.country = form.Get("query"), form.Get("country")
		}
		s.calls = append(s.calls, call)

		w.WriteHeader(s.status)
		_, _ = w.Write([]byte(s.response))
	}))

	log, hook := test.NewNullLogger()
	s.logHook = hook

	client := upstream.NewClient(upstream.Config{Host: "provider.test", APIKey: "secret-key", BaseURL: s.provider.URL}, nil)
	h := handlers.NewSearchHandler(services.NewSearchService(client, log), log)

	s.router = gin.New()
	s.router.GET("/api/search", h.Search)
	s.router.GET("/api/search/view", h.ShapedSearch)
	s.router.GET("/api/product/:id", h.ProductDetails)
}

func (s *SearchHandlerTestSuite) TearDownTest() {
	s.provider.Close()
}

func (s *SearchHandlerTestSuite) get(target string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(http.MethodGet, target, nil)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *SearchHandlerTestSuite) errorBody(w *httptest.ResponseRecorder) string {
	var resp models.ErrorResponse
	require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Error
}

func (s *SearchHandlerTestSuite) TestSearch_PassesProviderJSONThrough() {
	w := s.get("/api/search?query=iPhone+15&country=us")

	assert.Equal(s.T(), http.StatusOK, w.Code)
	assert.Equal(s.T(), searchFixture, w.Body.String())
	assert.Contains(s.T(), w.Header().Get("Content-Type"), "application/json")
	require.Len(s.T(), s.calls, 1)
	assert.Equal(s.T(), providerCall{method: http.MethodPost, path: "/shopping", query: "iPhone 15", country: "us"}, s.calls[0])
}

func (s *SearchHandlerTestSuite) TestSearch_DefaultsCountry() {
	w := s.get("/api/search?query=laptop")

	assert.Equal(s.T(), http.StatusOK, w.Code)
	require.Len(s.T(), s.calls, 1)
	assert.Equal(s.T(), "us", s.calls[0].country)
}

func (s *SearchHandlerTestSuite) TestSearch_MissingQuery() {
	for _, target := range []string{"/api/search", "/api/search?query=", "/api/search?query=%20%20"} {
		w := s.get(target)

		assert.Equal(s.T(), http.StatusBadRequest, w.Code, target)
		assert.JSONEq(s.T(), `{"error":"Query parameter is required"}`, w.Body.String())
	}
	assert.Empty(s.T(), s.calls)
}

func (s *SearchHandlerTestSuite) TestSearch_UpstreamFailureIsNotLeaked() {
	s.status = http.StatusBadGateway
	s.response = `{"message":"provider quota exceeded for key secret-key"}`

	w := s.get("/api/search?query=laptop")

	assert.Equal(s.T(), http.StatusInternalServerError, w.Code)
	assert.JSONEq(s.T(), `{"error":"Failed to search products"}`, w.Body.String())
	assert.NotContains(s.T(), w.Body.String(), "quota")

	entry := s.logHook.LastEntry()
	require.NotNil(s.T(), entry)
	assert.Equal(s.T(), logrus.ErrorLevel, entry.Level)
	assert.Contains(s.T(), entry.Data[logrus.ErrorKey].(error).Error(), "502")
}

func (s *SearchHandlerTestSuite) TestSearch_MalformedProviderBody() {
	s.response = `{"results":"nope"}`

	w := s.get("/api/search?query=laptop")

	assert.Equal(s.T(), http.StatusInternalServerError, w.Code)
	assert.Equal(s.T(), "Failed to search products", s.errorBody(w))
}

func (s *SearchHandlerTestSuite) TestProductDetails_PassesProviderJSONThrough() {
	s.response = detailFixture

	w := s.get("/api/product/p1")

	assert.Equal(s.T(), http.StatusOK, w.Code)
	assert.Equal(s.T(), detailFixture, w.Body.String())
	require.Len(s.T(), s.calls, 1)
	assert.Equal(s.T(), providerCall{method: http.MethodGet, path: "/products/p1", country: "us"}, s.calls[0])
}

func (s *SearchHandlerTestSuite) TestProductDetails_Country() {
	s.response = detailFixture

	s.get("/api/product/p1?country=fr")

	require.Len(s.T(), s.calls, 1)
	assert.Equal(s.T(), "fr", s.calls[0].country)
}

func (s *SearchHandlerTestSuite) TestProductDetails_DefaultsAndNormalizesCountry() {
	s.response = detailFixture

	s.get("/api/product/p1?country=")
	s.get("/api/product/p1?country=FR")

	require.Len(s.T(), s.calls, 2)
	assert.Equal(s.T(), "us", s.calls[0].country)
	assert.Equal(s.T(), "fr", s.calls[1].country)
}

func (s *SearchHandlerTestSuite) TestProductDetails_BlankID() {
	w := s.get("/api/product/%20")

	assert.Equal(s.T(), http.StatusBadRequest, w.Code)
	assert.JSONEq(s.T(), `{"error":"Product ID is required"}`, w.Body.String())
	assert.Empty(s.T(), s.calls)
}

func (s *SearchHandlerTestSuite) TestProductDetails_UpstreamNotFound() {
	s.status = http.StatusNotFound
	s.response = `{"message":"no such product"}`

	w := s.get("/api/product/does-not-exist")

	assert.Equal(s.T(), http.StatusInternalServerError, w.Code)
	assert.JSONEq(s.T(), `{"error":"Failed to fetch product details"}`, w.Body.String())
}

func (s *SearchHandlerTestSuite) TestShapedSearch_RatingScenario() {
	w := s.get("/api/search/view?query=iPhone+15&country=us&minRating=4&sortBy=rating")

	require.Equal(s.T(), http.StatusOK, w.Code)
	var resp models.ShapedSearchResponse
	require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &resp))

	require.Len(s.T(), resp.Products, 2)
	assert.Equal(s.T(), 4.8, *resp.Products[0].Rating)
	assert.Equal(s.T(), 4.5, *resp.Products[1].Rating)
	assert.Equal(s.T(), 4, resp.Total)
	assert.True(s.T(), resp.Filtered)
	require.NotNil(s.T(), resp.Stats)
	assert.Equal(s.T(), "$549.99 - $829.00", resp.Stats.PriceRange)
	assert.Equal(s.T(), "4.2", resp.Stats.AvgRating)
}

func (s *SearchHandlerTestSuite) TestShapedSearch_SourcesAndPriceSort() {
	w := s.get("/api/search/view?query=iPhone&sources=Apple,Walmart&sources=eBay&sortBy=price-low")

	require.Equal(s.T(), http.StatusOK, w.Code)
	var resp models.ShapedSearchResponse
	require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &resp))

	got := make([]string, 0, len(resp.Products))
	for _, p := range resp.Products {
		got = append(got, p.ProductID)
	}
	assert.Equal(s.T(), []string{"p2", "p4", "p1"}, got)
	assert.Equal(s.T(), []string{"Apple", "eBay", "Best Buy", "Walmart"}, resp.AvailableSources)
}

func (s *SearchHandlerTestSuite) TestShapedSearch_InvalidFilters() {
	tests := []struct {
		target string
		want   string
	}{
		{"/api/search/view?query=x&minRating=7", "minRating must be at most 5"},
		{"/api/search/view?query=x&sortBy=cheapest", "sortBy must be one of"},
		{"/api/search/view?query=x&minPrice=-3", "minPrice must be greater than or equal to 0"},
		{"/api/search/view?query=x&minPrice=abc", "Invalid filter parameters"},
		{"/api/search/view?query=x&minPrice=50&maxPrice=10", "maximum price cannot be less than minimum price"},
		{"/api/search/view?minRating=3", "Query parameter is required"},
	}

	for _, tt := range tests {
		w := s.get(tt.target)

		assert.Equal(s.T(), http.StatusBadRequest, w.Code, tt.target)
		assert.True(s.T(), strings.Contains(s.errorBody(w), tt.want), "%s: %s", tt.target, w.Body.String())
	}
	assert.Empty(s.T(), s.calls)
}

func (s *SearchHandlerTestSuite) TestShapedSearch_UpstreamFailure() {
	s.status = http.StatusInternalServerError

	w := s.get("/api/search/view?query=iPhone")

	assert.Equal(s.T(), http.StatusInternalServerError, w.Code)
	assert.Equal(s.T(), "Failed to search products", s.errorBody(w))
}

func TestSearchHandlerSuite(t *testing.T) {
	suite.Run(t, new(SearchHandlerTestSuite))
}
