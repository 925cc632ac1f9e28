// Package upstream talks to the RapidAPI shopping-data provider.
package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"product-search-api/internal/models"
	"product-search-api/pkg/fetch"
)

var (
	// ErrInvalidInput marks a request rejected before any network call.
	ErrInvalidInput = errors.New("invalid input")
	// ErrUpstream marks a transport failure, non-2xx status or malformed provider body.
	ErrUpstream = errors.New("upstream failure")
)

const (
	OpSearch  = "search"
	OpProduct = "product"
)

// Observer receives one call per provider request.
type Observer interface {
	ObserveUpstream(operation string, err error, d time.Duration)
}

type Config struct {
	Host    string
	APIKey  string
	BaseURL string // defaults to https://{Host}
	Timeout time.Duration
	Debug   bool
}

type Client struct {
	fetcher  *fetch.Fetcher
	host     string
	apiKey   string
	baseURL  string
	observer Observer
}

func NewClient(cfg Config, observer Observer) *Client {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = "https://" + cfg.Host
	}
	return &Client{
		fetcher:  fetch.New(fetch.WithTimeout(cfg.Timeout), fetch.WithDebug(cfg.Debug)),
		host:     cfg.Host,
		apiKey:   cfg.APIKey,
		baseURL:  baseURL,
		observer: observer,
	}
}

// Search runs one provider search and returns the response body verbatim.
func (c *Client) Search(ctx context.Context, query, country string) (json.RawMessage, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("%w: query is required", ErrInvalidInput)
	}
	country = NormalizeCountry(country)

	form := url.Values{}
	form.Set("query", query)
	form.Set("country", country)

	return c.call(ctx, OpSearch, fetch.Request{
		Method: http.MethodPost,
		URL:    c.baseURL + "/shopping",
		Header: c.headers(),
		Form:   form,
	}, validateSearchBody)
}

// Product fetches the provider detail record for productID and returns it verbatim.
func (c *Client) Product(ctx context.Context, productID, country string) (json.RawMessage, error) {
	productID = strings.TrimSpace(productID)
	if productID == "" {
		return nil, fmt.Errorf("%w: product id is required", ErrInvalidInput)
	}

	q := url.Values{}
	q.Set("country", NormalizeCountry(country))

	return c.call(ctx, OpProduct, fetch.Request{
		Method: http.MethodGet,
		URL:    c.baseURL + "/products/" + url.PathEscape(productID) + "?" + q.Encode(),
		Header: c.headers(),
	}, validateProductBody)
}

func (c *Client) call(ctx context.Context, op string, req fetch.Request, validate func([]byte) error) (json.RawMessage, error) {
	start := time.Now()
	body, err := c.do(ctx, req, validate)
	if c.observer != nil {
		c.observer.ObserveUpstream(op, err, time.Since(start))
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return body, nil
}

func (c *Client) do(ctx context.Context, req fetch.Request, validate func([]byte) error) (json.RawMessage, error) {
	resp, err := c.fetcher.Do(ctx, req)
	if err != nil {
		var statusErr *fetch.StatusError
		if errors.As(err, &statusErr) {
			return nil, fmt.Errorf("%w: API call failed: %d", ErrUpstream, statusErr.StatusCode)
		}
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	if err := validate(resp.Body); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	return json.RawMessage(resp.Body), nil
}

func (c *Client) headers() http.Header {
	h := http.Header{}
	h.Set("X-RapidAPI-Key", c.apiKey)
	h.Set("X-RapidAPI-Host", c.host)
	h.Set("Accept", "application/json")
	return h
}

// NormalizeCountry lowercases a market code and falls back to the default market.
func NormalizeCountry(country string) string {
	country = strings.ToLower(strings.TrimSpace(country))
	if country == "" {
		return models.DefaultCountry
	}
	return country
}

func validateSearchBody(body []byte) error {
	if !gjson.ValidBytes(body) {
		return errors.New("response is not valid JSON")
	}
	root := gjson.ParseBytes(body)
	if !root.IsObject() {
		return errors.New("response is not a JSON object")
	}
	if products := root.Get("products"); !products.IsArray() {
		return errors.New("response has no products array")
	}
	var decoded models.SearchResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return fmt.Errorf("unexpected products shape: %w", err)
	}
	return nil
}

func validateProductBody(body []byte) error {
	if !gjson.ValidBytes(body) {
		return errors.New("response is not valid JSON")
	}
	if !gjson.ParseBytes(body).IsObject() {
		return errors.New("response is not a JSON object")
	}
	var decoded models.ProductDetails
	if err := json.Unmarshal(body, &decoded); err != nil {
		return fmt.Errorf("unexpected product shape: %w", err)
	}
	return nil
}
