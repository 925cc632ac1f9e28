// Package apiclient calls the product-search proxy over HTTP.
package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"product-search-api/internal/models"
	"product-search-api/pkg/fetch"
)

// APIError carries the error message returned by the proxy.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%d: %s", e.StatusCode, e.Message)
}

type Client struct {
	fetcher *fetch.Fetcher
	baseURL string
}

func New(baseURL string, opts ...fetch.Option) *Client {
	return &Client{
		fetcher: fetch.New(opts...),
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

func (c *Client) Search(ctx context.Context, query, country string) (*models.SearchResponse, error) {
	q := url.Values{}
	q.Set("query", query)
	if country != "" {
		q.Set("country", country)
	}

	var resp models.SearchResponse
	if err := c.get(ctx, "/api/search?"+q.Encode(), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Product(ctx context.Context, productID, country string) (*models.ProductDetails, error) {
	target := "/api/product/" + url.PathEscape(productID)
	if country != "" {
		target += "?" + url.Values{"country": []string{country}}.Encode()
	}

	var details models.ProductDetails
	if err := c.get(ctx, target, &details); err != nil {
		return nil, err
	}
	return &details, nil
}

func (c *Client) get(ctx context.Context, target string, out interface{}) error {
	resp, err := c.fetcher.Do(ctx, fetch.Request{
		Method: http.MethodGet,
		URL:    c.baseURL + target,
		Header: http.Header{"Accept": []string{"application/json"}},
	})
	if err != nil {
		var statusErr *fetch.StatusError
		if errors.As(err, &statusErr) {
			var body models.ErrorResponse
			if jsonErr := json.Unmarshal(statusErr.Body, &body); jsonErr != nil || body.Error == "" {
				body.Error = http.StatusText(statusErr.StatusCode)
			}
			return &APIError{StatusCode: statusErr.StatusCode, Message: body.Error}
		}
		return fmt.Errorf("request %s: %w", target, err)
	}

	if err := json.Unmarshal(resp.Body, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
