// Package fetch performs single JSON API calls on top of a colly collector.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gocolly/colly/v2"
	"github.com/gocolly/colly/v2/debug"
)

const userAgent = "product-search-api/1.0"

// StatusError is returned when the remote side answers with a non-2xx status.
type StatusError struct {
	StatusCode int
	Body       []byte
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d %s", e.StatusCode, http.StatusText(e.StatusCode))
}

// Request describes one outbound call. Form, when set, is sent as an
// application/x-www-form-urlencoded body.
type Request struct {
	Method string
	URL    string
	Header http.Header
	Form   url.Values
}

type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

type Option func(*colly.Collector)

// WithTimeout bounds every request. Zero keeps the transport default.
func WithTimeout(d time.Duration) Option {
	return func(c *colly.Collector) {
		if d > 0 {
			c.SetRequestTimeout(d)
		}
	}
}

// WithDebug logs collector events to stderr.
func WithDebug(enabled bool) Option {
	return func(c *colly.Collector) {
		if enabled {
			c.SetDebugger(&debug.LogDebugger{})
		}
	}
}

func WithUserAgent(ua string) Option {
	return func(c *colly.Collector) {
		c.UserAgent = ua
	}
}

type Fetcher struct {
	collector *colly.Collector
}

func New(opts ...Option) *Fetcher {
	c := colly.NewCollector(
		colly.AllowURLRevisit(),
		colly.ParseHTTPErrorResponse(),
		colly.UserAgent(userAgent),
	)
	for _, opt := range opts {
		opt(c)
	}
	return &Fetcher{collector: c}
}

// Do performs exactly one request. Transport failures are returned as is,
// non-2xx responses as *StatusError.
func (f *Fetcher) Do(ctx context.Context, req Request) (*Response, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	method := req.Method
	if method == "" {
		method = http.MethodGet
	}

	c := f.collector.Clone()
	c.Context = ctx

	var resp *Response
	c.OnResponse(func(r *colly.Response) {
		resp = &Response{StatusCode: r.StatusCode, Body: r.Body}
		if r.Headers != nil {
			resp.Header = r.Headers.Clone()
		}
	})

	hdr := req.Header.Clone()
	if hdr == nil {
		hdr = http.Header{}
	}
	var body io.Reader
	if req.Form != nil {
		body = strings.NewReader(req.Form.Encode())
		hdr.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	if err := c.Request(method, req.URL, body, nil, hdr); err != nil {
		return nil, err
	}
	if resp == nil {
		return nil, errors.New("no response received")
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return resp, &StatusError{StatusCode: resp.StatusCode, Body: resp.Body}
	}
	return resp, nil
}
