// Package data912 fetches historical prices for Argentine bonds, stocks and
// ADRs from the data912 API.
//
// The service is a community one with no published rate policy, so requests
// go through a modest client-side rate limiter.
package data912

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/ncasas/mepreal"
)

const (
	DefaultBaseURL   = "https://data912.com"
	DefaultTimeout   = 10 * time.Second
	DefaultRateLimit = 5 // requests per second

	// Markets the historical endpoint serves.
	MarketBonds  = "arg_bonds"
	MarketStocks = "arg_stocks"
	MarketADRs   = "arg_adrs"
)

// Client calls the data912 API.
type Client struct {
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
	log     zerolog.Logger
}

// Option configures the client.
type Option func(*Client)

// WithBaseURL points the client at a different host, mainly for tests.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// WithHTTPClient replaces the underlying HTTP client, e.g. with a caching one.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithRateLimit sets the client-side request rate.
func WithRateLimit(requestsPerSecond int) Option {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond)
	}
}

// WithLogger sets the logger.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) { c.log = l }
}

// New creates a client.
func New(opts ...Option) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		http:    &http.Client{Timeout: DefaultTimeout},
		limiter: rate.NewLimiter(rate.Limit(DefaultRateLimit), DefaultRateLimit),
		log:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// History fetches the daily close-price history of one instrument.
//
//	[{"date": "2024-04-15", "c": 58900.0}, ...]
func (c *Client) History(ctx context.Context, market, symbol string) (mepreal.Series, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	addr := fmt.Sprintf("%s/historical/%s/%s", c.baseURL, url.PathEscape(market), url.PathEscape(symbol))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr, nil)
	if err != nil {
		return nil, err
	}

	c.log.Debug().Str("url", addr).Msg("data912 request")
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", mepreal.ErrSourceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("%w: GET %s: %s", mepreal.ErrSourceUnavailable, addr, resp.Status)
	}

	var bars []struct {
		Date  string         `json:"date"`
		Close mepreal.Number `json:"c"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&bars); err != nil {
		return nil, fmt.Errorf("%w: %w", mepreal.ErrSourceFormat, err)
	}

	points := make([]mepreal.Observation, 0, len(bars))
	for _, b := range bars {
		day, err := mepreal.ParseDay(b.Date)
		if err != nil {
			continue
		}
		points = append(points, mepreal.Observation{Date: day, Value: float64(b.Close)})
	}
	s := mepreal.NewSeries(points...)
	if s.Len() == 0 {
		return nil, fmt.Errorf("%w: %s/%s has no valid bars", mepreal.ErrNoData, market, symbol)
	}
	return s, nil
}

// Source adapts one instrument's history to the pipeline's Source contract.
func (c *Client) Source(market, symbol string) mepreal.Source {
	return historySource{c: c, market: market, symbol: symbol}
}

type historySource struct {
	c              *Client
	market, symbol string
}

func (s historySource) Name() string {
	return fmt.Sprintf("data912:%s/%s", s.market, s.symbol)
}

func (s historySource) Fetch(ctx context.Context) (mepreal.Series, error) {
	return s.c.History(ctx, s.market, s.symbol)
}
