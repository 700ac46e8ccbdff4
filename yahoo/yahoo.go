// Package yahoo fetches daily price history from the Yahoo Finance chart
// API. Only the close column is consumed.
package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/PaesslerAG/jsonpath"
	"github.com/rs/zerolog"

	"github.com/ncasas/mepreal"
)

const (
	DefaultBaseURL = "https://query1.finance.yahoo.com"
	DefaultTimeout = 10 * time.Second
	DefaultRange   = "10y"
)

// Client calls the chart API.
type Client struct {
	baseURL string
	rng     string
	http    *http.Client
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

// WithRange sets how far back the history reaches ("1y", "10y", "max").
func WithRange(rng string) Option {
	return func(c *Client) { c.rng = rng }
}

// WithLogger sets the logger.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) { c.log = l }
}

// New creates a client.
func New(opts ...Option) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		rng:     DefaultRange,
		http:    &http.Client{Timeout: DefaultTimeout},
		log:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Daily fetches the daily close history of one symbol.
//
// The chart response nests the interesting arrays several levels deep and
// pads them with nulls on holidays, so the arrays are pulled out by path and
// zipped, skipping the null bars.
func (c *Client) Daily(ctx context.Context, symbol string) (mepreal.Series, error) {
	addr := fmt.Sprintf("%s/v8/finance/chart/%s?interval=1d&range=%s",
		c.baseURL, url.PathEscape(symbol), url.QueryEscape(c.rng))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr, nil)
	if err != nil {
		return nil, err
	}
	// Yahoo rejects the default Go user agent.
	req.Header.Set("User-Agent", "Mozilla/5.0")

	c.log.Debug().Str("url", addr).Msg("yahoo request")
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", mepreal.ErrSourceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("%w: GET %s: %s", mepreal.ErrSourceUnavailable, addr, resp.Status)
	}

	var jobj any
	if err := json.NewDecoder(resp.Body).Decode(&jobj); err != nil {
		return nil, fmt.Errorf("%w: %w", mepreal.ErrSourceFormat, err)
	}

	timestamps, err := jsonItems(jobj, "$.chart.result[0].timestamp")
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", mepreal.ErrSourceFormat, symbol, err)
	}
	closes, err := jsonItems(jobj, "$.chart.result[0].indicators.quote[0].close")
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", mepreal.ErrSourceFormat, symbol, err)
	}
	if len(timestamps) != len(closes) {
		return nil, fmt.Errorf("%w: %s: %d timestamps vs %d closes", mepreal.ErrSourceFormat, symbol, len(timestamps), len(closes))
	}

	points := make([]mepreal.Observation, 0, len(timestamps))
	for i, ts := range timestamps {
		sec, ok := ts.(float64)
		if !ok {
			continue
		}
		// A null close is a holiday or a not-yet-settled bar.
		value, ok := closes[i].(float64)
		if !ok {
			continue
		}
		day := mepreal.DayOf(time.Unix(int64(sec), 0))
		points = append(points, mepreal.Observation{Date: day, Value: value})
	}
	s := mepreal.NewSeries(points...)
	if s.Len() == 0 {
		return nil, fmt.Errorf("%w: %s has no valid bars", mepreal.ErrNoData, symbol)
	}
	return s, nil
}

// jsonItems extracts a JSON array by path.
func jsonItems(jobj any, path string) ([]any, error) {
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return nil, fmt.Errorf("missing %q: %w", path, err)
	}
	items, ok := jval.([]any)
	if !ok {
		return nil, fmt.Errorf("%q is not an array", path)
	}
	return items, nil
}

// Source adapts one symbol's history to the pipeline's Source contract.
func (c *Client) Source(symbol string) mepreal.Source {
	return chartSource{c: c, symbol: symbol}
}

type chartSource struct {
	c      *Client
	symbol string
}

func (s chartSource) Name() string { return "yahoo:" + s.symbol }

func (s chartSource) Fetch(ctx context.Context) (mepreal.Series, error) {
	return s.c.Daily(ctx, s.symbol)
}
