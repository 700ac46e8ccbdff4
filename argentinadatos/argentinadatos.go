// Package argentinadatos fetches quoted dollar rates from the ArgentinaDatos
// API. No authentication required.
package argentinadatos

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/ncasas/mepreal"
)

const (
	DefaultBaseURL = "https://api.argentinadatos.com"
	DefaultTimeout = 10 * time.Second
)

// Client calls the ArgentinaDatos API.
type Client struct {
	baseURL string
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

// WithLogger sets the logger.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) { c.log = l }
}

// New creates a client.
func New(opts ...Option) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		http:    &http.Client{Timeout: DefaultTimeout},
		log:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Bolsa fetches the historical "dólar bolsa" (MEP) quotes. The ask side is
// the one consumed, matching what a buyer of dollars pays.
//
//	[{"casa": "bolsa", "compra": 1232.9, "venta": 1235.5, "fecha": "2024-04-30"}, ...]
func (c *Client) Bolsa(ctx context.Context) (mepreal.Series, error) {
	addr := c.baseURL + "/v1/cotizaciones/dolares/bolsa"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr, nil)
	if err != nil {
		return nil, err
	}

	c.log.Debug().Str("url", addr).Msg("argentinadatos request")
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", mepreal.ErrSourceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("%w: GET %s: %s", mepreal.ErrSourceUnavailable, addr, resp.Status)
	}

	var quotes []struct {
		Casa  string         `json:"casa"`
		Venta mepreal.Number `json:"venta"`
		Fecha string         `json:"fecha"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&quotes); err != nil {
		return nil, fmt.Errorf("%w: %w", mepreal.ErrSourceFormat, err)
	}

	points := make([]mepreal.Observation, 0, len(quotes))
	for _, q := range quotes {
		day, err := mepreal.ParseDay(q.Fecha)
		if err != nil {
			continue
		}
		points = append(points, mepreal.Observation{Date: day, Value: float64(q.Venta)})
	}
	s := mepreal.NewSeries(points...)
	if s.Len() == 0 {
		return nil, fmt.Errorf("%w: no valid quotes", mepreal.ErrNoData)
	}
	return s, nil
}

// Source adapts the quote history to the pipeline's Source contract.
func (c *Client) Source() mepreal.Source {
	return quoteSource{c: c}
}

type quoteSource struct {
	c *Client
}

func (s quoteSource) Name() string { return "argentinadatos:bolsa" }

func (s quoteSource) Fetch(ctx context.Context) (mepreal.Series, error) {
	return s.c.Bolsa(ctx)
}
