// Package datosgobar fetches time series from the national open-data portal
// (apis.datos.gob.ar/series). No authentication required.
package datosgobar

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"

	"github.com/ncasas/mepreal"
)

const (
	DefaultBaseURL = "https://apis.datos.gob.ar"
	DefaultTimeout = 10 * time.Second

	// SeriesIPC is the INDEC national CPI, general level, base Dec 2016.
	SeriesIPC = "148.3_INIVELNAL_DICI_M_26"

	// The API pages at 1000 rows; plenty for a monthly series, so no
	// pagination logic.
	pageLimit = "1000"
)

// Client calls the portal's series API.
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

// Series fetches one series by identifier.
//
// The portal answers rows of [date, value] pairs:
//
//	{"data": [["2016-12-01", 100.0], ["2017-01-01", 101.58], ...]}
//
// Values occasionally arrive as strings or null; such rows are coerced or
// dropped like any other invalid observation.
func (c *Client) Series(ctx context.Context, id string) (mepreal.Series, error) {
	params := url.Values{}
	params.Set("ids", id)
	params.Set("format", "json")
	params.Set("limit", pageLimit)
	addr := c.baseURL + "/series/api/series?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr, nil)
	if err != nil {
		return nil, err
	}

	c.log.Debug().Str("url", addr).Msg("datosgobar request")
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", mepreal.ErrSourceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("%w: GET %s: %s", mepreal.ErrSourceUnavailable, addr, resp.Status)
	}

	var payload struct {
		Data [][]any `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: %w", mepreal.ErrSourceFormat, err)
	}
	if payload.Data == nil {
		return nil, fmt.Errorf("%w: response has no data field", mepreal.ErrSourceFormat)
	}

	points := make([]mepreal.Observation, 0, len(payload.Data))
	for _, row := range payload.Data {
		if len(row) < 2 {
			continue
		}
		fecha, ok := row[0].(string)
		if !ok {
			continue
		}
		day, err := mepreal.ParseDay(fecha)
		if err != nil {
			continue
		}
		var value float64
		switch v := row[1].(type) {
		case float64:
			value = v
		case string:
			value, _ = mepreal.ParseValue(v)
		default:
			// null: the month exists but carries no value yet.
			continue
		}
		points = append(points, mepreal.Observation{Date: day, Value: value})
	}
	s := mepreal.NewSeries(points...)
	if s.Len() == 0 {
		return nil, fmt.Errorf("%w: series %s has no valid rows", mepreal.ErrNoData, id)
	}
	return s, nil
}

// Source adapts one series to the pipeline's Source contract.
func (c *Client) Source(id string) mepreal.Source {
	return seriesSource{c: c, id: id}
}

type seriesSource struct {
	c  *Client
	id string
}

func (s seriesSource) Name() string { return "datosgobar:" + s.id }

func (s seriesSource) Fetch(ctx context.Context) (mepreal.Series, error) {
	return s.c.Series(ctx, s.id)
}
