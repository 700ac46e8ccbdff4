// Package bcra fetches statistical series published by the Banco Central de
// la República Argentina.
//
// The statistics API serves every "principal variable" in one authenticated
// call; a client selects the series it needs by variable identifier. Tokens
// are issued per user on the bank's site and must be supplied by the caller,
// they are never compiled in.
package bcra

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
	DefaultBaseURL = "https://api.bcra.gob.ar"
	// DefaultTimeout is generous: the endpoint returns the full history of
	// every published variable in one body.
	DefaultTimeout = 20 * time.Second

	// VarMEP is the implied FX rate from sovereign bond prices, daily.
	VarMEP = 296
	// VarIPC is the national CPI, general level, base Dec 2016.
	VarIPC = 26
)

// Client calls the bank's statistics API.
type Client struct {
	baseURL string
	token   string
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

// New creates a client authenticated with the given API token.
func New(token string, opts ...Option) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		token:   token,
		http:    &http.Client{Timeout: DefaultTimeout},
		log:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// The endpoint responds with every published variable and its records:
//
//	{"results": [{"idVariable": 296,
//	              "descripcion": "Tipo de Cambio Implícito ...",
//	              "principalesVariables": [{"fecha": "2024-04-15", "valor": 1014.5}, ...]},
//	             ...]}
type variablesResponse struct {
	Results []struct {
		IDVariable  int    `json:"idVariable"`
		Descripcion string `json:"descripcion"`
		Records     []struct {
			Fecha string         `json:"fecha"`
			Valor mepreal.Number `json:"valor"`
		} `json:"principalesVariables"`
	} `json:"results"`
}

// Variable fetches the full history of one published variable.
func (c *Client) Variable(ctx context.Context, id int) (mepreal.Series, error) {
	addr := c.baseURL + "/estadisticas/v1/principalesvariables"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr, nil)
	if err != nil {
		return nil, err
	}
	// The API wants the literal BEARER prefix, uppercase.
	req.Header.Set("Authorization", "BEARER "+c.token)

	c.log.Debug().Str("url", addr).Int("variable", id).Msg("bcra request")
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", mepreal.ErrSourceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("%w: GET %s: %s", mepreal.ErrSourceUnavailable, addr, resp.Status)
	}

	var payload variablesResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: %w", mepreal.ErrSourceFormat, err)
	}
	if payload.Results == nil {
		return nil, fmt.Errorf("%w: response has no results field", mepreal.ErrSourceFormat)
	}

	for _, entry := range payload.Results {
		if entry.IDVariable != id {
			continue
		}
		points := make([]mepreal.Observation, 0, len(entry.Records))
		for _, r := range entry.Records {
			day, err := mepreal.ParseDay(r.Fecha)
			if err != nil {
				c.log.Debug().Str("fecha", r.Fecha).Msg("dropping record with unparseable date")
				continue
			}
			points = append(points, mepreal.Observation{Date: day, Value: float64(r.Valor)})
		}
		s := mepreal.NewSeries(points...)
		if s.Len() == 0 {
			return nil, fmt.Errorf("%w: variable %d has no valid records", mepreal.ErrNoData, id)
		}
		return s, nil
	}
	return nil, fmt.Errorf("%w: variable %d not in response", mepreal.ErrNoData, id)
}

// Source adapts one variable to the pipeline's Source contract.
func (c *Client) Source(id int) mepreal.Source {
	return variableSource{c: c, id: id}
}

type variableSource struct {
	c  *Client
	id int
}

func (s variableSource) Name() string { return fmt.Sprintf("bcra:%d", s.id) }

func (s variableSource) Fetch(ctx context.Context) (mepreal.Series, error) {
	return s.c.Variable(ctx, s.id)
}
