package mepreal

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
)

// Source produces one named time series. Provider packages return sources
// bound to a concrete instrument or series identifier; the pipeline never
// knows which provider is behind a source.
type Source interface {
	// Fetch retrieves the series, cleaned and sorted ascending by date.
	// A single attempt, no retries: retrying is the chain's business.
	Fetch(ctx context.Context) (Series, error)

	// Name identifies the source in provenance records and error messages.
	Name() string
}

// Origin records which source of a chain actually served a fetch.
type Origin struct {
	Source   string
	Fallback bool
}

// SourceChain fetches from Primary and retries once with Fallback when
// Primary fails or comes back empty. A chain without a Fallback simply
// propagates Primary's failure, which makes that leg mandatory.
type SourceChain struct {
	Primary  Source
	Fallback Source
	Log      zerolog.Logger
}

// Fetch returns the first non-empty series the chain produces, along with the
// origin that served it. When every source fails the errors are joined so
// that each one stays visible to errors.Is.
func (c SourceChain) Fetch(ctx context.Context) (Series, Origin, error) {
	s, err := c.Primary.Fetch(ctx)
	if err == nil && s.Len() > 0 {
		return s, Origin{Source: c.Primary.Name()}, nil
	}
	if err == nil {
		err = ErrNoData
	}
	perr := &FetchError{Source: c.Primary.Name(), Err: err}
	if c.Fallback == nil {
		return nil, Origin{}, perr
	}

	c.Log.Warn().Str("source", c.Primary.Name()).Str("fallback", c.Fallback.Name()).
		Err(err).Msg("primary source failed, trying fallback")

	s, err = c.Fallback.Fetch(ctx)
	if err == nil && s.Len() > 0 {
		return s, Origin{Source: c.Fallback.Name(), Fallback: true}, nil
	}
	if err == nil {
		err = ErrNoData
	}
	return nil, Origin{}, errors.Join(perr, &FetchError{Source: c.Fallback.Name(), Err: err})
}

// StaticSource serves a fixed reference table as a Source. It stands in for
// providers the process cannot reach or authenticate to, in a degraded but
// deterministic way.
type StaticSource struct {
	Label  string
	Points []Observation
}

func (s StaticSource) Name() string { return s.Label }

func (s StaticSource) Fetch(context.Context) (Series, error) {
	series := NewSeries(s.Points...)
	if series.Len() == 0 {
		return nil, ErrNoData
	}
	return series, nil
}
