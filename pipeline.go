package mepreal

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Pipeline runs one full fetch, compose, align and adjust cycle.
//
// The nominal composition and the index fetch are independent, so they run
// concurrently; the adjustment starts only after both have completed. Any
// unrecovered failure aborts the run: a partial chart would be worse than no
// chart.
type Pipeline struct {
	Composer Composer
	Indexer  Indexer
	Log      zerolog.Logger
}

// Run executes the pipeline and returns the adjusted series.
func (p *Pipeline) Run(ctx context.Context) (*AdjustedSeries, error) {
	var (
		nominal NominalSeries
		index   IndexSeries
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		nominal, err = p.Composer.Compose(ctx)
		if err != nil {
			return fmt.Errorf("nominal rate: %w", err)
		}
		first, _ := nominal.First()
		last, _ := nominal.Last()
		p.Log.Debug().
			Str("method", string(nominal.Method)).
			Strs("sources", nominal.Provenance.Sources).
			Int("observations", nominal.Len()).
			Str("from", first.Date.Format("2006-01-02")).
			Str("to", last.Date.Format("2006-01-02")).
			Msg("nominal series ready")
		return nil
	})
	g.Go(func() error {
		var err error
		index, err = p.Indexer.Fetch(ctx)
		if err != nil {
			return fmt.Errorf("price index: %w", err)
		}
		last, _ := index.Last()
		p.Log.Debug().
			Str("source", index.Origin.Source).
			Int("months", index.Len()).
			Str("latest", last.Date.Format("2006-01")).
			Msg("index series ready")
		return nil
	})
	if err := g.Wait(); err != nil {
		p.Log.Error().Err(err).Msg("pipeline aborted")
		return nil, err
	}

	if nominal.Provenance.Fallback {
		p.Log.Info().Strs("sources", nominal.Provenance.Sources).Msg("nominal leg served by fallback source")
	}
	if index.Origin.Fallback {
		p.Log.Info().Str("source", index.Origin.Source).Msg("index served by fallback source")
	}
	if !index.SynthesizedFrom.IsZero() {
		p.Log.Info().Str("from", index.SynthesizedFrom.Format("2006-01")).Msg("index extended with published monthly changes")
	}

	adjusted, err := AdjustToLatest(nominal, index)
	if err != nil {
		p.Log.Error().Err(err).Msg("adjustment failed")
		return nil, fmt.Errorf("adjust: %w", err)
	}
	p.Log.Debug().
		Int("records", len(adjusted.Records)).
		Float64("latest_index", adjusted.LatestIndex).
		Msg("adjusted series ready")
	return adjusted, nil
}
