package mepreal

import (
	"context"
	"fmt"
)

// Method identifies how a nominal rate series was computed.
type Method string

const (
	// DirectQuote passes a quoted rate through unchanged.
	DirectQuote Method = "direct-quote"
	// BondRatio divides the peso price of a sovereign bond by the dollar
	// price of its dollar-settled twin.
	BondRatio Method = "bond-ratio"
	// EquityRatio divides the peso price of a local share by the dollar
	// price of its foreign cross-listing, scaled by the conversion ratio.
	EquityRatio Method = "equity-ratio"
)

// Band bounds plausible composed rates. Composed ratios outside the band are
// discarded as artifacts (stale leg, split, bad print). The zero value only
// rejects non-positive rates.
type Band struct {
	Min, Max float64
}

// Contains reports whether v is a plausible rate.
func (b Band) Contains(v float64) bool {
	if v <= 0 {
		return false
	}
	if b.Min != 0 && v < b.Min {
		return false
	}
	if b.Max != 0 && v > b.Max {
		return false
	}
	return true
}

// Provenance records which sources produced a nominal series.
type Provenance struct {
	// Sources lists the serving source per leg: the single quote source for
	// DirectQuote, or the local then the foreign leg for ratio methods.
	Sources []string
	// Fallback is true when any leg was served by its fallback source.
	Fallback bool
}

// NominalSeries is a nominal exchange-rate series tagged with how it was
// computed and where its data came from.
type NominalSeries struct {
	Series
	Method     Method
	Provenance Provenance
}

// Composer builds the nominal rate series for one of the supported methods.
//
// DirectQuote uses Quote alone. The ratio methods fetch Local (the instrument
// priced in pesos) and Foreign (the same instrument priced in dollars),
// inner-join them on exact dates and divide. A leg is mandatory when its
// chain carries no fallback: which leg gets a fallback is a wiring choice per
// strategy, not a property of the composer.
type Composer struct {
	Method  Method
	Quote   SourceChain
	Local   SourceChain
	Foreign SourceChain
	// Scale is the number of local units one foreign unit represents, e.g.
	// the shares-per-ADR conversion ratio. Zero means 1.
	Scale float64
	// Band filters implausible composed ratios. Ignored for DirectQuote,
	// which is already a rate.
	Band Band
}

// Compose fetches the configured legs and returns the nominal rate series.
// Failures wrap ErrComposition; a ratio whose legs share no date additionally
// wraps ErrNoCommonDates.
func (c Composer) Compose(ctx context.Context) (NominalSeries, error) {
	switch c.Method {
	case DirectQuote:
		s, origin, err := c.Quote.Fetch(ctx)
		if err != nil {
			return NominalSeries{}, fmt.Errorf("%w: quote leg: %w", ErrComposition, err)
		}
		return NominalSeries{
			Series:     s,
			Method:     DirectQuote,
			Provenance: Provenance{Sources: []string{origin.Source}, Fallback: origin.Fallback},
		}, nil

	case BondRatio, EquityRatio:
		local, lo, err := c.Local.Fetch(ctx)
		if err != nil {
			return NominalSeries{}, fmt.Errorf("%w: local leg: %w", ErrComposition, err)
		}
		foreign, fo, err := c.Foreign.Fetch(ctx)
		if err != nil {
			return NominalSeries{}, fmt.Errorf("%w: foreign leg: %w", ErrComposition, err)
		}
		rate := ratio(local, foreign, c.scale(), c.Band)
		if rate.Len() == 0 {
			return NominalSeries{}, fmt.Errorf("%w: %s and %s: %w", ErrComposition, lo.Source, fo.Source, ErrNoCommonDates)
		}
		return NominalSeries{
			Series:     rate,
			Method:     c.Method,
			Provenance: Provenance{Sources: []string{lo.Source, fo.Source}, Fallback: lo.Fallback || fo.Fallback},
		}, nil

	default:
		return NominalSeries{}, fmt.Errorf("%w: unknown method %q", ErrComposition, c.Method)
	}
}

func (c Composer) scale() float64 {
	if c.Scale == 0 {
		return 1
	}
	return c.Scale
}

// ratio inner-joins two price series on exact dates and divides local by
// foreign, scaled. Both legs must report the same day; as-of matching between
// legs would mix prices from different sessions.
func ratio(local, foreign Series, scale float64, band Band) Series {
	points := make([]Observation, 0, local.Len())
	for _, lo := range local {
		fo, ok := foreign.At(lo.Date)
		if !ok {
			continue
		}
		r := lo.Value / fo.Value * scale
		if !band.Contains(r) {
			continue
		}
		points = append(points, Observation{Date: lo.Date, Value: r})
	}
	return NewSeries(points...)
}
