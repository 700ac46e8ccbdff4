package mepreal

import (
	"context"
	"slices"
	"time"

	"github.com/shopspring/decimal"
)

// MonthlyChange is one month-over-month percentage change published by the
// statistics office.
type MonthlyChange struct {
	Month time.Time // first day of the month
	Pct   decimal.Decimal
}

// IndexSeries is a monthly price-index series. Dates sit on the first day of
// their month. Observations past SynthesizedFrom were extended from a
// reference table of known changes rather than retrieved.
type IndexSeries struct {
	Series
	Origin          Origin
	SynthesizedFrom time.Time
}

// Synthesized reports whether the value for the given month was extended from
// the reference table.
func (x IndexSeries) Synthesized(month time.Time) bool {
	return !x.SynthesizedFrom.IsZero() && !month.Before(x.SynthesizedFrom)
}

// Indexer produces the monthly price-index series the adjustment divides by.
//
// GapFill lists month-over-month changes that the statistics office has
// already published but the upstream aggregator has not ingested yet. After a
// fetch, the retrieved series is extended one month at a time with
// index[m+1] = index[m] * (1 + pct/100), starting right after the last
// retrieved month and stopping at the first month the table does not declare.
// Retrieved data is never overwritten.
type Indexer struct {
	Chain   SourceChain
	GapFill []MonthlyChange
}

// Fetch retrieves the index, normalizes it to monthly granularity and applies
// the gap-filling policy.
func (ix Indexer) Fetch(ctx context.Context) (IndexSeries, error) {
	s, origin, err := ix.Chain.Fetch(ctx)
	if err != nil {
		return IndexSeries{}, err
	}
	monthly := s.Monthly()
	if monthly.Len() == 0 {
		return IndexSeries{}, &FetchError{Source: origin.Source, Err: ErrNoData}
	}
	extended, from := extend(monthly, ix.GapFill)
	return IndexSeries{Series: extended, Origin: origin, SynthesizedFrom: from}, nil
}

// extend appends synthesized observations for consecutive table months after
// the last retrieved one. It returns the extended series and the first
// synthesized month (zero when nothing was appended).
func extend(s Series, table []MonthlyChange) (Series, time.Time) {
	last, ok := s.Last()
	if !ok || len(table) == 0 {
		return s, time.Time{}
	}

	changes := slices.Clone(table)
	slices.SortFunc(changes, func(a, b MonthlyChange) int { return a.Month.Compare(b.Month) })

	hundred := decimal.NewFromInt(100)
	level := decimal.NewFromFloat(last.Value)
	cur := MonthOf(last.Date)
	var first time.Time

	out := slices.Clone(s)
	for _, mc := range changes {
		if !MonthOf(mc.Month).After(cur) {
			// Already covered by retrieved data.
			continue
		}
		next := cur.AddDate(0, 1, 0)
		if !MonthOf(mc.Month).Equal(next) {
			// A hole in the table: compounding across it would fabricate
			// a level for an undeclared month.
			break
		}
		level = level.Mul(decimal.NewFromInt(1).Add(mc.Pct.Div(hundred)))
		out = append(out, Observation{Date: next, Value: level.InexactFloat64()})
		if first.IsZero() {
			first = next
		}
		cur = next
	}
	return out, first
}
