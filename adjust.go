package mepreal

import (
	"fmt"
	"slices"
	"time"
)

// AdjustedRecord is one nominal observation re-expressed at the purchasing
// power of the latest index value.
type AdjustedRecord struct {
	Date     time.Time
	Nominal  float64
	Index    float64
	Adjusted float64
	// Synthesized is true when Index was extended from the reference table
	// rather than retrieved.
	Synthesized bool
}

// AdjustedSeries is the pipeline's final product: the adjusted records plus
// the scalars and provenance the presentation layer annotates them with.
type AdjustedSeries struct {
	Records []AdjustedRecord

	// LatestIndex is the value every record was re-based to, and
	// LatestIndexDate the month it belongs to.
	LatestIndex     float64
	LatestIndexDate time.Time

	Method      Method
	Provenance  Provenance
	IndexOrigin Origin
}

// Last returns the most recent adjusted record.
func (a *AdjustedSeries) Last() AdjustedRecord {
	return a.Records[len(a.Records)-1]
}

// AdjustToLatest joins the nominal series against the index series and
// rescales every nominal value to the purchasing power of the index's latest
// observation.
//
// The join is as-of backward: each nominal date takes the index observation
// with the latest date not after it. Nominal observations older than the
// index's earliest month have nothing to join against and are silently
// dropped; that is the expected shape when the rate history reaches further
// back than the index. If nothing survives the join, the result is
// ErrNoOverlap.
//
// The anchor is the chronologically last index value, independent of the
// join, so records adjusted with it satisfy Adjusted == Nominal.
func AdjustToLatest(nominal NominalSeries, index IndexSeries) (*AdjustedSeries, error) {
	// Sorting is idempotent on well-formed inputs. Value filtering is not
	// repeated here: a non-positive index value slipping through ingestion
	// is a bug and must surface as such, not be quietly dropped.
	nom := Series(slices.Clone(nominal.Series))
	nom.sort()
	idx := index
	idx.Series = Series(slices.Clone(index.Series))
	idx.Series.sort()

	latest, ok := idx.Last()
	if !ok {
		return nil, ErrNoOverlap
	}
	if latest.Value <= 0 {
		return nil, fmt.Errorf("%w: latest index value %v", ErrDataIntegrity, latest.Value)
	}

	records := make([]AdjustedRecord, 0, nom.Len())
	for _, o := range nom {
		match, ok := idx.AsOf(o.Date)
		if !ok {
			continue
		}
		if match.Value <= 0 {
			return nil, fmt.Errorf("%w: index value %v on %s", ErrDataIntegrity, match.Value, match.Date.Format("2006-01-02"))
		}
		records = append(records, AdjustedRecord{
			Date:        o.Date,
			Nominal:     o.Value,
			Index:       match.Value,
			Adjusted:    o.Value * (latest.Value / match.Value),
			Synthesized: idx.Synthesized(match.Date),
		})
	}
	if len(records) == 0 {
		return nil, ErrNoOverlap
	}

	return &AdjustedSeries{
		Records:         records,
		LatestIndex:     latest.Value,
		LatestIndexDate: latest.Date,
		Method:          nominal.Method,
		Provenance:      nominal.Provenance,
		IndexOrigin:     index.Origin,
	}, nil
}
