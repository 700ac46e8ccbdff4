package mepreal

import (
	"errors"
	"math"
	"testing"
	"time"
)

func nominalFixture() NominalSeries {
	return NominalSeries{
		Method: DirectQuote,
		Series: NewSeries(
			Observation{Date: day(2024, time.January, 1), Value: 800},
			Observation{Date: day(2024, time.February, 1), Value: 820},
			Observation{Date: day(2024, time.March, 1), Value: 900},
		),
	}
}

func indexFixture() IndexSeries {
	return IndexSeries{Series: NewSeries(
		Observation{Date: day(2024, time.January, 1), Value: 100},
		Observation{Date: day(2024, time.February, 1), Value: 110},
	)}
}

func TestAdjustToLatest(t *testing.T) {
	adj, err := AdjustToLatest(nominalFixture(), indexFixture())
	if err != nil {
		t.Fatalf("AdjustToLatest: %v", err)
	}

	want := []AdjustedRecord{
		{Date: day(2024, time.January, 1), Nominal: 800, Index: 100, Adjusted: 880},
		{Date: day(2024, time.February, 1), Nominal: 820, Index: 110, Adjusted: 820},
		// No March index value: February's carries forward.
		{Date: day(2024, time.March, 1), Nominal: 900, Index: 110, Adjusted: 900},
	}
	if len(adj.Records) != len(want) {
		t.Fatalf("records = %d, want %d", len(adj.Records), len(want))
	}
	for i, w := range want {
		got := adj.Records[i]
		if !got.Date.Equal(w.Date) || got.Nominal != w.Nominal || got.Index != w.Index {
			t.Errorf("record %d = %+v, want %+v", i, got, w)
		}
		if math.Abs(got.Adjusted-w.Adjusted) > 1e-9*w.Adjusted {
			t.Errorf("record %d adjusted = %v, want %v", i, got.Adjusted, w.Adjusted)
		}
	}

	if adj.LatestIndex != 110 || !adj.LatestIndexDate.Equal(day(2024, time.February, 1)) {
		t.Errorf("anchor = %v on %s, want 110 on 2024-02-01", adj.LatestIndex, adj.LatestIndexDate)
	}
}

// The record joined to the index's last month must come out unchanged.
func TestAdjustToLatest_AnchorIdentity(t *testing.T) {
	adj, err := AdjustToLatest(nominalFixture(), indexFixture())
	if err != nil {
		t.Fatalf("AdjustToLatest: %v", err)
	}
	for _, r := range adj.Records {
		if r.Index != adj.LatestIndex {
			continue
		}
		if rel := math.Abs(r.Adjusted-r.Nominal) / r.Nominal; rel > 1e-9 {
			t.Errorf("record on %s: adjusted %v != nominal %v (rel %v)", r.Date.Format("2006-01-02"), r.Adjusted, r.Nominal, rel)
		}
	}
}

// The adjustment is a ratio to the index's own latest value, so re-basing the
// whole index leaves every adjusted value unchanged.
func TestAdjustToLatest_IndexScaleInvariance(t *testing.T) {
	base, err := AdjustToLatest(nominalFixture(), indexFixture())
	if err != nil {
		t.Fatalf("AdjustToLatest: %v", err)
	}

	for _, k := range []float64{0.01, 3, 1000} {
		scaled := indexFixture()
		scaled.Series = scaled.Series.Scale(k)
		got, err := AdjustToLatest(nominalFixture(), scaled)
		if err != nil {
			t.Fatalf("AdjustToLatest with k=%v: %v", k, err)
		}
		for i := range base.Records {
			b, g := base.Records[i].Adjusted, got.Records[i].Adjusted
			if math.Abs(g-b) > 1e-9*b {
				t.Errorf("k=%v record %d: adjusted %v, want %v", k, i, g, b)
			}
		}
	}
}

func TestAdjustToLatest_DropsLeadingRows(t *testing.T) {
	nominal := NominalSeries{Series: NewSeries(
		Observation{Date: day(2023, time.June, 1), Value: 500}, // before all index months
		Observation{Date: day(2024, time.February, 10), Value: 820},
	)}

	adj, err := AdjustToLatest(nominal, indexFixture())
	if err != nil {
		t.Fatalf("AdjustToLatest: %v", err)
	}
	if len(adj.Records) != 1 {
		t.Fatalf("records = %d, want 1 (leading row silently dropped)", len(adj.Records))
	}
	if !adj.Records[0].Date.Equal(day(2024, time.February, 10)) {
		t.Errorf("surviving record on %s", adj.Records[0].Date)
	}
}

func TestAdjustToLatest_NoOverlap(t *testing.T) {
	nominal := NominalSeries{Series: NewSeries(
		Observation{Date: day(2023, time.June, 1), Value: 500},
		Observation{Date: day(2023, time.July, 1), Value: 510},
	)}

	_, err := AdjustToLatest(nominal, indexFixture())
	if !errors.Is(err, ErrNoOverlap) {
		t.Errorf("error = %v, want ErrNoOverlap", err)
	}

	_, err = AdjustToLatest(nominalFixture(), IndexSeries{})
	if !errors.Is(err, ErrNoOverlap) {
		t.Errorf("empty index error = %v, want ErrNoOverlap", err)
	}
}

func TestAdjustToLatest_DataIntegrity(t *testing.T) {
	// A non-positive index value cannot come out of NewSeries; build the
	// series by hand to simulate a broken upstream.
	broken := IndexSeries{Series: Series{
		{Date: day(2024, time.January, 1), Value: -100},
		{Date: day(2024, time.February, 1), Value: 110},
	}}

	_, err := AdjustToLatest(nominalFixture(), broken)
	if !errors.Is(err, ErrDataIntegrity) {
		t.Errorf("error = %v, want ErrDataIntegrity", err)
	}
}

func TestAdjustToLatest_SynthesizedFlagCarries(t *testing.T) {
	idx := indexFixture()
	idx.SynthesizedFrom = day(2024, time.February, 1)

	adj, err := AdjustToLatest(nominalFixture(), idx)
	if err != nil {
		t.Fatalf("AdjustToLatest: %v", err)
	}
	if adj.Records[0].Synthesized {
		t.Error("January record flagged synthesized")
	}
	if !adj.Records[1].Synthesized || !adj.Records[2].Synthesized {
		t.Error("records joined to the synthesized month not flagged")
	}
}
