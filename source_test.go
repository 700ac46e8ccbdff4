package mepreal

import (
	"context"
	"errors"
	"testing"
	"time"
)

// fakeSource serves a canned series or a canned error.
type fakeSource struct {
	name   string
	series Series
	err    error
	calls  int
}

func (f *fakeSource) Name() string { return f.name }

func (f *fakeSource) Fetch(context.Context) (Series, error) {
	f.calls++
	return f.series, f.err
}

func someSeries(t *testing.T) Series {
	t.Helper()
	s := NewSeries(
		Observation{Date: day(2024, time.January, 1), Value: 800},
		Observation{Date: day(2024, time.February, 1), Value: 820},
	)
	if s.Len() == 0 {
		t.Fatal("fixture series is empty")
	}
	return s
}

func TestSourceChain_PrimaryServes(t *testing.T) {
	primary := &fakeSource{name: "primary", series: someSeries(t)}
	fallback := &fakeSource{name: "fallback", series: someSeries(t)}
	chain := SourceChain{Primary: primary, Fallback: fallback}

	s, origin, err := chain.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if s.Len() != 2 {
		t.Errorf("series length = %d, want 2", s.Len())
	}
	if origin.Source != "primary" || origin.Fallback {
		t.Errorf("origin = %+v, want primary without fallback flag", origin)
	}
	if fallback.calls != 0 {
		t.Errorf("fallback was called %d times on a healthy primary", fallback.calls)
	}
}

func TestSourceChain_FallbackServes(t *testing.T) {
	primary := &fakeSource{name: "primary", err: ErrSourceUnavailable}
	fallback := &fakeSource{name: "fallback", series: someSeries(t)}
	chain := SourceChain{Primary: primary, Fallback: fallback}

	s, origin, err := chain.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if origin.Source != "fallback" || !origin.Fallback {
		t.Errorf("origin = %+v, want fallback flagged", origin)
	}

	// The chain's output is exactly what the fallback alone would produce.
	alone, _, err := SourceChain{Primary: fallback}.Fetch(context.Background())
	if err != nil {
		t.Fatalf("fallback alone: %v", err)
	}
	if s.Len() != alone.Len() {
		t.Fatalf("chained length %d != fallback-only length %d", s.Len(), alone.Len())
	}
	for i := range s {
		if s[i] != alone[i] {
			t.Errorf("record %d: chained %+v != fallback-only %+v", i, s[i], alone[i])
		}
	}
}

func TestSourceChain_EmptyPrimaryFallsBack(t *testing.T) {
	// A source that "succeeds" with zero rows is as useless as a failed one.
	primary := &fakeSource{name: "primary"}
	fallback := &fakeSource{name: "fallback", series: someSeries(t)}

	_, origin, err := SourceChain{Primary: primary, Fallback: fallback}.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if !origin.Fallback {
		t.Error("empty primary did not engage the fallback")
	}
}

func TestSourceChain_BothFail(t *testing.T) {
	primary := &fakeSource{name: "primary", err: ErrSourceUnavailable}
	fallback := &fakeSource{name: "fallback", err: ErrNoData}

	_, _, err := SourceChain{Primary: primary, Fallback: fallback}.Fetch(context.Background())
	if err == nil {
		t.Fatal("Fetch succeeded with both sources down")
	}
	// Both causes stay visible through the joined error.
	if !errors.Is(err, ErrSourceUnavailable) {
		t.Errorf("error %v does not carry the primary's cause", err)
	}
	if !errors.Is(err, ErrNoData) {
		t.Errorf("error %v does not carry the fallback's cause", err)
	}
}

func TestSourceChain_NoFallbackIsMandatory(t *testing.T) {
	primary := &fakeSource{name: "primary", err: ErrSourceUnavailable}

	_, _, err := SourceChain{Primary: primary}.Fetch(context.Background())
	if !errors.Is(err, ErrSourceUnavailable) {
		t.Errorf("error = %v, want the primary's failure propagated", err)
	}
	var ferr *FetchError
	if !errors.As(err, &ferr) || ferr.Source != "primary" {
		t.Errorf("error %v does not name the failing source", err)
	}
}

func TestStaticSource(t *testing.T) {
	src := StaticSource{Label: "uscpi", Points: []Observation{
		{Date: day(2024, time.February, 1), Value: 310.326},
		{Date: day(2024, time.January, 1), Value: 308.417},
	}}
	if src.Name() != "uscpi" {
		t.Errorf("Name() = %q", src.Name())
	}
	s, err := src.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if s.Len() != 2 || !s[0].Date.Equal(day(2024, time.January, 1)) {
		t.Errorf("static series not sorted: %+v", s)
	}

	if _, err := (StaticSource{Label: "empty"}).Fetch(context.Background()); !errors.Is(err, ErrNoData) {
		t.Errorf("empty table error = %v, want ErrNoData", err)
	}
}
