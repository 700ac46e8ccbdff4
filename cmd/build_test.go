package cmd

import (
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/ncasas/mepreal"
)

func testSettings(t *testing.T) mepreal.Settings {
	t.Helper()
	s, err := mepreal.LoadSettings()
	if err != nil {
		t.Fatalf("LoadSettings: %v", err)
	}
	return s
}

func TestNewComposer_Strategies(t *testing.T) {
	s := testSettings(t)
	p := newProviders(s, zerolog.Nop())

	tests := []struct {
		source   string
		method   mepreal.Method
		fallback bool // the composer carries a fallback on some leg
		scaled   bool
	}{
		{"quote", mepreal.DirectQuote, true, false},
		{"bond", mepreal.BondRatio, false, false},
		{"equity", mepreal.EquityRatio, true, true},
	}
	for _, tc := range tests {
		t.Run(tc.source, func(t *testing.T) {
			c, err := newComposer(p, s, tc.source, zerolog.Nop())
			if err != nil {
				t.Fatalf("newComposer: %v", err)
			}
			if c.Method != tc.method {
				t.Errorf("Method = %q, want %q", c.Method, tc.method)
			}
			hasFallback := c.Quote.Fallback != nil || c.Local.Fallback != nil || c.Foreign.Fallback != nil
			if hasFallback != tc.fallback {
				t.Errorf("fallback wired = %v, want %v", hasFallback, tc.fallback)
			}
			if tc.scaled && c.Scale != s.ADRRatio {
				t.Errorf("Scale = %v, want %v", c.Scale, s.ADRRatio)
			}
			if tc.method != mepreal.DirectQuote && c.Band != s.Band() {
				t.Errorf("Band = %+v, want %+v", c.Band, s.Band())
			}
		})
	}

	if _, err := newComposer(p, s, "crypto", zerolog.Nop()); err == nil {
		t.Error("newComposer accepted an unknown source")
	}
}

func TestNewIndexer_Strategies(t *testing.T) {
	s := testSettings(t)
	p := newProviders(s, zerolog.Nop())

	ipc, err := newIndexer(p, s, "ipc", zerolog.Nop())
	if err != nil {
		t.Fatalf("newIndexer(ipc): %v", err)
	}
	if ipc.Chain.Fallback == nil {
		t.Error("ipc indexer has no fallback source")
	}
	if len(ipc.GapFill) == 0 {
		t.Error("ipc indexer carries no gap-fill table")
	}

	uscpi, err := newIndexer(p, s, "uscpi", zerolog.Nop())
	if err != nil {
		t.Fatalf("newIndexer(uscpi): %v", err)
	}
	if uscpi.Chain.Primary.Name() != "uscpi" {
		t.Errorf("uscpi primary = %q", uscpi.Chain.Primary.Name())
	}
	if len(uscpi.GapFill) != 0 {
		t.Error("uscpi indexer must not gap-fill")
	}

	if _, err := newIndexer(p, s, "ipc-core", zerolog.Nop()); err == nil {
		t.Error("newIndexer accepted an unknown index")
	}
}

func TestHighlightDate(t *testing.T) {
	s := testSettings(t)

	got, err := highlightDate(s, "")
	if err != nil {
		t.Fatalf("highlightDate: %v", err)
	}
	if want := time.Date(2024, time.April, 15, 0, 0, 0, 0, time.UTC); !got.Equal(want) {
		t.Errorf("default highlight = %s, want %s", got, want)
	}

	got, err = highlightDate(s, "2025-01-02")
	if err != nil {
		t.Fatalf("highlightDate with override: %v", err)
	}
	if want := time.Date(2025, time.January, 2, 0, 0, 0, 0, time.UTC); !got.Equal(want) {
		t.Errorf("override highlight = %s, want %s", got, want)
	}

	if _, err := highlightDate(s, "not-a-date"); err == nil {
		t.Error("highlightDate accepted garbage")
	}
}

func TestCheckedSources_AreDistinct(t *testing.T) {
	s := testSettings(t)
	sources := checkedSources(newProviders(s, zerolog.Nop()), s)

	seen := map[string]bool{}
	for _, src := range sources {
		if seen[src.Name()] {
			t.Errorf("source %q listed twice", src.Name())
		}
		seen[src.Name()] = true
	}
	if len(sources) < 8 {
		t.Errorf("only %d sources probed, expected the full provider set", len(sources))
	}
}
