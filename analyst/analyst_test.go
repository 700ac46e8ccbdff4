package analyst

import (
	"strings"
	"testing"
	"time"

	"github.com/ncasas/mepreal"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestDigest(t *testing.T) {
	adj := &mepreal.AdjustedSeries{
		Records: []mepreal.AdjustedRecord{
			{Date: day(2024, time.January, 2), Nominal: 800, Index: 100, Adjusted: 880},
			{Date: day(2024, time.February, 1), Nominal: 820, Index: 110, Adjusted: 820},
			{Date: day(2024, time.April, 16), Nominal: 900, Index: 110, Adjusted: 900},
		},
		LatestIndex:     110,
		LatestIndexDate: day(2024, time.February, 1),
		Method:          mepreal.BondRatio,
	}

	got := Digest(adj, day(2024, time.April, 15))

	for _, want := range []string{
		"3 observaciones de 2024-01-02 a 2024-04-16",
		"Último dato de IPC: 2024-02",
		"900 nominal, 900 ajustado",
		"Mínimo histórico ajustado: 820 (2024-02-01)",
		"Máximo: 900 (2024-04-16)",
		"desde 2024-04-15, 1 ruedas",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("digest missing %q in:\n%s", want, got)
		}
	}
}

func TestDigest_NoHighlight(t *testing.T) {
	adj := &mepreal.AdjustedSeries{
		Records: []mepreal.AdjustedRecord{
			{Date: day(2024, time.January, 2), Adjusted: 880, Nominal: 800},
			{Date: day(2024, time.February, 1), Adjusted: 820, Nominal: 820},
		},
		LatestIndexDate: day(2024, time.February, 1),
		Method:          mepreal.DirectQuote,
	}
	got := Digest(adj, time.Time{})
	if strings.Contains(got, "Período reciente") {
		t.Errorf("digest mentions a recent period without a highlight date:\n%s", got)
	}
}
