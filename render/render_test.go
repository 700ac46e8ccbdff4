package render

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/ncasas/mepreal"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func adjustedFixture() *mepreal.AdjustedSeries {
	return &mepreal.AdjustedSeries{
		Records: []mepreal.AdjustedRecord{
			{Date: day(2024, time.January, 2), Nominal: 800, Index: 100, Adjusted: 880},
			{Date: day(2024, time.February, 1), Nominal: 820, Index: 110, Adjusted: 820},
			{Date: day(2024, time.April, 16), Nominal: 900, Index: 110, Adjusted: 900, Synthesized: true},
		},
		LatestIndex:     110,
		LatestIndexDate: day(2024, time.February, 1),
		Method:          mepreal.BondRatio,
		Provenance:      mepreal.Provenance{Sources: []string{"data912:arg_bonds/AL30", "data912:arg_bonds/AL30D"}},
		IndexOrigin:     mepreal.Origin{Source: "datosgobar:ipc"},
	}
}

func TestMarkdown(t *testing.T) {
	md := Markdown(adjustedFixture(), ReportOptions{HighlightFrom: day(2024, time.April, 15)})

	// The last-IPC note carries the Spanish month name.
	if !strings.Contains(md, "Último dato de IPC corresponde a febrero de 2024") {
		t.Errorf("missing or wrong last-IPC note in:\n%s", md)
	}
	if !strings.Contains(md, "data912:arg_bonds/AL30") || !strings.Contains(md, "datosgobar:ipc") {
		t.Error("sources not reported")
	}
	if got, want := strings.Count(md, "\n| 2024-"), 3; got != want {
		t.Errorf("table rows = %d, want %d", got, want)
	}
	// The synthesized row is marked and explained.
	if !strings.Contains(md, "†") {
		t.Error("synthesized index value not marked")
	}
	if strings.Contains(md, "respaldo") {
		t.Error("fallback note present without any fallback")
	}
}

func TestMarkdown_Plain(t *testing.T) {
	md := Markdown(adjustedFixture(), ReportOptions{Plain: true})
	if !strings.Contains(md, "| 900.00 |") {
		t.Errorf("plain report should print raw numbers, got:\n%s", md)
	}
}

func TestMarkdown_MaxRows(t *testing.T) {
	md := Markdown(adjustedFixture(), ReportOptions{MaxRows: 1})
	if got, want := strings.Count(md, "\n| 2024-"), 1; got != want {
		t.Errorf("table rows = %d, want %d", got, want)
	}
	if !strings.Contains(md, "| 2024-04-16 |") {
		t.Error("truncation did not keep the most recent row")
	}
}

func TestMarkdown_FallbackNote(t *testing.T) {
	adj := adjustedFixture()
	adj.IndexOrigin.Fallback = true
	md := Markdown(adj, ReportOptions{})
	if !strings.Contains(md, "respaldo") {
		t.Error("fallback note missing")
	}
}

func TestChart(t *testing.T) {
	png, err := Chart(adjustedFixture(), ChartOptions{HighlightFrom: day(2024, time.April, 15), ShowNominal: true})
	if err != nil {
		t.Fatalf("Chart: %v", err)
	}
	if !bytes.HasPrefix(png, []byte("\x89PNG")) {
		t.Errorf("output does not look like a PNG (starts with % x)", png[:4])
	}
}

func TestChart_NeedsTwoRecords(t *testing.T) {
	adj := adjustedFixture()
	adj.Records = adj.Records[:1]
	if _, err := Chart(adj, ChartOptions{}); err == nil {
		t.Error("Chart accepted a single record")
	}
}

func TestPage(t *testing.T) {
	page, err := Page(adjustedFixture(), "chart.png", ReportOptions{})
	if err != nil {
		t.Fatalf("Page: %v", err)
	}
	html := string(page)

	for _, want := range []string{
		"<!DOCTYPE html>",
		`<img src="chart.png"`,
		"<table>",
		"febrero de 2024",
		"datosgobar:ipc",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("page missing %q", want)
		}
	}
	// The table must come after the chart image.
	if strings.Index(html, "<table>") < strings.Index(html, "<img") {
		t.Error("table rendered above the chart")
	}
}
