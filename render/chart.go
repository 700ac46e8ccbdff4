// Package render turns an adjusted series into its user-facing forms: a PNG
// chart, a markdown report, an ANSI terminal rendering and a standalone HTML
// page. Report text is Spanish, matching the audience of the series.
package render

import (
	"bytes"
	"fmt"
	"time"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/ncasas/mepreal"
)

// DefaultTitle labels the chart when the caller does not override it.
const DefaultTitle = "Dólar MEP a precios de hoy"

// ChartOptions configures the rendered chart.
type ChartOptions struct {
	Title  string
	Width  int // 900 when zero
	Height int // 500 when zero

	// HighlightFrom shades the recent period from this date on.
	HighlightFrom time.Time

	// ShowNominal overlays the unadjusted series as a dashed line.
	ShowNominal bool
}

// Chart renders the adjusted series as a PNG line chart: the adjusted value
// as the main line, with the recent period filled in red and, optionally, the
// nominal value dashed behind it. Returns raw PNG bytes.
func Chart(adj *mepreal.AdjustedSeries, opts ChartOptions) ([]byte, error) {
	if len(adj.Records) < 2 {
		return nil, fmt.Errorf("need at least 2 records, got %d", len(adj.Records))
	}
	if opts.Title == "" {
		opts.Title = DefaultTitle
	}
	if opts.Width == 0 {
		opts.Width = 900
	}
	if opts.Height == 0 {
		opts.Height = 500
	}

	xValues := make([]time.Time, len(adj.Records))
	adjustedY := make([]float64, len(adj.Records))
	nominalY := make([]float64, len(adj.Records))
	for i, r := range adj.Records {
		xValues[i] = r.Date
		adjustedY[i] = r.Adjusted
		nominalY[i] = r.Nominal
	}

	series := []chart.Series{
		chart.TimeSeries{
			Name: "MEP ajustado",
			Style: chart.Style{
				StrokeColor: drawing.ColorFromHex("00bfff"), // deep sky blue
				StrokeWidth: 2.5,
			},
			XValues: xValues,
			YValues: adjustedY,
		},
	}

	if opts.ShowNominal {
		series = append(series, chart.TimeSeries{
			Name: "MEP nominal",
			Style: chart.Style{
				StrokeColor:     drawing.ColorFromHex("9ca3af"),
				StrokeWidth:     1.5,
				StrokeDashArray: []float64{5.0, 3.0},
			},
			XValues: xValues,
			YValues: nominalY,
		})
	}

	if hx, hy := highlight(adj.Records, opts.HighlightFrom); len(hx) > 1 {
		crimson := drawing.Color{R: 220, G: 20, B: 60, A: 255}
		series = append(series, chart.TimeSeries{
			Name: "Período reciente",
			Style: chart.Style{
				StrokeColor: crimson.WithAlpha(128),
				StrokeWidth: 1.0,
				FillColor:   crimson.WithAlpha(51),
			},
			XValues: hx,
			YValues: hy,
		})
	}

	graph := chart.Chart{
		Title:  opts.Title,
		Width:  opts.Width,
		Height: opts.Height,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 10, Right: 20, Bottom: 10},
		},
		XAxis: chart.XAxis{
			TickPosition: chart.TickPositionBetweenTicks,
			ValueFormatter: func(v interface{}) string {
				if t, ok := v.(float64); ok {
					return chart.TimeFromFloat64(t).Format("2006-01")
				}
				return ""
			},
		},
		YAxis: chart.YAxis{
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return fmt.Sprintf("$%.0f", f)
				}
				return ""
			},
		},
		Series: series,
	}

	graph.Elements = []chart.Renderable{
		chart.LegendThin(&graph),
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("chart render failed: %w", err)
	}
	return buf.Bytes(), nil
}

// highlight returns the sub-range of records starting at from.
func highlight(records []mepreal.AdjustedRecord, from time.Time) ([]time.Time, []float64) {
	if from.IsZero() {
		return nil, nil
	}
	var xs []time.Time
	var ys []float64
	for _, r := range records {
		if r.Date.Before(from) {
			continue
		}
		xs = append(xs, r.Date)
		ys = append(ys, r.Adjusted)
	}
	return xs, ys
}
