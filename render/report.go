package render

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/Rhymond/go-money"
	"github.com/charmbracelet/glamour"

	"github.com/ncasas/mepreal"
)

// ReportOptions configures the markdown report.
type ReportOptions struct {
	Title string

	// HighlightFrom marks the start of the recent period summarized above
	// the table.
	HighlightFrom time.Time

	// MaxRows truncates the table to the most recent rows. Zero keeps all.
	MaxRows int

	// Plain skips the money formatting and prints raw numbers, easier to
	// pipe into other tools.
	Plain bool
}

// Markdown renders the adjusted series as a report: a summary of the latest
// values, the note about the last index month, the data sources and the full
// table.
func Markdown(adj *mepreal.AdjustedSeries, opts ReportOptions) string {
	if opts.Title == "" {
		opts.Title = DefaultTitle
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", opts.Title)

	last := adj.Last()
	fmt.Fprintf(&b, "Último valor: %s nominal, %s a precios de %s (%s).\n\n",
		amount(last.Nominal, opts.Plain), amount(last.Adjusted, opts.Plain),
		monthName(adj.LatestIndexDate), last.Date.Format("2006-01-02"))

	if !opts.HighlightFrom.IsZero() {
		if lo, hi, ok := extremes(adj.Records, opts.HighlightFrom); ok {
			fmt.Fprintf(&b, "Desde %s el ajustado se movió entre %s y %s.\n\n",
				opts.HighlightFrom.Format("2006-01-02"), amount(lo, opts.Plain), amount(hi, opts.Plain))
		}
	}

	fmt.Fprintf(&b, "> Último dato de IPC corresponde a %s; los precios posteriores se ajustan con ese valor.\n\n",
		monthName(adj.LatestIndexDate))

	fmt.Fprintf(&b, "Fuentes: %s (%s); índice: %s.\n\n",
		strings.Join(adj.Provenance.Sources, ", "), adj.Method, adj.IndexOrigin.Source)
	if adj.Provenance.Fallback || adj.IndexOrigin.Fallback {
		b.WriteString("Nota: al menos una serie fue servida por su fuente de respaldo.\n\n")
	}

	records := adj.Records
	if opts.MaxRows > 0 && len(records) > opts.MaxRows {
		records = records[len(records)-opts.MaxRows:]
		fmt.Fprintf(&b, "Mostrando las últimas %d filas de %d.\n\n", len(records), len(adj.Records))
	}

	synthesized := false
	b.WriteString("| Fecha | MEP nominal | IPC | MEP ajustado |\n")
	b.WriteString("|---|---:|---:|---:|\n")
	for _, r := range records {
		mark := ""
		if r.Synthesized {
			mark = " †"
			synthesized = true
		}
		fmt.Fprintf(&b, "| %s | %s | %.2f%s | %s |\n",
			r.Date.Format("2006-01-02"), amount(r.Nominal, opts.Plain), r.Index, mark, amount(r.Adjusted, opts.Plain))
	}
	if synthesized {
		b.WriteString("\n† índice extendido con variaciones mensuales ya publicadas por el INDEC.\n")
	}
	return b.String()
}

// ANSI renders the markdown report for a terminal.
func ANSI(md string) (string, error) {
	return glamour.Render(md, "dark")
}

// amount formats a peso figure for the report.
func amount(v float64, plain bool) string {
	if plain {
		return fmt.Sprintf("%.2f", v)
	}
	return money.New(int64(math.Round(v*100)), money.ARS).Display()
}

// extremes returns the lowest and highest adjusted value from the given date.
func extremes(records []mepreal.AdjustedRecord, from time.Time) (lo, hi float64, ok bool) {
	for _, r := range records {
		if r.Date.Before(from) {
			continue
		}
		if !ok || r.Adjusted < lo {
			lo = r.Adjusted
		}
		if !ok || r.Adjusted > hi {
			hi = r.Adjusted
		}
		ok = true
	}
	return lo, hi, ok
}

var months = [...]string{
	"enero", "febrero", "marzo", "abril", "mayo", "junio",
	"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre",
}

// monthName spells a month in Spanish, "abril de 2024".
func monthName(t time.Time) string {
	return fmt.Sprintf("%s de %d", months[t.Month()-1], t.Year())
}
