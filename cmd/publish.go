package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/subcommands"

	"github.com/ncasas/mepreal/render"
)

type publishCmd struct {
	source    string
	index     string
	outputDir string
	highlight string
	nominal   bool
}

func (*publishCmd) Name() string { return "publish" }

func (*publishCmd) Synopsis() string {
	return "run the pipeline and write a standalone HTML page with its chart"
}

func (*publishCmd) Usage() string {
	return `publish [-source quote|bond|equity] [-index ipc|uscpi] [-o <dir>]:
  Writes index.html and chart.png into the output directory, ready to be
  served as a static site.
`
}

func (c *publishCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.source, "source", "bond", "nominal rate source: quote, bond or equity")
	f.StringVar(&c.index, "index", "ipc", "price index: ipc or uscpi")
	f.StringVar(&c.outputDir, "o", "site", "output directory")
	f.StringVar(&c.highlight, "highlight", "", "highlight the period from this date (YYYY-MM-DD)")
	f.BoolVar(&c.nominal, "nominal", false, "overlay the unadjusted series on the chart")
}

func (c *publishCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	settings, err := loadSettings()
	if err != nil {
		return fail(err)
	}
	from, err := highlightDate(settings, c.highlight)
	if err != nil {
		return fail(err)
	}

	pipeline, err := newPipeline(settings, c.source, c.index, logger())
	if err != nil {
		return fail(err)
	}
	adj, err := pipeline.Run(ctx)
	if err != nil {
		return fail(err)
	}

	png, err := render.Chart(adj, render.ChartOptions{HighlightFrom: from, ShowNominal: c.nominal})
	if err != nil {
		return fail(err)
	}
	page, err := render.Page(adj, "chart.png", render.ReportOptions{HighlightFrom: from})
	if err != nil {
		return fail(err)
	}

	if err := os.MkdirAll(c.outputDir, 0755); err != nil {
		return fail(err)
	}
	if err := os.WriteFile(filepath.Join(c.outputDir, "chart.png"), png, 0644); err != nil {
		return fail(err)
	}
	if err := os.WriteFile(filepath.Join(c.outputDir, "index.html"), page, 0644); err != nil {
		return fail(err)
	}

	fmt.Printf("Published %s (%d records)\n", c.outputDir, len(adj.Records))
	return subcommands.ExitSuccess
}
