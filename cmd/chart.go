package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/ncasas/mepreal/render"
)

type chartCmd struct {
	source    string
	index     string
	out       string
	highlight string
	nominal   bool
	width     int
	height    int
}

func (*chartCmd) Name() string { return "chart" }

func (*chartCmd) Synopsis() string {
	return "run the pipeline and write the adjusted series as a PNG chart"
}

func (*chartCmd) Usage() string {
	return `chart [-source quote|bond|equity] [-index ipc|uscpi] [-o <file>]:
  Fetches the nominal rate and the price index, adjusts the series to the
  latest index value and renders it as a line chart with the recent period
  highlighted.
`
}

func (c *chartCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.source, "source", "bond", "nominal rate source: quote, bond or equity")
	f.StringVar(&c.index, "index", "ipc", "price index: ipc or uscpi")
	f.StringVar(&c.out, "o", "mep.png", "output file")
	f.StringVar(&c.highlight, "highlight", "", "highlight the period from this date (YYYY-MM-DD)")
	f.BoolVar(&c.nominal, "nominal", false, "overlay the unadjusted series")
	f.IntVar(&c.width, "width", 0, "chart width in pixels")
	f.IntVar(&c.height, "height", 0, "chart height in pixels")
}

func (c *chartCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	png, err := render.Chart(adj, render.ChartOptions{
		Width:         c.width,
		Height:        c.height,
		HighlightFrom: from,
		ShowNominal:   c.nominal,
	})
	if err != nil {
		return fail(err)
	}
	if err := os.WriteFile(c.out, png, 0644); err != nil {
		return fail(err)
	}

	fmt.Printf("Wrote %s (%d records, last %s)\n", c.out, len(adj.Records), adj.Last().Date.Format("2006-01-02"))
	return subcommands.ExitSuccess
}
