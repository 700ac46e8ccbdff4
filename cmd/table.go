package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"

	"github.com/ncasas/mepreal/render"
)

type tableCmd struct {
	source    string
	index     string
	highlight string
	rows      int
	plain     bool
	pretty    bool
}

func (*tableCmd) Name() string { return "table" }

func (*tableCmd) Synopsis() string {
	return "run the pipeline and print the adjusted series as a table"
}

func (*tableCmd) Usage() string {
	return `table [-source quote|bond|equity] [-index ipc|uscpi] [-n <rows>]:
  Prints the adjusted series as a markdown report. Use -pretty for a
  terminal rendering, -plain for raw numbers.
`
}

func (c *tableCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.source, "source", "bond", "nominal rate source: quote, bond or equity")
	f.StringVar(&c.index, "index", "ipc", "price index: ipc or uscpi")
	f.StringVar(&c.highlight, "highlight", "", "summarize the period from this date (YYYY-MM-DD)")
	f.IntVar(&c.rows, "n", 0, "print only the most recent rows (0 = all)")
	f.BoolVar(&c.plain, "plain", false, "print raw numbers instead of formatted amounts")
	f.BoolVar(&c.pretty, "pretty", false, "render the markdown for the terminal")
}

func (c *tableCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	md := render.Markdown(adj, render.ReportOptions{
		HighlightFrom: from,
		MaxRows:       c.rows,
		Plain:         c.plain,
	})
	if c.pretty {
		out, err := render.ANSI(md)
		if err != nil {
			return fail(err)
		}
		md = out
	}
	fmt.Print(md)
	return subcommands.ExitSuccess
}
