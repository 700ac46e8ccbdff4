package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"

	"github.com/google/subcommands"

	"github.com/ncasas/mepreal"
)

type checkCmd struct{}

func (*checkCmd) Name() string { return "check" }

func (*checkCmd) Synopsis() string { return "probe every configured data source" }

func (*checkCmd) Usage() string {
	return `check:
  Fetches from every configured source independently and reports, per
  source, whether it currently serves usable data. Useful to tell a broken
  provider from a broken pipeline.
`
}

func (*checkCmd) SetFlags(_ *flag.FlagSet) {}

func (c *checkCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	settings, err := loadSettings()
	if err != nil {
		return fail(err)
	}
	log := logger()

	// Each source is probed on its own: one provider being down must not
	// hide the state of the others.
	var failures error
	for _, src := range checkedSources(newProviders(settings, log), settings) {
		s, err := src.Fetch(ctx)
		if err != nil {
			fmt.Printf("FAIL %-40s %v\n", src.Name(), err)
			failures = errors.Join(failures, err)
			continue
		}
		first, _ := s.First()
		last, _ := s.Last()
		fmt.Printf("ok   %-40s %d observations, %s to %s\n",
			src.Name(), s.Len(), first.Date.Format("2006-01-02"), last.Date.Format("2006-01-02"))
	}

	if failures != nil {
		if errors.Is(failures, mepreal.ErrSourceFormat) {
			fmt.Println("\nAt least one provider changed its response format; the client needs updating.")
		}
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
