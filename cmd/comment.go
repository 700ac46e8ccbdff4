package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"
	"google.golang.org/genai"

	"github.com/ncasas/mepreal/analyst"
)

type commentCmd struct {
	source    string
	index     string
	highlight string
	digest    bool
}

func (*commentCmd) Name() string { return "comment" }

func (*commentCmd) Synopsis() string {
	return "ask the model for a short commentary on the adjusted series"
}

func (*commentCmd) Usage() string {
	return `comment [-source quote|bond|equity] [-index ipc|uscpi]:
  Runs the pipeline and asks Gemini for a brief written read of the series.
  Requires Gemini credentials in the environment (GEMINI_API_KEY or a
  configured Google Cloud project).
`
}

func (c *commentCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.source, "source", "bond", "nominal rate source: quote, bond or equity")
	f.StringVar(&c.index, "index", "ipc", "price index: ipc or uscpi")
	f.StringVar(&c.highlight, "highlight", "", "focus the commentary from this date (YYYY-MM-DD)")
	f.BoolVar(&c.digest, "digest", false, "print the numeric digest instead of asking the model")
}

func (c *commentCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	if c.digest {
		fmt.Print(analyst.Digest(adj, from))
		return subcommands.ExitSuccess
	}

	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		return fail(fmt.Errorf("initialize Gemini client (are credentials configured?): %w", err))
	}
	comment, err := analyst.Comment(ctx, client, settings.GeminiModel, adj, from)
	if err != nil {
		return fail(err)
	}
	fmt.Println(comment)
	return subcommands.ExitSuccess
}
