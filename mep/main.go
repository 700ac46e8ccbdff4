// Command mep renders the historical MEP dollar series in constant pesos.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"

	"github.com/ncasas/mepreal/cmd"
)

func main() {
	completion()

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	cmd.Register(commander)

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}

// completion registers shell completion and exits early when invoked by the
// shell's completion hook.
func completion() {
	strategy := map[string]complete.Predictor{
		"source":    predict.Set{"quote", "bond", "equity"},
		"index":     predict.Set{"ipc", "uscpi"},
		"highlight": predict.Nothing,
	}
	c := &complete.Command{
		Sub: map[string]*complete.Command{
			"chart":   {Flags: strategy},
			"table":   {Flags: strategy},
			"publish": {Flags: strategy},
			"comment": {Flags: strategy},
			"check":   {},
		},
		Flags: map[string]complete.Predictor{"v": predict.Nothing},
	}
	c.Complete("mep")
}
