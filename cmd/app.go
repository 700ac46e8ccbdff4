// Package cmd implements the CLI application around the adjustment pipeline.
package cmd

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/google/subcommands"
	"github.com/rs/zerolog"

	"github.com/ncasas/mepreal"
)

// Register the subcommands.
// A main package calls Register() to declare them, and Execute() runs the
// user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&chartCmd{}, "reports")
	c.Register(&tableCmd{}, "reports")
	c.Register(&publishCmd{}, "reports")
	c.Register(&commentCmd{}, "reports")

	c.Register(&checkCmd{}, "diagnostics")
}

// As a CLI application the process is very short lived, so package-level
// shared flags are fine.
var verbose = flag.Bool("v", false, "log every pipeline step")

// logger builds the process logger. The default level only surfaces
// fallbacks and failures; -v shows every fetch and stage.
func logger() zerolog.Logger {
	level := zerolog.InfoLevel
	if *verbose {
		level = zerolog.DebugLevel
	}
	w := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}

// loadSettings reads the MEP_* environment configuration.
func loadSettings() (mepreal.Settings, error) {
	s, err := mepreal.LoadSettings()
	if err != nil {
		return mepreal.Settings{}, fmt.Errorf("read configuration: %w", err)
	}
	return s, nil
}

// fail prints the error and maps it to an exit status.
func fail(err error) subcommands.ExitStatus {
	fmt.Fprintln(os.Stderr, "Error:", err)
	return subcommands.ExitFailure
}
