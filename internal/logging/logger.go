// Package logging configures the structured logger shared by the CLI
// and its subcommands.
package logging

import (
	"github.com/willibrandon/mtlog"
	"github.com/willibrandon/mtlog/core"
	"github.com/willibrandon/mtlog/sinks"
)

// New creates a console-sink logger at the level implied by verbose and
// quiet (mutually weighted toward verbose: verbose wins if both are set).
func New(verbose, quiet bool) core.Logger {
	sink := sinks.NewConsoleSink()

	var opts []mtlog.Option
	opts = append(opts, mtlog.WithSink(sink))

	switch {
	case verbose:
		opts = append(opts, mtlog.WithMinimumLevel(core.DebugLevel))
	case quiet:
		opts = append(opts, mtlog.WithMinimumLevel(core.WarningLevel))
	default:
		opts = append(opts, mtlog.WithMinimumLevel(core.InformationLevel))
	}

	return mtlog.New(opts...)
}
