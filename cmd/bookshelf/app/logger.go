package app

import (
	"fmt"
	"os"
	"slices"

	"github.com/rs/zerolog"

	"github.com/agentstation/bookshelf/pkg/logging"
)

var cliLogLevels = []string{"trace", "debug", "info", "warn", "error"}

// NewLogger builds the CLI logger from config. Debug and trace include
// the caller.
func NewLogger(config *Config) zerolog.Logger {
	level := determineLogLevel(config)
	return logging.NewLoggerFromConfig(&logging.Config{
		Level:     level,
		Format:    config.LogFormat,
		Output:    config.LogOutput,
		NoColor:   config.NoColor,
		AddCaller: level == "debug" || level == "trace",
	})
}

// determineLogLevel picks, in order: an explicit level (info when
// unrecognized), warn for --quiet (even with --verbose), debug for
// --verbose, then info.
func determineLogLevel(config *Config) string {
	switch {
	case config.LogLevel != "":
		if !slices.Contains(cliLogLevels, config.LogLevel) {
			fmt.Fprintf(os.Stderr, "Warning: invalid log level %q, using \"info\"\n", config.LogLevel)
			return "info"
		}
		return config.LogLevel
	case config.Quiet:
		if config.Verbose {
			fmt.Fprintln(os.Stderr, "Warning: both --verbose and --quiet specified, using --quiet")
		}
		return "warn"
	case config.Verbose:
		return "debug"
	default:
		return "info"
	}
}
