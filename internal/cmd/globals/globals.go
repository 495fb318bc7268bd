// Package globals defines the flags shared by every bookshelf command.
package globals

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/bookshelf/pkg/errors"
)

// Flags are the persistent flags registered on the root command.
type Flags struct {
	Output   string
	Quiet    bool
	Verbose  bool
	NoColor  bool
	LogLevel string
}

// AddFlags registers the persistent flags on cmd.
func AddFlags(cmd *cobra.Command) *Flags {
	f := &Flags{}
	pf := cmd.PersistentFlags()

	pf.StringVarP(&f.Output, "output", "o", "", "Output format: table, json, yaml")
	pf.StringVar(&f.Output, "format", "", "")
	_ = pf.MarkHidden("format") // alias of --output

	pf.BoolVarP(&f.Quiet, "quiet", "q", false, "Minimal output (shortcut for --log-level=warn)")
	pf.BoolVarP(&f.Verbose, "verbose", "v", false, "Verbose output (shortcut for --log-level=debug)")
	pf.BoolVar(&f.NoColor, "no-color", false, "Disable colored output")
	pf.StringVar(&f.LogLevel, "log-level", "", "Log level: trace, debug, info, warn, error (overrides -v/-q)")
	return f
}

// Parse reads the persistent flags from the root of cmd's tree, so any
// subcommand can call it.
func Parse(cmd *cobra.Command) (*Flags, error) {
	pf := cmd.Root().PersistentFlags()

	var f Flags
	var errs []error
	str := func(name string, dst *string) {
		v, err := pf.GetString(name)
		*dst = v
		errs = append(errs, err)
	}
	boolean := func(name string, dst *bool) {
		v, err := pf.GetBool(name)
		*dst = v
		errs = append(errs, err)
	}
	str("output", &f.Output)
	boolean("quiet", &f.Quiet)
	boolean("verbose", &f.Verbose)
	boolean("no-color", &f.NoColor)
	str("log-level", &f.LogLevel)

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return &f, nil
}
