package app

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/agentstation/bookshelf/internal/cmd/globals"
	"github.com/agentstation/bookshelf/internal/cmd/output"
)

// Execute runs the CLI with args.
func (a *App) Execute(ctx context.Context, args []string) error {
	rootCmd := a.createRootCommand()
	rootCmd.SetArgs(args)
	return rootCmd.ExecuteContext(ctx)
}

func (a *App) createRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "bookshelf",
		Short:   "Lending library catalog manager",
		Version: a.Version(),
		Long: `Bookshelf manages a small lending library: a catalog of books,
a roster of users, and the borrowing and returning of books.

Both collections are persisted after every change, by default as
JSON files under ./data. Postgres, Redis and in-memory stores can be
selected with --store.`,
		PersistentPreRunE: a.setupCommand,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}

	rootCmd.AddGroup(
		&cobra.Group{ID: "core", Title: "Core Commands:"},
		&cobra.Group{ID: "management", Title: "Management Commands:"},
	)

	globals.AddFlags(rootCmd)
	rootCmd.PersistentFlags().String("config", "", "config file (default is $HOME/.bookshelf.yaml)")
	rootCmd.PersistentFlags().String("store", "", "store URL: file://dir, memory://, postgres://..., redis://... (default file://data)")
	rootCmd.PersistentFlags().String("store-format", "", "collection format: json, yaml (default json)")

	rootCmd.SetVersionTemplate("bookshelf {{.Version}}\n")

	a.registerCommands(rootCmd)

	return rootCmd
}

// setupCommand applies --config, the global flags and the store flags,
// then rebuilds the logger.
func (a *App) setupCommand(cmd *cobra.Command, _ []string) error {
	if path := mustGetString(cmd, "config"); path != "" {
		config, err := LoadConfigFile(path)
		if err != nil {
			return err
		}
		a.config = config
	}

	flags, err := globals.Parse(cmd)
	if err != nil {
		return err
	}
	if _, err := output.ParseFormat(flags.Output); err != nil {
		return err
	}
	a.config.UpdateFromFlags(flags)

	// unset store flags keep the configured values
	if cmd.Flags().Changed("store") {
		a.config.Store = mustGetString(cmd, "store")
	}
	if cmd.Flags().Changed("store-format") {
		a.config.StoreFormat = mustGetString(cmd, "store-format")
	}

	logger := NewLogger(a.config)
	a.logger = &logger

	return nil
}

func (a *App) registerCommands(rootCmd *cobra.Command) {
	rootCmd.AddCommand(
		a.NewBookCommand(),
		a.NewUserCommand(),
		a.NewBorrowCommand(),
		a.NewReturnCommand(),
		a.NewAvailableCommand(),
		a.NewServeCommand(),
		a.NewDemoCommand(),
		a.NewCompletionCommand(),
		a.NewVersionCommand(),
	)
}

// ExitOnError prints a non-nil err and exits with status 1.
func ExitOnError(err error) {
	if err == nil {
		return
	}
	fmt.Fprintln(os.Stderr, "Error:", err)
	os.Exit(1)
}

// mustGetString reads a string flag registered by createRootCommand.
func mustGetString(cmd *cobra.Command, name string) string {
	v, err := cmd.Flags().GetString(name)
	if err != nil {
		panic(fmt.Sprintf("flag %s: %v", name, err))
	}
	return v
}
