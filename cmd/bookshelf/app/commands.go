package app

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/bookshelf/cmd/bookshelf/cmd/book"
	"github.com/agentstation/bookshelf/cmd/bookshelf/cmd/completion"
	"github.com/agentstation/bookshelf/cmd/bookshelf/cmd/demo"
	"github.com/agentstation/bookshelf/cmd/bookshelf/cmd/lending"
	"github.com/agentstation/bookshelf/cmd/bookshelf/cmd/serve"
	"github.com/agentstation/bookshelf/cmd/bookshelf/cmd/user"
)

// NewBookCommand creates the book command with app dependencies.
func (a *App) NewBookCommand() *cobra.Command {
	return book.NewCommand(a)
}

// NewUserCommand creates the user command with app dependencies.
func (a *App) NewUserCommand() *cobra.Command {
	return user.NewCommand(a)
}

// NewBorrowCommand creates the borrow command with app dependencies.
func (a *App) NewBorrowCommand() *cobra.Command {
	return lending.NewBorrowCommand(a)
}

// NewReturnCommand creates the return command with app dependencies.
func (a *App) NewReturnCommand() *cobra.Command {
	return lending.NewReturnCommand(a)
}

// NewAvailableCommand creates the available command with app dependencies.
func (a *App) NewAvailableCommand() *cobra.Command {
	return lending.NewAvailableCommand(a)
}

// NewServeCommand creates the serve command with app dependencies.
func (a *App) NewServeCommand() *cobra.Command {
	return serve.NewCommand(a)
}

// NewDemoCommand creates the demo command with app dependencies.
func (a *App) NewDemoCommand() *cobra.Command {
	return demo.NewCommand(a)
}

// NewCompletionCommand creates the shell completion command.
func (a *App) NewCompletionCommand() *cobra.Command {
	return completion.NewCommand()
}

// NewVersionCommand creates the version command.
func (a *App) NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Printf("bookshelf %s\n", a.Version())
			if a.config.Verbose {
				cmd.Printf("  commit:   %s\n", a.Commit())
				cmd.Printf("  built:    %s\n", a.Date())
				cmd.Printf("  built by: %s\n", a.BuiltBy())
			}
		},
	}
}
