// Package lending provides the borrow, return and available commands.
package lending

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/agentstation/bookshelf/cmd/application"
	"github.com/agentstation/bookshelf/internal/cmd/completion"
	"github.com/agentstation/bookshelf/internal/cmd/output"
	"github.com/agentstation/bookshelf/internal/cmd/table"
	"github.com/agentstation/bookshelf/pkg/library"
)

// Status reports the availability of one ISBN.
type Status struct {
	ISBN         string               `json:"isbn" yaml:"isbn"`
	Availability library.Availability `json:"availability" yaml:"availability"`
}

// NewBorrowCommand creates the borrow command.
func NewBorrowCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:     "borrow <user-id> <isbn>",
		GroupID: "core",
		Short:   "Lend a book to a user",
		Long: `Borrow lends an available book to a registered user.

The command fails if the user or the book is unknown, or if the book
is already lent out.`,
		Example:           `  bookshelf borrow 001 1234567890`,
		Args:              cobra.ExactArgs(2),
		ValidArgsFunction: completion.UserThenISBN(app),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLending(cmd, app, args[0], args[1], (*library.Library).BorrowBook)
		},
	}
}

// NewReturnCommand creates the return command.
func NewReturnCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:     "return <user-id> <isbn>",
		GroupID: "core",
		Short:   "Take a book back from a user",
		Long: `Return takes a book back from the user who borrowed it.

The command fails if the user is unknown or has not borrowed the book.`,
		Example:           `  bookshelf return 001 1234567890`,
		Args:              cobra.ExactArgs(2),
		ValidArgsFunction: completion.UserThenISBN(app),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLending(cmd, app, args[0], args[1], (*library.Library).ReturnBook)
		},
	}
}

// NewAvailableCommand creates the available command.
func NewAvailableCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:               "available <isbn>",
		GroupID:           "core",
		Short:             "Check whether a book can be borrowed",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completion.ISBNs(app),
		RunE: func(cmd *cobra.Command, args []string) error {
			lib, err := app.Library()
			if err != nil {
				return err
			}
			status := Status{ISBN: args[0], Availability: lib.Availability(args[0])}
			tableData := table.Data{
				Headers: []string{"ISBN", "Availability"},
				Rows:    [][]string{{status.ISBN, status.Availability.String()}},
			}
			return output.Write(cmd.OutOrStdout(), app.OutputFormat(), status, tableData)
		},
	}
}

// lendingFunc matches the method expressions of BorrowBook and ReturnBook.
type lendingFunc func(*library.Library, context.Context, string, string) (library.Outcome, error)

// runLending prints the outcome and turns a rejection into a typed error.
func runLending(cmd *cobra.Command, app application.Application, userID, isbn string, fn lendingFunc) error {
	lib, err := app.Library()
	if err != nil {
		return err
	}

	outcome, err := fn(lib, cmd.Context(), userID, isbn)
	if err != nil {
		return err
	}
	if !outcome.OK() {
		return outcome.Err()
	}
	return output.FormatOutcome(cmd.OutOrStdout(), app.OutputFormat(), outcome)
}
