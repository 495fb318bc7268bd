// Package demo provides a walk-through of the library operations.
package demo

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/agentstation/bookshelf/cmd/application"
	"github.com/agentstation/bookshelf/internal/cmd/output"
	"github.com/agentstation/bookshelf/pkg/errors"
	"github.com/agentstation/bookshelf/pkg/library"
)

// Seed data for the walk-through.
var (
	seedBooks = []library.Book{
		library.NewBook("The Great Gatsby", "F. Scott Fitzgerald", "1234567890"),
		library.NewBook("1984", "George Orwell", "1234567891"),
	}
	seedUsers = []library.User{
		library.NewUser("Alice", "001"),
		library.NewUser("Bob", "002"),
	}
)

// Report collects the results of each step.
type Report struct {
	Borrow               library.Outcome `json:"borrow" yaml:"borrow"`
	AvailableAfterBorrow bool            `json:"availableAfterBorrow" yaml:"availableAfterBorrow"`
	Return               library.Outcome `json:"return" yaml:"return"`
	AvailableAfterReturn bool            `json:"availableAfterReturn" yaml:"availableAfterReturn"`
	BookSearch           []library.Book  `json:"bookSearch" yaml:"bookSearch"`
	UserSearch           []library.User  `json:"userSearch" yaml:"userSearch"`
}

// NewCommand creates the demo command.
func NewCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:     "demo",
		GroupID: "management",
		Short:   "Seed sample data and walk through a borrow and return",
		Long: `Demo adds two books and two users to the configured store (skipping
any that already exist), lends "The Great Gatsby" to Alice, checks its
availability, takes it back, checks again, and finally searches for
"1984" and for "Alice".`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			lib, err := app.Library()
			if err != nil {
				return err
			}

			report, err := Run(cmd.Context(), lib)
			if err != nil {
				return err
			}

			format := output.DetectFormat(app.OutputFormat())
			if format != output.FormatTable {
				return output.NewFormatter(format).Format(cmd.OutOrStdout(), report)
			}
			return printReport(cmd.OutOrStdout(), report)
		},
	}
}

// Run seeds the library and performs the walk-through.
func Run(ctx context.Context, lib *library.Library) (*Report, error) {
	for _, b := range seedBooks {
		if err := lib.AddBook(ctx, b); err != nil && !errors.IsAlreadyExists(err) {
			return nil, err
		}
	}
	for _, u := range seedUsers {
		if err := lib.AddUser(ctx, u); err != nil && !errors.IsAlreadyExists(err) {
			return nil, err
		}
	}

	gatsby := seedBooks[0].ISBN
	alice := seedUsers[0].ID
	report := &Report{}

	var err error
	if report.Borrow, err = lib.BorrowBook(ctx, alice, gatsby); err != nil {
		return nil, err
	}
	report.AvailableAfterBorrow = lib.IsBookAvailable(gatsby)

	if report.Return, err = lib.ReturnBook(ctx, alice, gatsby); err != nil {
		return nil, err
	}
	report.AvailableAfterReturn = lib.IsBookAvailable(gatsby)

	report.BookSearch = lib.SearchBook("1984")
	report.UserSearch = lib.SearchUser("Alice")

	return report, nil
}

func printReport(w io.Writer, r *Report) error {
	fmt.Fprintf(w, "borrow %s %s: %s\n", r.Borrow.UserID, r.Borrow.ISBN, r.Borrow)
	fmt.Fprintf(w, "available %s: %t\n", r.Borrow.ISBN, r.AvailableAfterBorrow)
	fmt.Fprintf(w, "return %s %s: %s\n", r.Return.UserID, r.Return.ISBN, r.Return)
	fmt.Fprintf(w, "available %s: %t\n", r.Return.ISBN, r.AvailableAfterReturn)

	fmt.Fprintln(w, "\nbooks matching \"1984\":")
	if err := output.FormatBooks(w, string(output.FormatTable), r.BookSearch); err != nil {
		return err
	}
	fmt.Fprintln(w, "\nusers matching \"Alice\":")
	return output.FormatUsers(w, string(output.FormatTable), r.UserSearch)
}
