// Package book provides the book resource command and subcommands.
package book

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentstation/bookshelf/cmd/application"
	"github.com/agentstation/bookshelf/internal/cmd/completion"
	"github.com/agentstation/bookshelf/internal/cmd/globals"
	"github.com/agentstation/bookshelf/internal/cmd/output"
	"github.com/agentstation/bookshelf/internal/cmd/table"
	"github.com/agentstation/bookshelf/pkg/library"
)

// NewCommand creates the book resource command.
func NewCommand(app application.Application) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "book",
		Aliases: []string{"books"},
		GroupID: "core",
		Short:   "Manage the book catalog",
		Example: `  bookshelf book add --title 1984 --author "George Orwell" --isbn 1234567891
  bookshelf book list
  bookshelf book search orwell
  bookshelf book show 1234567891
  bookshelf book remove 1234567891`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(newAddCommand(app))
	cmd.AddCommand(newRemoveCommand(app))
	cmd.AddCommand(newSearchCommand(app))
	cmd.AddCommand(newListCommand(app))
	cmd.AddCommand(newShowCommand(app))

	return cmd
}

func newAddCommand(app application.Application) *cobra.Command {
	var title, author, isbn string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a book to the catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			lib, err := app.Library()
			if err != nil {
				return err
			}

			book := library.NewBook(title, author, isbn)
			if err := lib.AddBook(cmd.Context(), book); err != nil {
				return err
			}

			app.Logger().Debug().Str("isbn", book.ISBN).Msg("Book added")
			return output.Write(cmd.OutOrStdout(), app.OutputFormat(), book, table.BookDetails(book))
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Book title")
	cmd.Flags().StringVar(&author, "author", "", "Book author")
	cmd.Flags().StringVar(&isbn, "isbn", "", "Book ISBN (unique)")
	_ = cmd.MarkFlagRequired("isbn")

	return cmd
}

func newRemoveCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:               "remove <isbn>",
		Aliases:           []string{"rm"},
		Short:             "Remove a book from the catalog",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completion.ISBNs(app),
		RunE: func(cmd *cobra.Command, args []string) error {
			lib, err := app.Library()
			if err != nil {
				return err
			}
			if err := lib.RemoveBook(cmd.Context(), args[0]); err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Removed book %s\n", args[0])
			return err
		},
	}
}

func newSearchCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>",
		Short: "Search books by title, author or ISBN",
		Long: `Search matches titles and authors case-insensitively by substring
and ISBNs exactly.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lib, err := app.Library()
			if err != nil {
				return err
			}
			return output.FormatBooks(cmd.OutOrStdout(), app.OutputFormat(), lib.SearchBook(args[0]))
		},
	}
}

func newListCommand(app application.Application) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List the catalog",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			lib, err := app.Library()
			if err != nil {
				return err
			}

			flags := globals.ParseResources(cmd)
			books := lib.Books()
			if flags.Search != "" {
				books = lib.SearchBook(flags.Search)
			}
			if flags.Limit > 0 && len(books) > flags.Limit {
				books = books[:flags.Limit]
			}

			app.Logger().Debug().Msgf("Found %d books", len(books))
			return output.FormatBooks(cmd.OutOrStdout(), app.OutputFormat(), books)
		},
	}

	globals.AddResourceFlags(cmd)

	return cmd
}

func newShowCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:               "show <isbn>",
		Short:             "Show a single book",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completion.ISBNs(app),
		RunE: func(cmd *cobra.Command, args []string) error {
			lib, err := app.Library()
			if err != nil {
				return err
			}
			book, err := lib.Book(args[0])
			if err != nil {
				return err
			}
			return output.Write(cmd.OutOrStdout(), app.OutputFormat(), book, table.BookDetails(book))
		},
	}
}
