package output

import (
	"io"

	"github.com/agentstation/bookshelf/internal/cmd/table"
	"github.com/agentstation/bookshelf/pkg/library"
)

// Write formats data for the given output format. Table output uses
// tableData; structured formats encode data as-is.
func Write(w io.Writer, format string, data any, tableData table.Data) error {
	f := DetectFormat(format)
	if f == FormatTable {
		return NewFormatter(f).Format(w, tableData)
	}
	return NewFormatter(f).Format(w, data)
}

// FormatBooks writes a book listing.
func FormatBooks(w io.Writer, format string, books []library.Book) error {
	return Write(w, format, books, table.BooksToTableData(books))
}

// FormatUsers writes a user listing.
func FormatUsers(w io.Writer, format string, users []library.User) error {
	return Write(w, format, users, table.UsersToTableData(users))
}

// FormatOutcome writes the result of a borrow or return.
func FormatOutcome(w io.Writer, format string, outcome library.Outcome) error {
	return Write(w, format, outcome, table.OutcomeToTableData(outcome))
}
