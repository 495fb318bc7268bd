// Package table provides common table formatting utilities for CLI commands.
package table

import (
	"strconv"
	"strings"

	"github.com/agentstation/bookshelf/pkg/library"
)

// Align represents column alignment in tables.
type Align int

const (
	// AlignDefault uses the default alignment (skip).
	AlignDefault Align = iota
	// AlignLeft aligns content to the left.
	AlignLeft
	// AlignCenter centers content.
	AlignCenter
	// AlignRight aligns content to the right.
	AlignRight
)

// Data represents table formatting data to avoid import cycles.
type Data struct {
	Headers         []string
	Rows            [][]string
	ColumnAlignment []Align // Optional: column alignment
}

// BooksToTableData converts books to table format.
func BooksToTableData(books []library.Book) Data {
	rows := make([][]string, 0, len(books))
	for _, b := range books {
		rows = append(rows, []string{b.ISBN, b.Title, b.Author, FormatAvailable(b.IsAvailable)})
	}
	return Data{
		Headers:         []string{"ISBN", "Title", "Author", "Available"},
		Rows:            rows,
		ColumnAlignment: []Align{AlignLeft, AlignLeft, AlignLeft, AlignCenter},
	}
}

// UsersToTableData converts users to table format.
func UsersToTableData(users []library.User) Data {
	rows := make([][]string, 0, len(users))
	for _, u := range users {
		rows = append(rows, []string{u.ID, u.Name, strconv.Itoa(len(u.BorrowedBooks)), FormatList(u.BorrowedBooks)})
	}
	return Data{
		Headers:         []string{"ID", "Name", "Borrowed", "ISBNs"},
		Rows:            rows,
		ColumnAlignment: []Align{AlignLeft, AlignLeft, AlignRight, AlignLeft},
	}
}

// BookDetails renders one book as a property/value table.
func BookDetails(book library.Book) Data {
	return Data{
		Headers: []string{"Property", "Value"},
		Rows: [][]string{
			{"ISBN", book.ISBN},
			{"Title", book.Title},
			{"Author", book.Author},
			{"Available", FormatAvailable(book.IsAvailable)},
		},
	}
}

// UserDetails renders one user with the titles of the books they hold.
func UserDetails(user library.User, books []library.Book) Data {
	titles := make([]string, 0, len(books))
	for _, b := range books {
		titles = append(titles, b.Title+" ("+b.ISBN+")")
	}
	return Data{
		Headers: []string{"Property", "Value"},
		Rows: [][]string{
			{"ID", user.ID},
			{"Name", user.Name},
			{"Borrowed", FormatList(titles)},
		},
	}
}

// OutcomeToTableData renders a borrow or return outcome.
func OutcomeToTableData(outcome library.Outcome) Data {
	return Data{
		Headers: []string{"User", "ISBN", "Result"},
		Rows:    [][]string{{outcome.UserID, outcome.ISBN, outcome.Reason.String()}},
	}
}

// FormatAvailable renders an availability flag.
func FormatAvailable(available bool) string {
	if available {
		return "yes"
	}
	return "no"
}

// FormatList joins values for a single cell, using "-" for none.
func FormatList(values []string) string {
	if len(values) == 0 {
		return "-"
	}
	return strings.Join(values, ", ")
}
