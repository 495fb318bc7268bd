package table

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/agentstation/bookshelf/pkg/library"
)

func TestBooksToTableData(t *testing.T) {
	gatsby := library.NewBook("The Great Gatsby", "F. Scott Fitzgerald", "1234567890")
	lent := library.NewBook("1984", "George Orwell", "1234567891")
	lent.IsAvailable = false

	data := BooksToTableData([]library.Book{gatsby, lent})
	assert.Equal(t, []string{"ISBN", "Title", "Author", "Available"}, data.Headers)
	assert.Equal(t, [][]string{
		{"1234567890", "The Great Gatsby", "F. Scott Fitzgerald", "yes"},
		{"1234567891", "1984", "George Orwell", "no"},
	}, data.Rows)
	assert.Len(t, data.ColumnAlignment, len(data.Headers))
}

func TestUsersToTableData(t *testing.T) {
	alice := library.User{Name: "Alice", ID: "001", BorrowedBooks: []string{"1", "2"}}
	bob := library.NewUser("Bob", "002")

	data := UsersToTableData([]library.User{alice, bob})
	assert.Equal(t, [][]string{
		{"001", "Alice", "2", "1, 2"},
		{"002", "Bob", "0", "-"},
	}, data.Rows)
}

func TestDetails(t *testing.T) {
	book := library.NewBook("1984", "George Orwell", "1234567891")
	assert.Contains(t, BookDetails(book).Rows, []string{"Title", "1984"})

	user := library.User{Name: "Alice", ID: "001", BorrowedBooks: []string{"1234567891"}}
	data := UserDetails(user, []library.Book{book})
	assert.Contains(t, data.Rows, []string{"Borrowed", "1984 (1234567891)"})

	empty := UserDetails(library.NewUser("Bob", "002"), nil)
	assert.Contains(t, empty.Rows, []string{"Borrowed", "-"})
}

func TestOutcomeToTableData(t *testing.T) {
	data := OutcomeToTableData(library.Outcome{Reason: library.ReasonNotBorrowed, UserID: "002", ISBN: "1"})
	assert.Equal(t, [][]string{{"002", "1", "not_borrowed"}}, data.Rows)
}
