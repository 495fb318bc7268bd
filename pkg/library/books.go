package library

import (
	"context"
	"strings"

	"github.com/agentstation/bookshelf/pkg/errors"
	"github.com/agentstation/bookshelf/pkg/logging"
)

// AddBook adds book to the catalog as available and saves the books.
// A book whose ISBN is already catalogued is not added; the returned
// *errors.AlreadyExistsError is informational and nothing is written.
func (l *Library) AddBook(ctx context.Context, book Book) error {
	book.ISBN = strings.TrimSpace(book.ISBN)
	if book.ISBN == "" {
		return errors.NewValidationError("isbn", book.ISBN, "cannot be empty")
	}
	book.IsAvailable = true

	ctx = logging.WithISBN(l.withLogger(ctx, "add_book"), book.ISBN)

	l.mu.Lock()
	if l.bookIndex(book.ISBN) >= 0 {
		l.mu.Unlock()
		logging.FromContext(ctx).Info().Msgf("Book with isbn number %s already exists", book.ISBN)
		return errors.NewAlreadyExistsError("book", book.ISBN)
	}

	l.books = append(l.books, book)
	err := l.saveBooks(ctx)
	l.mu.Unlock()

	if err != nil {
		return err
	}
	l.emit(Event{Type: EventBookAdded, ISBN: book.ISBN, Book: &book})
	return nil
}

// RemoveBook removes the book with isbn and saves the books. An unknown isbn
// returns an *errors.NotFoundError and changes nothing. With cascading
// removals the isbn is also dropped from every borrowed list.
func (l *Library) RemoveBook(ctx context.Context, isbn string) error {
	ctx = logging.WithISBN(l.withLogger(ctx, "remove_book"), isbn)

	l.mu.Lock()
	idx := l.bookIndex(isbn)
	if idx < 0 {
		l.mu.Unlock()
		return errors.NewNotFoundError("book", isbn)
	}

	removed := l.books[idx]
	l.books = append(l.books[:idx:idx], l.books[idx+1:]...)
	err := l.saveBooks(ctx)

	if err == nil && l.cascade && l.dropBorrowed(isbn) {
		err = l.saveUsers(ctx)
	}
	l.mu.Unlock()

	if err != nil {
		return err
	}
	l.emit(Event{Type: EventBookRemoved, ISBN: isbn, Book: &removed})
	return nil
}

// dropBorrowed removes isbn from every user's borrowed list and reports
// whether any list changed. Callers hold the write lock.
func (l *Library) dropBorrowed(isbn string) bool {
	changed := false
	for i := range l.users {
		kept := l.users[i].BorrowedBooks[:0:0]
		for _, b := range l.users[i].BorrowedBooks {
			if b != isbn {
				kept = append(kept, b)
			}
		}
		if len(kept) != len(l.users[i].BorrowedBooks) {
			l.users[i].BorrowedBooks = kept
			changed = true
		}
	}
	return changed
}

// Book returns the book with isbn.
func (l *Library) Book(isbn string) (Book, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if idx := l.bookIndex(isbn); idx >= 0 {
		return l.books[idx], nil
	}
	return Book{}, errors.NewNotFoundError("book", isbn)
}

// SearchBook returns the books whose title or author contains query, ignoring
// case, or whose ISBN contains query exactly. Results keep insertion order.
func (l *Library) SearchBook(query string) []Book {
	m := newMatcher(query)

	l.mu.RLock()
	defer l.mu.RUnlock()

	results := []Book{}
	for _, b := range l.books {
		if m.fold(b.Title) || m.fold(b.Author) || m.exact(b.ISBN) {
			results = append(results, b)
		}
	}
	return results
}

// IsBookAvailable reports whether isbn is catalogued and not lent out.
func (l *Library) IsBookAvailable(isbn string) bool {
	return l.Availability(isbn) == AvailabilityAvailable
}

// Availability distinguishes an unknown isbn from a lent-out book.
func (l *Library) Availability(isbn string) Availability {
	l.mu.RLock()
	defer l.mu.RUnlock()

	idx := l.bookIndex(isbn)
	switch {
	case idx < 0:
		return AvailabilityUnknown
	case l.books[idx].IsAvailable:
		return AvailabilityAvailable
	default:
		return AvailabilityUnavailable
	}
}
