package library

import (
	"context"

	"github.com/agentstation/bookshelf/pkg/logging"
)

// BorrowBook lends the book with isbn to the user with userID.
//
// The user must exist, then the book, then the book must be available;
// the first failing check is reported in the Outcome and nothing changes.
// On success the isbn is appended to the user's list, the book is marked
// unavailable and both collections are saved. The error is reserved for
// save failures.
func (l *Library) BorrowBook(ctx context.Context, userID, isbn string) (Outcome, error) {
	ctx = logging.WithISBN(logging.WithUserID(l.withLogger(ctx, "borrow"), userID), isbn)

	l.mu.Lock()
	u := l.userIndex(userID)
	if u < 0 {
		l.mu.Unlock()
		return rejected(ReasonUserNotFound, userID, isbn), nil
	}
	b := l.bookIndex(isbn)
	if b < 0 {
		l.mu.Unlock()
		return rejected(ReasonBookNotFound, userID, isbn), nil
	}
	if !l.books[b].IsAvailable {
		l.mu.Unlock()
		return rejected(ReasonBookUnavailable, userID, isbn), nil
	}

	l.users[u].BorrowedBooks = append(l.users[u].BorrowedBooks, isbn)
	l.books[b].IsAvailable = false
	book := l.books[b]

	err := l.saveUsers(ctx)
	if err == nil {
		err = l.saveBooks(ctx)
	}
	l.mu.Unlock()

	if err != nil {
		return borrowed(userID, isbn), err
	}

	logging.FromContext(ctx).Debug().Msg("Book borrowed")
	l.emit(Event{Type: EventBookBorrowed, ISBN: isbn, UserID: userID, Book: &book})
	return borrowed(userID, isbn), nil
}

// ReturnBook takes the book with isbn back from the user with userID.
//
// The user must exist and must have isbn in their own borrowed list. On
// success every entry for isbn is removed from the list, the book is marked available
// if it is still catalogued, and both collections are saved.
func (l *Library) ReturnBook(ctx context.Context, userID, isbn string) (Outcome, error) {
	ctx = logging.WithISBN(logging.WithUserID(l.withLogger(ctx, "return"), userID), isbn)

	l.mu.Lock()
	u := l.userIndex(userID)
	if u < 0 {
		l.mu.Unlock()
		return rejected(ReasonUserNotFound, userID, isbn), nil
	}
	list := l.users[u].BorrowedBooks
	kept := make([]string, 0, len(list))
	for _, b := range list {
		if b != isbn {
			kept = append(kept, b)
		}
	}
	if len(kept) == len(list) {
		l.mu.Unlock()
		return rejected(ReasonNotBorrowed, userID, isbn), nil
	}
	l.users[u].BorrowedBooks = kept

	var book *Book
	if b := l.bookIndex(isbn); b >= 0 {
		l.books[b].IsAvailable = true
		returnedBook := l.books[b]
		book = &returnedBook
	}

	err := l.saveUsers(ctx)
	if err == nil {
		err = l.saveBooks(ctx)
	}
	l.mu.Unlock()

	if err != nil {
		return returned(userID, isbn), err
	}

	logging.FromContext(ctx).Debug().Msg("Book returned")
	l.emit(Event{Type: EventBookReturned, ISBN: isbn, UserID: userID, Book: book})
	return returned(userID, isbn), nil
}
