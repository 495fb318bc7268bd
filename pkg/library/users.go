package library

import (
	"context"
	"strings"

	"github.com/agentstation/bookshelf/pkg/errors"
	"github.com/agentstation/bookshelf/pkg/logging"
)

// AddUser registers a user with an empty borrowed list and saves the users.
// When user IDs are unique (the default) a taken ID returns an
// *errors.AlreadyExistsError.
func (l *Library) AddUser(ctx context.Context, user User) error {
	user.ID = strings.TrimSpace(user.ID)
	if user.ID == "" {
		return errors.NewValidationError("id", user.ID, "cannot be empty")
	}
	user.BorrowedBooks = []string{}

	ctx = logging.WithUserID(l.withLogger(ctx, "add_user"), user.ID)

	l.mu.Lock()
	if l.uniqueUserIDs && l.userIndex(user.ID) >= 0 {
		l.mu.Unlock()
		logging.FromContext(ctx).Info().Msgf("User with id %s already exists", user.ID)
		return errors.NewAlreadyExistsError("user", user.ID)
	}

	l.users = append(l.users, user)
	err := l.saveUsers(ctx)
	l.mu.Unlock()

	if err != nil {
		return err
	}
	added := user.clone()
	l.emit(Event{Type: EventUserAdded, UserID: user.ID, User: &added})
	return nil
}

// RemoveUser removes every user with id and saves the users. An unknown id
// returns an *errors.NotFoundError. With cascading removals the books the
// user held become available again.
func (l *Library) RemoveUser(ctx context.Context, id string) error {
	ctx = logging.WithUserID(l.withLogger(ctx, "remove_user"), id)

	l.mu.Lock()
	var removed []User
	kept := make([]User, 0, len(l.users))
	for _, u := range l.users {
		if u.ID == id {
			removed = append(removed, u)
			continue
		}
		kept = append(kept, u)
	}
	if len(removed) == 0 {
		l.mu.Unlock()
		return errors.NewNotFoundError("user", id)
	}

	l.users = kept
	err := l.saveUsers(ctx)

	if err == nil && l.cascade && l.releaseBooks(removed) {
		err = l.saveBooks(ctx)
	}
	l.mu.Unlock()

	if err != nil {
		return err
	}
	events := make([]Event, 0, len(removed))
	for i := range removed {
		events = append(events, Event{Type: EventUserRemoved, UserID: id, User: &removed[i]})
	}
	l.emit(events...)
	return nil
}

// releaseBooks marks the books held by removed users available unless a
// remaining user still holds them. Callers hold the write lock.
func (l *Library) releaseBooks(removed []User) bool {
	changed := false
	for _, u := range removed {
		for _, isbn := range u.BorrowedBooks {
			idx := l.bookIndex(isbn)
			if idx < 0 || l.books[idx].IsAvailable || l.heldByAnyone(isbn) {
				continue
			}
			l.books[idx].IsAvailable = true
			changed = true
		}
	}
	return changed
}

func (l *Library) heldByAnyone(isbn string) bool {
	for _, u := range l.users {
		if u.HasBorrowed(isbn) {
			return true
		}
	}
	return false
}

// User returns the first user with id.
func (l *Library) User(id string) (User, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if idx := l.userIndex(id); idx >= 0 {
		return l.users[idx].clone(), nil
	}
	return User{}, errors.NewNotFoundError("user", id)
}

// SearchUser returns the users whose name contains query, ignoring case, or
// whose ID contains query exactly. Results keep insertion order.
func (l *Library) SearchUser(query string) []User {
	m := newMatcher(query)

	l.mu.RLock()
	defer l.mu.RUnlock()

	results := []User{}
	for _, u := range l.users {
		if m.fold(u.Name) || m.exact(u.ID) {
			results = append(results, u.clone())
		}
	}
	return results
}

// BorrowedBooks resolves the user's borrowed ISBNs to catalog books.
// ISBNs no longer in the catalog are skipped.
func (l *Library) BorrowedBooks(userID string) ([]Book, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	idx := l.userIndex(userID)
	if idx < 0 {
		return nil, errors.NewNotFoundError("user", userID)
	}

	books := []Book{}
	for _, isbn := range l.users[idx].BorrowedBooks {
		if b := l.bookIndex(isbn); b >= 0 {
			books = append(books, l.books[b])
		}
	}
	return books, nil
}
