package bookshelf

import (
	"sync"

	"github.com/agentstation/bookshelf/pkg/library"
)

// Hook function types for library events
type (
	// BookAddedHook is called when a book is added to the catalog
	BookAddedHook func(book library.Book)

	// BookRemovedHook is called when a book is removed from the catalog
	BookRemovedHook func(book library.Book)

	// UserAddedHook is called when a user is registered
	UserAddedHook func(user library.User)

	// UserRemovedHook is called when a user is removed
	UserRemovedHook func(user library.User)

	// BookBorrowedHook is called when a user borrows a book
	BookBorrowedHook func(userID string, book library.Book)

	// BookReturnedHook is called when a user returns a book. The book is
	// nil when it was removed from the catalog while lent out.
	BookReturnedHook func(userID string, isbn string, book *library.Book)

	// EventHook receives every library event
	EventHook func(event library.Event)
)

// Hooks registers callbacks for library events.
type Hooks interface {
	OnBookAdded(BookAddedHook)
	OnBookRemoved(BookRemovedHook)
	OnUserAdded(UserAddedHook)
	OnUserRemoved(UserRemovedHook)
	OnBookBorrowed(BookBorrowedHook)
	OnBookReturned(BookReturnedHook)
	OnEvent(EventHook)
}

// hooks manages event callbacks for library changes
type hooks struct {
	mu             sync.RWMutex
	onBookAdded    []BookAddedHook
	onBookRemoved  []BookRemovedHook
	onUserAdded    []UserAddedHook
	onUserRemoved  []UserRemovedHook
	onBookBorrowed []BookBorrowedHook
	onBookReturned []BookReturnedHook
	onEvent        []EventHook
}

// newHooks creates a new hooks instance
func newHooks() *hooks {
	return &hooks{}
}

// OnBookAdded registers a callback for when books are added
func (h *hooks) OnBookAdded(fn BookAddedHook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onBookAdded = append(h.onBookAdded, fn)
}

// OnBookRemoved registers a callback for when books are removed
func (h *hooks) OnBookRemoved(fn BookRemovedHook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onBookRemoved = append(h.onBookRemoved, fn)
}

// OnUserAdded registers a callback for when users are added
func (h *hooks) OnUserAdded(fn UserAddedHook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onUserAdded = append(h.onUserAdded, fn)
}

// OnUserRemoved registers a callback for when users are removed
func (h *hooks) OnUserRemoved(fn UserRemovedHook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onUserRemoved = append(h.onUserRemoved, fn)
}

// OnBookBorrowed registers a callback for successful borrows
func (h *hooks) OnBookBorrowed(fn BookBorrowedHook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onBookBorrowed = append(h.onBookBorrowed, fn)
}

// OnBookReturned registers a callback for successful returns
func (h *hooks) OnBookReturned(fn BookReturnedHook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onBookReturned = append(h.onBookReturned, fn)
}

// OnEvent registers a callback for every event
func (h *hooks) OnEvent(fn EventHook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onEvent = append(h.onEvent, fn)
}

// dispatch routes a library event to the matching hooks
func (h *hooks) dispatch(ev library.Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	switch ev.Type {
	case library.EventBookAdded:
		if ev.Book != nil {
			for _, fn := range h.onBookAdded {
				fn(*ev.Book)
			}
		}
	case library.EventBookRemoved:
		if ev.Book != nil {
			for _, fn := range h.onBookRemoved {
				fn(*ev.Book)
			}
		}
	case library.EventUserAdded:
		if ev.User != nil {
			for _, fn := range h.onUserAdded {
				fn(*ev.User)
			}
		}
	case library.EventUserRemoved:
		if ev.User != nil {
			for _, fn := range h.onUserRemoved {
				fn(*ev.User)
			}
		}
	case library.EventBookBorrowed:
		if ev.Book != nil {
			for _, fn := range h.onBookBorrowed {
				fn(ev.UserID, *ev.Book)
			}
		}
	case library.EventBookReturned:
		for _, fn := range h.onBookReturned {
			fn(ev.UserID, ev.ISBN, ev.Book)
		}
	}

	for _, fn := range h.onEvent {
		fn(ev)
	}
}
