package library

import "time"

// EventType names a library mutation.
type EventType string

// Event types emitted after successful mutations.
const (
	EventBookAdded    EventType = "book.added"
	EventBookRemoved  EventType = "book.removed"
	EventUserAdded    EventType = "user.added"
	EventUserRemoved  EventType = "user.removed"
	EventBookBorrowed EventType = "book.borrowed"
	EventBookReturned EventType = "book.returned"
)

// Event describes a mutation that has been applied and persisted.
type Event struct {
	Type      EventType `json:"type"`
	ISBN      string    `json:"isbn,omitempty"`
	UserID    string    `json:"userId,omitempty"`
	Book      *Book     `json:"book,omitempty"`
	User      *User     `json:"user,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// EventHandler receives events. Handlers run on the caller's goroutine
// after the library lock has been released.
type EventHandler func(Event)
