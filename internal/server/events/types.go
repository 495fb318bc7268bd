// Package events provides a unified event system for real-time library updates.
//
// The broker connects the bookshelf hooks to transport subscribers (the
// WebSocket hub) through a single event pipeline.
package events

import (
	"time"

	"github.com/agentstation/bookshelf/pkg/library"
)

// EventType represents the type of library event.
type EventType string

// Event types for library changes and transport notices.
const (
	BookAdded    = EventType(library.EventBookAdded)
	BookRemoved  = EventType(library.EventBookRemoved)
	UserAdded    = EventType(library.EventUserAdded)
	UserRemoved  = EventType(library.EventUserRemoved)
	BookBorrowed = EventType(library.EventBookBorrowed)
	BookReturned = EventType(library.EventBookReturned)

	ClientConnected EventType = "client.connected"
)

// Event represents a library event with type, timestamp, and data.
type Event struct {
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data"`
}

// FromLibrary wraps a library event for publication.
func FromLibrary(ev library.Event) Event {
	ts := ev.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}
	return Event{Type: EventType(ev.Type), Timestamp: ts, Data: ev}
}
