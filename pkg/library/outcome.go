package library

import (
	"github.com/agentstation/bookshelf/pkg/errors"
)

// Reason explains the result of a borrow or return.
type Reason int

// Reasons reported by BorrowBook and ReturnBook.
const (
	ReasonBorrowed Reason = iota + 1
	ReasonReturned
	ReasonUserNotFound
	ReasonBookNotFound
	ReasonBookUnavailable
	ReasonNotBorrowed
)

var reasonNames = map[Reason]string{
	ReasonBorrowed:        "borrowed",
	ReasonReturned:        "returned",
	ReasonUserNotFound:    "user_not_found",
	ReasonBookNotFound:    "book_not_found",
	ReasonBookUnavailable: "book_unavailable",
	ReasonNotBorrowed:     "not_borrowed",
}

// String returns the reason's wire name.
func (r Reason) String() string {
	if name, ok := reasonNames[r]; ok {
		return name
	}
	return "unknown"
}

// MarshalText encodes the reason by name.
func (r Reason) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// Outcome is the result of a borrow or return attempt.
type Outcome struct {
	Reason Reason `json:"reason"`
	UserID string `json:"userId"`
	ISBN   string `json:"isbn"`
}

func borrowed(userID, isbn string) Outcome {
	return Outcome{Reason: ReasonBorrowed, UserID: userID, ISBN: isbn}
}

func returned(userID, isbn string) Outcome {
	return Outcome{Reason: ReasonReturned, UserID: userID, ISBN: isbn}
}

func rejected(reason Reason, userID, isbn string) Outcome {
	return Outcome{Reason: reason, UserID: userID, ISBN: isbn}
}

// OK reports whether the transition happened.
func (o Outcome) OK() bool {
	return o.Reason == ReasonBorrowed || o.Reason == ReasonReturned
}

// String returns the reason name.
func (o Outcome) String() string {
	return o.Reason.String()
}

// Err returns nil for a successful outcome and a typed error otherwise:
// a NotFoundError for an unknown user or book, a StateError when the
// book is not in a state that allows the transition.
func (o Outcome) Err() error {
	switch o.Reason {
	case ReasonBorrowed, ReasonReturned:
		return nil
	case ReasonUserNotFound:
		return errors.NewNotFoundError("user", o.UserID)
	case ReasonBookNotFound:
		return errors.NewNotFoundError("book", o.ISBN)
	case ReasonBookUnavailable:
		return errors.NewStateError("book", o.ISBN, "already borrowed")
	case ReasonNotBorrowed:
		return errors.NewStateError("book", o.ISBN, "not borrowed by user "+o.UserID)
	default:
		return errors.NewStateError("book", o.ISBN, "unknown outcome")
	}
}

// Availability is the tri-state answer for an ISBN.
type Availability int

// Availability values.
const (
	AvailabilityUnknown Availability = iota
	AvailabilityAvailable
	AvailabilityUnavailable
)

// String returns the availability name.
func (a Availability) String() string {
	switch a {
	case AvailabilityAvailable:
		return "available"
	case AvailabilityUnavailable:
		return "unavailable"
	default:
		return "unknown"
	}
}

// MarshalText encodes the availability by name.
func (a Availability) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}
