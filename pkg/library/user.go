package library

import (
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// User is a patron identified by ID. BorrowedBooks holds the ISBNs the user
// currently has out, in borrow order.
type User struct {
	Name          string   `json:"name" yaml:"name"`
	ID            string   `json:"id" yaml:"id"`
	BorrowedBooks []string `json:"borrowedBooks" yaml:"borrowedBooks"`
}

// NewUser returns a user with nothing borrowed.
func NewUser(name, id string) User {
	return User{Name: name, ID: id, BorrowedBooks: []string{}}
}

// HasBorrowed reports whether isbn is in the user's borrowed list.
func (u User) HasBorrowed(isbn string) bool {
	for _, b := range u.BorrowedBooks {
		if b == isbn {
			return true
		}
	}
	return false
}

// clone returns a copy that shares no slice with u.
func (u User) clone() User {
	borrowed := make([]string, len(u.BorrowedBooks))
	copy(borrowed, u.BorrowedBooks)
	u.BorrowedBooks = borrowed
	return u
}

// UnmarshalJSON accepts borrowedBooks entries written either as ISBN strings
// or as embedded book objects, keeping only the ISBN.
func (u *User) UnmarshalJSON(data []byte) error {
	var raw struct {
		Name          string        `json:"name"`
		ID            string        `json:"id"`
		BorrowedBooks []borrowedRef `json:"borrowedBooks"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	u.Name = raw.Name
	u.ID = raw.ID
	u.BorrowedBooks = make([]string, 0, len(raw.BorrowedBooks))
	for _, ref := range raw.BorrowedBooks {
		if ref != "" {
			u.BorrowedBooks = append(u.BorrowedBooks, string(ref))
		}
	}
	return nil
}

// borrowedRef is one borrowedBooks element.
type borrowedRef string

func (r *borrowedRef) UnmarshalJSON(data []byte) error {
	var isbn string
	if err := json.Unmarshal(data, &isbn); err == nil {
		*r = borrowedRef(isbn)
		return nil
	}

	var book Book
	if err := json.Unmarshal(data, &book); err != nil {
		return err
	}
	*r = borrowedRef(book.ISBN)
	return nil
}
