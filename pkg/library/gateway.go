package library

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/agentstation/bookshelf/pkg/constants"
	"github.com/agentstation/bookshelf/pkg/store"
)

// Gateway loads and saves the two collections.
// Loads never fail and return an empty sequence when nothing usable is stored.
// Saves overwrite the whole collection and return an *errors.IOError on failure.
type Gateway interface {
	LoadBooks(ctx context.Context) []Book
	LoadUsers(ctx context.Context) []User
	SaveBooks(ctx context.Context, books []Book) error
	SaveUsers(ctx context.Context, users []User) error
}

// StoreGateway persists the collections as two blobs in a store.
type StoreGateway struct {
	books *store.Collection[Book]
	users *store.Collection[User]
}

// NewGateway returns a gateway writing "books" and "users" to s with codec.
func NewGateway(s store.Store, codec store.Codec, logger *zerolog.Logger) *StoreGateway {
	return &StoreGateway{
		books: store.NewCollection[Book](s, codec, constants.BooksCollection, logger),
		users: store.NewCollection[User](s, codec, constants.UsersCollection, logger),
	}
}

// LoadBooks implements Gateway.
func (g *StoreGateway) LoadBooks(ctx context.Context) []Book {
	return g.books.Load(ctx)
}

// LoadUsers implements Gateway.
func (g *StoreGateway) LoadUsers(ctx context.Context) []User {
	users := g.users.Load(ctx)
	for i := range users {
		if users[i].BorrowedBooks == nil {
			users[i].BorrowedBooks = []string{}
		}
	}
	return users
}

// SaveBooks implements Gateway.
func (g *StoreGateway) SaveBooks(ctx context.Context, books []Book) error {
	return g.books.Save(ctx, books)
}

// SaveUsers implements Gateway.
func (g *StoreGateway) SaveUsers(ctx context.Context, users []User) error {
	return g.users.Save(ctx, users)
}
