// Package bookshelf is the entry point for embedding the lending-library
// catalog in a program. It opens a store from configuration, builds the
// persistence gateway and the library on top of it, and fans library
// events out to registered hooks.
//
// Example usage:
//
//	bs, err := bookshelf.New(ctx, bookshelf.WithStoreURL("file://data"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer bs.Close()
//
//	bs.OnBookBorrowed(func(userID string, book library.Book) {
//	    log.Printf("%s borrowed %s", userID, book.Title)
//	})
//
//	lib := bs.Library()
//	_ = lib.AddBook(ctx, library.NewBook("1984", "George Orwell", "1234567891"))
//	outcome, err := lib.BorrowBook(ctx, "001", "1234567891")
package bookshelf

import (
	"context"
	"sync"

	"github.com/agentstation/bookshelf/pkg/errors"
	"github.com/agentstation/bookshelf/pkg/library"
	"github.com/agentstation/bookshelf/pkg/store"
)

// Compile-time interface check to ensure proper implementation.
var _ Client = (*client)(nil)

// Client owns a store and the library persisted in it.
type Client interface {
	// Library returns the catalog manager
	Library() *library.Library

	// Store returns the backing store
	Store() store.Store

	// Reload re-reads both collections from the store
	Reload(ctx context.Context)

	// Close releases the store
	Close() error

	// Hooks provides access to event callback registration
	Hooks
}

// client is the internal implementation of the Client interface.
type client struct {
	options *options
	store   store.Store
	library *library.Library
	*hooks

	closeOnce sync.Once
	closeErr  error
}

// New opens the configured store and loads the library from it.
func New(ctx context.Context, opts ...Option) (Client, error) {
	o, err := defaults().apply(opts...)
	if err != nil {
		return nil, err
	}

	st := o.store
	if st == nil {
		st, err = store.Open(ctx, o.storeURL, o.storeOptions()...)
		if err != nil {
			return nil, errors.WrapResource("open", "store", o.storeURL, err)
		}
	}

	c := &client{
		options: o,
		store:   st,
		hooks:   newHooks(),
	}

	o.logger.Debug().
		Str("store", o.storeURL).
		Str("format", o.format.String()).
		Msg("Opening library")

	gateway := library.NewGateway(st, o.format.Codec(), o.logger)
	c.library, err = library.New(ctx, gateway,
		library.WithLogger(o.logger),
		library.WithUniqueUserIDs(o.uniqueUserIDs),
		library.WithCascadeRemovals(o.cascadeRemovals),
		library.WithEventHandler(c.hooks.dispatch),
	)
	if err != nil {
		_ = st.Close()
		return nil, errors.WrapResource("create", "library", "", err)
	}

	return c, nil
}

// Library returns the catalog manager.
func (c *client) Library() *library.Library {
	return c.library
}

// Store returns the backing store.
func (c *client) Store() store.Store {
	return c.store
}

// Reload re-reads both collections from the store.
func (c *client) Reload(ctx context.Context) {
	c.library.Reload(ctx)
}

// Close releases the store. Subsequent calls return the first result.
func (c *client) Close() error {
	c.closeOnce.Do(func() {
		if c.store != nil {
			c.closeErr = c.store.Close()
		}
	})
	return c.closeErr
}
