package library

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/agentstation/bookshelf/pkg/errors"
	"github.com/agentstation/bookshelf/pkg/logging"
)

// Library is the catalog manager. Create one with New.
type Library struct {
	mu      sync.RWMutex
	gateway Gateway
	books   []Book
	users   []User

	logger        *zerolog.Logger
	handlers      []EventHandler
	clock         func() time.Time
	uniqueUserIDs bool
	cascade       bool
}

// New loads both collections through gateway and returns a ready Library.
func New(ctx context.Context, gateway Gateway, opts ...Option) (*Library, error) {
	if gateway == nil {
		return nil, errors.NewValidationError("gateway", nil, "gateway is required")
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, fmt.Errorf("applying library option: %w", err)
		}
	}
	if cfg.logger == nil {
		l := logging.Component("library")
		cfg.logger = &l
	}

	lib := &Library{
		gateway:       gateway,
		logger:        cfg.logger,
		handlers:      cfg.handlers,
		clock:         cfg.clock,
		uniqueUserIDs: cfg.uniqueUserIDs,
		cascade:       cfg.cascade,
	}
	lib.load(ctx)

	lib.logger.Debug().
		Int("books", len(lib.books)).
		Int("users", len(lib.users)).
		Msg("Library loaded")
	return lib, nil
}

// Reload replaces the in-memory collections with what the gateway returns.
func (l *Library) Reload(ctx context.Context) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.load(ctx)
}

// load must be called with the write lock held or before l is shared.
func (l *Library) load(ctx context.Context) {
	l.books = l.gateway.LoadBooks(ctx)
	l.users = l.gateway.LoadUsers(ctx)
	if l.books == nil {
		l.books = []Book{}
	}
	if l.users == nil {
		l.users = []User{}
	}
}

// Books returns a copy of the book collection in insertion order.
func (l *Library) Books() []Book {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]Book, len(l.books))
	copy(out, l.books)
	return out
}

// Users returns a copy of the user collection in insertion order.
func (l *Library) Users() []User {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]User, len(l.users))
	for i, u := range l.users {
		out[i] = u.clone()
	}
	return out
}

// saveBooks persists the book collection. Callers hold the write lock.
func (l *Library) saveBooks(ctx context.Context) error {
	if err := l.gateway.SaveBooks(ctx, l.books); err != nil {
		logging.FromContext(ctx).Error().Err(err).Msg("Failed to save books")
		return err
	}
	return nil
}

// saveUsers persists the user collection. Callers hold the write lock.
func (l *Library) saveUsers(ctx context.Context) error {
	if err := l.gateway.SaveUsers(ctx, l.users); err != nil {
		logging.FromContext(ctx).Error().Err(err).Msg("Failed to save users")
		return err
	}
	return nil
}

// withLogger attaches the library logger to ctx unless one is already there.
func (l *Library) withLogger(ctx context.Context, operation string) context.Context {
	if logging.FromContext(ctx) == logging.Default() {
		ctx = logging.WithLogger(ctx, l.logger)
	}
	return logging.WithOperation(ctx, operation)
}

// emit delivers events to handlers. Never call with the lock held.
func (l *Library) emit(events ...Event) {
	if len(l.handlers) == 0 {
		return
	}
	now := l.clock()
	for _, ev := range events {
		if ev.Timestamp.IsZero() {
			ev.Timestamp = now
		}
		for _, h := range l.handlers {
			h(ev)
		}
	}
}

func (l *Library) bookIndex(isbn string) int {
	for i := range l.books {
		if l.books[i].ISBN == isbn {
			return i
		}
	}
	return -1
}

func (l *Library) userIndex(id string) int {
	for i := range l.users {
		if l.users[i].ID == id {
			return i
		}
	}
	return -1
}
