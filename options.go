package bookshelf

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/agentstation/bookshelf/pkg/constants"
	"github.com/agentstation/bookshelf/pkg/errors"
	"github.com/agentstation/bookshelf/pkg/logging"
	"github.com/agentstation/bookshelf/pkg/store"
)

// Option is a function that configures a Client
type Option func(*options) error

// options holds the client configuration
type options struct {
	storeURL        string
	store           store.Store
	format          store.Format
	driver          store.Driver
	table           string
	keyPrefix       string
	uniqueUserIDs   bool
	cascadeRemovals bool
	logger          *zerolog.Logger
}

func defaults() *options {
	return &options{
		storeURL:        constants.DefaultStoreURL,
		format:          store.FormatJSON,
		driver:          store.DriverPGX,
		table:           constants.DefaultTable,
		keyPrefix:       constants.DefaultKeyPrefix,
		uniqueUserIDs:   true,
		cascadeRemovals: true,
		logger:          logging.Default(),
	}
}

func (o *options) apply(opts ...Option) (*options, error) {
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, fmt.Errorf("applying options: %w", err)
		}
	}
	return o, nil
}

func (o *options) storeOptions() []store.Option {
	return []store.Option{
		store.WithLogger(o.logger),
		store.WithFormat(o.format),
		store.WithDriver(o.driver),
		store.WithTable(o.table),
		store.WithKeyPrefix(o.keyPrefix),
	}
}

// WithStoreURL selects the store by URL (file://, memory://, postgres://, redis://, or a path)
func WithStoreURL(url string) Option {
	return func(o *options) error {
		if url != "" {
			o.storeURL = url
		}
		return nil
	}
}

// WithStore uses an already opened store. The client takes ownership and closes it.
func WithStore(s store.Store) Option {
	return func(o *options) error {
		o.store = s
		return nil
	}
}

// WithFormat sets the serialization format of the persisted collections
func WithFormat(format store.Format) Option {
	return func(o *options) error {
		if !format.IsValid() {
			return errors.NewConfigError("store", fmt.Sprintf("invalid format %d", format), nil)
		}
		o.format = format
		return nil
	}
}

// WithDriver selects the Postgres client library
func WithDriver(driver store.Driver) Option {
	return func(o *options) error {
		if driver != "" {
			o.driver = driver
		}
		return nil
	}
}

// WithTable sets the Postgres table holding the collections
func WithTable(table string) Option {
	return func(o *options) error {
		if table != "" {
			o.table = table
		}
		return nil
	}
}

// WithKeyPrefix sets the Redis key prefix
func WithKeyPrefix(prefix string) Option {
	return func(o *options) error {
		o.keyPrefix = prefix
		return nil
	}
}

// WithUniqueUserIDs configures whether duplicate user IDs are rejected
func WithUniqueUserIDs(enabled bool) Option {
	return func(o *options) error {
		o.uniqueUserIDs = enabled
		return nil
	}
}

// WithCascadeRemovals configures whether removals repair borrow state
func WithCascadeRemovals(enabled bool) Option {
	return func(o *options) error {
		o.cascadeRemovals = enabled
		return nil
	}
}

// WithLogger sets the logger shared by the client, library and store
func WithLogger(logger *zerolog.Logger) Option {
	return func(o *options) error {
		if logger != nil {
			o.logger = logger
		}
		return nil
	}
}
