// Package store provides the durable key-value blob stores that back the
// library's persistence gateway. Each collection is saved as a single blob
// under its name, so every backend only needs whole-value Get and Put.
//
// Backends:
//   - FileStore keeps one file per collection in a directory (data/books.json)
//   - MemoryStore keeps blobs in process memory
//   - PostgresStore upserts rows in a single table through pgx or sqlx
//   - RedisStore keeps one key per collection under a prefix
//
// Use Open to pick a backend from a URL.
package store

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/agentstation/bookshelf/pkg/constants"
	"github.com/agentstation/bookshelf/pkg/errors"
	"github.com/agentstation/bookshelf/pkg/logging"
)

// ErrNotFound is returned by Get when no blob is stored under a key.
var ErrNotFound = errors.ErrNotFound

// Store is a durable key-value blob store.
// Implementations must be safe for concurrent use.
type Store interface {
	// Get returns the blob stored under key, or an error matching ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// Put replaces the blob stored under key.
	Put(ctx context.Context, key string, data []byte) error

	// Close releases any connections held by the store.
	Close() error
}

// Driver selects the Postgres client library.
type Driver string

// Supported Postgres drivers.
const (
	DriverPGX  Driver = "pgx"
	DriverSQLX Driver = "sqlx"
)

// Option configures a store.
type Option func(*config) error

// config is the configuration shared by the store constructors.
type config struct {
	logger    *zerolog.Logger
	format    Format
	driver    Driver
	table     string
	keyPrefix string
}

func defaults() *config {
	logger := logging.Component("store")
	return &config{
		logger:    &logger,
		format:    FormatJSON,
		driver:    DriverPGX,
		table:     constants.DefaultTable,
		keyPrefix: constants.DefaultKeyPrefix,
	}
}

func applyOptions(opts []Option) (*config, error) {
	cfg := defaults()
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, fmt.Errorf("applying store option: %w", err)
		}
	}
	return cfg, nil
}

// WithLogger sets the logger used by the store.
func WithLogger(logger *zerolog.Logger) Option {
	return func(c *config) error {
		if logger != nil {
			c.logger = logger
		}
		return nil
	}
}

// WithFormat sets the file format used by the file store for its extension.
func WithFormat(format Format) Option {
	return func(c *config) error {
		if !format.IsValid() {
			return errors.NewConfigError("store", fmt.Sprintf("invalid format %d", format), nil)
		}
		c.format = format
		return nil
	}
}

// WithDriver selects the Postgres client library.
func WithDriver(driver Driver) Option {
	return func(c *config) error {
		switch driver {
		case DriverPGX, DriverSQLX:
			c.driver = driver
			return nil
		case "":
			return nil
		default:
			return errors.NewConfigError("store", fmt.Sprintf("unknown postgres driver %q", driver), nil)
		}
	}
}

// WithTable sets the Postgres table holding the collections.
func WithTable(table string) Option {
	return func(c *config) error {
		if table != "" {
			c.table = table
		}
		return nil
	}
}

// WithKeyPrefix sets the prefix prepended to Redis keys.
func WithKeyPrefix(prefix string) Option {
	return func(c *config) error {
		c.keyPrefix = prefix
		return nil
	}
}
