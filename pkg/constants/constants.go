// Package constants provides shared constants used throughout the bookshelf codebase.
// This includes timeouts, file permissions, storage names and defaults
// that should be consistent across the application.
package constants

import "time"

// Timeout constants define various timeout durations used in the application
const (
	// DefaultTimeout is the standard timeout for general operations
	DefaultTimeout = 10 * time.Second

	// CommandTimeout is the default timeout for CLI commands
	CommandTimeout = 2 * time.Minute

	// StoreConnectTimeout bounds dialing and pinging a remote store
	StoreConnectTimeout = 5 * time.Second

	// ShutdownTimeout is the grace period for the HTTP server to drain
	ShutdownTimeout = 10 * time.Second

	// ReadHeaderTimeout protects the HTTP server from slow clients
	ReadHeaderTimeout = 10 * time.Second
)

// File permission constants define standard Unix file permissions
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644
)

// Limit constants
const (
	// ChannelBufferSize is the default buffer size for channels
	ChannelBufferSize = 256

	// MaxRequestBodySize is the largest JSON body the HTTP API accepts (1 MB)
	MaxRequestBodySize = 1 << 20

	// MaxOpenConns caps the pool size of SQL backed stores
	MaxOpenConns = 10
)

// Storage constants
const (
	// BooksCollection is the store key holding the book collection
	BooksCollection = "books"

	// UsersCollection is the store key holding the user collection
	UsersCollection = "users"

	// DefaultDataDir is the directory used by the file store when none is configured
	DefaultDataDir = "data"

	// DefaultStoreURL is the store used when none is configured
	DefaultStoreURL = "file://" + DefaultDataDir

	// DefaultTable is the Postgres table holding the collections
	DefaultTable = "bookshelf_collections"

	// DefaultKeyPrefix is prepended to collection names in Redis
	DefaultKeyPrefix = "bookshelf:"
)

// Server defaults
const (
	// DefaultHost is the default interface the HTTP server binds to
	DefaultHost = "localhost"

	// DefaultPort is the default port of the HTTP server
	DefaultPort = 8080

	// APIPrefix is the path prefix of the versioned HTTP API
	APIPrefix = "/api/v1"
)
