// Package application declares what bookshelf subcommands need from the
// running CLI, so commands can be built and tested against a stand-in:
//
//	cmd := book.NewCommand(&application.Mock{
//		LibraryFunc: func() (*library.Library, error) { return lib, nil },
//	})
//
// The stand-in lives in internal/cmd/application.
package application

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/bookshelf"
	"github.com/agentstation/bookshelf/pkg/library"
)

// Application is implemented by cmd/bookshelf/app.App. Implementations
// must be safe for concurrent use.
type Application interface {
	// Client opens the configured store on first use.
	Client() (bookshelf.Client, error)
	// Library is Client().Library().
	Library() (*library.Library, error)

	Logger() *zerolog.Logger
	OutputFormat() string // table, json or yaml; empty means detect
	ServerAddress() (host string, port int)

	// Build metadata stamped in by the release build.
	Version() string
	Commit() string
	Date() string
	BuiltBy() string
}
