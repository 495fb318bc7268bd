// Package application provides a test double for the command application
// interface.
package application

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/bookshelf"
	iface "github.com/agentstation/bookshelf/cmd/application"
	"github.com/agentstation/bookshelf/pkg/constants"
	"github.com/agentstation/bookshelf/pkg/library"
)

var _ iface.Application = (*Mock)(nil)

// Mock answers each method from its func field when set and a fixed
// default otherwise. Library falls back to ClientFunc's library.
type Mock struct {
	ClientFunc        func() (bookshelf.Client, error)
	LibraryFunc       func() (*library.Library, error)
	LoggerFunc        func() *zerolog.Logger
	OutputFormatFunc  func() string
	ServerAddressFunc func() (string, int)
	VersionString     string
}

func (m *Mock) Client() (bookshelf.Client, error) {
	if m.ClientFunc == nil {
		return nil, nil
	}
	return m.ClientFunc()
}

func (m *Mock) Library() (*library.Library, error) {
	if m.LibraryFunc != nil {
		return m.LibraryFunc()
	}
	c, err := m.Client()
	if err != nil || c == nil {
		return nil, err
	}
	return c.Library(), nil
}

func (m *Mock) Logger() *zerolog.Logger {
	if m.LoggerFunc == nil {
		nop := zerolog.Nop()
		return &nop
	}
	return m.LoggerFunc()
}

func (m *Mock) OutputFormat() string {
	if m.OutputFormatFunc == nil {
		return "table"
	}
	return m.OutputFormatFunc()
}

func (m *Mock) ServerAddress() (string, int) {
	if m.ServerAddressFunc == nil {
		return constants.DefaultHost, constants.DefaultPort
	}
	return m.ServerAddressFunc()
}

func (m *Mock) Version() string {
	if m.VersionString == "" {
		return "dev"
	}
	return m.VersionString
}

func (m *Mock) Commit() string  { return "unknown" }
func (m *Mock) Date() string    { return "unknown" }
func (m *Mock) BuiltBy() string { return "unknown" }
