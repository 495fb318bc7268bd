// Package app wires the bookshelf CLI together: configuration, the logger
// and the client that opens the configured store on first use.
package app

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/agentstation/bookshelf"
	"github.com/agentstation/bookshelf/cmd/application"
	"github.com/agentstation/bookshelf/pkg/constants"
	"github.com/agentstation/bookshelf/pkg/errors"
	"github.com/agentstation/bookshelf/pkg/library"
	"github.com/agentstation/bookshelf/pkg/store"
)

var _ application.Application = (*App)(nil)

// buildInfo is stamped in by the release build.
type buildInfo struct {
	version, commit, date, builtBy string
}

// App holds what every command needs.
type App struct {
	build  buildInfo
	config *Config
	logger *zerolog.Logger

	mu     sync.Mutex // guards client
	client bookshelf.Client
}

// New loads configuration from the environment and config files, builds
// the logger, then applies opts.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	config, err := LoadConfig()
	if err != nil {
		return nil, errors.WrapResource("load", "config", "", err)
	}
	logger := NewLogger(config)

	a := &App{
		build:  buildInfo{version: version, commit: commit, date: date, builtBy: builtBy},
		config: config,
		logger: &logger,
	}
	for _, opt := range opts {
		if err := opt(a); err != nil {
			return nil, err
		}
	}
	return a, nil
}

func (a *App) Version() string { return a.build.version }
func (a *App) Commit() string  { return a.build.commit }
func (a *App) Date() string    { return a.build.date }
func (a *App) BuiltBy() string { return a.build.builtBy }

func (a *App) Config() *Config         { return a.config }
func (a *App) Logger() *zerolog.Logger { return a.logger }
func (a *App) OutputFormat() string    { return a.config.Output }

// ServerAddress returns the configured API host and port.
func (a *App) ServerAddress() (string, int) {
	return a.config.ServerHost, a.config.ServerPort
}

// Client opens the configured store on first call and returns the same
// client afterwards.
func (a *App) Client() (bookshelf.Client, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.client != nil {
		return a.client, nil
	}

	opts, err := a.clientOptions()
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(context.Background(), constants.DefaultTimeout)
	defer cancel()

	c, err := bookshelf.New(ctx, opts...)
	if err != nil {
		return nil, errors.WrapResource("create", "client", "", err)
	}
	a.client = c
	return c, nil
}

// Library returns the catalog manager of the shared client.
func (a *App) Library() (*library.Library, error) {
	c, err := a.Client()
	if err != nil {
		return nil, err
	}
	return c.Library(), nil
}

// Shutdown closes the client if one was opened. Calling it again is a no-op.
func (a *App) Shutdown(_ context.Context) error {
	a.mu.Lock()
	c := a.client
	a.client = nil
	a.mu.Unlock()

	if c == nil {
		return nil
	}
	return errors.WrapResource("close", "client", "", c.Close())
}

func (a *App) clientOptions() ([]bookshelf.Option, error) {
	format, err := store.ParseFormat(a.config.StoreFormat)
	if err != nil {
		return nil, err
	}
	cfg := a.config
	return []bookshelf.Option{
		bookshelf.WithStoreURL(cfg.Store),
		bookshelf.WithFormat(format),
		bookshelf.WithDriver(store.Driver(cfg.StoreDriver)),
		bookshelf.WithTable(cfg.StoreTable),
		bookshelf.WithKeyPrefix(cfg.StorePrefix),
		bookshelf.WithUniqueUserIDs(cfg.UniqueUserIDs),
		bookshelf.WithCascadeRemovals(cfg.CascadeRemovals),
		bookshelf.WithLogger(a.logger),
	}, nil
}

// Option customizes an App after configuration is loaded.
type Option func(*App) error

// WithConfig replaces the loaded configuration.
func WithConfig(config *Config) Option {
	return func(a *App) error {
		a.config = config
		return nil
	}
}

// WithLogger replaces the configured logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = logger
		return nil
	}
}

// WithClient installs a ready client so no store is opened.
func WithClient(c bookshelf.Client) Option {
	return func(a *App) error {
		a.client = c
		return nil
	}
}
