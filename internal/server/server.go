// Package server serves the bookshelf catalog over HTTP and pushes library
// events to WebSocket clients.
package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/agentstation/bookshelf/cmd/application"
	"github.com/agentstation/bookshelf/internal/server/cache"
	"github.com/agentstation/bookshelf/internal/server/events"
	"github.com/agentstation/bookshelf/internal/server/events/adapters"
	ws "github.com/agentstation/bookshelf/internal/server/websocket"
	"github.com/agentstation/bookshelf/pkg/constants"
	"github.com/agentstation/bookshelf/pkg/errors"
	"github.com/agentstation/bookshelf/pkg/library"
)

// Server owns the response cache, the event broker and the WebSocket hub
// of one API instance.
type Server struct {
	app      application.Application
	config   Config
	logger   *zerolog.Logger
	cache    *cache.Cache
	broker   *events.Broker
	hub      *ws.Hub
	upgrader websocket.Upgrader

	// stop ends the broker and hub goroutines.
	stop  context.CancelFunc
	run   context.Context
	start sync.Once
}

// New builds a server over app's client. Every library event flushes the
// cache and is fanned out to WebSocket clients.
func New(app application.Application, cfg Config) (*Server, error) {
	d := DefaultConfig()
	if cfg.PathPrefix == "" {
		cfg.PathPrefix = d.PathPrefix
	}
	if cfg.CacheTTL == 0 {
		cfg.CacheTTL = d.CacheTTL
	}

	c, err := app.Client()
	if err == nil && c == nil {
		err = errors.New("no client")
	}
	if err != nil {
		return nil, errors.WrapResource("connect", "library hooks", "", err)
	}

	logger := app.Logger()
	s := &Server{
		app:    app,
		config: cfg,
		logger: logger,
		cache:  cache.New(cfg.CacheTTL, 2*cfg.CacheTTL),
		broker: events.NewBroker(logger),
		hub:    ws.NewHub(logger),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
	}
	s.run, s.stop = context.WithCancel(context.Background())
	s.broker.Subscribe(adapters.NewWebSocketSubscriber(s.hub))
	c.OnEvent(s.onLibraryEvent)

	logger.Debug().Msg("Server instance created")
	return s, nil
}

func (s *Server) onLibraryEvent(ev library.Event) {
	s.cache.Clear()
	s.broker.Publish(events.FromLibrary(ev))
	s.logger.Debug().
		Str("event_type", string(ev.Type)).
		Str("isbn", ev.ISBN).
		Str("user_id", ev.UserID).
		Msg("Library event published")
}

// Start runs the broker and the hub. Later calls do nothing.
func (s *Server) Start() {
	s.start.Do(func() {
		go s.broker.Run(s.run)
		go s.hub.Run(s.run)
	})
}

// Handler returns the router wrapped in middleware.
func (s *Server) Handler() http.Handler {
	return s.setupRouter()
}

// ListenAndServe listens on the configured address and calls Serve.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.config.Addr())
	if err != nil {
		return errors.WrapResource("listen on", "address", s.config.Addr(), err)
	}
	return s.Serve(ctx, ln)
}

// Serve handles requests on ln until ctx is done, then gives in-flight
// requests up to constants.ShutdownTimeout to finish.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	s.Start()
	defer s.stop()

	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: constants.ReadHeaderTimeout,
		ReadTimeout:       s.config.ReadTimeout,
		WriteTimeout:      s.config.WriteTimeout,
		IdleTimeout:       s.config.IdleTimeout,
	}

	failed := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", ln.Addr().String()).Msg("Server starting")
		if err := srv.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
			failed <- fmt.Errorf("serving http: %w", err)
		}
	}()

	select {
	case err := <-failed:
		return err
	case <-ctx.Done():
	}

	s.logger.Info().Msg("Shutdown signal received")
	drain, cancel := context.WithTimeout(context.Background(), constants.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(drain); err != nil {
		return fmt.Errorf("draining http: %w", err)
	}
	s.logger.Info().Msg("Server stopped gracefully")
	return nil
}

// Shutdown stops the broker and the hub.
func (s *Server) Shutdown(context.Context) error {
	s.stop()
	return nil
}

// Cache returns the response cache.
func (s *Server) Cache() *cache.Cache {
	return s.cache
}
