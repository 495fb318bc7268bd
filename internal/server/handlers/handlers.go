// Package handlers provides HTTP request handlers for the bookshelf API.
package handlers

import (
	"net/http"

	"github.com/gorilla/websocket"
	jsoniter "github.com/json-iterator/go"
	"github.com/rs/zerolog"

	"github.com/agentstation/bookshelf/cmd/application"
	"github.com/agentstation/bookshelf/internal/server/cache"
	"github.com/agentstation/bookshelf/internal/server/response"
	ws "github.com/agentstation/bookshelf/internal/server/websocket"
	"github.com/agentstation/bookshelf/pkg/constants"
	"github.com/agentstation/bookshelf/pkg/errors"
	"github.com/agentstation/bookshelf/pkg/library"
	"github.com/agentstation/bookshelf/pkg/logging"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Handlers provides access to all HTTP handlers.
type Handlers struct {
	app      application.Application
	cache    *cache.Cache
	wsHub    *ws.Hub
	upgrader websocket.Upgrader
	logger   *zerolog.Logger
}

// New creates a new Handlers instance.
func New(
	app application.Application,
	cache *cache.Cache,
	wsHub *ws.Hub,
	upgrader websocket.Upgrader,
	logger *zerolog.Logger,
) *Handlers {
	return &Handlers{
		app:      app,
		cache:    cache,
		wsHub:    wsHub,
		upgrader: upgrader,
		logger:   logger,
	}
}

// library resolves the catalog or writes a 503.
func (h *Handlers) library(w http.ResponseWriter) (*library.Library, bool) {
	lib, err := h.app.Library()
	if err != nil || lib == nil {
		h.logger.Error().Err(err).Msg("Library not available")
		response.ServiceUnavailable(w, "Library not available")
		return nil, false
	}
	return lib, true
}

// fail writes err as an error response. Errors that are not the client's
// fault are logged with the request ID.
func (h *Handlers) fail(w http.ResponseWriter, r *http.Request, err error) {
	if !errors.IsNotFound(err) && !errors.IsAlreadyExists(err) &&
		!errors.IsInvalidState(err) && !errors.IsValidationError(err) {
		h.logger.Error().
			Err(err).
			Str("request_id", logging.RequestID(r.Context())).
			Str("path", r.URL.Path).
			Msg("Request failed")
	}
	response.ErrorFromType(w, err)
}

// decodeJSON reads a size-limited JSON body into v.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	body := http.MaxBytesReader(w, r.Body, constants.MaxRequestBodySize)
	defer body.Close()
	return json.NewDecoder(body).Decode(v)
}

// cached serves key from the cache or computes, stores and serves it.
// A value computed across a cache flush is served but not stored.
func (h *Handlers) cached(w http.ResponseWriter, key string, compute func() any) {
	if v, found := h.cache.Get(key); found {
		response.OK(w, v)
		return
	}
	gen := h.cache.Generation()
	v := compute()
	h.cache.Fill(key, v, gen)
	response.OK(w, v)
}
