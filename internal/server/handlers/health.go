package handlers

import (
	"net/http"

	"github.com/agentstation/bookshelf/internal/server/response"
)

// HandleHealth handles GET /health (liveness check).
func (h *Handlers) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	response.OK(w, map[string]any{
		"status":  "healthy",
		"service": "bookshelf-api",
		"version": h.app.Version(),
	})
}

// HandleReady handles GET /api/v1/ready.
func (h *Handlers) HandleReady(w http.ResponseWriter, _ *http.Request) {
	lib, ok := h.library(w)
	if !ok {
		return
	}

	response.OK(w, map[string]any{
		"status": "ready",
		"books":  len(lib.Books()),
		"users":  len(lib.Users()),
		"cache": map[string]any{
			"items": h.cache.ItemCount(),
		},
		"websocket_clients": h.wsHub.ClientCount(),
	})
}
