package handlers

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/agentstation/bookshelf/internal/server/response"
	"github.com/agentstation/bookshelf/pkg/errors"
	"github.com/agentstation/bookshelf/pkg/library"
)

// UserRequest is the body of POST /api/v1/users. An empty ID is generated.
type UserRequest struct {
	Name string `json:"name"`
	ID   string `json:"id"`
}

// HandleListUsers handles GET /api/v1/users[?q=].
func (h *Handlers) HandleListUsers(w http.ResponseWriter, r *http.Request) {
	lib, ok := h.library(w)
	if !ok {
		return
	}

	q := r.URL.Query().Get("q")
	h.cached(w, "users?q="+q, func() any {
		users := lib.Users()
		if q != "" {
			users = lib.SearchUser(q)
		}
		return map[string]any{
			"users": users,
			"count": len(users),
		}
	})
}

// HandleCreateUser handles POST /api/v1/users.
func (h *Handlers) HandleCreateUser(w http.ResponseWriter, r *http.Request) {
	var req UserRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.fail(w, r, errors.WrapValidation("body", err))
		return
	}
	req.ID = strings.TrimSpace(req.ID)
	if req.ID == "" {
		req.ID = uuid.NewString()
	}

	lib, ok := h.library(w)
	if !ok {
		return
	}

	user := library.NewUser(req.Name, req.ID)
	if err := lib.AddUser(r.Context(), user); err != nil {
		h.fail(w, r, err)
		return
	}
	response.Created(w, user)
}

// HandleGetUser handles GET /api/v1/users/{id}.
func (h *Handlers) HandleGetUser(w http.ResponseWriter, r *http.Request, id string) {
	lib, ok := h.library(w)
	if !ok {
		return
	}

	user, err := lib.User(id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	response.OK(w, user)
}

// HandleDeleteUser handles DELETE /api/v1/users/{id}.
func (h *Handlers) HandleDeleteUser(w http.ResponseWriter, r *http.Request, id string) {
	lib, ok := h.library(w)
	if !ok {
		return
	}

	if err := lib.RemoveUser(r.Context(), id); err != nil {
		h.fail(w, r, err)
		return
	}
	response.OK(w, map[string]any{"id": id, "removed": true})
}

// HandleUserBooks handles GET /api/v1/users/{id}/books.
func (h *Handlers) HandleUserBooks(w http.ResponseWriter, r *http.Request, id string) {
	lib, ok := h.library(w)
	if !ok {
		return
	}

	books, err := lib.BorrowedBooks(id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	response.OK(w, map[string]any{
		"id":    id,
		"books": books,
		"count": len(books),
	})
}
