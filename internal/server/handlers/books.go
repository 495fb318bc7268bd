package handlers

import (
	"net/http"
	"strings"

	"github.com/agentstation/bookshelf/internal/server/response"
	"github.com/agentstation/bookshelf/pkg/errors"
	"github.com/agentstation/bookshelf/pkg/library"
)

// BookRequest is the body of POST /api/v1/books.
type BookRequest struct {
	Title  string `json:"title"`
	Author string `json:"author"`
	ISBN   string `json:"isbn"`
}

// HandleListBooks handles GET /api/v1/books[?q=].
func (h *Handlers) HandleListBooks(w http.ResponseWriter, r *http.Request) {
	lib, ok := h.library(w)
	if !ok {
		return
	}

	q := r.URL.Query().Get("q")
	h.cached(w, "books?q="+q, func() any {
		books := lib.Books()
		if q != "" {
			books = lib.SearchBook(q)
		}
		return map[string]any{
			"books": books,
			"count": len(books),
		}
	})
}

// HandleCreateBook handles POST /api/v1/books.
func (h *Handlers) HandleCreateBook(w http.ResponseWriter, r *http.Request) {
	var req BookRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.fail(w, r, errors.WrapValidation("body", err))
		return
	}

	lib, ok := h.library(w)
	if !ok {
		return
	}

	book := library.NewBook(req.Title, req.Author, strings.TrimSpace(req.ISBN))
	if err := lib.AddBook(r.Context(), book); err != nil {
		h.fail(w, r, err)
		return
	}
	response.Created(w, book)
}

// HandleGetBook handles GET /api/v1/books/{isbn}.
func (h *Handlers) HandleGetBook(w http.ResponseWriter, r *http.Request, isbn string) {
	lib, ok := h.library(w)
	if !ok {
		return
	}

	book, err := lib.Book(isbn)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	response.OK(w, book)
}

// HandleDeleteBook handles DELETE /api/v1/books/{isbn}.
func (h *Handlers) HandleDeleteBook(w http.ResponseWriter, r *http.Request, isbn string) {
	lib, ok := h.library(w)
	if !ok {
		return
	}

	if err := lib.RemoveBook(r.Context(), isbn); err != nil {
		h.fail(w, r, err)
		return
	}
	response.OK(w, map[string]any{"isbn": isbn, "removed": true})
}

// HandleBookAvailability handles GET /api/v1/books/{isbn}/availability.
// Unknown ISBNs report "unknown" rather than 404.
func (h *Handlers) HandleBookAvailability(w http.ResponseWriter, _ *http.Request, isbn string) {
	lib, ok := h.library(w)
	if !ok {
		return
	}

	availability := lib.Availability(isbn)
	response.OK(w, map[string]any{
		"isbn":         isbn,
		"availability": availability,
		"available":    availability == library.AvailabilityAvailable,
	})
}
