package handlers

import (
	"net/http"

	"github.com/agentstation/bookshelf/internal/server/response"
)

// HandleBorrow handles POST /api/v1/users/{id}/borrow/{isbn}.
// Unknown users or books map to 404, an unavailable book to 409.
func (h *Handlers) HandleBorrow(w http.ResponseWriter, r *http.Request, userID, isbn string) {
	lib, ok := h.library(w)
	if !ok {
		return
	}

	outcome, err := lib.BorrowBook(r.Context(), userID, isbn)
	if err == nil {
		err = outcome.Err()
	}
	if err != nil {
		h.fail(w, r, err)
		return
	}
	response.OK(w, outcome)
}

// HandleReturn handles POST /api/v1/users/{id}/return/{isbn}.
// An unknown user maps to 404, a book the user does not hold to 409.
func (h *Handlers) HandleReturn(w http.ResponseWriter, r *http.Request, userID, isbn string) {
	lib, ok := h.library(w)
	if !ok {
		return
	}

	outcome, err := lib.ReturnBook(r.Context(), userID, isbn)
	if err == nil {
		err = outcome.Err()
	}
	if err != nil {
		h.fail(w, r, err)
		return
	}
	response.OK(w, outcome)
}
