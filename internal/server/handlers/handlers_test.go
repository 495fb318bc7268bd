package handlers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"

	"github.com/agentstation/bookshelf/internal/server/cache"
	"github.com/agentstation/bookshelf/pkg/errors"
	"github.com/agentstation/bookshelf/pkg/logging"
)

func TestCachedSkipsValueComputedAcrossFlush(t *testing.T) {
	c := cache.New(time.Minute, 2*time.Minute)
	h := New(nil, c, nil, websocket.Upgrader{}, logging.NewNopLogger())

	rec := httptest.NewRecorder()
	h.cached(rec, "books?q=", func() any {
		// the write's event handler runs while the list is built
		c.Clear()
		return "books-before-write"
	})
	assert.Equal(t, 200, rec.Code)

	_, found := c.Get("books?q=")
	assert.False(t, found)

	rec = httptest.NewRecorder()
	h.cached(rec, "books?q=", func() any { return "books-after-write" })
	v, found := c.Get("books?q=")
	assert.True(t, found)
	assert.Equal(t, "books-after-write", v)
}

func TestFail(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		logged bool
	}{
		{"not found", &errors.NotFoundError{Resource: "book", ID: "1"}, http.StatusNotFound, false},
		{"conflict", &errors.StateError{Resource: "book", ID: "1", Message: "unavailable"}, http.StatusConflict, false},
		{"bad body", errors.WrapValidation("body", fmt.Errorf("unexpected EOF")), http.StatusBadRequest, false},
		{"save failure", errors.WrapIO("write", "users", fmt.Errorf("disk full")), http.StatusInternalServerError, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tl := logging.NewTestLogger(t)
			h := New(nil, cache.New(time.Minute, time.Minute), nil, websocket.Upgrader{}, tl.Logger)

			req := httptest.NewRequest(http.MethodPost, "/api/v1/users/001/borrow/1", nil)
			req = req.WithContext(logging.WithRequestID(req.Context(), "req-7"))
			rec := httptest.NewRecorder()

			h.fail(rec, req, tt.err)

			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.logged, tl.Contains("req-7"))
		})
	}
}
