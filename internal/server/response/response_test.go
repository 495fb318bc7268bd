package response

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/agentstation/bookshelf/pkg/errors"
)

// TestSuccess tests the Success helper function.
func TestSuccess(t *testing.T) {
	resp := Success(map[string]string{"message": "success"})

	if resp.Data == nil {
		t.Error("expected Data to be set")
	}
	if resp.Error != nil {
		t.Error("expected Error to be nil")
	}
}

// TestFail tests the Fail helper function.
func TestFail(t *testing.T) {
	resp := Fail("TEST_ERROR", "Test error message", "Additional details")

	if resp.Data != nil {
		t.Error("expected Data to be nil")
	}
	if resp.Error == nil {
		t.Fatal("expected Error to be set")
	}
	if resp.Error.Code != "TEST_ERROR" {
		t.Errorf("expected Code=TEST_ERROR, got %s", resp.Error.Code)
	}
	if resp.Error.Details != "Additional details" {
		t.Errorf("expected Details=Additional details, got %s", resp.Error.Details)
	}
}

// TestJSON tests the envelope encoding.
func TestJSON(t *testing.T) {
	w := httptest.NewRecorder()

	JSON(w, http.StatusOK, Success(map[string]string{"isbn": "1234567891"}))

	if w.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected Content-Type=application/json, got %s", ct)
	}

	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if _, ok := body["data"]; !ok {
		t.Error("expected data field")
	}
	if body["error"] != nil {
		t.Errorf("expected null error, got %v", body["error"])
	}
}

// TestErrorFromType tests mapping of the error taxonomy to status codes.
func TestErrorFromType(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantErr  string
	}{
		{"not found", errors.NewNotFoundError("book", "1"), http.StatusNotFound, "NOT_FOUND"},
		{"already exists", errors.NewAlreadyExistsError("book", "1"), http.StatusConflict, "CONFLICT"},
		{"invalid state", errors.NewStateError("book", "1", "is not available"), http.StatusConflict, "CONFLICT"},
		{"validation", errors.NewValidationError("isbn", "", "cannot be empty"), http.StatusBadRequest, "BAD_REQUEST"},
		{"io", errors.NewIOError("write", "books", errors.New("disk full")), http.StatusInternalServerError, "INTERNAL_ERROR"},
		{"plain", errors.New("boom"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			ErrorFromType(w, tt.err)

			if w.Code != tt.wantCode {
				t.Errorf("expected status %d, got %d", tt.wantCode, w.Code)
			}

			var resp Response
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}
			if resp.Error == nil || resp.Error.Code != tt.wantErr {
				t.Errorf("expected error code %s, got %+v", tt.wantErr, resp.Error)
			}
		})
	}
}
