// Package response writes the API's JSON envelope. Every body has the shape
// {"data": ..., "error": ...} with exactly one of the two set.
package response

import (
	"net/http"

	jsoniter "github.com/json-iterator/go"

	"github.com/agentstation/bookshelf/pkg/errors"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Response is the envelope of every API reply.
type Response struct {
	Data  any    `json:"data"`
	Error *Error `json:"error"`
}

// Error is the error half of the envelope.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// Success wraps data in an envelope.
func Success(data any) Response {
	return Response{Data: data}
}

// Fail builds an error envelope.
func Fail(code, message, details string) Response {
	return Response{Error: &Error{Code: code, Message: message, Details: details}}
}

// JSON writes resp with status.
func JSON(w http.ResponseWriter, status int, resp Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}

// OK writes data with 200.
func OK(w http.ResponseWriter, data any) {
	JSON(w, http.StatusOK, Success(data))
}

// Created writes data with 201.
func Created(w http.ResponseWriter, data any) {
	JSON(w, http.StatusCreated, Success(data))
}

// NotFound writes a 404 error.
func NotFound(w http.ResponseWriter, message, details string) {
	JSON(w, http.StatusNotFound, Fail("NOT_FOUND", message, details))
}

// ServiceUnavailable writes a 503 error.
func ServiceUnavailable(w http.ResponseWriter, details string) {
	JSON(w, http.StatusServiceUnavailable, Fail("SERVICE_UNAVAILABLE", "Service unavailable", details))
}

// ErrorFromType writes err with the status of its kind. Catalog errors
// carry their message to the client; anything else is a 500 with the cause
// withheld.
func ErrorFromType(w http.ResponseWriter, err error) {
	var status int
	var code string
	switch {
	case errors.IsNotFound(err):
		status, code = http.StatusNotFound, "NOT_FOUND"
	case errors.IsAlreadyExists(err), errors.IsInvalidState(err):
		status, code = http.StatusConflict, "CONFLICT"
	case errors.IsValidationError(err):
		status, code = http.StatusBadRequest, "BAD_REQUEST"
	default:
		JSON(w, http.StatusInternalServerError,
			Fail("INTERNAL_ERROR", "Internal server error", "An unexpected error occurred"))
		return
	}
	JSON(w, status, Fail(code, err.Error(), ""))
}
