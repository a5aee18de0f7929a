package apierror

import (
	"fmt"
	"net/http"
)

// APIError is the closed error taxonomy carried from services to the HTTP
// boundary, where Code/HTTPStatus are mapped onto the response envelope.
type APIError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	Details    string `json:"details,omitempty"`
	HTTPStatus int    `json:"-"`
}

func (e *APIError) Error() string {
	if e == nil {
		return ""
	}

	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Details)
	}

	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func New(code string, message string, details string, status int) *APIError {
	return &APIError{Code: code, Message: message, Details: details, HTTPStatus: status}
}

// Conflict reports a duplicate resource; details names the offending field.
func Conflict(message string, details string) *APIError {
	return New("CONFLICT", message, details, http.StatusConflict)
}

// Unauthorized reports a failed credential or token check.
func Unauthorized(message string) *APIError {
	return New("UNAUTHORIZED", message, "", http.StatusUnauthorized)
}

// NotFound reports an absent user, subject, post, or session owner.
func NotFound(message string) *APIError {
	return New("NOT_FOUND", message, "", http.StatusNotFound)
}

// BadRequest reports a malformed or invalid request payload.
func BadRequest(message string, details string) *APIError {
	return New("BAD_REQUEST", message, details, http.StatusBadRequest)
}
