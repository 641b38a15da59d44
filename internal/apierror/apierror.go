// Package apierror provides standardized error response structures for the API.
// All errors returned to clients go through this package to ensure consistency
// and to prevent leaking internal details (stack traces, DB errors, etc.).
package apierror

// APIError is the canonical error envelope for all 4xx/5xx HTTP responses.
// Detail carries a user-facing message; Code carries a stable machine token
// (e.g. "not_authorized", "user_not_found") that clients may match on.
type APIError struct {
	Detail string `json:"detail"`
	Code   string `json:"code,omitempty"`
}

func New(msg string) *APIError {
	return &APIError{Detail: msg}
}

// NewCoded builds an error envelope with both a stable token and a message.
func NewCoded(code, msg string) *APIError {
	return &APIError{Detail: msg, Code: code}
}

// Validation wraps multiple field errors.
type ValidationError struct {
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Detail: "Validation error", Fields: fields}
}
