package dto

import (
	"net/http"
	"strings"
)

// HTTP-layer error codes. Domain errors carry their own codes, which are
// passed through to clients unchanged.
const (
	// ErrCodeInternal is used for internal server errors
	ErrCodeInternal = "INTERNAL_ERROR"
	// ErrCodeBadRequest is used for malformed requests
	ErrCodeBadRequest = "BAD_REQUEST"
	// ErrCodeValidation is used when request binding or validation fails
	ErrCodeValidation = "VALIDATION_ERROR"
	// ErrCodeUnauthorized is used when authentication is required but missing or invalid
	ErrCodeUnauthorized = "UNAUTHORIZED"
	// ErrCodeForbidden is used when the user lacks permission
	ErrCodeForbidden = "FORBIDDEN"
	// ErrCodeNotFound is used when a resource is not found
	ErrCodeNotFound = "NOT_FOUND"
	// ErrCodeRequestTooLarge is used when a request body exceeds the limit
	ErrCodeRequestTooLarge = "REQUEST_TOO_LARGE"
)

// errorCodeHTTPStatus maps error codes to HTTP status codes
var errorCodeHTTPStatus = map[string]int{
	ErrCodeInternal:        http.StatusInternalServerError,
	ErrCodeBadRequest:      http.StatusBadRequest,
	ErrCodeValidation:      http.StatusBadRequest,
	ErrCodeUnauthorized:    http.StatusUnauthorized,
	ErrCodeForbidden:       http.StatusForbidden,
	ErrCodeNotFound:        http.StatusNotFound,
	ErrCodeRequestTooLarge: http.StatusRequestEntityTooLarge,

	// Authentication and account state
	"INVALID_CREDENTIALS": http.StatusUnauthorized,
	"TOKEN_EXPIRED":       http.StatusUnauthorized,
	"INVALID_TOKEN":       http.StatusUnauthorized,
	"TOKEN_REVOKED":       http.StatusUnauthorized,
	"ACCOUNT_PENDING":     http.StatusForbidden,

	// Registration and confirmation
	"EMAIL_TAKEN":   http.StatusConflict,
	"TOKEN_INVALID": http.StatusBadRequest,
	"TOKEN_USED":    http.StatusBadRequest,

	// Resource conflicts and state
	"ALREADY_EXISTS":       http.StatusConflict,
	"CONCURRENCY_CONFLICT": http.StatusConflict,
	"INVALID_STATE":        http.StatusUnprocessableEntity,
	"EMPTY_BASKET":         http.StatusUnprocessableEntity,
	"TOO_MANY_CONTACTS":    http.StatusUnprocessableEntity,

	// Feed import
	"INVALID_FEED": http.StatusBadRequest,
}

// GetHTTPStatus returns the HTTP status code for an error code. Codes not
// listed explicitly fall back on their naming convention, then to 500.
func GetHTTPStatus(code string) int {
	if status, ok := errorCodeHTTPStatus[code]; ok {
		return status
	}
	if strings.HasSuffix(code, "_NOT_FOUND") {
		return http.StatusNotFound
	}
	if strings.HasPrefix(code, "INVALID_") {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
