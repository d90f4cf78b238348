package dto

import "net/http"

// General error codes
const (
	ErrCodeInternal   = "INTERNAL_ERROR"
	ErrCodeBadRequest = "BAD_REQUEST"
)

// ErrorCodeHTTPStatus maps domain error codes to HTTP status codes.
// Codes not listed here resolve to 500.
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeInternal:   http.StatusInternalServerError,
	ErrCodeBadRequest: http.StatusBadRequest,

	// Input errors -> 400
	"VALIDATION_ERROR":   http.StatusBadRequest,
	"INVALID_INPUT":      http.StatusBadRequest,
	"INVALID_FILE":       http.StatusBadRequest,
	"INVALID_EMAIL":      http.StatusBadRequest,
	"INVALID_PASSWORD":   http.StatusBadRequest,
	"INVALID_NAME":       http.StatusBadRequest,
	"INVALID_DOMAIN":     http.StatusBadRequest,
	"INVALID_JOB_NAME":   http.StatusBadRequest,
	"INVALID_STRATEGY":   http.StatusBadRequest,
	"MISSING_IDENTIFIER": http.StatusBadRequest,

	// Auth errors
	"UNAUTHORIZED":        http.StatusUnauthorized,
	"INVALID_CREDENTIALS": http.StatusUnauthorized,
	"TOKEN_EXPIRED":       http.StatusUnauthorized,
	"TOKEN_INVALID":       http.StatusUnauthorized,
	"TOKEN_REVOKED":       http.StatusUnauthorized,
	"FORBIDDEN":           http.StatusForbidden,
	"ACCOUNT_DISABLED":    http.StatusForbidden,

	// Resource errors
	"NOT_FOUND":      http.StatusNotFound,
	"USER_NOT_FOUND": http.StatusNotFound,
	"ALREADY_EXISTS": http.StatusConflict,
	"EMAIL_TAKEN":    http.StatusConflict,

	// Business rule errors -> 422
	"INVALID_STATE":    http.StatusUnprocessableEntity,
	"ALREADY_ACTIVE":   http.StatusUnprocessableEntity,
	"ALREADY_DISABLED": http.StatusUnprocessableEntity,
}

// GetHTTPStatus returns the HTTP status code for an error code.
// Returns 500 Internal Server Error if the error code is not found.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
