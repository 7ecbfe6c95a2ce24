package dto

import "net/http"

// Stable API error codes. Handlers normalize domain error codes into
// this set before writing the response envelope.
const (
	ErrCodeBadRequest   = "ERR_BAD_REQUEST"
	ErrCodeValidation   = "ERR_VALIDATION"
	ErrCodeUnauthorized = "ERR_UNAUTHORIZED"
	ErrCodeForbidden    = "ERR_FORBIDDEN"
	ErrCodeNotFound     = "ERR_NOT_FOUND"
	ErrCodeConflict     = "ERR_CONFLICT"
	ErrCodeInvalidState = "ERR_INVALID_STATE"
	ErrCodeRateLimited  = "ERR_RATE_LIMITED"
	ErrCodeInternal     = "ERR_INTERNAL"
	ErrCodeUnavailable  = "ERR_UNAVAILABLE"
)

// ErrorCodeHTTPStatus maps API error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeBadRequest:   http.StatusBadRequest,
	ErrCodeValidation:   http.StatusBadRequest,
	ErrCodeUnauthorized: http.StatusUnauthorized,
	ErrCodeForbidden:    http.StatusForbidden,
	ErrCodeNotFound:     http.StatusNotFound,
	ErrCodeConflict:     http.StatusConflict,
	ErrCodeInvalidState: http.StatusUnprocessableEntity,
	ErrCodeRateLimited:  http.StatusTooManyRequests,
	ErrCodeInternal:     http.StatusInternalServerError,
	ErrCodeUnavailable:  http.StatusServiceUnavailable,
}

// domainErrorCodeMapping translates domain error codes into API codes.
// Domain codes stay stable; the API surface exposes only the ERR_* set.
var domainErrorCodeMapping = map[string]string{
	"NOT_FOUND":           ErrCodeNotFound,
	"ALREADY_EXISTS":      ErrCodeConflict,
	"INVALID_INPUT":       ErrCodeBadRequest,
	"INVALID_STATE":       ErrCodeInvalidState,
	"CONFIGURATION_ERROR": ErrCodeUnavailable,
	"INVALID_IDENTIFIER":  ErrCodeBadRequest,
	"INVALID_QUANTITY":    ErrCodeBadRequest,
	"INVALID_PHARMACY":    ErrCodeBadRequest,
	"INVALID_DISTRIBUTOR": ErrCodeBadRequest,
	"INVALID_NAME":        ErrCodeBadRequest,
	"INVALID_PRICE":       ErrCodeBadRequest,
}

// NormalizeErrorCode converts a domain error code to its API error code.
// Unknown codes pass through unchanged so new domain codes fail loudly
// in tests rather than being silently remapped.
func NormalizeErrorCode(code string) string {
	if normalized, ok := domainErrorCodeMapping[code]; ok {
		return normalized
	}
	return code
}

// GetHTTPStatus returns the HTTP status code for an API error code,
// defaulting to 500 for unknown codes.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
