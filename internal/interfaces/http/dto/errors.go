package dto

import "net/http"

// General error codes
const (
	ErrCodeInternal     = "INTERNAL_ERROR"
	ErrCodeBadRequest   = "BAD_REQUEST"
	ErrCodeUnauthorized = "UNAUTHORIZED"
	ErrCodeForbidden    = "FORBIDDEN"
	ErrCodeNotFound     = "NOT_FOUND"
)

// Domain error codes surfaced by the accounting services
const (
	ErrCodeMissingFilter       = "MISSING_FILTER"
	ErrCodeInvalidDateRange    = "INVALID_DATE_RANGE"
	ErrCodeInvalidCurrency     = "INVALID_CURRENCY"
	ErrCodeInvalidState        = "INVALID_STATE"
	ErrCodeAlreadySubmitted    = "ALREADY_SUBMITTED"
	ErrCodeMissingExchangeRate = "MISSING_EXCHANGE_RATE"
	ErrCodeAlreadyExists       = "ALREADY_EXISTS"
	ErrCodeConflict            = "CONFLICT"
	ErrCodeInvalidInput        = "INVALID_INPUT"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeInternal:     http.StatusInternalServerError,
	ErrCodeBadRequest:   http.StatusBadRequest,
	ErrCodeUnauthorized: http.StatusUnauthorized,
	ErrCodeForbidden:    http.StatusForbidden,
	ErrCodeNotFound:     http.StatusNotFound,

	// Filter validation -> 400 Bad Request
	ErrCodeMissingFilter:    http.StatusBadRequest,
	ErrCodeInvalidDateRange: http.StatusBadRequest,
	ErrCodeInvalidCurrency:  http.StatusBadRequest,
	ErrCodeInvalidInput:     http.StatusBadRequest,

	// Workflow violations -> 422, double submits -> 409
	ErrCodeInvalidState:     http.StatusUnprocessableEntity,
	ErrCodeAlreadySubmitted: http.StatusConflict,
	ErrCodeAlreadyExists:    http.StatusConflict,
	ErrCodeConflict:         http.StatusConflict,

	// Reports cannot convert without a rate
	ErrCodeMissingExchangeRate: http.StatusUnprocessableEntity,
}

// GetHTTPStatus returns the HTTP status code for an error code.
// Unknown codes map to 500 Internal Server Error.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
