// Package errors provides standardized error handling for the analysis API.
package errors

import (
	"fmt"
	"net/http"
	"time"
)

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeInvalidRequest         ErrorCode = "INVALID_REQUEST"
	ErrCodeUpstreamCallFailed     ErrorCode = "UPSTREAM_CALL_FAILED"
	ErrCodeUpstreamTimeout        ErrorCode = "UPSTREAM_TIMEOUT"
	ErrCodeSchemaValidationFailed ErrorCode = "SCHEMA_VALIDATION_FAILED"
	ErrCodeCacheUnavailable       ErrorCode = "CACHE_UNAVAILABLE"
	ErrCodeInternal               ErrorCode = "INTERNAL_ERROR"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode `json:"code"`
	Message   string    `json:"message"`
	Details   string    `json:"details,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// HTTPStatus maps an error code to the status the handler should write.
// Only INVALID_REQUEST and SCHEMA_VALIDATION_FAILED are client-visible by
// policy; upstream codes exist for logs and metrics and are masked by the
// fallback before they reach a handler.
func (e *StandardError) HTTPStatus() int {
	switch e.Code {
	case ErrCodeInvalidRequest, ErrCodeSchemaValidationFailed:
		return http.StatusUnprocessableEntity
	case ErrCodeUpstreamTimeout:
		return http.StatusGatewayTimeout
	case ErrCodeUpstreamCallFailed, ErrCodeCacheUnavailable:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func newError(code ErrorCode, message, details string) *StandardError {
	return &StandardError{
		Code:      code,
		Message:   message,
		Details:   details,
		Timestamp: time.Now().UTC(),
	}
}

// NewInvalidRequestError creates a client-visible request validation error.
func NewInvalidRequestError(details string) *StandardError {
	return newError(ErrCodeInvalidRequest, "request validation failed", details)
}

// NewSchemaValidationError creates a client-visible response schema error.
func NewSchemaValidationError(details string) *StandardError {
	return newError(ErrCodeSchemaValidationFailed, "analysis result failed schema validation", details)
}

// NewUpstreamCallError creates an operator-facing upstream failure error.
func NewUpstreamCallError(details string) *StandardError {
	return newError(ErrCodeUpstreamCallFailed, "upstream completion call failed", details)
}

// NewUpstreamTimeoutError creates an operator-facing upstream timeout error.
func NewUpstreamTimeoutError(details string) *StandardError {
	return newError(ErrCodeUpstreamTimeout, "upstream completion call timed out", details)
}

// NewCacheUnavailableError creates an operator-facing cache backend error.
func NewCacheUnavailableError(details string) *StandardError {
	return newError(ErrCodeCacheUnavailable, "result cache unavailable", details)
}
