// Package errors provides the standardized error taxonomy for the
// itinerary pipeline.
package errors

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	// Terminal for an itinerary request: the OCR backend produced no text.
	ErrCodeOCRFailed ErrorCode = "OCR_FAILED"
	// Terminal for an itinerary request: no destination resolved from text.
	ErrCodeExtractionFailed ErrorCode = "EXTRACTION_FAILED"

	// Absorbed locally: the search backend degrades to a synthetic
	// error-tagged result rather than propagating.
	ErrCodeSearchBackendFailed ErrorCode = "SEARCH_BACKEND_FAILED"
	// Absorbed locally: the generation backend degrades to an error
	// object rather than propagating.
	ErrCodeGenerationFailed ErrorCode = "GENERATION_FAILED"

	ErrCodeSessionStoreFailed ErrorCode = "SESSION_STORE_FAILED"
	ErrCodeInvalidRequest     ErrorCode = "INVALID_REQUEST"
)

// PipelineError represents a structured application error. Nothing in
// the pipeline retries; Retryable is advisory for callers outside the
// request path.
type PipelineError struct {
	Code      ErrorCode `json:"code"`
	Message   string    `json:"message"`
	Details   string    `json:"details,omitempty"`
	Retryable bool      `json:"retryable"`
	Timestamp time.Time `json:"timestamp"`
}

func (e *PipelineError) Error() string {
	return fmt.Sprintf("PipelineError[%s]: %s", e.Code, e.Message)
}

// NewOCRFailedError creates a terminal OCR error (no text extracted).
func NewOCRFailedError(details string) *PipelineError {
	return &PipelineError{
		Code:      ErrCodeOCRFailed,
		Message:   "OCR failed to extract text",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewExtractionFailedError creates a terminal extraction error (no
// destination found in the extracted data).
func NewExtractionFailedError(details string) *PipelineError {
	return &PipelineError{
		Code:      ErrCodeExtractionFailed,
		Message:   "Destination not found in extracted data",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewSearchBackendError wraps a search transport failure.
func NewSearchBackendError(err error) *PipelineError {
	return &PipelineError{
		Code:      ErrCodeSearchBackendFailed,
		Message:   "Live search failed",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewGenerationFailedError wraps a generation backend failure.
func NewGenerationFailedError(err error) *PipelineError {
	return &PipelineError{
		Code:      ErrCodeGenerationFailed,
		Message:   "Generation backend call failed",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewSessionStoreError wraps a session store failure.
func NewSessionStoreError(err error) *PipelineError {
	return &PipelineError{
		Code:      ErrCodeSessionStoreFailed,
		Message:   "Session store operation failed",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewInvalidRequestError creates a request validation error.
func NewInvalidRequestError(details string) *PipelineError {
	return &PipelineError{
		Code:      ErrCodeInvalidRequest,
		Message:   "Invalid request",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// HTTPStatus maps an error code to a transport status. Only the
// outermost request handler translates internal failures; the status
// values mirror the original API surface (OCR terminal failure is a
// server-side 500, a missing destination is a 400).
func HTTPStatus(code ErrorCode) int {
	switch code {
	case ErrCodeOCRFailed:
		return http.StatusInternalServerError
	case ErrCodeExtractionFailed:
		return http.StatusBadRequest
	case ErrCodeInvalidRequest:
		return http.StatusBadRequest
	case ErrCodeGenerationFailed:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// AsPipelineError unwraps err into a *PipelineError when possible.
func AsPipelineError(err error) (*PipelineError, bool) {
	var pe *PipelineError
	if errors.As(err, &pe) {
		return pe, true
	}
	return nil, false
}

// Category returns a coarse grouping of the error code, used as a
// metrics label.
func Category(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.Contains(codeStr, "OCR"):
		return "OCR"
	case strings.Contains(codeStr, "EXTRACTION"):
		return "EXTRACTION"
	case strings.Contains(codeStr, "SEARCH"):
		return "SEARCH"
	case strings.Contains(codeStr, "GENERATION"):
		return "GENERATION"
	case strings.Contains(codeStr, "SESSION"):
		return "SESSION"
	default:
		return "OTHER"
	}
}
