// Package errors provides structured error types for waypath.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across CLI and API
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// Library packages (graph, heuristic, search) return plain sentinel errors.
// [Classify] maps those sentinels onto codes at the CLI and API boundary.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidInput, "origin is required")
//	if errors.Is(err, errors.ErrCodeInvalidInput) {
//	    // Handle validation error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeFileNotFound, origErr, "load %s", path)
package errors

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"

	"github.com/matzehuels/waypath/pkg/graph"
	"github.com/matzehuels/waypath/pkg/heuristic"
	wio "github.com/matzehuels/waypath/pkg/io"
	"github.com/matzehuels/waypath/pkg/search"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput     Code = "INVALID_INPUT"
	ErrCodeInvalidAlgorithm Code = "INVALID_ALGORITHM"
	ErrCodeInvalidWeight    Code = "INVALID_WEIGHT"
	ErrCodeInvalidFormat    Code = "INVALID_FORMAT"

	// Resource not found errors
	ErrCodeNodeNotFound     Code = "NODE_NOT_FOUND"
	ErrCodeFileNotFound     Code = "FILE_NOT_FOUND"
	ErrCodeMissingHeuristic Code = "MISSING_HEURISTIC"
	ErrCodeNoPathFound      Code = "NO_PATH_FOUND"

	// Runtime errors
	ErrCodeTimeout  Code = "TIMEOUT"
	ErrCodeInternal Code = "INTERNAL_ERROR"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		if e.Cause != nil {
			return e.Message + ": " + e.Cause.Error()
		}
		return e.Message
	}
	return err.Error()
}

// Classify returns the code for err. Coded errors keep their code; known
// sentinels from the graph, heuristic, io and search packages are mapped;
// everything else is ErrCodeInternal.
func Classify(err error) Code {
	if err == nil {
		return ""
	}
	if code := GetCode(err); code != "" {
		return code
	}
	switch {
	case errors.Is(err, graph.ErrNodeNotFound):
		return ErrCodeNodeNotFound
	case errors.Is(err, graph.ErrInvalidWeight), errors.Is(err, heuristic.ErrInvalidEstimate):
		return ErrCodeInvalidWeight
	case errors.Is(err, graph.ErrInvalidNodeID), errors.Is(err, graph.ErrSelfLoop):
		return ErrCodeInvalidInput
	case errors.Is(err, heuristic.ErrMissingHeuristic):
		return ErrCodeMissingHeuristic
	case errors.Is(err, search.ErrNoPathFound), errors.Is(err, search.ErrNoUnvisitedNeighbor):
		return ErrCodeNoPathFound
	case errors.Is(err, wio.ErrMalformed):
		return ErrCodeInvalidFormat
	case errors.Is(err, search.ErrUnknownAlgorithm):
		return ErrCodeInvalidAlgorithm
	case errors.Is(err, fs.ErrNotExist):
		return ErrCodeFileNotFound
	case errors.Is(err, context.DeadlineExceeded):
		return ErrCodeTimeout
	}
	return ErrCodeInternal
}

// HTTPStatus maps a code to the HTTP status the API responds with.
func HTTPStatus(code Code) int {
	switch code {
	case ErrCodeInvalidInput, ErrCodeInvalidAlgorithm, ErrCodeInvalidWeight, ErrCodeInvalidFormat:
		return http.StatusBadRequest
	case ErrCodeNodeNotFound, ErrCodeFileNotFound, ErrCodeNoPathFound:
		return http.StatusNotFound
	case ErrCodeMissingHeuristic:
		return http.StatusUnprocessableEntity
	case ErrCodeTimeout:
		return http.StatusGatewayTimeout
	}
	return http.StatusInternalServerError
}
