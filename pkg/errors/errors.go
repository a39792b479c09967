// Package errors carries the failure codes shared by the antcolor CLI and
// HTTP API.
//
// Library packages return plain sentinel errors (graph.ErrSelfLoop,
// colony.ErrInvalidParams, io.ErrInvalidColoring, ...). The pipeline maps
// them to a [Code] at the boundary, so the CLI can pick an exit status and
// the API a response status without knowing every sentinel.
//
// # Codes
//
// Bad input, reported as exit status 2 or HTTP 400:
//   - INVALID_GRAPH: self-loops, asymmetric lists, vertex ids out of range
//   - INVALID_PARAMS: colony parameters outside their domain
//   - INVALID_FORMAT: an output format other than svg, pdf, png, dot or json
//   - INVALID_INPUT: malformed files, requests or result documents
//   - INVALID_CONFIG, INVALID_PATH
//
// Everything else (FILE_NOT_FOUND, CANCELED, INTERNAL_ERROR) is not the
// caller's fault in the same way and maps to exit status 1 or 130.
//
// # Usage
//
//	g, err := graph.FromAdjacencyList(lists)
//	if err != nil {
//	    return errors.Wrap(errors.ErrCodeInvalidGraph, err, "load %s", path)
//	}
//
//	if errors.Is(err, errors.ErrCodeInvalidParams) {
//	    // point the user at --rho, --tau0, ...
//	}
package errors

import (
	"context"
	"errors"
	"fmt"
)

// Code is a machine-readable failure category.
type Code string

const (
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidGraph  Code = "INVALID_GRAPH"
	ErrCodeInvalidParams Code = "INVALID_PARAMS"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeInvalidConfig Code = "INVALID_CONFIG"
	ErrCodeInvalidPath   Code = "INVALID_PATH"

	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	// ErrCodeCanceled marks runs stopped by Ctrl-C or a request timeout.
	ErrCodeCanceled Code = "CANCELED"

	ErrCodeInternal Code = "INTERNAL_ERROR"
)

// Exit statuses returned by [ExitCode].
const (
	ExitFailure     = 1
	ExitBadInput    = 2
	ExitInterrupted = 130
)

// Error is a coded failure. Message says what antcolor was doing ("load
// graph.txt", "color graph"); Cause holds the library error, if any.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap exposes Cause, so errors.Is still finds graph and io sentinels.
func (e *Error) Unwrap() error { return e.Cause }

// New returns a coded error without a cause.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a code and the current step to a library error, for
// example Wrap(ErrCodeInvalidGraph, graph.ErrSelfLoop, "load %s", path).
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// Is reports whether the outermost *Error in err's chain has code.
func Is(err error, code Code) bool {
	return GetCode(err) == code && code != ""
}

// GetCode returns the code of the outermost *Error in err's chain, or "" if
// there is none.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage is what the CLI prints and the API returns as "message": the
// step and the cause without the code prefix, e.g. "load g.txt: vertex 3:
// self-loop".
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

// IsClientError reports whether err was caused by the graph, parameters,
// formats or files the user supplied.
func IsClientError(err error) bool {
	switch GetCode(err) {
	case ErrCodeInvalidInput, ErrCodeInvalidGraph, ErrCodeInvalidParams,
		ErrCodeInvalidFormat, ErrCodeInvalidConfig, ErrCodeInvalidPath:
		return true
	}
	return false
}

// ExitCode maps err to the process exit status: 0 on success, 130 when the
// run was interrupted, 2 for bad input and 1 otherwise.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, context.Canceled):
		return ExitInterrupted
	case IsClientError(err):
		return ExitBadInput
	}
	return ExitFailure
}
