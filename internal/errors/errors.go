// Package errors defines stable error codes for all analysis failure modes.
package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents stable error codes for all failure modes
type ErrorCode string

const (
	// SyntaxError indicates the source file could not be parsed into a syntax tree
	SyntaxError ErrorCode = "SYNTAX_ERROR"
	// NotFound indicates the requested input file does not exist
	NotFound ErrorCode = "NOT_FOUND"
	// ParserUnavailable indicates tree-sitter support was compiled out
	ParserUnavailable ErrorCode = "PARSER_UNAVAILABLE"
	// InternalError indicates an unexpected error
	InternalError ErrorCode = "INTERNAL_ERROR"
)

// Position is a best-effort source location attached to syntax errors.
// Line is 1-based, Column is 0-based.
type Position struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

// VerifierError represents an analysis error with a stable code and message
type VerifierError struct {
	Code     ErrorCode `json:"code"`
	Message  string    `json:"message"`
	File     string    `json:"file,omitempty"`
	Position *Position `json:"position,omitempty"`
	cause    error
}

// New creates a new VerifierError
func New(code ErrorCode, message string, cause error) *VerifierError {
	return &VerifierError{
		Code:    code,
		Message: message,
		cause:   cause,
	}
}

// Error implements the error interface
func (e *VerifierError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *VerifierError) Unwrap() error {
	return e.cause
}

// WithFile attaches the file identifier used for error reporting
func (e *VerifierError) WithFile(file string) *VerifierError {
	e.File = file
	return e
}

// WithPosition attaches a best-effort source position
func (e *VerifierError) WithPosition(line, column int) *VerifierError {
	e.Position = &Position{Line: line, Column: column}
	return e
}

// CodeOf returns the error code carried by err, or InternalError when err
// does not wrap a VerifierError.
func CodeOf(err error) ErrorCode {
	var ve *VerifierError
	if errors.As(err, &ve) {
		return ve.Code
	}
	return InternalError
}
