package errors

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorType represents different categories of errors.
type ErrorType string

const (
	ErrorTypeExtraction ErrorType = "extraction"
	ErrorTypeLex        ErrorType = "lex"
	ErrorTypeSyntax     ErrorType = "syntax"
	ErrorTypeRender     ErrorType = "render"
	ErrorTypeIO         ErrorType = "io"
	ErrorTypeConfig     ErrorType = "config"
	ErrorTypeInternal   ErrorType = "internal"
)

// TransformError is a structured error type with context.
type TransformError struct {
	Type        ErrorType
	Code        string
	Message     string
	Cause       error
	Tag         string
	FilePath    string
	Offset      int
	Recoverable bool
}

// Error implements the error interface.
func (e *TransformError) Error() string {
	var parts []string

	if e.Code != "" {
		parts = append(parts, fmt.Sprintf("[%s]", e.Code))
	}

	if e.Tag != "" {
		parts = append(parts, "tag:"+e.Tag)
	}

	if e.FilePath != "" {
		location := e.FilePath
		if e.Offset > 0 {
			location += fmt.Sprintf("@%d", e.Offset)
		}
		parts = append(parts, location)
	}

	parts = append(parts, e.Message)

	result := strings.Join(parts, " ")

	if e.Cause != nil {
		result += fmt.Sprintf(": %v", e.Cause)
	}

	return result
}

// Unwrap returns the underlying cause error.
func (e *TransformError) Unwrap() error {
	return e.Cause
}

// Is implements error comparison.
func (e *TransformError) Is(target error) bool {
	var t *TransformError
	if errors.As(target, &t) {
		return e.Type == t.Type && e.Code == t.Code
	}

	return false
}

// WithTag adds the tag being processed when the error occurred.
func (e *TransformError) WithTag(tag string) *TransformError {
	e.Tag = tag

	return e
}

// WithLocation adds file location information.
func (e *TransformError) WithLocation(filePath string, offset int) *TransformError {
	e.FilePath = filePath
	e.Offset = offset

	return e
}

// Error creation functions

// NewLexError creates a lexical error (unterminated string or code block).
func NewLexError(code, message string) *TransformError {
	return &TransformError{
		Type:        ErrorTypeLex,
		Code:        code,
		Message:     message,
		Recoverable: true,
	}
}

// NewSyntaxError creates a structural parse error. Fatal to the one match
// being parsed, never to the overall run.
func NewSyntaxError(code, message string) *TransformError {
	return &TransformError{
		Type:        ErrorTypeSyntax,
		Code:        code,
		Message:     message,
		Recoverable: true,
	}
}

// NewRenderError creates an output generation error.
func NewRenderError(code, message string) *TransformError {
	return &TransformError{
		Type:        ErrorTypeRender,
		Code:        code,
		Message:     message,
		Recoverable: true,
	}
}

// NewIOError creates an I/O error.
func NewIOError(code, message string, cause error) *TransformError {
	return &TransformError{
		Type:        ErrorTypeIO,
		Code:        code,
		Message:     message,
		Cause:       cause,
		Recoverable: false,
	}
}

// NewConfigError creates a configuration error.
func NewConfigError(code, message string) *TransformError {
	return &TransformError{
		Type:        ErrorTypeConfig,
		Code:        code,
		Message:     message,
		Recoverable: false,
	}
}

// NewInternalError creates an internal error.
func NewInternalError(code, message string, cause error) *TransformError {
	return &TransformError{
		Type:        ErrorTypeInternal,
		Code:        code,
		Message:     message,
		Cause:       cause,
		Recoverable: false,
	}
}

// IsRecoverable checks if an error is recoverable.
func IsRecoverable(err error) bool {
	var te *TransformError
	if errors.As(err, &te) {
		return te.Recoverable
	}

	return false
}

// IsType checks whether err carries the given error type.
func IsType(err error, t ErrorType) bool {
	var te *TransformError
	if errors.As(err, &te) {
		return te.Type == t
	}

	return false
}
