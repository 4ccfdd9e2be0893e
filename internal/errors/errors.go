package errors

import (
	"errors"
	"fmt"

	"github.com/mcncl/univalue/pkg/univalue"
)

// Standard application errors
var (
	ErrEmptyInput     = errors.New("input is empty or contains only whitespace")
	ErrFileNotFound   = errors.New("file not found")
	ErrNoInput        = errors.New("no input provided: please specify a file or pipe JSON data to stdin")
	ErrInvalidPath    = errors.New("invalid lookup path")
	ErrPathNotFound   = errors.New("path not found in document")
	ErrInvalidKind    = errors.New("unknown value kind")
	ErrShapeMismatch  = errors.New("document does not have the required shape")
	ErrFixturesFailed = errors.New("one or more fixtures did not behave as expected")
)

// ErrorType categorizes errors
type ErrorType string

const (
	ErrorTypeInput   ErrorType = "input"
	ErrorTypeParsing ErrorType = "parsing"
	ErrorTypeConfig  ErrorType = "config"
	ErrorTypeLookup  ErrorType = "lookup"
	ErrorTypeOutput  ErrorType = "output"
	ErrorTypeFixture ErrorType = "fixture"
	ErrorTypeUnknown ErrorType = "unknown"
)

// AppError is an application-specific error with context
type AppError struct {
	Type    ErrorType
	Message string
	Err     error
}

// Error implements error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns wrapped error
func (e *AppError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is for comparison
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Type == t.Type
}

// NewInputError creates a new error related to input processing
func NewInputError(message string, err error) *AppError {
	return &AppError{Type: ErrorTypeInput, Message: message, Err: err}
}

// NewParsingError creates a new error related to JSON parsing
func NewParsingError(message string, err error) *AppError {
	return &AppError{Type: ErrorTypeParsing, Message: message, Err: err}
}

// NewConfigError creates a new error related to configuration loading
func NewConfigError(message string, err error) *AppError {
	return &AppError{Type: ErrorTypeConfig, Message: message, Err: err}
}

// NewLookupError creates a new error related to path lookups and shape checks
func NewLookupError(message string, err error) *AppError {
	return &AppError{Type: ErrorTypeLookup, Message: message, Err: err}
}

// NewOutputError creates a new error related to output processing
func NewOutputError(message string, err error) *AppError {
	return &AppError{Type: ErrorTypeOutput, Message: message, Err: err}
}

// NewFixtureError creates a new error related to the fixture harness
func NewFixtureError(message string, err error) *AppError {
	return &AppError{Type: ErrorTypeFixture, Message: message, Err: err}
}

var typePrefixes = map[ErrorType]string{
	ErrorTypeInput:   "Input error",
	ErrorTypeParsing: "JSON parsing error",
	ErrorTypeConfig:  "Configuration error",
	ErrorTypeLookup:  "Lookup error",
	ErrorTypeOutput:  "Output error",
	ErrorTypeFixture: "Fixture error",
}

// sentinelMessages is checked in order for errors that are not an AppError
var sentinelMessages = []struct {
	err error
	msg string
}{
	{ErrEmptyInput, "The input is empty. Please provide valid JSON data."},
	{ErrFileNotFound, "The specified file could not be found. Please check the file path."},
	{ErrNoInput, "No input provided. Please specify a file or pipe JSON data to stdin."},
	{ErrInvalidPath, "Invalid lookup path. Use dotted keys and indexes such as a.b.0.c."},
}

// UserFriendlyError returns a user-friendly error message
func UserFriendlyError(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		prefix, ok := typePrefixes[appErr.Type]
		if !ok {
			prefix = "Error"
		}
		// The reader's own message carries the byte offset
		var jerr *univalue.Error
		if appErr.Type == ErrorTypeParsing && errors.As(appErr.Err, &jerr) {
			return fmt.Sprintf("%s: %s (%s)", prefix, appErr.Message, jerr.Error())
		}
		return fmt.Sprintf("%s: %s", prefix, appErr.Message)
	}

	for _, s := range sentinelMessages {
		if errors.Is(err, s.err) {
			return "Error: " + s.msg
		}
	}

	// Generic error message for unknown errors
	return fmt.Sprintf("Error: %v", err)
}
