package univalue

import (
	"errors"
	"fmt"
)

// Standard errors, matched with errors.Is against any *Error of the same kind.
var (
	ErrLexical      = &Error{Kind: ErrorKindLexical}
	ErrGrammar      = &Error{Kind: ErrorKindGrammar}
	ErrTypeMismatch = &Error{Kind: ErrorKindType}
	ErrNumber       = &Error{Kind: ErrorKindNumber}

	ErrEmptyInput   = errors.New("input is empty or contains only whitespace")
	ErrTooDeep      = errors.New("maximum nesting depth exceeded")
	ErrDuplicateKey = errors.New("duplicate object key")
)

// ErrorKind categorizes errors
type ErrorKind string

const (
	ErrorKindLexical ErrorKind = "lexical"
	ErrorKindGrammar ErrorKind = "grammar"
	ErrorKindType    ErrorKind = "type"
	ErrorKindNumber  ErrorKind = "number"
)

// Error is returned by Read and by the typed getters.
type Error struct {
	Kind ErrorKind
	// Offset is the input byte offset for lexical and grammar errors, -1
	// otherwise.
	Offset  int
	Message string
	Err     error
}

// Error implements error interface
func (e *Error) Error() string {
	msg := e.Message
	if e.Offset >= 0 && (e.Kind == ErrorKindLexical || e.Kind == ErrorKindGrammar) {
		msg = fmt.Sprintf("%s at offset %d", msg, e.Offset)
	}
	if e.Err != nil {
		return fmt.Sprintf("json %s error: %s: %v", e.Kind, msg, e.Err)
	}
	return fmt.Sprintf("json %s error: %s", e.Kind, msg)
}

// Unwrap returns wrapped error
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *Error of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

func lexicalError(offset int, message string) *Error {
	return &Error{Kind: ErrorKindLexical, Offset: offset, Message: message}
}

func grammarError(offset int, message string, err error) *Error {
	return &Error{Kind: ErrorKindGrammar, Offset: offset, Message: message, Err: err}
}

func typeError(want, got Kind) *Error {
	return &Error{
		Kind:    ErrorKindType,
		Offset:  -1,
		Message: fmt.Sprintf("expected %s, got %s", want, got),
	}
}

func numberError(text, want string, err error) *Error {
	return &Error{
		Kind:    ErrorKindNumber,
		Offset:  -1,
		Message: fmt.Sprintf("%q is not a valid %s", text, want),
		Err:     err,
	}
}
