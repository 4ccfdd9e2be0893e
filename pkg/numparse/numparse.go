// Package numparse parses validated JSON number lexemes into fixed-width Go
// numeric types.
//
// The parsers are strict: the whole input must be consumed, no surrounding
// whitespace is allowed and the value must fit the requested width.
package numparse

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var (
	// ErrSyntax reports that the input is not a number of the requested form.
	ErrSyntax = errors.New("invalid number syntax")
	// ErrRange reports that the input does not fit the requested type.
	ErrRange = errors.New("number out of range")
)

// prechecks rejects input that strconv would accept but a JSON number lexeme
// can never contain.
func prechecks(s string) error {
	if s == "" {
		return ErrSyntax
	}
	if isSpace(s[0]) || isSpace(s[len(s)-1]) {
		return ErrSyntax
	}
	if strings.IndexByte(s, 0) >= 0 {
		return ErrSyntax
	}
	// strconv accepts hex, octal and binary prefixes, underscores and the
	// Inf/NaN spellings; none of them are JSON.
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case c >= '0' && c <= '9':
		case c == '-' || c == '+' || c == '.' || c == 'e' || c == 'E':
		default:
			return ErrSyntax
		}
	}
	return nil
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\v' || c == '\f'
}

func convert(s string, err error) error {
	var numErr *strconv.NumError
	if errors.As(err, &numErr) && errors.Is(numErr.Err, strconv.ErrRange) {
		return fmt.Errorf("%q: %w", s, ErrRange)
	}
	return fmt.Errorf("%q: %w", s, ErrSyntax)
}

// ParseInt32 parses s as a base-10 signed 32-bit integer.
func ParseInt32(s string) (int32, error) {
	if err := prechecks(s); err != nil {
		return 0, fmt.Errorf("%q: %w", s, err)
	}
	n, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		return 0, convert(s, err)
	}
	return int32(n), nil
}

// ParseInt64 parses s as a base-10 signed 64-bit integer.
func ParseInt64(s string) (int64, error) {
	if err := prechecks(s); err != nil {
		return 0, fmt.Errorf("%q: %w", s, err)
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, convert(s, err)
	}
	return n, nil
}

// ParseUint64 parses s as a base-10 unsigned 64-bit integer. A leading sign
// is rejected.
func ParseUint64(s string) (uint64, error) {
	if err := prechecks(s); err != nil {
		return 0, fmt.Errorf("%q: %w", s, err)
	}
	if s[0] == '-' || s[0] == '+' {
		return 0, fmt.Errorf("%q: %w", s, ErrSyntax)
	}
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, convert(s, err)
	}
	return n, nil
}

// ParseDouble parses s as a float64. Values that overflow to infinity are
// reported as ErrRange.
func ParseDouble(s string) (float64, error) {
	if err := prechecks(s); err != nil {
		return 0, fmt.Errorf("%q: %w", s, err)
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, convert(s, err)
	}
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, fmt.Errorf("%q: %w", s, ErrRange)
	}
	return f, nil
}
