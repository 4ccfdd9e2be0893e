package parser

import (
	"fmt"
	"io"
	"os"
	"strings"

	stderrors "errors" // Standard errors package

	"github.com/mcncl/univalue/internal/errors" // Custom errors package
	"github.com/mcncl/univalue/pkg/univalue"
)

// Document is a parsed JSON document together with where it came from
type Document struct {
	Root        *univalue.Value
	Source      string
	Size        int
	RootIsArray bool
}

// Parse reads all of reader and builds a value tree from it
func Parse(reader io.Reader, source string, opts ...univalue.Option) (Document, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return Document{}, errors.NewInputError(fmt.Sprintf("failed to read %s", source), err)
	}
	return ParseBytes(data, source, opts...)
}

// ParseBytes builds a value tree from an in-memory buffer
func ParseBytes(data []byte, source string, opts ...univalue.Option) (Document, error) {
	root, err := univalue.Parse(data, opts...)
	if err != nil {
		if stderrors.Is(err, univalue.ErrEmptyInput) {
			return Document{}, errors.NewParsingError(
				fmt.Sprintf("%s is empty or contains only whitespace", source),
				errors.ErrEmptyInput,
			)
		}
		var jerr *univalue.Error
		if stderrors.As(err, &jerr) && jerr.Offset >= 0 {
			return Document{}, errors.NewParsingError(
				fmt.Sprintf("%s: %s error at offset %d", source, jerr.Kind, jerr.Offset),
				err,
			)
		}
		return Document{}, errors.NewParsingError(fmt.Sprintf("%s is not valid JSON", source), err)
	}

	return Document{
		Root:        root,
		Source:      source,
		Size:        len(data),
		RootIsArray: root.IsArray(),
	}, nil
}

// ParseString parses JSON from a string
func ParseString(jsonString string, opts ...univalue.Option) (Document, error) {
	if strings.TrimSpace(jsonString) == "" {
		return Document{}, errors.NewInputError("input string is empty", errors.ErrEmptyInput)
	}
	return ParseBytes([]byte(jsonString), "input", opts...)
}

// ParseFile parses JSON from a file path. The path "-" reads stdin.
func ParseFile(filePath string, opts ...univalue.Option) (Document, error) {
	if strings.TrimSpace(filePath) == "" {
		return Document{}, errors.NewInputError("file path is empty", errors.ErrNoInput)
	}
	if filePath == "-" {
		return Parse(os.Stdin, "stdin", opts...)
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return Document{}, errors.NewInputError(
				fmt.Sprintf("file '%s' not found", filePath),
				errors.ErrFileNotFound,
			)
		}
		return Document{}, errors.NewInputError(
			fmt.Sprintf("failed to open file '%s'", filePath),
			err,
		)
	}
	if len(data) == 0 {
		return Document{}, errors.NewInputError(
			fmt.Sprintf("input file '%s' is empty", filePath),
			errors.ErrEmptyInput,
		)
	}

	return ParseBytes(data, filePath, opts...)
}
