// Package schema checks value trees against a small JSON Schema subset and
// against key=kind requirement lists.
package schema

import (
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	jsoniter "github.com/json-iterator/go"

	"github.com/mcncl/univalue/internal/errors"
	"github.com/mcncl/univalue/internal/query"
	"github.com/mcncl/univalue/pkg/univalue"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// SchemaType handles JSON Schema type field which can be string or array of strings
type SchemaType struct {
	Types []string
}

// UnmarshalJSON handles both string and array forms of type
func (st *SchemaType) UnmarshalJSON(data []byte) error {
	// Try string first
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		st.Types = []string{s}
		return nil
	}

	// Try array of strings
	var arr []string
	if err := json.Unmarshal(data, &arr); err == nil {
		st.Types = arr
		return nil
	}

	return fmt.Errorf("type must be string or array of strings")
}

// Allows reports whether v has one of the listed types. An empty type list
// accepts everything.
func (st SchemaType) Allows(v *univalue.Value) bool {
	if len(st.Types) == 0 {
		return true
	}
	for _, name := range st.Types {
		if name == "integer" {
			if v.IsNum() {
				if _, err := v.GetInt64(); err == nil {
					return true
				}
			}
			continue
		}
		if kind, ok := kindOf(name); ok && kind == v.Type() {
			return true
		}
	}
	return false
}

// single returns the one kind this type names, if it names exactly one
// kind that CheckObject can test.
func (st SchemaType) single() (univalue.Kind, bool) {
	if len(st.Types) != 1 || st.Types[0] == "integer" {
		return univalue.Null, false
	}
	return kindOf(st.Types[0])
}

// kindOf maps JSON Schema type names onto value kinds
func kindOf(name string) (univalue.Kind, bool) {
	if name == "boolean" {
		return univalue.Bool, true
	}
	return univalue.ParseKind(name)
}

// Schema represents the supported subset of a JSON Schema document
type Schema struct {
	Title       string     `json:"title,omitempty"`
	Description string     `json:"description,omitempty"`
	Type        SchemaType `json:"type,omitempty"`

	// Object properties
	Properties           map[string]*Schema `json:"properties,omitempty"`
	Required             []string           `json:"required,omitempty"`
	AdditionalProperties *bool              `json:"additionalProperties,omitempty"`

	// Array items
	Items    *Schema `json:"items,omitempty"`
	MinItems *int    `json:"minItems,omitempty"`
	MaxItems *int    `json:"maxItems,omitempty"`

	// String constraints
	MinLength *int `json:"minLength,omitempty"`
	MaxLength *int `json:"maxLength,omitempty"`
}

// ParseFile reads and parses a JSON Schema from a file
func ParseFile(path string) (*Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NewInputError(fmt.Sprintf("failed to read schema file '%s'", path), err)
	}

	return ParseBytes(data)
}

// ParseBytes parses JSON Schema from bytes
func ParseBytes(data []byte) (*Schema, error) {
	var schema Schema
	if err := json.Unmarshal(data, &schema); err != nil {
		return nil, errors.NewParsingError("failed to parse JSON Schema", err)
	}

	return &schema, nil
}

// ParseString parses JSON Schema from a string
func ParseString(s string) (*Schema, error) {
	return ParseBytes([]byte(s))
}

// FromRequirements builds an object schema from "key=kind" pairs, where kind
// is one of null, bool, number, string, array or object.
func FromRequirements(reqs []string) (*Schema, error) {
	s := &Schema{
		Type:       SchemaType{Types: []string{"object"}},
		Properties: make(map[string]*Schema, len(reqs)),
	}
	for _, req := range reqs {
		key, name, ok := strings.Cut(req, "=")
		if !ok || key == "" {
			return nil, errors.NewLookupError(fmt.Sprintf("requirement %q is not of the form key=kind", req), errors.ErrInvalidKind)
		}
		if _, ok := univalue.ParseKind(name); !ok {
			return nil, errors.NewLookupError(fmt.Sprintf("requirement %q names unknown kind %q", req, name), errors.ErrInvalidKind)
		}
		if _, seen := s.Properties[key]; !seen {
			s.Required = append(s.Required, key)
		}
		s.Properties[key] = &Schema{Type: SchemaType{Types: []string{name}}}
	}
	return s, nil
}

// Violation is one place where a value does not match its schema
type Violation struct {
	Path    string
	Message string
}

func (v Violation) String() string {
	if v.Path == "" {
		return v.Message
	}
	return v.Path + ": " + v.Message
}

// Validate returns every violation of s found in v, in document order
func (s *Schema) Validate(v *univalue.Value) []Violation {
	var out []Violation
	s.validate(v, "", &out)
	return out
}

// Check validates v and returns an error listing the violations, if any
func (s *Schema) Check(v *univalue.Value) error {
	violations := s.Validate(v)
	if len(violations) == 0 {
		return nil
	}
	msgs := make([]string, len(violations))
	for i, violation := range violations {
		msgs[i] = violation.String()
	}
	return errors.NewLookupError(strings.Join(msgs, "; "), errors.ErrShapeMismatch)
}

func (s *Schema) validate(v *univalue.Value, path string, out *[]Violation) {
	add := func(format string, args ...interface{}) {
		*out = append(*out, Violation{Path: path, Message: fmt.Sprintf(format, args...)})
	}

	if !s.Type.Allows(v) {
		add("expected %s, got %s", strings.Join(s.Type.Types, " or "), v.Type())
		return
	}

	switch v.Type() {
	case univalue.Object:
		s.validateObject(v, path, out)
	case univalue.Array:
		if s.MinItems != nil && v.Size() < *s.MinItems {
			add("expected at least %d items, got %d", *s.MinItems, v.Size())
		}
		if s.MaxItems != nil && v.Size() > *s.MaxItems {
			add("expected at most %d items, got %d", *s.MaxItems, v.Size())
		}
		if s.Items != nil {
			for i, child := range v.Values() {
				s.Items.validate(child, query.Join(path, fmt.Sprint(i)), out)
			}
		}
	case univalue.String:
		n := utf8.RuneCountInString(v.ValStr())
		if s.MinLength != nil && n < *s.MinLength {
			add("expected at least %d characters, got %d", *s.MinLength, n)
		}
		if s.MaxLength != nil && n > *s.MaxLength {
			add("expected at most %d characters, got %d", *s.MaxLength, n)
		}
	}
}

func (s *Schema) validateObject(v *univalue.Value, path string, out *[]Violation) {
	// Fast path: required members with a single plain kind are checked in
	// one pass. Details are only worked out when that check fails.
	want := make(map[string]univalue.Kind, len(s.Required))
	for _, key := range s.Required {
		if prop, ok := s.Properties[key]; ok {
			if kind, ok := prop.Type.single(); ok {
				want[key] = kind
			}
		}
	}
	if !v.CheckObject(want) || len(want) < len(s.Required) {
		for _, key := range s.Required {
			if !v.Exists(key) {
				*out = append(*out, Violation{Path: path, Message: fmt.Sprintf("missing required member %q", key)})
			}
		}
	}

	keys := v.Keys()
	for i, child := range v.Values() {
		key := keys[i]
		prop, ok := s.Properties[key]
		if !ok {
			if s.AdditionalProperties != nil && !*s.AdditionalProperties {
				*out = append(*out, Violation{Path: path, Message: fmt.Sprintf("unexpected member %q", key)})
			}
			continue
		}
		if found, _ := v.Find(key); found != child {
			// Only the first of duplicated keys is what lookups see
			continue
		}
		prop.validate(child, query.Join(path, key), out)
	}
}
