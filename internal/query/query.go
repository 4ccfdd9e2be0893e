// Package query resolves dotted paths such as "servers.0.name" against a
// value tree.
//
// Segments are separated by '.'. A backslash escapes the next character, so
// a key containing a dot is written "a\.b". A segment made only of digits
// selects an array element when the current value is an array and a member
// key otherwise. The empty path selects the root.
package query

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mcncl/univalue/internal/errors"
	"github.com/mcncl/univalue/pkg/univalue"
)

// Path is a parsed list of segments
type Path []string

// String renders p back into dotted form, escaping where needed
func (p Path) String() string {
	var sb strings.Builder
	for i, seg := range p {
		if i > 0 {
			sb.WriteByte('.')
		}
		writeSegment(&sb, seg)
	}
	return sb.String()
}

// Join appends one segment to a dotted path
func Join(path, segment string) string {
	var sb strings.Builder
	sb.WriteString(path)
	if path != "" {
		sb.WriteByte('.')
	}
	writeSegment(&sb, segment)
	return sb.String()
}

func writeSegment(sb *strings.Builder, seg string) {
	for i := 0; i < len(seg); i++ {
		if seg[i] == '.' || seg[i] == '\\' {
			sb.WriteByte('\\')
		}
		sb.WriteByte(seg[i])
	}
}

// ParsePath splits a dotted path into segments
func ParsePath(s string) (Path, error) {
	if s == "" || s == "." {
		return Path{}, nil
	}

	var (
		path Path
		cur  strings.Builder
	)
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '\\':
			if i+1 >= len(s) {
				return nil, errors.NewLookupError(fmt.Sprintf("path %q ends with a dangling escape", s), errors.ErrInvalidPath)
			}
			i++
			cur.WriteByte(s[i])
		case '.':
			path = append(path, cur.String())
			cur.Reset()
		default:
			cur.WriteByte(c)
		}
	}
	path = append(path, cur.String())
	return path, nil
}

// Lookup walks root along path and returns the value found there. The
// returned value is owned by root.
func Lookup(root *univalue.Value, path Path) (*univalue.Value, error) {
	cur := root
	for i, seg := range path {
		var (
			next *univalue.Value
			ok   bool
		)
		switch cur.Type() {
		case univalue.Array:
			index, err := strconv.Atoi(seg)
			if err != nil || !isIndex(seg) {
				return nil, errors.NewLookupError(
					fmt.Sprintf("segment %q of %q is not an array index", seg, path.String()),
					errors.ErrInvalidPath,
				)
			}
			next, ok = cur.At(index)
		case univalue.Object:
			next, ok = cur.Find(seg)
		default:
			return nil, errors.NewLookupError(
				fmt.Sprintf("%q is a %s and has no member %q", path[:i].String(), cur.Type(), seg),
				errors.ErrPathNotFound,
			)
		}
		if !ok {
			return nil, errors.NewLookupError(
				fmt.Sprintf("%q not found", path[:i+1].String()),
				errors.ErrPathNotFound,
			)
		}
		cur = next
	}
	return cur, nil
}

// Get parses path and looks it up in root
func Get(root *univalue.Value, path string) (*univalue.Value, error) {
	p, err := ParsePath(path)
	if err != nil {
		return nil, err
	}
	return Lookup(root, p)
}

func isIndex(seg string) bool {
	if seg == "" {
		return false
	}
	for i := 0; i < len(seg); i++ {
		if seg[i] < '0' || seg[i] > '9' {
			return false
		}
	}
	return true
}
