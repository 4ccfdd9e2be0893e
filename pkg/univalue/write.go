package univalue

import (
	"strings"
)

const hexDigits = "0123456789abcdef"

// escapes maps every byte that must be escaped inside a JSON string to its
// escape sequence.
var escapes [256]string

func init() {
	for c := 0; c < 0x20; c++ {
		escapes[c] = `\u00` + string(hexDigits[c>>4]) + string(hexDigits[c&0xF])
	}
	escapes['"'] = `\"`
	escapes['\\'] = `\\`
	escapes['\b'] = `\b`
	escapes['\f'] = `\f`
	escapes['\n'] = `\n`
	escapes['\r'] = `\r`
	escapes['\t'] = `\t`
	escapes[0x7F] = `\u007f`
}

func writeEscaped(sb *strings.Builder, s string) {
	sb.WriteByte('"')
	start := 0
	for i := 0; i < len(s); i++ {
		esc := escapes[s[i]]
		if esc == "" {
			continue
		}
		sb.WriteString(s[start:i])
		sb.WriteString(esc)
		start = i + 1
	}
	sb.WriteString(s[start:])
	sb.WriteByte('"')
}

// Write renders v as JSON text. A prettyIndent of zero produces compact
// output; otherwise every array element and object member goes on its own
// line, indented by prettyIndent spaces per nesting level. indentLevel is the
// level v itself sits at; callers normally pass 0.
func (v *Value) Write(prettyIndent, indentLevel int) string {
	var sb strings.Builder
	v.write(&sb, max(prettyIndent, 0), max(indentLevel, 1))
	return sb.String()
}

// String returns the compact JSON text of v.
func (v *Value) String() string {
	return v.Write(0, 0)
}

// MarshalJSON implements json.Marshaler. The value receiver lets
// encoding/json use it for Value fields and map values, not only pointers.
func (v Value) MarshalJSON() ([]byte, error) {
	return []byte(v.Write(0, 0)), nil
}

func (v *Value) write(sb *strings.Builder, prettyIndent, indentLevel int) {
	switch v.kind {
	case Null:
		sb.WriteString("null")
	case Bool:
		if v.scalar == "1" {
			sb.WriteString("true")
		} else {
			sb.WriteString("false")
		}
	case Number:
		sb.WriteString(v.scalar)
	case String:
		writeEscaped(sb, v.scalar)
	case Array:
		v.writeContainer(sb, '[', ']', prettyIndent, indentLevel)
	case Object:
		v.writeContainer(sb, '{', '}', prettyIndent, indentLevel)
	}
}

func (v *Value) writeContainer(sb *strings.Builder, openByte, closeByte byte, prettyIndent, indentLevel int) {
	sb.WriteByte(openByte)
	if len(v.children) == 0 {
		sb.WriteByte(closeByte)
		return
	}
	if prettyIndent > 0 {
		sb.WriteByte('\n')
	}
	for i, child := range v.children {
		if prettyIndent > 0 {
			sb.WriteString(strings.Repeat(" ", prettyIndent*indentLevel))
		}
		if v.kind == Object {
			writeEscaped(sb, v.keys[i])
			sb.WriteByte(':')
			if prettyIndent > 0 {
				sb.WriteByte(' ')
			}
		}
		child.write(sb, prettyIndent, indentLevel+1)
		if i != len(v.children)-1 {
			sb.WriteByte(',')
		}
		if prettyIndent > 0 {
			sb.WriteByte('\n')
		}
	}
	if prettyIndent > 0 {
		sb.WriteString(strings.Repeat(" ", prettyIndent*(indentLevel-1)))
	}
	sb.WriteByte(closeByte)
}
