package univalue

import (
	"fmt"
)

// frame is an open container. Frames live in builder.stack and are only ever
// addressed by index, so growing the stack never leaves a stale reference.
type frame struct {
	kind     Kind
	keys     []string
	children []*Value
	seen     map[string]struct{} // keys already used, DuplicatesReject only
}

type builder struct {
	opts        options
	stack       []frame
	root        *Value
	expectKey   bool
	expectColon bool
	prev        TokenKind
}

func (b *builder) top() int { return len(b.stack) - 1 }

// valueAllowed reports whether a value may appear at this point: right after
// '[' or ',' inside an array, or right after ':' inside an object.
func (b *builder) valueAllowed() bool {
	switch b.stack[b.top()].kind {
	case Array:
		return b.prev == TokenArrayOpen || b.prev == TokenComma
	case Object:
		return b.prev == TokenColon
	default:
		return false
	}
}

func (b *builder) appendChild(v *Value) {
	t := b.top()
	b.stack[t].children = append(b.stack[t].children, v)
}

func (b *builder) step(tok Token) *Error {
	switch tok.Kind {
	case TokenObjectOpen, TokenArrayOpen:
		if len(b.stack) == 0 {
			if b.root != nil {
				return grammarError(tok.Offset, "unexpected data after top-level value", nil)
			}
		} else if b.expectKey || b.expectColon || !b.valueAllowed() {
			return grammarError(tok.Offset, fmt.Sprintf("unexpected %s", tok.Kind), nil)
		}
		if b.opts.maxDepth > 0 && len(b.stack) >= b.opts.maxDepth {
			return grammarError(tok.Offset, fmt.Sprintf("nesting deeper than %d", b.opts.maxDepth), ErrTooDeep)
		}
		kind := Array
		if tok.Kind == TokenObjectOpen {
			kind = Object
			b.expectKey = true
		}
		b.stack = append(b.stack, frame{kind: kind})

	case TokenObjectClose, TokenArrayClose:
		if len(b.stack) == 0 || b.expectColon || b.prev == TokenComma || b.prev == TokenColon {
			return grammarError(tok.Offset, fmt.Sprintf("unexpected %s", tok.Kind), nil)
		}
		kind := Array
		if tok.Kind == TokenObjectClose {
			kind = Object
		}
		t := b.top()
		if b.stack[t].kind != kind {
			return grammarError(tok.Offset, fmt.Sprintf("mismatched %s", tok.Kind), nil)
		}
		f := b.stack[t]
		b.stack = b.stack[:t]
		b.expectKey = false

		v := &Value{kind: f.kind, keys: f.keys, children: f.children}
		if len(b.stack) == 0 {
			b.root = v
		} else {
			b.appendChild(v)
		}

	case TokenColon:
		if len(b.stack) == 0 || b.expectKey || !b.expectColon || b.stack[b.top()].kind != Object {
			return grammarError(tok.Offset, "unexpected ':'", nil)
		}
		b.expectColon = false

	case TokenComma:
		if len(b.stack) == 0 || b.expectKey || b.expectColon ||
			b.prev == TokenComma || b.prev == TokenArrayOpen || b.prev == TokenColon {
			return grammarError(tok.Offset, "unexpected ','", nil)
		}
		if b.stack[b.top()].kind == Object {
			b.expectKey = true
		}

	case TokenNull, TokenTrue, TokenFalse, TokenNumber, TokenString:
		if len(b.stack) == 0 {
			return grammarError(tok.Offset, fmt.Sprintf("unexpected %s outside of an array or object", tok.Kind), nil)
		}
		if b.expectKey {
			if tok.Kind != TokenString {
				return grammarError(tok.Offset, fmt.Sprintf("expected object key, got %s", tok.Kind), nil)
			}
			return b.key(tok)
		}
		if b.expectColon || !b.valueAllowed() {
			return grammarError(tok.Offset, fmt.Sprintf("unexpected %s", tok.Kind), nil)
		}
		b.appendChild(scalarValue(tok))

	default:
		return grammarError(tok.Offset, fmt.Sprintf("unexpected %s", tok.Kind), nil)
	}
	return nil
}

func (b *builder) key(tok Token) *Error {
	t := b.top()
	if b.opts.duplicates == DuplicatesReject {
		if b.stack[t].seen == nil {
			b.stack[t].seen = make(map[string]struct{})
		}
		if _, dup := b.stack[t].seen[tok.Text]; dup {
			return grammarError(tok.Offset, fmt.Sprintf("key %q repeated", tok.Text), ErrDuplicateKey)
		}
		b.stack[t].seen[tok.Text] = struct{}{}
	}
	b.stack[t].keys = append(b.stack[t].keys, tok.Text)
	b.expectKey = false
	b.expectColon = true
	return nil
}

func scalarValue(tok Token) *Value {
	switch tok.Kind {
	case TokenTrue:
		return &Value{kind: Bool, scalar: "1"}
	case TokenFalse:
		return &Value{kind: Bool, scalar: "0"}
	case TokenNumber:
		return &Value{kind: Number, scalar: tok.Text}
	case TokenString:
		return &Value{kind: String, scalar: tok.Text}
	default:
		return &Value{}
	}
}

// Read parses buf into v. The top-level value must be an array or an object
// and must be followed only by whitespace. On failure v is left null and the
// returned error is an *Error of kind ErrorKindLexical or ErrorKindGrammar.
func (v *Value) Read(buf []byte, opts ...Option) error {
	v.Clear()

	b := builder{opts: newOptions(opts)}
	t := &Tokenizer{buf: buf, surrogates: b.opts.surrogates}
	for {
		tok, err := t.Next()
		if err != nil {
			return err
		}
		if tok.Kind == TokenNone {
			break
		}
		if err := b.step(tok); err != nil {
			return err
		}
		b.prev = tok.Kind
	}

	if len(b.stack) != 0 {
		return grammarError(t.Offset(), fmt.Sprintf("%d unclosed container(s)", len(b.stack)), nil)
	}
	if b.root == nil {
		return grammarError(t.Offset(), "no value", ErrEmptyInput)
	}
	*v = *b.root
	return nil
}

// ReadString is Read for a string.
func (v *Value) ReadString(s string, opts ...Option) error {
	return v.Read([]byte(s), opts...)
}

// Parse returns the value encoded in buf.
func Parse(buf []byte, opts ...Option) (*Value, error) {
	v := &Value{}
	if err := v.Read(buf, opts...); err != nil {
		return nil, err
	}
	return v, nil
}

// UnmarshalJSON implements json.Unmarshaler. Unlike Read it accepts a scalar
// at the top level, since encoding/json hands over the raw text of a single
// field.
func (v *Value) UnmarshalJSON(data []byte) error {
	wrapped := make([]byte, 0, len(data)+2)
	wrapped = append(wrapped, '[')
	wrapped = append(wrapped, data...)
	wrapped = append(wrapped, ']')

	var arr Value
	// The wrapping array is one extra level of nesting
	if err := arr.Read(wrapped, WithMaxDepth(DefaultMaxDepth+1)); err != nil {
		v.Clear()
		return err
	}
	if arr.Size() != 1 {
		v.Clear()
		return grammarError(0, "expected exactly one value", nil)
	}
	*v = *arr.children[0]
	return nil
}
