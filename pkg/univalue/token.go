package univalue

import (
	"bytes"
	"unicode/utf16"
	"unicode/utf8"
)

// TokenKind identifies a lexical token.
type TokenKind int

const (
	TokenNone TokenKind = iota // end of input
	TokenError
	TokenObjectOpen
	TokenObjectClose
	TokenArrayOpen
	TokenArrayClose
	TokenColon
	TokenComma
	TokenNull
	TokenTrue
	TokenFalse
	TokenNumber
	TokenString
)

var tokenNames = [...]string{
	TokenNone:        "end of input",
	TokenError:       "error",
	TokenObjectOpen:  "'{'",
	TokenObjectClose: "'}'",
	TokenArrayOpen:   "'['",
	TokenArrayClose:  "']'",
	TokenColon:       "':'",
	TokenComma:       "','",
	TokenNull:        "null",
	TokenTrue:        "true",
	TokenFalse:       "false",
	TokenNumber:      "number",
	TokenString:      "string",
}

func (k TokenKind) String() string {
	if k < 0 || int(k) >= len(tokenNames) {
		return "unknown"
	}
	return tokenNames[k]
}

// IsValue reports whether the token is a scalar value.
func (k TokenKind) IsValue() bool {
	switch k {
	case TokenNull, TokenTrue, TokenFalse, TokenNumber, TokenString:
		return true
	default:
		return false
	}
}

// Token is one lexical unit. Text holds the verbatim digits of a number or
// the decoded bytes of a string.
type Token struct {
	Kind   TokenKind
	Text   string
	Offset int
}

// Tokenizer splits a buffer into tokens. It never reads beyond len(buf).
type Tokenizer struct {
	buf        []byte
	pos        int
	surrogates SurrogateMode
}

// NewTokenizer returns a tokenizer over buf. Only WithSurrogates affects it.
func NewTokenizer(buf []byte, opts ...Option) *Tokenizer {
	o := newOptions(opts)
	return &Tokenizer{buf: buf, surrogates: o.surrogates}
}

// Offset returns the number of bytes consumed so far.
func (t *Tokenizer) Offset() int { return t.pos }

// Next returns the next token. At the end of the buffer it returns a
// TokenNone token and a nil error; a malformed token yields a TokenError
// token and an *Error of kind ErrorKindLexical. The cursor does not move past
// a malformed token.
func (t *Tokenizer) Next() (Token, error) {
	tok, consumed, err := scanToken(t.buf[t.pos:], t.surrogates)
	tok.Offset += t.pos
	if err != nil {
		err.Offset += t.pos
		return tok, err
	}
	t.pos += consumed
	return tok, nil
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

var (
	kwNull  = []byte("null")
	kwTrue  = []byte("true")
	kwFalse = []byte("false")
)

// scanToken reads one token from the start of buf and reports how many bytes
// it consumed, leading whitespace included. Offsets are relative to buf.
func scanToken(buf []byte, surrogates SurrogateMode) (Token, int, *Error) {
	i := 0
	for i < len(buf) && isSpace(buf[i]) {
		i++
	}
	if i == len(buf) {
		return Token{Kind: TokenNone, Offset: i}, i, nil
	}

	start := i
	punct := func(kind TokenKind) (Token, int, *Error) {
		return Token{Kind: kind, Offset: start}, start + 1, nil
	}

	switch c := buf[i]; {
	case c == '{':
		return punct(TokenObjectOpen)
	case c == '}':
		return punct(TokenObjectClose)
	case c == '[':
		return punct(TokenArrayOpen)
	case c == ']':
		return punct(TokenArrayClose)
	case c == ':':
		return punct(TokenColon)
	case c == ',':
		return punct(TokenComma)

	case c == 'n' || c == 't' || c == 'f':
		rest := buf[i:]
		switch {
		case bytes.HasPrefix(rest, kwNull):
			return Token{Kind: TokenNull, Offset: start}, start + len(kwNull), nil
		case bytes.HasPrefix(rest, kwTrue):
			return Token{Kind: TokenTrue, Offset: start}, start + len(kwTrue), nil
		case bytes.HasPrefix(rest, kwFalse):
			return Token{Kind: TokenFalse, Offset: start}, start + len(kwFalse), nil
		}
		return errToken(start, "invalid literal")

	case c == '-' || isDigit(c):
		end, msg := scanNumber(buf, i)
		if msg != "" {
			return errToken(end, msg)
		}
		return Token{Kind: TokenNumber, Text: string(buf[start:end]), Offset: start}, end, nil

	case c == '"':
		text, end, err := scanString(buf, i, surrogates)
		if err != nil {
			return Token{Kind: TokenError, Offset: start}, 0, err
		}
		return Token{Kind: TokenString, Text: text, Offset: start}, end, nil

	default:
		return errToken(start, "unexpected character")
	}
}

func errToken(offset int, msg string) (Token, int, *Error) {
	return Token{Kind: TokenError, Offset: offset}, 0, lexicalError(offset, msg)
}

// scanNumber matches -?(0|[1-9][0-9]*)(\.[0-9]+)?([eE][+-]?[0-9]+)? starting at
// buf[i]. On failure msg is set and end is the offending offset.
func scanNumber(buf []byte, i int) (end int, msg string) {
	if i < len(buf) && buf[i] == '-' {
		i++
	}
	switch {
	case i >= len(buf):
		return i, "truncated number"
	case buf[i] == '0':
		i++
		if i < len(buf) && isDigit(buf[i]) {
			return i, "leading zero in number"
		}
	case isDigit(buf[i]):
		for i < len(buf) && isDigit(buf[i]) {
			i++
		}
	default:
		return i, "expected digit"
	}

	if i < len(buf) && buf[i] == '.' {
		i++
		if i >= len(buf) || !isDigit(buf[i]) {
			return i, "expected digit after decimal point"
		}
		for i < len(buf) && isDigit(buf[i]) {
			i++
		}
	}

	if i < len(buf) && (buf[i] == 'e' || buf[i] == 'E') {
		i++
		if i < len(buf) && (buf[i] == '+' || buf[i] == '-') {
			i++
		}
		if i >= len(buf) || !isDigit(buf[i]) {
			return i, "expected digit in exponent"
		}
		for i < len(buf) && isDigit(buf[i]) {
			i++
		}
	}
	return i, ""
}

// isNumber reports whether s is exactly one JSON number.
func isNumber(s string) bool {
	if s == "" {
		return false
	}
	end, msg := scanNumber([]byte(s), 0)
	return msg == "" && end == len(s)
}

// scanString decodes the string starting at the quote at buf[i] and returns
// the offset just past the closing quote.
func scanString(buf []byte, i int, surrogates SurrogateMode) (string, int, *Error) {
	i++
	start := i
	var out []byte
	for {
		if i >= len(buf) {
			return "", 0, lexicalError(i, "unterminated string")
		}
		c := buf[i]
		switch {
		case c < 0x20:
			return "", 0, lexicalError(i, "control character in string")

		case c == '"':
			if out == nil {
				return string(buf[start:i]), i + 1, nil
			}
			out = append(out, buf[start:i]...)
			return string(out), i + 1, nil

		case c == '\\':
			out = append(out, buf[start:i]...)
			i++
			if i >= len(buf) {
				return "", 0, lexicalError(i, "unterminated string")
			}
			switch buf[i] {
			case '"', '\\', '/':
				out = append(out, buf[i])
			case 'b':
				out = append(out, '\b')
			case 'f':
				out = append(out, '\f')
			case 'n':
				out = append(out, '\n')
			case 'r':
				out = append(out, '\r')
			case 't':
				out = append(out, '\t')
			case 'u':
				unit, ok := hex4(buf, i+1)
				if !ok {
					return "", 0, lexicalError(i-1, `invalid \u escape`)
				}
				i += 4
				if surrogates == SurrogatesCombine && unit >= 0xD800 && unit < 0xDC00 {
					if low, ok := lowSurrogate(buf, i+1); ok {
						out = utf8.AppendRune(out, utf16.DecodeRune(rune(unit), rune(low)))
						i += 6
						break
					}
				}
				out = appendUnit(out, unit)
			default:
				return "", 0, lexicalError(i-1, "invalid escape")
			}
			i++
			start = i

		default:
			i++
		}
	}
}

// lowSurrogate reads a \uXXXX escape at buf[i] holding a low surrogate.
func lowSurrogate(buf []byte, i int) (uint16, bool) {
	if i+1 >= len(buf) || buf[i] != '\\' || buf[i+1] != 'u' {
		return 0, false
	}
	unit, ok := hex4(buf, i+2)
	if !ok || unit < 0xDC00 || unit > 0xDFFF {
		return 0, false
	}
	return unit, true
}

func hex4(buf []byte, i int) (uint16, bool) {
	if i+4 > len(buf) {
		return 0, false
	}
	var n uint16
	for _, c := range buf[i : i+4] {
		n <<= 4
		switch {
		case c >= '0' && c <= '9':
			n |= uint16(c - '0')
		case c >= 'a' && c <= 'f':
			n |= uint16(c - 'a' + 10)
		case c >= 'A' && c <= 'F':
			n |= uint16(c - 'A' + 10)
		default:
			return 0, false
		}
	}
	return n, true
}

// appendUnit encodes a single UTF-16 code unit with the 1, 2 or 3 byte UTF-8
// layout. Surrogates are written as-is rather than replaced with U+FFFD.
func appendUnit(out []byte, u uint16) []byte {
	switch {
	case u <= 0x7F:
		return append(out, byte(u))
	case u <= 0x7FF:
		return append(out, 0xC0|byte(u>>6), 0x80|byte(u&0x3F))
	default:
		return append(out, 0xE0|byte(u>>12), 0x80|byte(u>>6&0x3F), 0x80|byte(u&0x3F))
	}
}
