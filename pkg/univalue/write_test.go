package univalue

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"strings"
	"testing"

	"github.com/buger/jsonparser"
	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTree() *Value {
	inner := NewObject()
	inner.PushKV("c", NewNull())

	root := NewObject()
	root.PushKV("a", NewInt(1))
	root.PushKV("b", NewArray(NewBool(true), inner))
	root.PushKV("d", NewObject())
	return root
}

func TestWrite_Compact(t *testing.T) {
	assert.Equal(t, `{"a":1,"b":[true,{"c":null}],"d":{}}`, sampleTree().Write(0, 0))
	assert.Equal(t, `{"a":1,"b":[true,{"c":null}],"d":{}}`, sampleTree().String())
	assert.Equal(t, `[]`, NewArray().String())
	assert.Equal(t, `null`, NewNull().String())
	assert.Equal(t, `false`, NewBool(false).String())
}

func TestWrite_Pretty(t *testing.T) {
	want := `{
  "a": 1,
  "b": [
    true,
    {
      "c": null
    }
  ],
  "d": {}
}`
	assert.Equal(t, want, sampleTree().Write(2, 0))

	wantFour := "[\n    1,\n    2\n]"
	assert.Equal(t, wantFour, NewArray(NewInt(1), NewInt(2)).Write(4, 0))
}

func TestWrite_PrettyWithIndentLevel(t *testing.T) {
	arr := NewArray(NewInt(1))
	assert.Equal(t, "[\n    1\n  ]", arr.Write(2, 2))
}

func TestWrite_NumbersVerbatim(t *testing.T) {
	v, err := Parse([]byte(`[3.1400,1E+2,-0]`))
	require.NoError(t, err)
	assert.Equal(t, `[3.1400,1E+2,-0]`, v.String())
}

func TestWrite_Escapes(t *testing.T) {
	v := NewStr("a\"b\\c/\b\f\n\r\t\x01\x1f\x7fé")
	want := `"a\"b\\c/\b\f\n\r\t` + uesc("0001") + uesc("001f") + uesc("007f") + `é"`
	assert.Equal(t, want, v.String())

	obj := NewObject()
	obj.PushKV("we\"ird\nkey", NewStr("x"))
	assert.Equal(t, `{"we\"ird\nkey":"x"}`, obj.String())
}

func TestEscapes_RoundTrip(t *testing.T) {
	var all strings.Builder
	for c := 0; c < 0x80; c++ {
		all.WriteByte(byte(c))
	}
	all.WriteString("ä€日本😀")

	original := all.String()
	arr := NewArray(NewStr(original))

	var back Value
	require.NoError(t, back.ReadString(arr.String()))
	got, err := back.children[0].GetStr()
	require.NoError(t, err)
	assert.Equal(t, original, got)
}

func TestEscapes_UnicodeUnits(t *testing.T) {
	for _, r := range []rune{0x00, 0x1F, 0x41, 0x7F, 0x80, 0x7FF, 0x800, 0x20AC, 0xD7FF, 0xE000, 0xFFFD, 0xFFFF} {
		t.Run(fmt.Sprintf("U+%04X", r), func(t *testing.T) {
			var v Value
			require.NoError(t, v.ReadString(`["`+uesc(fmt.Sprintf("%04X", r))+`"]`))
			got, err := v.children[0].GetStr()
			require.NoError(t, err)
			assert.Equal(t, string(r), got)

			var again Value
			require.NoError(t, again.ReadString(v.String()))
			assert.True(t, v.Equal(&again))
		})
	}
}

var numberLexemes = []string{"0", "-0", "1", "-17", "3.1400", "2.5e-3", "1E+10", "123456789012345678901234567890"}

var stringSamples = []string{"", "plain", "with space", "quote\"inside", `back\slash`, "line\nbreak", "tab\t", "\x00ctl\x1f", "日本語", "é/ü", "😀"}

// randomValue builds a random tree. Only containers are produced at depth 0
// so the result is always readable.
func randomValue(r *rand.Rand, depth int) *Value {
	pick := r.Intn(6)
	if depth == 0 {
		pick = 4 + r.Intn(2)
	} else if depth >= 4 {
		pick = r.Intn(4)
	}
	switch pick {
	case 0:
		return NewNull()
	case 1:
		return NewBool(r.Intn(2) == 0)
	case 2:
		v, _ := NewNumStr(numberLexemes[r.Intn(len(numberLexemes))])
		return v
	case 3:
		return NewStr(stringSamples[r.Intn(len(stringSamples))])
	case 4:
		arr := NewArray()
		for i := r.Intn(5); i > 0; i-- {
			arr.Push(randomValue(r, depth+1))
		}
		return arr
	default:
		obj := NewObject()
		for i := r.Intn(5); i > 0; i-- {
			obj.PushKV(stringSamples[r.Intn(len(stringSamples))], randomValue(r, depth+1))
		}
		return obj
	}
}

func TestWrite_RoundTripProperty(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	for i := 0; i < 300; i++ {
		v := randomValue(r, 0)
		for _, indent := range []int{0, 1, 2, 4, 8} {
			out := v.Write(indent, 0)

			var back Value
			require.NoError(t, back.ReadString(out), "indent %d output:\n%s", indent, out)
			require.True(t, v.Equal(&back), "indent %d round trip changed:\n%s", indent, out)

			require.True(t, jsoniter.ConfigCompatibleWithStandardLibrary.Valid([]byte(out)),
				"jsoniter rejected output:\n%s", out)
		}
	}
}

// stripWhitespace removes insignificant whitespace, leaving string contents
// untouched.
func stripWhitespace(s string) string {
	var sb strings.Builder
	inString, escaped := false, false
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case inString:
			sb.WriteByte(c)
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
		case c == '"':
			inString = true
			sb.WriteByte(c)
		case isSpace(c):
		default:
			sb.WriteByte(c)
		}
	}
	return sb.String()
}

func TestWrite_CompactAndPrettyDifferOnlyInWhitespace(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	for i := 0; i < 100; i++ {
		v := randomValue(r, 0)
		compact := v.Write(0, 0)
		pretty := v.Write(3, 0)
		assert.Equal(t, compact, stripWhitespace(pretty))
	}
}

func TestWrite_TwoLevelPrettyRoundTrip(t *testing.T) {
	var v Value
	require.NoError(t, v.ReadString(`{"outer":{"inner":"value","n":2},"list":[1,{"x":true}]}`))

	var back Value
	require.NoError(t, back.ReadString(v.Write(4, 0)))
	assert.True(t, v.Equal(&back))
}

func TestWrite_ReadableByOtherParsers(t *testing.T) {
	obj := NewObject()
	obj.PushKV("name", NewStr("line\nbreak \"quoted\" é"))
	obj.PushKV("count", NewInt(42))
	nested := NewObject()
	nested.PushKV("flag", NewBool(true))
	obj.PushKV("nested", nested)

	for _, indent := range []int{0, 2} {
		out := []byte(obj.Write(indent, 0))

		name, err := jsonparser.GetString(out, "name")
		require.NoError(t, err)
		assert.Equal(t, "line\nbreak \"quoted\" é", name)

		count, err := jsonparser.GetInt(out, "count")
		require.NoError(t, err)
		assert.Equal(t, int64(42), count)

		flag, err := jsonparser.GetBoolean(out, "nested", "flag")
		require.NoError(t, err)
		assert.True(t, flag)

		var decoded map[string]interface{}
		require.NoError(t, jsoniter.Unmarshal(out, &decoded))
		assert.Equal(t, float64(42), decoded["count"])
	}
}

func TestMarshalJSON(t *testing.T) {
	doc := struct {
		Payload *Value `json:"payload"`
	}{Payload: sampleTree()}

	out, err := jsoniter.ConfigCompatibleWithStandardLibrary.Marshal(doc)
	require.NoError(t, err)
	assert.Equal(t, `{"payload":{"a":1,"b":[true,{"c":null}],"d":{}}}`, string(out))
}

func TestMarshalJSON_ValueFields(t *testing.T) {
	var doc struct {
		Payload Value `json:"payload"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"payload":{"x":[1,2]}}`), &doc))

	// Passed by value, so the fields are not addressable
	out, err := json.Marshal(doc)
	require.NoError(t, err)
	assert.Equal(t, `{"payload":{"x":[1,2]}}`, string(out))

	byKey := map[string]Value{"k": *NewArray(NewStr("s"), NewNull())}
	out, err = json.Marshal(byKey)
	require.NoError(t, err)
	assert.Equal(t, `{"k":["s",null]}`, string(out))

	out, err = json.Marshal(struct {
		Missing *Value `json:"missing"`
	}{})
	require.NoError(t, err)
	assert.Equal(t, `{"missing":null}`, string(out))
}
