package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcncl/univalue/internal/parser"
)

func TestAnalyze_SimpleObject(t *testing.T) {
	jsonInput := `{"name": "John Doe", "age": 30, "is_student": false, "score": 99.5, "nickname": null}`
	doc, err := parser.ParseString(jsonInput)
	require.NoError(t, err)

	stats := NewAnalyzer().Analyze(doc.Root)

	assert.Equal(t, map[string]int{"object": 1, "string": 1, "number": 2, "bool": 1, "null": 1}, stats.Kinds)
	assert.Equal(t, 5, stats.Members)
	assert.Equal(t, 0, stats.Elements)
	assert.Equal(t, 1, stats.MaxDepth)
	assert.Equal(t, map[string]int{NumberInteger: 1, NumberFraction: 1}, stats.NumberForms)
	assert.Empty(t, stats.StringFormats)
	assert.Empty(t, stats.Duplicates)
}

func TestAnalyze_NestedDepth(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected int
	}{
		{"empty object", `{}`, 1},
		{"empty array", `[]`, 1},
		{"array in object", `{"a":[1]}`, 2},
		{"deep", `[[[[{"x":[]}]]]]`, 6},
		{"siblings", `{"a":{"b":{}},"c":[]}`, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := parser.ParseString(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, NewAnalyzer().Analyze(doc.Root).MaxDepth)
		})
	}
}

func TestAnalyze_ArrayOfObjects(t *testing.T) {
	jsonInput := `[
		{"id": 1, "name": "Product 1", "price": 19.99},
		{"id": 2, "name": "Product 2", "price": 29.99}
	]`
	doc, err := parser.ParseString(jsonInput)
	require.NoError(t, err)

	stats := NewAnalyzer().Analyze(doc.Root)
	assert.Equal(t, 2, stats.Elements)
	assert.Equal(t, 6, stats.Members)
	assert.Equal(t, 1, stats.Kinds["array"])
	assert.Equal(t, 2, stats.Kinds["object"])
	assert.Equal(t, 4, stats.Kinds["number"])
	assert.Equal(t, 2, stats.MaxDepth)
}

func TestAnalyze_DuplicateKeys(t *testing.T) {
	jsonInput := `{
		"a": 1, "b": 2, "a": 3,
		"list": [{"x": 1, "x": 2, "x": 3, "y": 0, "y": 1}],
		"dotted.key": {"k": 1, "k": 2}
	}`
	doc, err := parser.ParseString(jsonInput)
	require.NoError(t, err)

	stats := NewAnalyzer().Analyze(doc.Root)
	assert.Equal(t, []Duplicate{
		{Path: "", Key: "a", Count: 2},
		{Path: "list.0", Key: "x", Count: 3},
		{Path: "list.0", Key: "y", Count: 2},
		{Path: `dotted\.key`, Key: "k", Count: 2},
	}, stats.Duplicates)
}

func TestAnalyze_StringFormats(t *testing.T) {
	jsonInput := `{
		"id": "123e4567-e89b-12d3-a456-426614174000",
		"created_at": "2023-01-15T10:30:00Z",
		"updated_at": "2023-01-15T10:30:00.123+02:00",
		"logged": "2023-01-15 10:30:00",
		"birthday": "1990-05-20",
		"name": "plain"
	}`
	doc, err := parser.ParseString(jsonInput)
	require.NoError(t, err)

	stats := NewAnalyzer().Analyze(doc.Root)
	assert.Equal(t, map[string]int{
		FormatUUID:     1,
		FormatRFC3339:  2,
		FormatDateTime: 1,
		FormatDate:     1,
	}, stats.StringFormats)
}

func TestClassifyNumber(t *testing.T) {
	tests := []struct {
		lexeme   string
		expected string
	}{
		{"0", NumberInteger},
		{"-0", NumberInteger},
		{"-42", NumberInteger},
		{"9223372036854775807", NumberInteger},
		{"9223372036854775808", NumberBigInt},
		{"123456789012345678901234567890", NumberBigInt},
		{"1.5", NumberFraction},
		{"1E+2", NumberFraction},
		{"1e400", NumberFraction},
		{"1700000000", NumberTimestamp},
		{"1700000000000", NumberTimestamp},
	}

	for _, tt := range tests {
		t.Run(tt.lexeme, func(t *testing.T) {
			assert.Equal(t, tt.expected, classifyNumber(tt.lexeme))
		})
	}
}

func TestAnalyze_Reusable(t *testing.T) {
	a := NewAnalyzer()
	first, err := parser.ParseString(`{"a":1,"a":2}`)
	require.NoError(t, err)
	second, err := parser.ParseString(`[true]`)
	require.NoError(t, err)

	a.Analyze(first.Root)
	stats := a.Analyze(second.Root)
	assert.Equal(t, map[string]int{"array": 1, "bool": 1}, stats.Kinds)
	assert.Empty(t, stats.Duplicates)
}
