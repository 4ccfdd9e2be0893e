package analyzer

import (
	"regexp"
	"sort"
	"strconv"

	"github.com/mcncl/univalue/internal/query"
	"github.com/mcncl/univalue/pkg/numparse"
	"github.com/mcncl/univalue/pkg/univalue"
)

// Regex patterns for recognizable string formats
var (
	uuidRegex = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)

	// Time format patterns (ordered by specificity - most specific first)
	rfc3339Regex  = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}(\.\d+)?(Z|[+-]\d{2}:\d{2})$`) // 2006-01-02T15:04:05Z
	dateTimeRegex = regexp.MustCompile(`^\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}(\.\d+)?$`)                    // 2006-01-02 15:04:05
	dateOnlyRegex = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)                                              // 2006-01-02

	unixTimestampRegex = regexp.MustCompile(`^1[0-9]{9}$`)  // Unix timestamp (seconds since 1970)
	unixMilliRegex     = regexp.MustCompile(`^1[0-9]{12}$`) // Unix timestamp in milliseconds
)

// String format names reported in Stats.StringFormats
const (
	FormatUUID     = "uuid"
	FormatRFC3339  = "rfc3339"
	FormatDateTime = "datetime"
	FormatDate     = "date"
)

// Number form names reported in Stats.NumberForms
const (
	NumberInteger   = "integer"
	NumberBigInt    = "big_integer"
	NumberFraction  = "fraction"
	NumberTimestamp = "unix_timestamp"
)

// Duplicate records an object key that appears more than once in one object
type Duplicate struct {
	Path  string `json:"path"`
	Key   string `json:"key"`
	Count int    `json:"count"`
}

// Stats summarizes the shape of a document
type Stats struct {
	Kinds         map[string]int `json:"kinds"`
	Members       int            `json:"members"`
	Elements      int            `json:"elements"`
	MaxDepth      int            `json:"max_depth"`
	NumberForms   map[string]int `json:"number_forms"`
	StringFormats map[string]int `json:"string_formats"`
	Duplicates    []Duplicate    `json:"duplicates"`
}

// Analyzer walks value trees and collects Stats
type Analyzer struct {
	stats Stats
}

// NewAnalyzer creates a new Analyzer instance.
func NewAnalyzer() *Analyzer {
	return &Analyzer{}
}

// Analyze walks root and returns its statistics. The tree is not modified.
func (a *Analyzer) Analyze(root *univalue.Value) Stats {
	a.stats = Stats{
		Kinds:         make(map[string]int),
		NumberForms:   make(map[string]int),
		StringFormats: make(map[string]int),
		Duplicates:    make([]Duplicate, 0),
	}
	a.analyzeNode(root, "", 0)
	return a.stats
}

// analyzeNode records v, found at path, and recurses into containers.
// depth is the number of containers enclosing v.
func (a *Analyzer) analyzeNode(v *univalue.Value, path string, depth int) {
	a.stats.Kinds[v.Type().String()]++

	switch v.Type() {
	case univalue.Number:
		a.stats.NumberForms[classifyNumber(v.ValStr())]++
	case univalue.String:
		if format := classifyString(v.ValStr()); format != "" {
			a.stats.StringFormats[format]++
		}
	case univalue.Array:
		a.enter(depth)
		a.stats.Elements += v.Size()
		for i, child := range v.Values() {
			a.analyzeNode(child, query.Join(path, strconv.Itoa(i)), depth+1)
		}
	case univalue.Object:
		a.enter(depth)
		a.stats.Members += v.Size()
		keys := v.Keys()
		a.recordDuplicates(path, keys)
		for i, child := range v.Values() {
			a.analyzeNode(child, query.Join(path, keys[i]), depth+1)
		}
	}
}

func (a *Analyzer) enter(depth int) {
	if depth+1 > a.stats.MaxDepth {
		a.stats.MaxDepth = depth + 1
	}
}

func (a *Analyzer) recordDuplicates(path string, keys []string) {
	counts := make(map[string]int, len(keys))
	for _, key := range keys {
		counts[key]++
	}

	var dups []Duplicate
	for key, count := range counts {
		if count > 1 {
			dups = append(dups, Duplicate{Path: path, Key: key, Count: count})
		}
	}
	sort.Slice(dups, func(i, j int) bool { return dups[i].Key < dups[j].Key })
	a.stats.Duplicates = append(a.stats.Duplicates, dups...)
}

func classifyString(s string) string {
	switch {
	case uuidRegex.MatchString(s):
		return FormatUUID
	case rfc3339Regex.MatchString(s):
		return FormatRFC3339
	case dateTimeRegex.MatchString(s):
		return FormatDateTime
	case dateOnlyRegex.MatchString(s):
		return FormatDate
	}
	return ""
}

func classifyNumber(lexeme string) string {
	// Unix timestamps are a common pattern in APIs
	if unixTimestampRegex.MatchString(lexeme) || unixMilliRegex.MatchString(lexeme) {
		return NumberTimestamp
	}

	if _, err := numparse.ParseInt64(lexeme); err == nil {
		return NumberInteger
	}

	for i := 0; i < len(lexeme); i++ {
		if c := lexeme[i]; c == '.' || c == 'e' || c == 'E' {
			return NumberFraction
		}
	}
	return NumberBigInt
}

