package main

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/go-kit/log/level"
	jsoniter "github.com/json-iterator/go"

	"github.com/mcncl/univalue/internal/analyzer"
	"github.com/mcncl/univalue/internal/config"
	"github.com/mcncl/univalue/internal/errors"
	"github.com/mcncl/univalue/internal/fixtures"
	"github.com/mcncl/univalue/internal/formatter"
	"github.com/mcncl/univalue/internal/parser"
	"github.com/mcncl/univalue/internal/query"
	"github.com/mcncl/univalue/internal/schema"
	"github.com/mcncl/univalue/pkg/univalue"
)

// ParserFlags are the reader settings every reading command accepts
type ParserFlags struct {
	MaxDepth         int    `help:"Maximum container nesting, 0 for unlimited (overrides parser.max_depth)." default:"-1"`
	Surrogates       string `help:"How to decode surrogate pair escapes: combine or split (overrides parser.surrogates)."`
	RejectDuplicates bool   `help:"Fail on repeated object keys (overrides parser.duplicate_keys)."`
}

func (p ParserFlags) apply(o *config.Overrides) {
	if p.MaxDepth >= 0 {
		depth := p.MaxDepth
		o.MaxDepth = &depth
	}
	if p.Surrogates != "" {
		mode := p.Surrogates
		o.Surrogates = &mode
	}
	if p.RejectDuplicates {
		mode := "reject"
		o.DuplicateKeys = &mode
	}
}

// readDocument parses file, or the context's stdin when file is "-"
func readDocument(ctx *Context, file string, opts []univalue.Option) (parser.Document, error) {
	if file != "" && file != "-" {
		return parser.ParseFile(file, opts...)
	}

	if f, ok := ctx.Stdin.(*os.File); ok {
		stdinInfo, err := f.Stat()
		if err != nil {
			return parser.Document{}, errors.NewInputError("failed to access stdin", err)
		}
		if stdinInfo.Mode()&os.ModeCharDevice != 0 {
			// Terminal is interactive (not piped)
			return parser.Document{}, errors.NewInputError("no input provided", errors.ErrNoInput)
		}
	}
	return parser.Parse(ctx.Stdin, "stdin", opts...)
}

// writeOutput writes text to path, or to the context's stdout when path is empty
func writeOutput(ctx *Context, path, text string) error {
	if path != "" {
		if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
			return errors.NewOutputError(fmt.Sprintf("failed to write to file '%s'", path), err)
		}
		return nil
	}
	if _, err := io.WriteString(ctx.Stdout, text); err != nil {
		return errors.NewOutputError("failed to write to stdout", err)
	}
	return nil
}

// FmtCmd parses a document and writes it back out
type FmtCmd struct {
	File    string `arg:"" optional:"" default:"-" help:"Input JSON file. Reads stdin when omitted or '-'."`
	Output  string `help:"Write the result to this file instead of stdout." short:"o" type:"path"`
	Indent  int    `help:"Spaces per indentation level (overrides output.indent)." short:"n" default:"-1"`
	Compact bool   `help:"Write without any whitespace." short:"C"`
	KeyCase string `help:"Rename object keys: none, snake, camel, lower_camel, kebab or screaming_snake (overrides output.key_case)." short:"k"`

	ParserFlags `embed:""`
}

// Run executes the fmt command
func (c *FmtCmd) Run(ctx *Context) error {
	var o config.Overrides
	if c.Indent >= 0 {
		indent := c.Indent
		o.Indent = &indent
	}
	if c.KeyCase != "" {
		keyCase := c.KeyCase
		o.KeyCase = &keyCase
	}
	c.ParserFlags.apply(&o)

	cfg, logger, err := ctx.setup(o)
	if err != nil {
		return err
	}

	doc, err := readDocument(ctx, c.File, cfg.ParserOptions())
	if err != nil {
		return err
	}
	level.Debug(logger).Log("msg", "parsed document", "source", doc.Source, "bytes", doc.Size)

	f := formatter.NewFormatter(cfg)
	if c.Compact {
		f = f.Compact()
	}
	if err := writeOutput(ctx, c.Output, f.Format(doc.Root)); err != nil {
		return err
	}
	if c.Output != "" {
		level.Info(logger).Log("msg", "wrote formatted document", "path", c.Output)
	}
	return nil
}

// CheckCmd validates documents
type CheckCmd struct {
	Files   []string `arg:"" optional:"" help:"JSON files to check. Reads stdin when omitted."`
	Require []string `help:"Require a top-level member of a kind, as key=kind. Repeatable." short:"r"`
	Schema  string   `help:"Validate against a JSON Schema file (type, properties, required, items and size limits)." short:"s" type:"existingfile"`

	ParserFlags `embed:""`
}

// shape returns the schema documents must match, or nil when only syntax
// is checked.
func (c *CheckCmd) shape(cfg *config.Config) (*schema.Schema, error) {
	if c.Schema != "" {
		return schema.ParseFile(c.Schema)
	}
	reqs := append(cfg.Requirements(), c.Require...)
	if len(reqs) == 0 {
		return nil, nil
	}
	return schema.FromRequirements(reqs)
}

// Run executes the check command
func (c *CheckCmd) Run(ctx *Context) error {
	var o config.Overrides
	c.ParserFlags.apply(&o)

	cfg, logger, err := ctx.setup(o)
	if err != nil {
		return err
	}

	shape, err := c.shape(cfg)
	if err != nil {
		return err
	}

	files := c.Files
	if len(files) == 0 {
		files = []string{"-"}
	}

	var firstErr error
	failed := 0
	for _, file := range files {
		doc, err := readDocument(ctx, file, cfg.ParserOptions())
		if err == nil && shape != nil {
			err = shape.Check(doc.Root)
		}
		if err != nil {
			failed++
			if firstErr == nil {
				firstErr = err
			}
			level.Debug(logger).Log("msg", "check failed", "file", file, "err", err)
			fmt.Fprintf(ctx.Stdout, "FAIL %s: %s\n", file, errors.UserFriendlyError(err))
			continue
		}
		fmt.Fprintf(ctx.Stdout, "ok   %s\n", file)
	}

	if failed > 0 {
		return errors.NewInputError(fmt.Sprintf("%d of %d documents failed the check", failed, len(files)), firstErr)
	}
	return nil
}

// GetCmd prints the value at a dotted path
type GetCmd struct {
	Path   string `arg:"" help:"Dotted path such as servers.0.name. Use '.' for the whole document."`
	File   string `arg:"" optional:"" default:"-" help:"Input JSON file. Reads stdin when omitted or '-'."`
	Raw    bool   `help:"Print string values without quotes or escapes."`
	Indent int    `help:"Spaces per indentation level (overrides output.indent)." short:"n" default:"-1"`

	ParserFlags `embed:""`
}

// Run executes the get command
func (c *GetCmd) Run(ctx *Context) error {
	var o config.Overrides
	if c.Indent >= 0 {
		indent := c.Indent
		o.Indent = &indent
	}
	c.ParserFlags.apply(&o)

	cfg, logger, err := ctx.setup(o)
	if err != nil {
		return err
	}

	doc, err := readDocument(ctx, c.File, cfg.ParserOptions())
	if err != nil {
		return err
	}

	v, err := query.Get(doc.Root, c.Path)
	if err != nil {
		return err
	}
	level.Debug(logger).Log("msg", "resolved path", "path", c.Path, "kind", v.Type())

	if c.Raw && v.IsStr() {
		return writeOutput(ctx, "", v.ValStr()+"\n")
	}
	return writeOutput(ctx, "", v.Write(cfg.Output.Indent, 0)+"\n")
}

// StatsCmd summarizes the shape of a document
type StatsCmd struct {
	File string `arg:"" optional:"" default:"-" help:"Input JSON file. Reads stdin when omitted or '-'."`
	JSON bool   `help:"Print the statistics as JSON." short:"j"`

	ParserFlags `embed:""`
}

// Run executes the stats command
func (c *StatsCmd) Run(ctx *Context) error {
	var o config.Overrides
	c.ParserFlags.apply(&o)

	cfg, _, err := ctx.setup(o)
	if err != nil {
		return err
	}

	doc, err := readDocument(ctx, c.File, cfg.ParserOptions())
	if err != nil {
		return err
	}

	stats := analyzer.NewAnalyzer().Analyze(doc.Root)
	if c.JSON {
		out, err := jsoniter.ConfigCompatibleWithStandardLibrary.MarshalIndent(stats, "", "  ")
		if err != nil {
			return errors.NewOutputError("failed to encode statistics", err)
		}
		return writeOutput(ctx, "", string(out)+"\n")
	}
	return writeOutput(ctx, "", formatStats(doc, stats))
}

func formatStats(doc parser.Document, stats analyzer.Stats) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "source:    %s (%d bytes)\n", doc.Source, doc.Size)
	fmt.Fprintf(&sb, "max depth: %d\n", stats.MaxDepth)
	fmt.Fprintf(&sb, "members:   %d\n", stats.Members)
	fmt.Fprintf(&sb, "elements:  %d\n", stats.Elements)
	writeCounts(&sb, "kinds", stats.Kinds)
	writeCounts(&sb, "numbers", stats.NumberForms)
	writeCounts(&sb, "string formats", stats.StringFormats)
	if len(stats.Duplicates) > 0 {
		sb.WriteString("duplicate keys:\n")
		for _, dup := range stats.Duplicates {
			path := dup.Path
			if path == "" {
				path = "."
			}
			fmt.Fprintf(&sb, "  %s %q x%d\n", path, dup.Key, dup.Count)
		}
	}
	return sb.String()
}

// writeCounts writes a titled block of counts, sorted by name. Empty
// blocks are omitted.
func writeCounts(sb *strings.Builder, title string, counts map[string]int) {
	if len(counts) == 0 {
		return
	}
	fmt.Fprintf(sb, "%s:\n", title)
	for _, name := range sortedKeys(counts) {
		fmt.Fprintf(sb, "  %-14s %d\n", name, counts[name])
	}
}

// TestCmd runs the fixture corpus
type TestCmd struct {
	Dir     string `arg:"" optional:"" help:"Fixture directory (overrides fixtures.dir)." type:"path"`
	Verbose bool   `help:"Print every fixture, not only the ones that misbehaved." short:"v"`

	ParserFlags `embed:""`
}

// Run executes the test command
func (c *TestCmd) Run(ctx *Context) error {
	var o config.Overrides
	if c.Dir != "" {
		dir := c.Dir
		o.FixturesDir = &dir
	}
	c.ParserFlags.apply(&o)

	cfg, logger, err := ctx.setup(o)
	if err != nil {
		return err
	}

	report, err := fixtures.NewRunner(logger, cfg.ParserOptions()...).Run(cfg.Fixtures.Dir)
	if err != nil {
		return errors.NewFixtureError(fmt.Sprintf("failed to run fixtures in '%s'", cfg.Fixtures.Dir), err)
	}

	for _, res := range report.Results {
		switch {
		case !res.OK():
			fmt.Fprintf(ctx.Stdout, "FAIL %s (want %s, err: %v)\n", res.Name, res.Expect, res.Err)
		case c.Verbose:
			fmt.Fprintf(ctx.Stdout, "ok   %s\n", res.Name)
		}
	}
	fmt.Fprintf(ctx.Stdout, "%d fixtures, %d misbehaved\n", len(report.Results), len(report.Failed()))
	return report.Err()
}

// VersionCmd shows version information
type VersionCmd struct{}

// Run executes the version command
func (c *VersionCmd) Run(ctx *Context) error {
	_, err := fmt.Fprintf(ctx.Stdout, "univalue version %s\n", Version)
	return err
}

// sortedKeys returns the keys of m in order
func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
