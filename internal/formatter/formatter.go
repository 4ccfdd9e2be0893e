package formatter

import (
	"github.com/mcncl/univalue/internal/config"
	"github.com/mcncl/univalue/pkg/univalue"
)

// Formatter writes value trees back out as JSON text
type Formatter struct {
	indent int
	rename func(string) string
}

// NewFormatter creates a Formatter using the output section of cfg
func NewFormatter(cfg *config.Config) *Formatter {
	f := &Formatter{indent: cfg.Output.Indent}
	if cfg.RenamesKeys() {
		f.rename = cfg.KeyName
	}
	return f
}

// Compact returns a copy of f that writes without whitespace
func (f *Formatter) Compact() *Formatter {
	c := *f
	c.indent = 0
	return &c
}

// Format renders v with a trailing newline. The input tree is never modified.
func (f *Formatter) Format(v *univalue.Value) string {
	if f.rename != nil {
		v = renameKeys(v, f.rename)
	}
	return v.Write(f.indent, 0) + "\n"
}

// renameKeys returns a copy of v with every object key passed through rename.
// Member order is kept.
func renameKeys(v *univalue.Value, rename func(string) string) *univalue.Value {
	switch v.Type() {
	case univalue.Object:
		out := univalue.NewObject()
		keys := v.Keys()
		for i, child := range v.Values() {
			out.PushKV(rename(keys[i]), renameKeys(child, rename))
		}
		return out
	case univalue.Array:
		out := univalue.NewArray()
		for _, child := range v.Values() {
			out.Push(renameKeys(child, rename))
		}
		return out
	default:
		return v
	}
}
