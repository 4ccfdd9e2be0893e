// Package fixtures runs the reader over a directory of JSON documents whose
// file names say whether they should parse. Files named pass*.json must be
// accepted and files named fail*.json must be rejected.
package fixtures

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/pkg/errors"

	apperrors "github.com/mcncl/univalue/internal/errors"
	"github.com/mcncl/univalue/pkg/univalue"
)

// Expectation is what a fixture's name says should happen
type Expectation int

const (
	ExpectPass Expectation = iota
	ExpectFail
)

func (e Expectation) String() string {
	if e == ExpectFail {
		return "fail"
	}
	return "pass"
}

// Result is the outcome for one fixture file
type Result struct {
	Name   string
	Expect Expectation
	// Err is the reader error, nil when the document was accepted
	Err error
}

// OK reports whether the reader behaved as the file name expects
func (r Result) OK() bool {
	if r.Expect == ExpectPass {
		return r.Err == nil
	}
	return r.Err != nil
}

// Report collects the results of one run
type Report struct {
	Results []Result
}

// Failed returns the results that did not behave as expected
func (r Report) Failed() []Result {
	var out []Result
	for _, res := range r.Results {
		if !res.OK() {
			out = append(out, res)
		}
	}
	return out
}

// Err returns a fixture error naming every misbehaving file, or nil
func (r Report) Err() error {
	failed := r.Failed()
	if len(failed) == 0 {
		return nil
	}
	names := make([]string, len(failed))
	for i, res := range failed {
		names[i] = res.Name
	}
	return apperrors.NewFixtureError(
		fmt.Sprintf("%d of %d fixtures misbehaved: %s", len(failed), len(r.Results), strings.Join(names, ", ")),
		apperrors.ErrFixturesFailed,
	)
}

// Runner reads fixture files with a fixed set of reader options
type Runner struct {
	logger log.Logger
	opts   []univalue.Option
}

// NewRunner creates a Runner. A nil logger discards output.
func NewRunner(logger log.Logger, opts ...univalue.Option) *Runner {
	if logger == nil {
		logger = log.NewNopLogger()
	}
	return &Runner{logger: logger, opts: opts}
}

// Run reads every pass*.json and fail*.json file in dir, in name order
func (r *Runner) Run(dir string) (Report, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return Report{}, errors.Wrapf(err, "listing fixture directory %s", dir)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	var report Report
	for _, name := range names {
		expect, ok := expectationOf(name)
		if !ok {
			level.Debug(r.logger).Log("msg", "skipping file without pass or fail prefix", "file", name)
			continue
		}

		res, err := r.runOne(filepath.Join(dir, name), name, expect)
		if err != nil {
			return report, err
		}
		report.Results = append(report.Results, res)
	}

	level.Info(r.logger).Log("msg", "fixtures finished", "dir", dir, "total", len(report.Results), "failed", len(report.Failed()))
	return report, nil
}

func (r *Runner) runOne(path, name string, expect Expectation) (Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Result{}, errors.Wrapf(err, "reading fixture %s", name)
	}

	var v univalue.Value
	res := Result{Name: name, Expect: expect, Err: v.Read(data, r.opts...)}

	logger := log.With(r.logger, "file", name, "want", expect)
	switch {
	case !res.OK() && res.Err != nil:
		level.Error(logger).Log("msg", "fixture was rejected", "err", res.Err)
	case !res.OK():
		level.Error(logger).Log("msg", "fixture was accepted")
	case res.Err != nil:
		level.Debug(logger).Log("msg", "rejected as expected", "err", res.Err)
	default:
		level.Debug(logger).Log("msg", "accepted as expected")
	}
	return res, nil
}

func expectationOf(name string) (Expectation, bool) {
	switch {
	case strings.HasPrefix(name, "pass"):
		return ExpectPass, true
	case strings.HasPrefix(name, "fail"):
		return ExpectFail, true
	}
	return ExpectPass, false
}
