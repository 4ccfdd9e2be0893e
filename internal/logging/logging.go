// Package logging builds the go-kit logger used by the command line tool.
package logging

import (
	"io"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// Format names accepted by New
const (
	FormatLogfmt = "logfmt"
	FormatJSON   = "json"
)

// New returns a leveled logger writing to w. Debug lines are dropped unless
// debug is set. Unknown formats fall back to logfmt.
func New(w io.Writer, format string, debug bool) log.Logger {
	sw := log.NewSyncWriter(w)
	logger := log.NewLogfmtLogger(sw)
	if format == FormatJSON {
		logger = log.NewJSONLogger(sw)
	}

	allow := level.AllowInfo()
	if debug {
		allow = level.AllowDebug()
	}
	logger = level.NewFilter(logger, allow)

	return log.With(logger, "ts", log.DefaultTimestampUTC, "caller", log.DefaultCaller)
}
