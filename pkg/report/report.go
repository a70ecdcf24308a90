package report

import (
	"fmt"
	"io"
	"strings"

	"mercator-hq/docguard/pkg/audit"
	"mercator-hq/docguard/pkg/model"
)

// Format names a report format.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// Reporter renders an audit result.
type Reporter interface {
	// Report writes res to w. threshold is the fail-on severity, used to
	// state whether the run failed.
	Report(w io.Writer, res *audit.Result, threshold model.Severity) error
}

// Options configures reporters.
type Options struct {
	// Color enables ANSI colors in the text report.
	Color bool
}

// New returns the reporter for format.
func New(format Format, opts Options) (Reporter, error) {
	switch Format(strings.ToLower(string(format))) {
	case FormatText, "":
		return NewTextReporter(opts.Color), nil
	case FormatJSON:
		return NewJSONReporter(), nil
	default:
		return nil, fmt.Errorf("unsupported report format %q", format)
	}
}

// location renders "file:line", or just the file when the line is unknown.
func location(el model.Element) string {
	if el.Line > 0 {
		return fmt.Sprintf("%s:%d", el.SourceFile, el.Line)
	}
	return el.SourceFile
}
