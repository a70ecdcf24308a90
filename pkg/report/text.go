package report

import (
	"bufio"
	"fmt"
	"io"

	"github.com/fatih/color"

	"mercator-hq/docguard/pkg/audit"
	"mercator-hq/docguard/pkg/model"
)

// TextReporter prints one line per issue followed by a count:
//
//	[ERROR] Missing doc comment: shop.Client (doc-presence) - shop/client.go:12
//	Issues: 1
type TextReporter struct {
	severity map[model.Severity]*color.Color
	dim      *color.Color
}

// NewTextReporter creates a text reporter. Colors are applied only when
// useColor is set, regardless of color.NoColor.
func NewTextReporter(useColor bool) *TextReporter {
	r := &TextReporter{
		severity: map[model.Severity]*color.Color{
			model.SeverityError: color.New(color.FgRed, color.Bold),
			model.SeverityWarn:  color.New(color.FgYellow),
			model.SeverityInfo:  color.New(color.FgCyan),
		},
		dim: color.New(color.Faint),
	}

	for _, c := range r.severity {
		setColor(c, useColor)
	}
	setColor(r.dim, useColor)

	return r
}

func setColor(c *color.Color, on bool) {
	if on {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
}

// Report implements Reporter.
func (r *TextReporter) Report(w io.Writer, res *audit.Result, _ model.Severity) error {
	bw := bufio.NewWriter(w)

	for _, is := range res.Issues {
		tag := fmt.Sprintf("[%s]", is.Severity)
		if c, ok := r.severity[is.Severity]; ok {
			tag = c.Sprint(tag)
		}
		fmt.Fprintf(bw, "%s %s (%s) - %s\n",
			tag, is.Message, is.RuleID, r.dim.Sprint(location(is.Element)))
	}
	fmt.Fprintf(bw, "Issues: %d\n", len(res.Issues))

	return bw.Flush()
}
