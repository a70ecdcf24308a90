package rules

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"mercator-hq/docguard/pkg/config"
	"mercator-hq/docguard/pkg/policy/engine"
	"mercator-hq/docguard/pkg/source"
)

// DocPresenceID is the id of the doc presence rule.
const DocPresenceID = config.DefaultRuleDocPresence

// DocPresenceOptions configures DocPresence.
type DocPresenceOptions struct {
	// MinLength is the number of characters, after trimming, below which a
	// doc comment counts as missing.
	MinLength int `yaml:"min_length"`
}

// DocPresence reports elements without a doc comment.
type DocPresence struct{}

// NewDocPresence creates the rule.
func NewDocPresence() *DocPresence {
	return &DocPresence{}
}

// ID implements Rule.
func (*DocPresence) ID() string { return DocPresenceID }

// Description implements Rule.
func (*DocPresence) Description() string {
	return "every element in scope must carry a doc comment"
}

// Evaluate implements Rule.
func (r *DocPresence) Evaluate(ctx context.Context, sc *source.ScanContext, raw config.RuleOptions) ([]Finding, error) {
	opts := DocPresenceOptions{MinLength: 1}
	if err := raw.Decode(&opts); err != nil {
		return nil, engine.NewRuleConfigError(r.ID(), err)
	}
	if opts.MinLength < 1 {
		return nil, engine.NewRuleConfigError(r.ID(), errors.New("min_length must be at least 1"))
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var findings []Finding
	for _, el := range sc.Elements {
		doc, _ := sc.Doc(el)
		if utf8.RuneCountInString(strings.TrimSpace(doc)) >= opts.MinLength {
			continue
		}
		findings = append(findings, Finding{
			Element: el,
			Message: "Missing doc comment: " + el.DisplayName,
		})
	}
	return findings, nil
}
