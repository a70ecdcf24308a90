package rules

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"mercator-hq/docguard/pkg/config"
	"mercator-hq/docguard/pkg/model"
	"mercator-hq/docguard/pkg/policy/engine"
	"mercator-hq/docguard/pkg/source"
)

// DocNamePrefixID is the id of the doc name prefix rule.
const DocNamePrefixID = config.DefaultRuleDocNamePrefix

// DocNamePrefixOptions configures DocNamePrefix.
type DocNamePrefixOptions struct {
	// AllowArticles accepts a leading "A", "An" or "The" before the name.
	AllowArticles bool `yaml:"allow_articles"`

	// SkipKinds lists element kinds the rule ignores.
	SkipKinds []model.Kind `yaml:"skip_kinds"`
}

var articles = []string{"A", "An", "The"}

// DocNamePrefix reports doc comments that do not start with the name of
// the element they document. Elements without a doc comment are left to
// DocPresence.
type DocNamePrefix struct{}

// NewDocNamePrefix creates the rule.
func NewDocNamePrefix() *DocNamePrefix {
	return &DocNamePrefix{}
}

// ID implements Rule.
func (*DocNamePrefix) ID() string { return DocNamePrefixID }

// Description implements Rule.
func (*DocNamePrefix) Description() string {
	return "doc comments must begin with the name of the element"
}

// Evaluate implements Rule.
func (r *DocNamePrefix) Evaluate(ctx context.Context, sc *source.ScanContext, raw config.RuleOptions) ([]Finding, error) {
	opts := DocNamePrefixOptions{AllowArticles: true}
	if err := raw.Decode(&opts); err != nil {
		return nil, engine.NewRuleConfigError(r.ID(), err)
	}
	for _, k := range opts.SkipKinds {
		if !slices.Contains(model.AllKinds(), k) {
			return nil, engine.NewRuleConfigError(r.ID(), fmt.Errorf("unknown kind %q in skip_kinds", k))
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var findings []Finding
	for _, el := range sc.Elements {
		if slices.Contains(opts.SkipKinds, el.Kind) {
			continue
		}
		doc, ok := sc.Doc(el)
		if !ok || strings.TrimSpace(doc) == "" {
			continue
		}
		if startsWithName(doc, el.Name, opts.AllowArticles) {
			continue
		}
		findings = append(findings, Finding{
			Element: el,
			Message: fmt.Sprintf("Doc comment for %s should begin with %q", el.DisplayName, el.Name),
		})
	}
	return findings, nil
}

func startsWithName(doc, name string, allowArticles bool) bool {
	words := strings.Fields(doc)
	if len(words) == 0 {
		return false
	}
	if allowArticles && len(words) > 1 && slices.Contains(articles, words[0]) {
		words = words[1:]
	}

	word := words[0]
	if !strings.HasPrefix(word, name) {
		return false
	}
	// "Client's" and "Client," count; "Clients" does not.
	rest := word[len(name):]
	if rest == "" {
		return true
	}
	r, _ := utf8.DecodeRuneInString(rest)
	return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_'
}
