package model

import (
	"fmt"
	"strings"
)

// Severity is an ordered issue level. The scale is INFO < WARN < ERROR.
type Severity string

const (
	// SeverityInfo is the lowest level.
	SeverityInfo Severity = "INFO"
	// SeverityWarn marks issues worth fixing that should not break a build by default.
	SeverityWarn Severity = "WARN"
	// SeverityError is the highest level.
	SeverityError Severity = "ERROR"
)

// severityScale lists severities from lowest to highest.
var severityScale = []Severity{SeverityInfo, SeverityWarn, SeverityError}

// AllSeverities returns every severity in ascending order.
func AllSeverities() []Severity {
	out := make([]Severity, len(severityScale))
	copy(out, severityScale)
	return out
}

// ParseSeverity parses a severity name. Matching is case-insensitive.
func ParseSeverity(s string) (Severity, error) {
	sev := Severity(strings.ToUpper(strings.TrimSpace(s)))
	if sev.Rank() < 0 {
		return "", fmt.Errorf("invalid severity %q (must be one of INFO, WARN, ERROR)", s)
	}
	return sev, nil
}

// Rank returns the position of s on the scale, or -1 for unknown values.
func (s Severity) Rank() int {
	for i, v := range severityScale {
		if v == s {
			return i
		}
	}
	return -1
}

// Valid reports whether s is a known severity.
func (s Severity) Valid() bool {
	return s.Rank() >= 0
}

// AtLeast reports whether s is ordinally greater than or equal to threshold.
func (s Severity) AtLeast(threshold Severity) bool {
	return s.Rank() >= threshold.Rank()
}

// Shift moves s by n steps along the scale, clamping at both ends.
// Unknown severities are returned unchanged.
func (s Severity) Shift(n int) Severity {
	r := s.Rank()
	if r < 0 {
		return s
	}
	r += n
	if r < 0 {
		r = 0
	}
	if r >= len(severityScale) {
		r = len(severityScale) - 1
	}
	return severityScale[r]
}

// String returns the severity name.
func (s Severity) String() string {
	return string(s)
}
