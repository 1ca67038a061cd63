package trie

import (
	"errors"
	"strings"
)

// ErrInvalidPattern means the rule pattern contains an empty label
var ErrInvalidPattern = errors.New("invalid rule pattern")

// RuleKind classifies a public suffix rule
type RuleKind int

const (
	// Normal matches its labels literally
	Normal RuleKind = iota
	// Wildcard carries a "*" label matching any single label
	Wildcard
	// WildcardException punches a hole in a wildcard rule and always outranks it
	WildcardException
)

func (k RuleKind) String() string {
	switch k {
	case Normal:
		return "Normal"
	case Wildcard:
		return "Wildcard"
	case WildcardException:
		return "WildcardException"
	default:
		return "Unknown"
	}
}

// Rule is a single public suffix rule, immutable once created.
// The pattern keeps the labels as written left to right ("co.uk" -> ["co","uk"]).
type Rule struct {
	pattern []string
	text    string
	kind    RuleKind
	count   int
}

// NewRule builds a Rule from its dotted pattern text.
// Exception rules are handed in with the leading "!" already stripped.
func NewRule(pattern string, kind RuleKind) (Rule, error) {
	labels := strings.Split(pattern, ".")
	if len(labels) == 0 {
		return Rule{}, ErrInvalidPattern
	}
	for _, label := range labels {
		if label == "" {
			return Rule{}, ErrInvalidPattern
		}
	}

	return Rule{
		pattern: labels,
		text:    pattern,
		kind:    kind,
		count:   len(labels),
	}, nil
}

// Labels returns the pattern labels left to right
func (r Rule) Labels() []string {
	return r.pattern
}

// Text returns the pattern as written
func (r Rule) Text() string {
	return r.text
}

func (r Rule) Kind() RuleKind {
	return r.kind
}

// LabelCount is cached at construction and always equals len(Labels())
func (r Rule) LabelCount() int {
	return r.count
}

// IsZero reports whether r is the empty Rule
func (r Rule) IsZero() bool {
	return r.count == 0
}
