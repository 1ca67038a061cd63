package trie

import (
	"errors"
	"sort"
)

const wildcard = "*"

var (
	// ErrDoubleBuild means Build ran on an already populated trie
	ErrDoubleBuild = errors.New("trie already built")
	// ErrInvalidLabels means the label sequence is empty or contains an empty label
	ErrInvalidLabels = errors.New("invalid label sequence")
	// ErrNotReady means Match ran before Build
	ErrNotReady = errors.New("trie not built")
)

// Trie holds the rule set as a reversed label trie.
// Build runs exactly once, afterwards the structure is never mutated and is
// safe for unlimited concurrent Match calls.
type Trie struct {
	root  *node
	built bool
	count int
}

// New returns an empty, unbuilt Trie. The root carries the synthetic
// catch-all rule "*" so the matcher always has a fallback winner.
func New() *Trie {
	root := newNode(wildcard)
	catchAll, _ := NewRule(wildcard, Normal)
	root.rule = &catchAll
	return &Trie{root: root}
}

// Build inserts every rule in input order. The last write to a terminal
// slot wins, so duplicate patterns override earlier ones like a map
// assignment. Building twice is a logic error and fails fast.
func (t *Trie) Build(rules []Rule) error {
	if t.built {
		return ErrDoubleBuild
	}

	for _, rule := range rules {
		t.insert(rule)
	}
	t.built = true
	return nil
}

func (t *Trie) insert(rule Rule) {
	n := t.root
	labels := rule.pattern
	// reverse storage so lookups consume a host's labels from the TLD inward
	for i := len(labels) - 1; i >= 0; i-- {
		label := labels[i]
		if !n.hasChild(label) {
			n.addChild(label, newNode(label))
		}
		n = n.getChild(label)
	}
	if n.rule == nil {
		t.count++
	}
	r := rule
	n.rule = &r
}

// RuleCount returns the number of distinct patterns inserted
func (t *Trie) RuleCount() int {
	return t.count
}

// Built reports whether Build has completed
func (t *Trie) Built() bool {
	return t.built
}

// candidate is an ephemeral record collected during traversal,
// discarded once the winner is chosen
type candidate struct {
	rule *Rule
}

// Match returns the winning rule for a normalized label sequence ordered
// rightmost first. Every label must be non-empty; the caller normalizes
// and validates before calling.
func (t *Trie) Match(labels []string) (Rule, error) {
	if !t.built {
		return Rule{}, ErrNotReady
	}
	if len(labels) == 0 {
		return Rule{}, ErrInvalidLabels
	}
	for _, label := range labels {
		if label == "" {
			return Rule{}, ErrInvalidLabels
		}
	}

	var candidates []candidate
	t.match(t.root, labels, &candidates)

	// the root catch-all is always collected, so candidates is never empty
	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i].rule, candidates[j].rule
		if (a.kind == WildcardException) != (b.kind == WildcardException) {
			return a.kind == WildcardException
		}
		if a.count != b.count {
			return a.count > b.count
		}
		return a.text > b.text
	})

	return *candidates[0].rule, nil
}

// match explores exact and wildcard children independently, collecting the
// terminal rule of every visited node. A host can satisfy a specific rule
// and a broader wildcard rule at different depths, so this is deliberately
// not a single root-to-leaf walk.
func (t *Trie) match(n *node, labels []string, acc *[]candidate) {
	if n.rule != nil {
		*acc = append(*acc, candidate{rule: n.rule})
	}
	if len(labels) == 0 {
		return
	}

	label, rest := labels[0], labels[1:]
	if c := n.getChild(label); c != nil {
		t.match(c, rest, acc)
	}
	if c := n.getChild(wildcard); c != nil {
		t.match(c, rest, acc)
	}
}
