package psl

import (
	"bufio"
	"bytes"
	"fmt"
	"strings"

	"github.com/suffixlab/suffixd/component/trie"

	"golang.org/x/net/idna"
)

const (
	beginPrivateMarker = "===BEGIN PRIVATE DOMAINS==="
	endPrivateMarker   = "===END PRIVATE DOMAINS==="

	wildcardLabel   = "*"
	exceptionPrefix = "!"
	commentPrefix   = "//"
)

// ParseOption controls which sections of the rule list are kept
type ParseOption struct {
	// IncludePrivate keeps the PRIVATE DOMAINS section
	IncludePrivate bool
}

// Parse reads the public_suffix_list.dat text format: "//" comments, blank
// lines, "!" prefix for wildcard exceptions, "*" labels for wildcards.
// Unicode rule text is punycoded here so the trie only holds canonical labels.
func Parse(buf []byte, opt ParseOption) ([]trie.Rule, error) {
	rules := make([]trie.Rule, 0, 8192)
	inPrivate := false

	scanner := bufio.NewScanner(bytes.NewReader(buf))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, commentPrefix) {
			if strings.Contains(line, beginPrivateMarker) {
				inPrivate = true
			} else if strings.Contains(line, endPrivateMarker) {
				inPrivate = false
			}
			continue
		}
		if inPrivate && !opt.IncludePrivate {
			continue
		}

		// the rule is the first whitespace separated token
		if i := strings.IndexAny(line, " \t"); i != -1 {
			line = line[:i]
		}

		kind := trie.Normal
		if strings.HasPrefix(line, exceptionPrefix) {
			kind = trie.WildcardException
			line = line[len(exceptionPrefix):]
		} else if strings.Contains(line, wildcardLabel) {
			kind = trie.Wildcard
		}

		text, err := patternToASCII(line)
		if err != nil {
			return nil, fmt.Errorf("parse rule %q: %w", line, err)
		}

		rule, err := trie.NewRule(text, kind)
		if err != nil {
			return nil, fmt.Errorf("parse rule %q: %w", line, err)
		}
		rules = append(rules, rule)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return rules, nil
}

// patternToASCII lowercases and punycodes each label, wildcard labels pass through
func patternToASCII(pattern string) (string, error) {
	labels := strings.Split(strings.ToLower(pattern), ".")
	for i, label := range labels {
		if label == wildcardLabel {
			continue
		}
		ascii, err := idna.ToASCII(label)
		if err != nil {
			return "", err
		}
		labels[i] = ascii
	}
	return strings.Join(labels, "."), nil
}
