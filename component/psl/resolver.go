package psl

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/suffixlab/suffixd/common/atomic"
	"github.com/suffixlab/suffixd/common/lru"
	"github.com/suffixlab/suffixd/component/trie"
)

var (
	// ErrNotReady means a lookup ran before any rule set was stored
	ErrNotReady = errors.New("rule set not ready")
	// ErrNoRegistrableDomain means the host itself is a public suffix,
	// a normal outcome of a well-formed lookup, not a failure
	ErrNoRegistrableDomain = errors.New("host is itself a public suffix")
)

const lookupCacheSize = 4096

// DomainInfo is the result of one lookup
type DomainInfo struct {
	Host              string    `json:"host"`
	PublicSuffix      string    `json:"publicSuffix"`
	RegistrableDomain string    `json:"registrableDomain,omitempty"`
	Rule              trie.Rule `json:"-"`
}

// state bundles a built trie with its lookup cache, the pair is always
// swapped together so cached results never outlive their rule set
type state struct {
	trie  *trie.Trie
	cache *lru.LruCache[string, *DomainInfo]
}

// Resolver holds the current rule set behind a single atomic handle.
// Each Store builds a whole new trie off to the side and publishes it in
// one swap, lookups never observe a partially built trie and take no lock.
type Resolver struct {
	state     atomic.TypedValue[*state]
	readyOnce sync.Once
	ready     chan struct{}
}

func NewResolver() *Resolver {
	return &Resolver{ready: make(chan struct{})}
}

// Store builds and publishes a fresh trie from the rule sequence.
// Safe to call again on refresh, the previous trie stays valid for
// lookups already in flight.
func (r *Resolver) Store(rules []trie.Rule) error {
	t := trie.New()
	if err := t.Build(rules); err != nil {
		return err
	}

	r.state.Store(&state{
		trie:  t,
		cache: lru.New[string, *DomainInfo](lru.WithSize[string, *DomainInfo](lookupCacheSize)),
	})
	r.readyOnce.Do(func() { close(r.ready) })
	return nil
}

// Ready unblocks once the first rule set has been stored
func (r *Resolver) Ready() <-chan struct{} {
	return r.ready
}

// RuleCount returns the number of rules in the published set, 0 before Store
func (r *Resolver) RuleCount() int {
	if s := r.state.Load(); s != nil {
		return s.trie.RuleCount()
	}
	return 0
}

// Lookup normalizes the host, matches it against the published rule set
// and derives the domain info. A host that is itself a public suffix comes
// back with an empty RegistrableDomain.
func (r *Resolver) Lookup(host string) (*DomainInfo, error) {
	s := r.state.Load()
	if s == nil {
		return nil, ErrNotReady
	}

	normalized, labels, err := NormalizeHost(host)
	if err != nil {
		return nil, err
	}

	if info, ok := s.cache.Get(normalized); ok {
		return info, nil
	}

	winner, err := s.trie.Match(labels)
	if err != nil {
		return nil, err
	}

	info := derive(normalized, winner)
	s.cache.Set(normalized, info)
	return info, nil
}

// PublicSuffix returns the public suffix of host
func (r *Resolver) PublicSuffix(host string) (string, error) {
	info, err := r.Lookup(host)
	if err != nil {
		return "", err
	}
	return info.PublicSuffix, nil
}

// EffectiveTLDPlusOne returns the registrable domain, the public suffix
// plus one label
func (r *Resolver) EffectiveTLDPlusOne(host string) (string, error) {
	info, err := r.Lookup(host)
	if err != nil {
		return "", err
	}
	if info.RegistrableDomain == "" {
		return "", fmt.Errorf("%w: %s", ErrNoRegistrableDomain, info.Host)
	}
	return info.RegistrableDomain, nil
}

// derive computes the suffix boundary from the winning rule. An exception
// rule marks its own pattern registrable, so its public suffix is the
// pattern minus the leftmost label.
func derive(host string, winner trie.Rule) *DomainInfo {
	suffixLen := winner.LabelCount()
	if winner.Kind() == trie.WildcardException {
		suffixLen--
	}
	if suffixLen < 1 {
		// a one-label exception rule would leave no suffix at all,
		// treat its label as the boundary so the derivation stays total
		suffixLen = 1
	}

	parts := strings.Split(host, ".")
	info := &DomainInfo{
		Host:         host,
		PublicSuffix: strings.Join(parts[len(parts)-suffixLen:], "."),
		Rule:         winner,
	}
	if len(parts) > suffixLen {
		info.RegistrableDomain = strings.Join(parts[len(parts)-suffixLen-1:], ".")
	}
	return info
}
