package psl

import (
	"fmt"
	"net/http/cookiejar"
	"strings"
)

// List adapts a Resolver to the net/http/cookiejar.PublicSuffixList interface
type List struct {
	resolver *Resolver
}

func NewList(resolver *Resolver) cookiejar.PublicSuffixList {
	return List{resolver: resolver}
}

func (l List) PublicSuffix(domain string) string {
	info, err := l.resolver.Lookup(domain)
	if err != nil {
		// cookiejar has no error channel, fall back to the last label
		if i := strings.LastIndexByte(domain, '.'); i != -1 {
			return domain[i+1:]
		}
		return domain
	}
	return info.PublicSuffix
}

func (l List) String() string {
	return fmt.Sprintf("publicsuffix.org rule set, %d rules", l.resolver.RuleCount())
}
