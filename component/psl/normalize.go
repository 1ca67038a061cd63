package psl

import (
	"errors"
	"fmt"
	"net"
	"strings"

	"golang.org/x/net/idna"
)

// ErrInvalidHost means the input cannot be canonicalized into a label sequence
var ErrInvalidHost = errors.New("invalid host")

// NormalizeHost canonicalizes an arbitrary host representation into the
// label sequence the matcher requires: lower-cased, punycoded, one single
// trailing dot tolerated, labels ordered rightmost first.
func NormalizeHost(host string) (string, []string, error) {
	if host == "" {
		return "", nil, ErrInvalidHost
	}

	host = strings.ToLower(host)
	host = strings.TrimSuffix(host, ".")
	if host == "" {
		return "", nil, fmt.Errorf("%w: %q", ErrInvalidHost, ".")
	}

	if net.ParseIP(host) != nil {
		return "", nil, fmt.Errorf("%w: %q is an ip address", ErrInvalidHost, host)
	}

	ascii, err := idna.Lookup.ToASCII(host)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %q: %s", ErrInvalidHost, host, err.Error())
	}

	parts := strings.Split(ascii, ".")
	labels := make([]string, len(parts))
	for i, part := range parts {
		if part == "" {
			return "", nil, fmt.Errorf("%w: %q has an empty label", ErrInvalidHost, host)
		}
		labels[len(parts)-1-i] = part
	}

	return ascii, labels, nil
}
