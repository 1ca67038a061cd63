package psl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeHost_Basic(t *testing.T) {
	host, labels, err := NormalizeHost("WWW.Example.COM")
	require.NoError(t, err)
	assert.Equal(t, "www.example.com", host)
	assert.Equal(t, []string{"com", "example", "www"}, labels)
}

func TestNormalizeHost_TrailingDot(t *testing.T) {
	host, labels, err := NormalizeHost("example.com.")
	require.NoError(t, err)
	assert.Equal(t, "example.com", host)
	assert.Equal(t, []string{"com", "example"}, labels)
}

func TestNormalizeHost_IDN(t *testing.T) {
	host, labels, err := NormalizeHost("食狮.com.cn")
	require.NoError(t, err)
	assert.Equal(t, "xn--85x722f.com.cn", host)
	assert.Equal(t, []string{"cn", "com", "xn--85x722f"}, labels)
}

func TestNormalizeHost_SingleLabel(t *testing.T) {
	host, labels, err := NormalizeHost("localhost")
	require.NoError(t, err)
	assert.Equal(t, "localhost", host)
	assert.Equal(t, []string{"localhost"}, labels)
}

func TestNormalizeHost_Invalid(t *testing.T) {
	for _, input := range []string{
		"",
		".",
		"example..com",
		".example.com",
		"127.0.0.1",
		"::1",
	} {
		_, _, err := NormalizeHost(input)
		assert.ErrorIs(t, err, ErrInvalidHost, "input %q", input)
	}
}
