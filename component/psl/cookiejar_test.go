package psl

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestList_PublicSuffix(t *testing.T) {
	resolver := newTestResolver(t, "com\nco.uk\n")
	list := NewList(resolver)

	assert.Equal(t, "co.uk", list.PublicSuffix("www.example.co.uk"))
	assert.Equal(t, "com", list.PublicSuffix("example.com"))

	// unresolvable input falls back to the last label
	assert.Equal(t, "1", list.PublicSuffix("127.0.0.1"))
}

func TestList_String(t *testing.T) {
	resolver := newTestResolver(t, "com\n")
	assert.Contains(t, NewList(resolver).String(), "1 rules")
}
