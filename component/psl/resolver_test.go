package psl

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestResolver(t *testing.T, list string) *Resolver {
	t.Helper()
	rules, err := Parse([]byte(list), ParseOption{})
	require.NoError(t, err)

	resolver := NewResolver()
	require.NoError(t, resolver.Store(rules))
	return resolver
}

func TestResolver_NotReady(t *testing.T) {
	resolver := NewResolver()

	_, err := resolver.Lookup("example.com")
	assert.ErrorIs(t, err, ErrNotReady)

	select {
	case <-resolver.Ready():
		t.Fatal("resolver must not be ready before Store")
	default:
	}
}

func TestResolver_Lookup(t *testing.T) {
	resolver := newTestResolver(t, "com\nuk\nco.uk\n")

	info, err := resolver.Lookup("www.example.co.uk")
	require.NoError(t, err)
	assert.Equal(t, "co.uk", info.PublicSuffix)
	assert.Equal(t, "example.co.uk", info.RegistrableDomain)
	assert.Equal(t, "co.uk", info.Rule.Text())

	select {
	case <-resolver.Ready():
	default:
		t.Fatal("resolver must be ready after Store")
	}
}

func TestResolver_HostIsSuffix(t *testing.T) {
	resolver := newTestResolver(t, "com\n")

	info, err := resolver.Lookup("com")
	require.NoError(t, err)
	assert.Equal(t, "com", info.PublicSuffix)
	assert.Empty(t, info.RegistrableDomain)

	_, err = resolver.EffectiveTLDPlusOne("com")
	assert.ErrorIs(t, err, ErrNoRegistrableDomain)
}

func TestResolver_WildcardException(t *testing.T) {
	resolver := newTestResolver(t, "*.ck\n!www.ck\n")

	info, err := resolver.Lookup("www.ck")
	require.NoError(t, err)
	assert.Equal(t, "ck", info.PublicSuffix)
	assert.Equal(t, "www.ck", info.RegistrableDomain)

	info, err = resolver.Lookup("foo.ck")
	require.NoError(t, err)
	assert.Equal(t, "foo.ck", info.PublicSuffix)
	assert.Empty(t, info.RegistrableDomain)

	info, err = resolver.Lookup("bar.foo.ck")
	require.NoError(t, err)
	assert.Equal(t, "foo.ck", info.PublicSuffix)
	assert.Equal(t, "bar.foo.ck", info.RegistrableDomain)
}

func TestResolver_SingleLabelException(t *testing.T) {
	resolver := newTestResolver(t, "*.ck\n!ck\n")

	info, err := resolver.Lookup("ck")
	require.NoError(t, err)
	assert.Equal(t, "ck", info.PublicSuffix)
	assert.Empty(t, info.RegistrableDomain)

	info, err = resolver.Lookup("foo.ck")
	require.NoError(t, err)
	assert.Equal(t, "ck", info.PublicSuffix)
	assert.Equal(t, "foo.ck", info.RegistrableDomain)
}

func TestResolver_EmptyRuleSetFallback(t *testing.T) {
	resolver := newTestResolver(t, "")

	info, err := resolver.Lookup("www.example.com")
	require.NoError(t, err)
	assert.Equal(t, "com", info.PublicSuffix)
	assert.Equal(t, "example.com", info.RegistrableDomain)
	assert.Equal(t, "*", info.Rule.Text())
}

func TestResolver_CaseAndIDN(t *testing.T) {
	resolver := newTestResolver(t, "com.cn\n")

	suffix, err := resolver.PublicSuffix("食狮.Com.CN")
	require.NoError(t, err)
	assert.Equal(t, "com.cn", suffix)

	etld1, err := resolver.EffectiveTLDPlusOne("www.食狮.com.cn")
	require.NoError(t, err)
	assert.Equal(t, "xn--85x722f.com.cn", etld1)
}

func TestResolver_RefreshSwapsRuleSet(t *testing.T) {
	resolver := newTestResolver(t, "com\n")

	rules, err := Parse([]byte("com\nco.uk\n"), ParseOption{})
	require.NoError(t, err)
	require.NoError(t, resolver.Store(rules))
	assert.Equal(t, 2, resolver.RuleCount())

	info, err := resolver.Lookup("example.co.uk")
	require.NoError(t, err)
	assert.Equal(t, "co.uk", info.PublicSuffix)
}

func TestResolver_ConcurrentLookups(t *testing.T) {
	resolver := newTestResolver(t, "com\nuk\nco.uk\n*.ck\n!www.ck\n")

	var wg sync.WaitGroup
	for i := 0; i < 1000; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			info, err := resolver.Lookup("www.example.co.uk")
			assert.NoError(t, err)
			assert.Equal(t, "example.co.uk", info.RegistrableDomain)
		}()
	}
	wg.Wait()
}
