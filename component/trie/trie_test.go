package trie

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustRule(t *testing.T, pattern string, kind RuleKind) Rule {
	t.Helper()
	rule, err := NewRule(pattern, kind)
	require.NoError(t, err)
	return rule
}

func TestRule_Invalid(t *testing.T) {
	_, err := NewRule("", Normal)
	assert.ErrorIs(t, err, ErrInvalidPattern)

	_, err = NewRule("co..uk", Normal)
	assert.ErrorIs(t, err, ErrInvalidPattern)

	rule := mustRule(t, "co.uk", Normal)
	assert.Equal(t, 2, rule.LabelCount())
	assert.Equal(t, []string{"co", "uk"}, rule.Labels())
}

func TestTrie_LongestMatch(t *testing.T) {
	tree := New()
	err := tree.Build([]Rule{
		mustRule(t, "uk", Normal),
		mustRule(t, "co.uk", Normal),
	})
	require.NoError(t, err)

	winner, err := tree.Match([]string{"uk", "co", "example"})
	require.NoError(t, err)
	assert.Equal(t, "co.uk", winner.Text())

	winner, err = tree.Match([]string{"uk", "example"})
	require.NoError(t, err)
	assert.Equal(t, "uk", winner.Text())
}

func TestTrie_WildcardException(t *testing.T) {
	tree := New()
	err := tree.Build([]Rule{
		mustRule(t, "*.ck", Wildcard),
		mustRule(t, "www.ck", WildcardException),
	})
	require.NoError(t, err)

	winner, err := tree.Match([]string{"ck", "www"})
	require.NoError(t, err)
	assert.Equal(t, WildcardException, winner.Kind())
	assert.Equal(t, "www.ck", winner.Text())

	winner, err = tree.Match([]string{"ck", "foo"})
	require.NoError(t, err)
	assert.Equal(t, Wildcard, winner.Kind())
	assert.Equal(t, "*.ck", winner.Text())
}

func TestTrie_CatchAllFallback(t *testing.T) {
	tree := New()
	require.NoError(t, tree.Build(nil))

	winner, err := tree.Match([]string{"com", "example", "www"})
	require.NoError(t, err)
	assert.Equal(t, "*", winner.Text())
	assert.Equal(t, 1, winner.LabelCount())
	assert.Equal(t, Normal, winner.Kind())
}

func TestTrie_DuplicatePatternOverride(t *testing.T) {
	tree := New()
	err := tree.Build([]Rule{
		mustRule(t, "example.com", Normal),
		mustRule(t, "example.com", Wildcard),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, tree.RuleCount())

	winner, err := tree.Match([]string{"com", "example"})
	require.NoError(t, err)
	assert.Equal(t, Wildcard, winner.Kind())
}

func TestTrie_DoubleBuild(t *testing.T) {
	tree := New()
	require.NoError(t, tree.Build([]Rule{mustRule(t, "com", Normal)}))
	assert.ErrorIs(t, tree.Build(nil), ErrDoubleBuild)
}

func TestTrie_NotReady(t *testing.T) {
	tree := New()
	_, err := tree.Match([]string{"com"})
	assert.ErrorIs(t, err, ErrNotReady)
}

func TestTrie_InvalidLabels(t *testing.T) {
	tree := New()
	require.NoError(t, tree.Build(nil))

	_, err := tree.Match(nil)
	assert.ErrorIs(t, err, ErrInvalidLabels)

	_, err = tree.Match([]string{"com", ""})
	assert.ErrorIs(t, err, ErrInvalidLabels)
}

func TestTrie_RealRuleBeatsCatchAll(t *testing.T) {
	tree := New()
	require.NoError(t, tree.Build([]Rule{mustRule(t, "com", Normal)}))

	// same kind, same label count, descending text puts "com" before "*"
	winner, err := tree.Match([]string{"com"})
	require.NoError(t, err)
	assert.Equal(t, "com", winner.Text())
}

func TestTrie_MultiPathCandidates(t *testing.T) {
	tree := New()
	err := tree.Build([]Rule{
		mustRule(t, "*.uk", Wildcard),
		mustRule(t, "co.uk", Normal),
		mustRule(t, "uk", Normal),
	})
	require.NoError(t, err)

	// both the exact co.uk branch and the *.uk branch match, equal length,
	// descending text selects co.uk deterministically
	winner, err := tree.Match([]string{"uk", "co", "example"})
	require.NoError(t, err)
	assert.Equal(t, "co.uk", winner.Text())
}

func TestTrie_ConcurrentLookups(t *testing.T) {
	tree := New()
	err := tree.Build([]Rule{
		mustRule(t, "uk", Normal),
		mustRule(t, "co.uk", Normal),
		mustRule(t, "*.ck", Wildcard),
		mustRule(t, "www.ck", WildcardException),
	})
	require.NoError(t, err)

	labels := []string{"uk", "co", "example"}
	var wg sync.WaitGroup
	results := make([]string, 1000)
	for i := 0; i < 1000; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			winner, err := tree.Match(labels)
			assert.NoError(t, err)
			results[i] = winner.Text()
		}(i)
	}
	wg.Wait()

	for _, text := range results {
		assert.Equal(t, "co.uk", text)
	}
}
