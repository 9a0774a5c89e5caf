package storage

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/akrisanov/docstring-verifier/internal/pysrc"
	"github.com/akrisanov/docstring-verifier/internal/rules"
	"github.com/akrisanov/docstring-verifier/internal/slogutil"
)

func openTestCache(t *testing.T) *Cache {
	t.Helper()

	cache, err := OpenCache(filepath.Join(t.TempDir(), ".dsv"), slogutil.NewDiscardLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = cache.Close() })
	return cache
}

func sampleDiagnostics() []rules.Diagnostic {
	return []rules.Diagnostic{
		{
			RuleID:   rules.DSV102,
			Severity: rules.SeverityWarning,
			Message:  "Parameter 'b' of 'divide' is not documented",
			Range:    pysrc.Range{StartLine: 3, StartCol: 0, EndLine: 3, EndCol: 0},
		},
		{
			RuleID:   rules.DSV301,
			Severity: rules.SeverityWarning,
			Message:  "'divide' raises 'ValueError' but the docstring does not document it",
			Range:    pysrc.Range{StartLine: 9, StartCol: 4, EndLine: 9, EndCol: 4},
		},
	}
}

func TestCachePutGet(t *testing.T) {
	cache := openTestCache(t)

	hash := HashContent([]byte("def f(): pass"))
	require.NoError(t, cache.Put("src/f.py", hash, 1, sampleDiagnostics()))

	diags, functions, hit, err := cache.Get("src/f.py", hash)
	require.NoError(t, err)
	require.True(t, hit)
	require.Equal(t, 1, functions)
	require.Equal(t, sampleDiagnostics(), diags)
}

func TestCacheMiss(t *testing.T) {
	cache := openTestCache(t)

	_, _, hit, err := cache.Get("src/f.py", HashContent([]byte("anything")))
	require.NoError(t, err)
	require.False(t, hit)
}

func TestCacheEvictsStaleRevisions(t *testing.T) {
	cache := openTestCache(t)

	oldHash := HashContent([]byte("v1"))
	newHash := HashContent([]byte("v2"))

	require.NoError(t, cache.Put("src/f.py", oldHash, 1, sampleDiagnostics()))
	require.NoError(t, cache.Put("src/f.py", newHash, 1, nil))

	_, _, hit, err := cache.Get("src/f.py", oldHash)
	require.NoError(t, err)
	require.False(t, hit, "old revision should be evicted by the new one")

	diags, _, hit, err := cache.Get("src/f.py", newHash)
	require.NoError(t, err)
	require.True(t, hit)
	require.Empty(t, diags)
}

func TestCachePrune(t *testing.T) {
	cache := openTestCache(t)

	require.NoError(t, cache.Put("src/f.py", HashContent([]byte("v1")), 1, sampleDiagnostics()))

	removed, err := cache.Prune(24 * time.Hour)
	require.NoError(t, err)
	require.Zero(t, removed, "fresh entries must survive pruning")

	removed, err = cache.Prune(-time.Minute)
	require.NoError(t, err)
	require.EqualValues(t, 1, removed)
}

func TestHashContentStable(t *testing.T) {
	a := HashContent([]byte("def f(): pass"))
	b := HashContent([]byte("def f(): pass"))
	c := HashContent([]byte("def g(): pass"))

	require.Equal(t, a, b)
	require.NotEqual(t, a, c)
	require.Len(t, a, 64)

	// A salt part yields a distinct key for the same content.
	salted := HashContent([]byte("v1|config"), []byte("def f(): pass"))
	require.NotEqual(t, a, salted)
	require.Equal(t, salted, HashContent([]byte("v1|config"), []byte("def f(): pass")))
}
