//go:build cgo

package analyzer

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	dsverr "github.com/akrisanov/docstring-verifier/internal/errors"
	"github.com/akrisanov/docstring-verifier/internal/rules"
	"github.com/akrisanov/docstring-verifier/internal/slogutil"
	"github.com/akrisanov/docstring-verifier/internal/storage"
)

const mismatchedSource = `def divide(a: int, b: int) -> float:
    """Divide a by b.

    Args:
        a (str): Dividend.
        c (int): Does not exist.

    Returns:
        float: The quotient.

    Raises:
        ZeroDivisionError: If b is zero.
    """
    if b == 0:
        raise ZeroDivisionError("division by zero")
    if a == 0:
        raise ValueError("zero dividend")
    return a / b
`

func TestAnalyzeSource(t *testing.T) {
	report, err := New().AnalyzeSource(context.Background(), "div.py", []byte(mismatchedSource))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if report.Functions != 1 {
		t.Errorf("functions = %d, want 1", report.Functions)
	}

	got := map[string]int{}
	for _, d := range report.Diagnostics {
		got[d.RuleID]++
	}

	// a documented as str vs annotated int; c documented but absent;
	// b never documented; ValueError raised but undocumented.
	for _, want := range []string{rules.DSV103, rules.DSV101, rules.DSV102, rules.DSV301} {
		if got[want] != 1 {
			t.Errorf("expected one %s, got %v", want, got)
		}
	}
	if got[rules.DSV201] != 0 || got[rules.DSV302] != 0 {
		t.Errorf("unexpected diagnostics: %v", got)
	}
}

func TestAnalyzeSourceCleanFile(t *testing.T) {
	source := `def greet(name: str) -> str:
    """Greet someone.

    Args:
        name (str): Who to greet.

    Returns:
        str: The greeting.
    """
    return "Hello, " + name
`
	report, err := New().AnalyzeSource(context.Background(), "greet.py", []byte(source))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(report.Diagnostics) != 0 {
		t.Errorf("clean file produced diagnostics: %+v", report.Diagnostics)
	}
}

func TestAnalyzeSourceSyntaxError(t *testing.T) {
	_, err := New().AnalyzeSource(context.Background(), "bad.py", []byte("def broken(:\n"))
	if err == nil {
		t.Fatal("expected error")
	}
	if dsverr.CodeOf(err) != dsverr.SyntaxError {
		t.Errorf("error code = %s, want %s", dsverr.CodeOf(err), dsverr.SyntaxError)
	}
}

func TestAnalyzeFileNotFound(t *testing.T) {
	_, err := New().AnalyzeFile(context.Background(), filepath.Join(t.TempDir(), "absent.py"))
	if err == nil {
		t.Fatal("expected error")
	}
	if dsverr.CodeOf(err) != dsverr.NotFound {
		t.Errorf("error code = %s, want %s", dsverr.CodeOf(err), dsverr.NotFound)
	}
}

func TestAnalyzeFileCacheRoundtrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "div.py")
	if err := os.WriteFile(path, []byte(mismatchedSource), 0o644); err != nil {
		t.Fatal(err)
	}

	cache, err := storage.OpenCache(filepath.Join(dir, ".dsv"), slogutil.NewDiscardLogger())
	if err != nil {
		t.Fatalf("failed to open cache: %v", err)
	}
	defer func() { _ = cache.Close() }()

	a := New(WithCache(cache))

	first, err := a.AnalyzeFile(context.Background(), path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first.Cached {
		t.Error("first run should miss the cache")
	}

	second, err := a.AnalyzeFile(context.Background(), path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !second.Cached {
		t.Error("second run should hit the cache")
	}
	if len(second.Diagnostics) != len(first.Diagnostics) {
		t.Errorf("cache changed the result: %d vs %d", len(second.Diagnostics), len(first.Diagnostics))
	}

	// Changing the content invalidates the entry.
	if err := os.WriteFile(path, []byte(mismatchedSource+"\n# touched\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	third, err := a.AnalyzeFile(context.Background(), path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if third.Cached {
		t.Error("changed content should miss the cache")
	}
}

func TestAnalyzeFileCacheKeyedByConfiguration(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "div.py")
	if err := os.WriteFile(path, []byte(mismatchedSource), 0o644); err != nil {
		t.Fatal(err)
	}

	cache, err := storage.OpenCache(filepath.Join(dir, ".dsv"), slogutil.NewDiscardLogger())
	if err != nil {
		t.Fatalf("failed to open cache: %v", err)
	}
	defer func() { _ = cache.Close() }()

	// First run with DSV102 disabled, second with the default rule set over
	// the same bytes: the second must not replay the first run's entry.
	restricted := New(WithCache(cache), WithEngine(rules.NewEngine(rules.WithDisabled(rules.DSV102))))
	first, err := restricted.AnalyzeFile(context.Background(), path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, d := range first.Diagnostics {
		if d.RuleID == rules.DSV102 {
			t.Fatalf("disabled rule fired: %+v", d)
		}
	}

	full := New(WithCache(cache))
	second, err := full.AnalyzeFile(context.Background(), path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if second.Cached {
		t.Error("a different rule configuration must miss the cache")
	}
	found := false
	for _, d := range second.Diagnostics {
		if d.RuleID == rules.DSV102 {
			found = true
		}
	}
	if !found {
		t.Errorf("missing DSV102 after configuration change: %+v", second.Diagnostics)
	}

	// The second configuration's entry is usable on the next identical run.
	third, err := full.AnalyzeFile(context.Background(), path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !third.Cached {
		t.Error("repeated run with the same configuration should hit the cache")
	}
}

func TestAnalyzeSourceIdempotent(t *testing.T) {
	a := New()
	first, err := a.AnalyzeSource(context.Background(), "div.py", []byte(mismatchedSource))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := a.AnalyzeSource(context.Background(), "div.py", []byte(mismatchedSource))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := json.Marshal(second.Diagnostics)
	if err != nil {
		t.Fatal(err)
	}
	want, err := json.Marshal(first.Diagnostics)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, want) {
		t.Errorf("repeated analysis differs:\n%s\n%s", want, got)
	}
}

func TestAnalyzeBatch(t *testing.T) {
	dir := t.TempDir()

	good := filepath.Join(dir, "good.py")
	if err := os.WriteFile(good, []byte(mismatchedSource), 0o644); err != nil {
		t.Fatal(err)
	}
	bad := filepath.Join(dir, "bad.py")
	if err := os.WriteFile(bad, []byte("def broken(:\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	missing := filepath.Join(dir, "missing.py")

	paths := []string{good, bad, missing}
	reports := New().AnalyzeBatch(context.Background(), paths, 2)

	if len(reports) != 3 {
		t.Fatalf("expected 3 reports, got %d", len(reports))
	}
	for i, path := range paths {
		if reports[i].Path != path {
			t.Errorf("reports[%d].Path = %s, want input order preserved", i, reports[i].Path)
		}
	}

	if reports[0].Err != nil || len(reports[0].Diagnostics) == 0 {
		t.Errorf("good file report wrong: %+v", reports[0])
	}
	if reports[1].Err == nil || reports[1].Err.Code != dsverr.SyntaxError {
		t.Errorf("bad file should carry a syntax error: %+v", reports[1].Err)
	}
	if reports[2].Err == nil || reports[2].Err.Code != dsverr.NotFound {
		t.Errorf("missing file should carry a not-found error: %+v", reports[2].Err)
	}
}
