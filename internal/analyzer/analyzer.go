// Package analyzer wires the Python extractor, the docstring parser, and the
// rule engine into a single per-file pipeline, with an optional persistent
// cache in front of it.
package analyzer

import (
	"context"
	"log/slog"
	"os"

	"github.com/akrisanov/docstring-verifier/internal/docstring"
	dsverr "github.com/akrisanov/docstring-verifier/internal/errors"
	"github.com/akrisanov/docstring-verifier/internal/pysrc"
	"github.com/akrisanov/docstring-verifier/internal/rules"
	"github.com/akrisanov/docstring-verifier/internal/slogutil"
	"github.com/akrisanov/docstring-verifier/internal/storage"
	"github.com/akrisanov/docstring-verifier/internal/version"
)

// FileReport holds the analysis outcome for a single file. Either
// Diagnostics is populated, or Err explains why the file could not be
// analyzed at all.
type FileReport struct {
	Path        string
	Functions   int
	Diagnostics []rules.Diagnostic
	Cached      bool
	Err         *dsverr.VerifierError
}

// Analyzer runs the full docstring consistency pipeline.
type Analyzer struct {
	parser *pysrc.Parser
	docs   *docstring.Parser
	engine *rules.Engine
	cache  *storage.Cache
	logger *slog.Logger

	// cacheSalt folds the tool version and the analysis configuration into
	// every cache key, so a configuration change invalidates cached entries
	// the same way a content change does.
	cacheSalt []byte
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithEngine replaces the default rule engine.
func WithEngine(engine *rules.Engine) Option {
	return func(a *Analyzer) { a.engine = engine }
}

// WithDocstringParser replaces the default docstring parser.
func WithDocstringParser(p *docstring.Parser) Option {
	return func(a *Analyzer) { a.docs = p }
}

// WithCache enables the persistent diagnostics cache.
func WithCache(cache *storage.Cache) Option {
	return func(a *Analyzer) { a.cache = cache }
}

// WithLogger sets the logger. Defaults to a discarding logger.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Analyzer) { a.logger = logger }
}

// New creates an Analyzer with default components.
func New(opts ...Option) *Analyzer {
	a := &Analyzer{
		parser: pysrc.NewParser(),
		docs:   docstring.NewParser(),
		engine: rules.NewEngine(),
		logger: slogutil.NewDiscardLogger(),
	}
	for _, opt := range opts {
		opt(a)
	}
	a.cacheSalt = []byte(version.Version + "|" + a.engine.Fingerprint() + "|" + a.docs.Fingerprint())
	return a
}

// AnalyzeSource analyzes Python source held in memory. The path is used only
// for labeling diagnostics and errors.
func (a *Analyzer) AnalyzeSource(ctx context.Context, path string, source []byte) (*FileReport, error) {
	functions, err := a.parser.Extract(ctx, source, path)
	if err != nil {
		return nil, err
	}

	report := &FileReport{Path: path, Functions: len(functions)}
	for i := range functions {
		fn := &functions[i]
		if !fn.HasDocstring() {
			continue
		}
		model := a.docs.Parse(fn.Docstring, fn.DocRange.StartLine)
		report.Diagnostics = append(report.Diagnostics, a.engine.Run(fn, model)...)
	}

	a.logger.Debug("Analyzed file",
		"path", path,
		"functions", report.Functions,
		"diagnostics", len(report.Diagnostics))

	return report, nil
}

// AnalyzeFile reads and analyzes a file on disk, consulting the cache when
// one is configured.
func (a *Analyzer) AnalyzeFile(ctx context.Context, path string) (*FileReport, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, dsverr.New(dsverr.NotFound, "file not found", err).WithFile(path)
		}
		return nil, dsverr.New(dsverr.InternalError, "failed to read file", err).WithFile(path)
	}

	var hash string
	if a.cache != nil {
		hash = storage.HashContent(a.cacheSalt, source)
		diags, functions, hit, cacheErr := a.cache.Get(path, hash)
		if cacheErr != nil {
			a.logger.Warn("Cache lookup failed", "path", path, "error", cacheErr)
		} else if hit {
			return &FileReport{Path: path, Functions: functions, Diagnostics: diags, Cached: true}, nil
		}
	}

	report, err := a.AnalyzeSource(ctx, path, source)
	if err != nil {
		return nil, err
	}

	if a.cache != nil {
		if cacheErr := a.cache.Put(path, hash, report.Functions, report.Diagnostics); cacheErr != nil {
			a.logger.Warn("Cache store failed", "path", path, "error", cacheErr)
		}
	}

	return report, nil
}
