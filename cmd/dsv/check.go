package main

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/akrisanov/docstring-verifier/internal/analyzer"
	"github.com/akrisanov/docstring-verifier/internal/config"
	"github.com/akrisanov/docstring-verifier/internal/docstring"
	"github.com/akrisanov/docstring-verifier/internal/pysrc"
	"github.com/akrisanov/docstring-verifier/internal/report"
	"github.com/akrisanov/docstring-verifier/internal/rules"
	"github.com/akrisanov/docstring-verifier/internal/storage"
)

var (
	checkFormat      string
	checkFailOn      string
	checkNoCache     bool
	checkConcurrency int
	checkDisable     []string
)

var checkCmd = &cobra.Command{
	Use:   "check [paths...]",
	Short: "Check Python docstrings against their signatures",
	Long: `Check analyzes Python files and reports docstring/signature mismatches.

Paths may be files or directories; directories are walked recursively for
.py files. With no paths, the current directory is checked.

Examples:
  dsv check                        # Check the current directory
  dsv check src/ tests/helpers.py  # Check a directory and a file
  dsv check --format sarif src/    # SARIF output for CI upload
  dsv check --fail-on error src/   # Only errors affect the exit code`,
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().StringVar(&checkFormat, "format", "human",
		"Output format: human, json, yaml, or sarif")
	checkCmd.Flags().StringVar(&checkFailOn, "fail-on", "warning",
		"Minimum severity that causes a non-zero exit: error, warning, info, hint, or never")
	checkCmd.Flags().BoolVar(&checkNoCache, "no-cache", false,
		"Bypass the diagnostics cache")
	checkCmd.Flags().IntVar(&checkConcurrency, "concurrency", 0,
		"Number of files analyzed in parallel (0 = number of CPUs)")
	checkCmd.Flags().StringSliceVar(&checkDisable, "disable", nil,
		"Rule IDs to disable (repeatable or comma-separated)")
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	if !pysrc.IsAvailable() {
		return fmt.Errorf("python parser unavailable: this build has no tree-sitter support")
	}
	if err := validateFailOn(checkFailOn); err != nil {
		return err
	}

	cfg, err := config.LoadConfig(repoRootFlag)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	logger := newLogger(cfg.Logging.Level)

	paths, err := collectPythonFiles(args)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return fmt.Errorf("no Python files found")
	}

	engine, err := buildEngine(cfg)
	if err != nil {
		return err
	}

	docs, err := buildDocstringParser(cfg)
	if err != nil {
		return err
	}

	opts := []analyzer.Option{
		analyzer.WithEngine(engine),
		analyzer.WithDocstringParser(docs),
		analyzer.WithLogger(logger),
	}

	if cfg.Cache.Enabled && !checkNoCache {
		cache, cacheErr := storage.OpenCache(filepath.Join(repoRootFlag, cfg.Cache.Dir), logger)
		if cacheErr != nil {
			logger.Warn("Cache unavailable, analyzing without it", "error", cacheErr)
		} else {
			defer func() { _ = cache.Close() }()
			if cfg.Cache.MaxAgeDays > 0 {
				_, _ = cache.Prune(time.Duration(cfg.Cache.MaxAgeDays) * 24 * time.Hour)
			}
			opts = append(opts, analyzer.WithCache(cache))
		}
	}

	concurrency := checkConcurrency
	if concurrency == 0 {
		concurrency = cfg.Concurrency
	}

	a := analyzer.New(opts...)
	results := a.AnalyzeBatch(cmd.Context(), paths, concurrency)
	doc := report.FromFileReports(results)

	switch checkFormat {
	case "json":
		err = doc.EncodeJSON(os.Stdout)
	case "yaml":
		err = doc.EncodeYAML(os.Stdout)
	case "sarif":
		err = writeSARIF(os.Stdout, doc)
	case "human":
		err = writeHuman(os.Stdout, doc)
	default:
		return fmt.Errorf("unknown format: %s", checkFormat)
	}
	if err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	if shouldFail(doc, checkFailOn) {
		os.Exit(1)
	}
	return nil
}

// collectPythonFiles expands files and directories into a sorted list of
// .py files. Hidden directories and common vendored trees are skipped.
func collectPythonFiles(args []string) ([]string, error) {
	if len(args) == 0 {
		args = []string{"."}
	}

	skipDirs := map[string]bool{
		"__pycache__":  true,
		"node_modules": true,
		".venv":        true,
		"venv":         true,
	}

	var paths []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("cannot stat %s: %w", arg, err)
		}

		if !info.IsDir() {
			paths = append(paths, arg)
			continue
		}

		err = filepath.WalkDir(arg, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			name := d.Name()
			if d.IsDir() {
				if path != arg && (skipDirs[name] || strings.HasPrefix(name, ".")) {
					return filepath.SkipDir
				}
				return nil
			}
			if strings.HasSuffix(name, ".py") {
				paths = append(paths, path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to walk %s: %w", arg, err)
		}
	}

	sort.Strings(paths)
	return paths, nil
}

func buildEngine(cfg *config.Config) (*rules.Engine, error) {
	known := make(map[string]bool)
	for _, info := range rules.Catalog() {
		known[info.ID] = true
	}

	var opts []rules.EngineOption

	for id, severity := range cfg.Rules.Severity {
		if !known[id] {
			return nil, fmt.Errorf("unknown rule in config severity overrides: %s", id)
		}
		opts = append(opts, rules.WithSeverity(id, rules.Severity(severity)))
	}

	disabled := append([]string{}, cfg.Rules.Disabled...)
	disabled = append(disabled, checkDisable...)
	for _, id := range disabled {
		if !known[id] {
			return nil, fmt.Errorf("unknown rule id: %s", id)
		}
	}
	if len(disabled) > 0 {
		opts = append(opts, rules.WithDisabled(disabled...))
	}

	return rules.NewEngine(opts...), nil
}

func buildDocstringParser(cfg *config.Config) (*docstring.Parser, error) {
	if cfg.Keywords.Path == "" {
		return docstring.NewParser(), nil
	}

	table, err := docstring.LoadKeywordTable(filepath.Join(repoRootFlag, cfg.Keywords.Path))
	if err != nil {
		return nil, fmt.Errorf("failed to load keyword table: %w", err)
	}
	return docstring.NewParser(docstring.WithKeywordTable(table)), nil
}

// validateFailOn rejects unknown threshold values before any analysis runs.
func validateFailOn(value string) error {
	switch value {
	case "error", "warning", "info", "hint", "never":
		return nil
	}
	return fmt.Errorf("unknown --fail-on value: %s (want error, warning, info, hint, or never)", value)
}

// severityRank orders severities for --fail-on comparison.
func severityRank(s string) int {
	switch s {
	case "error":
		return 3
	case "warning":
		return 2
	case "info":
		return 1
	case "hint":
		return 0
	default:
		return -1
	}
}

// shouldFail reports whether the run should exit non-zero: any file error,
// or any diagnostic at or above the threshold. "never" always passes.
func shouldFail(doc *report.Report, failOn string) bool {
	if failOn == "never" {
		return false
	}
	if doc.Summary.Failed > 0 {
		return true
	}
	threshold := severityRank(failOn)
	for severity, count := range doc.Summary.BySeverity {
		if count > 0 && severityRank(severity) >= threshold {
			return true
		}
	}
	return false
}
