// Package report serializes analysis results for external consumers.
// Internally positions use 1-based lines and 0-based columns; the JSON and
// YAML encodings use 0-based lines and columns (editor protocol convention).
// Serialization preserves diagnostic order and never drops or merges entries.
package report

import (
	"encoding/json"
	"io"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/akrisanov/docstring-verifier/internal/analyzer"
	"github.com/akrisanov/docstring-verifier/internal/pysrc"
	"github.com/akrisanov/docstring-verifier/internal/rules"
	"github.com/akrisanov/docstring-verifier/internal/version"
)

// Position is a zero-based line/character pair.
type Position struct {
	Line      int `json:"line" yaml:"line"`
	Character int `json:"character" yaml:"character"`
}

// Range is a half-open source span in zero-based coordinates.
type Range struct {
	Start Position `json:"start" yaml:"start"`
	End   Position `json:"end" yaml:"end"`
}

// Diagnostic is the external form of a single finding.
type Diagnostic struct {
	RuleID        string  `json:"ruleId" yaml:"ruleId"`
	Severity      string  `json:"severity" yaml:"severity"`
	Message       string  `json:"message" yaml:"message"`
	Range         Range   `json:"range" yaml:"range"`
	RelatedRanges []Range `json:"relatedRanges,omitempty" yaml:"relatedRanges,omitempty"`
}

// FileError describes why a file could not be analyzed.
type FileError struct {
	Code    string `json:"code" yaml:"code"`
	Message string `json:"message" yaml:"message"`
}

// File groups diagnostics per analyzed file.
type File struct {
	Path        string       `json:"path" yaml:"path"`
	Functions   int          `json:"functions" yaml:"functions"`
	Cached      bool         `json:"cached,omitempty" yaml:"cached,omitempty"`
	Error       *FileError   `json:"error,omitempty" yaml:"error,omitempty"`
	Diagnostics []Diagnostic `json:"diagnostics" yaml:"diagnostics"`
}

// Summary aggregates counts across the whole run.
type Summary struct {
	Files       int            `json:"files" yaml:"files"`
	Failed      int            `json:"failed" yaml:"failed"`
	Diagnostics int            `json:"diagnostics" yaml:"diagnostics"`
	BySeverity  map[string]int `json:"bySeverity" yaml:"bySeverity"`
}

// Report is the top-level output document.
type Report struct {
	Version     string  `json:"version" yaml:"version"`
	GeneratedAt string  `json:"generatedAt" yaml:"generatedAt"`
	Files       []File  `json:"files" yaml:"files"`
	Summary     Summary `json:"summary" yaml:"summary"`
}

// FromFileReports converts analyzer output into the external document.
// File order follows the input.
func FromFileReports(reports []analyzer.FileReport) *Report {
	out := &Report{
		Version:     version.Version,
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		Files:       make([]File, 0, len(reports)),
		Summary: Summary{
			Files:      len(reports),
			BySeverity: map[string]int{},
		},
	}

	for _, fr := range reports {
		file := File{
			Path:        fr.Path,
			Functions:   fr.Functions,
			Cached:      fr.Cached,
			Diagnostics: make([]Diagnostic, 0, len(fr.Diagnostics)),
		}
		if fr.Err != nil {
			file.Error = &FileError{Code: string(fr.Err.Code), Message: fr.Err.Message}
			out.Summary.Failed++
		}
		for _, d := range fr.Diagnostics {
			file.Diagnostics = append(file.Diagnostics, convertDiagnostic(d))
			out.Summary.Diagnostics++
			out.Summary.BySeverity[string(d.Severity)]++
		}
		out.Files = append(out.Files, file)
	}

	return out
}

func convertDiagnostic(d rules.Diagnostic) Diagnostic {
	out := Diagnostic{
		RuleID:   d.RuleID,
		Severity: string(d.Severity),
		Message:  d.Message,
		Range:    ConvertRange(d.Range),
	}
	for _, r := range d.RelatedRanges {
		out.RelatedRanges = append(out.RelatedRanges, ConvertRange(r))
	}
	return out
}

// ConvertRange maps a core range (1-based lines) to the external zero-based
// convention.
func ConvertRange(r pysrc.Range) Range {
	return Range{
		Start: Position{Line: r.StartLine - 1, Character: r.StartCol},
		End:   Position{Line: r.EndLine - 1, Character: r.EndCol},
	}
}

// EncodeJSON writes the report as indented JSON.
func (r *Report) EncodeJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// EncodeYAML writes the report as YAML.
func (r *Report) EncodeYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	defer func() { _ = enc.Close() }()
	return enc.Encode(r)
}
