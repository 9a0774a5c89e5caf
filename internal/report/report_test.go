package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/akrisanov/docstring-verifier/internal/analyzer"
	dsverr "github.com/akrisanov/docstring-verifier/internal/errors"
	"github.com/akrisanov/docstring-verifier/internal/pysrc"
	"github.com/akrisanov/docstring-verifier/internal/rules"
)

func sampleReports() []analyzer.FileReport {
	return []analyzer.FileReport{
		{
			Path:      "src/a.py",
			Functions: 2,
			Diagnostics: []rules.Diagnostic{
				{
					RuleID:   rules.DSV102,
					Severity: rules.SeverityWarning,
					Message:  "Parameter 'b' of 'divide' is not documented",
					Range:    pysrc.Range{StartLine: 3, StartCol: 4, EndLine: 3, EndCol: 10},
					RelatedRanges: []pysrc.Range{
						{StartLine: 1, StartCol: 0, EndLine: 1, EndCol: 0},
					},
				},
				{
					RuleID:   rules.DSV401,
					Severity: rules.SeverityInfo,
					Message:  "'divide' performs I/O but the docstring does not mention it",
					Range:    pysrc.Range{StartLine: 3, StartCol: 0, EndLine: 3, EndCol: 0},
				},
			},
		},
		{
			Path: "src/broken.py",
			Err:  dsverr.New(dsverr.SyntaxError, "source contains syntax errors", nil),
		},
	}
}

func TestFromFileReports(t *testing.T) {
	doc := FromFileReports(sampleReports())

	if len(doc.Files) != 2 {
		t.Fatalf("expected 2 files, got %d", len(doc.Files))
	}

	// File order follows the input.
	if doc.Files[0].Path != "src/a.py" || doc.Files[1].Path != "src/broken.py" {
		t.Errorf("file order changed: %s, %s", doc.Files[0].Path, doc.Files[1].Path)
	}

	first := doc.Files[0].Diagnostics[0]
	// Core 1-based lines become 0-based; columns stay 0-based.
	if first.Range.Start.Line != 2 || first.Range.Start.Character != 4 {
		t.Errorf("range converted wrong: %+v", first.Range)
	}
	if len(first.RelatedRanges) != 1 || first.RelatedRanges[0].Start.Line != 0 {
		t.Errorf("related ranges converted wrong: %+v", first.RelatedRanges)
	}

	if doc.Files[1].Error == nil || doc.Files[1].Error.Code != "SYNTAX_ERROR" {
		t.Errorf("file error not surfaced: %+v", doc.Files[1].Error)
	}

	s := doc.Summary
	if s.Files != 2 || s.Failed != 1 || s.Diagnostics != 2 {
		t.Errorf("summary wrong: %+v", s)
	}
	if s.BySeverity["warning"] != 1 || s.BySeverity["info"] != 1 {
		t.Errorf("severity counts wrong: %+v", s.BySeverity)
	}
}

func TestEncodeJSON(t *testing.T) {
	doc := FromFileReports(sampleReports())

	var buf bytes.Buffer
	if err := doc.EncodeJSON(&buf); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var decoded Report
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded.Summary.Diagnostics != 2 {
		t.Errorf("roundtrip lost diagnostics: %+v", decoded.Summary)
	}
	if !strings.Contains(buf.String(), `"ruleId": "DSV102"`) {
		t.Errorf("expected rule id in output:\n%s", buf.String())
	}
}

func TestEncodeYAML(t *testing.T) {
	doc := FromFileReports(sampleReports())

	var buf bytes.Buffer
	if err := doc.EncodeYAML(&buf); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var decoded Report
	if err := yaml.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid YAML: %v", err)
	}
	if decoded.Summary.Files != 2 || len(decoded.Files) != 2 {
		t.Errorf("roundtrip lost files: %+v", decoded.Summary)
	}
}

func TestConvertRange(t *testing.T) {
	got := ConvertRange(pysrc.Range{StartLine: 10, StartCol: 4, EndLine: 12, EndCol: 0})
	want := Range{Start: Position{Line: 9, Character: 4}, End: Position{Line: 11, Character: 0}}
	if got != want {
		t.Errorf("ConvertRange = %+v, want %+v", got, want)
	}
}
