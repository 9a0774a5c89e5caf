package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/fatih/color"

	"github.com/akrisanov/docstring-verifier/internal/report"
)

func sampleDoc() *report.Report {
	return &report.Report{
		Version: "0.3.0",
		Files: []report.File{
			{
				Path:      "src/a.py",
				Functions: 1,
				Diagnostics: []report.Diagnostic{
					{
						RuleID:   "DSV102",
						Severity: "warning",
						Message:  "Parameter 'b' of 'divide' is not documented",
						Range: report.Range{
							Start: report.Position{Line: 2, Character: 0},
							End:   report.Position{Line: 2, Character: 0},
						},
					},
				},
			},
		},
		Summary: report.Summary{
			Files:       1,
			Diagnostics: 1,
			BySeverity:  map[string]int{"warning": 1},
		},
	}
}

func TestWriteHuman(t *testing.T) {
	color.NoColor = true

	var buf bytes.Buffer
	if err := writeHuman(&buf, sampleDoc()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out := buf.String()
	// 0-based positions render 1-based for terminals.
	if !strings.Contains(out, "src/a.py:3:1: warning Parameter 'b' of 'divide' is not documented [DSV102]") {
		t.Errorf("unexpected human output:\n%s", out)
	}
	if !strings.Contains(out, "Checked 1 file(s): 1 issue(s), 1 warning") {
		t.Errorf("summary missing:\n%s", out)
	}
}

func TestWriteSARIF(t *testing.T) {
	var buf bytes.Buffer
	if err := writeSARIF(&buf, sampleDoc()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var sarif SARIFReport
	if err := json.Unmarshal(buf.Bytes(), &sarif); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}

	if sarif.Version != "2.1.0" || len(sarif.Runs) != 1 {
		t.Fatalf("malformed document: %+v", sarif)
	}
	run := sarif.Runs[0]
	if run.Tool.Driver.Name != "dsv" {
		t.Errorf("driver = %s", run.Tool.Driver.Name)
	}
	if len(run.Results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(run.Results))
	}
	result := run.Results[0]
	if result.RuleID != "DSV102" || result.Level != "warning" {
		t.Errorf("result wrong: %+v", result)
	}
	region := result.Locations[0].PhysicalLocation.Region
	// SARIF regions are 1-based.
	if region.StartLine != 3 || region.StartColumn != 1 {
		t.Errorf("region wrong: %+v", region)
	}
	if run.AutomationDetails == nil || run.AutomationDetails.GUID == "" {
		t.Error("run GUID missing")
	}
}

func TestShouldFail(t *testing.T) {
	doc := sampleDoc()

	if !shouldFail(doc, "warning") {
		t.Error("warning finding should fail at the warning threshold")
	}
	if shouldFail(doc, "error") {
		t.Error("warning finding should pass at the error threshold")
	}

	doc.Summary.Failed = 1
	if !shouldFail(doc, "error") {
		t.Error("a failed file always fails the run")
	}
	if shouldFail(doc, "never") {
		t.Error("never threshold should pass even with failed files")
	}
}

func TestValidateFailOn(t *testing.T) {
	for _, value := range []string{"error", "warning", "info", "hint", "never"} {
		if err := validateFailOn(value); err != nil {
			t.Errorf("%s: %v", value, err)
		}
	}
	if err := validateFailOn("sometimes"); err == nil {
		t.Error("unknown threshold must be rejected")
	}
}
