// Package rules reconciles a function's code model with its docstring model
// under a fixed taxonomy of mismatch rules (DSV101..DSV401).
package rules

import (
	"github.com/akrisanov/docstring-verifier/internal/pysrc"
)

// Severity is the reported weight of a diagnostic.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
	SeverityHint    Severity = "hint"
)

// Diagnostic is one located mismatch between documented and actual contracts.
// Diagnostics are immutable once produced; ranges use the core convention
// (1-based lines, 0-based columns).
type Diagnostic struct {
	RuleID        string        `json:"ruleId"`
	Severity      Severity      `json:"severity"`
	Message       string        `json:"message"`
	Range         pysrc.Range   `json:"range"`
	RelatedRanges []pysrc.Range `json:"relatedRanges,omitempty"`
}

// atLine returns a zero-width range anchored at the start of a source line.
func atLine(line int) pysrc.Range {
	return pysrc.Range{StartLine: line, StartCol: 0, EndLine: line, EndCol: 0}
}

// atSignature returns a zero-width range anchored at the def keyword.
func atSignature(fn *pysrc.Function) pysrc.Range {
	return pysrc.Range{
		StartLine: fn.Range.StartLine,
		StartCol:  fn.Range.StartCol,
		EndLine:   fn.Range.StartLine,
		EndCol:    fn.Range.StartCol,
	}
}
