package rules

import (
	"testing"

	"github.com/akrisanov/docstring-verifier/internal/docstring"
)

func TestSideEffects(t *testing.T) {
	fn := testFunction("export")
	fn.HasIO = true
	fn.HasGlobalMods = true

	// Neither class documented: one diagnostic per class.
	diags := checkSideEffects(fn, docModel())
	if len(diags) != 2 {
		t.Fatalf("expected 2 diagnostics, got %v", ruleIDs(diags))
	}
	for _, d := range diags {
		if d.RuleID != DSV401 {
			t.Errorf("rule = %s, want %s", d.RuleID, DSV401)
		}
		if d.Range.StartLine != fn.Range.StartLine {
			t.Errorf("anchored at %d, want the signature line %d", d.Range.StartLine, fn.Range.StartLine)
		}
	}

	// Documenting one class clears only that class.
	doc := docModel()
	doc.SideEffects[docstring.NoteIO] = true
	diags = checkSideEffects(fn, doc)
	if len(diags) != 1 {
		t.Fatalf("expected 1 diagnostic, got %v", ruleIDs(diags))
	}

	doc.SideEffects[docstring.NoteGlobalState] = true
	if diags := checkSideEffects(fn, doc); len(diags) != 0 {
		t.Errorf("fully documented side effects reported: %v", ruleIDs(diags))
	}

	// No detected side effects, extra notes are harmless.
	clean := testFunction("pure")
	if diags := checkSideEffects(clean, doc); len(diags) != 0 {
		t.Errorf("clean function reported: %v", ruleIDs(diags))
	}
}
