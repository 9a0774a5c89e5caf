package rules

import (
	"fmt"

	"github.com/akrisanov/docstring-verifier/internal/docstring"
	"github.com/akrisanov/docstring-verifier/internal/pysrc"
)

// checkSideEffects (DSV401): a detected side-effect class with no matching
// note in the docstring. Evaluated independently per class; a function with
// both undocumented classes yields two diagnostics. Note matching is a
// keyword heuristic, not a guarantee.
func checkSideEffects(fn *pysrc.Function, doc *docstring.Model) []Diagnostic {
	var out []Diagnostic
	if fn.HasIO && !doc.HasSideEffect(docstring.NoteIO) {
		out = append(out, Diagnostic{
			RuleID:  DSV401,
			Message: fmt.Sprintf("'%s' performs I/O but the docstring does not mention it", fn.Name),
			Range:   atSignature(fn),
		})
	}
	if fn.HasGlobalMods && !doc.HasSideEffect(docstring.NoteGlobalState) {
		out = append(out, Diagnostic{
			RuleID:  DSV401,
			Message: fmt.Sprintf("'%s' modifies outer-scope state but the docstring does not mention it", fn.Name),
			Range:   atSignature(fn),
		})
	}
	return out
}
