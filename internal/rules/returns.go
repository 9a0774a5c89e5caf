package rules

import (
	"fmt"

	"github.com/akrisanov/docstring-verifier/internal/docstring"
	"github.com/akrisanov/docstring-verifier/internal/pysrc"
	"github.com/akrisanov/docstring-verifier/internal/pytype"
)

// checkReturnType (DSV201): annotation and documented return type disagree.
// Only fires when the docstring gives an explicit return type.
func checkReturnType(fn *pysrc.Function, doc *docstring.Model) []Diagnostic {
	ret := doc.ReturnDoc()
	if fn.ReturnType == "" || ret == nil || ret.Type == "" {
		return nil
	}
	codeType := pytype.Normalize(fn.ReturnType)
	docType := pytype.Normalize(ret.Type)
	if codeType.IsZero() || docType.IsZero() || codeType.Equal(docType) {
		return nil
	}
	return []Diagnostic{{
		RuleID: DSV201,
		Message: fmt.Sprintf("'%s' is documented as returning '%s' but is annotated as '%s'",
			fn.Name, ret.Type, fn.ReturnType),
		Range:         atLine(ret.Line),
		RelatedRanges: []pysrc.Range{atSignature(fn)},
	}}
}

// checkReturnDocumented (DSV202): a non-void return annotation with no return
// documentation. Generators are exempt; DSV205 governs them.
func checkReturnDocumented(fn *pysrc.Function, doc *docstring.Model) []Diagnostic {
	if fn.ReturnType == "" || fn.IsGenerator || doc.ReturnDoc() != nil {
		return nil
	}
	if pytype.Normalize(fn.ReturnType).IsNone() {
		return nil
	}
	return []Diagnostic{{
		RuleID:  DSV202,
		Message: fmt.Sprintf("'%s' returns '%s' but the docstring has no Returns section", fn.Name, fn.ReturnType),
		Range:   atSignature(fn),
	}}
}

// checkVoidReturnDoc (DSV203): a void (or unannotated) non-generator function
// documents a return value. The presence of the Returns section is itself the
// defect, even when the documented type is literally None.
func checkVoidReturnDoc(fn *pysrc.Function, doc *docstring.Model) []Diagnostic {
	if fn.IsGenerator || doc.ReturnsDoc == nil {
		return nil
	}
	if fn.ReturnType != "" && !pytype.Normalize(fn.ReturnType).IsNone() {
		return nil
	}
	// Unannotated functions that actually return a value are legitimate
	// targets for a Returns section.
	if fn.ReturnType == "" && returnsValue(fn) {
		return nil
	}
	return []Diagnostic{{
		RuleID:        DSV203,
		Message:       fmt.Sprintf("'%s' does not return a value but the docstring documents one", fn.Name),
		Range:         atLine(doc.ReturnsDoc.Line),
		RelatedRanges: []pysrc.Range{atSignature(fn)},
	}}
}

// returnsValue reports whether any return site could produce a non-None
// value. Unresolved sites count: they may return anything.
func returnsValue(fn *pysrc.Function) bool {
	for _, site := range fn.Returns {
		if site.Type != "None" {
			return true
		}
	}
	return false
}

// checkReturnSites (DSV204): a return site with a resolved inferred type
// outside the expected type set. The expected set is the return annotation
// when present, else the documented return type; sites with unresolved types
// are skipped, never guessed into a violation. One diagnostic per offending
// site.
func checkReturnSites(fn *pysrc.Function, doc *docstring.Model) []Diagnostic {
	var expected pytype.Type
	var spelling string
	switch {
	case fn.ReturnType != "":
		expected = pytype.Normalize(fn.ReturnType)
		spelling = fn.ReturnType
	case doc.ReturnDoc() != nil && doc.ReturnDoc().Type != "":
		expected = pytype.Normalize(doc.ReturnDoc().Type)
		spelling = doc.ReturnDoc().Type
	default:
		return nil
	}
	if expected.IsZero() {
		return nil
	}

	var out []Diagnostic
	for _, site := range fn.Returns {
		if site.Type == "" || expected.Contains(site.Type) {
			continue
		}
		out = append(out, Diagnostic{
			RuleID: DSV204,
			Message: fmt.Sprintf("Return statement yields '%s', which is not part of the documented type '%s'",
				site.Type, spelling),
			Range:         atLine(site.Line),
			RelatedRanges: []pysrc.Range{atSignature(fn)},
		})
	}
	return out
}

// checkGeneratorReturns (DSV205): a generator whose docstring has a Returns
// section. A coexisting Yields section is correct and never suppresses the
// excess Returns.
func checkGeneratorReturns(fn *pysrc.Function, doc *docstring.Model) []Diagnostic {
	if !fn.IsGenerator || doc.ReturnsDoc == nil {
		return nil
	}
	return []Diagnostic{{
		RuleID:        DSV205,
		Message:       fmt.Sprintf("'%s' is a generator; document it with a Yields section instead of Returns", fn.Name),
		Range:         atLine(doc.ReturnsDoc.Line),
		RelatedRanges: []pysrc.Range{atSignature(fn)},
	}}
}
