package rules

import (
	"fmt"
	"strings"

	"github.com/akrisanov/docstring-verifier/internal/docstring"
	"github.com/akrisanov/docstring-verifier/internal/pysrc"
	"github.com/akrisanov/docstring-verifier/internal/pytype"
)

// bareName strips the variadic marker prefix, so "*args" in code matches an
// "args" entry in a docstring and vice versa.
func bareName(name string) string {
	return strings.TrimLeft(name, "*")
}

// findCodeParam returns the declared parameter matching a documented name.
func findCodeParam(fn *pysrc.Function, docName string) *pysrc.Parameter {
	want := bareName(docName)
	for i := range fn.Params {
		if bareName(fn.Params[i].Name) == want {
			return &fn.Params[i]
		}
	}
	return nil
}

// checkDocParamsExist (DSV101): a documented parameter has no matching code
// parameter. Anchored at the docstring entry's line.
func checkDocParamsExist(fn *pysrc.Function, doc *docstring.Model) []Diagnostic {
	var out []Diagnostic
	for _, p := range doc.Params {
		if findCodeParam(fn, p.Name) != nil {
			continue
		}
		out = append(out, Diagnostic{
			RuleID:        DSV101,
			Message:       fmt.Sprintf("Parameter '%s' is documented but does not exist in the signature of '%s'", p.Name, fn.Name),
			Range:         atLine(p.Line),
			RelatedRanges: []pysrc.Range{atSignature(fn)},
		})
	}
	return out
}

// checkCodeParamsDocumented (DSV102): a code parameter has no matching
// documented name. Fires independently per missing name, anchored at the
// signature.
func checkCodeParamsDocumented(fn *pysrc.Function, doc *docstring.Model) []Diagnostic {
	var out []Diagnostic
	for _, p := range fn.Params {
		if docParam(doc, p.Name) != nil {
			continue
		}
		out = append(out, Diagnostic{
			RuleID:  DSV102,
			Message: fmt.Sprintf("Parameter '%s' of '%s' is not documented", p.Name, fn.Name),
			Range:   atSignature(fn),
		})
	}
	return out
}

// docParam matches a documented parameter by bare name.
func docParam(doc *docstring.Model, codeName string) *docstring.Param {
	want := bareName(codeName)
	for i := range doc.Params {
		if bareName(doc.Params[i].Name) == want {
			return &doc.Params[i]
		}
	}
	return nil
}

// checkParamTypes (DSV103): documented and annotated types disagree. Only
// evaluated when both a code annotation and a docstring type spelling exist;
// an unresolvable side never produces a mismatch.
func checkParamTypes(fn *pysrc.Function, doc *docstring.Model) []Diagnostic {
	var out []Diagnostic
	for _, p := range fn.Params {
		d := docParam(doc, p.Name)
		if d == nil || p.Type == "" || d.Type == "" {
			continue
		}
		codeType := pytype.Normalize(p.Type)
		docType := pytype.Normalize(d.Type)
		if codeType.IsZero() || docType.IsZero() {
			continue
		}
		// An "optional" marker describes the parameter, but it also concedes
		// that the annotation may admit None. A docstring without the marker
		// gets no such forgiveness: plain "int" against Optional[int] is a
		// mismatch in either direction.
		if d.MarkedOptional && codeType.Contains(pytype.TokenNone) {
			docType.Optional = true
		}
		if codeType.Equal(docType) {
			continue
		}
		out = append(out, Diagnostic{
			RuleID: DSV103,
			Message: fmt.Sprintf("Parameter '%s' is documented as '%s' but annotated as '%s'",
				p.Name, d.Type, p.Type),
			Range:         atLine(d.Line),
			RelatedRanges: []pysrc.Range{atSignature(fn)},
		})
	}
	return out
}

// checkParamOptionality (DSV104): documented optionality contradicts the
// presence of a default value. Silent when the docstring never states
// optionality for the parameter.
func checkParamOptionality(fn *pysrc.Function, doc *docstring.Model) []Diagnostic {
	var out []Diagnostic
	for _, p := range fn.Params {
		d := docParam(doc, p.Name)
		if d == nil || !d.ExplicitOptionality {
			continue
		}
		if d.MarkedOptional == p.HasDefault {
			continue
		}
		var msg string
		if p.HasDefault {
			msg = fmt.Sprintf("Parameter '%s' has a default value but is documented as required", p.Name)
		} else {
			msg = fmt.Sprintf("Parameter '%s' is documented as optional but has no default value", p.Name)
		}
		out = append(out, Diagnostic{
			RuleID:        DSV104,
			Message:       msg,
			Range:         atLine(d.Line),
			RelatedRanges: []pysrc.Range{atSignature(fn)},
		})
	}
	return out
}
