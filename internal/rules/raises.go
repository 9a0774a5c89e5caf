package rules

import (
	"fmt"
	"strings"

	"github.com/akrisanov/docstring-verifier/internal/docstring"
	"github.com/akrisanov/docstring-verifier/internal/pysrc"
)

// sameException matches exception names, letting a dotted spelling on either
// side match its leaf name ("errors.ConfigError" vs "ConfigError").
func sameException(a, b string) bool {
	if a == b {
		return true
	}
	return leafName(a) == b || a == leafName(b)
}

func leafName(name string) string {
	if i := strings.LastIndex(name, "."); i >= 0 {
		return name[i+1:]
	}
	return name
}

// checkRaisesDocumented (DSV301): a resolved raise site whose exception type
// is not documented. One diagnostic per distinct missing type, anchored at
// that type's first raise site. Unresolved sites are excluded.
func checkRaisesDocumented(fn *pysrc.Function, doc *docstring.Model) []Diagnostic {
	var out []Diagnostic
	reported := map[string]bool{}
	for _, site := range fn.Raises {
		if site.Type == "" || reported[site.Type] {
			continue
		}
		reported[site.Type] = true

		documented := false
		for _, r := range doc.Raises {
			if sameException(site.Type, r.Name) {
				documented = true
				break
			}
		}
		if documented {
			continue
		}
		out = append(out, Diagnostic{
			RuleID:        DSV301,
			Message:       fmt.Sprintf("'%s' raises '%s' but the docstring does not document it", fn.Name, site.Type),
			Range:         atLine(site.Line),
			RelatedRanges: []pysrc.Range{atSignature(fn)},
		})
	}
	return out
}

// checkDocRaisesExist (DSV302): a documented exception with no matching
// resolved raise site anywhere in the function. Anchored at the docstring's
// Raises entry.
func checkDocRaisesExist(fn *pysrc.Function, doc *docstring.Model) []Diagnostic {
	var out []Diagnostic
	for _, r := range doc.Raises {
		raised := false
		for _, site := range fn.Raises {
			if site.Type != "" && sameException(site.Type, r.Name) {
				raised = true
				break
			}
		}
		if raised {
			continue
		}
		out = append(out, Diagnostic{
			RuleID:        DSV302,
			Message:       fmt.Sprintf("'%s' is documented as raised but '%s' never raises it", r.Name, fn.Name),
			Range:         atLine(r.Line),
			RelatedRanges: []pysrc.Range{atSignature(fn)},
		})
	}
	return out
}
