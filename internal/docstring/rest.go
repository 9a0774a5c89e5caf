package docstring

import (
	"regexp"
	"strings"
)

// reST field directive: ":directive arg: value"
var restDirectiveRe = regexp.MustCompile(`^:(\w+)(?:\s+([^:]+?))?\s*:\s*(.*)$`)

// restMarkers are the directive names that identify the reST dialect.
var restMarkers = map[string]bool{
	"param":     true,
	"parameter": true,
	"arg":       true,
	"argument":  true,
	"type":      true,
	"returns":   true,
	"return":    true,
	"rtype":     true,
	"yields":    true,
	"yield":     true,
	"ytype":     true,
	"raises":    true,
	"raise":     true,
	"note":      true,
}

// hasRESTMarker reports whether any line carries a known field directive.
func hasRESTMarker(lines []string) bool {
	for _, line := range lines {
		match := restDirectiveRe.FindStringSubmatch(strings.TrimSpace(line))
		if match != nil && restMarkers[match[1]] {
			return true
		}
	}
	return false
}

// parseREST builds a Model from reST field directives. Directives are
// line-anchored; free text and unknown directives are ignored.
func parseREST(lines []string, baseLine int, table *KeywordTable) *Model {
	m := &Model{Dialect: DialectREST}

	for i, raw := range lines {
		match := restDirectiveRe.FindStringSubmatch(strings.TrimSpace(raw))
		if match == nil {
			continue
		}
		directive, arg, value := match[1], strings.TrimSpace(match[2]), match[3]
		line := baseLine + i

		switch directive {
		case "param", "parameter", "arg", "argument":
			// ":param name: desc" or ":param type name: desc"
			name, typ := arg, ""
			if fields := strings.Fields(arg); len(fields) > 1 {
				name = fields[len(fields)-1]
				typ = strings.Join(fields[:len(fields)-1], " ")
			}
			if name == "" {
				continue
			}
			p := m.ensureParam(name, line)
			p.Description = value
			if typ != "" && p.Type == "" {
				p.Type, p.MarkedOptional, p.ExplicitOptionality = stripOptionalityMarker(typ)
			}

		case "type":
			if arg == "" {
				continue
			}
			p := m.ensureParam(arg, line)
			typ, marked, explicit := stripOptionalityMarker(value)
			p.Type = typ
			if explicit {
				p.MarkedOptional = marked
				p.ExplicitOptionality = true
			}

		case "returns", "return":
			if m.ReturnsDoc == nil {
				m.ReturnsDoc = &ReturnDoc{Kind: SectionReturns, Line: line}
			}

		case "rtype":
			if m.ReturnsDoc == nil {
				m.ReturnsDoc = &ReturnDoc{Kind: SectionReturns, Line: line}
			}
			m.ReturnsDoc.Type, _, _ = stripOptionalityMarker(value)

		case "yields", "yield":
			if m.YieldsDoc == nil {
				m.YieldsDoc = &ReturnDoc{Kind: SectionYields, Line: line}
			}

		case "ytype":
			if m.YieldsDoc == nil {
				m.YieldsDoc = &ReturnDoc{Kind: SectionYields, Line: line}
			}
			m.YieldsDoc.Type, _, _ = stripOptionalityMarker(value)

		case "raises", "raise":
			if arg == "" || m.HasRaise(arg) {
				continue
			}
			m.Raises = append(m.Raises, Raise{Name: arg, Description: value, Line: line})

		case "note":
			if value != "" {
				m.Notes = append(m.Notes, value)
			}
		}
	}

	m.SideEffects = table.Classify(m.Notes)
	return m
}

// ensureParam returns the documented parameter with the given name, creating
// it at the given line when first mentioned.
func (m *Model) ensureParam(name string, line int) *Param {
	if p := m.Param(name); p != nil {
		return p
	}
	m.Params = append(m.Params, Param{Name: name, Line: line})
	return &m.Params[len(m.Params)-1]
}
