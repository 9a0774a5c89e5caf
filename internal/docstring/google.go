package docstring

import (
	"regexp"
	"strings"
)

// Google-style section headers, case-sensitive, at the docstring's own
// indentation level (column 0 after docstring cleaning).
var googleSections = map[string]string{
	"Args":       "params",
	"Arguments":  "params",
	"Parameters": "params",
	"Returns":    "returns",
	"Yields":     "yields",
	"Raises":     "raises",
	"Note":       "note",
	"Notes":      "note",
}

var (
	// name (type): description | name: description
	googleParamRe = regexp.MustCompile(`^(\*{0,2}[A-Za-z_]\w*)(?:\s*\(([^)]*)\))?\s*:\s*(.*)$`)

	// ExceptionName: description
	googleRaiseRe = regexp.MustCompile(`^([A-Za-z_][\w.]*)\s*:\s*(.*)$`)

	// type: description, with a type-shaped left side
	googleReturnTypeRe = regexp.MustCompile(`^([A-Za-z_][\w.\[\],| ]*?)\s*:\s*(.*)$`)
)

// hasGoogleMarker reports whether any line is a Google section header.
func hasGoogleMarker(lines []string) bool {
	for _, line := range lines {
		if indentOf(line) != 0 {
			continue
		}
		header := strings.TrimSuffix(strings.TrimRight(line, " \t"), ":")
		if header != strings.TrimRight(line, " \t") {
			if _, ok := googleSections[header]; ok {
				return true
			}
		}
	}
	return false
}

// parseGoogle builds a Model from Google-style sections. Unrecognized lines
// are ignored; free text before the first section never enters the model.
func parseGoogle(lines []string, baseLine int, table *KeywordTable) *Model {
	m := &Model{Dialect: DialectGoogle}

	section := ""
	sectionStart := 0
	flush := func(end int) {
		if section == "" {
			return
		}
		body := lines[sectionStart:end]
		switch section {
		case "params":
			m.parseGoogleParams(body, baseLine+sectionStart)
		case "returns":
			m.parseGoogleReturn(SectionReturns, body, baseLine+sectionStart)
		case "yields":
			m.parseGoogleReturn(SectionYields, body, baseLine+sectionStart)
		case "raises":
			m.parseGoogleRaises(body, baseLine+sectionStart)
		case "note":
			if text := strings.TrimSpace(strings.Join(body, "\n")); text != "" {
				m.Notes = append(m.Notes, text)
			}
		}
	}

	for i, line := range lines {
		trimmed := strings.TrimRight(line, " \t")
		if indentOf(line) == 0 && strings.HasSuffix(trimmed, ":") {
			if kind, ok := googleSections[strings.TrimSuffix(trimmed, ":")]; ok {
				flush(i)
				section = kind
				sectionStart = i + 1
				// A Returns/Yields header with no body still counts as present.
				if kind == "returns" && m.ReturnsDoc == nil {
					m.ReturnsDoc = &ReturnDoc{Kind: SectionReturns, Line: baseLine + i}
				}
				if kind == "yields" && m.YieldsDoc == nil {
					m.YieldsDoc = &ReturnDoc{Kind: SectionYields, Line: baseLine + i}
				}
				continue
			}
		}
		// Any other text at column 0 ends the current section.
		if section != "" && trimmed != "" && indentOf(line) == 0 {
			flush(i)
			section = ""
		}
	}
	flush(len(lines))

	m.SideEffects = table.Classify(m.Notes)
	return m
}

// parseGoogleParams parses `name (type[, optional]): description` items.
func (m *Model) parseGoogleParams(body []string, baseLine int) {
	for i, line := range body {
		item := strings.TrimSpace(line)
		if item == "" {
			continue
		}
		match := googleParamRe.FindStringSubmatch(item)
		if match == nil {
			continue // continuation or free text
		}
		name, paren, desc := match[1], match[2], match[3]
		if m.Param(name) != nil {
			continue
		}

		p := Param{
			Name:        name,
			Description: desc,
			Line:        baseLine + i,
		}
		if paren != "" {
			// A parenthetical without an optional/required token states
			// nothing about optionality.
			p.Type, p.MarkedOptional, p.ExplicitOptionality = stripOptionalityMarker(paren)
		}
		m.Params = append(m.Params, p)
	}
}

// parseGoogleReturn captures the optional leading `type:` token of a
// Returns/Yields body.
func (m *Model) parseGoogleReturn(kind SectionKind, body []string, baseLine int) {
	doc := m.ReturnsDoc
	if kind == SectionYields {
		doc = m.YieldsDoc
	}
	if doc == nil {
		return
	}
	for _, line := range body {
		item := strings.TrimSpace(line)
		if item == "" {
			continue
		}
		if match := googleReturnTypeRe.FindStringSubmatch(item); match != nil {
			doc.Type = strings.TrimSpace(match[1])
		}
		return // only the first body line can carry the type token
	}
}

// parseGoogleRaises captures one exception-type name per line, before its colon.
func (m *Model) parseGoogleRaises(body []string, baseLine int) {
	for i, line := range body {
		item := strings.TrimSpace(line)
		if item == "" {
			continue
		}
		match := googleRaiseRe.FindStringSubmatch(item)
		if match == nil {
			continue
		}
		if m.HasRaise(match[1]) {
			continue
		}
		m.Raises = append(m.Raises, Raise{
			Name:        match[1],
			Description: match[2],
			Line:        baseLine + i,
		})
	}
}

// stripOptionalityMarker removes an "optional" or "required" token from a
// type spelling. marked reports that the parameter was called optional;
// explicit reports that either word was present, so "int" alone states
// nothing while "int, required" is an explicit claim.
func stripOptionalityMarker(spelling string) (typ string, marked, explicit bool) {
	parts := strings.Split(spelling, ",")
	kept := parts[:0]
	for _, part := range parts {
		word := strings.TrimSpace(part)
		if strings.EqualFold(word, "optional") {
			marked, explicit = true, true
			continue
		}
		if strings.EqualFold(word, "required") {
			explicit = true
			continue
		}
		kept = append(kept, part)
	}
	typ = strings.TrimSpace(strings.Join(kept, ","))
	if !explicit {
		if rest, ok := strings.CutPrefix(strings.ToLower(typ), "optional "); ok {
			// "optional float" spelling
			typ = strings.TrimSpace(typ[len(typ)-len(rest):])
			marked, explicit = true, true
		}
	}
	return typ, marked, explicit
}

// indentOf returns the leading whitespace width of a line.
func indentOf(line string) int {
	return len(line) - len(strings.TrimLeft(line, " \t"))
}
