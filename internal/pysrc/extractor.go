//go:build cgo

package pysrc

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

// extractor walks a parsed tree and collects Functions in lexical order.
type extractor struct {
	source    []byte
	functions []Function
}

// walk collects every function_definition in the tree, outermost first.
func (e *extractor) walk(node *sitter.Node) {
	if node == nil {
		return
	}
	if node.Type() == "function_definition" {
		e.functions = append(e.functions, e.extractFunction(node))
	}
	for i := 0; i < int(node.ChildCount()); i++ {
		e.walk(node.Child(i))
	}
}

// bodyAccumulator collects per-function state. Each definition gets its own
// accumulator so nested definitions never leak sites or flags into their
// enclosing function.
type bodyAccumulator struct {
	returns       []ReturnSite
	yields        []YieldSite
	raises        []RaiseSite
	hasIO         bool
	hasGlobalMods bool
}

func (e *extractor) extractFunction(node *sitter.Node) Function {
	fn := Function{
		Name:  e.textOfField(node, "name"),
		Range: rangeOf(node),
	}

	for i := 0; i < int(node.ChildCount()); i++ {
		if child := node.Child(i); child != nil && child.Type() == "async" {
			fn.IsAsync = true
			break
		}
	}

	fn.Params = e.extractParameters(node.ChildByFieldName("parameters"))
	if ret := node.ChildByFieldName("return_type"); ret != nil {
		fn.ReturnType = e.text(ret)
	}

	body := node.ChildByFieldName("body")
	if body != nil {
		fn.Docstring, fn.DocRange = e.extractDocstring(body)

		acc := &bodyAccumulator{}
		e.walkBody(body, acc)
		fn.Returns = acc.returns
		fn.Yields = acc.yields
		fn.Raises = acc.raises
		fn.HasIO = acc.hasIO
		fn.HasGlobalMods = acc.hasGlobalMods
		fn.IsGenerator = len(acc.yields) > 0
	}

	return fn
}

// extractParameters builds the ordered parameter list, excluding an implicit
// self/cls first parameter.
func (e *extractor) extractParameters(params *sitter.Node) []Parameter {
	out := []Parameter{}
	if params == nil {
		return out
	}

	first := true
	for i := 0; i < int(params.NamedChildCount()); i++ {
		child := params.NamedChild(i)
		var p Parameter

		switch child.Type() {
		case "identifier":
			p.Name = e.text(child)

		case "typed_parameter":
			// First child is the name (identifier or splat pattern).
			if inner := child.NamedChild(0); inner != nil {
				p.Name = e.text(inner)
			}
			if t := child.ChildByFieldName("type"); t != nil {
				p.Type = e.text(t)
			}

		case "default_parameter":
			p.Name = e.textOfField(child, "name")
			p.HasDefault = true
			if v := child.ChildByFieldName("value"); v != nil {
				p.Default = e.text(v)
			}

		case "typed_default_parameter":
			p.Name = e.textOfField(child, "name")
			p.HasDefault = true
			if t := child.ChildByFieldName("type"); t != nil {
				p.Type = e.text(t)
			}
			if v := child.ChildByFieldName("value"); v != nil {
				p.Default = e.text(v)
			}

		case "list_splat_pattern", "dictionary_splat_pattern":
			// Keeps the marker prefix: "*args" / "**kwargs".
			p.Name = e.text(child)
			p.HasDefault = true

		default:
			// keyword_separator "*" / positional_separator "/" and friends.
			continue
		}

		if p.Name == "" {
			continue
		}
		// Variadic parameters are always optional.
		if strings.HasPrefix(p.Name, StarPrefix) {
			p.HasDefault = true
		}
		if first && (p.Name == "self" || p.Name == "cls") {
			first = false
			continue
		}
		first = false
		out = append(out, p)
	}
	return out
}

// walkBody scans one function's own statements. Nested function definitions
// are skipped here; the outer walk extracts them as independent functions.
func (e *extractor) walkBody(node *sitter.Node, acc *bodyAccumulator) {
	if node == nil {
		return
	}

	switch node.Type() {
	case "function_definition":
		return

	case "return_statement":
		site := ReturnSite{Line: int(node.StartPoint().Row) + 1}
		if node.NamedChildCount() == 0 {
			site.Type = "None" // bare return
		} else {
			site.Type = e.inferType(node.NamedChild(0))
		}
		acc.returns = append(acc.returns, site)

	case "yield":
		acc.yields = append(acc.yields, YieldSite{Line: int(node.StartPoint().Row) + 1})

	case "raise_statement":
		site := RaiseSite{Line: int(node.StartPoint().Row) + 1}
		if node.NamedChildCount() > 0 {
			site.Type = e.resolveException(node.NamedChild(0))
		}
		acc.raises = append(acc.raises, site)

	case "call":
		if e.isIOCall(node) {
			acc.hasIO = true
		}

	case "global_statement", "nonlocal_statement":
		acc.hasGlobalMods = true
	}

	for i := 0; i < int(node.ChildCount()); i++ {
		e.walkBody(node.Child(i), acc)
	}
}

// resolveException resolves a raised expression to an exception class name.
// Only a direct name reference, a dotted name, or a constructor call on one
// of those resolves; everything else yields "" and is excluded from the
// exception rules.
func (e *extractor) resolveException(exc *sitter.Node) string {
	switch exc.Type() {
	case "identifier", "attribute":
		return e.text(exc)
	case "call":
		fn := exc.ChildByFieldName("function")
		if fn != nil && (fn.Type() == "identifier" || fn.Type() == "attribute") {
			return e.text(fn)
		}
	}
	return ""
}

// isIOCall matches a call against the recognized I/O name sets.
func (e *extractor) isIOCall(call *sitter.Node) bool {
	fn := call.ChildByFieldName("function")
	if fn == nil {
		return false
	}
	switch fn.Type() {
	case "identifier":
		return ioCallNames[e.text(fn)]
	case "attribute":
		attr := fn.ChildByFieldName("attribute")
		if attr == nil {
			return false
		}
		name := e.text(attr)
		return ioCallNames[name] || ioAttrNames[name]
	}
	return false
}

// extractDocstring returns the cleaned docstring and its range when the first
// statement of the body is a string expression.
func (e *extractor) extractDocstring(body *sitter.Node) (string, *Range) {
	first := body.NamedChild(0)
	if first == nil || first.Type() != "expression_statement" {
		return "", nil
	}
	str := first.NamedChild(0)
	if str == nil || str.Type() != "string" {
		return "", nil
	}

	raw := e.text(str)
	text := cleanDocstring(stripQuotes(raw))
	if text == "" {
		return "", nil
	}

	r := rangeOf(str)
	return text, &r
}

func (e *extractor) text(n *sitter.Node) string {
	return string(e.source[n.StartByte():n.EndByte()])
}

func (e *extractor) textOfField(n *sitter.Node, field string) string {
	child := n.ChildByFieldName(field)
	if child == nil {
		return ""
	}
	return e.text(child)
}

func rangeOf(n *sitter.Node) Range {
	return Range{
		StartLine: int(n.StartPoint().Row) + 1,
		StartCol:  int(n.StartPoint().Column),
		EndLine:   int(n.EndPoint().Row) + 1,
		EndCol:    int(n.EndPoint().Column),
	}
}

// stripQuotes removes string prefixes and quote delimiters from a string
// literal.
func stripQuotes(raw string) string {
	for len(raw) > 0 {
		c := raw[0]
		if c == 'r' || c == 'R' || c == 'b' || c == 'B' || c == 'u' || c == 'U' || c == 'f' || c == 'F' {
			raw = raw[1:]
			continue
		}
		break
	}
	for _, q := range []string{`"""`, `'''`, `"`, `'`} {
		if strings.HasPrefix(raw, q) && strings.HasSuffix(raw, q) && len(raw) >= 2*len(q) {
			return raw[len(q) : len(raw)-len(q)]
		}
	}
	return raw
}

// cleanDocstring normalizes indentation: the first line is trimmed, remaining
// lines lose their common leading whitespace, so section headers sit at
// column 0 for the docstring parser. Unlike inspect.cleandoc, leading blank
// lines are kept: line N of the result still maps to line
// docstringRange.StartLine+N of the source, which the diagnostics rely on.
func cleanDocstring(s string) string {
	if strings.TrimSpace(s) == "" {
		return ""
	}

	lines := strings.Split(s, "\n")

	margin := -1
	for _, line := range lines[1:] {
		trimmed := strings.TrimLeft(line, " \t")
		if trimmed == "" {
			continue
		}
		indent := len(line) - len(trimmed)
		if margin < 0 || indent < margin {
			margin = indent
		}
	}

	out := make([]string, 0, len(lines))
	out = append(out, strings.TrimSpace(lines[0]))
	for _, line := range lines[1:] {
		if margin > 0 && len(line) >= margin {
			line = line[margin:]
		}
		out = append(out, strings.TrimRight(line, " \t"))
	}

	return strings.TrimRight(strings.Join(out, "\n"), "\n")
}
