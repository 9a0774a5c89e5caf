//go:build cgo

package pysrc

import (
	sitter "github.com/smacker/go-tree-sitter"
)

// inferType resolves a return expression to a type token, purely
// syntactically. Literals resolve to their type, container literals to the
// matching container token, everything else (names, calls, arithmetic) is
// unknown and returns "".
func (e *extractor) inferType(expr *sitter.Node) string {
	if expr == nil {
		return "None"
	}

	switch expr.Type() {
	case "none":
		return "None"
	case "true", "false":
		return "bool"
	case "integer":
		return "int"
	case "float":
		return "float"
	case "string", "concatenated_string":
		return "str"
	case "list":
		return "list"
	case "dictionary":
		return "dict"
	case "set":
		return "set"
	case "tuple", "expression_list":
		return "tuple"
	case "parenthesized_expression":
		return e.inferType(expr.NamedChild(0))
	}

	return ""
}
