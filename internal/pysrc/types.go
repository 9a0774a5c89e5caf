// Package pysrc extracts a structural model of Python functions via tree-sitter.
//
// All source ranges use 1-based lines and 0-based columns. This is the
// coordinate convention for the whole analysis core; the reporter converts it
// to whatever the output format requires.
package pysrc

// Variadic parameter name prefixes, as emitted in Parameter.Name.
const (
	StarPrefix     = "*"  // rest of positional args
	StarStarPrefix = "**" // rest of keyword args
)

// Range is a source span. Lines are 1-based, columns 0-based.
type Range struct {
	StartLine int `json:"startLine"`
	StartCol  int `json:"startCol"`
	EndLine   int `json:"endLine"`
	EndCol    int `json:"endCol"`
}

// Parameter describes one declared parameter.
// Variadic parameters keep their marker prefix in Name ("*args", "**kwargs")
// and are always optional.
type Parameter struct {
	// Name is the declared parameter name, with "*"/"**" prefix for variadics.
	Name string `json:"name"`

	// Type is the annotation spelling as written, or "" if unannotated.
	Type string `json:"type,omitempty"`

	// HasDefault is true when the parameter has a default value (or is variadic).
	HasDefault bool `json:"hasDefault"`

	// Default is the default value expression text, or "" if none.
	Default string `json:"default,omitempty"`
}

// ReturnSite describes one reachable return statement.
type ReturnSite struct {
	// Type is the syntactically inferred type token ("str", "int", "None",
	// "list", ...) or "" when the expression cannot be resolved statically.
	Type string `json:"type,omitempty"`

	// Line is the 1-based line of the return statement.
	Line int `json:"line"`
}

// YieldSite describes one yield expression, including yield-from.
type YieldSite struct {
	Line int `json:"line"`
}

// RaiseSite describes one raise statement.
type RaiseSite struct {
	// Type is the exception class name when it resolves statically (a direct
	// name reference or a constructor call on a name), or "" otherwise.
	// Unresolved sites are excluded from the exception rules.
	Type string `json:"type,omitempty"`

	// Line is the 1-based line of the raise statement.
	Line int `json:"line"`
}

// Function is the structural code model of one function or method definition.
// Nested functions are independent Functions; their sites and flags never
// leak into the enclosing definition.
type Function struct {
	Name  string `json:"name"`
	Range Range  `json:"range"`

	// Docstring is the trimmed docstring text, "" if absent.
	Docstring string `json:"docstring,omitempty"`

	// DocRange is the source range of the docstring literal, nil if absent.
	DocRange *Range `json:"docstringRange,omitempty"`

	// Params excludes an implicit self/cls first parameter.
	Params []Parameter `json:"parameters"`

	// ReturnType is the return annotation spelling, "" if unannotated.
	ReturnType string `json:"returnType,omitempty"`

	Returns []ReturnSite `json:"returns,omitempty"`
	Yields  []YieldSite  `json:"yields,omitempty"`
	Raises  []RaiseSite  `json:"raises,omitempty"`

	IsAsync       bool `json:"isAsync"`
	IsGenerator   bool `json:"isGenerator"`
	HasIO         bool `json:"hasIO"`
	HasGlobalMods bool `json:"hasGlobalMods"`
}

// HasDocstring reports whether the function carries a non-empty docstring.
func (f *Function) HasDocstring() bool {
	return f.Docstring != ""
}

// ioCallNames are bare call names recognized as I/O.
var ioCallNames = map[string]bool{
	"open":  true,
	"read":  true,
	"write": true,
	"print": true,
	"input": true,
}

// ioAttrNames are attribute-call names recognized as I/O (f.read(), f.close(), ...).
var ioAttrNames = map[string]bool{
	"read":       true,
	"write":      true,
	"close":      true,
	"readline":   true,
	"readlines":  true,
	"writelines": true,
}
