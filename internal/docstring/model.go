// Package docstring parses raw docstring text into a dialect-agnostic
// structural model. Two dialects are supported and auto-detected: Google-style
// sections and reST-style field directives. Parsing is total: malformed input
// degrades to an empty model, never an error.
package docstring

// Dialect identifies the docstring grammar a model was parsed with.
type Dialect string

const (
	// DialectGoogle is Google-style section headers (Args:/Returns:/Raises:).
	DialectGoogle Dialect = "google"
	// DialectREST is reST / Sphinx field directives (:param:, :rtype:, ...).
	DialectREST Dialect = "rest"
	// DialectNone means no dialect markers were found; the model is empty.
	DialectNone Dialect = "none"
)

// SectionKind distinguishes a Returns section from a Yields section.
type SectionKind string

const (
	SectionReturns SectionKind = "returns"
	SectionYields  SectionKind = "yields"
)

// NoteKind classifies side-effect documentation found in free-text notes.
type NoteKind string

const (
	NoteIO          NoteKind = "io"
	NoteGlobalState NoteKind = "global-state"
)

// Param is one documented parameter.
type Param struct {
	// Name as written, including any */** variadic prefix.
	Name string

	// Type is the documented type spelling with optionality markers removed,
	// or "" when the docstring gives no type.
	Type string

	// MarkedOptional is true when the docstring marks the parameter optional.
	MarkedOptional bool

	// ExplicitOptionality is true only when the docstring explicitly states
	// required/optional for this parameter. A bare type mention states
	// nothing about optionality and leaves this false.
	ExplicitOptionality bool

	// Description free text (first line).
	Description string

	// Line is the 1-based source line of the entry.
	Line int
}

// ReturnDoc captures a Returns or Yields section. A section header with no
// body still counts as present with Type == "".
type ReturnDoc struct {
	Kind SectionKind
	Type string
	Line int
}

// Raise is one documented exception.
type Raise struct {
	Name        string
	Description string
	Line        int
}

// Model is the structural documentation model for one function.
type Model struct {
	Dialect Dialect

	// Params in documentation order.
	Params []Param

	// ReturnsDoc is the Returns section, nil when absent. Tracked separately
	// from YieldsDoc so an excess Returns section on a generator is still
	// visible when both coexist.
	ReturnsDoc *ReturnDoc

	// YieldsDoc is the Yields section, nil when absent.
	YieldsDoc *ReturnDoc

	// Raises in documentation order.
	Raises []Raise

	// Notes holds free text from note-like sections, used for side-effect
	// keyword matching.
	Notes []string

	// SideEffects holds the note kinds whose keyword patterns matched.
	SideEffects map[NoteKind]bool
}

// ReturnDoc returns the effective return documentation: the Returns section
// when present, else the Yields section, else nil.
func (m *Model) ReturnDoc() *ReturnDoc {
	if m.ReturnsDoc != nil {
		return m.ReturnsDoc
	}
	return m.YieldsDoc
}

// Param returns the documented parameter with the given name, or nil.
func (m *Model) Param(name string) *Param {
	for i := range m.Params {
		if m.Params[i].Name == name {
			return &m.Params[i]
		}
	}
	return nil
}

// HasRaise reports whether the exception name is documented.
func (m *Model) HasRaise(name string) bool {
	for _, r := range m.Raises {
		if r.Name == name {
			return true
		}
	}
	return false
}

// HasSideEffect reports whether a side-effect note of the given kind matched.
func (m *Model) HasSideEffect(kind NoteKind) bool {
	return m.SideEffects[kind]
}

// emptyModel returns the degenerate model used when no dialect is detected.
func emptyModel() *Model {
	return &Model{
		Dialect:     DialectNone,
		SideEffects: map[NoteKind]bool{},
	}
}
