// Package pytype canonicalizes type spellings from code annotations and
// docstrings into comparable semantic types.
//
// "string" and "str" normalize to the same token; "Optional[int]",
// "int | None" and "int, optional" all compare equal. Spellings outside the
// alias table become opaque tokens keyed by their lower-cased,
// whitespace-collapsed text, so two occurrences of the same exotic spelling
// still compare equal.
package pytype

import (
	"sort"
	"strings"
)

// Canonical primitive tokens.
const (
	TokenStr    = "str"
	TokenInt    = "int"
	TokenFloat  = "float"
	TokenBool   = "bool"
	TokenNone   = "None"
	TokenList   = "list"
	TokenDict   = "dict"
	TokenSet    = "set"
	TokenTuple  = "tuple"
	TokenBytes  = "bytes"
	TokenObject = "object"
)

// aliasTable maps lower-cased spellings to canonical tokens.
var aliasTable = map[string]string{
	"str":        TokenStr,
	"string":     TokenStr,
	"text":       TokenStr,
	"int":        TokenInt,
	"integer":    TokenInt,
	"float":      TokenFloat,
	"number":     TokenFloat,
	"double":     TokenFloat,
	"bool":       TokenBool,
	"boolean":    TokenBool,
	"none":       TokenNone,
	"nonetype":   TokenNone,
	"null":       TokenNone,
	"list":       TokenList,
	"array":      TokenList,
	"dict":       TokenDict,
	"dictionary": TokenDict,
	"mapping":    TokenDict,
	"set":        TokenSet,
	"tuple":      TokenTuple,
	"bytes":      TokenBytes,
	"object":     TokenObject,
}

// Type is the canonical representation of a type spelling.
//
// Members holds the canonical member tokens, sorted and deduplicated; a union
// has more than one member. Optional records an optionality wrapper
// (Optional[...], a trailing ", optional" qualifier) separately from the
// contained type.
type Type struct {
	Members  []string
	Optional bool
}

// Normalize canonicalizes a type spelling. An empty or blank spelling yields
// the zero Type (IsZero() == true), which no rule treats as comparable.
func Normalize(spelling string) Type {
	s := collapse(spelling)
	if s == "" {
		return Type{}
	}

	var t Type
	s, t.Optional = stripOptional(s)
	if s == "" {
		// Spelling was just the word "optional"; nothing comparable remains.
		return Type{Optional: t.Optional}
	}

	seen := make(map[string]bool)
	for _, member := range splitUnion(s) {
		tok := canonicalToken(member)
		if tok == "" {
			continue
		}
		if !seen[tok] {
			seen[tok] = true
			t.Members = append(t.Members, tok)
		}
	}
	sort.Strings(t.Members)
	return t
}

// Equal reports whether two canonical types denote the same set of member
// types. Optionality folds into a None member, so Optional[int] equals
// int | None.
func (t Type) Equal(o Type) bool {
	a := t.folded()
	b := o.folded()
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// IsZero reports whether the type carries no information at all.
func (t Type) IsZero() bool {
	return len(t.Members) == 0 && !t.Optional
}

// IsNone reports whether the type is exactly the null type.
func (t Type) IsNone() bool {
	f := t.folded()
	return len(f) == 1 && f[0] == TokenNone
}

// Contains reports whether token is a member of the type. Optionality counts
// as a None member. The token is canonicalized first, so Contains("integer")
// on int | str holds. A parameterized member matches by its base, so a list
// token is contained in list[str].
func (t Type) Contains(token string) bool {
	want := canonicalToken(collapse(token))
	for _, m := range t.folded() {
		if m == want || genericBase(m) == want {
			return true
		}
	}
	return false
}

// genericBase strips a subscript from a member token: list[str] -> list.
func genericBase(member string) string {
	i := strings.IndexByte(member, '[')
	if i < 0 {
		return member
	}
	return canonicalToken(member[:i])
}

// String renders the canonical form, unions joined with " | ".
func (t Type) String() string {
	f := t.folded()
	if len(f) == 0 {
		return "<unknown>"
	}
	return strings.Join(f, " | ")
}

// folded returns the member set with optionality folded in as None.
func (t Type) folded() []string {
	if !t.Optional {
		return t.Members
	}
	for _, m := range t.Members {
		if m == TokenNone {
			return t.Members
		}
	}
	out := make([]string, 0, len(t.Members)+1)
	out = append(out, t.Members...)
	out = append(out, TokenNone)
	sort.Strings(out)
	return out
}

// stripOptional removes optionality wrapping and reports whether any was found.
// Handles Optional[T], a trailing ", optional" / "or optional" qualifier, and
// a leading "optional " word.
func stripOptional(s string) (string, bool) {
	optional := false

	lower := strings.ToLower(s)
	if strings.HasPrefix(lower, "optional[") && strings.HasSuffix(s, "]") {
		s = collapse(s[len("optional[") : len(s)-1])
		optional = true
		lower = strings.ToLower(s)
	}
	for _, suffix := range []string{", optional", ",optional", " or optional"} {
		if strings.HasSuffix(lower, suffix) {
			s = collapse(s[:len(s)-len(suffix)])
			optional = true
			lower = strings.ToLower(s)
		}
	}
	if strings.HasPrefix(lower, "optional ") {
		s = collapse(s[len("optional "):])
		optional = true
	}
	if strings.EqualFold(s, "optional") {
		return "", true
	}
	return s, optional
}

// splitUnion splits a spelling into union members. Recognizes Union[A, B],
// the PEP 604 pipe form, and the natural-language "A or B". Separators inside
// brackets do not split.
func splitUnion(s string) []string {
	lower := strings.ToLower(s)
	if strings.HasPrefix(lower, "union[") && strings.HasSuffix(s, "]") {
		return splitTopLevel(s[len("union["):len(s)-1], isComma)
	}
	if parts := splitTopLevel(s, isPipe); len(parts) > 1 {
		return parts
	}
	if parts := splitTopLevelWord(s, "or"); len(parts) > 1 {
		return parts
	}
	return []string{s}
}

func isComma(r byte) bool { return r == ',' }
func isPipe(r byte) bool  { return r == '|' }

// splitTopLevel splits on a separator byte, ignoring separators nested inside
// square brackets or parentheses.
func splitTopLevel(s string, sep func(byte) bool) []string {
	var parts []string
	depth := 0
	start := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '[', '(':
			depth++
		case ']', ')':
			depth--
		default:
			if depth == 0 && sep(s[i]) {
				parts = append(parts, collapse(s[start:i]))
				start = i + 1
			}
		}
	}
	parts = append(parts, collapse(s[start:]))
	return parts
}

// splitTopLevelWord splits on a bare word separator (e.g. "or") at bracket
// depth zero.
func splitTopLevelWord(s, word string) []string {
	fields := strings.Fields(s)
	var parts []string
	var current []string
	depth := 0
	for _, f := range fields {
		for i := 0; i < len(f); i++ {
			switch f[i] {
			case '[', '(':
				depth++
			case ']', ')':
				depth--
			}
		}
		if depth == 0 && strings.EqualFold(f, word) && len(current) > 0 {
			parts = append(parts, strings.Join(current, " "))
			current = nil
			continue
		}
		current = append(current, f)
	}
	if len(current) > 0 {
		parts = append(parts, strings.Join(current, " "))
	}
	return parts
}

// canonicalToken maps one member spelling to its canonical token. Spellings
// outside the alias table become opaque lower-cased tokens.
func canonicalToken(member string) string {
	m := collapse(member)
	if m == "" {
		return ""
	}
	key := strings.ToLower(strings.TrimSuffix(m, "."))
	if tok, ok := aliasTable[key]; ok {
		return tok
	}
	return strings.ToLower(m)
}

// collapse trims and collapses interior whitespace to single spaces.
func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
