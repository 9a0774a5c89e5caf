package docstring

import "strings"

// Parser parses docstring text into Models. The zero value is not usable;
// construct with NewParser.
type Parser struct {
	keywords *KeywordTable
}

// Option configures a Parser.
type Option func(*Parser)

// WithKeywordTable overrides the side-effect keyword table.
func WithKeywordTable(table *KeywordTable) Option {
	return func(p *Parser) {
		if table != nil {
			p.keywords = table
		}
	}
}

// NewParser creates a docstring parser with the built-in keyword table.
func NewParser(opts ...Option) *Parser {
	p := &Parser{keywords: DefaultKeywordTable()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Fingerprint returns a stable description of the parser's configuration.
func (p *Parser) Fingerprint() string {
	return p.keywords.Fingerprint()
}

// Parse builds a Model from raw docstring text. baseLine is the 1-based
// source line of the docstring's first line; entry lines in the model are
// absolute source lines derived from it.
//
// Parsing is total. The dialect is detected per docstring: Google-style
// section markers win, then reST directives; with neither, the model is
// empty with Dialect == DialectNone.
func (p *Parser) Parse(text string, baseLine int) *Model {
	if strings.TrimSpace(text) == "" {
		return emptyModel()
	}
	lines := strings.Split(text, "\n")

	switch {
	case hasGoogleMarker(lines):
		return parseGoogle(lines, baseLine, p.keywords)
	case hasRESTMarker(lines):
		return parseREST(lines, baseLine, p.keywords)
	default:
		return emptyModel()
	}
}
