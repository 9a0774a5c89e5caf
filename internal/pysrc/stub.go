//go:build !cgo

package pysrc

import (
	"context"

	dsverr "github.com/akrisanov/docstring-verifier/internal/errors"
)

// Parser extracts function models from Python source files.
// This is a stub implementation for non-CGO builds.
type Parser struct{}

// NewParser creates a new Python source parser.
// Returns a parser whose Extract always fails when CGO is disabled.
func NewParser() *Parser {
	return &Parser{}
}

// Extract always fails with PARSER_UNAVAILABLE in non-CGO builds.
func (p *Parser) Extract(ctx context.Context, source []byte, path string) ([]Function, error) {
	return nil, dsverr.New(dsverr.ParserUnavailable, "python parsing requires CGO (tree-sitter)", nil).WithFile(path)
}

// IsAvailable returns whether Python parsing is available.
// Returns false when CGO is disabled.
func IsAvailable() bool {
	return false
}
