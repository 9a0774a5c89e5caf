//go:build cgo

package pysrc

import (
	"context"
	"fmt"
	"unicode/utf8"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"

	dsverr "github.com/akrisanov/docstring-verifier/internal/errors"
)

// Parser extracts function models from Python source files.
//
// Parser instances are safe for concurrent use: each Extract call creates its
// own tree-sitter parser internally.
type Parser struct{}

// NewParser creates a new Python source parser.
func NewParser() *Parser {
	return &Parser{}
}

// Extract parses source and returns one Function per definition, in lexical
// declaration order. On malformed syntax it fails with a SYNTAX_ERROR
// carrying a best-effort position and emits no partial result.
func (p *Parser) Extract(ctx context.Context, source []byte, path string) ([]Function, error) {
	if !utf8.Valid(source) {
		return nil, dsverr.New(dsverr.SyntaxError, "source is not valid UTF-8", nil).WithFile(path)
	}

	parser := sitter.NewParser()
	parser.SetLanguage(python.GetLanguage())

	tree, err := parser.ParseCtx(ctx, nil, source)
	if err != nil {
		return nil, fmt.Errorf("tree-sitter parse failed: %w", err)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root == nil {
		return nil, dsverr.New(dsverr.SyntaxError, "parser returned no syntax tree", nil).WithFile(path)
	}
	if root.HasError() {
		line, col := firstErrorPosition(root)
		return nil, dsverr.New(dsverr.SyntaxError, "source contains syntax errors", nil).
			WithFile(path).
			WithPosition(line, col)
	}

	ex := &extractor{source: source}
	ex.walk(root)
	return ex.functions, nil
}

// IsAvailable returns whether Python parsing is available.
// Returns true when CGO is enabled.
func IsAvailable() bool {
	return true
}

// firstErrorPosition locates the first ERROR or missing node in the tree.
func firstErrorPosition(root *sitter.Node) (line, col int) {
	var found *sitter.Node

	var walk func(n *sitter.Node)
	walk = func(n *sitter.Node) {
		if n == nil || found != nil {
			return
		}
		if n.Type() == "ERROR" || n.IsMissing() {
			found = n
			return
		}
		if !n.HasError() {
			return
		}
		for i := 0; i < int(n.ChildCount()); i++ {
			walk(n.Child(i))
		}
	}
	walk(root)

	if found == nil {
		return 1, 0
	}
	return int(found.StartPoint().Row) + 1, int(found.StartPoint().Column)
}
