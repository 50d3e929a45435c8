// Package source parses Python source units into tree-sitter syntax trees.
package source

import (
	"context"
	"fmt"
	"path/filepath"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"
)

// SyntaxError reports a source unit that does not parse.
type SyntaxError struct {
	Path   string
	Line   int
	Column int
	Msg    string
}

// Error implements the error interface.
func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s (%s, line %d)", e.Msg, filepath.Base(e.Path), e.Line)
}

// File is a parsed source unit.
type File struct {
	Path    string
	Content []byte
	tree    *sitter.Tree
}

// Root returns the module node of the unit.
func (f *File) Root() *sitter.Node {
	return f.tree.RootNode()
}

// Text returns the source text spanned by node.
func (f *File) Text(node *sitter.Node) string {
	return node.Content(f.Content)
}

// Line returns the 1-based line on which node starts.
func Line(node *sitter.Node) int {
	return int(node.StartPoint().Row) + 1
}

// Close releases the syntax tree.
func (f *File) Close() {
	if f.tree != nil {
		f.tree.Close()
	}
}

// Parser parses Python source text.
type Parser struct {
	lang *sitter.Language
}

// NewParser creates a Parser with the Python grammar loaded.
func NewParser() *Parser {
	return &Parser{lang: python.GetLanguage()}
}

// Parse builds the syntax tree of content. A unit containing syntax errors,
// including the indentation and statement forms the grammar tolerates,
// returns a *SyntaxError for the first offending node and no File.
func (p *Parser) Parse(ctx context.Context, path string, content []byte) (*File, error) {
	// One tree-sitter parser per call; parsers are not safe for concurrent use.
	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(p.lang)

	tree, err := parser.ParseCtx(ctx, nil, content)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	root := tree.RootNode()
	if root.HasError() {
		syntaxErr := firstSyntaxError(root)
		tree.Close()
		if syntaxErr == nil {
			syntaxErr = &SyntaxError{Line: 1, Column: 1, Msg: "invalid syntax"}
		}
		syntaxErr.Path = path
		return nil, syntaxErr
	}
	if syntaxErr := checkStructure(root, content); syntaxErr != nil {
		tree.Close()
		syntaxErr.Path = path
		return nil, syntaxErr
	}

	return &File{Path: path, Content: content, tree: tree}, nil
}

// firstSyntaxError returns the first ERROR or MISSING node in document order.
func firstSyntaxError(node *sitter.Node) *SyntaxError {
	if node == nil {
		return nil
	}

	if node.IsMissing() {
		return newSyntaxError(node, fmt.Sprintf("missing %s", describeMissing(node)))
	}
	if node.IsError() {
		return newSyntaxError(node, "invalid syntax")
	}
	if !node.HasError() {
		return nil
	}

	for i := 0; i < int(node.ChildCount()); i++ {
		if found := firstSyntaxError(node.Child(i)); found != nil {
			return found
		}
	}
	return nil
}

func newSyntaxError(node *sitter.Node, msg string) *SyntaxError {
	point := node.StartPoint()
	return &SyntaxError{
		Line:   int(point.Row) + 1,
		Column: int(point.Column) + 1,
		Msg:    msg,
	}
}

func describeMissing(node *sitter.Node) string {
	kind := node.Type()
	if node.IsNamed() {
		return kind
	}
	return fmt.Sprintf("'%s'", kind)
}
