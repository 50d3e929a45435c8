package source

import (
	sitter "github.com/smacker/go-tree-sitter"
)

const (
	msgUnexpectedIndent = "unexpected indent"
	msgBadDedent        = "unindent does not match any outer indentation level"
)

// checkStructure reports the first construct the grammar accepts but the
// language does not: inconsistent statement indentation, Python 2 print and
// exec statements, and an unparenthesized := used as a statement.
func checkStructure(node *sitter.Node, src []byte) *SyntaxError {
	if node == nil {
		return nil
	}

	switch node.Type() {
	case "print_statement":
		return newSyntaxError(node, "missing parentheses in call to 'print'")
	case "exec_statement":
		return newSyntaxError(node, "missing parentheses in call to 'exec'")
	case "expression_statement":
		if node.NamedChildCount() > 0 && node.NamedChild(0).Type() == "named_expression" {
			return newSyntaxError(node, "invalid syntax")
		}
	}

	checkIndent := node.Type() == "module" || node.Type() == "block"
	expected := -1
	if node.Type() == "module" {
		expected = 0
	}

	var prev *sitter.Node
	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)

		if checkIndent && isStatement(child) && startsLine(child, src) {
			col := int(child.StartPoint().Column)
			switch {
			case expected < 0:
				expected = col
			case col > expected:
				if prev != nil && trailingIndent(prev, src) > col {
					return newSyntaxError(child, msgBadDedent)
				}
				return newSyntaxError(child, msgUnexpectedIndent)
			case col < expected:
				return newSyntaxError(child, msgBadDedent)
			}
		}

		if found := checkStructure(child, src); found != nil {
			return found
		}
		if isStatement(child) {
			prev = child
		}
	}
	return nil
}

func isStatement(node *sitter.Node) bool {
	switch node.Type() {
	case "comment", "line_continuation":
		return false
	}
	return true
}

// startsLine reports whether only whitespace precedes node on its line.
func startsLine(node *sitter.Node, src []byte) bool {
	start := int(node.StartByte())
	lineStart := start - int(node.StartPoint().Column)
	if lineStart < 0 || start > len(src) {
		return false
	}
	for _, c := range src[lineStart:start] {
		if c != ' ' && c != '\t' {
			return false
		}
	}
	return true
}

// trailingIndent returns the column of the innermost block statement that
// starts a line and ends node, or -1.
func trailingIndent(node *sitter.Node, src []byte) int {
	col := -1
	for inBlock := true; node != nil; {
		if inBlock && startsLine(node, src) {
			col = int(node.StartPoint().Column)
		}
		inBlock = node.Type() == "block"
		node = lastStatement(node)
	}
	return col
}

func lastStatement(node *sitter.Node) *sitter.Node {
	for i := int(node.NamedChildCount()) - 1; i >= 0; i-- {
		if child := node.NamedChild(i); isStatement(child) {
			return child
		}
	}
	return nil
}
