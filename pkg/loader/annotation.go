package loader

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/marshallshelly/modelcheck/pkg/source"
)

// annotationTarget resolves the related model name from a relationship
// annotation. Recognised shapes:
//
//	Team                bare name
//	"Team"              forward reference
//	list["Hero"]        single-argument subscript / generic
//	Optional[Team]
//	Team | None         union, left operand
//
// Any other shape resolves to "".
func annotationTarget(file *source.File, annotation *sitter.Node) string {
	node := unwrapType(annotation)
	if node == nil {
		return ""
	}

	switch node.Type() {
	case "identifier", "string", "concatenated_string":
		return simpleTarget(file, node)

	case "subscript":
		// value plus exactly one subscript
		if node.NamedChildCount() != 2 {
			return ""
		}
		return simpleTarget(file, node.NamedChild(1))

	case "generic_type":
		for i := 0; i < int(node.NamedChildCount()); i++ {
			params := node.NamedChild(i)
			if params.Type() != "type_parameter" {
				continue
			}
			if params.NamedChildCount() != 1 {
				return ""
			}
			return simpleTarget(file, params.NamedChild(0))
		}

	case "binary_operator":
		operator := node.ChildByFieldName("operator")
		if operator == nil || file.Text(operator) != "|" {
			return ""
		}
		return simpleTarget(file, node.ChildByFieldName("left"))

	case "union_type":
		if node.NamedChildCount() == 0 {
			return ""
		}
		return simpleTarget(file, node.NamedChild(0))
	}

	return ""
}

// simpleTarget accepts only a bare name or a string literal.
func simpleTarget(file *source.File, node *sitter.Node) string {
	node = unwrapType(node)
	if node == nil {
		return ""
	}
	if node.Type() == "identifier" {
		return file.Text(node)
	}
	if name, ok := source.StringLiteral(node, file.Content); ok {
		return name
	}
	return ""
}

// unwrapType strips the `type` wrapper the grammar puts around annotations.
func unwrapType(node *sitter.Node) *sitter.Node {
	for node != nil && node.Type() == "type" && node.NamedChildCount() == 1 {
		node = node.NamedChild(0)
	}
	return node
}
