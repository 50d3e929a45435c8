package loader

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/marshallshelly/modelcheck/pkg/config"
	"github.com/marshallshelly/modelcheck/pkg/schema"
	"github.com/marshallshelly/modelcheck/pkg/source"
)

const tableNameAttr = "__tablename__"

// Extractor builds model records from the syntax tree of one source unit.
// Only statically literal values are trusted; anything else is ignored.
type Extractor struct {
	bases         map[string]bool
	fields        map[string]bool
	relationships map[string]bool
}

// NewExtractor creates an Extractor recognising the names in cfg.
func NewExtractor(cfg *config.Config) *Extractor {
	return &Extractor{
		bases:         toSet(cfg.BaseClasses),
		fields:        toSet(cfg.FieldConstructors),
		relationships: toSet(cfg.RelationshipConstructors),
	}
}

func toSet(names []string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, name := range names {
		set[name] = true
	}
	return set
}

// Extract returns the models declared in file in declaration order. A name
// declared twice keeps its first position and the later declaration.
func (e *Extractor) Extract(file *source.File) []*schema.ModelRecord {
	var (
		models []*schema.ModelRecord
		index  = make(map[string]int)
	)

	var walk func(node *sitter.Node)
	walk = func(node *sitter.Node) {
		if node == nil {
			return
		}

		if node.Type() == "class_definition" {
			if model := e.extractClass(file, node); model != nil {
				if i, ok := index[model.Name]; ok {
					models[i] = model
				} else {
					index[model.Name] = len(models)
					models = append(models, model)
				}
			}
		}

		// Nested classes are models too
		for i := 0; i < int(node.NamedChildCount()); i++ {
			walk(node.NamedChild(i))
		}
	}
	walk(file.Root())

	return models
}

// extractClass returns the record of a model class, or nil when the class
// does not inherit from a base marker.
func (e *Extractor) extractClass(file *source.File, node *sitter.Node) *schema.ModelRecord {
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		return nil
	}

	isModel, hasTable := e.inspectSuperclasses(file, node.ChildByFieldName("superclasses"))
	if !isModel {
		return nil
	}

	model := schema.NewModelRecord(file.Text(nameNode), schema.Origin{
		File: file.Path,
		Line: source.Line(node),
	})
	model.HasTable = hasTable

	body := node.ChildByFieldName("body")
	if body == nil {
		return model
	}

	for i := 0; i < int(body.NamedChildCount()); i++ {
		stmt := body.NamedChild(i)
		if stmt.Type() != "expression_statement" || stmt.NamedChildCount() == 0 {
			continue
		}
		assignment := stmt.NamedChild(0)
		if assignment.Type() != "assignment" {
			continue
		}

		if assignment.ChildByFieldName("type") == nil {
			e.analyzeTableName(file, model, assignment)
			continue
		}
		e.analyzeAnnotated(file, model, assignment)
	}

	return model
}

// inspectSuperclasses reports whether a base marker is listed and whether
// the table=True keyword is present.
func (e *Extractor) inspectSuperclasses(file *source.File, args *sitter.Node) (isModel, hasTable bool) {
	if args == nil {
		return false, false
	}

	for i := 0; i < int(args.NamedChildCount()); i++ {
		arg := args.NamedChild(i)
		switch arg.Type() {
		case "identifier":
			if e.bases[file.Text(arg)] {
				isModel = true
			}
		case "keyword_argument":
			if keywordName(file, arg) == "table" && source.IsTrue(arg.ChildByFieldName("value")) {
				hasTable = true
			}
		}
	}
	return isModel, hasTable
}

// analyzeTableName applies a literal __tablename__ assignment, including
// chained targets such as `a = __tablename__ = "x"`.
func (e *Extractor) analyzeTableName(file *source.File, model *schema.ModelRecord, assignment *sitter.Node) {
	targets := []*sitter.Node{assignment.ChildByFieldName("left")}
	value := assignment.ChildByFieldName("right")
	for value != nil && value.Type() == "assignment" && value.ChildByFieldName("type") == nil {
		targets = append(targets, value.ChildByFieldName("left"))
		value = value.ChildByFieldName("right")
	}

	tableName, ok := source.StringLiteral(value, file.Content)
	if !ok {
		return
	}

	for _, target := range targets {
		if target != nil && target.Type() == "identifier" && file.Text(target) == tableNameAttr {
			model.TableName = tableName
		}
	}
}

// analyzeAnnotated inspects `name: T = Descriptor(...)` field declarations.
func (e *Extractor) analyzeAnnotated(file *source.File, model *schema.ModelRecord, assignment *sitter.Node) {
	target := assignment.ChildByFieldName("left")
	if target == nil || target.Type() != "identifier" {
		return
	}

	call := assignment.ChildByFieldName("right")
	if call == nil || call.Type() != "call" {
		return
	}

	fieldName := file.Text(target)
	callee := calleeName(file, call.ChildByFieldName("function"))

	switch {
	case e.fields[callee]:
		e.analyzeFieldCall(file, model, fieldName, call)
	case e.relationships[callee]:
		e.analyzeRelationshipCall(file, model, fieldName, call, assignment.ChildByFieldName("type"))
	}
}

// analyzeFieldCall records primary_key=True and literal foreign_key values.
func (e *Extractor) analyzeFieldCall(file *source.File, model *schema.ModelRecord, fieldName string, call *sitter.Node) {
	forEachKeyword(file, call, func(name string, value *sitter.Node) {
		switch name {
		case "primary_key":
			if source.IsTrue(value) {
				model.AddPrimaryKey(fieldName)
			}
		case "foreign_key":
			if ref, ok := source.StringLiteral(value, file.Content); ok {
				model.SetForeignKey(fieldName, ref)
			}
		}
	})
}

// analyzeRelationshipCall records the relationship target and back_populates.
func (e *Extractor) analyzeRelationshipCall(file *source.File, model *schema.ModelRecord, fieldName string, call, annotation *sitter.Node) {
	rel := schema.RelationshipRef{
		Field:  fieldName,
		Target: annotationTarget(file, annotation),
	}

	forEachKeyword(file, call, func(name string, value *sitter.Node) {
		if name != "back_populates" {
			return
		}
		if backPopulates, ok := source.StringLiteral(value, file.Content); ok {
			rel.BackPopulates = backPopulates
		}
	})

	model.SetRelationship(rel)
}

// calleeName returns the called name: `Field` for both Field(...) and
// sqlmodel.Field(...).
func calleeName(file *source.File, function *sitter.Node) string {
	if function == nil {
		return ""
	}
	switch function.Type() {
	case "identifier":
		return file.Text(function)
	case "attribute":
		if attr := function.ChildByFieldName("attribute"); attr != nil {
			return file.Text(attr)
		}
	}
	return ""
}

func forEachKeyword(file *source.File, call *sitter.Node, fn func(name string, value *sitter.Node)) {
	args := call.ChildByFieldName("arguments")
	if args == nil || args.Type() != "argument_list" {
		return
	}
	for i := 0; i < int(args.NamedChildCount()); i++ {
		arg := args.NamedChild(i)
		if arg.Type() != "keyword_argument" {
			continue
		}
		fn(keywordName(file, arg), arg.ChildByFieldName("value"))
	}
}

func keywordName(file *source.File, keyword *sitter.Node) string {
	name := keyword.ChildByFieldName("name")
	if name == nil {
		return ""
	}
	return file.Text(name)
}
