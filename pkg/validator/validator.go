// Package validator checks the structural invariants of a complete set of
// model records.
package validator

import (
	"strings"

	"github.com/marshallshelly/modelcheck/pkg/registry"
	"github.com/marshallshelly/modelcheck/pkg/schema"
)

// Validate runs every rule over the registry and returns the issues found.
// Rules run independently and in a fixed order: primary keys, foreign keys,
// relationships. Models are visited in registration order and fields in
// declaration order.
func Validate(reg *registry.Registry) []schema.Issue {
	models := reg.All()

	issues := make([]schema.Issue, 0)
	issues = append(issues, CheckPrimaryKeys(models)...)
	issues = append(issues, CheckForeignKeys(models, reg.KnownTables())...)
	issues = append(issues, CheckRelationships(models, reg)...)
	return issues
}

// CheckPrimaryKeys reports table models without a primary key.
func CheckPrimaryKeys(models []*schema.ModelRecord) []schema.Issue {
	var issues []schema.Issue
	for _, model := range models {
		if model.HasTable && !model.HasPrimaryKey() {
			issues = append(issues, schema.NewError(model.Origin,
				"Table model '%s' has no primary key", model.Name))
		}
	}
	return issues
}

// CheckForeignKeys reports "table.column" references to tables outside
// known. References without a '.' are not checked.
func CheckForeignKeys(models []*schema.ModelRecord, known map[string]bool) []schema.Issue {
	var issues []schema.Issue
	for _, model := range models {
		for _, fk := range model.ForeignKeys {
			table, _, ok := strings.Cut(fk.Reference, ".")
			if !ok {
				continue
			}
			if !known[table] {
				issues = append(issues, schema.NewWarning(model.Origin,
					"Foreign key '%s' references unknown table '%s'", fk.Field, table))
			}
		}
	}
	return issues
}

// Resolver resolves a bare model name to every model declaring it.
type Resolver interface {
	Lookup(name string) []*schema.ModelRecord
}

// CheckRelationships reports back_populates declarations without a matching
// relationship on the target model. Targets that resolve to no model are
// skipped; targets declared in more than one module are reported as
// ambiguous.
func CheckRelationships(models []*schema.ModelRecord, resolver Resolver) []schema.Issue {
	var issues []schema.Issue
	for _, model := range models {
		for _, rel := range model.Relationships {
			if rel.BackPopulates == "" || rel.Target == "" {
				continue
			}

			targets := resolver.Lookup(rel.Target)
			switch len(targets) {
			case 0:
				continue
			case 1:
				if !hasMirror(targets[0], model.Name, rel.Field) {
					issues = append(issues, schema.NewError(model.Origin,
						"Relationship '%s' has back_populates='%s' but no matching relationship found in '%s'",
						rel.Field, rel.BackPopulates, rel.Target))
				}
			default:
				modules := make([]string, 0, len(targets))
				for _, target := range targets {
					modules = append(modules, target.Origin.File)
				}
				issues = append(issues, schema.NewError(model.Origin,
					"Relationship '%s' targets '%s' which is defined in %d modules: %s",
					rel.Field, rel.Target, len(targets), strings.Join(modules, ", ")))
			}
		}
	}
	return issues
}

// hasMirror reports whether target declares a relationship back to owner
// whose back_populates names field.
func hasMirror(target *schema.ModelRecord, owner, field string) bool {
	for _, rel := range target.Relationships {
		if rel.BackPopulates == field && rel.Target == owner {
			return true
		}
	}
	return false
}
