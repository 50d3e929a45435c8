package schema

import (
	"testing"
)

func TestDefaultTableName(t *testing.T) {
	tests := []struct {
		name     string
		expected string
	}{
		{"User", "user"},
		{"HeroTeam", "heroteam"},
		{"todo", "todo"},
		{"API", "api"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DefaultTableName(tt.name); got != tt.expected {
				t.Errorf("DefaultTableName(%s) = %s, want %s", tt.name, got, tt.expected)
			}
		})
	}
}

func TestNewModelRecord(t *testing.T) {
	m := NewModelRecord("HeroTeam", Origin{File: "models.py", Line: 3})

	if m.TableName != "heroteam" {
		t.Errorf("expected default table name heroteam, got %s", m.TableName)
	}
	if m.HasTable {
		t.Error("expected new record to be schema-only")
	}
	if m.HasPrimaryKey() {
		t.Error("expected no primary key on a new record")
	}
	if m.Origin.String() != "models.py:3" {
		t.Errorf("unexpected origin %s", m.Origin)
	}
}

func TestModelRecord_SetForeignKey(t *testing.T) {
	m := NewModelRecord("Todo", Origin{File: "models.py", Line: 1})
	m.SetForeignKey("owner_id", "user.id")
	m.SetForeignKey("team_id", "team.id")
	m.SetForeignKey("owner_id", "account.id")

	if len(m.ForeignKeys) != 2 {
		t.Fatalf("expected 2 foreign keys, got %d", len(m.ForeignKeys))
	}
	if m.ForeignKeys[0].Field != "owner_id" || m.ForeignKeys[0].Reference != "account.id" {
		t.Errorf("expected redeclared field to keep its position, got %+v", m.ForeignKeys[0])
	}
	if m.ForeignKeys[1].Field != "team_id" {
		t.Errorf("expected team_id second, got %s", m.ForeignKeys[1].Field)
	}
}

func TestModelRecord_SetRelationship(t *testing.T) {
	m := NewModelRecord("User", Origin{File: "models.py", Line: 1})
	m.SetRelationship(RelationshipRef{Field: "todos", Target: "Todo", BackPopulates: "owner"})
	m.SetRelationship(RelationshipRef{Field: "todos", Target: "Item"})

	if len(m.Relationships) != 1 {
		t.Fatalf("expected 1 relationship, got %d", len(m.Relationships))
	}

	rel := m.Relationship("todos")
	if rel == nil {
		t.Fatal("expected todos relationship")
	}
	if rel.Target != "Item" || rel.BackPopulates != "" {
		t.Errorf("expected later declaration to win, got %+v", *rel)
	}
	if m.Relationship("missing") != nil {
		t.Error("expected nil for an undeclared field")
	}
}
