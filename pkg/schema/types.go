// Package schema defines the records extracted from declarative model
// sources and the issues reported against them.
package schema

import (
	"fmt"
	"strings"
)

// Origin locates a declaration in a source unit.
type Origin struct {
	File string `json:"file" yaml:"file"`
	Line int    `json:"line" yaml:"line"`
}

// String returns the origin as path:line.
func (o Origin) String() string {
	return fmt.Sprintf("%s:%d", o.File, o.Line)
}

// ForeignKey is a field that references another table as "table.column".
type ForeignKey struct {
	Field     string
	Reference string
}

// RelationshipRef describes one declared relationship field.
// An empty Target means the annotation could not be resolved and an empty
// BackPopulates means the mirror field was not declared.
type RelationshipRef struct {
	Field         string
	Target        string
	BackPopulates string
}

// ModelRecord holds the structure of one declarative model class.
type ModelRecord struct {
	Name          string
	TableName     string
	HasTable      bool
	PrimaryKeys   []string
	ForeignKeys   []ForeignKey
	Relationships []RelationshipRef
	Origin        Origin
}

// NewModelRecord creates a record with the default table name for name.
func NewModelRecord(name string, origin Origin) *ModelRecord {
	return &ModelRecord{
		Name:          name,
		TableName:     DefaultTableName(name),
		PrimaryKeys:   make([]string, 0),
		ForeignKeys:   make([]ForeignKey, 0),
		Relationships: make([]RelationshipRef, 0),
		Origin:        origin,
	}
}

// DefaultTableName derives the table name of a model from its class name.
func DefaultTableName(name string) string {
	return strings.ToLower(name)
}

// AddPrimaryKey appends field to the primary key columns.
func (m *ModelRecord) AddPrimaryKey(field string) {
	m.PrimaryKeys = append(m.PrimaryKeys, field)
}

// SetForeignKey records the reference of field. A field declared twice keeps
// its first position and takes the later reference.
func (m *ModelRecord) SetForeignKey(field, reference string) {
	for i := range m.ForeignKeys {
		if m.ForeignKeys[i].Field == field {
			m.ForeignKeys[i].Reference = reference
			return
		}
	}
	m.ForeignKeys = append(m.ForeignKeys, ForeignKey{Field: field, Reference: reference})
}

// SetRelationship records rel under rel.Field, replacing an earlier
// declaration of the same field in place.
func (m *ModelRecord) SetRelationship(rel RelationshipRef) {
	for i := range m.Relationships {
		if m.Relationships[i].Field == rel.Field {
			m.Relationships[i] = rel
			return
		}
	}
	m.Relationships = append(m.Relationships, rel)
}

// Relationship returns the relationship declared on field, or nil.
func (m *ModelRecord) Relationship(field string) *RelationshipRef {
	for i := range m.Relationships {
		if m.Relationships[i].Field == field {
			return &m.Relationships[i]
		}
	}
	return nil
}

// HasPrimaryKey reports whether at least one primary key field is declared.
func (m *ModelRecord) HasPrimaryKey() bool {
	return len(m.PrimaryKeys) > 0
}
