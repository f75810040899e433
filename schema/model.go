package schema

import (
	"fmt"

	"github.com/go-openapi/inflect"

	"github.com/syssam/fixture/schema/edge"
	"github.com/syssam/fixture/schema/field"
)

// DefaultKey is the primary key column used when a model does not set one.
const DefaultKey = "id"

// Field is the interface implemented by field builders.
type Field interface {
	Descriptor() *field.Descriptor
}

// Edge is the interface implemented by edge builders.
type Edge interface {
	Descriptor() *edge.Descriptor
}

// Mixin is a reusable set of fields and edges shared by models.
// See the mixin package for common ones.
type Mixin interface {
	Fields() []Field
	Edges() []Edge
}

// Model describes a storage entity: its schema (the fields) and its declared
// relations (the edges). Models are owned by the caller; the fixture client
// only reads them.
type Model struct {
	Name       string              `yaml:"name"`
	Table      string              `yaml:"table"`
	PrimaryKey string              `yaml:"primary_key"`
	Fields     []*field.Descriptor `yaml:"fields"`
	Edges      []*edge.Descriptor  `yaml:"edges"`
}

// New returns a model with the given name.
//
//	var Profile = schema.New("Profile").
//		AddFields(
//			field.Int("id").Generated(),
//			field.String("address"),
//			field.Int("account_id"),
//		).
//		AddEdges(
//			edge.BelongsTo("account", "Account").Join("profile.account_id", "account.id"),
//		)
func New(name string) *Model {
	return &Model{Name: name}
}

// SetTable sets the table name.
func (m *Model) SetTable(table string) *Model {
	m.Table = table
	return m
}

// SetKey sets the primary key column.
func (m *Model) SetKey(key string) *Model {
	m.PrimaryKey = key
	return m
}

// AddFields appends field descriptors.
func (m *Model) AddFields(fields ...Field) *Model {
	for _, f := range fields {
		m.Fields = append(m.Fields, f.Descriptor())
	}
	return m
}

// AddEdges appends edge declarations.
func (m *Model) AddEdges(edges ...Edge) *Model {
	for _, e := range edges {
		m.Edges = append(m.Edges, e.Descriptor())
	}
	return m
}

// AddMixins appends the fields and edges of the given mixins.
func (m *Model) AddMixins(mixins ...Mixin) *Model {
	for _, mx := range mixins {
		m.AddFields(mx.Fields()...)
		m.AddEdges(mx.Edges()...)
	}
	return m
}

// TableName returns the table of the model, defaulting to the snake_case
// form of its name.
func (m *Model) TableName() string {
	if m.Table != "" {
		return m.Table
	}
	return inflect.Underscore(m.Name)
}

// Key returns the primary key column.
func (m *Model) Key() string {
	if m.PrimaryKey != "" {
		return m.PrimaryKey
	}
	return DefaultKey
}

// HasSchema reports whether the model declares at least one field.
func (m *Model) HasSchema() bool {
	return len(m.Fields) > 0
}

// Field returns the field with the given name.
func (m *Model) Field(name string) (*field.Descriptor, bool) {
	for _, f := range m.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return nil, false
}

// HasField reports whether the schema declares the given field.
func (m *Model) HasField(name string) bool {
	_, ok := m.Field(name)
	return ok
}

// Edge returns the edge declaration with the given name.
func (m *Model) Edge(name string) (*edge.Descriptor, bool) {
	for _, e := range m.Edges {
		if e.Name == name {
			return e, true
		}
	}
	return nil, false
}

// Validate checks the field and edge declarations of the model in isolation.
// Cross-model checks (targets, join columns) are done when a graph is built.
func (m *Model) Validate() error {
	if m.Name == "" {
		return fmt.Errorf("schema: model without name")
	}
	seen := make(map[string]struct{}, len(m.Fields)+len(m.Edges))
	for _, f := range m.Fields {
		if err := f.Validate(); err != nil {
			return fmt.Errorf("schema: model %q: %w", m.Name, err)
		}
		if _, ok := seen[f.Name]; ok {
			return fmt.Errorf("schema: model %q: duplicate field %q", m.Name, f.Name)
		}
		seen[f.Name] = struct{}{}
	}
	for _, e := range m.Edges {
		if err := e.Validate(); err != nil {
			return fmt.Errorf("schema: model %q: %w", m.Name, err)
		}
		if _, ok := seen[e.Name]; ok {
			return fmt.Errorf("schema: model %q: edge %q collides with another field or edge", m.Name, e.Name)
		}
		seen[e.Name] = struct{}{}
	}
	return nil
}
