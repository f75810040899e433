package fixture

import (
	"fmt"

	"github.com/syssam/fixture/schema"
	"github.com/syssam/fixture/schema/edge"
)

// Graph is the set of models known to a Client, with their edges normalized
// into Relations.
type Graph struct {
	models    []*schema.Model
	nodes     map[string]*schema.Model
	relations map[*schema.Model][]*Relation
	names     NameResolver
}

// NewGraph builds a graph of the given models using DefaultNames.
func NewGraph(models ...*schema.Model) (*Graph, error) {
	return NewGraphWithResolver(DefaultNames, models...)
}

// NewGraphWithResolver builds a graph of the given models. Every edge is
// normalized once: its relation class is mapped to a Rel, its target is looked
// up by name and its join columns are resolved to schema fields with names.
func NewGraphWithResolver(names NameResolver, models ...*schema.Model) (*Graph, error) {
	if names == nil {
		names = DefaultNames
	}
	g := &Graph{
		nodes:     make(map[string]*schema.Model, len(models)),
		relations: make(map[*schema.Model][]*Relation, len(models)),
		names:     names,
	}
	for _, m := range models {
		if err := m.Validate(); err != nil {
			return nil, NewConfigError(m.Name, err)
		}
		if _, ok := g.nodes[m.Name]; ok {
			return nil, NewConfigError(m.Name, fmt.Errorf("duplicate model name"))
		}
		g.nodes[m.Name] = m
		g.models = append(g.models, m)
	}
	for _, m := range g.models {
		// Models without a schema cannot be created; Create reports it.
		if !m.HasSchema() {
			continue
		}
		for _, e := range m.Edges {
			rel, err := g.normalize(m, e)
			if err != nil {
				return nil, NewConfigError(m.Name, fmt.Errorf("edge %q: %w", e.Name, err))
			}
			g.relations[m] = append(g.relations[m], rel)
		}
	}
	return g, nil
}

func (g *Graph) normalize(m *schema.Model, e *edge.Descriptor) (*Relation, error) {
	target, ok := g.nodes[e.Type]
	if !ok {
		return nil, fmt.Errorf("unknown target model %q", e.Type)
	}
	rel := &Relation{
		Name:     e.Name,
		Owner:    m,
		Target:   target,
		Optional: e.Optional,
	}
	switch e.Relation {
	case edge.RelBelongsTo:
		rel.Rel = OwnedLink
	case edge.RelHasOne:
		rel.Rel = ReferencedLink
	case edge.RelHasMany:
		rel.Rel = ToMany
	case edge.RelManyToMany:
		rel.Rel = ManyToMany
	default:
		return nil, fmt.Errorf("unknown relation %q", e.Relation)
	}
	var err error
	if rel.LocalField, err = g.field(m, e.From); err != nil {
		return nil, err
	}
	if rel.RemoteField, err = g.field(target, e.To); err != nil {
		return nil, err
	}
	if rel.Rel == ManyToMany {
		if e.Through == nil {
			return nil, fmt.Errorf("many-to-many relation without through table")
		}
		jt := &JoinTable{
			Table:        e.Through.Table,
			LocalColumn:  columnName(e.Through.From),
			RemoteColumn: columnName(e.Through.To),
		}
		if jt.Table == "" {
			jt.Table = tableName(e.Through.From)
		}
		if jt.Table == "" || jt.LocalColumn == "" || jt.RemoteColumn == "" {
			return nil, fmt.Errorf("incomplete through table %+v", *e.Through)
		}
		rel.Through = jt
	}
	return rel, nil
}

// field resolves a declared join column to a field of the model schema. The
// primary key is accepted even if the schema does not list it.
func (g *Graph) field(m *schema.Model, column string) (string, error) {
	name, ok := g.names(columnName(column), func(n string) bool {
		return n == m.Key() || m.HasField(n)
	})
	if !ok {
		return "", fmt.Errorf("join column %q is not a field of %s", column, m.Name)
	}
	return name, nil
}

// Models returns the models of the graph in the order they were given.
func (g *Graph) Models() []*schema.Model {
	return append([]*schema.Model(nil), g.models...)
}

// Model returns the model with the given name.
func (g *Graph) Model(name string) (*schema.Model, bool) {
	m, ok := g.nodes[name]
	return m, ok
}

// Relations returns the relations of the model in declaration order.
func (g *Graph) Relations(m *schema.Model) []*Relation {
	return g.relations[m]
}

// Relation returns the relation of the model with the given edge name.
func (g *Graph) Relation(m *schema.Model, name string) (*Relation, bool) {
	for _, r := range g.relations[m] {
		if r.Name == name {
			return r, true
		}
	}
	return nil, false
}

// Names returns the name resolver of the graph.
func (g *Graph) Names() NameResolver {
	return g.names
}

// contains reports whether the model, by identity, is part of the graph.
func (g *Graph) contains(m *schema.Model) bool {
	return m != nil && g.nodes[m.Name] == m
}
