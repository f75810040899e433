package edge

import "fmt"

// Relation is the relation class declared on an edge.
type Relation string

// Declared relation classes.
const (
	RelBelongsTo  Relation = "belongs_to"
	RelHasOne     Relation = "has_one"
	RelHasMany    Relation = "has_many"
	RelManyToMany Relation = "many_to_many"
)

// A Descriptor for edge configuration. Join columns are written in storage
// naming and may be qualified with their table ("profile.account_id").
type Descriptor struct {
	Name     string      `yaml:"name"`
	Type     string      `yaml:"type"` // target model name
	Relation Relation    `yaml:"relation"`
	From     string      `yaml:"from"` // column on the declaring model
	To       string      `yaml:"to"`   // column on the target model
	Through  *ThroughKey `yaml:"through"`
	Optional bool        `yaml:"optional"`
	Comment  string      `yaml:"comment"`
}

// ThroughKey describes the join table of a many-to-many edge.
type ThroughKey struct {
	Table string `yaml:"table"`
	From  string `yaml:"from"` // column referencing the declaring model
	To    string `yaml:"to"`   // column referencing the target model
}

// Builder is the builder for edge fields.
type Builder struct {
	desc *Descriptor
}

func newBuilder(name, typ string, rel Relation) *Builder {
	return &Builder{desc: &Descriptor{Name: name, Type: typ, Relation: rel}}
}

// BelongsTo declares that the model holds a foreign key to the target.
//
//	edge.BelongsTo("account", "Account").Join("profile.account_id", "account.id")
func BelongsTo(name, typ string) *Builder { return newBuilder(name, typ, RelBelongsTo) }

// HasOne declares that the target holds a unique foreign key to the model.
func HasOne(name, typ string) *Builder { return newBuilder(name, typ, RelHasOne) }

// HasMany declares that many target rows hold a foreign key to the model.
func HasMany(name, typ string) *Builder { return newBuilder(name, typ, RelHasMany) }

// M2M declares a many-to-many association through a join table.
//
//	edge.M2M("roles", "Role").
//		Join("account.id", "role.id").
//		Through("account_role", "account_id", "role_id")
func M2M(name, typ string) *Builder { return newBuilder(name, typ, RelManyToMany) }

// Join sets the join columns: from is on the declaring model, to on the target.
func (b *Builder) Join(from, to string) *Builder {
	b.desc.From, b.desc.To = from, to
	return b
}

// Through sets the join table of a many-to-many edge and its two columns.
func (b *Builder) Through(table, from, to string) *Builder {
	b.desc.Through = &ThroughKey{Table: table, From: from, To: to}
	return b
}

// Optional indicates that the foreign key held by the declaring model is nullable.
func (b *Builder) Optional() *Builder {
	b.desc.Optional = true
	return b
}

// Comment used to put annotations on the schema.
func (b *Builder) Comment(c string) *Builder {
	b.desc.Comment = c
	return b
}

// Descriptor implements the schema.Edge interface by returning its descriptor.
func (b *Builder) Descriptor() *Descriptor {
	return b.desc
}

// Validate reports a declaration that is structurally incomplete.
func (d *Descriptor) Validate() error {
	switch {
	case d.Name == "":
		return fmt.Errorf("edge: missing name")
	case d.Type == "":
		return fmt.Errorf("edge %q: missing target type", d.Name)
	case d.From == "" || d.To == "":
		return fmt.Errorf("edge %q: missing join columns", d.Name)
	case d.Relation == RelManyToMany && d.Through == nil:
		return fmt.Errorf("edge %q: many-to-many edge without through table", d.Name)
	case d.Relation != RelManyToMany && d.Through != nil:
		return fmt.Errorf("edge %q: through table is allowed only for many-to-many edges (got %s)", d.Name, d.Relation)
	}
	return nil
}
