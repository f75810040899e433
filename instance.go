package fixture

import (
	"fmt"

	"github.com/syssam/fixture/schema"
)

// Overrides maps field names to values used verbatim, and edge names to the
// instances satisfying the edge: *Instance for owned and referenced links,
// []*Instance for to-many and many-to-many relations.
type Overrides map[string]any

// Instance is a persisted fixture row. Values holds the row as read back from
// storage, Edges the instances used to satisfy each relation.
type Instance struct {
	Model  *schema.Model
	Values map[string]any
	Edges  map[string][]*Instance

	names NameResolver
}

// NewInstance wraps an existing row of the model, for example to pass a row
// that was not created by a Client as an override.
func NewInstance(m *schema.Model, values map[string]any) *Instance {
	return &Instance{
		Model:  m,
		Values: values,
		Edges:  make(map[string][]*Instance),
		names:  DefaultNames,
	}
}

// Get returns the value of the given field. Names that are not keys of the
// row are resolved with the naming fallback of the instance.
func (i *Instance) Get(name string) (any, bool) {
	if v, ok := i.Values[name]; ok {
		return v, true
	}
	names := i.names
	if names == nil {
		names = DefaultNames
	}
	key, ok := names(name, func(k string) bool {
		_, ok := i.Values[k]
		return ok
	})
	if !ok {
		return nil, false
	}
	return i.Values[key], true
}

// ID returns the primary key of the instance.
func (i *Instance) ID() any {
	v, _ := i.Get(i.Model.Key())
	return v
}

// Edge returns the instances attached under the given edge name.
func (i *Instance) Edge(name string) ([]*Instance, error) {
	if es, ok := i.Edges[name]; ok {
		return es, nil
	}
	return nil, NewNotLoadedError(name)
}

// EdgeOne returns the single instance attached under the given edge name.
func (i *Instance) EdgeOne(name string) (*Instance, error) {
	es, err := i.Edge(name)
	if err != nil {
		return nil, err
	}
	if len(es) != 1 {
		return nil, fmt.Errorf("fixture: edge %q holds %d instances", name, len(es))
	}
	return es[0], nil
}

// String implements the fmt.Stringer interface.
func (i *Instance) String() string {
	return fmt.Sprintf("%s(%v)", i.Model.Name, i.ID())
}
