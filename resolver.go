package fixture

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/syssam/fixture/schema"
)

// resolver holds the state of one top-level Create call.
type resolver struct {
	*Client
	cfg createConfig
	// path is the chain of models being created, top-level first.
	path []*schema.Model
}

// link is a relation whose rows can only be written once the local row exists.
type link struct {
	rel     *Relation
	targets []*Instance
}

func (r *resolver) create(ctx context.Context, m *schema.Model, overrides Overrides) (*Instance, error) {
	if m == nil {
		return nil, NewConfigError("", ErrUnknownModel)
	}
	if !r.graph.contains(m) {
		return nil, NewConfigError(m.Name, ErrUnknownModel)
	}
	if !m.HasSchema() {
		return nil, NewConfigError(m.Name, ErrMissingSchema)
	}
	r.path = append(r.path, m)
	defer func() { r.path = r.path[:len(r.path)-1] }()

	derived := make(map[string]any)
	edges := make(map[string][]*Instance)
	var links []link
	if r.cfg.followRelations {
		for _, rel := range r.graph.Relations(m) {
			if v, ok := overrides[rel.Name]; ok && v != nil {
				targets, err := r.override(rel, v)
				if err != nil {
					return nil, err
				}
				if rel.Rel != OwnedLink {
					links = append(links, link{rel: rel, targets: targets})
					continue
				}
				remote, ok := targets[0].Get(rel.RemoteField)
				if !ok {
					return nil, NewInputError(m.Name, rel.Name, fmt.Errorf("instance has no value for %q", rel.RemoteField))
				}
				derived[rel.LocalField] = remote
				edges[rel.Name] = targets
				continue
			}
			// Many-to-many relations without override are skipped, and the
			// target holds the key of referenced and to-many relations.
			if rel.Rel != OwnedLink {
				continue
			}
			// The caller supplied the foreign key itself.
			if _, ok := overrides[rel.LocalField]; ok {
				continue
			}
			if slices.Contains(r.path, rel.Target) {
				if rel.Optional {
					// NULL, written over whatever the faker put in the column.
					derived[rel.LocalField] = nil
					r.log.Debug().Str("model", m.Name).Str("relation", rel.Name).Msg("optional relation cycle left unset")
					continue
				}
				return nil, NewCycleError(append(r.pathNames(), rel.Target.Name)...)
			}
			dep, err := r.create(ctx, rel.Target, nil)
			if err != nil {
				return nil, err
			}
			remote, ok := dep.Get(rel.RemoteField)
			if !ok {
				return nil, NewConfigError(m.Name, fmt.Errorf("relation %q: created %s has no value for %q", rel.Name, rel.Target.Name, rel.RemoteField))
			}
			derived[rel.LocalField] = remote
			edges[rel.Name] = []*Instance{dep}
			r.log.Debug().Str("model", m.Name).Str("relation", rel.Name).Stringer("dependency", dep).Msg("dependency created")
		}
	}

	values, err := r.faker.Fake(m)
	if err != nil {
		return nil, err
	}
	if values == nil {
		values = make(map[string]any, len(derived)+len(overrides))
	}
	for k, v := range derived {
		values[k] = v
	}
	for k, v := range overrides {
		if _, ok := m.Edge(k); ok {
			continue
		}
		values[k] = v
	}
	row, err := r.store.InsertAndFetch(ctx, m.TableName(), m.Key(), values)
	if err != nil {
		return nil, err
	}
	inst := &Instance{Model: m, Values: row, Edges: edges, names: r.graph.names}
	r.registry.Register(m)
	r.log.Debug().Stringer("fixture", inst).Msg("fixture created")
	for _, l := range links {
		if err := r.link(ctx, inst, l); err != nil {
			return nil, err
		}
	}
	return inst, nil
}

var (
	errNotOne  = errors.New("expected an *Instance")
	errNotMany = errors.New("expected a non-empty []*Instance")
)

// override validates the override given for a relation.
func (r *resolver) override(rel *Relation, v any) ([]*Instance, error) {
	var targets []*Instance
	switch v := v.(type) {
	case *Instance:
		if !rel.Rel.Many() {
			targets = []*Instance{v}
		}
	case []*Instance:
		if len(v) > 0 && (rel.Rel.Many() || len(v) == 1) {
			targets = v
		}
	}
	if len(targets) == 0 {
		err := errNotOne
		if rel.Rel.Many() {
			err = errNotMany
		}
		return nil, NewInputError(rel.Owner.Name, rel.Name, fmt.Errorf("%w, got %T", err, v))
	}
	for i, t := range targets {
		if t == nil {
			return nil, NewInputError(rel.Owner.Name, rel.Name, fmt.Errorf("nil instance at index %d", i))
		}
	}
	return targets, nil
}

func (r *resolver) pathNames() []string {
	names := make([]string, len(r.path))
	for i, m := range r.path {
		names[i] = m.Name
	}
	return names
}
