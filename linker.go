package fixture

import (
	"context"
	"fmt"

	"github.com/syssam/fixture/dialect/sql"
)

// link writes the rows associating inst with the targets of a deferred
// relation and attaches the targets to inst. Many-to-many relations get one
// join table row per target; referenced and to-many relations get their
// foreign key updated to point at inst. Rows are not deduplicated.
func (r *resolver) link(ctx context.Context, inst *Instance, l link) error {
	rel := l.rel
	local, ok := inst.Get(rel.LocalField)
	if !ok {
		return NewConfigError(rel.Owner.Name, fmt.Errorf("relation %q: stored row has no value for %q", rel.Name, rel.LocalField))
	}
	b := sql.Dialect(r.store.Dialect())
	for _, t := range l.targets {
		var (
			query string
			args  []any
		)
		switch rel.Rel {
		case ManyToMany:
			remote, ok := t.Get(rel.RemoteField)
			if !ok {
				return NewInputError(rel.Owner.Name, rel.Name, fmt.Errorf("%s has no value for %q", t.Model.Name, rel.RemoteField))
			}
			query, args = b.Insert(rel.Through.Table).
				Set(rel.Through.LocalColumn, local).
				Set(rel.Through.RemoteColumn, remote).
				Query()
		case ReferencedLink, ToMany:
			id := t.ID()
			if id == nil {
				return NewInputError(rel.Owner.Name, rel.Name, fmt.Errorf("%s instance without %q", t.Model.Name, t.Model.Key()))
			}
			query, args = b.Update(rel.Target.TableName()).
				Set(rel.RemoteField, local).
				Where(rel.Target.Key(), id).
				Query()
		default:
			return fmt.Errorf("fixture: unexpected deferred relation %s", rel.Rel)
		}
		if err := r.store.Exec(ctx, query, args...); err != nil {
			return err
		}
		if rel.Rel != ManyToMany {
			t.Values[rel.RemoteField] = local
		}
		r.log.Debug().Stringer("fixture", inst).Str("relation", rel.Name).Stringer("target", t).Msg("link created")
	}
	inst.Edges[rel.Name] = l.targets
	return nil
}
