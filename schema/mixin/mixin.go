// Package mixin provides reusable field sets for fixture models.
//
//	var Post = schema.New("Post").
//		AddMixins(mixin.ID{}, mixin.Time{}).
//		AddFields(field.String("title"))
package mixin

import (
	"time"

	"github.com/syssam/fixture/schema"
	"github.com/syssam/fixture/schema/field"
)

// Schema is the default implementation of schema.Mixin. It is meant to be
// embedded by mixins that only override some of its methods.
type Schema struct{}

// Fields of the mixin.
func (Schema) Fields() []schema.Field { return nil }

// Edges of the mixin.
func (Schema) Edges() []schema.Edge { return nil }

// now is replaceable in tests.
var now = func() any { return time.Now().UTC() }

// ID adds an auto-increment "id" key filled in by the database.
type ID struct {
	Schema
}

// Fields returns the id field.
func (ID) Fields() []schema.Field {
	return []schema.Field{
		field.Int("id").Generated(),
	}
}

// CreateTime adds a created_at field set to the current time.
type CreateTime struct {
	Schema
}

// Fields returns the created_at field.
func (CreateTime) Fields() []schema.Field {
	return []schema.Field{
		field.Time("created_at").
			DefaultFunc(now).
			Comment("Timestamp when the row was created"),
	}
}

// UpdateTime adds an updated_at field set to the current time.
type UpdateTime struct {
	Schema
}

// Fields returns the updated_at field.
func (UpdateTime) Fields() []schema.Field {
	return []schema.Field{
		field.Time("updated_at").
			DefaultFunc(now).
			Comment("Timestamp when the row was last updated"),
	}
}

// Time composes CreateTime and UpdateTime.
type Time struct {
	Schema
}

// Fields returns the created_at and updated_at fields.
func (Time) Fields() []schema.Field {
	return append(CreateTime{}.Fields(), UpdateTime{}.Fields()...)
}

// SoftDelete adds a nullable deleted_at field. Fixtures are created live,
// so the field is left to the database.
type SoftDelete struct {
	Schema
}

// Fields returns the deleted_at field.
func (SoftDelete) Fields() []schema.Field {
	return []schema.Field{
		field.Time("deleted_at").
			Optional().
			Nillable().
			Comment("Timestamp when the row was soft deleted"),
	}
}

// TimeSoftDelete composes Time and SoftDelete.
type TimeSoftDelete struct {
	Schema
}

// Fields returns the timestamp and soft delete fields.
func (TimeSoftDelete) Fields() []schema.Field {
	return append(Time{}.Fields(), SoftDelete{}.Fields()...)
}

// Edges wraps a list of edges into a mixin, for relations shared by
// several models, like an owner on every tenant-scoped table.
//
//	mixin.Edges(edge.BelongsTo("tenant", "Tenant").Join("tenant_id", "tenant.id"))
func Edges(edges ...schema.Edge) schema.Mixin {
	return edgeSet(edges)
}

type edgeSet []schema.Edge

func (edgeSet) Fields() []schema.Field { return nil }
func (e edgeSet) Edges() []schema.Edge { return e }

var (
	_ schema.Mixin = Schema{}
	_ schema.Mixin = ID{}
	_ schema.Mixin = Time{}
	_ schema.Mixin = TimeSoftDelete{}
)
