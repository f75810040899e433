package edge_test

import (
	"testing"

	"github.com/syssam/fixture/schema/edge"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestBuilders tests the edge builders with various configurations.
func TestBuilders(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		build    func() *edge.Descriptor
		validate func(t *testing.T, desc *edge.Descriptor)
	}{
		{
			name: "belongs_to",
			build: func() *edge.Descriptor {
				return edge.BelongsTo("account", "Account").Join("profile.account_id", "account.id").Descriptor()
			},
			validate: func(t *testing.T, desc *edge.Descriptor) {
				assert.Equal(t, "account", desc.Name)
				assert.Equal(t, "Account", desc.Type)
				assert.Equal(t, edge.RelBelongsTo, desc.Relation)
				assert.Equal(t, "profile.account_id", desc.From)
				assert.Equal(t, "account.id", desc.To)
				assert.False(t, desc.Optional)
				assert.Nil(t, desc.Through)
			},
		},
		{
			name: "optional_belongs_to",
			build: func() *edge.Descriptor {
				return edge.BelongsTo("parent", "Category").Join("parent_id", "id").Optional().Descriptor()
			},
			validate: func(t *testing.T, desc *edge.Descriptor) {
				assert.True(t, desc.Optional)
			},
		},
		{
			name: "has_one",
			build: func() *edge.Descriptor {
				return edge.HasOne("profile", "Profile").Join("id", "account_id").Descriptor()
			},
			validate: func(t *testing.T, desc *edge.Descriptor) {
				assert.Equal(t, edge.RelHasOne, desc.Relation)
			},
		},
		{
			name: "has_many_with_comment",
			build: func() *edge.Descriptor {
				return edge.HasMany("blogs", "Blog").Join("id", "account_id").Comment("account blogs").Descriptor()
			},
			validate: func(t *testing.T, desc *edge.Descriptor) {
				assert.Equal(t, edge.RelHasMany, desc.Relation)
				assert.Equal(t, "account blogs", desc.Comment)
			},
		},
		{
			name: "many_to_many",
			build: func() *edge.Descriptor {
				return edge.M2M("roles", "Role").
					Join("account.id", "role.id").
					Through("account_role", "account_id", "role_id").
					Descriptor()
			},
			validate: func(t *testing.T, desc *edge.Descriptor) {
				assert.Equal(t, edge.RelManyToMany, desc.Relation)
				require.NotNil(t, desc.Through)
				assert.Equal(t, "account_role", desc.Through.Table)
				assert.Equal(t, "account_id", desc.Through.From)
				assert.Equal(t, "role_id", desc.Through.To)
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			desc := tt.build()
			require.NoError(t, desc.Validate())
			tt.validate(t, desc)
		})
	}
}

func TestDescriptorValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		desc    *edge.Descriptor
		wantErr string
	}{
		{"missing_name", &edge.Descriptor{Type: "Role"}, "missing name"},
		{"missing_type", &edge.Descriptor{Name: "roles"}, "missing target type"},
		{"missing_join", edge.HasMany("blogs", "Blog").Descriptor(), "missing join columns"},
		{"m2m_without_through", edge.M2M("roles", "Role").Join("id", "id").Descriptor(), "without through table"},
		{
			"through_on_non_m2m",
			edge.HasMany("blogs", "Blog").Join("id", "account_id").Through("t", "a", "b").Descriptor(),
			"allowed only for many-to-many",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.desc.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
