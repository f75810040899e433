package schema_test

import (
	"testing"

	"github.com/syssam/fixture/schema"
	"github.com/syssam/fixture/schema/edge"
	"github.com/syssam/fixture/schema/field"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModelDefaults(t *testing.T) {
	t.Parallel()

	m := schema.New("AccountRole")
	assert.Equal(t, "account_role", m.TableName())
	assert.Equal(t, schema.DefaultKey, m.Key())
	assert.False(t, m.HasSchema())

	m.SetTable("account_roles").SetKey("uid")
	assert.Equal(t, "account_roles", m.TableName())
	assert.Equal(t, "uid", m.Key())
}

func TestModelLookup(t *testing.T) {
	t.Parallel()

	m := schema.New("Profile").
		AddFields(
			field.Int("id").Generated(),
			field.Int("account_id"),
		).
		AddEdges(
			edge.BelongsTo("account", "Account").Join("profile.account_id", "account.id"),
		)
	require.NoError(t, m.Validate())
	assert.True(t, m.HasSchema())
	assert.True(t, m.HasField("account_id"))
	assert.False(t, m.HasField("accountId"))

	f, ok := m.Field("id")
	require.True(t, ok)
	assert.True(t, f.Generated)

	e, ok := m.Edge("account")
	require.True(t, ok)
	assert.Equal(t, edge.RelBelongsTo, e.Relation)
	_, ok = m.Edge("roles")
	assert.False(t, ok)
}

func TestModelValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		model   *schema.Model
		wantErr string
	}{
		{
			name:    "missing_name",
			model:   schema.New(""),
			wantErr: "model without name",
		},
		{
			name:    "duplicate_field",
			model:   schema.New("Role").AddFields(field.Int("id"), field.String("id")),
			wantErr: `duplicate field "id"`,
		},
		{
			name:    "invalid_field",
			model:   schema.New("Role").AddFields(field.Enum("state")),
			wantErr: "enum without values",
		},
		{
			name: "edge_collides_with_field",
			model: schema.New("Profile").
				AddFields(field.Int("account")).
				AddEdges(edge.BelongsTo("account", "Account").Join("account", "id")),
			wantErr: "collides",
		},
		{
			name: "invalid_edge",
			model: schema.New("Account").
				AddFields(field.Int("id")).
				AddEdges(edge.M2M("roles", "Role").Join("id", "id")),
			wantErr: "without through table",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.model.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
