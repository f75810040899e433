package fixture_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/fixture"
	"github.com/syssam/fixture/schema"
	"github.com/syssam/fixture/schema/edge"
	"github.com/syssam/fixture/schema/field"
)

func TestNewGraph(t *testing.T) {
	g := testGraph(t)
	assert.Equal(t, []*schema.Model{Account, Profile, Blog, Role}, g.Models())
	m, ok := g.Model("Profile")
	require.True(t, ok)
	assert.Same(t, Profile, m)
	_, ok = g.Model("Unknown")
	assert.False(t, ok)

	rels := g.Relations(Account)
	require.Len(t, rels, 3)
	tests := []struct {
		rel    *fixture.Relation
		name   string
		kind   fixture.Rel
		target *schema.Model
		local  string
		remote string
	}{
		{rels[0], "profile", fixture.ReferencedLink, Profile, "id", "account_id"},
		{rels[1], "blogs", fixture.ToMany, Blog, "id", "account_id"},
		{rels[2], "roles", fixture.ManyToMany, Role, "id", "id"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.name, tt.rel.Name)
			assert.Equal(t, tt.kind, tt.rel.Rel)
			assert.Same(t, Account, tt.rel.Owner)
			assert.Same(t, tt.target, tt.rel.Target)
			assert.Equal(t, tt.local, tt.rel.LocalField)
			assert.Equal(t, tt.remote, tt.rel.RemoteField)
			assert.False(t, tt.rel.OwnFK())
		})
	}
	assert.Equal(t, &fixture.JoinTable{Table: "account_role", LocalColumn: "account_id", RemoteColumn: "role_id"}, rels[2].Through)

	owned, ok := g.Relation(Profile, "account")
	require.True(t, ok)
	assert.Equal(t, fixture.OwnedLink, owned.Rel)
	assert.True(t, owned.OwnFK())
	assert.Equal(t, "account_id", owned.LocalField)
	assert.Equal(t, "id", owned.RemoteField)
	assert.Nil(t, owned.Through)

	_, ok = g.Relation(Profile, "missing")
	assert.False(t, ok)
	assert.Empty(t, g.Relations(Role))
}

func TestNewGraphNamingFallback(t *testing.T) {
	user := schema.New("User").AddFields(field.Int("userId"), field.String("name")).SetKey("userId")
	post := schema.New("Post").
		AddFields(field.Int("id").Generated(), field.Int("authorId")).
		AddEdges(edge.BelongsTo("author", "User").Join("post.author_id", "user.user_id"))

	g, err := fixture.NewGraph(user, post)
	require.NoError(t, err)
	rel, ok := g.Relation(post, "author")
	require.True(t, ok)
	assert.Equal(t, "authorId", rel.LocalField)
	assert.Equal(t, "userId", rel.RemoteField)
}

func TestNewGraphWithResolver(t *testing.T) {
	// Columns are declared with a "fk_" prefix the schema does not use.
	names := func(name string, has func(string) bool) (string, bool) {
		name = strings.TrimPrefix(name, "fk_")
		return name, has(name)
	}
	blog := schema.New("Blog").
		AddFields(field.Int("id"), field.Int("owner_ref")).
		AddEdges(edge.BelongsTo("owner", "Owner").Join("fk_owner_ref", "id"))
	owner := schema.New("Owner").AddFields(field.Int("id"))

	_, err := fixture.NewGraph(blog, owner)
	require.Error(t, err)

	g, err := fixture.NewGraphWithResolver(names, blog, owner)
	require.NoError(t, err)
	rel, ok := g.Relation(blog, "owner")
	require.True(t, ok)
	assert.Equal(t, "owner_ref", rel.LocalField)
	assert.NotNil(t, g.Names())
}

func TestNewGraphThroughTableFromColumn(t *testing.T) {
	group := schema.New("Group").AddFields(field.Int("id"))
	user := schema.New("User").
		AddFields(field.Int("id")).
		AddEdges(edge.M2M("groups", "Group").Join("user.id", "group.id").Through("", "user_groups.user_id", "user_groups.group_id"))

	g, err := fixture.NewGraph(user, group)
	require.NoError(t, err)
	rel, ok := g.Relation(user, "groups")
	require.True(t, ok)
	assert.Equal(t, &fixture.JoinTable{Table: "user_groups", LocalColumn: "user_id", RemoteColumn: "group_id"}, rel.Through)
}

func TestNewGraphErrors(t *testing.T) {
	role := schema.New("Role").AddFields(field.Int("id"))
	tests := []struct {
		name    string
		models  []*schema.Model
		wantErr string
	}{
		{
			name: "unknown_target",
			models: []*schema.Model{
				schema.New("Profile").AddFields(field.Int("account_id")).
					AddEdges(edge.BelongsTo("account", "Account").Join("account_id", "id")),
			},
			wantErr: `unknown target model "Account"`,
		},
		{
			name: "unknown_relation",
			models: []*schema.Model{
				role,
				{Name: "Acl", Fields: role.Fields, Edges: []*edge.Descriptor{{Name: "role", Type: "Role", Relation: "polymorphic", From: "id", To: "id"}}},
			},
			wantErr: `unknown relation "polymorphic"`,
		},
		{
			name: "unresolved_local_column",
			models: []*schema.Model{
				role,
				schema.New("Member").AddFields(field.Int("id")).
					AddEdges(edge.BelongsTo("role", "Role").Join("member.role_id", "role.id")),
			},
			wantErr: `join column "member.role_id" is not a field of Member`,
		},
		{
			name: "unresolved_remote_column",
			models: []*schema.Model{
				role,
				schema.New("Member").AddFields(field.Int("role_id")).
					AddEdges(edge.BelongsTo("role", "Role").Join("role_id", "uuid")),
			},
			wantErr: `join column "uuid" is not a field of Role`,
		},
		{
			name: "incomplete_through",
			models: []*schema.Model{
				role,
				schema.New("Member").AddFields(field.Int("id")).
					AddEdges(edge.M2M("roles", "Role").Join("id", "id").Through("", "member_id", "role_id")),
			},
			wantErr: "incomplete through table",
		},
		{
			name:    "duplicate_model",
			models:  []*schema.Model{role, schema.New("Role").AddFields(field.Int("id"))},
			wantErr: "duplicate model name",
		},
		{
			name:    "invalid_model",
			models:  []*schema.Model{schema.New("Bad").AddFields(field.Enum("state"))},
			wantErr: "enum without values",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := fixture.NewGraph(tt.models...)
			require.Error(t, err)
			assert.True(t, fixture.IsConfigError(err))
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestRelString(t *testing.T) {
	tests := []struct {
		rel  fixture.Rel
		want string
	}{
		{fixture.Unk, "Unknown"},
		{fixture.OwnedLink, "OwnedLink"},
		{fixture.ReferencedLink, "ReferencedLink"},
		{fixture.ToMany, "ToMany"},
		{fixture.ManyToMany, "ManyToMany"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.rel.String())
	}
	assert.True(t, fixture.ToMany.Many())
	assert.True(t, fixture.ManyToMany.Many())
	assert.False(t, fixture.OwnedLink.Many())
}
