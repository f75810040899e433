package fixture_test

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/syssam/fixture"
	"github.com/syssam/fixture/dialect/sql"
	"github.com/syssam/fixture/schema"
	"github.com/syssam/fixture/schema/edge"
	"github.com/syssam/fixture/schema/field"
)

var (
	Account = schema.New("Account").
		AddFields(
			field.Int("id").Generated(),
			field.String("email").Format(field.FormatEmail),
			field.String("username").Format(field.FormatUsername).MaxLen(32),
		).
		AddEdges(
			edge.HasOne("profile", "Profile").Join("account.id", "profile.account_id"),
			edge.HasMany("blogs", "Blog").Join("account.id", "blog.account_id"),
			edge.M2M("roles", "Role").
				Join("account.id", "role.id").
				Through("account_role", "account_role.account_id", "account_role.role_id"),
		)

	Profile = schema.New("Profile").
		AddFields(
			field.Int("id").Generated(),
			field.String("address"),
			field.Int("account_id"),
		).
		AddEdges(
			edge.BelongsTo("account", "Account").Join("profile.account_id", "account.id"),
		)

	Blog = schema.New("Blog").
		AddFields(
			field.Int("id").Generated(),
			field.String("title"),
			field.Int("account_id"),
		).
		AddEdges(
			edge.BelongsTo("account", "Account").Join("blog.account_id", "account.id"),
		)

	Role = schema.New("Role").
		AddFields(
			field.Int("id").Generated(),
			field.String("name").Format(field.FormatWord),
		)
)

// testFaker returns fixed values, including a foreign key that does not
// exist, like a schema-driven faker would.
func testFaker() fixture.Faker {
	return fixture.FakerFunc(func(m *schema.Model) (map[string]any, error) {
		switch m.Name {
		case "Account":
			return map[string]any{"email": "a8m@example.com", "username": "a8m"}, nil
		case "Profile":
			return map[string]any{"address": "1 Infinite Loop", "account_id": 999}, nil
		case "Blog":
			return map[string]any{"title": "hello", "account_id": 999}, nil
		case "Role":
			return map[string]any{"name": "admin"}, nil
		}
		return map[string]any{"name": m.Name}, nil
	})
}

func testGraph(t *testing.T, models ...*schema.Model) *fixture.Graph {
	t.Helper()
	if len(models) == 0 {
		models = []*schema.Model{Account, Profile, Blog, Role}
	}
	g, err := fixture.NewGraph(models...)
	require.NoError(t, err)
	return g
}

// newMockClient returns a client over a sqlmock database of the given dialect.
func newMockClient(t *testing.T, name string, graph *fixture.Graph, opts ...fixture.Option) (*fixture.Client, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	store := sql.OpenStore(sql.OpenDB(name, db))
	opts = append([]fixture.Option{fixture.WithFaker(testFaker())}, opts...)
	return fixture.New(store, graph, opts...), mock
}

func expectAccount(mock sqlmock.Sqlmock, id int64) {
	mock.ExpectQuery(`INSERT INTO "account" ("email", "username") VALUES (?, ?) RETURNING *`).
		WithArgs("a8m@example.com", "a8m").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "username"}).AddRow(id, "a8m@example.com", "a8m"))
}

func expectProfile(mock sqlmock.Sqlmock, id int64, accountID any) {
	mock.ExpectQuery(`INSERT INTO "profile" ("account_id", "address") VALUES (?, ?) RETURNING *`).
		WithArgs(accountID, "1 Infinite Loop").
		WillReturnRows(sqlmock.NewRows([]string{"id", "address", "account_id"}).AddRow(id, "1 Infinite Loop", accountID))
}
