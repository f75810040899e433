// Package fixture creates relation-aware test fixtures.
//
// A Client synthesizes a row for a model described by a schema.Model, fakes
// its scalar fields, creates the rows its foreign keys point to, inserts it
// and links the instances given for its to-many and many-to-many edges.
// Every model that received a row is recorded in a Registry, and Clean
// truncates their tables between tests.
//
//	graph, err := fixture.NewGraph(Account, Profile, Role)
//	if err != nil {
//		return err
//	}
//	client := fixture.New(sql.OpenStore(drv), graph)
//	defer client.Clean(ctx)
//
//	// Creates an Account first, then the Profile pointing at it.
//	profile, err := client.Create(ctx, Profile, nil)
//
//	// Links the account to two existing roles through the join table.
//	account, err := client.Create(ctx, Account, fixture.Overrides{
//		"roles": []*fixture.Instance{admin, editor},
//	})
package fixture
