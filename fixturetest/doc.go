// Package fixturetest wires a fixture.Client into Go tests.
//
// The database is configured with a fixture.yml file, a .env file or
// FIXTURE_* environment variables, and defaults to an in-memory SQLite
// database:
//
//	FIXTURE_DIALECT=postgres
//	FIXTURE_DSN=postgres://localhost:5432/app_test?sslmode=disable
//	FIXTURE_LOG_LEVEL=debug
//
// A typical test:
//
//	func TestProfile(t *testing.T) {
//		drv, cfg := fixturetest.Open(t)
//		client := fixturetest.New(t, drv, cfg, graph)
//		profile, err := client.Create(ctx, Profile, nil)
//		...
//	}
//
// At debug level the statements of the client are logged as well. Wrapping
// drv in a sql.StatsDriver before New lets a test count them.
package fixturetest
