// Package sql implements the persistence side of the fixture generator on top
// of database/sql.
//
// # Drivers
//
// Driver wraps a *sql.DB and implements dialect.Driver. StatsDriver and
// DebugDriver wrap a Driver to count or log statements:
//
//	drv, err := sql.Open(dialect.Postgres, "postgres://...")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	stats := sql.NewStatsDriver(drv)
//
// # Statements
//
// Builder renders the few statements fixtures need, with dialect specific
// quoting and placeholders:
//
//	b := sql.Dialect(dialect.Postgres)
//	b.Insert("account").Set("username", "a8m").Returning("*").Query()
//	// INSERT INTO "account" ("username") VALUES ($1) RETURNING *
//
//	b = sql.Dialect(dialect.MySQL)
//	b.Select().From("account").Where("id", 1).Query()
//	// SELECT * FROM `account` WHERE `id` = ?
//
// # Store
//
// Store is the persistence collaborator of the fixture client. InsertAndFetch
// uses RETURNING on Postgres and SQLite, and an INSERT followed by a SELECT on
// MySQL:
//
//	store := sql.OpenStore(drv)
//	row, err := store.InsertAndFetch(ctx, "account", "id", map[string]any{"username": "a8m"})
//
// # Constraint errors
//
// IsConstraintError and its narrower variants classify driver errors from
// lib/pq, go-sql-driver/mysql and SQLite.
package sql
