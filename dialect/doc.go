// Package dialect provides the database dialect abstraction used by the
// fixture generator.
//
// Fixture creation and cleanup are dialect sensitive: placeholders, identifier
// quoting, RETURNING support and the way tables are truncated all differ between
// engines. This package names the engines and defines the minimal interfaces
// the rest of the module talks to.
//
// # Supported Dialects
//
//	dialect.Postgres = "postgres"
//	dialect.MySQL    = "mysql"
//	dialect.SQLite   = "sqlite"
//
// # Driver Interface
//
//	type Driver interface {
//	    Exec(ctx context.Context, query string, args, v any) error
//	    Query(ctx context.Context, query string, args, v any) error
//	    Tx(ctx context.Context) (Tx, error)
//	    Close() error
//	    Dialect() string
//	}
//
// A Tx is accepted wherever an ExecQuerier is, which lets callers run a whole
// fixture tree inside one transaction:
//
//	tx, err := drv.Tx(ctx)
//	if err != nil {
//	    return err
//	}
//	client := fixture.New(sql.NewStore(tx, drv.Dialect()), graph)
//
// # Sub-packages
//
//   - dialect/sql: database/sql driver, statement builder and fixture Store
package dialect
