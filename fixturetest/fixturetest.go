package fixturetest

import (
	"context"
	"fmt"
	"testing"

	// Drivers of the supported dialects.
	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/rs/zerolog"

	"github.com/syssam/fixture"
	"github.com/syssam/fixture/dialect"
	"github.com/syssam/fixture/dialect/sql"
	"github.com/syssam/fixture/schema"
)

// OpenDriver opens the database of the configuration.
func OpenDriver(cfg *Config) (*sql.Driver, error) {
	drv, err := sql.Open(cfg.Dialect, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("fixturetest: open %s: %w", cfg.Dialect, err)
	}
	if cfg.Dialect == dialect.SQLite {
		// Every connection to an in-memory database is a new database.
		drv.DB().SetMaxOpenConns(1)
	}
	if err := drv.DB().PingContext(context.Background()); err != nil {
		drv.Close()
		return nil, fmt.Errorf("fixturetest: ping %s: %w", cfg.Dialect, err)
	}
	return drv, nil
}

// LoadGraph builds a graph from the models file of the configuration, if any,
// followed by the given models.
func LoadGraph(cfg *Config, models ...*schema.Model) (*fixture.Graph, error) {
	if cfg.Models != "" {
		loaded, err := schema.LoadFile(cfg.Models)
		if err != nil {
			return nil, err
		}
		models = append(loaded, models...)
	}
	return fixture.NewGraph(models...)
}

// Open loads the configuration and opens its database for the duration of
// the test. It fails the test on error.
func Open(tb testing.TB, opts ...LoaderOption) (*sql.Driver, *Config) {
	tb.Helper()
	cfg, err := LoadConfig(opts...)
	if err != nil {
		tb.Fatalf("fixturetest: %v", err)
	}
	drv, err := OpenDriver(cfg)
	if err != nil {
		tb.Fatalf("fixturetest: %v", err)
	}
	tb.Cleanup(func() { drv.Close() })
	return drv, cfg
}

// New returns a client over drv that logs to the test log and cleans the
// tables it touched when the test ends. At debug level every statement is
// logged too. drv is usually the driver returned by Open, possibly wrapped
// in a sql.StatsDriver.
func New(tb testing.TB, drv dialect.Driver, cfg *Config, graph *fixture.Graph, opts ...fixture.Option) *fixture.Client {
	tb.Helper()
	log := NewLogger(cfg.Log, testWriter{tb})
	opts = append([]fixture.Option{
		fixture.WithLogger(log),
		fixture.WithFaker(fixture.NewFaker(cfg.Seed)),
	}, opts...)
	client := fixture.New(sql.OpenStore(WithDebug(drv, log)), graph, opts...)
	tb.Cleanup(func() {
		if err := client.Clean(context.Background()); err != nil {
			tb.Errorf("fixturetest: clean: %v", err)
		}
	})
	return client
}

// WithDebug wraps drv with a sql.DebugDriver when log is enabled at debug
// level, and returns it unchanged otherwise.
func WithDebug(drv dialect.Driver, log zerolog.Logger) dialect.Driver {
	if log.GetLevel() > zerolog.DebugLevel {
		return drv
	}
	return sql.NewDebugDriver(drv, log.With().Str("component", "sql").Logger())
}

// Exec runs the statements in order, like DDL creating the test tables.
func Exec(tb testing.TB, drv dialect.ExecQuerier, stmts ...string) {
	tb.Helper()
	for _, stmt := range stmts {
		if err := drv.Exec(context.Background(), stmt, []any{}, nil); err != nil {
			tb.Fatalf("fixturetest: exec %q: %v", stmt, err)
		}
	}
}

// CountRows returns the number of rows in a table.
func CountRows(tb testing.TB, drv dialect.ExecQuerier, table string) int64 {
	tb.Helper()
	b := sql.Dialect(dialectOf(drv))
	rows := &sql.Rows{}
	if err := drv.Query(context.Background(), "SELECT COUNT(*) FROM "+b.Quote(table), []any{}, rows); err != nil {
		tb.Fatalf("fixturetest: count rows of %s: %v", table, err)
	}
	defer rows.Close()
	var n int64
	if !rows.Next() {
		tb.Fatalf("fixturetest: count rows of %s: no result", table)
	}
	if err := rows.Scan(&n); err != nil {
		tb.Fatalf("fixturetest: count rows of %s: %v", table, err)
	}
	return n
}

// AssertTableEmpty fails the test if the table is not empty.
func AssertTableEmpty(tb testing.TB, drv dialect.ExecQuerier, table string) {
	tb.Helper()
	if n := CountRows(tb, drv, table); n != 0 {
		tb.Errorf("fixturetest: expected table %s to be empty, got %d rows", table, n)
	}
}

func dialectOf(ex dialect.ExecQuerier) string {
	if d, ok := ex.(interface{ Dialect() string }); ok {
		return d.Dialect()
	}
	return dialect.Postgres
}
