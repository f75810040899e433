package fixture

import (
	"context"
	"errors"
	"fmt"

	"github.com/syssam/fixture/dialect"
	"github.com/syssam/fixture/dialect/sql"
	"github.com/syssam/fixture/schema"
)

// Truncator empties one table of a storage engine. It runs on the session
// pinned by Clean, so statements changing session state (foreign key checks)
// affect the statements that follow them.
type Truncator interface {
	Truncate(ctx context.Context, ex dialect.ExecQuerier, table string) error
}

// The TruncatorFunc type is an adapter to allow the use of ordinary functions
// as Truncator.
type TruncatorFunc func(context.Context, dialect.ExecQuerier, string) error

// Truncate calls f(ctx, ex, table).
func (f TruncatorFunc) Truncate(ctx context.Context, ex dialect.ExecQuerier, table string) error {
	return f(ctx, ex, table)
}

// defaultTruncators returns the truncators of the built-in dialects.
func defaultTruncators() map[string]Truncator {
	return map[string]Truncator{
		dialect.Postgres: TruncatorFunc(truncatePostgres),
		dialect.MySQL:    TruncatorFunc(truncateMySQL),
		dialect.SQLite:   TruncatorFunc(truncateSQLite),
	}
}

// truncatePostgres cascades to the tables referencing the truncated one.
func truncatePostgres(ctx context.Context, ex dialect.ExecQuerier, table string) error {
	query := fmt.Sprintf("TRUNCATE %s CASCADE", sql.Dialect(dialect.Postgres).Quote(table))
	return exec(ctx, ex, query)
}

// truncateMySQL suspends foreign key checks around the truncate.
func truncateMySQL(ctx context.Context, ex dialect.ExecQuerier, table string) error {
	if err := exec(ctx, ex, "SET FOREIGN_KEY_CHECKS = 0"); err != nil {
		return err
	}
	err := exec(ctx, ex, "TRUNCATE TABLE "+sql.Dialect(dialect.MySQL).Quote(table))
	return errors.Join(err, exec(ctx, ex, "SET FOREIGN_KEY_CHECKS = 1"))
}

// truncateSQLite has no TRUNCATE statement. Foreign key enforcement is turned
// off around an unqualified DELETE, which SQLite runs as a truncate.
func truncateSQLite(ctx context.Context, ex dialect.ExecQuerier, table string) error {
	if err := exec(ctx, ex, "PRAGMA foreign_keys = OFF"); err != nil {
		return err
	}
	err := exec(ctx, ex, "DELETE FROM "+sql.Dialect(dialect.SQLite).Quote(table))
	return errors.Join(err, exec(ctx, ex, "PRAGMA foreign_keys = ON"))
}

func exec(ctx context.Context, ex dialect.ExecQuerier, query string) error {
	return ex.Exec(ctx, query, []any{}, nil)
}

// Clean truncates the table of every registered model, in registration order,
// together with the join tables of its many-to-many relations, and removes
// each model from the registry once its tables are empty. On error the failed
// model and the ones after it stay registered. Clean waits for in-flight
// Create calls and blocks new ones until it returns.
func (c *Client) Clean(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	models := c.registry.Models()
	if len(models) == 0 {
		return nil
	}
	name := c.store.Dialect()
	tr, ok := c.truncators[name]
	if !ok {
		return NewUnsupportedDialectError(name)
	}
	sess, err := c.store.Session(ctx)
	if err != nil {
		return err
	}
	defer sess.Close()
	done := make(map[string]bool)
	for _, m := range models {
		for _, table := range c.tables(m) {
			if done[table] {
				continue
			}
			if err := tr.Truncate(ctx, sess, table); err != nil {
				return fmt.Errorf("fixture: truncate %s: %w", table, err)
			}
			done[table] = true
			c.log.Debug().Str("model", m.Name).Str("table", table).Msg("table truncated")
		}
		c.registry.remove(m)
	}
	return nil
}

// tables returns the join tables of the model followed by its own table.
func (c *Client) tables(m *schema.Model) []string {
	var tables []string
	for _, rel := range c.graph.Relations(m) {
		if rel.Rel == ManyToMany {
			tables = append(tables, rel.Through.Table)
		}
	}
	return append(tables, m.TableName())
}
