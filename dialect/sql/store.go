package sql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"slices"

	"github.com/syssam/fixture/dialect"
)

// Store persists fixture rows through a dialect.ExecQuerier. It can wrap a
// Driver, a Tx or any wrapping driver (StatsDriver, DebugDriver).
type Store struct {
	ex      dialect.ExecQuerier
	dialect string
}

// NewStore returns a Store for the given ExecQuerier and dialect name.
func NewStore(ex dialect.ExecQuerier, name string) *Store {
	return &Store{ex: ex, dialect: name}
}

// OpenStore wraps a Driver with a Store, taking the dialect from the driver.
func OpenStore(drv dialect.Driver) *Store {
	return NewStore(drv, drv.Dialect())
}

// Dialect returns the dialect name of the underlying storage engine.
func (s *Store) Dialect() string { return s.dialect }

// Builder returns a statement builder for the store dialect.
func (s *Store) Builder() *Builder { return Dialect(s.dialect) }

// Insert inserts one row and returns its identifier: the value supplied for
// key if any, otherwise the value generated by the database.
func (s *Store) Insert(ctx context.Context, table, key string, values map[string]any) (any, error) {
	if id, ok := values[key]; ok && id != nil {
		query, args := s.insert(table, values).Query()
		if err := s.ex.Exec(ctx, query, args, nil); err != nil {
			return nil, err
		}
		return id, nil
	}
	if s.dialect == dialect.Postgres {
		row, err := s.queryOne(ctx, s.insert(table, values).Returning(key))
		if err != nil {
			return nil, err
		}
		return row[key], nil
	}
	var res sql.Result
	query, args := s.insert(table, values).Query()
	if err := s.ex.Exec(ctx, query, args, &res); err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("dialect/sql: last insert id of %s: %w", table, err)
	}
	return id, nil
}

// InsertAndFetch inserts one row and reads it back, so that columns filled in
// by the database (generated keys, defaults) are part of the result.
func (s *Store) InsertAndFetch(ctx context.Context, table, key string, values map[string]any) (map[string]any, error) {
	if s.dialect != dialect.MySQL {
		return s.queryOne(ctx, s.insert(table, values).Returning("*"))
	}
	id, err := s.Insert(ctx, table, key, values)
	if err != nil {
		return nil, err
	}
	return s.queryOne(ctx, s.Builder().Select().From(table).Where(key, id))
}

// Exec executes a raw statement.
func (s *Store) Exec(ctx context.Context, query string, args ...any) error {
	if args == nil {
		args = []any{}
	}
	return s.ex.Exec(ctx, query, args, nil)
}

// Session returns a session bound to a single connection when the underlying
// ExecQuerier is a Sessioner. Transactions and other ExecQueriers are
// already bound to one connection and are returned as is.
func (s *Store) Session(ctx context.Context) (dialect.Session, error) {
	return session(ctx, s.ex)
}

// Sessioner is implemented by drivers able to pin one pooled connection:
// Driver and the StatsDriver and DebugDriver wrappers.
type Sessioner interface {
	Session(context.Context) (dialect.Session, error)
}

func session(ctx context.Context, ex dialect.ExecQuerier) (dialect.Session, error) {
	if p, ok := ex.(Sessioner); ok {
		return p.Session(ctx)
	}
	return nopSession{ex}, nil
}

// insert builds an INSERT with the columns in a stable order.
func (s *Store) insert(table string, values map[string]any) *InsertBuilder {
	columns := make([]string, 0, len(values))
	for c := range values {
		columns = append(columns, c)
	}
	slices.Sort(columns)
	b := s.Builder().Insert(table)
	for _, c := range columns {
		b.Set(c, values[c])
	}
	return b
}

type querier interface {
	Query() (string, []any)
}

// queryOne runs the statement and scans its first row into a map.
func (s *Store) queryOne(ctx context.Context, q querier) (map[string]any, error) {
	query, args := q.Query()
	rows := &Rows{}
	if err := s.ex.Query(ctx, query, args, rows); err != nil {
		return nil, err
	}
	defer rows.Close()
	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("dialect/sql: query: %w", err)
		}
		return nil, fmt.Errorf("dialect/sql: %w", sql.ErrNoRows)
	}
	row, err := s.scanRow(rows)
	if err != nil {
		return nil, err
	}
	return row, rows.Err()
}

func (s *Store) scanRow(rows ColumnScanner) (map[string]any, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("dialect/sql: columns: %w", err)
	}
	values := make([]any, len(columns))
	dest := make([]any, len(columns))
	for i := range values {
		dest[i] = &values[i]
	}
	if err := rows.Scan(dest...); err != nil {
		return nil, fmt.Errorf("dialect/sql: scan: %w", err)
	}
	row := make(map[string]any, len(columns))
	for i, c := range columns {
		v := values[i]
		// go-sql-driver/mysql returns text columns as raw bytes.
		if b, ok := v.([]byte); ok && s.dialect == dialect.MySQL {
			v = string(b)
		}
		row[c] = v
	}
	return row, nil
}

// IsNoRows reports whether the error was caused by a missing row.
func IsNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

type nopSession struct {
	dialect.ExecQuerier
}

func (nopSession) Close() error { return nil }
