package sql

import (
	"strconv"
	"strings"

	"github.com/syssam/fixture/dialect"
)

// Builder renders statements for one dialect. It knows how to quote
// identifiers and how to number placeholders, and nothing more.
type Builder struct {
	dialect string
}

// Dialect creates a new Builder for the given dialect.
func Dialect(name string) *Builder {
	return &Builder{dialect: name}
}

// Quote quotes an identifier. Dotted names (schema.table) are quoted per part.
func (b *Builder) Quote(ident string) string {
	if ident == "*" {
		return ident
	}
	q := `"`
	if b.dialect == dialect.MySQL {
		q = "`"
	}
	parts := strings.Split(ident, ".")
	for i, p := range parts {
		parts[i] = q + strings.ReplaceAll(p, q, q+q) + q
	}
	return strings.Join(parts, ".")
}

// placeholder returns the i-th (1-based) argument placeholder.
func (b *Builder) placeholder(i int) string {
	if b.dialect == dialect.Postgres {
		return "$" + strconv.Itoa(i)
	}
	return "?"
}

func (b *Builder) quoteAll(columns []string) string {
	quoted := make([]string, len(columns))
	for i, c := range columns {
		quoted[i] = b.Quote(c)
	}
	return strings.Join(quoted, ", ")
}

// InsertBuilder builds a single-row INSERT statement.
type InsertBuilder struct {
	*Builder
	table     string
	columns   []string
	values    []any
	returning []string
}

// Insert starts an INSERT statement for the table.
//
//	query, args := sql.Dialect(dialect.Postgres).
//		Insert("account").
//		Set("username", "a8m").
//		Returning("*").
//		Query()
func (b *Builder) Insert(table string) *InsertBuilder {
	return &InsertBuilder{Builder: b, table: table}
}

// Set appends a column and its value.
func (i *InsertBuilder) Set(column string, v any) *InsertBuilder {
	i.columns = append(i.columns, column)
	i.values = append(i.values, v)
	return i
}

// Returning sets the RETURNING clause. Ignored by MySQL, which has none.
func (i *InsertBuilder) Returning(columns ...string) *InsertBuilder {
	i.returning = columns
	return i
}

// Query returns the statement and its arguments.
func (i *InsertBuilder) Query() (string, []any) {
	var sb strings.Builder
	sb.WriteString("INSERT INTO ")
	sb.WriteString(i.Quote(i.table))
	switch {
	case len(i.columns) > 0:
		sb.WriteString(" (")
		sb.WriteString(i.quoteAll(i.columns))
		sb.WriteString(") VALUES (")
		for n := range i.values {
			if n > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(i.placeholder(n + 1))
		}
		sb.WriteString(")")
	case i.dialect == dialect.MySQL:
		sb.WriteString(" () VALUES ()")
	default:
		sb.WriteString(" DEFAULT VALUES")
	}
	if len(i.returning) > 0 && i.dialect != dialect.MySQL {
		sb.WriteString(" RETURNING ")
		sb.WriteString(i.quoteAll(i.returning))
	}
	return sb.String(), i.values
}

// UpdateBuilder builds an UPDATE statement with a single equality predicate.
type UpdateBuilder struct {
	*Builder
	table   string
	columns []string
	values  []any
	where   string
	whereV  any
}

// Update starts an UPDATE statement for the table.
func (b *Builder) Update(table string) *UpdateBuilder {
	return &UpdateBuilder{Builder: b, table: table}
}

// Set appends a column assignment.
func (u *UpdateBuilder) Set(column string, v any) *UpdateBuilder {
	u.columns = append(u.columns, column)
	u.values = append(u.values, v)
	return u
}

// Where restricts the update to rows where column equals v.
func (u *UpdateBuilder) Where(column string, v any) *UpdateBuilder {
	u.where, u.whereV = column, v
	return u
}

// Query returns the statement and its arguments.
func (u *UpdateBuilder) Query() (string, []any) {
	var sb strings.Builder
	sb.WriteString("UPDATE ")
	sb.WriteString(u.Quote(u.table))
	sb.WriteString(" SET ")
	args := make([]any, 0, len(u.values)+1)
	for n, c := range u.columns {
		if n > 0 {
			sb.WriteString(", ")
		}
		args = append(args, u.values[n])
		sb.WriteString(u.Quote(c))
		sb.WriteString(" = ")
		sb.WriteString(u.placeholder(len(args)))
	}
	if u.where != "" {
		args = append(args, u.whereV)
		sb.WriteString(" WHERE ")
		sb.WriteString(u.Quote(u.where))
		sb.WriteString(" = ")
		sb.WriteString(u.placeholder(len(args)))
	}
	return sb.String(), args
}

// SelectBuilder builds a SELECT statement with a single equality predicate.
type SelectBuilder struct {
	*Builder
	columns []string
	table   string
	where   string
	whereV  any
}

// Select starts a SELECT statement.
func (b *Builder) Select(columns ...string) *SelectBuilder {
	if len(columns) == 0 {
		columns = []string{"*"}
	}
	return &SelectBuilder{Builder: b, columns: columns}
}

// From sets the table to select from.
func (s *SelectBuilder) From(table string) *SelectBuilder {
	s.table = table
	return s
}

// Where restricts the selection to rows where column equals v.
func (s *SelectBuilder) Where(column string, v any) *SelectBuilder {
	s.where, s.whereV = column, v
	return s
}

// Query returns the statement and its arguments.
func (s *SelectBuilder) Query() (string, []any) {
	var sb strings.Builder
	sb.WriteString("SELECT ")
	sb.WriteString(s.quoteAll(s.columns))
	sb.WriteString(" FROM ")
	sb.WriteString(s.Quote(s.table))
	if s.where == "" {
		return sb.String(), []any{}
	}
	sb.WriteString(" WHERE ")
	sb.WriteString(s.Quote(s.where))
	sb.WriteString(" = ")
	sb.WriteString(s.placeholder(1))
	return sb.String(), []any{s.whereV}
}
