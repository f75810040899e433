package fixture

import (
	"strings"

	"github.com/go-openapi/inflect"
)

// NameResolver maps a declared name to the key actually present in a field
// set. has reports whether a key exists. It is applied to join columns while
// building a Graph and to instance values read as overrides.
type NameResolver func(name string, has func(string) bool) (string, bool)

// DefaultNames tries the exact name, then its lower camel case form
// ("account_id" to "accountId"), then its snake case form.
func DefaultNames(name string, has func(string) bool) (string, bool) {
	for _, n := range []string{name, inflect.CamelizeDownFirst(name), inflect.Underscore(name)} {
		if n != "" && has(n) {
			return n, true
		}
	}
	return "", false
}

// columnName strips the table qualifier of a join column.
func columnName(c string) string {
	if i := strings.LastIndexByte(c, '.'); i >= 0 {
		return c[i+1:]
	}
	return c
}

// tableName returns the table qualifier of a join column, if any.
func tableName(c string) string {
	if i := strings.LastIndexByte(c, '.'); i >= 0 {
		return c[:i]
	}
	return ""
}
