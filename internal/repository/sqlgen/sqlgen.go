// Package sqlgen assembles SQL statements from schema descriptions. Column
// names only ever come from the schema, never from request input.
package sqlgen

import (
	"fmt"
	"strings"

	"tlstory/internal/domain/schema"
)

// Dialect selects placeholder syntax.
type Dialect int

const (
	SQLite Dialect = iota
	Postgres
)

// Placeholder returns the n-th (1-based) bind parameter.
func (d Dialect) Placeholder(n int) string {
	if d == Postgres {
		return fmt.Sprintf("$%d", n)
	}
	return "?"
}

// Event and era fetch order. NULLS FIRST is spelled out because PostgreSQL
// sorts NULLs last by default and SQLite sorts them first.
const (
	EventOrder = "start_year ASC NULLS FIRST, start_month ASC NULLS FIRST, start_day ASC NULLS FIRST, sort_order ASC, id ASC"
	EraOrder   = "start_year ASC NULLS FIRST, sort_order ASC, id ASC"
)

// TableNames holds table names with an environment prefix applied
type TableNames struct {
	Config string
	Events string
	Eras   string
}

// NewTableNames creates table names with the given prefix
func NewTableNames(prefix string) *TableNames {
	return &TableNames{
		Config: prefix + schema.Config.Name,
		Events: prefix + schema.Events.Name,
		Eras:   prefix + schema.Eras.Name,
	}
}

// Select returns "SELECT <columns> FROM <table>".
func Select(table string, columns []string) string {
	return fmt.Sprintf("SELECT %s FROM %s", strings.Join(columns, ", "), table)
}

// Insert builds an INSERT for exactly the assigned columns.
func Insert(d Dialect, table string, values schema.Assignments) (string, []any) {
	cols := make([]string, len(values))
	marks := make([]string, len(values))
	args := make([]any, len(values))
	for i, v := range values {
		cols[i] = v.Column
		marks[i] = d.Placeholder(i + 1)
		args[i] = v.Value
	}
	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		table, strings.Join(cols, ", "), strings.Join(marks, ", "))
	return query, args
}

// UpdateByID builds an UPDATE of the assigned columns for a single id.
func UpdateByID(d Dialect, table string, values schema.Assignments, id int64) (string, []any) {
	sets := make([]string, len(values))
	args := make([]any, 0, len(values)+1)
	for i, v := range values {
		sets[i] = fmt.Sprintf("%s = %s", v.Column, d.Placeholder(i+1))
		args = append(args, v.Value)
	}
	args = append(args, id)
	query := fmt.Sprintf("UPDATE %s SET %s WHERE id = %s",
		table, strings.Join(sets, ", "), d.Placeholder(len(values)+1))
	return query, args
}
