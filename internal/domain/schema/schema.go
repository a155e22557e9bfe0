// Package schema describes the columns of each persisted timeline entity and
// their optionality. Stores, services and models share these descriptions so
// that "write only the supplied fields" never depends on caller-provided
// column names.
package schema

// Kind is the storage type of a column.
type Kind int

const (
	KindInt Kind = iota
	KindText
	KindBool
	KindTime
)

func (k Kind) String() string {
	switch k {
	case KindInt:
		return "integer"
	case KindText:
		return "text"
	case KindBool:
		return "boolean"
	case KindTime:
		return "timestamp"
	default:
		return "unknown"
	}
}

// Field describes one column.
type Field struct {
	Column string
	Kind   Kind
	// Required fields must be supplied (and non-null) on create.
	Required bool
	// ReadOnly fields are managed by the store and rejected in input.
	ReadOnly bool
}

// Table is the ordered column list of an entity.
type Table struct {
	Entity string
	Name   string
	Fields []Field

	index map[string]int
}

// NewTable builds a table description. Column order is preserved and is the
// order used for SELECT lists and generated statements.
func NewTable(entity, name string, fields ...Field) *Table {
	t := &Table{
		Entity: entity,
		Name:   name,
		Fields: fields,
		index:  make(map[string]int, len(fields)),
	}
	for i, f := range fields {
		t.index[f.Column] = i
	}
	return t
}

// Field looks up a column by name.
func (t *Table) Field(column string) (Field, bool) {
	i, ok := t.index[column]
	if !ok {
		return Field{}, false
	}
	return t.Fields[i], true
}

// Columns returns every column name in declaration order.
func (t *Table) Columns() []string {
	cols := make([]string, len(t.Fields))
	for i, f := range t.Fields {
		cols[i] = f.Column
	}
	return cols
}

// RequiredColumns returns the columns that must be present on create.
func (t *Table) RequiredColumns() []string {
	var cols []string
	for _, f := range t.Fields {
		if f.Required {
			cols = append(cols, f.Column)
		}
	}
	return cols
}
