package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"

	"tlstory/internal/domain"
)

// Assignment is a typed column value ready to be written. Value is an int64,
// string or bool.
type Assignment struct {
	Column string
	Value  any
}

// Assignments is an ordered set of column values.
type Assignments []Assignment

// Get returns the value assigned to column.
func (a Assignments) Get(column string) (any, bool) {
	for _, as := range a {
		if as.Column == column {
			return as.Value, true
		}
	}
	return nil, false
}

// Has reports whether column is assigned.
func (a Assignments) Has(column string) bool {
	_, ok := a.Get(column)
	return ok
}

// Set replaces the value of an existing assignment or appends a new one.
func (a Assignments) Set(column string, value any) Assignments {
	for i := range a {
		if a[i].Column == column {
			a[i].Value = value
			return a
		}
	}
	return append(a, Assignment{Column: column, Value: value})
}

// Columns returns the assigned column names in order.
func (a Assignments) Columns() []string {
	cols := make([]string, len(a))
	for i, as := range a {
		cols[i] = as.Column
	}
	return cols
}

// Assignments decodes a loosely typed JSON object against the table. Keys that
// are unknown or store-managed are rejected, JSON nulls are dropped (a null
// never overwrites a stored value), and every other value must match its
// column kind. The result follows table column order.
func (t *Table) Assignments(patch map[string]json.RawMessage) (Assignments, error) {
	out := make(Assignments, 0, len(patch))
	for key, raw := range patch {
		f, ok := t.Field(key)
		if !ok {
			return nil, fmt.Errorf("%w: unknown %s field %q", domain.ErrValidation, t.Entity, key)
		}
		if f.ReadOnly {
			return nil, fmt.Errorf("%w: %s field %q cannot be set", domain.ErrValidation, t.Entity, key)
		}
		if isNull(raw) {
			continue
		}
		v, err := decodeJSONValue(f, raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %s field %q: %v", domain.ErrValidation, t.Entity, key, err)
		}
		out = append(out, Assignment{Column: key, Value: v})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return t.index[out[i].Column] < t.index[out[j].Column]
	})
	return out, nil
}

// AssignmentsFromMap is Assignments for values that are already decoded, such
// as a YAML seed file.
func (t *Table) AssignmentsFromMap(values map[string]any) (Assignments, error) {
	patch := make(map[string]json.RawMessage, len(values))
	for k, v := range values {
		raw, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %s field %q: %v", domain.ErrValidation, t.Entity, k, err)
		}
		patch[k] = raw
	}
	return t.Assignments(patch)
}

func isNull(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

func decodeJSONValue(f Field, raw json.RawMessage) (any, error) {
	switch f.Kind {
	case KindInt:
		var n json.Number
		if err := json.Unmarshal(raw, &n); err != nil {
			return nil, fmt.Errorf("expected %s", f.Kind)
		}
		if i, err := n.Int64(); err == nil {
			return i, nil
		}
		fl, err := n.Float64()
		if err != nil {
			return nil, fmt.Errorf("expected %s, got %s", f.Kind, n)
		}
		i, ok := wholeFloat(fl)
		if !ok {
			return nil, fmt.Errorf("expected %s in int64 range, got %s", f.Kind, n)
		}
		return i, nil
	case KindText:
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, fmt.Errorf("expected %s", f.Kind)
		}
		return s, nil
	case KindBool:
		var b bool
		if err := json.Unmarshal(raw, &b); err == nil {
			return b, nil
		}
		// 0/1 as stored by SQLite
		var n int64
		if err := json.Unmarshal(raw, &n); err == nil && (n == 0 || n == 1) {
			return n == 1, nil
		}
		return nil, fmt.Errorf("expected %s", f.Kind)
	default:
		return nil, fmt.Errorf("unsupported kind %s", f.Kind)
	}
}
