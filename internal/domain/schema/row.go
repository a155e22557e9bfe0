package schema

import (
	"fmt"
	"math"
	"time"

	"tlstory/internal/domain"
)

// sqliteTimestamp is the CURRENT_TIMESTAMP text format.
const sqliteTimestamp = "2006-01-02 15:04:05"

// Row is a decoded, type-checked record. Values are int64, string, bool,
// time.Time or nil.
type Row struct {
	values map[string]any
}

// DecodeRow type-checks raw driver values for the given columns. A value whose
// type does not match its column yields a *domain.MalformedRowError naming the
// row id and field; nothing is coerced beyond lossless driver conversions.
func (t *Table) DecodeRow(columns []string, raw []any) (Row, error) {
	if len(columns) != len(raw) {
		return Row{}, fmt.Errorf("decode %s row: %d columns, %d values", t.Entity, len(columns), len(raw))
	}

	var rowID int64
	for i, col := range columns {
		if col == ColID {
			if id, ok := asInt(raw[i]); ok {
				rowID = id
			}
			break
		}
	}

	row := Row{values: make(map[string]any, len(columns))}
	for i, col := range columns {
		f, ok := t.Field(col)
		if !ok {
			return Row{}, fmt.Errorf("decode %s row %d: unknown column %q", t.Entity, rowID, col)
		}
		v, ok := decodeDriverValue(f.Kind, raw[i])
		if !ok {
			return Row{}, &domain.MalformedRowError{
				Entity: t.Entity,
				RowID:  rowID,
				Field:  col,
				Value:  raw[i],
			}
		}
		row.values[col] = v
	}
	return row, nil
}

// NewRow builds a row from already typed values. Used by tests and fakes.
func NewRow(values map[string]any) Row {
	return Row{values: values}
}

// Has reports whether the row carried the column at all (null included).
func (r Row) Has(column string) bool {
	_, ok := r.values[column]
	return ok
}

// Int returns the column as *int64, nil when null or absent.
func (r Row) Int(column string) *int64 {
	if v, ok := r.values[column].(int64); ok {
		return &v
	}
	return nil
}

// Text returns the column as *string, nil when null or absent.
func (r Row) Text(column string) *string {
	if v, ok := r.values[column].(string); ok {
		return &v
	}
	return nil
}

// Bool returns the column as *bool, nil when null or absent.
func (r Row) Bool(column string) *bool {
	if v, ok := r.values[column].(bool); ok {
		return &v
	}
	return nil
}

// Time returns the column as time.Time, zero when null or absent.
func (r Row) Time(column string) time.Time {
	if v, ok := r.values[column].(time.Time); ok {
		return v
	}
	return time.Time{}
}

func decodeDriverValue(kind Kind, v any) (any, bool) {
	if v == nil {
		return nil, true
	}
	switch kind {
	case KindInt:
		return asInt(v)
	case KindText:
		switch s := v.(type) {
		case string:
			return s, true
		case []byte:
			return string(s), true
		}
	case KindBool:
		switch b := v.(type) {
		case bool:
			return b, true
		case int64:
			return b != 0, true
		case int32:
			return b != 0, true
		}
	case KindTime:
		switch ts := v.(type) {
		case time.Time:
			return ts, true
		case string:
			return parseTimestamp(ts)
		case []byte:
			return parseTimestamp(string(ts))
		}
	}
	return nil, false
}

func asInt(v any) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case int32:
		return int64(n), true
	case int16:
		return int64(n), true
	case int:
		return int64(n), true
	case float64:
		return wholeFloat(n)
	}
	return 0, false
}

// wholeFloat converts f when it is a whole number inside the int64 range.
func wholeFloat(f float64) (int64, bool) {
	if f != math.Trunc(f) || f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, false
	}
	return int64(f), true
}

func parseTimestamp(s string) (any, bool) {
	for _, layout := range []string{time.RFC3339Nano, sqliteTimestamp} {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, true
		}
	}
	return nil, false
}

// FormatTimestamp renders t in the text form stored by SQLite.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}
