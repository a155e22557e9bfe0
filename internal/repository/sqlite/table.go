package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"slices"
	"time"

	"tlstory/internal/domain"
	"tlstory/internal/domain/schema"
	"tlstory/internal/repository/sqlgen"
)

// tableStore implements the row operations shared by every timeline table.
type tableStore struct {
	db     *sql.DB
	name   string
	schema *schema.Table
}

func (t *tableStore) query(ctx context.Context, where, order string, args ...any) ([]schema.Row, error) {
	cols := t.schema.Columns()
	query := sqlgen.Select(t.name, cols)
	if where != "" {
		query += " WHERE " + where
	}
	if order != "" {
		query += " ORDER BY " + order
	}

	rows, err := t.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", t.name, err)
	}
	defer rows.Close()

	var out []schema.Row
	for rows.Next() {
		raw := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range raw {
			ptrs[i] = &raw[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("scan %s: %w", t.schema.Entity, err)
		}
		row, err := t.schema.DecodeRow(cols, raw)
		if err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s: %w", t.name, err)
	}
	return out, nil
}

func (t *tableStore) list(ctx context.Context, activeOnly bool, order string) ([]schema.Row, error) {
	if activeOnly {
		return t.query(ctx, "is_active = ?", order, true)
	}
	return t.query(ctx, "", order)
}

func (t *tableStore) get(ctx context.Context, id int64) (schema.Row, error) {
	rows, err := t.query(ctx, "id = ?", "", id)
	if err != nil {
		return schema.Row{}, err
	}
	if len(rows) == 0 {
		return schema.Row{}, fmt.Errorf("%s %d: %w", t.schema.Entity, id, domain.ErrNotFound)
	}
	return rows[0], nil
}

func (t *tableStore) insert(ctx context.Context, values schema.Assignments) (int64, error) {
	now := schema.FormatTimestamp(time.Now())
	values = slices.Clone(values).
		Set(schema.ColCreatedAt, now).
		Set(schema.ColUpdatedAt, now)

	query, args := sqlgen.Insert(sqlgen.SQLite, t.name, values)
	res, err := t.db.ExecContext(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, t.conflict(values)
		}
		return 0, fmt.Errorf("insert %s: %w", t.schema.Entity, err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("last insert id: %w", err)
	}
	return id, nil
}

func (t *tableStore) update(ctx context.Context, id int64, values schema.Assignments) error {
	if len(values) == 0 {
		// nothing supplied; still report unknown ids
		_, err := t.get(ctx, id)
		return err
	}

	values = slices.Clone(values).Set(schema.ColUpdatedAt, schema.FormatTimestamp(time.Now()))
	query, args := sqlgen.UpdateByID(sqlgen.SQLite, t.name, values, id)
	res, err := t.db.ExecContext(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return t.conflict(values)
		}
		return fmt.Errorf("update %s: %w", t.schema.Entity, err)
	}
	return t.requireAffected(res, id)
}

func (t *tableStore) delete(ctx context.Context, id int64, soft bool) error {
	var (
		res sql.Result
		err error
	)
	if soft {
		res, err = t.db.ExecContext(ctx, fmt.Sprintf("UPDATE %s SET is_active = ? WHERE id = ?", t.name), false, id)
	} else {
		res, err = t.db.ExecContext(ctx, fmt.Sprintf("DELETE FROM %s WHERE id = ?", t.name), id)
	}
	if err != nil {
		return fmt.Errorf("delete %s: %w", t.schema.Entity, err)
	}
	return t.requireAffected(res, id)
}

func (t *tableStore) requireAffected(res sql.Result, id int64) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s %d: %w", t.schema.Entity, id, domain.ErrNotFound)
	}
	return nil
}

func (t *tableStore) conflict(values schema.Assignments) error {
	key, _ := values.Get(schema.ColUniqueID)
	return &domain.ConflictError{
		Message:      fmt.Sprintf("%s with unique_id '%v' already exists", t.schema.Entity, key),
		ResourceType: t.schema.Entity,
		ResourceID:   fmt.Sprint(key),
	}
}
