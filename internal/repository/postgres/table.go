package postgres

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"tlstory/internal/domain"
	"tlstory/internal/domain/schema"
	"tlstory/internal/repository/sqlgen"
)

// tableStore implements the row operations shared by every timeline table.
type tableStore struct {
	pool   *pgxpool.Pool
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

	rows, err := t.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", t.name, err)
	}
	defer rows.Close()

	var out []schema.Row
	for rows.Next() {
		raw, err := rows.Values()
		if err != nil {
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
		return t.query(ctx, "is_active = $1", order, true)
	}
	return t.query(ctx, "", order)
}

func (t *tableStore) get(ctx context.Context, id int64) (schema.Row, error) {
	rows, err := t.query(ctx, "id = $1", "", id)
	if err != nil {
		return schema.Row{}, err
	}
	if len(rows) == 0 {
		return schema.Row{}, fmt.Errorf("%s %d: %w", t.schema.Entity, id, domain.ErrNotFound)
	}
	return rows[0], nil
}

func (t *tableStore) insert(ctx context.Context, values schema.Assignments) (int64, error) {
	now := time.Now().UTC()
	values = slices.Clone(values).
		Set(schema.ColCreatedAt, now).
		Set(schema.ColUpdatedAt, now)

	query, args := sqlgen.Insert(sqlgen.Postgres, t.name, values)
	var id int64
	if err := t.pool.QueryRow(ctx, query+" RETURNING id", args...).Scan(&id); err != nil {
		if IsPgDuplicateError(err) {
			return 0, t.conflict(values)
		}
		return 0, fmt.Errorf("insert %s: %w", t.schema.Entity, err)
	}
	return id, nil
}

func (t *tableStore) update(ctx context.Context, id int64, values schema.Assignments) error {
	if len(values) == 0 {
		_, err := t.get(ctx, id)
		return err
	}

	values = slices.Clone(values).Set(schema.ColUpdatedAt, time.Now().UTC())
	query, args := sqlgen.UpdateByID(sqlgen.Postgres, t.name, values, id)
	tag, err := t.pool.Exec(ctx, query, args...)
	if err != nil {
		if IsPgDuplicateError(err) {
			return t.conflict(values)
		}
		return fmt.Errorf("update %s: %w", t.schema.Entity, err)
	}
	return t.requireAffected(tag, id)
}

func (t *tableStore) delete(ctx context.Context, id int64, soft bool) error {
	var (
		tag pgconn.CommandTag
		err error
	)
	if soft {
		tag, err = t.pool.Exec(ctx, fmt.Sprintf("UPDATE %s SET is_active = FALSE WHERE id = $1", t.name), id)
	} else {
		tag, err = t.pool.Exec(ctx, fmt.Sprintf("DELETE FROM %s WHERE id = $1", t.name), id)
	}
	if err != nil {
		return fmt.Errorf("delete %s: %w", t.schema.Entity, err)
	}
	return t.requireAffected(tag, id)
}

func (t *tableStore) requireAffected(tag pgconn.CommandTag, id int64) error {
	if tag.RowsAffected() == 0 {
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
