package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	timelineRepo "tlstory/internal/domain/repositories/timeline"
	"tlstory/internal/repository/sqlgen"
)

// RepositoryConfig holds configuration for repository implementations
type RepositoryConfig struct {
	Pool   *pgxpool.Pool
	Tables *sqlgen.TableNames
	Logger *slog.Logger
}

// CreateConnectionPool opens a pgx pool and pings it.
//
// Port 6543 is treated as a PgBouncer transaction pooler, which cannot hold
// prepared statements; the pool then switches to QueryExecModeCacheDescribe
// unless default_query_exec_mode was set explicitly in the connection string.
func CreateConnectionPool(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse connection string: %w", err)
	}

	// One admin process, light write load
	config.MaxConns = 10
	config.MinConns = 1

	// An explicit default_query_exec_mode in the URL takes precedence
	if config.ConnConfig.Port == 6543 && config.ConnConfig.DefaultQueryExecMode == pgx.QueryExecModeCacheStatement {
		config.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeCacheDescribe
		slog.Debug("auto-configured cache_describe mode for PgBouncer compatibility", "port", 6543)
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return pool, nil
}

// NewStore connects to PostgreSQL, ensures the schema and wires the repositories.
func NewStore(ctx context.Context, databaseURL, tablePrefix string, logger *slog.Logger) (*timelineRepo.Store, error) {
	pool, err := CreateConnectionPool(ctx, databaseURL)
	if err != nil {
		return nil, err
	}

	tables := sqlgen.NewTableNames(tablePrefix)
	if err := EnsureSchema(ctx, pool, tables); err != nil {
		pool.Close()
		return nil, err
	}

	cfg := &RepositoryConfig{Pool: pool, Tables: tables, Logger: logger}
	return &timelineRepo.Store{
		Config:  NewConfigRepository(cfg),
		Events:  NewEventRepository(cfg),
		Eras:    NewEraRepository(cfg),
		Backend: "postgres",
		Close: func() error {
			pool.Close()
			return nil
		},
	}, nil
}

// EnsureSchema creates the timeline tables if they do not exist.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool, tables *sqlgen.TableNames) error {
	for _, stmt := range schemaStatements(tables) {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

func schemaStatements(t *sqlgen.TableNames) []string {
	return []string{
		fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			id BIGSERIAL PRIMARY KEY,
			title_headline TEXT,
			title_text TEXT,
			scale TEXT DEFAULT 'human',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`, t.Config),
		fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			id BIGSERIAL PRIMARY KEY,
			headline TEXT NOT NULL,
			text TEXT,

			start_year BIGINT NOT NULL,
			start_month BIGINT,
			start_day BIGINT,
			start_hour BIGINT,
			start_minute BIGINT,
			start_second BIGINT,
			start_millisecond BIGINT,
			start_display_date TEXT,

			end_year BIGINT,
			end_month BIGINT,
			end_day BIGINT,
			end_hour BIGINT,
			end_minute BIGINT,
			end_second BIGINT,
			end_millisecond BIGINT,
			end_display_date TEXT,

			display_date TEXT,
			event_group TEXT,
			unique_id TEXT UNIQUE,

			media_url TEXT,
			media_caption TEXT,
			media_credit TEXT,
			media_thumbnail TEXT,
			media_alt TEXT,
			media_title TEXT,
			media_link TEXT,
			media_link_target TEXT,

			background_url TEXT,
			background_color TEXT,
			background_alt TEXT,

			autolink BOOLEAN DEFAULT TRUE,
			sort_order BIGINT DEFAULT 0,
			is_active BOOLEAN DEFAULT TRUE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`, t.Events),
		fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			id BIGSERIAL PRIMARY KEY,
			headline TEXT NOT NULL,
			text TEXT,
			start_year BIGINT NOT NULL,
			start_month BIGINT,
			start_day BIGINT,
			end_year BIGINT NOT NULL,
			end_month BIGINT,
			end_day BIGINT,
			sort_order BIGINT DEFAULT 0,
			is_active BOOLEAN DEFAULT TRUE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`, t.Eras),
		fmt.Sprintf("CREATE INDEX IF NOT EXISTS idx_%s_start ON %s(start_year, start_month, start_day)", t.Events, t.Events),
		fmt.Sprintf("CREATE INDEX IF NOT EXISTS idx_%s_start ON %s(start_year)", t.Eras, t.Eras),
	}
}
