package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	timelineRepo "tlstory/internal/domain/repositories/timeline"
	"tlstory/internal/repository/sqlgen"

	_ "modernc.org/sqlite"
)

// RepositoryConfig holds configuration for repository implementations
type RepositoryConfig struct {
	DB     *sql.DB
	Tables *sqlgen.TableNames
	Logger *slog.Logger
}

// Open connects to the SQLite database at path, creating its directory when
// needed. Use ":memory:" for an in-memory database.
func Open(ctx context.Context, path string) (*sql.DB, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	// Single writer tool; one connection also keeps ":memory:" databases alive
	// across calls.
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.ExecContext(ctx, pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	return db, nil
}

// EnsureSchema creates the timeline tables if they do not exist.
func EnsureSchema(ctx context.Context, db *sql.DB, tables *sqlgen.TableNames) error {
	for _, stmt := range schemaStatements(tables) {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

// NewStore opens the database, ensures the schema and wires the repositories.
func NewStore(ctx context.Context, path, tablePrefix string, logger *slog.Logger) (*timelineRepo.Store, error) {
	db, err := Open(ctx, path)
	if err != nil {
		return nil, err
	}

	tables := sqlgen.NewTableNames(tablePrefix)
	if err := EnsureSchema(ctx, db, tables); err != nil {
		_ = db.Close()
		return nil, err
	}

	cfg := &RepositoryConfig{DB: db, Tables: tables, Logger: logger}
	return &timelineRepo.Store{
		Config:  NewConfigRepository(cfg),
		Events:  NewEventRepository(cfg),
		Eras:    NewEraRepository(cfg),
		Backend: "sqlite",
		Close:   db.Close,
	}, nil
}

func schemaStatements(t *sqlgen.TableNames) []string {
	return []string{
		fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			title_headline TEXT,
			title_text TEXT,
			scale TEXT DEFAULT 'human',
			created_at TEXT DEFAULT CURRENT_TIMESTAMP,
			updated_at TEXT DEFAULT CURRENT_TIMESTAMP
		)`, t.Config),
		fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			headline TEXT NOT NULL,
			text TEXT,

			start_year INTEGER NOT NULL,
			start_month INTEGER,
			start_day INTEGER,
			start_hour INTEGER,
			start_minute INTEGER,
			start_second INTEGER,
			start_millisecond INTEGER,
			start_display_date TEXT,

			end_year INTEGER,
			end_month INTEGER,
			end_day INTEGER,
			end_hour INTEGER,
			end_minute INTEGER,
			end_second INTEGER,
			end_millisecond INTEGER,
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

			autolink BOOLEAN DEFAULT 1,
			sort_order INTEGER DEFAULT 0,
			is_active BOOLEAN DEFAULT 1,
			created_at TEXT DEFAULT CURRENT_TIMESTAMP,
			updated_at TEXT DEFAULT CURRENT_TIMESTAMP
		)`, t.Events),
		fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			headline TEXT NOT NULL,
			text TEXT,
			start_year INTEGER NOT NULL,
			start_month INTEGER,
			start_day INTEGER,
			end_year INTEGER NOT NULL,
			end_month INTEGER,
			end_day INTEGER,
			sort_order INTEGER DEFAULT 0,
			is_active BOOLEAN DEFAULT 1,
			created_at TEXT DEFAULT CURRENT_TIMESTAMP,
			updated_at TEXT DEFAULT CURRENT_TIMESTAMP
		)`, t.Eras),
		fmt.Sprintf("CREATE INDEX IF NOT EXISTS idx_%s_start ON %s(start_year, start_month, start_day)", t.Events, t.Events),
		fmt.Sprintf("CREATE INDEX IF NOT EXISTS idx_%s_start ON %s(start_year)", t.Eras, t.Eras),
	}
}
