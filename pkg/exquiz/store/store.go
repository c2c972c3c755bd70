// Package store persists extracted questions. It is the import collaborator
// of the extraction engine: deduplication by (level, category, prompt) and
// transactional creation live here, not in the parser.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib" // driver: pgx
	_ "modernc.org/sqlite"             // driver: sqlite
)

// Driver selects the database backend.
type Driver string

const (
	DriverSQLite   Driver = "sqlite"
	DriverPostgres Driver = "postgres"
)

// Store is a question database.
type Store struct {
	db     *sql.DB
	driver Driver
	// lockPath is the flock file guarding imports into a sqlite file; empty otherwise.
	lockPath string
}

// Open opens the database and ensures the schema exists.
// For sqlite, dsn is a file path (parent directories are created) or ":memory:".
func Open(ctx context.Context, driver Driver, dsn string) (*Store, error) {
	s := &Store{driver: driver}

	var drvName, source string
	switch driver {
	case DriverSQLite:
		if dsn == "" {
			return nil, fmt.Errorf("sqlite store requires a database path")
		}
		drvName = "sqlite" // modernc driver
		source = dsn
		if dsn != ":memory:" && !strings.HasPrefix(dsn, "file:") {
			if err := os.MkdirAll(filepath.Dir(dsn), 0o750); err != nil {
				return nil, fmt.Errorf("create database directory: %w", err)
			}
			source = "file:" + dsn + "?_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)"
			s.lockPath = dsn + ".lock"
		}
	case DriverPostgres:
		drvName = "pgx" // pgx stdlib driver
		source = dsn
		if source == "" {
			source = "postgres://localhost:5432/exquiz?sslmode=disable"
		}
	default:
		return nil, fmt.Errorf("unsupported driver: %s", driver)
	}

	db, err := sql.Open(drvName, source)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if driver == DriverSQLite {
		// One connection keeps ":memory:" databases shared and avoids SQLITE_BUSY.
		db.SetMaxOpenConns(1)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	s.db = db

	if err := s.ensureSchema(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *Store) ensureSchema(ctx context.Context) error {
	schema := schemaSQLite
	if s.driver == DriverPostgres {
		schema = schemaPostgres
	}
	_, err := s.db.ExecContext(ctx, schema)
	return err
}

const schemaSQLite = `
CREATE TABLE IF NOT EXISTS imports (
  id TEXT PRIMARY KEY,
  started_at INTEGER NOT NULL,
  created INTEGER NOT NULL DEFAULT 0,
  duplicates INTEGER NOT NULL DEFAULT 0,
  invalid INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS questions (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  level TEXT NOT NULL,
  category TEXT NOT NULL,
  prompt TEXT NOT NULL,
  paragraph TEXT,
  source_sheet TEXT NOT NULL,
  source_row INTEGER NOT NULL,
  import_id TEXT NOT NULL REFERENCES imports(id),
  created_at INTEGER NOT NULL,
  UNIQUE (level, category, prompt)
);

CREATE TABLE IF NOT EXISTS options (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  question_id INTEGER NOT NULL REFERENCES questions(id) ON DELETE CASCADE,
  label TEXT NOT NULL,
  text TEXT NOT NULL,
  is_correct INTEGER NOT NULL DEFAULT 0,
  UNIQUE (question_id, label)
);
`

const schemaPostgres = `
CREATE TABLE IF NOT EXISTS imports (
  id TEXT PRIMARY KEY,
  started_at BIGINT NOT NULL,
  created INTEGER NOT NULL DEFAULT 0,
  duplicates INTEGER NOT NULL DEFAULT 0,
  invalid INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS questions (
  id BIGSERIAL PRIMARY KEY,
  level TEXT NOT NULL,
  category TEXT NOT NULL,
  prompt TEXT NOT NULL,
  paragraph TEXT,
  source_sheet TEXT NOT NULL,
  source_row INTEGER NOT NULL,
  import_id TEXT NOT NULL REFERENCES imports(id),
  created_at BIGINT NOT NULL,
  UNIQUE (level, category, prompt)
);

CREATE TABLE IF NOT EXISTS options (
  id BIGSERIAL PRIMARY KEY,
  question_id BIGINT NOT NULL REFERENCES questions(id) ON DELETE CASCADE,
  label TEXT NOT NULL,
  text TEXT NOT NULL,
  is_correct BOOLEAN NOT NULL DEFAULT FALSE,
  UNIQUE (question_id, label)
);
`
