package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite" // registers the "sqlite" driver

	"voice-task-board/internal/task/repository"
	"voice-task-board/pkg/log"
)

const schema = `
CREATE TABLE IF NOT EXISTS tasks (
	id          TEXT PRIMARY KEY,
	title       TEXT NOT NULL,
	description TEXT,
	status      TEXT NOT NULL CHECK(status IN ('To Do', 'In Progress', 'Done')),
	priority    TEXT NOT NULL CHECK(priority IN ('Low', 'Medium', 'High', 'Urgent')),
	due_date    TEXT,
	created_at  TEXT NOT NULL,
	updated_at  TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_tasks_status ON tasks(status);
CREATE INDEX IF NOT EXISTS idx_tasks_due_date ON tasks(due_date);`

type implRepository struct {
	db *sql.DB
	l  log.Logger
}

// Open opens (creating if needed) the SQLite database at path and ensures the schema.
// Use ":memory:" for a throwaway database.
func Open(ctx context.Context, path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %q: %w", path, err)
	}
	// SQLite serialises writers; one connection also keeps ":memory:" databases alive.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite %q: %w", path, err)
	}
	if err := Migrate(ctx, db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// Migrate creates the tasks table when it does not exist.
func Migrate(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("migrate tasks table: %w", err)
	}
	return nil
}

// New creates a new SQLite-backed Repository for the task domain.
func New(db *sql.DB, l log.Logger) repository.Repository {
	if db == nil {
		panic("task/repository/sqlite: db is required")
	}
	return &implRepository{db: db, l: l}
}

// dsn is a helper to return a method-scoped context string for logging.
func (r *implRepository) dsn(method string) string {
	return fmt.Sprintf("task/repository/sqlite.%s", method)
}
