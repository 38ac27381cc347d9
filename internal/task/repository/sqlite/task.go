package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"voice-task-board/internal/model"
	repo "voice-task-board/internal/task/repository"
)

// timeLayout has fixed width so stored timestamps sort lexically.
const timeLayout = "2006-01-02T15:04:05.000Z07:00"

const taskColumns = `id, title, description, status, priority, due_date, created_at, updated_at`

// CreateTask inserts a new Task row and returns the created entity.
func (r *implRepository) CreateTask(ctx context.Context, opt repo.CreateTaskOptions) (model.Task, error) {
	const query = `
		INSERT INTO tasks (` + taskColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	created := opt.CreatedAt.UTC()
	_, err := r.db.ExecContext(ctx, query,
		opt.ID, opt.Title, nullString(opt.Description), string(opt.Status), string(opt.Priority),
		formatTimePtr(opt.DueDate), formatTime(created), formatTime(created),
	)
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("CreateTask"), err)
		return model.Task{}, repo.ErrFailedToInsert
	}

	return r.GetOneTask(ctx, repo.GetOneTaskOptions{ID: opt.ID})
}

// GetOneTask retrieves a single Task by ID.
// Returns zero-value Task (ID == "") when not found.
func (r *implRepository) GetOneTask(ctx context.Context, opt repo.GetOneTaskOptions) (model.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = ? LIMIT 1`

	t, err := scanTask(r.db.QueryRowContext(ctx, query, opt.ID))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Task{}, nil
	}
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("GetOneTask"), err)
		return model.Task{}, repo.ErrFailedToGet
	}
	return t, nil
}

// ListTasks returns a page of Tasks and the total count matching the filters.
func (r *implRepository) ListTasks(ctx context.Context, opt repo.ListTasksOptions) ([]model.Task, int, error) {
	where, args := r.buildWhere(opt)

	var total int
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM tasks WHERE %s", where)
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		r.l.Errorf(ctx, "%s count: %v", r.dsn("ListTasks"), err)
		return nil, 0, repo.ErrFailedToList
	}

	tail, tailArgs := r.buildOrderAndPage(opt)
	query := fmt.Sprintf("SELECT %s FROM tasks WHERE %s %s", taskColumns, where, tail)
	rows, err := r.db.QueryContext(ctx, query, append(args, tailArgs...)...)
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("ListTasks"), err)
		return nil, 0, repo.ErrFailedToList
	}
	defer rows.Close()

	tasks := make([]model.Task, 0)
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			r.l.Errorf(ctx, "%s scan: %v", r.dsn("ListTasks"), err)
			return nil, 0, repo.ErrFailedToList
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		r.l.Errorf(ctx, "%s rows: %v", r.dsn("ListTasks"), err)
		return nil, 0, repo.ErrFailedToList
	}
	return tasks, total, nil
}

// UpdateTask overwrites a Task by ID and returns the updated entity.
// Returns zero-value Task when the ID does not exist.
func (r *implRepository) UpdateTask(ctx context.Context, opt repo.UpdateTaskOptions) (model.Task, error) {
	const query = `
		UPDATE tasks
		SET title = ?, description = ?, status = ?, priority = ?, due_date = ?, updated_at = ?
		WHERE id = ?`

	res, err := r.db.ExecContext(ctx, query,
		opt.Title, nullString(opt.Description), string(opt.Status), string(opt.Priority),
		formatTimePtr(opt.DueDate), formatTime(opt.UpdatedAt.UTC()), opt.ID,
	)
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("UpdateTask"), err)
		return model.Task{}, repo.ErrFailedToUpdate
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return model.Task{}, nil
	}

	return r.GetOneTask(ctx, repo.GetOneTaskOptions{ID: opt.ID})
}

// DeleteTask removes a Task by ID.
func (r *implRepository) DeleteTask(ctx context.Context, id string) error {
	const query = `DELETE FROM tasks WHERE id = ?`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("DeleteTask"), err)
		return repo.ErrFailedToDelete
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (model.Task, error) {
	var (
		t                    model.Task
		status, priority     string
		description, dueDate sql.NullString
		createdAt, updatedAt string
	)
	if err := row.Scan(&t.ID, &t.Title, &description, &status, &priority, &dueDate, &createdAt, &updatedAt); err != nil {
		return model.Task{}, err
	}

	t.Status = model.Status(status)
	t.Priority = model.Priority(priority)
	if description.Valid {
		d := description.String
		t.Description = &d
	}

	var err error
	if dueDate.Valid {
		due, perr := time.Parse(timeLayout, dueDate.String)
		if perr != nil {
			return model.Task{}, fmt.Errorf("parse due_date %q: %w", dueDate.String, perr)
		}
		due = due.UTC()
		t.DueDate = &due
	}
	if t.CreatedAt, err = time.Parse(timeLayout, createdAt); err != nil {
		return model.Task{}, fmt.Errorf("parse created_at %q: %w", createdAt, err)
	}
	if t.UpdatedAt, err = time.Parse(timeLayout, updatedAt); err != nil {
		return model.Task{}, fmt.Errorf("parse updated_at %q: %w", updatedAt, err)
	}
	t.CreatedAt, t.UpdatedAt = t.CreatedAt.UTC(), t.UpdatedAt.UTC()
	return t, nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func formatTimePtr(t *time.Time) any {
	if t == nil {
		return nil
	}
	return formatTime(*t)
}

func nullString(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}
