package sqlite

import (
	"fmt"
	"strings"

	"voice-task-board/internal/model"
	repo "voice-task-board/internal/task/repository"
)

var allowedOrderBy = map[string]bool{
	"created_at DESC": true,
	"created_at ASC":  true,
	"due_date ASC":    true,
	"due_date DESC":   true,
}

// buildWhere builds the WHERE clause + args shared by the count and page queries.
// All non-empty filters are applied as AND conditions.
func (r *implRepository) buildWhere(opt repo.ListTasksOptions) (string, []any) {
	var conditions []string
	var args []any

	if opt.Status != "" {
		conditions = append(conditions, "status = ?")
		args = append(args, string(opt.Status))
	}
	if opt.Priority != "" {
		conditions = append(conditions, "priority = ?")
		args = append(args, string(opt.Priority))
	}
	if opt.Search != "" {
		conditions = append(conditions, "(title LIKE ? ESCAPE '\\' OR description LIKE ? ESCAPE '\\')")
		pattern := "%" + escapeLike(opt.Search) + "%"
		args = append(args, pattern, pattern)
	}
	if opt.OverdueAt != nil {
		conditions = append(conditions, "due_date IS NOT NULL AND due_date < ? AND status != ?")
		args = append(args, formatTime(*opt.OverdueAt), string(model.StatusDone))
	}
	if opt.DueFrom != nil {
		conditions = append(conditions, "due_date >= ?")
		args = append(args, formatTime(*opt.DueFrom))
	}
	if opt.DueTo != nil {
		conditions = append(conditions, "due_date <= ?")
		args = append(args, formatTime(*opt.DueTo))
	}

	if len(conditions) == 0 {
		return "1=1", args
	}
	return strings.Join(conditions, " AND "), args
}

// buildOrderAndPage builds the ORDER + LIMIT + OFFSET tail for ListTasks.
func (r *implRepository) buildOrderAndPage(opt repo.ListTasksOptions) (string, []any) {
	var parts []string
	var args []any

	orderBy := opt.OrderBy
	if !allowedOrderBy[orderBy] {
		orderBy = "created_at DESC"
	}
	parts = append(parts, fmt.Sprintf("ORDER BY %s, id", orderBy))

	if opt.Limit > 0 {
		parts = append(parts, "LIMIT ?")
		args = append(args, opt.Limit)
		if opt.Offset > 0 {
			parts = append(parts, "OFFSET ?")
			args = append(args, opt.Offset)
		}
	}

	return strings.Join(parts, " "), args
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
