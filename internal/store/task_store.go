package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"taskpad/internal/model"
)

// CreateTask inserts a new task. Generates a UUID if ID is empty.
// Title validation happens at the service boundary; the store only
// guards against the structurally impossible.
func (s *SQLiteStore) CreateTask(ctx context.Context, task model.Task) (*model.Task, error) {
	if strings.TrimSpace(task.Title) == "" {
		return nil, fmt.Errorf("task title must not be empty")
	}
	if task.ID == "" {
		task.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	task.CreatedAt = now
	task.UpdatedAt = now
	if task.Status == "" {
		task.Status = model.TaskStatusTodo
	}
	if task.Priority == "" {
		task.Priority = model.PriorityMedium
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO tasks (
			id, title, description, status, priority,
			project_id, due_date, user_id,
			created_at, updated_at, completed_at, deleted_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		task.ID, task.Title, task.Description, task.Status, task.Priority,
		task.ProjectID, task.DueDate, task.UserID,
		task.CreatedAt, task.UpdatedAt, task.CompletedAt, task.DeletedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("creating task: %w", err)
	}
	return &task, nil
}

// UpdateTask updates an existing task by ID. completed_at is managed
// from the status transition.
func (s *SQLiteStore) UpdateTask(ctx context.Context, task model.Task) error {
	if strings.TrimSpace(task.Title) == "" {
		return fmt.Errorf("task title must not be empty")
	}

	now := time.Now().UTC()
	task.UpdatedAt = now

	if task.Status == model.TaskStatusCompleted && task.CompletedAt == nil {
		task.CompletedAt = &now
	} else if task.Status != model.TaskStatusCompleted {
		task.CompletedAt = nil
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE tasks SET
			title = ?, description = ?, status = ?, priority = ?,
			project_id = ?, due_date = ?,
			updated_at = ?, completed_at = ?
		WHERE id = ?`,
		task.Title, task.Description, task.Status, task.Priority,
		task.ProjectID, task.DueDate,
		task.UpdatedAt, task.CompletedAt,
		task.ID,
	)
	if err != nil {
		return fmt.Errorf("updating task %s: %w", task.ID, err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("task %s: %w", task.ID, ErrNotFound)
	}
	return nil
}

// SetTaskStatus moves a task into the given status and keeps
// completed_at in sync with the transition.
func (s *SQLiteStore) SetTaskStatus(ctx context.Context, id, status string) error {
	if !model.ValidTaskStatus(status) {
		return fmt.Errorf("invalid task status %q", status)
	}

	now := time.Now().UTC()
	var completedAt *time.Time
	if status == model.TaskStatusCompleted {
		completedAt = &now
	}

	result, err := s.db.ExecContext(ctx,
		"UPDATE tasks SET status = ?, completed_at = ?, updated_at = ? WHERE id = ?",
		status, completedAt, now, id,
	)
	if err != nil {
		return fmt.Errorf("setting status for task %s: %w", id, err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("task %s: %w", id, ErrNotFound)
	}
	return nil
}

// SoftDeleteTask marks a task deleted without removing the row.
func (s *SQLiteStore) SoftDeleteTask(ctx context.Context, id string) error {
	now := time.Now().UTC()
	result, err := s.db.ExecContext(ctx,
		"UPDATE tasks SET deleted_at = ?, updated_at = ? WHERE id = ? AND deleted_at IS NULL",
		now, now, id,
	)
	if err != nil {
		return fmt.Errorf("soft-deleting task %s: %w", id, err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("task %s: %w", id, ErrNotFound)
	}
	return nil
}

// RestoreTask clears the soft-delete marker.
func (s *SQLiteStore) RestoreTask(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx,
		"UPDATE tasks SET deleted_at = NULL, updated_at = ? WHERE id = ? AND deleted_at IS NOT NULL",
		time.Now().UTC(), id,
	)
	if err != nil {
		return fmt.Errorf("restoring task %s: %w", id, err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("task %s: %w", id, ErrNotFound)
	}
	return nil
}

// HardDeleteTask removes a task row. Cascades to subtasks, reminders,
// notes, and attachments.
func (s *SQLiteStore) HardDeleteTask(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM tasks WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting task %s: %w", id, err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("task %s: %w", id, ErrNotFound)
	}
	return nil
}

// PurgeCompletedBefore hard-deletes tasks completed before cutoff and
// returns how many rows were removed.
func (s *SQLiteStore) PurgeCompletedBefore(ctx context.Context, cutoff time.Time) (int, error) {
	result, err := s.db.ExecContext(ctx,
		"DELETE FROM tasks WHERE status = ? AND completed_at IS NOT NULL AND completed_at < ?",
		model.TaskStatusCompleted, cutoff.UTC(),
	)
	if err != nil {
		return 0, fmt.Errorf("purging completed tasks: %w", err)
	}
	rows, _ := result.RowsAffected()
	return int(rows), nil
}

// GetTaskByID retrieves a single task by ID, including its subtasks.
func (s *SQLiteStore) GetTaskByID(ctx context.Context, id string) (*model.Task, error) {
	row := s.db.QueryRowxContext(ctx, "SELECT * FROM tasks WHERE id = ?", id)

	task, err := scanTask(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("task %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("getting task %s: %w", id, err)
	}

	subs, err := s.GetSubtasks(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("loading subtasks for task %s: %w", id, err)
	}
	task.Subtasks = subs

	return &task, nil
}

// GetTasks retrieves tasks matching the filter. Soft-deleted tasks are
// excluded unless the filter asks for them.
func (s *SQLiteStore) GetTasks(ctx context.Context, filter TaskFilter) ([]model.Task, error) {
	query, args := buildTaskQuery("SELECT *", filter)

	rows, err := s.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying tasks: %w", err)
	}
	defer rows.Close()

	var tasks []model.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	return tasks, rows.Err()
}

// CountTasks returns the count of tasks matching the filter.
func (s *SQLiteStore) CountTasks(ctx context.Context, filter TaskFilter) (int, error) {
	query, args := buildTaskQuery("SELECT COUNT(*)", filter)

	var count int
	if err := s.db.GetContext(ctx, &count, query, args...); err != nil {
		return 0, fmt.Errorf("counting tasks: %w", err)
	}
	return count, nil
}

// buildTaskQuery constructs the SQL query and args for a TaskFilter.
func buildTaskQuery(selectClause string, filter TaskFilter) (string, []interface{}) {
	var conditions []string
	var args []interface{}

	if !filter.IncludeDeleted {
		conditions = append(conditions, "deleted_at IS NULL")
	}
	if filter.Status != nil {
		conditions = append(conditions, "status = ?")
		args = append(args, *filter.Status)
	}
	if filter.Priority != nil {
		conditions = append(conditions, "priority = ?")
		args = append(args, *filter.Priority)
	}
	if filter.ProjectID != nil {
		if *filter.ProjectID == "none" {
			conditions = append(conditions, "project_id IS NULL")
		} else {
			conditions = append(conditions, "project_id = ?")
			args = append(args, *filter.ProjectID)
		}
	}
	if filter.Query != nil && *filter.Query != "" {
		conditions = append(conditions, "(title LIKE ? OR description LIKE ?)")
		q := "%" + *filter.Query + "%"
		args = append(args, q, q)
	}
	if filter.DueAfter != nil {
		conditions = append(conditions, "due_date >= ?")
		args = append(args, filter.DueAfter.UTC())
	}
	if filter.DueBefore != nil {
		conditions = append(conditions, "due_date < ?")
		args = append(args, filter.DueBefore.UTC())
	}

	query := selectClause + " FROM tasks"
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}

	sortBy := "created_at"
	if filter.SortBy != "" {
		allowed := map[string]bool{
			"due_date":   true,
			"priority":   true,
			"created_at": true,
			"updated_at": true,
			"title":      true,
		}
		if allowed[filter.SortBy] {
			sortBy = filter.SortBy
		}
	}
	direction := "ASC"
	if filter.SortDesc {
		direction = "DESC"
	}
	query += fmt.Sprintf(" ORDER BY %s %s", sortBy, direction)

	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", filter.Limit)
	}
	if filter.Offset > 0 {
		query += fmt.Sprintf(" OFFSET %d", filter.Offset)
	}

	return query, args
}

// scanTask scans a task row from a sqlx row or rows value.
func scanTask(row interface{ Scan(dest ...interface{}) error }) (model.Task, error) {
	var (
		task        model.Task
		projectID   *string
		dueDate     *time.Time
		completedAt *time.Time
		deletedAt   *time.Time
	)

	err := row.Scan(
		&task.ID, &task.Title, &task.Description, &task.Status, &task.Priority,
		&projectID, &dueDate, &task.UserID,
		&task.CreatedAt, &task.UpdatedAt, &completedAt, &deletedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Task{}, err
		}
		return model.Task{}, fmt.Errorf("scanning task row: %w", err)
	}

	task.ProjectID = projectID
	task.DueDate = dueDate
	task.CompletedAt = completedAt
	task.DeletedAt = deletedAt

	return task, nil
}
