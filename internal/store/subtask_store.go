package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"taskpad/internal/model"
)

// AddSubtask inserts a new subtask at the end of its parent's list.
func (s *SQLiteStore) AddSubtask(ctx context.Context, sub model.Subtask) (*model.Subtask, error) {
	if strings.TrimSpace(sub.Title) == "" {
		return nil, fmt.Errorf("subtask title must not be empty")
	}
	if sub.ID == "" {
		sub.ID = uuid.New().String()
	}
	sub.CreatedAt = time.Now().UTC()

	// New subtasks always append; sort_order stays dense because the
	// count of existing rows is the next free index.
	var count int
	err := s.db.GetContext(ctx, &count,
		"SELECT COUNT(*) FROM subtasks WHERE task_id = ?", sub.TaskID)
	if err != nil {
		return nil, fmt.Errorf("counting subtasks: %w", err)
	}
	sub.SortOrder = count

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO subtasks (id, task_id, title, done, sort_order, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		sub.ID, sub.TaskID, sub.Title, boolToInt(sub.Done),
		sub.SortOrder, sub.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("adding subtask: %w", err)
	}
	return &sub, nil
}

// UpdateSubtask updates title and done state of a subtask.
func (s *SQLiteStore) UpdateSubtask(ctx context.Context, sub model.Subtask) error {
	if strings.TrimSpace(sub.Title) == "" {
		return fmt.Errorf("subtask title must not be empty")
	}
	result, err := s.db.ExecContext(ctx,
		"UPDATE subtasks SET title = ?, done = ? WHERE id = ?",
		sub.Title, boolToInt(sub.Done), sub.ID,
	)
	if err != nil {
		return fmt.Errorf("updating subtask %s: %w", sub.ID, err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("subtask %s: %w", sub.ID, ErrNotFound)
	}
	return nil
}

// DeleteSubtask removes a subtask and renumbers its siblings so the
// remaining sort_order values stay dense.
func (s *SQLiteStore) DeleteSubtask(ctx context.Context, id string) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	var taskID string
	err = tx.GetContext(ctx, &taskID, "SELECT task_id FROM subtasks WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("subtask %s: %w", id, ErrNotFound)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM subtasks WHERE id = ?", id); err != nil {
		return fmt.Errorf("deleting subtask %s: %w", id, err)
	}

	if err := renumberSubtasks(ctx, tx, taskID); err != nil {
		return err
	}

	return tx.Commit()
}

// ToggleSubtask flips the done state of a subtask.
func (s *SQLiteStore) ToggleSubtask(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx,
		"UPDATE subtasks SET done = CASE WHEN done = 0 THEN 1 ELSE 0 END WHERE id = ?",
		id)
	if err != nil {
		return fmt.Errorf("toggling subtask %s: %w", id, err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("subtask %s: %w", id, ErrNotFound)
	}
	return nil
}

// GetSubtaskByID retrieves a single subtask by ID.
func (s *SQLiteStore) GetSubtaskByID(ctx context.Context, id string) (*model.Subtask, error) {
	var sub model.Subtask
	var doneInt int
	err := s.db.QueryRowxContext(ctx,
		"SELECT * FROM subtasks WHERE id = ?", id).Scan(
		&sub.ID, &sub.TaskID, &sub.Title, &doneInt, &sub.SortOrder, &sub.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("subtask %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("getting subtask %s: %w", id, err)
	}
	sub.Done = doneInt != 0
	return &sub, nil
}

// GetSubtasks returns all subtasks for a task, ordered by sort_order.
func (s *SQLiteStore) GetSubtasks(ctx context.Context, taskID string) ([]model.Subtask, error) {
	rows, err := s.db.QueryxContext(ctx,
		"SELECT * FROM subtasks WHERE task_id = ? ORDER BY sort_order", taskID)
	if err != nil {
		return nil, fmt.Errorf("querying subtasks: %w", err)
	}
	defer rows.Close()

	var subs []model.Subtask
	for rows.Next() {
		var sub model.Subtask
		var doneInt int
		err := rows.Scan(&sub.ID, &sub.TaskID, &sub.Title, &doneInt,
			&sub.SortOrder, &sub.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scanning subtask row: %w", err)
		}
		sub.Done = doneInt != 0
		subs = append(subs, sub)
	}
	return subs, rows.Err()
}

// ReorderSubtasks moves the subtask at position from to position to
// within the parent's list, then rewrites every sibling's sort_order
// to its new positional index. The full renumbering, not a sparse
// shift, is what keeps the sequence dense and zero-based.
func (s *SQLiteStore) ReorderSubtasks(ctx context.Context, taskID string, from, to int) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	var ids []string
	err = tx.SelectContext(ctx, &ids,
		"SELECT id FROM subtasks WHERE task_id = ? ORDER BY sort_order", taskID)
	if err != nil {
		return fmt.Errorf("loading subtasks for task %s: %w", taskID, err)
	}

	if from < 0 || from >= len(ids) || to < 0 || to >= len(ids) {
		return fmt.Errorf("reorder index out of range: from=%d to=%d len=%d", from, to, len(ids))
	}

	moved := ids[from]
	ids = append(ids[:from], ids[from+1:]...)
	rest := make([]string, 0, len(ids)+1)
	rest = append(rest, ids[:to]...)
	rest = append(rest, moved)
	rest = append(rest, ids[to:]...)

	for i, id := range rest {
		if _, err := tx.ExecContext(ctx,
			"UPDATE subtasks SET sort_order = ? WHERE id = ?", i, id); err != nil {
			return fmt.Errorf("renumbering subtask %s: %w", id, err)
		}
	}

	return tx.Commit()
}

// renumberSubtasks rewrites sort_order to 0..n-1 within a parent,
// preserving the current relative order.
func renumberSubtasks(ctx context.Context, tx *sqlx.Tx, taskID string) error {
	var ids []string
	err := tx.SelectContext(ctx, &ids,
		"SELECT id FROM subtasks WHERE task_id = ? ORDER BY sort_order", taskID)
	if err != nil {
		return fmt.Errorf("loading subtasks for task %s: %w", taskID, err)
	}
	for i, id := range ids {
		if _, err := tx.ExecContext(ctx,
			"UPDATE subtasks SET sort_order = ? WHERE id = ?", i, id); err != nil {
			return fmt.Errorf("renumbering subtask %s: %w", id, err)
		}
	}
	return nil
}
