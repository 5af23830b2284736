package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"taskpad/internal/model"
)

// CreateReminder inserts a new reminder for a task.
func (s *SQLiteStore) CreateReminder(ctx context.Context, r model.Reminder) (*model.Reminder, error) {
	if r.TaskID == "" {
		return nil, fmt.Errorf("reminder must reference a task")
	}
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	r.CreatedAt = time.Now().UTC()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO reminders (id, task_id, fire_at, repeat_rule, last_fired_at, enabled, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.TaskID, r.FireAt.UTC(), r.RepeatRule, r.LastFiredAt,
		boolToInt(r.Enabled), r.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("creating reminder: %w", err)
	}
	return &r, nil
}

// UpdateReminder updates fire time, repeat rule, and enabled state.
func (s *SQLiteStore) UpdateReminder(ctx context.Context, r model.Reminder) error {
	result, err := s.db.ExecContext(ctx,
		"UPDATE reminders SET fire_at = ?, repeat_rule = ?, enabled = ? WHERE id = ?",
		r.FireAt.UTC(), r.RepeatRule, boolToInt(r.Enabled), r.ID,
	)
	if err != nil {
		return fmt.Errorf("updating reminder %s: %w", r.ID, err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("reminder %s: %w", r.ID, ErrNotFound)
	}
	return nil
}

// DeleteReminder removes a reminder by ID.
func (s *SQLiteStore) DeleteReminder(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM reminders WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting reminder %s: %w", id, err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("reminder %s: %w", id, ErrNotFound)
	}
	return nil
}

// GetRemindersForTask returns all reminders for a task ordered by fire time.
func (s *SQLiteStore) GetRemindersForTask(ctx context.Context, taskID string) ([]model.Reminder, error) {
	return s.queryReminders(ctx,
		"SELECT * FROM reminders WHERE task_id = ? ORDER BY fire_at", taskID)
}

// GetDueReminders returns enabled reminders whose fire time has passed
// and which have not fired since it passed.
func (s *SQLiteStore) GetDueReminders(ctx context.Context, now time.Time) ([]model.Reminder, error) {
	return s.queryReminders(ctx, `
		SELECT * FROM reminders
		WHERE enabled = 1 AND fire_at <= ?
		  AND (last_fired_at IS NULL OR last_fired_at < fire_at)
		ORDER BY fire_at`, now.UTC())
}

// MarkReminderFired records that the platform delivered a reminder.
func (s *SQLiteStore) MarkReminderFired(ctx context.Context, id string, firedAt time.Time) error {
	result, err := s.db.ExecContext(ctx,
		"UPDATE reminders SET last_fired_at = ? WHERE id = ?",
		firedAt.UTC(), id,
	)
	if err != nil {
		return fmt.Errorf("marking reminder %s fired: %w", id, err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("reminder %s: %w", id, ErrNotFound)
	}
	return nil
}

func (s *SQLiteStore) queryReminders(ctx context.Context, query string, args ...interface{}) ([]model.Reminder, error) {
	rows, err := s.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying reminders: %w", err)
	}
	defer rows.Close()

	var reminders []model.Reminder
	for rows.Next() {
		var (
			r          model.Reminder
			enabledInt int
			lastFired  *time.Time
		)
		err := rows.Scan(&r.ID, &r.TaskID, &r.FireAt, &r.RepeatRule,
			&lastFired, &enabledInt, &r.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scanning reminder row: %w", err)
		}
		r.Enabled = enabledInt != 0
		r.LastFiredAt = lastFired
		reminders = append(reminders, r)
	}
	return reminders, rows.Err()
}
