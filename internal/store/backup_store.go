package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"taskpad/internal/model"
)

// RecordBackup appends an audit entry for a completed export.
func (s *SQLiteStore) RecordBackup(ctx context.Context, rec model.BackupRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO backups (id, path, type, created_at) VALUES (?, ?, ?, ?)",
		rec.ID, rec.Path, rec.Type, rec.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("recording backup: %w", err)
	}
	return nil
}

// GetBackups returns the backup audit log, newest first.
func (s *SQLiteStore) GetBackups(ctx context.Context) ([]model.BackupRecord, error) {
	rows, err := s.db.QueryxContext(ctx,
		"SELECT * FROM backups ORDER BY created_at DESC")
	if err != nil {
		return nil, fmt.Errorf("querying backups: %w", err)
	}
	defer rows.Close()

	var records []model.BackupRecord
	for rows.Next() {
		var rec model.BackupRecord
		if err := rows.Scan(&rec.ID, &rec.Path, &rec.Type, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning backup row: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// ImportSnapshot loads a set of projects and tasks into the store in
// one transaction. With replace set, existing tasks and projects are
// wiped first, so a mid-import crash cannot leave the store half
// emptied. Imported records get fresh IDs; incoming project refs are
// remapped onto the new project IDs.
func (s *SQLiteStore) ImportSnapshot(
	ctx context.Context,
	userID string,
	projects []model.Project,
	tasks []model.Task,
	replace bool,
) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if replace {
		// Subtasks, reminders, notes, and attachments cascade with
		// their tasks.
		if _, err := tx.ExecContext(ctx, "DELETE FROM tasks"); err != nil {
			return fmt.Errorf("wiping tasks: %w", err)
		}
		if _, err := tx.ExecContext(ctx, "DELETE FROM projects"); err != nil {
			return fmt.Errorf("wiping projects: %w", err)
		}
	}

	now := time.Now().UTC()
	projectIDs := make(map[string]string, len(projects))

	projStmt, err := tx.PreparexContext(ctx, `
		INSERT INTO projects (id, name, description, color, icon, archived, user_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing project insert: %w", err)
	}
	defer projStmt.Close()

	for _, p := range projects {
		newID := uuid.New().String()
		projectIDs[p.ID] = newID

		createdAt := p.CreatedAt
		if createdAt.IsZero() {
			createdAt = now
		}
		_, err = projStmt.ExecContext(ctx,
			newID, p.Name, p.Description, p.Color, p.Icon,
			boolToInt(p.Archived), userID, createdAt, now,
		)
		if err != nil {
			return fmt.Errorf("importing project %q: %w", p.Name, err)
		}
	}

	taskStmt, err := tx.PreparexContext(ctx, `
		INSERT INTO tasks (
			id, title, description, status, priority,
			project_id, due_date, user_id,
			created_at, updated_at, completed_at, deleted_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing task insert: %w", err)
	}
	defer taskStmt.Close()

	for _, t := range tasks {
		var projectID *string
		if t.ProjectID != nil {
			if mapped, ok := projectIDs[*t.ProjectID]; ok {
				projectID = &mapped
			}
			// Refs to projects absent from the payload import as
			// unassigned rather than failing the whole restore.
		}

		createdAt := t.CreatedAt
		if createdAt.IsZero() {
			createdAt = now
		}
		_, err = taskStmt.ExecContext(ctx,
			uuid.New().String(), t.Title, t.Description, t.Status, t.Priority,
			projectID, t.DueDate, userID,
			createdAt, now, t.CompletedAt, t.DeletedAt,
		)
		if err != nil {
			return fmt.Errorf("importing task %q: %w", t.Title, err)
		}
	}

	return tx.Commit()
}
