package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"taskpad/internal/model"
)

// errBothRefs is the XOR violation: a note or attachment may point at
// a task or a project, never both.
var errBothRefs = fmt.Errorf("task and project refs are mutually exclusive")

// CreateNote inserts a note attached to a task or a project.
func (s *SQLiteStore) CreateNote(ctx context.Context, n model.Note) (*model.Note, error) {
	if strings.TrimSpace(n.Content) == "" {
		return nil, fmt.Errorf("note content must not be empty")
	}
	if n.TaskID != nil && n.ProjectID != nil {
		return nil, errBothRefs
	}
	if n.ID == "" {
		n.ID = uuid.New().String()
	}
	n.CreatedAt = time.Now().UTC()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO notes (id, task_id, project_id, content, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		n.ID, n.TaskID, n.ProjectID, n.Content, n.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("creating note: %w", err)
	}
	return &n, nil
}

// DeleteNote removes a note by ID.
func (s *SQLiteStore) DeleteNote(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM notes WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting note %s: %w", id, err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("note %s: %w", id, ErrNotFound)
	}
	return nil
}

// GetNotesForTask returns notes attached to a task, newest first.
func (s *SQLiteStore) GetNotesForTask(ctx context.Context, taskID string) ([]model.Note, error) {
	return s.queryNotes(ctx,
		"SELECT * FROM notes WHERE task_id = ? ORDER BY created_at DESC", taskID)
}

// GetNotesForProject returns notes attached to a project, newest first.
func (s *SQLiteStore) GetNotesForProject(ctx context.Context, projectID string) ([]model.Note, error) {
	return s.queryNotes(ctx,
		"SELECT * FROM notes WHERE project_id = ? ORDER BY created_at DESC", projectID)
}

func (s *SQLiteStore) queryNotes(ctx context.Context, query string, args ...interface{}) ([]model.Note, error) {
	rows, err := s.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying notes: %w", err)
	}
	defer rows.Close()

	var notes []model.Note
	for rows.Next() {
		var n model.Note
		err := rows.Scan(&n.ID, &n.TaskID, &n.ProjectID, &n.Content, &n.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scanning note row: %w", err)
		}
		notes = append(notes, n)
	}
	return notes, rows.Err()
}

// CreateAttachment inserts an attachment record for a task or project.
func (s *SQLiteStore) CreateAttachment(ctx context.Context, a model.Attachment) (*model.Attachment, error) {
	if strings.TrimSpace(a.URI) == "" {
		return nil, fmt.Errorf("attachment uri must not be empty")
	}
	if a.TaskID != nil && a.ProjectID != nil {
		return nil, errBothRefs
	}
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	a.CreatedAt = time.Now().UTC()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO attachments (id, task_id, project_id, uri, type, name, size_bytes, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.TaskID, a.ProjectID, a.URI, a.Type, a.Name, a.SizeBytes, a.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("creating attachment: %w", err)
	}
	return &a, nil
}

// DeleteAttachment removes an attachment record by ID. The underlying
// file is the platform's problem, not the store's.
func (s *SQLiteStore) DeleteAttachment(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM attachments WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting attachment %s: %w", id, err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("attachment %s: %w", id, ErrNotFound)
	}
	return nil
}

// GetAttachmentsForTask returns attachments for a task, newest first.
func (s *SQLiteStore) GetAttachmentsForTask(ctx context.Context, taskID string) ([]model.Attachment, error) {
	rows, err := s.db.QueryxContext(ctx,
		"SELECT * FROM attachments WHERE task_id = ? ORDER BY created_at DESC", taskID)
	if err != nil {
		return nil, fmt.Errorf("querying attachments: %w", err)
	}
	defer rows.Close()

	var attachments []model.Attachment
	for rows.Next() {
		var a model.Attachment
		err := rows.Scan(&a.ID, &a.TaskID, &a.ProjectID, &a.URI,
			&a.Type, &a.Name, &a.SizeBytes, &a.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scanning attachment row: %w", err)
		}
		attachments = append(attachments, a)
	}
	return attachments, rows.Err()
}
