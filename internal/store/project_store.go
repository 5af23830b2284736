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

// CreateProject inserts a new project.
func (s *SQLiteStore) CreateProject(ctx context.Context, project model.Project) (*model.Project, error) {
	if strings.TrimSpace(project.Name) == "" {
		return nil, fmt.Errorf("project name must not be empty")
	}
	if project.ID == "" {
		project.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	project.CreatedAt = now
	project.UpdatedAt = now

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO projects (id, name, description, color, icon, archived, user_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		project.ID, project.Name, project.Description, project.Color, project.Icon,
		boolToInt(project.Archived), project.UserID, project.CreatedAt, project.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("creating project: %w", err)
	}
	return &project, nil
}

// UpdateProject updates an existing project.
func (s *SQLiteStore) UpdateProject(ctx context.Context, project model.Project) error {
	if strings.TrimSpace(project.Name) == "" {
		return fmt.Errorf("project name must not be empty")
	}
	project.UpdatedAt = time.Now().UTC()

	result, err := s.db.ExecContext(ctx, `
		UPDATE projects SET
			name = ?, description = ?, color = ?, icon = ?,
			archived = ?, updated_at = ?
		WHERE id = ?`,
		project.Name, project.Description, project.Color, project.Icon,
		boolToInt(project.Archived), project.UpdatedAt,
		project.ID,
	)
	if err != nil {
		return fmt.Errorf("updating project %s: %w", project.ID, err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("project %s: %w", project.ID, ErrNotFound)
	}
	return nil
}

// CountProjectTasks counts non-deleted tasks referencing the project.
// Feeds the confirmation gate before a guarded delete.
func (s *SQLiteStore) CountProjectTasks(ctx context.Context, id string) (int, error) {
	var count int
	err := s.db.GetContext(ctx, &count,
		"SELECT COUNT(*) FROM tasks WHERE project_id = ? AND deleted_at IS NULL", id)
	if err != nil {
		return 0, fmt.Errorf("counting tasks for project %s: %w", id, err)
	}
	return count, nil
}

// DeleteProject removes a project under the given dependent policy.
// The dependent handling and the delete itself commit in one
// transaction, so a crash mid-operation cannot leave refs half
// updated.
func (s *SQLiteStore) DeleteProject(ctx context.Context, id string, policy DeletePolicy) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	// Same predicate as CountProjectTasks: trashed tasks do not block
	// an abort, and their refs clear via ON DELETE SET NULL.
	var dependents int
	err = tx.GetContext(ctx, &dependents,
		"SELECT COUNT(*) FROM tasks WHERE project_id = ? AND deleted_at IS NULL", id)
	if err != nil {
		return fmt.Errorf("counting dependents for project %s: %w", id, err)
	}

	switch policy {
	case DeleteAbort:
		if dependents > 0 {
			return fmt.Errorf("project %s has %d dependent tasks", id, dependents)
		}
	case DeleteReassign:
		_, err = tx.ExecContext(ctx,
			"UPDATE tasks SET project_id = NULL, updated_at = ? WHERE project_id = ?",
			time.Now().UTC(), id)
		if err != nil {
			return fmt.Errorf("reassigning tasks for project %s: %w", id, err)
		}
	case DeleteCascade:
		_, err = tx.ExecContext(ctx, "DELETE FROM tasks WHERE project_id = ?", id)
		if err != nil {
			return fmt.Errorf("cascading delete for project %s: %w", id, err)
		}
	default:
		return fmt.Errorf("unknown delete policy %d", policy)
	}

	result, err := tx.ExecContext(ctx, "DELETE FROM projects WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting project %s: %w", id, err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("project %s: %w", id, ErrNotFound)
	}

	return tx.Commit()
}

// GetProjectByID retrieves a single project by ID.
func (s *SQLiteStore) GetProjectByID(ctx context.Context, id string) (*model.Project, error) {
	var project model.Project
	var archivedInt int

	err := s.db.QueryRowxContext(ctx, "SELECT * FROM projects WHERE id = ?", id).Scan(
		&project.ID, &project.Name, &project.Description,
		&project.Color, &project.Icon, &archivedInt,
		&project.UserID, &project.CreatedAt, &project.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("project %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("getting project %s: %w", id, err)
	}
	project.Archived = archivedInt != 0
	return &project, nil
}

// GetProjects retrieves all projects, optionally including archived ones.
func (s *SQLiteStore) GetProjects(ctx context.Context, includeArchived bool) ([]model.Project, error) {
	query := "SELECT * FROM projects"
	if !includeArchived {
		query += " WHERE archived = 0"
	}
	query += " ORDER BY name"

	rows, err := s.db.QueryxContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying projects: %w", err)
	}
	defer rows.Close()

	var projects []model.Project
	for rows.Next() {
		var p model.Project
		var archivedInt int
		err := rows.Scan(
			&p.ID, &p.Name, &p.Description,
			&p.Color, &p.Icon, &archivedInt,
			&p.UserID, &p.CreatedAt, &p.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning project row: %w", err)
		}
		p.Archived = archivedInt != 0
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

// ArchiveProject sets the archived flag to true.
func (s *SQLiteStore) ArchiveProject(ctx context.Context, id string) error {
	return s.setProjectArchived(ctx, id, true)
}

// RestoreProject sets the archived flag to false.
func (s *SQLiteStore) RestoreProject(ctx context.Context, id string) error {
	return s.setProjectArchived(ctx, id, false)
}

func (s *SQLiteStore) setProjectArchived(ctx context.Context, id string, archived bool) error {
	result, err := s.db.ExecContext(ctx,
		"UPDATE projects SET archived = ?, updated_at = ? WHERE id = ?",
		boolToInt(archived), time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("archiving project %s: %w", id, err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("project %s: %w", id, ErrNotFound)
	}
	return nil
}
