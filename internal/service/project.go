package service

import (
	"context"
	"fmt"
	"strings"

	"taskpad/internal/aggregate"
	"taskpad/internal/model"
	"taskpad/internal/store"
)

// ProjectStats summarizes task progress within one project.
type ProjectStats struct {
	Total      int            `json:"total"`
	Completed  int            `json:"completed"`
	Pending    int            `json:"pending"`
	Progress   float64        `json:"progress"`
	Priorities map[string]int `json:"priorities"`
}

// NewProject carries the fields a user supplies when creating a project.
type NewProject struct {
	Name        string
	Description string
	Color       string
	Icon        string
}

// CreateProject validates and persists a new project.
func (s *Service) CreateProject(ctx context.Context, in NewProject) (*model.Project, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, validationErr("name", "must not be empty")
	}

	project, err := s.store.CreateProject(ctx, model.Project{
		Name:        name,
		Description: strings.TrimSpace(in.Description),
		Color:       in.Color,
		Icon:        in.Icon,
		UserID:      s.user.ID,
	})
	if err != nil {
		s.log.Error().Err(err).Str("name", name).Msg("create project failed")
		return nil, err
	}
	return project, nil
}

// UpdateProject persists changes to an existing project.
func (s *Service) UpdateProject(ctx context.Context, project model.Project) error {
	if strings.TrimSpace(project.Name) == "" {
		return validationErr("name", "must not be empty")
	}
	return s.store.UpdateProject(ctx, project)
}

// ArchiveProject hides a project from active lists without deleting it.
func (s *Service) ArchiveProject(ctx context.Context, id string) error {
	return s.store.ArchiveProject(ctx, id)
}

// RestoreProject brings an archived project back.
func (s *Service) RestoreProject(ctx context.Context, id string) error {
	return s.store.RestoreProject(ctx, id)
}

// GetProject loads a single project.
func (s *Service) GetProject(ctx context.Context, id string) (*model.Project, error) {
	return s.store.GetProjectByID(ctx, id)
}

// ListProjects returns projects, optionally including archived ones.
func (s *Service) ListProjects(ctx context.Context, includeArchived bool) ([]model.Project, error) {
	return s.store.GetProjects(ctx, includeArchived)
}

// ProjectDependents counts the tasks still referencing a project.
// Callers use it as the confirmation gate before DeleteProject.
func (s *Service) ProjectDependents(ctx context.Context, id string) (int, error) {
	if _, err := s.store.GetProjectByID(ctx, id); err != nil {
		return 0, err
	}
	return s.store.CountProjectTasks(ctx, id)
}

// DeleteProject removes a project under the chosen dependent policy.
// With store.DeleteAbort the call fails with ErrHasDependents while
// dependent tasks exist; reassign and cascade each commit atomically
// with the delete.
func (s *Service) DeleteProject(ctx context.Context, id string, policy store.DeletePolicy) error {
	if policy == store.DeleteAbort {
		count, err := s.ProjectDependents(ctx, id)
		if err != nil {
			return err
		}
		if count > 0 {
			return fmt.Errorf("project %s has %d tasks: %w", id, count, ErrHasDependents)
		}
	}

	if err := s.store.DeleteProject(ctx, id, policy); err != nil {
		s.log.Error().Err(err).Str("project_id", id).Msg("delete project failed")
		return err
	}

	s.log.Info().Str("project_id", id).Int("policy", int(policy)).Msg("project deleted")
	return nil
}

// GetProjectStats computes completion progress for one project.
// Progress is a percentage; an empty project reports zero rather than
// dividing by zero.
func (s *Service) GetProjectStats(ctx context.Context, projectID string) (ProjectStats, error) {
	if _, err := s.store.GetProjectByID(ctx, projectID); err != nil {
		return ProjectStats{}, err
	}

	tasks, err := s.store.GetTasks(ctx, store.TaskFilter{ProjectID: &projectID})
	if err != nil {
		return ProjectStats{}, err
	}

	stats := ProjectStats{
		Total:      len(tasks),
		Completed:  len(aggregate.CompletedTasks(tasks)),
		Priorities: aggregate.CountByPriority(tasks),
	}
	stats.Pending = stats.Total - stats.Completed
	if stats.Total > 0 {
		stats.Progress = float64(stats.Completed) / float64(stats.Total) * 100
	}
	return stats, nil
}
