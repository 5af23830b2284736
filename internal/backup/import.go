package backup

import (
	"context"
	"encoding/json"
	"fmt"

	"taskpad/internal/model"
)

// Resolution selects how an import proceeds when the payload's schema
// version differs from the running one.
type Resolution int

const (
	// ResolutionCancel refuses the import on any version mismatch.
	ResolutionCancel Resolution = iota
	// ResolutionMigrate runs a best-effort field-by-field migration,
	// filling newly introduced fields with defaults.
	ResolutionMigrate
	// ResolutionPreview parses the payload without committing any
	// write, returning it read-only. Unlike the other resolutions it
	// applies regardless of version.
	ResolutionPreview
)

// ImportOptions controls an ImportJSON call.
type ImportOptions struct {
	// Resolution applies when the payload version mismatches.
	Resolution Resolution
	// Replace wipes existing tasks and projects before loading. The
	// wipe and the load commit in one transaction. Callers must gate
	// this behind an explicit user confirmation.
	Replace bool
}

// ImportResult reports what an import did.
type ImportResult struct {
	Version          string
	TasksImported    int
	ProjectsImported int
	Migrated         bool

	// Preview holds the parsed payload when the preview resolution
	// ran; the store was not touched.
	Preview *Preview
}

// Preview is a read-only view of a parsed payload.
type Preview struct {
	Version  string
	Tasks    []model.Task
	Projects []model.Project
}

// rawEnvelope uses pointers so missing required keys are detectable.
type rawEnvelope struct {
	Version    *string  `json:"version"`
	ExportDate string   `json:"exportDate"`
	Data       *payload `json:"data"`
}

// ImportJSON parses content and loads it into the store. A payload
// missing the version or data keys fails with ErrFormat and no partial
// import. A version mismatch is resolved by opts.Resolution; matching
// versions import directly. Preview parses and returns the payload
// without writing, whatever the version.
func (s *Serializer) ImportJSON(ctx context.Context, content string, opts ImportOptions) (*ImportResult, error) {
	var raw rawEnvelope
	if err := json.Unmarshal([]byte(content), &raw); err != nil {
		return nil, fmt.Errorf("parsing backup: %w: %v", ErrFormat, err)
	}
	if raw.Version == nil {
		return nil, formatErr("missing required key \"version\"")
	}
	if raw.Data == nil {
		return nil, formatErr("missing required key \"data\"")
	}

	version := *raw.Version
	migrated := false

	if version != SchemaVersion && opts.Resolution != ResolutionPreview {
		switch opts.Resolution {
		case ResolutionCancel:
			return nil, &VersionMismatchError{PayloadVersion: version, RunningVersion: SchemaVersion}
		case ResolutionMigrate:
			migrated = true
		default:
			return nil, fmt.Errorf("unknown resolution %d", opts.Resolution)
		}
	}

	tasks := make([]model.Task, 0, len(raw.Data.Todos))
	for i, t := range raw.Data.Todos {
		task, err := importTask(t)
		if err != nil {
			return nil, fmt.Errorf("todo %d: %w", i, err)
		}
		tasks = append(tasks, task)
	}
	projects := make([]model.Project, 0, len(raw.Data.Projects))
	for i, p := range raw.Data.Projects {
		if p.Name == "" {
			return nil, formatErr(fmt.Sprintf("project %d: missing name", i))
		}
		projects = append(projects, model.Project{
			ID:          p.ID,
			Name:        p.Name,
			Description: p.Description,
			Color:       p.Color,
			Icon:        p.Icon,
			Archived:    p.Archived,
			CreatedAt:   p.CreatedAt,
		})
	}

	if opts.Resolution == ResolutionPreview {
		return &ImportResult{
			Version: version,
			Preview: &Preview{Version: version, Tasks: tasks, Projects: projects},
		}, nil
	}

	if err := s.store.ImportSnapshot(ctx, s.user.ID, projects, tasks, opts.Replace); err != nil {
		s.log.Error().Err(err).Msg("import failed")
		return nil, err
	}

	s.log.Info().Int("tasks", len(tasks)).Int("projects", len(projects)).
		Bool("replace", opts.Replace).Bool("migrated", migrated).Msg("import applied")

	return &ImportResult{
		Version:          version,
		TasksImported:    len(tasks),
		ProjectsImported: len(projects),
		Migrated:         migrated,
	}, nil
}

// importTask converts a portable task to the model, filling fields a
// newer schema introduced with defaults. Older payloads may carry only
// the completed boolean, or legacy status strings.
func importTask(t exportTask) (model.Task, error) {
	if t.Title == "" {
		return model.Task{}, formatErr("missing title")
	}

	status := t.Status
	switch status {
	case "":
		// Pre-1.0 payloads carry only the boolean.
		if t.Completed {
			status = model.TaskStatusCompleted
		} else {
			status = model.TaskStatusTodo
		}
	case "pending", "open":
		status = model.TaskStatusTodo
	case "done":
		status = model.TaskStatusCompleted
	default:
		if !model.ValidTaskStatus(status) {
			return model.Task{}, formatErr(fmt.Sprintf("unknown status %q", status))
		}
	}

	priority := t.Priority
	if priority == "" {
		priority = model.PriorityMedium
	}
	if !model.ValidPriority(priority) {
		return model.Task{}, formatErr(fmt.Sprintf("unknown priority %q", priority))
	}

	task := model.Task{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Status:      status,
		Priority:    priority,
		DueDate:     t.DueDate,
		CreatedAt:   t.CreatedAt,
		CompletedAt: t.CompletedAt,
		DeletedAt:   t.DeletedAt,
	}
	if t.ProjectID != "" {
		projectID := t.ProjectID
		task.ProjectID = &projectID
	}
	return task, nil
}
