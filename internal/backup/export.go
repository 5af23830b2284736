package backup

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"taskpad/internal/model"
	"taskpad/internal/store"
)

// csvHeader is the fixed column layout of CSV exports.
const csvHeader = `"Title","Description","Completed","Priority","Project","Due Date","Created Date"`

// ExportJSON serializes all tasks and projects into the version-tagged
// envelope. Soft-deleted tasks are included so a restore loses nothing.
func (s *Serializer) ExportJSON(ctx context.Context) (string, error) {
	tasks, projects, err := s.snapshot(ctx)
	if err != nil {
		return "", err
	}

	env := envelope{
		Version:    SchemaVersion,
		ExportDate: time.Now().UTC().Format(time.RFC3339),
		Data: payload{
			Todos:    make([]exportTask, 0, len(tasks)),
			Projects: make([]exportProject, 0, len(projects)),
		},
	}
	for _, t := range tasks {
		env.Data.Todos = append(env.Data.Todos, toExportTask(t))
	}
	for _, p := range projects {
		env.Data.Projects = append(env.Data.Projects, toExportProject(p))
	}

	out, err := json.MarshalIndent(env, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshaling export: %w", err)
	}

	s.log.Debug().Int("todos", len(env.Data.Todos)).
		Int("projects", len(env.Data.Projects)).Msg("exported json snapshot")
	return string(out), nil
}

// ExportCSV serializes tasks into a quoted CSV table. The format is
// lossy relative to JSON: projects survive only as a name column, and
// subtasks, notes, and reminders are omitted entirely.
func (s *Serializer) ExportCSV(ctx context.Context) (string, error) {
	tasks, projects, err := s.snapshot(ctx)
	if err != nil {
		return "", err
	}

	projectNames := make(map[string]string, len(projects))
	for _, p := range projects {
		projectNames[p.ID] = p.Name
	}

	var b strings.Builder
	b.WriteString(csvHeader)
	b.WriteString("\n")

	for _, t := range tasks {
		projectName := ""
		if t.ProjectID != nil {
			projectName = projectNames[*t.ProjectID]
		}
		dueDate := ""
		if t.DueDate != nil {
			dueDate = t.DueDate.UTC().Format(time.RFC3339)
		}

		row := []string{
			t.Title,
			t.Description,
			fmt.Sprintf("%t", t.Completed()),
			t.Priority,
			projectName,
			dueDate,
			t.CreatedAt.UTC().Format(time.RFC3339),
		}
		for i, field := range row {
			if i > 0 {
				b.WriteString(",")
			}
			b.WriteString(quoteCSV(field))
		}
		b.WriteString("\n")
	}

	return b.String(), nil
}

// quoteCSV wraps a field in double quotes, escaping embedded quotes by
// doubling them. Every field is quoted, matching the fixed export
// format.
func quoteCSV(field string) string {
	return `"` + strings.ReplaceAll(field, `"`, `""`) + `"`
}

// snapshot reads the full task and project sets.
func (s *Serializer) snapshot(ctx context.Context) ([]model.Task, []model.Project, error) {
	tasks, err := s.store.GetTasks(ctx, store.TaskFilter{IncludeDeleted: true, SortBy: "created_at"})
	if err != nil {
		return nil, nil, fmt.Errorf("reading tasks for export: %w", err)
	}
	projects, err := s.store.GetProjects(ctx, true)
	if err != nil {
		return nil, nil, fmt.Errorf("reading projects for export: %w", err)
	}
	return tasks, projects, nil
}
