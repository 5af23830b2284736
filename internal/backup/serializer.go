// Package backup converts the full record set to and from a portable
// representation. JSON exports are lossless for tasks and projects;
// CSV is a lossy task-only view. Imports are version-gated: a payload
// from a different schema version is never applied without an explicit
// caller decision.
package backup

import (
	"time"

	"github.com/rs/zerolog"

	"taskpad/internal/model"
	"taskpad/internal/store"
)

// SchemaVersion tags every export envelope. It advances together with
// the store's migration version whenever the exported shape changes.
const SchemaVersion = "1.0.0"

// Serializer reads and writes store snapshots.
type Serializer struct {
	store store.Store
	user  *model.User
	log   zerolog.Logger
}

// New creates a Serializer over the given store handle.
func New(st store.Store, user *model.User, log zerolog.Logger) *Serializer {
	return &Serializer{store: st, user: user, log: log}
}

// envelope is the export file layout. Field order is fixed by the
// struct, so repeated exports of the same data are byte-identical.
type envelope struct {
	Version    string  `json:"version"`
	ExportDate string  `json:"exportDate"`
	Data       payload `json:"data"`
}

type payload struct {
	Todos    []exportTask    `json:"todos"`
	Projects []exportProject `json:"projects"`
}

// exportTask is the portable task shape. Completed is carried
// alongside status so older consumers that only know the boolean can
// still read the file.
type exportTask struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Completed   bool       `json:"completed"`
	Status      string     `json:"status,omitempty"`
	Priority    string     `json:"priority,omitempty"`
	ProjectID   string     `json:"project_id,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	DeletedAt   *time.Time `json:"deleted_at,omitempty"`
}

type exportProject struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Color       string    `json:"color,omitempty"`
	Icon        string    `json:"icon,omitempty"`
	Archived    bool      `json:"archived"`
	CreatedAt   time.Time `json:"created_at"`
}

func toExportTask(t model.Task) exportTask {
	out := exportTask{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Completed:   t.Completed(),
		Status:      t.Status,
		Priority:    t.Priority,
		DueDate:     t.DueDate,
		CreatedAt:   t.CreatedAt,
		CompletedAt: t.CompletedAt,
		DeletedAt:   t.DeletedAt,
	}
	if t.ProjectID != nil {
		out.ProjectID = *t.ProjectID
	}
	return out
}

func toExportProject(p model.Project) exportProject {
	return exportProject{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Color:       p.Color,
		Icon:        p.Icon,
		Archived:    p.Archived,
		CreatedAt:   p.CreatedAt,
	}
}
