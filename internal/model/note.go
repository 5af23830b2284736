package model

import "time"

// Note is a free-form text entry attached to either a task or a
// project, never both.
type Note struct {
	ID        string    `json:"id" db:"id"`
	TaskID    *string   `json:"task_id,omitempty" db:"task_id"`
	ProjectID *string   `json:"project_id,omitempty" db:"project_id"`
	Content   string    `json:"content" db:"content"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Attachment records the location of a file attached to a task or a
// project. The file itself lives outside the store; URI points at it.
type Attachment struct {
	ID        string    `json:"id" db:"id"`
	TaskID    *string   `json:"task_id,omitempty" db:"task_id"`
	ProjectID *string   `json:"project_id,omitempty" db:"project_id"`
	URI       string    `json:"uri" db:"uri"`
	Type      string    `json:"type" db:"type"`
	Name      string    `json:"name" db:"name"`
	SizeBytes int64     `json:"size_bytes" db:"size_bytes"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
