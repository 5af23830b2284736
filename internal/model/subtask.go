package model

import "time"

// Subtask is a small sub-entry within a task. Its lifecycle is bound
// to the parent task (CASCADE delete). SortOrder values within one
// parent form a dense zero-based sequence.
type Subtask struct {
	ID        string    `json:"id" db:"id"`
	TaskID    string    `json:"task_id" db:"task_id"`
	Title     string    `json:"title" db:"title"`
	Done      bool      `json:"done" db:"done"`
	SortOrder int       `json:"sort_order" db:"sort_order"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
