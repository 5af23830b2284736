package model

import "time"

// Task status constants. Status is the single source of truth for
// completion; the boolean view is derived via Task.Completed.
const (
	TaskStatusTodo       = "todo"
	TaskStatusInProgress = "in_progress"
	TaskStatusCompleted  = "completed"
	TaskStatusCancelled  = "cancelled"
)

// Task priority constants.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// MaxTitleLen is the upper bound on task titles, enforced at the
// service boundary.
const MaxTitleLen = 200

// ValidTaskStatus reports whether s is one of the closed status values.
func ValidTaskStatus(s string) bool {
	switch s {
	case TaskStatusTodo, TaskStatusInProgress, TaskStatusCompleted, TaskStatusCancelled:
		return true
	}
	return false
}

// ValidPriority reports whether p is one of the closed priority values.
func ValidPriority(p string) bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Task is a single to-do item owned by a user.
type Task struct {
	ID          string     `json:"id" db:"id"`
	Title       string     `json:"title" db:"title"`
	Description string     `json:"description" db:"description"`
	Status      string     `json:"status" db:"status"`
	Priority    string     `json:"priority" db:"priority"`
	ProjectID   *string    `json:"project_id,omitempty" db:"project_id"`
	DueDate     *time.Time `json:"due_date,omitempty" db:"due_date"`
	UserID      string     `json:"user_id" db:"user_id"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty" db:"completed_at"`
	DeletedAt   *time.Time `json:"deleted_at,omitempty" db:"deleted_at"`

	// Subtasks is populated by queries that load the full task.
	Subtasks []Subtask `json:"subtasks,omitempty" db:"-"`
}

// Completed reports whether the task is in the completed status.
func (t Task) Completed() bool {
	return t.Status == TaskStatusCompleted
}

// Deleted reports whether the task has been soft-deleted.
func (t Task) Deleted() bool {
	return t.DeletedAt != nil
}

// Overdue reports whether the task has a due date strictly before now
// and is not completed.
func (t Task) Overdue(now time.Time) bool {
	return t.DueDate != nil && t.DueDate.Before(now) && !t.Completed()
}
