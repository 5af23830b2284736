package store

import (
	"context"
	"errors"
	"time"

	"taskpad/internal/model"
)

// ErrNotFound is returned when an operation targets a missing record.
// Expected absence is always reported through this sentinel, never
// silently swallowed.
var ErrNotFound = errors.New("not found")

// DeletePolicy selects how a guarded project deletion handles
// dependent tasks.
type DeletePolicy int

const (
	// DeleteAbort refuses the delete while dependents exist.
	DeleteAbort DeletePolicy = iota
	// DeleteReassign nulls the project ref on dependent tasks.
	DeleteReassign
	// DeleteCascade removes dependent tasks with the project.
	DeleteCascade
)

// TaskFilter controls filtering and sorting for task queries.
type TaskFilter struct {
	Status         *string // one of the model.TaskStatus* values, or nil (all)
	Priority       *string // one of the model.Priority* values, or nil (all)
	ProjectID      *string // project UUID, "none" (NULL project_id), or nil (all)
	Query          *string // search title + description
	DueBefore      *time.Time
	DueAfter       *time.Time
	IncludeDeleted bool
	SortBy         string // "due_date", "priority", "created_at", "updated_at", "title"
	SortDesc       bool
	Limit          int
	Offset         int
}

// Store defines the persistence interface for tasks, projects, and
// their associated records.
type Store interface {
	// === Users ===

	EnsureUser(ctx context.Context, name string) (*model.User, error)
	GetUserByID(ctx context.Context, id string) (*model.User, error)

	// === Tasks ===

	CreateTask(ctx context.Context, task model.Task) (*model.Task, error)
	UpdateTask(ctx context.Context, task model.Task) error
	SetTaskStatus(ctx context.Context, id, status string) error
	SoftDeleteTask(ctx context.Context, id string) error
	RestoreTask(ctx context.Context, id string) error
	HardDeleteTask(ctx context.Context, id string) error
	PurgeCompletedBefore(ctx context.Context, cutoff time.Time) (int, error)
	GetTaskByID(ctx context.Context, id string) (*model.Task, error)
	GetTasks(ctx context.Context, filter TaskFilter) ([]model.Task, error)
	CountTasks(ctx context.Context, filter TaskFilter) (int, error)

	// === Projects ===

	CreateProject(ctx context.Context, project model.Project) (*model.Project, error)
	UpdateProject(ctx context.Context, project model.Project) error
	DeleteProject(ctx context.Context, id string, policy DeletePolicy) error
	CountProjectTasks(ctx context.Context, id string) (int, error)
	GetProjectByID(ctx context.Context, id string) (*model.Project, error)
	GetProjects(ctx context.Context, includeArchived bool) ([]model.Project, error)
	ArchiveProject(ctx context.Context, id string) error
	RestoreProject(ctx context.Context, id string) error

	// === Subtasks ===

	AddSubtask(ctx context.Context, sub model.Subtask) (*model.Subtask, error)
	UpdateSubtask(ctx context.Context, sub model.Subtask) error
	DeleteSubtask(ctx context.Context, id string) error
	ToggleSubtask(ctx context.Context, id string) error
	GetSubtaskByID(ctx context.Context, id string) (*model.Subtask, error)
	GetSubtasks(ctx context.Context, taskID string) ([]model.Subtask, error)
	ReorderSubtasks(ctx context.Context, taskID string, from, to int) error

	// === Reminders ===

	CreateReminder(ctx context.Context, r model.Reminder) (*model.Reminder, error)
	UpdateReminder(ctx context.Context, r model.Reminder) error
	DeleteReminder(ctx context.Context, id string) error
	GetRemindersForTask(ctx context.Context, taskID string) ([]model.Reminder, error)
	GetDueReminders(ctx context.Context, now time.Time) ([]model.Reminder, error)
	MarkReminderFired(ctx context.Context, id string, firedAt time.Time) error

	// === Notes & attachments ===

	CreateNote(ctx context.Context, n model.Note) (*model.Note, error)
	DeleteNote(ctx context.Context, id string) error
	GetNotesForTask(ctx context.Context, taskID string) ([]model.Note, error)
	GetNotesForProject(ctx context.Context, projectID string) ([]model.Note, error)
	CreateAttachment(ctx context.Context, a model.Attachment) (*model.Attachment, error)
	DeleteAttachment(ctx context.Context, id string) error
	GetAttachmentsForTask(ctx context.Context, taskID string) ([]model.Attachment, error)

	// === Stats, achievements ===

	GetUserStats(ctx context.Context, userID string) (*model.UserStats, error)
	RecordCompletion(ctx context.Context, userID string, day string) (*model.UserStats, error)
	AddFocusTime(ctx context.Context, userID string, seconds int64) error
	UpsertSnapshot(ctx context.Context, snap model.StatsSnapshot) error
	GetSnapshot(ctx context.Context, date string) (*model.StatsSnapshot, error)
	UnlockAchievement(ctx context.Context, key string) error
	GetAchievements(ctx context.Context) ([]model.Achievement, error)

	// === Settings ===

	GetSetting(ctx context.Context, key string) (string, error)
	SetSetting(ctx context.Context, key, value string) error
	DeleteSetting(ctx context.Context, key string) error

	// === Backup ===

	RecordBackup(ctx context.Context, rec model.BackupRecord) error
	GetBackups(ctx context.Context) ([]model.BackupRecord, error)
	ImportSnapshot(ctx context.Context, userID string, projects []model.Project, tasks []model.Task, replace bool) error
}
