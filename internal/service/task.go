package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"taskpad/internal/aggregate"
	"taskpad/internal/model"
	"taskpad/internal/store"
)

// NewTask carries the fields a user supplies when adding a task.
type NewTask struct {
	Title       string
	Description string
	Priority    string
	ProjectID   *string
	DueDate     *time.Time
}

// TaskPatch carries a partial update. Nil fields are left untouched;
// the Clear flags null out optional fields.
type TaskPatch struct {
	Title        *string
	Description  *string
	Status       *string
	Priority     *string
	ProjectID    *string
	ClearProject bool
	DueDate      *time.Time
	ClearDueDate bool
}

// AddTask validates and persists a new task. The title is trimmed and
// must be non-empty and at most model.MaxTitleLen characters.
func (s *Service) AddTask(ctx context.Context, in NewTask) (*model.Task, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, validationErr("title", "must not be empty")
	}
	if len([]rune(title)) > model.MaxTitleLen {
		return nil, validationErr("title", fmt.Sprintf("must be at most %d characters", model.MaxTitleLen))
	}

	priority := in.Priority
	if priority == "" {
		priority = model.PriorityMedium
	}
	if !model.ValidPriority(priority) {
		return nil, validationErr("priority", fmt.Sprintf("unknown value %q", priority))
	}

	if in.ProjectID != nil {
		if _, err := s.store.GetProjectByID(ctx, *in.ProjectID); err != nil {
			s.log.Error().Err(err).Str("project_id", *in.ProjectID).Msg("add task: project lookup failed")
			return nil, err
		}
	}

	task, err := s.store.CreateTask(ctx, model.Task{
		Title:       title,
		Description: strings.TrimSpace(in.Description),
		Status:      model.TaskStatusTodo,
		Priority:    priority,
		ProjectID:   in.ProjectID,
		DueDate:     in.DueDate,
		UserID:      s.user.ID,
	})
	if err != nil {
		s.log.Error().Err(err).Str("title", title).Msg("add task failed")
		return nil, err
	}

	s.log.Debug().Str("task_id", task.ID).Msg("task added")
	return task, nil
}

// UpdateTask merges the patch into an existing task and refreshes its
// updated timestamp.
func (s *Service) UpdateTask(ctx context.Context, id string, patch TaskPatch) error {
	task, err := s.store.GetTaskByID(ctx, id)
	if err != nil {
		return err
	}
	wasCompleted := task.Completed()

	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		if title == "" {
			return validationErr("title", "must not be empty")
		}
		if len([]rune(title)) > model.MaxTitleLen {
			return validationErr("title", fmt.Sprintf("must be at most %d characters", model.MaxTitleLen))
		}
		task.Title = title
	}
	if patch.Description != nil {
		task.Description = strings.TrimSpace(*patch.Description)
	}
	if patch.Status != nil {
		if !model.ValidTaskStatus(*patch.Status) {
			return validationErr("status", fmt.Sprintf("unknown value %q", *patch.Status))
		}
		task.Status = *patch.Status
	}
	if patch.Priority != nil {
		if !model.ValidPriority(*patch.Priority) {
			return validationErr("priority", fmt.Sprintf("unknown value %q", *patch.Priority))
		}
		task.Priority = *patch.Priority
	}
	if patch.ClearProject {
		task.ProjectID = nil
	} else if patch.ProjectID != nil {
		if _, err := s.store.GetProjectByID(ctx, *patch.ProjectID); err != nil {
			return err
		}
		task.ProjectID = patch.ProjectID
	}
	if patch.ClearDueDate {
		task.DueDate = nil
	} else if patch.DueDate != nil {
		task.DueDate = patch.DueDate
	}

	if err := s.store.UpdateTask(ctx, *task); err != nil {
		s.log.Error().Err(err).Str("task_id", id).Msg("update task failed")
		return err
	}

	// A status patch into completed is a completion event like any
	// other: streak, counters, and achievements advance exactly once.
	if !wasCompleted && task.Completed() {
		s.recordCompletion(ctx, task.ID)
	}
	return nil
}

// ToggleTask flips a task between completed and todo. The transition
// into completed counts as a completion event: streak, counters, and
// achievements advance.
func (s *Service) ToggleTask(ctx context.Context, id string) error {
	task, err := s.store.GetTaskByID(ctx, id)
	if err != nil {
		return err
	}

	if task.Completed() {
		return s.store.SetTaskStatus(ctx, id, model.TaskStatusTodo)
	}
	return s.completeTask(ctx, task)
}

// CompleteTask marks a task completed and records the completion
// event. Completing an already completed task is a no-op.
func (s *Service) CompleteTask(ctx context.Context, id string) error {
	task, err := s.store.GetTaskByID(ctx, id)
	if err != nil {
		return err
	}
	if task.Completed() {
		return nil
	}
	return s.completeTask(ctx, task)
}

func (s *Service) completeTask(ctx context.Context, task *model.Task) error {
	if err := s.store.SetTaskStatus(ctx, task.ID, model.TaskStatusCompleted); err != nil {
		s.log.Error().Err(err).Str("task_id", task.ID).Msg("complete task failed")
		return err
	}
	s.recordCompletion(ctx, task.ID)
	return nil
}

// recordCompletion folds one completion event into the user's streak,
// counters, and achievements. The task is already completed; losing a
// streak tick is not worth failing the user action over, so failures
// are logged and swallowed.
func (s *Service) recordCompletion(ctx context.Context, taskID string) {
	day := time.Now().UTC().Format(model.DateLayout)
	stats, err := s.store.RecordCompletion(ctx, s.user.ID, day)
	if err != nil {
		s.log.Error().Err(err).Str("task_id", taskID).Msg("recording completion failed")
		return
	}
	s.unlockAchievements(ctx, stats)
}

// unlockAchievements checks threshold achievements against the current
// counters. Unlocks are idempotent, so re-checking is harmless.
func (s *Service) unlockAchievements(ctx context.Context, stats *model.UserStats) {
	unlock := func(key string, reached bool) {
		if !reached {
			return
		}
		if err := s.store.UnlockAchievement(ctx, key); err != nil {
			s.log.Error().Err(err).Str("key", key).Msg("unlocking achievement failed")
		}
	}

	unlock(model.AchievementFirstTask, stats.TotalCompleted >= 1)
	unlock(model.AchievementTenTasks, stats.TotalCompleted >= 10)
	unlock(model.AchievementHundredTasks, stats.TotalCompleted >= 100)
	unlock(model.AchievementWeekStreak, stats.CurrentStreak >= 7)
}

// DeleteTask soft-deletes a task. The row stays recoverable until the
// periodic purge removes it.
func (s *Service) DeleteTask(ctx context.Context, id string) error {
	return s.store.SoftDeleteTask(ctx, id)
}

// RestoreTask recovers a soft-deleted task.
func (s *Service) RestoreTask(ctx context.Context, id string) error {
	return s.store.RestoreTask(ctx, id)
}

// HardDeleteTask permanently removes a task and its dependents.
func (s *Service) HardDeleteTask(ctx context.Context, id string) error {
	return s.store.HardDeleteTask(ctx, id)
}

// GetTask loads a single task with its subtasks.
func (s *Service) GetTask(ctx context.Context, id string) (*model.Task, error) {
	return s.store.GetTaskByID(ctx, id)
}

// ListTasks returns tasks matching the filter.
func (s *Service) ListTasks(ctx context.Context, filter store.TaskFilter) ([]model.Task, error) {
	return s.store.GetTasks(ctx, filter)
}

// TodayTasks returns tasks due within the current calendar day.
func (s *Service) TodayTasks(ctx context.Context) ([]model.Task, error) {
	tasks, err := s.store.GetTasks(ctx, store.TaskFilter{})
	if err != nil {
		return nil, err
	}
	return aggregate.TodayTasks(tasks, time.Now()), nil
}

// OverdueTasks returns incomplete tasks whose due date has passed.
func (s *Service) OverdueTasks(ctx context.Context) ([]model.Task, error) {
	tasks, err := s.store.GetTasks(ctx, store.TaskFilter{})
	if err != nil {
		return nil, err
	}
	return aggregate.OverdueTasks(tasks, time.Now()), nil
}

// UpcomingTasks returns incomplete tasks due within the next days.
func (s *Service) UpcomingTasks(ctx context.Context, days int) ([]model.Task, error) {
	tasks, err := s.store.GetTasks(ctx, store.TaskFilter{})
	if err != nil {
		return nil, err
	}
	return aggregate.UpcomingTasks(tasks, time.Now(), days), nil
}

// CompletedTasks returns all completed tasks.
func (s *Service) CompletedTasks(ctx context.Context) ([]model.Task, error) {
	tasks, err := s.store.GetTasks(ctx, store.TaskFilter{})
	if err != nil {
		return nil, err
	}
	return aggregate.CompletedTasks(tasks), nil
}

// PurgeCompletedTasks hard-deletes tasks completed more than window
// ago and returns how many were removed.
func (s *Service) PurgeCompletedTasks(ctx context.Context, window time.Duration) (int, error) {
	cutoff := time.Now().UTC().Add(-window)
	n, err := s.store.PurgeCompletedBefore(ctx, cutoff)
	if err != nil {
		s.log.Error().Err(err).Msg("purging completed tasks failed")
		return 0, err
	}
	if n > 0 {
		s.log.Info().Int("purged", n).Time("cutoff", cutoff).Msg("purged old completed tasks")
	}
	return n, nil
}
