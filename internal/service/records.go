package service

import (
	"context"
	"strings"
	"time"

	"taskpad/internal/model"
)

// AddTaskNote attaches a note to a task.
func (s *Service) AddTaskNote(ctx context.Context, taskID, content string) (*model.Note, error) {
	if strings.TrimSpace(content) == "" {
		return nil, validationErr("content", "must not be empty")
	}
	if _, err := s.store.GetTaskByID(ctx, taskID); err != nil {
		return nil, err
	}
	return s.store.CreateNote(ctx, model.Note{TaskID: &taskID, Content: content})
}

// AddProjectNote attaches a note to a project.
func (s *Service) AddProjectNote(ctx context.Context, projectID, content string) (*model.Note, error) {
	if strings.TrimSpace(content) == "" {
		return nil, validationErr("content", "must not be empty")
	}
	if _, err := s.store.GetProjectByID(ctx, projectID); err != nil {
		return nil, err
	}
	return s.store.CreateNote(ctx, model.Note{ProjectID: &projectID, Content: content})
}

// DeleteNote removes a note.
func (s *Service) DeleteNote(ctx context.Context, id string) error {
	return s.store.DeleteNote(ctx, id)
}

// TaskNotes returns notes attached to a task.
func (s *Service) TaskNotes(ctx context.Context, taskID string) ([]model.Note, error) {
	return s.store.GetNotesForTask(ctx, taskID)
}

// AttachToTask records a file attachment for a task.
func (s *Service) AttachToTask(ctx context.Context, taskID string, a model.Attachment) (*model.Attachment, error) {
	if strings.TrimSpace(a.URI) == "" {
		return nil, validationErr("uri", "must not be empty")
	}
	if _, err := s.store.GetTaskByID(ctx, taskID); err != nil {
		return nil, err
	}
	a.TaskID = &taskID
	a.ProjectID = nil
	return s.store.CreateAttachment(ctx, a)
}

// DeleteAttachment removes an attachment record.
func (s *Service) DeleteAttachment(ctx context.Context, id string) error {
	return s.store.DeleteAttachment(ctx, id)
}

// TaskAttachments returns a task's attachments.
func (s *Service) TaskAttachments(ctx context.Context, taskID string) ([]model.Attachment, error) {
	return s.store.GetAttachmentsForTask(ctx, taskID)
}

// SetReminder schedules a reminder on a task.
func (s *Service) SetReminder(ctx context.Context, taskID string, fireAt time.Time, repeatRule string) (*model.Reminder, error) {
	if _, err := s.store.GetTaskByID(ctx, taskID); err != nil {
		return nil, err
	}
	return s.store.CreateReminder(ctx, model.Reminder{
		TaskID:     taskID,
		FireAt:     fireAt,
		RepeatRule: repeatRule,
		Enabled:    true,
	})
}

// DueReminders returns enabled reminders whose fire time has passed.
// The platform notification layer consumes this and calls
// MarkReminderFired after delivery.
func (s *Service) DueReminders(ctx context.Context) ([]model.Reminder, error) {
	return s.store.GetDueReminders(ctx, time.Now())
}

// MarkReminderFired records a delivered reminder.
func (s *Service) MarkReminderFired(ctx context.Context, id string) error {
	return s.store.MarkReminderFired(ctx, id, time.Now())
}

// DeleteReminder cancels a reminder.
func (s *Service) DeleteReminder(ctx context.Context, id string) error {
	return s.store.DeleteReminder(ctx, id)
}

// Stats returns the user's aggregate counters.
func (s *Service) Stats(ctx context.Context) (*model.UserStats, error) {
	return s.store.GetUserStats(ctx, s.user.ID)
}

// RecordFocusTime adds a finished focus session to the user's total.
func (s *Service) RecordFocusTime(ctx context.Context, d time.Duration) error {
	return s.store.AddFocusTime(ctx, s.user.ID, int64(d.Seconds()))
}

// Achievements returns all unlocked achievements.
func (s *Service) Achievements(ctx context.Context) ([]model.Achievement, error) {
	return s.store.GetAchievements(ctx)
}

// GetSetting reads a preference value.
func (s *Service) GetSetting(ctx context.Context, key string) (string, error) {
	return s.store.GetSetting(ctx, key)
}

// SetSetting stores a preference value.
func (s *Service) SetSetting(ctx context.Context, key, value string) error {
	if strings.TrimSpace(key) == "" {
		return validationErr("key", "must not be empty")
	}
	return s.store.SetSetting(ctx, key, value)
}

// DeleteSetting resets a preference.
func (s *Service) DeleteSetting(ctx context.Context, key string) error {
	return s.store.DeleteSetting(ctx, key)
}

// BackupHistory returns the export audit log, newest first.
func (s *Service) BackupHistory(ctx context.Context) ([]model.BackupRecord, error) {
	return s.store.GetBackups(ctx)
}
