package service

import (
	"context"
	"strings"

	"taskpad/internal/model"
)

// AddSubtask appends a subtask to the end of a task's list.
func (s *Service) AddSubtask(ctx context.Context, taskID, title string) (*model.Subtask, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, validationErr("title", "must not be empty")
	}
	if _, err := s.store.GetTaskByID(ctx, taskID); err != nil {
		return nil, err
	}

	sub, err := s.store.AddSubtask(ctx, model.Subtask{TaskID: taskID, Title: title})
	if err != nil {
		s.log.Error().Err(err).Str("task_id", taskID).Msg("add subtask failed")
		return nil, err
	}
	return sub, nil
}

// RenameSubtask changes a subtask's title.
func (s *Service) RenameSubtask(ctx context.Context, id, title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return validationErr("title", "must not be empty")
	}

	sub, err := s.store.GetSubtaskByID(ctx, id)
	if err != nil {
		return err
	}
	sub.Title = title
	return s.store.UpdateSubtask(ctx, *sub)
}

// ToggleSubtask flips a subtask's done flag.
func (s *Service) ToggleSubtask(ctx context.Context, id string) error {
	return s.store.ToggleSubtask(ctx, id)
}

// DeleteSubtask removes a subtask; siblings are renumbered so the
// order stays dense.
func (s *Service) DeleteSubtask(ctx context.Context, id string) error {
	return s.store.DeleteSubtask(ctx, id)
}

// ListSubtasks returns a task's subtasks in display order.
func (s *Service) ListSubtasks(ctx context.Context, taskID string) ([]model.Subtask, error) {
	return s.store.GetSubtasks(ctx, taskID)
}

// ReorderSubtasks moves the subtask at position from to position to
// within the parent task's list.
func (s *Service) ReorderSubtasks(ctx context.Context, taskID string, from, to int) error {
	if err := s.store.ReorderSubtasks(ctx, taskID, from, to); err != nil {
		s.log.Error().Err(err).Str("task_id", taskID).
			Int("from", from).Int("to", to).Msg("reorder subtasks failed")
		return err
	}
	return nil
}
