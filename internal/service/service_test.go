package service_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"taskpad/internal/model"
	"taskpad/internal/service"
	"taskpad/internal/store"
	"taskpad/tests/testutil"
)

func newService(t *testing.T) (*service.Service, *store.SQLiteStore) {
	t.Helper()
	s := testutil.NewTestStore(t)
	user, err := s.EnsureUser(context.Background(), "test")
	if err != nil {
		t.Fatalf("ensuring user: %v", err)
	}
	return service.New(s, user, zerolog.Nop()), s
}

func TestAddTaskValidation(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)
	svc, s := newService(t)
	ctx := context.Background()

	_, err := svc.AddTask(ctx, service.NewTask{Title: "   "})
	assert.ErrorIs(err, service.ErrValidation)

	_, err = svc.AddTask(ctx, service.NewTask{Title: strings.Repeat("x", 201)})
	assert.ErrorIs(err, service.ErrValidation)

	_, err = svc.AddTask(ctx, service.NewTask{Title: "ok", Priority: "urgent"})
	assert.ErrorIs(err, service.ErrValidation)

	// Nothing persisted.
	count, err := s.CountTasks(ctx, store.TaskFilter{IncludeDeleted: true})
	assert.Nil(err)
	assert.Equal(0, count)

	// A maximum-length title is accepted; the title is trimmed.
	task, err := svc.AddTask(ctx, service.NewTask{Title: "  " + strings.Repeat("y", 200) + "  "})
	assert.Nil(err)
	assert.Len([]rune(task.Title), 200)
}

func TestAddTaskUnknownProject(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)
	svc, _ := newService(t)

	missing := "missing"
	_, err := svc.AddTask(context.Background(), service.NewTask{Title: "t", ProjectID: &missing})
	assert.True(service.IsNotFound(err))
}

func TestToggleTaskRoundTrip(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)
	svc, _ := newService(t)
	ctx := context.Background()

	task, err := svc.AddTask(ctx, service.NewTask{Title: "Buy milk"})
	assert.Nil(err)

	assert.Nil(svc.ToggleTask(ctx, task.ID))
	loaded, err := svc.GetTask(ctx, task.ID)
	assert.Nil(err)
	assert.True(loaded.Completed())
	assert.Equal(model.TaskStatusCompleted, loaded.Status)

	assert.Nil(svc.ToggleTask(ctx, task.ID))
	loaded, err = svc.GetTask(ctx, task.ID)
	assert.Nil(err)
	assert.False(loaded.Completed())
	assert.Equal(model.TaskStatusTodo, loaded.Status)
	assert.Nil(loaded.CompletedAt)
}

func TestCompleteTaskRecordsStats(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)
	svc, _ := newService(t)
	ctx := context.Background()

	task, err := svc.AddTask(ctx, service.NewTask{Title: "t"})
	assert.Nil(err)

	assert.Nil(svc.CompleteTask(ctx, task.ID))
	// Completing an already completed task is a no-op.
	assert.Nil(svc.CompleteTask(ctx, task.ID))

	stats, err := svc.Stats(ctx)
	assert.Nil(err)
	assert.Equal(1, stats.TotalCompleted)
	assert.Equal(1, stats.CurrentStreak)

	achievements, err := svc.Achievements(ctx)
	assert.Nil(err)
	assert.Len(achievements, 1)
	assert.Equal(model.AchievementFirstTask, achievements[0].Key)
}

func TestUpdateTaskStatusPatchRecordsCompletion(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)
	svc, _ := newService(t)
	ctx := context.Background()

	task, err := svc.AddTask(ctx, service.NewTask{Title: "t"})
	assert.Nil(err)

	// Patching into completed is a completion event, same as
	// CompleteTask.
	completed := model.TaskStatusCompleted
	assert.Nil(svc.UpdateTask(ctx, task.ID, service.TaskPatch{Status: &completed}))

	stats, err := svc.Stats(ctx)
	assert.Nil(err)
	assert.Equal(1, stats.TotalCompleted)

	achievements, err := svc.Achievements(ctx)
	assert.Nil(err)
	assert.Len(achievements, 1)

	// Re-patching an already completed task records nothing new.
	assert.Nil(svc.UpdateTask(ctx, task.ID, service.TaskPatch{Status: &completed}))
	stats, err = svc.Stats(ctx)
	assert.Nil(err)
	assert.Equal(1, stats.TotalCompleted)

	// Leaving completed is not a completion event either.
	todo := model.TaskStatusTodo
	assert.Nil(svc.UpdateTask(ctx, task.ID, service.TaskPatch{Status: &todo}))
	stats, err = svc.Stats(ctx)
	assert.Nil(err)
	assert.Equal(1, stats.TotalCompleted)
}

func TestOverdueScenario(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)
	svc, _ := newService(t)
	ctx := context.Background()

	past := time.Now().UTC().Add(-48 * time.Hour)
	future := time.Now().UTC().Add(48 * time.Hour)

	late, err := svc.AddTask(ctx, service.NewTask{Title: "Buy milk", DueDate: &past})
	assert.Nil(err)
	_, err = svc.AddTask(ctx, service.NewTask{Title: "Water plants", DueDate: &future})
	assert.Nil(err)

	overdue, err := svc.OverdueTasks(ctx)
	assert.Nil(err)
	assert.Len(overdue, 1)
	assert.Equal("Buy milk", overdue[0].Title)

	// Completing it clears the overdue list.
	assert.Nil(svc.CompleteTask(ctx, late.ID))
	overdue, err = svc.OverdueTasks(ctx)
	assert.Nil(err)
	assert.Empty(overdue)
}

func TestGetProjectStats(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)
	svc, _ := newService(t)
	ctx := context.Background()

	project, err := svc.CreateProject(ctx, service.NewProject{Name: "Work", Color: "#0000FF"})
	assert.Nil(err)

	var ids []string
	for _, title := range []string{"plan", "draft", "review"} {
		task, err := svc.AddTask(ctx, service.NewTask{Title: title, ProjectID: &project.ID})
		assert.Nil(err)
		ids = append(ids, task.ID)
	}
	assert.Nil(svc.CompleteTask(ctx, ids[0]))

	stats, err := svc.GetProjectStats(ctx, project.ID)
	assert.Nil(err)
	assert.Equal(3, stats.Total)
	assert.Equal(1, stats.Completed)
	assert.Equal(2, stats.Pending)
	assert.InDelta(33.33, stats.Progress, 0.01)

	// An empty project reports zero progress.
	empty, err := svc.CreateProject(ctx, service.NewProject{Name: "Empty"})
	assert.Nil(err)
	stats, err = svc.GetProjectStats(ctx, empty.ID)
	assert.Nil(err)
	assert.Equal(0.0, stats.Progress)
}

func TestDeleteProjectGuard(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)
	svc, _ := newService(t)
	ctx := context.Background()

	project, err := svc.CreateProject(ctx, service.NewProject{Name: "Work"})
	assert.Nil(err)
	task, err := svc.AddTask(ctx, service.NewTask{Title: "t", ProjectID: &project.ID})
	assert.Nil(err)

	err = svc.DeleteProject(ctx, project.ID, store.DeleteAbort)
	assert.ErrorIs(err, service.ErrHasDependents)

	count, err := svc.ProjectDependents(ctx, project.ID)
	assert.Nil(err)
	assert.Equal(1, count)

	assert.Nil(svc.DeleteProject(ctx, project.ID, store.DeleteReassign))
	loaded, err := svc.GetTask(ctx, task.ID)
	assert.Nil(err)
	assert.Nil(loaded.ProjectID)
}

func TestUpdateTaskPatch(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)
	svc, _ := newService(t)
	ctx := context.Background()

	due := time.Now().UTC().Add(24 * time.Hour)
	task, err := svc.AddTask(ctx, service.NewTask{Title: "draft", DueDate: &due})
	assert.Nil(err)

	title := "final"
	high := model.PriorityHigh
	assert.Nil(svc.UpdateTask(ctx, task.ID, service.TaskPatch{
		Title:        &title,
		Priority:     &high,
		ClearDueDate: true,
	}))

	loaded, err := svc.GetTask(ctx, task.ID)
	assert.Nil(err)
	assert.Equal("final", loaded.Title)
	assert.Equal(model.PriorityHigh, loaded.Priority)
	assert.Nil(loaded.DueDate)

	bad := "blocked"
	err = svc.UpdateTask(ctx, task.ID, service.TaskPatch{Status: &bad})
	assert.ErrorIs(err, service.ErrValidation)
}

func TestSubtaskFlow(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)
	svc, _ := newService(t)
	ctx := context.Background()

	task, err := svc.AddTask(ctx, service.NewTask{Title: "parent"})
	assert.Nil(err)

	first, err := svc.AddSubtask(ctx, task.ID, "step one")
	assert.Nil(err)
	_, err = svc.AddSubtask(ctx, task.ID, "step two")
	assert.Nil(err)

	_, err = svc.AddSubtask(ctx, task.ID, "  ")
	assert.ErrorIs(err, service.ErrValidation)

	assert.Nil(svc.ToggleSubtask(ctx, first.ID))
	assert.Nil(svc.RenameSubtask(ctx, first.ID, "step 1"))

	subs, err := svc.ListSubtasks(ctx, task.ID)
	assert.Nil(err)
	assert.Len(subs, 2)
	assert.Equal("step 1", subs[0].Title)
	assert.True(subs[0].Done)
}
