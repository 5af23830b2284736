package store_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"taskpad/internal/model"
	"taskpad/internal/store"
	"taskpad/tests/testutil"
)

func seedProjectWithTasks(t *testing.T, s *store.SQLiteStore, taskCount int) (*model.Project, *model.User) {
	t.Helper()
	ctx := context.Background()
	user := newUser(t, s)

	project, err := s.CreateProject(ctx, model.Project{Name: "Work", Color: "#FF0000", UserID: user.ID})
	if err != nil {
		t.Fatalf("creating project: %v", err)
	}
	for i := 0; i < taskCount; i++ {
		_, err := s.CreateTask(ctx, model.Task{
			Title:     "task",
			ProjectID: &project.ID,
			UserID:    user.ID,
		})
		if err != nil {
			t.Fatalf("creating task: %v", err)
		}
	}
	return project, user
}

func TestDeleteProjectAbortWithDependents(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)
	s := testutil.NewTestStore(t)
	ctx := context.Background()
	project, _ := seedProjectWithTasks(t, s, 2)

	err := s.DeleteProject(ctx, project.ID, store.DeleteAbort)
	assert.NotNil(err)

	// Nothing happened: project and refs intact.
	_, err = s.GetProjectByID(ctx, project.ID)
	assert.Nil(err)
	count, err := s.CountProjectTasks(ctx, project.ID)
	assert.Nil(err)
	assert.Equal(2, count)
}

func TestDeleteProjectAbortIgnoresTrashedTasks(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)
	s := testutil.NewTestStore(t)
	ctx := context.Background()
	project, _ := seedProjectWithTasks(t, s, 1)

	tasks, err := s.GetTasks(ctx, store.TaskFilter{ProjectID: &project.ID})
	assert.Nil(err)
	assert.Nil(s.SoftDeleteTask(ctx, tasks[0].ID))

	// The confirmation gate and the abort share one predicate: a
	// project whose only refs are trashed deletes cleanly.
	count, err := s.CountProjectTasks(ctx, project.ID)
	assert.Nil(err)
	assert.Equal(0, count)

	assert.Nil(s.DeleteProject(ctx, project.ID, store.DeleteAbort))
	_, err = s.GetProjectByID(ctx, project.ID)
	assert.ErrorIs(err, store.ErrNotFound)

	// The trashed task survives, unassigned.
	all, err := s.GetTasks(ctx, store.TaskFilter{IncludeDeleted: true})
	assert.Nil(err)
	assert.Len(all, 1)
	assert.Nil(all[0].ProjectID)
}

func TestDeleteProjectReassign(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)
	s := testutil.NewTestStore(t)
	ctx := context.Background()
	project, _ := seedProjectWithTasks(t, s, 3)

	none := "none"
	before, err := s.CountTasks(ctx, store.TaskFilter{ProjectID: &none})
	assert.Nil(err)

	assert.Nil(s.DeleteProject(ctx, project.ID, store.DeleteReassign))

	_, err = s.GetProjectByID(ctx, project.ID)
	assert.ErrorIs(err, store.ErrNotFound)

	// Zero tasks still reference the deleted project; the unassigned
	// count grew by exactly the prior dependent count.
	stillRef, err := s.CountTasks(ctx, store.TaskFilter{ProjectID: &project.ID})
	assert.Nil(err)
	assert.Equal(0, stillRef)

	after, err := s.CountTasks(ctx, store.TaskFilter{ProjectID: &none})
	assert.Nil(err)
	assert.Equal(before+3, after)
}

func TestDeleteProjectCascade(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)
	s := testutil.NewTestStore(t)
	ctx := context.Background()
	project, _ := seedProjectWithTasks(t, s, 2)

	assert.Nil(s.DeleteProject(ctx, project.ID, store.DeleteCascade))

	total, err := s.CountTasks(ctx, store.TaskFilter{IncludeDeleted: true})
	assert.Nil(err)
	assert.Equal(0, total)
}

func TestDeleteProjectNotFound(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)
	s := testutil.NewTestStore(t)

	err := s.DeleteProject(context.Background(), "missing", store.DeleteReassign)
	assert.ErrorIs(err, store.ErrNotFound)
}

func TestArchiveProject(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)
	s := testutil.NewTestStore(t)
	ctx := context.Background()
	project, _ := seedProjectWithTasks(t, s, 0)

	assert.Nil(s.ArchiveProject(ctx, project.ID))

	active, err := s.GetProjects(ctx, false)
	assert.Nil(err)
	assert.Empty(active)

	all, err := s.GetProjects(ctx, true)
	assert.Nil(err)
	assert.Len(all, 1)
	assert.True(all[0].Archived)

	assert.Nil(s.RestoreProject(ctx, project.ID))
	active, err = s.GetProjects(ctx, false)
	assert.Nil(err)
	assert.Len(active, 1)
}
