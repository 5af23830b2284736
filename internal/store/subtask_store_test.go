package store_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"taskpad/internal/model"
	"taskpad/internal/store"
	"taskpad/tests/testutil"
)

func seedSubtasks(t *testing.T, s *store.SQLiteStore, titles ...string) string {
	t.Helper()
	ctx := context.Background()
	user := newUser(t, s)

	task, err := s.CreateTask(ctx, model.Task{Title: "parent", UserID: user.ID})
	if err != nil {
		t.Fatalf("creating parent task: %v", err)
	}
	for _, title := range titles {
		if _, err := s.AddSubtask(ctx, model.Subtask{TaskID: task.ID, Title: title}); err != nil {
			t.Fatalf("adding subtask %q: %v", title, err)
		}
	}
	return task.ID
}

func assertOrder(assert *assert.Assertions, subs []model.Subtask, titles ...string) {
	assert.Len(subs, len(titles))
	for i, title := range titles {
		assert.Equal(title, subs[i].Title)
		assert.Equal(i, subs[i].SortOrder)
	}
}

func TestAddSubtaskAppendsDense(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)
	s := testutil.NewTestStore(t)
	taskID := seedSubtasks(t, s, "a", "b", "c")

	subs, err := s.GetSubtasks(context.Background(), taskID)
	assert.Nil(err)
	assertOrder(assert, subs, "a", "b", "c")
}

func TestReorderSubtasks(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)
	s := testutil.NewTestStore(t)
	ctx := context.Background()
	taskID := seedSubtasks(t, s, "a", "b", "c", "d")

	// Move the first element to the end.
	assert.Nil(s.ReorderSubtasks(ctx, taskID, 0, 3))
	subs, err := s.GetSubtasks(ctx, taskID)
	assert.Nil(err)
	assertOrder(assert, subs, "b", "c", "d", "a")

	// Move it back to the front.
	assert.Nil(s.ReorderSubtasks(ctx, taskID, 3, 0))
	subs, err = s.GetSubtasks(ctx, taskID)
	assert.Nil(err)
	assertOrder(assert, subs, "a", "b", "c", "d")
}

func TestReorderSubtasksOutOfRange(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)
	s := testutil.NewTestStore(t)
	taskID := seedSubtasks(t, s, "a", "b")

	assert.NotNil(s.ReorderSubtasks(context.Background(), taskID, 0, 5))
	assert.NotNil(s.ReorderSubtasks(context.Background(), taskID, -1, 0))
}

func TestDeleteSubtaskRenumbers(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)
	s := testutil.NewTestStore(t)
	ctx := context.Background()
	taskID := seedSubtasks(t, s, "a", "b", "c")

	subs, err := s.GetSubtasks(ctx, taskID)
	assert.Nil(err)

	assert.Nil(s.DeleteSubtask(ctx, subs[1].ID))

	subs, err = s.GetSubtasks(ctx, taskID)
	assert.Nil(err)
	assertOrder(assert, subs, "a", "c")
}

func TestToggleSubtask(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)
	s := testutil.NewTestStore(t)
	ctx := context.Background()
	taskID := seedSubtasks(t, s, "a")

	subs, err := s.GetSubtasks(ctx, taskID)
	assert.Nil(err)
	assert.False(subs[0].Done)

	assert.Nil(s.ToggleSubtask(ctx, subs[0].ID))
	sub, err := s.GetSubtaskByID(ctx, subs[0].ID)
	assert.Nil(err)
	assert.True(sub.Done)

	assert.ErrorIs(s.ToggleSubtask(ctx, "missing"), store.ErrNotFound)
}

func TestSubtasksCascadeWithTask(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)
	s := testutil.NewTestStore(t)
	ctx := context.Background()
	taskID := seedSubtasks(t, s, "a", "b")

	assert.Nil(s.HardDeleteTask(ctx, taskID))

	subs, err := s.GetSubtasks(ctx, taskID)
	assert.Nil(err)
	assert.Empty(subs)
}
