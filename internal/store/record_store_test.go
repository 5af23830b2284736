package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"taskpad/internal/model"
	"taskpad/internal/store"
	"taskpad/tests/testutil"
)

func TestDueReminders(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)
	s := testutil.NewTestStore(t)
	ctx := context.Background()
	user := newUser(t, s)

	task, err := s.CreateTask(ctx, model.Task{Title: "t", UserID: user.ID})
	assert.Nil(err)

	now := time.Now().UTC()
	due, err := s.CreateReminder(ctx, model.Reminder{
		TaskID: task.ID, FireAt: now.Add(-time.Minute), Enabled: true,
	})
	assert.Nil(err)
	_, err = s.CreateReminder(ctx, model.Reminder{
		TaskID: task.ID, FireAt: now.Add(time.Hour), Enabled: true,
	})
	assert.Nil(err)
	_, err = s.CreateReminder(ctx, model.Reminder{
		TaskID: task.ID, FireAt: now.Add(-time.Minute), Enabled: false,
	})
	assert.Nil(err)

	pending, err := s.GetDueReminders(ctx, now)
	assert.Nil(err)
	assert.Len(pending, 1)
	assert.Equal(due.ID, pending[0].ID)

	// Once fired, the reminder drops out until its fire time advances.
	assert.Nil(s.MarkReminderFired(ctx, due.ID, now))
	pending, err = s.GetDueReminders(ctx, now)
	assert.Nil(err)
	assert.Empty(pending)
}

func TestNoteRefsAreExclusive(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)
	s := testutil.NewTestStore(t)
	ctx := context.Background()
	user := newUser(t, s)

	task, err := s.CreateTask(ctx, model.Task{Title: "t", UserID: user.ID})
	assert.Nil(err)
	project, err := s.CreateProject(ctx, model.Project{Name: "p", UserID: user.ID})
	assert.Nil(err)

	_, err = s.CreateNote(ctx, model.Note{
		TaskID: &task.ID, ProjectID: &project.ID, Content: "both",
	})
	assert.NotNil(err)

	_, err = s.CreateNote(ctx, model.Note{TaskID: &task.ID, Content: "task note"})
	assert.Nil(err)
	_, err = s.CreateNote(ctx, model.Note{ProjectID: &project.ID, Content: "project note"})
	assert.Nil(err)

	taskNotes, err := s.GetNotesForTask(ctx, task.ID)
	assert.Nil(err)
	assert.Len(taskNotes, 1)
	assert.Equal("task note", taskNotes[0].Content)

	projectNotes, err := s.GetNotesForProject(ctx, project.ID)
	assert.Nil(err)
	assert.Len(projectNotes, 1)
}

func TestAttachments(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)
	s := testutil.NewTestStore(t)
	ctx := context.Background()
	user := newUser(t, s)

	task, err := s.CreateTask(ctx, model.Task{Title: "t", UserID: user.ID})
	assert.Nil(err)

	att, err := s.CreateAttachment(ctx, model.Attachment{
		TaskID: &task.ID, URI: "file:///tmp/receipt.pdf",
		Type: "application/pdf", Name: "receipt.pdf", SizeBytes: 1024,
	})
	assert.Nil(err)

	list, err := s.GetAttachmentsForTask(ctx, task.ID)
	assert.Nil(err)
	assert.Len(list, 1)
	assert.Equal("receipt.pdf", list[0].Name)

	assert.Nil(s.DeleteAttachment(ctx, att.ID))
	assert.ErrorIs(s.DeleteAttachment(ctx, att.ID), store.ErrNotFound)
}

func TestBackupAuditLog(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	assert.Nil(s.RecordBackup(ctx, model.BackupRecord{
		Path: "/tmp/a.json", Type: model.BackupTypeJSON,
	}))
	time.Sleep(5 * time.Millisecond)
	assert.Nil(s.RecordBackup(ctx, model.BackupRecord{
		Path: "/tmp/b.csv", Type: model.BackupTypeCSV,
	}))

	records, err := s.GetBackups(ctx)
	assert.Nil(err)
	assert.Len(records, 2)
	assert.Equal("/tmp/b.csv", records[0].Path)
}
