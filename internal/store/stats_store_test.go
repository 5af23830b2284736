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

func TestGetUserStatsCreatesRowLazily(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)
	s := testutil.NewTestStore(t)
	ctx := context.Background()
	user := newUser(t, s)

	stats, err := s.GetUserStats(ctx, user.ID)
	assert.Nil(err)
	assert.Equal(0, stats.CurrentStreak)
	assert.Equal(0, stats.TotalCompleted)
	assert.Nil(stats.LastActivityDate)

	// A second read hits the same row.
	again, err := s.GetUserStats(ctx, user.ID)
	assert.Nil(err)
	assert.Equal(stats.UserID, again.UserID)
}

func TestRecordCompletionStreaks(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)
	s := testutil.NewTestStore(t)
	ctx := context.Background()
	user := newUser(t, s)

	stats, err := s.RecordCompletion(ctx, user.ID, "2026-03-14")
	assert.Nil(err)
	assert.Equal(1, stats.CurrentStreak)
	assert.Equal(1, stats.TotalCompleted)

	// Same day: streak holds, counter advances.
	stats, err = s.RecordCompletion(ctx, user.ID, "2026-03-14")
	assert.Nil(err)
	assert.Equal(1, stats.CurrentStreak)
	assert.Equal(2, stats.TotalCompleted)

	// Next day extends the streak.
	stats, err = s.RecordCompletion(ctx, user.ID, "2026-03-15")
	assert.Nil(err)
	assert.Equal(2, stats.CurrentStreak)
	assert.Equal(2, stats.LongestStreak)

	// A gap resets the streak but keeps the record.
	stats, err = s.RecordCompletion(ctx, user.ID, "2026-03-20")
	assert.Nil(err)
	assert.Equal(1, stats.CurrentStreak)
	assert.Equal(2, stats.LongestStreak)

	// The persisted row matches the returned value.
	loaded, err := s.GetUserStats(ctx, user.ID)
	assert.Nil(err)
	assert.Equal(stats.CurrentStreak, loaded.CurrentStreak)
	assert.Equal(stats.TotalCompleted, loaded.TotalCompleted)
	assert.Equal("2026-03-20", *loaded.LastActivityDate)
}

func TestRecordCompletionRejectsBadDay(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)
	s := testutil.NewTestStore(t)
	user := newUser(t, s)

	_, err := s.RecordCompletion(context.Background(), user.ID, "14/03/2026")
	assert.NotNil(err)
}

func TestSnapshotOneRowPerDate(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)
	s := testutil.NewTestStore(t)
	ctx := context.Background()
	user := newUser(t, s)

	_, err := s.RecordCompletion(ctx, user.ID, "2026-03-14")
	assert.Nil(err)
	_, err = s.RecordCompletion(ctx, user.ID, "2026-03-14")
	assert.Nil(err)

	snap, err := s.GetSnapshot(ctx, "2026-03-14")
	assert.Nil(err)
	assert.Equal(2, snap.CompletedCount)
	assert.Equal(1, snap.Streak)

	// Explicit upsert replaces the counters in place.
	assert.Nil(s.UpsertSnapshot(ctx, model.StatsSnapshot{
		Date: "2026-03-14", CompletedCount: 7, OverdueCount: 2, Streak: 3,
	}))
	snap, err = s.GetSnapshot(ctx, "2026-03-14")
	assert.Nil(err)
	assert.Equal(7, snap.CompletedCount)
	assert.Equal(2, snap.OverdueCount)

	_, err = s.GetSnapshot(ctx, "2026-01-01")
	assert.ErrorIs(err, store.ErrNotFound)
}

func TestAddFocusTime(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)
	s := testutil.NewTestStore(t)
	ctx := context.Background()
	user := newUser(t, s)

	assert.Nil(s.AddFocusTime(ctx, user.ID, 1500))
	assert.Nil(s.AddFocusTime(ctx, user.ID, 300))
	assert.Nil(s.AddFocusTime(ctx, user.ID, -10)) // ignored

	stats, err := s.GetUserStats(ctx, user.ID)
	assert.Nil(err)
	assert.Equal(int64(1800), stats.TotalFocusSeconds)
}

func TestUnlockAchievementIdempotent(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	assert.Nil(s.UnlockAchievement(ctx, model.AchievementFirstTask))
	first, err := s.GetAchievements(ctx)
	assert.Nil(err)
	assert.Len(first, 1)

	// Second unlock keeps the original timestamp.
	time.Sleep(5 * time.Millisecond)
	assert.Nil(s.UnlockAchievement(ctx, model.AchievementFirstTask))
	again, err := s.GetAchievements(ctx)
	assert.Nil(err)
	assert.Len(again, 1)
	assert.Equal(first[0].UnlockedAt, again[0].UnlockedAt)

	assert.Nil(s.UnlockAchievement(ctx, model.AchievementTenTasks))
	all, err := s.GetAchievements(ctx)
	assert.Nil(err)
	assert.Len(all, 2)
}

func TestSettings(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	_, err := s.GetSetting(ctx, "theme")
	assert.ErrorIs(err, store.ErrNotFound)

	assert.Nil(s.SetSetting(ctx, "theme", "dark"))
	value, err := s.GetSetting(ctx, "theme")
	assert.Nil(err)
	assert.Equal("dark", value)

	assert.Nil(s.SetSetting(ctx, "theme", "light"))
	value, err = s.GetSetting(ctx, "theme")
	assert.Nil(err)
	assert.Equal("light", value)

	assert.Nil(s.DeleteSetting(ctx, "theme"))
	_, err = s.GetSetting(ctx, "theme")
	assert.ErrorIs(err, store.ErrNotFound)

	// Deleting an absent key is a no-op.
	assert.Nil(s.DeleteSetting(ctx, "theme"))
}
