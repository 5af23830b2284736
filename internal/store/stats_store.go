package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"taskpad/internal/aggregate"
	"taskpad/internal/model"
)

// GetUserStats returns the per-user counters, creating the row lazily
// on first access.
func (s *SQLiteStore) GetUserStats(ctx context.Context, userID string) (*model.UserStats, error) {
	stats, err := s.getUserStats(ctx, userID)
	if errors.Is(err, sql.ErrNoRows) {
		now := time.Now().UTC()
		_, err = s.db.ExecContext(ctx, `
			INSERT INTO user_stats (user_id, updated_at) VALUES (?, ?)`,
			userID, now)
		if err != nil {
			return nil, fmt.Errorf("initializing stats for user %s: %w", userID, err)
		}
		return &model.UserStats{UserID: userID, UpdatedAt: now}, nil
	}
	if err != nil {
		return nil, err
	}
	return stats, nil
}

func (s *SQLiteStore) getUserStats(ctx context.Context, userID string) (*model.UserStats, error) {
	var stats model.UserStats
	err := s.db.QueryRowxContext(ctx,
		"SELECT * FROM user_stats WHERE user_id = ?", userID).Scan(
		&stats.UserID, &stats.CurrentStreak, &stats.LongestStreak,
		&stats.LastActivityDate, &stats.TotalCompleted,
		&stats.TotalFocusSeconds, &stats.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("getting stats for user %s: %w", userID, err)
	}
	return &stats, nil
}

// RecordCompletion advances the user's streak for a completion on the
// given calendar day and folds the event into that day's snapshot.
// Streak, counters, and snapshot commit in one transaction.
func (s *SQLiteStore) RecordCompletion(ctx context.Context, userID string, day string) (*model.UserStats, error) {
	if _, err := time.Parse(model.DateLayout, day); err != nil {
		return nil, fmt.Errorf("invalid day %q: %w", day, err)
	}

	// Ensure the row exists before the transaction starts.
	stats, err := s.GetUserStats(ctx, userID)
	if err != nil {
		return nil, err
	}

	current, longest := aggregate.NextStreak(
		stats.CurrentStreak, stats.LongestStreak, stats.LastActivityDate, day)

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC()
	_, err = tx.ExecContext(ctx, `
		UPDATE user_stats SET
			current_streak = ?, longest_streak = ?, last_activity_date = ?,
			total_completed = total_completed + 1, updated_at = ?
		WHERE user_id = ?`,
		current, longest, day, now, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("updating stats for user %s: %w", userID, err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO stats_snapshots (date, completed_count, streak, created_at)
		VALUES (?, 1, ?, ?)
		ON CONFLICT(date) DO UPDATE SET
			completed_count = completed_count + 1,
			streak = excluded.streak`,
		day, current, now,
	)
	if err != nil {
		return nil, fmt.Errorf("updating snapshot for %s: %w", day, err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing completion for user %s: %w", userID, err)
	}

	stats.CurrentStreak = current
	stats.LongestStreak = longest
	stats.LastActivityDate = &day
	stats.TotalCompleted++
	stats.UpdatedAt = now
	return stats, nil
}

// AddFocusTime adds completed focus seconds to the user's total.
func (s *SQLiteStore) AddFocusTime(ctx context.Context, userID string, seconds int64) error {
	if seconds <= 0 {
		return nil
	}
	if _, err := s.GetUserStats(ctx, userID); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx, `
		UPDATE user_stats SET total_focus_seconds = total_focus_seconds + ?, updated_at = ?
		WHERE user_id = ?`,
		seconds, time.Now().UTC(), userID,
	)
	if err != nil {
		return fmt.Errorf("adding focus time for user %s: %w", userID, err)
	}
	return nil
}

// UpsertSnapshot writes the counters for a calendar date, replacing
// any existing row for that date.
func (s *SQLiteStore) UpsertSnapshot(ctx context.Context, snap model.StatsSnapshot) error {
	if _, err := time.Parse(model.DateLayout, snap.Date); err != nil {
		return fmt.Errorf("invalid snapshot date %q: %w", snap.Date, err)
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO stats_snapshots (date, completed_count, overdue_count, streak, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(date) DO UPDATE SET
			completed_count = excluded.completed_count,
			overdue_count = excluded.overdue_count,
			streak = excluded.streak`,
		snap.Date, snap.CompletedCount, snap.OverdueCount, snap.Streak, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("upserting snapshot for %s: %w", snap.Date, err)
	}
	return nil
}

// GetSnapshot returns the snapshot for a calendar date.
func (s *SQLiteStore) GetSnapshot(ctx context.Context, date string) (*model.StatsSnapshot, error) {
	var snap model.StatsSnapshot
	err := s.db.QueryRowxContext(ctx,
		"SELECT * FROM stats_snapshots WHERE date = ?", date).Scan(
		&snap.Date, &snap.CompletedCount, &snap.OverdueCount,
		&snap.Streak, &snap.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("snapshot %s: %w", date, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("getting snapshot %s: %w", date, err)
	}
	return &snap, nil
}

// UnlockAchievement records a one-time unlock. Unlocking an already
// unlocked key is a no-op.
func (s *SQLiteStore) UnlockAchievement(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT OR IGNORE INTO achievements (key, unlocked_at) VALUES (?, ?)",
		key, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("unlocking achievement %s: %w", key, err)
	}
	return nil
}

// GetAchievements returns all unlocked achievements, oldest first.
func (s *SQLiteStore) GetAchievements(ctx context.Context) ([]model.Achievement, error) {
	rows, err := s.db.QueryxContext(ctx,
		"SELECT * FROM achievements ORDER BY unlocked_at")
	if err != nil {
		return nil, fmt.Errorf("querying achievements: %w", err)
	}
	defer rows.Close()

	var achievements []model.Achievement
	for rows.Next() {
		var a model.Achievement
		if err := rows.Scan(&a.Key, &a.UnlockedAt); err != nil {
			return nil, fmt.Errorf("scanning achievement row: %w", err)
		}
		achievements = append(achievements, a)
	}
	return achievements, rows.Err()
}
