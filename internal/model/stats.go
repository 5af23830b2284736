package model

import "time"

// DateLayout is the calendar-date format used for streak arithmetic
// and snapshot keys.
const DateLayout = "2006-01-02"

// UserStats holds per-user aggregate counters. One row per user,
// created lazily on first access.
type UserStats struct {
	UserID            string    `json:"user_id" db:"user_id"`
	CurrentStreak     int       `json:"current_streak" db:"current_streak"`
	LongestStreak     int       `json:"longest_streak" db:"longest_streak"`
	LastActivityDate  *string   `json:"last_activity_date,omitempty" db:"last_activity_date"`
	TotalCompleted    int       `json:"total_completed" db:"total_completed"`
	TotalFocusSeconds int64     `json:"total_focus_seconds" db:"total_focus_seconds"`
	UpdatedAt         time.Time `json:"updated_at" db:"updated_at"`
}

// StatsSnapshot is a per-day record of activity counters.
// At most one row exists per calendar date.
type StatsSnapshot struct {
	Date           string    `json:"date" db:"date"`
	CompletedCount int       `json:"completed_count" db:"completed_count"`
	OverdueCount   int       `json:"overdue_count" db:"overdue_count"`
	Streak         int       `json:"streak" db:"streak"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
}

// Achievement unlock keys.
const (
	AchievementFirstTask    = "first_task"
	AchievementTenTasks     = "ten_tasks"
	AchievementHundredTasks = "hundred_tasks"
	AchievementWeekStreak   = "week_streak"
)

// Achievement marks a one-time unlock. Re-unlocking is a no-op.
type Achievement struct {
	Key        string    `json:"key" db:"key"`
	UnlockedAt time.Time `json:"unlocked_at" db:"unlocked_at"`
}
