package model

import "time"

// Reminder schedules a notification for a task. RepeatRule is an
// opaque recurrence expression ("daily", "weekly", ...) interpreted by
// the platform notification layer, not by this core.
type Reminder struct {
	ID          string     `json:"id" db:"id"`
	TaskID      string     `json:"task_id" db:"task_id"`
	FireAt      time.Time  `json:"fire_at" db:"fire_at"`
	RepeatRule  string     `json:"repeat_rule,omitempty" db:"repeat_rule"`
	LastFiredAt *time.Time `json:"last_fired_at,omitempty" db:"last_fired_at"`
	Enabled     bool       `json:"enabled" db:"enabled"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
}
