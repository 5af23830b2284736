// Package aggregate computes read-only summaries over the current
// task set. Every function is pure: no persistence, no caching, full
// recomputation on each call. The dataset is local and small, so this
// is cheap.
package aggregate

import (
	"time"

	"taskpad/internal/model"
)

// TodayTasks returns tasks whose due date falls within
// [start of today, end of today] in now's location.
func TodayTasks(tasks []model.Task, now time.Time) []model.Task {
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	end := start.AddDate(0, 0, 1)

	var out []model.Task
	for _, t := range tasks {
		if t.DueDate == nil || t.Deleted() {
			continue
		}
		due := t.DueDate.In(now.Location())
		if !due.Before(start) && due.Before(end) {
			out = append(out, t)
		}
	}
	return out
}

// OverdueTasks returns incomplete tasks with a due date strictly
// before now.
func OverdueTasks(tasks []model.Task, now time.Time) []model.Task {
	var out []model.Task
	for _, t := range tasks {
		if t.Deleted() {
			continue
		}
		if t.Overdue(now) {
			out = append(out, t)
		}
	}
	return out
}

// CompletedTasks returns tasks in the completed status.
func CompletedTasks(tasks []model.Task) []model.Task {
	var out []model.Task
	for _, t := range tasks {
		if t.Completed() && !t.Deleted() {
			out = append(out, t)
		}
	}
	return out
}

// UpcomingTasks returns incomplete tasks due within the next `days`
// days, starting from now.
func UpcomingTasks(tasks []model.Task, now time.Time, days int) []model.Task {
	end := now.AddDate(0, 0, days)

	var out []model.Task
	for _, t := range tasks {
		if t.DueDate == nil || t.Completed() || t.Deleted() {
			continue
		}
		if !t.DueDate.Before(now) && t.DueDate.Before(end) {
			out = append(out, t)
		}
	}
	return out
}

// CountByPriority returns how many of the given tasks carry each
// priority value.
func CountByPriority(tasks []model.Task) map[string]int {
	counts := map[string]int{
		model.PriorityLow:    0,
		model.PriorityMedium: 0,
		model.PriorityHigh:   0,
	}
	for _, t := range tasks {
		if t.Deleted() {
			continue
		}
		counts[t.Priority]++
	}
	return counts
}
