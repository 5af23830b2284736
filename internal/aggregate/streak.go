package aggregate

import (
	"time"

	"taskpad/internal/model"
)

// NextStreak advances the streak counters for a completion on day
// (formatted with model.DateLayout). Completing on the same day as the
// last recorded activity leaves the streak unchanged; completing on
// the immediately following day extends it; any other gap resets it
// to 1. The longest streak is the running maximum.
func NextStreak(current, longest int, lastActivity *string, day string) (int, int) {
	next := 1

	if lastActivity != nil {
		last, err := time.Parse(model.DateLayout, *lastActivity)
		if err == nil {
			cur, err := time.Parse(model.DateLayout, day)
			if err == nil {
				switch {
				case cur.Equal(last):
					next = current
					if next == 0 {
						next = 1
					}
				case cur.Equal(last.AddDate(0, 0, 1)):
					next = current + 1
				}
			}
		}
	}

	if next > longest {
		longest = next
	}
	return next, longest
}
