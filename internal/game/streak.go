package game

import "time"

// NextStreak returns the updated daily streak for a session completed on
// today's date. A completion the day after the last counted date extends
// the streak, a completion on the same date leaves it alone, and anything
// else starts over at 1. Dates are compared as UTC calendar days.
func NextStreak(today time.Time, lastStreakDate *time.Time, current int) int {
	todayDay := utcDate(today)
	if lastStreakDate != nil {
		lastDay := utcDate(*lastStreakDate)
		if lastDay.Equal(todayDay) {
			if current < 1 {
				return 1
			}
			return current
		}
		if lastDay.AddDate(0, 0, 1).Equal(todayDay) {
			return current + 1
		}
	}
	return 1
}

func utcDate(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}
