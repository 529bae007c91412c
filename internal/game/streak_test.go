package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNextStreak(t *testing.T) {
	today := time.Date(2026, 8, 29, 15, 30, 0, 0, time.UTC)
	yesterday := today.AddDate(0, 0, -1)
	lastWeek := today.AddDate(0, 0, -7)

	cases := []struct {
		name    string
		last    *time.Time
		current int
		want    int
	}{
		{"first ever completion", nil, 0, 1},
		{"continued from yesterday", &yesterday, 3, 4},
		{"already counted today", &today, 3, 3},
		{"today with zero streak", &today, 0, 1},
		{"gap resets", &lastWeek, 9, 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, NextStreak(today, tc.last, tc.current))
		})
	}
}

func TestNextStreak_IgnoresTimeOfDay(t *testing.T) {
	lateYesterday := time.Date(2026, 8, 28, 23, 59, 0, 0, time.UTC)
	earlyToday := time.Date(2026, 8, 29, 0, 1, 0, 0, time.UTC)

	assert.Equal(t, 2, NextStreak(earlyToday, &lateYesterday, 1),
		"calendar days matter, not elapsed hours")
}
