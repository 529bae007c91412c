package models

import "time"

// PlayerTotal is the durable per-player counter row. It is the persistent
// backing for the in-memory player record: the token total survives process
// restarts, the rest of the gameplay state does not need to.
type PlayerTotal struct {
	PlayerID        string `gorm:"primaryKey;size:128"`
	TotalTokens     int64
	PerfectSessions int64
	CurrentStreak   int
	LastStreakDate  *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
