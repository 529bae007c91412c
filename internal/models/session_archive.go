package models

import (
	"time"

	"github.com/lib/pq"
)

// SessionArchive records a finished session for history and the leaderboard.
// Written best-effort when a session reaches a terminal state; gameplay never
// waits on it.
type SessionArchive struct {
	ID             int `gorm:"primaryKey"`
	SessionID      string
	PlayerID       string `gorm:"index"`
	TokensEarned   int
	CorrectCount   int
	WrongCount     int
	WasPerfect     bool
	TotalTimeMs    int64
	FinalRoundNums pq.Int64Array `gorm:"type:integer[]"`
	CreatedAt      time.Time
}
