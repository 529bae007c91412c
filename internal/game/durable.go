package game

import (
	"context"
	"time"

	"fakeout/internal/models"
)

// DurableStore is the persistence capability the engine consumes. The
// gorm-backed implementation lives in internal/repository; tests inject
// fakes. Every call is bounded by the caller's context and failures are
// fail-soft: gameplay proceeds on in-memory state alone.
type DurableStore interface {
	// GetTotal returns the persisted token total for a player, zero if the
	// player has never been seen.
	GetTotal(ctx context.Context, playerID string) (int64, error)

	// IncrementTotal adds amount to the player's persisted total and returns
	// the new value, creating the row if needed.
	IncrementTotal(ctx context.Context, playerID string, amount int64) (int64, error)

	// RecordOutcome persists streak and perfect-session counters after a
	// session reaches a terminal state.
	RecordOutcome(ctx context.Context, playerID string, wasPerfect bool, streak int, streakDate time.Time) error

	// SaveArchive stores a finished session for history and the leaderboard.
	SaveArchive(ctx context.Context, arch *models.SessionArchive) error
}
