package game

import (
	"errors"
	"fmt"
	"time"
)

// Protocol violations. These are terminal for the request, never for the
// process; handlers translate them to HTTP statuses.
var (
	ErrNotFound         = errors.New("session not found")
	ErrForbidden        = errors.New("session belongs to another player")
	ErrInvalidNonce     = errors.New("stale or mismatched round nonce")
	ErrAlreadyCompleted = errors.New("session already completed")
)

// RateLimitedError is returned by StartSession while the player's cooldown
// window is still open. It carries the end of the window so the caller can
// show a wait time.
type RateLimitedError struct {
	CooldownEndsAt time.Time
}

func (e *RateLimitedError) Error() string {
	return fmt.Sprintf("rate limited until %s", e.CooldownEndsAt.UTC().Format(time.RFC3339))
}
