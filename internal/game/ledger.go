package game

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// TokenLedger accumulates reward tokens per player, capped per session. The
// in-memory total is authoritative for gameplay; the durable store is
// mirrored best-effort so a storage outage never blocks play.
type TokenLedger struct {
	log        *zap.Logger
	players    *PlayerStore
	store      DurableStore
	sessionCap int
	timeout    time.Duration
}

func NewTokenLedger(log *zap.Logger, players *PlayerStore, store DurableStore, sessionCap int, timeout time.Duration) *TokenLedger {
	return &TokenLedger{
		log:        log,
		players:    players,
		store:      store,
		sessionCap: sessionCap,
		timeout:    timeout,
	}
}

// Credit awards up to amount tokens to the player, clamped so the session's
// running total never exceeds the cap. It returns the amount actually
// credited. A durable-store failure is logged and swallowed.
func (l *TokenLedger) Credit(ctx context.Context, playerID string, creditedThisSession, amount int) int {
	credited := amount
	if remaining := l.sessionCap - creditedThisSession; credited > remaining {
		credited = remaining
	}
	if credited <= 0 {
		return 0
	}

	l.players.With(playerID, func(p *PlayerRecord) {
		p.TotalTokens += int64(credited)
	})

	storeCtx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()
	if _, err := l.store.IncrementTotal(storeCtx, playerID, int64(credited)); err != nil {
		l.log.Warn("Durable token credit failed, in-memory total advanced anyway",
			zap.String("playerID", playerID),
			zap.Int("amount", credited),
			zap.Error(err),
		)
	}
	return credited
}
