package game

import "time"

// CooldownGate enforces the minimum interval between session starts for a
// player. Windows expire lazily: the first caller to observe a past
// CooldownEndsAt resets the window. All checks run under the player store's
// per-player lock, so a check-then-engage pair cannot interleave with
// another start for the same player.
type CooldownGate struct {
	players     *PlayerStore
	window      time.Duration
	maxSessions int
	now         func() time.Time
}

func NewCooldownGate(players *PlayerStore, window time.Duration, maxSessions int, now func() time.Time) *CooldownGate {
	if maxSessions < 1 {
		maxSessions = 1
	}
	return &CooldownGate{players: players, window: window, maxSessions: maxSessions, now: now}
}

// CanStart reports whether the player may start a session now. When it is
// denied, the returned time is when the current window ends.
func (g *CooldownGate) CanStart(playerID string) (bool, time.Time) {
	var allowed bool
	var endsAt time.Time
	g.players.With(playerID, func(p *PlayerRecord) {
		allowed, endsAt = g.check(p)
	})
	return allowed, endsAt
}

// Engage consumes one attempt: it opens (or extends into) a cooldown window
// ending now + window and counts the session against it.
func (g *CooldownGate) Engage(playerID string) {
	g.players.With(playerID, func(p *PlayerRecord) {
		g.engage(p)
	})
}

// Reserve is CanStart and Engage under one lock. This is the form the
// engine uses: two concurrent starts for the same player cannot both
// observe "allowed".
func (g *CooldownGate) Reserve(playerID string) (bool, time.Time) {
	var allowed bool
	var endsAt time.Time
	g.players.With(playerID, func(p *PlayerRecord) {
		allowed, endsAt = g.check(p)
		if allowed {
			g.engage(p)
		}
	})
	return allowed, endsAt
}

// check expects the player lock to be held. It performs lazy expiry before
// deciding.
func (g *CooldownGate) check(p *PlayerRecord) (bool, time.Time) {
	now := g.now()
	if p.CooldownEndsAt != nil && !now.Before(*p.CooldownEndsAt) {
		p.CooldownEndsAt = nil
		p.SessionsInWindow = 0
	}
	if p.CooldownEndsAt == nil {
		return true, time.Time{}
	}
	if p.SessionsInWindow < g.maxSessions {
		return true, time.Time{}
	}
	return false, *p.CooldownEndsAt
}

// engage expects the player lock to be held.
func (g *CooldownGate) engage(p *PlayerRecord) {
	now := g.now()
	endsAt := now.Add(g.window)
	p.CooldownEndsAt = &endsAt
	p.SessionsInWindow++
	p.LastPlayedAt = &now
}
