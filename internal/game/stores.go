package game

import (
	"sync"
	"time"
)

// PlayerRecord is the in-memory gameplay state for one player. The token
// total is mirrored to the durable store; everything else is process-local.
type PlayerRecord struct {
	ID               string
	SessionsInWindow int
	LastPlayedAt     *time.Time
	CooldownEndsAt   *time.Time
	TotalTokens      int64
	PerfectSessions  int64
	CurrentStreak    int
	LastStreakDate   *time.Time
}

// GameSession is one active attempt. All mutation happens under mu, which
// serializes concurrent submits so a session can never advance twice from
// the same nonce.
type GameSession struct {
	mu sync.Mutex

	ID       string
	PlayerID string

	Round            int
	ShownNumbers     []int
	FakeNumber       int
	SelectionOptions []int
	RoundNonce       string

	StartedAt      time.Time
	RoundStartedAt time.Time

	TokensEarned int
	CorrectCount int
	WrongCount   int
	Completed    bool
	CompletedAt  time.Time
}

type playerEntry struct {
	mu  sync.Mutex
	rec PlayerRecord
}

// PlayerStore holds per-player records keyed by the external player id.
// Records are created lazily on first contact and live for the process
// lifetime. With runs fn under a per-player lock, which is what makes the
// cooldown gate's check-then-engage atomic.
type PlayerStore struct {
	mu      sync.Mutex
	players map[string]*playerEntry
}

func NewPlayerStore() *PlayerStore {
	return &PlayerStore{players: make(map[string]*playerEntry)}
}

// With locks the player's record, creating it if needed, and runs fn on it.
func (ps *PlayerStore) With(id string, fn func(p *PlayerRecord)) {
	ps.mu.Lock()
	entry, ok := ps.players[id]
	if !ok {
		entry = &playerEntry{rec: PlayerRecord{ID: id}}
		ps.players[id] = entry
	}
	ps.mu.Unlock()

	entry.mu.Lock()
	defer entry.mu.Unlock()
	fn(&entry.rec)
}

// Snapshot returns a copy of the player's record without creating one.
func (ps *PlayerStore) Snapshot(id string) (PlayerRecord, bool) {
	ps.mu.Lock()
	entry, ok := ps.players[id]
	ps.mu.Unlock()
	if !ok {
		return PlayerRecord{}, false
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()
	return entry.rec, true
}

// SessionStore holds active and recently finished sessions by session id.
// Terminal sessions are retained until the periodic sweep removes them;
// deletion never depends on the session's outcome.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*GameSession
}

func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[string]*GameSession)}
}

func (ss *SessionStore) Put(s *GameSession) {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	ss.sessions[s.ID] = s
}

func (ss *SessionStore) Get(id string) (*GameSession, bool) {
	ss.mu.RLock()
	defer ss.mu.RUnlock()
	s, ok := ss.sessions[id]
	return s, ok
}

func (ss *SessionStore) Len() int {
	ss.mu.RLock()
	defer ss.mu.RUnlock()
	return len(ss.sessions)
}

// PurgeExpired removes sessions whose retention has lapsed: terminal ones
// older than retention, and abandoned ones with no round activity for the
// same span. Returns how many were removed.
func (ss *SessionStore) PurgeExpired(now time.Time, retention time.Duration) int {
	cutoff := now.Add(-retention)

	ss.mu.Lock()
	defer ss.mu.Unlock()

	purged := 0
	for id, s := range ss.sessions {
		s.mu.Lock()
		expired := (s.Completed && s.CompletedAt.Before(cutoff)) ||
			(!s.Completed && s.RoundStartedAt.Before(cutoff))
		s.mu.Unlock()
		if expired {
			delete(ss.sessions, id)
			purged++
		}
	}
	return purged
}
