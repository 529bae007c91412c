package game

import (
	"context"
	"math/rand"
	"time"

	"fakeout/internal/models"
	"fakeout/internal/utils"

	"go.uber.org/zap"
)

const tokenLength = 24 // bytes of entropy behind session ids and nonces

// Config carries the engine tunables. Zero fields fall back to sensible
// defaults so tests only set what they care about.
type Config struct {
	Rounds                 []RoundConfig
	TokensPerCorrect       int
	SessionTokenCap        int
	CooldownWindow         time.Duration
	MaxSessionsPerCooldown int
	StoreTimeout           time.Duration

	// Rand seeds the round generator; Now replaces the wall clock. Both
	// exist for deterministic tests.
	Rand rand.Source
	Now  func() time.Time
}

func (c *Config) applyDefaults() {
	if len(c.Rounds) == 0 {
		c.Rounds = DefaultRounds()
	}
	if c.TokensPerCorrect == 0 {
		c.TokensPerCorrect = 10
	}
	if c.SessionTokenCap == 0 {
		c.SessionTokenCap = c.TokensPerCorrect * len(c.Rounds)
	}
	if c.CooldownWindow == 0 {
		c.CooldownWindow = 6 * time.Hour
	}
	if c.MaxSessionsPerCooldown == 0 {
		c.MaxSessionsPerCooldown = 1
	}
	if c.StoreTimeout == 0 {
		c.StoreTimeout = 3 * time.Second
	}
	if c.Rand == nil {
		c.Rand = rand.NewSource(time.Now().UnixNano())
	}
	if c.Now == nil {
		c.Now = time.Now
	}
}

// Engine is the session state machine. It owns the in-memory stores and
// orchestrates the generator, the cooldown gate, and the token ledger.
//
// Session-ending policy: a wrong answer forfeits that round's reward only;
// every session runs all configured rounds. Terminal sessions are retained
// and removed by the periodic sweep, never inline.
type Engine struct {
	log      *zap.Logger
	cfg      Config
	gen      *Generator
	players  *PlayerStore
	sessions *SessionStore
	gate     *CooldownGate
	ledger   *TokenLedger
	store    DurableStore
	now      func() time.Time
}

func NewEngine(log *zap.Logger, store DurableStore, cfg Config) *Engine {
	cfg.applyDefaults()

	players := NewPlayerStore()
	return &Engine{
		log:      log,
		cfg:      cfg,
		gen:      NewGenerator(cfg.Rand),
		players:  players,
		sessions: NewSessionStore(),
		gate:     NewCooldownGate(players, cfg.CooldownWindow, cfg.MaxSessionsPerCooldown, cfg.Now),
		ledger:   NewTokenLedger(log, players, store, cfg.SessionTokenCap, cfg.StoreTimeout),
		store:    store,
		now:      cfg.Now,
	}
}

// Sessions exposes the session store for the cleanup sweep.
func (e *Engine) Sessions() *SessionStore {
	return e.sessions
}

// RoundData is what the client needs to run one round: everything except
// the fake number and the answer set.
type RoundData struct {
	Round         int    `json:"round"`
	ShownNumbers  []int  `json:"shownNumbers"`
	DisplayTimeMs int64  `json:"displayTimeMs"`
	RoundNonce    string `json:"roundNonce"`
}

// StartResult is the successful response to StartSession.
type StartResult struct {
	SessionID string `json:"sessionId"`
	RoundData
}

// OptionsResult carries the current round's answer set.
type OptionsResult struct {
	Round            int   `json:"round"`
	SelectionOptions []int `json:"selectionOptions"`
}

// SubmitResult is the outcome of one submitted answer. NextRound is set
// while the session is still in progress; Summary is set on the terminal
// round. Exactly one of the two is non-nil.
type SubmitResult struct {
	Correct   bool            `json:"correct"`
	NextRound *RoundData      `json:"nextRound,omitempty"`
	Summary   *SessionSummary `json:"summary,omitempty"`
}

// SessionSummary is the terminal report for a finished session.
type SessionSummary struct {
	TokensEarned     int   `json:"tokensEarned"`
	CorrectCount     int   `json:"correctCount"`
	WrongCount       int   `json:"wrongCount"`
	TotalTimeSeconds int64 `json:"totalTimeSeconds"`
	WasPerfect       bool  `json:"wasPerfect"`
}

// StatsResult is the read-only view of a player exposed to collaborators.
type StatsResult struct {
	CanPlay             bool       `json:"canPlay"`
	CooldownEndsAt      *time.Time `json:"cooldownEndsAt,omitempty"`
	CooldownRemainingMs int64      `json:"cooldownRemainingMs"`
	TotalTokens         int64      `json:"totalTokens"`
	PerfectSessions     int64      `json:"perfectSessions"`
	CurrentStreak       int        `json:"currentStreak"`
}

// StartSession begins a new attempt for the player. The cooldown is
// consumed here, at start, so abandoning a session cannot be used to dodge
// the gate. The fake number and the answer set are never part of the
// response.
func (e *Engine) StartSession(ctx context.Context, playerID string) (*StartResult, error) {
	e.hydratePlayer(ctx, playerID)

	allowed, endsAt := e.gate.Reserve(playerID)
	if !allowed {
		return nil, &RateLimitedError{CooldownEndsAt: endsAt}
	}

	round, err := e.gen.GenerateRound(e.cfg.Rounds[0])
	if err != nil {
		return nil, err
	}
	sessionID, err := utils.GenerateSecureToken(tokenLength)
	if err != nil {
		return nil, err
	}
	nonce, err := utils.GenerateSecureToken(tokenLength)
	if err != nil {
		return nil, err
	}

	now := e.now()
	s := &GameSession{
		ID:               sessionID,
		PlayerID:         playerID,
		Round:            1,
		ShownNumbers:     round.ShownNumbers,
		FakeNumber:       round.FakeNumber,
		SelectionOptions: round.SelectionOptions,
		RoundNonce:       nonce,
		StartedAt:        now,
		RoundStartedAt:   now,
	}
	e.sessions.Put(s)

	e.log.Debug("Session started",
		zap.String("playerID", playerID),
		zap.String("sessionID", sessionID),
	)

	return &StartResult{
		SessionID: sessionID,
		RoundData: RoundData{
			Round:         1,
			ShownNumbers:  append([]int(nil), round.ShownNumbers...),
			DisplayTimeMs: e.cfg.Rounds[0].DisplayTime.Milliseconds(),
			RoundNonce:    nonce,
		},
	}, nil
}

// FetchOptions returns the current round's answer set. The nonce check also
// rejects stale requests left over from a previous round.
func (e *Engine) FetchOptions(sessionID, nonce string) (*OptionsResult, error) {
	s, ok := e.sessions.Get(sessionID)
	if !ok {
		return nil, ErrNotFound
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// A terminal session has no live round; any fetch against it is stale.
	if s.Completed || nonce != s.RoundNonce {
		return nil, ErrInvalidNonce
	}
	return &OptionsResult{
		Round:            s.Round,
		SelectionOptions: append([]int(nil), s.SelectionOptions...),
	}, nil
}

// SubmitAnswer resolves one round. The session lock is held across the full
// transition, so a double-submitted answer sees either InvalidNonce (the
// nonce rotated) or AlreadyCompleted, never a second advance.
func (e *Engine) SubmitAnswer(ctx context.Context, playerID, sessionID string, chosenNumber int, nonce string) (*SubmitResult, error) {
	s, ok := e.sessions.Get(sessionID)
	if !ok {
		return nil, ErrNotFound
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.PlayerID != playerID {
		return nil, ErrForbidden
	}
	if s.Completed {
		return nil, ErrAlreadyCompleted
	}
	if nonce != s.RoundNonce {
		return nil, ErrInvalidNonce
	}

	correct := chosenNumber == s.FakeNumber
	if correct {
		s.TokensEarned += e.ledger.Credit(ctx, playerID, s.TokensEarned, e.cfg.TokensPerCorrect)
		s.CorrectCount++
	} else {
		s.WrongCount++
	}

	if s.Round >= len(e.cfg.Rounds) {
		return e.completeSession(ctx, s, correct)
	}

	next, err := e.gen.GenerateRound(e.cfg.Rounds[s.Round])
	if err != nil {
		return nil, err
	}
	nextNonce, err := utils.GenerateSecureToken(tokenLength)
	if err != nil {
		return nil, err
	}

	s.Round++
	s.ShownNumbers = next.ShownNumbers
	s.FakeNumber = next.FakeNumber
	s.SelectionOptions = next.SelectionOptions
	s.RoundNonce = nextNonce
	s.RoundStartedAt = e.now()

	return &SubmitResult{
		Correct: correct,
		NextRound: &RoundData{
			Round:         s.Round,
			ShownNumbers:  append([]int(nil), next.ShownNumbers...),
			DisplayTimeMs: e.cfg.Rounds[s.Round-1].DisplayTime.Milliseconds(),
			RoundNonce:    nextNonce,
		},
	}, nil
}

// completeSession expects the session lock to be held and the final round
// already tallied.
func (e *Engine) completeSession(ctx context.Context, s *GameSession, correct bool) (*SubmitResult, error) {
	now := e.now()
	s.Completed = true
	s.CompletedAt = now
	s.RoundNonce = ""

	wasPerfect := s.WrongCount == 0 && s.CorrectCount == len(e.cfg.Rounds)
	elapsed := now.Sub(s.StartedAt)

	var streak int
	e.players.With(s.PlayerID, func(p *PlayerRecord) {
		streak = NextStreak(now, p.LastStreakDate, p.CurrentStreak)
		p.CurrentStreak = streak
		streakDate := utcDate(now)
		p.LastStreakDate = &streakDate
		if wasPerfect {
			p.PerfectSessions++
		}
	})

	e.persistOutcome(ctx, s, wasPerfect, streak, elapsed)

	e.log.Info("Session completed",
		zap.String("playerID", s.PlayerID),
		zap.String("sessionID", s.ID),
		zap.Int("tokensEarned", s.TokensEarned),
		zap.Int("correct", s.CorrectCount),
		zap.Int("wrong", s.WrongCount),
		zap.Bool("perfect", wasPerfect),
	)

	return &SubmitResult{
		Correct: correct,
		Summary: &SessionSummary{
			TokensEarned:     s.TokensEarned,
			CorrectCount:     s.CorrectCount,
			WrongCount:       s.WrongCount,
			TotalTimeSeconds: int64(elapsed.Seconds()),
			WasPerfect:       wasPerfect,
		},
	}, nil
}

// persistOutcome mirrors the terminal state to the durable store. Failures
// are logged and swallowed; the in-memory record already holds the truth
// for this process.
func (e *Engine) persistOutcome(ctx context.Context, s *GameSession, wasPerfect bool, streak int, elapsed time.Duration) {
	storeCtx, cancel := context.WithTimeout(ctx, e.cfg.StoreTimeout)
	defer cancel()

	if err := e.store.RecordOutcome(storeCtx, s.PlayerID, wasPerfect, streak, utcDate(e.now())); err != nil {
		e.log.Warn("Failed to persist session outcome",
			zap.String("playerID", s.PlayerID),
			zap.Error(err),
		)
	}

	nums := make([]int64, len(s.ShownNumbers))
	for i, n := range s.ShownNumbers {
		nums[i] = int64(n)
	}
	arch := &models.SessionArchive{
		SessionID:      s.ID,
		PlayerID:       s.PlayerID,
		TokensEarned:   s.TokensEarned,
		CorrectCount:   s.CorrectCount,
		WrongCount:     s.WrongCount,
		WasPerfect:     wasPerfect,
		TotalTimeMs:    elapsed.Milliseconds(),
		FinalRoundNums: nums,
	}
	if err := e.store.SaveArchive(storeCtx, arch); err != nil {
		e.log.Warn("Failed to archive session",
			zap.String("sessionID", s.ID),
			zap.Error(err),
		)
	}
}

// PlayerStats is the read-only view for the stats endpoint and any host
// platform integrations.
func (e *Engine) PlayerStats(ctx context.Context, playerID string) StatsResult {
	e.hydratePlayer(ctx, playerID)

	var res StatsResult
	now := e.now()
	e.players.With(playerID, func(p *PlayerRecord) {
		// Lazy expiry first, same as the gate does.
		if p.CooldownEndsAt != nil && !now.Before(*p.CooldownEndsAt) {
			p.CooldownEndsAt = nil
			p.SessionsInWindow = 0
		}
		res.CanPlay = p.CooldownEndsAt == nil || p.SessionsInWindow < e.cfg.MaxSessionsPerCooldown
		if p.CooldownEndsAt != nil {
			endsAt := *p.CooldownEndsAt
			res.CooldownEndsAt = &endsAt
			if !res.CanPlay {
				res.CooldownRemainingMs = endsAt.Sub(now).Milliseconds()
			}
		}
		res.TotalTokens = p.TotalTokens
		res.PerfectSessions = p.PerfectSessions
		res.CurrentStreak = p.CurrentStreak
	})
	return res
}

// hydratePlayer seeds a first-contact player record from the durable store.
// A racing second hydration writes the same values; a store failure leaves
// the record zeroed, which is the fail-soft behavior we want.
func (e *Engine) hydratePlayer(ctx context.Context, playerID string) {
	if _, ok := e.players.Snapshot(playerID); ok {
		return
	}

	storeCtx, cancel := context.WithTimeout(ctx, e.cfg.StoreTimeout)
	defer cancel()
	total, err := e.store.GetTotal(storeCtx, playerID)
	if err != nil {
		e.log.Warn("Failed to hydrate player from durable store",
			zap.String("playerID", playerID),
			zap.Error(err),
		)
		total = 0
	}

	e.players.With(playerID, func(p *PlayerRecord) {
		if p.TotalTokens == 0 {
			p.TotalTokens = total
		}
	})
}
