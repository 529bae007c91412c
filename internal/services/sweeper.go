package services

import (
	"time"

	"fakeout/internal/game"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Sweeper periodically removes expired sessions from the session store.
// Terminal sessions are retained until this sweep runs, regardless of how
// they ended; abandoned sessions age out the same way.
type Sweeper struct {
	log       *zap.Logger
	sessions  *game.SessionStore
	retention time.Duration
	schedule  string
	cron      *cron.Cron
}

func NewSweeper(log *zap.Logger, sessions *game.SessionStore, retention time.Duration, schedule string) *Sweeper {
	return &Sweeper{
		log:       log,
		sessions:  sessions,
		retention: retention,
		schedule:  schedule,
		cron:      cron.New(),
	}
}

// Start registers the sweep job and launches the cron scheduler.
func (s *Sweeper) Start() error {
	_, err := s.cron.AddFunc(s.schedule, s.sweep)
	if err != nil {
		return err
	}
	s.cron.Start()
	s.log.Info("Session sweeper started", zap.String("schedule", s.schedule))
	return nil
}

// Stop halts the scheduler, waiting for a running sweep to finish.
func (s *Sweeper) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

func (s *Sweeper) sweep() {
	purged := s.sessions.PurgeExpired(time.Now(), s.retention)
	if purged > 0 {
		s.log.Info("Purged expired sessions",
			zap.Int("purged", purged),
			zap.Int("remaining", s.sessions.Len()),
		)
	}
}
