package game

import (
	"context"
	"errors"
	"sync"
	"time"

	"fakeout/internal/models"
)

// fakeClock is a controllable replacement for time.Now in tests.
type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock(start time.Time) *fakeClock {
	return &fakeClock{t: start}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

// fakeStore is an in-memory DurableStore. Setting failing makes every call
// error, which is how the storage-outage paths get exercised.
type fakeStore struct {
	mu       sync.Mutex
	totals   map[string]int64
	archives []*models.SessionArchive
	outcomes int
	failing  bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{totals: make(map[string]int64)}
}

func (s *fakeStore) GetTotal(ctx context.Context, playerID string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failing {
		return 0, errors.New("store unavailable")
	}
	return s.totals[playerID], nil
}

func (s *fakeStore) IncrementTotal(ctx context.Context, playerID string, amount int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failing {
		return 0, errors.New("store unavailable")
	}
	s.totals[playerID] += amount
	return s.totals[playerID], nil
}

func (s *fakeStore) RecordOutcome(ctx context.Context, playerID string, wasPerfect bool, streak int, streakDate time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failing {
		return errors.New("store unavailable")
	}
	s.outcomes++
	return nil
}

func (s *fakeStore) SaveArchive(ctx context.Context, arch *models.SessionArchive) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failing {
		return errors.New("store unavailable")
	}
	s.archives = append(s.archives, arch)
	return nil
}

func (s *fakeStore) setFailing(failing bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failing = failing
}

func (s *fakeStore) total(playerID string) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.totals[playerID]
}
