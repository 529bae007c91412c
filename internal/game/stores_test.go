package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSessionStore_PurgeExpired(t *testing.T) {
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	retention := time.Hour

	store := NewSessionStore()
	store.Put(&GameSession{ID: "fresh-active", RoundStartedAt: now.Add(-time.Minute)})
	store.Put(&GameSession{ID: "abandoned", RoundStartedAt: now.Add(-2 * time.Hour)})
	store.Put(&GameSession{ID: "fresh-done", Completed: true, CompletedAt: now.Add(-time.Minute)})
	store.Put(&GameSession{ID: "old-done", Completed: true, CompletedAt: now.Add(-2 * time.Hour)})

	purged := store.PurgeExpired(now, retention)
	assert.Equal(t, 2, purged)
	assert.Equal(t, 2, store.Len())

	_, ok := store.Get("fresh-active")
	assert.True(t, ok)
	_, ok = store.Get("fresh-done")
	assert.True(t, ok, "terminal sessions are retained until expiry")
	_, ok = store.Get("abandoned")
	assert.False(t, ok)
	_, ok = store.Get("old-done")
	assert.False(t, ok)
}

func TestPlayerStore_SnapshotDoesNotCreate(t *testing.T) {
	store := NewPlayerStore()

	_, ok := store.Snapshot("p1")
	assert.False(t, ok)

	store.With("p1", func(p *PlayerRecord) {
		p.TotalTokens = 5
	})

	rec, ok := store.Snapshot("p1")
	assert.True(t, ok)
	assert.Equal(t, int64(5), rec.TotalTokens)
	assert.Equal(t, "p1", rec.ID)
}
