package game

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestTokenLedger_CapNeverExceeded(t *testing.T) {
	store := newFakeStore()
	players := NewPlayerStore()
	ledger := NewTokenLedger(zap.NewNop(), players, store, 30, time.Second)

	ctx := context.Background()
	creditedThisSession := 0
	for _, amount := range []int{10, 10, 10, 10, 25} {
		creditedThisSession += ledger.Credit(ctx, "p1", creditedThisSession, amount)
		assert.LessOrEqual(t, creditedThisSession, 30, "session total must never exceed the cap")
	}
	assert.Equal(t, 30, creditedThisSession)
	assert.Equal(t, int64(30), store.total("p1"))
}

func TestTokenLedger_ClampsPartialCredit(t *testing.T) {
	store := newFakeStore()
	players := NewPlayerStore()
	ledger := NewTokenLedger(zap.NewNop(), players, store, 30, time.Second)

	credited := ledger.Credit(context.Background(), "p1", 25, 10)
	assert.Equal(t, 5, credited, "credit must clamp to the remaining headroom")

	credited = ledger.Credit(context.Background(), "p1", 30, 10)
	assert.Equal(t, 0, credited, "no headroom means no credit")
}

func TestTokenLedger_StorageFailureIsNonFatal(t *testing.T) {
	store := newFakeStore()
	store.setFailing(true)
	players := NewPlayerStore()
	ledger := NewTokenLedger(zap.NewNop(), players, store, 30, time.Second)

	credited := ledger.Credit(context.Background(), "p1", 0, 10)
	assert.Equal(t, 10, credited, "durable outage must not block the credit")

	rec, ok := players.Snapshot("p1")
	assert.True(t, ok)
	assert.Equal(t, int64(10), rec.TotalTokens, "in-memory total must still advance")
}
