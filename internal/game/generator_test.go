package game

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateRound_Invariants(t *testing.T) {
	gen := NewGenerator(rand.NewSource(42))
	cfg := RoundConfig{NumberCount: 5, DisplayTime: 5 * time.Second, OptionCount: 3}

	for i := 0; i < 1000; i++ {
		round, err := gen.GenerateRound(cfg)
		require.NoError(t, err)

		require.Len(t, round.ShownNumbers, cfg.NumberCount)
		shown := make(map[int]bool, len(round.ShownNumbers))
		for _, n := range round.ShownNumbers {
			assert.GreaterOrEqual(t, n, NumberMin)
			assert.LessOrEqual(t, n, NumberMax)
			assert.False(t, shown[n], "shown numbers must be distinct")
			shown[n] = true
		}

		assert.False(t, shown[round.FakeNumber], "fake number must not be among shown")
		assert.GreaterOrEqual(t, round.FakeNumber, NumberMin)
		assert.LessOrEqual(t, round.FakeNumber, NumberMax)

		require.Len(t, round.SelectionOptions, cfg.OptionCount)
		opts := make(map[int]bool, len(round.SelectionOptions))
		fakeCount := 0
		for _, n := range round.SelectionOptions {
			assert.False(t, opts[n], "options must be distinct")
			opts[n] = true
			if n == round.FakeNumber {
				fakeCount++
			} else {
				assert.True(t, shown[n], "non-fake options must come from shown numbers")
			}
		}
		assert.Equal(t, 1, fakeCount, "fake must appear exactly once in options")
	}
}

func TestGenerateRound_Deterministic(t *testing.T) {
	cfg := RoundConfig{NumberCount: 6, DisplayTime: 4 * time.Second, OptionCount: 4}

	a, err := NewGenerator(rand.NewSource(7)).GenerateRound(cfg)
	require.NoError(t, err)
	b, err := NewGenerator(rand.NewSource(7)).GenerateRound(cfg)
	require.NoError(t, err)

	assert.Equal(t, a, b, "same seed must produce the same round")
}

func TestGenerateRound_InvalidConfig(t *testing.T) {
	gen := NewGenerator(rand.NewSource(1))

	cases := []struct {
		name string
		cfg  RoundConfig
	}{
		{"zero counts", RoundConfig{}},
		{"options exceed shown plus fake", RoundConfig{NumberCount: 3, OptionCount: 5}},
		{"negative option count", RoundConfig{NumberCount: 5, OptionCount: -1}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := gen.GenerateRound(tc.cfg)
			assert.Error(t, err)
		})
	}
}
