package game

import (
	"fmt"
	"time"
)

// Numbers shown to the player are always three digits.
const (
	NumberMin = 100
	NumberMax = 999
)

// RoundConfig describes one round of a session: how many numbers the client
// displays, for how long, and how many entries the answer set has.
type RoundConfig struct {
	NumberCount int
	DisplayTime time.Duration
	OptionCount int
}

// Validate checks that a fake number can actually fit among the options.
func (c RoundConfig) Validate() error {
	if c.NumberCount <= 0 || c.OptionCount <= 0 {
		return fmt.Errorf("round config has non-positive counts: %+v", c)
	}
	if c.OptionCount > c.NumberCount+1 {
		return fmt.Errorf("option count %d exceeds number count %d + 1", c.OptionCount, c.NumberCount)
	}
	if c.NumberCount > NumberMax-NumberMin {
		return fmt.Errorf("number count %d cannot be drawn distinctly from [%d, %d]", c.NumberCount, NumberMin, NumberMax)
	}
	return nil
}

// DefaultRounds is the standard three-round session: each round shows more
// numbers for less time and widens the answer set.
func DefaultRounds() []RoundConfig {
	return []RoundConfig{
		{NumberCount: 5, DisplayTime: 5 * time.Second, OptionCount: 3},
		{NumberCount: 6, DisplayTime: 4 * time.Second, OptionCount: 4},
		{NumberCount: 7, DisplayTime: 3 * time.Second, OptionCount: 5},
	}
}
