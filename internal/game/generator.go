package game

import (
	"math/rand"
	"sync"
)

// Round is the generated data for a single display-then-guess cycle.
type Round struct {
	ShownNumbers     []int
	FakeNumber       int
	SelectionOptions []int
}

// Generator produces round data from an injected random source, so tests can
// seed it deterministically. It has no other state and no side effects.
type Generator struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewGenerator creates a Generator drawing from the given source.
func NewGenerator(src rand.Source) *Generator {
	return &Generator{rng: rand.New(src)}
}

// GenerateRound draws the shown numbers, the fake number, and the shuffled
// answer set for one round. The fake number is guaranteed absent from the
// shown set, and the option order carries no information about which entry
// is fake.
func (g *Generator) GenerateRound(cfg RoundConfig) (Round, error) {
	if err := cfg.Validate(); err != nil {
		return Round{}, err
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	// Rejection-sample distinct three-digit numbers.
	seen := make(map[int]bool, cfg.NumberCount)
	shown := make([]int, 0, cfg.NumberCount)
	for len(shown) < cfg.NumberCount {
		n := g.draw()
		if seen[n] {
			continue
		}
		seen[n] = true
		shown = append(shown, n)
	}

	// The fake is drawn from the same space, rejected against the shown set.
	fake := g.draw()
	for seen[fake] {
		fake = g.draw()
	}

	// Pick optionCount-1 distinct shown values, add the fake, shuffle.
	picks := g.rng.Perm(len(shown))[:cfg.OptionCount-1]
	options := make([]int, 0, cfg.OptionCount)
	for _, i := range picks {
		options = append(options, shown[i])
	}
	options = append(options, fake)
	g.rng.Shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})

	return Round{ShownNumbers: shown, FakeNumber: fake, SelectionOptions: options}, nil
}

func (g *Generator) draw() int {
	return NumberMin + g.rng.Intn(NumberMax-NumberMin+1)
}
