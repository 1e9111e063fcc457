package agent

import (
	"gamesearch/experiments/metrics"
	"gamesearch/game"

	"golang.org/x/exp/rand"
)

// randomAgent plays a uniformly random legal move. It is the baseline
// opponent in experiments and is not safe for concurrent use.
type randomAgent[P any, S game.Score] struct {
	rules game.Rules[P, S]
	rand  *rand.Rand
}

func NewRandomAgent[P any, S game.Score](rules game.Rules[P, S], seed uint64) Agent[P] {
	return &randomAgent[P, S]{
		rules: rules,
		rand:  rand.New(rand.NewSource(seed)),
	}
}

func (a *randomAgent[P, S]) FindMove(p P, maximizing bool) (P, bool, metrics.SearchMetric, error) {
	successors := a.rules.Successors(p, maximizing)
	if len(successors) == 0 {
		var none P
		return none, false, metrics.SearchMetric{}, nil
	}
	return successors[a.rand.Intn(len(successors))], true, metrics.SearchMetric{}, nil
}
