package searcher

import (
	"fmt"
	"gamesearch/experiments/metrics"
	"gamesearch/game"
)

// Minimax is the full-width reference search. It applies the same tie and
// no-move policy as AlphaBeta but never prunes, so both always agree on the
// score; Minimax only visits more positions.
type Minimax[P any, S game.Score] struct {
	rules   game.Rules[P, S]
	metrics metrics.Collector
}

func NewMinimax[P any, S game.Score](rules game.Rules[P, S], options ...Option) *Minimax[P, S] {
	if rules == nil {
		panic("rules cannot be nil")
	}
	c := newConfig(options)
	return &Minimax[P, S]{
		rules:   rules,
		metrics: c.metrics,
	}
}

func (m *Minimax[P, S]) Search(p P, depth int, maximizing bool) (Result[P, S], error) {
	if depth < 0 {
		return Result[P, S]{}, fmt.Errorf("%w: %d", ErrInvalidDepth, depth)
	}

	m.metrics.Start(depth)
	score, best := m.search(p, depth, maximizing)
	metric := m.metrics.Complete()
	logSearch("minimax", maximizing, score, metric)

	return Result[P, S]{Score: score, Best: best, Metric: metric}, nil
}

func (m *Minimax[P, S]) search(p P, depth int, maximizing bool) (S, *P) {
	m.metrics.AddNode()

	if depth == 0 || game.IsTerminal(m.rules, p) {
		m.metrics.AddLeaf()
		return m.rules.Evaluate(p), &p
	}

	successors := m.rules.Successors(p, maximizing)
	if len(successors) == 0 {
		m.metrics.AddLeaf()
		return m.rules.Evaluate(p), nil
	}

	var best *P
	bestScore := game.Infinity[S]()
	if maximizing {
		bestScore = -bestScore
	}
	for i := range successors {
		score, _ := m.search(successors[i], depth-1, !maximizing)
		if (maximizing && score > bestScore) || (!maximizing && score < bestScore) {
			bestScore = score
			best = &successors[i]
		}
	}
	return bestScore, best
}
