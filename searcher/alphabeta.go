package searcher

import (
	"fmt"
	"gamesearch/experiments/metrics"
	"gamesearch/game"
)

// AlphaBeta is a fixed-depth minimax search with alpha-beta pruning. It keeps
// no state between searches apart from its metrics collector, so a single
// value must not be shared by concurrent callers when metrics are enabled.
type AlphaBeta[P any, S game.Score] struct {
	rules   game.Rules[P, S]
	metrics metrics.Collector
}

func NewAlphaBeta[P any, S game.Score](rules game.Rules[P, S], options ...Option) *AlphaBeta[P, S] {
	if rules == nil {
		panic("rules cannot be nil")
	}
	c := newConfig(options)
	return &AlphaBeta[P, S]{
		rules:   rules,
		metrics: c.metrics,
	}
}

// Search explores depth plies below p with an unbounded window.
func (a *AlphaBeta[P, S]) Search(p P, depth int, maximizing bool) (Result[P, S], error) {
	inf := game.Infinity[S]()
	return a.SearchWindow(p, depth, maximizing, -inf, inf)
}

// SearchWindow explores depth plies below p with the pruning window
// (alpha, beta). Scores outside the window are bounds, not exact values.
func (a *AlphaBeta[P, S]) SearchWindow(p P, depth int, maximizing bool, alpha, beta S) (Result[P, S], error) {
	if depth < 0 {
		return Result[P, S]{}, fmt.Errorf("%w: %d", ErrInvalidDepth, depth)
	}

	a.metrics.Start(depth)
	score, best := a.search(p, depth, maximizing, alpha, beta)
	metric := a.metrics.Complete()
	logSearch("alphabeta", maximizing, score, metric)

	return Result[P, S]{Score: score, Best: best, Metric: metric}, nil
}

func (a *AlphaBeta[P, S]) search(p P, depth int, maximizing bool, alpha, beta S) (S, *P) {
	a.metrics.AddNode()

	if depth == 0 || game.IsTerminal(a.rules, p) {
		a.metrics.AddLeaf()
		return a.rules.Evaluate(p), &p
	}

	successors := a.rules.Successors(p, maximizing)
	if len(successors) == 0 { // No legal moves
		a.metrics.AddLeaf()
		return a.rules.Evaluate(p), nil
	}

	var best *P
	inf := game.Infinity[S]()

	if maximizing {
		bestScore := -inf
		for i := range successors {
			score, _ := a.search(successors[i], depth-1, false, alpha, beta)
			// Strict so the first of equally good moves is kept
			if score > bestScore {
				bestScore = score
				best = &successors[i]
			}
			alpha = max(alpha, score)
			if beta <= alpha {
				a.cutoff(i, len(successors))
				break
			}
		}
		return bestScore, best
	}

	bestScore := inf
	for i := range successors {
		score, _ := a.search(successors[i], depth-1, true, alpha, beta)
		if score < bestScore {
			bestScore = score
			best = &successors[i]
		}
		beta = min(beta, score)
		if beta <= alpha {
			a.cutoff(i, len(successors))
			break
		}
	}
	return bestScore, best
}

// cutoff records a prune that actually skipped siblings.
func (a *AlphaBeta[P, S]) cutoff(i, n int) {
	if i < n-1 {
		a.metrics.AddCutoff()
	}
}
