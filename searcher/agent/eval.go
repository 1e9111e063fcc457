package agent

import (
	"fmt"
	"gamesearch/experiments/metrics"
	"gamesearch/game"
	"gamesearch/searcher"
)

type searchAgent[P any, S game.Score] struct {
	searcher searcher.Searcher[P, S]
	depth    int
}

// NewSearchAgent returns an agent playing the best move found by s at the
// given depth. At least one ply is needed to propose a move.
func NewSearchAgent[P any, S game.Score](s searcher.Searcher[P, S], depth int) (Agent[P], error) {
	if depth < 1 {
		return nil, fmt.Errorf("%w: agent needs at least one ply, got %d", searcher.ErrInvalidDepth, depth)
	}
	return searchAgent[P, S]{searcher: s, depth: depth}, nil
}

func (a searchAgent[P, S]) FindMove(p P, maximizing bool) (P, bool, metrics.SearchMetric, error) {
	var none P
	result, err := a.searcher.Search(p, a.depth, maximizing)
	if err != nil {
		return none, false, metrics.SearchMetric{}, err
	}
	if !result.HasMove() {
		return none, false, result.Metric, nil
	}
	return *result.Best, true, result.Metric, nil
}
