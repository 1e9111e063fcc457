package agent

import "gamesearch/experiments/metrics"

type Agent[P any] interface {
	// FindMove returns the position after the agent's move for the given
	// side, whether any move was available, and search metrics if collected.
	// An error means the agent could not decide, which is not the same as
	// having no move.
	FindMove(p P, maximizing bool) (next P, ok bool, metric metrics.SearchMetric, err error)
}
