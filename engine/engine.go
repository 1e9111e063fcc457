package engine

import "gamesearch/experiments/metrics"

// Outcome of a finished game, from the maximizer's point of view.
type Outcome string

const (
	MaximizerWins Outcome = "maximizer"
	MinimizerWins Outcome = "minimizer"
	Draw          Outcome = "draw"
	Unfinished    Outcome = "unfinished" // Turn limit reached
	Aborted       Outcome = "aborted"    // An agent failed to decide
)

type Engine[P any] interface {
	// Run plays from start until the game ends or the turn limit is reached
	Run(start P, maximizingFirst bool) (final P, gameMetric metrics.GameMetric, moveMetrics []metrics.MoveMetric)
}
