package engine

import (
	"time"

	"gamesearch/experiments/metrics"
	"gamesearch/game"
	"gamesearch/meta"
	"gamesearch/searcher/agent"

	"github.com/rs/zerolog/log"
)

// Local alternates two in-process agents over a shared rule set.
type Local[P any, S game.Score] struct {
	rules     game.Rules[P, S]
	maximizer agent.Agent[P]
	minimizer agent.Agent[P]
	maxTurns  int
}

// NewLocal returns an engine stopping after maxTurns moves; a non-positive
// limit falls back to meta.MAX_TURNS.
func NewLocal[P any, S game.Score](rules game.Rules[P, S], maximizer, minimizer agent.Agent[P], maxTurns int) *Local[P, S] {
	if rules == nil || maximizer == nil || minimizer == nil {
		panic("rules and agents cannot be nil")
	}
	if maxTurns <= 0 {
		maxTurns = meta.MAX_TURNS
	}
	return &Local[P, S]{
		rules:     rules,
		maximizer: maximizer,
		minimizer: minimizer,
		maxTurns:  maxTurns,
	}
}

// Run executes the game loop until a terminal position, a side without moves,
// a failing agent or the turn limit.
func (e *Local[P, S]) Run(start P, maximizingFirst bool) (P, metrics.GameMetric, []metrics.MoveMetric) {
	gameMetric := metrics.GameMetric{
		MaximizingFirst: maximizingFirst,
		StartTime:       time.Now(),
	}
	log.Debug().Msgf("maximizing=%t is starting", maximizingFirst)

	state := start
	maximizing := maximizingFirst
	finished, aborted := false, false
	var moveMetrics []metrics.MoveMetric
	for turn := 1; turn <= e.maxTurns; turn++ {
		if game.IsTerminal(e.rules, state) {
			finished = true
			break
		}

		current := e.minimizer
		if maximizing {
			current = e.maximizer
		}
		next, ok, metric, err := current.FindMove(state, maximizing)
		if err != nil {
			log.Error().Err(err).Int("turn", turn).Bool("maximizing", maximizing).Msg("agent failed to move")
			aborted = true
			break
		}
		if !ok {
			log.Debug().Int("turn", turn).Bool("maximizing", maximizing).Msg("no moves left")
			finished = true
			break
		}
		moveMetrics = append(moveMetrics, metrics.MoveMetric{
			Step:         turn,
			Maximizing:   maximizing,
			SearchMetric: metric,
		})
		log.Debug().Int("turn", turn).Bool("maximizing", maximizing).Msgf("played %v", next)

		state = next
		maximizing = !maximizing
	}
	if !finished && !aborted && game.IsTerminal(e.rules, state) {
		finished = true
	}

	score := e.rules.Evaluate(state)
	outcome := Unfinished
	switch {
	case aborted:
		outcome = Aborted
	case finished:
		outcome = decide(score)
	}

	gameMetric.EndTime = time.Now()
	gameMetric.Duration = gameMetric.EndTime.Sub(gameMetric.StartTime)
	gameMetric.TotalMoves = len(moveMetrics)
	gameMetric.FinalScore = float64(score)
	gameMetric.Outcome = string(outcome)

	log.Info().
		Str("outcome", gameMetric.Outcome).
		Float64("score", gameMetric.FinalScore).
		Int("moves", gameMetric.TotalMoves).
		Dur("elapsed", gameMetric.Duration).
		Msg("game over")

	return state, gameMetric, moveMetrics
}

func decide[S game.Score](score S) Outcome {
	switch {
	case score > 0:
		return MaximizerWins
	case score < 0:
		return MinimizerWins
	}
	return Draw
}
