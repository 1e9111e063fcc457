package searcher

import (
	"errors"
	"gamesearch/experiments/metrics"
	"gamesearch/game"

	"github.com/rs/zerolog/log"
)

// ErrInvalidDepth is returned for negative depth budgets.
var ErrInvalidDepth = errors.New("search depth must not be negative")

// Result is the outcome of a search. Best is nil when the searched position
// has no legal successors; at a cutoff or terminal node it points to a copy
// of the searched position itself.
type Result[P any, S game.Score] struct {
	Score  S
	Best   *P
	Metric metrics.SearchMetric
}

// HasMove reports whether the search proposed a successor.
func (r Result[P, S]) HasMove() bool {
	return r.Best != nil
}

type Searcher[P any, S game.Score] interface {
	Search(p P, depth int, maximizing bool) (Result[P, S], error)
}

type Option func(c *config)

type config struct {
	metrics metrics.Collector
}

// WithMetrics counts visited nodes, leaves and cutoffs of every search.
func WithMetrics() Option {
	return func(c *config) {
		c.metrics = metrics.NewCollector()
	}
}

func WithCollector(collector metrics.Collector) Option {
	return func(c *config) {
		if collector != nil {
			c.metrics = collector
		}
	}
}

func newConfig(options []Option) config {
	c := config{ // Default values
		metrics: metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(&c)
	}
	return c
}

func logSearch[S game.Score](kind string, maximizing bool, score S, metric metrics.SearchMetric) {
	log.Debug().
		Str("searcher", kind).
		Int("depth", metric.Depth).
		Bool("maximizing", maximizing).
		Float64("score", float64(score)).
		Int64("nodes", metric.Nodes).
		Int64("cutoffs", metric.Cutoffs).
		Dur("elapsed", metric.Duration).
		Msg("search complete")
}
