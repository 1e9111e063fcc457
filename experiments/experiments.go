package experiments

import (
	"errors"
	"fmt"

	"gamesearch/engine"
	"gamesearch/experiments/metrics"
	"gamesearch/game"
	"gamesearch/game/chess"
	"gamesearch/game/tictactoe"
	"gamesearch/meta"
	"gamesearch/searcher"
	"gamesearch/searcher/agent"

	notnil "github.com/notnil/chess"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

const (
	KindSearch = "search"
	KindRandom = "random"
)

var (
	ErrPruningMismatch = errors.New("alpha-beta and minimax disagree")
	ErrUnknownAgent    = errors.New("unknown agent kind")
)

type Config struct {
	Output      string // Root directory of result files
	Games       int    // Per matchup
	Concurrency int    // Games played at once
	Seed        uint64 // Base seed of random agents
	MaxTurns    int
	Player      tictactoe.Mark // Maximizing tic-tac-toe mark
	ChessDepth  int
	ChessRules  string // "step" or "legal"
}

func (c Config) withDefaults() Config {
	if c.Games <= 0 {
		c.Games = meta.GAMES
	}
	if c.Concurrency <= 0 {
		c.Concurrency = meta.GO_ROUTINES
	}
	if c.MaxTurns <= 0 {
		c.MaxTurns = meta.MAX_TURNS
	}
	if c.Player == 0 {
		c.Player = tictactoe.X
	}
	if c.ChessDepth <= 0 {
		c.ChessDepth = meta.CHESS_DEPTH
	}
	return c
}

// RunPruningExperiment compares alpha-beta with minimax on the empty
// tic-tac-toe board and the chess opening, and returns the result directory.
func RunPruningExperiment(cfg Config) (string, error) {
	cfg = cfg.withDefaults()
	log.Info().Msg("starting pruning experiment...")

	rules, err := tictactoe.NewRules(cfg.Player)
	if err != nil {
		return "", err
	}
	records, err := ComparePruning[tictactoe.Board, int]("tictactoe", rules, tictactoe.NewBoard(), true, depthRange(meta.DEPTH))
	if err != nil {
		return "", err
	}
	chessRecords, err := ComparePruning[chess.Board, int]("chess", chess.StepRules{}, chess.NewBoard(), true, depthRange(cfg.ChessDepth))
	if err != nil {
		return "", err
	}
	records = append(records, chessRecords...)

	writer, err := metrics.NewWriter(cfg.Output, "pruning")
	if err != nil {
		return "", err
	}
	if err = writer.WritePruningRecords(records); err != nil {
		return "", err
	}
	log.Info().Str("dir", writer.Dir()).Msg("stored pruning records")
	return writer.Dir(), nil
}

// ComparePruning searches start at every depth with both searchers. Any
// disagreement on the score is an error.
func ComparePruning[P any, S game.Score](name string, rules game.Rules[P, S], start P, maximizing bool, depths []int) ([]metrics.PruningRecord, error) {
	pruned := searcher.NewAlphaBeta(rules, searcher.WithMetrics())
	full := searcher.NewMinimax(rules, searcher.WithMetrics())

	records := make([]metrics.PruningRecord, 0, len(depths))
	for _, depth := range depths {
		a, err := pruned.Search(start, depth, maximizing)
		if err != nil {
			return nil, err
		}
		m, err := full.Search(start, depth, maximizing)
		if err != nil {
			return nil, err
		}
		if a.Score != m.Score {
			return nil, fmt.Errorf("%w: %s at depth %d scored %v and %v", ErrPruningMismatch, name, depth, a.Score, m.Score)
		}

		record := metrics.PruningRecord{
			Game:      name,
			Depth:     depth,
			Score:     float64(a.Score),
			AlphaBeta: a.Metric,
			Minimax:   m.Metric,
		}
		if m.Metric.Nodes > 0 {
			record.NodesSavedRatio = 1 - float64(a.Metric.Nodes)/float64(m.Metric.Nodes)
		}
		records = append(records, record)

		log.Info().
			Str("game", name).
			Int("depth", depth).
			Int64("alphabeta_nodes", a.Metric.Nodes).
			Int64("minimax_nodes", m.Metric.Nodes).
			Msg("compared searchers")
	}
	return records, nil
}

// RunMatchupExperiment plays search agents against each other and against
// the random baseline, in tic-tac-toe and chess, and returns the result
// directory.
func RunMatchupExperiment(cfg Config) (string, error) {
	cfg = cfg.withDefaults()
	log.Info().Msg("starting matchup experiment...")

	ticTacToeConfigs := []metrics.AgentConfig{
		{ID: 1, Kind: KindSearch, Depth: meta.DEPTH, Pruning: true},
		{ID: 2, Kind: KindSearch, Depth: 2, Pruning: true},
		{ID: 3, Kind: KindSearch, Depth: 4, Pruning: false},
		{ID: 4, Kind: KindRandom},
	}
	chessConfigs := []metrics.AgentConfig{
		{ID: 5, Kind: KindSearch, Depth: cfg.ChessDepth, Pruning: true},
		{ID: 6, Kind: KindSearch, Depth: 1, Pruning: true},
		{ID: 7, Kind: KindRandom},
	}

	rules, err := tictactoe.NewRules(cfg.Player)
	if err != nil {
		return "", err
	}
	gameRecords, moveRecords, err := PlayMatchups[tictactoe.Board, int](cfg, "tictactoe", rules, tictactoe.NewBoard(), [][2]metrics.AgentConfig{
		{ticTacToeConfigs[0], ticTacToeConfigs[3]},
		{ticTacToeConfigs[1], ticTacToeConfigs[3]},
		{ticTacToeConfigs[2], ticTacToeConfigs[3]},
		{ticTacToeConfigs[0], ticTacToeConfigs[1]},
	}, 0)
	if err != nil {
		return "", err
	}

	chessMatchups := [][2]metrics.AgentConfig{
		{chessConfigs[0], chessConfigs[2]},
		{chessConfigs[0], chessConfigs[1]},
	}
	var chessGames []metrics.GameRecord
	var chessMoves []metrics.MoveRecord
	if cfg.ChessRules == "legal" {
		chessGames, chessMoves, err = PlayMatchups[*notnil.Position, int](cfg, "chess-legal", chess.LegalRules{}, chess.StartingPosition(), chessMatchups, len(gameRecords))
	} else {
		chessGames, chessMoves, err = PlayMatchups[chess.Board, int](cfg, "chess", chess.StepRules{}, chess.NewBoard(), chessMatchups, len(gameRecords))
	}
	if err != nil {
		return "", err
	}
	gameRecords = append(gameRecords, chessGames...)
	moveRecords = append(moveRecords, chessMoves...)

	// Store experiment metadata and results
	writer, err := metrics.NewWriter(cfg.Output, "matchups")
	if err != nil {
		return "", err
	}
	if err = writer.WriteAgentConfigs(append(ticTacToeConfigs, chessConfigs...)); err != nil {
		return "", err
	}
	log.Info().Msg("stored agent configs")
	if err = writer.WriteGameRecords(gameRecords); err != nil {
		return "", err
	}
	log.Info().Msg("stored game records")
	if err = writer.WriteMoveRecords(moveRecords); err != nil {
		return "", err
	}
	log.Info().Msg("stored move records")

	return writer.Dir(), nil
}

type gameResult struct {
	game  metrics.GameRecord
	moves []metrics.MoveRecord
}

// PlayMatchups plays cfg.Games games per matchup, up to cfg.Concurrency at
// once. The maximizing side always moves first from start; the two agents of
// a matchup swap sides between games. Game IDs start after firstID.
func PlayMatchups[P any, S game.Score](cfg Config, name string, rules game.Rules[P, S], start P, matchups [][2]metrics.AgentConfig, firstID int) ([]metrics.GameRecord, []metrics.MoveRecord, error) {
	cfg = cfg.withDefaults()
	results := make([]gameResult, len(matchups)*cfg.Games)

	g := new(errgroup.Group)
	g.SetLimit(cfg.Concurrency)
	for mi, matchup := range matchups {
		log.Info().Msgf("starting %s matchup %d of %d between agent%d and agent%d...",
			name, mi+1, len(matchups), matchup[0].ID, matchup[1].ID)

		for i := 0; i < cfg.Games; i++ {
			slot := mi*cfg.Games + i
			g.Go(func() error {
				id := firstID + slot + 1
				seed := cfg.Seed + uint64(id)
				first, second := matchup[0], matchup[1]
				if i%2 == 1 {
					first, second = second, first
				}
				maximizer, err := newAgent(first, rules, seed)
				if err != nil {
					return err
				}
				minimizer, err := newAgent(second, rules, seed+1)
				if err != nil {
					return err
				}

				e := engine.NewLocal(rules, maximizer, minimizer, cfg.MaxTurns)
				_, gameMetric, moveMetrics := e.Run(start, true)

				result := gameResult{game: metrics.GameRecord{
					ID:         id,
					Game:       name,
					Maximizer:  first.ID,
					Minimizer:  second.ID,
					GameMetric: gameMetric,
				}}
				for _, mm := range moveMetrics {
					result.moves = append(result.moves, metrics.MoveRecord{Game: id, MoveMetric: mm})
				}
				results[slot] = result

				log.Info().Msgf("completed %s game %d with outcome: %s", name, id, gameMetric.Outcome)
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	gameRecords := make([]metrics.GameRecord, 0, len(results))
	var moveRecords []metrics.MoveRecord
	for _, result := range results {
		gameRecords = append(gameRecords, result.game)
		moveRecords = append(moveRecords, result.moves...)
	}
	return gameRecords, moveRecords, nil
}

func newAgent[P any, S game.Score](config metrics.AgentConfig, rules game.Rules[P, S], seed uint64) (agent.Agent[P], error) {
	switch config.Kind {
	case KindRandom:
		return agent.NewRandomAgent(rules, seed), nil
	case KindSearch:
		if config.Pruning {
			return agent.NewSearchAgent[P, S](searcher.NewAlphaBeta(rules, searcher.WithMetrics()), config.Depth)
		}
		return agent.NewSearchAgent[P, S](searcher.NewMinimax(rules, searcher.WithMetrics()), config.Depth)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownAgent, config.Kind)
}

func depthRange(maxDepth int) []int {
	depths := make([]int, 0, maxDepth)
	for depth := 1; depth <= maxDepth; depth++ {
		depths = append(depths, depth)
	}
	return depths
}
