package client

import (
	"context"
	"fmt"
	"time"

	"gamesearch/communication"
	"gamesearch/experiments/metrics"
	"gamesearch/game/tictactoe"
	"gamesearch/searcher/agent"
)

// RemoteTicTacToe is a tic-tac-toe agent whose moves are searched by an
// agent server.
type RemoteTicTacToe struct {
	comm    communication.Communicator
	player  tictactoe.Mark
	depth   int
	timeout time.Duration
}

func NewRemoteTicTacToe(comm communication.Communicator, player tictactoe.Mark, depth int, timeout time.Duration) *RemoteTicTacToe {
	return &RemoteTicTacToe{comm: comm, player: player, depth: depth, timeout: timeout}
}

// FindMove fails when the server cannot be reached or answers with a board
// that does not parse.
func (r *RemoteTicTacToe) FindMove(b tictactoe.Board, maximizing bool) (tictactoe.Board, bool, metrics.SearchMetric, error) {
	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()

	depth := r.depth
	resp, err := r.comm.FindMove(ctx, agent.FindMoveRequest{
		Game:       agent.GameTicTacToe,
		Board:      b.String(),
		Player:     string(r.player),
		Depth:      &depth,
		Maximizing: maximizing,
	})
	if err != nil {
		return tictactoe.Board{}, false, metrics.SearchMetric{}, fmt.Errorf("remote search failed: %w", err)
	}

	metric := metrics.SearchMetric{Depth: depth, Nodes: resp.Nodes, Cutoffs: resp.Cutoffs}
	if resp.None {
		return tictactoe.Board{}, false, metric, nil
	}
	next, err := tictactoe.Parse(resp.Board)
	if err != nil {
		return tictactoe.Board{}, false, metric, fmt.Errorf("remote returned an unreadable board %q: %w", resp.Board, err)
	}
	return next, true, metric, nil
}
