package client

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"gamesearch/communication"
	"gamesearch/engine"
	"gamesearch/game/tictactoe"
	"gamesearch/searcher"
	"gamesearch/searcher/agent"

	"github.com/stretchr/testify/require"
)

func newAgentServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(agent.NewServer(agent.ServerConfig{Depth: 9, ChessDepth: 2, MaxDepth: 9, Player: tictactoe.X}).Handler())
	t.Cleanup(srv.Close)
	return srv
}

func TestClientCommunicator(t *testing.T) {
	srv := newAgentServer(t)
	cc := NewClientCommunicator(srv.URL+"/", time.Second)
	ctx := context.Background()

	require.NoError(t, cc.Health(ctx))

	depth := 3
	resp, err := cc.FindMove(ctx, agent.FindMoveRequest{Game: agent.GameTicTacToe, Board: "xx_/oo_/___", Depth: &depth, Maximizing: true})
	require.NoError(t, err)
	require.Equal(t, "3", resp.Move)

	_, err = cc.FindMove(ctx, agent.FindMoveRequest{Game: "go", Board: "___/___/___"})
	require.ErrorIs(t, err, communication.ErrRequestRejected)
}

func TestRemoteTicTacToe(t *testing.T) {
	srv := newAgentServer(t)
	rules, err := tictactoe.NewRules(tictactoe.X)
	require.NoError(t, err)
	remote := NewRemoteTicTacToe(NewClientCommunicator(srv.URL, time.Second), tictactoe.X, 9, 5*time.Second)
	local, err := agent.NewSearchAgent[tictactoe.Board, int](searcher.NewAlphaBeta[tictactoe.Board, int](rules), 9)
	require.NoError(t, err)

	_, gameMetric, moveMetrics := engine.NewLocal[tictactoe.Board, int](rules, remote, local, 0).Run(tictactoe.NewBoard(), true)

	require.Equal(t, string(engine.Draw), gameMetric.Outcome, "Perfect play on both sides is a draw")
	require.Positive(t, moveMetrics[0].Nodes, "Remote moves carry the server's node count")
}

func TestRemoteTicTacToeUnreachable(t *testing.T) {
	srv := httptest.NewServer(nil)
	url := srv.URL
	srv.Close()
	remote := NewRemoteTicTacToe(NewClientCommunicator(url, 100*time.Millisecond), tictactoe.X, 1, time.Second)

	_, ok, _, err := remote.FindMove(tictactoe.NewBoard(), true)

	require.Error(t, err)
	require.False(t, ok)

	rules, err := tictactoe.NewRules(tictactoe.X)
	require.NoError(t, err)
	local, err := agent.NewSearchAgent[tictactoe.Board, int](searcher.NewAlphaBeta[tictactoe.Board, int](rules), 9)
	require.NoError(t, err)

	_, gameMetric, _ := engine.NewLocal[tictactoe.Board, int](rules, remote, local, 0).Run(tictactoe.NewBoard(), true)

	require.Equal(t, string(engine.Aborted), gameMetric.Outcome, "An unreachable server must not produce a scored game")
}
