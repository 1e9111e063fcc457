package agent

import (
	"gamesearch/game/tictactoe"
	"gamesearch/searcher"
	"testing"

	"github.com/stretchr/testify/require"
)

func ticTacToeRules(t *testing.T) tictactoe.Rules {
	t.Helper()
	rules, err := tictactoe.NewRules(tictactoe.X)
	require.NoError(t, err)
	return rules
}

func TestSearchAgent(t *testing.T) {
	rules := ticTacToeRules(t)

	t.Run("needs at least one ply", func(t *testing.T) {
		_, err := NewSearchAgent[tictactoe.Board, int](searcher.NewAlphaBeta[tictactoe.Board, int](rules), 0)

		require.ErrorIs(t, err, searcher.ErrInvalidDepth)
	})

	t.Run("completes the row", func(t *testing.T) {
		a, err := NewSearchAgent[tictactoe.Board, int](searcher.NewAlphaBeta[tictactoe.Board, int](rules, searcher.WithMetrics()), 3)
		require.NoError(t, err)
		board, err := tictactoe.Parse("xx_/oo_/___")
		require.NoError(t, err)

		next, ok, metric, err := a.FindMove(board, true)

		require.NoError(t, err)
		require.True(t, ok)
		require.Equal(t, "xxx/oo_/___", next.String())
		require.Equal(t, 3, metric.Depth)
		require.Positive(t, metric.Nodes)
	})
}

func TestRandomAgent(t *testing.T) {
	rules := ticTacToeRules(t)

	t.Run("plays one of the successors", func(t *testing.T) {
		a := NewRandomAgent[tictactoe.Board, int](rules, 7)
		board := tictactoe.NewBoard()

		next, ok, _, err := a.FindMove(board, false)

		require.NoError(t, err)
		require.True(t, ok)
		require.Contains(t, rules.Successors(board, false), next)
	})

	t.Run("same seed plays the same game", func(t *testing.T) {
		play := func() []tictactoe.Board {
			a := NewRandomAgent[tictactoe.Board, int](rules, 42)
			board := tictactoe.NewBoard()
			var boards []tictactoe.Board
			for maximizing := true; !rules.Terminal(board); maximizing = !maximizing {
				next, ok, _, err := a.FindMove(board, maximizing)
				require.NoError(t, err)
				require.True(t, ok)
				boards = append(boards, next)
				board = next
			}
			return boards
		}

		require.Equal(t, play(), play())
	})

	t.Run("no move on a full board", func(t *testing.T) {
		board, err := tictactoe.Parse("xox/xox/oxo")
		require.NoError(t, err)

		_, ok, _, err := NewRandomAgent[tictactoe.Board, int](rules, 1).FindMove(board, true)

		require.NoError(t, err)
		require.False(t, ok)
	})
}
