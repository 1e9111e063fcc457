package chess

import (
	"gamesearch/searcher"
	"testing"

	notnil "github.com/notnil/chess"
	"github.com/stretchr/testify/require"
)

// After 1. f3 e5 2. g4 black mates with Qh4.
const foolsMate = "rnbqkbnr/pppp1ppp/8/4p3/6P1/5P2/PPPPP2P/RNBQKBNR b KQkq g3 0 2"

func TestLegalRulesEvaluate(t *testing.T) {
	t.Run("opening position is balanced", func(t *testing.T) {
		require.Zero(t, LegalRules{}.Evaluate(StartingPosition()))
	})

	t.Run("checkmate outranks material", func(t *testing.T) {
		pos, err := ParseFEN("rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3")
		require.NoError(t, err)

		require.True(t, LegalRules{}.Terminal(pos), "Mated side has no moves")
		require.Equal(t, -MateScore, LegalRules{}.Evaluate(pos), "White is mated")
	})

	t.Run("rejects malformed FEN", func(t *testing.T) {
		_, err := ParseFEN("not a position")

		require.Error(t, err)
	})
}

func TestLegalRulesSuccessors(t *testing.T) {
	start := StartingPosition()
	before := start.String()

	got := LegalRules{}.Successors(start, true)

	require.Len(t, got, 20, "White has twenty legal opening moves")
	require.Equal(t, before, start.String(), "Successors should not touch the parent")
	for _, next := range got {
		require.Equal(t, notnil.Black, next.Turn())
	}
}

func TestLegalRulesSearch(t *testing.T) {
	t.Run("finds mate in one", func(t *testing.T) {
		pos, err := ParseFEN(foolsMate)
		require.NoError(t, err)

		got, err := searcher.NewAlphaBeta[*notnil.Position, int](LegalRules{}).Search(pos, 2, false)

		require.NoError(t, err)
		require.Equal(t, -MateScore, got.Score, "Mate should propagate unchanged")
		move, ok := LegalMove(pos, *got.Best)
		require.True(t, ok)
		require.Equal(t, "d8h4", move.String())
	})

	t.Run("opening move keeps material level", func(t *testing.T) {
		got, err := searcher.NewAlphaBeta[*notnil.Position, int](LegalRules{}).Search(StartingPosition(), 1, true)

		require.NoError(t, err)
		require.Zero(t, got.Score)
		require.True(t, got.HasMove())
	})
}
