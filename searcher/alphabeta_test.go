package searcher

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func TestAlphaBetaSearch(t *testing.T) {
	t.Run("depth zero returns the position itself", func(t *testing.T) {
		rules, _ := mockRules()
		root := textbookTree()
		root.score = 42

		for _, maximizing := range []bool{true, false} {
			got, err := NewAlphaBeta[*mockNode, int](rules).Search(root, 0, maximizing)

			require.NoError(t, err)
			require.Equal(t, 42, got.Score, "Score should be the static evaluation")
			require.NotNil(t, got.Best, "Cutoff node should propose itself")
			require.Same(t, root, *got.Best, "Cutoff node should propose itself")
		}
	})

	t.Run("terminal position returns the position itself", func(t *testing.T) {
		rules, evaluated := mockRules()
		root := branch("root", leaf("a", 1))
		root.terminal = true
		root.score = 10

		got, err := NewAlphaBeta[*mockNode, int](rules).Search(root, 3, true)

		require.NoError(t, err)
		require.Equal(t, 10, got.Score)
		require.Same(t, root, *got.Best)
		require.Equal(t, []string{"root"}, *evaluated, "Terminal node should not be expanded")
	})

	t.Run("no legal moves falls back to evaluation without a move", func(t *testing.T) {
		rules, _ := mockRules()
		root := leaf("stalemate", -7)

		got, err := NewAlphaBeta[*mockNode, int](rules).Search(root, 4, true)

		require.NoError(t, err)
		require.Equal(t, -7, got.Score, "Score should be the static evaluation")
		require.Nil(t, got.Best, "There should be no move to propose")
		require.False(t, got.HasMove())
	})

	t.Run("negative depth is rejected before searching", func(t *testing.T) {
		rules, evaluated := mockRules()

		_, err := NewAlphaBeta[*mockNode, int](rules).Search(textbookTree(), -1, true)

		require.ErrorIs(t, err, ErrInvalidDepth)
		require.Empty(t, *evaluated, "Nothing should be evaluated")
	})

	t.Run("textbook tree prunes the second subtree", func(t *testing.T) {
		rules, evaluated := mockRules()
		root := textbookTree()

		got, err := NewAlphaBeta[*mockNode, int](rules, WithMetrics()).Search(root, 2, true)

		require.NoError(t, err)
		require.Equal(t, 3, got.Score)
		require.Same(t, root.children[0], *got.Best, "Should choose the first subtree")
		require.Equal(t, []string{"a1", "a2", "a3", "b1", "c1", "c2", "c3"}, *evaluated,
			"b2 and b3 cannot change the result and should be pruned")
		require.Equal(t, int64(11), got.Metric.Nodes)
		require.Equal(t, int64(7), got.Metric.Leaves)
		require.Equal(t, int64(1), got.Metric.Cutoffs, "Only the prune in b skips siblings")
		require.Equal(t, 2, got.Metric.Depth)
	})

	t.Run("minimizing root mirrors maximizing root", func(t *testing.T) {
		rules, _ := mockRules()
		root := branch("root",
			branch("a", leaf("a1", -3), leaf("a2", -12)),
			branch("b", leaf("b1", -2), leaf("b2", -1)),
		)

		got, err := NewAlphaBeta[*mockNode, int](rules).Search(root, 2, false)

		require.NoError(t, err)
		require.Equal(t, -3, got.Score, "Min over max of each subtree")
		require.Same(t, root.children[0], *got.Best)
	})

	t.Run("depth limit stops at internal nodes", func(t *testing.T) {
		rules, evaluated := mockRules()
		root := textbookTree()
		root.children[0].score = 1
		root.children[1].score = 9
		root.children[2].score = 4

		got, err := NewAlphaBeta[*mockNode, int](rules).Search(root, 1, true)

		require.NoError(t, err)
		require.Equal(t, 9, got.Score, "Internal nodes should be evaluated statically at the cutoff")
		require.Same(t, root.children[1], *got.Best)
		require.Equal(t, []string{"a", "b", "c"}, *evaluated)
	})
}

func TestAlphaBetaTies(t *testing.T) {
	t.Run("maximizing keeps the first of equal moves", func(t *testing.T) {
		rules, _ := mockRules()
		root := branch("root", leaf("a", 1), leaf("b", 5), leaf("c", 5), leaf("d", 5))

		got, err := NewAlphaBeta[*mockNode, int](rules).Search(root, 1, true)

		require.NoError(t, err)
		require.Equal(t, 5, got.Score)
		require.Equal(t, "b", (*got.Best).id, "Ties should favor the first enumerated move")
	})

	t.Run("minimizing keeps the first of equal moves", func(t *testing.T) {
		rules, _ := mockRules()
		root := branch("root", leaf("a", 4), leaf("b", -2), leaf("c", -2))

		got, err := NewAlphaBeta[*mockNode, int](rules).Search(root, 1, false)

		require.NoError(t, err)
		require.Equal(t, -2, got.Score)
		require.Equal(t, "b", (*got.Best).id, "Ties should favor the first enumerated move")
	})
}

func TestAlphaBetaWindow(t *testing.T) {
	t.Run("window above the true value fails low", func(t *testing.T) {
		rules, evaluated := mockRules()
		root := textbookTree()

		got, err := NewAlphaBeta[*mockNode, int](rules).SearchWindow(root, 2, true, 4, 100)

		require.NoError(t, err)
		require.LessOrEqual(t, got.Score, 4, "Score should be an upper bound at or below alpha")
		require.Equal(t, []string{"a1", "b1", "c1", "c2", "c3"}, *evaluated,
			"Each subtree should stop as soon as it falls below alpha")
	})

	t.Run("rejects negative depth", func(t *testing.T) {
		rules, _ := mockRules()

		_, err := NewAlphaBeta[*mockNode, int](rules).SearchWindow(textbookTree(), -3, false, -1, 1)

		require.ErrorIs(t, err, ErrInvalidDepth)
	})
}

func TestAlphaBetaMatchesMinimax(t *testing.T) {
	r := rand.New(rand.NewSource(7))

	for i := 0; i < 200; i++ {
		root := randomTree(r, "root", 5, 4)
		depth := r.Intn(6)
		maximizing := r.Intn(2) == 0

		rules, _ := mockRules()
		pruned, err := NewAlphaBeta[*mockNode, int](rules, WithMetrics()).Search(root, depth, maximizing)
		require.NoError(t, err)
		full, err := NewMinimax[*mockNode, int](rules, WithMetrics()).Search(root, depth, maximizing)
		require.NoError(t, err)

		require.Equal(t, full.Score, pruned.Score, "[%d] Pruning should never change the score", i)
		require.Equal(t, full.HasMove(), pruned.HasMove(), "[%d] Both should agree on whether a move exists", i)
		if full.HasMove() {
			require.Same(t, *full.Best, *pruned.Best, "[%d] Both should choose the same move", i)
		}
		require.LessOrEqual(t, pruned.Metric.Nodes, full.Metric.Nodes,
			"[%d] Pruning should never visit more nodes", i)
	}
}

func TestAlphaBetaDeterminism(t *testing.T) {
	r := rand.New(rand.NewSource(11))
	root := randomTree(r, "root", 6, 3)
	rules, _ := mockRules()
	search := NewAlphaBeta[*mockNode, int](rules, WithMetrics())

	first, err := search.Search(root, 6, true)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := search.Search(root, 6, true)

		require.NoError(t, err)
		require.Equal(t, first.Score, again.Score, "Repeated searches should agree")
		require.Equal(t, first.Best, again.Best, "Repeated searches should agree")
		require.Equal(t, first.Metric.Nodes, again.Metric.Nodes, "Metrics should reset between searches")
	}
}

func TestAlphaBetaFloatScores(t *testing.T) {
	rules := scaledRules()
	root := textbookTree()

	got, err := NewAlphaBeta[*mockNode, float64](rules).Search(root, 2, true)

	require.NoError(t, err)
	require.InDelta(t, 0.3, got.Score, 1e-9)
	require.Same(t, root.children[0], *got.Best)
}
