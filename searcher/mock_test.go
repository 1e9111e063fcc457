package searcher

import (
	"fmt"
	"gamesearch/game"

	"golang.org/x/exp/rand"
)

// mockNode is an explicit game tree; internal nodes carry a score too so
// depth cutoffs can be exercised.
type mockNode struct {
	id       string
	score    int
	terminal bool
	children []*mockNode
}

func leaf(id string, score int) *mockNode {
	return &mockNode{id: id, score: score}
}

func branch(id string, children ...*mockNode) *mockNode {
	return &mockNode{id: id, children: children}
}

// mockRules returns rules over mockNode trees and records the id of every
// evaluated node in order.
func mockRules() (game.Funcs[*mockNode, int], *[]string) {
	evaluated := []string{}
	rules := game.Funcs[*mockNode, int]{
		SuccessorsFn: func(n *mockNode, maximizing bool) []*mockNode {
			// Copy so the searcher cannot reorder the tree
			return append([]*mockNode(nil), n.children...)
		},
		EvaluateFn: func(n *mockNode) int {
			evaluated = append(evaluated, n.id)
			return n.score
		},
		TerminalFn: func(n *mockNode) bool {
			return n.terminal
		},
	}
	return rules, &evaluated
}

// randomTree builds a tree of the given height whose nodes have between 0
// and width children.
func randomTree(r *rand.Rand, id string, height, width int) *mockNode {
	node := &mockNode{id: id, score: r.Intn(201) - 100}
	if height == 0 {
		return node
	}
	n := r.Intn(width + 1)
	for i := 0; i < n; i++ {
		node.children = append(node.children, randomTree(r, fmt.Sprintf("%s.%d", id, i), height-1, width))
	}
	return node
}

// textbookTree is the classic depth-2 example: max over min of
// [3 12 8] [2 4 6] [14 5 2]. The second subtree is cut after its first leaf.
func textbookTree() *mockNode {
	return branch("root",
		branch("a", leaf("a1", 3), leaf("a2", 12), leaf("a3", 8)),
		branch("b", leaf("b1", 2), leaf("b2", 4), leaf("b3", 6)),
		branch("c", leaf("c1", 14), leaf("c2", 5), leaf("c3", 2)),
	)
}

// scaledRules scores mock nodes in tenths to exercise float scores.
func scaledRules() game.Funcs[*mockNode, float64] {
	rules, _ := mockRules()
	return game.Funcs[*mockNode, float64]{
		SuccessorsFn: rules.SuccessorsFn,
		EvaluateFn: func(n *mockNode) float64 {
			return float64(n.score) / 10
		},
		TerminalFn: rules.TerminalFn,
	}
}
