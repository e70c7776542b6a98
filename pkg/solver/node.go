// Package solver implements the MCCFR driver: the per-infoset node table,
// regret matching, the traversal modes, and self-play evaluation (§4.7–§4.8).
package solver

import (
	"github.com/behrlich/coup-solver/pkg/action"
)

// Node holds the regret-sum and strategy-sum accumulators for one
// information set (§4.7). Actions are keyed by their canonical
// "TYPE:target_or_-" string so the same node can be queried against
// whatever legal-action ordering the caller currently has in hand.
type Node struct {
	RegretSum   map[string]float64
	StrategySum map[string]float64
}

// NewNode allocates an empty node.
func NewNode() *Node {
	return &Node{
		RegretSum:   make(map[string]float64),
		StrategySum: make(map[string]float64),
	}
}

// CurrentStrategy computes the regret-matching policy over legal: positive
// regrets normalized to a distribution, or uniform if none are positive
// (§4.7).
func (n *Node) CurrentStrategy(legal []action.Action) []float64 {
	strategy := make([]float64, len(legal))
	if len(legal) == 0 {
		return strategy
	}

	sum := 0.0
	for i, a := range legal {
		r := n.RegretSum[a.Key()]
		if r > 0 {
			strategy[i] = r
			sum += r
		}
	}

	if sum > 0 {
		for i := range strategy {
			strategy[i] /= sum
		}
		return strategy
	}

	uniform := 1.0 / float64(len(legal))
	for i := range strategy {
		strategy[i] = uniform
	}
	return strategy
}

// RawAverageStrategy normalizes StrategySum over legal, returning an
// all-zero vector (rather than falling back to uniform) when no mass has
// accumulated yet — callers decide the fallback chain (§4.8).
func (n *Node) RawAverageStrategy(legal []action.Action) []float64 {
	vals := make([]float64, len(legal))
	sum := 0.0
	for i, a := range legal {
		v := n.StrategySum[a.Key()]
		vals[i] = v
		sum += v
	}
	if sum <= 1e-12 {
		for i := range vals {
			vals[i] = 0
		}
		return vals
	}
	for i := range vals {
		vals[i] /= sum
	}
	return vals
}

// AccumulateStrategy adds reachWeight*strategy[i] to StrategySum for each
// legal action, skipping non-positive weights.
func (n *Node) AccumulateStrategy(legal []action.Action, strategy []float64, reachWeight float64) {
	if reachWeight <= 0 {
		return
	}
	for i, a := range legal {
		n.StrategySum[a.Key()] += reachWeight * strategy[i]
	}
}

// AccumulateRegret adds delta to the regret sum for action a.
func (n *Node) AccumulateRegret(a action.Action, delta float64) {
	n.RegretSum[a.Key()] += delta
}

// NodeTable is the in-memory infoset-key → Node map a Solver owns
// exclusively; no shared-mutation discipline is required (§5).
type NodeTable struct {
	nodes map[string]*Node
}

// NewNodeTable allocates an empty table.
func NewNodeTable() *NodeTable {
	return &NodeTable{nodes: make(map[string]*Node)}
}

// GetOrCreate returns the node for key, creating it if absent.
func (t *NodeTable) GetOrCreate(key string) *Node {
	if n, ok := t.nodes[key]; ok {
		return n
	}
	n := NewNode()
	t.nodes[key] = n
	return n
}

// Get returns the node for key without creating one.
func (t *NodeTable) Get(key string) (*Node, bool) {
	n, ok := t.nodes[key]
	return n, ok
}

// Len returns the number of information sets currently tracked.
func (t *NodeTable) Len() int {
	return len(t.nodes)
}

// All returns the underlying key → Node map.
func (t *NodeTable) All() map[string]*Node {
	return t.nodes
}
