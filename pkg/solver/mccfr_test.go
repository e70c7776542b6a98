package solver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/behrlich/coup-solver/pkg/engine"
	"github.com/behrlich/coup-solver/pkg/rules"
)

func TestSolver_IteratePopulatesNodeTable(t *testing.T) {
	s := NewSolver(rules.Default(), 42, 40, Sampled, false, false)
	require.Equal(t, 0, s.NumInfoSets())

	s.Iterate(25, nil)
	assert.Greater(t, s.NumInfoSets(), 0)
}

func TestSolver_IterateFullModePopulatesNodeTable(t *testing.T) {
	s := NewSolver(rules.Default(), 7, 12, Full, false, false)
	s.Iterate(3, nil)
	assert.Greater(t, s.NumInfoSets(), 0)
}

func TestSolver_IterateGameSeedIsDeterministic(t *testing.T) {
	seed := int64(42)

	a := NewSolver(rules.Default(), 1, 40, Sampled, false, false)
	a.Iterate(1, &seed)

	b := NewSolver(rules.Default(), 1, 40, Sampled, false, false)
	b.Iterate(1, &seed)

	// The game_seed pins the deal and the solver seed pins the sampled
	// actions, so two solvers sharing both must visit the same infosets.
	assert.Equal(t, a.NumInfoSets(), b.NumInfoSets())
	for key := range a.Nodes().All() {
		_, ok := b.Nodes().Get(key)
		assert.True(t, ok, "expected shared infoset key %q in both solvers", key)
	}
}

func TestSolver_TraverseRespectsDepthCapOverTermination(t *testing.T) {
	// max_depth=0 must return 0 even when the state is already terminal
	// (player 1 eliminated, so player 0 has won), because the depth check
	// comes before the terminal check.
	s := NewSolver(rules.Default(), 9, 0, Sampled, false, false)
	gs, err := engine.New(2, 5, rules.Default())
	require.NoError(t, err)
	gs.Players[1].Hand = nil

	u := s.traverse(gs, 0, 1.0, 1.0, 0)
	assert.Equal(t, 0.0, u)
}

func TestSolver_ActionProbabilitiesSumToOne(t *testing.T) {
	s := NewSolver(rules.Default(), 1, 40, Sampled, false, false)
	s.Iterate(50, nil)

	gs, err := engine.New(2, 99, rules.Default())
	require.NoError(t, err)

	probs := s.ActionProbabilities(gs)
	require.NotEmpty(t, probs)

	sum := 0.0
	for _, p := range probs {
		assert.GreaterOrEqual(t, p.Probability, 0.0)
		sum += p.Probability
	}
	assert.InDelta(t, 1.0, sum, 1e-9)
}

func TestSolver_ActionProbabilitiesNilAtTerminal(t *testing.T) {
	s := NewSolver(rules.Default(), 1, 40, Sampled, false, false)
	gs, err := engine.New(2, 5, rules.Default())
	require.NoError(t, err)

	gs.Players[1].Hand = nil // eliminate player 1, leaving a lone winner
	_, won := gs.Winner()
	require.True(t, won)

	probs := s.ActionProbabilities(gs)
	assert.Nil(t, probs)
}

func TestSolver_EvaluateReturnsBoundedMean(t *testing.T) {
	s := NewSolver(rules.Default(), 3, 30, Sampled, false, false)
	s.Iterate(20, nil)

	mean := s.Evaluate(10, 123)
	assert.GreaterOrEqual(t, mean, -1.0)
	assert.LessOrEqual(t, mean, 1.0)
}

func TestSolver_EvaluateZeroEpisodes(t *testing.T) {
	s := NewSolver(rules.Default(), 1, 10, Sampled, false, false)
	assert.Equal(t, 0.0, s.Evaluate(0, 1))
}

func TestHashKey_StableAndShort(t *testing.T) {
	a := hashKey("some-infoset-key")
	b := hashKey("some-infoset-key")
	assert.Equal(t, a, b)
	assert.Len(t, a, 16)
	assert.NotEqual(t, a, hashKey("a-different-key"))
}
