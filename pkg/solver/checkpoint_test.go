package solver

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/behrlich/coup-solver/pkg/rules"
)

func TestSolver_CheckpointRoundTrip(t *testing.T) {
	s := NewSolver(rules.Default(), 42, 40, Sampled, false, false)
	s.Iterate(30, nil)
	require.Greater(t, s.NumInfoSets(), 0)

	path := filepath.Join(t.TempDir(), "checkpoint.yaml")
	require.NoError(t, s.SaveCheckpoint(path))

	restored := NewSolver(rules.Default(), 1, 40, Sampled, false, false)
	require.NoError(t, restored.LoadCheckpoint(path))

	assert.Equal(t, s.NumInfoSets(), restored.NumInfoSets())
	for key, node := range s.nodes.All() {
		other, ok := restored.nodes.Get(key)
		require.True(t, ok, "missing infoset %s after round trip", key)
		assert.Equal(t, node.RegretSum, other.RegretSum)
		assert.Equal(t, node.StrategySum, other.StrategySum)
	}
}

func TestSolver_LoadCheckpointMissingFile(t *testing.T) {
	s := NewSolver(rules.Default(), 1, 10, Sampled, false, false)
	err := s.LoadCheckpoint(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	assert.Error(t, err)
}
