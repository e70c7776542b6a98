package solver

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/behrlich/coup-solver/pkg/rules"
)

// checkpointNode is the YAML-friendly representation of a Node.
type checkpointNode struct {
	RegretSum   map[string]float64 `yaml:"regret_sum"`
	StrategySum map[string]float64 `yaml:"strategy_sum"`
}

// checkpointConfig records the run configuration a checkpoint was produced
// under. It is written for reference only; LoadCheckpoint does not read or
// check it.
type checkpointConfig struct {
	MaxDepth      int    `yaml:"max_depth"`
	TraversalMode string `yaml:"traversal_mode"`
	StartingCoins int    `yaml:"starting_coins"`
	CoupCost      int    `yaml:"coup_cost"`
}

// checkpointFile is the on-disk YAML document written by SaveCheckpoint.
type checkpointFile struct {
	Nodes  map[string]checkpointNode `yaml:"nodes"`
	Config checkpointConfig          `yaml:"config"`
}

// SaveCheckpoint writes the node table and run configuration to path as
// YAML.
func (s *Solver) SaveCheckpoint(path string) error {
	file := checkpointFile{
		Nodes: make(map[string]checkpointNode, s.nodes.Len()),
		Config: checkpointConfig{
			MaxDepth:      s.MaxDepth,
			TraversalMode: string(s.Mode),
			StartingCoins: s.Rules.StartingCoins,
			CoupCost:      s.Rules.CoupCost,
		},
	}
	for key, node := range s.nodes.All() {
		file.Nodes[key] = checkpointNode{
			RegretSum:   node.RegretSum,
			StrategySum: node.StrategySum,
		}
	}

	data, err := yaml.Marshal(file)
	if err != nil {
		return fmt.Errorf("solver: marshaling checkpoint: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("solver: writing checkpoint %s: %w", path, err)
	}
	return nil
}

// LoadCheckpoint replaces the solver's node table with the contents of the
// YAML checkpoint at path. The solver's own Rules/MaxDepth/Mode are left
// untouched; the checkpoint's recorded config is informational only.
func (s *Solver) LoadCheckpoint(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("solver: reading checkpoint %s: %w", path, err)
	}

	var file checkpointFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("solver: unmarshaling checkpoint %s: %w", path, err)
	}

	table := NewNodeTable()
	for key, cn := range file.Nodes {
		n := NewNode()
		if cn.RegretSum != nil {
			n.RegretSum = cn.RegretSum
		}
		if cn.StrategySum != nil {
			n.StrategySum = cn.StrategySum
		}
		table.nodes[key] = n
	}
	s.nodes = table
	return nil
}

// CheckpointConfig reports the config this solver would write on its next
// SaveCheckpoint, useful for CLI summaries before training starts.
func (s *Solver) CheckpointConfig() (maxDepth int, mode string, r rules.Rules) {
	return s.MaxDepth, string(s.Mode), s.Rules
}
