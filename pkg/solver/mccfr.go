package solver

import (
	"fmt"
	"hash/fnv"
	"math/rand"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/behrlich/coup-solver/pkg/action"
	"github.com/behrlich/coup-solver/pkg/engine"
	"github.com/behrlich/coup-solver/pkg/infoset"
	"github.com/behrlich/coup-solver/pkg/rules"
)

// epsilon floors the sampled action's probability before it is used as an
// importance-sampling denominator, so a near-zero regret-matching weight
// can never blow the regret estimate up.
const epsilon = 1e-6

// TraversalMode selects how a Solver explores the game tree each iteration
// (§4.8).
type TraversalMode string

const (
	// Sampled performs outcome-sampling MCCFR: one action is drawn per
	// decision node and its counterfactual regret is estimated by
	// importance-sampling correction.
	Sampled TraversalMode = "sampled"
	// Full performs exhaustive per-iteration traversal of every legal
	// action at every decision node (vanilla CFR over the live tree).
	Full TraversalMode = "full"
)

// ActionProbability pairs a legal action with its probability under the
// solver's current recommended policy (§4.8).
type ActionProbability struct {
	Action      action.Action
	Probability float64
}

// Solver owns a NodeTable and drives MCCFR over freshly dealt GameStates,
// traversing the live state machine via Clone/Apply/LegalActions rather
// than a precomputed tree — Coup's interaction protocol branches on
// hidden information in a way that doesn't collapse to a small static
// tree the way a fixed-board poker node does.
type Solver struct {
	Rules          rules.Rules
	MaxDepth       int
	Mode           TraversalMode
	Debug          bool
	LogInfosetHash bool

	nodes *NodeTable
	rng   *rand.Rand
	log   zerolog.Logger
}

// NewSolver constructs a Solver with an empty node table.
func NewSolver(r rules.Rules, seed int64, maxDepth int, mode TraversalMode, debug, logInfosetHash bool) *Solver {
	return &Solver{
		Rules:          r,
		MaxDepth:       maxDepth,
		Mode:           mode,
		Debug:          debug,
		LogInfosetHash: logInfosetHash,
		nodes:          NewNodeTable(),
		rng:            rand.New(rand.NewSource(seed)),
		log:            log.With().Str("component", "solver").Logger(),
	}
}

// NumInfoSets reports how many information sets the node table has seen.
func (s *Solver) NumInfoSets() int {
	return s.nodes.Len()
}

// Nodes exposes the underlying node table, e.g. for checkpointing.
func (s *Solver) Nodes() *NodeTable {
	return s.nodes
}

// Iterate runs iterations rounds of self-play MCCFR, alternating the
// updating player each pass over a freshly dealt two-player game. Each
// dealt game is seeded from gameSeed when non-nil, or from the solver's
// own RNG otherwise (§4.8, §6).
func (s *Solver) Iterate(iterations int, gameSeed *int64) {
	for i := 0; i < iterations; i++ {
		for updating := 0; updating < 2; updating++ {
			seed := s.rng.Int63()
			if gameSeed != nil {
				seed = *gameSeed
			}
			gs, err := engine.New(2, seed, s.Rules)
			if err != nil {
				panic(fmt.Errorf("solver: dealing a fresh game: %w", err))
			}
			s.traverse(gs, updating, 1.0, 1.0, 0)
		}
	}
}

// decisionMaker reads the acting seat off the first legal action — every
// member of a legal-action set shares the same Actor (§4.2).
func decisionMaker(legal []action.Action) int {
	return legal[0].Actor
}

// traverse recursively walks the live game tree from gs, returning the
// sampled (or exact, in Full mode) utility for updatingPlayer. reachSelf
// and reachOther are updatingPlayer's and the opponent's reach
// probabilities to gs under the current strategy profile.
func (s *Solver) traverse(gs *engine.GameState, updatingPlayer int, reachSelf, reachOther float64, depth int) float64 {
	if depth >= s.MaxDepth {
		return 0
	}
	if w, won := gs.Winner(); won {
		if w == updatingPlayer {
			return 1
		}
		return -1
	}

	legal := gs.LegalActions()
	if len(legal) == 0 {
		return 0
	}
	current := decisionMaker(legal)

	key := infoset.Key(gs, current)
	node := s.nodes.GetOrCreate(key)
	strategy := node.CurrentStrategy(legal)

	if current == updatingPlayer {
		node.AccumulateStrategy(legal, strategy, reachSelf)
	} else {
		node.AccumulateStrategy(legal, strategy, reachOther)
	}

	if s.Mode == Full {
		return s.traverseFull(gs, legal, strategy, node, current, updatingPlayer, reachSelf, reachOther, depth)
	}
	return s.traverseSampled(gs, legal, strategy, node, current, updatingPlayer, reachSelf, reachOther, depth, key)
}

// traverseFull visits every legal action at this node and back-propagates
// exact counterfactual regret (vanilla CFR applied to the live tree).
func (s *Solver) traverseFull(gs *engine.GameState, legal []action.Action, strategy []float64, node *Node, current, updatingPlayer int, reachSelf, reachOther float64, depth int) float64 {
	utils := make([]float64, len(legal))
	for i, a := range legal {
		child := gs.Clone()
		if err := child.Apply(a); err != nil {
			panic(fmt.Errorf("solver: applying legal action %s: %w", a, err))
		}

		nextSelf, nextOther := reachSelf, reachOther
		if current == updatingPlayer {
			nextSelf = reachSelf * strategy[i]
		} else {
			nextOther = reachOther * strategy[i]
		}
		utils[i] = s.traverse(child, updatingPlayer, nextSelf, nextOther, depth+1)
	}

	nodeValue := 0.0
	for i := range legal {
		nodeValue += strategy[i] * utils[i]
	}

	if current == updatingPlayer {
		for i, a := range legal {
			node.AccumulateRegret(a, reachOther*(utils[i]-nodeValue))
		}
	}
	return nodeValue
}

// traverseSampled draws one action per decision node and estimates
// counterfactual regret via the standard outcome-sampling correction
// reachOther/q(a) * u, using a zero baseline for the unsampled actions.
//
// The original Python reference computes this same quantity but folds the
// node's value back in as exactly the sampled child's value before
// subtracting it, which collapses the regret term to zero on every
// sampled path — a bug in the reference, not an intentional
// simplification, since it makes outcome-sampling a no-op. This traversal
// instead keeps the textbook formula, regret[a_sampled] +=
// (reachOther/q(a_sampled)) * u, the resolution DESIGN.md records for
// that open question.
func (s *Solver) traverseSampled(gs *engine.GameState, legal []action.Action, strategy []float64, node *Node, current, updatingPlayer int, reachSelf, reachOther float64, depth int, key string) float64 {
	idx := sampleIndex(s.rng, strategy)
	a := legal[idx]

	child := gs.Clone()
	if err := child.Apply(a); err != nil {
		panic(fmt.Errorf("solver: applying sampled action %s: %w", a, err))
	}

	nextSelf, nextOther := reachSelf, reachOther
	if current == updatingPlayer {
		nextSelf = reachSelf * strategy[idx]
	} else {
		nextOther = reachOther * strategy[idx]
	}

	if s.Debug {
		s.logTraversal(depth, current, a, key)
	}

	u := s.traverse(child, updatingPlayer, nextSelf, nextOther, depth+1)

	if current == updatingPlayer {
		q := strategy[idx]
		if q < epsilon {
			q = epsilon
		}
		node.AccumulateRegret(a, (reachOther/q)*u)
	}
	return u
}

func (s *Solver) logTraversal(depth, current int, a action.Action, key string) {
	logged := key
	if s.LogInfosetHash {
		logged = hashKey(key)
	}
	s.log.Debug().
		Int("depth", depth).
		Int("player", current).
		Str("action", a.String()).
		Str("infoset", logged).
		Msg("sampled traversal step")
}

// sampleIndex draws an index from the discrete distribution probs via
// inverse-CDF sampling (§4.9): draw r uniformly in [0,1), return the first
// index whose cumulative probability meets or exceeds r.
func sampleIndex(rng *rand.Rand, probs []float64) int {
	if len(probs) == 0 {
		return 0
	}
	r := rng.Float64()
	cum := 0.0
	for i, p := range probs {
		cum += p
		if cum >= r {
			return i
		}
	}
	return len(probs) - 1
}

// hashKey truncates an infoset key to a short, stable hash for log lines
// (--log-infoset-hash), so debug output doesn't spill the full key text.
func hashKey(key string) string {
	h := fnv.New64a()
	_, _ = h.Write([]byte(key))
	return fmt.Sprintf("%016x", h.Sum64())
}

// ActionProbabilities returns the solver's recommended policy at gs: the
// average strategy if one has accumulated, else the current regret-matching
// strategy, else (only possible when gs is terminal) nil (§4.8).
func (s *Solver) ActionProbabilities(gs *engine.GameState) []ActionProbability {
	legal := gs.LegalActions()
	if len(legal) == 0 {
		return nil
	}
	current := decisionMaker(legal)
	key := infoset.Key(gs, current)
	node := s.nodes.GetOrCreate(key)

	strategy := node.RawAverageStrategy(legal)
	if !hasPositiveMass(strategy) {
		strategy = node.CurrentStrategy(legal)
	}

	out := make([]ActionProbability, len(legal))
	for i, a := range legal {
		out[i] = ActionProbability{Action: a, Probability: strategy[i]}
	}
	return out
}

func hasPositiveMass(probs []float64) bool {
	for _, p := range probs {
		if p > 1e-12 {
			return true
		}
	}
	return false
}

// Evaluate plays episodes self-play rollouts under the current recommended
// policy, capping each at MaxDepth plies, and returns the mean utility for
// player 0: +1 win, -1 loss, 0 if capped without a winner (§4.8).
func (s *Solver) Evaluate(episodes int, seed int64) float64 {
	rng := rand.New(rand.NewSource(seed))
	total := 0.0

	for i := 0; i < episodes; i++ {
		gs, err := engine.New(2, rng.Int63(), s.Rules)
		if err != nil {
			panic(fmt.Errorf("solver: dealing evaluation game: %w", err))
		}

		for steps := 0; steps < s.MaxDepth; steps++ {
			if _, won := gs.Winner(); won {
				break
			}
			probs := s.ActionProbabilities(gs)
			if len(probs) == 0 {
				break
			}
			weights := make([]float64, len(probs))
			for j, p := range probs {
				weights[j] = p.Probability
			}
			chosen := probs[sampleIndex(rng, weights)].Action
			if err := gs.Apply(chosen); err != nil {
				panic(fmt.Errorf("solver: applying evaluation action %s: %w", chosen, err))
			}
		}

		if w, won := gs.Winner(); won {
			if w == 0 {
				total += 1
			} else {
				total -= 1
			}
		}
	}

	if episodes <= 0 {
		return 0
	}
	return total / float64(episodes)
}
