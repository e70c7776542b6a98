// Package engine implements the deterministic Coup rules state machine:
// dealing, legal-action enumeration, action application, and the
// action→response→block→challenge→resolution interaction protocol (§3–§4).
package engine

import (
	"fmt"
	"math/rand"

	"github.com/behrlich/coup-solver/pkg/action"
	"github.com/behrlich/coup-solver/pkg/role"
	"github.com/behrlich/coup-solver/pkg/rules"
)

// PlayerState is one seat's mutable world: coins, private hand, and the
// append-only pile of roles that seat has been forced to reveal.
type PlayerState struct {
	Coins    int
	Hand     []role.Role
	Revealed []role.Role
}

// Alive reports whether the player still holds at least one influence.
func (p PlayerState) Alive() bool {
	return len(p.Hand) > 0
}

// GameState is the mutable world: players, deck, turn pointer, and the
// pending-interaction block (§3). It exclusively owns its players, deck,
// and RNG; branches must go through Clone.
type GameState struct {
	Rules         rules.Rules
	Players       []PlayerState
	Deck          []role.Role
	CurrentPlayer int

	// Pending-interaction block: all nil, or a consistent subset describing
	// the current stage of the action→response→block→challenge protocol.
	PendingAction        *action.Action
	PendingClaimRole     *role.Role
	PendingBlocker       *int
	PendingBlockRole     *role.Role
	AwaitingResponseFrom *int

	rng *rand.Rand
}

// New deals a fresh game: numPlayers (2-6) seats, each starting with
// Rules.StartingCoins and Rules.CardsPerPlayer cards dealt from a shuffled
// deck. CurrentPlayer starts at 0.
func New(numPlayers int, seed int64, r rules.Rules) (*GameState, error) {
	if numPlayers < 2 || numPlayers > 6 {
		return nil, fmt.Errorf("%w: numPlayers must be 2-6, got %d", ErrInvariant, numPlayers)
	}

	gs := &GameState{
		Rules:         r,
		Players:       make([]PlayerState, numPlayers),
		CurrentPlayer: 0,
		rng:           rand.New(rand.NewSource(seed)),
	}
	for i := range gs.Players {
		gs.Players[i] = PlayerState{Coins: r.StartingCoins}
	}

	deck := r.FullDeck()
	gs.rng.Shuffle(len(deck), func(i, j int) { deck[i], deck[j] = deck[j], deck[i] })
	gs.Deck = deck

	for c := 0; c < r.CardsPerPlayer; c++ {
		for p := 0; p < numPlayers; p++ {
			gs.Players[p].Hand = append(gs.Players[p].Hand, gs.popDeck())
		}
	}
	return gs, nil
}

// popDeck removes and returns the card at the deck's tail.
func (g *GameState) popDeck() role.Role {
	n := len(g.Deck)
	card := g.Deck[n-1]
	g.Deck = g.Deck[:n-1]
	return card
}

// Clone deep-copies players, deck, pending fields, and RNG state so the
// clone is independently advanceable without observable side effects on the
// parent (§5). The clone's RNG is seeded from a value drawn off the
// parent's stream, so both streams stay reproducible under a fixed seed.
func (g *GameState) Clone() *GameState {
	clone := &GameState{
		Rules:         g.Rules,
		Players:       make([]PlayerState, len(g.Players)),
		Deck:          append([]role.Role(nil), g.Deck...),
		CurrentPlayer: g.CurrentPlayer,
		rng:           rand.New(rand.NewSource(g.rng.Int63())),
	}
	for i, p := range g.Players {
		clone.Players[i] = PlayerState{
			Coins:    p.Coins,
			Hand:     append([]role.Role(nil), p.Hand...),
			Revealed: append([]role.Role(nil), p.Revealed...),
		}
	}
	if g.PendingAction != nil {
		a := *g.PendingAction
		clone.PendingAction = &a
	}
	if g.PendingClaimRole != nil {
		r := *g.PendingClaimRole
		clone.PendingClaimRole = &r
	}
	if g.PendingBlocker != nil {
		b := *g.PendingBlocker
		clone.PendingBlocker = &b
	}
	if g.PendingBlockRole != nil {
		r := *g.PendingBlockRole
		clone.PendingBlockRole = &r
	}
	if g.AwaitingResponseFrom != nil {
		a := *g.AwaitingResponseFrom
		clone.AwaitingResponseFrom = &a
	}
	return clone
}

// AlivePlayers returns the indices of every seat that still holds influence.
func (g *GameState) AlivePlayers() []int {
	alive := make([]int, 0, len(g.Players))
	for i, p := range g.Players {
		if p.Alive() {
			alive = append(alive, i)
		}
	}
	return alive
}

// Winner returns the sole remaining alive player, if exactly one remains.
func (g *GameState) Winner() (int, bool) {
	alive := g.AlivePlayers()
	if len(alive) == 1 {
		return alive[0], true
	}
	return -1, false
}

// nextAlivePlayer returns the next alive seat clockwise from the given
// current seat.
func (g *GameState) nextAlivePlayer(from int) int {
	n := len(g.Players)
	nxt := (from + 1) % n
	for !g.Players[nxt].Alive() {
		nxt = (nxt + 1) % n
	}
	return nxt
}

// defaultTarget returns the nearest alive opponent clockwise from actor.
func (g *GameState) defaultTarget(actor int) int {
	n := len(g.Players)
	for offset := 1; offset < n; offset++ {
		cand := (actor + offset) % n
		if g.Players[cand].Alive() {
			return cand
		}
	}
	return action.NoTarget
}

// advanceTurn moves CurrentPlayer to the next alive seat, provided no
// winner exists and no interaction is pending.
func (g *GameState) advanceTurn() {
	if _, won := g.Winner(); won {
		return
	}
	if g.PendingAction != nil {
		return
	}
	g.CurrentPlayer = g.nextAlivePlayer(g.CurrentPlayer)
}

// expectedActor returns the seat whose move is next: CurrentPlayer when no
// interaction is pending, otherwise AwaitingResponseFrom.
func (g *GameState) expectedActor() int {
	if g.PendingAction == nil {
		return g.CurrentPlayer
	}
	if g.AwaitingResponseFrom != nil {
		return *g.AwaitingResponseFrom
	}
	return g.CurrentPlayer
}

// shuffleDeck reshuffles the deck in place using the state's RNG.
func (g *GameState) shuffleDeck() {
	g.rng.Shuffle(len(g.Deck), func(i, j int) { g.Deck[i], g.Deck[j] = g.Deck[j], g.Deck[i] })
}
