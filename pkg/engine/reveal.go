package engine

import (
	"sort"

	"github.com/behrlich/coup-solver/pkg/role"
)

// loseInfluence removes the player's first-in-hand card (a deterministic,
// source-order policy knob per §4.5) and appends it to their reveal pile.
// A no-op if the player already has no influence.
func (g *GameState) loseInfluence(player int) {
	ps := &g.Players[player]
	if len(ps.Hand) == 0 {
		return
	}
	lost := ps.Hand[0]
	ps.Hand = ps.Hand[1:]
	ps.Revealed = append(ps.Revealed, lost)
}

// truthfulReveal performs a truthful reveal of r for the given player
// (§4.4): the claimed card returns to the deck, the deck reshuffles, and a
// replacement is drawn from the deck's tail.
func (g *GameState) truthfulReveal(player int, r role.Role) {
	ps := &g.Players[player]
	idx := -1
	for i, h := range ps.Hand {
		if h == r {
			idx = i
			break
		}
	}
	if idx == -1 {
		// Invariant violation: caller guaranteed r is held. Nothing
		// recoverable to do here short of corrupting the census further;
		// the caller (resolveChallenge) only calls this after confirming
		// hasRole, so this branch is unreachable in practice.
		return
	}
	ps.Hand = append(ps.Hand[:idx], ps.Hand[idx+1:]...)
	g.Deck = append(g.Deck, r)
	g.shuffleDeck()
	ps.Hand = append(ps.Hand, g.popDeck())
}

// performExchange implements the Exchange procedure (§4.3): draw the top
// two deck cards, combine with the actor's hand, keep the lowest
// CardsPerPlayer cards by role ordinal (a deterministic tie-break), and
// return the remainder to the deck's tail in original encounter order.
func (g *GameState) performExchange(actor int) {
	ps := &g.Players[actor]
	n := g.Rules.CardsPerPlayer

	drawn := make([]role.Role, 0, 2)
	for i := 0; i < 2 && len(g.Deck) > 0; i++ {
		drawn = append(drawn, g.popDeck())
	}

	combined := make([]role.Role, 0, len(ps.Hand)+len(drawn))
	combined = append(combined, ps.Hand...)
	combined = append(combined, drawn...)

	type indexed struct {
		r   role.Role
		idx int
	}
	ranked := make([]indexed, len(combined))
	for i, r := range combined {
		ranked[i] = indexed{r: r, idx: i}
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].r < ranked[j].r })

	keep := n
	if keep > len(ranked) {
		keep = len(ranked)
	}
	kept := make(map[int]bool, keep)
	newHand := make([]role.Role, 0, keep)
	for _, k := range ranked[:keep] {
		kept[k.idx] = true
		newHand = append(newHand, k.r)
	}

	remainder := make([]role.Role, 0, len(combined)-keep)
	for i, r := range combined {
		if !kept[i] {
			remainder = append(remainder, r)
		}
	}

	ps.Hand = newHand
	g.Deck = append(g.Deck, remainder...)
}
