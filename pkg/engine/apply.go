package engine

import (
	"fmt"

	"github.com/behrlich/coup-solver/pkg/action"
	"github.com/behrlich/coup-solver/pkg/role"
)

// Apply mutates the state by either transitioning into or advancing through
// a pending interaction, or immediately resolving an unchallengeable
// primary action (§3 Lifecycle, §4.3). It is the sole mutator of GameState.
func (g *GameState) Apply(a action.Action) error {
	if a.Actor != g.expectedActor() {
		return fmt.Errorf("%w: action %s, expected actor P%d", ErrIllegalAction, a, g.expectedActor())
	}
	if !g.isLegal(a) {
		return fmt.Errorf("%w: %s", ErrIllegalAction, a)
	}

	if g.PendingAction == nil {
		return g.applyPrimary(a)
	}
	return g.applyResponse(a)
}

// applyPrimary dispatches a freshly declared primary action.
func (g *GameState) applyPrimary(a action.Action) error {
	switch a.Type {
	case action.Income:
		g.Players[a.Actor].Coins++
		g.advanceTurn()
		return nil

	case action.Coup:
		if a.Target == action.NoTarget {
			return fmt.Errorf("%w: coup requires a target", ErrInvariant)
		}
		if g.Players[a.Actor].Coins < g.Rules.CoupCost {
			return fmt.Errorf("%w: insufficient coins for coup", ErrInvariant)
		}
		g.Players[a.Actor].Coins -= g.Rules.CoupCost
		g.loseInfluence(a.Target)
		g.advanceTurn()
		return nil

	case action.ForeignAid, action.Tax, action.Steal, action.Assassinate, action.Exchange:
		return g.openInteraction(a)

	default:
		return fmt.Errorf("%w: %s is not a primary action", ErrIllegalAction, a)
	}
}

// openInteraction transitions into Stage A: the primary action is recorded
// as pending, its claim (if any) is recorded, and the responder is set.
func (g *GameState) openInteraction(a action.Action) error {
	if a.Type == action.Assassinate {
		if a.Target == action.NoTarget {
			return fmt.Errorf("%w: assassinate requires a target", ErrInvariant)
		}
		if g.Players[a.Actor].Coins < g.Rules.AssassinateCost {
			return fmt.Errorf("%w: insufficient coins to declare assassinate", ErrInvariant)
		}
		// Paid at declaration, non-refundable regardless of outcome (§3).
		g.Players[a.Actor].Coins -= g.Rules.AssassinateCost
	}

	pending := a
	g.PendingAction = &pending

	if claimRole, ok := action.ClaimRole(a.Type); ok {
		r := claimRole
		g.PendingClaimRole = &r
	}

	var responder int
	if action.RequiresTarget(a.Type) {
		responder = a.Target
	} else {
		responder = g.nextAlivePlayer(a.Actor)
	}
	g.AwaitingResponseFrom = &responder
	return nil
}

// applyResponse dispatches a response-window action during a pending
// interaction (§4.3).
func (g *GameState) applyResponse(a action.Action) error {
	switch a.Type {
	case action.Pass:
		if g.PendingBlocker == nil {
			// Stage A pass: the claim goes unchallenged, the primary succeeds.
			g.executePrimary(*g.PendingAction)
		}
		// Stage B pass: actor accepts the block; the primary action fails.
		// Coins already paid (Assassinate) are not refunded either way.
		g.clearPending()
		g.advanceTurn()
		return nil

	case action.Challenge:
		g.resolveChallenge()
		g.clearPending()
		g.advanceTurn()
		return nil

	case action.BlockForeignAid, action.BlockAssassinate, action.BlockStealCaptain, action.BlockStealAmbassador:
		blockRole, _ := a.Type.BlockRole()
		blocker := a.Actor
		g.PendingBlocker = &blocker
		g.PendingBlockRole = &blockRole
		actor := g.PendingAction.Actor
		g.AwaitingResponseFrom = &actor
		return nil

	default:
		return fmt.Errorf("%w: %s is not a response action", ErrIllegalAction, a)
	}
}

// resolveChallenge resolves a Challenge at either Stage A (challenging the
// primary action's claim) or Stage B (challenging the block's claim),
// per the edge-case policies in §4.3.
func (g *GameState) resolveChallenge() {
	actor := g.PendingAction.Actor

	if g.PendingBlocker == nil {
		// Stage A: the challenger (the current responder) disputes the
		// primary actor's claim.
		claimRole := *g.PendingClaimRole
		challenger := *g.AwaitingResponseFrom
		if hasRole(g.Players[actor].Hand, claimRole) {
			g.truthfulReveal(actor, claimRole)
			g.loseInfluence(challenger)
			g.executePrimary(*g.PendingAction)
		} else {
			g.loseInfluence(actor)
			// Primary action fails; Assassinate's cost is not refunded.
		}
		return
	}

	// Stage B: the primary actor disputes the blocker's claim.
	blocker := *g.PendingBlocker
	blockRole := *g.PendingBlockRole
	if hasRole(g.Players[blocker].Hand, blockRole) {
		g.truthfulReveal(blocker, blockRole)
		g.loseInfluence(actor)
		// Block holds; primary action fails.
	} else {
		g.loseInfluence(blocker)
		g.executePrimary(*g.PendingAction)
	}
}

// executePrimary applies a primary action's effect once its claim (if any)
// has gone unchallenged or has survived a challenge (§4.3).
func (g *GameState) executePrimary(a action.Action) {
	switch a.Type {
	case action.ForeignAid:
		g.Players[a.Actor].Coins += 2
	case action.Tax:
		g.Players[a.Actor].Coins += 3
	case action.Steal:
		amt := min(2, g.Players[a.Target].Coins)
		g.Players[a.Target].Coins -= amt
		g.Players[a.Actor].Coins += amt
	case action.Assassinate:
		g.loseInfluence(a.Target)
	case action.Exchange:
		g.performExchange(a.Actor)
	}
}

// clearPending resets the pending-interaction block to its idle state.
func (g *GameState) clearPending() {
	g.PendingAction = nil
	g.PendingClaimRole = nil
	g.PendingBlocker = nil
	g.PendingBlockRole = nil
	g.AwaitingResponseFrom = nil
}

func hasRole(hand []role.Role, r role.Role) bool {
	for _, h := range hand {
		if h == r {
			return true
		}
	}
	return false
}
