package engine

import "github.com/behrlich/coup-solver/pkg/action"

// LegalActions enumerates the actions available to the current
// decision-maker (§4.2). Returns nil once the game is terminal.
func (g *GameState) LegalActions() []action.Action {
	if _, won := g.Winner(); won {
		return nil
	}
	if g.PendingAction == nil {
		return g.legalPrimaryActions()
	}
	return g.legalResponseActions()
}

// legalPrimaryActions enumerates the current player's options when no
// interaction is pending (§4.2).
func (g *GameState) legalPrimaryActions() []action.Action {
	actor := g.CurrentPlayer
	ps := g.Players[actor]

	if ps.Coins >= g.Rules.MandatoryCoupThreshold {
		return []action.Action{action.NewTargeted(actor, action.Coup, g.defaultTarget(actor))}
	}

	actions := []action.Action{
		action.New(actor, action.Income),
		action.New(actor, action.ForeignAid),
		action.New(actor, action.Tax),
		action.New(actor, action.Exchange),
	}

	target := g.defaultTarget(actor)
	if target != action.NoTarget {
		actions = append(actions, action.NewTargeted(actor, action.Steal, target))
	}
	if ps.Coins >= g.Rules.AssassinateCost && target != action.NoTarget {
		actions = append(actions, action.NewTargeted(actor, action.Assassinate, target))
	}
	if ps.Coins >= g.Rules.CoupCost && target != action.NoTarget {
		actions = append(actions, action.NewTargeted(actor, action.Coup, target))
	}
	return actions
}

// legalResponseActions enumerates the legal responses during the pending
// interaction's current stage (§4.3).
func (g *GameState) legalResponseActions() []action.Action {
	responder := g.expectedActor()

	if g.PendingBlocker == nil {
		// Stage A: the primary action has been declared, no block yet.
		switch g.PendingAction.Type {
		case action.ForeignAid:
			return []action.Action{
				action.New(responder, action.Pass),
				action.New(responder, action.BlockForeignAid),
			}
		case action.Tax, action.Exchange:
			return []action.Action{
				action.New(responder, action.Pass),
				action.New(responder, action.Challenge),
			}
		case action.Steal:
			return []action.Action{
				action.New(responder, action.Pass),
				action.New(responder, action.BlockStealCaptain),
				action.New(responder, action.BlockStealAmbassador),
				action.New(responder, action.Challenge),
			}
		case action.Assassinate:
			return []action.Action{
				action.New(responder, action.Pass),
				action.New(responder, action.BlockAssassinate),
				action.New(responder, action.Challenge),
			}
		default:
			return nil
		}
	}

	// Stage B: a block has been declared; only the original actor responds.
	return []action.Action{
		action.New(responder, action.Pass),
		action.New(responder, action.Challenge),
	}
}

// isLegal reports whether a is a member of the current legal-action set.
func (g *GameState) isLegal(a action.Action) bool {
	for _, legal := range g.LegalActions() {
		if legal == a {
			return true
		}
	}
	return false
}
