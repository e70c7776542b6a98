// Package rules holds the immutable, shared-read-only configuration for a
// Coup game: costs, deck composition, and the block/claim graphs (§4.1).
package rules

import (
	"github.com/behrlich/coup-solver/pkg/action"
	"github.com/behrlich/coup-solver/pkg/role"
)

// Rules is the static parameter table. Zero value is invalid; use Default().
type Rules struct {
	StartingCoins          int
	CardsPerPlayer         int
	CoupCost               int
	AssassinateCost        int
	MandatoryCoupThreshold int
	DeckCountPerRole       int

	// Blocks maps a blockable primary action to the roles that may block it.
	Blocks map[action.Type][]role.Role

	// Claims maps a claimed primary action to the role it claims.
	Claims map[action.Type]role.Role
}

// Default returns the standard two-to-six player Coup rule set (§4.1).
func Default() Rules {
	return Rules{
		StartingCoins:          2,
		CardsPerPlayer:         2,
		CoupCost:               7,
		AssassinateCost:        3,
		MandatoryCoupThreshold: 10,
		DeckCountPerRole:       role.CountPerRole,
		Blocks: map[action.Type][]role.Role{
			action.ForeignAid: {role.Duke},
			action.Assassinate: {role.Contessa},
			action.Steal:      {role.Captain, role.Ambassador},
		},
		Claims: map[action.Type]role.Role{
			action.Tax:         role.Duke,
			action.Steal:       role.Captain,
			action.Assassinate: role.Assassin,
			action.Exchange:    role.Ambassador,
		},
	}
}

// FullDeck returns one freshly allocated, unshuffled deck: DeckCountPerRole
// copies of each role, in role-ordinal order.
func (r Rules) FullDeck() []role.Role {
	deck := make([]role.Role, 0, len(role.All)*r.DeckCountPerRole)
	for _, ro := range role.All {
		for i := 0; i < r.DeckCountPerRole; i++ {
			deck = append(deck, ro)
		}
	}
	return deck
}

// BlockRoles returns the roles that may block the given primary action.
func (r Rules) BlockRoles(t action.Type) ([]role.Role, bool) {
	roles, ok := r.Blocks[t]
	return roles, ok
}

// ClaimRole returns the role the given primary action implicitly claims.
func (r Rules) ClaimRole(t action.Type) (role.Role, bool) {
	ro, ok := r.Claims[t]
	return ro, ok
}
