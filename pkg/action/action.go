// Package action defines the tagged-variant catalog of primary and response
// actions in Coup, dispatched by pattern matching rather than a class
// hierarchy.
package action

import (
	"fmt"
	"strconv"

	"github.com/behrlich/coup-solver/pkg/role"
)

// Type is the closed set of primary and response action kinds.
type Type uint8

const (
	Income Type = iota
	ForeignAid
	Coup
	Tax
	Steal
	Assassinate
	Exchange

	// Response actions.
	Pass
	Challenge
	BlockForeignAid
	BlockAssassinate
	BlockStealCaptain
	BlockStealAmbassador
)

func (t Type) String() string {
	switch t {
	case Income:
		return "INCOME"
	case ForeignAid:
		return "FOREIGN_AID"
	case Coup:
		return "COUP"
	case Tax:
		return "TAX"
	case Steal:
		return "STEAL"
	case Assassinate:
		return "ASSASSINATE"
	case Exchange:
		return "EXCHANGE"
	case Pass:
		return "PASS"
	case Challenge:
		return "CHALLENGE"
	case BlockForeignAid:
		return "BLOCK_FOREIGN_AID"
	case BlockAssassinate:
		return "BLOCK_ASSASSINATE"
	case BlockStealCaptain:
		return "BLOCK_STEAL_CAPTAIN"
	case BlockStealAmbassador:
		return "BLOCK_STEAL_AMBASSADOR"
	default:
		return fmt.Sprintf("Type(%d)", uint8(t))
	}
}

// IsResponse reports whether t is a response-window action rather than a
// primary action initiated on a player's own turn.
func (t Type) IsResponse() bool {
	switch t {
	case Pass, Challenge, BlockForeignAid, BlockAssassinate, BlockStealCaptain, BlockStealAmbassador:
		return true
	default:
		return false
	}
}

// BlockRole returns the role a block action claims, if any.
func (t Type) BlockRole() (role.Role, bool) {
	switch t {
	case BlockForeignAid:
		return role.Duke, true
	case BlockAssassinate:
		return role.Contessa, true
	case BlockStealCaptain:
		return role.Captain, true
	case BlockStealAmbassador:
		return role.Ambassador, true
	default:
		return 0, false
	}
}

// NoTarget marks an Action with no target player.
const NoTarget = -1

// Action is an immutable description of one legal move: an actor, an action
// kind, and an optional target seat.
type Action struct {
	Actor  int
	Type   Type
	Target int // NoTarget when the action has no target
}

// New builds an untargeted action.
func New(actor int, t Type) Action {
	return Action{Actor: actor, Type: t, Target: NoTarget}
}

// NewTargeted builds a targeted action.
func NewTargeted(actor int, t Type, target int) Action {
	return Action{Actor: actor, Type: t, Target: target}
}

func (a Action) String() string {
	if a.Target == NoTarget {
		return fmt.Sprintf("P%d:%s", a.Actor, a.Type)
	}
	return fmt.Sprintf("P%d:%s->P%d", a.Actor, a.Type, a.Target)
}

// Key returns the node-table action key: "TYPE:target_or_-" (§4.7).
func (a Action) Key() string {
	if a.Target == NoTarget {
		return a.Type.String() + ":-"
	}
	return a.Type.String() + ":" + strconv.Itoa(a.Target)
}

// ClaimRole returns the role a primary action implicitly claims, if any.
func ClaimRole(t Type) (role.Role, bool) {
	switch t {
	case Tax:
		return role.Duke, true
	case Steal:
		return role.Captain, true
	case Assassinate:
		return role.Assassin, true
	case Exchange:
		return role.Ambassador, true
	default:
		return 0, false
	}
}

// Challengeable reports whether a primary action's claim can be challenged.
func Challengeable(t Type) bool {
	_, ok := ClaimRole(t)
	return ok
}

// RequiresTarget reports whether a primary action names a target player.
func RequiresTarget(t Type) bool {
	switch t {
	case Coup, Steal, Assassinate:
		return true
	default:
		return false
	}
}
