package engine

import "errors"

// ErrIllegalAction is returned when Apply is called with an action that is
// not a member of the current legal-action set, or whose Actor is not the
// expected decision-maker (§7).
var ErrIllegalAction = errors.New("engine: illegal action")

// ErrInvariant is returned when an internal invariant is violated: a player
// count outside 2-6 in New, a Coup/Assassinate missing its target, or
// insufficient funds for a cost-bearing action (§7). These indicate a
// solver/engine bug and are never expected in normal play. A truthful
// reveal of a role the player does not hold is not reported: truthfulReveal
// leaves the state unchanged in that case.
var ErrInvariant = errors.New("engine: invariant violated")
