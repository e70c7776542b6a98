// Package infoset implements the pure information-set key function (§4.6):
// a string capturing public history plus one player's private hand, stable
// across any two states that are strategically indistinguishable to that
// player.
package infoset

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/behrlich/coup-solver/pkg/engine"
	"github.com/behrlich/coup-solver/pkg/role"
)

// Key returns the infoset key for state gs from perspective's point of
// view. The deck and the opponent's hand are intentionally excluded — that
// omission is what realizes imperfect information (§4.6).
func Key(gs *engine.GameState, perspective int) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%d|", gs.CurrentPlayer)

	b.WriteString("c:")
	for i, p := range gs.Players {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(p.Coins))
	}
	b.WriteByte('|')

	for i, p := range gs.Players {
		fmt.Fprintf(&b, "r%d:%s|", i, sortedRoleNames(p.Revealed))
	}

	b.WriteString("pa:")
	if gs.PendingAction == nil {
		b.WriteString("-")
	} else {
		tgt := "-"
		if gs.PendingAction.Target != -1 {
			tgt = strconv.Itoa(gs.PendingAction.Target)
		}
		fmt.Fprintf(&b, "%s:%d:%s", gs.PendingAction.Type, gs.PendingAction.Actor, tgt)
	}
	b.WriteByte('|')

	b.WriteString("pr:")
	b.WriteString(optionalRole(gs.PendingBlockRole))
	b.WriteByte('|')

	b.WriteString("pb:")
	b.WriteString(optionalInt(gs.PendingBlocker))
	b.WriteByte('|')

	b.WriteString("ar:")
	b.WriteString(optionalInt(gs.AwaitingResponseFrom))
	b.WriteByte('|')

	b.WriteString("cr:")
	b.WriteString(optionalRole(gs.PendingClaimRole))

	b.WriteString("||h:")
	b.WriteString(sortedRoleNames(gs.Players[perspective].Hand))

	return b.String()
}

func sortedRoleNames(roles []role.Role) string {
	names := make([]string, len(roles))
	for i, r := range roles {
		names[i] = r.String()
	}
	sort.Strings(names)
	return strings.Join(names, ",")
}

func optionalRole(r *role.Role) string {
	if r == nil {
		return "-"
	}
	return r.String()
}

func optionalInt(v *int) string {
	if v == nil {
		return "-"
	}
	return strconv.Itoa(*v)
}
