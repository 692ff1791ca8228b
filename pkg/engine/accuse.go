package engine

import (
	"github.com/casefile-games/mystery-engine/pkg/game"
	"github.com/casefile-games/mystery-engine/pkg/session"
)

// EvidenceProgress returns how many crucial-evidence items the player
// holds and how many the game defines.
func EvidenceProgress(g *game.Game, st *session.State) (held, total int) {
	for _, id := range g.CrucialItemIDs() {
		total++
		if st.HasItem(id) {
			held++
		}
	}
	return held, total
}

// CanAccuse reports whether the accusation is unlocked: every crucial
// item must be held, and there must be at least one. A game with zero
// crucial items can never unlock the accusation; authoring at least
// one is a content requirement, flagged by Validate.
func CanAccuse(g *game.Game, st *session.State) bool {
	held, total := EvidenceProgress(g, st)
	return total > 0 && held == total
}
