package turnengine

import (
	"mahjong/shanten"
	"mahjong/state"
	"mahjong/tiles"
)

// isDiscardFuriten computes the on-demand furiten case: tenpai, and at
// least one waiting tile sits among the seat's own discards. No stored
// flag — recomputed whenever asked, per §4.7.
func (e *Engine) isDiscardFuriten(g *state.GameState, seat int) bool {
	round := g.Round
	player := round.Players[seat]
	counts := tiles.ToHand34(player.Tiles)
	formedSets := len(player.Melds)
	if e.shanten(counts, formedSets) != 0 {
		return false
	}
	waits := waitSet(counts, formedSets)
	if len(waits) == 0 {
		return false
	}
	for _, d := range player.Discards {
		if waits[d.TileID.Type34()] {
			return true
		}
	}
	return false
}

func waitSet(counts tiles.Hand34, formedSets int) map[tiles.Type]bool {
	out := map[tiles.Type]bool{}
	for _, t := range shanten.WaitingTiles(counts, formedSets) {
		out[t] = true
	}
	return out
}

// isEffectiveFuriten combines the stored temporary/riichi flags with the
// on-demand discard check (spec §4.7's "temporary ∨ riichi ∨ discard").
func (e *Engine) isEffectiveFuriten(g *state.GameState, seat int) bool {
	player := g.Round.Players[seat]
	return player.EffectiveFuriten(e.isDiscardFuriten(g, seat))
}
