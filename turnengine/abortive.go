// Abortive-draw detection (§4.8). No Python source for this logic was
// retrieved into original_source/ — call_resolution.py imports an
// `abortive` module that isn't among the pack's files, so these checks are
// built directly from spec §4.8's literal text rather than ported from a
// reference implementation (documented in DESIGN.md).
package turnengine

import "mahjong/state"

// checkFourWinds reports suufon renda: the round's first four discards are
// all the same wind tile, one from each of the four seats.
func checkFourWinds(g *state.GameState) bool {
	if !g.Settings.HasSuufonRenda {
		return false
	}
	round := g.Round
	if len(round.AllDiscards) != 4 {
		return false
	}
	first := round.AllDiscards[0].TileID.Type34()
	if !first.IsWind() {
		return false
	}
	seen := map[int]bool{}
	for _, d := range round.AllDiscards {
		if d.TileID.Type34() != first {
			return false
		}
		seen[d.Seat] = true
	}
	return len(seen) == 4
}

// checkFourRiichi reports suucha riichi: all four seats are in riichi.
// Tested only immediately after a riichi finalization (ron overrides).
func checkFourRiichi(g *state.GameState) bool {
	if !g.Settings.HasSuuchaRiichi {
		return false
	}
	for _, p := range g.Round.Players {
		if !p.IsRiichi {
			return false
		}
	}
	return true
}

// checkFourKans reports suukaikan: a 4th kan exists and not all four kans
// belong to one player (a single player holding all four kans continues
// the round — the hand keeps going until someone else kans).
func checkFourKans(g *state.GameState) bool {
	if !g.Settings.HasSuukaikan {
		return false
	}
	round := g.Round
	total := round.TotalKans()
	if total < 4 {
		return false
	}
	for _, p := range round.Players {
		if p.TotalKans() == total {
			return false // one player holds every kan so far; round continues
		}
	}
	return true
}

// checkTripleRon reports whether ronCallers should trigger the triple-ron
// abortive draw rather than a capped multi-ron resolution.
func checkTripleRon(g *state.GameState, ronCallers []int) bool {
	return g.Settings.HasTripleRonAbort && len(ronCallers) == g.Settings.TripleRonCount
}

// processAbortiveDraw finalizes the round at phase Finished with the given
// reason; honba/dealer rotation is progression's job once this result
// reaches ProcessRoundEnd.
func processAbortiveDraw(g *state.GameState, reason state.AbortiveReason) (*state.GameState, state.RoundResult) {
	newRound := g.Round.Clone()
	newRound.Phase = state.Finished
	cp := g.WithRound(newRound)
	return cp, state.RoundResult{Type: state.AbortiveDraw, Reason: reason}
}
