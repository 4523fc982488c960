package turnengine

import "mahjong/state"

// finalizeRiichi deposits the riichi stick, sets the declarant's flags, and
// marks double-riichi when the declaration landed on their very first
// uninterrupted discard. Called only after the post-discard ron check has
// passed (§4.3 step 8).
func finalizeRiichi(g *state.GameState, seat int) *state.GameState {
	newRound := g.Round.Clone()
	player := &newRound.Players[seat]

	player.IsRiichi = true
	player.IsIppatsu = true
	if len(player.Discards) == 1 && !seatHasMadeAnyCall(newRound) {
		player.IsDaburi = true
	}

	cp := g.WithRound(newRound)
	cp.RiichiSticks = g.RiichiSticks + 1

	return finalizeRiichiScore(cp, seat)
}

func finalizeRiichiScore(g *state.GameState, seat int) *state.GameState {
	newRound := g.Round.Clone()
	newRound.Players[seat].Score -= g.Settings.RiichiCost
	return g.WithRound(newRound)
}
