// Exhaustive draw and nagashi mangan settlement (§4.9). Grounded on
// round.py's is_tempai/_is_pure_karaten/process_exhaustive_draw/
// check_nagashi_mangan.
package turnengine

import (
	"mahjong/scoring"
	"mahjong/shanten"
	"mahjong/state"
	"mahjong/tiles"
)

// checkExhaustiveDraw reports whether the live wall is empty, the trigger
// for ending the round without a win.
func checkExhaustiveDraw(g *state.GameState) bool {
	return g.Round.Wall.Remaining() == 0
}

// isTempaiSeat implements §4.9 step 1: tenpai on the seat's 13-tile hand,
// or (defensively, for the rare case a 14-tile hand is evaluated here) any
// 13-tile subset of it, excluding pure karaten.
func (e *Engine) isTempaiSeat(g *state.GameState, seat int) bool {
	player := g.Round.Players[seat]
	formedSets := len(player.Melds)
	target := 13 - 3*formedSets

	var visible tiles.Hand34
	for _, m := range player.Melds {
		for _, id := range m.TileIDs {
			visible[id.Type34()]++
		}
	}

	check := func(hand []tiles.ID) bool {
		counts := tiles.ToHand34(hand)
		if !e.isTenpai(counts, formedSets) {
			return false
		}
		return !shanten.IsPureKaraten(counts, formedSets, visible)
	}

	if len(player.Tiles) <= target {
		return check(player.Tiles)
	}
	for i := range player.Tiles {
		trial := append(append([]tiles.ID(nil), player.Tiles[:i]...), player.Tiles[i+1:]...)
		if check(trial) {
			return true
		}
	}
	return false
}

// tempaiSeats returns every seat passing isTempaiSeat, in seat order.
func (e *Engine) tempaiSeats(g *state.GameState) []int {
	var out []int
	for seat := 0; seat < 4; seat++ {
		if e.isTempaiSeat(g, seat) {
			out = append(out, seat)
		}
	}
	return out
}

// checkNagashiMangan reports every seat qualifying for nagashi mangan: all
// of its discards are terminal/honor tiles, and none was ever claimed by
// an opponent's meld.
func checkNagashiMangan(g *state.GameState) []int {
	round := g.Round
	if !g.Settings.HasNagashiMangan {
		return nil
	}

	var qualifying []int
	for seat := 0; seat < 4; seat++ {
		player := round.Players[seat]
		if len(player.Discards) == 0 {
			continue
		}
		ok := true
		for _, d := range player.Discards {
			if !d.TileID.Type34().IsTerminalOrHonor() {
				ok = false
				break
			}
			if d.ClaimedBySeat != state.NoPaoSeat {
				ok = false
				break
			}
		}
		if ok {
			qualifying = append(qualifying, seat)
		}
	}
	return qualifying
}

// processExhaustiveDraw implements §4.9: nagashi mangan takes priority over
// the ordinary noten-payment settlement when any seat qualifies.
func (e *Engine) processExhaustiveDraw(g *state.GameState) (*state.GameState, state.RoundResult) {
	tenpai := e.tempaiSeats(g)

	if qualifying := checkNagashiMangan(g); len(qualifying) > 0 {
		cp, _ := scoring.ApplyNagashiManganScore(g, qualifying)
		newRound := cp.Round.Clone()
		newRound.Phase = state.Finished
		cp = cp.WithRound(newRound)
		return cp, state.RoundResult{
			Type:            state.NagashiMangan,
			TenpaiSeats:     tenpai,
			QualifyingSeats: qualifying,
		}
	}

	cp, _ := scoring.ApplyNotenPayments(g, tenpai)
	newRound := cp.Round.Clone()
	newRound.Phase = state.Finished
	cp = cp.WithRound(newRound)
	return cp, state.RoundResult{Type: state.ExhaustiveDraw, TenpaiSeats: tenpai}
}
