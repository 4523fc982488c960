// Meld call orchestration (§4.5): wraps the melds package's pure formation
// functions with the round-state side effects each call carries — ippatsu
// clearing, kuikae assignment, pao liability, dead-wall replacement draws,
// and deferred dora bookkeeping. Grounded on src/game/logic/turn.py's
// _process_pon_call/_process_chi_call/_process_open_kan_call/
// _process_closed_kan_call/_process_added_kan_call.
package turnengine

import (
	"mahjong/events"
	"mahjong/melds"
	"mahjong/state"
	"mahjong/tiles"
)

// clearIppatsu drops every seat's ippatsu flag: any meld call interrupts
// every outstanding ippatsu window at the table, not just the caller's.
func clearIppatsu(round *state.RoundState) {
	for i := range round.Players {
		round.Players[i].IsIppatsu = false
	}
}

// assignPao checks whether forming m completes the daisangen/daisuushii
// liability condition for the caller and, if so, stamps the caller's
// pao_seat to the seat that discarded the completing tile. Called before m
// is appended to caller.Melds, so the count of prior dragon/wind melds
// doesn't include m itself.
func assignPao(round *state.RoundState, callerSeat int, m melds.Meld, discarderSeat int) {
	caller := &round.Players[callerSeat]
	t := m.Type34()

	if t.IsDragon() {
		dragonPons := 0
		for _, existing := range caller.Melds {
			if existing.Kind != melds.Chi && existing.Type34().IsDragon() {
				dragonPons++
			}
		}
		if lia, ok := melds.DaisangenPao(dragonPons, true, discarderSeat); ok {
			caller.PaoSeat = lia.LiableSeat
		}
		return
	}
	if t.IsWind() {
		windPons := 0
		for _, existing := range caller.Melds {
			if existing.Kind != melds.Chi && existing.Type34().IsWind() {
				windPons++
			}
		}
		if lia, ok := melds.DaisuushiPao(windPons, true, discarderSeat); ok {
			caller.PaoSeat = lia.LiableSeat
		}
	}
}

// processPonCall executes a pon: hand removal, meld append, caller becomes
// current player, ippatsu cleared table-wide, kuikae set, pao checked.
func processPonCall(g *state.GameState, callerSeat, discarderSeat int, tileID tiles.ID) (*state.GameState, events.Meld, bool) {
	newRound := g.Round.Clone()
	caller := &newRound.Players[callerSeat]

	remaining, m, ok := melds.FormPon(caller.Tiles, tileID, discarderSeat, callerSeat)
	if !ok {
		return g, events.Meld{}, false
	}
	caller.Tiles = remaining
	assignPao(newRound, callerSeat, m, discarderSeat)
	caller.Melds = append(caller.Melds, m)
	caller.KuikaeTiles = []tiles.Type{tileID.Type34()}

	clearIppatsu(newRound)
	newRound.OpenedSeats[callerSeat] = true
	newRound.CurrentPlayerSeat = callerSeat
	newRound.IsAfterMeldCall = true

	return g.WithRound(newRound), events.NewMeld(m), true
}

// processChiCall executes a chi, requiring the caller's own two named hand
// tiles (one of the prompt's ChiOptions).
func processChiCall(g *state.GameState, callerSeat, discarderSeat int, tileID tiles.ID, handTiles [2]tiles.ID) (*state.GameState, events.Meld, bool) {
	newRound := g.Round.Clone()
	caller := &newRound.Players[callerSeat]

	remaining, m, ok := melds.FormChi(caller.Tiles, tileID, handTiles, discarderSeat, callerSeat)
	if !ok {
		return g, events.Meld{}, false
	}
	caller.Tiles = remaining
	caller.Melds = append(caller.Melds, m)
	caller.KuikaeTiles = chiKuikaeTypes(m)

	clearIppatsu(newRound)
	newRound.OpenedSeats[callerSeat] = true
	newRound.CurrentPlayerSeat = callerSeat
	newRound.IsAfterMeldCall = true

	return g.WithRound(newRound), events.NewMeld(m), true
}

// chiKuikaeTypes collects the called tile's type plus, when the call
// leaves a same-wait suji exposed, the extra forbidden type (§4.5).
func chiKuikaeTypes(m melds.Meld) []tiles.Type {
	calledType := tiles.ID(m.CalledTileID).Type34()
	out := []tiles.Type{calledType}
	for t := tiles.Type(0); t < tiles.Type(tiles.NumTypes); t++ {
		if t != calledType && melds.SujiKuikae(m, t) {
			out = append(out, t)
		}
	}
	return out
}

// processOpenKanCall executes a daiminkan: hand removal, dead-wall
// replacement draw (rinshan), deferred dora (pending_dora_count++), pao
// check. The four-kans abort check is not made here; the caller runs
// checkFourKans on the returned state.
func (e *Engine) processOpenKanCall(g *state.GameState, callerSeat, discarderSeat int, tileID tiles.ID) (*state.GameState, events.Meld, tiles.ID, bool, bool) {
	round := g.Round
	if round.Wall.Remaining() < g.Settings.MinWallForKan || round.TotalKans() >= g.Settings.MaxKansPerRound {
		return g, events.Meld{}, 0, false, false
	}

	newRound := g.Round.Clone()
	caller := &newRound.Players[callerSeat]

	remaining, m, ok := melds.FormOpenKan(caller.Tiles, tileID, discarderSeat, callerSeat)
	if !ok {
		return g, events.Meld{}, 0, false, false
	}
	caller.Tiles = remaining
	assignPao(newRound, callerSeat, m, discarderSeat)
	caller.Melds = append(caller.Melds, m)
	caller.KuikaeTiles = nil
	caller.IsRinshan = true

	replacement, drew := newRound.Wall.Dead.DrawReplacement()
	if drew {
		caller.Tiles = append(caller.Tiles, replacement)
	}
	newRound.PendingDoraCount++

	clearIppatsu(newRound)
	newRound.OpenedSeats[callerSeat] = true
	newRound.CurrentPlayerSeat = callerSeat
	newRound.IsAfterMeldCall = false // a replacement draw just happened; next discard may be tsumogiri

	cp := g.WithRound(newRound)
	return cp, events.NewMeld(m), replacement, drew, true
}

// processClosedKanCall executes an ankan: removes all four copies from the
// player's own hand, draws a replacement, and reveals one dora indicator
// immediately (unlike open/added kan, closed-kan kandora is not deferred).
func (e *Engine) processClosedKanCall(g *state.GameState, callerSeat int, kanType tiles.Type) (*state.GameState, events.Meld, tiles.ID, bool, tiles.ID, bool, bool) {
	round := g.Round
	if round.Wall.Remaining() < g.Settings.MinWallForKan || round.TotalKans() >= g.Settings.MaxKansPerRound {
		return g, events.Meld{}, 0, false, 0, false, false
	}

	newRound := g.Round.Clone()
	caller := &newRound.Players[callerSeat]

	remaining, m, ok := melds.FormClosedKan(caller.Tiles, kanType, callerSeat)
	if !ok {
		return g, events.Meld{}, 0, false, 0, false, false
	}
	caller.Tiles = remaining
	caller.Melds = append(caller.Melds, m)

	replacement, drewReplacement := newRound.Wall.Dead.DrawReplacement()
	if drewReplacement {
		caller.Tiles = append(caller.Tiles, replacement)
	}
	indicator, drewDora := newRound.Wall.Dead.RevealDora()

	newRound.CurrentPlayerSeat = callerSeat
	newRound.IsAfterMeldCall = false // the replacement draw just happened; the next discard may tsumogiri it

	cp := g.WithRound(newRound)
	return cp, events.NewMeld(m), replacement, drewReplacement, indicator, drewDora, true
}

// processAddedKanCall upgrades an existing pon to a shouminkan, preserving
// the pon's original from_seat/called_tile. Dora reveal is deferred
// open-kan style.
func (e *Engine) processAddedKanCall(g *state.GameState, callerSeat int, kanType tiles.Type) (*state.GameState, events.Meld, tiles.ID, bool, bool) {
	round := g.Round
	if round.Wall.Remaining() < g.Settings.MinWallForKan || round.TotalKans() >= g.Settings.MaxKansPerRound {
		return g, events.Meld{}, 0, false, false
	}

	newRound := g.Round.Clone()
	caller := &newRound.Players[callerSeat]

	var ponIdx = -1
	for i, existing := range caller.Melds {
		if existing.Kind == melds.Pon && existing.Type34() == kanType {
			ponIdx = i
			break
		}
	}
	if ponIdx == -1 {
		return g, events.Meld{}, 0, false, false
	}
	drawnID, found := firstTileOfType(caller.Tiles, kanType)
	if !found {
		return g, events.Meld{}, 0, false, false
	}

	m, ok := melds.FormAddedKan(caller.Melds[ponIdx], drawnID)
	if !ok {
		return g, events.Meld{}, 0, false, false
	}
	remaining, _ := removeID(caller.Tiles, drawnID)
	caller.Tiles = remaining
	caller.Melds[ponIdx] = m

	replacement, drew := newRound.Wall.Dead.DrawReplacement()
	if drew {
		caller.Tiles = append(caller.Tiles, replacement)
	}
	newRound.PendingDoraCount++
	newRound.CurrentPlayerSeat = callerSeat
	newRound.IsAfterMeldCall = false // the replacement draw just happened

	cp := g.WithRound(newRound)
	return cp, events.NewMeld(m), replacement, drew, true
}
