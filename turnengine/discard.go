// Discard-phase orchestration (§4.3). Grounded on
// src/game/logic/turn.py's process_discard_phase: kuikae/turn validation,
// riichi finalization, the four-winds abortive check, and opening the
// post-discard ron/meld response window.
package turnengine

import (
	"mahjong/events"
	"mahjong/state"
	"mahjong/tiles"
)

// ProcessDiscardPhase validates and commits seat's discard. On success it
// returns the updated state and the events this single discard produced;
// the caller advances to the next draw itself once no response window
// remains open (PendingPrompt is nil in the returned state).
func ProcessDiscardPhase(e *Engine, g *state.GameState, seat int, tileID tiles.ID, isRiichi bool) (*state.GameState, []events.Event, error) {
	round := g.Round
	if seat != round.CurrentPlayerSeat {
		return g, nil, &InvalidActionError{Reason: "not this seat's turn to discard"}
	}
	player := round.Players[seat]
	if !player.HasTile(tileID) {
		return g, nil, &InvalidActionError{Reason: "tile not in hand"}
	}
	if containsType(player.KuikaeTiles, tileID.Type34()) {
		return g, nil, &InvalidActionError{Reason: "kuikae: tile forbidden this discard"}
	}
	if isRiichi {
		if !e.canDeclareRiichi(g, seat) {
			return g, nil, &InvalidActionError{Reason: "riichi not available"}
		}
		if !e.discardLeavesTenpai(player, tileID) {
			return g, nil, &InvalidActionError{Reason: "that discard would not leave tenpai"}
		}
	}

	tsumogiri := !round.IsAfterMeldCall && len(player.Tiles) > 0 && tileID == player.Tiles[len(player.Tiles)-1]

	newRound := round.Clone()
	newPlayer := &newRound.Players[seat]
	remaining, ok := removeID(newPlayer.Tiles, tileID)
	if !ok {
		return g, nil, &InvalidActionError{Reason: "tile not in hand"}
	}
	newPlayer.Tiles = remaining
	newPlayer.Discards = append(newPlayer.Discards, state.Discard{
		TileID:          tileID,
		IsTsumogiri:     tsumogiri,
		IsRiichiDiscard: isRiichi,
		ClaimedBySeat:   state.NoPaoSeat,
	})
	newPlayer.KuikaeTiles = nil
	newPlayer.IsRinshan = false
	newRound.IsAfterMeldCall = false
	newRound.AllDiscards = append(newRound.AllDiscards, state.DiscardRecord{Seat: seat, TileID: tileID})

	cp := g.WithRound(newRound)
	if isRiichi {
		cp = finalizeRiichi(cp, seat)
	}

	out := []events.Event{events.NewDiscard(seat, tileID, tsumogiri, isRiichi)}
	if isRiichi {
		out = append(out, events.NewRiichiDeclared(seat))
	}

	if checkFourWinds(cp) {
		cp2, result := processAbortiveDraw(cp, state.SuufonRenda)
		out = append(out, events.NewRoundEnd(result))
		return cp2, out, nil
	}

	ronCallers := e.findRonCallers(cp, tileID, seat)
	meldCallers := e.findMeldCallers(cp, tileID, seat)

	if len(ronCallers) == 0 && len(meldCallers) == 0 {
		return e.finishDiscardWithNoResponders(cp, seat, out)
	}

	prompt := buildDiscardCheckPrompt(tileID, seat, ronCallers, meldCallers)
	finalRound := cp.Round.Clone()
	finalRound.PendingPrompt = prompt
	cp = cp.WithRound(finalRound)
	out = append(out, events.NewCallPrompt(prompt))
	return cp, out, nil
}

// discardLeavesTenpai reports whether removing tileID from player's current
// hand leaves a tenpai 13-tile shape (the riichi-declaration gate, checked
// against the specific tile chosen rather than "some" discard).
func (e *Engine) discardLeavesTenpai(player state.Player, tileID tiles.ID) bool {
	remaining, ok := removeID(player.Tiles, tileID)
	if !ok {
		return false
	}
	return e.isTenpai(tiles.ToHand34(remaining), len(player.Melds))
}

func containsType(types []tiles.Type, t tiles.Type) bool {
	for _, existing := range types {
		if existing == t {
			return true
		}
	}
	return false
}

// finishDiscardWithNoResponders reveals any deferred kan-dora, checks for
// suucha riichi, and advances play to the next seat's draw.
func (e *Engine) finishDiscardWithNoResponders(g *state.GameState, discarderSeat int, out []events.Event) (*state.GameState, []events.Event, error) {
	newRound := g.Round.Clone()
	for i := 0; i < g.Round.PendingDoraCount; i++ {
		indicator, drew := newRound.Wall.Dead.RevealDora()
		if !drew {
			break
		}
		out = append(out, events.NewDoraRevealed(indicator))
	}
	newRound.PendingDoraCount = 0
	cp := g.WithRound(newRound)

	if checkFourRiichi(cp) {
		cp2, result := processAbortiveDraw(cp, state.SuuchaRiichi)
		out = append(out, events.NewRoundEnd(result))
		return cp2, out, nil
	}

	nextRound := cp.Round.Clone()
	nextRound.CurrentPlayerSeat = state.Shimocha(discarderSeat)
	nextRound.TurnCount++
	cp = cp.WithRound(nextRound)

	return cp, out, nil
}

// buildDiscardCheckPrompt applies the ron-dominant policy (§4.4): a seat
// eligible for both ron and a meld keeps both kinds listed, marked
// RonDemoted so the resolver only honors its meld response if ron goes
// unexercised by everyone.
func buildDiscardCheckPrompt(tileID tiles.ID, discarderSeat int, ronCallers []int, meldCallers []meldCallOption) *state.PendingCallPrompt {
	ronSet := map[int]bool{}
	for _, s := range ronCallers {
		ronSet[s] = true
	}

	bySeat := map[int]*state.CallerOption{}
	var order []int
	get := func(seat int) *state.CallerOption {
		if c, ok := bySeat[seat]; ok {
			return c
		}
		c := &state.CallerOption{Seat: seat}
		bySeat[seat] = c
		order = append(order, seat)
		return c
	}

	for _, seat := range ronCallers {
		c := get(seat)
		c.Kinds = append(c.Kinds, state.CallRon)
	}
	for _, m := range meldCallers {
		c := get(m.Seat)
		c.Kinds = append(c.Kinds, m.Kind)
		if m.Kind == state.CallChi {
			c.ChiOptions = append(c.ChiOptions, m.ChiOptions...)
		}
		if ronSet[m.Seat] {
			c.RonDemoted = true
		}
	}

	sortByDistance(order, discarderSeat)
	callers := make([]state.CallerOption, 0, len(order))
	pending := make([]int, 0, len(order))
	for _, seat := range order {
		callers = append(callers, *bySeat[seat])
		pending = append(pending, seat)
	}

	return &state.PendingCallPrompt{
		Type:         state.PromptDiscardCheck,
		TileID:       tileID,
		FromSeat:     discarderSeat,
		Callers:      callers,
		PendingSeats: pending,
	}
}
