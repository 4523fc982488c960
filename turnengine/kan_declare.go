// Kan declaration and chankan (§4.5, §4.8 suukaikan). Separate from
// meld_actions.go's pure formation wrappers: these functions own the
// public entry points a seat's turn exposes (closed/added kan, kyuushu
// kyuuhai) plus the shared "finish a kan, hand the replacement tile back
// as a fresh Draw" glue that both here and resolve.go's open-kan path use.
package turnengine

import (
	"mahjong/events"
	"mahjong/state"
	"mahjong/tiles"
)

// ProcessDeclareClosedKan handles a seat's ankan declaration mid-turn.
func ProcessDeclareClosedKan(e *Engine, g *state.GameState, seat int, kanType tiles.Type) (*state.GameState, []events.Event, error) {
	if !containsType(e.possibleClosedKans(g, seat), kanType) {
		return g, nil, &InvalidActionError{Reason: "closed kan not available for that type"}
	}
	cp, meldEvt, replacementID, drewReplacement, indicator, drewDora, ok := e.processClosedKanCall(g, seat, kanType)
	if !ok {
		return g, nil, &InvalidActionError{Reason: "closed kan formation failed"}
	}

	out := []events.Event{meldEvt}
	if drewDora {
		out = append(out, events.NewDoraRevealed(indicator))
	}
	if checkFourKans(cp) {
		cp2, result := processAbortiveDraw(cp, state.Suukaikan)
		out = append(out, events.NewRoundEnd(result))
		return cp2, out, nil
	}
	if drewReplacement {
		cp, out = e.appendReplacementDraw(cp, seat, replacementID, out)
	}
	return cp, out, nil
}

// ProcessDeclareAddedKan handles a seat's shouminkan declaration, opening a
// chankan response window first when any opponent can rob the added tile.
func ProcessDeclareAddedKan(e *Engine, g *state.GameState, seat int, kanType tiles.Type) (*state.GameState, []events.Event, error) {
	if !containsType(e.possibleAddedKans(g, seat), kanType) {
		return g, nil, &InvalidActionError{Reason: "added kan not available for that type"}
	}
	tileID, found := firstTileOfType(g.Round.Players[seat].Tiles, kanType)
	if !found {
		return g, nil, &InvalidActionError{Reason: "added kan tile not in hand"}
	}

	chankanSeats := e.isChankanPossible(g, seat, tileID)
	if len(chankanSeats) == 0 {
		cp, out, err := e.completeAddedKan(g, seat, kanType)
		return cp, out, err
	}

	var callers []state.CallerOption
	for _, s := range chankanSeats {
		callers = append(callers, state.CallerOption{Seat: s, Kinds: []state.CallKind{state.CallRon}})
	}
	prompt := &state.PendingCallPrompt{
		Type:         state.PromptChankan,
		TileID:       tileID,
		FromSeat:     seat,
		KanType:      kanType,
		Callers:      callers,
		PendingSeats: append([]int(nil), chankanSeats...),
	}
	newRound := g.Round.Clone()
	newRound.PendingPrompt = prompt
	cp := g.WithRound(newRound)
	return cp, []events.Event{events.NewCallPrompt(prompt)}, nil
}

// completeAddedKan finishes a shouminkan once every chankan-eligible seat
// has declined (or none existed to begin with).
func (e *Engine) completeAddedKan(g *state.GameState, seat int, kanType tiles.Type) (*state.GameState, []events.Event, error) {
	cp, meldEvt, replacementID, drewReplacement, ok := e.processAddedKanCall(g, seat, kanType)
	if !ok {
		return g, nil, &InvalidActionError{Reason: "added kan formation failed"}
	}
	out := []events.Event{meldEvt}
	if checkFourKans(cp) {
		cp2, result := processAbortiveDraw(cp, state.Suukaikan)
		out = append(out, events.NewRoundEnd(result))
		return cp2, out, nil
	}
	if drewReplacement {
		cp, out = e.appendReplacementDraw(cp, seat, replacementID, out)
	}
	return cp, out, nil
}

// completeOpenKan finishes a daiminkan called off an opponent's discard,
// shared by resolve.go's best-meld dispatch.
func (e *Engine) completeOpenKan(g *state.GameState, callerSeat, discarderSeat int, tileID tiles.ID) (*state.GameState, []events.Event, error) {
	cp, meldEvt, replacementID, drewReplacement, ok := e.processOpenKanCall(g, callerSeat, discarderSeat, tileID)
	if !ok {
		return g, nil, &InvalidActionError{Reason: "open kan formation failed"}
	}
	out := []events.Event{meldEvt}
	if checkFourKans(cp) {
		cp2, result := processAbortiveDraw(cp, state.Suukaikan)
		out = append(out, events.NewRoundEnd(result))
		return cp2, out, nil
	}
	if drewReplacement {
		cp, out = e.appendReplacementDraw(cp, callerSeat, replacementID, out)
	}
	return cp, out, nil
}

// appendReplacementDraw hands the rinshan tile back to seat as a fresh
// Draw event and spends its ippatsu/temporary-furiten window, exactly like
// an ordinary draw.
func (e *Engine) appendReplacementDraw(g *state.GameState, seat int, tileID tiles.ID, out []events.Event) (*state.GameState, []events.Event) {
	actions, closedKans, addedKans := e.buildAvailableActions(g, seat)
	out = append(out, events.NewDraw(seat, tileID, actions, closedKans, addedKans))

	newRound := g.Round.Clone()
	newRound.Players[seat].IsIppatsu = false
	newRound.Players[seat].IsTemporaryFuriten = false
	cp := g.WithRound(newRound)
	return cp, out
}

// ProcessKyuushuKyuuhai handles a nine-terminals declaration, ending the
// round immediately in an abortive draw.
func ProcessKyuushuKyuuhai(e *Engine, g *state.GameState, seat int) (*state.GameState, []events.Event, error) {
	if !e.canCallKyuushuKyuuhai(g, seat) {
		return g, nil, &InvalidActionError{Reason: "kyuushu kyuuhai not available"}
	}
	cp, result := processAbortiveDraw(g, state.KyuushuKyuuhai)
	return cp, []events.Event{events.NewRoundEnd(result)}, nil
}
