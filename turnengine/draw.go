// Draw-phase orchestration (§4.2): exhaustive-draw check, the live draw
// itself, and the available-actions menu (tsumo/kyuushu/closed-kan/
// added-kan/riichi). Grounded on src/game/logic/turn.py's
// process_draw_phase and get_available_actions.
package turnengine

import (
	"mahjong/events"
	"mahjong/state"
	"mahjong/tiles"
)

// ProcessDrawPhase draws the next live tile for the round's current seat,
// or ends the round if the wall is already empty.
func ProcessDrawPhase(e *Engine, g *state.GameState) (*state.GameState, []events.Event) {
	if checkExhaustiveDraw(g) {
		cp, result := e.processExhaustiveDraw(g)
		return cp, []events.Event{events.NewRoundEnd(result)}
	}

	seat := g.Round.CurrentPlayerSeat
	newRound := g.Round.Clone()
	tileID, drew := newRound.Wall.Draw()
	if !drew {
		cp := g.WithRound(newRound)
		cp2, result := e.processExhaustiveDraw(cp)
		return cp2, []events.Event{events.NewRoundEnd(result)}
	}
	newRound.Players[seat].Tiles = append(newRound.Players[seat].Tiles, tileID)
	cp := g.WithRound(newRound)

	actions, closedKans, addedKans := e.buildAvailableActions(cp, seat)
	out := []events.Event{events.NewDraw(seat, tileID, actions, closedKans, addedKans)}

	finalRound := cp.Round.Clone()
	finalRound.Players[seat].IsIppatsu = false
	finalRound.Players[seat].IsTemporaryFuriten = false
	cp = cp.WithRound(finalRound)

	return cp, out
}

// buildAvailableActions computes the full action menu for seat holding its
// current (possibly 14-tile) hand: discard is always legal once a tile is
// in hand, the rest gate on the eligibility helpers in win.go.
func (e *Engine) buildAvailableActions(g *state.GameState, seat int) ([]events.ActionKind, []tiles.Type, []tiles.Type) {
	actions := []events.ActionKind{events.ActionDiscard}

	if e.canDeclareTsumo(g, seat) {
		actions = append(actions, events.ActionTsumo)
	}
	if e.canCallKyuushuKyuuhai(g, seat) {
		actions = append(actions, events.ActionKyuushu)
	}

	closedKans := e.possibleClosedKans(g, seat)
	if len(closedKans) > 0 {
		actions = append(actions, events.ActionClosedKan)
	}
	addedKans := e.possibleAddedKans(g, seat)
	if len(addedKans) > 0 {
		actions = append(actions, events.ActionAddedKan)
	}
	if e.canDeclareRiichi(g, seat) {
		actions = append(actions, events.ActionRiichi)
	}

	return actions, closedKans, addedKans
}
