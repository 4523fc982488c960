// Tsumo declaration (§4.2, §4.9). Grounded on turn.py's process_tsumo_call.
package turnengine

import (
	"mahjong/events"
	"mahjong/scoring"
	"mahjong/state"
)

// ProcessDeclareTsumo settles a self-drawn win off the seat's current hand.
func ProcessDeclareTsumo(e *Engine, g *state.GameState, seat int) (*state.GameState, []events.Event, error) {
	if !e.canDeclareTsumo(g, seat) {
		return g, nil, &InvalidActionError{Reason: "tsumo not available"}
	}
	round := g.Round
	player := round.Players[seat]
	winTile := player.Tiles[len(player.Tiles)-1]

	ctx := winContext{
		IsTsumo:   true,
		IsRinshan: player.IsRinshan,
		IsHaitei:  round.Wall.Remaining() == 0,
		IsTenhou:  round.DealerSeat == seat && isFirstUninterruptedDraw(round, seat),
		IsChiihou: round.DealerSeat != seat && isFirstUninterruptedDraw(round, seat),
	}
	result, err := e.evaluateWin(g, seat, player.Tiles, winTile, ctx)
	if err != nil {
		return g, nil, &InvalidActionError{Reason: "hand does not qualify for tsumo"}
	}

	cp, _ := scoring.ApplyTsumoScore(g, seat, result)
	newRound := cp.Round.Clone()
	newRound.Phase = state.Finished
	cp = cp.WithRound(newRound)

	rr := state.RoundResult{Type: state.Tsumo, WinnerSeat: seat}
	return cp, []events.Event{events.NewRoundEnd(rr)}, nil
}
