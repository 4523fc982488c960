// Package progression advances a GameState across round boundaries:
// honba/dealer-rotation bookkeeping, round-wind advancement, and final
// uma/oka settlement. Grounded on backend/game/logic/game.py's
// _get_honba_and_rotation/_get_wind_for_unique_dealers/process_round_end/
// check_game_end/finalize_game/calculate_final_scores.
package progression

import (
	"mahjong/config"
	"mahjong/state"
)

// honbaAndRotation mirrors _get_honba_and_rotation: it returns the next
// honba count and whether the dealer seat should rotate.
func honbaAndRotation(g *state.GameState, result state.RoundResult) (int, bool) {
	dealerSeat := g.Round.DealerSeat
	honba := g.HonbaSticks
	settings := g.Settings

	switch result.Type {
	case state.AbortiveDraw:
		if settings.RenchanOnAbortiveDraw {
			return honba + 1, false
		}
		return 0, true

	case state.ExhaustiveDraw:
		if settings.RenchanOnDealerTenpaiDraw {
			return honba + 1, !result.IsTenpaiSeat(dealerSeat)
		}
		return honba + 1, true

	case state.NagashiMangan:
		// Nagashi mangan follows exhaustive-draw rotation rules: honba
		// always increments, rotation follows dealer tenpai status.
		if settings.RenchanOnDealerTenpaiDraw {
			return honba + 1, !result.IsTenpaiSeat(dealerSeat)
		}
		return honba + 1, true

	case state.Tsumo, state.Ron, state.DoubleRon:
		if result.IsWinnerSeat(dealerSeat) {
			if settings.RenchanOnDealerWin {
				return honba + 1, false
			}
			return 0, true
		}
		return 0, true
	}

	panic("progression: unexpected round result type")
}

// windForUniqueDealers mirrors _get_wind_for_unique_dealers.
func windForUniqueDealers(uniqueDealers int, settings config.Settings) state.RoundWind {
	eastMax, southMax, _ := config.WindThresholds(settings)
	switch {
	case uniqueDealers <= eastMax:
		return state.East
	case uniqueDealers <= southMax:
		return state.South
	default:
		return state.West
	}
}

// ProcessRoundEnd advances dealer seat, unique-dealer count, round wind,
// honba sticks, and round number according to how the round resolved.
func ProcessRoundEnd(g *state.GameState, result state.RoundResult) *state.GameState {
	round := g.Round
	newHonba, shouldRotate := honbaAndRotation(g, result)

	newDealerSeat := round.DealerSeat
	newUniqueDealers := g.UniqueDealers
	newRoundWind := round.RoundWind

	if shouldRotate {
		newDealerSeat = (round.DealerSeat + 1) % 4
		newUniqueDealers++
		newRoundWind = windForUniqueDealers(newUniqueDealers, g.Settings)
	}

	newRound := round.Clone()
	newRound.DealerSeat = newDealerSeat
	newRound.RoundWind = newRoundWind

	cp := g.WithRound(newRound)
	cp.RoundNumber = g.RoundNumber + 1
	cp.UniqueDealers = newUniqueDealers
	cp.HonbaSticks = newHonba
	return cp
}
