// Package scoring applies an evaluator.Result (or a nagashi mangan
// qualification) to a GameState's scores: honba/riichi-stick collection,
// pao liability splits, and the dealer/non-dealer tsumo/ron payment
// tables. Grounded line-for-formula on backend/game/logic/scoring.py's
// apply_tsumo_score/apply_ron_score/apply_double_ron_score/
// apply_nagashi_mangan_score.
package scoring

import (
	"mahjong/evaluator"
	"mahjong/state"
)

// Changes is the per-seat score delta an apply function produced, for the
// caller to fold into a ScoreChanged-style event.
type Changes [4]int

// tsumoPaymentForSeat mirrors _tsumo_payment_for_seat: the dealer (or
// every seat, when the dealer is the winner) owes cost_main; the other
// two non-dealer losers owe cost_additional.
func tsumoPaymentForSeat(seat, dealerSeat int, isDealerWin bool, result evaluator.Result, honbaBonusPerLoser int) int {
	if isDealerWin || seat == dealerSeat {
		return result.CostMain + honbaBonusPerLoser
	}
	return result.CostAdditional + honbaBonusPerLoser
}

// ApplyTsumoScore settles a self-drawn win: every other seat pays its
// tsumo share (or, under pao, the liable seat alone pays the full total),
// then the winner collects the table's riichi sticks.
func ApplyTsumoScore(g *state.GameState, winnerSeat int, result evaluator.Result) (*state.GameState, Changes) {
	round := g.Round
	settings := g.Settings
	winner := round.Players[winnerSeat]
	isDealerWin := winnerSeat == round.DealerSeat
	honbaBonusPerLoser := g.HonbaSticks * settings.HonbaTsumoBonusPerLoser

	var changes Changes

	if winner.PaoSeat != state.NoPaoSeat {
		total := 0
		for s := 0; s < 4; s++ {
			if s == winnerSeat {
				continue
			}
			total += tsumoPaymentForSeat(s, round.DealerSeat, isDealerWin, result, honbaBonusPerLoser)
		}
		changes[winner.PaoSeat] -= total
		changes[winnerSeat] += total
	} else {
		total := 0
		for s := 0; s < 4; s++ {
			if s == winnerSeat {
				continue
			}
			payment := tsumoPaymentForSeat(s, round.DealerSeat, isDealerWin, result, honbaBonusPerLoser)
			changes[s] -= payment
			total += payment
		}
		changes[winnerSeat] += total
	}

	riichiBonus := g.RiichiSticks * settings.RiichiStickValue
	changes[winnerSeat] += riichiBonus

	return applyChanges(g, changes, true), changes
}

// ApplyRonScore settles a discard-claimed win: the discarder pays the
// hand's cost (split 50/50 with a pao player when one is assigned and
// isn't the discarder themselves), and the winner collects the table's
// riichi sticks.
func ApplyRonScore(g *state.GameState, winnerSeat, loserSeat int, result evaluator.Result) (*state.GameState, Changes) {
	round := g.Round
	settings := g.Settings
	winner := round.Players[winnerSeat]

	honbaBonus := g.HonbaSticks * settings.HonbaRonBonus
	total := result.CostMain + honbaBonus
	riichiBonus := g.RiichiSticks * settings.RiichiStickValue

	var changes Changes
	if winner.PaoSeat != state.NoPaoSeat && winner.PaoSeat != loserSeat {
		half := total / 2
		paoHalf := total - half
		changes[loserSeat] -= half
		changes[winner.PaoSeat] -= paoHalf
	} else {
		changes[loserSeat] -= total
	}
	changes[winnerSeat] += total + riichiBonus

	return applyChanges(g, changes, true), changes
}

// DoubleRonWinner is one seat's independently scored hand in a double-ron.
type DoubleRonWinner struct {
	Seat   int
	Result evaluator.Result
}

// ApplyDoubleRonScore settles a simultaneous two-winner ron: the loser
// pays each winner separately (with independent pao splits), and the
// table's riichi sticks go to whichever winner sits closest to the
// loser's right (the first winner encountered going counter-clockwise
// from the discarder).
func ApplyDoubleRonScore(g *state.GameState, winners []DoubleRonWinner, loserSeat int) (*state.GameState, Changes, int) {
	round := g.Round
	settings := g.Settings

	honbaBonus := g.HonbaSticks * settings.HonbaRonBonus
	riichiBonus := g.RiichiSticks * settings.RiichiStickValue

	winnerSeats := map[int]bool{}
	for _, w := range winners {
		winnerSeats[w.Seat] = true
	}
	riichiReceiver := -1
	for offset := 1; offset <= 3; offset++ {
		check := (loserSeat + offset) % 4
		if winnerSeats[check] {
			riichiReceiver = check
			break
		}
	}

	var changes Changes
	for _, w := range winners {
		winner := round.Players[w.Seat]
		payment := w.Result.CostMain + honbaBonus

		if winner.PaoSeat != state.NoPaoSeat && winner.PaoSeat != loserSeat {
			half := payment / 2
			paoHalf := payment - half
			changes[loserSeat] -= half
			changes[winner.PaoSeat] -= paoHalf
		} else {
			changes[loserSeat] -= payment
		}

		winnerTotal := payment
		if w.Seat == riichiReceiver {
			winnerTotal += riichiBonus
		}
		changes[w.Seat] += winnerTotal
	}

	return applyChanges(g, changes, true), changes, riichiReceiver
}

// ApplyNagashiManganScore settles every qualifying seat's mangan-scale
// tsumo payment. Riichi sticks are NOT cleared: nagashi mangan is not a
// yaku win, so the deposited sticks carry forward exactly as an
// exhaustive draw would leave them.
func ApplyNagashiManganScore(g *state.GameState, qualifyingSeats []int) (*state.GameState, Changes) {
	round := g.Round
	settings := g.Settings

	var changes Changes
	for _, winnerSeat := range qualifyingSeats {
		isDealer := winnerSeat == round.DealerSeat
		for seat := 0; seat < 4; seat++ {
			if seat == winnerSeat {
				continue
			}
			payment := settings.NagashiManganNonDealerPayment
			if isDealer || seat == round.DealerSeat {
				payment = settings.NagashiManganDealerPayment
			}
			changes[seat] -= payment
			changes[winnerSeat] += payment
		}
	}

	return applyChanges(g, changes, false), changes
}

// ApplyNotenPayments settles an exhaustive draw's tempai/noten split: with
// both tempai and noten seats present, each noten seat pays
// notenPenaltyTotal/n and each tempai seat receives notenPenaltyTotal/t
// (integer division — the two totals need not match exactly, mirroring
// the reference implementation's floor-and-drop-the-remainder behavior).
// Riichi sticks are left untouched; no one won, so they carry to the next
// hand.
func ApplyNotenPayments(g *state.GameState, tenpaiSeats []int) (*state.GameState, Changes) {
	settings := g.Settings
	tenpai := map[int]bool{}
	for _, s := range tenpaiSeats {
		tenpai[s] = true
	}
	t := len(tenpaiSeats)
	n := 4 - t

	var changes Changes
	if t == 0 || n == 0 {
		return applyChanges(g, changes, false), changes
	}

	total := settings.NotenPenaltyTotal
	perNoten := total / n
	perTempai := total / t
	for seat := 0; seat < 4; seat++ {
		if tenpai[seat] {
			changes[seat] += perTempai
		} else {
			changes[seat] -= perNoten
		}
	}
	return applyChanges(g, changes, false), changes
}

// applyChanges folds a per-seat delta into a fresh GameState, optionally
// clearing the riichi-stick pot (every win does; nagashi mangan doesn't).
func applyChanges(g *state.GameState, changes Changes, clearRiichi bool) *state.GameState {
	cp := g.Clone()
	for seat, delta := range changes {
		cp.Round.Players[seat].Score += delta
	}
	if clearRiichi {
		cp.RiichiSticks = 0
	}
	return cp
}
