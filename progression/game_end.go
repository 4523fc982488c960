package progression

import (
	"sort"

	"gonum.org/v1/gonum/floats"

	"mahjong/config"
	"mahjong/state"
)

// goshashonyuRound implements 五捨六入 rounding: a raw score (already
// relative to the target) divides by 1000, rounding a remainder at or
// below the threshold toward zero and a remainder above it away from
// zero. Negative scores mirror the positive case around zero rather than
// simply flooring.
func goshashonyuRound(score, threshold int) int {
	quotient := score / 1000
	remainder := score % 1000
	if remainder < 0 {
		remainder = -remainder
	}

	if score >= 0 {
		if remainder > threshold {
			return quotient + 1
		}
		return quotient
	}

	if remainder > threshold {
		return quotient - 1 // round away from zero (more negative)
	}
	return quotient
}

// SeatScore pairs a seat with a raw point total, used both as
// CalculateFinalScores' input (placement order) and its output.
type SeatScore struct {
	Seat  int
	Score int
}

// CalculateFinalScores converts raw end-of-game scores (sorted by
// placement, 1st to 4th) into uma/oka-adjusted final scores in the same
// order: subtract the target score, goshashonyu-round to points, add oka
// to 1st place, apply the uma spread, then force 1st place to absorb any
// rounding remainder so the table sums to zero.
func CalculateFinalScores(rawScores []SeatScore, settings config.Settings) []SeatScore {
	okaTotal := ((settings.TargetScore - settings.StartingScore) * 4) / 1000

	adjusted := make([]SeatScore, len(rawScores))
	for i, rs := range rawScores {
		diff := rs.Score - settings.TargetScore
		points := goshashonyuRound(diff, settings.GoshashonyuThreshold)
		if i == 0 {
			points += okaTotal
		}
		points += settings.Uma[i]
		adjusted[i] = SeatScore{Seat: rs.Seat, Score: points}
	}

	// Zero-sum correction: 1st place absorbs whatever goshashonyu rounding
	// and the uma/oka additions left over. floats.Sum totals the adjusted
	// table for this balance check.
	points := make([]float64, len(adjusted))
	for i, a := range adjusted {
		points[i] = float64(a.Score)
	}
	total := int(floats.Sum(points))
	if total != 0 {
		adjusted[0].Score -= total
	}
	return adjusted
}

// CheckGameEnd reports whether the game should end: a tobi (bankruptcy)
// for any seat when enabled, the primary wind's completion (with
// enchousen/has-winner gating sudden death), or the sudden-death wind
// limit being reached.
func CheckGameEnd(g *state.GameState) bool {
	settings := g.Settings
	round := g.Round

	if settings.TobiEnabled {
		for _, p := range round.Players {
			if p.Score < settings.TobiThreshold {
				return true
			}
		}
	}

	eastMax, southMax, westMax := config.WindThresholds(settings)
	hasWinner := false
	for _, p := range round.Players {
		if p.Score >= settings.WinningScoreThreshold {
			hasWinner = true
			break
		}
	}

	var primaryComplete bool
	var suddenDeathLimit int
	if settings.GameType == config.Tonpusen {
		primaryComplete = g.UniqueDealers > eastMax
		suddenDeathLimit = southMax
	} else {
		primaryComplete = g.UniqueDealers > southMax
		suddenDeathLimit = westMax
	}

	if primaryComplete {
		if settings.Enchousen == config.EnchousenNone {
			return true
		}
		if hasWinner {
			return true
		}
	}

	return g.UniqueDealers > suddenDeathLimit
}

// PlayerStanding is one seat's final-ranking row: raw score plus its
// uma/oka-adjusted final score.
type PlayerStanding struct {
	Seat       int
	Score      int
	FinalScore int
}

// GameEndResult is the outcome FinalizeGame produces.
type GameEndResult struct {
	WinnerSeat int
	Standings  []PlayerStanding
}

// tieBreakKey orders seats by descending score, ties broken by proximity
// to the starting dealer in counter-clockwise seating order (起家 stays
// ranked above seats further around the table on an exact tie).
func tieBreakKey(score, seat, startingDealer int) (int, int) {
	return -score, ((seat - startingDealer) % 4 + 4) % 4
}

// FinalizeGame determines the winner (highest score, ties broken by
// proximity to the starting dealer), folds any leftover riichi sticks
// into the winner's score (or discards them) per LeftoverRiichiBets, and
// returns the uma/oka-adjusted final standings.
func FinalizeGame(g *state.GameState) (*state.GameState, GameEndResult) {
	round := g.Round
	startingDealer := g.StartingDealerSeat
	settings := g.Settings

	seats := make([]int, 4)
	for i := range seats {
		seats[i] = i
	}
	sort.Slice(seats, func(i, j int) bool {
		ai, aj := seats[i], seats[j]
		k1a, k1b := tieBreakKey(round.Players[ai].Score, ai, startingDealer)
		k2a, k2b := tieBreakKey(round.Players[aj].Score, aj, startingDealer)
		if k1a != k2a {
			return k1a < k2a
		}
		return k1b < k2b
	})
	winnerSeat := seats[0]

	newRound := round.Clone()
	newRiichiSticks := g.RiichiSticks
	if newRiichiSticks > 0 {
		if settings.LeftoverRiichiBets == config.LeftoverToWinner {
			bonus := newRiichiSticks * settings.RiichiStickValue
			newRound.Players[winnerSeat].Score += bonus
		}
		newRiichiSticks = 0
	}

	rawScores := make([]SeatScore, 4)
	for i, seat := range seats {
		rawScores[i] = SeatScore{Seat: seat, Score: newRound.Players[seat].Score}
	}
	finalScores := CalculateFinalScores(rawScores, settings)
	finalBySeat := make(map[int]int, 4)
	for _, fs := range finalScores {
		finalBySeat[fs.Seat] = fs.Score
	}

	standings := make([]PlayerStanding, 4)
	for i, seat := range seats {
		standings[i] = PlayerStanding{
			Seat:       seat,
			Score:      newRound.Players[seat].Score,
			FinalScore: finalBySeat[seat],
		}
	}

	cp := g.WithRound(newRound)
	cp.RiichiSticks = newRiichiSticks
	cp.Phase = state.GameFinished

	return cp, GameEndResult{WinnerSeat: winnerSeat, Standings: standings}
}
