package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"mahjong/config"
	"mahjong/evaluator"
	"mahjong/state"
)

func newTestState(t *testing.T) *state.GameState {
	t.Helper()
	names := [4]string{"a", "b", "c", "d"}
	return state.InitGame(names, "", config.Default())
}

func sum(c Changes) int {
	total := 0
	for _, v := range c {
		total += v
	}
	return total
}

// TestApplyTsumoScoreConservesPoints is the score-conservation universal
// invariant: a tsumo payment only ever transfers points between seats, it
// never creates or destroys any (riichi sticks notwithstanding — the
// winner collecting the table's sticks is scored separately below).
func TestApplyTsumoScoreConservesPoints(t *testing.T) {
	g := newTestState(t)
	result := evaluator.Result{Han: 3, Fu: 30, CostMain: 2000, CostAdditional: 1000}

	_, changes := ApplyTsumoScore(g, 1, result)
	assert.Equal(t, 0, sum(changes), "tsumo payments must net to zero across the table")
	assert.Negative(t, changes[0])
	assert.Negative(t, changes[2])
	assert.Negative(t, changes[3])
	assert.Positive(t, changes[1])
}

func TestApplyTsumoScoreDealerWinChargesEverySeatCostMain(t *testing.T) {
	g := newTestState(t) // dealer is seat 0 in test mode
	result := evaluator.Result{CostMain: 2000}

	_, changes := ApplyTsumoScore(g, 0, result)
	assert.Equal(t, -2000, changes[1])
	assert.Equal(t, -2000, changes[2])
	assert.Equal(t, -2000, changes[3])
	assert.Equal(t, 6000, changes[0])
}

func TestApplyTsumoScoreCollectsRiichiSticks(t *testing.T) {
	g := newTestState(t)
	g.RiichiSticks = 2
	result := evaluator.Result{CostMain: 1000, CostAdditional: 500}

	_, changes := ApplyTsumoScore(g, 1, result)
	// The two sticks (1000 each) aren't paid by any other seat, so the
	// table no longer nets to zero by the sticks' value — they were
	// already removed from seats' scores when riichi was declared.
	assert.Equal(t, 2*g.Settings.RiichiStickValue, sum(changes))
}

func TestApplyRonScoreConservesPoints(t *testing.T) {
	g := newTestState(t)
	result := evaluator.Result{Han: 4, Fu: 40, CostMain: 8000}

	_, changes := ApplyRonScore(g, 2, 0, result)
	assert.Equal(t, 0, sum(changes))
	assert.Equal(t, -8000, changes[0])
	assert.Equal(t, 8000, changes[2])
}

// TestApplyRonScoreSplitsPaoHalf covers the pao-attribution invariant: a
// winner whose win is liable to a pao seat (other than the discarder)
// splits the total 50/50 between discarder and pao seat.
func TestApplyRonScoreSplitsPaoHalf(t *testing.T) {
	g := newTestState(t)
	round := g.Round.Clone()
	round.Players[2].PaoSeat = 3
	g = g.WithRound(round)

	result := evaluator.Result{CostMain: 8000}
	_, changes := ApplyRonScore(g, 2, 0, result)

	assert.Equal(t, 0, sum(changes))
	assert.Equal(t, -4000, changes[0])
	assert.Equal(t, -4000, changes[3])
	assert.Equal(t, 8000, changes[2])
}

func TestApplyDoubleRonScoreEachWinnerConservesAgainstLoser(t *testing.T) {
	g := newTestState(t)
	winners := []DoubleRonWinner{
		{Seat: 1, Result: evaluator.Result{CostMain: 2000}},
		{Seat: 2, Result: evaluator.Result{CostMain: 3900}},
	}
	_, changes, _ := ApplyDoubleRonScore(g, winners, 0)
	assert.Equal(t, 0, sum(changes))
	assert.Equal(t, 2000, changes[1])
	assert.Equal(t, 3900, changes[2])
	assert.Equal(t, -5900, changes[0])
}

func TestApplyNotenPaymentsConservesAcrossTenpaiAndNoten(t *testing.T) {
	g := newTestState(t)
	_, changes := ApplyNotenPayments(g, []int{0, 1})
	assert.Equal(t, 0, sum(changes))
	assert.Positive(t, changes[0])
	assert.Positive(t, changes[1])
	assert.Negative(t, changes[2])
	assert.Negative(t, changes[3])
}
