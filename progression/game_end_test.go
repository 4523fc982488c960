package progression

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"mahjong/config"
	"mahjong/state"
)

// newFinishedGameState builds a deterministic (seed "", test-mode) game
// state with all four seats at the default starting score, for tests that
// only care about the game-end/scoring layer, not a specific deal.
func newFinishedGameState(t *testing.T) (*state.GameState, config.Settings) {
	t.Helper()
	settings := config.Default()
	names := [4]string{"a", "b", "c", "d"}
	g := state.InitGame(names, "", settings)
	return g, settings
}

// TestCalculateFinalScoresUmaOnly is scenario S7: raw scores
// (0,30000),(1,30000),(2,20000),(3,20000) under the default uma spread
// (20,10,-10,-20) with target == starting score (no oka) must settle to
// (0,30),(1,10),(2,-10),(3,-30), summing to zero.
func TestCalculateFinalScoresUmaOnly(t *testing.T) {
	settings := config.Default()
	settings.TargetScore = settings.StartingScore

	raw := []SeatScore{
		{Seat: 0, Score: 30000},
		{Seat: 1, Score: 30000},
		{Seat: 2, Score: 20000},
		{Seat: 3, Score: 20000},
	}
	final := CalculateFinalScores(raw, settings)

	require := map[int]int{0: 30, 1: 10, 2: -10, 3: -30}
	sum := 0
	for _, fs := range final {
		assert.Equal(t, require[fs.Seat], fs.Score, "seat %d", fs.Seat)
		sum += fs.Score
	}
	assert.Equal(t, 0, sum)
}

func TestCalculateFinalScoresZeroSumWithOka(t *testing.T) {
	settings := config.Default()
	settings.TargetScore = 30000 // starting 25000, so oka = (30000-25000)*4/1000 = 20

	raw := []SeatScore{
		{Seat: 0, Score: 40000},
		{Seat: 1, Score: 25000},
		{Seat: 2, Score: 20000},
		{Seat: 3, Score: 15000},
	}
	final := CalculateFinalScores(raw, settings)

	sum := 0
	for _, fs := range final {
		sum += fs.Score
	}
	assert.Equal(t, 0, sum, "final scores must always balance to zero regardless of oka/rounding")
}

func TestGoshashonyuRoundingBothSigns(t *testing.T) {
	assert.Equal(t, 5, goshashonyuRound(5499, 500))
	assert.Equal(t, 6, goshashonyuRound(5501, 500))
	assert.Equal(t, -5, goshashonyuRound(-5499, 500))
	assert.Equal(t, -6, goshashonyuRound(-5501, 500))
}

func TestCheckGameEndTobiEndsGameImmediately(t *testing.T) {
	g, settings := newFinishedGameState(t)
	settings.TobiEnabled = true
	settings.TobiThreshold = 0
	g.Settings = settings
	g.Round.Players[2].Score = -100

	assert.True(t, CheckGameEnd(g))
}

func TestCheckGameEndFalseMidHanchan(t *testing.T) {
	g, settings := newFinishedGameState(t)
	settings.TobiEnabled = false
	g.Settings = settings
	g.UniqueDealers = 1

	assert.False(t, CheckGameEnd(g))
}
