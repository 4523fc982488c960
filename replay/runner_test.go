package replay

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mahjong/config"
	"mahjong/evaluator"
	"mahjong/rng"
	"mahjong/service"
	"mahjong/state"
	"mahjong/tiles"
)

func intToTileID(v int) tiles.ID { return tiles.ID(v) }

// dealtDrawTile starts a throwaway game under seed to discover what the
// dealer's opening draw will be, so a test can build a replay stream that
// discards a tile the deterministic deal will actually hold.
func dealtDrawTile(t *testing.T, seed string, names [4]string) (dealer int, tileID int) {
	t.Helper()
	svc := service.New(evaluator.Reference{}, nil, 0)
	defer svc.Stop()
	gameID, _, err := svc.StartGameWithSeed(names, seed, config.Default())
	require.NoError(t, err)
	g, err := svc.GetGameState(gameID)
	require.NoError(t, err)
	dealer = g.Round.DealerSeat
	hand := g.Round.Players[dealer].Tiles
	return dealer, int(hand[len(hand)-1])
}

func TestRunReplaysADiscard(t *testing.T) {
	seed := rng.GenerateSeed()
	names := [4]string{"alice", "bob", "carol", "dave"}
	dealer, tileID := dealtDrawTile(t, seed, names)

	var buf bytes.Buffer
	rec := NewRecorder(&buf)
	rec.Start(seed, state.RNGVersion, names)
	rec.RecordDiscard(dealer, intToTileID(tileID), true, false)
	require.NoError(t, rec.Err())

	input, err := Load(&buf)
	require.NoError(t, err)

	result, err := Run(input, evaluator.Reference{}, RunnerOptions{})
	require.NoError(t, err)
	assert.Equal(t, 1, result.StepsPlayed)
	discards := result.FinalState.Round.Players[dealer].Discards
	require.NotEmpty(t, discards)
	assert.EqualValues(t, tileID, discards[len(discards)-1].TileID)
}

func TestRunStrictModeFailsOnRejectedAction(t *testing.T) {
	seed := rng.GenerateSeed()
	names := [4]string{"alice", "bob", "carol", "dave"}
	dealer, tileID := dealtDrawTile(t, seed, names)
	_ = tileID

	var buf bytes.Buffer
	rec := NewRecorder(&buf)
	rec.Start(seed, state.RNGVersion, names)
	// A seat that isn't the dealer is not on turn yet, so the engine rejects
	// its discard.
	other := (dealer + 1) % 4
	rec.RecordDiscard(other, 0, false, false)

	input, err := Load(&buf)
	require.NoError(t, err)

	_, err = Run(input, evaluator.Reference{}, RunnerOptions{Strict: true})
	require.Error(t, err)
}

func TestRunRespectsMaxSteps(t *testing.T) {
	seed := rng.GenerateSeed()
	names := [4]string{"alice", "bob", "carol", "dave"}
	dealer, tileID := dealtDrawTile(t, seed, names)

	var buf bytes.Buffer
	rec := NewRecorder(&buf)
	rec.Start(seed, state.RNGVersion, names)
	rec.RecordDiscard(dealer, intToTileID(tileID), true, false)

	input, err := Load(&buf)
	require.NoError(t, err)

	_, err = Run(input, evaluator.Reference{}, RunnerOptions{MaxSteps: -1})
	// MaxSteps <= 0 falls back to len(input.Events), so this should still
	// succeed; this test documents that zero/negative isn't a hard failure.
	require.NoError(t, err)
}
