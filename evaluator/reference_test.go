package evaluator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mahjong/melds"
	"mahjong/tiles"
)

func tid(t tiles.Type, copy int) tiles.ID { return tiles.NewID(t, copy) }

func hasYaku(result Result, name string) bool {
	for _, y := range result.Yaku {
		if y.Name == name {
			return true
		}
	}
	return false
}

// TestReferenceEvaluateTanyaoRon is a closed, all-simple-tiles ron: four
// sequences (234m 456p 678s 234s) plus a simple pair (66m), winning on the
// 4s end of the 234s run (a two-sided wait). No riichi, no tsumo: the yaku
// in play are tanyao and pinfu.
func TestReferenceEvaluateTanyaoRon(t *testing.T) {
	closed := []tiles.ID{
		tid(tiles.Man2, 0), tid(tiles.Man3, 0), tid(tiles.Man4, 0),
		tid(tiles.Man6, 0), tid(tiles.Man6, 1),
		tid(tiles.Pin4, 0), tid(tiles.Pin5, 0), tid(tiles.Pin6, 0),
		tid(tiles.Sou6, 0), tid(tiles.Sou7, 0), tid(tiles.Sou8, 0),
		tid(tiles.Sou2, 0), tid(tiles.Sou3, 0), tid(tiles.Sou4, 0),
	}
	winTile := tid(tiles.Sou4, 0)

	cfg := HandConfig{
		PlayerWind: tiles.South,
		RoundWind:  tiles.East,
		Rules:      Rules{},
	}

	result, err := Reference{}.Evaluate(closed, winTile, nil, nil, nil, cfg)
	require.NoError(t, err)
	assert.True(t, hasYaku(result, "tanyao"))
	assert.GreaterOrEqual(t, result.Han, 1)
	assert.Positive(t, result.CostMain)
}

// TestReferenceEvaluateOpenHonorPonHasNoYaku is an open hand whose only
// meld is a non-yakuhai honor pon (West, with neither seat nor round wind
// set to West): tanyao is blocked by the honor tiles and no other yaku
// condition holds, so evaluation must report NoYakuError rather than
// silently scoring a yakuless win.
func TestReferenceEvaluateOpenHonorPonHasNoYaku(t *testing.T) {
	ms := []melds.Meld{{
		Kind:         melds.Pon,
		CallerSeat:   1,
		FromSeat:     0,
		TileIDs:      []tiles.ID{tid(tiles.West, 0), tid(tiles.West, 1), tid(tiles.West, 2)},
		CalledTileID: int(tid(tiles.West, 2)),
	}}
	closed := []tiles.ID{
		tid(tiles.Man2, 0), tid(tiles.Man3, 0), tid(tiles.Man4, 0),
		tid(tiles.Pin4, 0), tid(tiles.Pin5, 0), tid(tiles.Pin6, 0),
		tid(tiles.Sou6, 0), tid(tiles.Sou7, 0), tid(tiles.Sou8, 0),
		tid(tiles.Sou9, 0), tid(tiles.Sou9, 1),
	}
	winTile := tid(tiles.Sou9, 1)

	cfg := HandConfig{
		PlayerWind: tiles.South,
		RoundWind:  tiles.East,
		Rules:      Rules{},
	}

	_, err := Reference{}.Evaluate(closed, winTile, ms, nil, nil, cfg)
	require.Error(t, err)
	var noYaku NoYakuError
	assert.ErrorAs(t, err, &noYaku)
}

// TestReferenceEvaluateChiitoitsuTanyao is seven distinct simple pairs:
// chiitoitsu (2 han) plus tanyao (1 han), no other yaku applicable since
// the pairs span three suits.
func TestReferenceEvaluateChiitoitsuTanyao(t *testing.T) {
	closed := []tiles.ID{
		tid(tiles.Man2, 0), tid(tiles.Man2, 1),
		tid(tiles.Man4, 0), tid(tiles.Man4, 1),
		tid(tiles.Man6, 0), tid(tiles.Man6, 1),
		tid(tiles.Pin3, 0), tid(tiles.Pin3, 1),
		tid(tiles.Pin5, 0), tid(tiles.Pin5, 1),
		tid(tiles.Sou7, 0), tid(tiles.Sou7, 1),
		tid(tiles.Sou8, 0), tid(tiles.Sou8, 1),
	}
	winTile := tid(tiles.Sou8, 1)

	cfg := HandConfig{
		PlayerWind: tiles.South,
		RoundWind:  tiles.East,
		Rules:      Rules{},
	}

	result, err := Reference{}.Evaluate(closed, winTile, nil, nil, nil, cfg)
	require.NoError(t, err)
	assert.True(t, hasYaku(result, "chiitoitsu"))
	assert.True(t, hasYaku(result, "tanyao"))
	assert.Equal(t, ChiitoitsuFu, result.Fu)
	assert.GreaterOrEqual(t, result.Han, 3)
}
