package turnengine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mahjong/melds"
	"mahjong/tiles"
)

// TestProcessPonCallAssignsPaoToDiscarder exercises the daisangen pao
// liability through the real call path: seat 1 already holds open pons on
// two dragon types, then pons the third dragon off seat 2's discard. The
// completing call's pao must fall on the discarder (seat 2), not on the
// caller who formed the meld.
func TestProcessPonCallAssignsPaoToDiscarder(t *testing.T) {
	g := newBaseGame(t)
	round := g.Round.Clone()

	callerSeat, discarderSeat := 1, 2
	round.Players[callerSeat].Melds = []melds.Meld{
		{
			Kind:         melds.Pon,
			CallerSeat:   callerSeat,
			FromSeat:     0,
			TileIDs:      []tiles.ID{id(tiles.Haku, 0), id(tiles.Haku, 1), id(tiles.Haku, 2)},
			CalledTileID: int(id(tiles.Haku, 2)),
		},
		{
			Kind:         melds.Pon,
			CallerSeat:   callerSeat,
			FromSeat:     0,
			TileIDs:      []tiles.ID{id(tiles.Hatsu, 0), id(tiles.Hatsu, 1), id(tiles.Hatsu, 2)},
			CalledTileID: int(id(tiles.Hatsu, 2)),
		},
	}
	round.Players[callerSeat].Tiles = []tiles.ID{id(tiles.Chun, 0), id(tiles.Chun, 1)}
	g = g.WithRound(round)

	cp, _, ok := processPonCall(g, callerSeat, discarderSeat, id(tiles.Chun, 2))
	require.True(t, ok)
	assert.Equal(t, discarderSeat, cp.Round.Players[callerSeat].PaoSeat,
		"daisangen pao must fall on the discarder who fed the completing tile, not the caller")
}

// TestProcessOpenKanCallAssignsPaoToDiscarder mirrors the above for
// daisuushii: seat 1 already holds open pons on three wind types, then
// daiminkans the fourth off seat 3's discard.
func TestProcessOpenKanCallAssignsPaoToDiscarder(t *testing.T) {
	e := newTestEngine()
	g := newBaseGame(t)
	round := g.Round.Clone()

	callerSeat, discarderSeat := 1, 3
	round.Players[callerSeat].Melds = []melds.Meld{
		{
			Kind:         melds.Pon,
			CallerSeat:   callerSeat,
			FromSeat:     0,
			TileIDs:      []tiles.ID{id(tiles.East, 0), id(tiles.East, 1), id(tiles.East, 2)},
			CalledTileID: int(id(tiles.East, 2)),
		},
		{
			Kind:         melds.Pon,
			CallerSeat:   callerSeat,
			FromSeat:     0,
			TileIDs:      []tiles.ID{id(tiles.South, 0), id(tiles.South, 1), id(tiles.South, 2)},
			CalledTileID: int(id(tiles.South, 2)),
		},
		{
			Kind:         melds.Pon,
			CallerSeat:   callerSeat,
			FromSeat:     0,
			TileIDs:      []tiles.ID{id(tiles.West, 0), id(tiles.West, 1), id(tiles.West, 2)},
			CalledTileID: int(id(tiles.West, 2)),
		},
	}
	round.Players[callerSeat].Tiles = []tiles.ID{id(tiles.North, 0), id(tiles.North, 1), id(tiles.North, 2)}
	g = g.WithRound(round)

	cp, _, _, _, ok := e.processOpenKanCall(g, callerSeat, discarderSeat, id(tiles.North, 3))
	require.True(t, ok)
	assert.Equal(t, discarderSeat, cp.Round.Players[callerSeat].PaoSeat,
		"daisuushii pao must fall on the discarder who fed the completing kan tile, not the caller")
}
