package melds

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mahjong/tiles"
)

func id(t tiles.Type, copy int) tiles.ID { return tiles.NewID(t, copy) }

// TestEncodeDecodeCompactRoundTrips is the IMME round-trip universal
// invariant: every meld kind must survive an encode/decode cycle bit for
// bit identical in every field relevant to replay/scoring.
func TestEncodeDecodeCompactRoundTrips(t *testing.T) {
	cases := []struct {
		name string
		m    Meld
	}{
		{"chi-low-end", func() Meld {
			hand := []tiles.ID{id(tiles.Man2, 0), id(tiles.Man3, 0)}
			// chi can only be called from kamicha: (callerSeat+3)%4.
			_, m, ok := FormChi(hand, id(tiles.Man1, 0), [2]tiles.ID{id(tiles.Man2, 0), id(tiles.Man3, 0)}, 3, 0)
			require.True(t, ok)
			return m
		}()},
		{"pon", func() Meld {
			hand := []tiles.ID{id(tiles.Pin5, 0), id(tiles.Pin5, 1)}
			_, m, ok := FormPon(hand, id(tiles.Pin5, 2), 2, 0)
			require.True(t, ok)
			return m
		}()},
		{"open-kan", func() Meld {
			hand := []tiles.ID{id(tiles.Sou7, 0), id(tiles.Sou7, 1), id(tiles.Sou7, 2)}
			_, m, ok := FormOpenKan(hand, id(tiles.Sou7, 3), 3, 1)
			require.True(t, ok)
			return m
		}()},
		{"closed-kan", func() Meld {
			hand := []tiles.ID{id(tiles.Haku, 0), id(tiles.Haku, 1), id(tiles.Haku, 2), id(tiles.Haku, 3)}
			_, m, ok := FormClosedKan(hand, tiles.Haku, 2)
			require.True(t, ok)
			return m
		}()},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			encoded, err := EncodeCompact(tc.m)
			require.NoError(t, err)

			decoded, err := DecodeCompact(encoded)
			require.NoError(t, err)

			assert.Equal(t, tc.m.Kind, decoded.Kind)
			assert.Equal(t, tc.m.CallerSeat, decoded.CallerSeat)
			assert.Equal(t, tc.m.FromSeat, decoded.FromSeat)
			assert.Equal(t, tc.m.CalledTileID, decoded.CalledTileID)
			assert.ElementsMatch(t, tc.m.TileIDs, decoded.TileIDs)
		})
	}
}

func TestEncodeCompactAddedKanRoundTrips(t *testing.T) {
	hand := []tiles.ID{id(tiles.Chun, 0), id(tiles.Chun, 1)}
	_, pon, ok := FormPon(hand, id(tiles.Chun, 2), 3, 0)
	require.True(t, ok)
	added, ok := FormAddedKan(pon, id(tiles.Chun, 3))
	require.True(t, ok)

	encoded, err := EncodeCompact(added)
	require.NoError(t, err)
	decoded, err := DecodeCompact(encoded)
	require.NoError(t, err)

	assert.Equal(t, AddedKan, decoded.Kind)
	assert.Equal(t, added.CallerSeat, decoded.CallerSeat)
	assert.Equal(t, added.FromSeat, decoded.FromSeat)
	assert.Equal(t, added.CalledTileID, decoded.CalledTileID)
	assert.ElementsMatch(t, added.TileIDs, decoded.TileIDs)
}

func TestEncodeCompactRejectsCallerClaimingOwnDiscard(t *testing.T) {
	m := Meld{
		Kind:         Pon,
		CallerSeat:   1,
		FromSeat:     1,
		TileIDs:      []tiles.ID{id(tiles.Man1, 0), id(tiles.Man1, 1), id(tiles.Man1, 2)},
		CalledTileID: int(id(tiles.Man1, 2)),
	}
	_, err := EncodeCompact(m)
	require.Error(t, err)
}

func TestKindHelpers(t *testing.T) {
	assert.True(t, ClosedKan.IsKan())
	assert.True(t, OpenKan.IsKan())
	assert.True(t, AddedKan.IsKan())
	assert.False(t, Chi.IsKan())
	assert.False(t, Pon.IsKan())

	assert.False(t, ClosedKan.IsOpen())
	assert.True(t, OpenKan.IsOpen())
	assert.True(t, Pon.IsOpen())
	assert.True(t, Chi.IsOpen())
}
