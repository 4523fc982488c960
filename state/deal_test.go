package state_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mahjong/cache"
	"mahjong/config"
	"mahjong/evaluator"
	"mahjong/state"
	"mahjong/turnengine"
)

// TestInitGameDealsThirteenToEverySeat is scenario S1: seed "ab"*96,
// players ["A","B","C","D"], dealer seat 0. Every seat must hold exactly 13
// tiles straight out of the deal; the dealer's 14th tile only appears after
// the first draw phase, at which point the live wall holds
// 136 - 52 - 1 - 14 = 69 tiles.
func TestInitGameDealsThirteenToEverySeat(t *testing.T) {
	seed := strings.Repeat("ab", 96)
	names := [4]string{"A", "B", "C", "D"}
	g := state.InitGame(names, seed, config.Default())

	require.Equal(t, 0, g.Round.DealerSeat, "scenario S1 fixes the dealer at seat 0 for this seed")
	for seat := 0; seat < 4; seat++ {
		assert.Len(t, g.Round.Players[seat].Tiles, 13, "seat %d must hold exactly 13 tiles after the deal", seat)
	}

	shantenCache, err := cache.NewShantenCache()
	require.NoError(t, err)
	e := turnengine.New(evaluator.Reference{}, shantenCache)

	cp, evs := turnengine.ProcessDrawPhase(e, g)
	require.NotEmpty(t, evs)

	dealerSeat := cp.Round.DealerSeat
	assert.Len(t, cp.Round.Players[dealerSeat].Tiles, 14, "dealer holds 14 tiles after the first draw")
	assert.Equal(t, 69, cp.Round.Wall.Remaining(), "live wall holds 136-52-1-14=69 tiles after the dealer's first draw")
}

func TestInitGameConservesEveryNonDeadWallTile(t *testing.T) {
	seed := strings.Repeat("ab", 96)
	names := [4]string{"A", "B", "C", "D"}
	g := state.InitGame(names, seed, config.Default())

	seen := make(map[int]bool, 136)
	for seat := 0; seat < 4; seat++ {
		for _, id := range g.Round.Players[seat].Tiles {
			assert.False(t, seen[int(id)], "tile %d dealt to more than one seat", id)
			seen[int(id)] = true
		}
	}
	live := g.Round.Wall.Remaining()
	for i := 0; i < live; i++ {
		id, ok := g.Round.Wall.Draw()
		require.True(t, ok)
		assert.False(t, seen[int(id)], "live-wall tile %d collides with a dealt tile", id)
		seen[int(id)] = true
	}
	assert.Len(t, seen, 136-14, "every tile but the 14 set aside in the dead wall is accounted for")
}
