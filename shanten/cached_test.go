package shanten

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mahjong/tiles"
)

// fakeLookup is a minimal in-memory ShantenLookup, used to verify Cached's
// hit/miss/populate behavior without pulling in the ristretto-backed cache.
type fakeLookup struct {
	values map[string]int
	gets   int
	sets   int
}

func newFakeLookup() *fakeLookup { return &fakeLookup{values: map[string]int{}} }

func (f *fakeLookup) Get(key string) (int, bool) {
	f.gets++
	v, ok := f.values[key]
	return v, ok
}

func (f *fakeLookup) Set(key string, shanten int) {
	f.sets++
	f.values[key] = shanten
}

func winningHand() tiles.Hand34 {
	var h tiles.Hand34
	// 111m 234m 678p 456s 99s (4 sets + a pair), a complete standard hand.
	h[tiles.Man1] = 3
	h[tiles.Man2] = 1
	h[tiles.Man3] = 1
	h[tiles.Man4] = 1
	h[tiles.Pin6] = 1
	h[tiles.Pin7] = 1
	h[tiles.Pin8] = 1
	h[tiles.Sou4] = 1
	h[tiles.Sou5] = 1
	h[tiles.Sou6] = 1
	h[tiles.Sou9] = 2
	return h
}

func TestCachedPopulatesOnMissAndHitsThereafter(t *testing.T) {
	f := newFakeLookup()
	hand := winningHand()

	v1 := Cached(f, hand, 0)
	assert.Equal(t, Complete, v1)
	assert.Equal(t, 1, f.gets)
	assert.Equal(t, 1, f.sets)

	v2 := Cached(f, hand, 0)
	assert.Equal(t, Complete, v2)
	assert.Equal(t, 2, f.gets)
	assert.Equal(t, 1, f.sets, "a cache hit must not re-Set the value")
}

func TestCachedMatchesUncachedShanten(t *testing.T) {
	f := newFakeLookup()
	hand := winningHand()
	assert.Equal(t, Shanten(hand, 0), Cached(f, hand, 0))
}

func TestKeyDiffersByFormedSetsAndCounts(t *testing.T) {
	hand := winningHand()
	k0 := Key(hand, 0)
	k1 := Key(hand, 1)
	assert.NotEqual(t, k0, k1, "formed_sets must be part of the cache key")

	other := winningHand()
	other[tiles.Man1]--
	other[tiles.Man5]++
	assert.NotEqual(t, Key(hand, 0), Key(other, 0))
}

func TestShantenWinningHandIsComplete(t *testing.T) {
	assert.Equal(t, Complete, Shanten(winningHand(), 0))
}

func TestShantenTenpaiHandIsZero(t *testing.T) {
	hand := winningHand()
	// Remove one tile from the pair to leave a tanki wait: tenpai (shanten 0).
	hand[tiles.Sou9] = 1
	require.Equal(t, 0, Shanten(hand, 0))
}
