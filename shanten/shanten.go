// Package shanten computes shanten (distance from tenpai), tenpai, and
// winning-wait sets over a hand's 34-type array. It is the one
// computation in this engine expensive enough to memoize; callers that
// hold a *cache.ShantenCache should go through Cached.
package shanten

import (
	"strconv"
	"strings"

	"mahjong/tiles"
)

// Complete is the shanten value of a winning hand (one below tenpai's 0).
const Complete = -1

// Standard computes shanten for the standard (4 sets + 1 pair) hand shape.
// formedSets counts melds already locked in (each pon/chi/kan is one set)
// and is not part of counts.
func Standard(counts tiles.Hand34, formedSets int) int {
	best := 8
	work := counts
	scanStandard(&work, 0, formedSets, 0, false, &best)
	return best
}

func scanStandard(counts *tiles.Hand34, i, sets, partials int, hasPair bool, best *int) {
	for i < tiles.NumTypes && counts[i] == 0 {
		i++
	}
	if i == tiles.NumTypes || sets+partials >= 5 {
		finalizeStandard(sets, partials, hasPair, best)
		return
	}

	// triplet
	if counts[i] >= 3 {
		counts[i] -= 3
		scanStandard(counts, i, sets+1, partials, hasPair, best)
		counts[i] += 3
	}
	// pair (as head, or as a partial toward a second triplet)
	if counts[i] >= 2 {
		if !hasPair {
			counts[i] -= 2
			scanStandard(counts, i, sets, partials, true, best)
			counts[i] += 2
		}
		counts[i] -= 2
		scanStandard(counts, i, sets, partials+1, hasPair, best)
		counts[i] += 2
	}
	// sequences, suited tiles only
	if t := tiles.Type(i); t.IsNumbered() {
		num := t.Number()
		if num <= 7 && counts[i] >= 1 && counts[i+1] >= 1 && counts[i+2] >= 1 {
			counts[i]--
			counts[i+1]--
			counts[i+2]--
			scanStandard(counts, i, sets+1, partials, hasPair, best)
			counts[i]++
			counts[i+1]++
			counts[i+2]++
		}
		if num <= 8 && counts[i] >= 1 && counts[i+1] >= 1 {
			counts[i]--
			counts[i+1]--
			scanStandard(counts, i, sets, partials+1, hasPair, best)
			counts[i]++
			counts[i+1]++
		}
		if num <= 7 && counts[i] >= 1 && counts[i+2] >= 1 {
			counts[i]--
			counts[i+2]--
			scanStandard(counts, i, sets, partials+1, hasPair, best)
			counts[i]++
			counts[i+2]++
		}
	}
	// leave the rest of this type as dead weight
	old := counts[i]
	counts[i] = 0
	scanStandard(counts, i, sets, partials, hasPair, best)
	counts[i] = old
}

func finalizeStandard(sets, partials int, hasPair bool, best *int) {
	if sets > 4 {
		sets = 4
	}
	if sets+partials > 4 {
		partials = 4 - sets
	}
	if partials < 0 {
		partials = 0
	}
	pairBonus := 0
	if hasPair {
		pairBonus = 1
	}
	s := 8 - 2*sets - partials - pairBonus
	if s < *best {
		*best = s
	}
}

// yaochuuTypes are the 13 terminal/honor types kokushi musou counts over.
var yaochuuTypes = []tiles.Type{
	tiles.Man1, tiles.Man9, tiles.Pin1, tiles.Pin9, tiles.Sou1, tiles.Sou9,
	tiles.East, tiles.South, tiles.West, tiles.North, tiles.Haku, tiles.Hatsu, tiles.Chun,
}

// Kokushi computes shanten for the thirteen-orphans shape. Only valid for
// a fully closed hand (melds disqualify kokushi entirely, enforced by the
// caller not invoking this branch when formedSets > 0).
func Kokushi(counts tiles.Hand34) int {
	kinds := 0
	hasPair := false
	for _, t := range yaochuuTypes {
		c := counts[t]
		if c >= 1 {
			kinds++
		}
		if c >= 2 {
			hasPair = true
		}
	}
	pairBonus := 0
	if hasPair {
		pairBonus = 1
	}
	return 13 - kinds - pairBonus
}

// SevenPairs computes shanten for the seven-distinct-pairs shape. Only
// valid for a fully closed hand.
func SevenPairs(counts tiles.Hand34) int {
	pairs := 0
	distinct := 0
	for _, c := range counts {
		if c >= 1 {
			distinct++
		}
		if c >= 2 {
			pairs++
		}
	}
	deficit := 7 - distinct
	if deficit < 0 {
		deficit = 0
	}
	return 6 - pairs + deficit
}

// Shanten returns the minimum shanten across every applicable hand shape.
// formedSets is the number of locked-in melds (kokushi/chiitoi are only
// considered when formedSets == 0, since both require a fully closed hand).
func Shanten(counts tiles.Hand34, formedSets int) int {
	best := Standard(counts, formedSets)
	if formedSets == 0 {
		if k := Kokushi(counts); k < best {
			best = k
		}
		if c := SevenPairs(counts); c < best {
			best = c
		}
	}
	return best
}

// Key serializes a hand shape into a cache key.
func Key(counts tiles.Hand34, formedSets int) string {
	var b strings.Builder
	for _, c := range counts {
		b.WriteByte(byte('0' + c))
	}
	b.WriteByte('/')
	b.WriteString(strconv.Itoa(formedSets))
	return b.String()
}

// ShantenLookup is the minimal interface a memoization cache must satisfy
// (mahjong/cache.ShantenCache implements it).
type ShantenLookup interface {
	Get(key string) (int, bool)
	Set(key string, shanten int)
}

// Cached computes Shanten, consulting and populating c.
func Cached(c ShantenLookup, counts tiles.Hand34, formedSets int) int {
	key := Key(counts, formedSets)
	if v, ok := c.Get(key); ok {
		return v
	}
	v := Shanten(counts, formedSets)
	c.Set(key, v)
	return v
}
