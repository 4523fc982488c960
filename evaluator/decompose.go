package evaluator

import (
	"mahjong/melds"
	"mahjong/tiles"
)

type groupKind int

const (
	kindSequence groupKind = iota
	kindTriplet
	kindPair
)

func (k groupKind) String() string {
	switch k {
	case kindSequence:
		return "sequence"
	case kindTriplet:
		return "triplet"
	case kindPair:
		return "pair"
	default:
		return "?"
	}
}

// group is one completed block of a standard decomposition. Tile is the
// sequence's lowest tile, or the triplet/pair's tile type. Open and IsKan
// describe melds folded in from the player's called sets; closed-hand
// groups have Open=false, IsKan=false.
type group struct {
	Kind   groupKind
	Tile   tiles.Type
	Open   bool
	IsKan  bool
}

// decomposeStandard enumerates every way to split counts into exactly
// neededSets complete sets (sequence or triplet) plus one pair, consuming
// every tile. Used only on a fully complete (winning) hand, so partial/
// leftover shapes are not valid results here (unlike shanten's search,
// which tolerates incomplete decompositions).
func decomposeStandard(counts tiles.Hand34, neededSets int) [][]group {
	work := counts
	var out [][]group
	var cur []group
	hasPair := false

	var rec func(i int)
	rec = func(i int) {
		for i < tiles.NumTypes && work[i] == 0 {
			i++
		}
		if i == tiles.NumTypes {
			if len(cur) == neededSets && hasPair {
				cp := append([]group(nil), cur...)
				out = append(out, cp)
			}
			return
		}

		if work[i] >= 3 && len(cur) < neededSets {
			work[i] -= 3
			cur = append(cur, group{Kind: kindTriplet, Tile: tiles.Type(i)})
			rec(i)
			cur = cur[:len(cur)-1]
			work[i] += 3
		}
		if work[i] >= 2 && !hasPair {
			work[i] -= 2
			hasPair = true
			rec(i)
			hasPair = false
			work[i] += 2
		}
		if t := tiles.Type(i); t.IsNumbered() && len(cur) < neededSets {
			num := t.Number()
			if num <= 7 && work[i] >= 1 && work[i+1] >= 1 && work[i+2] >= 1 {
				work[i]--
				work[i+1]--
				work[i+2]--
				cur = append(cur, group{Kind: kindSequence, Tile: tiles.Type(i)})
				rec(i)
				cur = cur[:len(cur)-1]
				work[i]++
				work[i+1]++
				work[i+2]++
			}
		}
	}
	rec(0)
	return out
}

// meldToGroup converts a caller's locked-in meld into its decomposition
// group equivalent.
func meldToGroup(m melds.Meld) group {
	g := group{Tile: m.Type34(), Open: m.Kind.IsOpen(), IsKan: m.Kind.IsKan()}
	if m.Kind == melds.Chi {
		g.Kind = kindSequence
	} else {
		g.Kind = kindTriplet
	}
	return g
}
