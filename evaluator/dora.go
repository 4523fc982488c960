package evaluator

import (
	"mahjong/melds"
	"mahjong/tiles"
)

// countIndicatorDora counts how many of the winning tile set match the
// "next tile" of each indicator, across both the closed hand and every
// called meld's tiles (an indicator can point into a meld same as into
// the concealed hand).
func countIndicatorDora(closedTiles []tiles.ID, ms []melds.Meld, indicators []tiles.Type) int {
	if len(indicators) == 0 {
		return 0
	}
	targets := make(map[tiles.Type]int, len(indicators))
	for _, ind := range indicators {
		targets[tiles.DoraNext(ind)]++
	}
	n := 0
	for _, id := range closedTiles {
		n += targets[id.Type34()]
	}
	for _, m := range ms {
		for _, id := range m.TileIDs {
			n += targets[id.Type34()]
		}
	}
	return n
}

// countAkadora counts red-five copies across the closed hand and melds.
func countAkadora(closedTiles []tiles.ID, ms []melds.Meld) int {
	n := 0
	for _, id := range closedTiles {
		if id.IsRedFive() {
			n++
		}
	}
	for _, m := range ms {
		for _, id := range m.TileIDs {
			if id.IsRedFive() {
				n++
			}
		}
	}
	return n
}
