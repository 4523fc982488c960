package evaluator

import "mahjong/tiles"

func shousangen(h handShape) bool {
	dragonTriplets := 0
	dragonPair := false
	for _, g := range h.Groups {
		if !g.Tile.IsDragon() {
			continue
		}
		switch g.Kind {
		case kindTriplet:
			dragonTriplets++
		case kindPair:
			dragonPair = true
		}
	}
	return dragonTriplets == 2 && dragonPair
}

// evaluateYakuman checks the standard-decomposition yakuman shapes.
// Returns the combined yaku name list and a multiple count (1 = single
// yakuman, 2 = double, honoring cfg.Rules.HasDoubleYakuman for the hands
// that traditionally double).
func evaluateYakuman(h handShape, cfg HandConfig) (int, []string, int) {
	var names []string
	count := 0

	dragonTriplets, windTriplets := 0, 0
	allHonor := true
	allTerminal := true
	kanCount := 0
	for _, g := range h.Groups {
		if g.Kind == kindSequence {
			allHonor = false
			allTerminal = false
		} else {
			if !g.Tile.IsHonor() {
				allHonor = false
			}
			if !g.Tile.IsTerminal() {
				allTerminal = false
			}
		}
		if g.Tile.IsDragon() && g.Kind == kindTriplet {
			dragonTriplets++
		}
		if g.Tile.IsWind() && g.Kind == kindTriplet {
			windTriplets++
		}
		if g.IsKan {
			kanCount++
		}
	}

	if dragonTriplets == 3 {
		names = append(names, "daisangen")
		count++
	}
	if windTriplets == 4 {
		names = append(names, "daisuushii")
		if cfg.Rules.HasDoubleYakuman {
			count += 2
		} else {
			count++
		}
	} else if windTriplets == 3 {
		pair := h.pair()
		if pair.Tile.IsWind() {
			names = append(names, "shousuushii")
			count++
		}
	}
	if allHonor {
		names = append(names, "tsuuiisou")
		count++
	}
	if allTerminal {
		names = append(names, "chinroutou")
		count++
	}
	if kanCount == 4 {
		names = append(names, "suukantsu")
		count++
	}
	if greenOnly(h) {
		names = append(names, "ryuuiisou")
		count++
	}

	closedTriplets := 0
	for i, g := range h.Groups {
		if g.Kind != kindTriplet || g.Open {
			continue
		}
		if i == h.WinGroupIndex && !h.IsTsumo {
			continue
		}
		closedTriplets++
	}
	if closedTriplets == 4 {
		names = append(names, "suuankou")
		if waitKindFor(h.winGroup(), h.WinType) == waitTanki && cfg.Rules.HasDoubleYakuman {
			count += 2
		} else {
			count++
		}
	}

	return 0, names, count
}

// chuurenPoutou checks the nine-gates shape directly against the 14-tile
// closed-hand count array: this shape doesn't correspond to any single
// 4-sets-plus-pair parse, so it's checked independently of
// decomposeStandard rather than folded into evaluateYakuman's group scan.
func chuurenPoutou(counts tiles.Hand34, winType tiles.Type, isOpen bool) (pure bool, ok bool) {
	if isOpen {
		return false, false
	}
	suit := -1
	total := 0
	for t, c := range counts {
		if c == 0 {
			continue
		}
		ty := tiles.Type(t)
		if ty.IsHonor() {
			return false, false
		}
		if suit == -1 {
			suit = ty.Suit()
		} else if ty.Suit() != suit {
			return false, false
		}
		total += c
	}
	if suit == -1 || total != 14 {
		return false, false
	}
	base := tiles.Man1 + tiles.Type(9*suit)
	one, nine := counts[base], counts[base+8]
	if one < 3 || nine < 3 {
		return false, false
	}
	for n := 1; n <= 7; n++ {
		if counts[base+tiles.Type(n)] < 1 {
			return false, false
		}
	}
	before := counts
	before[winType]--
	pureShape := before[base] == 3 && before[base+8] == 3
	for n := 1; n <= 7; n++ {
		if before[base+tiles.Type(n)] != 1 {
			pureShape = false
		}
	}
	return pureShape, true
}

var greenTiles = map[tiles.Type]bool{
	tiles.Sou2: true, tiles.Sou3: true, tiles.Sou4: true,
	tiles.Sou6: true, tiles.Sou8: true, tiles.Hatsu: true,
}

func greenOnly(h handShape) bool {
	for _, g := range h.Groups {
		switch g.Kind {
		case kindSequence:
			// only 234 of sou is an all-green sequence (678 holds the non-green 7s)
			if g.Tile != tiles.Sou2 {
				return false
			}
		default:
			if !greenTiles[g.Tile] {
				return false
			}
		}
	}
	return true
}

