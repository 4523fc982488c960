package evaluator

import "mahjong/tiles"

type waitKind int

const (
	waitRyanmen waitKind = iota
	waitKanchan
	waitPenchan
	waitTanki
	waitShanpon
)

// waitKindFor classifies how winType completed winGroup, used by both
// pinfu eligibility and fu scoring.
func waitKindFor(winGroup group, winType tiles.Type) waitKind {
	switch winGroup.Kind {
	case kindPair:
		return waitTanki
	case kindTriplet:
		return waitShanpon
	default: // sequence
		base := winGroup.Tile
		idx := int(winType - base)
		switch idx {
		case 1:
			return waitKanchan
		case 0:
			if base.Number() == 7 {
				return waitPenchan
			}
			return waitRyanmen
		case 2:
			if base.Number() == 1 {
				return waitPenchan
			}
			return waitRyanmen
		default:
			return waitRyanmen
		}
	}
}
