// Package tiles implements the 136-tile physical model: encoding, suits,
// honors, red fives, and the wall/dead-wall layout drawn from it.
package tiles

import "fmt"

// ID identifies one of the 136 physical tiles (0..135).
type ID int

// Type identifies one of the 34 tile kinds (ID / 4).
type Type int

const (
	Man1 Type = iota
	Man2
	Man3
	Man4
	Man5
	Man6
	Man7
	Man8
	Man9
	Pin1
	Pin2
	Pin3
	Pin4
	Pin5
	Pin6
	Pin7
	Pin8
	Pin9
	Sou1
	Sou2
	Sou3
	Sou4
	Sou5
	Sou6
	Sou7
	Sou8
	Sou9
	East
	South
	West
	North
	Haku
	Hatsu
	Chun
)

// NumTypes is the number of distinct tile kinds (34-format).
const NumTypes = int(Chun) + 1

// NumTiles is the number of physical tiles (136-format).
const NumTiles = NumTypes * 4

// Type34 returns the 34-format type of a physical tile id.
func (t ID) Type34() Type { return Type(int(t) / 4) }

// Copy returns which of the four physical copies (0-3) this id is.
func (t ID) Copy() int { return int(t) % 4 }

// NewID builds a physical tile id from a type and copy index.
func NewID(t Type, copy int) ID { return ID(int(t)*4 + copy) }

// redFiveIDs are the copy-0 physical ids of the three red fives (akadora).
var redFiveIDs = map[ID]bool{
	NewID(Man5, 0): true,
	NewID(Pin5, 0): true,
	NewID(Sou5, 0): true,
}

// IsRedFive reports whether this physical tile is an akadora.
func (t ID) IsRedFive() bool { return redFiveIDs[t] }

// IsNumbered reports whether a type is a suited (non-honor) tile.
func (t Type) IsNumbered() bool { return t >= Man1 && t <= Sou9 }

// IsHonor reports whether a type is a wind or dragon.
func (t Type) IsHonor() bool { return t >= East && t <= Chun }

// IsTerminal reports whether a type is a 1 or 9 of a suit.
func (t Type) IsTerminal() bool {
	switch t {
	case Man1, Man9, Pin1, Pin9, Sou1, Sou9:
		return true
	default:
		return false
	}
}

// IsTerminalOrHonor reports membership in the yaochuu set used by
// kyuushu kyuuhai, nagashi mangan, chanta/junchan, and honroto/chinroto.
func (t Type) IsTerminalOrHonor() bool { return t.IsTerminal() || t.IsHonor() }

// IsWind reports whether a type is one of the four wind tiles.
func (t Type) IsWind() bool { return t >= East && t <= North }

// IsDragon reports whether a type is one of the three dragon tiles.
func (t Type) IsDragon() bool { return t >= Haku && t <= Chun }

// Suit identifies which of the three numbered suits a type belongs to, or -1
// for honors.
func (t Type) Suit() int {
	switch {
	case t >= Man1 && t <= Man9:
		return 0
	case t >= Pin1 && t <= Pin9:
		return 1
	case t >= Sou1 && t <= Sou9:
		return 2
	default:
		return -1
	}
}

// Number returns the 1-9 rank within a suit, or 0 for honors.
func (t Type) Number() int {
	switch t.Suit() {
	case 0:
		return int(t-Man1) + 1
	case 1:
		return int(t-Pin1) + 1
	case 2:
		return int(t-Sou1) + 1
	default:
		return 0
	}
}

func (t Type) String() string {
	switch {
	case t.Suit() >= 0:
		suitName := [3]string{"m", "p", "s"}[t.Suit()]
		return fmt.Sprintf("%d%s", t.Number(), suitName)
	case t == East:
		return "E"
	case t == South:
		return "S"
	case t == West:
		return "W"
	case t == North:
		return "N"
	case t == Haku:
		return "Haku"
	case t == Hatsu:
		return "Hatsu"
	case t == Chun:
		return "Chun"
	default:
		return "?"
	}
}

// Hand34 counts tiles by 34-format type.
type Hand34 [NumTypes]int

// ToHand34 collapses a slice of physical ids into a type-count array.
func ToHand34(ids []ID) Hand34 {
	var h Hand34
	for _, id := range ids {
		h[id.Type34()]++
	}
	return h
}

// DoraNext returns the type a dora indicator of this type points to: the
// next tile in the cyclic sequence (9 wraps to 1 within a suit, winds and
// dragons each cycle within their own 4/3-member group).
func DoraNext(indicator Type) Type {
	switch {
	case indicator >= Man1 && indicator <= Man9:
		return Man1 + (indicator-Man1+1)%9
	case indicator >= Pin1 && indicator <= Pin9:
		return Pin1 + (indicator-Pin1+1)%9
	case indicator >= Sou1 && indicator <= Sou9:
		return Sou1 + (indicator-Sou1+1)%9
	case indicator >= East && indicator <= North:
		return East + (indicator-East+1)%4
	case indicator >= Haku && indicator <= Chun:
		return Haku + (indicator-Haku+1)%3
	default:
		return indicator
	}
}
