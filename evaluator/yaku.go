package evaluator

import "mahjong/tiles"

// handShape is a fully resolved winning decomposition: four sets plus a
// pair (closed groups plus the player's locked-in melds), with the
// winning tile's group identified so wait-type and pinfu checks have
// something to anchor on.
type handShape struct {
	Groups        []group
	WinGroupIndex int
	WinType       tiles.Type
	IsOpen        bool
	IsTsumo       bool
}

func (h handShape) pair() group {
	for _, g := range h.Groups {
		if g.Kind == kindPair {
			return g
		}
	}
	return group{}
}

func (h handShape) winGroup() group { return h.Groups[h.WinGroupIndex] }

func (h handShape) allSequences() bool {
	for _, g := range h.Groups {
		if g.Kind == kindSequence {
			continue
		}
		if g.Kind == kindTriplet {
			return false
		}
	}
	return true
}

func (h handShape) allTripletsOrKans() bool {
	for _, g := range h.Groups {
		if g.Kind == kindSequence {
			return false
		}
	}
	return true
}

func isYakuhaiTile(t tiles.Type, cfg HandConfig) (roundWind, seatWind, dragon bool) {
	return t == cfg.RoundWind, t == cfg.PlayerWind, t.IsDragon()
}

func terminalOrHonorGroup(g group) bool {
	if g.Kind == kindSequence {
		// a sequence "contains" a terminal only at its 1 or 9 end
		return g.Tile.Number() == 1 || g.Tile.Number() == 7
	}
	return g.Tile.IsTerminalOrHonor()
}

// evaluateYaku returns every yaku hand shape h scores, honoring cfg's
// situational flags and rule toggles. It does not itself decide between
// competing decompositions of the same physical tiles — the caller tries
// every handShape produced by decomposeStandard (plus chiitoi/kokushi) and
// keeps the highest-scoring result, per how real calculators resolve
// multi-interpretation hands.
func evaluateYaku(h handShape, cfg HandConfig) ([]YakuHan, bool, int) {
	var yaku []YakuHan
	add := func(name string, han int) {
		if han > 0 {
			yaku = append(yaku, YakuHan{Name: name, Han: han})
		}
	}

	closed := !h.IsOpen

	// Situational / timing yaku.
	if cfg.IsTenhou {
		return []YakuHan{{Name: "tenhou", Han: 0}}, true, 1
	}
	if cfg.IsChiihou {
		return []YakuHan{{Name: "chiihou", Han: 0}}, true, 1
	}
	if cfg.IsRenhou && cfg.Rules.RenhouValue != "none" {
		if cfg.Rules.RenhouValue == "yakuman" {
			return []YakuHan{{Name: "renhou", Han: 0}}, true, 1
		}
		add("renhou", 5) // scored as mangan-equivalent han
	}

	if cfg.IsDaburuRiichi {
		add("double_riichi", 2)
	} else if cfg.IsRiichi {
		add("riichi", 1)
	}
	if cfg.IsIppatsu {
		add("ippatsu", 1)
	}
	if cfg.IsTsumo && closed {
		add("menzen_tsumo", 1)
	}
	if cfg.IsRinshan {
		add("rinshan_kaihou", 1)
	}
	if cfg.IsChankan {
		add("chankan", 1)
	}
	if cfg.IsHaitei && cfg.IsTsumo {
		add("haitei_raoyue", 1)
	}
	if cfg.IsHoutei && !cfg.IsTsumo {
		add("houtei_raoyui", 1)
	}

	// Yakuman shapes (standard decomposition only; chiitoi/kokushi are
	// scored by their own callers before evaluateYaku is ever invoked).
	if yakumanHan, names, count := evaluateYakuman(h, cfg); count > 0 {
		for _, n := range names {
			yaku = append(yaku, YakuHan{Name: n, Han: 0})
		}
		_ = yakumanHan
		return yaku, true, count
	}

	wait := waitKindFor(h.winGroup(), h.WinType)

	if closed && h.allSequences() && wait == waitRyanmen {
		pair := h.pair()
		_, seatWind, dragon := isYakuhaiTile(pair.Tile, cfg)
		roundWind := pair.Tile == cfg.RoundWind
		if !dragon && !roundWind && !seatWind {
			add("pinfu", 1)
		}
	}

	if tanyao := allSimples(h); tanyao && (closed || cfg.Rules.HasKuitan) {
		add("tanyao", 1)
	}

	for _, g := range h.Groups {
		if g.Kind == kindPair {
			continue
		}
		if g.Kind != kindTriplet {
			continue
		}
		round, seat, dragon := isYakuhaiTile(g.Tile, cfg)
		if dragon {
			add("yakuhai_dragon", 1)
		}
		if round {
			add("yakuhai_round_wind", 1)
		}
		if seat {
			add("yakuhai_seat_wind", 1)
		}
	}

	if n := countConcealedTriplets(h); n == 3 {
		add("sanankou", 2)
	}

	if h.allTripletsOrKans() {
		add("toitoi", 2)
	}

	if shousangen(h) {
		add("shousangen", 2)
	}

	if honroutou(h) {
		add("honroto", 2)
	}

	if iipeikouCount(h) == 1 && closed {
		add("iipeikou", 1)
	} else if iipeikouCount(h) >= 2 && closed {
		add("ryanpeikou", 3)
	}

	if sanshokuDoujun(h) {
		if closed {
			add("sanshoku_doujun", 2)
		} else {
			add("sanshoku_doujun", 1)
		}
	}

	if ittsu(h) {
		if closed {
			add("ittsu", 2)
		} else {
			add("ittsu", 1)
		}
	}

	allTerminalOrHonor := true
	for _, g := range h.Groups {
		if !terminalOrHonorGroup(g) {
			allTerminalOrHonor = false
		}
	}
	if allTerminalOrHonor && !honroutou(h) {
		hasHonor := false
		for _, g := range h.Groups {
			if g.Tile.IsHonor() {
				hasHonor = true
			}
		}
		switch {
		case !hasHonor && closed:
			add("junchan", 3)
		case !hasHonor:
			add("junchan", 2)
		case closed:
			add("chanta", 2)
		default:
			add("chanta", 1)
		}
	}

	if suit, ok := honitsuSuit(h); ok {
		if closed {
			add("honitsu", 3)
		} else {
			add("honitsu", 2)
		}
		if chinitsuPure(h, suit) {
			// upgrade: remove the honitsu entry, add chinitsu instead
			yaku = yaku[:len(yaku)-1]
			if closed {
				add("chinitsu", 6)
			} else {
				add("chinitsu", 5)
			}
		}
	}

	if len(yaku) == 0 {
		return nil, false, 0
	}
	return yaku, false, 0
}

func allSimples(h handShape) bool {
	for _, g := range h.Groups {
		if g.Kind == kindSequence {
			if g.Tile.Number() == 1 || g.Tile.Number() == 7 {
				return false
			}
			continue
		}
		if g.Tile.IsTerminalOrHonor() {
			return false
		}
	}
	return true
}

func countConcealedTriplets(h handShape) int {
	n := 0
	for i, g := range h.Groups {
		if g.Kind != kindTriplet || g.Open {
			continue
		}
		if i == h.WinGroupIndex && !h.IsTsumo {
			// completed by ron: this triplet is treated as open for
			// sanankou/suuankou purposes even though the other two tiles
			// were already in hand.
			continue
		}
		n++
	}
	return n
}

func honroutou(h handShape) bool {
	for _, g := range h.Groups {
		if g.Kind == kindSequence {
			return false
		}
		if !g.Tile.IsTerminalOrHonor() {
			return false
		}
	}
	return true
}

func iipeikouCount(h handShape) int {
	seen := map[tiles.Type]int{}
	for _, g := range h.Groups {
		if g.Kind == kindSequence && !g.Open {
			seen[g.Tile]++
		}
	}
	pairs := 0
	for _, c := range seen {
		pairs += c / 2
	}
	return pairs
}

func sanshokuDoujun(h handShape) bool {
	bySuit := map[int]map[int]bool{0: {}, 1: {}, 2: {}}
	for _, g := range h.Groups {
		if g.Kind != kindSequence {
			continue
		}
		bySuit[g.Tile.Suit()][g.Tile.Number()] = true
	}
	for n := 1; n <= 7; n++ {
		if bySuit[0][n] && bySuit[1][n] && bySuit[2][n] {
			return true
		}
	}
	return false
}

func ittsu(h handShape) bool {
	bySuit := map[int]map[int]bool{0: {}, 1: {}, 2: {}}
	for _, g := range h.Groups {
		if g.Kind != kindSequence {
			continue
		}
		bySuit[g.Tile.Suit()][g.Tile.Number()] = true
	}
	for suit := 0; suit < 3; suit++ {
		if bySuit[suit][1] && bySuit[suit][4] && bySuit[suit][7] {
			return true
		}
	}
	return false
}

// honitsuSuit returns the single numbered suit present (if the hand uses
// exactly one suit plus honors, or honors only), and whether that
// condition holds at all.
func honitsuSuit(h handShape) (int, bool) {
	suits := map[int]bool{}
	hasHonor := false
	for _, g := range h.Groups {
		if g.Tile.IsHonor() {
			hasHonor = true
			continue
		}
		suits[g.Tile.Suit()] = true
	}
	if len(suits) > 1 {
		return 0, false
	}
	if len(suits) == 0 && !hasHonor {
		return 0, false
	}
	for s := range suits {
		return s, true
	}
	return -1, hasHonor // honors only still counts as honitsu-eligible for the chanta-style checks, but never alone
}

func chinitsuPure(h handShape, suit int) bool {
	for _, g := range h.Groups {
		if g.Tile.IsHonor() {
			return false
		}
		if g.Tile.Suit() != suit {
			return false
		}
	}
	return true
}
