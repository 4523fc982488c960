package turnengine

import (
	"mahjong/config"
	"mahjong/state"
	"mahjong/tiles"
)

// canCallPon reports whether seat holds two copies of tileID's type.
func canCallPon(round *state.RoundState, seat int, tileID tiles.ID) bool {
	return round.Players[seat].CountType34(tileID.Type34()) >= 2
}

// canCallOpenKan reports whether seat holds three copies of tileID's type
// and the call is legal under the wall/kan-count gates.
func canCallOpenKan(round *state.RoundState, settings config.Settings, seat int, tileID tiles.ID) bool {
	if round.Wall.Remaining() < settings.MinWallForKan || round.TotalKans() >= settings.MaxKansPerRound {
		return false
	}
	return round.Players[seat].CountType34(tileID.Type34()) >= 3
}

// chiOptions enumerates every way seat (the discarder must be seat's
// kamicha) can complete a consecutive run with tileID using two hand tiles.
func chiOptions(round *state.RoundState, discarderSeat, seat int, tileID tiles.ID) []state.ChiOption {
	if state.Kamicha(seat) != discarderSeat {
		return nil
	}
	t := tileID.Type34()
	if !t.IsNumbered() {
		return nil
	}
	player := round.Players[seat]
	num := t.Number()
	suitBase := t - tiles.Type(num-1)

	var options []state.ChiOption
	tryPair := func(d1, d2 int) {
		n1, n2 := num+d1, num+d2
		if n1 < 1 || n1 > 9 || n2 < 1 || n2 > 9 {
			return
		}
		t1 := suitBase + tiles.Type(n1-1)
		t2 := suitBase + tiles.Type(n2-1)
		id1, ok1 := firstTileOfType(player.Tiles, t1)
		if !ok1 {
			return
		}
		remaining, _ := removeID(player.Tiles, id1)
		id2, ok2 := firstTileOfType(remaining, t2)
		if !ok2 {
			return
		}
		options = append(options, state.ChiOption{HandTileIDs: [2]tiles.ID{id1, id2}})
	}
	tryPair(-2, -1) // tileID completes the high end: hand holds n-2, n-1
	tryPair(-1, 1)  // tileID is the middle tile
	tryPair(1, 2)   // tileID completes the low end: hand holds n+1, n+2
	return options
}

func firstTileOfType(hand []tiles.ID, t tiles.Type) (tiles.ID, bool) {
	for _, id := range hand {
		if id.Type34() == t {
			return id, true
		}
	}
	return 0, false
}

func removeID(hand []tiles.ID, id tiles.ID) ([]tiles.ID, bool) {
	for i, t := range hand {
		if t == id {
			out := append([]tiles.ID(nil), hand[:i]...)
			out = append(out, hand[i+1:]...)
			return out, true
		}
	}
	return hand, false
}

// findRonCallers returns every seat (other than discarderSeat) eligible to
// ron on tileID, sorted counter-clockwise from the discarder (closest
// first — atamahane priority order).
func (e *Engine) findRonCallers(g *state.GameState, tileID tiles.ID, discarderSeat int) []int {
	var callers []int
	for seat := 0; seat < 4; seat++ {
		if seat == discarderSeat {
			continue
		}
		if e.canCallRon(g, seat, tileID, discarderSeat, false) {
			callers = append(callers, seat)
		}
	}
	sortByDistance(callers, discarderSeat)
	return callers
}

func sortByDistance(seats []int, from int) {
	for i := 1; i < len(seats); i++ {
		for j := i; j > 0; j-- {
			di := state.CounterClockwiseDistance(from, seats[j])
			dj := state.CounterClockwiseDistance(from, seats[j-1])
			if di < dj {
				seats[j], seats[j-1] = seats[j-1], seats[j]
			} else {
				break
			}
		}
	}
}

// meldCallOption is one seat's eligibility for one call kind on the current
// discard, prior to best-meld selection.
type meldCallOption struct {
	Seat       int
	Kind       state.CallKind
	ChiOptions []state.ChiOption
}

// findMeldCallers returns every (seat, call kind) meld option available on
// tileID, covering open kan, pon, and chi (kamicha only). Seats already in
// riichi cannot meld-call at all.
func (e *Engine) findMeldCallers(g *state.GameState, tileID tiles.ID, discarderSeat int) []meldCallOption {
	round := g.Round

	var out []meldCallOption
	for seat := 0; seat < 4; seat++ {
		if seat == discarderSeat {
			continue
		}
		player := round.Players[seat]
		if player.IsRiichi {
			continue
		}
		if canCallOpenKan(round, g.Settings, seat, tileID) {
			out = append(out, meldCallOption{Seat: seat, Kind: state.CallKan})
		}
		if canCallPon(round, seat, tileID) {
			out = append(out, meldCallOption{Seat: seat, Kind: state.CallPon})
		}
		if opts := chiOptions(round, discarderSeat, seat, tileID); len(opts) > 0 {
			out = append(out, meldCallOption{Seat: seat, Kind: state.CallChi, ChiOptions: opts})
		}
	}
	return out
}

// meldCallPriority mirrors §4.4's best-meld ordering: kan(0) < pon(1) <
// chi(2), lower sorts first.
func meldCallPriority(kind state.CallKind) int {
	switch kind {
	case state.CallKan:
		return 0
	case state.CallPon:
		return 1
	case state.CallChi:
		return 2
	default:
		return 99
	}
}
