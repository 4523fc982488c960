package melds

import "mahjong/tiles"

// removeOne removes the first occurrence of id from hand, returning the
// new slice and whether it was found.
func removeOne(hand []tiles.ID, id tiles.ID) ([]tiles.ID, bool) {
	for i, t := range hand {
		if t == id {
			out := append([]tiles.ID(nil), hand[:i]...)
			out = append(out, hand[i+1:]...)
			return out, true
		}
	}
	return hand, false
}

// takeMatching removes the first n tiles of type t from hand (in hand
// order), returning the removed ids and the remaining hand.
func takeMatching(hand []tiles.ID, t tiles.Type, n int) ([]tiles.ID, []tiles.ID, bool) {
	var taken []tiles.ID
	remaining := append([]tiles.ID(nil), hand...)
	for len(taken) < n {
		found := false
		for i, id := range remaining {
			if id.Type34() == t {
				taken = append(taken, id)
				remaining = append(remaining[:i:i], remaining[i+1:]...)
				found = true
				break
			}
		}
		if !found {
			return nil, hand, false
		}
	}
	return taken, remaining, true
}

// FormPon removes two matching hand tiles and combines them with the
// called discard into an open triplet.
func FormPon(hand []tiles.ID, calledID tiles.ID, fromSeat, callerSeat int) ([]tiles.ID, Meld, bool) {
	taken, remaining, ok := takeMatching(hand, calledID.Type34(), 2)
	if !ok {
		return hand, Meld{}, false
	}
	m := Meld{
		Kind:         Pon,
		CallerSeat:   callerSeat,
		FromSeat:     fromSeat,
		TileIDs:      append(taken, calledID),
		CalledTileID: int(calledID),
	}
	return remaining, m, true
}

// FormChi removes the two named hand tiles and combines them with the
// called discard into a sequence. handTileIDs need not be in type order;
// the three tiles together must form a consecutive run of one suit with
// calledID (enforced by the caller's prompt construction — this function
// only re-validates shape before mutating the hand).
func FormChi(hand []tiles.ID, calledID tiles.ID, handTileIDs [2]tiles.ID, fromSeat, callerSeat int) ([]tiles.ID, Meld, bool) {
	remaining := append([]tiles.ID(nil), hand...)
	var taken []tiles.ID
	for _, want := range handTileIDs {
		r, ok := removeOne(remaining, want)
		if !ok {
			return hand, Meld{}, false
		}
		remaining = r
		taken = append(taken, want)
	}
	all := append(taken, calledID)
	if !isConsecutiveRun(all) {
		return hand, Meld{}, false
	}
	m := Meld{
		Kind:         Chi,
		CallerSeat:   callerSeat,
		FromSeat:     fromSeat,
		TileIDs:      all,
		CalledTileID: int(calledID),
	}
	return remaining, m, true
}

func isConsecutiveRun(ids []tiles.ID) bool {
	if len(ids) != 3 {
		return false
	}
	types := make([]int, 3)
	for i, id := range ids {
		t := id.Type34()
		if !t.IsNumbered() {
			return false
		}
		types[i] = int(t)
	}
	for i := 0; i < 3; i++ {
		for j := i + 1; j < 3; j++ {
			if types[j] < types[i] {
				types[i], types[j] = types[j], types[i]
			}
		}
	}
	if types[0]/9 != types[2]/9 {
		return false // crosses a suit boundary
	}
	return types[1] == types[0]+1 && types[2] == types[0]+2
}

// FormOpenKan (daiminkan) removes three matching hand tiles and combines
// them with the called discard. The replacement draw and deferred dora
// reveal are the turn engine's responsibility, not this function's.
func FormOpenKan(hand []tiles.ID, calledID tiles.ID, fromSeat, callerSeat int) ([]tiles.ID, Meld, bool) {
	taken, remaining, ok := takeMatching(hand, calledID.Type34(), 3)
	if !ok {
		return hand, Meld{}, false
	}
	m := Meld{
		Kind:         OpenKan,
		CallerSeat:   callerSeat,
		FromSeat:     fromSeat,
		TileIDs:      append(taken, calledID),
		CalledTileID: int(calledID),
	}
	return remaining, m, true
}

// FormClosedKan (ankan) removes all four copies of t from the caller's own
// hand (the 4th having just been drawn). The immediate dora reveal is the
// turn engine's responsibility.
func FormClosedKan(hand []tiles.ID, t tiles.Type, callerSeat int) ([]tiles.ID, Meld, bool) {
	taken, remaining, ok := takeMatching(hand, t, 4)
	if !ok {
		return hand, Meld{}, false
	}
	m := Meld{
		Kind:         ClosedKan,
		CallerSeat:   callerSeat,
		FromSeat:     NoSeat,
		TileIDs:      taken,
		CalledTileID: -1,
	}
	return remaining, m, true
}

// FormAddedKan (shouminkan) upgrades an existing open pon in place by
// folding in the drawn 4th tile, preserving the pon's original caller,
// source seat, and called-tile id (chankan and fu scoring both need the
// original call intact, not just the final four tiles).
func FormAddedKan(existingPon Meld, drawnTileID tiles.ID) (Meld, bool) {
	if existingPon.Kind != Pon || drawnTileID.Type34() != existingPon.Type34() {
		return Meld{}, false
	}
	m := Meld{
		Kind:         AddedKan,
		CallerSeat:   existingPon.CallerSeat,
		FromSeat:     existingPon.FromSeat,
		TileIDs:      append(append([]tiles.ID(nil), existingPon.TileIDs...), drawnTileID),
		CalledTileID: existingPon.CalledTileID,
	}
	return m, true
}
