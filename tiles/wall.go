package tiles

// DeadWall holds the 14 tiles set aside at the start of a round: four kan
// replacement tiles, five dora indicator slots (one revealed at round
// start), and five ura-dora slots sitting beneath each indicator.
//
// Grounded on the teacher's Wang struct (material.go): three fixed arrays
// with cursor fields, rather than a literal two-row 14-slot layout.
type DeadWall struct {
	Replacement      [4]ID
	replacementCount int

	DoraIndicators [5]ID
	doraCount      int

	UraDoraIndicators [5]ID
	// The ura-dora slots have no cursor of their own: doraCount serves both,
	// since ura-dora is only ever surfaced for a riichi winner, one for every
	// dora indicator turned so far.
}

// NewDeadWall builds the dead wall from the last 14 tiles of a shuffled
// 136-tile permutation, and reveals the first dora indicator.
func NewDeadWall(tail []ID) *DeadWall {
	if len(tail) != 14 {
		panic("tiles: dead wall requires exactly 14 tiles")
	}
	dw := &DeadWall{}
	copy(dw.Replacement[:], tail[0:4])
	copy(dw.DoraIndicators[:], tail[4:9])
	copy(dw.UraDoraIndicators[:], tail[9:14])
	dw.doraCount = 1
	return dw
}

// DrawReplacement pops the next kan replacement tile (rinshan). Ok is false
// once all four have been drawn (the fifth kan is never reached — callers
// must enforce the 4-kan cap before calling this).
func (dw *DeadWall) DrawReplacement() (ID, bool) {
	if dw.replacementCount >= 4 {
		return 0, false
	}
	t := dw.Replacement[dw.replacementCount]
	dw.replacementCount++
	return t, true
}

// RevealDora turns the next dora indicator. Ok is false once all five are
// revealed (unreachable in practice: at most 4 kans plus the initial
// indicator is exactly 5).
func (dw *DeadWall) RevealDora() (ID, bool) {
	if dw.doraCount >= 5 {
		return 0, false
	}
	t := dw.DoraIndicators[dw.doraCount]
	dw.doraCount++
	return t, true
}

// RevealedDoraIndicators returns every dora indicator turned so far.
func (dw *DeadWall) RevealedDoraIndicators() []ID {
	return append([]ID(nil), dw.DoraIndicators[:dw.doraCount]...)
}

// RevealedUraDoraIndicators returns the ura-dora indicators paired with
// every dora indicator turned so far (only meaningful for a riichi winner).
func (dw *DeadWall) RevealedUraDoraIndicators() []ID {
	return append([]ID(nil), dw.UraDoraIndicators[:dw.doraCount]...)
}

// RemainingReplacements reports how many kan replacement draws are left.
func (dw *DeadWall) RemainingReplacements() int { return 4 - dw.replacementCount }

// Clone returns a deep copy, preserving the immutable-state-transition
// guarantee (§9 Design Notes: structural copy with targeted replacement).
func (dw *DeadWall) Clone() *DeadWall {
	cp := *dw
	return &cp
}

// Wall is the live (drawable) portion of the 136-tile set plus the dead
// wall sitting behind it.
type Wall struct {
	live     []ID
	liveHead int
	Dead     *DeadWall
}

// NewWall splits a full shuffled 136-tile permutation into live wall (first
// 122 tiles) and dead wall (last 14).
func NewWall(shuffled []ID) *Wall {
	if len(shuffled) != NumTiles {
		panic("tiles: wall requires exactly 136 tiles")
	}
	liveLen := NumTiles - 14
	live := make([]ID, liveLen)
	copy(live, shuffled[:liveLen])
	return &Wall{
		live: live,
		Dead: NewDeadWall(shuffled[liveLen:]),
	}
}

// Remaining reports how many tiles are left to draw from the live wall.
func (w *Wall) Remaining() int { return len(w.live) - w.liveHead }

// Draw removes and returns the next live-wall tile. Ok is false when the
// live wall is exhausted (triggers an exhaustive draw upstream).
func (w *Wall) Draw() (ID, bool) {
	if w.liveHead >= len(w.live) {
		return 0, false
	}
	t := w.live[w.liveHead]
	w.liveHead++
	return t, true
}

// Clone returns a deep copy of the wall (live cursor + dead wall state).
func (w *Wall) Clone() *Wall {
	cp := &Wall{
		live:     append([]ID(nil), w.live...),
		liveHead: w.liveHead,
		Dead:     w.Dead.Clone(),
	}
	return cp
}
