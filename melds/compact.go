package melds

import (
	"fmt"

	"mahjong/tiles"
)

// Compact encodes a Meld as a single integer (IMME: Integer-Mapped Meld
// Encoding). caller_seat occupies the low 2 bits; the remaining bits are a
// meld_index that falls into one of five contiguous ranges by kind:
//
//	Kind         Offset   Count   Range
//	Chi             0     4032       0 ..  4031
//	Pon          4032     1224    4032 ..  5255
//	AddedKan     5256      408    5256 ..  5663
//	OpenKan      5664      408    5664 ..  6071
//	ClosedKan    6072       34    6072 ..  6105
//
// Total: 6106 meld indices x 4 seats = 24424 values (fits in 15 bits).
const (
	chiOffset   = 0
	chiCount    = 4032 // 21 * 64 * 3
	ponOffset   = chiOffset + chiCount
	ponCount    = 1224 // 34 * 4 * 3 * 3
	addedOffset = ponOffset + ponCount
	addedCount  = 408 // 34 * 4 * 3
	openOffset  = addedOffset + addedCount
	openCount   = 408 // 34 * 4 * 3
	ankanOffset = openOffset + openCount
	ankanCount  = 34

	chiSeqsPerSuit  = 7
	suitedKindCount = 3
	missingCopies   = 4
	calledPositions = 3
	fromOffsets     = 3
	calledCopies    = 4
)

// fromOffset computes the relative-seat distance (1, 2, or 3 steps
// clockwise from caller) encoded as 0-2, rejecting a caller claiming their
// own discard.
func fromOffset(fromSeat, callerSeat int) (int, error) {
	if fromSeat < 0 || fromSeat > 3 {
		return 0, fmt.Errorf("melds: from_seat must be 0-3, got %d", fromSeat)
	}
	off := ((fromSeat-callerSeat)%4 + 4) % 4 - 1
	if off < 0 || off > 2 {
		return 0, fmt.Errorf("melds: from_seat=%d caller_seat=%d yields invalid from_offset", fromSeat, callerSeat)
	}
	return off, nil
}

func seatFromOffset(off, callerSeat int) int { return (callerSeat + off + 1) % 4 }

func sortedTileIDs(ids []int) []int {
	out := append([]int(nil), ids...)
	for i := 0; i < len(out); i++ {
		for j := i + 1; j < len(out); j++ {
			if out[j] < out[i] {
				out[i], out[j] = out[j], out[i]
			}
		}
	}
	return out
}

func indexOf(ids []int, v int) int {
	for i, id := range ids {
		if id == v {
			return i
		}
	}
	return -1
}

// EncodeCompact encodes m as a single IMME integer.
func EncodeCompact(m Meld) (int, error) {
	if m.CallerSeat < 0 || m.CallerSeat > 3 {
		return 0, fmt.Errorf("melds: caller_seat must be 0-3, got %d", m.CallerSeat)
	}
	ids := make([]int, len(m.TileIDs))
	for i, id := range m.TileIDs {
		ids[i] = int(id)
	}

	switch m.Kind {
	case Chi:
		return encodeChi(m, ids)
	case Pon:
		return encodePon(m, ids)
	case AddedKan:
		return encodeOpenKan(m, ids, addedOffset)
	case OpenKan:
		return encodeOpenKan(m, ids, openOffset)
	case ClosedKan:
		return encodeAnkan(m, ids)
	default:
		return 0, fmt.Errorf("melds: unknown meld kind %v", m.Kind)
	}
}

func encodeChi(m Meld, ids []int) (int, error) {
	sorted := sortedTileIDs(ids)
	expectedFrom := (m.CallerSeat + 3) % 4
	if m.FromSeat != expectedFrom {
		return 0, fmt.Errorf("melds: chi from_seat must be kamicha (%d), got %d", expectedFrom, m.FromSeat)
	}

	tile34Lo := sorted[0] / 4
	copyLo := sorted[0] % 4
	copyMid := sorted[1] % 4
	copyHi := sorted[2] % 4

	suitIndex := tile34Lo / 9
	if suitIndex >= suitedKindCount {
		return 0, fmt.Errorf("melds: chi tiles must be suited, got tile_34=%d", tile34Lo)
	}
	startInSuit := tile34Lo % 9
	if startInSuit >= chiSeqsPerSuit {
		return 0, fmt.Errorf("melds: chi sequence cannot start at %d in suit", startInSuit)
	}
	baseIndex := suitIndex*chiSeqsPerSuit + startInSuit

	copyIndex := copyLo*16 + copyMid*4 + copyHi
	calledPos := indexOf(sorted, m.CalledTileID)
	if calledPos < 0 {
		return 0, fmt.Errorf("melds: called_tile_id %d not among chi tiles", m.CalledTileID)
	}

	meldIndex := (baseIndex*64+copyIndex)*3 + calledPos
	return meldIndex*4 + m.CallerSeat, nil
}

func decodeChi(meldIndex, callerSeat int) Meld {
	calledPos := meldIndex % 3
	remainder := meldIndex / 3
	copyIndex := remainder % 64
	baseIndex := remainder / 64

	suitIndex := baseIndex / chiSeqsPerSuit
	startInSuit := baseIndex % chiSeqsPerSuit
	tile34Lo := suitIndex*9 + startInSuit

	copyLo := copyIndex / 16
	copyMid := (copyIndex / 4) % 4
	copyHi := copyIndex % 4

	ids := []int{
		tile34Lo*4 + copyLo,
		(tile34Lo+1)*4 + copyMid,
		(tile34Lo+2)*4 + copyHi,
	}
	return Meld{
		Kind:         Chi,
		CallerSeat:   callerSeat,
		FromSeat:     (callerSeat + 3) % 4,
		TileIDs:      toTileIDs(ids),
		CalledTileID: ids[calledPos],
	}
}

func encodePon(m Meld, ids []int) (int, error) {
	sorted := sortedTileIDs(ids)
	tile34 := sorted[0] / 4
	used := map[int]bool{}
	for _, id := range sorted {
		used[id%4] = true
	}
	missing := -1
	for c := 0; c < 4; c++ {
		if !used[c] {
			missing = c
			break
		}
	}
	calledPos := indexOf(sorted, m.CalledTileID)
	if calledPos < 0 {
		return 0, fmt.Errorf("melds: called_tile_id %d not among pon tiles", m.CalledTileID)
	}
	off, err := fromOffset(m.FromSeat, m.CallerSeat)
	if err != nil {
		return 0, err
	}

	ponIndex := ((tile34*missingCopies+missing)*calledPositions+calledPos)*fromOffsets + off
	meldIndex := ponOffset + ponIndex
	return meldIndex*4 + m.CallerSeat, nil
}

func decodePon(ponIndex, callerSeat int) Meld {
	off := ponIndex % fromOffsets
	remainder := ponIndex / fromOffsets
	calledPos := remainder % calledPositions
	remainder = remainder / calledPositions
	missing := remainder % missingCopies
	tile34 := remainder / missingCopies

	ids := make([]int, 0, 3)
	for c := 0; c < 4; c++ {
		if c != missing {
			ids = append(ids, tile34*4+c)
		}
	}
	return Meld{
		Kind:         Pon,
		CallerSeat:   callerSeat,
		FromSeat:     seatFromOffset(off, callerSeat),
		TileIDs:      toTileIDs(ids),
		CalledTileID: ids[calledPos],
	}
}

func encodeOpenKan(m Meld, ids []int, typeOffset int) (int, error) {
	tile34 := ids[0] / 4
	calledCopy := m.CalledTileID % 4
	off, err := fromOffset(m.FromSeat, m.CallerSeat)
	if err != nil {
		return 0, err
	}
	localIndex := (tile34*calledCopies+calledCopy)*fromOffsets + off
	meldIndex := typeOffset + localIndex
	return meldIndex*4 + m.CallerSeat, nil
}

func decodeOpenKan(localIndex, callerSeat int, kind Kind) Meld {
	off := localIndex % fromOffsets
	remainder := localIndex / fromOffsets
	calledCopy := remainder % calledCopies
	tile34 := remainder / calledCopies

	ids := make([]int, 4)
	for c := 0; c < 4; c++ {
		ids[c] = tile34*4 + c
	}
	return Meld{
		Kind:         kind,
		CallerSeat:   callerSeat,
		FromSeat:     seatFromOffset(off, callerSeat),
		TileIDs:      toTileIDs(ids),
		CalledTileID: tile34*4 + calledCopy,
	}
}

func encodeAnkan(m Meld, ids []int) (int, error) {
	tile34 := ids[0] / 4
	meldIndex := ankanOffset + tile34
	return meldIndex*4 + m.CallerSeat, nil
}

func decodeAnkan(localIndex, callerSeat int) Meld {
	tile34 := localIndex
	ids := make([]int, 4)
	for c := 0; c < 4; c++ {
		ids[c] = tile34*4 + c
	}
	return Meld{
		Kind:         ClosedKan,
		CallerSeat:   callerSeat,
		FromSeat:     NoSeat,
		TileIDs:      toTileIDs(ids),
		CalledTileID: -1,
	}
}

// DecodeCompact decodes an IMME integer back into a Meld.
func DecodeCompact(value int) (Meld, error) {
	if value < 0 {
		return Meld{}, fmt.Errorf("melds: compact integer %d is negative", value)
	}
	callerSeat := value % 4
	meldIndex := value / 4

	switch {
	case meldIndex < ponOffset:
		return decodeChi(meldIndex-chiOffset, callerSeat), nil
	case meldIndex < addedOffset:
		return decodePon(meldIndex-ponOffset, callerSeat), nil
	case meldIndex < openOffset:
		return decodeOpenKan(meldIndex-addedOffset, callerSeat, AddedKan), nil
	case meldIndex < ankanOffset:
		return decodeOpenKan(meldIndex-openOffset, callerSeat, OpenKan), nil
	case meldIndex < ankanOffset+ankanCount:
		return decodeAnkan(meldIndex-ankanOffset, callerSeat), nil
	default:
		return Meld{}, fmt.Errorf("melds: compact integer %d (meld_index=%d) out of range", value, meldIndex)
	}
}

func toTileIDs(ints []int) []tiles.ID {
	out := make([]tiles.ID, len(ints))
	for i, v := range ints {
		out[i] = tiles.ID(v)
	}
	return out
}
