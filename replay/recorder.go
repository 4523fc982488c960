package replay

import (
	"encoding/json"
	"fmt"
	"io"

	"mahjong/events"
	"mahjong/melds"
	"mahjong/tiles"
)

// Recorder appends a live game's action-producing events to an io.Writer
// as a §4.13 replay stream: a version tag, a game_started record, then one
// record per Discard/Meld/RoundEnd-that-implies-an-action. Grounded on
// zintix-labs-problab's SpinRecorder (a per-run accumulator fed one result
// at a time), adapted here from in-memory accumulation to direct streaming
// writes since a replay file has no final aggregate to compute.
//
// events.Discard, RoundEnd's tsumo/ron and CallKyuushu's resulting
// abortive draw all carry no acting-seat field on the event itself (see
// events.go); the service layer that dispatches these actions already
// knows the seat, so Recorder exposes one Record* method per
// action-producing kind rather than a single generic Record(events.Event).
type Recorder struct {
	w       io.Writer
	err     error
	count   int
	started bool
}

// ReplayVersion is stamped into every recorded stream's version record.
const ReplayVersion = "mahjong-replay-v1"

// NewRecorder wraps w; call Start once before any event-derived record.
func NewRecorder(w io.Writer) *Recorder {
	return &Recorder{w: w}
}

// Err returns the first encode/write error encountered, if any.
func (r *Recorder) Err() error { return r.err }

// Count reports how many records (including version + game_started) have
// been written so far.
func (r *Recorder) Count() int { return r.count }

func (r *Recorder) write(v any) {
	if r.err != nil {
		return
	}
	if r.count >= MaxEvents {
		r.err = fmt.Errorf("replay: record cap of %d exceeded", MaxEvents)
		return
	}
	b, err := json.Marshal(v)
	if err != nil {
		r.err = fmt.Errorf("replay: encode record %d: %w", r.count, err)
		return
	}
	if _, err := r.w.Write(b); err != nil {
		r.err = fmt.Errorf("replay: write record %d: %w", r.count, err)
		return
	}
	r.count++
}

// Start writes the version tag and the game_started record. Must be
// called exactly once, before any event-derived record.
func (r *Recorder) Start(seedHex, rngVersion string, names [4]string) {
	if r.started {
		r.err = fmt.Errorf("replay: Start called twice")
		return
	}
	r.started = true
	r.write(versionRecord{Version: ReplayVersion})
	players := make([]seatName, 4)
	for i, n := range names {
		players[i] = seatName{Seat: i, Name: n}
	}
	r.write(gameStartedRecord{Type: TagGameStarted, SeedHex: seedHex, RNGVersion: rngVersion, Players: players})
}

// RecordDiscard appends a discard (or riichi-discard) record.
func (r *Recorder) RecordDiscard(seat int, tileID tiles.ID, isTsumogiri, isRiichi bool) {
	r.write(actionRecord{Type: TagDiscard, D: packDiscard(seat, tileID, isTsumogiri, isRiichi)})
}

// RecordMeld appends a called or declared meld.
func (r *Recorder) RecordMeld(e events.Meld) {
	m := melds.Meld{
		Kind:         e.MeldKind,
		CallerSeat:   e.CallerSeat,
		FromSeat:     e.FromSeat,
		TileIDs:      e.TileIDs,
		CalledTileID: e.CalledTileID,
	}
	imme, err := melds.EncodeCompact(m)
	if err != nil {
		r.err = fmt.Errorf("replay: encode meld: %w", err)
		return
	}
	r.write(actionRecord{Type: TagMeld, M: imme})
}

// RecordTsumo appends a self-drawn win declaration.
func (r *Recorder) RecordTsumo(seat int) {
	r.write(actionRecord{Type: TagTsumo, S: seat})
}

// RecordRon appends one winner's ron declaration (double ron is one
// RecordRon call per winning seat).
func (r *Recorder) RecordRon(seat int) {
	r.write(actionRecord{Type: TagRon, S: seat})
}

// RecordKyuushu appends a nine-terminals abortive-draw declaration.
func (r *Recorder) RecordKyuushu(seat int) {
	r.write(actionRecord{Type: TagKyuushu, S: seat})
}
