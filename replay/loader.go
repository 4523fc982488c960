package replay

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"mahjong/melds"
	"mahjong/rng"
	"mahjong/service"
	"mahjong/state"
	"mahjong/tiles"
)

// ReplayInputEvent is one action-producing record, translated into the
// exact (seat, Action, ActionData) triple the service's HandleAction
// expects.
type ReplayInputEvent struct {
	Seat   int
	Action service.Action
	Data   service.ActionData
}

// ReplayInput is a fully parsed, validated replay: the seed and seating a
// fresh game must be started with, plus the ordered action stream to
// drive it with.
type ReplayInput struct {
	SeedHex    string
	RNGVersion string
	Names      [4]string
	Events     []ReplayInputEvent
}

// BadRecordError reports a malformed or out-of-range replay record.
type BadRecordError struct {
	Index  int
	Reason string
}

func (e *BadRecordError) Error() string {
	return fmt.Sprintf("replay: record %d: %s", e.Index, e.Reason)
}

// splitStream breaks the concatenated-JSON-objects stream into individual
// object byte slices. Every record in this format is a flat object whose
// only nested structure (game_started's player list) is comma-joined, so
// the literal substring "}{" only ever appears at a true top-level record
// boundary — splitting on it, then restoring the brace each half lost, is
// exactly what §4.13 specifies.
func splitStream(data []byte) [][]byte {
	parts := bytes.Split(data, []byte("}{"))
	out := make([][]byte, len(parts))
	for i, p := range parts {
		switch {
		case len(parts) == 1:
			out[i] = p
		case i == 0:
			out[i] = append(p, '}')
		case i == len(parts)-1:
			out[i] = append([]byte{'{'}, p...)
		default:
			buf := make([]byte, 0, len(p)+2)
			buf = append(buf, '{')
			buf = append(buf, p...)
			buf = append(buf, '}')
			out[i] = buf
		}
	}
	return out
}

// Load reads and validates a full replay stream, reconstructing the
// ordered ReplayInput a runner can drive a fresh engine with.
func Load(r io.Reader) (*ReplayInput, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("replay: read: %w", err)
	}
	records := splitStream(bytes.TrimSpace(data))
	if len(records) < MinEvents {
		return nil, &BadRecordError{Index: 0, Reason: fmt.Sprintf("stream has %d records, need at least %d", len(records), MinEvents)}
	}
	if len(records) > MaxEvents {
		return nil, &BadRecordError{Index: len(records) - 1, Reason: fmt.Sprintf("stream has %d records, exceeding the %d cap", len(records), MaxEvents)}
	}

	var version versionRecord
	if err := json.Unmarshal(records[0], &version); err != nil {
		return nil, &BadRecordError{Index: 0, Reason: "not a version record: " + err.Error()}
	}

	var started gameStartedRecord
	if err := json.Unmarshal(records[1], &started); err != nil {
		return nil, &BadRecordError{Index: 1, Reason: "not a game_started record: " + err.Error()}
	}
	if started.Type != TagGameStarted {
		return nil, &BadRecordError{Index: 1, Reason: fmt.Sprintf("expected type %d, got %d", TagGameStarted, started.Type)}
	}
	if err := rngValidateSeedVersion(started.SeedHex, started.RNGVersion); err != nil {
		return nil, err
	}
	if len(started.Players) != 4 {
		return nil, &BadRecordError{Index: 1, Reason: fmt.Sprintf("expected 4 seated players, got %d", len(started.Players))}
	}
	var names [4]string
	seen := make(map[int]bool, 4)
	for _, p := range started.Players {
		if p.Seat < 0 || p.Seat > 3 {
			return nil, &BadRecordError{Index: 1, Reason: fmt.Sprintf("player seat %d out of range", p.Seat)}
		}
		if seen[p.Seat] {
			return nil, &BadRecordError{Index: 1, Reason: fmt.Sprintf("seat %d listed twice", p.Seat)}
		}
		seen[p.Seat] = true
		names[p.Seat] = p.Name
	}

	events := make([]ReplayInputEvent, 0, len(records)-2)
	for i := 2; i < len(records); i++ {
		var rec actionRecord
		if err := json.Unmarshal(records[i], &rec); err != nil {
			return nil, &BadRecordError{Index: i, Reason: "not a valid action record: " + err.Error()}
		}
		ev, err := decodeActionRecord(i, rec)
		if err != nil {
			return nil, err
		}
		events = append(events, ev)
	}

	return &ReplayInput{
		SeedHex:    started.SeedHex,
		RNGVersion: started.RNGVersion,
		Names:      names,
		Events:     events,
	}, nil
}

func decodeActionRecord(index int, rec actionRecord) (ReplayInputEvent, error) {
	switch rec.Type {
	case TagDiscard:
		seat, tileID, isTsumogiri, isRiichi := unpackDiscard(rec.D)
		action := service.ActionDiscard
		if isRiichi {
			action = service.ActionDeclareRiichi
		}
		_ = isTsumogiri // tsumogiri is derivable from the tile already being the current draw; the engine recomputes it
		return ReplayInputEvent{Seat: seat, Action: action, Data: service.ActionData{TileID: tileID}}, nil

	case TagMeld:
		m, err := melds.DecodeCompact(rec.M)
		if err != nil {
			return ReplayInputEvent{}, &BadRecordError{Index: index, Reason: "bad IMME value: " + err.Error()}
		}
		return meldRecordToEvent(index, m)

	case TagTsumo:
		return ReplayInputEvent{Seat: rec.S, Action: service.ActionDeclareTsumo}, nil

	case TagRon:
		return ReplayInputEvent{Seat: rec.S, Action: service.ActionCallRon}, nil

	case TagKyuushu:
		return ReplayInputEvent{Seat: rec.S, Action: service.ActionCallKyuushu}, nil

	default:
		return ReplayInputEvent{}, &BadRecordError{Index: index, Reason: fmt.Sprintf("unknown record type %d", rec.Type)}
	}
}

func meldRecordToEvent(index int, m melds.Meld) (ReplayInputEvent, error) {
	switch m.Kind {
	case melds.Chi:
		var seq [2]tiles.ID
		j := 0
		for _, id := range m.TileIDs {
			if int(id) == m.CalledTileID {
				continue
			}
			if j < 2 {
				seq[j] = id
				j++
			}
		}
		return ReplayInputEvent{Seat: m.CallerSeat, Action: service.ActionCallChi, Data: service.ActionData{SequenceTiles: seq}}, nil

	case melds.Pon:
		return ReplayInputEvent{Seat: m.CallerSeat, Action: service.ActionCallPon}, nil

	case melds.OpenKan:
		return ReplayInputEvent{Seat: m.CallerSeat, Action: service.ActionCallKan, Data: service.ActionData{TileID: tiles.ID(m.CalledTileID)}}, nil

	case melds.AddedKan, melds.ClosedKan:
		return ReplayInputEvent{Seat: m.CallerSeat, Action: service.ActionCallKan, Data: service.ActionData{KanType: m.Type34()}}, nil

	default:
		return ReplayInputEvent{}, &BadRecordError{Index: index, Reason: "unrecognized meld kind in IMME record"}
	}
}

// rngValidateSeedVersion checks the replay's recorded seed/RNG version
// against what this build's state package actually derives from, so a
// stale replay fails fast instead of silently diverging mid-game.
func rngValidateSeedVersion(seedHex, rngVersion string) error {
	if rngVersion != state.RNGVersion {
		return &BadRecordError{Index: 1, Reason: fmt.Sprintf("replay was recorded with RNG version %q, this build derives %q", rngVersion, state.RNGVersion)}
	}
	if err := rng.ValidateSeedHex(seedHex); err != nil {
		return &BadRecordError{Index: 1, Reason: err.Error()}
	}
	return nil
}
