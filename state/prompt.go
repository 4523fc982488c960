package state

import "mahjong/tiles"

// PromptType identifies the kind of outstanding response window.
type PromptType int

const (
	PromptRon PromptType = iota
	PromptMeld
	PromptChankan
	// PromptDiscardCheck covers the window opened right after a discard
	// where both ron and meld callers may exist simultaneously.
	PromptDiscardCheck
)

func (t PromptType) String() string {
	switch t {
	case PromptRon:
		return "ron"
	case PromptMeld:
		return "meld"
	case PromptChankan:
		return "chankan"
	case PromptDiscardCheck:
		return "discard_check"
	default:
		return "?"
	}
}

// CallKind names the action a caller is entitled to take on this prompt.
type CallKind int

const (
	CallRon CallKind = iota
	CallPon
	CallChi
	CallKan
	CallPass
)

// ChiOption is one way a kamicha caller could form a chi sequence with the
// discarded tile (a caller may have more than one option, e.g. holding
// both 3p4p and 4p6p against a called 5p).
type ChiOption struct {
	// HandTileIDs are the two hand tiles this option would consume.
	HandTileIDs [2]tiles.ID
}

// CallerOption describes one seat's eligibility on a pending prompt: which
// call kinds it may exercise and, for chi, the specific sequence choices.
type CallerOption struct {
	Seat        int
	Kinds       []CallKind
	ChiOptions  []ChiOption
	// RonDemoted marks a seat whose meld capability was stripped by the
	// ron-dominant policy at prompt-time (it may still ron, or pass and
	// fall back to the meld if ron is ultimately declined — see spec §4.4).
	RonDemoted bool
}

// CallResponse is one seat's answer to a pending prompt.
type CallResponse struct {
	Seat       int
	Kind       CallKind
	ChiTiles   [2]tiles.ID // populated only for CallKind == CallChi
	KanTileID  tiles.ID    // populated only for CallKind == CallKan (closed/added kan declarations)
}

// PendingCallPrompt is the outstanding window blocking turn advance.
type PendingCallPrompt struct {
	Type     PromptType
	TileID   tiles.ID
	FromSeat int

	// KanType carries the 34-type of the meld being upgraded, for a
	// PromptChankan prompt to resume added-kan completion once every
	// eligible seat has declined to rob it.
	KanType tiles.Type

	Callers      []CallerOption
	PendingSeats []int
	Responses    []CallResponse
}

// Clone returns a structural copy.
func (p *PendingCallPrompt) Clone() *PendingCallPrompt {
	if p == nil {
		return nil
	}
	cp := *p
	cp.Callers = append([]CallerOption(nil), p.Callers...)
	for i := range cp.Callers {
		cp.Callers[i].Kinds = append([]CallKind(nil), p.Callers[i].Kinds...)
		cp.Callers[i].ChiOptions = append([]ChiOption(nil), p.Callers[i].ChiOptions...)
	}
	cp.PendingSeats = append([]int(nil), p.PendingSeats...)
	cp.Responses = append([]CallResponse(nil), p.Responses...)
	return &cp
}

// IsResolvable reports whether every eligible seat has answered.
func (p *PendingCallPrompt) IsResolvable() bool {
	return p != nil && len(p.PendingSeats) == 0
}

// RemoveSeat marks seat as answered by removing it from PendingSeats.
func (p *PendingCallPrompt) RemoveSeat(seat int) {
	out := p.PendingSeats[:0]
	for _, s := range p.PendingSeats {
		if s != seat {
			out = append(out, s)
		}
	}
	p.PendingSeats = out
}

// CallerFor returns the CallerOption for seat, if present.
func (p *PendingCallPrompt) CallerFor(seat int) (CallerOption, bool) {
	for _, c := range p.Callers {
		if c.Seat == seat {
			return c, true
		}
	}
	return CallerOption{}, false
}

// ResponsesOfKind filters Responses by kind.
func (p *PendingCallPrompt) ResponsesOfKind(kind CallKind) []CallResponse {
	var out []CallResponse
	for _, r := range p.Responses {
		if r.Kind == kind {
			out = append(out, r)
		}
	}
	return out
}
