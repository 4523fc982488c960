package state

import "mahjong/tiles"

// RoundPhase is the round's coarse lifecycle state.
type RoundPhase int

const (
	Playing RoundPhase = iota
	Finished
)

// RoundWind identifies the prevailing wind (0=East, 1=South, 2=West).
type RoundWind int

const (
	East RoundWind = iota
	South
	West
)

// DiscardRecord is one discard in the round's full history, used for the
// four-winds abortive-draw check.
type DiscardRecord struct {
	Seat   int
	TileID tiles.ID
}

// RoundState is the full mutable-by-replacement state of one hand of play.
type RoundState struct {
	Wall    *tiles.Wall
	Players [4]Player

	DealerSeat        int
	CurrentPlayerSeat int
	RoundWind         RoundWind
	Phase             RoundPhase
	TurnCount         int

	// AllDiscards is every discard made this round, in order, for the
	// four-winds (suufon renda) check.
	AllDiscards []DiscardRecord

	// OpenedSeats tracks which seats have made any open meld call this
	// round (renhou/tenhou/chiihou eligibility requires no prior calls at
	// all, from anyone).
	OpenedSeats map[int]bool

	// IsAfterMeldCall blocks tsumogiri inference: true between a meld call
	// and that caller's subsequent discard (no tile was drawn).
	IsAfterMeldCall bool

	// PendingDoraCount is the number of deferred dora reveals queued by
	// open/added kans, consumed by the next post-discard finalization.
	PendingDoraCount int

	PendingPrompt *PendingCallPrompt
}

// Clone returns a deep structural copy.
func (r *RoundState) Clone() *RoundState {
	cp := *r
	cp.Wall = r.Wall.Clone()
	for i := range cp.Players {
		cp.Players[i] = r.Players[i].Clone()
	}
	cp.AllDiscards = append([]DiscardRecord(nil), r.AllDiscards...)
	cp.OpenedSeats = make(map[int]bool, len(r.OpenedSeats))
	for k, v := range r.OpenedSeats {
		cp.OpenedSeats[k] = v
	}
	cp.PendingPrompt = r.PendingPrompt.Clone()
	return &cp
}

// Kamicha returns the seat to seat's immediate left (one seat counter-
// clockwise back, the only valid chi source).
func Kamicha(seat int) int { return (seat + 3) % 4 }

// Shimocha returns the seat to seat's immediate right.
func Shimocha(seat int) int { return (seat + 1) % 4 }

// Toimen returns the seat directly across.
func Toimen(seat int) int { return (seat + 2) % 4 }

// CounterClockwiseDistance returns how many seats clockwise-of-play (1-3)
// separate `from` and `to` — used by atamahane and best-meld tie-breaks,
// both of which resolve in turn order starting just after the discarder.
func CounterClockwiseDistance(from, to int) int {
	return ((to-from)%4 + 4) % 4
}

// TotalKans returns the sum of kan melds across all four players.
func (r *RoundState) TotalKans() int {
	n := 0
	for _, p := range r.Players {
		n += p.TotalKans()
	}
	return n
}

// SeatToWind returns the player wind (East=dealer, then South/West/North
// counter-clockwise) for a seat given the round's dealer.
func SeatToWind(seat, dealerSeat int) tiles.Type {
	offset := CounterClockwiseDistance(dealerSeat, seat)
	return tiles.East + tiles.Type(offset)
}
