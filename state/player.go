// Package state defines the immutable game/round/player records every
// handler transforms by structural copy with targeted replacement: no
// handler mutates a record another goroutine might still be holding.
package state

import (
	"mahjong/melds"
	"mahjong/tiles"
)

// NoPaoSeat marks Player.PaoSeat when no liability is assigned.
const NoPaoSeat = -1

// Discard is one tile a player has put down, with the flags needed for
// kuikae/furiten/nagashi-mangan bookkeeping.
type Discard struct {
	TileID         tiles.ID
	IsTsumogiri    bool
	IsRiichiDiscard bool
	// ClaimedBySeat is the seat whose meld called this discard, or
	// NoPaoSeat if it was never claimed (drives nagashi mangan eligibility).
	ClaimedBySeat int
}

// Player is one seat's full hand-of-play state.
type Player struct {
	Seat  int
	Name  string
	IsBot bool

	// Tiles holds the closed hand; the most recently drawn tile is always
	// last when present.
	Tiles []tiles.ID
	Melds []melds.Meld

	Discards []Discard
	Score    int

	IsRiichi            bool
	IsIppatsu           bool
	IsDaburi            bool // double riichi: declared on the first uninterrupted discard
	IsRinshan           bool // just drew from the dead wall
	IsTemporaryFuriten  bool
	IsRiichiFuriten     bool

	// KuikaeTiles lists 34-types forbidden for this player's very next
	// discard, set by a chi/pon call and cleared once that discard lands.
	KuikaeTiles []tiles.Type

	// PaoSeat is the seat liable for this player's win (daisangen/daisuushii
	// completing call), or NoPaoSeat.
	PaoSeat int
}

// NewPlayer returns a fresh seat record at the given starting score.
func NewPlayer(seat int, name string, isBot bool, score int) Player {
	return Player{
		Seat:    seat,
		Name:    name,
		IsBot:   isBot,
		Score:   score,
		PaoSeat: NoPaoSeat,
	}
}

// Clone returns a deep structural copy (hand sizes are tiny, so full
// cloning is cheap and keeps the immutability guarantee trivial to reason
// about — see the design notes on copy-on-write vs. persistent vectors).
func (p Player) Clone() Player {
	cp := p
	cp.Tiles = append([]tiles.ID(nil), p.Tiles...)
	cp.Melds = make([]melds.Meld, len(p.Melds))
	for i, m := range p.Melds {
		cp.Melds[i] = m.Clone()
	}
	cp.Discards = append([]Discard(nil), p.Discards...)
	cp.KuikaeTiles = append([]tiles.Type(nil), p.KuikaeTiles...)
	return cp
}

// HasTile reports whether id is currently in the player's closed hand.
func (p Player) HasTile(id tiles.ID) bool {
	for _, t := range p.Tiles {
		if t == id {
			return true
		}
	}
	return false
}

// CountType34 returns how many copies of a 34-type the player holds in hand.
func (p Player) CountType34(t tiles.Type) int {
	n := 0
	for _, id := range p.Tiles {
		if id.Type34() == t {
			n++
		}
	}
	return n
}

// IsOpen reports whether the player has any meld that opens the hand
// (anything but a closed kan).
func (p Player) IsOpen() bool {
	for _, m := range p.Melds {
		if m.Kind.IsOpen() {
			return true
		}
	}
	return false
}

// EffectiveFuriten combines the temporary and riichi furiten flags with
// the on-demand discard-furiten check (the caller supplies the waiting set
// since that requires the hand evaluator).
func (p Player) EffectiveFuriten(isDiscardFuriten bool) bool {
	return p.IsTemporaryFuriten || p.IsRiichiFuriten || isDiscardFuriten
}

// TotalKans returns how many kan melds (of any variety) this player has formed.
func (p Player) TotalKans() int {
	n := 0
	for _, m := range p.Melds {
		if m.Kind.IsKan() {
			n++
		}
	}
	return n
}
