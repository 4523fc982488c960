// Package bot supplies the trivial reference player the service substitutes
// in for a disconnected human (§4.12): the same tsumogiri/pass default
// action §4.11 already applies on timer expiry, reused here so bot turns
// pipeline without external input and a timed-out human degrades into
// exactly the policy a bot would have chosen anyway.
package bot

import (
	"mahjong/state"
	"mahjong/tiles"
)

// Bot decides a seat's move when no human input is coming: what to
// discard off its own draw, and how to answer an outstanding call prompt.
type Bot interface {
	// Discard picks the tile seat gives up from its current hand and
	// whether to declare riichi with it.
	Discard(g *state.GameState, seat int) (tileID tiles.ID, riichi bool)

	// Respond answers seat's outstanding option on the round's pending
	// call prompt.
	Respond(g *state.GameState, seat int, prompt *state.PendingCallPrompt) state.CallResponse
}

// Tsumogiri is the reference Bot: it never riichis, never calls a meld,
// never claims a win, and always lets go of the tile it just drew. It
// exists to keep a game moving when a seat has no human behind it, not to
// play well.
type Tsumogiri struct{}

// Discard returns the seat's most recently drawn tile, never riichi.
func (Tsumogiri) Discard(g *state.GameState, seat int) (tiles.ID, bool) {
	player := g.Round.Players[seat]
	return player.Tiles[len(player.Tiles)-1], false
}

// Respond always passes on whatever the prompt offers.
func (Tsumogiri) Respond(g *state.GameState, seat int, prompt *state.PendingCallPrompt) state.CallResponse {
	return state.CallResponse{Seat: seat, Kind: state.CallPass}
}
