// Package service is the stateful façade §6 calls the "Service API
// (in-process)": one handle_action entry point plus start_game/
// cleanup_game/get_game_state/is_round_advance_pending/handle_timeout,
// each driving the pure turnengine handlers under a per-game lock.
// Grounded on framework/game's Room/RoomManager (per-room mutex, a map of
// live games keyed by id) generalized from that teacher's grpc-room model
// down to spec §5's single in-process lock-per-game.
package service

import (
	"mahjong/state"
	"mahjong/tiles"
)

// Action is one of §6's closed set of player-initiated actions.
type Action string

const (
	ActionDiscard       Action = "Discard"
	ActionDeclareRiichi Action = "DeclareRiichi"
	ActionDeclareTsumo  Action = "DeclareTsumo"
	ActionCallRon       Action = "CallRon"
	ActionCallPon       Action = "CallPon"
	ActionCallChi       Action = "CallChi"
	ActionCallKan       Action = "CallKan"
	ActionPass          Action = "Pass"
	ActionCallKyuushu   Action = "CallKyuushu"
	ActionConfirmRound  Action = "ConfirmRound"
)

// ActionData is the payload accompanying an Action; only the fields the
// chosen Action needs are read.
type ActionData struct {
	TileID        tiles.ID
	SequenceTiles [2]tiles.ID
	KanType       tiles.Type
}

// TimeoutType is one of §4.11's three timer kinds.
type TimeoutType string

const (
	TimeoutTurn         TimeoutType = "Turn"
	TimeoutMeld         TimeoutType = "Meld"
	TimeoutRoundAdvance TimeoutType = "RoundAdvance"
)

// GameNotFoundError reports an operation against an unknown or already
// cleaned-up game id.
type GameNotFoundError struct{ GameID string }

func (e *GameNotFoundError) Error() string { return "service: unknown game " + e.GameID }

// PlayerNotFoundError reports an action from a name not seated in the game.
type PlayerNotFoundError struct{ GameID, PlayerName string }

func (e *PlayerNotFoundError) Error() string {
	return "service: " + e.PlayerName + " is not seated in game " + e.GameID
}

// seatByName resolves a player name to its seat within g, mirroring
// §4.13's replay loader need to reconstruct seat order from names.
func seatByName(g *state.GameState, name string) (int, bool) {
	for i, p := range g.Round.Players {
		if p.Name == name {
			return i, true
		}
	}
	return 0, false
}
