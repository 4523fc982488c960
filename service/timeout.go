// Timeout default actions (§4.11, §6's handle_timeout). A timer's expiry
// and an external handle_timeout call both resolve to the same default:
// tsumogiri for an owed discard, pass for an owed prompt response, and
// auto-confirm for an owed round-advance.
package service

import (
	"time"

	"mahjong/events"
	"mahjong/state"
	"mahjong/turnengine"
)

// HandleTimeout applies §4.11's default action on playerName's behalf, as
// if its timer had just expired. Safe to call even when no timer is
// actually running for that seat (a no-op in that case).
func (s *Service) HandleTimeout(gameID, playerName string, timeoutType TimeoutType) ([]events.Event, error) {
	session, err := s.lookup(gameID)
	if err != nil {
		return nil, err
	}
	session.mu.Lock()
	seat, ok := seatByName(session.g, playerName)
	session.mu.Unlock()
	if !ok {
		return nil, &PlayerNotFoundError{GameID: gameID, PlayerName: playerName}
	}
	return s.handleTimeoutSeat(gameID, seat, timeoutType)
}

func (s *Service) handleTimeoutSeat(gameID string, seat int, timeoutType TimeoutType) ([]events.Event, error) {
	session, err := s.lookup(gameID)
	if err != nil {
		return nil, err
	}
	session.mu.Lock()
	defer session.mu.Unlock()
	session.lastActivity = time.Now()

	switch timeoutType {
	case TimeoutRoundAdvance:
		if session.roundAdvance == nil {
			return nil, nil
		}
		return s.confirmRoundLocked(session, seat)

	case TimeoutMeld:
		g := session.g
		if g.Round.PendingPrompt == nil || !seatPending(g.Round.PendingPrompt, seat) {
			return nil, nil
		}
		newG, evs, err := turnengine.RespondToPrompt(s.engine, g, state.CallResponse{Seat: seat, Kind: state.CallPass})
		if err != nil {
			return nil, err
		}
		session.g = newG
		out := append(evs, s.driveLoop(session)...)
		return out, nil

	case TimeoutTurn:
		g := session.g
		if g.Round.Phase == state.Finished || g.Round.PendingPrompt != nil {
			return nil, nil
		}
		if g.Round.CurrentPlayerSeat != seat {
			return nil, nil
		}
		player := g.Round.Players[seat]
		if len(player.Tiles)+3*len(player.Melds) != 14 {
			return nil, nil
		}
		tileID := player.Tiles[len(player.Tiles)-1]
		newG, evs, err := turnengine.ProcessDiscardPhase(s.engine, g, seat, tileID, false)
		if err != nil {
			return nil, err
		}
		session.g = newG
		out := append(evs, s.driveLoop(session)...)
		return out, nil

	default:
		return nil, &turnengine.InvalidActionError{Reason: "unrecognized timeout type"}
	}
}

func seatPending(prompt *state.PendingCallPrompt, seat int) bool {
	for _, p := range prompt.PendingSeats {
		if p == seat {
			return true
		}
	}
	return false
}
