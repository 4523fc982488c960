// Round-advance confirmation (§4.10): once a round ends, every human seat
// must confirm before progression.ProcessRoundEnd/InitRound run. Grounded
// on framework/game/room_manager.go's pending-state bookkeeping pattern
// (a side map keyed by seat, separate from the engine's own state), kept
// here at the service layer so the engine itself stays free of anything
// that isn't a pure rules concern.
package service

import (
	"time"

	"mahjong/events"
	"mahjong/progression"
	"mahjong/state"
	"mahjong/turnengine"
)

// openRoundAdvanceLocked is called the instant a round's Phase flips to
// Finished, with evs holding every event driveLoop has collected this pass
// (including the RoundEnd that just fired). It records the result, seeds
// the confirmation set with every human seat, auto-confirms every bot seat
// on the spot, and arms a fixed timer per outstanding human. If no human
// seats remain to wait on, the round advances immediately.
func (s *Service) openRoundAdvanceLocked(session *gameSession, evs []events.Event) []events.Event {
	g := session.g
	result := extractRoundResult(evs)
	if result == nil {
		// Structural invariant: Phase only ever flips to Finished alongside a
		// RoundEnd event in the same driveLoop pass.
		panic("service: round finished with no RoundEnd event to record")
	}
	session.pendingResult = result

	confirmed := make(map[int]bool, 4)
	for _, seat := range session.humanSeats() {
		confirmed[seat] = false
	}
	session.roundAdvance = confirmed

	if allConfirmed(confirmed) {
		return s.resolveRoundAdvanceLocked(session)
	}

	d := time.Duration(g.Settings.RoundAdvanceTimeoutSeconds) * time.Second
	gameID := session.id
	for seat, done := range confirmed {
		if done {
			continue
		}
		seat := seat
		session.seatTimers[seat].StartFixed(d, func() {
			s.onTimerExpiry(gameID, seat, TimeoutRoundAdvance)
		})
	}
	return nil
}

// confirmRoundLocked records seat's confirmation of the just-ended round
// and, once every human seat has confirmed, advances to the next round (or
// finalizes the game).
func (s *Service) confirmRoundLocked(session *gameSession, seat int) ([]events.Event, error) {
	if session.roundAdvance == nil {
		return nil, &GameNotFoundError{GameID: session.id}
	}
	if _, tracked := session.roundAdvance[seat]; !tracked {
		return nil, &turnengine.InvalidActionError{Reason: "seat is not awaiting round-advance confirmation"}
	}
	session.seatTimers[seat].Cancel()
	session.roundAdvance[seat] = true
	if !allConfirmed(session.roundAdvance) {
		return nil, nil
	}
	return s.resolveRoundAdvanceLocked(session), nil
}

// resolveRoundAdvanceLocked runs once every human seat has confirmed (or
// there were none to wait on): it closes the confirmation window and
// either starts the next round or finalizes the game.
func (s *Service) resolveRoundAdvanceLocked(session *gameSession) []events.Event {
	result := session.pendingResult
	session.roundAdvance = nil
	session.pendingResult = nil

	g := progression.ProcessRoundEnd(session.g, *result)
	session.g = g

	if progression.CheckGameEnd(g) {
		finalG, endResult := progression.FinalizeGame(g)
		session.g = finalG
		standings := make([]events.Standing, 0, len(endResult.Standings))
		for _, st := range endResult.Standings {
			standings = append(standings, events.Standing{Seat: st.Seat, RawScore: st.Score, FinalScore: st.FinalScore})
		}
		session.cancelAllTimers()
		return []events.Event{events.NewGameEnd(endResult.WinnerSeat, standings)}
	}

	nextG := state.InitRound(g)
	session.g = nextG
	for _, t := range session.seatTimers {
		t.AddRoundBonus(time.Duration(nextG.Settings.RoundBonusSeconds) * time.Second)
	}

	out := []events.Event{events.NewRoundStarted(nextG.RoundNumber, nextG.Round.DealerSeat, nextG.Round.RoundWind, nextG.HonbaSticks)}
	out = append(out, s.driveLoop(session)...)
	return out
}

// substituteBotRoundAdvance auto-confirms seat when it is switched to a bot
// mid-confirmation-window (§4.12), resolving the round advance if that was
// the last outstanding human.
func (s *Service) substituteBotRoundAdvance(session *gameSession, seat int) []events.Event {
	if session.roundAdvance == nil {
		return nil
	}
	if _, waiting := session.roundAdvance[seat]; !waiting {
		return nil
	}
	session.seatTimers[seat].Cancel()
	session.roundAdvance[seat] = true
	if allConfirmed(session.roundAdvance) {
		return s.resolveRoundAdvanceLocked(session)
	}
	return nil
}

func allConfirmed(m map[int]bool) bool {
	for _, done := range m {
		if !done {
			return false
		}
	}
	return true
}

// extractRoundResult finds the most recent RoundEnd event's Result. The
// engine doesn't retain the result on GameState itself, so the service
// reads it off the event it just emitted.
func extractRoundResult(evs []events.Event) *state.RoundResult {
	for i := len(evs) - 1; i >= 0; i-- {
		if re, ok := evs[i].(events.RoundEnd); ok {
			r := re.Result
			return &r
		}
	}
	return nil
}
